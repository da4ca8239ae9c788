// Package pricing converts an awspricingfull CSV export into the nested
// JSON price table consumed by provider configuration: region -> instance
// size -> OS -> hourly price.
package pricing

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
)

// Column offsets in the awspricingfull CSV export.
const (
	colService = 1
	colRegion  = 2
	colSize    = 3
	colOS      = 6
	colPrice   = 10
)

// Table maps region -> instance size -> OS -> price.
type Table map[string]map[string]map[string]string

// providerRegions maps provider identifiers to the AWS region codes used
// in the pricing CSV. ap-northeast-1 intentionally appears twice: the
// legacy and the numbered provider identifier refer to the same region.
var providerRegions = map[string]string{
	"ec2_eu_west":        "eu-west-1",
	"ec2_eu_central":     "eu-central-1",
	"ec2_sa_east":        "sa-east-1",
	"ec2_ap_northeast":   "ap-northeast-1",
	"ec2_ap_northeast1":  "ap-northeast-1",
	"ec2_ap_northeast2":  "ap-northeast-2",
	"ec2_ap_southeast":   "ap-southeast-1",
	"ec2_ap_southeast2":  "ap-southeast-2",
	"ec2_us_east":        "us-east-1",
	"ec2_us_west":        "us-west-1",
	"ec2_us_west_oregon": "us-west-2",
}

// ParseCSV reads the pricing export and builds the region table from rows
// whose service column is "ec2". Rows that are too short are skipped.
func ParseCSV(r io.Reader) (Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	table := Table{}
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading pricing CSV: %w", err)
		}
		if len(row) <= colPrice || row[colService] != "ec2" {
			continue
		}

		region, size, os, price := row[colRegion], row[colSize], row[colOS], row[colPrice]
		if table[region] == nil {
			table[region] = map[string]map[string]string{}
		}
		if table[region][size] == nil {
			table[region][size] = map[string]string{}
		}
		table[region][size][os] = price
	}
	return table, nil
}

// ByProvider remaps the region table onto provider identifiers. Every
// known provider's region must be present in the table.
func ByProvider(t Table) (Table, error) {
	out := Table{}
	for provider, region := range providerRegions {
		regionTable, ok := t[region]
		if !ok {
			return nil, fmt.Errorf("pricing data has no region %q (needed by %s)", region, provider)
		}
		out[provider] = regionTable
	}
	return out, nil
}

// WriteJSON writes the table as indented JSON with deterministic key order.
func WriteJSON(w io.Writer, t Table) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	if err := enc.Encode(t); err != nil {
		return fmt.Errorf("encoding price table: %w", err)
	}
	return nil
}
