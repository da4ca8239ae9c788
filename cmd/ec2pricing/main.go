// Command ec2pricing converts an awspricingfull CSV export into the nested
// JSON price table keyed by provider identifier.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mistops/relog/internal/pricing"
)

func main() {
	csvPath := flag.String("csv", "", "path to the awspricingfull CSV export")
	outPath := flag.String("o", "", "output JSON file (default stdout)")
	flag.Parse()

	if *csvPath == "" {
		fmt.Fprintln(os.Stderr, "usage: ec2pricing -csv <export.csv> [-o <prices.json>]")
		os.Exit(2)
	}

	if err := run(*csvPath, *outPath); err != nil {
		fmt.Fprintln(os.Stderr, "ERROR:", err)
		os.Exit(1)
	}
}

func run(csvPath, outPath string) error {
	in, err := os.Open(csvPath)
	if err != nil {
		return err
	}
	defer in.Close()

	table, err := pricing.ParseCSV(in)
	if err != nil {
		return err
	}
	byProvider, err := pricing.ByProvider(table)
	if err != nil {
		return err
	}

	out := os.Stdout
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	return pricing.WriteJSON(out, byProvider)
}
