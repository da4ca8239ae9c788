package changelog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewVersion_Validation(t *testing.T) {
	tests := map[string]struct {
		versionName string
		day         int
		month       string
		year        int
		wantErr     string
	}{
		"valid release":          {versionName: "v1.2.3", day: 15, month: "Mar", year: 2020},
		"valid prerelease":       {versionName: "v1.2.3-rc1", day: 1, month: "jan", year: 2017},
		"last valid year":        {versionName: "v9.0.0", day: 31, month: "DEC", year: 2029},
		"missing v prefix":       {versionName: "1.2.3", day: 1, month: "Jan", year: 2020, wantErr: "name"},
		"two segments only":      {versionName: "v1.2", day: 1, month: "Jan", year: 2020, wantErr: "name"},
		"empty prerelease tag":   {versionName: "v1.2.3-", day: 1, month: "Jan", year: 2020, wantErr: "name"},
		"whitespace in suffix":   {versionName: "v1.2.3-rc1 ", day: 1, month: "Jan", year: 2020, wantErr: "name"},
		"day zero":               {versionName: "v1.0.0", day: 0, month: "Jan", year: 2020, wantErr: "day"},
		"day thirty-two":         {versionName: "v1.0.0", day: 32, month: "Jan", year: 2020, wantErr: "day"},
		"unknown month":          {versionName: "v1.0.0", day: 1, month: "Mars", year: 2020, wantErr: "month"},
		"year before range":      {versionName: "v1.0.0", day: 1, month: "Jan", year: 2016, wantErr: "year"},
		"year at exclusive gate": {versionName: "v1.0.0", day: 1, month: "Jan", year: 2030, wantErr: "year"},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			v, err := NewVersion(tc.versionName, tc.day, tc.month, tc.year, "")
			if tc.wantErr != "" {
				require.Error(t, err)
				assert.True(t, IsFormatError(err))
				assert.Contains(t, err.Error(), tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.versionName, v.Name)
			assert.Empty(t, v.Changes)
		})
	}
}

func TestNewVersion_PrereleaseDerivation(t *testing.T) {
	tests := map[string]struct {
		versionName string
		prerelease  bool
	}{
		"plain release":     {versionName: "v1.0.0", prerelease: false},
		"rc suffix":         {versionName: "v1.0.0-rc1", prerelease: true},
		"dotted suffix":     {versionName: "v2.3.4-beta.2", prerelease: true},
		"multi-dash suffix": {versionName: "v1.0.0-a-b", prerelease: true},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			v, err := NewVersion(tc.versionName, 1, "Jan", 2020, "")
			require.NoError(t, err)
			assert.Equal(t, tc.prerelease, v.Prerelease)
		})
	}
}

func TestNewChange_Validation(t *testing.T) {
	tests := map[string]struct {
		title    string
		kind     string
		mr       int
		expected Change
		wantErr  bool
	}{
		"valid":              {title: "x", kind: "Bugfix", mr: 1, expected: Change{Title: "x", Kind: KindBugfix, MR: 1}},
		"kind normalized":    {title: "x", kind: "FEATURE", expected: Change{Title: "x", Kind: KindFeature}},
		"zero mr means none": {title: "x", kind: "Changes", expected: Change{Title: "x", Kind: KindChanges}},
		"empty title":        {title: "", kind: "Bugfix", wantErr: true},
		"unknown kind":       {title: "x", kind: "Hotfix", wantErr: true},
		"negative mr":        {title: "x", kind: "Bugfix", mr: -1, wantErr: true},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			ch, err := NewChange(tc.title, tc.kind, tc.mr)
			if tc.wantErr {
				require.Error(t, err)
				assert.True(t, IsFormatError(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, ch)
		})
	}
}

func TestParseMonth(t *testing.T) {
	m, err := ParseMonth("sep")
	require.NoError(t, err)
	assert.Equal(t, Sep, m)

	_, err = ParseMonth("September")
	require.Error(t, err)
}

func TestMonthOf(t *testing.T) {
	m, err := MonthOf(3)
	require.NoError(t, err)
	assert.Equal(t, Mar, m)

	_, err = MonthOf(0)
	require.Error(t, err)
	_, err = MonthOf(13)
	require.Error(t, err)
}

func TestDisplayOrder(t *testing.T) {
	c := New()
	v1, err := NewVersion("v1.0.0", 1, "Jan", 2019, "")
	require.NoError(t, err)
	v2, err := NewVersion("v1.1.0", 2, "Feb", 2020, "")
	require.NoError(t, err)
	c.Append(v1)
	c.Append(v2)

	display := c.DisplayOrder()
	require.Len(t, display, 2)
	assert.Equal(t, "v1.1.0", display[0].Name)
	assert.Equal(t, "v1.0.0", display[1].Name)

	// Accessor must not mutate stored order.
	assert.Equal(t, "v1.0.0", c.Versions[0].Name)
}

func TestReverse(t *testing.T) {
	c := New()
	for _, name := range []string{"v3.0.0", "v2.0.0", "v1.0.0"} {
		v, err := NewVersion(name, 1, "Jan", 2020, "")
		require.NoError(t, err)
		c.Append(v)
	}

	c.Reverse()

	assert.Equal(t, []string{"v3.0.0", "v2.0.0", "v1.0.0"}, c.ListVersions())
}
