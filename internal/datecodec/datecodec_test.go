package datecodec

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"new year", "01012024", "2024-01-01"},
		{"year end", "12312023", "2023-12-31"},
		{"leap day", "02292024", "2024-02-29"},
		{"leap day 2000", "02292000", "2000-02-29"},
		{"mid year", "07042021", "2021-07-04"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestParseRejects(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"",
		"1012024",
		"010120244",
		"2024-01-01",
		"01-01-2024",
		"0101202a",
		"13012024",
		"00012024",
		"01002024",
		"01322024",
		"02302024",
		"02292023",
		"02291900",
		"04312024",
		" 1012024",
		"12310000",
		"01010000",
	}
	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			_, err := Parse(in)
			require.Error(t, err)

			var dateErr *InvalidDateFormatError
			require.True(t, errors.As(err, &dateErr))
			require.Equal(t, in, dateErr.Input)
			require.Equal(t, "Invalid date format: "+in+". Expected mmddyyyy format.", err.Error())
		})
	}
}

func TestParseTime(t *testing.T) {
	t.Parallel()

	got, err := ParseTime("03152024")
	require.NoError(t, err)
	require.Equal(t, time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC), got)
}

func TestParseRange(t *testing.T) {
	t.Parallel()

	rng, err := ParseRange("01012024", "02012024")
	require.NoError(t, err)
	require.Equal(t, "2024-01-01", rng.StartDate())
	require.Equal(t, "2024-02-01", rng.EndDate())

	_, err = ParseRange("02012024", "01012024")
	require.ErrorIs(t, err, ErrEmptyRange)

	_, err = ParseRange("01012024", "01012024")
	require.ErrorIs(t, err, ErrEmptyRange)

	_, err = ParseRange("01012024", "13012024")
	var dateErr *InvalidDateFormatError
	require.ErrorAs(t, err, &dateErr)
	require.Equal(t, "13012024", dateErr.Input)
}
