package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFormat(t *testing.T) {
	for _, f := range Formats {
		got, err := ParseFormat(string(f))
		require.NoError(t, err)
		assert.Equal(t, f, got)
	}

	for _, code := range []string{"", "rcs-a", "RCS-C", "RCS_A"} {
		_, err := ParseFormat(code)
		assert.ErrorIs(t, err, ErrUnknownFormat, code)
	}
}

func TestFormat_ExpectedParution(t *testing.T) {
	tests := []struct {
		format Format
		issue  string
		want   string
	}{
		{FormatDIV, "201501020003", "20150003"},
		{FormatDIV, " 201501020003 ", "20150003"},
		{FormatRCSA, "20150001", "20150001"},
		{FormatPCL, "20150042", "20150042"},
		{FormatBILAN, "20150001", "20150001"},
		{FormatDIV, "2015", "2015"},
	}

	for _, tt := range tests {
		t.Run(string(tt.format)+"/"+tt.issue, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.format.ExpectedParution(tt.issue))
		})
	}
}
