package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		text string
		kind string
		want int64
	}{
		{"100000", "", 100000},
		{"-100000", "", -100000},
		{"+250000", "", 250000},
		{"1,500,000", "", 1500000},
		{"1.500.000", "", 1500000},
		{"1 500 000", "", 1500000},
		{"1.500.000 ₫", "", 1500000},
		{"120000đ", "", 120000},
		{"120000 VND", "", 120000},
		{"(45000)", "", -45000},
		{"200000", "expense", -200000},
		{"-200000", "expense", -200000},
		{"200000", "income", 200000},
		{"-200000", "Income", 200000},
		{"200000", "chi", -200000},
		{"200000", "thu", 200000},
		{"0", "", 0},
	}
	for _, tt := range tests {
		got, err := ParseAmount(tt.text, tt.kind)
		require.NoError(t, err, "ParseAmount(%q, %q)", tt.text, tt.kind)
		assert.Equal(t, tt.want, got, "ParseAmount(%q, %q)", tt.text, tt.kind)
	}
}

func TestParseAmountErrors(t *testing.T) {
	tests := []string{"", "abc", "12x34", "--100", "12.5.x"}
	for _, text := range tests {
		_, err := ParseAmount(text, "")
		assert.Error(t, err, "ParseAmount(%q)", text)
	}
}
