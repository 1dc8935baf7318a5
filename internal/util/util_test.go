package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDefaults(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 5, ParseIntDefault("", 5))
	assert.Equal(t, 5, ParseIntDefault("abc", 5))
	assert.Equal(t, 120, ParseIntDefault("120", 5))

	assert.Equal(t, 1.5, ParseFloatDefault("", 1.5))
	assert.Equal(t, 1.5, ParseFloatDefault("1,2", 1.5))
	assert.Equal(t, 19.99, ParseFloatDefault("19.99", 0))
}

func TestParseUintID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in     string
		want   uint
		wantOK bool
	}{
		{"42", 42, true},
		{"0", 0, false},
		{"-1", 0, false},
		{"abc", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseUintID(tt.in)
		assert.Equal(t, tt.want, got, tt.in)
		assert.Equal(t, tt.wantOK, ok, tt.in)
	}
}

func TestCalculate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		page, size    int
		offset, limit int
	}{
		{1, 10, 0, 10},
		{3, 20, 40, 20},
		{0, 0, 0, DefaultPageSize},
		{-2, 500, 0, MaxPageSize},
		{2, 500, MaxPageSize, MaxPageSize},
		{2, MaxPageSize, MaxPageSize, MaxPageSize},
	}
	for _, tt := range tests {
		off, lim := Calculate(tt.page, tt.size)
		assert.Equal(t, tt.offset, off)
		assert.Equal(t, tt.limit, lim)
	}
}
