package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToInt(t *testing.T) {
	tests := []struct {
		in   any
		want int
	}{
		{34, 34},
		{int64(7), 7},
		{uint8(3), 3},
		{29.9, 29},
		{"33", 33},
		{[]byte("12"), 12},
		{"abc", 0},
		{nil, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ToInt(tt.in), "%v", tt.in)
	}
}

func TestToBool(t *testing.T) {
	tests := []struct {
		in   any
		want bool
	}{
		{true, true},
		{false, false},
		{1, true},
		{0, false},
		{1.0, true},
		{"1", true},
		{" TRUE ", true},
		{"yes", false},
		{[]byte("true"), true},
		{nil, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ToBool(tt.in), "%v", tt.in)
	}
}
