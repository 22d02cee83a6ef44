package check

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromBool(t *testing.T) {
	assert.Equal(t, Pass, FromBool(true))
	assert.Equal(t, Fail, FromBool(false))
	assert.True(t, Pass.Passed())
	assert.False(t, Fail.Passed())
}

func TestIsNotFound(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"not found", true},
		{"Not Found", true},
		{"2026-01-01", false},
		{"unknown", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, IsNotFound(tt.input))
		})
	}
}
