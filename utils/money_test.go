package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPercentOf(t *testing.T) {
	tests := []struct {
		name   string
		amount int64
		pct    int
		want   int64
	}{
		{"ten percent of 250 dollars", 25000, 10, 2500},
		{"rounds half up", 25005, 10, 2501},
		{"rounds down below half", 25004, 10, 2500},
		{"sub-cent fee rounds to zero", 4, 10, 0},
		{"half cent rounds up to one", 5, 10, 1},
		{"zero amount", 0, 10, 0},
		{"full percent", 1234, 100, 1234},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PercentOf(tt.amount, tt.pct))
		})
	}
}
