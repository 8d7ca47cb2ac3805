package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncateForLog(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		limit int
		want  string
	}{
		{name: "non-positive limit", input: "Explain the box model.", limit: 0, want: ""},
		{name: "fits", input: "Explain closures", limit: 40, want: "Explain closures"},
		{name: "cut with ellipsis", input: "Explain the box model.", limit: 11, want: "Explain the..."},
		{name: "multi-line prompt is flattened", input: "  Answers:\n\t1. margin\n2. padding  ", limit: 100, want: "Answers: 1. margin 2. padding"},
		{name: "counts runes", input: "Иван Петров", limit: 4, want: "Иван..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, TruncateForLog(tt.input, tt.limit))
		})
	}
}
