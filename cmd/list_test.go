package cmd

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTruncateString(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		maxLen int
		want   string
	}{
		{"short ascii", "roads", 10, "roads"},
		{"long ascii", "motorway-labels", 10, "motorwa..."},
		{"multibyte fits", "straße", 6, "straße"},
		{"multibyte cut", "道路ラベル主要幹線", 6, "道路ラ..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncateString(tt.in, tt.maxLen)
			assert.Equal(t, tt.want, got)
			assert.True(t, utf8.ValidString(got))
		})
	}
}
