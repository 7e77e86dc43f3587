package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		title    string
		expected string
	}{
		{"Line Balancing 101", "line-balancing-101"},
		{"  Leading & trailing!  ", "leading-trailing"},
		{"ALL CAPS", "all-caps"},
		{"multiple---separators___here", "multiple-separators-here"},
		{"already-a-slug", "already-a-slug"},
		{"!!!", ""},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, Slugify(tt.title), "Slugify(%q)", tt.title)
	}
}
