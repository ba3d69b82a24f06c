package browser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOpenRejectsOtherSchemes(t *testing.T) {
	tests := []string{
		"file:///etc/passwd",
		"javascript:alert(1)",
		"nodejs.org",
	}
	for _, in := range tests {
		t.Run(in, func(t *testing.T) {
			assert.ErrorIs(t, Open(in), ErrUnsupportedScheme)
		})
	}
}
