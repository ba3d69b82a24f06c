package idgen

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	a, b := New(RequestPrefix), New(RequestPrefix)
	assert.NotEqual(t, a, b)
	require.True(t, strings.HasPrefix(a, RequestPrefix))

	_, err := uuid.Parse(strings.TrimPrefix(a, RequestPrefix))
	assert.NoError(t, err)
}
