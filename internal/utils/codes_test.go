package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNumericCode(t *testing.T) {
	for i := 0; i < 200; i++ {
		code, err := NewNumericCode(6)
		require.NoError(t, err)
		require.Len(t, code, 6)
		for _, r := range code {
			assert.True(t, r >= '0' && r <= '9', "unexpected rune %q in %q", r, code)
		}
	}
}

func TestNewNumericCode_DefaultLength(t *testing.T) {
	code, err := NewNumericCode(0)
	require.NoError(t, err)
	assert.Len(t, code, 6)
}
