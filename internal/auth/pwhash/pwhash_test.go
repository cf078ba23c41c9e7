package pwhash

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndValidate(t *testing.T) {
	ph, err := New(16, 1000)
	require.NoError(t, err)

	hash, err := ph.HashPassword("hunter2")
	require.NoError(t, err)
	assert.True(t, strings.Contains(hash, "$"))

	assert.NoError(t, ph.Validate("hunter2", hash))
	assert.Error(t, ph.Validate("hunter3", hash))
	assert.Error(t, ph.Validate("hunter2", "nodollar"))
}

func TestHashIsSalted(t *testing.T) {
	ph, err := New(16, 1000)
	require.NoError(t, err)

	h1, err := ph.HashPassword("hunter2")
	require.NoError(t, err)
	h2, err := ph.HashPassword("hunter2")
	require.NoError(t, err)
	assert.NotEqual(t, h1, h2)
}

func TestNewValidation(t *testing.T) {
	_, err := New(0, 1000)
	assert.Error(t, err)
	_, err = New(16, 0)
	assert.Error(t, err)
}
