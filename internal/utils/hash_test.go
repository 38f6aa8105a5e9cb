package utils

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashDocumentStable(t *testing.T) {
	doc := []byte("%PDF-1.4 fake document body")

	a := HashDocument(doc)
	b := HashDocument(doc)
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, HashDocument([]byte("%PDF-1.4 other body")))

	raw, err := base64.URLEncoding.DecodeString(a)
	require.NoError(t, err)
	assert.Len(t, raw, 32)
}

func TestNewSigningToken(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		tok, err := NewSigningToken()
		require.NoError(t, err)
		assert.Len(t, tok, SigningTokenLength)
		assert.False(t, seen[tok], "token collision")
		seen[tok] = true
	}
}

func TestRandomNumericString(t *testing.T) {
	code := RandomNumericString(6)
	assert.Len(t, code, 6)
	for _, r := range code {
		assert.True(t, r >= '0' && r <= '9')
	}
}
