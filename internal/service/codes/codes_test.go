package codes

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	var generator InviteCode

	for range 100 {
		code, err := generator.Generate()
		require.NoError(t, err)

		require.True(t, strings.HasPrefix(code, Prefix), "code %q must start with %q", code, Prefix)

		random := strings.TrimPrefix(code, Prefix)
		assert.Len(t, random, randomPartLength)
		for _, r := range random {
			assert.Contains(t, alphabet, string(r))
		}
	}
}

func TestGenerate_NotConstant(t *testing.T) {
	var generator InviteCode

	seen := make(map[string]struct{}, 10)
	for range 10 {
		code, err := generator.Generate()
		require.NoError(t, err)
		seen[code] = struct{}{}
	}
	// 36^6 вариантов, 10 одинаковых подряд - почти наверняка сломанный генератор.
	assert.Greater(t, len(seen), 1)
}
