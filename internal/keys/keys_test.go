package keys

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	pair, err := Generate()
	require.NoError(t, err)

	assert.Equal(t, ModulusBits, pair.Public().N.BitLen())
	assert.NotEmpty(t, pair.KeyID())
	assert.Equal(t, pair.Public(), &pair.Private().PublicKey)
}

func TestGenerateDistinctPairs(t *testing.T) {
	a, err := Generate()
	require.NoError(t, err)
	b, err := Generate()
	require.NoError(t, err)

	assert.NotEqual(t, a.KeyID(), b.KeyID())
	assert.NotEqual(t, a.Public().N, b.Public().N)
}

func TestJWKSExposesPublicHalfOnly(t *testing.T) {
	pair, err := Generate()
	require.NoError(t, err)

	set := pair.JWKS()
	require.Len(t, set.Keys, 1)

	key := set.Keys[0]
	assert.Equal(t, pair.KeyID(), key.KeyID)
	assert.Equal(t, "RS256", key.Algorithm)
	assert.Equal(t, "sig", key.Use)
	assert.True(t, key.IsPublic())

	raw, err := json.Marshal(set)
	require.NoError(t, err)

	// The private exponent must never appear in the serialized set.
	var decoded struct {
		Keys []map[string]any `json:"keys"`
	}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	require.Len(t, decoded.Keys, 1)
	assert.NotContains(t, decoded.Keys[0], "d")
	assert.Contains(t, decoded.Keys[0], "n")
	assert.Contains(t, decoded.Keys[0], "e")
}
