package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var hasher = NewHasher(bcrypt.MinCost)

func Test_Hash_VerifyRoundTrip(t *testing.T) {
	hash, err := hasher.Hash("Passw0rd")
	require.NoError(t, err)
	require.NotEmpty(t, hash)

	assert.True(t, hasher.Verify("Passw0rd", hash))
	assert.False(t, hasher.Verify("Passw0rd!", hash))
	assert.False(t, hasher.Verify("", hash))
}

func Test_Hash_SaltedPerCall(t *testing.T) {
	first, err := hasher.Hash("Passw0rd")
	require.NoError(t, err)
	second, err := hasher.Hash("Passw0rd")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, hasher.Verify("Passw0rd", first))
	assert.True(t, hasher.Verify("Passw0rd", second))
}

func Test_Verify_MalformedHash(t *testing.T) {
	assert.False(t, hasher.Verify("Passw0rd", "not-a-bcrypt-hash"))
	assert.False(t, hasher.Verify("Passw0rd", ""))
}

func Test_NewHasher_CostOutOfRange(t *testing.T) {
	h := NewHasher(0)
	assert.Equal(t, bcrypt.DefaultCost, h.cost)

	h = NewHasher(99)
	assert.Equal(t, bcrypt.DefaultCost, h.cost)
}

func Test_ValidateStrength(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantOK   bool
	}{
		{"valid", "Passw0rd", true},
		{"too short", "Pw0rd", false},
		{"no uppercase", "passw0rd", false},
		{"no lowercase", "PASSW0RD", false},
		{"no digit", "Password", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, reason := ValidateStrength(tt.password)
			assert.Equal(t, tt.wantOK, ok)
			if !tt.wantOK {
				assert.NotEmpty(t, reason)
			} else {
				assert.Empty(t, reason)
			}
		})
	}
}
