package utils_auth

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateArgon2Hash_NeverStoresPlaintext(t *testing.T) {
	t.Parallel()

	hash, err := GenerateArgon2Hash("secret123")
	require.NoError(t, err)

	assert.NotContains(t, hash, "secret123")
	assert.True(t, strings.HasPrefix(hash, "$argon2id$"))
}

func TestVerifyArgon2Hash_RoundTrip(t *testing.T) {
	t.Parallel()

	hash, err := GenerateArgon2Hash("secret123")
	require.NoError(t, err)

	assert.True(t, VerifyArgon2Hash("secret123", hash))
	assert.False(t, VerifyArgon2Hash("wrong", hash))
}

func TestVerifyArgon2Hash_DistinctSalts(t *testing.T) {
	t.Parallel()

	first, err := GenerateArgon2Hash("secret123")
	require.NoError(t, err)
	second, err := GenerateArgon2Hash("secret123")
	require.NoError(t, err)

	// Fresh salt per hash; both still verify.
	assert.NotEqual(t, first, second)
	assert.True(t, VerifyArgon2Hash("secret123", first))
	assert.True(t, VerifyArgon2Hash("secret123", second))
}

func TestVerifyArgon2Hash_MalformedStoredHash(t *testing.T) {
	t.Parallel()

	assert.False(t, VerifyArgon2Hash("secret123", "not-a-phc-string"))
	assert.False(t, VerifyArgon2Hash("secret123", ""))
}

func TestIssueAndVerifyToken(t *testing.T) {
	t.Parallel()

	secret := []byte("super-secret")
	userID := uuid.New()

	token, err := IssueToken(userID, secret, time.Hour)
	require.NoError(t, err)

	gotID, err := VerifyToken(token, secret)
	require.NoError(t, err)
	assert.Equal(t, userID, gotID)
}

func TestVerifyToken_Expired(t *testing.T) {
	t.Parallel()

	secret := []byte("super-secret")

	token, err := IssueToken(uuid.New(), secret, -1*time.Second)
	require.NoError(t, err)

	_, err = VerifyToken(token, secret)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyToken_WrongSecret(t *testing.T) {
	t.Parallel()

	token, err := IssueToken(uuid.New(), []byte("right-secret"), time.Hour)
	require.NoError(t, err)

	_, err = VerifyToken(token, []byte("wrong-secret"))
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyToken_TamperedSignature(t *testing.T) {
	t.Parallel()

	secret := []byte("super-secret")
	token, err := IssueToken(uuid.New(), secret, time.Hour)
	require.NoError(t, err)

	// Flip one byte of the signature segment.
	last := token[len(token)-1]
	flipped := byte('A')
	if last == flipped {
		flipped = 'B'
	}
	tampered := token[:len(token)-1] + string(flipped)

	_, err = VerifyToken(tampered, secret)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyToken_Malformed(t *testing.T) {
	t.Parallel()

	_, err := VerifyToken("not.a.jwt", []byte("k"))
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = VerifyToken("", []byte("k"))
	assert.ErrorIs(t, err, ErrInvalidToken)
}
