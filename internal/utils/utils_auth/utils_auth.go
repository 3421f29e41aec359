package utils_auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/argon2"
)

const (
	ARGON2_TIME       = uint32(1)
	ARGON2_MEMORY     = uint32(64 * 1024)
	ARGON2_THREADS    = uint8(2)
	ARGON2_KEYLENGTH  = uint32(32)
	ARGON2_SALTLENGTH = uint32(16)
)

// ErrInvalidToken covers every verification failure: bad signature,
// malformed structure and expiry all collapse into one outcome.
var ErrInvalidToken = errors.New("invalid token")

// TokenUser is the identity embedded in a session token.
type TokenUser struct {
	ID uuid.UUID `json:"id"`
}

type Claims struct {
	User TokenUser `json:"user"`
	jwt.RegisteredClaims
}

// formatHash takes a salt and Argon2 hash of a password in bytes and
// returns a string carrying the cost parameters used to generate the hash
// along with the base64-encoded salt and hash, for storage.
func formatHash(salt []byte, hashedPassword []byte) string {
	encodedSalt := base64.RawStdEncoding.EncodeToString(salt)
	encodedHashedPassword := base64.RawStdEncoding.EncodeToString(hashedPassword)

	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		uint32(argon2.Version),
		ARGON2_MEMORY,
		ARGON2_TIME,
		ARGON2_THREADS,
		encodedSalt,
		encodedHashedPassword,
	)
}

// parsePasswordHashStdForm takes the standard string representation of a
// hashed password and returns the memory, time and parallelism parameters
// used to generate it, plus the base64-encoded salt and hash.
func parsePasswordHashStdForm(passwordHash *string) (
	uint32, uint32, uint8, string, string, error) {
	pattern := fmt.Sprintf(
		"^\\$argon2id\\$v=%d\\$m=(\\d+),t=(\\d+),p=(\\d+)\\$([A-Za-z0-9+/=]+)\\$([A-Za-z0-9+/=]+)$",
		uint32(argon2.Version))
	regex := regexp.MustCompile(pattern)
	matches := regex.FindStringSubmatch(*passwordHash)

	if matches == nil {
		return 0, 0, 0, "", "", errors.New("invalid argon2 hash format")
	}

	arg2Mem, _ := strconv.ParseUint(matches[1], 10, 32)
	arg2Time, _ := strconv.ParseUint(matches[2], 10, 32)
	arg2Threads, _ := strconv.ParseUint(matches[3], 10, 32)

	return uint32(arg2Mem), uint32(arg2Time), uint8(arg2Threads), matches[4], matches[5], nil
}

func generateArgon2Salt() ([]byte, error) {
	salt := make([]byte, ARGON2_SALTLENGTH)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("error generating salt: %w", err)
	}

	return salt, nil
}

func generateArgon2Hash(payload []byte, salt []byte) []byte {
	return argon2.IDKey(payload, salt, ARGON2_TIME, ARGON2_MEMORY, ARGON2_THREADS, ARGON2_KEYLENGTH)
}

// GenerateArgon2Hash takes a plaintext payload and returns its Argon2 hash
// along with a fresh random salt, as a string in the standard format. The
// plaintext itself is never stored.
func GenerateArgon2Hash(payload string) (string, error) {
	salt, err := generateArgon2Salt()
	if err != nil {
		return "", err
	}
	hash := generateArgon2Hash([]byte(payload), salt)
	return formatHash(salt, hash), nil
}

// VerifyArgon2Hash checks whether the hash of payload matches storedHash.
// storedHash must be in the standard representation produced by
// GenerateArgon2Hash.
func VerifyArgon2Hash(payload string, storedHash string) bool {
	arg2Mem, arg2Time, arg2Threads, salt, expectedHash, err := parsePasswordHashStdForm(&storedHash)
	if err != nil {
		return false
	}

	decodedSalt, err := base64.RawStdEncoding.DecodeString(salt)
	if err != nil {
		return false
	}

	decodedExpected, err := base64.RawStdEncoding.DecodeString(expectedHash)
	if err != nil {
		return false
	}

	computed := argon2.IDKey([]byte(payload), decodedSalt, arg2Time, arg2Mem, arg2Threads, ARGON2_KEYLENGTH)
	return subtle.ConstantTimeCompare(computed, decodedExpected) == 1
}

// IssueToken signs a session token embedding the user identity with an
// absolute expiry. Stateless: nothing is persisted.
func IssueToken(userID uuid.UUID, secret []byte, ttl time.Duration) (string, error) {
	claims := Claims{
		User: TokenUser{ID: userID},
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().UTC().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now().UTC()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// VerifyToken validates signature and expiry and returns the embedded user
// id. Every failure mode maps to ErrInvalidToken.
func VerifyToken(tokenString string, secret []byte) (uuid.UUID, error) {
	parsedToken, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	})
	if err != nil || !parsedToken.Valid {
		return uuid.Nil, ErrInvalidToken
	}

	claims, ok := parsedToken.Claims.(*Claims)
	if !ok || claims.User.ID == uuid.Nil {
		return uuid.Nil, ErrInvalidToken
	}

	return claims.User.ID, nil
}
