package service

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/pbkdf2"
)

func pbkdf2Hash(password, salt string, iterations int) string {
	digest := pbkdf2.Key([]byte(password), []byte(salt), iterations, sha256.Size, sha256.New)
	return fmt.Sprintf("pbkdf2:sha256:%d$%s$%s", iterations, salt, hex.EncodeToString(digest))
}

func TestVerifyPasswordBcrypt(t *testing.T) {
	hash, err := HashPassword("secret123")
	require.NoError(t, err)

	assert.NoError(t, VerifyPassword(hash, "secret123"))
	assert.ErrorIs(t, VerifyPassword(hash, "wrong"), ErrPasswordMismatch)
}

func TestVerifyPasswordPbkdf2Legacy(t *testing.T) {
	hash := pbkdf2Hash("secret123", "abcdefgh", 260000)

	assert.NoError(t, VerifyPassword(hash, "secret123"))
	assert.ErrorIs(t, VerifyPassword(hash, "wrong"), ErrPasswordMismatch)
}

func TestVerifyPasswordUnknownScheme(t *testing.T) {
	assert.ErrorIs(t, VerifyPassword("md5$whatever", "x"), ErrUnknownHashScheme)
	assert.ErrorIs(t, VerifyPassword("", "x"), ErrUnknownHashScheme)
	assert.ErrorIs(t, VerifyPassword("pbkdf2:sha1:1000$s$aa", "x"), ErrUnknownHashScheme)
	assert.ErrorIs(t, VerifyPassword("pbkdf2:sha256:notanumber$s$aa", "x"), ErrUnknownHashScheme)
}

func TestHashPasswordProducesBcrypt(t *testing.T) {
	hash, err := HashPassword("secret123")
	require.NoError(t, err)
	assert.Contains(t, []string{"$2a$", "$2b$", "$2y$"}, hash[:4])
}
