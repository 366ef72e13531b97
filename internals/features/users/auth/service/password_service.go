package service

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/crypto/pbkdf2"
)

/* ==========================
   Password verification
========================== */

// Staff password hashes exist in two formats: bcrypt ("$2a$"/"$2b$"/"$2y$")
// and the legacy pbkdf2 form "pbkdf2:sha256:<iter>$<salt>$<hexdigest>"
// written by the previous system. The verifier is picked from the stored
// hash's format tag, never by probing, so a broken hash surfaces as
// ErrUnknownHashScheme instead of a silent mismatch.

var (
	ErrPasswordMismatch  = errors.New("password does not match")
	ErrUnknownHashScheme = errors.New("unknown password hash scheme")
)

type passwordVerifier interface {
	verify(storedHash, password string) error
}

type bcryptVerifier struct{}

func (bcryptVerifier) verify(storedHash, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrPasswordMismatch
		}
		return err
	}
	return nil
}

type pbkdf2Verifier struct{}

func (pbkdf2Verifier) verify(storedHash, password string) error {
	// pbkdf2:sha256:<iterations>$<salt>$<hexdigest>
	head, rest, ok := strings.Cut(storedHash, "$")
	if !ok {
		return fmt.Errorf("%w: malformed pbkdf2 hash", ErrUnknownHashScheme)
	}
	salt, digest, ok := strings.Cut(rest, "$")
	if !ok {
		return fmt.Errorf("%w: malformed pbkdf2 hash", ErrUnknownHashScheme)
	}

	parts := strings.Split(head, ":")
	if len(parts) != 3 || parts[0] != "pbkdf2" || parts[1] != "sha256" {
		return fmt.Errorf("%w: unsupported pbkdf2 variant %q", ErrUnknownHashScheme, head)
	}
	iterations, err := strconv.Atoi(parts[2])
	if err != nil || iterations <= 0 {
		return fmt.Errorf("%w: bad iteration count in %q", ErrUnknownHashScheme, head)
	}

	want, err := hex.DecodeString(digest)
	if err != nil {
		return fmt.Errorf("%w: bad digest encoding", ErrUnknownHashScheme)
	}
	got := pbkdf2.Key([]byte(password), []byte(salt), iterations, len(want), sha256.New)
	if subtle.ConstantTimeCompare(got, want) != 1 {
		return ErrPasswordMismatch
	}
	return nil
}

func verifierFor(storedHash string) (passwordVerifier, error) {
	switch {
	case strings.HasPrefix(storedHash, "$2a$"),
		strings.HasPrefix(storedHash, "$2b$"),
		strings.HasPrefix(storedHash, "$2y$"):
		return bcryptVerifier{}, nil
	case strings.HasPrefix(storedHash, "pbkdf2:"):
		return pbkdf2Verifier{}, nil
	default:
		return nil, ErrUnknownHashScheme
	}
}

// VerifyPassword checks a plaintext password against a stored hash of
// either supported scheme.
func VerifyPassword(storedHash, password string) error {
	v, err := verifierFor(storedHash)
	if err != nil {
		return err
	}
	return v.verify(storedHash, password)
}

// HashPassword produces a bcrypt hash. New and rotated passwords always
// use bcrypt; the pbkdf2 path is verify-only for migrated accounts.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
