package accounts

import (
	"crypto/subtle"
	"strconv"
	"unicode/utf16"

	"golang.org/x/crypto/bcrypt"
)

// Hasher derives and verifies stored password hashes.
type Hasher interface {
	Hash(password string) (string, error)
	Verify(storedHash, password string) bool
}

// LegacyHasher reproduces the historical 32-bit rolling hash so that
// accounts hashed by earlier deployments keep working. The arithmetic is
// h = h*31 + codeunit over UTF-16 code units, wrapping in signed 32-bit
// space, stringified as the final signed value.
//
// This is NOT a password hash in any meaningful sense: it is cheap to
// invert by search and collides easily. Use it only when compatibility
// with previously stored credentials is required; new deployments get
// BcryptHasher by default.
type LegacyHasher struct{}

func (LegacyHasher) Hash(password string) (string, error) {
	var h int32
	for _, u := range utf16.Encode([]rune(password)) {
		h = h*31 + int32(u)
	}
	return strconv.FormatInt(int64(h), 10), nil
}

func (lh LegacyHasher) Verify(storedHash, password string) bool {
	h, _ := lh.Hash(password)
	return subtle.ConstantTimeCompare([]byte(h), []byte(storedHash)) == 1
}

// BcryptHasher is the default hasher for new deployments. Stored values
// are standard bcrypt strings and are not interchangeable with legacy
// hashes.
type BcryptHasher struct{}

func (BcryptHasher) Hash(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (BcryptHasher) Verify(storedHash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(password)) == nil
}
