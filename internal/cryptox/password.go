// Package cryptox holds the password hashing used by the user directory.
//
// Passwords are never stored as given: a random salt is drawn, an Argon2id
// key is derived from (password, salt) and only a SHA-256 verifier of that
// key is kept. The encoded form is
//
//	argon2id$<hex salt>$<hex verifier>
package cryptox

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"strings"

	"github.com/dmitrijs2005/gastroglobe/internal/common"
	"golang.org/x/crypto/argon2"
)

const (
	scheme   = "argon2id"
	saltSize = 16
)

// MakeVerifier returns the SHA-256 digest of a derived key.
func MakeVerifier(key []byte) []byte {
	hash := sha256.Sum256(key)
	return hash[:]
}

// DeriveKey stretches password with salt using Argon2id.
func DeriveKey(password []byte, salt []byte) []byte {
	return argon2.IDKey(password, salt, 1, 64*1024, 4, 32)
}

// HashPassword returns the encoded salted hash of password.
func HashPassword(password []byte) string {
	salt := common.GenerateRandByteArray(saltSize)
	key := DeriveKey(password, salt)
	defer common.WipeByteArray(key)
	return encode(salt, MakeVerifier(key))
}

// VerifyPassword reports whether password matches an encoded hash produced by
// HashPassword. Malformed hashes never match.
func VerifyPassword(encoded string, password []byte) bool {
	salt, verifier, ok := decode(encoded)
	if !ok {
		return false
	}
	key := DeriveKey(password, salt)
	defer common.WipeByteArray(key)
	candidate := MakeVerifier(key)
	return subtle.ConstantTimeCompare(verifier, candidate) == 1
}

func encode(salt, verifier []byte) string {
	return scheme + "$" + hex.EncodeToString(salt) + "$" + hex.EncodeToString(verifier)
}

func decode(encoded string) (salt, verifier []byte, ok bool) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 3 || parts[0] != scheme {
		return nil, nil, false
	}
	salt, err := hex.DecodeString(parts[1])
	if err != nil || len(salt) == 0 {
		return nil, nil, false
	}
	verifier, err = hex.DecodeString(parts[2])
	if err != nil || len(verifier) != sha256.Size {
		return nil, nil, false
	}
	return salt, verifier, true
}
