// Package cryptox seals small secrets at rest: argon2id key derivation and
// AES-256-GCM authenticated encryption.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"

	"golang.org/x/crypto/argon2"
)

const (
	// KeySize is the length of keys returned by DeriveKey (AES-256).
	KeySize = 32
	// SaltSize is the recommended salt length for DeriveKey.
	SaltSize = 16

	nonceSize = 12
)

// ErrMalformed is returned by Open when the input is too short to contain
// a nonce, and ErrDecrypt when authentication fails.
var (
	ErrMalformed = errors.New("malformed sealed value")
	ErrDecrypt   = errors.New("decryption failed")
)

// DeriveKey stretches secret with salt into a KeySize key using argon2id.
func DeriveKey(secret, salt []byte) []byte {
	return argon2.IDKey(secret, salt, 1, 64*1024, 4, KeySize)
}

// RandomBytes returns n bytes from crypto/rand.
func RandomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return nil, err
	}
	return b, nil
}

// Seal encrypts plaintext with AES-GCM under key. The result is the random
// 12-byte nonce followed by the ciphertext and tag.
func Seal(plaintext, key []byte) ([]byte, error) {
	aead, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	nonce, err := RandomBytes(nonceSize)
	if err != nil {
		return nil, err
	}

	return aead.Seal(nonce, nonce, plaintext, nil), nil
}

// Open reverses Seal.
func Open(sealed, key []byte) ([]byte, error) {
	aead, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	if len(sealed) < nonceSize {
		return nil, ErrMalformed
	}

	plaintext, err := aead.Open(nil, sealed[:nonceSize], sealed[nonceSize:], nil)
	if err != nil {
		return nil, ErrDecrypt
	}
	return plaintext, nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
