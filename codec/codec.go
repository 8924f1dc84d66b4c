// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package codec

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

var (
	ErrEmptyKey = errors.New("codec key must not be empty")
	ErrDecode   = errors.New("cannot decode ciphertext")
)

const (
	saltLen   = 16
	nonceLen  = 12
	keyLen    = 32 // AES-256
	pbkdfIter = 100_000
)

// Codec derives identity tokens and encrypts names with a process-wide
// secret key. Lookup tokens are deterministic and one-way; encoded names
// are randomized per call, so only the token is searchable.
type Codec struct {
	key []byte
}

func New(key string) (*Codec, error) {
	if key == "" {
		return nil, ErrEmptyKey
	}
	return &Codec{key: []byte(key)}, nil
}

// LookupToken derives a deterministic, non-reversible token for a name.
// Stable across calls and process restarts given the same key.
func (c *Codec) LookupToken(name string) string {
	h := hmac.New(sha256.New, c.key)
	h.Write([]byte(name))
	sum := h.Sum(nil)
	// Use URL-safe base64 and trim padding for cleaner tokens
	return strings.TrimRight(base64.URLEncoding.EncodeToString(sum), "=")
}

// Encode encrypts a name with AES-256-GCM under a key derived from the
// codec secret and a fresh random salt. Two calls with the same name
// produce different ciphertexts, so the stored form cannot be used for
// equality search.
func (c *Codec) Encode(name string) (string, error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	gcm, err := c.aead(salt)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, nonceLen)
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}

	sealed := gcm.Seal(nil, nonce, []byte(name), nil)

	// salt | nonce | ciphertext
	combined := make([]byte, 0, saltLen+nonceLen+len(sealed))
	combined = append(combined, salt...)
	combined = append(combined, nonce...)
	combined = append(combined, sealed...)

	return base64.StdEncoding.EncodeToString(combined), nil
}

// Decode reverses Encode. Returns ErrDecode if the ciphertext was
// corrupted, truncated, or produced under a different key.
func (c *Codec) Decode(ciphertext string) (string, error) {
	combined, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", fmt.Errorf("%w: invalid base64", ErrDecode)
	}
	if len(combined) < saltLen+nonceLen {
		return "", fmt.Errorf("%w: ciphertext too short", ErrDecode)
	}

	salt := combined[:saltLen]
	nonce := combined[saltLen : saltLen+nonceLen]
	sealed := combined[saltLen+nonceLen:]

	gcm, err := c.aead(salt)
	if err != nil {
		return "", err
	}

	plain, err := gcm.Open(nil, nonce, sealed, nil)
	if err != nil {
		return "", fmt.Errorf("%w: authentication failed", ErrDecode)
	}

	return string(plain), nil
}

// HashIP creates a one-way hash of an IP address for privacy.
// Keyed to prevent rainbow table attacks.
func (c *Codec) HashIP(ip string) string {
	h := hmac.New(sha256.New, c.key)
	h.Write([]byte(ip))
	sum := h.Sum(nil)
	// First 16 hex chars (64 bits) - enough for deduplication
	return hex.EncodeToString(sum[:8])
}

func (c *Codec) aead(salt []byte) (cipher.AEAD, error) {
	derived := pbkdf2.Key(c.key, salt, pbkdfIter, keyLen, sha256.New)
	block, err := aes.NewCipher(derived)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}
	return gcm, nil
}
