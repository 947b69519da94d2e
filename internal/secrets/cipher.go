// Package secrets encrypts provider API keys before they touch the database.
package secrets

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
)

const keySize = 32

var (
	ErrEmptySecret   = errors.New("encryption secret is empty")
	ErrMalformedBlob = errors.New("encrypted blob is malformed")
)

// Cipher is an AES-256-GCM cipher keyed from the application secret.
type Cipher struct {
	aead cipher.AEAD
}

// New derives the cipher key from the configured secret. Secrets shorter than
// 32 bytes are right-padded with '0', longer ones truncated, so rotating to a
// longer passphrase keeps old prefixes decryptable.
func New(secret string) (*Cipher, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}

	key := normalizeKey(secret)
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("init aes cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("init gcm: %w", err)
	}

	return &Cipher{aead: aead}, nil
}

// Encrypt seals the plaintext; the random nonce is prepended to the ciphertext.
func (c *Cipher) Encrypt(plaintext string) ([]byte, error) {
	nonce := make([]byte, c.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}
	return c.aead.Seal(nonce, nonce, []byte(plaintext), nil), nil
}

// Decrypt opens a blob produced by Encrypt.
func (c *Cipher) Decrypt(blob []byte) (string, error) {
	if len(blob) < c.aead.NonceSize() {
		return "", ErrMalformedBlob
	}
	nonce, ciphertext := blob[:c.aead.NonceSize()], blob[c.aead.NonceSize():]
	plaintext, err := c.aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", fmt.Errorf("decrypt blob: %w", err)
	}
	return string(plaintext), nil
}

func normalizeKey(secret string) []byte {
	key := []byte(secret)
	if len(key) > keySize {
		return key[:keySize]
	}
	for len(key) < keySize {
		key = append(key, '0')
	}
	return key
}
