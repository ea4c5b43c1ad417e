package util

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
)

var ErrSealedTooShort = errors.New("sealed value too short")

// Sealer encrypts short secrets such as bark device keys before they are stored.
// The sealed form is hex(nonce | AES-GCM ciphertext). A Sealer built without a key stores values as they are.
type Sealer struct {
	aead cipher.AEAD
}

func NewSealer(key []byte) (*Sealer, error) {
	if len(key) == 0 {
		return &Sealer{}, nil
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("AES 키 생성 시 오류 발생. %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("GCM 생성 시 오류 발생. %w", err)
	}
	return &Sealer{aead: aead}, nil
}

func (s *Sealer) Enabled() bool {
	return s != nil && s.aead != nil
}

// Seal leaves an empty value empty so that "no key" survives a round trip.
func (s *Sealer) Seal(plain string) (string, error) {
	if !s.Enabled() || plain == "" {
		return plain, nil
	}

	nonce := make([]byte, s.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}
	return hex.EncodeToString(s.aead.Seal(nonce, nonce, []byte(plain), nil)), nil
}

func (s *Sealer) Open(sealed string) (string, error) {
	if !s.Enabled() || sealed == "" {
		return sealed, nil
	}

	b, err := hex.DecodeString(sealed)
	if err != nil {
		return "", fmt.Errorf("hex 디코딩 시 오류 발생. %w", err)
	}
	n := s.aead.NonceSize()
	if len(b) < n+s.aead.Overhead() {
		return "", ErrSealedTooShort
	}

	plain, err := s.aead.Open(nil, b[:n], b[n:], nil)
	if err != nil {
		return "", fmt.Errorf("복호화 시 오류 발생. %w", err)
	}
	return string(plain), nil
}
