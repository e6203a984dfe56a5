package api

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

const sealedCookieVersion = "v1"

var errInvalidSealedCookie = errors.New("invalid sealed cookie")

// cookieSealer encrypts cookie values with AES-GCM so the signed session token
// is not readable from the browser. The cookie name is bound as associated data.
type cookieSealer struct {
	aead cipher.AEAD
}

func newCookieSealer(secretKey []byte) (*cookieSealer, error) {
	if len(secretKey) == 0 {
		return nil, errors.New("cookie sealer secret key is required")
	}

	key := sha256.Sum256(append([]byte("mahwari.cookie-sealer."+sealedCookieVersion+"."), secretKey...))
	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, fmt.Errorf("init cookie cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("init cookie aead: %w", err)
	}
	return &cookieSealer{aead: aead}, nil
}

func (sealer *cookieSealer) seal(cookieName string, value string) (string, error) {
	nonce := make([]byte, sealer.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("generate cookie nonce: %w", err)
	}

	sealed := sealer.aead.Seal(nonce, nonce, []byte(value), []byte(cookieName))
	return sealedCookieVersion + "." + base64.RawURLEncoding.EncodeToString(sealed), nil
}

func (sealer *cookieSealer) open(cookieName string, raw string) (string, error) {
	version, encoded, found := strings.Cut(strings.TrimSpace(raw), ".")
	if !found || version != sealedCookieVersion || encoded == "" {
		return "", errInvalidSealedCookie
	}

	payload, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return "", errInvalidSealedCookie
	}
	nonceSize := sealer.aead.NonceSize()
	if len(payload) <= nonceSize {
		return "", errInvalidSealedCookie
	}

	plaintext, err := sealer.aead.Open(nil, payload[:nonceSize], payload[nonceSize:], []byte(cookieName))
	if err != nil {
		return "", errInvalidSealedCookie
	}
	return string(plaintext), nil
}
