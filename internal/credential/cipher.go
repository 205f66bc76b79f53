package credential

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"github.com/fernet/fernet-go"
)

// Tokens never expire; a negative TTL disables the timestamp check.
const noExpiry time.Duration = -1

var errTokenRejected = errors.New("token rejected")

// Decrypt verifies and decrypts a Fernet token with key. Surrounding
// whitespace in key is ignored so that key files ending in a newline work.
func Decrypt(token, key []byte) ([]byte, error) {
	k, err := fernet.DecodeKey(string(bytes.TrimSpace(key)))
	if err != nil {
		return nil, &DecryptionError{Err: fmt.Errorf("invalid key: %w", err)}
	}

	msg := fernet.VerifyAndDecrypt(bytes.TrimSpace(token), noExpiry, []*fernet.Key{k})
	if msg == nil {
		return nil, &DecryptionError{Err: errTokenRejected}
	}
	return msg, nil
}

// Encrypt wraps plaintext in a Fernet token signed with key
func Encrypt(plaintext, key []byte) ([]byte, error) {
	k, err := fernet.DecodeKey(string(bytes.TrimSpace(key)))
	if err != nil {
		return nil, fmt.Errorf("invalid key: %w", err)
	}

	token, err := fernet.EncryptAndSign(plaintext, k)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt: %w", err)
	}
	return token, nil
}

// GenerateKey returns a random key in the encoded form Decrypt accepts
func GenerateKey() ([]byte, error) {
	var k fernet.Key
	if err := k.Generate(); err != nil {
		return nil, fmt.Errorf("failed to generate key: %w", err)
	}
	return []byte(k.Encode()), nil
}
