package credential

import (
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"os"

	"golang.org/x/crypto/pbkdf2"
)

// KeyParams are the PBKDF2 inputs for deriving a workspace key
type KeyParams struct {
	Password   string
	Salt       string
	Iterations int
	Length     int
}

// DefaultKeyParams returns the derivation parameters used by the toolkit
func DefaultKeyParams() KeyParams {
	return KeyParams{
		Password:   DefaultPassword,
		Salt:       DefaultSalt,
		Iterations: DefaultIterations,
		Length:     DefaultKeyLength,
	}
}

// Derive runs DeriveKey with p
func (p KeyParams) Derive() []byte {
	return DeriveKey(p.Password, p.Salt, p.Iterations, p.Length)
}

// DeriveKey stretches password into a key with PBKDF2-HMAC-SHA256 and
// returns it URL-safe base64 encoded, the form Decrypt expects. The result
// depends only on its arguments.
func DeriveKey(password, salt string, iterations, length int) []byte {
	raw := pbkdf2.Key([]byte(password), []byte(salt), iterations, length, sha256.New)
	out := make([]byte, base64.URLEncoding.EncodedLen(len(raw)))
	base64.URLEncoding.Encode(out, raw)
	return out
}

// DefaultKey derives the key for the default password
func DefaultKey() []byte {
	return DefaultKeyParams().Derive()
}

// LoadKey reads the key file verbatim. The content is not validated here;
// a bad key surfaces as a DecryptionError.
func LoadKey(path string) ([]byte, error) {
	if !fileExists(path) {
		return nil, &ConfigurationError{Kind: MissingFile, Path: path}
	}
	key, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read key file: %w", err)
	}
	return key, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
