package credential

import (
	"crypto/sha256"
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/pbkdf2"
)

func TestDeriveKeyIsDeterministic(t *testing.T) {
	a := DeriveKey("W@t3r@ccounting", "WaterAccounting_", 1000, 32)
	b := DeriveKey("W@t3r@ccounting", "WaterAccounting_", 1000, 32)
	assert.Equal(t, a, b)

	raw := pbkdf2.Key([]byte("W@t3r@ccounting"), []byte("WaterAccounting_"), 1000, 32, sha256.New)
	assert.Equal(t, base64.URLEncoding.EncodeToString(raw), string(a))
	assert.Len(t, a, 44)
}

func TestDeriveKeyInputsMatter(t *testing.T) {
	base := DeriveKey("pw", "salt", 1000, 32)

	tests := []struct {
		name string
		key  []byte
	}{
		{name: "password", key: DeriveKey("pw2", "salt", 1000, 32)},
		{name: "salt", key: DeriveKey("pw", "salt2", 1000, 32)},
		{name: "iterations", key: DeriveKey("pw", "salt", 1001, 32)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotEqual(t, base, tt.key)
		})
	}
}

func TestDefaultKeyParams(t *testing.T) {
	p := DefaultKeyParams()
	assert.Equal(t, DefaultPassword, p.Password)
	assert.Equal(t, "WaterAccounting_", p.Salt)
	assert.Equal(t, 100000, p.Iterations)
	assert.Equal(t, 32, p.Length)
	assert.Equal(t, p.Derive(), DefaultKey())
}

func TestDerivedKeyDecryptsItsOwnTokens(t *testing.T) {
	key := DeriveKey("pw", "salt", 1000, 32)

	token, err := Encrypt([]byte("accounts: {}\n"), key)
	require.NoError(t, err)

	plain, err := Decrypt(token, key)
	require.NoError(t, err)
	assert.Equal(t, "accounts: {}\n", string(plain))
}

func TestLoadKey(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, KeyFile)

	_, err := LoadKey(path)
	require.ErrorIs(t, err, ErrMissingFile)

	content := []byte("anything at all\n")
	require.NoError(t, os.WriteFile(path, content, 0600))

	key, err := LoadKey(path)
	require.NoError(t, err)
	assert.Equal(t, content, key, "key file content is returned verbatim")
}

func TestDecrypt(t *testing.T) {
	key := newKey(t)
	token, err := Encrypt([]byte("hello"), key)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token []byte
		key   []byte
	}{
		{name: "wrong key", token: token, key: newKey(t)},
		{name: "malformed key", token: token, key: []byte("short")},
		{name: "empty key", token: token, key: nil},
		{name: "garbage token", token: []byte("gAAAAA-not-a-token"), key: key},
		{name: "empty token", token: nil, key: key},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plain, err := Decrypt(tt.token, tt.key)
			assert.Nil(t, plain)
			require.ErrorIs(t, err, ErrInvalidKeyOrTamperedData)
			assert.Equal(t, InvalidKeyOrTamperedData, KindOf(err))
		})
	}

	plain, err := Decrypt(token, key)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(plain))
}

func TestEncryptRejectsBadKey(t *testing.T) {
	_, err := Encrypt([]byte("x"), []byte("nope"))
	assert.Error(t, err)
}
