package secrets

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/99designs/keyring"

	"github.com/wateraccounting/wacollect/internal/config"
)

// KeyringStore caches workspace keys in the OS keyring.
type KeyringStore struct {
	ring keyring.Keyring
}

// keyringBackends maps WACOLLECT_KEYRING_BACKEND values to keyring backends
var keyringBackends = map[string]keyring.BackendType{
	"keychain":       keyring.KeychainBackend,
	"secret-service": keyring.SecretServiceBackend,
	"wincred":        keyring.WinCredBackend,
	"kwallet":        keyring.KWalletBackend,
	"pass":           keyring.PassBackend,
	"file":           keyring.FileBackend,
}

func keyringConfig() (keyring.Config, error) {
	cfg := keyring.Config{
		ServiceName:              ServiceName,
		KeychainTrustApplication: true, // macOS: don't prompt every access
		FileDir:                  filepath.Join(config.DataDir(), "keyring"),
		FilePasswordFunc:         keyring.TerminalPrompt,
	}

	if name := strings.TrimSpace(os.Getenv("WACOLLECT_KEYRING_BACKEND")); name != "" {
		backend, ok := keyringBackends[name]
		if !ok {
			return cfg, fmt.Errorf("unknown keyring backend %q", name)
		}
		cfg.AllowedBackends = []keyring.BackendType{backend}
	}
	return cfg, nil
}

// NewKeyringStore opens the OS keyring. WACOLLECT_KEYRING_BACKEND pins a
// single backend; otherwise the platform default is used.
func NewKeyringStore() (*KeyringStore, error) {
	cfg, err := keyringConfig()
	if err != nil {
		return nil, err
	}

	ring, err := keyring.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open keyring: %w", err)
	}

	return &KeyringStore{ring: ring}, nil
}

func (s *KeyringStore) Get(key string) (string, error) {
	item, err := s.ring.Get(key)
	if err != nil {
		if errors.Is(err, keyring.ErrKeyNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("keyring get failed: %w", err)
	}
	return string(item.Data), nil
}

func (s *KeyringStore) Set(key, value string) error {
	item := keyring.Item{
		Key:         key,
		Data:        []byte(value),
		Label:       "wacollect key",
		Description: "Fernet key for config.yml-encrypted",
	}
	if ws, ok := WorkspaceFromKeyName(key); ok {
		item.Label = "wacollect key for " + ws
		item.Description = "Fernet key for " + filepath.Join(ws, "config.yml-encrypted")
	}

	err := s.ring.Set(item)
	if err != nil {
		return fmt.Errorf("keyring set failed: %w", err)
	}
	return nil
}

func (s *KeyringStore) Delete(key string) error {
	if err := s.ring.Remove(key); err != nil {
		if errors.Is(err, keyring.ErrKeyNotFound) || os.IsNotExist(err) {
			return ErrNotFound
		}
		return fmt.Errorf("keyring delete failed: %w", err)
	}
	return nil
}

// List returns the workspace key entries of the service, skipping items
// other tools stored under the same name.
func (s *KeyringStore) List() ([]string, error) {
	keys, err := s.ring.Keys()
	if err != nil {
		return nil, fmt.Errorf("keyring list failed: %w", err)
	}

	out := keys[:0]
	for _, k := range keys {
		if _, ok := WorkspaceFromKeyName(k); ok {
			out = append(out, k)
		}
	}
	return out, nil
}
