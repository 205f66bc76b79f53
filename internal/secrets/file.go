package secrets

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/gofrs/flock"

	"github.com/wateraccounting/wacollect/internal/config"
	"github.com/wateraccounting/wacollect/internal/credential"
)

const (
	fileStoreSalt       = "wacollect-key-cache"
	fileStoreIterations = 100000
	fileLockTimeout     = 5 * time.Second
)

// FileStore keeps cached keys in a single Fernet token holding a JSON map.
// It serves hosts without a usable keyring (WSL, headless, containers).
type FileStore struct {
	path string
	key  []byte
	lock *flock.Flock
}

// NewFileStore opens the key cache file in the data directory.
// An empty password falls back to user@host and prints a notice.
func NewFileStore(password string) (*FileStore, error) {
	return NewFileStoreAt(filepath.Join(config.DataDir(), "keys.enc"), password)
}

// NewFileStoreAt opens the key cache file at path
func NewFileStoreAt(path, password string) (*FileStore, error) {
	if password == "" {
		password = machinePassword()
		warnOnce("WARNING: Using machine-specific encryption key. For better security, set a password via WACOLLECT_STORE_PASSWORD env var.")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create key cache directory: %w", err)
	}

	return &FileStore{
		path: path,
		key:  credential.DeriveKey(password, fileStoreSalt, fileStoreIterations, credential.DefaultKeyLength),
		lock: flock.New(path + ".lock"),
	}, nil
}

func machinePassword() string {
	hostname, _ := os.Hostname()
	username := os.Getenv("USER")
	if username == "" {
		username = os.Getenv("USERNAME") // Windows
	}
	return fmt.Sprintf("%s@%s", username, hostname)
}

func (s *FileStore) load() (map[string]string, error) {
	token, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("failed to read key cache: %w", err)
	}
	if len(token) == 0 {
		return map[string]string{}, nil
	}

	plaintext, err := credential.Decrypt(token, s.key)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt key cache: %w", err)
	}

	entries := map[string]string{}
	if err := json.Unmarshal(plaintext, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse key cache: %w", err)
	}
	return entries, nil
}

// save replaces the cache file atomically so a crash never leaves a
// truncated token behind.
func (s *FileStore) save(entries map[string]string) error {
	plaintext, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to serialize key cache: %w", err)
	}

	token, err := credential.Encrypt(plaintext, s.key)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".keys-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to write key cache: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(token); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write key cache: %w", err)
	}
	if err := tmp.Chmod(0600); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write key cache: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write key cache: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("failed to write key cache: %w", err)
	}
	return nil
}

// update runs fn on the decoded entries under an exclusive file lock and
// persists the result.
func (s *FileStore) update(fn func(entries map[string]string) error) error {
	ctx, cancel := context.WithTimeout(context.Background(), fileLockTimeout)
	defer cancel()

	locked, err := s.lock.TryLockContext(ctx, 100*time.Millisecond)
	if err != nil {
		return fmt.Errorf("failed to lock key cache: %w", err)
	}
	if !locked {
		return fmt.Errorf("failed to lock key cache: timeout")
	}
	defer s.lock.Unlock()

	entries, err := s.load()
	if err != nil {
		return err
	}
	if err := fn(entries); err != nil {
		return err
	}
	return s.save(entries)
}

func (s *FileStore) Get(key string) (string, error) {
	entries, err := s.load()
	if err != nil {
		return "", err
	}
	value, ok := entries[key]
	if !ok {
		return "", ErrNotFound
	}
	return value, nil
}

func (s *FileStore) Set(key, value string) error {
	return s.update(func(entries map[string]string) error {
		entries[key] = value
		return nil
	})
}

func (s *FileStore) Delete(key string) error {
	return s.update(func(entries map[string]string) error {
		if _, ok := entries[key]; !ok {
			return ErrNotFound
		}
		delete(entries, key)
		return nil
	})
}

// List returns the entry names, sorted.
func (s *FileStore) List() ([]string, error) {
	entries, err := s.load()
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}
