package credential

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
)

// EncryptedSuffix is appended to a plaintext file name by EncryptFile
const EncryptedSuffix = "-encrypted"

const lockFile = ".wacollect.lock"

// withWorkspaceLock runs fn while holding an exclusive lock on dir so two
// processes never interleave writes to the same workspace.
func withWorkspaceLock(ctx context.Context, dir string, fn func() error) error {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create workspace: %w", err)
	}

	lock := flock.New(filepath.Join(dir, lockFile))
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	locked, err := lock.TryLockContext(ctx, 100*time.Millisecond)
	if err != nil {
		return fmt.Errorf("failed to acquire lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("failed to acquire lock: timeout")
	}
	defer lock.Unlock()

	return fn()
}

// EncryptFile encrypts the plaintext document at path with key and writes
// the token next to it as <path>-encrypted. It returns the output path.
func EncryptFile(ctx context.Context, path string, key []byte) (string, error) {
	plaintext, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}

	token, err := Encrypt(plaintext, key)
	if err != nil {
		return "", err
	}

	out := path + EncryptedSuffix
	err = withWorkspaceLock(ctx, filepath.Dir(out), func() error {
		if err := os.WriteFile(out, token, 0600); err != nil {
			return fmt.Errorf("failed to write %s: %w", out, err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return out, nil
}

// WriteKeyFile stores key as the workspace key file and returns its path
func WriteKeyFile(ctx context.Context, workspace string, key []byte) (string, error) {
	path := filepath.Join(workspace, KeyFile)
	err := withWorkspaceLock(ctx, workspace, func() error {
		if err := os.WriteFile(path, key, 0600); err != nil {
			return fmt.Errorf("failed to write key file: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return path, nil
}
