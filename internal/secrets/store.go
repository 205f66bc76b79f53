package secrets

import (
	"errors"
	"path/filepath"
)

// Store is the interface for the workspace key cache
type Store interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Delete(key string) error
	List() ([]string, error)
}

// ErrNotFound is returned when a key is not found in the store
var ErrNotFound = errors.New("key not found")

// ServiceName is the service identifier for keyring storage
const ServiceName = "wacollect"

const workspaceKeyPrefix = "workspace_key:"

// WorkspaceKeyName returns the entry name caching the key of workspace.
// Relative paths are made absolute so every spelling maps to one entry.
func WorkspaceKeyName(workspace string) string {
	if abs, err := filepath.Abs(workspace); err == nil {
		workspace = abs
	}
	return workspaceKeyPrefix + filepath.Clean(workspace)
}

// WorkspaceFromKeyName reverses WorkspaceKeyName. ok is false for entries
// that do not hold a workspace key.
func WorkspaceFromKeyName(name string) (workspace string, ok bool) {
	if len(name) <= len(workspaceKeyPrefix) || name[:len(workspaceKeyPrefix)] != workspaceKeyPrefix {
		return "", false
	}
	return name[len(workspaceKeyPrefix):], true
}
