package secrets

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/wateraccounting/wacollect/internal/config"
)

// BackendKind names where NewStore keeps workspace keys
type BackendKind int

const (
	KeyringBackend BackendKind = iota
	FileBackend
)

func (b BackendKind) String() string {
	if b == FileBackend {
		return "encrypted file"
	}
	return "keyring"
}

// noticeOut receives one-time backend notices
var noticeOut io.Writer = os.Stderr

func noticeMarker() string {
	return filepath.Join(config.DataDir(), ".file-store-warning-shown")
}

// notice prints msg unless WACOLLECT_QUIET is set or a notice was already
// shown on this machine.
func notice(msg string) {
	q := os.Getenv("WACOLLECT_QUIET")
	if q == "1" || q == "true" {
		return
	}
	if _, err := os.Stat(noticeMarker()); err == nil {
		return
	}
	fmt.Fprintln(noticeOut, msg)
}

func markNoticeShown() {
	if _, err := os.Stat(noticeMarker()); err == nil {
		return
	}
	_ = os.MkdirAll(config.DataDir(), 0700)
	_ = os.WriteFile(noticeMarker(), []byte("1"), 0600)
}

// warnOnce is used by the file store for its weak-password notice
func warnOnce(msg string) {
	notice(msg)
}

// Backend reports the backend NewStore picks. WACOLLECT_KEY_BACKEND=file
// or =keyring overrides detection.
func Backend() BackendKind {
	switch os.Getenv("WACOLLECT_KEY_BACKEND") {
	case "file":
		return FileBackend
	case "keyring":
		return KeyringBackend
	}
	if IsWSL() || IsHeadless() {
		return FileBackend
	}
	return KeyringBackend
}

// NewStore opens the key cache for this host. A keyring that fails to open
// falls back to the encrypted file.
func NewStore() (Store, error) {
	password := os.Getenv("WACOLLECT_STORE_PASSWORD")

	if Backend() == FileBackend {
		notice("Using encrypted file storage for cached keys")
		store, err := NewFileStore(password)
		if err != nil {
			return nil, err
		}
		markNoticeShown()
		return store, nil
	}

	store, err := NewKeyringStore()
	if err != nil {
		notice(fmt.Sprintf("Keyring unavailable (%v), falling back to encrypted file", err))
		fstore, ferr := NewFileStore(password)
		if ferr != nil {
			return nil, ferr
		}
		markNoticeShown()
		return fstore, nil
	}

	return store, nil
}

// IsWSL returns true if running under Windows Subsystem for Linux.
func IsWSL() bool {
	if runtime.GOOS != "linux" {
		return false
	}
	data, err := os.ReadFile("/proc/version")
	if err != nil {
		return false
	}
	return isWSLVersion(string(data))
}

func isWSLVersion(version string) bool {
	version = strings.ToLower(version)
	return strings.Contains(version, "microsoft") || strings.Contains(version, "wsl")
}

// IsHeadless returns true on Linux without a display server.
func IsHeadless() bool {
	if runtime.GOOS != "linux" {
		return false
	}
	return os.Getenv("DISPLAY") == "" && os.Getenv("WAYLAND_DISPLAY") == ""
}
