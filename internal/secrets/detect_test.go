package secrets

import (
	"bytes"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/assert"
)

func TestIsWSLVersion(t *testing.T) {
	tests := []struct {
		name    string
		version string
		want    bool
	}{
		{name: "wsl2", version: "Linux version 5.15.90.1-microsoft-standard-WSL2", want: true},
		{name: "wsl1", version: "Linux version 4.4.0-19041-Microsoft", want: true},
		{name: "native", version: "Linux version 6.8.0-45-generic (buildd@lcy02-amd64-075)", want: false},
		{name: "empty", version: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isWSLVersion(tt.version))
		})
	}
}

func TestBackendOverride(t *testing.T) {
	t.Setenv("WACOLLECT_KEY_BACKEND", "file")
	assert.Equal(t, FileBackend, Backend())
	assert.Equal(t, "encrypted file", Backend().String())

	t.Setenv("WACOLLECT_KEY_BACKEND", "keyring")
	assert.Equal(t, KeyringBackend, Backend())
	assert.Equal(t, "keyring", Backend().String())
}

func TestBackendHeadless(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("headless detection only applies on linux")
	}
	t.Setenv("WACOLLECT_KEY_BACKEND", "")
	t.Setenv("DISPLAY", "")
	t.Setenv("WAYLAND_DISPLAY", "")
	assert.Equal(t, FileBackend, Backend())
}

func TestNoticeShownOnce(t *testing.T) {
	t.Cleanup(xdg.Reload)
	t.Setenv("XDG_DATA_HOME", filepath.Join(t.TempDir(), "data"))
	t.Setenv("WACOLLECT_QUIET", "")
	xdg.Reload()

	var buf bytes.Buffer
	prev := noticeOut
	noticeOut = &buf
	t.Cleanup(func() { noticeOut = prev })

	notice("first")
	markNoticeShown()
	notice("second")
	assert.Equal(t, "first\n", buf.String())

	buf.Reset()
	t.Setenv("WACOLLECT_QUIET", "1")
	notice("quiet")
	assert.Empty(t, buf.String())
}

func TestKeyringConfigBackend(t *testing.T) {
	t.Setenv("WACOLLECT_KEYRING_BACKEND", "pass")
	cfg, err := keyringConfig()
	assert.NoError(t, err)
	assert.Len(t, cfg.AllowedBackends, 1)
	assert.Equal(t, ServiceName, cfg.ServiceName)

	t.Setenv("WACOLLECT_KEYRING_BACKEND", "floppy")
	_, err = keyringConfig()
	assert.ErrorContains(t, err, "unknown keyring backend")
}
