package output

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wateraccounting/wacollect/internal/credential"
)

func TestNewCLIError(t *testing.T) {
	err := NewCLIError(ExitAuth, "cannot decrypt")
	assert.Equal(t, ExitAuth, err.ExitCode)
	assert.Equal(t, "cannot decrypt", err.Message)
	assert.Empty(t, err.Hint)
}

func TestCLIErrorWithHint(t *testing.T) {
	err := NewCLIError(ExitConfigError, "missing file")
	result := err.WithHint("Run: wacollect init")

	// Fluent builder returns same pointer
	assert.Same(t, err, result)
	assert.Equal(t, "Run: wacollect init", err.Hint)
}

func TestCLIErrorUnwrap(t *testing.T) {
	cause := errors.New("disk full")
	err := &CLIError{ExitCode: ExitGeneral, Message: "write failed", Err: cause}
	assert.ErrorIs(t, err, cause)
}

func TestFromError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantHint bool
	}{
		{
			name:     "missing file",
			err:      &credential.ConfigurationError{Kind: credential.MissingFile, Path: "/ws/credential.yml"},
			wantCode: ExitConfigError,
			wantHint: true,
		},
		{
			name:     "malformed document",
			err:      &credential.ConfigurationError{Kind: credential.MalformedDocument, Err: errors.New("bad yaml")},
			wantCode: ExitConfigError,
			wantHint: true,
		},
		{
			name:     "sub key missing wrapped",
			err:      fmt.Errorf("load: %w", &credential.ConfigurationError{Kind: credential.SubKeyMissing, Key: "VITO"}),
			wantCode: ExitConfigError,
			wantHint: true,
		},
		{
			name:     "decryption",
			err:      &credential.DecryptionError{Path: "/ws/config.yml-encrypted"},
			wantCode: ExitAuth,
			wantHint: true,
		},
		{
			name:     "lookup",
			err:      &credential.LookupError{Key: "nope", Available: []string{"data"}},
			wantCode: ExitNotFound,
		},
		{
			name:     "lock timeout",
			err:      fmt.Errorf("failed to lock workspace: %w", context.DeadlineExceeded),
			wantCode: ExitTimeout,
			wantHint: true,
		},
		{
			name:     "permission",
			err:      fmt.Errorf("write: %w", os.ErrPermission),
			wantCode: ExitForbidden,
		},
		{
			name:     "other",
			err:      errors.New("boom"),
			wantCode: ExitGeneral,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cliErr := FromError(tt.err)
			require.NotNil(t, cliErr)
			assert.Equal(t, tt.wantCode, cliErr.ExitCode)
			assert.Equal(t, tt.err.Error(), cliErr.Message)
			assert.Equal(t, tt.wantHint, cliErr.Hint != "")
			assert.ErrorIs(t, cliErr, tt.err)
		})
	}
}

func TestFromErrorPassesThroughCLIError(t *testing.T) {
	orig := NewCLIError(ExitUsage, "bad flag")
	assert.Same(t, orig, FromError(fmt.Errorf("wrapped: %w", orig)))
	assert.Nil(t, FromError(nil))
}

func TestExitWithError(t *testing.T) {
	var out, errOut bytes.Buffer
	f := NewWithWriters("plain", &out, &errOut)

	code := ExitWithError(f, &credential.DecryptionError{Path: "/ws/config.yml-encrypted"})

	assert.Equal(t, ExitAuth, code)
	assert.Empty(t, out.String())
	assert.Contains(t, errOut.String(), "error: cannot decrypt")
	assert.Contains(t, errOut.String(), "hint: credential.yml does not match")

	assert.Equal(t, ExitOK, ExitWithError(f, nil))
}
