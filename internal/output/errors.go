package output

import (
	"context"
	"errors"
	"io/fs"

	"github.com/wateraccounting/wacollect/internal/credential"
)

// Exit codes following sysexits.h convention
const (
	ExitOK          = 0  // Success
	ExitGeneral     = 1  // General error
	ExitUsage       = 2  // Invalid usage / bad arguments
	ExitAuth        = 3  // Key rejected or token tampered
	ExitNotFound    = 4  // Unknown configuration slot or account
	ExitConflict    = 5  // Output already exists
	ExitForbidden   = 6  // Permission denied
	ExitTimeout     = 8  // Workspace lock timeout
	ExitConfigError = 10 // Configuration error
)

// CLIError represents a structured error with exit code and optional hint
type CLIError struct {
	ExitCode int
	Message  string
	Hint     string
	Err      error
}

// Error implements the error interface
func (e *CLIError) Error() string {
	return e.Message
}

// Unwrap returns the underlying cause, if any
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a new CLIError
func NewCLIError(code int, msg string) *CLIError {
	return &CLIError{
		ExitCode: code,
		Message:  msg,
	}
}

// WithHint adds a user-facing hint to the error
func (e *CLIError) WithHint(hint string) *CLIError {
	e.Hint = hint
	return e
}

// FromError maps err to a CLIError with the matching exit code and a hint.
// A CLIError anywhere in the chain is returned unchanged.
func FromError(err error) *CLIError {
	if err == nil {
		return nil
	}

	var cliErr *CLIError
	if errors.As(err, &cliErr) {
		return cliErr
	}

	wrap := func(code int, hint string) *CLIError {
		return &CLIError{ExitCode: code, Message: err.Error(), Hint: hint, Err: err}
	}

	switch credential.KindOf(err) {
	case credential.MissingFile:
		return wrap(ExitConfigError, "Run: wacollect init, or pass --workspace pointing at a directory holding credential.yml and config.yml-encrypted")
	case credential.MalformedDocument:
		return wrap(ExitConfigError, "The decrypted config.yml must be a YAML mapping; check it with: wacollect encrypt --check <config.yml>")
	case credential.KeyMissing, credential.SubKeyMissing:
		return wrap(ExitConfigError, "Every known account must be listed under accounts; see: wacollect accounts list")
	case credential.InvalidKeyOrTamperedData:
		return wrap(ExitAuth, "credential.yml does not match config.yml-encrypted; re-encrypt with: wacollect encrypt <config.yml>")
	case credential.UnknownConfigKey:
		return wrap(ExitNotFound, "")
	}

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return wrap(ExitTimeout, "Another wacollect process may hold the workspace lock")
	case errors.Is(err, fs.ErrPermission):
		return wrap(ExitForbidden, "")
	case errors.Is(err, fs.ErrExist):
		return wrap(ExitConflict, "")
	}

	return wrap(ExitGeneral, "")
}

// ExitWithError prints the error and its hint via the formatter and returns
// the exit code the process should use
func ExitWithError(formatter Formatter, err error) int {
	cliErr := FromError(err)
	if cliErr == nil {
		return ExitOK
	}

	formatter.PrintError(cliErr)
	if cliErr.Hint != "" {
		formatter.PrintHint(cliErr.Hint)
	}
	return cliErr.ExitCode
}
