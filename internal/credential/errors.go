package credential

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies load and lookup failures
type ErrorKind int

const (
	MissingFile ErrorKind = iota + 1
	MalformedDocument
	KeyMissing
	SubKeyMissing
	InvalidKeyOrTamperedData
	UnknownConfigKey
)

// Sentinels matched by errors.Is against the typed errors below
var (
	ErrMissingFile              = errors.New("missing file")
	ErrMalformedDocument        = errors.New("malformed document")
	ErrKeyMissing               = errors.New("key missing")
	ErrSubKeyMissing            = errors.New("sub key missing")
	ErrInvalidKeyOrTamperedData = errors.New("invalid key or tampered data")
	ErrUnknownConfigKey         = errors.New("unknown config key")
)

// String returns a string representation of the error kind
func (k ErrorKind) String() string {
	switch k {
	case MissingFile:
		return "MissingFile"
	case MalformedDocument:
		return "MalformedDocument"
	case KeyMissing:
		return "KeyMissing"
	case SubKeyMissing:
		return "SubKeyMissing"
	case InvalidKeyOrTamperedData:
		return "InvalidKeyOrTamperedData"
	case UnknownConfigKey:
		return "UnknownConfigKey"
	default:
		return "Unknown"
	}
}

func (k ErrorKind) sentinel() error {
	switch k {
	case MissingFile:
		return ErrMissingFile
	case MalformedDocument:
		return ErrMalformedDocument
	case KeyMissing:
		return ErrKeyMissing
	case SubKeyMissing:
		return ErrSubKeyMissing
	case InvalidKeyOrTamperedData:
		return ErrInvalidKeyOrTamperedData
	case UnknownConfigKey:
		return ErrUnknownConfigKey
	default:
		return nil
	}
}

// ConfigurationError reports a missing deployment file or an incomplete
// configuration document.
type ConfigurationError struct {
	Kind ErrorKind
	Path string // file the failure refers to
	Key  string // offending key for KeyMissing and SubKeyMissing
	Err  error
}

func (e *ConfigurationError) Error() string {
	switch e.Kind {
	case MissingFile:
		return fmt.Sprintf("user %q not found", e.Path)
	case MalformedDocument:
		if e.Path == "" {
			return fmt.Sprintf("malformed document: %v", e.Err)
		}
		if e.Err != nil {
			return fmt.Sprintf("malformed document %q: %v", e.Path, e.Err)
		}
		return fmt.Sprintf("malformed document %q", e.Path)
	case KeyMissing:
		return fmt.Sprintf("key %q not found in %q", e.Key, e.Path)
	case SubKeyMissing:
		return fmt.Sprintf("sub key %q not found in %q", e.Key, e.Path)
	default:
		return fmt.Sprintf("configuration error in %q", e.Path)
	}
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

func (e *ConfigurationError) Is(target error) bool {
	return target == e.Kind.sentinel()
}

// DecryptionError reports that the authenticated decryption rejected the
// token: wrong key, malformed key or tampered ciphertext.
type DecryptionError struct {
	Path string
	Err  error
}

func (e *DecryptionError) Error() string {
	msg := "decryption failed: invalid key or tampered data"
	if e.Path != "" {
		msg = fmt.Sprintf("cannot decrypt %q: invalid key or tampered data", e.Path)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *DecryptionError) Unwrap() error {
	return e.Err
}

func (e *DecryptionError) Is(target error) bool {
	return target == ErrInvalidKeyOrTamperedData
}

// Kind always returns InvalidKeyOrTamperedData
func (e *DecryptionError) Kind() ErrorKind {
	return InvalidKeyOrTamperedData
}

// LookupError reports a Get call for a slot the store does not have
type LookupError struct {
	Key       string
	Available []string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("key %q not found in [%s]", e.Key, strings.Join(e.Available, ", "))
}

func (e *LookupError) Is(target error) bool {
	return target == ErrUnknownConfigKey
}

// Kind always returns UnknownConfigKey
func (e *LookupError) Kind() ErrorKind {
	return UnknownConfigKey
}

// KindOf returns the ErrorKind carried by err, or 0 when err is not one of
// this package's errors.
func KindOf(err error) ErrorKind {
	var cfgErr *ConfigurationError
	if errors.As(err, &cfgErr) {
		return cfgErr.Kind
	}
	var decErr *DecryptionError
	if errors.As(err, &decErr) {
		return InvalidKeyOrTamperedData
	}
	var lookErr *LookupError
	if errors.As(err, &lookErr) {
		return UnknownConfigKey
	}
	return 0
}
