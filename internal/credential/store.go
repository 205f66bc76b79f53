package credential

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/wateraccounting/wacollect/internal/config"
	"github.com/wateraccounting/wacollect/internal/logging"
	"github.com/wateraccounting/wacollect/internal/secure"
)

// Store is a loaded, read-only view of a workspace's credentials
type Store struct {
	conf   *conf
	key    *secure.Buffer
	logger *logging.Logger

	// redact lists values status messages must never show
	redact []string

	mu     sync.Mutex
	status Status
}

// Option customizes New
type Option func(*options)

type options struct {
	key      []byte
	password string
	fallback string
	logger   *logging.Logger
}

// WithKey supplies the secret key directly, taking precedence over the
// workspace key file.
func WithKey(key []byte) Option {
	return func(o *options) {
		o.key = append([]byte(nil), key...)
	}
}

// WithPassword sets the password used when the key has to be derived
func WithPassword(password string) Option {
	return func(o *options) {
		o.password = password
	}
}

// WithFallbackWorkspace sets the directory used when workspace is empty
func WithFallbackWorkspace(dir string) Option {
	return func(o *options) {
		o.fallback = dir
	}
}

// WithLogger routes status records to l
func WithLogger(l *logging.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// New loads the credentials for account from workspace.
// An empty workspace resolves to the fallback directory and an empty
// account to config.DefaultAccount. The returned error is one of
// *ConfigurationError, *DecryptionError or a wrapped I/O error.
func New(workspace, account string, opts ...Option) (*Store, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = logging.Discard()
	}

	c := defaultTemplate.instantiate()
	switch {
	case workspace != "":
		c.path = workspace
	case o.fallback != "":
		c.path = o.fallback
	default:
		c.path = config.WorkspaceDir()
	}
	o.logger.Debug("%q: %q", "workspace", c.path)

	if account == "" {
		account = config.DefaultAccount
	}
	c.account[account] = map[string]any{}
	o.logger.Debug("%q: %q", "account", account)

	if o.password != "" {
		c.setPassword(o.password)
	}

	s := &Store{conf: c, logger: o.logger}
	if err := s.loadUser(o); err != nil {
		s.report(StatusError, "New", err.Error())
		return nil, err
	}

	s.report(StatusOK, "New", fmt.Sprintf("%q key is: %v", c.file, logging.Secret("")))
	return s, nil
}

// loadUser reads both workspace files, decrypts and merges the document
func (s *Store) loadUser(o options) error {
	cfgPath := filepath.Join(s.conf.path, s.conf.file)
	keyPath := filepath.Join(s.conf.path, s.conf.credentialFile())

	for _, path := range []string{cfgPath, keyPath} {
		if !fileExists(path) {
			return &ConfigurationError{Kind: MissingFile, Path: path}
		}
	}

	key, err := s.resolveKey(keyPath, o)
	if err != nil {
		return err
	}

	token, err := os.ReadFile(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to read encrypted config: %w", err)
	}

	plaintext, err := Decrypt(token, key)
	if err != nil {
		if decErr, ok := err.(*DecryptionError); ok {
			decErr.Path = cfgPath
		}
		return err
	}

	doc, err := parseDocument(plaintext)
	if err != nil {
		return &ConfigurationError{Kind: MalformedDocument, Path: cfgPath, Err: err}
	}

	if err := s.conf.merge(doc, cfgPath, defaultTemplate.accounts); err != nil {
		return err
	}
	s.redact = s.passwords()
	if o.password != "" {
		s.redact = append(s.redact, o.password)
	}

	s.key = secure.New(key)
	s.report(StatusOK, "loadUser", "No error")
	return nil
}

// resolveKey applies the precedence explicit key > key file > derived key
func (s *Store) resolveKey(keyPath string, o options) ([]byte, error) {
	if len(o.key) > 0 {
		s.logger.Debug("using explicitly supplied key")
		return o.key, nil
	}

	key, err := LoadKey(keyPath)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(key)) > 0 {
		return key, nil
	}

	params := defaultTemplate.keyParams
	if o.password != "" {
		params.Password = o.password
	}
	s.logger.Debug("%s is empty, deriving key from password", keyPath)
	return params.Derive(), nil
}

func (s *Store) report(code StatusCode, fn, msg string) {
	st := Status{Code: code, Func: fn, Message: logging.Redact(msg, s.redact)}

	s.mu.Lock()
	s.status = st
	s.mu.Unlock()

	switch code {
	case StatusOK:
		s.logger.Debug("%s", st)
	case StatusWarning:
		s.logger.Warn("%s", st)
	default:
		s.logger.Error("%s", st)
	}
}

// Get returns a copy of the configuration slot named key: "path", "file",
// "account" or "data". Unknown keys yield a *LookupError; the store stays
// usable.
func (s *Store) Get(key string) (any, error) {
	slots := s.conf.slots()
	value, ok := slots[key]
	if !ok {
		err := &LookupError{Key: key, Available: sortedKeys(slots)}
		s.report(StatusError, "Get", err.Error())
		return nil, err
	}

	s.report(StatusOK, "Get", "No error")
	return deepCopy(value), nil
}

// Workspace returns the resolved workspace directory
func (s *Store) Workspace() string {
	return s.conf.path
}

// Requested returns the account names the store was constructed for
func (s *Store) Requested() []string {
	return sortedKeys(s.conf.account)
}

// Status returns the most recent advisory status record
func (s *Store) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Key returns a copy of the secret key the document was decrypted with
func (s *Store) Key() ([]byte, error) {
	if s.key == nil {
		return []byte{}, nil
	}
	return s.key.Bytes()
}

// Close wipes the in-memory key. Get keeps working afterwards.
func (s *Store) Close() {
	if s.key != nil {
		s.key.Destroy()
	}
}
