package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/wateraccounting/wacollect/internal/credential"
	"github.com/wateraccounting/wacollect/internal/logging"
	"github.com/wateraccounting/wacollect/internal/output"
	"github.com/wateraccounting/wacollect/internal/secrets"
)

// KeyDeriveCmd prints the key derived from a password
type KeyDeriveCmd struct {
	Password   string `help:"Password to derive from" env:"WACOLLECT_PASSWORD"`
	Default    bool   `help:"Derive from the built-in default password"`
	Salt       string `help:"PBKDF2 salt" default:"WaterAccounting_"`
	Iterations int    `help:"PBKDF2 iterations" default:"100000"`
}

// Run executes the key derive command
func (cmd *KeyDeriveCmd) Run(g *Globals, streams *Streams) error {
	password := cmd.Password
	if cmd.Default {
		password = credential.DefaultPassword
	}
	password, err := requirePassword(g, streams, password)
	if err != nil {
		return err
	}
	if cmd.Iterations <= 0 {
		return output.NewCLIError(output.ExitUsage, "--iterations must be positive")
	}

	key := credential.DeriveKey(password, cmd.Salt, cmd.Iterations, credential.DefaultKeyLength)
	fmt.Fprintln(streams.Out, string(key))
	return nil
}

// KeyInitCmd writes credential.yml into the workspace
type KeyInitCmd struct {
	Password string `help:"Password to derive the key from" env:"WACOLLECT_PASSWORD"`
	Generate bool   `help:"Write a random key instead of a derived one" xor:"source"`
	Default  bool   `help:"Derive from the built-in default password" xor:"source"`
}

// Run executes the key init command
func (cmd *KeyInitCmd) Run(ctx context.Context, g *Globals, streams *Streams, logger *logging.Logger) error {
	workspace := g.ResolvedWorkspace()
	path := filepath.Join(workspace, credential.KeyFile)
	if _, err := os.Stat(path); err == nil && !g.Force {
		return &output.CLIError{
			Message:  fmt.Sprintf("%s already exists", path),
			ExitCode: output.ExitConflict,
			Hint:     "Pass --force to overwrite it; config.yml-encrypted must then be re-encrypted",
		}
	}

	var key []byte
	switch {
	case cmd.Generate:
		generated, err := credential.GenerateKey()
		if err != nil {
			return err
		}
		key = generated
	case cmd.Default:
		key = credential.DefaultKey()
	default:
		password, err := requirePassword(g, streams, cmd.Password)
		if err != nil {
			return err
		}
		params := credential.DefaultKeyParams()
		params.Password = password
		key = params.Derive()
	}

	written, err := credential.WriteKeyFile(ctx, workspace, key)
	if err != nil {
		return err
	}
	logger.Info("Wrote %s", written)
	return nil
}

// KeySaveCmd caches the workspace key in the OS keyring
type KeySaveCmd struct{}

// Run executes the key save command
func (cmd *KeySaveCmd) Run(g *Globals, logger *logging.Logger) error {
	// Load from the key file so only a key that decrypts the workspace is cached.
	local := *g
	local.UseKeyring = false
	store, err := openStore(&local, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	key, err := store.Key()
	if err != nil {
		return err
	}

	cache, err := secrets.NewStore()
	if err != nil {
		return cacheError("open", err)
	}
	if err := cache.Set(secrets.WorkspaceKeyName(store.Workspace()), string(key)); err != nil {
		return cacheError("write", err)
	}

	logger.Info("Cached key for %s in %s", store.Workspace(), secrets.Backend())
	logger.Info("Load with: wacollect --use-keyring load")
	return nil
}

// KeyForgetCmd removes the cached workspace key
type KeyForgetCmd struct{}

// Run executes the key forget command
func (cmd *KeyForgetCmd) Run(g *Globals, logger *logging.Logger) error {
	cache, err := secrets.NewStore()
	if err != nil {
		return cacheError("open", err)
	}

	workspace := g.ResolvedWorkspace()
	if err := cache.Delete(secrets.WorkspaceKeyName(workspace)); err != nil {
		if errors.Is(err, secrets.ErrNotFound) {
			return &output.CLIError{
				Message:  fmt.Sprintf("No cached key for %s", workspace),
				ExitCode: output.ExitNotFound,
			}
		}
		return cacheError("update", err)
	}

	logger.Info("Removed cached key for %s", workspace)
	return nil
}
