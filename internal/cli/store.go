package cli

import (
	"errors"
	"fmt"

	"github.com/wateraccounting/wacollect/internal/credential"
	"github.com/wateraccounting/wacollect/internal/logging"
	"github.com/wateraccounting/wacollect/internal/output"
	"github.com/wateraccounting/wacollect/internal/secrets"
)

// openStore loads the credential store for the resolved workspace and
// account. With --use-keyring a cached key takes precedence over the key
// file; a missing cache entry falls back to the file.
func openStore(g *Globals, logger *logging.Logger) (*credential.Store, error) {
	opts := []credential.Option{credential.WithLogger(logger)}

	if g.UseKeyring {
		key, err := cachedKey(g.ResolvedWorkspace())
		switch {
		case err == nil:
			logger.Debug("using cached key for %s", g.ResolvedWorkspace())
			opts = append(opts, credential.WithKey([]byte(key)))
		case errors.Is(err, secrets.ErrNotFound):
			logger.Debug("no cached key for %s, reading %s", g.ResolvedWorkspace(), credential.KeyFile)
		default:
			return nil, cacheError("read", err)
		}
	}

	return credential.New(g.Workspace, g.Account, opts...)
}

func cachedKey(workspace string) (string, error) {
	store, err := secrets.NewStore()
	if err != nil {
		return "", err
	}
	return store.Get(secrets.WorkspaceKeyName(workspace))
}

// cacheError reports a key cache failure. The file cache fails to decrypt
// when WACOLLECT_STORE_PASSWORD changed, which must not read as a bad
// workspace key.
func cacheError(op string, err error) *output.CLIError {
	return &output.CLIError{
		Message:  fmt.Sprintf("Failed to %s key cache: %v", op, err),
		ExitCode: output.ExitGeneral,
		Hint:     "Run without --use-keyring, or check WACOLLECT_STORE_PASSWORD for the encrypted file cache",
		Err:      err,
	}
}
