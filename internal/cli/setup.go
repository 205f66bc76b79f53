package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/wateraccounting/wacollect/internal/config"
	"github.com/wateraccounting/wacollect/internal/credential"
	"github.com/wateraccounting/wacollect/internal/logging"
	"github.com/wateraccounting/wacollect/internal/output"
	"github.com/wateraccounting/wacollect/internal/secrets"
)

// InitCmd implements the interactive setup wizard
type InitCmd struct{}

// Run executes the setup wizard
func (cmd *InitCmd) Run(ctx context.Context, g *Globals, cfg *config.Config, streams *Streams, logger *logging.Logger) error {
	if g.NoInput {
		return &output.CLIError{
			Message:  "init is interactive",
			ExitCode: output.ExitUsage,
			Hint:     "Use: wacollect key init and wacollect encrypt",
		}
	}

	reader := bufio.NewReader(streams.In)
	w := streams.Err

	fmt.Fprintf(w, "\n")
	fmt.Fprintf(w, "  wacollect setup\n")
	fmt.Fprintf(w, "  ===============\n\n")

	// Step 1: Workspace
	fmt.Fprintf(w, "  Step 1: Choose the workspace directory\n\n")
	fmt.Fprintf(w, "    It holds %s and %s.\n\n", credential.KeyFile, credential.EncryptedConfigFile)

	current := g.ResolvedWorkspace()
	workspace := prompt(streams, reader, fmt.Sprintf("  Workspace [%s]: ", current))
	if workspace == "" {
		workspace = current
	}
	workspace, err := filepath.Abs(workspace)
	if err != nil {
		return err
	}

	// Step 2: Key
	fmt.Fprintf(w, "\n  Step 2: Create the secret key\n\n")

	keyPath := filepath.Join(workspace, credential.KeyFile)
	writeKey := true
	if _, err := os.Stat(keyPath); err == nil {
		answer := prompt(streams, reader, fmt.Sprintf("  %s exists. Replace it? [y/N]: ", keyPath))
		writeKey = strings.ToLower(answer) == "y"
	}
	if writeKey {
		password, err := promptSecret(streams, reader, "  Password (empty for the default): ")
		if err != nil {
			return err
		}
		params := credential.DefaultKeyParams()
		if password != "" {
			params.Password = password
		}
		if _, err := credential.WriteKeyFile(ctx, workspace, params.Derive()); err != nil {
			return err
		}
		fmt.Fprintf(w, "  Wrote %s\n", keyPath)
	}

	// Step 3: Accounts
	fmt.Fprintf(w, "\n  Step 3: Encrypt the account document\n\n")

	plainPath := filepath.Join(workspace, strings.TrimSuffix(credential.EncryptedConfigFile, credential.EncryptedSuffix))
	encrypted := false
	if _, err := os.Stat(plainPath); err == nil {
		key, err := workspaceKey(workspace, logger)
		if err != nil {
			return err
		}
		plaintext, err := os.ReadFile(plainPath)
		if err != nil {
			return err
		}
		if err := credential.ValidateDocument(plaintext); err != nil {
			return err
		}
		if _, err := credential.EncryptFile(ctx, plainPath, key); err != nil {
			return err
		}
		encrypted = true
		fmt.Fprintf(w, "  Encrypted %s\n", plainPath)
		fmt.Fprintf(w, "  Delete the plaintext once you have a backup.\n")
	} else {
		fmt.Fprintf(w, "    Create %s with one entry per portal:\n\n", plainPath)
		fmt.Fprintf(w, "      accounts:\n")
		for _, name := range config.KnownAccounts {
			fmt.Fprintf(w, "        %s:\n          username: ''\n          password: ''\n", name)
		}
		fmt.Fprintf(w, "\n    then run: wacollect encrypt %s\n", plainPath)
	}

	// Step 4: Key cache
	cached := false
	if encrypted {
		fmt.Fprintf(w, "\n  Step 4: Cache the key\n\n")
		answer := prompt(streams, reader, fmt.Sprintf("  Store the key in the %s? [y/N]: ", secrets.Backend()))
		if strings.ToLower(answer) == "y" {
			local := *g
			local.Workspace = workspace
			if err := (&KeySaveCmd{}).Run(&local, logger); err != nil {
				return err
			}
			cfg.KeyCache = config.KeyCacheKeyring
			cached = true
		}
	}

	cfg.Workspace = workspace
	if err := cfg.Save(); err != nil {
		return &output.CLIError{
			Message:  fmt.Sprintf("Failed to save config: %v", err),
			ExitCode: output.ExitGeneral,
			Err:      err,
		}
	}

	keyStorage := "file"
	if cached {
		keyStorage = secrets.Backend().String()
	}

	fmt.Fprintf(w, "\n  Setup complete!\n\n")
	fmt.Fprintf(w, "    Workspace: %s\n", workspace)
	fmt.Fprintf(w, "    Key:       %s\n", keyStorage)
	fmt.Fprintf(w, "    Config:    %s\n\n", cfg.Path())
	fmt.Fprintf(w, "  Try it out:\n\n")
	fmt.Fprintf(w, "    wacollect load\n")
	fmt.Fprintf(w, "    wacollect accounts show NASA\n\n")

	return nil
}

// NeedsSetup returns true if no workspace has been configured yet
func NeedsSetup(cfg *config.Config) bool {
	return cfg.Workspace == ""
}
