package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/wateraccounting/wacollect/internal/credential"
	"github.com/wateraccounting/wacollect/internal/logging"
	"github.com/wateraccounting/wacollect/internal/output"
)

// EncryptCmd validates a plaintext config.yml and encrypts it with the
// workspace key
type EncryptCmd struct {
	Path  string `arg:"" help:"Plaintext config.yml" type:"existingfile" predictor:"file"`
	Check bool   `help:"Only validate the document"`
}

type encryptResult struct {
	Input  string `json:"input"`
	Output string `json:"output"`
}

// Run executes the encrypt command
func (cmd *EncryptCmd) Run(ctx context.Context, g *Globals, fp *FormatterProvider, logger *logging.Logger) error {
	plaintext, err := os.ReadFile(cmd.Path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", cmd.Path, err)
	}
	if err := credential.ValidateDocument(plaintext); err != nil {
		return err
	}
	if cmd.Check {
		logger.Info("%s is valid", cmd.Path)
		return nil
	}

	out := cmd.Path + credential.EncryptedSuffix
	if _, err := os.Stat(out); err == nil && !g.Force {
		return &output.CLIError{
			Message:  fmt.Sprintf("%s already exists", out),
			ExitCode: output.ExitConflict,
			Hint:     "Pass --force to overwrite it",
		}
	}

	key, err := workspaceKey(filepath.Dir(cmd.Path), logger)
	if err != nil {
		return err
	}

	written, err := credential.EncryptFile(ctx, cmd.Path, key)
	if err != nil {
		return err
	}

	logger.Info("Encrypted %s", cmd.Path)
	return fp.Formatter.Print(encryptResult{Input: cmd.Path, Output: written})
}

// workspaceKey reads the key file of dir. An empty file stands for the key
// derived from the default password, matching how the store loads it.
func workspaceKey(dir string, logger *logging.Logger) ([]byte, error) {
	key, err := credential.LoadKey(filepath.Join(dir, credential.KeyFile))
	if err != nil {
		return nil, output.FromError(err).WithHint("Run: wacollect key init -w " + dir)
	}
	if len(bytes.TrimSpace(key)) == 0 {
		logger.Debug("%s is empty, using the default key", credential.KeyFile)
		return credential.DefaultKey(), nil
	}
	return key, nil
}
