package cli

import (
	"fmt"

	"github.com/wateraccounting/wacollect/internal/config"
	"github.com/wateraccounting/wacollect/internal/credential"
	"github.com/wateraccounting/wacollect/internal/logging"
	"github.com/wateraccounting/wacollect/internal/output"
)

// LoadCmd verifies that the workspace decrypts and lists every account
type LoadCmd struct{}

type loadResult struct {
	Workspace string   `json:"workspace"`
	File      string   `json:"file"`
	Accounts  []string `json:"accounts"`
	Status    string   `json:"status"`
}

// Run executes the load command
func (cmd *LoadCmd) Run(g *Globals, cfg *config.Config, fp *FormatterProvider, logger *logging.Logger) error {
	store, err := openStore(g, logger)
	if err != nil {
		if credential.KindOf(err) == credential.MissingFile && g.Workspace == "" && NeedsSetup(cfg) {
			return output.FromError(err).WithHint("No workspace configured yet. Run: wacollect init")
		}
		return err
	}
	defer store.Close()

	status := store.Status()
	file, _ := store.Get(credential.SlotFile)
	return fp.Formatter.Print(loadResult{
		Workspace: store.Workspace(),
		File:      fmt.Sprint(file),
		Accounts:  store.Requested(),
		Status:    status.String(),
	})
}

// GetCmd prints one configuration slot of the loaded store
type GetCmd struct {
	Key    string `arg:"" help:"Slot to print: path, file, account or data" predictor:"slot"`
	Reveal bool   `help:"Print passwords instead of masking them"`
}

// Run executes the get command
func (cmd *GetCmd) Run(g *Globals, fp *FormatterProvider, streams *Streams, logger *logging.Logger) error {
	store, err := openStore(g, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	value, err := store.Get(cmd.Key)
	if err != nil {
		return output.FromError(err).WithHint(fmt.Sprintf("Valid slots: %s, %s, %s, %s",
			credential.SlotPath, credential.SlotFile, credential.SlotAccount, credential.SlotData))
	}

	if s, ok := value.(string); ok {
		fmt.Fprintln(streams.Out, s)
		return nil
	}

	if !cmd.Reveal {
		maskPasswords(value)
	}
	return fp.Formatter.Print(value)
}

// maskPasswords replaces every "password" entry of a decoded document in
// place
func maskPasswords(v any) {
	switch t := v.(type) {
	case map[string]any:
		for k, child := range t {
			if k == "password" && child != nil {
				t[k] = maskSecret(fmt.Sprint(child))
				continue
			}
			maskPasswords(child)
		}
	case []any:
		for _, child := range t {
			maskPasswords(child)
		}
	}
}
