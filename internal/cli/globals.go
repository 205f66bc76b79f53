package cli

import (
	"os"

	"golang.org/x/term"

	"github.com/wateraccounting/wacollect/internal/config"
)

// Globals holds global flags available to all commands
type Globals struct {
	Workspace  string `help:"Directory holding credential.yml and config.yml-encrypted" short:"w" type:"path" env:"WACOLLECT_WORKSPACE"`
	Account    string `help:"Portal account to load (default FTP_WA_GUESS)" short:"a" env:"WACOLLECT_ACCOUNT" predictor:"account"`
	Output     string `help:"Output format" default:"auto" enum:"json,plain,rich,auto" short:"o" env:"WACOLLECT_OUTPUT"`
	Verbose    bool   `help:"Verbose output" short:"v" env:"WACOLLECT_VERBOSE"`
	UseKeyring bool   `help:"Read the workspace key from the OS keyring cache" name:"use-keyring" env:"WACOLLECT_USE_KEYRING"`
	NoInput    bool   `help:"Disable interactive prompts (fail instead)" env:"WACOLLECT_NO_INPUT"`
	Force      bool   `help:"Overwrite existing files" env:"WACOLLECT_FORCE"`
	ConfigFile string `help:"Config file to use instead of the XDG default" name:"config-file" type:"path" env:"WACOLLECT_CONFIG" hidden:""`
}

// ResolvedOutput returns the effective output mode
// "auto" detects TTY: if stdout is TTY -> rich, else -> plain
func (g *Globals) ResolvedOutput() string {
	if g.Output != "auto" {
		return g.Output
	}

	if term.IsTerminal(int(os.Stdout.Fd())) {
		return "rich"
	}

	return "plain"
}

// ResolvedWorkspace returns the workspace flag or, when unset, the default
// workspace directory
func (g *Globals) ResolvedWorkspace() string {
	if g.Workspace != "" {
		return g.Workspace
	}
	return config.WorkspaceDir()
}
