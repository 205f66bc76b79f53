package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/willabides/kongplete"

	"github.com/wateraccounting/wacollect/internal/config"
	"github.com/wateraccounting/wacollect/internal/logging"
	"github.com/wateraccounting/wacollect/internal/output"
)

// FormatterProvider wraps the formatter interface for Kong binding
type FormatterProvider struct {
	Formatter output.Formatter
}

// Streams carries the reader and writers commands interact through
type Streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// CLI is the root command structure
type CLI struct {
	Globals

	Load       LoadCmd                      `cmd:"" help:"Load and verify the workspace credentials"`
	Get        GetCmd                       `cmd:"" help:"Print a configuration slot"`
	Accounts   AccountsCmd                  `cmd:"" help:"Data portal accounts"`
	Key        KeyCmd                       `cmd:"" help:"Manage the workspace secret key"`
	Encrypt    EncryptCmd                   `cmd:"" help:"Validate and encrypt a plaintext config.yml"`
	Extract    ExtractCmd                   `cmd:"" help:"Decompress a downloaded .gz file"`
	Init       InitCmd                      `cmd:"" help:"Interactive workspace setup"`
	Config     ConfigCmd                    `cmd:"" help:"Configuration commands"`
	Completion kongplete.InstallCompletions `cmd:"" help:"Install shell completions"`
	Schema     SchemaCmd                    `cmd:"" help:"Print the command tree as JSON"`
	Version    VersionCmd                   `cmd:"" help:"Show version information"`

	stdin  io.Reader `kong:"-"`
	stdout io.Writer `kong:"-"`
	stderr io.Writer `kong:"-"`
}

// SetStreams redirects command input and output. Unset streams default to
// os.Stdin, os.Stdout and os.Stderr.
func (c *CLI) SetStreams(in io.Reader, out, errOut io.Writer) {
	c.stdin = in
	c.stdout = out
	c.stderr = errOut
}

func (c *CLI) streams() *Streams {
	s := &Streams{In: c.stdin, Out: c.stdout, Err: c.stderr}
	if s.In == nil {
		s.In = os.Stdin
	}
	if s.Out == nil {
		s.Out = os.Stdout
	}
	if s.Err == nil {
		s.Err = os.Stderr
	}
	return s
}

// AfterApply runs once flags are parsed and before the command executes.
// It loads config, resolves flag > config > default for the globals,
// creates the formatter and logger, and binds them.
func (c *CLI) AfterApply(ctx *kong.Context) error {
	var (
		cfg *config.Config
		err error
	)
	if c.ConfigFile != "" {
		cfg, err = config.LoadFrom(c.ConfigFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return &output.CLIError{
			Message:  err.Error(),
			ExitCode: output.ExitConfigError,
			Hint:     "Fix or remove the file shown by: wacollect config path",
			Err:      err,
		}
	}

	if c.Workspace == "" {
		c.Workspace = cfg.Workspace
	}
	if c.Account == "" {
		c.Account = cfg.Account
	}
	if c.Output == "auto" && cfg.DefaultOutput != "" {
		c.Output = cfg.DefaultOutput
	}
	if !c.UseKeyring {
		c.UseKeyring = cfg.UseKeyring()
	}

	streams := c.streams()
	formatter := &FormatterProvider{
		Formatter: output.NewWithWriters(c.ResolvedOutput(), streams.Out, streams.Err),
	}
	logger := logging.NewWithWriter(streams.Err, c.Verbose, logging.NoColor())

	ctx.Bind(cfg)
	ctx.Bind(formatter)
	ctx.Bind(&c.Globals)
	ctx.Bind(streams)
	ctx.Bind(logger)

	return nil
}

// AccountsCmd holds portal account subcommands
type AccountsCmd struct {
	List AccountsListCmd `cmd:"" help:"List the known portal accounts"`
	Show AccountsShowCmd `cmd:"" help:"Show the stored credentials of one account"`
	Open AccountsOpenCmd `cmd:"" help:"Open the registration page of a portal"`
}

// KeyCmd holds secret key subcommands
type KeyCmd struct {
	Derive KeyDeriveCmd `cmd:"" help:"Print the key derived from a password"`
	Init   KeyInitCmd   `cmd:"" help:"Write credential.yml into the workspace"`
	Save   KeySaveCmd   `cmd:"" help:"Cache the workspace key in the OS keyring"`
	Forget KeyForgetCmd `cmd:"" help:"Remove the cached workspace key"`
}

// ConfigCmd holds configuration subcommands
type ConfigCmd struct {
	Get   ConfigGetCmd        `cmd:"" help:"Get a configuration value"`
	Set   ConfigSetCmd        `cmd:"" help:"Set a configuration value"`
	Unset ConfigUnsetCmd      `cmd:"" help:"Remove a configuration value"`
	List  ConfigListConfigCmd `cmd:"" name:"list" help:"List all configuration values"`
	Path  ConfigPathCmd       `cmd:"" help:"Show config file path"`
}

// VersionCmd shows version information
type VersionCmd struct{}

func (cmd *VersionCmd) Run(ctx *kong.Context, streams *Streams) error {
	version := ctx.Model.Vars()["version"]
	fmt.Fprintln(streams.Out, "wacollect version "+version)
	return nil
}
