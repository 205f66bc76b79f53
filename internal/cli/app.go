package cli

import (
	"context"
	"errors"

	"github.com/alecthomas/kong"
	"github.com/posener/complete"
	"github.com/willabides/kongplete"

	"github.com/wateraccounting/wacollect/internal/config"
	"github.com/wateraccounting/wacollect/internal/credential"
	"github.com/wateraccounting/wacollect/internal/output"
)

// New builds the kong parser for root
func New(root *CLI, version string, options ...kong.Option) (*kong.Kong, error) {
	opts := []kong.Option{
		kong.Name("wacollect"),
		kong.Description("Credential store for the water accounting data collectors"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	}
	return kong.New(root, append(opts, options...)...)
}

// Complete answers a shell completion request and exits when one is
// pending; otherwise it returns immediately.
func Complete(parser *kong.Kong) {
	kongplete.Complete(parser,
		kongplete.WithPredictor("account", complete.PredictSet(config.KnownAccounts...)),
		kongplete.WithPredictor("slot", complete.PredictSet(
			credential.SlotPath, credential.SlotFile, credential.SlotAccount, credential.SlotData,
		)),
		kongplete.WithPredictor("file", complete.PredictFiles("*")),
	)
}

// Execute parses args and runs the selected command with ctx bound for
// commands that block on I/O
func Execute(ctx context.Context, parser *kong.Kong, args []string) error {
	kctx, err := parser.Parse(args)
	if err != nil {
		var cliErr *output.CLIError
		if errors.As(err, &cliErr) {
			return cliErr
		}
		return &output.CLIError{ExitCode: output.ExitUsage, Message: err.Error(), Err: err}
	}
	kctx.BindTo(ctx, (*context.Context)(nil))
	return kctx.Run()
}
