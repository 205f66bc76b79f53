package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/wateraccounting/wacollect/internal/cli"
	"github.com/wateraccounting/wacollect/internal/output"
	"github.com/wateraccounting/wacollect/internal/secure"
)

var (
	version = "dev"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Wipe key material before exiting.
	defer secure.Purge()

	root := &cli.CLI{}
	parser, err := cli.New(root, version)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return output.ExitGeneral
	}

	cli.Complete(parser)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.Execute(ctx, parser, os.Args[1:]); err != nil {
		return output.ExitWithError(output.New(root.ResolvedOutput()), err)
	}
	return output.ExitOK
}
