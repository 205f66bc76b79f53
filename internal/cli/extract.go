package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/wateraccounting/wacollect/internal/archive"
	"github.com/wateraccounting/wacollect/internal/output"
	"github.com/wateraccounting/wacollect/internal/progress"
)

// ExtractCmd decompresses a downloaded .gz file and removes the archive
type ExtractCmd struct {
	In  string `arg:"" help:"Compressed input" type:"existingfile" predictor:"file"`
	Out string `arg:"" optional:"" help:"Output file (default: input without .gz)" type:"path"`
}

type extractResult struct {
	Output string `json:"output"`
	Size   string `json:"size"`
}

// Run executes the extract command
func (cmd *ExtractCmd) Run(ctx context.Context, g *Globals, fp *FormatterProvider, streams *Streams) error {
	out := cmd.Out
	if out == "" {
		out = strings.TrimSuffix(cmd.In, ".gz")
		if out == cmd.In {
			return &output.CLIError{
				Message:  fmt.Sprintf("cannot infer output name for %s", cmd.In),
				ExitCode: output.ExitUsage,
				Hint:     "Pass the output path as the second argument",
			}
		}
	}
	if _, err := os.Stat(out); err == nil && !g.Force {
		return &output.CLIError{
			Message:  fmt.Sprintf("%s already exists", out),
			ExitCode: output.ExitConflict,
			Hint:     "Pass --force to overwrite it",
		}
	}

	var report archive.ProgressFunc
	if g.ResolvedOutput() != "json" {
		name := filepath.Base(cmd.In)
		report = func(done, total int64) {
			_ = progress.Default.Render(streams.Err, done, total, "Extracting", name)
		}
	}

	if err := archive.ExtractGzip(ctx, cmd.In, out, report); err != nil {
		return err
	}

	info, err := os.Stat(out)
	if err != nil {
		return err
	}
	return fp.Formatter.Print(extractResult{Output: out, Size: formatBytes(info.Size())})
}
