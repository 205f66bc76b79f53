package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/wateraccounting/wacollect/internal/output"
)

// prompt prints a prompt and reads a line of input
func prompt(streams *Streams, reader *bufio.Reader, text string) string {
	fmt.Fprint(streams.Err, text)
	line, _ := reader.ReadString('\n')
	return strings.TrimSpace(line)
}

// promptSecret reads a line without echo when stdin is a terminal and
// falls back to a plain read otherwise
func promptSecret(streams *Streams, reader *bufio.Reader, text string) (string, error) {
	if f, ok := streams.In.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(streams.Err, text)
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(streams.Err)
		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		return string(b), nil
	}
	return prompt(streams, reader, text), nil
}

// requirePassword returns password, or prompts for it unless prompts are
// disabled
func requirePassword(g *Globals, streams *Streams, password string) (string, error) {
	if password != "" {
		return password, nil
	}
	if g.NoInput {
		return "", &output.CLIError{
			Message:  "A password is required",
			ExitCode: output.ExitUsage,
			Hint:     "Pass --password or set WACOLLECT_PASSWORD",
		}
	}
	return promptSecret(streams, bufio.NewReader(streams.In), "Password: ")
}
