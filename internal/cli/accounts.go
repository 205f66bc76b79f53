package cli

import (
	"fmt"

	"github.com/wateraccounting/wacollect/internal/config"
	"github.com/wateraccounting/wacollect/internal/logging"
	"github.com/wateraccounting/wacollect/internal/output"
	"github.com/wateraccounting/wacollect/pkg/browser"
)

// AccountsListCmd lists the known portal accounts
type AccountsListCmd struct{}

type portalRow struct {
	Name        string `json:"name"`
	Default     string `json:"default"`
	Description string `json:"description"`
	SignupURL   string `json:"signup_url"`
}

// Run executes the accounts list command
func (cmd *AccountsListCmd) Run(fp *FormatterProvider) error {
	rows := make([]portalRow, 0, len(config.KnownAccounts))
	for _, name := range config.KnownAccounts {
		p := config.Portals[name]
		rows = append(rows, portalRow{
			Name:        name,
			Default:     formatBool(name == config.DefaultAccount),
			Description: p.Description,
			SignupURL:   p.SignupURL,
		})
	}

	cols := []output.Column{
		{Name: "ACCOUNT", Key: "Name"},
		{Name: "DEFAULT", Key: "Default"},
		{Name: "DESCRIPTION", Key: "Description", Width: 50},
		{Name: "SIGNUP", Key: "SignupURL"},
	}
	return fp.Formatter.PrintList(rows, cols)
}

// AccountsShowCmd prints the stored credentials of one account
type AccountsShowCmd struct {
	Name   string `arg:"" help:"Account name" predictor:"account"`
	Reveal bool   `help:"Print the password instead of masking it"`
}

type accountView struct {
	Name     string         `json:"name"`
	Username string         `json:"username"`
	Password string         `json:"password"`
	Extra    map[string]any `json:"extra,omitempty"`
}

// Run executes the accounts show command
func (cmd *AccountsShowCmd) Run(g *Globals, fp *FormatterProvider, logger *logging.Logger) error {
	store, err := openStore(g, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	acct, err := store.Account(cmd.Name)
	if err != nil {
		return output.FromError(err).WithHint("Run: wacollect accounts list")
	}

	view := accountView{Name: acct.Name, Username: acct.Username, Password: acct.Password}
	if !cmd.Reveal {
		view.Password = maskSecret(acct.Password)
	}
	for k, v := range acct.Fields {
		if k == "username" || k == "password" {
			continue
		}
		if view.Extra == nil {
			view.Extra = map[string]any{}
		}
		view.Extra[k] = v
	}

	return fp.Formatter.Print(view)
}

// AccountsOpenCmd opens the registration page of a portal in the browser
type AccountsOpenCmd struct {
	Name string `arg:"" help:"Account name" predictor:"account"`
}

// Run executes the accounts open command
func (cmd *AccountsOpenCmd) Run(streams *Streams, g *Globals) error {
	portal, err := config.GetPortal(cmd.Name)
	if err != nil {
		return &output.CLIError{
			Message:  err.Error(),
			ExitCode: output.ExitNotFound,
			Hint:     "Run: wacollect accounts list",
		}
	}

	fmt.Fprintf(streams.Err, "Opening %s\n", portal.SignupURL)
	if g.NoInput {
		fmt.Fprintln(streams.Out, portal.SignupURL)
		return nil
	}
	if err := browser.Open(portal.SignupURL); err != nil {
		fmt.Fprintf(streams.Err, "Could not open a browser: %v\n", err)
		fmt.Fprintln(streams.Out, portal.SignupURL)
	}
	return nil
}
