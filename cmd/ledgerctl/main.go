package main

import (
	"fmt"

	"github.com/alecthomas/kong"

	"github.com/SscSPs/ledger_desk/internal/cli"
)

var (
	// Version contains the application version number. It's set via ldflags
	// when building.
	Version = ""

	// CommitSHA contains the SHA of the commit that this application was built
	// against. It's set via ldflags when building.
	CommitSHA = ""

	app struct {
		Version kong.VersionFlag `help:"Show version information"`
		cli.Commands
	}
)

func main() {
	ctx := kong.Parse(&app,
		kong.Vars{
			"version": buildVersion(),
		},
		kong.Name("ledgerctl"),
		kong.Description("Command-line client for the ledger: accounts, journals and journal entries."),
		kong.UsageOnError(),
		kong.Bind(&app.Globals),
	)

	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}

func buildVersion() string {
	if Version == "" {
		Version = "dev"
	}
	if CommitSHA == "" {
		return Version
	}
	return fmt.Sprintf("%s (%s)", Version, CommitSHA)
}
