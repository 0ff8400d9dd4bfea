// Package cli implements the ledgerctl command-line client.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/SscSPs/ledger_desk/internal/apperrors"
	"github.com/SscSPs/ledger_desk/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_desk/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_desk/internal/core/services"
	"github.com/SscSPs/ledger_desk/internal/dto"
	"github.com/SscSPs/ledger_desk/internal/platform/config"
	"github.com/SscSPs/ledger_desk/internal/repositories/database/pgsql"
	"github.com/SscSPs/ledger_desk/internal/repositories/remote"
	"github.com/SscSPs/ledger_desk/pkg/database"
)

var (
	successSymbol = "✓"
	errorSymbol   = "✗"
	infoSymbol    = "→"

	successStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#00D787", Dark: "#00D787"})
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#FF5F87", Dark: "#FF5F87"})
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#5FAFFF", Dark: "#5FAFFF"})
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#808080", Dark: "#808080"})
	headerStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
)

func printSuccess(w io.Writer, message string) {
	_, _ = fmt.Fprintf(w, "%s %s\n", successStyle.Render(successSymbol), message)
}

func printError(w io.Writer, message string) {
	_, _ = fmt.Fprintf(w, "%s %s\n", errorStyle.Render(errorSymbol), errorStyle.Render(message))
}

func printInfof(w io.Writer, format string, args ...interface{}) {
	_, _ = fmt.Fprintf(w, "%s %s\n", infoStyle.Render(infoSymbol), fmt.Sprintf(format, args...))
}

// confirm asks question on the terminal. Without a terminal the answer is no,
// so scripts must pass --yes.
func confirm(question string) (bool, error) {
	if !isTerminal() {
		return false, nil
	}

	var ok bool
	form := huh.NewConfirm().
		Title(question).
		WithButtonAlignment(lipgloss.Left).
		Value(&ok)
	if err := form.Run(); err != nil {
		return false, fmt.Errorf("failed to read response: %w", err)
	}
	return ok, nil
}

func isTerminal() bool {
	fileInfo, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}

// EntryFile is a JSON entry read from a file path, or from stdin for "-".
type EntryFile struct {
	Name     string
	Contents []byte
}

// Decode implements kong.MapperValue.
func (f *EntryFile) Decode(ctx *kong.DecodeContext) error {
	var filename string
	if err := ctx.Scan.PopValueInto("filename", &filename); err != nil {
		return err
	}

	if filename == "-" {
		contents, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("failed to read from stdin: %w", err)
		}
		f.Name, f.Contents = "<stdin>", contents
		return nil
	}

	contents, err := os.ReadFile(filename)
	if err != nil {
		return err
	}
	f.Name, f.Contents = filename, contents
	return nil
}

// Input decodes the entry, accepting the same key spellings as the HTTP API.
func (f *EntryFile) Input() (domain.EntryInput, error) {
	input, err := dto.DecodeEntryInput(f.Contents)
	if err != nil {
		return domain.EntryInput{}, fmt.Errorf("%s: %w", f.Name, err)
	}
	return input, nil
}

// Globals defines global flags available to all commands.
type Globals struct {
	Backend     string        `help:"Store backend (remote or postgres)." enum:"remote,postgres" default:"remote" env:"LEDGER_BACKEND"`
	APIURL      string        `name:"api-url" help:"Base URL of the remote accounting service." default:"http://localhost:3000/api" env:"LEDGER_API_BASE_URL"`
	Token       string        `help:"Bearer token for the remote accounting service." env:"LEDGER_API_TOKEN"`
	Timeout     time.Duration `help:"Timeout of each remote call." default:"15s" env:"LEDGER_API_TIMEOUT"`
	Strict      bool          `help:"Fail entry listing when every lookup strategy errored." env:"STRICT_ENTRY_FETCH"`
	DatabaseURL string        `name:"database-url" help:"Postgres URL for the postgres backend." env:"PGSQL_URL"`
}

// openSession connects the configured store and returns a fresh ledger session
// plus a func releasing the store.
func (g *Globals) openSession(ctx context.Context) (*services.LedgerSession, func(), error) {
	var (
		repos   *portsrepo.RepositoryProvider
		release = func() {}
	)
	switch config.Backend(g.Backend) {
	case config.BackendPostgres:
		pool, err := database.NewPgxPool(ctx, g.DatabaseURL, true)
		if err != nil {
			return nil, nil, err
		}
		repos, release = pgsql.NewRepositoryProvider(pool), pool.Close
	default:
		opts := []remote.Option{remote.WithTimeout(g.Timeout)}
		if g.Token != "" {
			opts = append(opts, remote.WithToken(g.Token))
		}
		client, err := remote.NewClient(g.APIURL, opts...)
		if err != nil {
			return nil, nil, err
		}
		repos = remote.NewRepositoryProvider(client, services.WithStrictMode(g.Strict))
	}
	return services.NewLedgerSession(repos), release, nil
}

// withSession opens a session, runs fn under a context cancelled on interrupt
// and reports any error fn returns.
func withSession(ctx *kong.Context, globals *Globals, fn func(context.Context, *services.LedgerSession) error) error {
	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	session, release, err := globals.openSession(runCtx)
	if err != nil {
		return fmt.Errorf("failed to open %s store: %w", globals.Backend, err)
	}
	defer release()

	if err := fn(runCtx, session); err != nil {
		release()
		reportError(ctx, err)
	}
	return nil
}

// reportError prints err for the user and exits non-zero. Validation problems
// are listed one per line.
func reportError(ctx *kong.Context, err error) {
	var verrs apperrors.ValidationErrors
	if errors.As(err, &verrs) {
		for _, v := range verrs {
			line := string(v.Code)
			if v.Line > 0 {
				line = fmt.Sprintf("line %d %s", v.Line, v.Code)
			}
			_, _ = fmt.Fprintf(ctx.Stderr, "  %s %s\n", errorStyle.Render(line), v.Message)
		}
	}
	printError(ctx.Stderr, apperrors.UserMessage(err))
	_, _ = fmt.Fprintln(ctx.Stderr, mutedStyle.Render(err.Error()))
	os.Exit(1)
}
