package cli

import (
	"context"
	"fmt"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/SscSPs/ledger_desk/internal/core/domain"
	"github.com/SscSPs/ledger_desk/internal/core/services"
)

type Commands struct {
	Globals

	Accounts      AccountsCmd      `cmd:"" help:"List accounts."`
	Journals      JournalsCmd      `cmd:"" help:"List journals."`
	CreateJournal CreateJournalCmd `cmd:"" name:"create-journal" help:"Create a journal."`
	DeleteJournal DeleteJournalCmd `cmd:"" name:"delete-journal" help:"Delete a journal and its entries."`
	Entries       EntriesCmd       `cmd:"" help:"List the entries of a journal."`
	Validate      ValidateCmd      `cmd:"" help:"Validate a journal entry file without posting it."`
	Post          PostCmd          `cmd:"" help:"Validate and post a journal entry file."`
	DeleteEntry   DeleteEntryCmd   `cmd:"" name:"delete-entry" help:"Delete a journal entry."`
}

type AccountsCmd struct {
	Type   string `help:"Only accounts of this type (ASSET, LIABILITY, EQUITY, REVENUE, EXPENSE)."`
	Search string `help:"Only accounts whose code or name contains this text."`
}

func (cmd *AccountsCmd) Run(ctx *kong.Context, globals *Globals) error {
	return withSession(ctx, globals, func(runCtx context.Context, s *services.LedgerSession) error {
		accounts, err := s.Directory().Refresh(runCtx, domain.AccountFilter{
			AccountType: domain.AccountType(cmd.Type),
			Search:      cmd.Search,
		})
		if err != nil {
			return err
		}
		rows := make([][]string, len(accounts))
		for i, a := range accounts {
			rows[i] = []string{a.AccountID, a.Code, a.Name, string(a.AccountType)}
		}
		renderTable(ctx, []string{"ID", "CODE", "NAME", "TYPE"}, rows)
		printInfof(ctx.Stdout, "%d accounts", len(accounts))
		return nil
	})
}

type JournalsCmd struct {
	Type string `help:"Only journals of this type (GENERAL, SALES, PURCHASE, CASH, BANK)."`
	Code string `help:"Only the journal with this code."`
}

func (cmd *JournalsCmd) Run(ctx *kong.Context, globals *Globals) error {
	return withSession(ctx, globals, func(runCtx context.Context, s *services.LedgerSession) error {
		journals, err := s.ListJournals(runCtx, domain.JournalFilter{
			JournalType: domain.JournalType(cmd.Type),
			Code:        cmd.Code,
		})
		if err != nil {
			return err
		}
		rows := make([][]string, len(journals))
		for i, j := range journals {
			created := ""
			if !j.CreatedAt.IsZero() {
				created = j.CreatedAt.Format("2006-01-02 15:04")
			}
			rows[i] = []string{j.JournalID, j.Code, j.Name, string(j.JournalType), created}
		}
		renderTable(ctx, []string{"ID", "CODE", "NAME", "TYPE", "CREATED"}, rows)
		printInfof(ctx.Stdout, "%d journals", len(journals))
		return nil
	})
}

type CreateJournalCmd struct {
	Name string `help:"Journal name." required:""`
	Code string `help:"Unique journal code." required:""`
	Type string `help:"Journal type." enum:"GENERAL,SALES,PURCHASE,CASH,BANK" default:"GENERAL"`
}

func (cmd *CreateJournalCmd) Run(ctx *kong.Context, globals *Globals) error {
	return withSession(ctx, globals, func(runCtx context.Context, s *services.LedgerSession) error {
		j, err := s.CreateJournal(runCtx, domain.NewJournal{
			Name:        cmd.Name,
			Code:        cmd.Code,
			JournalType: domain.JournalType(cmd.Type),
		})
		if err != nil {
			return err
		}
		printSuccess(ctx.Stdout, fmt.Sprintf("created journal %s (%s)", j.Code, j.JournalID))
		return nil
	})
}

type DeleteJournalCmd struct {
	JournalID string `arg:"" name:"journal-id" help:"Journal id (24 hex characters)."`
	Yes       bool   `help:"Delete without asking for confirmation." short:"y"`
}

func (cmd *DeleteJournalCmd) Run(ctx *kong.Context, globals *Globals) error {
	if ok, err := confirmed(ctx, cmd.Yes, fmt.Sprintf("Delete journal %s and all of its entries?", cmd.JournalID)); !ok {
		return err
	}
	return withSession(ctx, globals, func(runCtx context.Context, s *services.LedgerSession) error {
		if err := s.DeleteJournal(runCtx, cmd.JournalID); err != nil {
			return err
		}
		printSuccess(ctx.Stdout, "deleted journal "+cmd.JournalID)
		return nil
	})
}

type EntriesCmd struct {
	JournalID string `arg:"" name:"journal-id" help:"Journal id (24 hex characters)."`
}

func (cmd *EntriesCmd) Run(ctx *kong.Context, globals *Globals) error {
	return withSession(ctx, globals, func(runCtx context.Context, s *services.LedgerSession) error {
		entries, err := s.SelectJournal(runCtx, cmd.JournalID)
		if err != nil {
			return err
		}
		var rows [][]string
		for _, e := range entries {
			rows = append(rows, []string{e.EntryID, e.CreatedAt.Format("2006-01-02"), e.Description, e.TotalDebit.StringFixed(2), e.TotalCredit.StringFixed(2)})
			for _, l := range e.Lines {
				account := l.AccountID
				if l.Account != nil && l.Account.Code != "" {
					account = l.Account.Code
				}
				rows = append(rows, []string{"", "  " + account, l.Description, l.Debit.StringFixed(2), l.Credit.StringFixed(2)})
			}
		}
		renderTable(ctx, []string{"ENTRY", "DATE / ACCOUNT", "DESCRIPTION", "DEBIT", "CREDIT"}, rows)
		printInfof(ctx.Stdout, "%d entries", len(entries))
		return nil
	})
}

type ValidateCmd struct {
	File EntryFile `arg:"" help:"JSON file holding the entry, or - for stdin."`
}

func (cmd *ValidateCmd) Run(ctx *kong.Context, globals *Globals) error {
	input, err := cmd.File.Input()
	if err != nil {
		return err
	}
	return withSession(ctx, globals, func(runCtx context.Context, s *services.LedgerSession) error {
		canonical, err := s.ValidateEntry(runCtx, input)
		if err != nil {
			return err
		}
		printSuccess(ctx.Stdout, fmt.Sprintf("entry is balanced: %d lines, debit %s, credit %s",
			len(canonical.Lines), canonical.TotalDebit.StringFixed(2), canonical.TotalCredit.StringFixed(2)))
		return nil
	})
}

type PostCmd struct {
	File EntryFile `arg:"" help:"JSON file holding the entry, or - for stdin."`
}

func (cmd *PostCmd) Run(ctx *kong.Context, globals *Globals) error {
	input, err := cmd.File.Input()
	if err != nil {
		return err
	}
	return withSession(ctx, globals, func(runCtx context.Context, s *services.LedgerSession) error {
		created, err := s.CreateEntry(runCtx, input)
		if err != nil {
			return err
		}
		printSuccess(ctx.Stdout, fmt.Sprintf("posted entry %s to journal %s", created.EntryID, created.JournalID))
		return nil
	})
}

type DeleteEntryCmd struct {
	EntryID string `arg:"" name:"entry-id" help:"Entry id."`
	Yes     bool   `help:"Delete without asking for confirmation." short:"y"`
}

func (cmd *DeleteEntryCmd) Run(ctx *kong.Context, globals *Globals) error {
	if ok, err := confirmed(ctx, cmd.Yes, fmt.Sprintf("Delete journal entry %s?", cmd.EntryID)); !ok {
		return err
	}
	return withSession(ctx, globals, func(runCtx context.Context, s *services.LedgerSession) error {
		if err := s.DeleteEntry(runCtx, cmd.EntryID); err != nil {
			return err
		}
		printSuccess(ctx.Stdout, "deleted entry "+cmd.EntryID)
		return nil
	})
}

// confirmed reports whether a destructive command may go ahead.
func confirmed(ctx *kong.Context, yes bool, question string) (bool, error) {
	if yes {
		return true, nil
	}
	ok, err := confirm(question)
	if err != nil {
		return false, err
	}
	if !ok {
		printInfof(ctx.Stdout, "aborted; pass --yes to skip the prompt")
	}
	return ok, nil
}

func renderTable(ctx *kong.Context, headers []string, rows [][]string) {
	if len(rows) == 0 {
		_, _ = fmt.Fprintln(ctx.Stdout, mutedStyle.Render("(none)"))
		return
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(mutedStyle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	_, _ = fmt.Fprintln(ctx.Stdout, t.Render())
}
