package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, args ...string) (*Commands, *kong.Context) {
	t.Helper()
	var cmds Commands
	parser, err := kong.New(&cmds, kong.Name("ledgerctl"), kong.Exit(func(int) { t.Fatal("unexpected exit") }))
	require.NoError(t, err)
	ctx, err := parser.Parse(args)
	require.NoError(t, err)
	return &cmds, ctx
}

func TestParse_GlobalsAndCommand(t *testing.T) {
	t.Setenv("LEDGER_API_TOKEN", "from-env")

	cmds, ctx := parse(t, "--timeout=3s", "--strict", "create-journal", "--name=General", "--code=GJ")

	assert.Equal(t, "create-journal", ctx.Command())
	assert.Equal(t, "remote", cmds.Backend)
	assert.Equal(t, 3*time.Second, cmds.Timeout)
	assert.True(t, cmds.Strict)
	assert.Equal(t, "from-env", cmds.Token)
	assert.Equal(t, "GENERAL", cmds.CreateJournal.Type)
}

func TestParse_PostReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "entry.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"journalId": "x"}`), 0o600))

	cmds, ctx := parse(t, "post", path)
	assert.Equal(t, "post <file>", ctx.Command())
	assert.Equal(t, path, cmds.Post.File.Name)
	input, err := cmds.Post.File.Input()
	require.NoError(t, err)
	assert.Equal(t, "x", input.Journal.Raw())
}

func TestParse_ValidateReadsStdin(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)
	_, err = w.WriteString(`{"journal": {"_id": "y"}, "lines": "nope"}`)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	stdin := os.Stdin
	os.Stdin = r
	t.Cleanup(func() { os.Stdin = stdin; _ = r.Close() })

	cmds, _ := parse(t, "validate", "-")
	assert.Equal(t, "<stdin>", cmds.Validate.File.Name)
	_, err = cmds.Validate.File.Input()
	assert.EqualError(t, err, "<stdin>: lines must be an array")
}

func TestRenderTable(t *testing.T) {
	var out bytes.Buffer
	_, ctx := parse(t, "accounts")
	ctx.Stdout = &out

	renderTable(ctx, []string{"CODE", "NAME"}, nil)
	assert.Contains(t, out.String(), "(none)")

	out.Reset()
	renderTable(ctx, []string{"CODE", "NAME"}, [][]string{{"1000", "Cash"}})
	assert.Contains(t, out.String(), "CODE")
	assert.Contains(t, out.String(), "Cash")
}
