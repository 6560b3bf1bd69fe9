package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/leapstack-labs/sqltree/internal/cli/commands"
	"github.com/leapstack-labs/sqltree/internal/cli/config"
	"github.com/leapstack-labs/sqltree/internal/cli/output"
	"github.com/leapstack-labs/sqltree/internal/testutil"
	"github.com/leapstack-labs/sqltree/pkg/format"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes the root command inside an empty project directory.
func run(t *testing.T, dir string, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	config.ResetConfig()
	t.Chdir(dir)

	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	cmd := NewRootCmd()
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func writeTokens(t *testing.T, dir, name, sql string) string {
	t.Helper()
	data, err := json.Marshal(testutil.Lex(sql))
	require.NoError(t, err)
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0600))
	return path
}

func TestRootCmd_Help(t *testing.T) {
	stdout, _, err := run(t, t.TempDir(), "--help")
	require.NoError(t, err)

	for _, want := range []string{"parse", "check", "kinds", "version", "completion", "--output"} {
		assert.Contains(t, stdout, want)
	}
}

func TestRootCmd_Version(t *testing.T) {
	stdout, _, err := run(t, t.TempDir(), "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "sqltree v"+Version)

	stdout, _, err = run(t, t.TempDir(), "--version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "sqltree "+Version)
}

func TestRootCmd_ParseWithOutputFlag(t *testing.T) {
	dir := t.TempDir()
	path := writeTokens(t, dir, "q.json", "SELECT 1")

	stdout, _, err := run(t, dir, "parse", "-o", "json", path)
	require.NoError(t, err)

	var doc format.Document
	require.NoError(t, json.Unmarshal([]byte(stdout), &doc))
	assert.Equal(t, "Root", doc.Root.Tag)
}

func TestRootCmd_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sqltree.yaml"), []byte("output: text\nstrict: true\n"), 0600))
	path := writeTokens(t, dir, "bad.json", "SELECT (1")

	_, _, err := run(t, dir, "parse", path)
	var structural *commands.StructuralError
	require.True(t, errors.As(err, &structural), "strict from sqltree.yaml, got %v", err)

	_, _, err = run(t, dir, "parse", "--strict=false", path)
	require.NoError(t, err, "flag overrides the config file")
}

func TestRootCmd_TokenAliases(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sqltree.yaml"), []byte("output: json\ntoken_aliases:\n  RootTestOtherNode: WORD\n  RootTestWhiteSpace: WHITESPACE\n"), 0600))
	path := filepath.Join(dir, "q.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"kind":"RootTestOtherNode","text":"SELECT"},{"kind":"RootTestWhiteSpace","text":" "},{"kind":"RootTestOtherNode","text":"1"}]`), 0600))

	stdout, _, err := run(t, dir, "parse", path)
	require.NoError(t, err)

	var doc format.Document
	require.NoError(t, json.Unmarshal([]byte(stdout), &doc))
	assert.Equal(t, "Statement", doc.Root.Children[0].Tag)
}

func TestRootCmd_VerboseLogs(t *testing.T) {
	dir := t.TempDir()
	path := writeTokens(t, dir, "q.json", "SELECT f(1")

	_, stderr, err := run(t, dir, "parse", "-v", "-o", "text", path)
	require.NoError(t, err)
	assert.Contains(t, stderr, "level=DEBUG")
	assert.Contains(t, stderr, "structural anomalies found")
}

func TestRootCmd_InvalidOutput(t *testing.T) {
	dir := t.TempDir()
	path := writeTokens(t, dir, "q.json", "SELECT 1")

	_, _, err := run(t, dir, "parse", "-o", "html", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output mode")
}

func TestRootCmd_Completion(t *testing.T) {
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		t.Run(shell, func(t *testing.T) {
			stdout, _, err := run(t, t.TempDir(), "completion", shell)
			require.NoError(t, err)
			assert.Contains(t, stdout, "sqltree")
		})
	}

	_, _, err := run(t, t.TempDir(), "completion", "tcsh")
	assert.Error(t, err)
}

func TestGetConfigAndRendererDefaults(t *testing.T) {
	ctx := context.Background()

	c := GetConfig(ctx)
	assert.Equal(t, config.DefaultOutput, c.Output)
	assert.Equal(t, config.DefaultParallelism, c.Parallelism)
	assert.True(t, c.WarnDataLoss)

	assert.NotNil(t, GetRenderer(ctx))

	r := output.NewRendererWithTTY(&bytes.Buffer{}, &bytes.Buffer{}, false, output.ModeJSON)
	ctx = context.WithValue(ctx, rendererKey{}, r)
	ctx = context.WithValue(ctx, configKey{}, c)
	assert.Same(t, r, GetRenderer(ctx))
	assert.Same(t, c, GetConfig(ctx))
}
