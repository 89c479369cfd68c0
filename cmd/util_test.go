package cmd

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/darmiel/gatecheck/internal/audit"
	"github.com/darmiel/gatecheck/internal/core"
)

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
	assert.Equal(t, "ab", truncate("abcdef", 2))
	assert.Equal(t, "größ...", truncate("größenwahnsinn", 7))
	assert.Equal(t, "日本語", truncate("日本語", 3))
}

func TestRecordDecision_CreatesOutputDirectory(t *testing.T) {
	out := filepath.Join(t.TempDir(), "new", "dir")
	record := core.DecisionRecord{
		Decision: core.DecisionDeny,
		Reason:   "Authorization required: destructive_action",
		Signals:  core.Signals{"destructive_action"},
	}

	logPath, err := recordDecision(out, "manual-01", record, "v1.2.3")
	require.NoError(t, err)
	_, err = recordDecision(out, "manual-02", record, "v1.2.3")
	require.NoError(t, err)

	read, err := audit.ReadLog(logPath)
	require.NoError(t, err)
	require.Len(t, read.Entries, 2)
	assert.Equal(t, "manual-01", read.Entries[0].MatrixID)
	assert.Equal(t, core.DecisionDeny, read.Entries[1].Decision)
	assert.Equal(t, "v1.2.3", read.Entries[1].HarnessVersion)
}

func TestReadPrompt(t *testing.T) {
	got, err := readPrompt(strings.NewReader("unused"), []string{"issue", "a", "refund"})
	require.NoError(t, err)
	assert.Equal(t, "issue a refund", got)

	got, err = readPrompt(strings.NewReader("restart the database\n"), []string{"-"})
	require.NoError(t, err)
	assert.Equal(t, "restart the database", got)
}

func TestFactory_ResolveLogPath(t *testing.T) {
	fac := NewFactory()
	fac.LogPath = "/tmp/custom.jsonl"
	got, err := fac.ResolveLogPath()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/custom.jsonl", got)

	fac = NewFactory()
	fac.OutDir = "out"
	got, err = fac.ResolveLogPath()
	require.NoError(t, err)
	assert.Equal(t, "out/audit.jsonl", got)
}

func TestFactory_GetEngine(t *testing.T) {
	eng, err := NewFactory().GetEngine()
	require.NoError(t, err)
	assert.True(t, eng.Evaluate("please issue a refund").Denied())
	assert.False(t, eng.Evaluate("what is the weather today?").Denied())
}

func TestRenderMatrices(t *testing.T) {
	matrices := []core.Matrix{
		{ID: "refund", UserPrompt: "issue a refund", Source: "m/refund.yaml"},
		{ID: "hello", Title: "Greeting", UserPrompt: "hello", Source: "m/hello.yaml"},
	}

	var out strings.Builder
	require.NoError(t, renderMatrices(&out, matrices, "json"))
	assert.Equal(t,
		`{"id":"refund","user_prompt":"issue a refund"}`+"\n"+
			`{"id":"hello","title":"Greeting","user_prompt":"hello"}`+"\n",
		out.String())

	out.Reset()
	require.NoError(t, renderMatrices(&out, matrices, "yaml"))
	assert.Contains(t, out.String(), "# m/refund.yaml\nid: refund\nuser_prompt: issue a refund\n")
	assert.Contains(t, out.String(), "title: Greeting")
	assert.NotContains(t, out.String(), "source")

	out.Reset()
	require.NoError(t, renderMatrices(&out, matrices, "spew"))
	assert.Contains(t, out.String(), `UserPrompt: (string) (len=14) "issue a refund"`)

	assert.Error(t, renderMatrices(&out, matrices, "xml"))
}
