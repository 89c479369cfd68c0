package runner

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/darmiel/gatecheck/internal/audit"
	"github.com/darmiel/gatecheck/internal/core"
	"github.com/darmiel/gatecheck/internal/engine"
	"github.com/darmiel/gatecheck/internal/matrix"
	"github.com/darmiel/gatecheck/internal/report"
)

type progressRecorder struct {
	lines []string
}

func (p *progressRecorder) Debug(string, ...any) {}
func (p *progressRecorder) Info(format string, args ...any) {
	p.lines = append(p.lines, fmt.Sprintf(format, args...))
}
func (p *progressRecorder) Warn(string, ...any)  {}
func (p *progressRecorder) Error(string, ...any) {}

var runTime = time.Date(2026, 10, 18, 8, 0, 0, 0, time.UTC)

func newRunner(logger *progressRecorder) *Runner {
	return &Runner{
		Engine:  engine.New(engine.DefaultPolicy()),
		Logger:  logger,
		Version: "v0.3.0",
		Now:     func() time.Time { return runTime },
	}
}

func writeMatrices(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
	}
	return dir
}

func TestRunAll_TwoMatricesAndReport(t *testing.T) {
	src := writeMatrices(t, map[string]string{
		"01_refund.yaml":  "id: refund\ntitle: Refund request\nuser_prompt: Please issue a refund to the customer\n",
		"02_weather.yaml": "id: weather\nuser_prompt: What is the weather today?\n",
	})
	out := filepath.Join(t.TempDir(), "out", "nested")

	progress := &progressRecorder{}
	res, err := newRunner(progress).RunAll(src, out)
	require.NoError(t, err)

	assert.Equal(t, 2, res.Total)
	assert.Equal(t, 1, res.Denied)
	assert.Equal(t, 1, res.Passed)
	assert.Equal(t, filepath.Join(out, audit.LogFileName), res.LogPath)

	assert.Equal(t, []string{
		"Running 2 tests...",
		"refund -> DENY (Authorization required: financial)",
		"weather -> PASS (No authorization boundary detected)",
	}, progress.lines)

	rep, err := report.Generate(res.LogPath, out, report.Options{CSV: true})
	require.NoError(t, err)
	assert.Equal(t, 2, rep.Summary.Total)
	assert.Equal(t, 1, rep.Summary.Denied)
	assert.Equal(t, 1, rep.Summary.Passed)
	assert.Equal(t, "50.0", fmt.Sprintf("%.1f", rep.Summary.DenyRate()))

	text, err := os.ReadFile(rep.TextPath)
	require.NoError(t, err)
	assert.Contains(t, string(text), "DENY Rate: 50.0%")
}

func TestRunAll_LogRoundTrip(t *testing.T) {
	src := writeMatrices(t, map[string]string{
		"a.yaml": "id: deploy\ntitle: Deploy\nuser_prompt: approve the deployment to production and restart the database\n",
		"b.yaml": "id: hello\nuser_prompt: hello\n",
	})
	out := t.TempDir()

	res, err := newRunner(&progressRecorder{}).RunAll(src, out)
	require.NoError(t, err)

	read, err := audit.ReadLog(res.LogPath)
	require.NoError(t, err)
	require.Equal(t, 0, read.Skipped)

	eng := engine.New(engine.DefaultPolicy())
	want := []core.AuditEntry{
		audit.NewEntry(runTime, "deploy", "Deploy", eng.Evaluate("approve the deployment to production and restart the database"), "v0.3.0"),
		audit.NewEntry(runTime, "hello", "", eng.Evaluate("hello"), "v0.3.0"),
	}
	assert.Equal(t, want, read.Entries)
	assert.Equal(t, core.Signals{"authority", "production_environment", "system_modification"}, read.Entries[0].Signals)
}

func TestRunAll_RerunDiscardsPreviousEntries(t *testing.T) {
	out := t.TempDir()
	r := newRunner(&progressRecorder{})

	first := writeMatrices(t, map[string]string{
		"a.yaml": "id: a\nuser_prompt: refund\n",
		"b.yaml": "id: b\nuser_prompt: hi\n",
		"c.yaml": "id: c\nuser_prompt: hi\n",
	})
	_, err := r.RunAll(first, out)
	require.NoError(t, err)

	second := writeMatrices(t, map[string]string{
		"x.yaml": "id: x\nuser_prompt: hi\n",
	})
	res, err := r.RunAll(second, out)
	require.NoError(t, err)

	read, err := audit.ReadLog(res.LogPath)
	require.NoError(t, err)
	require.Len(t, read.Entries, 1)
	assert.Equal(t, "x", read.Entries[0].MatrixID)

	rep, err := report.Generate(res.LogPath, out, report.Options{})
	require.NoError(t, err)
	assert.Equal(t, 1, rep.Summary.Total)
}

func TestRunAll_LoadErrorAbortsBeforeLogging(t *testing.T) {
	out := t.TempDir()
	logPath := audit.LogPath(out)
	require.NoError(t, os.WriteFile(logPath, []byte(`{"matrix_id":"stale"}`+"\n"), 0o600))

	src := writeMatrices(t, map[string]string{
		"a.yaml": "id: good\nuser_prompt: hi\n",
		"b.yaml": "- not\n- a mapping\n",
	})

	progress := &progressRecorder{}
	_, err := newRunner(progress).RunAll(src, out)
	require.Error(t, err)

	var fe *matrix.FormatError
	assert.True(t, errors.As(err, &fe))
	assert.Empty(t, progress.lines, "nothing should be evaluated")

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Empty(t, data, "log is truncated and stays empty")
}

func TestRunAll_MissingSource(t *testing.T) {
	_, err := newRunner(&progressRecorder{}).RunAll(filepath.Join(t.TempDir(), "nope"), t.TempDir())
	assert.ErrorIs(t, err, matrix.ErrNotFound)
}

func TestRunAll_DryRun(t *testing.T) {
	src := writeMatrices(t, map[string]string{
		"a.yaml": "id: a\nuser_prompt: wipe the disk\n",
	})
	out := t.TempDir()

	r := newRunner(&progressRecorder{})
	r.DryRun = true
	res, err := r.RunAll(src, out)
	require.NoError(t, err)

	assert.Empty(t, res.LogPath)
	require.Len(t, res.Entries, 1)
	assert.Equal(t, core.DecisionDeny, res.Entries[0].Decision)

	_, err = os.Stat(audit.LogPath(out))
	assert.True(t, os.IsNotExist(err), "dry run must not create the audit log")
}

func TestRunAll_RequiresEngine(t *testing.T) {
	_, err := (&Runner{}).RunAll(t.TempDir(), t.TempDir())
	assert.Error(t, err)
}
