package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sadopc/daybook/internal/clock"
	"github.com/sadopc/daybook/internal/fortune"
	"github.com/sadopc/daybook/internal/todo"
)

var testNow = time.Date(2025, 6, 15, 10, 0, 0, 0, time.Local)

func setup(t *testing.T) (string, *clock.Fake) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("DAYBOOK_DB_PATH", filepath.Join(dir, "daybook.db"))
	t.Setenv("DAYBOOK_LOG_OUTPUT", "file")
	t.Setenv("DAYBOOK_LOG_FILE", filepath.Join(dir, "daybook.log"))
	t.Chdir(dir)
	return dir, clock.NewFake(testNow)
}

func run(t *testing.T, clk clock.Clock, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand(clk)
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func firstID() string {
	return fmt.Sprint(testNow.UnixMilli())
}

func TestVersion(t *testing.T) {
	_, clk := setup(t)
	out, err := run(t, clk, "version")
	require.NoError(t, err)
	assert.Equal(t, "daybook dev\n", out)
}

func TestFortuneJSON(t *testing.T) {
	_, clk := setup(t)
	out, err := run(t, clk, "fortune", "--date", "2025-06-15", "--json")
	require.NoError(t, err)

	var r fortune.Result
	require.NoError(t, json.Unmarshal([]byte(out), &r))
	assert.Equal(t, fortune.Generate(time.Date(2025, 6, 15, 0, 0, 0, 0, time.Local)), r)
	assert.Equal(t, "吉", r.Fortune)
}

func TestFortuneDefaultsToToday(t *testing.T) {
	_, clk := setup(t)
	out, err := run(t, clk, "fortune")
	require.NoError(t, err)
	assert.Contains(t, out, "2025/06/15")
	assert.Contains(t, out, "Lucky items:")
}

func TestFortuneBadDate(t *testing.T) {
	_, clk := setup(t)
	_, err := run(t, clk, "fortune", "--date", "2025-02-30")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "date does not exist")
}

func TestTodoLifecycle(t *testing.T) {
	_, clk := setup(t)

	out, err := run(t, clk, "todo", "add", "Buy", "milk", "--due", "2025-06-20")
	require.NoError(t, err)
	assert.Equal(t, "Added "+firstID()+": Buy milk\n", out)

	out, err = run(t, clk, "todo", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Buy milk")
	assert.Contains(t, out, "2025/06/20")
	assert.Contains(t, out, "Total: 1 | Done: 0 | Pending: 1")

	_, err = run(t, clk, "todo", "done", firstID())
	require.NoError(t, err)
	// done is idempotent
	_, err = run(t, clk, "todo", "done", firstID())
	require.NoError(t, err)

	out, err = run(t, clk, "todo", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Total: 1 | Done: 1 | Pending: 0")

	_, err = run(t, clk, "todo", "done", "--undo", firstID())
	require.NoError(t, err)
	out, _ = run(t, clk, "todo", "list")
	assert.Contains(t, out, "Done: 0")

	_, err = run(t, clk, "todo", "rm", firstID())
	require.NoError(t, err)
	out, err = run(t, clk, "todo", "list")
	require.NoError(t, err)
	assert.Equal(t, "No tasks.\n", out)
}

func TestTodoAddRejectsPastDate(t *testing.T) {
	_, clk := setup(t)
	_, err := run(t, clk, "todo", "add", "Late", "--due", "2025-06-14")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "past dates cannot be set")

	out, _ := run(t, clk, "todo", "list")
	assert.Equal(t, "No tasks.\n", out)
}

func TestTodoAddBlank(t *testing.T) {
	_, clk := setup(t)
	_, err := run(t, clk, "todo", "add", "   ")
	assert.Error(t, err)
}

func TestTodoEdit(t *testing.T) {
	_, clk := setup(t)
	_, err := run(t, clk, "todo", "add", "Report", "--due", "2025-06-20")
	require.NoError(t, err)

	_, err = run(t, clk, "todo", "edit", firstID(), "--text", "Quarterly report")
	require.NoError(t, err)
	_, err = run(t, clk, "todo", "edit", firstID(), "--due", "")
	require.NoError(t, err)

	out, _ := run(t, clk, "todo", "list")
	assert.Contains(t, out, "Quarterly report")
	assert.NotContains(t, out, "2025/06/20")

	_, err = run(t, clk, "todo", "edit", firstID())
	assert.Error(t, err)
	_, err = run(t, clk, "todo", "edit", firstID(), "--due", "tomorrow")
	assert.Error(t, err)
}

func TestTodoUnknownID(t *testing.T) {
	_, clk := setup(t)
	_, err := run(t, clk, "todo", "rm", "42")
	require.Error(t, err)
	assert.ErrorIs(t, err, todo.ErrNotFound)

	_, err = run(t, clk, "todo", "done", "abc")
	assert.Error(t, err)
}

func TestTodoListFilters(t *testing.T) {
	_, clk := setup(t)
	_, err := run(t, clk, "todo", "add", "Soon", "--due", "2025-06-16")
	require.NoError(t, err)
	_, err = run(t, clk, "todo", "add", "Later", "--due", "2025-06-17")
	require.NoError(t, err)

	clk.Advance(48 * time.Hour) // 2025-06-17

	out, err := run(t, clk, "todo", "list", "--overdue")
	require.NoError(t, err)
	assert.Contains(t, out, "Soon")
	assert.NotContains(t, out, "Later")

	out, err = run(t, clk, "todo", "list", "--today")
	require.NoError(t, err)
	assert.Contains(t, out, "Later")
	assert.NotContains(t, out, "Soon")

	_, err = run(t, clk, "todo", "list", "--today", "--overdue")
	assert.Error(t, err)
}

func TestTodoClear(t *testing.T) {
	_, clk := setup(t)
	run(t, clk, "todo", "add", "one")
	run(t, clk, "todo", "add", "two")

	out, err := run(t, clk, "todo", "clear", "--yes")
	require.NoError(t, err)
	assert.Equal(t, "Deleted 2 tasks\n", out)

	out, _ = run(t, clk, "store", "keys")
	assert.NotContains(t, out, todo.StorageKey)
}

func TestExport(t *testing.T) {
	dir, clk := setup(t)
	run(t, clk, "todo", "add", "Buy milk")

	path := filepath.Join(dir, "out.json")
	out, err := run(t, clk, "export", "--format", "json", "--out", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Exported 1 tasks")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Buy milk")
}

func TestExportDefaultPath(t *testing.T) {
	dir, clk := setup(t)
	_, err := run(t, clk, "export", "-f", "yaml")
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, "daybook-export-2025-06-15.yaml"))
	assert.NoError(t, err)
}

func TestExportUnknownFormat(t *testing.T) {
	_, clk := setup(t)
	_, err := run(t, clk, "export", "--format", "xml")
	assert.Error(t, err)
}

func TestStoreKeys(t *testing.T) {
	_, clk := setup(t)
	out, err := run(t, clk, "store", "keys")
	require.NoError(t, err)
	assert.Contains(t, out, "No keys.")

	run(t, clk, "todo", "add", "one")
	out, err = run(t, clk, "store", "keys")
	require.NoError(t, err)
	assert.Contains(t, out, todo.StorageKey)
}
