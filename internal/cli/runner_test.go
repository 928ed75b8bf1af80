package cli_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/taskboard/internal/cli"
	"github.com/Makepad-fr/taskboard/internal/errors"
	"github.com/Makepad-fr/taskboard/internal/model"
	"github.com/Makepad-fr/taskboard/internal/store"
)

type harness struct {
	runner *cli.Runner
	store  *store.Store
	out    *bytes.Buffer
	errOut *bytes.Buffer
}

func newHarness(t *testing.T, input string, opts ...cli.RunnerOption) *harness {
	t.Helper()

	n := 0
	s := store.New(store.WithIDGenerator(func() string {
		n++
		return fmt.Sprintf("t%d", n)
	}))

	h := &harness{store: s, out: &bytes.Buffer{}, errOut: &bytes.Buffer{}}
	opts = append([]cli.RunnerOption{cli.WithIO(strings.NewReader(input), h.out, h.errOut)}, opts...)
	h.runner = cli.NewRunner(s, opts...)
	return h
}

func (h *harness) run(args ...string) int {
	h.out.Reset()
	h.errOut.Reset()
	return h.runner.Run(args)
}

func TestHelpAndUnknown(t *testing.T) {
	t.Parallel()

	h := newHarness(t, "")

	assert.Equal(t, cli.ExitOK, h.run("help"))
	assert.Contains(t, h.out.String(), "Subcommands:")

	assert.Equal(t, cli.ExitUsage, h.run())
	assert.Contains(t, h.errOut.String(), "Usage:")

	assert.Equal(t, cli.ExitUsage, h.run("frobnicate"))
	assert.Contains(t, h.errOut.String(), "unknown subcommand: frobnicate")
	assert.Contains(t, h.errOut.String(), "taskboard help")
}

func TestRegistryCommands(t *testing.T) {
	t.Parallel()

	h := newHarness(t, "")

	require.Equal(t, cli.ExitOK, h.run("statuses"))
	assert.Equal(t, "todo\nin-progress\ndone\n", h.out.String())

	require.Equal(t, cli.ExitOK, h.run("priorities"))
	assert.Equal(t, "low\nmedium\nhigh\n", h.out.String())
}

func TestAdd(t *testing.T) {
	t.Parallel()

	h := newHarness(t, "")

	require.Equal(t, cli.ExitOK, h.run("add", "-points", "2.5", "-status", "doing", "-priority", "HIGH", "Write", "docs"))
	assert.Contains(t, h.out.String(), "added t1")

	got, err := h.store.Get("t1")
	require.NoError(t, err)
	assert.Equal(t, "Write docs", got.Title)
	assert.Equal(t, model.StatusInProgress, got.Status)
	assert.Equal(t, model.PriorityHigh, got.Priority)
	require.NotNil(t, got.Points)
	assert.InDelta(t, 2.5, *got.Points, 0)

	require.Equal(t, cli.ExitOK, h.run("add", "-id", "custom", "Other"))
	assert.Contains(t, h.out.String(), "added custom")
}

func TestAddFailures(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"invalid priority", []string{"add", "-priority", "urgent", "x"}, `invalid priority "urgent"`},
		{"invalid status", []string{"add", "-status", "blocked", "x"}, `invalid status "blocked"`},
		{"negative points", []string{"add", "-points", "-1", "x"}, "must not be negative"},
		{"points not a number", []string{"add", "-points", "lots", "x"}, "points must be a number"},
		{"no title", []string{"add"}, "usage: taskboard add"},
		{"blank title", []string{"add", "  "}, "usage: taskboard add"},
		{"unknown flag", []string{"add", "-colour", "red", "x"}, "flag provided but not defined"},
		{"blank id", []string{"add", "-id", "   ", "x"}, "must not be blank"},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			h := newHarness(t, "")
			assert.Equal(t, cli.ExitUsage, h.run(tc.args...))
			assert.Contains(t, h.errOut.String(), tc.wantErr)
			assert.Equal(t, 0, h.store.Len())
		})
	}
}

func TestAddDuplicateID(t *testing.T) {
	t.Parallel()

	h := newHarness(t, "")
	require.Equal(t, cli.ExitOK, h.run("add", "-id", "a", "first"))

	assert.Equal(t, cli.ExitUsage, h.run("add", "-id", "a", "second"))
	assert.Contains(t, h.errOut.String(), "already exists")
	assert.Equal(t, 1, h.store.Len())
}

func TestShow(t *testing.T) {
	t.Parallel()

	h := newHarness(t, "")
	require.Equal(t, cli.ExitOK, h.run("add", "-points", "3", "Write docs"))

	require.Equal(t, cli.ExitOK, h.run("show", "t1"))
	out := h.out.String()
	assert.Contains(t, out, "Write docs")
	assert.Contains(t, out, "t1")
	assert.Contains(t, out, "[medium]")
	assert.Contains(t, out, "3")

	assert.Equal(t, cli.ExitError, h.run("show", "nope"))
	assert.Contains(t, h.errOut.String(), "task not found: nope")

	assert.Equal(t, cli.ExitUsage, h.run("show"))
}

func TestRemoveTwice(t *testing.T) {
	t.Parallel()

	h := newHarness(t, "")
	require.Equal(t, cli.ExitOK, h.run("add", "x"))

	assert.Equal(t, cli.ExitOK, h.run("rm", "t1"))
	assert.Contains(t, h.out.String(), "removed t1")

	assert.Equal(t, cli.ExitError, h.run("rm", "t1"))
	assert.Contains(t, h.errOut.String(), "task not found: t1")
	assert.Equal(t, cli.ExitError, h.run("rm", "t1"))
}

func TestSet(t *testing.T) {
	t.Parallel()

	h := newHarness(t, "")
	require.Equal(t, cli.ExitOK, h.run("add", "x"))

	require.Equal(t, cli.ExitOK, h.run("set", "t1", "title=New title", "points=3", "priority=low", "status=in_progress"))
	got, err := h.store.Get("t1")
	require.NoError(t, err)
	assert.Equal(t, "New title", got.Title)
	assert.Equal(t, model.PriorityLow, got.Priority)
	assert.Equal(t, model.StatusInProgress, got.Status)
	require.NotNil(t, got.Points)
	assert.InDelta(t, 3.0, *got.Points, 0)

	require.Equal(t, cli.ExitOK, h.run("set", "t1", "points=none"))
	got, _ = h.store.Get("t1")
	assert.Nil(t, got.Points)
}

func TestSetFailures(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		args     []string
		wantCode int
		wantErr  string
	}{
		{"bad status", []string{"set", "t1", "status=bogus"}, cli.ExitUsage, `invalid status "bogus"`},
		{"mixed valid and invalid", []string{"set", "t1", "title=changed", "priority=urgent"}, cli.ExitUsage, "invalid priority"},
		{"unknown key", []string{"set", "t1", "colour=red"}, cli.ExitUsage, "set: unknown key colour"},
		{"not a pair", []string{"set", "t1", "title"}, cli.ExitUsage, "expected key=value"},
		{"repeated key", []string{"set", "t1", "title=a", "title=b"}, cli.ExitUsage, "given twice"},
		{"points not a number", []string{"set", "t1", "points=lots"}, cli.ExitUsage, "points"},
		{"missing task", []string{"set", "zz", "title=x"}, cli.ExitError, "task not found: zz"},
		{"no pairs", []string{"set", "t1"}, cli.ExitUsage, "usage: taskboard set"},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			h := newHarness(t, "")
			require.Equal(t, cli.ExitOK, h.run("add", "-priority", "high", "untouched"))

			assert.Equal(t, tc.wantCode, h.run(tc.args...))
			assert.Contains(t, h.errOut.String(), tc.wantErr)

			got, err := h.store.Get("t1")
			require.NoError(t, err)
			assert.Equal(t, "untouched", got.Title)
			assert.Equal(t, model.StatusTodo, got.Status)
			assert.Equal(t, model.PriorityHigh, got.Priority)
		})
	}
}

func TestSetDecodeErrorsFitOnOneLine(t *testing.T) {
	t.Parallel()

	h := newHarness(t, "")
	require.Equal(t, cli.ExitOK, h.run("add", "x"))

	assert.Equal(t, cli.ExitUsage, h.run("set", "t1", "colour=red", "size=l"))
	msg := h.errOut.String()
	assert.Contains(t, msg, "set: unknown keys colour, size")
	assert.NotContains(t, msg, "error(s) decoding")
	assert.Equal(t, 1, strings.Count(msg, "\n"), msg)

	assert.Equal(t, cli.ExitUsage, h.run("set", "t1", "points=lots"))
	msg = h.errOut.String()
	assert.Contains(t, msg, "set: ")
	assert.Contains(t, msg, "points")
	assert.Equal(t, 1, strings.Count(msg, "\n"), msg)
}

func TestMove(t *testing.T) {
	t.Parallel()

	h := newHarness(t, "")
	require.Equal(t, cli.ExitOK, h.run("add", "x"))

	require.Equal(t, cli.ExitOK, h.run("mv", "t1", "Done"))
	got, _ := h.store.Get("t1")
	assert.Equal(t, model.StatusDone, got.Status)

	assert.Equal(t, cli.ExitUsage, h.run("mv", "t1", "blocked"))
	got, _ = h.store.Get("t1")
	assert.Equal(t, model.StatusDone, got.Status)

	assert.Equal(t, cli.ExitUsage, h.run("mv", "t1"))
}

func TestIDPrefixes(t *testing.T) {
	t.Parallel()

	h := newHarness(t, "")
	for _, id := range []string{"abc-1", "abc-2", "xyz"} {
		require.Equal(t, cli.ExitOK, h.run("add", "-id", id, "task "+id))
	}

	require.Equal(t, cli.ExitOK, h.run("mv", "xy", "done"))
	got, _ := h.store.Get("xyz")
	assert.Equal(t, model.StatusDone, got.Status)

	assert.Equal(t, cli.ExitUsage, h.run("rm", "abc"))
	assert.Contains(t, h.errOut.String(), "matches 2 tasks")
	assert.Equal(t, 3, h.store.Len())

	require.Equal(t, cli.ExitOK, h.run("rm", "abc-2"))
	assert.Equal(t, 2, h.store.Len())
}

func seedTasks(t *testing.T, h *harness) {
	t.Helper()

	for _, args := range [][]string{
		{"add", "-status", "done", "-priority", "low", "one"},
		{"add", "-priority", "high", "two"},
		{"add", "-status", "done", "-priority", "high", "three"},
		{"add", "-status", "in-progress", "-points", "5", "four"},
	} {
		require.Equal(t, cli.ExitOK, h.run(args...))
	}
}

func listIDs(t *testing.T, h *harness, args ...string) []string {
	t.Helper()

	require.Equal(t, cli.ExitOK, h.run(append([]string{"ls", "-json"}, args...)...), h.errOut.String())

	var tasks []model.Task
	require.NoError(t, json.Unmarshal(h.out.Bytes(), &tasks))
	ids := make([]string, 0, len(tasks))
	for _, task := range tasks {
		ids = append(ids, task.ID)
	}
	return ids
}

func TestListJSON(t *testing.T) {
	t.Parallel()

	h := newHarness(t, "")
	seedTasks(t, h)

	assert.Equal(t, []string{"t1", "t2", "t3", "t4"}, listIDs(t, h))
	assert.Equal(t, []string{"t1", "t3"}, listIDs(t, h, "-status", "done"))
	assert.Equal(t, []string{"t2", "t3"}, listIDs(t, h, "-priority", "high"))
	assert.Equal(t, []string{"t1", "t4", "t2", "t3"}, listIDs(t, h, "-sort", "priority"))
	assert.Equal(t, []string{"t2", "t3", "t4", "t1"}, listIDs(t, h, "-sort", "priority", "-desc"))
	assert.Equal(t, []string{"t2", "t4", "t1", "t3"}, listIDs(t, h, "-sort", "status"))
	assert.Equal(t, []string{}, listIDs(t, h, "-status", "todo", "-priority", "low"))
}

func TestListRejectsBadFlags(t *testing.T) {
	t.Parallel()

	h := newHarness(t, "")

	assert.Equal(t, cli.ExitUsage, h.run("ls", "-status", "blocked"))
	assert.Contains(t, h.errOut.String(), `unknown status "blocked"`)

	assert.Equal(t, cli.ExitUsage, h.run("ls", "-priority", "urgent"))
	assert.Equal(t, cli.ExitUsage, h.run("ls", "-sort", "title"))
	assert.Equal(t, cli.ExitUsage, h.run("ls", "extra"))
}

func TestListPanel(t *testing.T) {
	t.Parallel()

	h := newHarness(t, "")
	require.Equal(t, cli.ExitOK, h.run("ls"))
	assert.Contains(t, h.out.String(), "no tasks")

	seedTasks(t, h)
	require.Equal(t, cli.ExitOK, h.run("ls"))
	out := h.out.String()
	for _, title := range []string{"one", "two", "three", "four"} {
		assert.Contains(t, out, title)
	}
	assert.Contains(t, out, "[high]")
	assert.Contains(t, out, "(5)")
	assert.Contains(t, out, "50%")
}

func TestListGrouped(t *testing.T) {
	t.Parallel()

	h := newHarness(t, "", cli.WithOptions(cli.Options{Group: true}))
	require.Equal(t, cli.ExitOK, h.run("add", "-status", "done", "only"))

	require.Equal(t, cli.ExitOK, h.run("ls"))
	out := h.out.String()
	for _, st := range model.Statuses() {
		assert.Contains(t, out, string(st))
	}
	assert.Equal(t, 2, strings.Count(out, "(none)"))
}

func TestBoard(t *testing.T) {
	t.Parallel()

	var got *store.Store
	h := newHarness(t, "", cli.WithBoard(func(s *store.Store) error {
		got = s
		return nil
	}))
	assert.Equal(t, cli.ExitOK, h.run("board"))
	assert.Same(t, h.store, got)

	h = newHarness(t, "", cli.WithBoard(func(*store.Store) error {
		return errors.New("no terminal")
	}))
	assert.Equal(t, cli.ExitError, h.run("board"))
	assert.Contains(t, h.errOut.String(), "board: no terminal")
}

func TestREPLSharesStore(t *testing.T) {
	t.Parallel()

	input := strings.Join([]string{
		`add -id a -priority high "Write docs"`,
		"",
		"# comments are skipped",
		"mv a done",
		"frobnicate",
		`set a "title=Write better docs"`,
		`add "unterminated`,
		"repl",
		"exit",
		"add never",
	}, "\n")

	h := newHarness(t, input)
	require.Equal(t, cli.ExitOK, h.run("repl"))

	assert.Equal(t, 1, h.store.Len())
	got, err := h.store.Get("a")
	require.NoError(t, err)
	assert.Equal(t, "Write better docs", got.Title)
	assert.Equal(t, model.StatusDone, got.Status)
	assert.Equal(t, model.PriorityHigh, got.Priority)

	assert.Contains(t, h.out.String(), "taskboard> ")
	assert.Contains(t, h.errOut.String(), "unknown subcommand: frobnicate")
	assert.Contains(t, h.errOut.String(), "parse:")
	assert.Contains(t, h.errOut.String(), "repl: already running")
}

func TestREPLRejectsBoard(t *testing.T) {
	t.Parallel()

	opened := false
	h := newHarness(t, "board\nadd after", cli.WithBoard(func(*store.Store) error {
		opened = true
		return nil
	}))
	require.Equal(t, cli.ExitOK, h.run("repl"))

	assert.False(t, opened)
	assert.Contains(t, h.errOut.String(), "board: not available inside repl")
	assert.Equal(t, 1, h.store.Len(), "lines after board still run")

	require.Equal(t, cli.ExitOK, h.run("board"))
	assert.True(t, opened)
}

func TestREPLEndsAtEOF(t *testing.T) {
	t.Parallel()

	h := newHarness(t, "add one\nadd two")
	require.Equal(t, cli.ExitOK, h.run("repl"))
	assert.Equal(t, 2, h.store.Len())
}

func TestConfig(t *testing.T) {
	t.Parallel()

	h := newHarness(t, "")
	require.Equal(t, cli.ExitOK, h.run("config"))
	assert.Contains(t, h.out.String(), `theme = "classic"`)
	assert.Contains(t, h.out.String(), `level = "warn"`)
}
