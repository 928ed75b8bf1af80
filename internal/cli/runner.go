package cli

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/Makepad-fr/taskboard/internal/board"
	"github.com/Makepad-fr/taskboard/internal/config"
	"github.com/Makepad-fr/taskboard/internal/errors"
	"github.com/Makepad-fr/taskboard/internal/log"
	"github.com/Makepad-fr/taskboard/internal/model"
	"github.com/Makepad-fr/taskboard/internal/store"
	"github.com/Makepad-fr/taskboard/internal/store/jsonstore"
	"github.com/Makepad-fr/taskboard/internal/ui"
)

// Exit codes returned by Run.
const (
	ExitOK    = 0
	ExitError = 1 // runtime failure or unknown task
	ExitUsage = 2 // bad arguments or rejected values
)

// Options tune output behavior from root flags.
type Options struct {
	Group bool // ls shows one section per status
}

// Runner executes subcommands against one task store.
type Runner struct {
	store  *store.Store
	in     io.Reader
	out    io.Writer
	errOut io.Writer
	log    logrus.FieldLogger
	opt    Options
	config *config.Config

	// board runs the interactive view; replaced in tests.
	board func(*store.Store) error

	inREPL bool
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithIO sets where the runner reads REPL input and writes output.
func WithIO(in io.Reader, out, errOut io.Writer) RunnerOption {
	return func(r *Runner) {
		r.in, r.out, r.errOut = in, out, errOut
	}
}

func WithLogger(log logrus.FieldLogger) RunnerOption {
	return func(r *Runner) { r.log = log }
}

func WithOptions(opt Options) RunnerOption {
	return func(r *Runner) { r.opt = opt }
}

// WithConfig sets the configuration printed by the config subcommand.
func WithConfig(cfg *config.Config) RunnerOption {
	return func(r *Runner) { r.config = cfg }
}

// WithBoard replaces the interactive board launcher.
func WithBoard(run func(*store.Store) error) RunnerOption {
	return func(r *Runner) { r.board = run }
}

// NewRunner returns a runner over s writing to stdout and stderr.
func NewRunner(s *store.Store, opts ...RunnerOption) *Runner {
	r := &Runner{
		store:  s,
		in:     os.Stdin,
		out:    os.Stdout,
		errOut: os.Stderr,
		log:    log.Discard(),
		config: config.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.board == nil {
		r.board = func(s *store.Store) error {
			return board.Run(s, tea.WithInput(r.in), tea.WithOutput(r.out))
		}
	}
	return r
}

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
func (r *Runner) Run(args []string) int {
	if len(args) == 0 {
		PrintHelp(r.errOut)
		return ExitUsage
	}
	cmd, a := args[0], args[1:]
	r.log.WithField("cmd", cmd).Debug("running")

	switch cmd {
	case "help", "-h", "--help":
		PrintHelp(r.out)
		return ExitOK

	case "statuses":
		for _, st := range model.Statuses() {
			fmt.Fprintln(r.out, st)
		}
		return ExitOK

	case "priorities":
		for _, p := range model.Priorities() {
			fmt.Fprintln(r.out, p)
		}
		return ExitOK

	case "add":
		return r.doAdd(a)

	case "show":
		if len(a) != 1 {
			return r.usage("usage: taskboard show <id>")
		}
		return r.doShow(a[0])

	case "set":
		if len(a) < 2 {
			return r.usage("usage: taskboard set <id> key=value...")
		}
		return r.doSet(a[0], a[1:])

	case "mv":
		if len(a) != 2 {
			return r.usage("usage: taskboard mv <id> <status>")
		}
		return r.doSet(a[0], []string{"status=" + a[1]})

	case "rm":
		if len(a) != 1 {
			return r.usage("usage: taskboard rm <id>")
		}
		return r.doRemove(a[0])

	case "ls":
		return r.doList(a)

	case "board":
		// The REPL scanner has already buffered stdin past this line.
		if r.inREPL {
			return r.fail("board", errors.New("not available inside repl"))
		}
		if err := r.board(r.store); err != nil {
			return r.fail("board", err)
		}
		return ExitOK

	case "repl":
		if r.inREPL {
			return r.usage("repl: already running")
		}
		return r.repl()

	case "config":
		if err := r.config.Encode(r.out); err != nil {
			return r.fail("config", err)
		}
		return ExitOK
	}

	ui.Fail(r.errOut, "unknown subcommand: "+cmd)
	ui.Hint(r.errOut, "run 'taskboard help' for the list of subcommands")
	return ExitUsage
}

func PrintHelp(w io.Writer) {
	fmt.Fprintf(w, `taskboard - tasks on a Kanban board

Usage:
  taskboard [-config PATH] [-seed PATH] [-theme NAME] [-group] [-debug] <subcommand> [args]

Subcommands:
  add [-id ID] [-points N] [-status S] [-priority P] <title...>
                     Add a task and print its id
  show <id>          Show one task
  set <id> key=value...
                     Change title, points, status or priority (points=none clears)
  mv <id> <status>   Move a task to another column
  rm <id>            Remove a task
  ls [-status S] [-priority P] [-sort status|priority] [-desc] [-json]
                     List tasks
  board              Open the interactive board
  repl               Read commands from stdin, one per line
  statuses           List statuses in workflow order
  priorities         List priorities from low to high
  config             Print the effective configuration

Ids may be abbreviated to any unique prefix.

Examples:
  taskboard -seed tasks.json ls -sort priority -desc
  taskboard -seed tasks.json board
  echo 'add -priority high "Write docs"' | taskboard repl
`)
}

// -------------- subcommand impls ----------------

func (r *Runner) doAdd(args []string) int {
	fs := r.flagSet("add")
	id := fs.String("id", "", "task id (generated when empty)")
	points := fs.String("points", "", "effort estimate")
	status := fs.String("status", "", "initial status")
	priority := fs.String("priority", "", "priority")
	if err := fs.Parse(args); err != nil {
		return ExitUsage
	}

	title := strings.Join(fs.Args(), " ")
	if strings.TrimSpace(title) == "" {
		return r.usage("usage: taskboard add [flags] <title...>")
	}

	in := store.CreateInput{
		ID:       *id,
		Title:    title,
		Status:   statusArg(*status),
		Priority: priorityArg(*priority),
	}
	if *points != "" {
		p, err := strconv.ParseFloat(*points, 64)
		if err != nil {
			return r.usage("add: points must be a number: " + *points)
		}
		in.Points = &p
	}

	t, err := r.store.Create(in)
	if err != nil {
		return r.fail("add", err)
	}
	ui.OK(r.out, "added "+t.ID)
	return ExitOK
}

func (r *Runner) doShow(ref string) int {
	t, err := r.lookup(ref)
	if err != nil {
		return r.fail("show", err)
	}
	th := ui.Current()

	points := th.Muted.Render("unestimated")
	if t.HasPoints() {
		points = strconv.FormatFloat(*t.Points, 'g', -1, 64)
	}
	ui.Panel(r.out, []string{
		th.Title.Render(t.Title),
		"",
		th.Muted.Render("id       ") + t.ID,
		th.Muted.Render("status   ") + th.StatusBadge(t.Status) + " " + string(t.Status),
		th.Muted.Render("priority ") + th.PriorityBadge(t.Priority),
		th.Muted.Render("points   ") + points,
	})
	return ExitOK
}

func (r *Runner) doSet(ref string, pairs []string) int {
	patch, err := decodePatch(pairs)
	if err != nil {
		return r.usage("set: " + err.Error())
	}

	t, err := r.lookup(ref)
	if err != nil {
		return r.fail("set", err)
	}
	if _, err := r.store.Update(t.ID, patch); err != nil {
		return r.fail("set", err)
	}
	ui.OK(r.out, "updated "+t.ID)
	return ExitOK
}

func (r *Runner) doRemove(ref string) int {
	t, err := r.lookup(ref)
	if err != nil {
		return r.fail("rm", err)
	}
	if err := r.store.Delete(t.ID); err != nil {
		return r.fail("rm", err)
	}
	ui.OK(r.out, "removed "+t.ID)
	return ExitOK
}

func (r *Runner) doList(args []string) int {
	fs := r.flagSet("ls")
	status := fs.String("status", "", "only tasks with this status")
	priority := fs.String("priority", "", "only tasks with this priority")
	sortBy := fs.String("sort", "", "order by status or priority")
	desc := fs.Bool("desc", false, "reverse the sort order")
	asJSON := fs.Bool("json", false, "print tasks as JSON")
	if err := fs.Parse(args); err != nil {
		return ExitUsage
	}
	if fs.NArg() > 0 {
		return r.usage("usage: taskboard ls [flags]")
	}

	var f store.Filter
	if *status != "" {
		st, ok := model.ParseStatus(*status)
		if !ok {
			return r.usage(fmt.Sprintf("ls: unknown status %q", *status))
		}
		f.Status = st
	}
	if *priority != "" {
		p, ok := model.ParsePriority(*priority)
		if !ok {
			return r.usage(fmt.Sprintf("ls: unknown priority %q", *priority))
		}
		f.Priority = p
	}
	switch strings.ToLower(*sortBy) {
	case "", "insertion":
	case "status":
		f.SortBy = store.SortStatus
	case "priority":
		f.SortBy = store.SortPriority
	default:
		return r.usage(fmt.Sprintf("ls: cannot sort by %q", *sortBy))
	}
	f.Descending = *desc

	tasks := r.store.List(f)
	if *asJSON {
		if err := jsonstore.Encode(r.out, tasks); err != nil {
			return r.fail("ls", err)
		}
		return ExitOK
	}

	ui.Panel(r.out, listLines(r.store.Stats(), tasks, r.opt.Group))
	return ExitOK
}

// lookup resolves a full id or a unique id prefix.
func (r *Runner) lookup(ref string) (model.Task, error) {
	t, err := r.store.Get(ref)
	if err == nil || !store.IsNotFound(err) || ref == "" {
		return t, err
	}

	var matches []model.Task
	for _, c := range r.store.List(store.Filter{}) {
		if strings.HasPrefix(c.ID, ref) {
			matches = append(matches, c)
		}
	}
	switch len(matches) {
	case 0:
		return model.Task{}, err
	case 1:
		return matches[0], nil
	}
	return model.Task{}, errors.WithStackTrace(store.ValidationError{
		Field:  "id",
		Value:  ref,
		Reason: fmt.Sprintf("matches %d tasks", len(matches)),
	})
}

func (r *Runner) flagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(r.errOut)
	return fs
}

func (r *Runner) usage(msg string) int {
	ui.Fail(r.errOut, msg)
	return ExitUsage
}

// fail reports err and maps it to an exit code.
func (r *Runner) fail(cmd string, err error) int {
	ui.Fail(r.errOut, cmd+": "+err.Error())
	r.log.Debug(errors.ErrorWithStackTrace(err))

	if store.IsValidation(err) {
		return ExitUsage
	}
	return ExitError
}

// statusArg canonicalises aliases and leaves anything else for the store to reject.
func statusArg(in string) model.Status {
	if st, ok := model.ParseStatus(in); ok {
		return st
	}
	return model.Status(in)
}

func priorityArg(in string) model.Priority {
	if p, ok := model.ParsePriority(in); ok {
		return p
	}
	return model.Priority(in)
}
