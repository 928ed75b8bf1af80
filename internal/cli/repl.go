package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/google/shlex"

	"github.com/Makepad-fr/taskboard/internal/ui"
)

const replPrompt = "taskboard> "

// repl runs one subcommand per input line against the runner's store until
// EOF or "exit". Failing commands are reported and the session goes on.
func (r *Runner) repl() int {
	r.inREPL = true
	defer func() { r.inREPL = false }()

	scanner := bufio.NewScanner(r.in)
	for {
		fmt.Fprint(r.out, replPrompt)
		if !scanner.Scan() {
			break
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		args, err := shlex.Split(line)
		if err != nil {
			ui.Fail(r.errOut, "parse: "+err.Error())
			continue
		}
		if len(args) == 0 {
			continue
		}
		if args[0] == "exit" || args[0] == "quit" {
			break
		}

		code := r.Run(args)
		r.log.WithField("code", code).Debug("repl command finished")
	}
	fmt.Fprintln(r.out)

	if err := scanner.Err(); err != nil {
		return r.fail("repl", err)
	}
	return ExitOK
}
