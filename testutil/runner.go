package testutil

import (
	"context"
	"io"
	"sync"

	"github.com/monetdb-contrib/monet-go/bulkload"
)

// FakeRunner implements bulkload.Runner without spawning processes. It
// records every command and replays a scripted result.
type FakeRunner struct {
	mu       sync.Mutex
	commands []bulkload.Command
	stdins   []string

	result bulkload.RunResult
	err    error
}

// NewFakeRunner creates a fake runner that reports success with no output.
func NewFakeRunner() *FakeRunner {
	return &FakeRunner{}
}

// WithResult scripts the result returned by Run.
func (r *FakeRunner) WithResult(output string, exitCode int) *FakeRunner {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.result = bulkload.RunResult{Output: output, ExitCode: exitCode}
	return r
}

// WithError makes Run fail as if the process could not be started.
func (r *FakeRunner) WithError(err error) *FakeRunner {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.err = err
	return r
}

// Run implements bulkload.Runner.
func (r *FakeRunner) Run(ctx context.Context, cmd bulkload.Command) (bulkload.RunResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.commands = append(r.commands, cmd)
	if cmd.Stdin != nil {
		data, _ := io.ReadAll(cmd.Stdin)
		r.stdins = append(r.stdins, string(data))
	} else {
		r.stdins = append(r.stdins, "")
	}

	if r.err != nil {
		return bulkload.RunResult{}, r.err
	}
	return r.result, nil
}

// Commands returns a copy of the recorded commands.
func (r *FakeRunner) Commands() []bulkload.Command {
	r.mu.Lock()
	defer r.mu.Unlock()

	commands := make([]bulkload.Command, len(r.commands))
	copy(commands, r.commands)
	return commands
}

// Stdins returns the data streamed to each command's standard input.
func (r *FakeRunner) Stdins() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	stdins := make([]string, len(r.stdins))
	copy(stdins, r.stdins)
	return stdins
}
