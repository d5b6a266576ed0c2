package bulkload

import (
	"context"
	"io"
	"os/exec"
)

// Command describes one external client invocation.
type Command struct {
	// Path is the client executable.
	Path string

	// Args are the client arguments, credentials excluded.
	Args []string

	// Env entries are appended to the inherited environment.
	Env []string

	// Stdin is streamed to the process.
	Stdin io.Reader
}

// RunResult is the structured outcome of a finished process.
type RunResult struct {
	// Output is combined standard output and standard error, verbatim.
	Output string

	// ExitCode is the process exit status.
	ExitCode int
}

// Runner invokes the external copy client. Injectable so tests can
// substitute a fake without spawning processes.
type Runner interface {
	Run(ctx context.Context, cmd Command) (RunResult, error)
}

// ExecRunner runs commands through os/exec.
type ExecRunner struct{}

// NewExecRunner creates the default process runner.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run executes the command and captures combined output. A non-zero exit
// is not an error here; it is reported through RunResult.ExitCode so the
// caller can attach the diagnostic output. Run returns an error only when
// the process could not be started at all.
func (r *ExecRunner) Run(ctx context.Context, cmd Command) (RunResult, error) {
	proc := exec.CommandContext(ctx, cmd.Path, cmd.Args...)
	proc.Stdin = cmd.Stdin
	if len(cmd.Env) > 0 {
		proc.Env = append(proc.Environ(), cmd.Env...)
	}

	out, err := proc.CombinedOutput()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return RunResult{Output: string(out), ExitCode: exitErr.ExitCode()}, nil
		}
		return RunResult{}, err
	}

	return RunResult{Output: string(out), ExitCode: 0}, nil
}
