package bulkload

import (
	"context"
	"fmt"
	"os"
	"strconv"
)

// credentialsEnvVar points the copy client at its login file.
const credentialsEnvVar = "DOTMONETDBFILE"

// BulkLoadError indicates the external copy client exited non-zero. Output
// carries the client's combined diagnostic text verbatim for operator
// inspection. The caller decides whether to retry; the loader never does.
type BulkLoadError struct {
	ExitCode int
	Output   string
}

// Error implements the error interface.
func (e *BulkLoadError) Error() string {
	return fmt.Sprintf("bulk load failed with exit code %d: %s", e.ExitCode, e.Output)
}

// ServerConfig identifies the server and account the copy client connects
// to. The client opens its own connection, outside the query channel.
type ServerConfig struct {
	Host     string
	Port     int
	Database string
	User     string
	Password string

	// ClientPath is the copy client executable. Default "mclient".
	ClientPath string
}

// Loader drives the out-of-band streaming ingest path.
type Loader struct {
	config ServerConfig
	runner Runner
}

// NewLoader creates a loader. A nil runner gets the default exec runner.
func NewLoader(config ServerConfig, runner Runner) *Loader {
	if config.ClientPath == "" {
		config.ClientPath = "mclient"
	}
	if runner == nil {
		runner = NewExecRunner()
	}
	return &Loader{config: config, runner: runner}
}

// Load streams the spec's source file into its target table and returns
// the client's combined diagnostic output. The transient credentials file
// is removed on every exit path, including process-launch failure.
func (l *Loader) Load(ctx context.Context, spec LoadSpec) (string, error) {
	source, err := os.Open(spec.SourcePath)
	if err != nil {
		return "", fmt.Errorf("opening source file: %w", err)
	}
	defer source.Close()

	creds, err := writeCredentials(l.config.User, l.config.Password)
	if err != nil {
		return "", err
	}
	defer creds.Remove()

	cmd := Command{
		Path: l.config.ClientPath,
		Args: []string{
			"-h", l.config.Host,
			"-p", strconv.Itoa(l.config.Port),
			"-d", l.config.Database,
			"-s", spec.ControlStatement(),
			"-",
		},
		Env:   []string{credentialsEnvVar + "=" + creds.path},
		Stdin: source,
	}

	result, err := l.runner.Run(ctx, cmd)
	if err != nil {
		return "", fmt.Errorf("starting copy client: %w", err)
	}

	if result.ExitCode != 0 {
		return result.Output, &BulkLoadError{ExitCode: result.ExitCode, Output: result.Output}
	}

	return result.Output, nil
}
