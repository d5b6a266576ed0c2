package bulkload

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// credentialsFile holds ephemeral login data for one copy-client
// invocation. The file is owner-only readable and its path is handed to
// the client through the environment, so credentials never appear on the
// command line or in the control statement.
type credentialsFile struct {
	path string
}

// writeCredentials creates the transient credentials file. The caller must
// arrange removal on every exit path.
func writeCredentials(user, password string) (*credentialsFile, error) {
	path := filepath.Join(os.TempDir(), ".monetdb-"+uuid.NewString())

	content := fmt.Sprintf("user=%s\npassword=%s\n", user, password)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		return nil, fmt.Errorf("writing credentials file: %w", err)
	}

	return &credentialsFile{path: path}, nil
}

// Remove deletes the credentials file. Safe to call more than once.
func (c *credentialsFile) Remove() {
	if c == nil || c.path == "" {
		return
	}
	os.Remove(c.path)
	c.path = ""
}
