package bench

import (
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/YuminosukeSato/scibench/pkg/errors"
)

// Workspace is a scratch directory owned by one adapter. Intermediate files
// such as predictions.csv are written here and removed by Close.
type Workspace struct {
	dir    string
	closed bool
}

// NewWorkspace creates scibench-<uuid> under parent (os.TempDir() if empty).
func NewWorkspace(parent string) (*Workspace, error) {
	if parent == "" {
		parent = os.TempDir()
	}
	dir := filepath.Join(parent, "scibench-"+uuid.NewString())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "create workspace %s", dir)
	}
	return &Workspace{dir: dir}, nil
}

// Dir returns the workspace directory. After Close it still names the
// removed directory, so callers that ignore Err fail instead of writing
// into the current directory.
func (w *Workspace) Dir() string {
	return w.dir
}

// Err returns errors.ErrWorkspaceClosed once Close has been called.
func (w *Workspace) Err() error {
	if w == nil || w.closed {
		return errors.ErrWorkspaceClosed
	}
	return nil
}

// Path returns the path of name inside the workspace.
func (w *Workspace) Path(name string) string {
	return filepath.Join(w.dir, name)
}

// Exists reports whether name exists inside the workspace.
func (w *Workspace) Exists(name string) bool {
	_, err := os.Stat(w.Path(name))
	return err == nil
}

// Remove deletes name from the workspace. A missing file is not an error.
func (w *Workspace) Remove(name string) error {
	if err := os.Remove(w.Path(name)); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "remove %s", name)
	}
	return nil
}

// Close removes the workspace and everything in it. It is safe to call
// more than once.
func (w *Workspace) Close() error {
	if w == nil || w.closed {
		return nil
	}
	w.closed = true
	err := os.RemoveAll(w.dir)
	if err != nil {
		return errors.Wrap(err, "remove workspace")
	}
	return nil
}
