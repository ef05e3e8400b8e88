package codegen

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
)

// ArtifactWriteError reports one artifact that could not be produced.
type ArtifactWriteError struct {
	Artifact string
	Path     string
	Err      error
}

func (e *ArtifactWriteError) Error() string {
	return fmt.Sprintf("artifact %s (%s): %v", e.Artifact, e.Path, e.Err)
}

func (e *ArtifactWriteError) Unwrap() error { return e.Err }

// DefaultOutDir returns the timestamped output directory name for now.
func DefaultOutDir(now time.Time) string {
	return "generated_" + now.Format("20060102_150405")
}

// ArtifactWriter writes artifacts into one directory and remembers which
// succeeded.
type ArtifactWriter struct {
	Dir     string
	written []string
}

// NewArtifactWriter creates dir if needed.
func NewArtifactWriter(dir string) (*ArtifactWriter, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory %s: %w", dir, err)
	}
	return &ArtifactWriter{Dir: dir}, nil
}

// Write stores data as dir/name.
func (w *ArtifactWriter) Write(name string, data []byte) error {
	path := filepath.Join(w.Dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return &ArtifactWriteError{Artifact: name, Path: path, Err: err}
	}
	logrus.Debugf("Wrote %s (%d bytes)", path, len(data))
	w.written = append(w.written, name)
	return nil
}

// Copy stores a copy of the file at src as dir/name.
func (w *ArtifactWriter) Copy(src, name string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return &ArtifactWriteError{Artifact: name, Path: src, Err: err}
	}
	return w.Write(name, data)
}

// Written returns the artifact names written so far, in order.
func (w *ArtifactWriter) Written() []string {
	return append([]string(nil), w.written...)
}
