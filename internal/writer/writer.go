// Package writer persists the filled histogram set: a single YAML
// container holding a run header and every booked histogram exactly
// once. The file is claimed in overwrite mode before processing
// starts, so an unwritable output aborts the run up front and a failed
// run leaves no partial artifact behind.
package writer

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"necana/internal/hist"
)

// Header identifies the run that produced the container.
type Header struct {
	RunID     string    `yaml:"run_id"`
	Input     string    `yaml:"input"`
	Events    int64     `yaml:"events"`
	Survivors int64     `yaml:"survivors"`
	CreatedAt time.Time `yaml:"created_at"`
}

// Container is the serialized output artifact.
type Container struct {
	Header     Header          `yaml:"header"`
	Histograms []hist.Snapshot `yaml:"histograms"`
}

// Writer holds a claimed output path.
type Writer struct {
	path string
	f    *os.File
}

// Create opens path in overwrite mode. The file stays open (and
// empty) until Write runs at the end of the run.
func Create(path string) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("output %q: %w", path, err)
	}
	return &Writer{path: path, f: f}, nil
}

// Write serializes the container and closes the file.
func (w *Writer) Write(c Container) error {
	enc := yaml.NewEncoder(w.f)
	if err := enc.Encode(c); err != nil {
		w.f.Close()
		return fmt.Errorf("output %q: %w", w.path, err)
	}
	if err := enc.Close(); err != nil {
		w.f.Close()
		return fmt.Errorf("output %q: %w", w.path, err)
	}
	if err := w.f.Close(); err != nil {
		return fmt.Errorf("output %q: %w", w.path, err)
	}
	return nil
}

// Discard closes and removes a claimed output that will not be
// written, so aborted runs leave no empty artifact.
func (w *Writer) Discard() {
	w.f.Close()
	os.Remove(w.path)
}
