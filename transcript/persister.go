package transcript

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// ErrPersistence means the final artifact could not be written. The in-memory
// transcript survives, so the caller may retry.
var ErrPersistence = errors.New("transcript persistence failed")

// Persister writes transcripts into a results directory, one text file per
// document, replacing any prior artifact atomically.
type Persister struct {
	dir    string
	logger *zap.Logger
}

func NewPersister(dir string, logger *zap.Logger) *Persister {
	return &Persister{dir: dir, logger: logger}
}

// Render serializes the transcript: for each entry in order, the label, a
// line break, the recognized text, and a trailing line break.
func Render(t *Transcript) string {
	var b strings.Builder
	for _, e := range t.Entries() {
		b.WriteString(e.Label)
		b.WriteByte('\n')
		b.WriteString(e.Text)
		b.WriteByte('\n')
	}
	return b.String()
}

// Write persists the transcript as <dir>/<name>.txt and returns the artifact
// path. The blob lands via temp file plus rename so a reader never observes a
// partial artifact.
func (p *Persister) Write(t *Transcript, name string) (string, error) {
	if err := os.MkdirAll(p.dir, 0755); err != nil {
		return "", fmt.Errorf("%w: create output dir %s: %v", ErrPersistence, p.dir, err)
	}

	target := filepath.Join(p.dir, name+".txt")
	tmp, err := os.CreateTemp(p.dir, name+"-*.tmp")
	if err != nil {
		return "", fmt.Errorf("%w: create temp file in %s: %v", ErrPersistence, p.dir, err)
	}

	blob := Render(t)
	if _, err := tmp.WriteString(blob); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("%w: write %s: %v", ErrPersistence, target, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("%w: close %s: %v", ErrPersistence, tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("%w: replace %s: %v", ErrPersistence, target, err)
	}

	p.logger.Info("Transcript persisted",
		zap.String("artifact", target),
		zap.Int("entries", t.Len()),
		zap.Int("bytes", len(blob)))
	return target, nil
}
