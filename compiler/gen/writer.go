package gen

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/sync/errgroup"
)

// fileTask is a single file of the generated package.
type fileTask struct {
	name    string // relative to the output directory
	content []byte
}

// FileWriter writes the generated package with parallel, atomic writes.
type FileWriter struct {
	outDir  string
	workers int

	mu      sync.Mutex
	metrics *WriterMetrics
}

// WriterMetrics tracks what a FileWriter wrote.
type WriterMetrics struct {
	FilesWritten int
	TotalBytes   int64
}

// NewFileWriter creates a writer for outDir.
func NewFileWriter(outDir string, workers int) *FileWriter {
	if workers <= 0 {
		workers = 1
	}
	return &FileWriter{outDir: outDir, workers: workers, metrics: &WriterMetrics{}}
}

// Metrics returns the write metrics.
func (w *FileWriter) Metrics() WriterMetrics {
	w.mu.Lock()
	defer w.mu.Unlock()
	return *w.metrics
}

// WriteAll writes all files in parallel. A reader of the output directory
// never observes a partially written file.
func (w *FileWriter) WriteAll(ctx context.Context, files []fileTask) error {
	if err := os.MkdirAll(w.outDir, 0o755); err != nil {
		return NewGenerationError(w.outDir, "create output directory", err)
	}
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(w.workers)
	for _, f := range files {
		eg.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
				return w.writeFile(f)
			}
		})
	}
	return eg.Wait()
}

func (w *FileWriter) writeFile(f fileTask) error {
	path := filepath.Join(w.outDir, f.name)
	if err := writeFileAtomic(path, f.content); err != nil {
		return NewGenerationError(f.name, "write file", err)
	}
	w.mu.Lock()
	w.metrics.FilesWritten++
	w.metrics.TotalBytes += int64(len(f.content))
	w.mu.Unlock()
	return nil
}

// writeFileAtomic writes data to a temporary file next to path and renames
// it into place.
func writeFileAtomic(path string, data []byte) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()
	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write %s: %w", tmp.Name(), err)
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	if err = os.Chmod(tmp.Name(), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
