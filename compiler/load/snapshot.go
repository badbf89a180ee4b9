package load

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"
)

// snapshotVersion is bumped on incompatible changes of the snapshot layout.
const snapshotVersion = 1

type snapshot struct {
	Version int     `msgpack:"version"`
	Schema  *Schema `msgpack:"schema"`
}

// Encode writes the msgpack snapshot of s to w.
func Encode(w io.Writer, s *Schema) error {
	enc := msgpack.NewEncoder(w)
	enc.SetSortMapKeys(true)
	if err := enc.Encode(&snapshot{Version: snapshotVersion, Schema: s}); err != nil {
		return fmt.Errorf("load: encode snapshot: %w", err)
	}
	return nil
}

// Decode reads a msgpack snapshot written by Encode.
func Decode(r io.Reader) (*Schema, error) {
	var snap snapshot
	if err := msgpack.NewDecoder(r).Decode(&snap); err != nil {
		return nil, fmt.Errorf("load: decode snapshot: %w", err)
	}
	if snap.Version != snapshotVersion {
		return nil, fmt.Errorf("load: unsupported snapshot version %d", snap.Version)
	}
	if snap.Schema == nil {
		return &Schema{}, nil
	}
	return snap.Schema, nil
}

// WriteFile stores the snapshot of s at path.
func WriteFile(path string, s *Schema) error {
	var buf bytes.Buffer
	if err := Encode(&buf, s); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("load: create snapshot directory: %w", err)
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

// ReadFile loads the snapshot stored at path.
func ReadFile(path string) (*Schema, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load: open snapshot: %w", err)
	}
	defer f.Close()
	return Decode(f)
}
