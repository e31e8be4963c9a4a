package jsonfile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Taichi-iskw/ytmeta/internal/errors"
	"github.com/Taichi-iskw/ytmeta/internal/model"
)

const indent = "    "

// Encode renders v as indented JSON with object keys sorted at every level.
// Struct fields are re-decoded into maps so they sort like any other key.
func Encode(v any) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "failed to encode JSON")
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var generic any
	if err := dec.Decode(&generic); err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "failed to normalize JSON")
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", indent)
	if err := enc.Encode(generic); err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "failed to encode JSON")
	}

	return buf.Bytes(), nil
}

// Write encodes v and replaces path with the result.
// The target file is never left partially written.
func Write(path string, v any) error {
	data, err := Encode(v)
	if err != nil {
		return err
	}

	w, err := newAtomicWriter(path)
	if err != nil {
		return errors.Wrap(err, errors.CodeInternal, fmt.Sprintf("failed to write %s", path))
	}
	if _, err := w.Write(data); err != nil {
		_ = w.Abort()
		return errors.Wrap(err, errors.CodeInternal, fmt.Sprintf("failed to write %s", path))
	}
	if err := w.Commit(); err != nil {
		return errors.Wrap(err, errors.CodeInternal, fmt.Sprintf("failed to write %s", path))
	}
	return nil
}

// ReadChannels reads a list of channel records, as written by the channels command
func ReadChannels(path string) ([]*model.Channel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(err, errors.CodeInvalidArg, fmt.Sprintf("input file not found: %s", path))
		}
		return nil, errors.Wrap(err, errors.CodeInternal, fmt.Sprintf("failed to read %s", path))
	}

	var channels []*model.Channel
	if err := json.Unmarshal(data, &channels); err != nil {
		return nil, errors.Wrap(err, errors.CodeInvalidArg, fmt.Sprintf("failed to parse %s", path))
	}
	for i, channel := range channels {
		if channel == nil {
			return nil, errors.New(errors.CodeInvalidArg, fmt.Sprintf("%s: entry %d is null", path, i))
		}
	}

	return channels, nil
}

// atomicWriter writes to a temp file next to the target and renames it on Commit
type atomicWriter struct {
	path string
	file *os.File
}

func newAtomicWriter(path string) (*atomicWriter, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".ytmeta-*.tmp")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}

	return &atomicWriter{path: path, file: tmp}, nil
}

func (w *atomicWriter) Write(p []byte) (int, error) {
	return w.file.Write(p)
}

func (w *atomicWriter) Commit() error {
	if err := w.file.Sync(); err != nil {
		_ = w.Abort()
		return fmt.Errorf("sync: %w", err)
	}
	if err := w.file.Close(); err != nil {
		_ = os.Remove(w.file.Name())
		return fmt.Errorf("close: %w", err)
	}
	if err := os.Rename(w.file.Name(), w.path); err != nil {
		_ = os.Remove(w.file.Name())
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}

func (w *atomicWriter) Abort() error {
	_ = w.file.Close()
	return os.Remove(w.file.Name())
}
