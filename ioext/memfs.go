package ioext

import (
	"bytes"
	"fmt"
	"io"
)

// MemFS is an in-memory FileSystem for tests: document round-trip tests
// construct one, seed it with tileset/image bytes, and hand it to a codec
// instead of touching the real disk. Grounded on the teacher's getStream
// indirection (path.go), which already exists to let callers substitute a
// reader for a real file; MemFS is that substitution made a first-class,
// reusable collaborator.
type MemFS struct {
	files map[string][]byte
}

// NewMemFS returns an empty in-memory filesystem.
func NewMemFS() *MemFS {
	return &MemFS{files: make(map[string][]byte)}
}

// Put seeds path with contents, overwriting any existing entry.
func (m *MemFS) Put(path string, contents []byte) {
	m.files[path] = contents
}

// Open implements FileSystem.
func (m *MemFS) Open(path string) (io.ReadCloser, error) {
	data, ok := m.files[path]
	if !ok {
		return nil, fmt.Errorf("memfs: no such file %q", path)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

// Create implements FileSystem, buffering writes until Close and then
// storing them under path.
func (m *MemFS) Create(path string) (io.WriteCloser, error) {
	return &memFile{fs: m, path: path}, nil
}

// Stat implements FileSystem.
func (m *MemFS) Stat(path string) (bool, error) {
	_, ok := m.files[path]
	return ok, nil
}

type memFile struct {
	fs   *MemFS
	path string
	buf  bytes.Buffer
}

func (f *memFile) Write(p []byte) (int, error) {
	return f.buf.Write(p)
}

func (f *memFile) Close() error {
	f.fs.files[f.path] = append([]byte(nil), f.buf.Bytes()...)
	return nil
}
