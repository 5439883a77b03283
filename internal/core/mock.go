package core

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"
	"sync"
	"time"
)

// MockFileSystem is an in-memory FileSystem for tests. Directories are
// implied by the files stored under them and can also be added explicitly.
type MockFileSystem struct {
	mu     sync.Mutex
	files  map[string][]byte
	dirs   map[string]bool
	errors map[string]error
}

// NewMockFileSystem returns an empty MockFileSystem.
func NewMockFileSystem() *MockFileSystem {
	return &MockFileSystem{
		files:  make(map[string][]byte),
		dirs:   make(map[string]bool),
		errors: make(map[string]error),
	}
}

// SetFile stores data at path and registers every parent directory.
func (m *MockFileSystem) SetFile(path string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()

	path = filepath.Clean(path)
	m.files[path] = slices.Clone(data)
	m.addParents(path)
}

// SetDir registers path and its parents as directories.
func (m *MockFileSystem) SetDir(path string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	path = filepath.Clean(path)
	m.dirs[path] = true
	m.addParents(path)
}

// SetError makes every operation on path fail with err.
func (m *MockFileSystem) SetError(path string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors[filepath.Clean(path)] = err
}

// File returns the content stored at path.
func (m *MockFileSystem) File(path string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.files[filepath.Clean(path)]
	return slices.Clone(data), ok
}

func (m *MockFileSystem) addParents(path string) {
	dir := filepath.Dir(path)
	for {
		m.dirs[dir] = true
		parent := filepath.Dir(dir)
		if parent == dir {
			return
		}
		dir = parent
	}
}

func (m *MockFileSystem) check(ctx context.Context, op, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err, ok := m.errors[path]; ok {
		return &fs.PathError{Op: op, Path: path, Err: err}
	}
	return nil
}

func (m *MockFileSystem) ReadFile(ctx context.Context, path string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	path = filepath.Clean(path)
	if err := m.check(ctx, "open", path); err != nil {
		return nil, err
	}

	data, ok := m.files[path]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}
	return slices.Clone(data), nil
}

func (m *MockFileSystem) WriteFile(ctx context.Context, path string, data []byte, perm fs.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	path = filepath.Clean(path)
	if err := m.check(ctx, "open", path); err != nil {
		return err
	}
	if !m.dirs[filepath.Dir(path)] {
		return &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}

	m.files[path] = slices.Clone(data)
	return nil
}

func (m *MockFileSystem) AppendFile(ctx context.Context, path string, data []byte, perm fs.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	path = filepath.Clean(path)
	if err := m.check(ctx, "open", path); err != nil {
		return err
	}
	if !m.dirs[filepath.Dir(path)] {
		return &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}

	m.files[path] = append(m.files[path], data...)
	return nil
}

func (m *MockFileSystem) Stat(ctx context.Context, path string) (fs.FileInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	path = filepath.Clean(path)
	if err := m.check(ctx, "stat", path); err != nil {
		return nil, err
	}
	return m.stat(path)
}

func (m *MockFileSystem) stat(path string) (fs.FileInfo, error) {
	if data, ok := m.files[path]; ok {
		return &mockFileInfo{name: filepath.Base(path), size: int64(len(data)), mode: PermFile}, nil
	}
	if m.dirs[path] {
		return &mockFileInfo{name: filepath.Base(path), mode: fs.ModeDir | PermDir}, nil
	}
	return nil, &fs.PathError{Op: "stat", Path: path, Err: fs.ErrNotExist}
}

// ReadDir returns the direct children of path sorted by name, like os.ReadDir.
func (m *MockFileSystem) ReadDir(ctx context.Context, path string) ([]fs.DirEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	path = filepath.Clean(path)
	if err := m.check(ctx, "open", path); err != nil {
		return nil, err
	}
	if _, isFile := m.files[path]; isFile {
		return nil, &fs.PathError{Op: "readdirent", Path: path, Err: fmt.Errorf("not a directory")}
	}
	if !m.dirs[path] {
		return nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}

	var names []string
	for p := range m.files {
		if p != path && filepath.Dir(p) == path {
			names = append(names, p)
		}
	}
	for p := range m.dirs {
		if p != path && filepath.Dir(p) == path {
			names = append(names, p)
		}
	}
	slices.Sort(names)

	entries := make([]fs.DirEntry, 0, len(names))
	for _, p := range names {
		info, err := m.stat(p)
		if err != nil {
			return nil, err
		}
		entries = append(entries, fs.FileInfoToDirEntry(info))
	}
	return entries, nil
}

func (m *MockFileSystem) MkdirAll(ctx context.Context, path string, perm fs.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	path = filepath.Clean(path)
	if err := m.check(ctx, "mkdir", path); err != nil {
		return err
	}
	if _, isFile := m.files[path]; isFile {
		return &fs.PathError{Op: "mkdir", Path: path, Err: fs.ErrExist}
	}

	m.dirs[path] = true
	m.addParents(path)
	return nil
}

type mockFileInfo struct {
	name string
	size int64
	mode fs.FileMode
}

func (i *mockFileInfo) Name() string       { return i.name }
func (i *mockFileInfo) Size() int64        { return i.size }
func (i *mockFileInfo) Mode() fs.FileMode  { return i.mode }
func (i *mockFileInfo) ModTime() time.Time { return time.Time{} }
func (i *mockFileInfo) IsDir() bool        { return i.mode.IsDir() }
func (i *mockFileInfo) Sys() any           { return nil }
