package core

import (
	"context"
	"io/fs"
)

// File and directory permissions used across the codebase.
const (
	// PermFile is the mode for log files other tools may read.
	PermFile fs.FileMode = 0o644

	// PermDir is the mode for directories created by the tool.
	PermDir fs.FileMode = 0o755
)

// FileSystem abstracts the file operations the scanner and the register need.
// Every method checks ctx before touching the disk.
type FileSystem interface {
	ReadFile(ctx context.Context, path string) ([]byte, error)
	WriteFile(ctx context.Context, path string, data []byte, perm fs.FileMode) error
	AppendFile(ctx context.Context, path string, data []byte, perm fs.FileMode) error
	Stat(ctx context.Context, path string) (fs.FileInfo, error)
	ReadDir(ctx context.Context, path string) ([]fs.DirEntry, error)
	MkdirAll(ctx context.Context, path string, perm fs.FileMode) error
}
