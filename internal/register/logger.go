package register

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/indaco/version-register/internal/apperrors"
	"github.com/indaco/version-register/internal/core"
)

// DefaultDir is the register directory, relative to the working directory.
const DefaultDir = "version-register"

// Outcome tells what Append did with a row.
type Outcome int

const (
	// Appended means the row was written.
	Appended Outcome = iota

	// Duplicate means an identical line was already present.
	Duplicate
)

// String returns a lowercase name for the outcome.
func (o Outcome) String() string {
	switch o {
	case Appended:
		return "appended"
	case Duplicate:
		return "duplicate"
	default:
		return "unknown"
	}
}

// Logger writes rows into the dated log files under a directory.
type Logger struct {
	fs  core.FileSystem
	dir string
}

// NewLogger creates a Logger that keeps its files in dir.
func NewLogger(fs core.FileSystem, dir string) *Logger {
	if dir == "" {
		dir = DefaultDir
	}
	return &Logger{fs: fs, dir: dir}
}

// PathFor returns the log file for the UTC calendar day of t.
func (l *Logger) PathFor(t time.Time) string {
	return filepath.Join(l.dir, t.UTC().Format(DateLayout)+".csv")
}

// Log appends rec to the log file of its day.
func (l *Logger) Log(ctx context.Context, now time.Time, rec Record) (Outcome, error) {
	return l.Append(ctx, l.PathFor(now), rec)
}

// Append writes rec to path unless the file already holds a row for the same
// project type, name, version and environment. The timestamp is not compared,
// so re-running the tool on the same day adds nothing. The register directory
// and the file header are created when missing.
func (l *Logger) Append(ctx context.Context, path string, rec Record) (Outcome, error) {
	if err := l.fs.MkdirAll(ctx, filepath.Dir(path), core.PermDir); err != nil {
		return Appended, apperrors.FileSystemAccess(filepath.Dir(path), err)
	}

	if err := l.ensureHeader(ctx, path); err != nil {
		return Appended, err
	}

	data, err := l.fs.ReadFile(ctx, path)
	if err != nil {
		return Appended, apperrors.FileSystemAccess(path, err)
	}

	row := rec.Row()
	if containsRecord(data, rec) || containsLine(data, row) {
		return Duplicate, nil
	}

	line := row + "\n"
	if len(data) > 0 && data[len(data)-1] != '\n' {
		line = "\n" + line
	}
	if err := l.fs.AppendFile(ctx, path, []byte(line), core.PermFile); err != nil {
		return Appended, apperrors.FileSystemAccess(path, err)
	}
	return Appended, nil
}

// ensureHeader creates path with the header row if it does not exist yet.
func (l *Logger) ensureHeader(ctx context.Context, path string) error {
	_, err := l.fs.Stat(ctx, path)
	if err == nil {
		return nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return apperrors.FileSystemAccess(path, err)
	}

	if err := l.fs.WriteFile(ctx, path, []byte(Header+"\n"), core.PermFile); err != nil {
		return apperrors.FileSystemAccess(path, err)
	}
	return nil
}

// containsRecord reports whether a data row of the CSV in data matches rec
// on every column but the timestamp. Malformed rows are skipped.
func containsRecord(data []byte, rec Record) bool {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1

	want := rec.Fields()[1:]
	for {
		fields, err := r.Read()
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			continue
		}
		if err != nil {
			return false
		}
		if len(fields) == len(want)+1 && slices.Equal(fields[1:], want) {
			return true
		}
	}
}

// containsLine reports whether one line of data equals row exactly.
func containsLine(data []byte, row string) bool {
	for line := range strings.SplitSeq(string(data), "\n") {
		if strings.TrimSuffix(line, "\r") == row {
			return true
		}
	}
	return false
}
