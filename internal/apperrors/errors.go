// Package apperrors defines the error kinds reported while scanning.
// None of them abort a run: the scan layer logs them and substitutes
// fallback values.
package apperrors

import (
	"errors"
	"fmt"
)

// Error kinds. Use errors.Is to test an *OpError against them.
var (
	// ErrFileSystemAccess reports an unreadable or missing file or directory.
	ErrFileSystemAccess = errors.New("file system access error")

	// ErrParse reports a manifest whose content could not be parsed.
	ErrParse = errors.New("parse error")

	// ErrVersionInfo reports that the tool's own version could not be read.
	ErrVersionInfo = errors.New("version info unreadable")
)

// OpError ties an error kind to the path that produced it.
type OpError struct {
	Kind error
	Path string
	Err  error
}

func (e *OpError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%v: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("%v: %s: %v", e.Kind, e.Path, e.Err)
}

func (e *OpError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

// FileSystemAccess wraps err as an ErrFileSystemAccess for path.
func FileSystemAccess(path string, err error) error {
	return &OpError{Kind: ErrFileSystemAccess, Path: path, Err: err}
}

// Parse wraps err as an ErrParse for path.
func Parse(path string, err error) error {
	return &OpError{Kind: ErrParse, Path: path, Err: err}
}

// VersionInfo wraps err as an ErrVersionInfo.
func VersionInfo(err error) error {
	return &OpError{Kind: ErrVersionInfo, Err: err}
}
