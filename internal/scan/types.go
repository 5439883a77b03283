package scan

import (
	"github.com/indaco/version-register/internal/manifest"
	"github.com/indaco/version-register/internal/register"
)

// Status is the outcome of processing one directory.
type Status int

const (
	// StatusAppended means a new row was written.
	StatusAppended Status = iota

	// StatusDuplicate means the row already existed in the day's log.
	StatusDuplicate

	// StatusFailed means the row could not be written.
	StatusFailed

	// StatusSkipped means the directory could not be read.
	StatusSkipped
)

// String returns a lowercase name for the status.
func (s Status) String() string {
	switch s {
	case StatusAppended:
		return "appended"
	case StatusDuplicate:
		return "duplicate"
	case StatusFailed:
		return "failed"
	case StatusSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// Options controls a single run.
type Options struct {
	// Env is the environment label written in every row.
	Env string

	// Recursive enables depth-first descent into subdirectories.
	Recursive bool

	// Exclude holds glob patterns matched against subdirectory names.
	Exclude []string
}

// Entry describes what happened to one directory.
type Entry struct {
	Dir     string
	Kind    manifest.Kind
	Record  register.Record
	LogPath string
	Status  Status

	// Err is the first error met while processing the directory, if any.
	// An extraction error still leaves Status at appended or duplicate.
	Err error
}

// Summary collects the entries of a run in visiting order.
type Summary struct {
	Root    string
	Entries []Entry
}

// Count returns how many entries have the given status.
func (s *Summary) Count(status Status) int {
	n := 0
	for _, e := range s.Entries {
		if e.Status == status {
			n++
		}
	}
	return n
}

// Errors returns how many entries carry an error.
func (s *Summary) Errors() int {
	n := 0
	for _, e := range s.Entries {
		if e.Err != nil {
			n++
		}
	}
	return n
}

// LogPaths returns the distinct log files written during the run.
func (s *Summary) LogPaths() []string {
	var paths []string
	seen := make(map[string]bool)
	for _, e := range s.Entries {
		if e.LogPath == "" || seen[e.LogPath] {
			continue
		}
		seen[e.LogPath] = true
		paths = append(paths, e.LogPath)
	}
	return paths
}
