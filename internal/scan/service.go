package scan

import (
	"context"
	"io"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/indaco/version-register/internal/core"
	"github.com/indaco/version-register/internal/logger"
	"github.com/indaco/version-register/internal/manifest"
	"github.com/indaco/version-register/internal/printer"
	"github.com/indaco/version-register/internal/register"
)

// Service runs the detect, extract and log pipeline over directories.
type Service struct {
	fs        core.FileSystem
	detector  *manifest.Detector
	extractor *manifest.Extractor
	register  *register.Logger
	printer   *printer.Printer
	log       *log.Logger
	now       func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithPrinter sets where notices are printed.
func WithPrinter(p *printer.Printer) Option {
	return func(s *Service) { s.printer = p }
}

// WithLogger sets the diagnostic logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Service) { s.log = l }
}

// NewService creates a Service that reads through fs and writes rows to reg.
func NewService(fs core.FileSystem, reg *register.Logger, opts ...Option) *Service {
	s := &Service{
		fs:        fs,
		detector:  manifest.NewDetector(fs),
		extractor: manifest.NewExtractor(fs),
		register:  reg,
		printer:   printer.New(io.Discard, true),
		log:       logger.Discard(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run processes root and, when opts.Recursive is set, every directory below
// it in depth-first pre-order. Only a canceled context stops the walk early.
func (s *Service) Run(ctx context.Context, root string, opts Options) *Summary {
	summary := &Summary{Root: root}
	s.walk(ctx, root, opts, summary)
	return summary
}

func (s *Service) walk(ctx context.Context, dir string, opts Options, summary *Summary) {
	if err := ctx.Err(); err != nil {
		return
	}

	entry := s.analyze(ctx, dir, opts.Env)
	summary.Entries = append(summary.Entries, entry)

	if !opts.Recursive || entry.Status == StatusSkipped {
		return
	}

	entries, err := s.fs.ReadDir(ctx, dir)
	if err != nil {
		s.log.Error("cannot list subdirectories", "dir", dir, "error", err)
		return
	}

	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if excluded(e.Name(), opts.Exclude) {
			s.log.Debug("excluded directory", "dir", filepath.Join(dir, e.Name()))
			continue
		}
		s.walk(ctx, filepath.Join(dir, e.Name()), opts, summary)
	}
}

// analyze records a single directory.
func (s *Service) analyze(ctx context.Context, dir, env string) Entry {
	s.log.Debug("analyzing directory", "dir", dir)
	entry := Entry{Dir: dir}

	det, err := s.detector.Detect(ctx, dir)
	if err != nil {
		s.log.Error("cannot read directory", "dir", dir, "error", err)
		entry.Status = StatusSkipped
		entry.Err = err
		return entry
	}
	entry.Kind = det.Kind

	if det.Kind == manifest.Unknown {
		s.printer.PrintFaint("no package.json or .csproj found in " + dir)
	}

	meta, err := s.extractor.Extract(ctx, det)
	if err != nil {
		s.log.Error("cannot extract project metadata", "manifest", det.ManifestPath, "error", err)
		entry.Err = err
	}

	now := s.now()
	entry.Record = register.NewRecord(now, det.Kind.Label(), meta.Name, meta.Version, env)
	entry.LogPath = s.register.PathFor(now)

	outcome, err := s.register.Log(ctx, now, entry.Record)
	if err != nil {
		s.log.Error("cannot write register", "file", entry.LogPath, "error", err)
		entry.Status = StatusFailed
		if entry.Err == nil {
			entry.Err = err
		}
		return entry
	}

	if outcome == register.Duplicate {
		s.printer.PrintWarning("duplicate record avoided for: " + entry.Record.Row())
		entry.Status = StatusDuplicate
		return entry
	}

	entry.Status = StatusAppended
	return entry
}

// excluded reports whether name matches any of the patterns.
func excluded(name string, patterns []string) bool {
	for _, pattern := range patterns {
		if matched, _ := filepath.Match(pattern, name); matched {
			return true
		}
	}
	return false
}
