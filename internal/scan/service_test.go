package scan

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/indaco/version-register/internal/apperrors"
	"github.com/indaco/version-register/internal/core"
	"github.com/indaco/version-register/internal/logger"
	"github.com/indaco/version-register/internal/manifest"
	"github.com/indaco/version-register/internal/printer"
	"github.com/indaco/version-register/internal/register"
)

var fixedNow = time.Date(2024, 5, 17, 9, 30, 0, 0, time.UTC)

const (
	regDir  = "/reg"
	logFile = "/reg/2024-05-17.csv"
	stamp   = "2024-05-17 09:30:00"
)

type harness struct {
	fs     *core.MockFileSystem
	svc    *Service
	stdout *bytes.Buffer
	stderr *bytes.Buffer
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		fs:     core.NewMockFileSystem(),
		stdout: &bytes.Buffer{},
		stderr: &bytes.Buffer{},
	}
	h.svc = NewService(h.fs, register.NewLogger(h.fs, regDir),
		WithClock(func() time.Time { return fixedNow }),
		WithPrinter(printer.New(h.stdout, true)),
		WithLogger(logger.New(h.stderr, false)),
	)
	return h
}

func (h *harness) lines(t *testing.T) []string {
	t.Helper()
	data, ok := h.fs.File(logFile)
	if !ok {
		t.Fatalf("log file %q not created", logFile)
	}
	return strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
}

func visited(s *Summary) []string {
	dirs := make([]string, 0, len(s.Entries))
	for _, e := range s.Entries {
		dirs = append(dirs, e.Dir)
	}
	return dirs
}

func TestService_Run_NodeProject(t *testing.T) {
	h := newHarness(t)
	h.fs.SetFile("/proj/package.json", []byte(`{"name":"demo","version":"1.2.3"}`))

	summary := h.svc.Run(context.Background(), "/proj", Options{Env: "test"})

	if len(summary.Entries) != 1 {
		t.Fatalf("len(Entries) = %d, want 1", len(summary.Entries))
	}
	e := summary.Entries[0]
	if e.Status != StatusAppended || e.Kind != manifest.NodeLike || e.Err != nil {
		t.Errorf("entry = %+v", e)
	}

	lines := h.lines(t)
	want := []string{register.Header, stamp + ",Node.js,demo,1.2.3,test"}
	if strings.Join(lines, "\n") != strings.Join(want, "\n") {
		t.Errorf("lines = %q, want %q", lines, want)
	}
}

func TestService_Run_DotNetProject(t *testing.T) {
	h := newHarness(t)
	h.fs.SetFile("/proj/foo.csproj", []byte(`<Project><PropertyGroup><AssemblyName>Foo</AssemblyName></PropertyGroup></Project>`))

	h.svc.Run(context.Background(), "/proj", Options{Env: "development"})

	lines := h.lines(t)
	want := stamp + ",.NET,Foo,Versión no definida,development"
	if len(lines) != 2 || lines[1] != want {
		t.Errorf("lines = %q, want second line %q", lines, want)
	}
}

func TestService_Run_UnknownProject(t *testing.T) {
	h := newHarness(t)
	h.fs.SetDir("/work/empty")

	summary := h.svc.Run(context.Background(), "/work/empty", Options{Env: "qa"})

	if summary.Entries[0].Kind != manifest.Unknown {
		t.Errorf("Kind = %v, want Unknown", summary.Entries[0].Kind)
	}
	lines := h.lines(t)
	want := stamp + ",Desconocido,empty,No se encontró versión,qa"
	if len(lines) != 2 || lines[1] != want {
		t.Errorf("lines = %q, want second line %q", lines, want)
	}
	if !strings.Contains(h.stdout.String(), "no package.json or .csproj found in /work/empty") {
		t.Errorf("stdout = %q, want unknown-directory notice", h.stdout.String())
	}
}

func TestService_Run_Idempotent(t *testing.T) {
	h := newHarness(t)
	h.fs.SetFile("/root/a/package.json", []byte(`{"name":"a","version":"1.0.0"}`))
	h.fs.SetFile("/root/b/B.csproj", []byte(`<Version>2.0.0</Version>`))
	ctx := context.Background()
	opts := Options{Env: "prod", Recursive: true}

	first := h.svc.Run(ctx, "/root", opts)
	afterFirst := len(h.lines(t))

	second := h.svc.Run(ctx, "/root", opts)
	afterSecond := len(h.lines(t))

	if afterFirst != afterSecond {
		t.Errorf("line count after second run = %d, want %d", afterSecond, afterFirst)
	}
	if first.Count(StatusAppended) != 3 {
		t.Errorf("first run appended = %d, want 3", first.Count(StatusAppended))
	}
	if second.Count(StatusDuplicate) != 3 {
		t.Errorf("second run duplicates = %d, want 3", second.Count(StatusDuplicate))
	}
	if !strings.Contains(h.stdout.String(), "duplicate record avoided for: "+stamp+",Node.js,a,1.0.0,prod") {
		t.Errorf("stdout = %q, want duplicate notice", h.stdout.String())
	}
}

func TestService_Run_NonRecursiveVisitsRootOnly(t *testing.T) {
	h := newHarness(t)
	h.fs.SetFile("/root/package.json", []byte(`{"name":"root","version":"1.0.0"}`))
	h.fs.SetFile("/root/child/package.json", []byte(`{"name":"child","version":"1.0.0"}`))

	summary := h.svc.Run(context.Background(), "/root", Options{Env: "dev"})

	if got := visited(summary); len(got) != 1 || got[0] != "/root" {
		t.Errorf("visited = %v, want [/root]", got)
	}
}

func TestService_Run_RecursivePreOrder(t *testing.T) {
	h := newHarness(t)
	h.fs.SetFile("/root/package.json", []byte(`{"name":"root","version":"1.0.0"}`))
	h.fs.SetFile("/root/a/a2/package.json", []byte(`{"name":"a2","version":"1.0.0"}`))
	h.fs.SetDir("/root/a/a1")
	h.fs.SetFile("/root/a/notes.txt", []byte("not a directory"))
	h.fs.SetFile("/root/b/App.csproj", []byte(`<Project/>`))

	summary := h.svc.Run(context.Background(), "/root", Options{Env: "dev", Recursive: true})

	want := []string{"/root", "/root/a", "/root/a/a1", "/root/a/a2", "/root/b"}
	if got := visited(summary); strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("visited = %v, want %v", got, want)
	}

	lines := h.lines(t)
	names := make([]string, 0, len(lines)-1)
	for _, line := range lines[1:] {
		names = append(names, strings.Split(line, ",")[2])
	}
	wantNames := []string{"root", "a", "a1", "a2", "App"}
	if strings.Join(names, ",") != strings.Join(wantNames, ",") {
		t.Errorf("row names = %v, want %v", names, wantNames)
	}
}

func TestService_Run_DeepTreeVisitedOnce(t *testing.T) {
	h := newHarness(t)
	dir := "/root"
	want := []string{dir}
	for i := range 6 {
		dir = filepath.Join(dir, "level"+string(rune('0'+i)))
		want = append(want, dir)
	}
	h.fs.SetDir(dir)

	summary := h.svc.Run(context.Background(), "/root", Options{Env: "dev", Recursive: true})

	if got := visited(summary); strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("visited = %v, want %v", got, want)
	}
}

func TestService_Run_UnreadableDirectoryIsSkipped(t *testing.T) {
	h := newHarness(t)
	h.fs.SetDir("/root/locked")
	h.fs.SetError("/root/locked", fs.ErrPermission)
	h.fs.SetFile("/root/ok/package.json", []byte(`{"name":"ok","version":"3.0.0"}`))

	summary := h.svc.Run(context.Background(), "/root", Options{Env: "dev", Recursive: true})

	if len(summary.Entries) != 3 {
		t.Fatalf("len(Entries) = %d, want 3", len(summary.Entries))
	}
	locked := summary.Entries[1]
	if locked.Dir != "/root/locked" || locked.Status != StatusSkipped {
		t.Errorf("locked entry = %+v, want skipped", locked)
	}
	if !errors.Is(locked.Err, apperrors.ErrFileSystemAccess) {
		t.Errorf("locked.Err = %v, want ErrFileSystemAccess", locked.Err)
	}
	if summary.Entries[2].Status != StatusAppended {
		t.Errorf("walk did not continue past the unreadable directory: %+v", summary.Entries[2])
	}
	if !strings.Contains(h.stderr.String(), "cannot read directory") {
		t.Errorf("stderr = %q, want a diagnostic", h.stderr.String())
	}
}

func TestService_Run_MissingRoot(t *testing.T) {
	h := newHarness(t)

	summary := h.svc.Run(context.Background(), "/does/not/exist", Options{Env: "dev", Recursive: true})

	if len(summary.Entries) != 1 || summary.Entries[0].Status != StatusSkipped {
		t.Fatalf("entries = %+v, want one skipped entry", summary.Entries)
	}
	if _, ok := h.fs.File(logFile); ok {
		t.Error("log file created although nothing was recorded")
	}
}

func TestService_Run_MalformedManifest(t *testing.T) {
	h := newHarness(t)
	h.fs.SetFile("/proj/package.json", []byte(`{"name":`))

	summary := h.svc.Run(context.Background(), "/proj", Options{Env: "dev"})

	e := summary.Entries[0]
	if e.Status != StatusAppended || !errors.Is(e.Err, apperrors.ErrParse) {
		t.Errorf("entry = %+v, want appended with ErrParse", e)
	}
	lines := h.lines(t)
	if lines[1] != stamp+",Node.js,ERROR,ERROR,dev" {
		t.Errorf("row = %q", lines[1])
	}
	if summary.Errors() != 1 {
		t.Errorf("Errors() = %d, want 1", summary.Errors())
	}
}

func TestService_Run_RegisterFailureContinues(t *testing.T) {
	h := newHarness(t)
	h.fs.SetFile("/root/package.json", []byte(`{"name":"root","version":"1.0.0"}`))
	h.fs.SetDir("/root/child")
	h.fs.SetError(regDir, fs.ErrPermission)

	summary := h.svc.Run(context.Background(), "/root", Options{Env: "dev", Recursive: true})

	if summary.Count(StatusFailed) != 2 {
		t.Errorf("failed = %d, want 2 (entries %+v)", summary.Count(StatusFailed), summary.Entries)
	}
	if !strings.Contains(h.stderr.String(), "cannot write register") {
		t.Errorf("stderr = %q, want a diagnostic", h.stderr.String())
	}
}

func TestService_Run_Exclude(t *testing.T) {
	h := newHarness(t)
	h.fs.SetDir("/root/node_modules/left-pad")
	h.fs.SetDir("/root/.git")
	h.fs.SetDir("/root/src")

	summary := h.svc.Run(context.Background(), "/root", Options{
		Env:       "dev",
		Recursive: true,
		Exclude:   []string{"node_modules", ".*"},
	})

	want := []string{"/root", "/root/src"}
	if got := visited(summary); strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("visited = %v, want %v", got, want)
	}
}

func TestService_Run_CanceledContext(t *testing.T) {
	h := newHarness(t)
	h.fs.SetDir("/root")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if summary := h.svc.Run(ctx, "/root", Options{Env: "dev"}); len(summary.Entries) != 0 {
		t.Errorf("entries = %+v, want none", summary.Entries)
	}
}

func TestSummary_LogPaths(t *testing.T) {
	s := &Summary{Entries: []Entry{
		{LogPath: "/reg/a.csv"},
		{LogPath: ""},
		{LogPath: "/reg/a.csv"},
		{LogPath: "/reg/b.csv"},
	}}

	got := s.LogPaths()
	if strings.Join(got, ",") != "/reg/a.csv,/reg/b.csv" {
		t.Errorf("LogPaths() = %v", got)
	}
}
