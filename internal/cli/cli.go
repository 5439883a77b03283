// Package cli builds the version-register command line.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/indaco/version-register/internal/config"
	"github.com/indaco/version-register/internal/core"
	"github.com/indaco/version-register/internal/logger"
	"github.com/indaco/version-register/internal/printer"
	"github.com/indaco/version-register/internal/register"
	"github.com/indaco/version-register/internal/report"
	"github.com/indaco/version-register/internal/scan"
	"github.com/indaco/version-register/internal/version"
	urfavecli "github.com/urfave/cli/v3"
)

// Name is the program name used in usage and version output.
const Name = "version-register"

// Streams are the writers the command prints to.
type Streams struct {
	Stdout io.Writer
	Stderr io.Writer
}

// New builds and returns the root CLI command.
func New(streams Streams) *urfavecli.Command {
	if streams.Stdout == nil {
		streams.Stdout = os.Stdout
	}
	if streams.Stderr == nil {
		streams.Stderr = os.Stderr
	}

	return &urfavecli.Command{
		Name:        Name,
		Usage:       "Record project name and version into a dated CSV register",
		HideVersion: true,
		Writer:      streams.Stdout,
		ErrWriter:   streams.Stderr,
		UsageText: Name + ` [options]

Looks for a package.json or a *.csproj file in the given directory (and its
subdirectories with --recursive) and appends one row per directory to
./version-register/<YYYY-MM-DD>.csv. Rows already present in the day's file
are not written again.`,
		Flags: []urfavecli.Flag{
			&urfavecli.StringFlag{
				Name:        "path",
				Aliases:     []string{"p"},
				Usage:       "Project directory to analyze",
				Value:       config.DefaultPath,
				DefaultText: "current directory",
			},
			&urfavecli.StringFlag{
				Name:    "env",
				Aliases: []string{"e"},
				Usage:   "Environment label recorded in each row",
				Value:   config.DefaultEnv,
			},
			&urfavecli.BoolFlag{
				Name:    "recursive",
				Aliases: []string{"r"},
				Usage:   "Analyze subdirectories recursively",
			},
			&urfavecli.BoolFlag{
				Name:    "vers",
				Aliases: []string{"v"},
				Usage:   "Print the tool version and exit",
			},
			&urfavecli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Config file (default: .version-register.yaml or .version-register.toml)",
			},
			&urfavecli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Summary format: text, json, table",
				Value:   string(report.FormatText),
			},
			&urfavecli.BoolFlag{
				Name:    "quiet",
				Aliases: []string{"q"},
				Usage:   "Do not print the run summary",
			},
			&urfavecli.BoolFlag{
				Name:  "no-color",
				Usage: "Disable colored output",
			},
			&urfavecli.BoolFlag{
				Name:  "verbose",
				Usage: "Log every visited directory",
			},
		},
		Action: func(ctx context.Context, cmd *urfavecli.Command) error {
			return run(ctx, cmd, streams)
		},
	}
}

// run never fails: every problem is logged to stderr and the run degrades
// to defaults or skips the affected directory.
func run(ctx context.Context, cmd *urfavecli.Command, streams Streams) error {
	diag := logger.New(streams.Stderr, cmd.Bool("verbose"))

	if cmd.Bool("vers") {
		printVersion(streams.Stdout, diag)
		return nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		diag.Error("cannot determine working directory", "error", err)
		return nil
	}

	fsys := core.NewOSFileSystem()
	cfg, source, err := config.Load(ctx, fsys, cwd, cmd.String("config"))
	if err != nil {
		diag.Error("cannot load config, using defaults", "error", err)
	} else if source != "" {
		diag.Debug("loaded config", "file", source)
	}
	applyFlags(cmd, cfg)

	format, err := report.ParseOutputFormat(cmd.String("format"))
	if err != nil {
		diag.Warn("falling back to text summary", "error", err)
	}

	root, err := filepath.Abs(cfg.Path)
	if err != nil {
		diag.Error("cannot resolve path", "path", cfg.Path, "error", err)
		return nil
	}

	registerDir := cfg.RegisterDir
	if !filepath.IsAbs(registerDir) {
		registerDir = filepath.Join(cwd, registerDir)
	}

	p := printer.New(streams.Stdout, cfg.NoColor || !isTerminal(streams.Stdout))
	notices := p
	if format == report.FormatJSON {
		// stdout carries only the JSON document
		notices = printer.New(streams.Stderr, cfg.NoColor || !isTerminal(streams.Stderr))
	}
	svc := scan.NewService(fsys, register.NewLogger(fsys, registerDir),
		scan.WithPrinter(notices),
		scan.WithLogger(diag),
	)

	diag.Debug("starting analysis", "root", root, "env", cfg.Env, "recursive", cfg.Recursive)
	summary := svc.Run(ctx, root, scan.Options{
		Env:       cfg.Env,
		Recursive: cfg.Recursive,
		Exclude:   cfg.Exclude,
	})

	if !cmd.Bool("quiet") {
		report.NewFormatter(format, p).Print(summary)
	}
	return nil
}

// applyFlags overrides config values with the flags given on the command line.
// An empty --env keeps the configured label.
func applyFlags(cmd *urfavecli.Command, cfg *config.Config) {
	if cmd.IsSet("path") {
		cfg.Path = cmd.String("path")
	}
	if cfg.Path == "" {
		cfg.Path = config.DefaultPath
	}
	if cmd.IsSet("env") && cmd.String("env") != "" {
		cfg.Env = cmd.String("env")
	}
	if cmd.IsSet("recursive") {
		cfg.Recursive = cmd.Bool("recursive")
	}
	if cmd.IsSet("no-color") {
		cfg.NoColor = cmd.Bool("no-color")
	}
}

func printVersion(w io.Writer, diag *log.Logger) {
	if _, err := version.Read(); err != nil {
		diag.Error("cannot read tool version", "error", err)
	}
	fmt.Fprintf(w, "%s v%s\n", Name, version.GetVersion())
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && printer.IsTTY(f)
}
