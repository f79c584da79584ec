// Package main is the entry point for brokenlayers.
//
// brokenlayers walks a directory tree, asks the GIS toolkit which data-source
// links inside each map document (.mxd) no longer resolve, and appends a
// dated report to brokenLayers_<YYYYMMDD>.log at the top of the tree.
//
// Usage:
//
//	brokenlayers [flags] <root>
//	brokenlayers version
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/ancients-collective/brokenlayers/internal/checker"
	"github.com/ancients-collective/brokenlayers/internal/config"
	sysdetect "github.com/ancients-collective/brokenlayers/internal/context"
	"github.com/ancients-collective/brokenlayers/internal/engine"
	"github.com/ancients-collective/brokenlayers/internal/logging"
	"github.com/ancients-collective/brokenlayers/internal/output"
)

// Exit codes.
const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

// Options holds the raw CLI flag values before they are merged into the config.
type Options struct {
	ConfigPath string
	Checker    string
	Manifest   string
	OnError    string
	Timeout    time.Duration
	Print      string
	NoColor    bool
	Verbose    bool
}

// runError marks failures of the scan itself, as opposed to usage errors.
type runError struct{ err error }

func (e *runError) Error() string { return e.err.Error() }
func (e *runError) Unwrap() error { return e.err }

func main() {
	os.Exit(execute(os.Args[1:], os.Stdout, os.Stderr))
}

// execute runs the CLI with args and returns the process exit code.
func execute(args []string, stdout, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := NewRootCmd(stdout, stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return exitOK
	}

	fmt.Fprintf(stderr, "  ✗ %v\n", err)
	var re *runError
	if errors.As(err, &re) {
		return exitFailure
	}
	fmt.Fprintf(stderr, "  Run 'brokenlayers --help' for usage.\n")
	return exitUsage
}

// NewRootCmd creates the root command.
func NewRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &Options{}

	cmd := &cobra.Command{
		Use:   "brokenlayers [flags] <root>",
		Short: "Report broken data-source links in map documents",
		Long: `brokenlayers walks <root>, opens every map document (.mxd) through the GIS
toolkit and lists the layers whose data sources no longer resolve.

When at least one broken layer is found the report is appended to
<root>/brokenLayers_<YYYYMMDD>.log. Otherwise nothing is written.
Subdirectories that cannot be read are skipped with a warning.

The toolkit is reached through --checker, a command that receives the
document path as its last argument and prints one broken layer per line,
or replayed from a YAML export with --manifest.

To scan a directory literally named "version", pass it as ./version.`,
		Version:       getVersion(),
		Args:          exactlyOneRoot,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, opts)
			if err != nil {
				return &runError{err}
			}
			if err := run(cmd.Context(), cfg, args[0], stdout, stderr); err != nil {
				return &runError{err}
			}
			return nil
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	f := cmd.Flags()
	f.StringVarP(&opts.ConfigPath, "config", "c", "", "Path to YAML config (default: XDG config dir)")
	f.StringVar(&opts.Checker, "checker", "", "Toolkit command; the document path is appended as the last argument")
	f.StringVar(&opts.Manifest, "manifest", "", "Replay toolkit results from a YAML manifest")
	f.StringVar(&opts.OnError, "on-error", config.DefaultOnError, "What an unreadable document does: abort or skip")
	f.DurationVar(&opts.Timeout, "timeout", 0, "Per-document toolkit timeout (0 = none)")
	f.StringVar(&opts.Print, "print", "", "Also print the report to stdout: text, json, jsonl, markdown")
	f.BoolVar(&opts.NoColor, "no-color", false, "Disable colored output")
	f.BoolVarP(&opts.Verbose, "verbose", "v", false, "Enable debug logging on stderr")

	cmd.AddCommand(NewVersionCmd())
	return cmd
}

// exactlyOneRoot validates the positional root argument.
func exactlyOneRoot(_ *cobra.Command, args []string) error {
	switch len(args) {
	case 1:
		return nil
	case 0:
		return errors.New("missing root directory argument")
	default:
		return fmt.Errorf("expected exactly one root directory, got %d arguments", len(args))
	}
}

// resolveConfig loads the config file and applies explicitly set flags over it.
func resolveConfig(cmd *cobra.Command, opts *Options) (*config.Config, error) {
	path, err := config.Find(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("checker") && flags.Changed("manifest") {
		return nil, fmt.Errorf("%w (--checker and --manifest)", config.ErrConflictingCheckers)
	}
	if flags.Changed("checker") {
		cfg.Checker.Command = opts.Checker
		cfg.Checker.Manifest = ""
	}
	if flags.Changed("manifest") {
		cfg.Checker.Manifest = opts.Manifest
		cfg.Checker.Command = ""
	}
	if flags.Changed("on-error") {
		cfg.OnError = opts.OnError
	}
	if flags.Changed("timeout") {
		cfg.Checker.Timeout = opts.Timeout
	}
	if flags.Changed("print") {
		cfg.Print = opts.Print
	}
	if flags.Changed("no-color") {
		cfg.NoColor = opts.NoColor
	}
	if flags.Changed("verbose") {
		cfg.Verbose = opts.Verbose
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// run scans root and writes the dated log when broken layers are found.
func run(ctx context.Context, cfg *config.Config, root string, stdout, stderr io.Writer) error {
	logger := logging.New(stderr, cfg.Verbose)
	defer func() { _ = logger.Sync() }()

	host, warnings := sysdetect.DetectHost(sysdetect.NewHostDetector())
	for _, w := range warnings {
		logger.Debug("host detection", zap.String("warning", w))
	}

	chk, err := newChecker(cfg, root)
	if err != nil {
		return err
	}

	builder := engine.NewBuilder(chk, logger)
	builder.OnError = engine.ErrorMode(cfg.OnError)
	builder.Version = getVersion()
	builder.Host = host

	report, err := builder.Scan(ctx, root)
	if err != nil {
		return err
	}

	if text, ok := output.RenderText(report); ok {
		path, err := output.NewLogFile(root, host.Hostname).Append(text)
		if err != nil {
			return err
		}
		logger.Info("report written",
			zap.String("path", path),
			zap.Int("documents", report.Summary.DocumentsBroken),
			zap.Int("broken_links", report.Summary.BrokenLinks))
	} else {
		logger.Info("no broken layers found", zap.Int("documents_checked", report.Summary.DocumentsChecked))
	}

	if cfg.Print == "" {
		return nil
	}
	formatter, err := output.NewFormatter(cfg.Print)
	if err != nil {
		return err
	}
	if tf, ok := formatter.(*output.TextFormatter); ok {
		tf.ShowFailures = cfg.OnError == string(engine.ErrorModeSkip)
	}
	setupColor(cfg, stdout)
	if err := formatter.Write(stdout, report); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// newChecker binds the configured toolkit access.
func newChecker(cfg *config.Config, root string) (checker.Checker, error) {
	switch {
	case cfg.Checker.Manifest != "":
		return checker.LoadManifest(cfg.Checker.Manifest, root)
	case cfg.Checker.Command != "":
		return checker.NewExecChecker(cfg.Checker.Command, cfg.Checker.Timeout)
	default:
		return checker.Unconfigured{}, nil
	}
}

// setupColor enables colors only for text output on a capable terminal.
func setupColor(cfg *config.Config, stdout io.Writer) {
	isTTY := false
	if f, ok := stdout.(*os.File); ok {
		isTTY = term.IsTerminal(int(f.Fd()))
	}
	color.NoColor = cfg.NoColor || cfg.Print != output.FormatText || !isTTY || output.IsDumbTerm()
}
