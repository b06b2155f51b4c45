package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"camarc/internal/app"
	"camarc/internal/config"
	"camarc/internal/domain"
	appErrors "camarc/internal/errors"
	"camarc/internal/infra/exif"
	"camarc/internal/infra/fs"
	"camarc/internal/logging"
	"camarc/internal/presentation"
	"camarc/internal/tui"
)

var version = "dev"

func main() {
	if err := newRootCommand().Execute(); err != nil {
		exitWithError(err)
	}
}

func newRootCommand() *cobra.Command {
	return newCommand(run)
}

func newCommand(runFn func(context.Context, config.Config) error) *cobra.Command {
	var configPath string
	flags := config.Default()

	cmd := &cobra.Command{
		Use:   "camarc --source DIR --target DIR",
		Short: "Copy camera footage into an archive, renamed by capture time",
		Long: `camarc copies every file whose name contains the format marker from the
source directory into the target directory. Each copy is named
YYYY_MM_DD_HH_MM_SS_<prefix>.<ext> after the file's modification time; clashing
names get an _f1, _f2, ... disambiguator. Existing files are never overwritten
and the source is never modified.`,
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, configPath, flags)
			if err != nil {
				return appErrors.Wrap(appErrors.InvalidConfig, "config", "", err)
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			return runFn(ctx, cfg)
		},
	}

	f := cmd.Flags()
	f.StringVar(&configPath, "config", "", "YAML config file")
	f.StringVarP(&flags.SourceDir, "source", "s", "", "Source directory to copy from")
	f.StringVarP(&flags.TargetDir, "target", "t", "", "Target directory to copy to")
	f.StringVarP(&flags.Format, "format", "f", flags.Format, "Only copy files whose name contains this marker")
	f.StringVarP(&flags.Prefix, "prefix", "p", flags.Prefix, "Tag inserted into every new file name")
	f.StringVar((*string)(&flags.Match), "match", string(flags.Match), "How the marker is matched: substring or extension")
	f.StringVar((*string)(&flags.Extension), "extension", string(flags.Extension), "Extension segment to keep: first or last")
	f.StringVar((*string)(&flags.TimeSource), "time-source", string(flags.TimeSource), "Capture time source: mtime or exif")
	f.StringVar((*string)(&flags.OnError), "on-error", string(flags.OnError), "On a failed file: abort or continue")
	f.StringVar((*string)(&flags.Progress), "progress", string(flags.Progress), "Progress output: lines, bar, tui or auto")
	f.BoolVarP(&flags.DryRun, "dry-run", "d", false, "Show the resulting names without copying")
	f.BoolVarP(&flags.Verbose, "verbose", "v", false, "Verbose output")

	return cmd
}

// resolveConfig layers defaults, the config file, the environment and the
// flags that were set explicitly, in that order.
func resolveConfig(cmd *cobra.Command, configPath string, flags config.Config) (config.Config, error) {
	cfg := config.Default()
	if configPath != "" {
		if err := config.LoadFile(configPath, &cfg); err != nil {
			return config.Config{}, err
		}
	}
	cfg.ApplyEnv(os.Getenv)

	changed := cmd.Flags().Changed
	if changed("source") {
		cfg.SourceDir = flags.SourceDir
	}
	if changed("target") {
		cfg.TargetDir = flags.TargetDir
	}
	if changed("format") {
		cfg.Format = flags.Format
	}
	if changed("prefix") {
		cfg.Prefix = flags.Prefix
	}
	if changed("match") {
		cfg.Match = flags.Match
	}
	if changed("extension") {
		cfg.Extension = flags.Extension
	}
	if changed("time-source") {
		cfg.TimeSource = flags.TimeSource
	}
	if changed("on-error") {
		cfg.OnError = flags.OnError
	}
	if changed("progress") {
		cfg.Progress = flags.Progress
	}
	if changed("dry-run") {
		cfg.DryRun = flags.DryRun
	}
	if changed("verbose") {
		cfg.Verbose = flags.Verbose
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func run(ctx context.Context, cfg config.Config) error {
	mode := cfg.Progress
	if mode == config.ProgressAuto {
		mode = config.ProgressLines
		if isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()) {
			mode = config.ProgressTUI
		}
	}

	logger := logging.New(os.Stderr, cfg.Verbose)
	if mode == config.ProgressTUI {
		logger = logging.Logger{}
	}

	archiver := &app.Archiver{
		FS:     fs.OSFS{},
		Logger: logger,
	}
	if cfg.TimeSource == config.TimeFromExif {
		archiver.Exif = exif.Reader{}
	}

	printer := presentation.Printer{Writer: os.Stdout, Verbose: cfg.Verbose}
	opts := cfg.ArchiveOptions()

	var report domain.Report
	var err error
	switch mode {
	case config.ProgressTUI:
		report, err = runTUI(ctx, cfg, archiver, opts)
	case config.ProgressBar:
		bar := &presentation.Bar{Writer: os.Stdout}
		archiver.OnScan = bar.Start
		archiver.OnProgress = func(current, total int, item domain.CopyItem) {
			bar.Increment(item.Source.Name)
		}
		report, err = archiver.Run(ctx, cfg.SourceDir, cfg.TargetDir, opts)
		bar.Finish()
	default:
		if !cfg.DryRun {
			archiver.OnProgress = func(current, total int, item domain.CopyItem) {
				printer.PrintProgress(current, total)
			}
		}
		report, err = archiver.Run(ctx, cfg.SourceDir, cfg.TargetDir, opts)
	}

	if errors.Is(err, context.Canceled) {
		return fmt.Errorf("interrupted after copying %d of %d files", report.Copied(), report.Total)
	}
	if err != nil {
		return err
	}

	if mode != config.ProgressTUI {
		if cfg.DryRun {
			printer.PrintDryRun(report)
		} else {
			printer.PrintCompletion(report)
		}
	}

	if !report.Succeeded() {
		return fmt.Errorf("%d of %d files failed", len(report.Failures), report.Total)
	}
	return nil
}

func runTUI(ctx context.Context, cfg config.Config, archiver *app.Archiver, opts app.Options) (domain.Report, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	program := tea.NewProgram(tui.NewModel(tui.Config{
		SourceDir: cfg.SourceDir,
		TargetDir: cfg.TargetDir,
		DryRun:    cfg.DryRun,
		Verbose:   cfg.Verbose,
		Cancel:    cancel,
	}))

	archiver.OnScan = func(total int) {
		program.Send(tui.ScanDoneMsg{Total: total})
	}
	archiver.OnProgress = func(current, total int, item domain.CopyItem) {
		program.Send(tui.CopyProgressMsg{Current: current, Total: total, Item: item})
	}

	type result struct {
		report domain.Report
		err    error
	}
	done := make(chan result, 1)
	go func() {
		report, err := archiver.Run(ctx, cfg.SourceDir, cfg.TargetDir, opts)
		program.Send(tui.FinishedMsg{Report: report, Err: err})
		done <- result{report: report, err: err}
	}()

	_, tuiErr := program.Run()
	cancel()
	res := <-done
	if tuiErr != nil && res.err == nil {
		return res.report, appErrors.Wrap(appErrors.Internal, "tui", "", tuiErr)
	}
	return res.report, res.err
}

func exitWithError(err error) {
	color.New(color.FgRed, color.Bold).Fprintln(os.Stderr, appErrors.UserMessage(err))
	os.Exit(1)
}
