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

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"touchmax/internal/app"
	"touchmax/internal/config"
	"touchmax/internal/domain"
	appErrors "touchmax/internal/errors"
	"touchmax/internal/event"
	"touchmax/internal/infra/exif"
	"touchmax/internal/infra/fs"
	"touchmax/internal/logging"
	"touchmax/internal/presentation"
	"touchmax/internal/tui"
)

var version = "dev"

const exitInterrupted = 130

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	var (
		showVersion bool
		exitCode    int
	)

	rootCmd := &cobra.Command{
		Use:   "touchmax [flags] [dir/]pattern",
		Short: "Bulk-modify creation and last modified timestamps",
		Long: `touchmax changes the creation and/or last modified time of every file or
folder whose name matches pattern, optionally recursing into subfolders.

Each of --year, --month, --day, --hour and --minute takes +N or -N to shift
that component, or N (or =N) to set it. Values are applied to the entry's own
timestamp unless --usenow, --usecreation, --usemodified or --usecapture picks
a different starting point.`,
		Example: `  touchmax -f -w -D+1 '*.jpg'
  touchmax -rfc --usemodified photos/'*'
  touchmax -f -c -w --usecapture -h-1 -n 'DSC*.ARW'`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	flags := config.Bind(rootCmd.Flags())
	rootCmd.Flags().BoolVar(&showVersion, "version", false, "print version and exit")
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return appErrors.Wrap(appErrors.InvalidConfig, "flags", "", err)
	})

	rootCmd.RunE = func(cmd *cobra.Command, posArgs []string) error {
		if showVersion {
			fmt.Fprintf(stdout, "touchmax %s\n", version)
			return nil
		}
		cfg, err := flags.Resolve(cmd.Flags(), posArgs, os.Getenv)
		if err != nil {
			return appErrors.Wrap(appErrors.InvalidConfig, "config", "", err)
		}
		exitCode, err = touch(cmd.Context(), cfg, stdout, stderr)
		return err
	}

	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			fmt.Fprintln(stderr, "Interrupted.")
			return exitInterrupted
		}
		fmt.Fprintln(stderr, appErrors.UserMessage(err))
		if appErrors.IsFatal(err) {
			return 2
		}
		return 1
	}
	return exitCode
}

// touch runs one configured pass and returns the process exit code.
func touch(ctx context.Context, cfg config.Config, stdout, stderr io.Writer) (int, error) {
	now := time.Now()

	logger, closeLog, err := logging.Open(logging.Options{
		RunID:   logging.NewRunID(),
		Verbose: cfg.Verbose,
		Stderr:  stderr,
		File:    cfg.LogFile,
	})
	if err != nil {
		return 2, appErrors.Wrap(appErrors.InvalidConfig, "log file", cfg.LogFile, err)
	}
	defer closeLog()

	traversal := cfg.Traversal()
	adjust := cfg.Adjustment(now)

	filesystem := fs.OSFS{}
	runner := app.Runner{
		FS:     filesystem,
		Store:  filesystem,
		Exif:   exif.Reader{},
		Logger: logger,
	}

	useTUI := cfg.TUI
	if useTUI && !tui.IsTTY(os.Stdout.Fd()) {
		fmt.Fprintln(stderr, "--tui requires a terminal, falling back to plain output")
		useTUI = false
	}

	var summary domain.Summary
	if useTUI {
		summary, err = runTUI(ctx, runner, cfg, traversal, adjust)
	} else {
		printer := presentation.Printer{Writer: stdout, Verbose: cfg.Verbose, Quiet: cfg.Quiet}
		printer.PrintSettings(traversal, adjust)
		runner.Events = printer
		summary, err = runner.Run(ctx, traversal, adjust)
		printer.PrintSummary(summary)
	}
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return exitInterrupted, err
		}
		logger.Error("run failed", "error", err)
		return 1, appErrors.Wrap(appErrors.Internal, "touch", traversal.RootPath, err)
	}

	if summary.HasFailures() {
		return 1, nil
	}
	return 0, nil
}

type runResult struct {
	summary domain.Summary
	err     error
}

// runTUI drives the walk from a bubbletea command while the program owns
// the terminal. Events reach the model through Program.Send.
func runTUI(ctx context.Context, runner app.Runner, cfg config.Config, traversal domain.TraversalSpec, adjust domain.AdjustmentSpec) (domain.Summary, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var program *tea.Program
	results := make(chan runResult, 1)
	started := false

	runner.Events = event.SinkFunc(func(ev event.Event) {
		program.Send(tui.EventMsg{Event: ev})
	})

	model := tui.NewModel(tui.Config{
		RootPath: traversal.RootPath,
		Pattern:  traversal.Pattern,
		DryRun:   cfg.DryRun,
		Cancel:   cancel,
		Start: func() tea.Cmd {
			started = true
			return func() tea.Msg {
				summary, err := runner.Run(ctx, traversal, adjust)
				results <- runResult{summary: summary, err: err}
				if err != nil {
					return tui.ErrorMsg{Err: err}
				}
				return tui.DoneMsg{Summary: summary}
			}
		},
	})

	program = tea.NewProgram(model, tea.WithContext(ctx))
	_, runErr := program.Run()

	cancel()
	if !started {
		if runErr != nil {
			return domain.Summary{}, runErr
		}
		return domain.Summary{}, errors.New("terminal view exited before the walk started")
	}
	res := <-results
	if runErr != nil && !errors.Is(runErr, tea.ErrProgramKilled) && res.err == nil {
		return res.summary, runErr
	}
	return res.summary, res.err
}
