// Package main provides the command-line interface for the linkcheck broken link finder.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/vnykmshr/linkcheck/internal/checker"
	"github.com/vnykmshr/linkcheck/internal/cli"
	"github.com/vnykmshr/linkcheck/internal/config"
	"github.com/vnykmshr/linkcheck/internal/domain"
	"github.com/vnykmshr/linkcheck/internal/frontier"
	"github.com/vnykmshr/linkcheck/internal/metrics"
	"github.com/vnykmshr/linkcheck/internal/progress"
	"github.com/vnykmshr/linkcheck/internal/reporter"
)

const linkCheckCommand = "link-check"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes the command line in args and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	global := flag.NewFlagSet("linkcheck", flag.ContinueOnError)
	global.SetOutput(stderr)
	var (
		trace       = global.Bool("trace", false, "Enable debug logging")
		showVersion = global.Bool("version", false, "Show version information")
		showHelp    = global.Bool("help", false, "Show help message")
	)
	if err := global.Parse(args); err != nil {
		return 2
	}

	if *showVersion {
		fmt.Fprintf(stdout, "linkcheck v%s\n", domain.Version)
		return 0
	}
	if *showHelp {
		cli.ShowHelpMessage(stdout, domain.Version)
		return 0
	}

	rest := global.Args()
	if len(rest) == 0 || rest[0] != linkCheckCommand {
		cli.ShowHelpMessage(stderr, domain.Version)
		return 2
	}

	return runLinkCheck(ctx, rest[1:], *trace, stdout, stderr)
}

func runLinkCheck(ctx context.Context, args []string, trace bool, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet(linkCheckCommand, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { cli.ShowLinkCheckHelp(stderr) }

	opts := &cli.ConfigOptions{}
	fs.StringVar(&opts.BaseURL, "base", "", "Base URL")
	fs.StringVar(&opts.StartURL, "start", "", "Start URL")
	fs.BoolVar(&opts.InternalOnly, "internal-only", false, "Never check links outside the base")
	fs.BoolVar(&opts.HumanAgent, "human-agent", false, "Send a desktop browser User-Agent")
	fs.BoolVar(&opts.Trace, "trace", trace, "Enable debug logging")
	fs.IntVar(&opts.Concurrency, "concurrency", 0, "Maximum simultaneous requests")
	fs.IntVar(&opts.MaxPathDepth, "max-path-depth", 0, "Maximum non-empty path segments")
	fs.StringVar(&opts.Timeout, "timeout", "", "Per-request timeout")
	fs.Float64Var(&opts.Rate, "rate", 0, "Requests per second limit")
	fs.StringVar(&opts.UserAgent, "user-agent", "", "User-Agent string")
	fs.StringVar(&opts.ReportFile, "report", "", "Report file")
	fs.StringVar(&opts.MetricsAddr, "metrics-addr", "", "Prometheus metrics address")
	fs.StringVar(&opts.VisitedRedisAddr, "visited-redis", "", "Redis address for the visited set")
	fs.StringVar(&opts.LogFormat, "log-format", "", "Log format: text or json")
	fs.BoolVar(&opts.NoProgress, "no-progress", false, "Disable the live progress line")
	configPath := fs.String("config", "", "Path to configuration file (JSON)")
	saveConfig := fs.String("save-config", "", "Write the effective configuration to this path")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	cfg, err := cli.LoadConfiguration(*configPath, opts)
	if err != nil {
		fmt.Fprintf(stderr, "Failed to load configuration: %v\n", err)
		return 1
	}
	cli.ValidateRateLimit(stderr, &cfg.Rate)

	base, start, err := cli.ValidateTargets(cfg.BaseURL, cfg.StartURL)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	if *saveConfig != "" {
		if err := config.NewLoader().SaveToFile(cfg, *saveConfig); err != nil {
			fmt.Fprintf(stderr, "Failed to save configuration: %v\n", err)
			return 1
		}
	}

	logger := newLogger(stderr, cfg)

	runID := uuid.NewString()
	checkerConfig, err := cli.BuildCheckerConfig(cfg, runID)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	if cfg.HumanAgent {
		cli.PrintWarningBox(stderr, "HUMAN USER-AGENT", cli.HumanAgentWarning)
	}

	rep := reporter.New(stdout)
	options := []checker.Option{checker.WithResultHandler(rep.PrintResult)}

	if cfg.VisitedRedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.VisitedRedisAddr})
		defer func() {
			_ = client.Close()
		}()
		if err := client.Ping(ctx).Err(); err != nil {
			fmt.Fprintf(stderr, "Cannot reach visited store at %s: %v\n", cfg.VisitedRedisAddr, err)
			return 1
		}
		options = append(options, checker.WithVisitedStore(frontier.NewRedisStore(client, runID, frontier.DefaultVisitedTTL)))
	}

	if cfg.MetricsAddr != "" {
		m := metrics.New(runID)
		options = append(options, checker.WithRecorder(m))

		metricsCtx, stopMetrics := context.WithCancel(ctx)
		defer stopMetrics()
		go func() {
			if err := m.Serve(metricsCtx, cfg.MetricsAddr, logger); err != nil {
				logger.Error("Metrics server failed", "error", err)
			}
		}()
	}

	var spinner *progress.Spinner
	if cfg.ProgressEnabled(cli.IsInteractiveTerminal(os.Stderr)) {
		spinner = progress.New(stderr, progress.DefaultInterval)
		options = append(options, checker.WithProgress(spinner))
	}

	chk, err := checker.New(checkerConfig, logger, options...)
	if err != nil {
		fmt.Fprintf(stderr, "Failed to create checker: %v\n", err)
		return 1
	}

	if spinner != nil {
		spinner.Start()
	}
	report, err := chk.Check(ctx, start)
	if spinner != nil {
		spinner.Stop()
	}

	if report == nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	if err != nil {
		logger.Warn("Link check interrupted, reporting partial results", "error", err)
	}

	rep.PrintSummary(report)

	if cfg.ReportFile != "" {
		if exportErr := rep.Export(report, cfg.ReportFile); exportErr != nil {
			logger.Error("Failed to write report", "file", cfg.ReportFile, "error", exportErr)
			return 1
		}
		logger.Info("Report saved", "file", cfg.ReportFile, "base", base.String())
	}

	if err != nil || !report.Passed {
		return 1
	}
	return 0
}

// newLogger builds the structured logger on w. Trace lowers the level to debug,
// which adds skipped and unparsable links and per-link successes.
func newLogger(w io.Writer, cfg *domain.Config) *slog.Logger {
	level := slog.LevelInfo
	if cfg.Trace {
		level = slog.LevelDebug
	}
	handlerOpts := &slog.HandlerOptions{Level: level}

	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, handlerOpts))
	}
	return slog.New(slog.NewTextHandler(w, handlerOpts))
}
