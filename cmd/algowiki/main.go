package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/algowiki/internal/compiler"
	"git.home.luguber.info/inful/algowiki/internal/config"
	"git.home.luguber.info/inful/algowiki/internal/foundation/errors"
	"git.home.luguber.info/inful/algowiki/internal/logfields"
	"git.home.luguber.info/inful/algowiki/internal/metrics"
	"git.home.luguber.info/inful/algowiki/internal/version"
)

// CLI is the command line of algowiki.
type CLI struct {
	Root string `arg:"" optional:"" help:"Content root to compile" type:"path"`

	Config      string           `short:"c" help:"Configuration file path" default:"${default_config}"`
	Verbose     bool             `short:"v" help:"Enable verbose logging"`
	Version     kong.VersionFlag `name:"version" help:"Show version and exit"`
	MetricsFile string           `name:"metrics-file" help:"Write compile metrics to this file in Prometheus text format" type:"path"`

	InitConfig bool `name:"init-config" help:"Write a default configuration file to --config and exit"`
	Force      bool `help:"Overwrite an existing configuration file with --init-config"`
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	cancel()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	var cli CLI
	exitCode := -1
	parser, err := kong.New(&cli,
		kong.Name("algowiki"),
		kong.Description("Compile a tree of page descriptors into a static HTML wiki."),
		kong.UsageOnError(),
		kong.Writers(stdout, stderr),
		kong.Exit(func(code int) { exitCode = code }),
		kong.Vars{
			"version":        version.String(),
			"default_config": config.DefaultConfigFile,
		},
	)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "algowiki: %v\n", err)
		return 1
	}
	kctx, err := parser.Parse(args)
	if exitCode >= 0 {
		return exitCode
	}
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "algowiki: %v\n", err)
		return 2
	}

	bootstrap := config.LoggingConfig{Level: config.LogLevelInfo, Format: config.LogFormatText}.NewLogger(stderr, cli.Verbose)
	adapter := errors.NewCLIErrorAdapter(cli.Verbose, bootstrap).WithOutput(stderr)

	if cli.InitConfig {
		if err := config.Init(cli.Config, cli.Force); err != nil {
			return adapter.Report(errors.WrapError(err, errors.CategoryConfig, "failed to write configuration").
				WithContext("path", cli.Config).
				Build())
		}
		_, _ = fmt.Fprintf(stdout, "Wrote %s\n", cli.Config)
		return 0
	}

	if cli.Root == "" {
		_ = kctx.PrintUsage(false)
		return 0
	}

	cfg, err := config.LoadOptional(cli.Config)
	if err != nil {
		return adapter.Report(err)
	}
	logger := cfg.Logging.NewLogger(stderr, cli.Verbose)
	slog.SetDefault(logger)
	adapter = errors.NewCLIErrorAdapter(cli.Verbose, logger).WithOutput(stderr)

	opts := []compiler.Option{}
	var registry *prometheus.Registry
	if cli.MetricsFile != "" {
		registry = prometheus.NewRegistry()
		opts = append(opts, compiler.WithRecorder(metrics.NewPrometheusRecorder(registry)))
	}

	report, runErr := compiler.New(cfg, opts...).Run(ctx, cli.Root)

	if registry != nil {
		if err := metrics.WriteTextfile(cli.MetricsFile, registry); err != nil {
			logger.Warn("Failed to write metrics file", logfields.Path(cli.MetricsFile), logfields.Error(err))
		}
	}
	if runErr != nil {
		return adapter.Report(runErr)
	}
	for _, b := range report.BrokenLinks {
		_, _ = fmt.Fprintf(stderr, "warning: broken link %s\n", b)
	}
	_, _ = fmt.Fprintln(stdout, report.Summary())
	return 0
}
