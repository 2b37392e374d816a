/*
Package runner implements the 'run' command executing the conformance suite.
*/
package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/nspcc-dev/jsarray/cli/options"
	"github.com/nspcc-dev/jsarray/pkg/assert"
	"github.com/nspcc-dev/jsarray/pkg/config"
	"github.com/nspcc-dev/jsarray/pkg/conformance"
	"github.com/nspcc-dev/jsarray/pkg/services/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/urfave/cli"
	"go.uber.org/zap"
)

// Process exit codes of the 'run' command.
const (
	ExitOK      = 0
	ExitFailed  = 1
	ExitRuntime = 2
)

// NewCommands returns 'run' command.
func NewCommands() []cli.Command {
	flags := []cli.Flag{
		options.ConfigFile,
		options.Debug,
		cli.BoolFlag{
			Name:  "keep-going, k",
			Usage: "run all cases even if some of them fail",
		},
		cli.StringSliceFlag{
			Name:  "case, c",
			Usage: "run only the named case (can be repeated)",
		},
		cli.StringFlag{
			Name:  "format, f",
			Usage: "final report format: " + config.FormatText + ", " + config.FormatTable + " or " + config.FormatJSON,
		},
	}
	return []cli.Command{{
		Name:      "run",
		Usage:     "Run the array conformance suite",
		UsageText: "jsarray run [--config-file file] [--debug] [--keep-going] [--case name]... [--format text|table|json]",
		Description: `Runs conformance cases in their fixed order printing "<case> passed" for
   every successful one and the total time at the end. The first failure stops
   the run unless --keep-going is given. Exit code is 0 if all cases passed, 1
   if an assertion has failed and 2 for any other error.`,
		Action: runSuite,
		Flags:  flags,
	}}
}

func runSuite(ctx *cli.Context) error {
	if len(ctx.Args()) != 0 {
		return cli.NewExitError(fmt.Errorf("unexpected arguments: %v", ctx.Args()), ExitRuntime)
	}
	cfg, err := options.GetConfigFromContext(ctx)
	if err != nil {
		return cli.NewExitError(err, ExitRuntime)
	}
	rcfg, err := runnerConfig(ctx, cfg.Runner)
	if err != nil {
		return cli.NewExitError(err, ExitRuntime)
	}
	log, _, err := options.HandleLoggingParams(ctx.Bool("debug"), cfg.ApplicationConfiguration)
	if err != nil {
		return cli.NewExitError(err, ExitRuntime)
	}
	defer func() { _ = log.Sync() }()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	prom := metrics.NewPrometheusService(cfg.ApplicationConfiguration.Prometheus, reg, log)
	if err := prom.Start(); err != nil {
		return cli.NewExitError(err, ExitRuntime)
	}
	defer prom.ShutDown()

	out := ctx.App.Writer
	if rcfg.Format == config.FormatJSON {
		out = io.Discard
	}
	r, err := conformance.NewRunner(rcfg, out, log.Named("runner"), reg)
	if err != nil {
		return cli.NewExitError(err, ExitRuntime)
	}

	grace, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	res, runErr := r.Run(grace)
	if err := report(ctx.App.Writer, rcfg.Format, res); err != nil {
		log.Error("failed to write report", zap.Error(err))
	}
	if code := exitCode(res, runErr); code != ExitOK {
		return cli.NewExitError(runErr, code)
	}
	return nil
}

// runnerConfig applies command line flags on top of the configuration file
// settings.
func runnerConfig(ctx *cli.Context, cfg config.Runner) (config.Runner, error) {
	if ctx.Bool("keep-going") {
		cfg.KeepGoing = true
	}
	if cs := ctx.StringSlice("case"); len(cs) != 0 {
		cfg.Cases = cs
	}
	if f := ctx.String("format"); f != "" {
		cfg.Format = f
	}
	if cfg.Format == "" {
		cfg.Format = config.FormatText
	}
	return cfg, cfg.Validate()
}

func report(w io.Writer, format string, res *conformance.Result) error {
	if res == nil {
		return nil
	}
	switch format {
	case config.FormatTable:
		fmt.Fprintln(w)
		res.Table(w)
	case config.FormatJSON:
		data, err := res.JSON()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	}
	return nil
}

// exitCode maps the run outcome to the process exit code. Assertion failures
// are distinguished from runtime problems like panics or interrupts.
func exitCode(res *conformance.Result, err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, conformance.ErrCasePanicked):
		return ExitRuntime
	case errors.Is(err, conformance.ErrFailed):
		if res != nil {
			for _, c := range res.Cases {
				if c.Error != nil && !errors.Is(c.Error, assert.ErrAssertion) {
					return ExitRuntime
				}
			}
		}
		return ExitFailed
	case errors.Is(err, assert.ErrAssertion):
		return ExitFailed
	default:
		return ExitRuntime
	}
}
