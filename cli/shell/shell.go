/*
Package shell provides an interactive prompt for experimenting with dynamic
arrays and running conformance cases by hand.
*/
package shell

import (
	"fmt"
	"os"

	"github.com/chzyer/readline"
	"github.com/nspcc-dev/jsarray/cli/options"
	"github.com/nspcc-dev/jsarray/pkg/services/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/urfave/cli"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"
)

// NewCommands returns 'shell' command.
func NewCommands() []cli.Command {
	return []cli.Command{{
		Name:      "shell",
		Usage:     "Start the interactive array shell",
		UsageText: "jsarray shell [--config-file file] [--debug]",
		Action:    startShell,
		Flags:     []cli.Flag{options.ConfigFile, options.Debug},
	}}
}

func startShell(ctx *cli.Context) error {
	if len(ctx.Args()) != 0 {
		return cli.NewExitError(fmt.Errorf("unexpected arguments: %v", ctx.Args()), 1)
	}
	cfg, err := options.GetConfigFromContext(ctx)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	log, _, err := options.HandleLoggingParams(ctx.Bool("debug"), cfg.ApplicationConfiguration)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer func() { _ = log.Sync() }()
	// Services and runners only report problems while the prompt is active.
	log = log.WithOptions(zap.WrapCore(func(core zapcore.Core) zapcore.Core {
		return options.NewFilteringCore(core, options.QuietFilter(zapcore.WarnLevel, "shell"))
	}))

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	prom := metrics.NewPrometheusService(cfg.ApplicationConfiguration.Prometheus, reg, log)
	if err := prom.Start(); err != nil {
		return cli.NewExitError(err, 1)
	}
	defer prom.ShutDown()

	isTTY := term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
	sh, err := NewWithConfig(isTTY, &readline.Config{
		Stdout:         ctx.App.Writer,
		Stderr:         ctx.App.ErrWriter,
		FuncIsTerminal: func() bool { return isTTY },
	}, reg, log.Named("shell"))
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	if err := sh.Run(); err != nil {
		return cli.NewExitError(err, 1)
	}
	return nil
}
