package app

import (
	"fmt"
	"os"
	"runtime"

	"github.com/nspcc-dev/jsarray/cli/runner"
	"github.com/nspcc-dev/jsarray/cli/shell"
	"github.com/nspcc-dev/jsarray/pkg/config"
	"github.com/urfave/cli"
)

func versionPrinter(c *cli.Context) {
	_, _ = fmt.Fprintf(c.App.Writer, "jsarray\nVersion: %s\nGoVersion: %s\n",
		config.Version,
		runtime.Version(),
	)
}

// New creates a jsarray instance of [cli.App] with all commands included.
// Exit codes are not handled by the App itself, callers are expected to
// check returned errors for [cli.ExitCoder].
func New() *cli.App {
	cli.VersionPrinter = versionPrinter
	ctl := cli.NewApp()
	ctl.Name = "jsarray"
	ctl.Version = config.Version
	ctl.Usage = "Dynamic array runtime and conformance suite"
	ctl.ErrWriter = os.Stdout
	ctl.ExitErrHandler = func(*cli.Context, error) {}

	ctl.Commands = append(ctl.Commands, runner.NewCommands()...)
	ctl.Commands = append(ctl.Commands, shell.NewCommands()...)
	return ctl
}
