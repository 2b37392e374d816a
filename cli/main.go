package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/nspcc-dev/jsarray/cli/app"
	"github.com/urfave/cli"
)

func main() {
	ctl := app.New()

	if err := ctl.Run(os.Args); err != nil {
		fmt.Fprintln(ctl.ErrWriter, err)
		code := 1
		var ec cli.ExitCoder
		if errors.As(err, &ec) {
			code = ec.ExitCode()
		}
		os.Exit(code)
	}
}
