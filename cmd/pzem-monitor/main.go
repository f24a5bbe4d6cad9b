// cmd/pzem-monitor/main.go
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

var version = "dev"

func main() {
	app := &cli.App{
		Name:    "pzem-monitor",
		Usage:   "poll a pair of PZEM-004T meters and account daily energy",
		Version: version,
		Commands: []*cli.Command{
			runCommand(),
			probeCommand(),
			setAddressCommand(),
			benchCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "pzem-monitor:", err)
		os.Exit(1)
	}
}
