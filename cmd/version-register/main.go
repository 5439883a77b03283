package main

import (
	"context"
	"fmt"
	"os"

	"github.com/indaco/version-register/internal/cli"
)

func main() {
	if err := runCLI(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// runCLI builds the root command and runs it with args.
func runCLI(args []string) error {
	app := cli.New(cli.Streams{Stdout: os.Stdout, Stderr: os.Stderr})
	return app.Run(context.Background(), args)
}
