// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/shayne/yargs"
	"github.com/yeetrun/cmdspec/pkg/cli"
	"github.com/yeetrun/cmdspec/pkg/cmdspec"
	"github.com/yeetrun/cmdspec/pkg/tui"
)

type globalFlagsParsed struct {
	NoColor bool `flag:"no-color" help:"Disable colored output"`
	Verbose bool `flag:"verbose" short:"v" help:"Log diagnostics to stderr"`
}

func parseGlobalFlags(args []string) (globalFlagsParsed, []string, error) {
	result, err := yargs.ParseKnownFlags[globalFlagsParsed](args, yargs.KnownFlagsOptions{})
	if err != nil {
		return globalFlagsParsed{}, nil, err
	}
	return result.Flags, result.RemainingArgs, nil
}

func colorizerFor(w io.Writer, enabled bool) tui.Colorizer {
	f, ok := w.(*os.File)
	if !ok {
		return tui.Colorizer{}
	}
	return tui.ForFile(f, enabled)
}

func printCLIError(w io.Writer, c tui.Colorizer, err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(w, "%s %v\n", c.Red("Error:"), err)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	globalFlags, remaining, err := parseGlobalFlags(args)
	if err != nil {
		printCLIError(stderr, tui.Colorizer{}, err)
		return 2
	}

	app := &cli.App{
		Stdout:  stdout,
		Color:   colorizerFor(stdout, !globalFlags.NoColor),
		Verbose: globalFlags.Verbose,
	}
	err = app.Run(ctx, remaining)
	if err != nil && !errors.Is(err, cmdspec.ErrShown) {
		printCLIError(stderr, colorizerFor(stderr, !globalFlags.NoColor), err)
	}
	return cmdspec.ExitCode(err)
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("specctl: ")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
