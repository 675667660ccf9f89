// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cli implements specctl, a tool that loads command spec files and
// resolves, validates and renders help for argument vectors against them.
//
//	specctl [options] <command> [-- <target args...>]
//
// specctl's own command tree is declared with cmdspec. Everything after
// "--" is the target argument vector, resolved against the loaded spec.
package cli

import (
	"context"
	"errors"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/yeetrun/cmdspec/pkg/cmdspec"
	"github.com/yeetrun/cmdspec/pkg/specfile"
	"github.com/yeetrun/cmdspec/pkg/tui"
)

// SpecEnv names the environment variable holding the default spec files,
// separated by the OS list separator.
const SpecEnv = "SPECCTL_SPEC"

var errNoSpec = errors.New("no spec file: use --spec or set " + SpecEnv)

// App runs specctl commands.
type App struct {
	Stdout  io.Writer // defaults to os.Stdout
	Color   tui.Colorizer
	Verbose bool
	// Getenv defaults to os.Getenv.
	Getenv func(string) string
}

// invocation is one call of a specctl handler.
type invocation struct {
	args   []string
	opts   cmdspec.Options
	target []string
}

type handlerFunc func(ctx context.Context, inv *invocation) error

// Run executes args. Arguments after "--" are the target arguments.
func (a *App) Run(ctx context.Context, args []string) error {
	own, target := splitArgsAtDoubleDash(args)
	return cmdspec.Run(ctx, a.Command(target), own, cmdspec.RunOptions{
		Stdout: a.stdout(),
		Style:  a.helpStyle(),
	})
}

// Command returns specctl's command tree with target bound into the
// handlers.
func (a *App) Command(target []string) *cmdspec.Command {
	h := func(fn handlerFunc) cmdspec.Handler {
		return func(ctx context.Context, args []string, opts cmdspec.Options, _ *cmdspec.Parsed) error {
			return fn(ctx, &invocation{args: args, opts: opts, target: target})
		}
	}
	return &cmdspec.Command{
		Name:        "specctl",
		Description: "Resolve, validate and document argument vectors against command spec files.",
		Options: []cmdspec.Option{
			{
				Name:        "spec",
				Aliases:     []string{"-s", "--spec"},
				Description: "Spec file (.yaml, .toml, .json, optionally .zst); repeatable",
				Multiple:    true,
				Argument:    &cmdspec.ValueArg{Name: "<file>"},
			},
			{
				Name:        "output",
				Aliases:     []string{"-o", "--output"},
				Description: "Output format: json, yaml or toml",
				Argument:    &cmdspec.ValueArg{Name: "<format>"},
			},
		},
		Subcommands: []*cmdspec.Command{
			{Name: "resolve", Description: "Print the resolved command chain of the target args", Handler: h(a.handleResolve)},
			{Name: "validate", Description: "Resolve and validate the target args", Handler: h(a.handleValidate)},
			{Name: "help", Description: "Render help for the target args", Handler: h(a.handleHelp)},
			{Name: "schema", Description: "Print the JSON Schemas of the resolved command", Handler: h(a.handleSchema)},
			{Name: "lint", Description: "Report problems in every spec file", Handler: h(a.handleLint)},
			{
				Name:        "pack",
				Description: "Write a zstd compressed copy of the spec file",
				Arguments:   []cmdspec.Argument{{Name: "<dest>", Description: "Destination file, e.g. cli.yaml.zst"}},
				Handler:     h(a.handlePack),
			},
			{Name: "version", Description: "Print the engine version", Handler: h(a.handleVersion)},
		},
	}
}

func (a *App) stdout() io.Writer {
	if a.Stdout == nil {
		return os.Stdout
	}
	return a.Stdout
}

func (a *App) getenv(key string) string {
	if a.Getenv == nil {
		return os.Getenv(key)
	}
	return a.Getenv(key)
}

func (a *App) logf(format string, args ...any) {
	if a.Verbose {
		log.Printf(format, args...)
	}
}

func (a *App) helpStyle() cmdspec.HelpStyle {
	return cmdspec.HelpStyle{Usage: a.Color.Bold, Heading: a.Color.Bold}
}

// specPaths returns the --spec values, or the SPECCTL_SPEC list.
func (a *App) specPaths(inv *invocation) []string {
	if paths := inv.opts.Strings("spec"); len(paths) > 0 {
		return paths
	}
	var paths []string
	for _, p := range filepath.SplitList(a.getenv(SpecEnv)) {
		if p = strings.TrimSpace(p); p != "" {
			paths = append(paths, p)
		}
	}
	return paths
}

// specPath is the spec file used by single-spec commands: the last one given.
func (a *App) specPath(inv *invocation) (string, error) {
	paths := a.specPaths(inv)
	if len(paths) == 0 {
		return "", errNoSpec
	}
	return paths[len(paths)-1], nil
}

func (a *App) loadSpec(inv *invocation) (*cmdspec.Command, error) {
	path, err := a.specPath(inv)
	if err != nil {
		return nil, err
	}
	spec, err := specfile.Load(path)
	if err != nil {
		return nil, err
	}
	a.logf("loaded %s", path)
	return spec, nil
}

func splitArgsAtDoubleDash(args []string) ([]string, []string) {
	for i, arg := range args {
		if arg == "--" {
			if i+1 < len(args) {
				return args[:i], args[i+1:]
			}
			return args[:i], nil
		}
	}
	return args, nil
}
