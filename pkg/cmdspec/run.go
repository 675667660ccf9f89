// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmdspec

import (
	"context"
	"errors"
	"io"
	"os"
	"slices"
	"strings"
)

const (
	helpFlagLong  = "--help"
	helpFlagShort = "-h"
)

// RunOptions configures Run.
type RunOptions struct {
	// Stdout receives help output. Defaults to os.Stdout.
	Stdout io.Writer
	Style  HelpStyle
}

// Run is Dispatch with help handling.
//
// If args contain --help or -h outside an option value, and the tree does
// not declare that alias itself, the help flags are removed, the help dialog of the remaining path
// is written to Stdout and ErrShown is returned. A path that does not
// resolve prints the single "not a valid command" line instead of failing.
//
// Usage:
//
//	err := cmdspec.Run(ctx, root, os.Args[1:], cmdspec.RunOptions{})
//	if errors.Is(err, cmdspec.ErrShown) {
//	    return nil
//	}
func Run(ctx context.Context, spec *Command, args []string, opts RunOptions) error {
	if spec == nil {
		return errors.New("cmdspec: nil command spec")
	}
	out := opts.Stdout
	if out == nil {
		out = os.Stdout
	}

	rest, help := stripHelpFlags(spec, args)
	if !help {
		return Dispatch(ctx, spec, args)
	}

	p, err := Resolve(spec, rest)
	if err != nil {
		var notFound *CommandNotFoundError
		if !errors.As(err, &notFound) {
			return err
		}
		path := append(slices.Clone(notFound.CommandPath), notFound.Token)
		if err := WriteHelp(out, opts.Style.Render(nil, path)); err != nil {
			return err
		}
		return ErrShown
	}
	if err := WriteHelp(out, opts.Style.Render(p.Spec, p.CommandPath)); err != nil {
		return err
	}
	return ErrShown
}

// stripHelpFlags removes the help flags that spec does not claim as option
// aliases and reports whether any were found. It walks args the way Resolve
// does, so a token consumed as an option value is never a help flag.
func stripHelpFlags(spec *Command, args []string) ([]string, bool) {
	declared := declaredAliases(spec)
	chain := []*Command{spec}
	rest := make([]string, 0, len(args))
	help := false
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case (arg == helpFlagLong || arg == helpFlagShort) && !declared[arg]:
			help = true
			continue
		case strings.HasPrefix(arg, "-"):
			if opt, ok := findInChain(chain, arg); ok && !opt.IsBool() && i+1 < len(args) {
				rest = append(rest, arg, args[i+1])
				i++
				continue
			}
		default:
			if sub, ok := chain[len(chain)-1].Subcommand(arg); ok {
				chain = append(chain, sub)
			}
		}
		rest = append(rest, arg)
	}
	if !help {
		return args, false
	}
	return rest, true
}

// findInChain finds the option declaring alias on the last command of chain,
// then on each earlier one.
func findInChain(chain []*Command, alias string) (*Option, bool) {
	for i := len(chain) - 1; i >= 0; i-- {
		if opt, ok := chain[i].findOption(alias); ok {
			return opt, true
		}
	}
	return nil, false
}

// declaredAliases collects every option alias in the tree rooted at c.
func declaredAliases(c *Command) map[string]bool {
	seen := make(map[string]bool)
	var walk func(*Command)
	walk = func(c *Command) {
		if c == nil {
			return
		}
		for _, o := range c.Options {
			for _, a := range o.Aliases {
				seen[a] = true
			}
		}
		for _, sub := range c.Subcommands {
			walk(sub)
		}
	}
	walk(c)
	return seen
}

// ExitCode maps an error returned by Run or Dispatch to a process exit code:
// 0 for nil and ErrShown, 2 for usage errors and 1 for everything else.
func ExitCode(err error) int {
	switch {
	case err == nil, errors.Is(err, ErrShown):
		return 0
	case IsUsageError(err):
		return 2
	default:
		return 1
	}
}
