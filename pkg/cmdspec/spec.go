// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmdspec

import (
	"context"
	"strings"
)

// Handler is invoked by Dispatch for the resolved command. It receives the
// positional arguments and options collected at the resolved level, plus the
// full parsed node for handlers that need ancestor context.
type Handler func(ctx context.Context, args []string, opts Options, parsed *Parsed) error

// Command declares one node of a command tree.
//
// Example:
//
//	root := &cmdspec.Command{
//	    Name: "cli",
//	    Options: []cmdspec.Option{
//	        {Name: "output", Aliases: []string{"-o", "--output"}, Argument: &cmdspec.ValueArg{Name: "format"}},
//	    },
//	    Subcommands: []*cmdspec.Command{
//	        {Name: "user", Subcommands: []*cmdspec.Command{
//	            {Name: "edit", Arguments: []cmdspec.Argument{{Name: "user_id"}}, Handler: editUser},
//	        }},
//	    },
//	}
type Command struct {
	Name        string
	Description string
	// Options are listed in help in declaration order.
	Options []Option
	// Arguments bind positional tokens in declaration order.
	Arguments []Argument
	// Subcommand names must be unique among siblings. Lint reports
	// duplicates; resolution picks the first match.
	Subcommands []*Command
	// Handler is nil for pass-through containers.
	Handler Handler
}

// Option declares a flag. An option with a nil Argument is a boolean flag.
type Option struct {
	Name        string
	Aliases     []string // "--word" or "-x", at least one
	Description string
	Multiple    bool // accumulate every occurrence into a list
	Argument    *ValueArg
}

// ValueArg describes the value consumed by a value-bearing option.
type ValueArg struct {
	Name        string
	Description string
}

// Argument declares a positional argument.
type Argument struct {
	Name        string
	Description string
	// Multiple is reserved for variadic capture. Positionals are currently
	// bound one token per declared Argument.
	Multiple bool
}

// Subcommand returns the direct child with the given name.
func (c *Command) Subcommand(name string) (*Command, bool) {
	if c == nil {
		return nil, false
	}
	for _, sub := range c.Subcommands {
		if sub != nil && sub.Name == name {
			return sub, true
		}
	}
	return nil, false
}

// findOption returns the option that declares alias exactly.
func (c *Command) findOption(alias string) (*Option, bool) {
	if c == nil {
		return nil, false
	}
	for i := range c.Options {
		for _, a := range c.Options[i].Aliases {
			if a == alias {
				return &c.Options[i], true
			}
		}
	}
	return nil, false
}

// Key returns the canonical storage key of the option: Name, or the first
// long alias without its dashes when Name is empty.
func (o Option) Key() string {
	if o.Name != "" {
		return o.Name
	}
	for _, a := range o.Aliases {
		if strings.HasPrefix(a, "--") {
			return trimAlias(a)
		}
	}
	if len(o.Aliases) > 0 {
		return trimAlias(o.Aliases[0])
	}
	return ""
}

// IsBool reports whether the option is a boolean flag.
func (o Option) IsBool() bool {
	return o.Argument == nil
}

// trimAlias strips the "--" or "-" prefix of an alias.
func trimAlias(alias string) string {
	if strings.HasPrefix(alias, "--") {
		return alias[2:]
	}
	return strings.TrimPrefix(alias, "-")
}
