// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmdspec

import (
	"fmt"
	"maps"
	"regexp"
	"strings"

	"github.com/hashicorp/go-multierror"
)

var (
	longAliasRe  = regexp.MustCompile(`^--[\w-]+$`)
	shortAliasRe = regexp.MustCompile(`^-\w$`)
)

// LintError is one problem found by Lint.
type LintError struct {
	CommandPath []string
	Problem     string
}

func (e *LintError) Error() string {
	return fmt.Sprintf("%s: %s", strings.Join(e.CommandPath, " "), e.Problem)
}

// Lint checks the tree rooted at spec for declarations the resolver cannot
// use reliably. Every problem is reported; the result is a *multierror.Error
// of *LintError, or nil.
//
// Resolve and Dispatch never call Lint.
func Lint(spec *Command) error {
	var result *multierror.Error
	lintCommand(spec, nil, nil, &result)
	return result.ErrorOrNil()
}

// declaration records where an option key was declared and its value shape.
type declaration struct {
	path     []string
	isBool   bool
	multiple bool
}

func (d declaration) describe() string {
	switch {
	case d.isBool:
		return "a boolean flag"
	case d.multiple:
		return "a multiple value option"
	default:
		return "a single value option"
	}
}

// lintCommand checks c. inherited holds the option keys declared by the
// ancestors of c, nearest declaration last written.
func lintCommand(c *Command, parent []string, inherited map[string]declaration, result **multierror.Error) {
	if c == nil {
		*result = multierror.Append(*result, &LintError{CommandPath: parent, Problem: "nil subcommand"})
		return
	}
	path := append(parent[:len(parent):len(parent)], c.Name)
	report := func(format string, args ...any) {
		*result = multierror.Append(*result, &LintError{CommandPath: path, Problem: fmt.Sprintf(format, args...)})
	}

	if strings.TrimSpace(c.Name) == "" {
		report("empty command name")
	}

	declared := maps.Clone(inherited)
	if declared == nil {
		declared = make(map[string]declaration)
	}
	aliases := make(map[string]bool)
	for i, o := range c.Options {
		if len(o.Aliases) == 0 {
			report("option %d has no aliases", i)
		}
		for _, a := range o.Aliases {
			if !longAliasRe.MatchString(a) && !shortAliasRe.MatchString(a) {
				report("option alias %q must look like --word or -x", a)
			}
			if aliases[a] {
				report("option alias %q declared more than once", a)
			}
			aliases[a] = true
		}
		if len(o.Aliases) > 0 && o.Key() == "" {
			report("option %d has an empty key", i)
		}
		if o.IsBool() && o.Multiple {
			report("option %q is a boolean flag; multiple has no effect", o.Key())
		}
		key := o.Key()
		if key == "" {
			continue
		}
		d := declaration{path: path, isBool: o.IsBool(), multiple: o.Multiple && !o.IsBool()}
		if prev, ok := inherited[key]; ok && (prev.isBool != d.isBool || prev.multiple != d.multiple) {
			report("option %q is %s but %s declares it as %s", key, d.describe(), strings.Join(prev.path, " "), prev.describe())
		}
		declared[key] = d
	}

	for i, a := range c.Arguments {
		if strings.TrimSpace(a.Name) == "" {
			report("argument %d has an empty name", i)
		}
	}

	names := make(map[string]bool)
	for _, sub := range c.Subcommands {
		if sub != nil {
			if names[sub.Name] {
				report("subcommand %q declared more than once", sub.Name)
			}
			names[sub.Name] = true
		}
		lintCommand(sub, path, declared, result)
	}
}
