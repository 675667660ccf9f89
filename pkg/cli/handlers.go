// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cli

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/hashicorp/go-multierror"
	"github.com/yeetrun/cmdspec/pkg/cmdspec"
	"github.com/yeetrun/cmdspec/pkg/codecutil"
	"github.com/yeetrun/cmdspec/pkg/specfile"
	"golang.org/x/sync/errgroup"
)

const lintConcurrency = 4

// LintFailedError is returned by the lint command when any spec file has
// problems.
type LintFailedError struct {
	Problems int
}

func (e *LintFailedError) Error() string {
	return fmt.Sprintf("%d problem(s) found", e.Problems)
}

type levelView struct {
	Command   string         `json:"command" yaml:"command" toml:"command"`
	Path      []string       `json:"path" yaml:"path" toml:"path"`
	Options   map[string]any `json:"options,omitempty" yaml:"options,omitempty" toml:"options,omitempty"`
	Arguments []string       `json:"arguments" yaml:"arguments" toml:"arguments"`
}

type chainView struct {
	Levels []levelView `json:"levels" yaml:"levels" toml:"levels"`
}

func newChainView(p *cmdspec.Parsed) chainView {
	var v chainView
	for _, n := range p.Chain() {
		lv := levelView{
			Command:   n.Spec.Name,
			Path:      slices.Clone(n.CommandPath),
			Arguments: slices.Clone(n.Arguments),
		}
		if n.Options.Len() > 0 {
			lv.Options = n.Options.Canonical()
		}
		v.Levels = append(v.Levels, lv)
	}
	return v
}

func (a *App) resolveTarget(inv *invocation) (*cmdspec.Parsed, error) {
	spec, err := a.loadSpec(inv)
	if err != nil {
		return nil, err
	}
	return cmdspec.Resolve(spec, inv.target)
}

func (a *App) handleResolve(_ context.Context, inv *invocation) error {
	p, err := a.resolveTarget(inv)
	if err != nil {
		return err
	}
	return encode(a.stdout(), inv.opts.String("output"), newChainView(p))
}

func (a *App) handleValidate(_ context.Context, inv *invocation) error {
	p, err := a.resolveTarget(inv)
	if err != nil {
		return err
	}
	if err := p.Validate(); err != nil {
		return err
	}
	fmt.Fprintln(a.stdout(), a.Color.Green("ok"))
	return nil
}

func (a *App) handleHelp(_ context.Context, inv *invocation) error {
	spec, err := a.loadSpec(inv)
	if err != nil {
		return err
	}
	style := a.helpStyle()
	p, err := cmdspec.Resolve(spec, inv.target)
	if err != nil {
		var notFound *cmdspec.CommandNotFoundError
		if !errors.As(err, &notFound) {
			return err
		}
		path := append(slices.Clone(notFound.CommandPath), notFound.Token)
		return cmdspec.WriteHelp(a.stdout(), style.Render(nil, path))
	}
	return cmdspec.WriteHelp(a.stdout(), style.Render(p.Spec, p.CommandPath))
}

func (a *App) handleSchema(_ context.Context, inv *invocation) error {
	p, err := a.resolveTarget(inv)
	if err != nil {
		return err
	}
	s := cmdspec.BuildSchema(p)
	return encode(a.stdout(), inv.opts.String("output"), map[string]any{
		"command":   s.CommandPath,
		"arguments": s.ArgumentsDocument(),
		"options":   s.OptionsDocument(),
	})
}

func (a *App) handleLint(ctx context.Context, inv *invocation) error {
	paths := a.specPaths(inv)
	if len(paths) == 0 {
		return errNoSpec
	}

	problems := make([][]error, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(lintConcurrency)
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			spec, err := specfile.Load(path)
			if err != nil {
				return err
			}
			a.logf("linting %s", path)
			var merr *multierror.Error
			if err := cmdspec.Lint(spec); errors.As(err, &merr) {
				problems[i] = merr.Errors
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	n := 0
	for i, errs := range problems {
		for _, err := range errs {
			fmt.Fprintf(a.stdout(), "%s: %v\n", paths[i], err)
			n++
		}
	}
	if n > 0 {
		return &LintFailedError{Problems: n}
	}
	fmt.Fprintln(a.stdout(), a.Color.Green("ok"))
	return nil
}

func (a *App) handlePack(_ context.Context, inv *invocation) error {
	src, err := a.specPath(inv)
	if err != nil {
		return err
	}
	if _, err := specfile.Load(src); err != nil {
		return err
	}
	dst := inv.args[0]
	if err := codecutil.ZstdCompress(src, dst); err != nil {
		return err
	}
	a.logf("packed %s into %s", src, dst)
	fmt.Fprintln(a.stdout(), dst)
	return nil
}

func (a *App) handleVersion(_ context.Context, _ *invocation) error {
	fmt.Fprintf(a.stdout(), "specctl %s\n", specfile.EngineVersion)
	return nil
}
