// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmdspec

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/hashicorp/go-multierror"
)

func TestLint_Clean(t *testing.T) {
	for _, spec := range []*Command{testSpec(), userSpec()} {
		if err := Lint(spec); err != nil {
			t.Errorf("Lint(%s) error = %v", spec.Name, err)
		}
	}
}

func TestLint_ReportsEveryProblem(t *testing.T) {
	spec := &Command{
		Name: "cli",
		Options: []Option{
			{Name: "none"},
			{Aliases: []string{"abc"}},
			{Aliases: []string{"-a"}},
			{Aliases: []string{"-a"}},
		},
		Arguments: []Argument{{Name: ""}},
		Subcommands: []*Command{
			{Name: "ls"},
			{Name: "ls"},
			{Name: ""},
		},
	}
	err := Lint(spec)
	var merr *multierror.Error
	if !errors.As(err, &merr) {
		t.Fatalf("Lint() error = %v, want *multierror.Error", err)
	}

	var got []string
	for _, e := range merr.Errors {
		var le *LintError
		if !errors.As(e, &le) {
			t.Fatalf("error %v is %T, want *LintError", e, e)
		}
		got = append(got, le.Error())
	}
	want := []string{
		"cli: option 0 has no aliases",
		`cli: option alias "abc" must look like --word or -x`,
		`cli: option alias "-a" declared more than once`,
		"cli: argument 0 has an empty name",
		`cli: subcommand "ls" declared more than once`,
		"cli : empty command name",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Lint() problems mismatch (-want +got):\n%s", diff)
	}
}

func TestLint_NilSubcommand(t *testing.T) {
	spec := &Command{Name: "cli", Subcommands: []*Command{nil}}
	if err := Lint(spec); err == nil {
		t.Fatal("Lint() error = nil, want a nil subcommand problem")
	}
}

func TestLint_OptionShapeAlongChain(t *testing.T) {
	spec := &Command{
		Name: "cli",
		Options: []Option{
			{Name: "out", Aliases: []string{"--out"}},
			{Name: "tag", Aliases: []string{"--tag"}, Multiple: true, Argument: &ValueArg{Name: "<tag>"}},
			{Name: "quiet", Aliases: []string{"-q"}, Multiple: true},
		},
		Subcommands: []*Command{{
			Name: "sub",
			Options: []Option{
				{Name: "out", Aliases: []string{"-o"}, Argument: &ValueArg{Name: "<file>"}},
				{Name: "tag", Aliases: []string{"-t"}, Argument: &ValueArg{Name: "<tag>"}},
				{Name: "quiet", Aliases: []string{"--quiet"}},
			},
			Subcommands: []*Command{{
				Name:    "leaf",
				Options: []Option{{Name: "out", Aliases: []string{"--file"}, Argument: &ValueArg{Name: "<file>"}}},
			}},
		}},
	}
	err := Lint(spec)
	var merr *multierror.Error
	if !errors.As(err, &merr) {
		t.Fatalf("Lint() error = %v, want *multierror.Error", err)
	}
	var got []string
	for _, e := range merr.Errors {
		got = append(got, e.Error())
	}
	want := []string{
		`cli: option "quiet" is a boolean flag; multiple has no effect`,
		`cli sub: option "out" is a single value option but cli declares it as a boolean flag`,
		`cli sub: option "tag" is a single value option but cli declares it as a multiple value option`,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Lint() problems mismatch (-want +got):\n%s", diff)
	}

	// The chain Lint warns about resolves but does not validate.
	p, err := Resolve(spec, []string{"--out", "sub"})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	var se *SchemaError
	if err := p.Validate(); !errors.As(err, &se) {
		t.Errorf("Validate() error = %v, want *SchemaError", err)
	}
}
