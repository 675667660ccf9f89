// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/yeetrun/cmdspec/pkg/cmdspec"
	"github.com/yeetrun/cmdspec/pkg/specfile"
	"gopkg.in/yaml.v3"
)

const usersSpec = `name: users
description: Manage users
options:
  - name: verbose
    aliases: [-v, --verbose]
    description: Verbose output
subcommands:
  - name: user
    description: User commands
    subcommands:
      - name: edit
        description: Edit a user
        arguments:
          - name: <user_id>
            description: User to edit
`

const brokenSpec = `name: broken
options:
  - aliases: [verbose]
subcommands:
  - name: a
  - name: a
`

func writeSpec(t *testing.T, name, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func runApp(t *testing.T, env map[string]string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := &App{
		Stdout: &out,
		Getenv: func(key string) string { return env[key] },
	}
	err := app.Run(context.Background(), args)
	return out.String(), err
}

func TestResolveCommand(t *testing.T) {
	path := writeSpec(t, "users.yaml", usersSpec)
	out, err := runApp(t, nil, "-s", path, "resolve", "--", "-v", "user", "edit", "42")
	if err != nil {
		t.Fatalf("resolve error = %v", err)
	}

	var got chainView
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	verbose := map[string]any{"verbose": true}
	want := chainView{Levels: []levelView{
		{Command: "users", Path: []string{"users"}, Options: verbose},
		{Command: "user", Path: []string{"users", "user"}, Options: verbose},
		{Command: "edit", Path: []string{"users", "user", "edit"}, Options: verbose, Arguments: []string{"42"}},
	}}
	if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("resolve output mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveCommand_OutputFormats(t *testing.T) {
	path := writeSpec(t, "users.yaml", usersSpec)
	for _, format := range []string{"yaml", "toml"} {
		t.Run(format, func(t *testing.T) {
			out, err := runApp(t, nil, "-s", path, "-o", format, "resolve", "--", "user", "edit", "7")
			if err != nil {
				t.Fatalf("resolve error = %v", err)
			}
			var got chainView
			switch format {
			case "yaml":
				err = yaml.Unmarshal([]byte(out), &got)
			case "toml":
				_, err = toml.Decode(out, &got)
			}
			if err != nil {
				t.Fatalf("decode %s: %v\n%s", format, err, out)
			}
			if len(got.Levels) != 3 || !reflect.DeepEqual(got.Levels[2].Arguments, []string{"7"}) {
				t.Errorf("levels = %+v, want edit with argument 7", got.Levels)
			}
		})
	}

	_, err := runApp(t, nil, "-s", path, "-o", "xml", "resolve")
	if err == nil || !strings.Contains(err.Error(), "unsupported output format") {
		t.Errorf("resolve -o xml error = %v", err)
	}
}

func TestValidateCommand(t *testing.T) {
	path := writeSpec(t, "users.toml", `name = "users"

[[subcommands]]
name = "edit"

[[subcommands.arguments]]
name = "<user_id>"
`)
	out, err := runApp(t, nil, "-s", path, "validate", "--", "edit", "42")
	if err != nil {
		t.Fatalf("validate error = %v", err)
	}
	if strings.TrimSpace(out) != "ok" {
		t.Errorf("validate output = %q, want ok", out)
	}

	_, err = runApp(t, nil, "-s", path, "validate", "--", "edit")
	var missing *cmdspec.MissingArgumentError
	if !errors.As(err, &missing) {
		t.Fatalf("validate error = %v, want *cmdspec.MissingArgumentError", err)
	}
	if cmdspec.ExitCode(err) != 2 {
		t.Errorf("ExitCode() = %d, want 2", cmdspec.ExitCode(err))
	}
}

func TestHelpCommand(t *testing.T) {
	path := writeSpec(t, "users.json", `{"name":"users","subcommands":[{"name":"user","description":"User commands","subcommands":[{"name":"edit","description":"Edit a user"}]}]}`)
	tests := []struct {
		name   string
		target []string
		want   string
	}{
		{
			name:   "subcommand",
			target: []string{"user"},
			want:   "User commands\n\nUsage: users user <command>\n\nCommands\n  edit    Edit a user\n\n",
		},
		{
			name:   "unknown path",
			target: []string{"nope"},
			want:   "users nope: Is not valid command. See users --help\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"--spec", path, "help", "--"}, tt.target...)
			out, err := runApp(t, nil, args...)
			if err != nil {
				t.Fatalf("help error = %v", err)
			}
			if diff := cmp.Diff(tt.want, out); diff != "" {
				t.Errorf("help output mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSchemaCommand(t *testing.T) {
	path := writeSpec(t, "users.yaml", usersSpec)
	out, err := runApp(t, nil, "-s", path, "schema", "--", "user", "edit")
	if err != nil {
		t.Fatalf("schema error = %v", err)
	}
	var got struct {
		Command   []string       `json:"command"`
		Arguments map[string]any `json:"arguments"`
		Options   map[string]any `json:"options"`
	}
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if got.Arguments["minItems"] != float64(1) {
		t.Errorf("minItems = %v, want 1", got.Arguments["minItems"])
	}
	if diff := cmp.Diff([]any{"verbose"}, got.Options["required"]); diff != "" {
		t.Errorf("required mismatch (-want +got):\n%s", diff)
	}
}

func TestLintCommand(t *testing.T) {
	good := writeSpec(t, "users.yaml", usersSpec)
	bad := writeSpec(t, "broken.yaml", brokenSpec)

	out, err := runApp(t, nil, "-s", good, "lint")
	if err != nil {
		t.Fatalf("lint error = %v", err)
	}
	if strings.TrimSpace(out) != "ok" {
		t.Errorf("lint output = %q, want ok", out)
	}

	out, err = runApp(t, nil, "-s", good, "-s", bad, "lint")
	var lintErr *LintFailedError
	if !errors.As(err, &lintErr) {
		t.Fatalf("lint error = %v, want *LintFailedError", err)
	}
	if lintErr.Problems != 2 {
		t.Errorf("Problems = %d, want 2\n%s", lintErr.Problems, out)
	}
	for _, want := range []string{
		bad + `: broken: option alias "verbose" must look like --word or -x`,
		bad + `: broken: subcommand "a" declared more than once`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("lint output missing %q:\n%s", want, out)
		}
	}

	_, err = runApp(t, nil, "-s", filepath.Join(t.TempDir(), "missing.yaml"), "lint")
	if err == nil {
		t.Error("lint of a missing file error = nil")
	}
}

func TestPackCommand(t *testing.T) {
	src := writeSpec(t, "users.yaml", usersSpec)
	dst := filepath.Join(t.TempDir(), "users.yaml.zst")

	out, err := runApp(t, nil, "-s", src, "pack", dst)
	if err != nil {
		t.Fatalf("pack error = %v", err)
	}
	if strings.TrimSpace(out) != dst {
		t.Errorf("pack output = %q, want %q", out, dst)
	}
	want, err := specfile.Load(src)
	if err != nil {
		t.Fatal(err)
	}
	got, err := specfile.Load(dst)
	if err != nil {
		t.Fatalf("Load(packed) error = %v", err)
	}
	if diff := cmp.Diff(want, got, cmpopts.IgnoreFields(cmdspec.Command{}, "Handler")); diff != "" {
		t.Errorf("packed spec mismatch (-want +got):\n%s", diff)
	}

	_, err = runApp(t, nil, "-s", src, "pack")
	var missing *cmdspec.MissingArgumentError
	if !errors.As(err, &missing) {
		t.Errorf("pack without dest error = %v, want *cmdspec.MissingArgumentError", err)
	}
}

func TestSpecFromEnv(t *testing.T) {
	a := writeSpec(t, "a.yaml", brokenSpec)
	b := writeSpec(t, "b.yaml", usersSpec)
	env := map[string]string{SpecEnv: a + string(os.PathListSeparator) + b}

	out, err := runApp(t, env, "help", "--", "user")
	if err != nil {
		t.Fatalf("help error = %v", err)
	}
	if !strings.HasPrefix(out, "User commands\n") {
		t.Errorf("help used the wrong spec:\n%s", out)
	}

	_, err = runApp(t, nil, "resolve")
	if !errors.Is(err, errNoSpec) {
		t.Errorf("resolve without spec error = %v, want errNoSpec", err)
	}
}

func TestOwnHelpAndVersion(t *testing.T) {
	out, err := runApp(t, nil, "--help")
	if !errors.Is(err, cmdspec.ErrShown) {
		t.Fatalf("--help error = %v, want ErrShown", err)
	}
	for _, want := range []string{
		"Usage: specctl [options] <command>",
		"  -s --spec      Spec file (.yaml, .toml, .json, optionally .zst); repeatable",
		"  version        Print the engine version",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("help missing %q:\n%s", want, out)
		}
	}

	out, err = runApp(t, nil, "version")
	if err != nil {
		t.Fatalf("version error = %v", err)
	}
	if want := "specctl " + specfile.EngineVersion + "\n"; out != want {
		t.Errorf("version output = %q, want %q", out, want)
	}
}

func TestCommandTreeLints(t *testing.T) {
	app := &App{}
	if err := cmdspec.Lint(app.Command(nil)); err != nil {
		t.Errorf("Lint() error = %v", err)
	}
}

func TestSplitArgsAtDoubleDash(t *testing.T) {
	tests := []struct {
		args       []string
		wantOwn    []string
		wantTarget []string
	}{
		{args: []string{"resolve"}, wantOwn: []string{"resolve"}},
		{args: []string{"resolve", "--"}, wantOwn: []string{"resolve"}},
		{args: []string{"resolve", "--", "a", "--", "b"}, wantOwn: []string{"resolve"}, wantTarget: []string{"a", "--", "b"}},
		{args: []string{"--", "-v"}, wantOwn: []string{}, wantTarget: []string{"-v"}},
	}
	for _, tt := range tests {
		own, target := splitArgsAtDoubleDash(tt.args)
		if !reflect.DeepEqual(own, tt.wantOwn) || !reflect.DeepEqual(target, tt.wantTarget) {
			t.Errorf("splitArgsAtDoubleDash(%v) = %v, %v; want %v, %v", tt.args, own, target, tt.wantOwn, tt.wantTarget)
		}
	}
}
