// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package specfile loads cmdspec command trees from YAML, TOML or JSON
// documents, optionally zstd compressed.
//
// A document mirrors cmdspec.Command:
//
//	requires: ">= 1.0"
//	name: cli
//	description: Manage users
//	options:
//	  - name: output
//	    aliases: [-o, --output]
//	    argument: {name: <format>}
//	subcommands:
//	  - name: edit
//	    arguments:
//	      - name: <user_id>
//
// Handlers cannot be declared in a document; attach them with Bind.
package specfile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/Masterminds/semver/v3"
	"github.com/yeetrun/cmdspec/pkg/cmdspec"
	"github.com/yeetrun/cmdspec/pkg/codecutil"
	"gopkg.in/yaml.v3"
)

// EngineVersion is the version checked against a document's requires
// constraint.
const EngineVersion = "1.0.0"

// Format is a document encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

// FormatFromPath picks the format from the file extension, ignoring a
// trailing ".zst".
func FormatFromPath(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(strings.TrimSuffix(path, ".zst")))
	switch ext {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported spec file extension %q", ext)
	}
}

// VersionError is returned when a document requires a different engine.
type VersionError struct {
	Constraint string
	Engine     string
}

func (e *VersionError) Error() string {
	return fmt.Sprintf("spec requires engine %s, have %s", e.Constraint, e.Engine)
}

type commandDoc struct {
	Requires    string        `json:"requires,omitempty" yaml:"requires,omitempty" toml:"requires,omitempty"`
	Name        string        `json:"name" yaml:"name" toml:"name"`
	Description string        `json:"description,omitempty" yaml:"description,omitempty" toml:"description,omitempty"`
	Options     []optionDoc   `json:"options,omitempty" yaml:"options,omitempty" toml:"options,omitempty"`
	Arguments   []argumentDoc `json:"arguments,omitempty" yaml:"arguments,omitempty" toml:"arguments,omitempty"`
	Subcommands []commandDoc  `json:"subcommands,omitempty" yaml:"subcommands,omitempty" toml:"subcommands,omitempty"`
}

type optionDoc struct {
	Name        string       `json:"name,omitempty" yaml:"name,omitempty" toml:"name,omitempty"`
	Aliases     []string     `json:"aliases" yaml:"aliases" toml:"aliases"`
	Description string       `json:"description,omitempty" yaml:"description,omitempty" toml:"description,omitempty"`
	Multiple    bool         `json:"multiple,omitempty" yaml:"multiple,omitempty" toml:"multiple,omitempty"`
	Argument    *argumentDoc `json:"argument,omitempty" yaml:"argument,omitempty" toml:"argument,omitempty"`
}

type argumentDoc struct {
	Name        string `json:"name" yaml:"name" toml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty" toml:"description,omitempty"`
	Multiple    bool   `json:"multiple,omitempty" yaml:"multiple,omitempty" toml:"multiple,omitempty"`
}

// Load reads the spec file at path. Files ending in ".zst", or starting with
// a zstd frame, are decompressed first.
func Load(path string) (*cmdspec.Command, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read spec: %w", err)
	}
	if strings.HasSuffix(path, ".zst") || codecutil.IsZstd(data) {
		data, err = codecutil.ZstdDecode(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("failed to decompress %s: %w", path, err)
		}
	}
	cmd, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return cmd, nil
}

// Parse decodes a document. Unknown keys are an error.
func Parse(data []byte, format Format) (*cmdspec.Command, error) {
	var doc commandDoc
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&doc); err != nil {
			if errors.Is(err, io.EOF) {
				return nil, errors.New("empty document")
			}
			return nil, err
		}
	case FormatTOML:
		md, err := toml.Decode(string(data), &doc)
		if err != nil {
			return nil, err
		}
		if len(md.Keys()) == 0 {
			return nil, errors.New("empty document")
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("unknown keys: %v", undecoded)
		}
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&doc); err != nil {
			if errors.Is(err, io.EOF) {
				return nil, errors.New("empty document")
			}
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}

	if err := checkRequires(doc.Requires); err != nil {
		return nil, err
	}
	return doc.command(), nil
}

func checkRequires(constraint string) error {
	if constraint == "" {
		return nil
	}
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return fmt.Errorf("invalid requires constraint %q: %w", constraint, err)
	}
	if !c.Check(semver.MustParse(EngineVersion)) {
		return &VersionError{Constraint: constraint, Engine: EngineVersion}
	}
	return nil
}

func (d commandDoc) command() *cmdspec.Command {
	cmd := &cmdspec.Command{Name: d.Name, Description: d.Description}
	for _, o := range d.Options {
		opt := cmdspec.Option{
			Name:        o.Name,
			Aliases:     o.Aliases,
			Description: o.Description,
			Multiple:    o.Multiple,
		}
		if o.Argument != nil {
			opt.Argument = &cmdspec.ValueArg{Name: o.Argument.Name, Description: o.Argument.Description}
		}
		cmd.Options = append(cmd.Options, opt)
	}
	for _, a := range d.Arguments {
		cmd.Arguments = append(cmd.Arguments, cmdspec.Argument{
			Name:        a.Name,
			Description: a.Description,
			Multiple:    a.Multiple,
		})
	}
	for _, sub := range d.Subcommands {
		cmd.Subcommands = append(cmd.Subcommands, sub.command())
	}
	return cmd
}

// Find returns the command at path, root name first.
func Find(root *cmdspec.Command, path []string) (*cmdspec.Command, bool) {
	if root == nil || len(path) == 0 || path[0] != root.Name {
		return nil, false
	}
	cur := root
	for _, name := range path[1:] {
		next, ok := cur.Subcommand(name)
		if !ok {
			return nil, false
		}
		cur = next
	}
	return cur, true
}

// Bind sets the handler of the command at path, root name first.
func Bind(root *cmdspec.Command, path []string, h cmdspec.Handler) error {
	cmd, ok := Find(root, path)
	if !ok {
		return fmt.Errorf("no command %q in spec", strings.Join(path, " "))
	}
	cmd.Handler = h
	return nil
}
