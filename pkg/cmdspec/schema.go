// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmdspec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const draft2020 = "https://json-schema.org/draft/2020-12/schema"

// ValueKind is the shape of a parsed option value.
type ValueKind int

const (
	// KindFlag is a boolean flag; its value is always true.
	KindFlag ValueKind = iota
	// KindString is a value-bearing option.
	KindString
)

func (k ValueKind) String() string {
	switch k {
	case KindFlag:
		return "flag"
	case KindString:
		return "string"
	default:
		return "unknown"
	}
}

// OptionRule is the schema entry of one option.
type OptionRule struct {
	Key         string   // canonical key
	Aliases     []string // as declared
	Kind        ValueKind
	Multiple    bool
	DeclaredBy  []string // command path of the declaring command
	Description string
}

// ArgumentRule is the schema entry of one positional slot.
type ArgumentRule struct {
	Position    int
	Name        string
	Description string
}

// Schema is the structural schema of a resolved command.
type Schema struct {
	CommandPath []string
	// Options merges the options of the resolved command and all of its
	// ancestors, keyed by canonical key. When two levels declare the same
	// key the level nearest the resolved command wins.
	Options []OptionRule
	// Arguments has one required string slot per argument declared by the
	// resolved command.
	Arguments []ArgumentRule
}

// BuildSchema builds the schema for the resolved node p.
func BuildSchema(p *Parsed) *Schema {
	s := &Schema{CommandPath: slices.Clone(p.CommandPath)}

	for i, arg := range p.Spec.Arguments {
		s.Arguments = append(s.Arguments, ArgumentRule{
			Position:    i,
			Name:        arg.Name,
			Description: arg.Description,
		})
	}

	index := make(map[string]int)
	for _, n := range p.Chain() {
		for _, opt := range n.Spec.Options {
			rule := OptionRule{
				Key:         opt.Key(),
				Aliases:     slices.Clone(opt.Aliases),
				Kind:        KindFlag,
				Multiple:    opt.Multiple,
				DeclaredBy:  slices.Clone(n.CommandPath),
				Description: opt.Description,
			}
			if !opt.IsBool() {
				rule.Kind = KindString
			}
			if i, ok := index[rule.Key]; ok {
				s.Options[i] = rule
				continue
			}
			index[rule.Key] = len(s.Options)
			s.Options = append(s.Options, rule)
		}
	}
	return s
}

// Option returns the rule for a canonical key.
func (s *Schema) Option(key string) (OptionRule, bool) {
	for _, r := range s.Options {
		if r.Key == key {
			return r, true
		}
	}
	return OptionRule{}, false
}

// ArgumentNames returns the declared argument names in order.
func (s *Schema) ArgumentNames() []string {
	names := make([]string, len(s.Arguments))
	for i, a := range s.Arguments {
		names[i] = a.Name
	}
	return names
}

// ArgumentsDocument returns the positional schema as a JSON Schema
// (draft 2020-12) fixed-length tuple of strings.
func (s *Schema) ArgumentsDocument() map[string]any {
	doc := map[string]any{
		"$schema":  draft2020,
		"type":     "array",
		"items":    false,
		"minItems": len(s.Arguments),
		"maxItems": len(s.Arguments),
	}
	// prefixItems may not be empty.
	if len(s.Arguments) > 0 {
		items := make([]any, len(s.Arguments))
		for i, a := range s.Arguments {
			items[i] = map[string]any{"type": "string", "title": a.Name}
		}
		doc["prefixItems"] = items
	}
	return doc
}

// OptionsDocument returns the option schema as a JSON Schema (draft
// 2020-12) object keyed by canonical key, with every option listed as
// required.
func (s *Schema) OptionsDocument() map[string]any {
	return s.optionsDocument(true)
}

func (s *Schema) optionsDocument(required bool) map[string]any {
	props := make(map[string]any, len(s.Options))
	keys := make([]any, 0, len(s.Options))
	for _, r := range s.Options {
		props[r.Key] = r.document()
		keys = append(keys, r.Key)
	}
	doc := map[string]any{
		"$schema":    draft2020,
		"type":       "object",
		"properties": props,
	}
	if required {
		doc["required"] = keys
	}
	return doc
}

func (r OptionRule) document() map[string]any {
	if r.Kind == KindFlag {
		return map[string]any{"const": true}
	}
	value := map[string]any{"type": "string"}
	if r.Multiple {
		return map[string]any{"type": "array", "items": value}
	}
	return value
}

// compile compiles doc under a synthetic resource name.
func compile(name string, doc map[string]any) (*jsonschema.Schema, error) {
	b, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s schema: %w", name, err)
	}
	url := "blob://cmdspec/" + name + ".json"
	c := jsonschema.NewCompiler()
	c.Draft = jsonschema.Draft2020
	if err := c.AddResource(url, bytes.NewReader(b)); err != nil {
		return nil, fmt.Errorf("failed to add %s schema: %w", name, err)
	}
	sch, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("failed to compile %s schema: %w", name, err)
	}
	return sch, nil
}
