// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmdspec

import (
	"errors"
	"slices"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Validate checks the resolved node p against BuildSchema(p).
//
// The positional tuple is always enforced: too few arguments yields a
// *MissingArgumentError wrapping the *jsonschema.ValidationError. Options
// are checked for shape only; an option that was not given is not an error.
func Validate(p *Parsed) error {
	return BuildSchema(p).Validate(p)
}

// Validate checks p against s.
func (s *Schema) Validate(p *Parsed) error {
	if err := s.ValidateArguments(p.Arguments); err != nil {
		var ve *jsonschema.ValidationError
		if errors.As(err, &ve) && violates(ve, "minItems") {
			return &MissingArgumentError{
				CommandPath: slices.Clone(p.CommandPath),
				Names:       s.ArgumentNames(),
				Got:         len(p.Arguments),
				Err:         err,
			}
		}
		return &SchemaError{CommandPath: slices.Clone(p.CommandPath), Subject: "arguments", Err: err}
	}
	if err := s.ValidateOptions(p.Options); err != nil {
		return &SchemaError{CommandPath: slices.Clone(p.CommandPath), Subject: "options", Err: err}
	}
	return nil
}

// ValidateArguments applies the positional tuple to args.
func (s *Schema) ValidateArguments(args []string) error {
	sch, err := compile("arguments", s.ArgumentsDocument())
	if err != nil {
		return err
	}
	instance := make([]any, len(args))
	for i, a := range args {
		instance[i] = a
	}
	return sch.Validate(instance)
}

// ValidateOptions checks the shape of every option present in opts.
func (s *Schema) ValidateOptions(opts Options) error {
	sch, err := compile("options", s.optionsDocument(false))
	if err != nil {
		return err
	}
	instance := make(map[string]any, opts.Len())
	for key, v := range opts.Canonical() {
		if list, ok := v.([]string); ok {
			items := make([]any, len(list))
			for i, item := range list {
				items[i] = item
			}
			instance[key] = items
			continue
		}
		instance[key] = v
	}
	return sch.Validate(instance)
}

// violates reports whether ve or any of its causes failed keyword.
func violates(ve *jsonschema.ValidationError, keyword string) bool {
	if strings.HasSuffix(ve.KeywordLocation, "/"+keyword) {
		return true
	}
	for _, c := range ve.Causes {
		if violates(c, keyword) {
			return true
		}
	}
	return false
}
