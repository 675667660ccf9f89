// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmdspec

import (
	"errors"
	"fmt"
	"strings"
)

// ErrShown is returned by Run when help was written instead of dispatching.
// Callers should treat it as success.
var ErrShown = errors.New("help displayed")

// CommandNotFoundError is returned when a token is neither a known option,
// a subcommand of the current command, nor a free positional slot.
type CommandNotFoundError struct {
	CommandPath []string // path resolved before the token
	Token       string
}

func (e *CommandNotFoundError) Error() string {
	path := strings.Join(e.CommandPath, " ")
	return fmt.Sprintf("%s %s: Is not valid command. See %s --help", path, e.Token, path)
}

// UnrecognizedOptionError is returned when a token starting with "-" matches
// no alias declared by the current command or its ancestors.
type UnrecognizedOptionError struct {
	CommandPath []string
	Option      string
}

func (e *UnrecognizedOptionError) Error() string {
	return fmt.Sprintf("%s: unknown option %s. See %s --help",
		strings.Join(e.CommandPath, " "), e.Option, strings.Join(e.CommandPath, " "))
}

// MissingOptionValueError is returned when a value-bearing option is the
// last token and has nothing to consume.
type MissingOptionValueError struct {
	CommandPath []string
	Option      string // the alias as written
	ValueName   string
}

func (e *MissingOptionValueError) Error() string {
	if e.ValueName != "" {
		return fmt.Sprintf("%s: option %s requires a value %s", strings.Join(e.CommandPath, " "), e.Option, e.ValueName)
	}
	return fmt.Sprintf("%s: option %s requires a value", strings.Join(e.CommandPath, " "), e.Option)
}

// MissingArgumentError is returned by Validate when fewer positional
// arguments were given than the resolved command declares. Err holds the
// structural validation failure.
type MissingArgumentError struct {
	CommandPath []string
	Names       []string // every declared argument of the command
	Got         int
	Err         error
}

func (e *MissingArgumentError) Error() string {
	return fmt.Sprintf("Missing %s argument", strings.Join(e.Names, ", "))
}

func (e *MissingArgumentError) Unwrap() error {
	return e.Err
}

// SchemaError is returned by Validate for structural failures other than a
// missing argument.
type SchemaError struct {
	CommandPath []string
	Subject     string // "arguments" or "options"
	Err         error
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s: invalid %s: %v", strings.Join(e.CommandPath, " "), e.Subject, e.Err)
}

func (e *SchemaError) Unwrap() error {
	return e.Err
}

// IsUsageError reports whether err was caused by the argument vector rather
// than by a handler.
func IsUsageError(err error) bool {
	var (
		notFound   *CommandNotFoundError
		unknownOpt *UnrecognizedOptionError
		missingVal *MissingOptionValueError
		missingArg *MissingArgumentError
		schemaErr  *SchemaError
	)
	return errors.As(err, &notFound) ||
		errors.As(err, &unknownOpt) ||
		errors.As(err, &missingVal) ||
		errors.As(err, &missingArg) ||
		errors.As(err, &schemaErr)
}
