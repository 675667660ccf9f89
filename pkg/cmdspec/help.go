// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmdspec

import (
	"fmt"
	"io"
	"iter"
	"slices"
	"strings"
	"unicode/utf8"
)

// HelpStyle decorates the fixed labels of a help dialog. A nil func leaves
// the text unchanged, so the zero value renders plain text.
type HelpStyle struct {
	// Usage decorates "Usage:" and "or:" without their padding.
	Usage func(string) string
	// Heading decorates the "Arguments", "Commands" and "Options" headers.
	Heading func(string) string
}

func (s HelpStyle) usage(label string) string {
	pad := strings.Repeat(" ", max(0, 6-len(label)))
	if s.Usage != nil {
		label = s.Usage(label)
	}
	return pad + label
}

func (s HelpStyle) heading(h string) string {
	if s.Heading != nil {
		return s.Heading(h)
	}
	return h
}

// RenderHelp returns the help dialog of spec as a sequence of lines. path is
// the command path of spec, binary name first. A nil spec renders the single
// "not a valid command" line for path.
//
// The sequence computes lines as they are pulled and can be ranged over
// any number of times.
func RenderHelp(spec *Command, path []string) iter.Seq[string] {
	return HelpStyle{}.Render(spec, path)
}

// Render is RenderHelp with s applied to the labels.
func (s HelpStyle) Render(spec *Command, path []string) iter.Seq[string] {
	return func(yield func(string) bool) {
		joined := strings.Join(path, " ")
		if spec == nil {
			bin := ""
			if len(path) > 0 {
				bin = path[0]
			}
			yield(fmt.Sprintf("%s: Is not valid command. See %s --help", joined, bin))
			return
		}

		if spec.Description != "" {
			if !yield(spec.Description) || !yield("") {
				return
			}
		}

		prefix := joined
		if len(spec.Options) > 0 {
			prefix += " [options]"
		}
		var usages []string
		if len(spec.Arguments) == 0 && len(spec.Subcommands) == 0 {
			usages = append(usages, prefix)
		}
		if len(spec.Arguments) > 0 {
			names := make([]string, len(spec.Arguments))
			for i, a := range spec.Arguments {
				names[i] = a.Name
			}
			usages = append(usages, prefix+" "+strings.Join(names, " "))
		}
		if len(spec.Subcommands) > 0 {
			usages = append(usages, prefix+" <command>")
		}
		for i, u := range usages {
			label := "or:"
			if i == 0 {
				label = "Usage:"
			}
			if !yield(s.usage(label) + " " + u) {
				return
			}
		}
		if !yield("") {
			return
		}

		width := labelWidth(spec)
		row := func(label, desc string) string {
			return fmt.Sprintf("  %-*s    %s", width, label, desc)
		}

		if slices.ContainsFunc(spec.Arguments, func(a Argument) bool { return a.Description != "" }) {
			if !yield(s.heading("Arguments")) {
				return
			}
			for _, a := range spec.Arguments {
				if !yield(row(a.Name, a.Description)) {
					return
				}
			}
			if !yield("") {
				return
			}
		}

		if slices.ContainsFunc(spec.Subcommands, func(c *Command) bool { return c != nil && c.Description != "" }) {
			if !yield(s.heading("Commands")) {
				return
			}
			for _, c := range spec.Subcommands {
				if c == nil {
					continue
				}
				if !yield(row(c.Name, c.Description)) {
					return
				}
			}
			if !yield("") {
				return
			}
		}

		if slices.ContainsFunc(spec.Options, func(o Option) bool { return o.Description != "" }) {
			if !yield(s.heading("Options")) {
				return
			}
			for _, o := range spec.Options {
				if !yield(row(strings.Join(o.Aliases, " "), o.Description)) {
					return
				}
			}
			yield("")
		}
	}
}

// labelWidth is the widest label across the argument, subcommand and option
// rows of spec, described or not.
func labelWidth(spec *Command) int {
	w := 0
	for _, a := range spec.Arguments {
		w = max(w, utf8.RuneCountInString(a.Name))
	}
	for _, c := range spec.Subcommands {
		if c != nil {
			w = max(w, utf8.RuneCountInString(c.Name))
		}
	}
	for _, o := range spec.Options {
		w = max(w, utf8.RuneCountInString(strings.Join(o.Aliases, " ")))
	}
	return w
}

// Help resolves args against spec and returns the help dialog of the
// resolved command. Resolution failures are returned as is.
func Help(spec *Command, args []string) (iter.Seq[string], error) {
	p, err := Resolve(spec, args)
	if err != nil {
		return nil, err
	}
	return p.Help(), nil
}

// HelpLines collects seq.
func HelpLines(seq iter.Seq[string]) []string {
	return slices.Collect(seq)
}

// WriteHelp writes each line of seq to w followed by a newline.
func WriteHelp(w io.Writer, seq iter.Seq[string]) error {
	for line := range seq {
		if _, err := io.WriteString(w, line+"\n"); err != nil {
			return err
		}
	}
	return nil
}
