// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tui

import (
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

var isTerminalFn = term.IsTerminal

// Colorizer wraps text in ANSI attributes when Enabled.
type Colorizer struct {
	Enabled bool
}

// NewColorizer returns an enabled Colorizer unless enabled is false,
// NO_COLOR is set, or TERM is unset or "dumb".
func NewColorizer(enabled bool) Colorizer {
	if !enabled {
		return Colorizer{}
	}
	if os.Getenv("NO_COLOR") != "" {
		return Colorizer{}
	}
	termEnv := os.Getenv("TERM")
	if termEnv == "" || termEnv == "dumb" {
		return Colorizer{}
	}
	return Colorizer{Enabled: true}
}

// ForFile is NewColorizer enabled only when f is a terminal.
func ForFile(f *os.File, enabled bool) Colorizer {
	if f == nil || !isTerminalFn(int(f.Fd())) {
		return Colorizer{}
	}
	return NewColorizer(enabled)
}

// Wrap applies attrs to text.
func (c Colorizer) Wrap(text string, attrs ...color.Attribute) string {
	if !c.Enabled || len(attrs) == 0 {
		return text
	}
	col := color.New(attrs...)
	col.EnableColor()
	return col.Sprint(text)
}

func (c Colorizer) Red(text string) string {
	return c.Wrap(text, color.FgRed)
}

func (c Colorizer) Green(text string) string {
	return c.Wrap(text, color.FgGreen)
}

func (c Colorizer) Yellow(text string) string {
	return c.Wrap(text, color.FgYellow)
}

func (c Colorizer) Bold(text string) string {
	return c.Wrap(text, color.Bold)
}

func (c Colorizer) Dim(text string) string {
	return c.Wrap(text, color.FgHiBlack)
}
