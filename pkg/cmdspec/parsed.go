// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmdspec

import (
	"iter"
	"slices"
)

// Parsed is one level of a resolved command chain. Resolve returns the tail
// of the chain; Parent leads back to the root.
type Parsed struct {
	Spec *Command
	// CommandPath holds the traversed command names, root first.
	CommandPath []string
	// Options starts as a copy of the parent's options at the moment the
	// subcommand token was seen, then collects this level's occurrences.
	Options Options
	// Arguments holds the positional tokens consumed at this level.
	Arguments []string
	// Parent is nil only at the root.
	Parent *Parsed
}

// newRoot starts a chain for spec.
func newRoot(spec *Command) *Parsed {
	return &Parsed{
		Spec:        spec,
		CommandPath: []string{spec.Name},
		Arguments:   []string{},
	}
}

// descend returns a child node for sub, inheriting p's options.
func (p *Parsed) descend(sub *Command) *Parsed {
	path := make([]string, len(p.CommandPath), len(p.CommandPath)+1)
	copy(path, p.CommandPath)
	return &Parsed{
		Spec:        sub,
		CommandPath: append(path, sub.Name),
		Options:     p.Options.clone(),
		Arguments:   []string{},
		Parent:      p,
	}
}

// Root returns the first node of the chain.
func (p *Parsed) Root() *Parsed {
	for p.Parent != nil {
		p = p.Parent
	}
	return p
}

// Depth returns the number of subcommand transitions from the root.
func (p *Parsed) Depth() int {
	d := 0
	for n := p.Parent; n != nil; n = n.Parent {
		d++
	}
	return d
}

// Chain returns every node from the root to p.
func (p *Parsed) Chain() []*Parsed {
	var nodes []*Parsed
	for n := p; n != nil; n = n.Parent {
		nodes = append(nodes, n)
	}
	slices.Reverse(nodes)
	return nodes
}

// Ancestors yields p and then each parent up to the root.
func (p *Parsed) Ancestors() iter.Seq[*Parsed] {
	return func(yield func(*Parsed) bool) {
		for n := p; n != nil; n = n.Parent {
			if !yield(n) {
				return
			}
		}
	}
}

// Help renders the help dialog of the resolved command.
func (p *Parsed) Help() iter.Seq[string] {
	return RenderHelp(p.Spec, p.CommandPath)
}

// Validate checks p against the schema built from its chain.
func (p *Parsed) Validate() error {
	return Validate(p)
}
