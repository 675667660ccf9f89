// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmdspec

import (
	"fmt"
	"strings"
)

// Resolve walks args against spec and returns the tail of the resolved
// chain. Args should not include the binary name (os.Args[1:]).
//
// Each token is classified by the first rule that applies:
//   - Option: it starts with "-". The token must equal an alias declared by
//     the current command or one of its ancestors. A value-bearing option
//     consumes the next token as its value, whatever it looks like.
//   - Subcommand: it equals the name of a subcommand of the current
//     command. A child node is pushed and inherits the options seen so far.
//   - Positional: the current command declares an argument at the next
//     free position.
//
// Anything else stops resolution with a *CommandNotFoundError. There is no
// backtracking and no partial result on failure.
func Resolve(spec *Command, args []string) (*Parsed, error) {
	if spec == nil {
		return nil, fmt.Errorf("cmdspec: nil command spec")
	}
	cur := newRoot(spec)

	for i := 0; i < len(args); i++ {
		arg := args[i]

		if strings.HasPrefix(arg, "-") {
			opt, ok := cur.lookupOption(arg)
			if !ok {
				return nil, &UnrecognizedOptionError{CommandPath: cur.CommandPath, Option: arg}
			}
			if opt.IsBool() {
				cur.Options.record(opt, true)
				continue
			}
			if i+1 >= len(args) {
				return nil, &MissingOptionValueError{CommandPath: cur.CommandPath, Option: arg, ValueName: opt.Argument.Name}
			}
			i++
			cur.Options.record(opt, args[i])
			continue
		}

		if sub, ok := cur.Spec.Subcommand(arg); ok {
			cur = cur.descend(sub)
			continue
		}

		if len(cur.Arguments) < len(cur.Spec.Arguments) {
			cur.Arguments = append(cur.Arguments, arg)
			continue
		}

		return nil, &CommandNotFoundError{CommandPath: cur.CommandPath, Token: arg}
	}

	return cur, nil
}

// lookupOption finds the option declaring alias on p's command, then on
// each ancestor, nearest first.
func (p *Parsed) lookupOption(alias string) (*Option, bool) {
	for n := range p.Ancestors() {
		if opt, ok := n.Spec.findOption(alias); ok {
			return opt, true
		}
	}
	return nil, false
}
