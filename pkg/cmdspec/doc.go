// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cmdspec is a declarative command-line engine. A program describes
// its commands, options and positional arguments once as a tree of Command
// values; cmdspec resolves argument vectors against that tree, validates the
// result and renders help for any node.
//
// # Declaring a tree
//
//	root := &cmdspec.Command{
//	    Name:        "cli",
//	    Description: "Manage users",
//	    Options: []cmdspec.Option{
//	        {Name: "verbose", Aliases: []string{"-v", "--verbose"}, Description: "Verbose output"},
//	    },
//	    Subcommands: []*cmdspec.Command{{
//	        Name:        "edit",
//	        Description: "Edit a user",
//	        Arguments:   []cmdspec.Argument{{Name: "<user_id>", Description: "User to edit"}},
//	        Options: []cmdspec.Option{{
//	            Name:     "tag",
//	            Aliases:  []string{"-t", "--tag"},
//	            Multiple: true,
//	            Argument: &cmdspec.ValueArg{Name: "<tag>"},
//	        }},
//	        Handler: editUser,
//	    }},
//	}
//
// # Resolution
//
// Resolve makes one left-to-right pass over the arguments. Each token is
// tried as an option alias, then as a subcommand name, then as the next
// positional argument. Options seen before a subcommand are copied into the
// child, and options declared on a parent are accepted after a subcommand.
//
//	p, err := cmdspec.Resolve(root, []string{"-v", "edit", "42", "-t", "a", "-t", "b"})
//	// p.CommandPath == []string{"cli", "edit"}
//	// p.Arguments   == []string{"42"}
//	// p.Options.Bool("v") == true
//	// p.Options.Strings("tag") == []string{"a", "b"}
//
// # Validation
//
// BuildSchema derives JSON Schema documents for the resolved node: a
// fixed-length tuple for the positional arguments and an object for the
// options of the whole chain. Validate enforces the argument count and the
// shape of the options that were given.
//
// # Help
//
// RenderHelp and Help produce the help dialog line by line:
//
//	I am description
//
//	Usage: cli [options] <abc>
//	   or: cli [options] <command>
//
//	Arguments
//	  <abc>       im an argument
//
//	Commands
//	  ls          ls command
//
//	Options
//	  -a --abc    abc option
//
// # Dispatch
//
// Dispatch resolves, validates and calls the resolved command's Handler.
// Run adds --help handling on top and ExitCode maps the returned error to a
// process exit code.
package cmdspec
