// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/yeetrun/cmdspec/pkg/cmdspec"
)

var users = map[string]string{"1": "alice", "2": "bob"}

var stdout io.Writer = os.Stdout

func newRoot() *cmdspec.Command {
	return &cmdspec.Command{
		Name:        "usercli",
		Description: "Manage users",
		Options: []cmdspec.Option{
			{Name: "verbose", Aliases: []string{"-v", "--verbose"}, Description: "Print more"},
		},
		Subcommands: []*cmdspec.Command{
			{
				Name:        "list",
				Description: "List users",
				Handler: func(ctx context.Context, _ []string, opts cmdspec.Options, _ *cmdspec.Parsed) error {
					for _, id := range slices.Sorted(maps.Keys(users)) {
						if opts.Bool("verbose") {
							fmt.Fprintf(stdout, "%s\t%s\n", id, users[id])
							continue
						}
						fmt.Fprintln(stdout, users[id])
					}
					return nil
				},
			},
			{
				Name:        "rename",
				Description: "Rename a user",
				Arguments: []cmdspec.Argument{
					{Name: "<user_id>", Description: "User to rename"},
					{Name: "<name>", Description: "New name"},
				},
				Options: []cmdspec.Option{{
					Name:        "tag",
					Aliases:     []string{"-t", "--tag"},
					Description: "Tag to attach; repeatable",
					Multiple:    true,
					Argument:    &cmdspec.ValueArg{Name: "<tag>"},
				}},
				Handler: func(ctx context.Context, args []string, opts cmdspec.Options, p *cmdspec.Parsed) error {
					id, name := args[0], args[1]
					if _, ok := users[id]; !ok {
						return fmt.Errorf("no user %s", id)
					}
					users[id] = name
					fmt.Fprintf(stdout, "renamed %s to %s", id, name)
					if tags := opts.Strings("tag"); len(tags) > 0 {
						fmt.Fprintf(stdout, " [%s]", strings.Join(tags, ", "))
					}
					fmt.Fprintln(stdout)
					return nil
				},
			},
		},
	}
}

func main() {
	err := cmdspec.Run(context.Background(), newRoot(), os.Args[1:], cmdspec.RunOptions{})
	if err != nil && !errors.Is(err, cmdspec.ErrShown) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	os.Exit(cmdspec.ExitCode(err))
}
