// Copyright 2023 The pngmsg Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// Package cli is a small command tree for the pngmsg binary: subcommand
// dispatch, per-command pflag parsing, help output, logging and exit
// codes.
package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/pflag"
)

// Command is a CLI command or subcommand.
type Command struct {
	// Name is the command name as typed by the user (e.g. "encode").
	Name string

	// Summary is a one-line description shown in the parent's help listing.
	Summary string

	// Usage is the usage line, e.g. "pngmsg decode <file> <type>".
	Usage string

	// Examples are shown in the help output after the usage line.
	Examples []string

	// Flags returns a configured *pflag.FlagSet for this command.  If
	// nil, the command accepts no flags.
	Flags func() *pflag.FlagSet

	// MinArgs and MaxArgs bound the number of positional arguments Run
	// accepts, inclusive.  Both zero means any number.
	MinArgs, MaxArgs int

	Subcommands []*Command

	// Run executes the command with the positional args left after flag
	// parsing.
	Run func(args []string) error

	// Stderr receives help output; os.Stderr if nil.
	Stderr io.Writer

	parent *Command
}

// Execute parses args and dispatches to the matching subcommand or to
// Run.
func (c *Command) Execute(args []string) error {
	if len(args) > 0 && isHelpFlag(args[0]) {
		c.PrintHelp(c.stderr())
		return nil
	}

	if len(c.Subcommands) > 0 {
		if len(args) == 0 || strings.HasPrefix(args[0], "-") {
			c.PrintHelp(c.stderr())
			return fmt.Errorf("subcommand required")
		}
		name := args[0]
		if name == "help" {
			c.PrintHelp(c.stderr())
			return nil
		}
		for _, sub := range c.Subcommands {
			if sub.Name == name {
				sub.parent = c
				return sub.Execute(args[1:])
			}
		}
		return fmt.Errorf("unknown command %q\n\nRun '%s --help' for usage.", name, c.fullName())
	}

	if c.Flags != nil {
		flagSet := c.Flags()
		flagSet.SetOutput(io.Discard)
		if err := flagSet.Parse(args); err != nil {
			if err == pflag.ErrHelp {
				c.PrintHelp(c.stderr())
				return nil
			}
			return fmt.Errorf("%s\n\nRun '%s --help' for usage.", err, c.fullName())
		}
		args = flagSet.Args()
	}

	if c.MinArgs != 0 || c.MaxArgs != 0 {
		if len(args) < c.MinArgs || len(args) > c.MaxArgs {
			return fmt.Errorf("wrong number of arguments (got %d)\n\nUsage:\n  %s", len(args), c.Usage)
		}
	}

	if c.Run == nil {
		c.PrintHelp(c.stderr())
		return fmt.Errorf("no action defined for %q", c.fullName())
	}
	return c.Run(args)
}

// PrintHelp writes help output to w.
func (c *Command) PrintHelp(w io.Writer) {
	if c.Summary != "" {
		fmt.Fprintf(w, "%s\n\n", c.Summary)
	}

	if c.Usage != "" {
		fmt.Fprintf(w, "Usage:\n  %s\n", c.Usage)
	} else if len(c.Subcommands) > 0 {
		fmt.Fprintf(w, "Usage:\n  %s <command> [flags]\n", c.fullName())
	}

	if len(c.Subcommands) > 0 {
		fmt.Fprintf(w, "\nCommands:\n")
		tw := tabwriter.NewWriter(w, 2, 0, 3, ' ', 0)
		for _, sub := range c.Subcommands {
			fmt.Fprintf(tw, "  %s\t%s\n", sub.Name, sub.Summary)
		}
		tw.Flush()
	}

	if c.Flags != nil {
		var flagHelp strings.Builder
		flagSet := c.Flags()
		flagSet.SetOutput(&flagHelp)
		flagSet.PrintDefaults()
		if flagHelp.Len() > 0 {
			fmt.Fprintf(w, "\nFlags:\n%s", flagHelp.String())
		}
	}

	if len(c.Examples) > 0 {
		fmt.Fprintf(w, "\nExamples:\n")
		for _, example := range c.Examples {
			fmt.Fprintf(w, "  %s\n", example)
		}
	}

	if len(c.Subcommands) > 0 {
		fmt.Fprintf(w, "\nRun '%s <command> --help' for more information on a command.\n", c.fullName())
	}
}

func (c *Command) stderr() io.Writer {
	for cmd := c; cmd != nil; cmd = cmd.parent {
		if cmd.Stderr != nil {
			return cmd.Stderr
		}
	}
	return os.Stderr
}

// fullName returns the complete command path, e.g. "pngmsg encode".
func (c *Command) fullName() string {
	if c.parent == nil {
		return c.Name
	}
	return c.parent.fullName() + " " + c.Name
}

func isHelpFlag(arg string) bool {
	return arg == "-h" || arg == "--help"
}
