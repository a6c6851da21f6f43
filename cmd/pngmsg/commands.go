// Copyright 2023 The pngmsg Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/bpowers/pngmsg"
	"github.com/bpowers/pngmsg/chunk"
	"github.com/bpowers/pngmsg/internal/cli"
	"github.com/bpowers/pngmsg/internal/fileio"
	"github.com/bpowers/pngmsg/pngfile"
)

const defaultPerm fs.FileMode = 0644

type app struct {
	stdout io.Writer
	stderr io.Writer

	verbose    bool
	all        bool
	outputJSON bool
}

func (a *app) root() *cli.Command {
	return &cli.Command{
		Name:    "pngmsg",
		Summary: "Hide, find and remove messages stored in PNG chunks.",
		Stderr:  a.stderr,
		Subcommands: []*cli.Command{
			{
				Name:    "encode",
				Summary: "store a message in a new chunk",
				Usage:   "pngmsg encode [flags] [--] <file> <type> <message> [out]",
				Examples: []string{
					"pngmsg encode image.png ruSt 'meet at noon' out.png",
					"# a message starting with '-' goes after --",
					"pngmsg encode image.png ruSt -- '-30 at noon' out.png",
				},
				Flags:   a.flags("encode", nil),
				MinArgs: 3,
				MaxArgs: 4,
				Run:     a.encode,
			},
			{
				Name:    "decode",
				Summary: "print the message stored in the first chunk of a type",
				Usage:   "pngmsg decode <file> <type>",
				Flags:   a.flags("decode", nil),
				MinArgs: 2,
				MaxArgs: 2,
				Run:     a.decode,
			},
			{
				Name:    "remove",
				Summary: "remove the first chunk of a type, in place",
				Usage:   "pngmsg remove <file> <type>",
				Flags: a.flags("remove", func(flagSet *pflag.FlagSet) {
					flagSet.BoolVar(&a.all, "all", false, "remove every chunk of the type, not just the first")
				}),
				MinArgs: 2,
				MaxArgs: 2,
				Run:     a.remove,
			},
			{
				Name:    "print",
				Summary: "list the chunks in a file",
				Usage:   "pngmsg print <file>",
				Flags: a.flags("print", func(flagSet *pflag.FlagSet) {
					flagSet.BoolVar(&a.outputJSON, "json", false, "output as JSON")
				}),
				MinArgs: 1,
				MaxArgs: 1,
				Run:     a.print,
			},
		},
	}
}

// flags returns a FlagSet constructor with the flags every command
// shares, plus whatever extra adds.
func (a *app) flags(name string, extra func(flagSet *pflag.FlagSet)) func() *pflag.FlagSet {
	return func() *pflag.FlagSet {
		flagSet := pflag.NewFlagSet(name, pflag.ContinueOnError)
		flagSet.BoolVarP(&a.verbose, "verbose", "v", false, "debug logging")
		if extra != nil {
			extra(flagSet)
		}
		return flagSet
	}
}

func (a *app) logger(command string) *slog.Logger {
	return cli.NewLogger(a.stderr, a.verbose).With("command", command)
}

func load(logger *slog.Logger, path string) (*pngfile.File, error) {
	b, err := fileio.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f, err := pngfile.Decode(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	logger.Debug("loaded file", "path", path, "bytes", len(b), "chunks", f.Len())
	return f, nil
}

// save writes f to path, keeping path's permissions if it already
// exists and using perm otherwise.
func save(logger *slog.Logger, f *pngfile.File, path string, perm fs.FileMode) error {
	b := f.Bytes()
	mode, err := fileio.Mode(path, perm)
	if err != nil {
		return err
	}
	if err := fileio.WriteFile(path, b, mode); err != nil {
		return err
	}
	logger.Debug("wrote file", "path", path, "bytes", len(b), "chunks", f.Len())
	return nil
}

func (a *app) encode(args []string) error {
	in, typ, message := args[0], args[1], args[2]
	out := in
	if len(args) == 4 {
		out = args[3]
	}
	logger := a.logger("encode")

	// check the type before touching the filesystem
	t, err := chunk.ParseType(typ)
	if err != nil {
		return err
	}
	if t.IsCritical() {
		logger.Warn("critical chunk type: decoders that don't know it will refuse to display the image", "type", typ)
	}
	if !t.IsValid() {
		logger.Warn("reserved bit set: third letter of the type should be uppercase", "type", typ)
	}

	f, err := load(logger, in)
	if err != nil {
		return err
	}
	if err := pngmsg.Embed(f, typ, []byte(message)); err != nil {
		return err
	}

	inMode, err := fileio.Mode(in, defaultPerm)
	if err != nil {
		return err
	}
	if err := save(logger, f, out, inMode); err != nil {
		return err
	}

	fmt.Fprintf(a.stdout, "stored %d bytes in %s chunk of %s\n", len(message), typ, out)
	return nil
}

func (a *app) decode(args []string) error {
	in, typ := args[0], args[1]
	logger := a.logger("decode")

	f, err := load(logger, in)
	if err != nil {
		return err
	}
	text, ok, err := pngmsg.ExtractText(f, typ)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintf(a.stderr, "no message for chunk type %s in %s\n", typ, in)
		return &cli.ExitError{Code: 1}
	}

	fmt.Fprintln(a.stdout, text)
	return nil
}

func (a *app) remove(args []string) error {
	in, typ := args[0], args[1]
	logger := a.logger("remove")

	f, err := load(logger, in)
	if err != nil {
		return err
	}

	removed := 1
	if a.all {
		chunks, err := pngmsg.StripAll(f, typ)
		if err != nil {
			return err
		}
		removed = len(chunks)
	} else if _, err := pngmsg.Strip(f, typ); err != nil {
		return err
	}

	if err := save(logger, f, in, defaultPerm); err != nil {
		return err
	}

	fmt.Fprintf(a.stdout, "removed %d %s chunk(s) from %s\n", removed, typ, in)
	return nil
}

func (a *app) print(args []string) error {
	in := args[0]
	logger := a.logger("print")

	f, err := load(logger, in)
	if err != nil {
		return err
	}
	infos := pngmsg.Describe(f)

	if a.outputJSON {
		return cli.WriteJSON(a.stdout, infos)
	}

	fmt.Fprintf(a.stdout, "%s: %d chunks\n", in, len(infos))
	tw := tabwriter.NewWriter(a.stdout, 2, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "#\tTYPE\tLENGTH\tCRC\tFINGERPRINT\n")
	for _, info := range infos {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%08x\t%s\n", info.Index+1, info.Type, info.Length, info.CRC, info.Fingerprint)
	}
	return tw.Flush()
}
