package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"

	lib "png-achunk/pkg"
	"png-achunk/pkg/chunk"
	"png-achunk/pkg/decode"
	"png-achunk/pkg/exif"
	"png-achunk/pkg/worker"
)

type listing struct {
	path    string
	chunks  []chunk.Chunk
	entries []exif.Entry
	err     error
}

func runList(cfg config, args []string, stdout, stderr io.Writer) error {
	flags := newFlagSet("list", stderr)
	workers := flags.IntP("workers", "w", cfg.Workers, "number of files to scan at once")
	text := flags.BoolP("text", "t", false, "also print the tEXt, zTXt and iTXt entries")
	noColor := flags.Bool("no-color", cfg.NoColor, "disable colored output")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if flags.NArg() == 0 {
		return errors.New("list: expected at least one pattern")
	}

	paths, err := lib.ExpandPatterns(flags.Args()...)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return errors.New("list: no files matched")
	}

	listings := worker.Map(*workers, paths, func(path string) listing {
		return scan(path, *text)
	})

	s := newStyles(stdout, *noColor)
	var failed int
	for _, l := range listings {
		fmt.Fprintln(stdout, s.path(l.path))
		if l.err != nil {
			failed++
			fmt.Fprintln(stdout, "  "+s.failed.Render(l.err.Error()))
			continue
		}
		if len(l.chunks) == 0 {
			fmt.Fprintln(stdout, "  (no ancillary chunks)")
		}
		for _, c := range l.chunks {
			fmt.Fprintf(stdout, "  %s %s %s  %s\n",
				s.kind.Render(c.Type.String()),
				s.flags.Render(describe(c.Type)),
				s.size.Render(humanize.Bytes(uint64(len(c.Data)))),
				s.hash.Render(lib.Fingerprint(c)),
			)
		}
		for _, e := range l.entries {
			fmt.Fprintf(stdout, "  %s %s: %s\n", s.kind.Render(e.ChunkType.String()), e.Keyword, e.Text)
		}
	}

	if failed > 0 {
		return fmt.Errorf("list: %d of %d files could not be read", failed, len(listings))
	}
	return nil
}

func scan(path string, text bool) listing {
	l := listing{path: path}

	d, err := decode.Open(path)
	if err != nil {
		l.err = err
		return l
	}
	defer d.Close()

	l.chunks, l.err = d.AncillaryChunks()
	if l.err != nil || !text {
		return l
	}
	l.entries, l.err = exif.Entries(l.chunks)
	return l
}

func describe(t chunk.Type) string {
	flags := make([]string, 0, 3)
	if t.IsPublic() {
		flags = append(flags, "public")
	} else {
		flags = append(flags, "private")
	}
	if t.IsReserved() {
		flags = append(flags, "reserved")
	}
	if t.IsSafeToCopy() {
		flags = append(flags, "safe-to-copy")
	} else {
		flags = append(flags, "unsafe-to-copy")
	}
	return strings.Join(flags, " ")
}
