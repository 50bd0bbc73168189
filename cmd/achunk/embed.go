package main

import (
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"strings"

	lib "png-achunk/pkg"
	"png-achunk/pkg/chunk"
	"png-achunk/pkg/decode"
	"png-achunk/pkg/encode"
	"png-achunk/pkg/exif"
)

func runEmbed(cfg config, args []string, stdout, stderr io.Writer) error {
	flags := newFlagSet("embed", stderr)
	chunkArgs := flags.StringArrayP("chunk", "c", nil, "chunk to add as name=value, or name=@file to read the data from a file")
	texts := flags.StringArray("text", nil, "iTXt text entry to add as keyword=value")
	drop := flags.Bool("drop", false, "do not carry over the ancillary chunks of the input")
	force := flags.BoolP("force", "f", false, "overwrite the output file")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if flags.NArg() != 2 {
		return errors.New("embed: expected <in.png> <out.png>")
	}
	in, out := flags.Arg(0), flags.Arg(1)
	if !*force && lib.FileExists(out) {
		return fmt.Errorf("embed: %s already exists", out)
	}

	added, err := parseChunks(*chunkArgs, *texts)
	if err != nil {
		return err
	}
	if len(added) == 0 {
		return errors.New("embed: no chunks to add")
	}

	d, err := decode.Open(in)
	if err != nil {
		return err
	}
	img, existing, err := d.DecodeAll()
	d.Close()
	if err != nil {
		return fmt.Errorf("%s: %w", in, err)
	}

	var chunks []chunk.Chunk
	if !*drop {
		chunks = carried(existing)
	}
	chunks = append(chunks, added...)
	if err := save(out, img, chunks); err != nil {
		return err
	}

	for _, c := range added {
		fmt.Fprintf(stdout, "%s %s\n", c.Type, lib.Fingerprint(c))
	}
	return nil
}

// carried keeps the chunks a PNG editor may copy after re-encoding the
// pixels. Unsafe-to-copy chunks like tRNS or sBIT describe the old pixel
// layout and are dropped.
func carried(chunks []chunk.Chunk) []chunk.Chunk {
	var kept []chunk.Chunk
	for _, c := range chunks {
		if c.Type.IsSafeToCopy() {
			kept = append(kept, c)
		}
	}
	return kept
}

// save encodes img with chunks into out. A partial file is removed.
func save(out string, img image.Image, chunks []chunk.Chunk) (err error) {
	e, err := encode.Create(out)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			os.Remove(out)
		}
	}()

	e.AddChunk(chunks...)
	if err := e.Encode(img); err != nil {
		e.Close()
		return fmt.Errorf("%s: %w", out, err)
	}
	if err := e.Close(); err != nil {
		return fmt.Errorf("%s: %w", out, err)
	}
	return nil
}

func parseChunks(chunkArgs, texts []string) ([]chunk.Chunk, error) {
	custom := make([]lib.Custom, 0, len(chunkArgs))
	for _, arg := range chunkArgs {
		name, value, ok := strings.Cut(arg, "=")
		if !ok {
			return nil, fmt.Errorf("embed: chunk %q is not name=value", arg)
		}
		data := []byte(value)
		if path, ok := strings.CutPrefix(value, "@"); ok {
			b, err := os.ReadFile(path)
			if err != nil {
				return nil, fmt.Errorf("embed: chunk %s: %w", name, err)
			}
			data = b
		}
		custom = append(custom, lib.Custom{Name: name, Data: data})
	}

	chunks, err := lib.Chunks(custom...)
	if err != nil {
		return nil, err
	}

	for _, text := range texts {
		keyword, value, ok := strings.Cut(text, "=")
		if !ok {
			return nil, fmt.Errorf("embed: text %q is not keyword=value", text)
		}
		c, err := exif.NewText(keyword, value, false)
		if err != nil {
			return nil, err
		}
		chunks = append(chunks, c)
	}
	return chunks, nil
}
