package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	lib "png-achunk/pkg"
)

func runRead(cfg config, args []string, stdout, stderr io.Writer) error {
	flags := newFlagSet("read", stderr)
	output := flags.StringP("output", "o", "", "write the chunk data to this file instead of stdout")
	if err := flags.Parse(args); err != nil {
		return err
	}

	var path, name string
	switch flags.NArg() {
	case 1:
		path, name = flags.Arg(0), cfg.Name
	case 2:
		path, name = flags.Arg(0), flags.Arg(1)
	default:
		return errors.New("read: expected <png> [name]")
	}
	if name == "" {
		return errors.New("read: no chunk name given and ACHUNK_NAME is unset")
	}

	data, err := lib.ReadChunkFromFile(path, name)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	if *output != "" {
		return os.WriteFile(*output, data, 0644)
	}
	_, err = stdout.Write(data)
	return err
}
