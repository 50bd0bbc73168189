// achunk reads and writes application-defined ancillary chunks in PNG
// files.
//
//	achunk read <png> [name]
//	achunk list <pattern>...
//	achunk embed <in.png> <out.png> --chunk name=value
//	achunk watch <dir> [--name name]
package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/pflag"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("achunk: ")

	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		log.Fatal(err)
	}
}

type command struct {
	name    string
	summary string
	run     func(config, []string, io.Writer, io.Writer) error
}

var commands = []command{
	{name: "read", summary: "print the data of a chunk", run: runRead},
	{name: "list", summary: "list the ancillary chunks of PNG files", run: runList},
	{name: "embed", summary: "copy a PNG, adding custom chunks", run: runEmbed},
	{name: "watch", summary: "print a chunk of every PNG written to a directory", run: runWatch},
}

func run(args []string, stdout, stderr io.Writer) error {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		usage(stderr)
		return nil
	}

	for _, c := range commands {
		if c.name == args[0] {
			return c.run(loadConfig(), args[1:], stdout, stderr)
		}
	}

	usage(stderr)
	return fmt.Errorf("unknown command %q", args[0])
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "usage: achunk <command> [flags] [args]")
	fmt.Fprintln(w)
	for _, c := range commands {
		fmt.Fprintf(w, "  %-6s %s\n", c.name, c.summary)
	}
}

func newFlagSet(name string, stderr io.Writer) *pflag.FlagSet {
	flags := pflag.NewFlagSet("achunk "+name, pflag.ContinueOnError)
	flags.SetOutput(stderr)
	return flags
}
