// basic prints the first custom chunk it finds among PNG files.
//
//	basic <name> [pattern...]
package main

import (
	"cmp"
	"log"
	"os"

	lib "png-achunk/pkg"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: basic <name> [pattern...]")
	}
	name := os.Args[1]

	patterns := os.Args[2:]
	if len(patterns) == 0 {
		patterns = []string{cmp.Or(os.Getenv("ACHUNK_PATTERN"), "~/Pictures/***.png")}
	}

	files, err := lib.ExpandPatterns(patterns...)
	if err != nil {
		log.Fatal(err)
	}

	if len(files) == 0 {
		log.Fatal("No files found.")
	}

	for _, file := range files {
		log.Println("Reading from file:", file)
		data, err := lib.ReadChunkFromFile(file, name)
		if err != nil {
			log.Printf("Error reading file %s: %v", file, err)
			continue
		}
		os.Stdout.Write(data)
		return
	}
	log.Fatalf("No file has a %s chunk.", name)
}
