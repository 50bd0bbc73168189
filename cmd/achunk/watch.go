package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/dustin/go-humanize"

	lib "png-achunk/pkg"
	"png-achunk/pkg/chunk"
	"png-achunk/pkg/flight"
	"png-achunk/pkg/once"
	"png-achunk/pkg/semaphore"
)

func runWatch(cfg config, args []string, stdout, stderr io.Writer) error {
	flags := newFlagSet("watch", stderr)
	name := flags.StringP("name", "n", cfg.Name, "chunk to print for each new PNG")
	cooldown := flags.Duration("debounce", cfg.Debounce, "how long a file must be quiet before it is read")
	workers := flags.IntP("workers", "w", cfg.Workers, "number of files to read at once")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if flags.NArg() != 1 {
		return errors.New("watch: expected <dir>")
	}
	if *name == "" {
		return errors.New("watch: no chunk name given and ACHUNK_NAME is unset")
	}
	if _, err := chunk.ParseType(*name); err != nil {
		return fmt.Errorf("%w: %w", lib.ErrInvalidName, err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return watch(ctx, flags.Arg(0), *name, *cooldown, *workers, stdout)
}

// fileState identifies one version of a file on disk.
type fileState struct {
	path    string
	size    int64
	modTime time.Time
}

type report struct {
	path        string
	fingerprint string
}

func watch(ctx context.Context, dir, name string, cooldown time.Duration, workers int, stdout io.Writer) error {
	var mu sync.Mutex
	limit := semaphore.New(workers)
	printed := once.New[report]()
	reads := flight.NewCache(func(s fileState) ([]byte, error) {
		return lib.ReadChunkFromFile(s.path, name)
	})

	w := lib.NewWatcher(dir, cooldown, func(path string) {
		if !lib.IsPNG(path) {
			return
		}
		if err := limit.Acquire(ctx); err != nil {
			return
		}
		defer limit.Release()

		info, err := os.Stat(path)
		if err != nil {
			log.Printf("%s: %v", path, err)
			return
		}
		data, err := reads.Get(fileState{path: path, size: info.Size(), modTime: info.ModTime()})
		if err != nil {
			log.Printf("%s: %v", path, err)
			return
		}

		c := chunk.Chunk{Type: chunk.MustParseType(name), Data: data}
		if printed.Stored(report{path: path, fingerprint: lib.Fingerprint(c)}) {
			return
		}

		mu.Lock()
		defer mu.Unlock()
		fmt.Fprintf(stdout, "%s\t%s\t%q\n", path, humanize.Bytes(uint64(len(data))), data)
	})
	if err := w.Watch(); err != nil {
		return err
	}
	log.Printf("Watching %s for %s chunks", dir, name)

	<-ctx.Done()
	return w.Stop()
}
