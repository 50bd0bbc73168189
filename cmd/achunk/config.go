package main

import (
	"cmp"
	"log"
	"os"
	"runtime"
	"strconv"
	"time"
)

// config holds defaults taken from the environment (and a .env file).
type config struct {
	Name     string
	Workers  int
	Debounce time.Duration
	NoColor  bool
}

func loadConfig() config {
	c := config{
		Name:     os.Getenv("ACHUNK_NAME"),
		Workers:  runtime.NumCPU(),
		Debounce: time.Second,
		NoColor:  os.Getenv("NO_COLOR") != "",
	}

	if workers, err := strconv.Atoi(cmp.Or(os.Getenv("ACHUNK_WORKERS"), strconv.Itoa(c.Workers))); err == nil && workers > 0 {
		c.Workers = workers
	} else {
		log.Printf("Ignoring ACHUNK_WORKERS=%q", os.Getenv("ACHUNK_WORKERS"))
	}

	if debounce, err := time.ParseDuration(cmp.Or(os.Getenv("ACHUNK_DEBOUNCE"), c.Debounce.String())); err == nil {
		c.Debounce = debounce
	} else {
		log.Printf("Ignoring ACHUNK_DEBOUNCE=%q: %v", os.Getenv("ACHUNK_DEBOUNCE"), err)
	}

	return c
}
