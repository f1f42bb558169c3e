// Command duckscript runs Lua scripts against the GameState binding and
// reports the GameState each script returns.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"duck-engine/config"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(2)
	}

	flag.IntVar(&cfg.Jobs, "jobs", cfg.Jobs, "Scripts to run in parallel")
	flag.BoolVar(&cfg.PrintFEN, "fen", cfg.PrintFEN, "Report returned positions as FEN")
	flag.StringVar(&cfg.Prelude, "prelude", cfg.Prelude, "Lua file to run before each script")
	quiet := flag.Bool("quiet", false, "Suppress script print output")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: duckscript [flags] script.lua...")
		os.Exit(2)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	start := time.Now()
	results, err := runScripts(context.Background(), cfg, flag.Args())
	if err != nil {
		log.Println(err)
		os.Exit(1)
	}
	for _, r := range results {
		if !*quiet {
			fmt.Print(r.output)
		}
		fmt.Println(r.summary(cfg.PrintFEN))
	}
	log.Printf("ran %d scripts in %v", len(results), time.Since(start))
}
