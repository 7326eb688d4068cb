// Copyright 2011 Vadim Vygonets. All rights reserved.
// Use of this source code is governed by the Bugroff
// license that can be found in the LICENSE file.

// Stax runs a stax program.
//
// Usage:
//
//	stax [flags] <file>
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/rs/zerolog"
	"github.com/tebeka/atexit"

	"stax/config"
	"stax/lex"
	"stax/vm"
)

// list prints the program one instruction per line, prefixed by
// its offset.
func list(w io.Writer, prog []vm.Instr) error {
	for pc, in := range prog {
		if _, err := fmt.Fprintf(w, "%4d  %v\n", pc, in); err != nil {
			return err
		}
	}
	return nil
}

// run runs stax with the command line arguments args and returns
// the exit status.
func run(args []string, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet("stax", flag.ContinueOnError)
	flags.SetOutput(stderr)
	var (
		cfgPath  = flags.String("config", "", "read run configuration from `file` (.toml, .yaml)")
		trace    = flags.Bool("trace", false, "log every instruction to stderr")
		listing  = flags.Bool("l", false, "list the program instead of running it")
		overflow = flags.String("overflow", "wrap", "integer overflow `policy`: wrap or trap")
		maxDepth = flags.Int("max-depth", 0, "operand stack `limit`, 0 for none")
	)
	usage := func() {
		fmt.Fprintf(stderr, "Usage: stax [flags] <file>\n\nFlags:\n")
		flags.PrintDefaults()
	}
	flags.Usage = usage
	if err := flags.Parse(args); err != nil {
		return 2
	}
	if flags.NArg() != 1 {
		usage()
		return 2
	}
	path := flags.Arg(0)

	cfg := config.Default()
	if *cfgPath != "" {
		var err error
		if cfg, err = config.Load(*cfgPath); err != nil {
			fmt.Fprintf(stderr, "stax: %v\n", err)
			return 1
		}
	}
	// flags given explicitly override the configuration file
	flags.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "overflow":
			cfg.Arith.Overflow = *overflow
		case "max-depth":
			cfg.Stack.MaxDepth = *maxDepth
		case "trace":
			if *trace {
				cfg.Log.Level = zerolog.LevelTraceValue
			}
		}
	})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "stax: %v\n", err)
		return 1
	}
	level, _ := cfg.LogLevel()
	log := zerolog.New(zerolog.ConsoleWriter{Out: stderr, NoColor: stderr != os.Stderr}).
		Level(level).With().Timestamp().Str("file", path).Logger()

	src, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		fmt.Fprintf(stderr, "'%s' does not exist!\n", path)
		return 1
	case err != nil:
		fmt.Fprintf(stderr, "stax: %v\n", err)
		return 1
	}

	out := bufio.NewWriter(stdout)
	defer out.Flush()

	if *listing {
		prog, err := lex.Parse(path, string(src))
		if err != nil {
			fmt.Fprintf(stderr, "stax: %v\n", err)
			return 1
		}
		if err := list(out, prog); err != nil {
			fmt.Fprintf(stderr, "stax: %v\n", err)
			return 1
		}
		return 0
	}

	log.Debug().
		Int("max-depth", cfg.Stack.MaxDepth).
		Str("overflow", cfg.Arith.Overflow).
		Msg("run")
	machine := vm.New(lex.New(path, string(src)), out, cfg.VMOptions(&log))
	if err := machine.Run(); err != nil {
		out.Flush()
		var trap *vm.Error
		if errors.As(err, &trap) {
			log.Debug().Ints64("stack", trap.Stack.Int64s()).Msg("trap")
		}
		fmt.Fprintf(stderr, "%v\n", err)
		return 1
	}
	return 0
}

func main() {
	atexit.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
