// Package cli parses hyperlines command-line arguments.
package cli

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/josephg/hyperlines/pkg/script"
	"github.com/josephg/hyperlines/pkg/vm"
)

// Config holds the settings parsed from the command line and environment.
type Config struct {
	ProgramPath string          // program file; empty selects the built-in example
	Timeout     time.Duration   // preview auto-close (0 means never)
	LogLevel    string          // debug, info, warn, error
	Headless    bool            // print results instead of opening a window
	MaxSteps    int             // block invocations per run
	Seed        uint64          // mutation seed; 0 picks one from the clock
	Mutations   int             // mutations applied before the first run
	SVGPath     string          // write the output as SVG here
	PNGPath     string          // write the output as PNG here
	Print       bool            // print the (mutated) program to stdout
	Encoding    script.Encoding // program file encoding
	List        bool            // list the built-in programs and exit
	ShowHelp    bool
}

// boolFlags never take a separate value argument.
var boolFlags = map[string]bool{
	"-h": true, "--h": true, "-help": true, "--help": true,
	"-headless": true, "--headless": true,
	"-print": true, "--print": true,
	"-list": true, "--list": true,
}

// ParseArgs parses args (without the program name) into a Config.
// Command-line flags take precedence over environment variables.
func ParseArgs(args []string) (*Config, error) {
	// flags first, positional arguments after
	reorderedArgs := reorderArgs(args)

	fs := flag.NewFlagSet("hyperlines", flag.ContinueOnError)

	config := &Config{}

	var timeoutSec int
	var encoding string
	fs.IntVar(&timeoutSec, "timeout", 0, "close the preview after this many seconds")
	fs.IntVar(&timeoutSec, "t", 0, "close the preview after this many seconds (shorthand)")
	fs.StringVar(&config.LogLevel, "log-level", "info", "log level (debug, info, warn, error)")
	fs.StringVar(&config.LogLevel, "l", "info", "log level (shorthand)")
	fs.BoolVar(&config.Headless, "headless", false, "do not open a window")
	fs.IntVar(&config.MaxSteps, "max-steps", 0, "block invocations per run")
	fs.IntVar(&config.MaxSteps, "s", 0, "block invocations per run (shorthand)")
	fs.Uint64Var(&config.Seed, "seed", 0, "mutation seed (0 picks one)")
	fs.IntVar(&config.Mutations, "mutations", 0, "mutations applied before running")
	fs.IntVar(&config.Mutations, "m", 0, "mutations applied before running (shorthand)")
	fs.StringVar(&config.SVGPath, "svg", "", "write the output to an SVG file")
	fs.StringVar(&config.PNGPath, "png", "", "write the output to a PNG file")
	fs.BoolVar(&config.Print, "print", false, "print the program that was run")
	fs.StringVar(&encoding, "encoding", "auto", "program file encoding (auto, utf8, sjis)")
	fs.BoolVar(&config.List, "list", false, "list the built-in programs")
	fs.BoolVar(&config.ShowHelp, "help", false, "show help")
	fs.BoolVar(&config.ShowHelp, "h", false, "show help (shorthand)")

	if err := fs.Parse(reorderedArgs); err != nil {
		return nil, err
	}

	if !config.Headless {
		if headlessEnv := os.Getenv("HEADLESS"); headlessEnv != "" {
			config.Headless = headlessEnv == "1" || strings.ToLower(headlessEnv) == "true"
		}
	}

	if timeoutSec == 0 {
		if timeoutEnv := os.Getenv("TIMEOUT"); timeoutEnv != "" {
			if t, err := strconv.Atoi(timeoutEnv); err == nil && t > 0 {
				timeoutSec = t
			}
		}
	}

	if config.LogLevel == "info" {
		if logLevelEnv := os.Getenv("LOG_LEVEL"); logLevelEnv != "" {
			config.LogLevel = strings.ToLower(logLevelEnv)
		}
	}

	if config.MaxSteps == 0 {
		config.MaxSteps = vm.DefaultMaxSteps
		if stepsEnv := os.Getenv("MAX_STEPS"); stepsEnv != "" {
			if n, err := strconv.Atoi(stepsEnv); err == nil && n > 0 {
				config.MaxSteps = n
			}
		}
	}

	if config.Seed == 0 {
		if seedEnv := os.Getenv("SEED"); seedEnv != "" {
			if s, err := strconv.ParseUint(seedEnv, 10, 64); err == nil {
				config.Seed = s
			}
		}
	}

	if timeoutSec < 0 {
		return nil, fmt.Errorf("timeout must be non-negative, got %d", timeoutSec)
	}
	config.Timeout = time.Duration(timeoutSec) * time.Second

	if config.MaxSteps < 0 {
		return nil, fmt.Errorf("max-steps must be positive, got %d", config.MaxSteps)
	}
	if config.Mutations < 0 {
		return nil, fmt.Errorf("mutations must be non-negative, got %d", config.Mutations)
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[config.LogLevel] {
		return nil, fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", config.LogLevel)
	}

	enc, err := script.ParseEncoding(encoding)
	if err != nil {
		return nil, err
	}
	config.Encoding = enc

	if fs.NArg() > 1 {
		return nil, fmt.Errorf("expected at most one program file, got %d", fs.NArg())
	}
	if fs.NArg() == 1 {
		config.ProgramPath = fs.Arg(0)
	}

	return config, nil
}

// reorderArgs moves flags (and their values) ahead of positional
// arguments so flags may follow the program file.
func reorderArgs(args []string) []string {
	var flags []string
	var positional []string

	for i := 0; i < len(args); i++ {
		arg := args[i]

		if len(arg) > 0 && arg[0] == '-' {
			flags = append(flags, arg)

			// "-t 5": the value is the next argument unless the flag is a
			// bool or carries its value after '='.
			if !boolFlags[arg] && !strings.Contains(arg, "=") &&
				i+1 < len(args) && len(args[i+1]) > 0 && args[i+1][0] != '-' {
				i++
				flags = append(flags, args[i])
			}
		} else {
			positional = append(positional, arg)
		}
	}

	return append(flags, positional...)
}

// PrintHelp writes usage information to stdout.
func PrintHelp() {
	fmt.Fprintf(os.Stdout, `hyperlines - generative line drawing

Usage:
  hyperlines [options] [program-file]

Arguments:
  program-file    a .hl program file or the name of a built-in program
                  (optional); without one the particles example runs

Options:
  -t, --timeout <seconds>     close the preview after this many seconds (default: never)
  -l, --log-level <level>     log level: debug, info, warn, error (default: info)
  --headless                  print the segments instead of opening a window
  -s, --max-steps <n>         block invocations per run (default: %d)
  --seed <n>                  mutation seed (default: from the clock)
  -m, --mutations <n>         mutate the program n times before running
  --svg <path>                write the output as SVG
  --png <path>                write the output as PNG
  --print                     print the program that was run
  --encoding <name>           program encoding: auto, utf8, sjis (default: auto)
  --list                      list the built-in programs
  -h, --help                  show this help

Environment Variables:
  HEADLESS=1                  same as --headless
  TIMEOUT=<seconds>           same as --timeout
  LOG_LEVEL=<level>           same as --log-level
  MAX_STEPS=<n>               same as --max-steps
  SEED=<n>                    same as --seed

Preview keys:
  Space    mutate the program and run it again
  R        go back to the original program
  Esc      quit

Examples:
  hyperlines                              preview the built-in example
  hyperlines grid --svg grid.svg          preview the built-in grid and save as SVG
  hyperlines -m 5 --seed 42 --print       run a reproducible mutation
  HEADLESS=1 hyperlines -s 500 spiral.hl  print segments without a window
`, vm.DefaultMaxSteps)
}
