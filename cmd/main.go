package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"

	"stackvm/internal/config"
	"stackvm/internal/logger"
	"stackvm/internal/runner"
	"stackvm/pkg/color"

	"github.com/charmbracelet/log"
	"github.com/tebeka/atexit"
)

// Main entry point for the stack VM.
func main() {
	var (
		help       bool
		configFile string
		flags      config.Config
	)

	flag.BoolVar(&help, "h", false, "Show help")
	flag.StringVar(&configFile, "c", "", "YAML config file")
	flag.BoolVar(&flags.Verbose, "v", false, "Verbose mode")
	flag.BoolVar(&flags.NoColor, "n", false, "No color")
	flag.BoolVar(&flags.Listing, "l", false, "Print the resolved program before running")
	flag.BoolVar(&flags.Trace, "t", false, "Trace every step (needs -v)")
	flag.IntVar(&flags.MaxSteps, "s", 0, "Maximum steps, 0 for unlimited")

	flag.Parse()
	args := flag.Args()

	if help {
		fmt.Printf("Usage: %s [options] <file>\n", os.Args[0])
		fmt.Println("Options:")
		flag.PrintDefaults()
		return
	}

	cfg := config.Config{}
	if configFile != "" {
		var err error
		if cfg, err = config.Load(configFile); err != nil {
			logger.Init(flags.Verbose, flags.NoColor)
			log.Error("Invalid config", "error", err)
			atexit.Exit(2)
		}
	}

	// flags given on the command line win over the config file
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "v":
			cfg.Verbose = flags.Verbose
		case "n":
			cfg.NoColor = flags.NoColor
		case "l":
			cfg.Listing = flags.Listing
		case "t":
			cfg.Trace = flags.Trace
		case "s":
			cfg.MaxSteps = flags.MaxSteps
		}
	})

	logger.Init(cfg.Verbose, cfg.NoColor)
	if err := cfg.Validate(); err != nil {
		log.Error("Invalid options", "error", err)
		atexit.Exit(2)
	}

	if cfg.NoColor {
		color.EnableColor(false)
	}

	if len(args) == 0 {
		log.Error("No input file provided", "help", fmt.Sprintf("%s -h", os.Args[0]))
		atexit.Exit(2)
	}

	out := bufio.NewWriter(os.Stdout)
	atexit.Register(func() { out.Flush() })

	r := runner.Runner{
		Config:     cfg,
		SourceFile: args[0],
		Out:        out,
	}

	if err := r.Run(); err != nil {
		out.Flush()
		fmt.Fprintln(os.Stderr, color.Error(err.Error()))
		atexit.Exit(1)
	}

	atexit.Exit(0)
}
