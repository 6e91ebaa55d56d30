// Package main is the entry point for the shrimp editor.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/gdamore/tcell/v2"

	"github.com/shrub4thedub/shrimp/internal/app"
	"github.com/shrub4thedub/shrimp/internal/config"
	"github.com/shrub4thedub/shrimp/internal/logger"
)

var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	opts, logLevel := parseFlags()

	logDir, err := config.Dir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "shrimp: %v\n", err)
		return 1
	}
	closeLog, err := logger.Init(logDir, logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "shrimp: %v\n", err)
		return 1
	}
	defer closeLog()

	application, err := app.New(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "shrimp: %v\n", err)
		return 1
	}
	defer application.Close()

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "shrimp: terminal: %v\n", err)
		return 1
	}

	if err := application.Run(screen); err != nil {
		fmt.Fprintf(os.Stderr, "shrimp: %v\n", err)
		return 1
	}
	return 0
}

func parseFlags() (app.Options, slog.Level) {
	var opts app.Options
	var debug bool
	var showVersion bool

	flag.StringVar(&opts.ConfigPath, "config", "", "path to config file")
	flag.StringVar(&opts.Dir, "dir", "", "file tree root (defaults to the working directory)")
	flag.BoolVar(&debug, "debug", false, "enable debug logging")
	flag.BoolVar(&showVersion, "version", false, "print version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "shrimp - a modal text editor\n\n")
		fmt.Fprintf(os.Stderr, "Usage: shrimp [options] [files...]\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if showVersion {
		fmt.Printf("shrimp %s\n", version)
		os.Exit(0)
	}

	opts.Files = flag.Args()

	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return opts, level
}
