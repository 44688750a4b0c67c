/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	_ "embed"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/mikeb26/chessvalidate/internal"
	"github.com/mikeb26/chessvalidate/internal/config"
	"github.com/mikeb26/chessvalidate/internal/logging"
	"github.com/spf13/afero"
)

//go:embed help.txt
var helpText string

// cmdHandler defines the signature for command handler functions.
type cmdHandler func(ctx context.Context, args []string)

// commands maps command names to their respective handler functions.
var commands = map[string]cmdHandler{
	"help":       handleHelp,
	"version":    handleVersion,
	"validate":   handleValidate,
	"schedule":   handleSchedule,
	"results":    handleResults,
	"matches":    handleMatches,
	"players":    handlePlayers,
	"unfinished": handleUnfinished,
	"fixtures":   handleFixtures,
	"export":     handleExport,
	"adapt":      handleAdapt,
	"post":       handlePost,
}

// stdout and fsys are replaced by tests.
var (
	stdout io.Writer = os.Stdout
	fsys             = afero.NewOsFs()
)

func main() {
	ctx := context.Background()

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}
	cmd := os.Args[1]
	if handler, ok := commands[cmd]; ok {
		handler(ctx, os.Args[2:])
	} else {
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(stdout, "%v", helpText)
}

func handleHelp(ctx context.Context, args []string) {
	usage()
}

func handleVersion(ctx context.Context, args []string) {
	fmt.Fprintf(stdout, "%v %v\n", internal.AppName, internal.Version())
}

// inputFlags are the flags shared by every command that reads a schedule
// and results.
type inputFlags struct {
	config   *string
	schedule *string
	results  *string
}

func addInputFlags(fs *flag.FlagSet) *inputFlags {
	return &inputFlags{
		config:   fs.String("config", "", "Configuration file (default chessvalidate.yaml)"),
		schedule: fs.String("schedule", "", "Schedule file, URL or s3://bucket/key"),
		results:  fs.String("results", "-", "Results file, URL or s3://bucket/key; - for stdin"),
	}
}

// setup loads the configuration and installs the process logger.
func setup(configPath string) (*config.Config, *logging.Logger) {
	cfg, err := config.Load(fsys, configPath)
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}
	logger := logging.New(cfg.Log.Format, cfg.Log.Level)
	logging.SetDefault(logger)
	return cfg, logger
}

func parseFlags(fs *flag.FlagSet, args []string) {
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(os.Stderr, "Unexpected arguments: %v\n", fs.Args())
		fs.Usage()
		os.Exit(1)
	}
}
