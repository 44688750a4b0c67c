/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/mikeb26/chessvalidate/collation"
	"github.com/mikeb26/chessvalidate/internal"
	"github.com/mikeb26/chessvalidate/internal/config"
	"github.com/mikeb26/chessvalidate/internal/logging"
	"github.com/mikeb26/chessvalidate/model"
	"github.com/mikeb26/chessvalidate/render"
	"github.com/mikeb26/chessvalidate/report"
	"github.com/mikeb26/chessvalidate/s3store"
	"github.com/mikeb26/chessvalidate/schedule"
	"github.com/mikeb26/chessvalidate/source"
	"golang.org/x/sync/errgroup"
)

var errNoSchedule = errors.New("a --schedule is required")

// newLoader returns a loader whose remote fetches go through the HTTP
// cache. An S3 store is opened when the cache is enabled or an input is
// an s3:// object.
func newLoader(ctx context.Context, cfg *config.Config, logger *logging.Logger,
	uris ...string) (*source.Loader, error) {

	opts := []source.Option{
		source.WithFs(fsys),
		source.WithAuthorizationDelay(cfg.AuthorizationDelay()),
		source.WithLogger(logger),
	}

	needS3 := cfg.Cache.Enabled
	for _, uri := range uris {
		if strings.HasPrefix(uri, "s3://") {
			needS3 = true
		}
	}
	var store *s3store.Store
	if needS3 {
		bucket := ""
		if cfg.Cache.Enabled {
			bucket = cfg.Cache.Bucket
		}
		store = s3store.New(ctx, bucket, s3store.WithGzip(true), s3store.WithLogger(logger))
		if err := store.Init(); err != nil {
			return nil, err
		}
		opts = append(opts, source.WithS3(store))
	}

	if cfg.Cache.Enabled {
		opts = append(opts, source.WithHTTPClient(internal.NewCachedHTTPClient(store, cfg.Cache.MaxAge)))
	} else {
		opts = append(opts, source.WithHTTPClient(internal.NewCachedHTTPClient(nil, cfg.Cache.MaxAge)))
	}

	return source.NewLoader(opts...), nil
}

// loadAll reads every uri concurrently, results in uri order.
func loadAll(ctx context.Context, loader *source.Loader, uris ...string) ([][]model.Line, error) {
	ret := make([][]model.Line, len(uris))
	g, gctx := errgroup.WithContext(ctx)
	for idx, uri := range uris {
		g.Go(func() error {
			lines, err := loader.Load(gctx, uri)
			if err != nil {
				return err
			}
			ret[idx] = lines
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return ret, nil
}

// collate loads the schedule and results and collates them.
func collate(ctx context.Context, in *inputFlags, cfg *config.Config,
	logger *logging.Logger) (*collation.Collation, error) {

	if *in.schedule == "" {
		return nil, errNoSchedule
	}
	loader, err := newLoader(ctx, cfg, logger, *in.schedule, *in.results)
	if err != nil {
		return nil, err
	}
	docs, err := loadAll(ctx, loader, *in.schedule, *in.results)
	if err != nil {
		return nil, err
	}

	s := schedule.Build(docs[0], schedule.WithLogger(logger))
	r := report.Build(docs[1], report.WithLogger(logger))
	return collation.Collate(s, r, collation.WithLogger(logger)), nil
}

func mustCollate(ctx context.Context, fs *flag.FlagSet, in *inputFlags, cfg *config.Config,
	logger *logging.Logger) *collation.Collation {

	c, err := collate(ctx, in, cfg, logger)
	if err != nil {
		if errors.Is(err, errNoSchedule) {
			fmt.Fprintln(os.Stderr, "Please provide a --schedule.")
			fs.Usage()
			os.Exit(1)
		}
		log.Fatalf("Error loading %v: %v", fs.Name(), err)
	}
	return c
}

// collateCommand runs a command that writes part of the collated report.
func collateCommand(ctx context.Context, name string, args []string,
	write func(io.Writer, *collation.Collation) error) {

	fs := flag.NewFlagSet(name, flag.ExitOnError)
	in := addInputFlags(fs)
	parseFlags(fs, args)

	cfg, logger := setup(*in.config)
	defer func() { _ = logger.Sync() }()

	c := mustCollate(ctx, fs, in, cfg, logger)
	if err := write(stdout, c); err != nil {
		log.Fatalf("Error writing %v: %v", name, err)
	}
}

func handleValidate(ctx context.Context, args []string) {
	collateCommand(ctx, "validate", args, render.ValidationReport)
}

func handleMatches(ctx context.Context, args []string) {
	collateCommand(ctx, "matches", args, render.Matches)
}

func handlePlayers(ctx context.Context, args []string) {
	collateCommand(ctx, "players", args, render.Players)
}

func handleUnfinished(ctx context.Context, args []string) {
	collateCommand(ctx, "unfinished", args, render.Unfinished)
}

func handleFixtures(ctx context.Context, args []string) {
	collateCommand(ctx, "fixtures", args, render.FixturesNotPlayed)
}

func handleExport(ctx context.Context, args []string) {
	collateCommand(ctx, "export", args, render.WriteTabular)
}

// checkDocument runs a command that reads and checks a single document.
func checkDocument(ctx context.Context, name string, args []string,
	write func(io.Writer, []model.Line, *logging.Logger)) {

	fs := flag.NewFlagSet(name, flag.ExitOnError)
	configPath := fs.String("config", "", "Configuration file (default chessvalidate.yaml)")
	input := fs.String("input", "-", "File, URL or s3://bucket/key; - for stdin")
	parseFlags(fs, args)

	cfg, logger := setup(*configPath)
	defer func() { _ = logger.Sync() }()

	loader, err := newLoader(ctx, cfg, logger, *input)
	if err != nil {
		log.Fatalf("Error loading %v: %v", name, err)
	}
	lines, err := loader.Load(ctx, *input)
	if err != nil {
		log.Fatalf("Error loading %v: %v", name, err)
	}
	write(stdout, lines, logger)
}

func handleSchedule(ctx context.Context, args []string) {
	checkDocument(ctx, "schedule", args, writeScheduleCheck)
}

func handleResults(ctx context.Context, args []string) {
	checkDocument(ctx, "results", args, writeResultsCheck)
}

func writeErrors(w io.Writer, errs model.ErrorLog) {
	if len(errs) == 0 {
		fmt.Fprintln(w, "No errors found.")
		return
	}
	for _, e := range errs {
		if e.Message == "" {
			fmt.Fprintln(w)
			continue
		}
		fmt.Fprintf(w, "%v\t%v\n", e.Source.String(), e.Message)
	}
}

func writeScheduleCheck(w io.Writer, lines []model.Line, logger *logging.Logger) {
	s := schedule.Build(lines, schedule.WithLogger(logger))
	fmt.Fprintf(w, "%v %v %v\n", s.Name, s.StartDate, s.EndDate)
	for _, section := range s.ReportOrder {
		fmt.Fprintf(w, "  %v %v", s.Sections[section], section)
		if summary, ok := s.Summary[section]; ok {
			fmt.Fprintf(w, ": %d teams, %d matches", len(summary.Teams), summary.Matches)
		}
		if players, ok := s.Players[section]; ok {
			fmt.Fprintf(w, ": %d players", len(players))
		}
		fmt.Fprintln(w)
	}
	writeErrors(w, s.Errors)
}

func writeResultsCheck(w io.Writer, lines []model.Line, logger *logging.Logger) {
	r := report.Build(lines, report.WithLogger(logger))
	fmt.Fprintln(w, r.Name)
	counts := make(map[string]int)
	for _, m := range r.MatchResults {
		counts[m.Competition]++
	}
	for _, section := range r.ReportOrder {
		fmt.Fprintf(w, "  %v %v", r.Sections[section], section)
		if n := counts[section]; n > 0 {
			fmt.Fprintf(w, ": %d match reports", n)
		}
		fmt.Fprintln(w)
	}
	writeErrors(w, r.Errors)
}
