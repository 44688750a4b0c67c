/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/mikeb26/chessvalidate/eventctx"
	"github.com/mikeb26/chessvalidate/internal/logging"
	"github.com/mikeb26/chessvalidate/model"
	"github.com/mikeb26/chessvalidate/render"
)

var errMissingColumn = errors.New("tabular: missing column")

// requiredColumns must appear in the header row of tabular input. The
// other columns of render.TabularColumns are optional.
var requiredColumns = []string{"Section", "HomeTeam", "AwayTeam", "HomePlayer", "AwayPlayer", "Result"}

// readTabular reads CSV with a header row naming render.TabularColumns,
// in any order, and returns the event name of the first row and an item
// per row.
func readTabular(r io.Reader, tag string) (string, []*eventctx.EventData, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return "", nil, errors.Wrapf(err, "tabular: reading header of %v", tag)
	}
	column := make(map[string]int)
	for idx, name := range header {
		for _, known := range render.TabularColumns {
			if strings.EqualFold(strings.TrimSpace(name), known) {
				column[known] = idx
			}
		}
	}
	for _, name := range requiredColumns {
		if _, ok := column[name]; !ok {
			return "", nil, errors.Wrapf(errMissingColumn, "%v in %v", name, tag)
		}
	}

	event := ""
	var items []*eventctx.EventData
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", nil, errors.Wrapf(err, "tabular: reading %v", tag)
		}
		field := func(name string) string {
			idx, ok := column[name]
			if !ok || idx >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[idx])
		}
		if event == "" {
			event = field("Event")
		}
		d := &eventctx.EventData{
			DataTag:          tag,
			Found:            eventctx.FoundCSVTabular,
			Raw:              strings.Join(record, ","),
			Competition:      field("Section"),
			CompetitionRound: field("Round"),
			TeamOne:          field("HomeTeam"),
			TeamTwo:          field("AwayTeam"),
			ResultDate:       field("Date"),
			NameOne:          field("HomePlayer"),
			NameTwo:          field("AwayPlayer"),
			Score:            field("Result"),
			Colour:           field("HPColour"),
			TeamOneScore:     field("HTScore"),
			TeamTwoScore:     field("ATScore"),
			FixtureDay:       field("Day"),
		}
		if board := field("Board"); board != "" {
			d.Numbers = []string{board}
		}
		items = append(items, d)
	}
	return event, items, nil
}

// adaptTabular converts tabular items to results text. Problems found in
// the rows are returned alongside.
func adaptTabular(event string, items []*eventctx.EventData, truncate bool,
	logger *logging.Logger) ([]model.Line, []eventctx.TabularProblem) {

	c := eventctx.New(eventctx.Identity{Name: event},
		eventctx.WithLogger(logger), eventctx.WithTruncateLongNames(truncate))
	for _, d := range items {
		c.Add(d)
	}
	problems := c.ConvertTabularData()
	return c.ResultsText(), problems
}

func handleAdapt(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("adapt", flag.ExitOnError)
	configPath := fs.String("config", "", "Configuration file (default chessvalidate.yaml)")
	input := fs.String("input", "-", "CSV file of games; - for stdin")
	event := fs.String("event", "", "Event name when the CSV has no Event column")
	parseFlags(fs, args)

	cfg, logger := setup(*configPath)
	defer func() { _ = logger.Sync() }()

	var r io.Reader = os.Stdin
	if *input != "-" {
		f, err := fsys.Open(*input)
		if err != nil {
			log.Fatalf("Error opening %v: %v", *input, err)
		}
		defer f.Close()
		r = f
	}
	name, items, err := readTabular(r, *input)
	if err != nil {
		log.Fatalf("Error reading %v: %v", *input, err)
	}
	if *event != "" {
		name = *event
	}
	if name == "" {
		fmt.Fprintln(os.Stderr, "Please provide an --event name.")
		fs.Usage()
		os.Exit(1)
	}

	lines, problems := adaptTabular(name, items, cfg.TruncateLongNames, logger)
	for _, p := range problems {
		fmt.Fprintln(os.Stderr, p.String())
	}
	for _, l := range lines {
		fmt.Fprintln(stdout, l.Text)
	}
}
