/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"log"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/cockroachdb/errors"
	"github.com/mikeb26/chessvalidate/collation"
	"github.com/mikeb26/chessvalidate/internal"
	"github.com/mikeb26/chessvalidate/internal/logging"
	"github.com/mikeb26/chessvalidate/render"
)

// msgLimit keeps space for the code block markdown around each message.
const msgLimit = 1988

var errNoDiscord = errors.New("discord token and channel are not configured")

type messageSender interface {
	ChannelMessageSend(channelID string, content string,
		options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// splitMessages breaks text into code block messages at line boundaries.
// A single line longer than the limit is cut.
func splitMessages(text string) []string {
	var msgs []string
	var cur strings.Builder
	flush := func() {
		if cur.Len() == 0 {
			return
		}
		msgs = append(msgs, "```\n"+cur.String()+"```")
		cur.Reset()
	}
	for _, line := range strings.SplitAfter(text, "\n") {
		if line == "" {
			continue
		}
		runes := []rune(line)
		if len(runes) > msgLimit {
			line = fmt.Sprintf("%v...\n", string(runes[:msgLimit-4]))
		}
		if cur.Len()+len(line) > msgLimit {
			flush()
		}
		cur.WriteString(line)
	}
	flush()
	return msgs
}

// summary is the part of the validation report posted to a channel.
func summary(c *collation.Collation) (string, error) {
	var buf bytes.Buffer
	parts := []func(*bytes.Buffer) error{
		func(b *bytes.Buffer) error { return render.Errors(b, c) },
		func(b *bytes.Buffer) error { return render.FixturesNotPlayed(b, c) },
		func(b *bytes.Buffer) error { return render.Unfinished(b, c) },
	}
	for idx, part := range parts {
		if idx > 0 {
			buf.WriteString("\n")
		}
		if err := part(&buf); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

func postSummary(sender messageSender, channel string, c *collation.Collation,
	logger *logging.Logger) error {

	text, err := summary(c)
	if err != nil {
		return err
	}
	msgs := splitMessages(text)
	for idx, msg := range msgs {
		if _, err := sender.ChannelMessageSend(channel, msg); err != nil {
			return errors.Wrapf(err, "posting message %d of %d", idx+1, len(msgs))
		}
	}
	logger.Info("posted validation summary", "channel", channel, "messages", len(msgs))
	return nil
}

func handlePost(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("post", flag.ExitOnError)
	in := addInputFlags(fs)
	parseFlags(fs, args)

	cfg, logger := setup(*in.config)
	defer func() { _ = logger.Sync() }()

	if cfg.Discord.Token == "" || cfg.Discord.Channel == "" {
		log.Fatalf("Error posting: %v", errNoDiscord)
	}
	c := mustCollate(ctx, fs, in, cfg, logger)

	client, err := discordgo.New("Bot " + cfg.Discord.Token)
	if err != nil {
		log.Fatalf("Failed to initialize discord client: %v", err)
	}
	client.UserAgent = internal.UserAgent
	if err := postSummary(client, cfg.Discord.Channel, c, logger); err != nil {
		log.Fatalf("Error posting: %v", err)
	}
}
