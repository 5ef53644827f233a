package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/glamour"

	"github.com/fsds-tools/reviewmail/internal/browser"
	"github.com/fsds-tools/reviewmail/internal/email"
	"github.com/fsds-tools/reviewmail/internal/extract"
	"github.com/fsds-tools/reviewmail/internal/jira"
	"github.com/fsds-tools/reviewmail/internal/logging"
	"github.com/fsds-tools/reviewmail/internal/render"
	"github.com/fsds-tools/reviewmail/internal/ticket"
)

// resolveSource picks the ticket source for the given argument: digits
// mean the live Jira API, anything else is a saved page export, and an
// empty argument reads markup from stdin.
func resolveSource(arg string) (ticket.Source, int, error) {
	ext := extract.Extractor{
		Prefix:     cfg.Tracker.Prefix,
		SiteSuffix: cfg.Tracker.SiteSuffix,
	}

	if arg == "" {
		return &extract.FileSource{Extractor: ext, Reader: os.Stdin}, 0, nil
	}

	if n, err := strconv.Atoi(arg); err == nil {
		if n <= 0 {
			return nil, 0, fmt.Errorf("ticket number must be positive, got %d", n)
		}
		client, err := jira.NewClient(cfg.Jira.BaseURL, cfg.Jira.TokenPath)
		if err != nil {
			return nil, 0, err
		}
		return &jira.Source{Client: client, Prefix: cfg.Tracker.Prefix}, n, nil
	}

	return &extract.FileSource{Extractor: ext, Path: arg}, 0, nil
}

func fetchRecord(arg string) (*ticket.Record, error) {
	src, number, err := resolveSource(arg)
	if err != nil {
		return nil, err
	}

	rec, err := src.Fetch(context.Background(), number)
	if err != nil {
		return nil, err
	}
	logging.Debug("fetched ticket", "source", src.Name(), "key", rec.Key())
	return rec, nil
}

func runReview(arg string, open bool) error {
	rec, err := fetchRecord(arg)
	if err != nil {
		return err
	}

	builder := email.NewBuilder(cfg)
	builder.Enrich(rec)
	printSummary(rec)

	if err := os.MkdirAll(cfg.Output.Dir, 0755); err != nil {
		return err
	}
	sidecarPath, err := rec.Save(cfg.Output.Dir)
	if err != nil {
		return err
	}

	_, htmlDoc, err := builder.Review(rec)
	if err != nil {
		return err
	}

	outPath := builder.ReviewOutputPath(rec)
	if err := os.WriteFile(outPath, []byte(htmlDoc), 0644); err != nil {
		return err
	}

	printWritten("Ticket info", sidecarPath)
	printWritten("HTML email", outPath)

	if open {
		if err := browser.Open(outPath); err != nil {
			logging.Warn("could not open browser", "error", err)
		}
	}
	return nil
}

func runApproved(arg string, htmlOut bool) error {
	number, err := strconv.Atoi(arg)
	if err != nil || number <= 0 {
		return fmt.Errorf("ticket number must be a positive integer, got %q", arg)
	}

	rec, err := ticket.Load(cfg.Output.Dir, cfg.Tracker.Prefix, number)
	if err != nil {
		return err
	}

	builder := email.NewBuilder(cfg)
	text, err := builder.Approved(rec)
	if err != nil {
		return err
	}

	if htmlOut {
		outPath := builder.ApprovedOutputPath(rec)
		doc := render.Document(text, cfg.Output.PageTitle)
		if err := os.WriteFile(outPath, []byte(doc), 0644); err != nil {
			return err
		}
		printWritten("HTML email", outPath)
		return nil
	}

	fmt.Println(text)
	return nil
}

func runPreview(arg string) error {
	rec, err := fetchRecord(arg)
	if err != nil {
		return err
	}

	builder := email.NewBuilder(cfg)
	builder.Enrich(rec)

	text, _, err := builder.Review(rec)
	if err != nil {
		return err
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return err
	}

	out, err := r.Render(text)
	if err != nil {
		return err
	}
	fmt.Print(out)
	return nil
}
