// Package email composes notification emails from ticket records.
package email

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsds-tools/reviewmail/internal/config"
	"github.com/fsds-tools/reviewmail/internal/deadline"
	"github.com/fsds-tools/reviewmail/internal/render"
	"github.com/fsds-tools/reviewmail/internal/ticket"
)

// Builder runs the fill-and-render pipeline for one ticket.
type Builder struct {
	cfg *config.Config
	now func() time.Time // overridable in tests
}

// NewBuilder creates a builder for the given config.
func NewBuilder(cfg *config.Config) *Builder {
	return NewBuilderAt(cfg, time.Now)
}

// NewBuilderAt creates a builder with a fixed clock, for tests.
func NewBuilderAt(cfg *config.Config, now func() time.Time) *Builder {
	return &Builder{cfg: cfg, now: now}
}

// Enrich stamps the computed fields onto the record: the business-day
// review deadline and the sender signature.
func (b *Builder) Enrich(rec *ticket.Record) {
	days := b.cfg.Review.DeadlineDays
	if days <= 0 {
		days = deadline.DefaultDays
	}
	rec.ReviewDeadline = deadline.Format(deadline.Business(b.now(), days))
	rec.Signature = b.cfg.Review.Signature
}

// Review fills the review-request template and renders the HTML
// document. Returns both the filled plain text and the HTML.
func (b *Builder) Review(rec *ticket.Record) (text, htmlDoc string, err error) {
	tmpl, err := render.LoadTemplate(b.cfg.Templates.Review)
	if err != nil {
		return "", "", err
	}
	text = render.Fill(tmpl, render.FieldsFromRecord(rec))
	return text, render.Document(text, b.cfg.Output.PageTitle), nil
}

// Approved fills the approval template. Deadline and signature come
// from the record as loaded; a render-only invocation must not move
// the deadline.
func (b *Builder) Approved(rec *ticket.Record) (string, error) {
	tmpl, err := render.LoadTemplate(b.cfg.Templates.Approved)
	if err != nil {
		return "", err
	}
	return render.Fill(tmpl, render.FieldsFromRecord(rec)), nil
}

// ReviewOutputPath returns where the review email HTML is written.
func (b *Builder) ReviewOutputPath(rec *ticket.Record) string {
	return filepath.Join(b.cfg.Output.Dir, fmt.Sprintf("review_email_%s.html", rec.Key()))
}

// ApprovedOutputPath returns where the approved email HTML is written
// when --html is requested.
func (b *Builder) ApprovedOutputPath(rec *ticket.Record) string {
	return filepath.Join(b.cfg.Output.Dir, rec.Key()+"-approved-email.html")
}
