package jira

import (
	"context"
	"fmt"

	"github.com/fsds-tools/reviewmail/internal/ticket"
)

// Source adapts Client to the ticket.Source interface.
type Source struct {
	Client *Client
	Prefix string
}

// Name identifies the source.
func (s *Source) Name() string { return "jira" }

// Fetch retrieves the issue and maps it to a Record. The API fields are
// taken verbatim; no markup cleanup applies here.
func (s *Source) Fetch(ctx context.Context, number int) (*ticket.Record, error) {
	key := fmt.Sprintf("%s-%d", s.Prefix, number)
	issue, err := s.Client.GetIssue(ctx, key)
	if err != nil {
		return nil, err
	}

	author := issue.Fields.Reporter.DisplayName
	if author == "" {
		author = "Unknown"
	}

	return &ticket.Record{
		Prefix: s.Prefix,
		Number: number,
		Title:  issue.Fields.Summary,
		Author: author,
	}, nil
}
