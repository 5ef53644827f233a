// Package render fills email templates and converts the result to HTML.
package render

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/fsds-tools/reviewmail/internal/logging"
	"github.com/fsds-tools/reviewmail/internal/ticket"
)

// ErrTemplateNotFound indicates the template file was not found.
var ErrTemplateNotFound = errors.New("template not found")

// Fields holds the values substituted into templates. The token names
// are fixed: {{author}}, {{title}}, {{fsds_number}}, {{review_deadline}}
// and {{signature}}.
type Fields struct {
	Author         string
	Title          string
	TicketKey      string // substituted for {{fsds_number}}
	ReviewDeadline string
	Signature      string
}

// FieldsFromRecord maps a ticket record onto template fields.
func FieldsFromRecord(rec *ticket.Record) Fields {
	return Fields{
		Author:         rec.Author,
		Title:          rec.Title,
		TicketKey:      rec.Key(),
		ReviewDeadline: rec.ReviewDeadline,
		Signature:      rec.Signature,
	}
}

var placeholderRe = regexp.MustCompile(`\{\{\s*([a-zA-Z_][a-zA-Z0-9_]*)\s*\}\}`)

// Fill substitutes the recognized placeholders in a template. Tokens
// that are not recognized are left verbatim; a warning is logged for
// each so typos in templates surface without aborting the run.
func Fill(template string, f Fields) string {
	replacer := strings.NewReplacer(
		"{{author}}", f.Author,
		"{{title}}", f.Title,
		"{{fsds_number}}", f.TicketKey,
		"{{review_deadline}}", f.ReviewDeadline,
		"{{signature}}", f.Signature,
	)
	out := replacer.Replace(template)

	for _, m := range placeholderRe.FindAllStringSubmatch(out, -1) {
		logging.Warn("unrecognized template placeholder left as-is", "placeholder", m[1])
	}
	return out
}

// LoadTemplate reads a template file.
func LoadTemplate(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", ErrTemplateNotFound, path)
		}
		return "", err
	}
	return string(data), nil
}
