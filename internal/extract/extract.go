// Package extract pulls ticket metadata out of saved Jira page exports.
//
// Jira sets the page title from a script (`document.title = "..."`) and
// lists the reporter in a definition list, so extraction is a mix of a
// regex over the raw markup and a DOM walk for the Reporter field.
package extract

import (
	"bytes"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/net/html"

	"github.com/fsds-tools/reviewmail/internal/ticket"
)

// ErrExtract indicates a required structure was missing from the markup.
var ErrExtract = errors.New("could not extract ticket info")

// UnknownAuthor is the fallback when no reporter name is present.
const UnknownAuthor = "Unknown"

var titleAssignRe = regexp.MustCompile(`document\.title\s*=\s*"([^"]*)"`)

// Extractor parses a single tracker's page exports.
type Extractor struct {
	// Prefix is the ticket key prefix, e.g. "FSDS".
	Prefix string
	// SiteSuffix is the trailing page-title decoration, e.g. "OCC Jira".
	SiteSuffix string
}

// Extract parses the markup of a ticket page into a Record.
func (e *Extractor) Extract(markup []byte) (*ticket.Record, error) {
	m := titleAssignRe.FindSubmatch(markup)
	if m == nil {
		return nil, fmt.Errorf("%w: document.title assignment not found", ErrExtract)
	}
	fullTitle := string(m[1])

	tagRe := regexp.MustCompile(`\[` + regexp.QuoteMeta(e.Prefix) + `-(\d+)\]`)
	tag := tagRe.FindStringSubmatch(fullTitle)
	if tag == nil {
		return nil, fmt.Errorf("%w: no [%s-<n>] tag in page title %q", ErrExtract, e.Prefix, fullTitle)
	}
	number, err := strconv.Atoi(tag[1])
	if err != nil {
		return nil, fmt.Errorf("%w: ticket number %q: %v", ErrExtract, tag[1], err)
	}

	author, err := e.reporterName(markup)
	if err != nil {
		return nil, err
	}

	return &ticket.Record{
		Prefix: e.Prefix,
		Number: number,
		Title:  e.cleanTitle(fullTitle),
		Author: author,
	}, nil
}

// cleanTitle strips the leading ticket tag and the trailing site suffix.
func (e *Extractor) cleanTitle(fullTitle string) string {
	leading := regexp.MustCompile(`^\[` + regexp.QuoteMeta(e.Prefix) + `-\d+\]\s*`)
	title := leading.ReplaceAllString(fullTitle, "")
	if e.SiteSuffix != "" {
		trailing := regexp.MustCompile(`\s*-\s*` + regexp.QuoteMeta(e.SiteSuffix) + `$`)
		title = trailing.ReplaceAllString(title, "")
	}
	return strings.TrimSpace(title)
}

// reporterName locates the "Reporter:" definition-list entry and picks
// the line most likely to be a person's name.
func (e *Extractor) reporterName(markup []byte) (string, error) {
	doc, err := html.Parse(bytes.NewReader(markup))
	if err != nil {
		return "", fmt.Errorf("%w: parse markup: %v", ErrExtract, err)
	}

	dt := findDT(doc, "Reporter:")
	if dt == nil {
		return "", fmt.Errorf("%w: Reporter field not found", ErrExtract)
	}

	dd := nextSiblingElement(dt, "dd")
	if dd == nil {
		return "", fmt.Errorf("%w: reporter value not found", ErrExtract)
	}

	return pickName(textLines(dd)), nil
}

// findDT walks the tree for a dt element whose text is exactly label.
func findDT(n *html.Node, label string) *html.Node {
	if n.Type == html.ElementNode && n.Data == "dt" {
		if strings.TrimSpace(nodeText(n)) == label {
			return n
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findDT(c, label); found != nil {
			return found
		}
	}
	return nil
}

// nextSiblingElement returns the first following sibling element with
// the given tag name.
func nextSiblingElement(n *html.Node, tag string) *html.Node {
	for s := n.NextSibling; s != nil; s = s.NextSibling {
		if s.Type == html.ElementNode && s.Data == tag {
			return s
		}
	}
	return nil
}

// nodeText concatenates all text beneath n.
func nodeText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

// textLines returns the trimmed, non-empty lines of text beneath n.
// Each text node is its own line, so the reporter name and any button
// text ("View Profile" etc.) stay separable even without newlines in
// the source.
func textLines(n *html.Node) []string {
	var chunks []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			chunks = append(chunks, n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)

	var lines []string
	for _, chunk := range chunks {
		for _, line := range strings.Split(chunk, "\n") {
			line = strings.TrimSpace(line)
			if line != "" {
				lines = append(lines, line)
			}
		}
	}
	return lines
}

// pickName selects the first line that looks like a personal name: at
// least two words, with at least one of the first two capitalized.
// Falls back to the first non-empty line, then UnknownAuthor.
func pickName(lines []string) string {
	for _, line := range lines {
		words := strings.Fields(line)
		if len(words) < 2 {
			continue
		}
		if startsUpper(words[0]) || startsUpper(words[1]) {
			return line
		}
	}
	if len(lines) > 0 {
		return lines[0]
	}
	return UnknownAuthor
}

func startsUpper(word string) bool {
	r, _ := utf8.DecodeRuneInString(word)
	return unicode.IsUpper(r)
}
