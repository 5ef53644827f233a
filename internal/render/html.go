package render

import (
	"fmt"
	"html"
	"regexp"
	"strings"
)

var (
	boldRe = regexp.MustCompile(`\*\*(.*?)\*\*`)
	linkRe = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)
)

// Document converts filled plain text into a self-contained HTML page.
//
// The order of the passes matters: escaping must come first so the
// markdown translation never double-encodes, and indentation has to be
// preserved before newlines become <br> tags. Malformed markdown
// (unmatched ** or brackets) is left as literal text.
func Document(text, pageTitle string) string {
	body := html.EscapeString(text)
	body = preserveIndent(body)
	body = boldRe.ReplaceAllString(body, "<strong>$1</strong>")
	body = linkRe.ReplaceAllString(body, `<a href="$2">$1</a>`)
	body = strings.ReplaceAll(body, "\n", "<br>\n")

	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <title>%s</title>
    <style>
        body {
            font-family: Verdana, sans-serif;
            font-size: small;
            margin: 20px;
        }
        a {
            color: blue;
            text-decoration: underline;
        }
        strong {
            font-weight: bold;
        }
    </style>
</head>
<body>
%s
</body>
</html>`, html.EscapeString(pageTitle), body)
}

// preserveIndent replaces each leading space on a line with a
// non-breaking space entity so HTML rendering keeps the indentation.
func preserveIndent(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		trimmed := strings.TrimLeft(line, " ")
		if n := len(line) - len(trimmed); n > 0 {
			lines[i] = strings.Repeat("&nbsp;", n) + trimmed
		}
	}
	return strings.Join(lines, "\n")
}
