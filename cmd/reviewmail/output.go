package main

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/fsds-tools/reviewmail/internal/cli"
	"github.com/fsds-tools/reviewmail/internal/ticket"
)

// printSummary shows the extracted ticket fields in a box before any
// files are written, so a bad parse is obvious at a glance.
func printSummary(rec *ticket.Record) {
	rows := [][2]string{
		{"Ticket", rec.Key()},
		{"Title", rec.Title},
		{"Author", rec.Author},
	}
	if rec.ReviewDeadline != "" {
		rows = append(rows, [2]string{"Review by", rec.ReviewDeadline})
	}

	labelWidth := 0
	valueWidth := 0
	for _, row := range rows {
		if w := utf8.RuneCountInString(row[0]); w > labelWidth {
			labelWidth = w
		}
		if w := utf8.RuneCountInString(row[1]); w > valueWidth {
			valueWidth = w
		}
	}
	inner := labelWidth + 2 + valueWidth

	fmt.Println(cli.BoxTopLeft + strings.Repeat(cli.BoxHorizontal, inner+2) + cli.BoxTopRight)
	for _, row := range rows {
		label := padRight(row[0], labelWidth)
		value := padRight(row[1], valueWidth)
		fmt.Printf("%s %s  %s %s\n",
			cli.BoxVertical, cli.Dimmed(label), cli.Bolden(value), cli.BoxVertical)
	}
	fmt.Println(cli.BoxBottomLeft + strings.Repeat(cli.BoxHorizontal, inner+2) + cli.BoxBottomRight)
}

func printWritten(what, path string) {
	fmt.Printf("%s %s: %s\n", cli.GreenText(cli.CheckMark), what, cli.CyanText(path))
}

func padRight(s string, width int) string {
	if n := width - utf8.RuneCountInString(s); n > 0 {
		return s + strings.Repeat(" ", n)
	}
	return s
}
