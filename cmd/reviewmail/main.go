// Command reviewmail turns a Jira ticket into a ready-to-send review
// or approval email. Input is a saved ticket page, stdin, or the live
// Jira API; output is a styled HTML file plus a JSON sidecar that later
// invocations can re-render without refetching.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/fsds-tools/reviewmail/internal/config"
	"github.com/fsds-tools/reviewmail/internal/logging"
)

const version = "0.4.0"

var cfg *config.Config

func main() {
	var err error
	cfg, err = config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	if err := logging.Init(logging.Config{
		Level:     logging.ParseLevel(cfg.Logging.Level),
		SentryDSN: cfg.Logging.SentryDSN,
		Version:   version,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
		os.Exit(1)
	}

	err = rootCmd.Execute()
	logging.Flush(2 * time.Second)
	if err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:     "reviewmail",
	Short:   "Generate review-request emails from Jira tickets",
	Version: version,
	Long: `reviewmail - review-request emails from FSDS tickets.

Given a ticket, reviewmail extracts the number, title and reporter,
computes a business-day review deadline, fills the email template and
writes a styled HTML email ready to paste into a mail client.

Input can be a ticket number (fetched from Jira), a saved HTML export
of the ticket page, or markup piped on stdin.

Examples:
  reviewmail review 189              # fetch FSDS-189 from Jira
  reviewmail review ticket.html      # parse a saved page export
  cat ticket.html | reviewmail review
  reviewmail review 189 --open       # open the result in a browser
  reviewmail approved 189            # approval email from the sidecar
  reviewmail preview 189             # render the email in the terminal`,
	SilenceUsage: true,
}

var reviewCmd = &cobra.Command{
	Use:   "review [ticket-number | html-file]",
	Short: "Generate the review-request email",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		open, _ := cmd.Flags().GetBool("open")
		arg := ""
		if len(args) > 0 {
			arg = args[0]
		}
		return runReview(arg, open)
	},
}

var approvedCmd = &cobra.Command{
	Use:   "approved <ticket-number>",
	Short: "Generate the approval email from a saved sidecar",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		htmlOut, _ := cmd.Flags().GetBool("html")
		return runApproved(args[0], htmlOut)
	},
}

var previewCmd = &cobra.Command{
	Use:   "preview [ticket-number | html-file]",
	Short: "Render the review email in the terminal",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		arg := ""
		if len(args) > 0 {
			arg = args[0]
		}
		return runPreview(arg)
	},
}

func init() {
	reviewCmd.Flags().Bool("open", false, "Open the generated HTML in a browser")
	approvedCmd.Flags().Bool("html", false, "Write an HTML file instead of printing plain text")

	rootCmd.AddCommand(reviewCmd, approvedCmd, previewCmd)
}
