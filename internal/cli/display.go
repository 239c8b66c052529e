package cli

import (
	"fmt"
	"io"
	"strings"
)

// PrintWarningBox prints a boxed warning to w.
func PrintWarningBox(w io.Writer, title string, lines []string) {
	const boxWidth = 68 // Inner content width

	fmt.Fprintf(w, "\n")
	fmt.Fprintf(w, "╔%s╗\n", strings.Repeat("═", boxWidth+2))
	fmt.Fprintf(w, "║ %-*s ║\n", boxWidth, CenterText(title, boxWidth))
	fmt.Fprintf(w, "╠%s╣\n", strings.Repeat("═", boxWidth+2))

	for _, line := range lines {
		if line == "" {
			fmt.Fprintf(w, "║ %-*s ║\n", boxWidth, "")
		} else {
			fmt.Fprintf(w, "║  %-*s║\n", boxWidth-1, line)
		}
	}

	fmt.Fprintf(w, "╚%s╝\n", strings.Repeat("═", boxWidth+2))
	fmt.Fprintf(w, "\n")
}

// HumanAgentWarning is shown when --human-agent replaces the User-Agent.
var HumanAgentWarning = []string{
	"Requests will identify as a desktop browser, not as linkcheck.",
	"Only use this against sites you own or may check this way.",
	"",
	"Some servers answer 403 to unknown agents; this flag works",
	"around that but hides the checker from the site's logs.",
}

// CenterText centers text within a given width.
func CenterText(text string, width int) string {
	if len(text) >= width {
		return text
	}
	padding := (width - len(text)) / 2
	return strings.Repeat(" ", padding) + text + strings.Repeat(" ", width-len(text)-padding)
}

// ShowHelpMessage prints the top-level help to w.
func ShowHelpMessage(w io.Writer, version string) {
	fmt.Fprintln(w, `linkcheck - find broken links on a website

USAGE:
    linkcheck [GLOBAL OPTIONS] link-check [OPTIONS]

GLOBAL OPTIONS:
    -trace
        Enable debug logging (skipped and unparsable links included)
    -version
        Show version information
    -help
        Show this help message

COMMANDS:
    link-check
        Crawl internal pages from a start URL and check every link found`)
	fmt.Fprintln(w)
	ShowLinkCheckHelp(w)
	fmt.Fprintln(w, `
VERSION:
    linkcheck v`+version)
}

// ShowLinkCheckHelp prints the options of the link-check command to w.
func ShowLinkCheckHelp(w io.Writer) {
	fmt.Fprintln(w, `LINK-CHECK OPTIONS:
    -base string
        Base URL; links on its origin under its path are internal (required)
    -start string
        URL to start crawling from, on the base origin (default: base)
    -internal-only
        Never check links outside the base
    -human-agent
        Send a desktop browser User-Agent
    -config string
        Path to configuration file (JSON format)
    -save-config string
        Write the effective configuration to this path and continue
    -concurrency int
        Maximum simultaneous requests (default: 10)
    -max-path-depth int
        Skip URLs with more path segments than this (default: 20)
    -timeout string
        Per-request timeout (default: 30s)
    -rate float
        Requests per second limit, 0 for unlimited (default: 0)
    -user-agent string
        User-Agent string (default: linkcheck/<version>)
    -report string
        Write a report; format by extension: .json, .csv, .xlsx or .html
    -metrics-addr string
        Serve Prometheus metrics on this address, e.g. :9090
    -visited-redis string
        Keep the visited set in Redis at this address
    -log-format string
        Log format: text or json (default: text)
    -no-progress
        Disable the live progress line

EXAMPLES:
    # Check a whole site
    linkcheck link-check -base https://example.com

    # Check only the docs section, never touching other sites
    linkcheck link-check -base https://example.com/docs -internal-only

    # Start deeper in the site and keep a spreadsheet of the results
    linkcheck link-check -base https://example.com \
        -start https://example.com/blog/ -report links.xlsx

    # Use configuration file
    linkcheck link-check -config linkcheck.json

CONFIGURATION FILE EXAMPLE:
    {
      "base_url": "https://example.com",
      "internal_only": false,
      "concurrency": 10,
      "timeout": "30s",
      "rate": 5.0,
      "report_file": "${REPORT_DIR:-.}/links.json",
      "visited_redis_addr": "${REDIS_ADDR:-}"
    }

    NOTE: Use ${VAR_NAME} or ${VAR_NAME:-default} for environment variable substitution.

EXIT STATUS:
    0 when every checked link succeeded, 1 otherwise`)
}
