// Package reporter prints link check results to the console and exports
// reports as JSON, CSV, XLSX or HTML.
package reporter

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/rodaine/table"

	"github.com/vnykmshr/linkcheck/internal/domain"
)

// startPage labels failures found on the start URL itself, which has no referrer.
const startPage = "(start)"

// Reporter writes human-readable results to out. PrintResult may be called
// from many goroutines at once.
type Reporter struct {
	out io.Writer
	mu  sync.Mutex
}

// New creates a reporter writing to out.
func New(out io.Writer) *Reporter {
	return &Reporter{out: out}
}

// PrintResult prints one line for a checked link.
func (r *Reporter) PrintResult(res domain.LinkResult) { //nolint:gocritic // passed through as a result handler
	r.mu.Lock()
	defer r.mu.Unlock()

	if res.OK {
		fmt.Fprintf(r.out, "[OK]   %s %-8s %s\n", statusText(res.StatusCode), res.Kind, res.URL)
		return
	}
	fmt.Fprintf(r.out, "[FAIL] %s %-8s %s\n", statusText(res.StatusCode), res.Kind, res.URL)
	fmt.Fprintf(r.out, "       found on %s: %s\n", referrerLabel(res.Referrer), res.Error)
}

// PrintSummary prints the totals, the broken links grouped by page and the verdict.
func (r *Reporter) PrintSummary(report *domain.Report) {
	r.mu.Lock()
	defer r.mu.Unlock()

	fmt.Fprintf(r.out, "\n%s\n", strings.Repeat("=", 60))
	fmt.Fprintf(r.out, "LINK CHECK RESULTS\n")
	fmt.Fprintf(r.out, "%s\n", strings.Repeat("=", 60))
	fmt.Fprintf(r.out, "Run ID:      %s\n", report.RunID)
	fmt.Fprintf(r.out, "Base URL:    %s\n", report.BaseURL)
	if report.StartURL != report.BaseURL {
		fmt.Fprintf(r.out, "Start URL:   %s\n", report.StartURL)
	}
	fmt.Fprintf(r.out, "Duration:    %s\n", report.Duration.Round(1e6))
	fmt.Fprintf(r.out, "Waves:       %d\n", report.Waves)
	fmt.Fprintf(r.out, "Total:       %d\n", report.Total)
	fmt.Fprintf(r.out, "Successful:  %d\n", report.Successful)
	fmt.Fprintf(r.out, "Failed:      %d\n", report.Failed)

	if report.Failed > 0 {
		fmt.Fprintf(r.out, "\n%s\n", strings.Repeat("-", 60))
		fmt.Fprintf(r.out, "BROKEN LINKS BY PAGE\n")
		fmt.Fprintf(r.out, "%s\n", strings.Repeat("-", 60))
		r.printFailureTable(report)
	}

	fmt.Fprintf(r.out, "%s\n", strings.Repeat("=", 60))
	if report.Passed {
		fmt.Fprintf(r.out, "PASSED: no broken links found\n\n")
	} else {
		fmt.Fprintf(r.out, "FAILED: %d broken link(s)\n\n", report.Failed)
	}
}

// printFailureTable lists each referring page once, with its count on the first row.
func (r *Reporter) printFailureTable(report *domain.Report) {
	tbl := table.New("Page", "Counts", "Broken Links").WithWriter(r.out)

	order, byReferrer := report.Failures()
	for _, referrer := range order {
		for i, res := range byReferrer[referrer] {
			if i == 0 {
				tbl.AddRow(referrerLabel(referrer), len(byReferrer[referrer]), res.URL)
			} else {
				tbl.AddRow("", "", res.URL)
			}
		}
	}
	tbl.Print()
}

func referrerLabel(referrer string) string {
	if referrer == "" {
		return startPage
	}
	return referrer
}

func statusText(code int) string {
	if code == 0 {
		return "---"
	}
	return fmt.Sprintf("%3d", code)
}
