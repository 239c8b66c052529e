package reporter

import (
	"encoding/json"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/xuri/excelize/v2"

	"github.com/vnykmshr/linkcheck/internal/domain"
)

// Export writes report to path in the format named by its extension:
// .json, .csv, .xlsx or .html.
func (r *Reporter) Export(report *domain.Report, path string) error {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		return exportJSON(report, path)
	case ".csv":
		return exportCSV(report, path)
	case ".xlsx":
		return exportXLSX(report, path)
	case ".html":
		return exportHTML(report, path)
	default:
		return &domain.ConfigError{Field: "report_file", Value: path, Reason: fmt.Sprintf("unsupported extension %q", ext)}
	}
}

func exportJSON(report *domain.Report, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing JSON file: %w", err)
	}
	return nil
}

// linkRow is one CSV line per checked link.
type linkRow struct {
	URL        string `csv:"URL"`
	Referrer   string `csv:"Referrer"`
	Kind       string `csv:"Kind"`
	Status     int    `csv:"Status"`
	OK         bool   `csv:"OK"`
	Error      string `csv:"Error"`
	LinksFound int    `csv:"Links Found"`
	DurationMs int64  `csv:"Duration (ms)"`
}

func toRows(results []domain.LinkResult) []linkRow {
	rows := make([]linkRow, 0, len(results))
	for _, res := range results {
		rows = append(rows, linkRow{
			URL:        res.URL,
			Referrer:   res.Referrer,
			Kind:       res.Kind.String(),
			Status:     res.StatusCode,
			OK:         res.OK,
			Error:      res.Error,
			LinksFound: res.LinksFound,
			DurationMs: res.Duration.Milliseconds(),
		})
	}
	return rows
}

func exportCSV(report *domain.Report, path string) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating CSV file: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	rows := toRows(report.Results)
	if err := gocsv.MarshalFile(&rows, file); err != nil {
		return fmt.Errorf("writing CSV file: %w", err)
	}
	return nil
}

const (
	summarySheet = "Summary"
	linksSheet   = "Links"
)

func exportXLSX(report *domain.Report, path string) error {
	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return fmt.Errorf("naming summary sheet: %w", err)
	}

	verdict := "FAILED"
	if report.Passed {
		verdict = "PASSED"
	}
	summary := [][]interface{}{
		{"Run ID", report.RunID},
		{"Base URL", report.BaseURL},
		{"Start URL", report.StartURL},
		{"Started At", report.StartedAt.Format("2006-01-02 15:04:05 MST")},
		{"Duration", report.Duration.String()},
		{"Waves", report.Waves},
		{"Total", report.Total},
		{"Successful", report.Successful},
		{"Failed", report.Failed},
		{"Result", verdict},
	}
	for i, row := range summary {
		if err := setRow(f, summarySheet, i+1, row); err != nil {
			return err
		}
	}

	if _, err := f.NewSheet(linksSheet); err != nil {
		return fmt.Errorf("creating links sheet: %w", err)
	}
	header := []interface{}{"URL", "Referrer", "Kind", "Status", "OK", "Error", "Links Found", "Duration (ms)"}
	if err := setRow(f, linksSheet, 1, header); err != nil {
		return err
	}
	for i, row := range toRows(report.Results) {
		values := []interface{}{row.URL, row.Referrer, row.Kind, row.Status, row.OK, row.Error, row.LinksFound, row.DurationMs}
		if err := setRow(f, linksSheet, i+2, values); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("writing XLSX file: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("writing %s row %d: %w", sheet, row, err)
	}
	return nil
}

func exportHTML(report *domain.Report, path string) error {
	t, err := template.New("report").Funcs(template.FuncMap{
		"referrer": referrerLabel,
	}).Parse(htmlTemplate)
	if err != nil {
		return fmt.Errorf("parsing template: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	order, byReferrer := report.Failures()
	data := struct {
		*domain.Report
		Pages      []string
		ByReferrer map[string][]domain.LinkResult
	}{report, order, byReferrer}

	if err := t.Execute(file, data); err != nil {
		return fmt.Errorf("executing template: %w", err)
	}
	return nil
}

const htmlTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Link Check Report</title>
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #333; background: #f5f7fa; margin: 0; }
        .container { max-width: 1200px; margin: 0 auto; padding: 20px; }
        .header { background: linear-gradient(135deg, #667eea 0%, #764ba2 100%); color: white; padding: 30px; border-radius: 12px; margin-bottom: 30px; }
        .stats-grid { display: grid; grid-template-columns: repeat(auto-fit, minmax(200px, 1fr)); gap: 20px; margin-bottom: 30px; }
        .stat-card { background: white; padding: 20px; border-radius: 12px; border-left: 4px solid #667eea; }
        .stat-card .value { font-size: 2em; font-weight: bold; }
        .section { background: white; margin-bottom: 30px; border-radius: 12px; padding: 20px; }
        .table { width: 100%; border-collapse: collapse; }
        .table th, .table td { padding: 10px; text-align: left; border-bottom: 1px solid #e2e8f0; word-break: break-all; }
        .ok { color: #48bb78; font-weight: bold; }
        .fail { color: #f56565; font-weight: bold; }
    </style>
</head>
<body>
<div class="container">
    <div class="header">
        <h1>Link Check Report</h1>
        <p>{{.BaseURL}} &middot; run {{.RunID}} &middot; {{.StartedAt.Format "2006-01-02 15:04:05 MST"}}</p>
        <p class="{{if .Passed}}ok{{else}}fail{{end}}">{{if .Passed}}PASSED{{else}}FAILED{{end}}</p>
    </div>
    <div class="stats-grid">
        <div class="stat-card"><h3>Total</h3><div class="value">{{.Total}}</div></div>
        <div class="stat-card"><h3>Successful</h3><div class="value">{{.Successful}}</div></div>
        <div class="stat-card"><h3>Failed</h3><div class="value">{{.Failed}}</div></div>
        <div class="stat-card"><h3>Duration</h3><div class="value">{{.Duration}}</div></div>
    </div>
    {{if .Pages}}
    <div class="section">
        <h2>Broken Links by Page</h2>
        <table class="table">
            <tr><th>Page</th><th>Broken Link</th><th>Status</th><th>Error</th></tr>
            {{range $page := .Pages}}{{range index $.ByReferrer $page}}
            <tr><td>{{referrer $page}}</td><td>{{.URL}}</td><td>{{.StatusCode}}</td><td>{{.Error}}</td></tr>
            {{end}}{{end}}
        </table>
    </div>
    {{end}}
    <div class="section">
        <h2>All Links</h2>
        <table class="table">
            <tr><th>URL</th><th>Kind</th><th>Status</th><th>Result</th><th>Links Found</th></tr>
            {{range .Results}}
            <tr><td>{{.URL}}</td><td>{{.Kind}}</td><td>{{.StatusCode}}</td><td class="{{if .OK}}ok{{else}}fail{{end}}">{{if .OK}}OK{{else}}FAIL{{end}}</td><td>{{.LinksFound}}</td></tr>
            {{end}}
        </table>
    </div>
</div>
</body>
</html>`
