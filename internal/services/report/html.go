package report

import (
	"fmt"
	"html/template"
	"os"
	"sort"

	"github.com/bobmcallan/ratiolens/internal/models"
)

// htmlReportData holds the template data for the HTML report.
type htmlReportData struct {
	Report       *models.AnalysisReport
	ChartsByCat  map[models.Category][]models.ChartRef
	RatioNames   []string
	FailedOrder  []string
	HasBenchmark bool
}

var reportFuncs = template.FuncMap{
	"metric": func(m models.Metric) string {
		if !m.Valid {
			return "N/A"
		}
		return fmt.Sprintf("%.2f", m.Value)
	},
	"arrow": func(t models.Trend) string { return t.Arrow() },
	"title": func(c models.Category) string { return c.Title() },
}

var reportTemplate = template.Must(template.New("report").Funcs(reportFuncs).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Report.Ticker}} — Financial Ratio Analysis</title>
<style>
*{box-sizing:border-box;margin:0;padding:0}
body{font-family:-apple-system,BlinkMacSystemFont,"Segoe UI",Roboto,sans-serif;background:#0f1117;color:#e1e4e8;padding:2rem;max-width:1100px;margin:0 auto}
h1{font-size:1.5rem;color:#f0f6fc;margin-bottom:.25rem}
h2{font-size:1.1rem;color:#f0f6fc;margin:2rem 0 .75rem;border-bottom:1px solid #30363d;padding-bottom:.4rem}
p.meta{color:#8b949e;font-size:.9rem;margin-bottom:1.5rem}
table{width:100%;border-collapse:collapse;font-size:.85rem;margin-bottom:1rem}
th,td{padding:.45rem .6rem;text-align:right;border-bottom:1px solid #21262d}
th{color:#8b949e;font-weight:500}
th:first-child,td:first-child{text-align:left}
tr:hover td{background:#161b22}
.improving{color:#3fb950}
.declining{color:#f85149}
.stable{color:#8b949e}
.na{color:#484f58}
img.chart{width:100%;border:1px solid #30363d;border-radius:8px;margin-bottom:1rem;background:#fff}
.failed{background:#3d1f1f;border:1px solid #6e3630;color:#f85149;padding:.5rem .75rem;border-radius:6px;margin-bottom:1rem;font-size:.85rem}
</style>
</head>
<body>
<h1>{{if .Report.Name}}{{.Report.Name}} ({{.Report.Ticker}}){{else}}{{.Report.Ticker}}{{end}}</h1>
<p class="meta">{{if .Report.Sector}}{{.Report.Sector}} · {{.Report.Industry}} · {{end}}{{.Report.PeriodYears}}-year analysis · generated {{.Report.GeneratedAt.Format "2 Jan 2006 15:04"}}</p>
{{range $ticker := .FailedOrder}}
<div class="failed">Benchmark {{$ticker}} excluded: {{index $.Report.Comparison.Failed $ticker}}</div>
{{end}}
{{range .Report.Summaries}}
<h2>{{title .Category}}</h2>
<table>
<tr><th>Ratio</th><th>Latest</th><th>Average</th><th>Trend</th></tr>
{{range .Rows}}
<tr>
<td>{{.Ratio}}</td>
<td>{{metric .Latest}}</td>
<td>{{metric .Average}}</td>
<td class="{{if eq .Trend "Improving"}}improving{{else if eq .Trend "Declining"}}declining{{else if eq .Trend "Stable"}}stable{{else}}na{{end}}">{{.Trend}} {{arrow .Trend}}</td>
</tr>
{{end}}
</table>
{{with index $.ChartsByCat .Category}}
{{range .}}<img class="chart" src="{{.FileName}}" alt="{{.Ratio}}">
{{end}}
{{end}}
{{end}}
{{if .HasBenchmark}}
<h2>Benchmark Comparison (latest values)</h2>
<table>
<tr><th>Ratio</th>{{range .Report.Comparison.Entities}}<th>{{.}}</th>{{end}}</tr>
{{range $ratio := .RatioNames}}
<tr>
<td>{{$ratio}}</td>
{{range $ticker := $.Report.Comparison.Entities}}<td>{{metric (index (index $.Report.Comparison.Latest $ratio) $ticker)}}</td>{{end}}
</tr>
{{end}}
</table>
{{end}}
</body>
</html>`))

// writeHTML renders the full HTML report to path. Chart references point at
// sibling PNG files, so the HTML expects to live in the same directory.
func (s *Service) writeHTML(report *models.AnalysisReport, path string) error {
	data := htmlReportData{
		Report:      report,
		ChartsByCat: make(map[models.Category][]models.ChartRef),
	}
	for _, ref := range report.Charts {
		data.ChartsByCat[ref.Category] = append(data.ChartsByCat[ref.Category], ref)
	}
	if cmp := report.Comparison; cmp != nil {
		data.HasBenchmark = len(cmp.Entities)+len(cmp.Failed) > 1
		for ratio := range cmp.Latest {
			data.RatioNames = append(data.RatioNames, ratio)
		}
		sort.Strings(data.RatioNames)
		for ticker := range cmp.Failed {
			data.FailedOrder = append(data.FailedOrder, ticker)
		}
		sort.Strings(data.FailedOrder)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create HTML report: %w", err)
	}
	defer f.Close()

	if err := reportTemplate.Execute(f, data); err != nil {
		return fmt.Errorf("failed to render HTML report: %w", err)
	}
	return nil
}
