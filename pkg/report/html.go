package report

import (
	"html/template"
	"io"

	"github.com/unbound-force/apicov/pkg/coverage"
)

// htmlReport is the self-contained HTML document template. No
// external assets: the artifact must render anywhere it is opened.
var htmlReport = template.Must(template.New("coverage").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>API Coverage Report</title>
<style>
  body { font-family: -apple-system, "Segoe UI", Roboto, sans-serif; margin: 2rem; color: #1f2430; }
  h1 { font-size: 1.4rem; }
  table { border-collapse: collapse; min-width: 40rem; }
  th, td { border: 1px solid #c6cbd6; padding: 0.35rem 0.75rem; text-align: left; }
  th { background: #eef0f5; }
  td.count { text-align: right; }
  span.zero { color: #c0392b; font-weight: bold; }
</style>
</head>
<body>
<h1>API Coverage Report</h1>
<table>
  <thead>
    <tr><th>Path</th><th>Method</th><th>Status</th><th>Count</th></tr>
  </thead>
  <tbody>
{{- range .Records }}
    <tr>
      <td>{{ .Path }}</td>
      <td>{{ .Method }}</td>
      <td>{{ .Status }}</td>
      <td class="count">{{ if eq .Count 0 }}<span class="zero">0</span>{{ else }}{{ .Count }}{{ end }}</td>
    </tr>
{{- end }}
  </tbody>
</table>
</body>
</html>
`))

// WriteHTML writes the coverage records as a self-contained HTML
// document with a Path/Method/Status/Count table. All records are
// always included, zero counts marked with a styled span, because
// the persisted file is an always-complete audit trail.
func WriteHTML(w io.Writer, records []coverage.Record) error {
	if records == nil {
		records = []coverage.Record{}
	}
	return htmlReport.Execute(w, struct {
		Records []coverage.Record
	}{Records: records})
}
