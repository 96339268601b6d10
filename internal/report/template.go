package report

import "html/template"

var page = template.Must(template.New("report").Parse(pageTemplate))

const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>{{.Title}}</title>
<style>
body { font-family: 'Inter', system-ui, sans-serif; margin: 20px; background-color: #f4f7f6; color: #333; line-height: 1.6; }
h1, h2 { color: #2c3e50; text-align: center; margin-bottom: 15px; }
hr { border: none; border-top: 1px solid #eee; width: 80%; margin: 25px auto; }
.generated { text-align: center; color: #777; font-size: 0.9em; }
table { width: 90%; margin: 20px auto; border-collapse: collapse; box-shadow: 0 4px 8px rgba(0, 0, 0, 0.1); border-radius: 8px; overflow: hidden; }
th, td { padding: 12px 15px; text-align: left; border-bottom: 1px solid #ddd; }
th { background-color: #3498db; color: white; font-weight: bold; }
tr:nth-child(even) { background-color: #f2f2f2; }
tr:hover { background-color: #e9f5ff; }
.summary-table th { background-color: #28b463; }
.today-table th { background-color: #e74c3c; }
.total-label { text-align: right; font-weight: bold; }
.total-value { font-weight: bold; }
.no-data { text-align: center; padding: 20px; color: #777; }
.chart-container { display: flex; flex-wrap: wrap; justify-content: center; gap: 20px; margin-top: 30px; }
.chart-card { background-color: white; border-radius: 8px; box-shadow: 0 4px 8px rgba(0, 0, 0, 0.1); padding: 20px; text-align: center; flex: 1 1 calc(33% - 40px); min-width: 300px; max-width: 500px; }
.chart-card img { max-width: 100%; height: auto; border-radius: 5px; }
@media (max-width: 768px) { .chart-card { flex: 1 1 calc(50% - 40px); } }
@media (max-width: 480px) { .chart-card { flex: 1 1 calc(100% - 40px); } }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
{{- if .GeneratedAt}}
<p class="generated">Generated {{.GeneratedAt}}</p>
{{- end}}
<hr>

<h2>Detailed Entries (All Time)</h2>
<table class="detail-table">
<thead><tr><th>Date</th><th>Time</th><th>Level</th><th>Points</th><th>Glyph</th></tr></thead>
<tbody>
{{- range .Detail}}
<tr><td>{{.Date}}</td><td>{{.Time}}</td><td>{{.Level}}</td><td>{{.Points}}</td><td>{{.Glyph}}</td></tr>
{{- else}}
<tr><td colspan="5" class="no-data">No detailed entries available yet.</td></tr>
{{- end}}
</tbody>
</table>

<h2>Daily Summary (All Recorded Days)</h2>
<table class="summary-table">
<thead><tr><th>Date</th><th>Total Points</th></tr></thead>
<tbody>
{{- range .Summary}}
<tr><td>{{.Date}}</td><td>{{.Total}}</td></tr>
{{- else}}
<tr><td colspan="2" class="no-data">No daily summary available yet.</td></tr>
{{- end}}
</tbody>
</table>

<h2>Today's Productivity</h2>
<table class="today-table">
<thead><tr><th>Time</th><th>Level</th><th>Points</th><th>Glyph</th></tr></thead>
<tbody>
{{- if .TodayRows}}
{{- range .TodayRows}}
<tr><td>{{.Time}}</td><td>{{.Level}}</td><td>{{.Points}}</td><td>{{.Glyph}}</td></tr>
{{- end}}
<tr class="today-total"><td colspan="2" class="total-label">Today's Total:</td><td colspan="2" class="total-value">{{.TodayTotal}} points</td></tr>
{{- else}}
<tr><td colspan="4" class="no-data">No tasks logged today yet.</td></tr>
{{- end}}
</tbody>
</table>

<hr>
<h2>Productivity Visuals</h2>
<div class="chart-container">
{{- range .Charts}}
<div class="chart-card" data-chart="{{.Kind}}">
<h3>{{.Title}}</h3>
<img src="{{.Src}}" alt="{{.Title}} chart">
</div>
{{- end}}
</div>
</body>
</html>
`
