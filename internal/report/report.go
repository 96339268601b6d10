// Package report renders the HTML productivity document.
package report

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"html/template"
	"io"
	"os"
	"time"

	"github.com/verte-zerg/didit/internal/charts"
	"github.com/verte-zerg/didit/internal/fsutil"
	"github.com/verte-zerg/didit/internal/model"
	"github.com/verte-zerg/didit/internal/stats"
)

// DefaultTitle heads the document when Data.Title is empty.
const DefaultTitle = "Productivity Log"

var chartTitles = map[charts.Kind]string{
	charts.KindTrend:      "Today's Task Performance",
	charts.KindBreakdown:  "Today's Productivity Breakdown",
	charts.KindComparison: "Daily Points Comparison (All Days)",
}

// Chart is one embedded image card. An empty Src renders an empty image.
type Chart struct {
	Kind  charts.Kind
	Title string
	Src   template.URL
}

// Data is everything the document shows.
type Data struct {
	Title       string
	Today       string
	GeneratedAt time.Time
	Entries     []model.Entry
	Totals      map[string]int
	Charts      []Chart
}

// EmbedCharts reads each chart file and converts it into a data URI, in report
// order. A kind without a path, or whose file cannot be read, gets an empty Src
// and an error in the returned slice.
func EmbedCharts(paths map[charts.Kind]string) ([]Chart, []error) {
	out := make([]Chart, 0, len(charts.Kinds))
	var errs []error
	for _, kind := range charts.Kinds {
		c := Chart{Kind: kind, Title: chartTitles[kind]}
		path, ok := paths[kind]
		if !ok || path == "" {
			errs = append(errs, fmt.Errorf("no %s chart available", kind))
			out = append(out, c)
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			errs = append(errs, fmt.Errorf("failed to read %s chart: %w", kind, err))
			out = append(out, c)
			continue
		}
		c.Src = DataURI(data)
		out = append(out, c)
	}
	return out, errs
}

// DataURI encodes PNG bytes for an img src attribute.
func DataURI(png []byte) template.URL {
	return template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(png))
}

type entryRow struct {
	Date   string
	Time   string
	Level  string
	Points int
	Glyph  string
}

type totalRow struct {
	Date  string
	Total int
}

type view struct {
	Title       string
	Today       string
	GeneratedAt string
	Detail      []entryRow
	Summary     []totalRow
	TodayRows   []entryRow
	TodayTotal  int
	Charts      []Chart
}

func buildView(d Data) view {
	v := view{Title: d.Title, Today: d.Today}
	if v.Title == "" {
		v.Title = DefaultTitle
	}
	if !d.GeneratedAt.IsZero() {
		v.GeneratedAt = d.GeneratedAt.Format("2006-01-02 03:04 PM")
	}
	totals := d.Totals
	if totals == nil {
		totals = stats.DailyTotals(d.Entries)
	}
	for _, e := range stats.SortEntries(d.Entries) {
		v.Detail = append(v.Detail, toRow(e))
	}
	for _, dt := range stats.SortedTotals(totals) {
		v.Summary = append(v.Summary, totalRow{Date: dt.Date, Total: dt.Total})
	}
	for _, e := range stats.EntriesOn(d.Entries, d.Today) {
		v.TodayRows = append(v.TodayRows, toRow(e))
	}
	v.TodayTotal = totals[d.Today]
	v.Charts = d.Charts
	if len(v.Charts) == 0 {
		for _, kind := range charts.Kinds {
			v.Charts = append(v.Charts, Chart{Kind: kind, Title: chartTitles[kind]})
		}
	}
	return v
}

func toRow(e model.Entry) entryRow {
	return entryRow{
		Date:   e.Date,
		Time:   e.Time,
		Level:  model.Capitalize(e.Tier),
		Points: e.Score,
		Glyph:  e.Glyph,
	}
}

// Render writes the document to w.
func Render(w io.Writer, d Data) error {
	return page.Execute(w, buildView(d))
}

// Write renders the document and atomically replaces path with it. On failure
// the previous document stays in place and a *model.WriteError is returned.
func Write(path string, d Data) error {
	var buf bytes.Buffer
	if err := Render(&buf, d); err != nil {
		return &model.WriteError{Path: path, Err: fmt.Errorf("failed to render report: %w", err)}
	}
	if err := fsutil.WriteFileAtomic(path, buf.Bytes(), 0o644); err != nil {
		return &model.WriteError{Path: path, Err: err}
	}
	return nil
}
