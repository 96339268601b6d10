// Package charts renders the report's PNG charts.
package charts

import (
	"bytes"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/verte-zerg/didit/internal/model"
	"github.com/verte-zerg/didit/internal/stats"
)

// Kind identifies one of the report charts.
type Kind string

const (
	KindTrend      Kind = "trend"
	KindBreakdown  Kind = "breakdown"
	KindComparison Kind = "comparison"
)

// Kinds lists the charts in report order.
var Kinds = []Kind{KindTrend, KindBreakdown, KindComparison}

// FileName returns the fixed per-day file name for a chart.
func FileName(kind Kind, day string) string {
	switch kind {
	case KindTrend:
		return "productivity_trend_chart_" + day + ".png"
	case KindBreakdown:
		return "today_productivity_chart_" + day + ".png"
	default:
		return "all_days_comparison_chart_" + day + ".png"
	}
}

const (
	defaultWidth  = 960
	defaultHeight = 600
	barHalfWidth  = 0.35
	fallbackColor = "#9E9E9E"
)

var hexColor = regexp.MustCompile(`^#?[0-9a-fA-F]{6}$`)

var (
	backgroundColor = drawing.ColorFromHex("F8F6F1")
	canvasColor     = drawing.ColorFromHex("F9F9F9")
	lineColor       = drawing.ColorFromHex("1F77B4")
	rangeColor      = drawing.ColorFromHex("FF7F0E")
	gridColor       = drawing.ColorFromHex("D3D3D3")
	labelColor      = drawing.ColorFromHex("222222")
	comparisonColor = drawing.ColorFromHex("FFDAB9")
)

// Renderer draws charts with go-chart.
type Renderer struct {
	Width  int
	Height int
	tiers  model.TierTable
}

// NewRenderer returns a Renderer coloring bars by the given tiers.
func NewRenderer(tiers model.TierTable) *Renderer {
	return &Renderer{Width: defaultWidth, Height: defaultHeight, tiers: tiers}
}

// Trend plots today's scores across the hour of day and marks the day's range.
func (r *Renderer) Trend(day string, entries []model.Entry) ([]byte, error) {
	title := fmt.Sprintf("Today's Task Performance (%s)", day)
	trend := stats.Trend(entries)
	if trend.Empty() {
		return Placeholder(r.Width, r.Height, title, "No tasks logged today yet!")
	}

	xs := make([]float64, len(trend.Points))
	ys := make([]float64, len(trend.Points))
	maxScore := 0
	for i, p := range trend.Points {
		xs[i] = p.Hour
		ys[i] = float64(p.Score)
		if p.Score > maxScore {
			maxScore = p.Score
		}
	}

	minHour := math.Max(math.Floor(xs[0])-1, 0)
	maxHour := math.Min(math.Floor(xs[len(xs)-1])+2, 24)
	xTicks := make([]chart.Tick, 0, int(maxHour-minHour)+1)
	for h := minHour; h <= maxHour; h++ {
		xTicks = append(xTicks, chart.Tick{Value: h, Label: fmt.Sprintf("%02d:00", int(h))})
	}

	labels := []valueLabel{{x: trend.Max.Hour, y: float64(trend.Max.Score), text: strconv.Itoa(trend.Max.Score)}}
	if trend.Min != trend.Max {
		labels = append(labels, valueLabel{x: trend.Min.Hour, y: float64(trend.Min.Score), text: strconv.Itoa(trend.Min.Score), below: true})
	}

	yTicks := scoreTicks(maxScore)
	ch := r.baseChart(title)
	ch.XAxis = chart.XAxis{Name: "Hour of Day", Ticks: xTicks, TickStyle: chart.Style{TextRotationDegrees: 45}}
	ch.YAxis = r.scoreAxis("Points", yTicks)
	ch.Series = []chart.Series{
		chart.ContinuousSeries{
			Name: "Task Points",
			Style: chart.Style{
				StrokeColor: lineColor,
				StrokeWidth: 1.5,
				DotColor:    lineColor,
				DotWidth:    5,
			},
			XValues: xs,
			YValues: ys,
		},
		chart.ContinuousSeries{
			Name: "Daily Range",
			Style: chart.Style{
				StrokeColor:     rangeColor,
				StrokeWidth:     2,
				StrokeDashArray: []float64{6, 4},
			},
			XValues: []float64{trend.Min.Hour, trend.Max.Hour},
			YValues: []float64{float64(trend.Min.Score), float64(trend.Max.Score)},
		},
	}
	ch.Elements = []chart.Renderable{
		chart.Legend(&ch),
		valueLabels(labels, minHour, maxHour, 0, yTicks[len(yTicks)-1].Value),
	}
	return render(ch)
}

// Breakdown draws one bar per entry of the day, colored by tier.
func (r *Renderer) Breakdown(day string, entries []model.Entry) ([]byte, error) {
	title := fmt.Sprintf("Today's Productivity Breakdown (%s)", day)
	if len(entries) == 0 {
		return Placeholder(r.Width, r.Height, title, "No tasks logged today yet!")
	}
	bars := make([]bar, 0, len(entries))
	for _, e := range stats.SortEntries(entries) {
		bars = append(bars, bar{
			label: fmt.Sprintf("%s (%s)", model.Capitalize(e.Tier), e.Time),
			value: e.Score,
			color: r.tierColor(e.Tier),
		})
	}
	return r.barChart(title, "", "Points", bars)
}

// Comparison draws one bar per recorded date with the day's total.
func (r *Renderer) Comparison(totals []model.DailyTotal) ([]byte, error) {
	title := "Daily Points Comparison (All Days)"
	if len(totals) == 0 {
		return Placeholder(r.Width, r.Height, title, "No daily comparison data yet!")
	}
	bars := make([]bar, 0, len(totals))
	for _, dt := range totals {
		bars = append(bars, bar{label: dt.Date, value: dt.Total, color: comparisonColor})
	}
	return r.barChart(title, "Date", "Total Points", bars)
}

type bar struct {
	label string
	value int
	color drawing.Color
}

// Bars are filled four-point series so the value axis stays a plain continuous range.
func (r *Renderer) barChart(title, xName, yName string, bars []bar) ([]byte, error) {
	maxValue := 0
	for _, b := range bars {
		if b.value > maxValue {
			maxValue = b.value
		}
	}
	yTicks := scoreTicks(maxValue)
	n := float64(len(bars))

	xTicks := make([]chart.Tick, 0, len(bars)+2)
	xTicks = append(xTicks, chart.Tick{Value: 0})
	series := make([]chart.Series, 0, len(bars))
	labels := make([]valueLabel, 0, len(bars))
	for i, b := range bars {
		center := float64(i) + 0.5
		v := float64(b.value)
		xTicks = append(xTicks, chart.Tick{Value: center, Label: b.label})
		series = append(series, chart.ContinuousSeries{
			Style: chart.Style{
				StrokeColor: drawing.ColorBlack,
				StrokeWidth: 0.8,
				FillColor:   b.color,
			},
			XValues: []float64{center - barHalfWidth, center - barHalfWidth, center + barHalfWidth, center + barHalfWidth},
			YValues: []float64{0, v, v, 0},
		})
		labels = append(labels, valueLabel{x: center, y: v, text: strconv.Itoa(b.value)})
	}
	xTicks = append(xTicks, chart.Tick{Value: n})

	ch := r.baseChart(title)
	ch.Canvas = chart.Style{FillColor: canvasColor}
	ch.XAxis = chart.XAxis{Name: xName, Ticks: xTicks, TickStyle: chart.Style{TextRotationDegrees: 45}}
	ch.YAxis = r.scoreAxis(yName, yTicks)
	ch.Series = series
	ch.Elements = []chart.Renderable{valueLabels(labels, 0, n, 0, yTicks[len(yTicks)-1].Value)}
	return render(ch)
}

func (r *Renderer) baseChart(title string) chart.Chart {
	return chart.Chart{
		Title:      title,
		TitleStyle: chart.Style{FontSize: 16, FontColor: labelColor},
		Width:      r.Width,
		Height:     r.Height,
		Background: chart.Style{
			FillColor: backgroundColor,
			Padding:   chart.Box{Top: 56, Left: 20, Right: 24, Bottom: 20},
		},
		Canvas: chart.Style{FillColor: backgroundColor},
	}
}

func (r *Renderer) scoreAxis(name string, ticks []chart.Tick) chart.YAxis {
	return chart.YAxis{
		Name:           name,
		Ticks:          ticks,
		GridMajorStyle: chart.Style{StrokeColor: gridColor, StrokeWidth: 1},
	}
}

func (r *Renderer) tierColor(name string) drawing.Color {
	hex := fallbackColor
	if tier, ok := r.tiers.Lookup(name); ok && hexColor.MatchString(tier.Color) {
		hex = tier.Color
	}
	return drawing.ColorFromHex(strings.TrimPrefix(hex, "#"))
}

// scoreTicks returns integer ticks from zero with headroom above maxValue.
func scoreTicks(maxValue int) []chart.Tick {
	top := maxValue + 1
	if maxValue > 5 {
		top = int(math.Ceil(float64(maxValue) * 1.15))
	}
	step := int(math.Ceil(float64(top) / 10))
	if step < 1 {
		step = 1
	}
	ticks := make([]chart.Tick, 0, top/step+2)
	v := 0
	for ; v < top; v += step {
		ticks = append(ticks, chart.Tick{Value: float64(v), Label: strconv.Itoa(v)})
	}
	ticks = append(ticks, chart.Tick{Value: float64(v), Label: strconv.Itoa(v)})
	return ticks
}

func render(ch chart.Chart) ([]byte, error) {
	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
