package charts

import (
	chart "github.com/wcharczuk/go-chart/v2"
)

type valueLabel struct {
	x, y  float64
	text  string
	below bool
}

const labelGap = 6

// valueLabels writes each label centered on its data point. The bounds must
// match the axis ranges, which are fixed by the outermost ticks.
func valueLabels(labels []valueLabel, xMin, xMax, yMin, yMax float64) chart.Renderable {
	return func(r chart.Renderer, canvas chart.Box, defaults chart.Style) {
		if xMax <= xMin || yMax <= yMin {
			return
		}
		if defaults.Font != nil {
			r.SetFont(defaults.Font)
		}
		r.SetFontColor(labelColor)
		r.SetFontSize(10)
		for _, l := range labels {
			px := canvas.Left + int((l.x-xMin)/(xMax-xMin)*float64(canvas.Width()))
			py := canvas.Bottom - int((l.y-yMin)/(yMax-yMin)*float64(canvas.Height()))
			box := r.MeasureText(l.text)
			tx := px - box.Width()/2
			ty := py - labelGap
			if l.below {
				ty = py + box.Height() + labelGap
			}
			r.Text(l.text, tx, ty)
		}
	}
}
