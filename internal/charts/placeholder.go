package charts

import (
	"bytes"
	"image"
	"image/color"
	"image/png"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const textScale = 2

var (
	placeholderBackground = color.RGBA{R: 0xF8, G: 0xF6, B: 0xF1, A: 0xFF}
	placeholderTitle      = color.RGBA{R: 0x22, G: 0x22, B: 0x22, A: 0xFF}
	placeholderMessage    = color.RGBA{R: 0x75, G: 0x75, B: 0x75, A: 0xFF}
)

// Placeholder renders a panel with a title and a centered message, used when
// a chart has no data to plot.
func Placeholder(width, height int, title, message string) ([]byte, error) {
	if width <= 0 {
		width = defaultWidth
	}
	if height <= 0 {
		height = defaultHeight
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(placeholderBackground), image.Point{}, draw.Src)

	drawCentered(img, title, height/8, placeholderTitle)
	drawCentered(img, message, height/2, placeholderMessage)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// drawCentered writes text horizontally centered around row y. The 7x13 face
// is drawn at native size and scaled up.
func drawCentered(dst *image.RGBA, text string, y int, col color.Color) {
	if text == "" {
		return
	}
	face := basicfont.Face7x13
	dr := &font.Drawer{Face: face}
	tw := dr.MeasureString(text).Ceil()
	th := face.Metrics().Height.Ceil()

	small := image.NewRGBA(image.Rect(0, 0, tw, th))
	dr.Dst = small
	dr.Src = image.NewUniform(col)
	dr.Dot = fixed.Point26_6{X: 0, Y: face.Metrics().Ascent}
	dr.DrawString(text)

	w, h := tw*textScale, th*textScale
	x := (dst.Bounds().Dx() - w) / 2
	if x < 0 {
		x = 0
	}
	target := image.Rect(x, y-h/2, x+w, y+h/2+h%2)
	draw.NearestNeighbor.Scale(dst, target, small, small.Bounds(), draw.Over, nil)
}
