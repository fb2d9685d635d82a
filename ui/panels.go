package ui

import (
	"image"
	"image/color"
	"image/draw"
	"strings"

	"github.com/fogleman/gg"
	"github.com/lucasb-eyer/go-colorful"

	"galaxy/core"
)

var (
	panelFill   = color.NRGBA{10, 12, 30, 220}
	panelBorder = color.NRGBA{120, 140, 220, 160}
	textColor   = color.NRGBA{235, 238, 255, 255}
	mutedText   = color.NRGBA{170, 178, 210, 255}
	buttonFill  = color.NRGBA{60, 80, 170, 255}
	dangerFill  = color.NRGBA{190, 50, 50, 255}
)

const (
	padding      = 24.0
	buttonHeight = 40.0
	lineSpacing  = 1.35
)

// raster is a freshly drawn panel plus its button rects in panel space
type raster struct {
	img     *image.RGBA
	buttons []button
}

func toRGBA(dc *gg.Context) *image.RGBA {
	if img, ok := dc.Image().(*image.RGBA); ok {
		return img
	}
	b := dc.Image().Bounds()
	out := image.NewRGBA(b)
	draw.Draw(out, b, dc.Image(), b.Min, draw.Src)
	return out
}

func drawCard(dc *gg.Context, w, h float64, border color.Color) {
	dc.DrawRoundedRectangle(1, 1, w-2, h-2, 14)
	dc.SetColor(panelFill)
	dc.FillPreserve()
	dc.SetColor(border)
	dc.SetLineWidth(2)
	dc.Stroke()
}

func drawButton(dc *gg.Context, fonts *fontSet, r Rect, text string, fill color.Color) {
	dc.DrawRoundedRectangle(r.X, r.Y, r.W, r.H, 8)
	dc.SetColor(fill)
	dc.Fill()
	dc.SetFontFace(fonts.face(true, 16))
	dc.SetColor(textColor)
	dc.DrawStringAnchored(text, r.X+r.W/2, r.Y+r.H/2, 0.5, 0.35)
}

// wrappedHeight measures text wrapped to width at the given face size
func wrappedHeight(fonts *fontSet, bold bool, size float64, text string, width float64) (lines []string, height float64) {
	dc := gg.NewContext(1, 1)
	dc.SetFontFace(fonts.face(bold, size))
	for _, para := range strings.Split(text, "\n") {
		lines = append(lines, dc.WordWrap(para, width)...)
	}
	return lines, float64(len(lines)) * size * lineSpacing
}

func drawLines(dc *gg.Context, lines []string, x, y, size float64) float64 {
	for _, line := range lines {
		dc.DrawString(line, x, y+size)
		y += size * lineSpacing
	}
	return y
}

func heroRaster(fonts *fontSet, hero core.Hero, width float64) raster {
	inner := width - 2*padding
	title, th := wrappedHeight(fonts, true, 30, hero.Title, inner)
	sub, sh := wrappedHeight(fonts, false, 17, hero.Subtitle, inner)
	cta, ch := wrappedHeight(fonts, false, 15, hero.CallToAction, inner)
	height := padding + th + 6 + sh + 10 + ch + padding

	dc := gg.NewContext(int(width), int(height))
	drawCard(dc, width, height, panelBorder)

	y := padding
	dc.SetColor(textColor)
	dc.SetFontFace(fonts.face(true, 30))
	y = drawLines(dc, title, padding, y, 30) + 6
	dc.SetFontFace(fonts.face(false, 17))
	y = drawLines(dc, sub, padding, y, 17) + 10
	dc.SetColor(mutedText)
	dc.SetFontFace(fonts.face(false, 15))
	drawLines(dc, cta, padding, y, 15)
	return raster{img: toRGBA(dc)}
}

func detailRaster(fonts *fontSet, ch *core.ChapterRecord, width float64) raster {
	inner := width - 2*padding
	title, th := wrappedHeight(fonts, true, 24, ch.Label(), inner)
	summary, sh := wrappedHeight(fonts, false, 16, ch.Summary, inner)

	var actions [][]string
	ah := 0.0
	for _, a := range ch.Actions {
		lines, h := wrappedHeight(fonts, false, 15, a, inner-18)
		actions = append(actions, lines)
		ah += h + 4
	}
	height := padding + th + 12 + sh + 16 + 20 + ah + 16 + buttonHeight + padding

	accent := chapterAccent(ch.Color)
	dc := gg.NewContext(int(width), int(height))
	drawCard(dc, width, height, accent)

	y := padding
	dc.SetColor(accent)
	dc.SetFontFace(fonts.face(true, 24))
	y = drawLines(dc, title, padding, y, 24) + 12

	dc.SetColor(textColor)
	dc.SetFontFace(fonts.face(false, 16))
	y = drawLines(dc, summary, padding, y, 16) + 16

	dc.SetFontFace(fonts.face(true, 15))
	dc.DrawString("Leadership actions", padding, y+15)
	y += 20

	dc.SetFontFace(fonts.face(false, 15))
	for _, lines := range actions {
		dc.SetColor(accent)
		dc.DrawCircle(padding+5, y+10, 3)
		dc.Fill()
		dc.SetColor(textColor)
		y = drawLines(dc, lines, padding+18, y, 15) + 4
	}
	y += 16

	back := Rect{X: padding, Y: y, W: inner, H: buttonHeight}
	drawButton(dc, fonts, back, "Back to galaxy", buttonFill)
	return raster{img: toRGBA(dc), buttons: []button{{kind: ButtonBack, rect: back}}}
}

func dialogRaster(fonts *fontSet, d core.Dialog, width float64) raster {
	var (
		heading, body string
		buttons       []button
	)
	inner := width - 2*padding
	switch d {
	case core.DialogConfirmScatter:
		heading = "Destroy the sun?"
		body = "Without its sun the galaxy falls apart and every planet drifts off into space."
		half := (inner - 12) / 2
		buttons = []button{
			{kind: ButtonDestroy, label: "Destroy", rect: Rect{W: half, H: buttonHeight}},
			{kind: ButtonCancel, label: "Cancel", rect: Rect{X: half + 12, W: half, H: buttonHeight}},
		}
	case core.DialogGameOver:
		heading = "Game over"
		body = "Every planet has been lost to the void."
		buttons = []button{{kind: ButtonReset, label: "Reset galaxy", rect: Rect{W: inner, H: buttonHeight}}}
	default:
		return raster{}
	}

	hl, hh := wrappedHeight(fonts, true, 24, heading, inner)
	bl, bh := wrappedHeight(fonts, false, 16, body, inner)
	height := padding + hh + 12 + bh + 20 + buttonHeight + padding

	dc := gg.NewContext(int(width), int(height))
	drawCard(dc, width, height, panelBorder)
	y := padding
	dc.SetColor(textColor)
	dc.SetFontFace(fonts.face(true, 24))
	y = drawLines(dc, hl, padding, y, 24) + 12
	dc.SetFontFace(fonts.face(false, 16))
	y = drawLines(dc, bl, padding, y, 16) + 20

	for i := range buttons {
		buttons[i].rect.X += padding
		buttons[i].rect.Y = y
		fill := buttonFill
		if buttons[i].kind == ButtonDestroy {
			fill = dangerFill
		}
		drawButton(dc, fonts, buttons[i].rect, buttons[i].label, fill)
	}
	return raster{img: toRGBA(dc), buttons: buttons}
}

func statusRaster(fonts *fontSet, msg string, width, height int) raster {
	dc := gg.NewContext(width, height)
	dc.SetColor(color.NRGBA{5, 6, 16, 255})
	dc.Clear()
	dc.SetFontFace(fonts.face(false, 22))
	if strings.HasPrefix(msg, "Error") {
		dc.SetColor(color.NRGBA{255, 110, 110, 255})
	} else {
		dc.SetColor(textColor)
	}
	dc.DrawStringWrapped(msg, float64(width)/2, float64(height)/2, 0.5, 0.5, float64(width)*0.8, lineSpacing, gg.AlignCenter)
	return raster{img: toRGBA(dc)}
}

// labelRaster draws the floating chapter label on a transparent background
func labelRaster(fonts *fontSet, text string) raster {
	size := 26.0
	measure := gg.NewContext(1, 1)
	measure.SetFontFace(fonts.face(true, size))
	w, _ := measure.MeasureString(text)

	dc := gg.NewContext(int(w)+24, int(size*1.8))
	dc.SetFontFace(fonts.face(true, size))
	dc.SetColor(color.NRGBA{0, 0, 0, 160})
	dc.DrawStringAnchored(text, float64(dc.Width())/2+2, float64(dc.Height())/2+2, 0.5, 0.35)
	dc.SetColor(textColor)
	dc.DrawStringAnchored(text, float64(dc.Width())/2, float64(dc.Height())/2, 0.5, 0.35)
	return raster{img: toRGBA(dc)}
}

// chapterAccent lifts dark chapter colors so titles stay readable on the card
func chapterAccent(c colorful.Color) color.Color {
	h, s, l := c.Hsl()
	if l < 0.55 {
		l = 0.55
	}
	return colorful.Hsl(h, s, l).Clamped()
}
