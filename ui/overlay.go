// Package ui lays out and rasterizes the 2D overlay drawn over the galaxy:
// loading/error screen, hero banner, detail card, dialogs and planet labels.
// Panels are plain images; backends upload them as textures and redraw them
// only when Version changes.
package ui

import (
	"fmt"
	"image"
	"math"
	"time"

	"galaxy/core"
)

// HeroFade is how long the hero banner takes to fade in or out
const HeroFade = 400 * time.Millisecond

// Rect is a screen rectangle in pixels, origin top-left
type Rect struct {
	X, Y, W, H float64
}

// Contains reports whether the point lies inside the rect
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

func (r Rect) offset(dx, dy float64) Rect {
	return Rect{r.X + dx, r.Y + dy, r.W, r.H}
}

// ButtonKind identifies what a button does
type ButtonKind int

const (
	ButtonNone ButtonKind = iota
	ButtonBack
	ButtonDestroy
	ButtonCancel
	ButtonReset
)

type button struct {
	kind  ButtonKind
	label string
	rect  Rect
}

// Panel is one rasterized overlay element placed on screen
type Panel struct {
	Name    string
	Image   *image.RGBA
	Rect    Rect
	Opacity float32
	Version uint64

	key     string
	buttons []button // screen space
}

// Overlay holds every panel and decides which are visible
type Overlay struct {
	catalog *core.Catalog
	fonts   *fontSet
	width   int
	height  int

	status      string
	heroOpacity float64

	statusPanel *Panel
	hero        *Panel
	detail      *Panel
	dialog      *Panel
	labels      map[string]*Panel // by chapter id

	visible []*Panel
	version uint64
}

// New builds an overlay for the catalog. It fails only if the embedded
// fonts cannot be parsed.
func New(cat *core.Catalog, width, height int) (*Overlay, error) {
	fonts, err := loadFonts()
	if err != nil {
		return nil, err
	}
	o := &Overlay{
		catalog:     cat,
		fonts:       fonts,
		heroOpacity: 1,
		labels:      make(map[string]*Panel),
		statusPanel: &Panel{Name: "status"},
		hero:        &Panel{Name: "hero"},
		detail:      &Panel{Name: "detail"},
		dialog:      &Panel{Name: "dialog"},
	}
	o.Resize(width, height)
	return o, nil
}

// Resize records the framebuffer size; panels are re-laid out on the next Update
func (o *Overlay) Resize(width, height int) {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	o.width, o.height = width, height
}

// Size returns the current layout size
func (o *Overlay) Size() (int, int) {
	return o.width, o.height
}

// SetStatus shows a full screen message such as the loading indicator or a
// startup error. An empty message hides it.
func (o *Overlay) SetStatus(msg string) {
	o.status = msg
	o.visible = nil
	if msg != "" {
		o.refresh(o.statusPanel, fmt.Sprintf("%s|%dx%d", msg, o.width, o.height), func() raster {
			return statusRaster(o.fonts, msg, o.width, o.height)
		})
		o.statusPanel.Rect = Rect{0, 0, float64(o.width), float64(o.height)}
		o.statusPanel.Opacity = 1
		o.visible = []*Panel{o.statusPanel}
	}
}

// Status returns the current full screen message
func (o *Overlay) Status() string {
	return o.status
}

// HeroOpacity is the current banner opacity
func (o *Overlay) HeroOpacity() float64 {
	return o.heroOpacity
}

func (o *Overlay) refresh(p *Panel, key string, draw func() raster) {
	if p.key == key && p.Image != nil {
		return
	}
	r := draw()
	o.version++
	p.key = key
	p.Image = r.img
	p.Version = o.version
	p.buttons = r.buttons
}

func (o *Overlay) place(p *Panel, x, y float64) {
	if p.Image == nil {
		return
	}
	b := p.Image.Bounds()
	p.Rect = Rect{x, y, float64(b.Dx()), float64(b.Dy())}
}

// screenButtons converts a panel's buttons to screen space
func (p *Panel) screenButtons() []button {
	out := make([]button, len(p.buttons))
	for i, b := range p.buttons {
		out[i] = b
		out[i].rect = b.rect.offset(p.Rect.X, p.Rect.Y)
	}
	return out
}

// Update fades the hero and rebuilds whichever panels the world state needs
func (o *Overlay) Update(w *core.World, dt time.Duration) {
	if o.status != "" {
		o.SetStatus(o.status)
		return
	}
	o.visible = o.visible[:0]

	target := 0.0
	if w.State.HeroVisible {
		target = 1
	}
	delta := float64(dt) / float64(HeroFade)
	if o.heroOpacity < target {
		o.heroOpacity = math.Min(target, o.heroOpacity+delta)
	} else {
		o.heroOpacity = math.Max(target, o.heroOpacity-delta)
	}

	if o.heroOpacity > 0 {
		width := math.Min(720, float64(o.width)-40)
		o.refresh(o.hero, fmt.Sprintf("hero|%.0f", width), func() raster {
			return heroRaster(o.fonts, o.catalog.Hero, width)
		})
		o.place(o.hero, (float64(o.width)-width)/2, 30)
		o.hero.Opacity = float32(o.heroOpacity)
		o.visible = append(o.visible, o.hero)
	}

	if w.State.DetailOpen {
		if b, ok := w.Body(w.State.Active); ok {
			width := math.Min(420, float64(o.width)-40)
			ch := b.Chapter
			o.refresh(o.detail, fmt.Sprintf("detail|%s|%.0f", ch.ID, width), func() raster {
				return detailRaster(o.fonts, ch, width)
			})
			o.place(o.detail, float64(o.width)-width-30, 80)
			o.detail.Opacity = 1
			o.visible = append(o.visible, o.detail)
		}
	}

	if w.State.Dialog != core.DialogNone {
		width := math.Min(440, float64(o.width)-40)
		d := w.State.Dialog
		o.refresh(o.dialog, fmt.Sprintf("dialog|%s|%.0f", d, width), func() raster {
			return dialogRaster(o.fonts, d, width)
		})
		if o.dialog.Image != nil {
			h := float64(o.dialog.Image.Bounds().Dy())
			o.place(o.dialog, (float64(o.width)-width)/2, (float64(o.height)-h)/2)
			o.dialog.Opacity = 1
			o.visible = append(o.visible, o.dialog)
		}
	}
}

// Panels returns the visible panels in draw order
func (o *Overlay) Panels() []*Panel {
	return o.visible
}

// Label returns the cached label image for a body
func (o *Overlay) Label(b *core.Body) *Panel {
	if p, ok := o.labels[b.Chapter.ID]; ok {
		return p
	}
	p := &Panel{Name: "label:" + b.Chapter.ID, Opacity: 1}
	text := b.Chapter.Label()
	o.refresh(p, text, func() raster { return labelRaster(o.fonts, text) })
	o.labels[b.Chapter.ID] = p
	return p
}

// HandleClick routes a click to overlay buttons. It returns true when the
// overlay consumed the click and the 3D scene must not see it.
func (o *Overlay) HandleClick(w *core.World, x, y float64) bool {
	if o.status != "" {
		return true
	}
	for i := len(o.visible) - 1; i >= 0; i-- {
		p := o.visible[i]
		if p == o.hero {
			continue
		}
		for _, b := range p.screenButtons() {
			if b.rect.Contains(x, y) {
				o.press(w, b.kind)
				return true
			}
		}
		if p.Rect.Contains(x, y) {
			return true
		}
	}
	// dialogs are modal
	return w.State.Dialog != core.DialogNone
}

// ButtonAt reports which button is under the pointer, for cursor feedback
func (o *Overlay) ButtonAt(x, y float64) ButtonKind {
	for _, p := range o.visible {
		for _, b := range p.screenButtons() {
			if b.rect.Contains(x, y) {
				return b.kind
			}
		}
	}
	return ButtonNone
}

func (o *Overlay) press(w *core.World, kind ButtonKind) {
	switch kind {
	case ButtonBack:
		w.HideDetail()
	case ButtonDestroy:
		if err := w.Scatter(); err != nil {
			fmt.Printf("scatter: %v\n", err)
		}
	case ButtonCancel:
		w.CancelDialog()
	case ButtonReset:
		w.Reset()
	}
}

// Escape closes whatever is in front: the confirm dialog, then the detail card
func (o *Overlay) Escape(w *core.World) {
	switch {
	case w.State.Dialog == core.DialogConfirmScatter:
		w.CancelDialog()
	case w.State.Zoomed || w.State.DetailOpen:
		w.HideDetail()
	}
}
