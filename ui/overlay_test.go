package ui

import (
	"image"
	"math/rand"
	"testing"
	"time"

	"github.com/lucasb-eyer/go-colorful"

	"galaxy/core"
	"galaxy/textures"
)

const (
	testW = 1280
	testH = 720
)

func newWorld(t *testing.T, v core.Variant) *core.World {
	t.Helper()
	p := core.DefaultParams()
	p.Variant = v
	p.Seed = 11
	p.Textures = func(textures.Pattern, colorful.Color, *rand.Rand) *image.RGBA {
		return image.NewRGBA(image.Rect(0, 0, 2, 2))
	}
	w, err := core.NewWorld(core.DefaultCatalog(), p)
	if err != nil {
		t.Fatal(err)
	}
	return w
}

func newOverlay(t *testing.T, w *core.World) *Overlay {
	t.Helper()
	o, err := New(w.Catalog, testW, testH)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return o
}

func panelNamed(o *Overlay, name string) *Panel {
	for _, p := range o.Panels() {
		if p.Name == name {
			return p
		}
	}
	return nil
}

func buttonRect(t *testing.T, p *Panel, kind ButtonKind) Rect {
	t.Helper()
	for _, b := range p.screenButtons() {
		if b.kind == kind {
			return b.rect
		}
	}
	t.Fatalf("panel %s has no button %d", p.Name, kind)
	return Rect{}
}

func center(r Rect) (float64, float64) {
	return r.X + r.W/2, r.Y + r.H/2
}

func openDetail(t *testing.T, w *core.World) {
	t.Helper()
	if err := w.ShowDetail(w.Bodies()[0].ID); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 200 && !w.State.DetailOpen; i++ {
		w.Update(16 * time.Millisecond)
	}
	if !w.State.DetailOpen {
		t.Fatal("detail never opened")
	}
}

func TestRectContains(t *testing.T) {
	r := Rect{X: 10, Y: 20, W: 100, H: 50}
	tests := []struct {
		x, y float64
		want bool
	}{
		{10, 20, true},
		{109.9, 69.9, true},
		{110, 40, false},
		{50, 19, false},
		{5, 30, false},
	}
	for _, tc := range tests {
		if got := r.Contains(tc.x, tc.y); got != tc.want {
			t.Errorf("Contains(%v,%v) = %v", tc.x, tc.y, got)
		}
	}
}

func TestHeroFadesWithZoom(t *testing.T) {
	w := newWorld(t, core.VariantClassic)
	o := newOverlay(t, w)
	o.Update(w, 16*time.Millisecond)
	if p := panelNamed(o, "hero"); p == nil || p.Opacity != 1 {
		t.Fatal("hero should start fully visible")
	}

	if err := w.ShowDetail(w.Bodies()[0].ID); err != nil {
		t.Fatal(err)
	}
	o.Update(w, HeroFade/2)
	if got := o.HeroOpacity(); got < 0.49 || got > 0.51 {
		t.Errorf("hero opacity mid fade = %v", got)
	}
	o.Update(w, HeroFade)
	if panelNamed(o, "hero") != nil {
		t.Error("hero still drawn after fading out")
	}

	w.HideDetail()
	o.Update(w, HeroFade)
	if o.HeroOpacity() != 1 {
		t.Errorf("hero opacity after return = %v", o.HeroOpacity())
	}
}

func TestDetailCardBackButton(t *testing.T) {
	w := newWorld(t, core.VariantClassic)
	o := newOverlay(t, w)
	openDetail(t, w)
	o.Update(w, 16*time.Millisecond)

	card := panelNamed(o, "detail")
	if card == nil {
		t.Fatal("detail card not shown")
	}
	if card.Rect.X+card.Rect.W > testW || card.Rect.W <= 0 || card.Rect.H <= 0 {
		t.Errorf("card rect %+v outside the window", card.Rect)
	}

	x, y := center(buttonRect(t, card, ButtonBack))
	if o.ButtonAt(x, y) != ButtonBack {
		t.Error("ButtonAt missed the back button")
	}
	if !o.HandleClick(w, x, y) {
		t.Fatal("back click not consumed")
	}
	if w.State.DetailOpen || !w.Camera.AtHome() {
		t.Errorf("back did not return home: %+v", w.State)
	}
}

func TestClickOnCardBodyIsConsumed(t *testing.T) {
	w := newWorld(t, core.VariantClassic)
	o := newOverlay(t, w)
	openDetail(t, w)
	o.Update(w, 16*time.Millisecond)
	card := panelNamed(o, "detail")
	if !o.HandleClick(w, card.Rect.X+5, card.Rect.Y+5) {
		t.Error("click inside the card leaked to the scene")
	}
	if !w.State.DetailOpen {
		t.Error("click on card padding closed it")
	}
}

func TestClickOutsidePanelsReachesScene(t *testing.T) {
	w := newWorld(t, core.VariantClassic)
	o := newOverlay(t, w)
	o.Update(w, 16*time.Millisecond)
	if o.HandleClick(w, 5, testH-5) {
		t.Error("empty-area click consumed by overlay")
	}
}

func TestScatterDialogButtons(t *testing.T) {
	w := newWorld(t, core.VariantScatter)
	o := newOverlay(t, w)
	if err := w.RequestScatter(); err != nil {
		t.Fatal(err)
	}
	o.Update(w, 16*time.Millisecond)
	dlg := panelNamed(o, "dialog")
	if dlg == nil {
		t.Fatal("confirm dialog not shown")
	}

	// dialogs are modal
	if !o.HandleClick(w, 2, 2) {
		t.Error("click outside a modal dialog leaked")
	}

	x, y := center(buttonRect(t, dlg, ButtonCancel))
	o.HandleClick(w, x, y)
	if w.State.Dialog != core.DialogNone || w.Sun.Destroyed {
		t.Fatalf("cancel failed: dialog %v", w.State.Dialog)
	}

	if err := w.RequestScatter(); err != nil {
		t.Fatal(err)
	}
	o.Update(w, 16*time.Millisecond)
	x, y = center(buttonRect(t, panelNamed(o, "dialog"), ButtonDestroy))
	o.HandleClick(w, x, y)
	if !w.State.Scattered || !w.Sun.Destroyed {
		t.Fatal("destroy did not scatter")
	}

	for i := 0; i < 2000 && w.State.Dialog != core.DialogGameOver; i++ {
		w.Update(16 * time.Millisecond)
	}
	o.Update(w, 16*time.Millisecond)
	x, y = center(buttonRect(t, panelNamed(o, "dialog"), ButtonReset))
	o.HandleClick(w, x, y)
	if w.State.Scattered || len(w.Bodies()) != len(w.Catalog.Chapters) {
		t.Errorf("reset did not rebuild: %+v", w.State)
	}
}

func TestStatusScreen(t *testing.T) {
	w := newWorld(t, core.VariantClassic)
	o := newOverlay(t, w)
	o.SetStatus("Error: no chapter data loaded")

	panels := o.Panels()
	if len(panels) != 1 || panels[0].Name != "status" {
		t.Fatalf("panels = %v", panels)
	}
	if b := panels[0].Image.Bounds(); b.Dx() != testW || b.Dy() != testH {
		t.Errorf("status image %v", b)
	}
	if !o.HandleClick(w, 100, 100) {
		t.Error("status screen should swallow clicks")
	}

	o.SetStatus("")
	o.Update(w, 16*time.Millisecond)
	if panelNamed(o, "status") != nil {
		t.Error("status still shown after clearing")
	}
}

func TestPanelsAreCached(t *testing.T) {
	w := newWorld(t, core.VariantClassic)
	o := newOverlay(t, w)
	o.Update(w, 16*time.Millisecond)
	v := panelNamed(o, "hero").Version
	o.Update(w, 16*time.Millisecond)
	if panelNamed(o, "hero").Version != v {
		t.Error("unchanged hero was re-rasterized")
	}

	o.Resize(600, 500)
	o.Update(w, 16*time.Millisecond)
	if panelNamed(o, "hero").Version == v {
		t.Error("resize did not re-rasterize the hero")
	}
}

func TestLabels(t *testing.T) {
	w := newWorld(t, core.VariantClassic)
	o := newOverlay(t, w)
	b := w.Bodies()[0]
	l := o.Label(b)
	if l.Image == nil || l.Image.Bounds().Dx() < 20 {
		t.Fatalf("label image %v", l.Image)
	}
	if o.Label(b) != l {
		t.Error("label not cached")
	}
}

func TestEscape(t *testing.T) {
	w := newWorld(t, core.VariantClassic)
	o := newOverlay(t, w)
	openDetail(t, w)
	o.Escape(w)
	if w.State.Zoomed || !w.Camera.AtHome() {
		t.Error("escape did not close the detail card")
	}
}
