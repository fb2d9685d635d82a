package core

import (
	"errors"
	"image"
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/lucasb-eyer/go-colorful"

	"galaxy/textures"
)

const (
	frame    = 16 * time.Millisecond
	viewW    = 1280
	viewH    = 720
	maxTicks = 2000
)

func stubTexture(textures.Pattern, colorful.Color, *rand.Rand) *image.RGBA {
	return image.NewRGBA(image.Rect(0, 0, 4, 4))
}

func newTestWorld(t *testing.T, v Variant) *World {
	t.Helper()
	p := DefaultParams()
	p.Variant = v
	p.Seed = 42
	p.Textures = stubTexture
	w, err := NewWorld(DefaultCatalog(), p)
	if err != nil {
		t.Fatalf("NewWorld: %v", err)
	}
	return w
}

func step(w *World, n int) {
	for i := 0; i < n; i++ {
		w.Update(frame)
	}
}

// frontBody is the body nearest the home camera, which nothing can occlude
func frontBody(t *testing.T, w *World) *Body {
	t.Helper()
	var best *Body
	for _, b := range w.Bodies() {
		if best == nil || b.Position.Sub(w.Camera.Position).Len() < best.Position.Sub(w.Camera.Position).Len() {
			best = b
		}
	}
	if best == nil {
		t.Fatal("world has no bodies")
	}
	return best
}

func screenOf(t *testing.T, w *World, b *Body) (float64, float64) {
	t.Helper()
	x, y, ok := w.Camera.Project(b.Position, viewW, viewH)
	if !ok {
		t.Fatalf("body %d behind camera", b.ID)
	}
	return x, y
}

func zoomInto(t *testing.T, w *World) *Body {
	t.Helper()
	b := frontBody(t, w)
	x, y := screenOf(t, w, b)
	w.PointerClick(x, y, viewW, viewH)
	if !w.State.Zoomed {
		t.Fatal("click on body did not start a zoom")
	}
	for i := 0; i < maxTicks && !w.State.DetailOpen; i++ {
		w.Update(frame)
	}
	if !w.State.DetailOpen {
		t.Fatal("detail never opened")
	}
	return b
}

func TestNewWorldRejectsEmptyCatalog(t *testing.T) {
	for _, cat := range []*Catalog{nil, {}} {
		if _, err := NewWorld(cat, DefaultParams()); !errors.Is(err, ErrEmptyCatalog) {
			t.Errorf("NewWorld(%v) error = %v, want ErrEmptyCatalog", cat, err)
		}
	}
}

func TestNewWorldLayout(t *testing.T) {
	w := newTestWorld(t, VariantClassic)
	bodies := w.Bodies()
	if len(bodies) != len(w.Catalog.Chapters) {
		t.Fatalf("bodies = %d, want %d", len(bodies), len(w.Catalog.Chapters))
	}

	seen := map[BodyID]bool{}
	for i, b := range bodies {
		if b.ID == 0 || seen[b.ID] {
			t.Errorf("body %d has bad id %d", i, b.ID)
		}
		seen[b.ID] = true

		if b.OrbitalRadius < MinOrbitRadius || b.OrbitalRadius > MaxOrbitRadius {
			t.Errorf("%s radius %v out of range", b.Chapter.ID, b.OrbitalRadius)
		}
		want := 2 * math.Pi * float64(i) / float64(len(bodies))
		if math.Abs(b.OrbitalAngle-want) > 1e-9 {
			t.Errorf("%s initial angle %v, want %v", b.Chapter.ID, b.OrbitalAngle, want)
		}
		if b.Size < BaseBodySize*0.9-1e-6 || b.Size > BaseBodySize*1.1+1e-6 {
			t.Errorf("%s size %v out of range", b.Chapter.ID, b.Size)
		}
		if math.Abs(float64(b.GlowSize-b.Size*GlowScale)) > 1e-6 {
			t.Errorf("%s glow %v, want %v", b.Chapter.ID, b.GlowSize, b.Size*GlowScale)
		}
		if d := b.LabelPosition.Y() - b.Position.Y(); math.Abs(float64(d)-LabelOffset) > 1e-5 {
			t.Errorf("%s label not %v above body", b.Chapter.ID, LabelOffset)
		}
		if b.Texture == nil {
			t.Errorf("%s has no texture", b.Chapter.ID)
		}
	}

	if r := bodies[0].OrbitalRadius; r != MinOrbitRadius {
		t.Errorf("lowest order radius = %v", r)
	}
	if r := bodies[len(bodies)-1].OrbitalRadius; r != MaxOrbitRadius {
		t.Errorf("highest order radius = %v", r)
	}
}

func TestRingsAndTilts(t *testing.T) {
	w := newTestWorld(t, VariantClassic)
	for _, b := range w.Bodies() {
		ringed := b.Chapter.Order == w.Params.RingOrder
		if ringed != (len(b.Rings) > 0) {
			t.Errorf("%s: rings = %d", b.Chapter.ID, len(b.Rings))
		}
		for i, r := range b.Rings {
			if r.Inner <= b.Size || r.Outer <= r.Inner {
				t.Errorf("%s ring %d radii %v..%v", b.Chapter.ID, i, r.Inner, r.Outer)
			}
		}
		if ringed {
			want := []float32{0.6, 0.4, 0.25}
			for i, r := range b.Rings {
				if r.Opacity != want[i] {
					t.Errorf("ring %d opacity %v, want %v", i, r.Opacity, want[i])
				}
			}
		}

		if !w.Params.tilted(b.Chapter.Order) && b.OrbitalTilt != 0 {
			t.Errorf("%s tilted without being listed", b.Chapter.ID)
		}
		if math.Abs(b.OrbitalTilt) > MaxTilt {
			t.Errorf("%s tilt %v exceeds max", b.Chapter.ID, b.OrbitalTilt)
		}
	}
}

func TestOrbitKeepsRadius(t *testing.T) {
	w := newTestWorld(t, VariantClassic)
	start := map[BodyID]float64{}
	for _, b := range w.Bodies() {
		start[b.ID] = b.OrbitalAngle
	}
	step(w, 500)
	for _, b := range w.Bodies() {
		if d := math.Abs(float64(b.Position.Len()) - b.OrbitalRadius); d > 1e-3 {
			t.Errorf("%s drifted %v off its orbit", b.Chapter.ID, d)
		}
		if b.OrbitalAngle == start[b.ID] {
			t.Errorf("%s did not advance", b.Chapter.ID)
		}
	}
}

func TestInnerOrbitsAreFaster(t *testing.T) {
	w := newTestWorld(t, VariantClassic)
	bodies := w.Bodies()
	for i := 1; i < len(bodies); i++ {
		if bodies[i].AngularSpeed >= bodies[i-1].AngularSpeed {
			t.Errorf("%s not slower than %s", bodies[i].Chapter.ID, bodies[i-1].Chapter.ID)
		}
	}
}

func TestMotionDisabledKeepsSpinning(t *testing.T) {
	w := newTestWorld(t, VariantClassic)
	w.SetMotionEnabled(false)
	b := w.Bodies()[0]
	angle, spin := b.OrbitalAngle, b.Spin
	step(w, 30)
	if b.OrbitalAngle != angle {
		t.Error("orbit advanced with motion disabled")
	}
	if b.Spin <= spin {
		t.Error("spin stopped with motion disabled")
	}
}

func TestHoverHighlight(t *testing.T) {
	w := newTestWorld(t, VariantClassic)
	b := frontBody(t, w)
	x, y := screenOf(t, w, b)

	w.PointerMove(x, y, viewW, viewH)
	if w.State.Hovered != b.ID {
		t.Fatalf("hovered = %d, want %d", w.State.Hovered, b.ID)
	}
	if b.GlowOpacity != GlowHoverOpacity || w.State.Cursor != CursorPointer {
		t.Errorf("glow %v cursor %v", b.GlowOpacity, w.State.Cursor)
	}

	if _, hit := w.Pick(w.Camera.ScreenRay(1, 1, viewW, viewH)); hit {
		t.Fatal("corner pixel unexpectedly over a body")
	}
	w.PointerMove(1, 1, viewW, viewH)
	if w.State.Hovered != 0 || b.GlowOpacity != 0 || w.State.Cursor != CursorDefault {
		t.Errorf("hover not cleared: %+v glow %v", w.State, b.GlowOpacity)
	}
}

func TestZoomAndReturn(t *testing.T) {
	w := newTestWorld(t, VariantClassic)
	b := zoomInto(t, w)

	if w.State.Active != b.ID || w.State.HeroVisible || w.State.Transitioning {
		t.Errorf("unexpected state after zoom: %+v", w.State)
	}
	want := b.Position.Normalize().Mul(ZoomDistance)
	if !w.Camera.Position.ApproxEqualThreshold(want, 1e-3) {
		t.Errorf("camera at %v, want %v", w.Camera.Position, want)
	}
	if w.Camera.Target != b.Position {
		t.Errorf("camera looks at %v, want %v", w.Camera.Target, b.Position)
	}

	w.HideDetail()
	if !w.Camera.AtHome() {
		t.Errorf("camera not home after hide: %v", w.Camera.Position)
	}
	if w.State.Zoomed || w.State.DetailOpen || w.State.Active != 0 || !w.State.HeroVisible {
		t.Errorf("state not reset: %+v", w.State)
	}
	if len(w.Bodies()) != len(w.Catalog.Chapters) {
		t.Error("classic variant lost a body")
	}
}

func TestOrbitsFreezeWhileZoomed(t *testing.T) {
	w := newTestWorld(t, VariantClassic)
	zoomInto(t, w)
	angles := map[BodyID]float64{}
	for _, b := range w.Bodies() {
		angles[b.ID] = b.OrbitalAngle
	}
	step(w, 20)
	for _, b := range w.Bodies() {
		if b.OrbitalAngle != angles[b.ID] {
			t.Errorf("%s orbited while zoomed", b.Chapter.ID)
		}
	}
}

func TestInputIgnoredWhileZoomed(t *testing.T) {
	w := newTestWorld(t, VariantClassic)
	b := frontBody(t, w)
	x, y := screenOf(t, w, b)
	w.PointerClick(x, y, viewW, viewH)

	// mid flight
	step(w, 10)
	before := w.State
	w.PointerMove(x, y, viewW, viewH)
	w.PointerClick(x, y, viewW, viewH)
	if w.State.Hovered != 0 || w.State.Active != before.Active || w.State.Cursor != before.Cursor {
		t.Errorf("input changed state mid flight: %+v", w.State)
	}
	if err := w.ShowDetail(b.ID); !errors.Is(err, ErrTransitionInFlight) {
		t.Errorf("ShowDetail mid flight = %v", err)
	}

	step(w, maxTicks)
	if err := w.ShowDetail(b.ID); !errors.Is(err, ErrTransitionInFlight) {
		t.Errorf("ShowDetail while open = %v", err)
	}
}

func TestHideDuringFlightCancels(t *testing.T) {
	w := newTestWorld(t, VariantClassic)
	b := frontBody(t, w)
	if err := w.ShowDetail(b.ID); err != nil {
		t.Fatal(err)
	}
	step(w, 5)
	w.HideDetail()
	step(w, 200)
	if w.State.DetailOpen || w.State.Zoomed || !w.Camera.AtHome() {
		t.Errorf("cancelled flight still landed: %+v camera %v", w.State, w.Camera.Position)
	}
}

func TestShowDetailUnknownBody(t *testing.T) {
	w := newTestWorld(t, VariantClassic)
	if err := w.ShowDetail(9999); !errors.Is(err, ErrUnknownBody) {
		t.Errorf("err = %v", err)
	}
	if w.State.Zoomed {
		t.Error("failed ShowDetail left the world zoomed")
	}
}

func TestDestroyBody(t *testing.T) {
	w := newTestWorld(t, VariantExplode)
	var removed, released int
	w.Subscribe(ListenerFunc(func(e Event) {
		switch e.Kind {
		case EventBodyRemoved:
			removed++
		case EventEffectReleased:
			released++
		}
	}))

	first := w.Bodies()[0]
	if err := w.DestroyBody(first.ID); err != nil {
		t.Fatal(err)
	}
	if len(w.Bodies()) != len(w.Catalog.Chapters)-1 {
		t.Fatalf("bodies = %d after destroy", len(w.Bodies()))
	}
	if _, ok := w.Body(first.ID); ok {
		t.Error("destroyed body still resolvable")
	}
	if !w.State.DestroyedIDs[first.Chapter.ID] {
		t.Error("destroyed chapter not recorded")
	}
	if removed != 1 || len(w.Effects()) != 1 || w.Effects()[0].Kind() != EffectExplosion {
		t.Fatalf("removed=%d effects=%d", removed, len(w.Effects()))
	}
	if err := w.DestroyBody(first.ID); !errors.Is(err, ErrUnknownBody) {
		t.Errorf("second destroy = %v", err)
	}

	step(w, ExplosionFrames)
	if len(w.Effects()) != 0 || released != 1 {
		t.Errorf("explosion not released: effects=%d released=%d", len(w.Effects()), released)
	}
}

func TestExplodeVariantDestroysOnReturn(t *testing.T) {
	w := newTestWorld(t, VariantExplode)
	b := zoomInto(t, w)
	w.HideDetail()
	if _, ok := w.Body(b.ID); ok {
		t.Error("visited body survived return")
	}
	if len(w.Bodies()) != len(w.Catalog.Chapters)-1 {
		t.Errorf("bodies = %d", len(w.Bodies()))
	}
	if !w.Camera.AtHome() {
		t.Error("camera not home")
	}
}

func TestRespawnAfterLastDestroyed(t *testing.T) {
	w := newTestWorld(t, VariantExplode)
	var started, completed, arrived int
	w.Subscribe(ListenerFunc(func(e Event) {
		switch e.Kind {
		case EventRespawnStarted:
			started++
		case EventRespawnCompleted:
			completed++
		case EventBodyArrived:
			arrived++
		}
	}))

	for len(w.Bodies()) > 0 {
		if err := w.DestroyBody(w.Bodies()[0].ID); err != nil {
			t.Fatal(err)
		}
	}
	w.Update(frame)
	if !w.State.Respawning || started != 1 {
		t.Fatalf("respawn did not begin within one tick: %+v", w.State)
	}

	sawTrail := false
	for i := 0; i < maxTicks && w.State.Respawning; i++ {
		w.Update(frame)
		for _, e := range w.Effects() {
			if e.Kind() == EffectTrail {
				sawTrail = true
			}
		}
	}
	if w.State.Respawning {
		t.Fatal("respawn never completed")
	}
	if !sawTrail {
		t.Error("fly-in left no trail")
	}
	if completed != 1 || arrived != len(w.Catalog.Chapters) {
		t.Errorf("completed=%d arrived=%d", completed, arrived)
	}
	if len(w.State.DestroyedIDs) != 0 {
		t.Errorf("destroyed ids not cleared: %v", w.State.DestroyedIDs)
	}
	if len(w.Bodies()) != len(w.Catalog.Chapters) {
		t.Fatalf("bodies = %d after respawn", len(w.Bodies()))
	}
	for _, b := range w.Bodies() {
		if b.Phase != PhaseOrbiting {
			t.Errorf("%s phase %v", b.Chapter.ID, b.Phase)
		}
		if d := math.Abs(float64(b.Position.Len()) - b.OrbitalRadius); d > 1e-3 {
			t.Errorf("%s landed %v off its orbit", b.Chapter.ID, d)
		}
	}
}

func TestScatterAndReset(t *testing.T) {
	w := newTestWorld(t, VariantScatter)

	if err := w.RequestScatter(); err != nil {
		t.Fatal(err)
	}
	if w.State.Dialog != DialogConfirmScatter {
		t.Fatalf("dialog = %v", w.State.Dialog)
	}
	w.CancelDialog()
	if w.State.Dialog != DialogNone || w.Sun.Destroyed {
		t.Fatalf("cancel left %v, sun destroyed %v", w.State.Dialog, w.Sun.Destroyed)
	}

	if err := w.Scatter(); err != nil {
		t.Fatal(err)
	}
	if !w.Sun.Destroyed || !w.State.Scattered {
		t.Fatal("scatter did not destroy the sun")
	}
	for _, b := range w.Bodies() {
		if b.Phase != PhaseScattering {
			t.Errorf("%s phase %v", b.Chapter.ID, b.Phase)
		}
		if b.Velocity.Len() <= 0 {
			t.Errorf("%s has no scatter velocity", b.Chapter.ID)
		}
	}

	for i := 0; i < maxTicks && w.State.Dialog != DialogGameOver; i++ {
		w.Update(frame)
		for _, b := range w.Bodies() {
			if b.Position.Len() > ScatterThreshold && b.Phase != PhaseLost {
				t.Fatalf("%s is %v out but phase %v", b.Chapter.ID, b.Position.Len(), b.Phase)
			}
		}
	}
	if w.Lost() != len(w.Bodies()) {
		t.Errorf("lost %d of %d", w.Lost(), len(w.Bodies()))
	}
	for _, b := range w.Bodies() {
		if b.Phase != PhaseLost {
			t.Errorf("%s phase %v at game over", b.Chapter.ID, b.Phase)
		}
	}
	if w.State.Dialog != DialogGameOver {
		t.Fatalf("game over never shown, lost %d of %d", w.Lost(), len(w.Bodies()))
	}
	w.CancelDialog()
	if w.State.Dialog != DialogGameOver {
		t.Error("game over dialog closed without reset")
	}

	w.Reset()
	if w.State.Dialog != DialogNone || w.State.Scattered || w.Sun.Destroyed {
		t.Errorf("reset left state %+v", w.State)
	}
	if len(w.Bodies()) != len(w.Catalog.Chapters) || !w.MotionEnabled() {
		t.Errorf("reset rebuilt %d bodies, motion %v", len(w.Bodies()), w.MotionEnabled())
	}
	for _, b := range w.Bodies() {
		if b.Phase != PhaseOrbiting {
			t.Errorf("%s phase %v after reset", b.Chapter.ID, b.Phase)
		}
	}
}

func TestSunClickOpensConfirm(t *testing.T) {
	w := newTestWorld(t, VariantScatter)
	x, y, ok := w.Camera.Project(HomeTarget, viewW, viewH)
	if !ok {
		t.Fatal("sun behind camera")
	}
	if _, hit := w.Pick(w.Camera.ScreenRay(x, y, viewW, viewH)); hit {
		t.Skip("a planet is passing in front of the sun")
	}
	w.PointerMove(x, y, viewW, viewH)
	if !w.State.SunHovered || w.State.Cursor != CursorPointer {
		t.Errorf("sun hover not shown: %+v", w.State)
	}
	w.PointerClick(x, y, viewW, viewH)
	if w.State.Dialog != DialogConfirmScatter {
		t.Errorf("dialog = %v", w.State.Dialog)
	}
}

func TestScatterWrongVariant(t *testing.T) {
	w := newTestWorld(t, VariantClassic)
	if err := w.Scatter(); !errors.Is(err, ErrWrongVariant) {
		t.Errorf("Scatter = %v", err)
	}
	if err := w.RequestScatter(); !errors.Is(err, ErrWrongVariant) {
		t.Errorf("RequestScatter = %v", err)
	}
}

func TestTeardown(t *testing.T) {
	w := newTestWorld(t, VariantExplode)
	removed := 0
	w.Subscribe(ListenerFunc(func(e Event) {
		if e.Kind == EventBodyRemoved {
			removed++
		}
	}))
	w.Teardown()
	if removed != len(w.Catalog.Chapters) || len(w.Bodies()) != 0 {
		t.Fatalf("teardown removed %d, left %d", removed, len(w.Bodies()))
	}
	w.Update(frame)
	if w.State.Respawning {
		t.Error("torn down world started a respawn")
	}
}

func TestParseVariant(t *testing.T) {
	for _, v := range []Variant{VariantClassic, VariantExplode, VariantScatter} {
		got, err := ParseVariant(v.String())
		if err != nil || got != v {
			t.Errorf("ParseVariant(%q) = %v, %v", v, got, err)
		}
	}
	if _, err := ParseVariant("implode"); err == nil {
		t.Error("expected error for unknown variant")
	}
}

func TestOrbitPointTiltProjection(t *testing.T) {
	tilt := math.Pi / 6
	b := &Body{OrbitalRadius: 10, OrbitalTilt: tilt}
	tests := []float64{0, math.Pi / 4, math.Pi / 2, math.Pi, 3 * math.Pi / 2}
	for _, angle := range tests {
		p := b.OrbitPoint(angle)
		zp := math.Sin(angle) * b.OrbitalRadius
		want := [3]float64{math.Cos(angle) * b.OrbitalRadius, zp * math.Sin(tilt), zp * math.Cos(tilt)}
		for i, v := range want {
			if math.Abs(float64(p[i])-v) > 1e-4 {
				t.Errorf("angle %.3f: component %d = %v, want %v", angle, i, p[i], v)
			}
		}
	}

	p := b.OrbitPoint(math.Pi / 2)
	if math.Abs(float64(p.Y())-5) > 1e-4 || math.Abs(float64(p.Z())-8.660254) > 1e-4 {
		t.Errorf("quarter orbit at 30 degrees = %v, want y=5 z=8.66", p)
	}
}

func TestDestroyDuringRespawnIsRemembered(t *testing.T) {
	w := newTestWorld(t, VariantExplode)
	for len(w.Bodies()) > 0 {
		if err := w.DestroyBody(w.Bodies()[0].ID); err != nil {
			t.Fatal(err)
		}
	}
	w.Update(frame)
	if !w.State.Respawning {
		t.Fatal("respawn did not begin")
	}

	var landed *Body
	for i := 0; i < maxTicks && landed == nil; i++ {
		w.Update(frame)
		for _, b := range w.Bodies() {
			if b.Phase == PhaseOrbiting {
				landed = b
				break
			}
		}
	}
	if landed == nil || !w.State.Respawning {
		t.Fatal("no body landed before the respawn finished")
	}
	if w.State.DestroyedIDs[landed.Chapter.ID] {
		t.Errorf("%s still marked destroyed after landing", landed.Chapter.ID)
	}
	if err := w.DestroyBody(landed.ID); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < maxTicks && w.State.Respawning; i++ {
		w.Update(frame)
	}
	if w.State.Respawning {
		t.Fatal("respawn never completed")
	}
	if n := len(w.Bodies()); n != len(w.Catalog.Chapters)-1 {
		t.Errorf("bodies = %d, want %d", n, len(w.Catalog.Chapters)-1)
	}
	if len(w.State.DestroyedIDs) != 1 || !w.State.DestroyedIDs[landed.Chapter.ID] {
		t.Errorf("destroyed ids = %v, want only %s", w.State.DestroyedIDs, landed.Chapter.ID)
	}
}

func TestExplodeDestroysBeforeCameraReturns(t *testing.T) {
	w := newTestWorld(t, VariantExplode)
	b := zoomInto(t, w)

	removedAway := false
	w.Subscribe(ListenerFunc(func(e Event) {
		if e.Kind == EventBodyRemoved && e.Body == b {
			removedAway = !w.Camera.AtHome()
		}
	}))
	w.HideDetail()
	if !removedAway {
		t.Error("body was removed after the camera had already gone home")
	}
	if !w.Camera.AtHome() {
		t.Error("camera not home after return")
	}
}
