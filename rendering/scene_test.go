package rendering

import (
	"testing"

	"galaxy/core"
	"galaxy/ui"
)

func TestLabelsSortedFarToNear(t *testing.T) {
	w := newWorld(t, core.VariantClassic)
	o, err := ui.New(w.Catalog, viewW, viewH)
	if err != nil {
		t.Fatal(err)
	}
	labels := Labels(w, o, viewW, viewH)
	if len(labels) != len(w.Bodies()) {
		t.Fatalf("labels = %d, bodies = %d", len(labels), len(w.Bodies()))
	}
	for i := 1; i < len(labels); i++ {
		if labels[i-1].depth < labels[i].depth {
			t.Fatalf("label %d nearer than %d", i-1, i)
		}
	}
	for _, l := range labels {
		if l.Scale < 0.35 || l.Scale > 1.5 {
			t.Errorf("scale %v out of range", l.Scale)
		}
		if r := l.Rect(); r.W <= 0 || r.H <= 0 {
			t.Errorf("empty rect %+v", r)
		}
	}
}

func TestLostBodiesHidden(t *testing.T) {
	w := newWorld(t, core.VariantClassic)
	w.Bodies()[0].Phase = core.PhaseLost
	if got := len(VisibleBodies(w)); got != len(w.Bodies())-1 {
		t.Errorf("visible = %d", got)
	}
}

func TestPointBatches(t *testing.T) {
	w := newWorld(t, core.VariantClassic)
	stars := StarPoints(w.Sky, nil)
	if len(stars) != core.StarCount*PointStride {
		t.Errorf("star floats = %d", len(stars))
	}
	sparkles := SparklePoints(w.Sky, stars)
	if len(sparkles) != core.SparkleCount*PointStride {
		t.Errorf("sparkle floats = %d", len(sparkles))
	}

	if err := w.DestroyBody(w.Bodies()[0].ID); err != nil {
		t.Fatal(err)
	}
	pts := EffectPoints(w.Effects(), nil)
	if len(pts) != core.ExplosionParticles*PointStride {
		t.Fatalf("effect floats = %d", len(pts))
	}
	if pts[6] != 1 {
		t.Errorf("fresh explosion alpha = %v", pts[6])
	}
}

func TestTrailFadesTowardTail(t *testing.T) {
	tr := core.NewTrail(1, [3]float32{}, [3]float32{1, 1, 1})
	pts := EffectPoints([]core.Effect{tr}, nil)
	head := pts[6]
	tail := pts[len(pts)-PointStride+6]
	if !(head > tail) || tail <= 0 {
		t.Errorf("head alpha %v tail alpha %v", head, tail)
	}
}
