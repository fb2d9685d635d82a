package inspect

import (
	"sort"

	"galaxy/core"
)

// BodySnapshot is one body as seen by inspector clients
type BodySnapshot struct {
	ID       uint64     `json:"id"`
	Chapter  string     `json:"chapter"`
	Title    string     `json:"title"`
	Position [3]float32 `json:"position"`
	Radius   float64    `json:"radius"`
	Phase    string     `json:"phase"`
}

// Snapshot is a copy of the world taken on the render thread
type Snapshot struct {
	Type         string         `json:"type"`
	Frame        uint64         `json:"frame"`
	FPS          float64        `json:"fps"`
	ElapsedMs    int64          `json:"elapsedMs"`
	Variant      string         `json:"variant"`
	Bodies       []BodySnapshot `json:"bodies"`
	Effects      int            `json:"effects"`
	Hovered      uint64         `json:"hovered"`
	Active       uint64         `json:"active"`
	Zoomed       bool           `json:"zoomed"`
	DetailOpen   bool           `json:"detailOpen"`
	Respawning   bool           `json:"respawning"`
	Scattered    bool           `json:"scattered"`
	Dialog       string         `json:"dialog"`
	DestroyedIDs []string       `json:"destroyedIds"`
}

// Capture copies what clients need out of the world. It must run on the
// goroutine that owns w.
func Capture(w *core.World, fps float64) Snapshot {
	s := Snapshot{
		Type:       "frame",
		Frame:      w.Frame(),
		FPS:        fps,
		ElapsedMs:  w.Elapsed().Milliseconds(),
		Variant:    w.Params.Variant.String(),
		Bodies:     make([]BodySnapshot, 0, len(w.Bodies())),
		Effects:    len(w.Effects()),
		Hovered:    uint64(w.State.Hovered),
		Active:     uint64(w.State.Active),
		Zoomed:     w.State.Zoomed,
		DetailOpen: w.State.DetailOpen,
		Respawning: w.State.Respawning,
		Scattered:  w.State.Scattered,
		Dialog:     w.State.Dialog.String(),
	}
	for _, b := range w.Bodies() {
		s.Bodies = append(s.Bodies, BodySnapshot{
			ID:       uint64(b.ID),
			Chapter:  b.Chapter.ID,
			Title:    b.Chapter.Title,
			Position: [3]float32(b.Position),
			Radius:   b.OrbitalRadius,
			Phase:    b.Phase.String(),
		})
	}
	for id := range w.State.DestroyedIDs {
		s.DestroyedIDs = append(s.DestroyedIDs, id)
	}
	sort.Strings(s.DestroyedIDs)
	return s
}
