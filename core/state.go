package core

// Cursor is the pointer shape the renderer should show
type Cursor int

const (
	CursorDefault Cursor = iota
	CursorPointer
)

// Dialog is the modal currently on screen
type Dialog int

const (
	DialogNone Dialog = iota
	DialogConfirmScatter
	DialogGameOver
)

func (d Dialog) String() string {
	switch d {
	case DialogConfirmScatter:
		return "confirm-scatter"
	case DialogGameOver:
		return "game-over"
	}
	return "none"
}

// InteractionState is the single source of truth for what the user is doing
type InteractionState struct {
	Hovered       BodyID
	SunHovered    bool
	Active        BodyID // body whose detail card is open
	Zoomed        bool   // set when a zoom starts, cleared on return
	Transitioning bool   // camera tween in flight
	DetailOpen    bool
	HeroVisible   bool
	Dialog        Dialog
	Cursor        Cursor
	Respawning    bool
	Scattered     bool
	DestroyedIDs  map[string]bool // chapter ids destroyed since the last full respawn
}

func newInteractionState() InteractionState {
	return InteractionState{HeroVisible: true, DestroyedIDs: make(map[string]bool)}
}

// Interactive reports whether hover and click are currently honoured
func (s *InteractionState) Interactive() bool {
	return !s.Zoomed && !s.DetailOpen && !s.Transitioning && s.Dialog == DialogNone
}
