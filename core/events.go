package core

import (
	"github.com/go-gl/mathgl/mgl32"
)

// EventKind enumerates world notifications
type EventKind int

const (
	EventBodyCreated EventKind = iota
	EventBodyRemoved
	EventEffectSpawned
	EventEffectReleased
	EventTransitionStarted
	EventDetailShown
	EventDetailHidden
	EventHoverChanged
	EventRespawnStarted
	EventBodyArrived
	EventRespawnCompleted
	EventDialogOpened
	EventScatterStarted
	EventGameOver
	EventReset
)

var eventNames = map[EventKind]string{
	EventBodyCreated:       "body-created",
	EventBodyRemoved:       "body-removed",
	EventEffectSpawned:     "effect-spawned",
	EventEffectReleased:    "effect-released",
	EventTransitionStarted: "transition-started",
	EventDetailShown:       "detail-shown",
	EventDetailHidden:      "detail-hidden",
	EventHoverChanged:      "hover-changed",
	EventRespawnStarted:    "respawn-started",
	EventBodyArrived:       "body-arrived",
	EventRespawnCompleted:  "respawn-completed",
	EventDialogOpened:      "dialog-opened",
	EventScatterStarted:    "scatter-started",
	EventGameOver:          "game-over",
	EventReset:             "reset",
}

func (k EventKind) String() string {
	if n, ok := eventNames[k]; ok {
		return n
	}
	return "unknown"
}

// Event is delivered synchronously to listeners from inside World calls
type Event struct {
	Kind     EventKind
	Body     *Body // set for body and detail events
	Effect   Effect
	Position mgl32.Vec3
	Dialog   Dialog
}

// Listener observes world events. Renderers use it to upload and free GPU
// resources, the audio layer to play cues.
type Listener interface {
	OnWorldEvent(Event)
}

// ListenerFunc adapts a function to Listener
type ListenerFunc func(Event)

func (f ListenerFunc) OnWorldEvent(e Event) { f(e) }
