package audio

import (
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gopxl/beep"

	"galaxy/core"
)

func recordingManager() (*SoundManager, *[]Cue) {
	var cues []Cue
	sm := NewSoundManager(0.5)
	sm.output = func(c Cue, _ beep.Streamer) { cues = append(cues, c) }
	return sm, &cues
}

func TestUninitializedManagerIsSilent(t *testing.T) {
	sm := NewSoundManager(1)
	sm.PlayExplosion()
	sm.PlayWhoosh()
	sm.PlayChime()
	sm.Cleanup()
}

func TestWorldEventsMapToCues(t *testing.T) {
	explosion := core.NewExplosion(mgl32.Vec3{}, mgl32.Vec3{1, 0, 0}, rand.New(rand.NewSource(1)))
	trail := core.NewTrail(1, mgl32.Vec3{}, mgl32.Vec3{1, 1, 1})

	tests := []struct {
		name  string
		event core.Event
		want  []Cue
	}{
		{"explosion", core.Event{Kind: core.EventEffectSpawned, Effect: explosion}, []Cue{CueExplosion}},
		{"trail", core.Event{Kind: core.EventEffectSpawned, Effect: trail}, []Cue{CueWhoosh}},
		{"detail", core.Event{Kind: core.EventDetailShown}, []Cue{CueChime}},
		{"removed", core.Event{Kind: core.EventBodyRemoved}, nil},
		{"nil effect", core.Event{Kind: core.EventEffectSpawned}, nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			sm, cues := recordingManager()
			sm.OnWorldEvent(tc.event)
			if len(*cues) != len(tc.want) {
				t.Fatalf("cues = %v, want %v", *cues, tc.want)
			}
			for i := range tc.want {
				if (*cues)[i] != tc.want[i] {
					t.Errorf("cue %d = %v, want %v", i, (*cues)[i], tc.want[i])
				}
			}
		})
	}
}
