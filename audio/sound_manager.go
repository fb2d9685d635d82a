// Package audio synthesizes the galaxy's sound cues and plays them through
// the system speaker.
package audio

import (
	"math/rand"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"galaxy/core"
)

// Cue names a sound the manager can play
type Cue int

const (
	CueExplosion Cue = iota
	CueWhoosh
	CueChime
)

// SoundManager plays cues in response to world events
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	rng         *rand.Rand
	initialized bool

	// output receives every cue; set by Initialize
	output func(Cue, beep.Streamer)
}

// NewSoundManager creates a silent manager; call Initialize to open the device
func NewSoundManager(volume float64) *SoundManager {
	return &SoundManager{
		mixer:  &beep.Mixer{},
		volume: volume,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Initialize opens the speaker and starts the mixer
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(sm.mixer)
	sm.output = func(_ Cue, s beep.Streamer) {
		speaker.Lock()
		sm.mixer.Add(s)
		speaker.Unlock()
	}
	sm.initialized = true
	return nil
}

// Cleanup silences everything
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	speaker.Clear()
	sm.output = nil
	sm.initialized = false
}

func (sm *SoundManager) play(cue Cue) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.output == nil {
		return
	}
	var s beep.Streamer
	switch cue {
	case CueExplosion:
		s = CreateExplosionSound(sm.volume, sm.rng)
	case CueWhoosh:
		s = CreateWhooshSound(sm.volume, sm.rng)
	case CueChime:
		s = CreateChimeSound(sm.volume)
	default:
		return
	}
	sm.output(cue, s)
}

// PlayExplosion plays the planet destruction cue
func (sm *SoundManager) PlayExplosion() { sm.play(CueExplosion) }

// PlayWhoosh plays the fly-in cue
func (sm *SoundManager) PlayWhoosh() { sm.play(CueWhoosh) }

// PlayChime plays the detail card cue
func (sm *SoundManager) PlayChime() { sm.play(CueChime) }

// OnWorldEvent maps world events onto cues
func (sm *SoundManager) OnWorldEvent(e core.Event) {
	switch e.Kind {
	case core.EventEffectSpawned:
		if e.Effect == nil {
			return
		}
		switch e.Effect.Kind() {
		case core.EffectExplosion:
			sm.PlayExplosion()
		case core.EffectTrail:
			sm.PlayWhoosh()
		}
	case core.EventDetailShown:
		sm.PlayChime()
	}
}
