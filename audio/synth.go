package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

const sampleRate = beep.SampleRate(44100)

// Cue lengths
const (
	ExplosionDuration = 1200 * time.Millisecond
	WhooshDuration    = 700 * time.Millisecond
	ChimeDuration     = 600 * time.Millisecond
)

// WaveType selects an oscillator shape
type WaveType int

const (
	WaveSine WaveType = iota
	WaveNoise
)

// oscillator produces a mono wave whose frequency glides linearly from
// freq to sweepTo over its duration
type oscillator struct {
	freq     float64
	sweepTo  float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
	rng      *rand.Rand
}

// NewOscillator creates a fixed frequency oscillator
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return NewSweep(freq, freq, duration, wave, rate, nil)
}

// NewSweep creates an oscillator gliding between two frequencies. Noise
// waves draw from rng, or a fresh source when rng is nil.
func NewSweep(from, to float64, duration time.Duration, wave WaveType, rate beep.SampleRate, rng *rand.Rand) beep.Streamer {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &oscillator{
		freq:     from,
		sweepTo:  to,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
		rng:      rng,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveNoise:
			val = o.rng.Float64()*2 - 1
		}
		samples[i][0] = val
		samples[i][1] = val

		k := float64(o.position) / float64(o.duration)
		freq := o.freq + (o.sweepTo-o.freq)*k
		o.phase += freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies a linear attack and release to a stream
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	totalSamples   int
}

// NewEnvelope shapes s with an attack/release envelope over duration
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer:       s,
		attackSamples:  rate.N(attack),
		releaseSamples: rate.N(release),
		totalSamples:   rate.N(duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}
		vol := 1.0
		if e.position < e.attackSamples {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		if rem := e.totalSamples - e.position; rem < e.releaseSamples {
			vol = math.Min(vol, float64(rem)/float64(e.releaseSamples))
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// decay multiplies a stream by exp(-t/tau)
type decay struct {
	streamer beep.Streamer
	tau      float64
	position int
	rate     beep.SampleRate
}

// NewDecay fades s exponentially with time constant tau
func NewDecay(s beep.Streamer, tau time.Duration, rate beep.SampleRate) beep.Streamer {
	return &decay{streamer: s, tau: tau.Seconds(), rate: rate}
}

func (d *decay) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = d.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		t := float64(d.position) / float64(d.rate)
		g := math.Exp(-t / d.tau)
		samples[i][0] *= g
		samples[i][1] *= g
		d.position++
	}
	return n, ok
}

func (d *decay) Err() error { return d.streamer.Err() }

// newVolume scales a stream linearly; zero or less is silent
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// CreateExplosionSound is a noise burst over a low rumble, both decaying
func CreateExplosionSound(vol float64, rng *rand.Rand) beep.Streamer {
	noise := NewDecay(NewSweep(0, 0, ExplosionDuration, WaveNoise, sampleRate, rng), 250*time.Millisecond, sampleRate)
	rumble := NewDecay(NewSweep(70, 35, ExplosionDuration, WaveSine, sampleRate, nil), 450*time.Millisecond, sampleRate)
	return newVolume(beep.Mix(newVolume(noise, 0.5), newVolume(rumble, 0.6)), vol)
}

// CreateWhooshSound is filtered-sounding noise under a rising tone
func CreateWhooshSound(vol float64, rng *rand.Rand) beep.Streamer {
	noise := NewEnvelope(NewSweep(0, 0, WhooshDuration, WaveNoise, sampleRate, rng),
		WhooshDuration, 250*time.Millisecond, 400*time.Millisecond, sampleRate)
	tone := NewEnvelope(NewSweep(180, 520, WhooshDuration, WaveSine, sampleRate, nil),
		WhooshDuration, 300*time.Millisecond, 350*time.Millisecond, sampleRate)
	return newVolume(beep.Mix(newVolume(noise, 0.25), newVolume(tone, 0.2)), vol)
}

// CreateChimeSound is two sine partials a fifth apart
func CreateChimeSound(vol float64) beep.Streamer {
	fund := NewEnvelope(NewOscillator(660, ChimeDuration, WaveSine, sampleRate),
		ChimeDuration, 5*time.Millisecond, 500*time.Millisecond, sampleRate)
	fifth := NewEnvelope(NewOscillator(990, ChimeDuration, WaveSine, sampleRate),
		ChimeDuration, 5*time.Millisecond, 300*time.Millisecond, sampleRate)
	return newVolume(beep.Mix(newVolume(fund, 0.6), newVolume(fifth, 0.3)), vol)
}
