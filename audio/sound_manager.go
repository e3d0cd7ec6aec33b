package audio

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

// Impact tone range; heavier hits sound lower and longer
const (
	impactFreqMax     = 1400.0
	impactFreqMin     = 220.0
	impactDurationMin = 25 * time.Millisecond
	impactDurationMax = 120 * time.Millisecond

	// impactSaturation is the impulse at which the tone stops changing
	impactSaturation = 5.0

	explosionDuration = 450 * time.Millisecond
)

// SoundManager plays short synthesized sounds for simulation events
// All methods are no-ops until Initialize succeeds, audio is optional
type SoundManager struct {
	mu          sync.Mutex
	cfg         *AudioConfig
	sampleRate  beep.SampleRate
	mixer       *beep.Mixer
	initialized bool
	lastImpact  time.Time
}

// NewSoundManager creates a sound manager, nil cfg uses defaults
func NewSoundManager(cfg *AudioConfig) *SoundManager {
	if cfg == nil {
		cfg = DefaultAudioConfig()
	}
	return &SoundManager{
		cfg:        cfg,
		sampleRate: beep.SampleRate(cfg.SampleRate),
		mixer:      &beep.Mixer{},
	}
}

// Initialize sets up the speaker, disabled configs succeed without touching the device
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized || !sm.cfg.Enabled {
		return nil
	}

	err := speaker.Init(sm.sampleRate, sm.sampleRate.N(time.Millisecond*100))
	if err != nil {
		return err
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Cleanup stops all sounds
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()

	sm.initialized = false
}

// PlayImpact plays a tick whose pitch and length follow the impulse magnitude
func (sm *SoundManager) PlayImpact(impulse float64) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized || impulse < sm.cfg.ImpactThreshold {
		return
	}
	now := time.Now()
	if now.Sub(sm.lastImpact) < sm.cfg.ImpactCooldown {
		return
	}
	sm.lastImpact = now

	freq, duration, gain := ImpactTone(impulse)
	sine, err := generators.SineTone(sm.sampleRate, freq)
	if err != nil {
		return
	}

	n := sm.sampleRate.N(duration)
	streamer := newDecay(beep.Take(n, sine), n)
	sm.add(newVolume(streamer, gain*sm.cfg.MasterVolume))
}

// PlayExplosion plays a low noise burst
func (sm *SoundManager) PlayExplosion() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	n := sm.sampleRate.N(explosionDuration)
	streamer := beep.Take(n, NewRumbleGenerator(sm.sampleRate))
	sm.add(newVolume(streamer, sm.cfg.MasterVolume))
}

func (sm *SoundManager) add(s beep.Streamer) {
	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
}

// ImpactTone maps an impulse magnitude to frequency, duration and gain
func ImpactTone(impulse float64) (freq float64, duration time.Duration, gain float64) {
	k := min(max(impulse/impactSaturation, 0), 1)

	freq = impactFreqMax - (impactFreqMax-impactFreqMin)*k
	duration = impactDurationMin + time.Duration(float64(impactDurationMax-impactDurationMin)*k)
	gain = 0.2 + 0.8*math.Sqrt(k)
	return freq, duration, gain
}

// newVolume wraps s with a linear gain; math.Log2(0) is -Inf, so zero is silent
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// decay applies a linear fade to zero over length samples
type decay struct {
	streamer beep.Streamer
	length   int
	position int
}

func newDecay(s beep.Streamer, length int) *decay {
	return &decay{streamer: s, length: max(length, 1)}
}

func (d *decay) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = d.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		vol := 1 - float64(d.position)/float64(d.length)
		if vol < 0 {
			vol = 0
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		d.position++
	}
	return n, ok
}

func (d *decay) Err() error { return d.streamer.Err() }

// RumbleGenerator generates a decaying noise burst over a low sine
type RumbleGenerator struct {
	sr   beep.SampleRate
	pos  int
	seed int64
}

// NewRumbleGenerator creates a rumble generator with a fixed noise seed
func NewRumbleGenerator(sr beep.SampleRate) *RumbleGenerator {
	return &RumbleGenerator{sr: sr, seed: 0x5eed}
}

func (g *RumbleGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)

		// Quick attack, slower decay
		envelope := math.Exp(-t * 6)

		g.seed = (g.seed*1103515245 + 12345) & 0x7fffffff
		noise := float64(g.seed)/float64(0x7fffffff)*2 - 1

		rumble := 0.4 * math.Sin(2*math.Pi*55*t)

		sample := envelope * (0.35*noise + rumble)
		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *RumbleGenerator) Err() error {
	return nil
}
