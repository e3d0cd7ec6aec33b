package audio

import (
	"os"
	"strconv"
	"time"
)

// AudioConfig holds playback settings for impact and explosion sounds
type AudioConfig struct {
	Enabled      bool
	MasterVolume float64 // 0.0 - 1.0
	SampleRate   int

	// ImpactThreshold is the smallest new-contact impulse that makes a sound
	ImpactThreshold float64
	// ImpactCooldown limits how often impact ticks can retrigger
	ImpactCooldown time.Duration
}

// DefaultAudioConfig returns the viewer defaults
func DefaultAudioConfig() *AudioConfig {
	return &AudioConfig{
		Enabled:         true,
		MasterVolume:    0.5,
		SampleRate:      44100,
		ImpactThreshold: 0.05,
		ImpactCooldown:  40 * time.Millisecond,
	}
}

// LoadAudioConfig loads audio configuration from environment variables
func LoadAudioConfig() *AudioConfig {
	cfg := DefaultAudioConfig()

	if enabled := os.Getenv("VOLT_AUDIO_ENABLED"); enabled != "" {
		if val, err := strconv.ParseBool(enabled); err == nil {
			cfg.Enabled = val
		}
	}

	// Master volume is given as 0-100
	if volume := os.Getenv("VOLT_MASTER_VOLUME"); volume != "" {
		if val, err := strconv.Atoi(volume); err == nil {
			cfg.MasterVolume = min(max(float64(val)/100.0, 0), 1)
		}
	}

	if sampleRate := os.Getenv("VOLT_SAMPLE_RATE"); sampleRate != "" {
		if val, err := strconv.Atoi(sampleRate); err == nil && val > 0 {
			cfg.SampleRate = val
		}
	}

	if threshold := os.Getenv("VOLT_IMPACT_THRESHOLD"); threshold != "" {
		if val, err := strconv.ParseFloat(threshold, 64); err == nil && val >= 0 {
			cfg.ImpactThreshold = val
		}
	}

	return cfg
}
