// Package audio synthesizes the pasture's sound effects with beep.
package audio

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/pthm-cable/pasture/config"
)

// SoundManager owns the speaker and mixes effects into it.
// All methods are safe to call when initialization failed; they do nothing.
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	rate        beep.SampleRate
	volume      float64
	enabled     bool
	initialized bool
}

// NewSoundManager creates a sound manager from the audio config.
func NewSoundManager(cfg config.AudioConfig) *SoundManager {
	rate := cfg.SampleRate
	if rate <= 0 {
		rate = 44100
	}
	return &SoundManager{
		mixer:   &beep.Mixer{},
		rate:    beep.SampleRate(rate),
		volume:  cfg.Volume,
		enabled: cfg.Enabled,
	}
}

// Initialize opens the speaker. A disabled manager stays muted and
// returns nil.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized || !sm.enabled {
		return nil
	}

	if err := speaker.Init(sm.rate, sm.rate.N(time.Millisecond*100)); err != nil {
		return fmt.Errorf("initializing speaker: %w", err)
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	slog.Info("audio initialized", "sample_rate", int(sm.rate))
	return nil
}

// Muted reports whether sounds are currently discarded.
func (sm *SoundManager) Muted() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return !sm.initialized
}

// PlayFeed plays the feeding chirp.
func (sm *SoundManager) PlayFeed() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	// The mixer is read by the speaker goroutine
	speaker.Lock()
	sm.mixer.Add(NewChirp(sm.rate, sm.volume))
	speaker.Unlock()
}

// Cleanup stops all sounds.
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Clear()
	sm.mixer.Clear()
	sm.initialized = false
}
