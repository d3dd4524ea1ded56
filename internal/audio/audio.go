package audio

import (
	"log/slog"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"snake-highscore/internal/logging"
)

const sampleRate = beep.SampleRate(44100)

type tone struct {
	freq     float64
	duration time.Duration
}

var (
	appleTones = []tone{{freq: 660, duration: 60 * time.Millisecond}, {freq: 880, duration: 80 * time.Millisecond}}
	deathTones = []tone{{freq: 392, duration: 150 * time.Millisecond}, {freq: 262, duration: 150 * time.Millisecond}, {freq: 131, duration: 300 * time.Millisecond}}
)

var (
	speakerInit  = speaker.Init
	speakerPlay  = speaker.Play
	speakerClose = speaker.Close
)

// Player plays the game's sound effects. A Player whose speaker failed to
// initialise stays silent.
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
	logger      *slog.Logger
}

// New returns a Player. When enabled is false or the speaker cannot be opened
// the Player is silent.
func New(enabled bool, logger *slog.Logger) *Player {
	p := &Player{mixer: &beep.Mixer{}, logger: logger}
	if !enabled {
		return p
	}
	if err := speakerInit(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		logging.Warn(logger, "audio unavailable, continuing without sound", "error", err)
		return p
	}
	speakerPlay(p.mixer)
	p.initialized = true
	return p
}

// Enabled reports whether sounds reach the speaker.
func (p *Player) Enabled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.initialized
}

// AppleEaten plays a short rising chirp.
func (p *Player) AppleEaten() {
	p.play(appleTones)
}

// Died plays a falling three note phrase.
func (p *Player) Died() {
	p.play(deathTones)
}

// Close silences the player and releases the speaker.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	speakerClose()
	p.initialized = false
}

func (p *Player) play(tones []tone) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.initialized {
		return
	}
	streamer, err := phrase(tones)
	if err != nil {
		logging.Warn(p.logger, "failed to build sound", "error", err)
		return
	}
	speaker.Lock()
	p.mixer.Add(streamer)
	speaker.Unlock()
}

func phrase(tones []tone) (beep.Streamer, error) {
	parts := make([]beep.Streamer, 0, len(tones))
	for _, t := range tones {
		sine, err := generators.SineTone(sampleRate, t.freq)
		if err != nil {
			return nil, err
		}
		parts = append(parts, beep.Take(sampleRate.N(t.duration), sine))
	}
	return &effects.Volume{Streamer: beep.Seq(parts...), Base: 2, Volume: -2}, nil
}
