// Package minigame implements Feed-a-Cow: cows pop up in a grid of holes
// and the player feeds them for points before they duck back down.
package minigame

import (
	"fmt"
	"log/slog"
	"math"
	"math/rand"

	"github.com/pthm-cable/pasture/config"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// HoleState is the state of one hole on the board.
type HoleState uint8

const (
	HoleEmpty HoleState = iota
	HoleActive
	HoleFed
)

func (s HoleState) String() string {
	switch s {
	case HoleEmpty:
		return "empty"
	case HoleActive:
		return "active"
	case HoleFed:
		return "fed"
	}
	return "unknown"
}

// Hole is one cell of the board.
type Hole struct {
	State     HoleState
	Remaining float64 // seconds until an active cow ducks or the fed flash ends

	flash      *gween.Tween
	flashAlpha float64
}

// FlashAlpha returns the fed marker opacity in [0, 1]; zero unless fed.
func (h *Hole) FlashAlpha() float64 {
	if h.State != HoleFed {
		return 0
	}
	return h.flashAlpha
}

// Sound plays the feeding chirp.
type Sound interface {
	PlayFeed()
}

// Notifier receives the high score notice.
type Notifier interface {
	Notify(msg string)
}

// Options configures a Game. Rand and Store may be nil.
type Options struct {
	Config   config.MinigameConfig
	Rand     *rand.Rand
	Store    *HighScoreStore
	Sound    Sound
	Notifier Notifier
}

// Game is one Feed-a-Cow board.
type Game struct {
	cfg      config.MinigameConfig
	rng      *rand.Rand
	store    *HighScoreStore
	sound    Sound
	notifier Notifier

	holes      []Hole
	score      int
	highScore  int
	timeLeft   float64
	spawnTimer float64
	active     bool
}

// New creates an idle game and loads the stored high score.
func New(opts Options) *Game {
	cfg := opts.Config
	if cfg.Holes <= 0 {
		cfg.Holes = 9
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}

	g := &Game{
		cfg:      cfg,
		rng:      rng,
		store:    opts.Store,
		sound:    opts.Sound,
		notifier: opts.Notifier,
		holes:    make([]Hole, cfg.Holes),
		timeLeft: cfg.TimeLimit,
	}
	if g.store != nil {
		hs, err := g.store.Load()
		if err != nil {
			slog.Warn("high score unavailable", "error", err)
		}
		g.highScore = hs
	}
	return g
}

// Start begins a round. It does nothing while a round is running.
func (g *Game) Start() {
	if g.active {
		return
	}
	g.active = true
	g.score = 0
	g.timeLeft = g.cfg.TimeLimit
	g.clearHoles()

	g.spawn()
	g.spawnTimer = g.cfg.SpawnInterval
	slog.Info("feed-a-cow started", "time_limit", g.cfg.TimeLimit)
}

// Update advances the round by dt seconds.
func (g *Game) Update(dt float64) {
	// Fed flashes finish even after the round ends
	for i := range g.holes {
		h := &g.holes[i]
		switch h.State {
		case HoleActive:
			h.Remaining -= dt
			if h.Remaining <= 0 {
				h.State = HoleEmpty
				h.Remaining = 0
			}
		case HoleFed:
			h.Remaining -= dt
			if h.flash != nil {
				v, _ := h.flash.Update(float32(dt))
				h.flashAlpha = float64(v)
			}
			if h.Remaining <= 0 {
				h.reset()
			}
		}
	}

	if !g.active {
		return
	}

	g.spawnTimer -= dt
	for g.spawnTimer <= 0 && g.cfg.SpawnInterval > 0 {
		g.spawn()
		g.spawnTimer += g.cfg.SpawnInterval
	}

	g.timeLeft -= dt
	if g.timeLeft <= 0 {
		g.timeLeft = 0
		g.end()
	}
}

// Feed feeds the cow in hole i. It reports whether a cow was fed.
func (g *Game) Feed(i int) bool {
	if !g.active || i < 0 || i >= len(g.holes) {
		return false
	}
	h := &g.holes[i]
	if h.State != HoleActive {
		return false
	}

	g.score += g.cfg.PointsPerCow
	h.State = HoleFed
	h.Remaining = g.cfg.FedFlash
	h.flash = gween.New(1, 0, float32(g.cfg.FedFlash), ease.Linear)
	h.flashAlpha = 1

	if g.sound != nil {
		g.sound.PlayFeed()
	}
	return true
}

// Reset ends any round and returns the board to its idle state.
func (g *Game) Reset() {
	g.end()
	g.score = 0
	g.timeLeft = g.cfg.TimeLimit
	g.clearHoles()
}

// Active reports whether a round is running.
func (g *Game) Active() bool { return g.active }

// Score returns the current round's score.
func (g *Game) Score() int { return g.score }

// HighScore returns the best score seen.
func (g *Game) HighScore() int { return g.highScore }

// TimeLeft returns whole seconds remaining, rounded up.
func (g *Game) TimeLeft() int {
	return int(math.Ceil(g.timeLeft - 1e-9))
}

// Holes returns the board state. The slice must not be modified.
func (g *Game) Holes() []Hole { return g.holes }

// ActiveCount returns the number of holes with a cow up.
func (g *Game) ActiveCount() int {
	n := 0
	for i := range g.holes {
		if g.holes[i].State == HoleActive {
			n++
		}
	}
	return n
}

// spawn raises a cow in a random hole that has no cow up.
func (g *Game) spawn() {
	var free []int
	for i := range g.holes {
		if g.holes[i].State != HoleActive {
			free = append(free, i)
		}
	}
	if len(free) == 0 {
		return
	}
	h := &g.holes[free[g.rng.Intn(len(free))]]
	h.State = HoleActive
	h.Remaining = g.cfg.VisibleDuration
	h.flash = nil
}

// end stops the round and records a new high score.
func (g *Game) end() {
	if !g.active {
		return
	}
	g.active = false
	for i := range g.holes {
		if g.holes[i].State == HoleActive {
			g.holes[i].reset()
		}
	}
	slog.Info("feed-a-cow ended", "score", g.score, "high_score", g.highScore)

	if g.score <= g.highScore {
		return
	}
	g.highScore = g.score
	if g.store != nil {
		if err := g.store.Save(g.highScore); err != nil {
			slog.Error("saving high score", "error", err)
		}
	}
	if g.notifier != nil {
		g.notifier.Notify(fmt.Sprintf("New High Score: %d points!", g.highScore))
	}
}

func (g *Game) clearHoles() {
	for i := range g.holes {
		g.holes[i].reset()
	}
}

func (h *Hole) reset() {
	h.State = HoleEmpty
	h.Remaining = 0
	h.flash = nil
	h.flashAlpha = 0
}
