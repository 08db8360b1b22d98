// Package notice shows short-lived toast messages that slide in and fade out.
package notice

import (
	"log/slog"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// MaxVisible is the number of toasts kept on screen; older ones are dropped.
const MaxVisible = 4

// Toast is a visible notice at one instant.
type Toast struct {
	Msg   string
	Alpha float64 // 1 while held, falls to 0 during the fade
	Slide float64 // 1 when just posted, 0 once fully slid in
}

type entry struct {
	msg      string
	age      float32
	slide    *gween.Tween
	fade     *gween.Tween
	alpha    float32
	slideOff float32
}

// Board holds the toasts currently on screen.
type Board struct {
	duration float32
	fade     float32
	entries  []*entry
}

// New creates a board whose toasts live for duration seconds, the last fade
// seconds of which are a fade-out.
func New(duration, fade float64) *Board {
	if fade > duration {
		fade = duration
	}
	return &Board{duration: float32(duration), fade: float32(fade)}
}

// Notify posts a toast.
func (b *Board) Notify(msg string) {
	slog.Info("notice", "msg", msg)

	e := &entry{
		msg:      msg,
		slide:    gween.New(1, 0, b.fade, ease.OutCubic),
		fade:     gween.New(1, 0, b.fade, ease.Linear),
		alpha:    1,
		slideOff: 1,
	}
	b.entries = append(b.entries, e)
	if len(b.entries) > MaxVisible {
		b.entries = b.entries[len(b.entries)-MaxVisible:]
	}
}

// Update advances every toast by dt seconds and drops expired ones.
func (b *Board) Update(dt float64) {
	step := float32(dt)
	kept := b.entries[:0]
	for _, e := range b.entries {
		e.age += step
		e.slideOff, _ = e.slide.Update(step)

		// Hold at full opacity until the fade window
		if fadeStart := b.duration - b.fade; e.age > fadeStart {
			into := min(e.age-fadeStart, step)
			e.alpha, _ = e.fade.Update(into)
		}
		if e.age >= b.duration {
			continue
		}
		kept = append(kept, e)
	}
	for i := len(kept); i < len(b.entries); i++ {
		b.entries[i] = nil
	}
	b.entries = kept
}

// Visible returns the toasts on screen, oldest first.
func (b *Board) Visible() []Toast {
	out := make([]Toast, 0, len(b.entries))
	for _, e := range b.entries {
		out = append(out, Toast{Msg: e.msg, Alpha: float64(e.alpha), Slide: float64(e.slideOff)})
	}
	return out
}

// Len returns the number of toasts on screen.
func (b *Board) Len() int {
	return len(b.entries)
}
