package tui

import (
	"fmt"
	"image"
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/pasture/game"
	"github.com/pthm-cable/pasture/notice"
	"github.com/pthm-cable/pasture/renderer"
)

// Command is a user request read from the terminal.
type Command int

const (
	CmdNone Command = iota
	CmdAdd
	CmdClear
	CmdToggle
	CmdQuit
)

// CommandForKey maps a key event to a command.
func CommandForKey(ev *tcell.EventKey) Command {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return CmdQuit
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'a', 'A', '+':
			return CmdAdd
		case 'c', 'C':
			return CmdClear
		case ' ', 'p', 'P':
			return CmdToggle
		case 'q', 'Q':
			return CmdQuit
		}
	}
	return CmdNone
}

// Options configures a terminal View.
type Options struct {
	Pasture  *game.Pasture
	Counters *Counters // the pasture's Display
	Notices  *notice.Board
	Sprite   image.Image
	MaxTicks int // 0 = unlimited
}

// Counters keeps the pushed counter strings for the status line.
type Counters struct {
	population int
	clock      string
}

// SetPopulation implements game.Display.
func (c *Counters) SetPopulation(n int) { c.population = n }

// SetClock implements game.Display.
func (c *Counters) SetClock(label string) { c.clock = label }

// Status returns the status line text.
func (c *Counters) Status(running bool) string {
	state := "running"
	if !running {
		state = "paused"
	}
	return fmt.Sprintf(" %d cows | %s | %s | [a]dd [c]lear [space] pause [q]uit", c.population, c.clock, state)
}

// View runs the pasture in the terminal.
type View struct {
	screen   tcell.Screen
	pasture  *game.Pasture
	counters *Counters
	notices  *notice.Board
	scene    *renderer.Scene
	canvas   *renderer.ImageCanvas
	sampler  Sampler
	maxTicks int
}

// New initializes the terminal screen.
func New(opts Options) (*View, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}

	cfg := opts.Pasture.Config()
	v := &View{
		screen:   screen,
		pasture:  opts.Pasture,
		counters: opts.Counters,
		notices:  opts.Notices,
		scene:    renderer.NewScene(cfg),
		canvas:   renderer.NewImageCanvas(int(cfg.Derived.CanvasW), int(cfg.Derived.CanvasH), opts.Sprite),
		maxTicks: opts.MaxTicks,
	}
	if v.counters == nil {
		v.counters = &Counters{}
	}
	if v.notices == nil {
		v.notices = notice.New(cfg.Notice.Duration, cfg.Notice.Fade)
	}
	return v, nil
}

// Run drives the simulation at the configured frame rate until the user
// quits or MaxTicks is reached.
func (v *View) Run() {
	fps := v.pasture.Config().Screen.TargetFPS
	if fps <= 0 {
		fps = 60
	}
	frame := time.Second / time.Duration(fps)
	ticker := time.NewTicker(frame)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				// Screen finalized
				close(eventChan)
				return
			}
			eventChan <- ev
		}
	}()

	slog.Info("terminal view started", "fps", fps)
	for {
		select {
		case ev, ok := <-eventChan:
			if !ok || !v.handleEvent(ev) {
				return
			}

		case <-ticker.C:
			v.pasture.Update()
			v.notices.Update(frame.Seconds())
			v.draw()

			if v.maxTicks > 0 && int(v.pasture.Tick()) >= v.maxTicks {
				slog.Info("max ticks reached", "tick", v.pasture.Tick())
				return
			}
		}
	}
}

// handleEvent applies one terminal event. It returns false to quit.
func (v *View) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch CommandForKey(ev) {
		case CmdQuit:
			return false
		case CmdAdd:
			if err := v.pasture.AddGrazer(); err != nil {
				slog.Debug("add refused", "error", err)
			}
		case CmdClear:
			v.pasture.Clear()
		case CmdToggle:
			v.pasture.Toggle()
		}

	case *tcell.EventResize:
		v.screen.Sync()
	}
	return true
}

// draw renders the pasture into the cell grid with a status line below.
func (v *View) draw() {
	v.scene.Draw(v.canvas, v.pasture)

	cols, rows := v.screen.Size()
	rows-- // status line
	cells := v.sampler.Sample(v.canvas.Image(), cols, rows)

	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			c := cells[y*cols+x]
			style := tcell.StyleDefault.
				Foreground(tcell.NewRGBColor(int32(c.Top.R), int32(c.Top.G), int32(c.Top.B))).
				Background(tcell.NewRGBColor(int32(c.Bottom.R), int32(c.Bottom.G), int32(c.Bottom.B)))
			v.screen.SetContent(x, y, HalfBlock, nil, style)
		}
	}

	status := v.counters.Status(v.pasture.Running())
	if toasts := v.notices.Visible(); len(toasts) > 0 {
		status = " " + toasts[len(toasts)-1].Msg + " |" + status
	}
	v.drawLine(rows, cols, status)

	v.screen.Show()
}

// drawLine writes text on row y, padding with blanks.
func (v *View) drawLine(y, cols int, text string) {
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)
	runes := []rune(text)
	for x := 0; x < cols; x++ {
		r := ' '
		if x < len(runes) {
			r = runes[x]
		}
		v.screen.SetContent(x, y, r, nil, style)
	}
}

// Close restores the terminal.
func (v *View) Close() {
	v.screen.Fini()
}
