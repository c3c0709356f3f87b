// Command term plays Free Throw in a terminal. Space drives the power meter;
// in drag mode, pull back with the mouse and let go.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/vladimirvolkov/freethrow/internal/config"
	"github.com/vladimirvolkov/freethrow/internal/game"
)

var (
	styleText  = tcell.StyleDefault
	styleBall  = tcell.StyleDefault.Foreground(tcell.ColorDarkOrange).Bold(true)
	styleRim   = tcell.StyleDefault.Foreground(tcell.ColorOrangeRed)
	styleBoard = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleAim   = tcell.StyleDefault.Foreground(tcell.ColorGray)

	tierStyles = map[game.PowerTier]tcell.Style{
		game.TierSweet: tcell.StyleDefault.Foreground(tcell.ColorGold),
		game.TierGood:  tcell.StyleDefault.Foreground(tcell.ColorLimeGreen),
		game.TierBad:   tcell.StyleDefault.Foreground(tcell.ColorRed),
	}
)

// Terminal maps between terminal cells and court coordinates.
type Terminal struct {
	screen tcell.Screen
	game   game.Game
	court  game.Court

	mouseDown bool
}

func (t *Terminal) scale() (sx, sy float64) {
	w, h := t.screen.Size()
	return float64(w) / t.court.Width, float64(h) / t.court.Height
}

func (t *Terminal) toCourt(col, row int) (x, y float64) {
	sx, sy := t.scale()
	return (float64(col) + 0.5) / sx, (float64(row) + 0.5) / sy
}

func (t *Terminal) toCell(x, y float64) (col, row int) {
	sx, sy := t.scale()
	return int(x * sx), int(y * sy)
}

// handle returns false when the player asked to quit.
func (t *Terminal) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		t.screen.Sync()
	case *tcell.EventKey:
		switch {
		case ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q':
			return false
		case ev.Rune() == ' ':
			t.game.Handle(game.Input{Kind: game.InputKey})
		case ev.Rune() == 'r':
			t.game.Handle(game.Input{Kind: game.InputRestart})
		}
	case *tcell.EventMouse:
		col, row := ev.Position()
		x, y := t.toCourt(col, row)
		pressed := ev.Buttons()&tcell.Button1 != 0
		switch {
		case pressed && !t.mouseDown:
			t.game.Handle(game.Input{Kind: game.InputPointerDown, X: x, Y: y})
		case pressed:
			t.game.Handle(game.Input{Kind: game.InputPointerMove, X: x, Y: y})
		case t.mouseDown:
			t.game.Handle(game.Input{Kind: game.InputPointerUp, X: x, Y: y})
		}
		t.mouseDown = pressed
	}
	return true
}

func (t *Terminal) text(col, row int, style tcell.Style, s string) {
	for i, r := range []rune(s) {
		t.screen.SetContent(col+i, row, r, nil, style)
	}
}

func (t *Terminal) draw() {
	s := t.game.Snapshot()
	t.screen.Clear()
	w, h := t.screen.Size()

	// backboard and rim
	bx0, by := t.toCell(t.court.HoopMinX-30, t.court.RimMinY-40)
	bx1, _ := t.toCell(t.court.HoopMaxX+30, 0)
	for c := bx0; c <= bx1; c++ {
		t.screen.SetContent(c, by, '_', nil, styleBoard)
	}
	rx0, ry := t.toCell(t.court.HoopMinX, t.court.RimMinY)
	rx1, _ := t.toCell(t.court.HoopMaxX, 0)
	for c := rx0; c <= rx1; c++ {
		t.screen.SetContent(c, ry, '=', nil, styleRim)
	}

	if s.Aim.Active {
		for d := 0.0; d < s.Aim.Length; d += 8 {
			c, r := t.toCell(s.Ball.X+math.Cos(s.Aim.Angle)*d, s.Ball.Y-math.Sin(s.Aim.Angle)*d)
			t.screen.SetContent(c, r, '.', nil, styleAim)
		}
	}
	bc, br := t.toCell(s.Ball.X, s.Ball.Y)
	t.screen.SetContent(bc, br, 'O', nil, styleBall)

	if s.Mode == game.ModePower {
		barW := w - 4
		t.screen.SetContent(1, h-1, '[', nil, styleText)
		t.screen.SetContent(w-2, h-1, ']', nil, styleText)
		if s.Power.Charging {
			fill := int(float64(barW) * s.Power.Value / 100)
			for i := 0; i < fill; i++ {
				t.screen.SetContent(2+i, h-1, '#', nil, tierStyles[s.Power.Tier])
			}
		}
	}

	t.text(0, 0, styleText, fmt.Sprintf("Score: %d  Shot: %d/%d", s.Score, min(s.ShotCount, s.MaxShots), s.MaxShots))
	t.text(0, 1, styleText, s.Message)
	if s.Phase == game.PhaseEnded {
		t.text(0, 2, styleText, "r: play again  q: quit")
	}
	t.screen.Show()
}

func (t *Terminal) run() {
	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := t.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(game.DT)
	defer ticker.Stop()
	for {
		select {
		case ev, ok := <-events:
			if !ok || !t.handle(ev) {
				return
			}
		case <-ticker.C:
			t.game.Tick(game.DT)
			t.draw()
		}
	}
}

func main() {
	configPath := flag.String("config", "", "path to a TOML config file")
	modeFlag := flag.String("mode", "", "power or drag (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	if *modeFlag != "" {
		cfg.Mode = *modeFlag
	}
	mode, err := cfg.GameMode()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	// the screen owns the terminal
	slog.SetDefault(slog.New(slog.DiscardHandler))

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintln(os.Stderr, "screen:", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintln(os.Stderr, "screen:", err)
		os.Exit(1)
	}
	defer screen.Fini()
	screen.EnableMouse()

	t := &Terminal{
		screen: screen,
		game:   game.New(mode, cfg.Tuning, game.Hooks{}),
		court:  cfg.Tuning.Court,
	}
	t.run()
}
