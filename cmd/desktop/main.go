// Command desktop plays Free Throw in a local window.
package main

import (
	"flag"
	"fmt"
	"image/color"
	"log/slog"
	"math"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/vladimirvolkov/freethrow/internal/config"
	"github.com/vladimirvolkov/freethrow/internal/game"
)

var (
	colorFloor     = color.RGBA{196, 122, 58, 255}
	colorBackboard = color.RGBA{240, 240, 240, 255}
	colorRim       = color.RGBA{255, 69, 0, 255}
	colorBall      = color.RGBA{230, 92, 0, 255}
	colorAim       = color.RGBA{255, 255, 255, 200}
	colorBarFrame  = color.RGBA{255, 255, 255, 255}
	colorOverlay   = color.RGBA{0, 0, 0, 160}

	tierColors = map[game.PowerTier]color.Color{
		game.TierSweet: color.RGBA{255, 215, 0, 255},
		game.TierGood:  color.RGBA{50, 205, 50, 255},
		game.TierBad:   color.RGBA{255, 0, 0, 255},
	}
)

type Desktop struct {
	game   game.Game
	tuning game.Tuning

	touch        *ebiten.TouchID
	lastX, lastY int
}

func (d *Desktop) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		d.game.Handle(game.Input{Kind: game.InputKey})
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		d.game.Handle(game.Input{Kind: game.InputRestart})
	}
	if d.game.Mode() == game.ModeDrag {
		d.mouse()
		d.touches()
	}
	d.game.Tick(game.DT)
	return nil
}

func (d *Desktop) mouse() {
	x, y := ebiten.CursorPosition()
	switch {
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		d.pointer(game.InputPointerDown, x, y)
	case inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft):
		d.pointer(game.InputPointerUp, x, y)
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft):
		d.pointer(game.InputPointerMove, x, y)
	}
}

// touches follows the first finger down until it lifts.
func (d *Desktop) touches() {
	if d.touch == nil {
		ids := inpututil.AppendJustPressedTouchIDs(nil)
		if len(ids) == 0 {
			return
		}
		id := ids[0]
		d.touch = &id
		d.lastX, d.lastY = ebiten.TouchPosition(id)
		d.pointer(game.InputPointerDown, d.lastX, d.lastY)
		return
	}
	id := *d.touch
	if inpututil.IsTouchJustReleased(id) {
		d.pointer(game.InputPointerUp, d.lastX, d.lastY)
		d.touch = nil
		return
	}
	d.lastX, d.lastY = ebiten.TouchPosition(id)
	d.pointer(game.InputPointerMove, d.lastX, d.lastY)
}

func (d *Desktop) pointer(kind game.InputKind, x, y int) {
	d.game.Handle(game.Input{Kind: kind, X: float64(x), Y: float64(y)})
}

func (d *Desktop) Draw(screen *ebiten.Image) {
	s := d.game.Snapshot()
	c := d.tuning.Court
	screen.Fill(colorFloor)

	hx, _ := c.HoopCenter()
	vector.DrawFilledRect(screen, float32(hx-60), float32(c.RimMinY-80), 120, 80, colorBackboard, false)
	vector.StrokeLine(screen, float32(c.HoopMinX), float32(c.RimMinY), float32(c.HoopMaxX), float32(c.RimMinY), 4, colorRim, true)

	if s.Aim.Active {
		ex := s.Ball.X + math.Cos(s.Aim.Angle)*s.Aim.Length
		ey := s.Ball.Y - math.Sin(s.Aim.Angle)*s.Aim.Length
		vector.StrokeLine(screen, float32(s.Ball.X), float32(s.Ball.Y), float32(ex), float32(ey), 3, colorAim, true)
	}
	vector.DrawFilledCircle(screen, float32(s.Ball.X), float32(s.Ball.Y), game.BallRadius, colorBall, true)

	if s.Mode == game.ModePower {
		barW := float32(c.Width - 40)
		barY := float32(c.Height - 30)
		vector.StrokeRect(screen, 20, barY, barW, 16, 2, colorBarFrame, false)
		if s.Power.Charging {
			vector.DrawFilledRect(screen, 20, barY, barW*float32(s.Power.Value/100), 16, tierColors[s.Power.Tier], false)
		}
	}

	shot := min(s.ShotCount, s.MaxShots)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Score: %d   Shot: %d/%d", s.Score, shot, s.MaxShots), 10, 10)
	ebitenutil.DebugPrintAt(screen, s.Message, 10, 28)

	if s.Phase == game.PhaseEnded {
		vector.DrawFilledRect(screen, 0, float32(c.Height/2-30), float32(c.Width), 60, colorOverlay, false)
		ebitenutil.DebugPrintAt(screen, s.Message, 40, int(c.Height/2)-10)
		ebitenutil.DebugPrintAt(screen, "Press R to play again", 40, int(c.Height/2)+6)
	}
}

func (d *Desktop) Layout(outsideWidth, outsideHeight int) (int, int) {
	return int(d.tuning.Court.Width), int(d.tuning.Court.Height)
}

func main() {
	configPath := flag.String("config", "", "path to a TOML config file")
	modeFlag := flag.String("mode", "", "power or drag (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("config", "err", err)
		os.Exit(1)
	}
	cfg.SetupLogging()
	if *modeFlag != "" {
		cfg.Mode = *modeFlag
	}
	mode, err := cfg.GameMode()
	if err != nil {
		slog.Error("mode", "err", err)
		os.Exit(1)
	}

	d := &Desktop{
		game:   game.New(mode, cfg.Tuning, game.Hooks{}),
		tuning: cfg.Tuning,
	}
	ebiten.SetWindowSize(int(cfg.Tuning.Court.Width), int(cfg.Tuning.Court.Height))
	ebiten.SetWindowTitle("Free Throw")
	ebiten.SetTPS(game.TickRate)
	if err := ebiten.RunGame(d); err != nil {
		slog.Error("run", "err", err)
		os.Exit(1)
	}
}
