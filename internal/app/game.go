// Package app adapts the frame pipeline to the ebiten window loop.
package app

import (
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"

	"github.com/isoarena/game/internal/render/ebitenbackend"
	"github.com/isoarena/game/internal/system"
	"github.com/isoarena/game/internal/world"
)

// keymap maps physical keys to game keys.
var keymap = map[ebiten.Key]world.Key{
	ebiten.KeyArrowUp:        world.KeyUp,
	ebiten.KeyW:              world.KeyUp,
	ebiten.KeyArrowDown:      world.KeyDown,
	ebiten.KeyS:              world.KeyDown,
	ebiten.KeyArrowLeft:      world.KeyLeft,
	ebiten.KeyA:              world.KeyLeft,
	ebiten.KeyArrowRight:     world.KeyRight,
	ebiten.KeyD:              world.KeyRight,
	ebiten.KeySpace:          world.KeyAttack,
	ebiten.KeyEqual:          world.KeyZoomIn,
	ebiten.KeyNumpadAdd:      world.KeyZoomIn,
	ebiten.KeyMinus:          world.KeyZoomOut,
	ebiten.KeyNumpadSubtract: world.KeyZoomOut,
}

// debugKey toggles the stats overlay.
const debugKey = ebiten.KeyF3

func translateKey(k ebiten.Key) (world.Key, bool) {
	gk, ok := keymap[k]
	return gk, ok
}

// Game implements ebiten.Game. Input events are forwarded in Update; the
// frame tick runs once per Draw, which ebiten calls once per redraw.
type Game struct {
	frame   *system.Frame
	backend *ebitenbackend.Backend
	log     *zap.Logger

	keys   []ebiten.Key
	last   time.Time
	width  int
	height int
	debug  bool
	err    error
}

func NewGame(frame *system.Frame, backend *ebitenbackend.Backend, log *zap.Logger) *Game {
	return &Game{frame: frame, backend: backend, log: log}
}

// Update forwards key transitions and the cursor. A fatal error from the
// previous Draw ends the loop here, since Draw cannot return one.
func (g *Game) Update() error {
	if g.err != nil {
		return g.err
	}
	if ebiten.IsWindowBeingClosed() {
		g.log.Info("close requested")
		return ebiten.Termination
	}

	g.keys = inpututil.AppendJustPressedKeys(g.keys[:0])
	for _, k := range g.keys {
		if k == debugKey {
			g.debug = !g.debug
			continue
		}
		if gk, ok := translateKey(k); ok {
			g.frame.HandleKey(gk, true)
		}
	}
	g.keys = inpututil.AppendJustReleasedKeys(g.keys[:0])
	for _, k := range g.keys {
		if gk, ok := translateKey(k); ok {
			g.frame.HandleKey(gk, false)
		}
	}

	x, y := ebiten.CursorPosition()
	g.frame.HandleCursor(float32(x), float32(y))
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	now := time.Now()
	dt := time.Second / time.Duration(ebiten.TPS())
	if !g.last.IsZero() {
		dt = now.Sub(g.last)
	}
	g.last = now

	g.backend.SetTarget(screen)
	if err := g.frame.Tick(dt); err != nil {
		g.err = err
		return
	}
	if g.debug {
		ebitenutil.DebugPrint(screen, g.overlay())
	}
}

func (g *Game) overlay() string {
	s := g.frame.Stats()
	return fmt.Sprintf("TPS %0.1f  FPS %0.1f\nentities %d  enemies %d\nprojectiles %d  expired %d\nrealloc %d",
		ebiten.ActualTPS(), ebiten.ActualFPS(),
		s.Entities, s.Enemies, s.Projectiles, s.Expired, s.Reallocations)
}

// Layout keeps one screen pixel per window pixel and forwards size changes.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		g.frame.Resize(outsideWidth, outsideHeight)
		g.log.Debug("viewport resized", zap.Int("width", outsideWidth), zap.Int("height", outsideHeight))
	}
	return outsideWidth, outsideHeight
}
