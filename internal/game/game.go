// Package game hosts the demo page: an ebiten game that draws the particle
// overlay beneath a scrollable page exercising every effect, with the audio
// visualizer strip along the bottom while music plays.
package game

import (
	"fmt"
	"image"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/iburimskiy/portfolio-fx/internal/audio"
	"github.com/iburimskiy/portfolio-fx/internal/config"
	"github.com/iburimskiy/portfolio-fx/internal/effects"
	"github.com/iburimskiy/portfolio-fx/internal/particle"
	"github.com/iburimskiy/portfolio-fx/internal/scheduler"
	"github.com/iburimskiy/portfolio-fx/internal/surface"
)

const (
	// Button dimensions
	buttonWidth  = 120
	buttonHeight = 40
	buttonX      = 20
	buttonY      = 40

	progressHeight = 6
	scrollStep     = 40

	frameDelta = 1.0 / 60
)

// Game is the ebiten host for the demo page.
type Game struct {
	cfg     *config.Config
	manager *surface.Manager
	sched   *scheduler.Scheduler
	shapes  *effects.Shapes
	cursor  *effects.Cursor
	loader  effects.Loader
	page    *page
	player  *audio.Player
	viz     *audio.Visualizer

	w, h    int
	resized bool
	time    float64

	font  *text.GoTextFaceSource
	faces map[float64]*text.GoTextFace

	// scratch images
	shapesImg *ebiten.Image
	whiteImg  *ebiten.Image
	vertices  []ebiten.Vertex
	indices   []uint16
	runes     []rune

	// button state
	buttonHovered bool
	buttonPressed bool

	lastErr error
}

// New builds the demo page. src drives every random draw, so a seeded source
// reproduces the same particles and shapes.
func New(cfg *config.Config, src particle.Source, player *audio.Player) (*Game, error) {
	font, err := newFontSource()
	if err != nil {
		return nil, err
	}
	g := &Game{
		cfg:    cfg,
		player: player,
		viz:    audio.NewVisualizer(config.VisualizerBins*2, config.SmoothingFactor),
		font:   font,
		faces:  map[float64]*text.GoTextFace{},
		w:      config.WindowWidth,
		h:      config.WindowHeight,
	}

	// ebiten paces frames through Step; the clock only times resize throttling.
	clock := scheduler.RealClock{}
	opts := []surface.Option{surface.WithOpacity(cfg.Particles.Opacity)}
	if ms := cfg.Particles.ResizeThrottleMs; ms > 0 {
		opts = append(opts, surface.WithThrottle(clock, time.Duration(ms)*time.Millisecond))
	}
	field := particle.NewField(cfg.Particles, src)
	g.manager = surface.NewManager(imageBackend{}, surface.ViewportFunc(g.size), field, cfg.Particles.Count, opts...)
	g.sched = scheduler.New(g.manager.Frame, scheduler.WithClock(clock))

	g.shapes = effects.NewShapes(cfg.Shapes, src, cfg.Seed)
	g.cursor = effects.NewCursor(cfg.Cursor)
	g.page = newPage(cfg, src)
	g.page.layout(float64(g.w), float64(g.h))
	return g, nil
}

func (g *Game) size() (int, int) {
	return g.w, g.h
}

func (g *Game) Update() error {
	if !g.manager.Attached() {
		if err := g.manager.Attach(); err != nil {
			return err
		}
		g.resized = false
		g.loader.MarkLoaded()
	}
	if g.resized {
		g.resized = false
		if _, err := g.manager.Resize(); err != nil {
			return err
		}
		g.page.layout(float64(g.w), float64(g.h))
	}
	g.sched.Step()

	mouseX, mouseY := ebiten.CursorPosition()
	mx, my := float64(mouseX), float64(mouseY)

	// Button click detection
	g.buttonHovered = mouseX >= buttonX && mouseX <= buttonX+buttonWidth &&
		mouseY >= buttonY && mouseY <= buttonY+buttonHeight
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.buttonPressed = g.buttonHovered
		if !g.buttonHovered {
			g.page.click(mx, my)
			g.seekAt(mouseX, mouseY)
		}
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		if g.buttonPressed && g.buttonHovered {
			if err := g.player.OpenDialog(); err != nil {
				g.lastErr = err
			}
		}
		g.buttonPressed = false
	}

	_, wheel := ebiten.Wheel()
	g.page.scrollBy(-wheel * scrollStep)

	if g.page.label.Focused() {
		g.runes = ebiten.AppendInputChars(g.runes[:0])
		g.page.typeRunes(g.runes)
		if inpututil.IsKeyJustPressed(ebiten.KeyBackspace) {
			g.page.backspace()
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
			g.page.label.Blur()
		}
	} else {
		if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
			g.player.TogglePause()
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
			return ebiten.Termination
		}
		switch {
		case ebiten.IsKeyPressed(ebiten.KeyArrowDown):
			g.page.scrollBy(scrollStep / 4)
		case ebiten.IsKeyPressed(ebiten.KeyArrowUp):
			g.page.scrollBy(-scrollStep / 4)
		case inpututil.IsKeyJustPressed(ebiten.KeyPageDown):
			g.page.scrollBy(float64(g.h))
		case inpututil.IsKeyJustPressed(ebiten.KeyPageUp):
			g.page.scrollBy(-float64(g.h))
		}
	}

	hovered := g.page.update(frameDelta, mx, my)
	g.cursor.MoveTo(mx, my)
	g.cursor.SetHover(hovered || g.buttonHovered)
	g.cursor.Update(frameDelta)
	g.shapes.Update(frameDelta)
	g.loader.Update(frameDelta)

	if g.player.Playing() {
		g.viz.Update(g.player.Tap())
	} else {
		g.viz.Update(nil)
	}
	g.time += frameDelta
	return nil
}

// seekAt jumps playback when the progress bar is clicked.
func (g *Game) seekAt(mouseX, mouseY int) {
	_, total := g.player.Progress()
	if total == 0 {
		return
	}
	bar := g.progressRect()
	if !bar.Inset(-4).Overlaps(image.Rect(mouseX, mouseY, mouseX+1, mouseY+1)) {
		return
	}
	if err := g.player.Seek(float64(mouseX-bar.Min.X) / float64(bar.Dx())); err != nil {
		g.lastErr = err
	}
}

func (g *Game) progressRect() image.Rectangle {
	y := g.h - config.VisualizerHeight - progressHeight - 12
	return image.Rect(20, y, g.w-20, y+progressHeight)
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.drawBackground(screen)
	g.drawShapes(screen)
	g.drawOverlay(screen)
	g.drawPage(screen)
	g.drawButton(screen)
	g.drawProgressBar(screen)
	g.drawVisualizer(screen)
	if g.cfg.Cursor.Enabled {
		g.drawCursor(screen)
	}
	g.drawLoader(screen)

	status := ""
	if g.player.Tap() == nil {
		status = "Click the button to open an audio file"
	} else if !g.player.Playing() {
		status = "Paused - Space to play, click button to open another"
	} else {
		pos, total := g.player.Progress()
		status = fmt.Sprintf("Playing %s / %s - Space to pause", formatDuration(pos), formatDuration(total))
	}
	if g.lastErr != nil {
		status += " | Error: " + g.lastErr.Error()
	}
	ebitenutil.DebugPrintAt(screen, status, 12, 12)
}

// Layout follows the window size so the overlay is always full bleed.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.w || outsideHeight != g.h {
		g.w, g.h = outsideWidth, outsideHeight
		g.resized = true
	}
	return outsideWidth, outsideHeight
}
