// Package desktop runs the game in a native window with ebiten.
package desktop

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"math"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/examples/resources/fonts"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/vovakirdan/jetflap/internal/config"
	"github.com/vovakirdan/jetflap/internal/core"
	"github.com/vovakirdan/jetflap/internal/games/flappy"
	"github.com/vovakirdan/jetflap/internal/storage"
)

const (
	labelFontSize = 24
	hudFontSize   = 12
	capHeight     = 14
	groundHeight  = 6
)

// Options configures the desktop window.
type Options struct {
	Config  config.FlappyConfig
	Runtime core.RuntimeConfig
	Store   *storage.Store // nil disables score saving
	Player  string
	Logger  *log.Logger
	Muted   bool
}

// Window is an ebiten.Game hosting one flappy session.
type Window struct {
	cfg      config.FlappyConfig
	runtime  core.RuntimeConfig
	session  *flappy.Session
	sounds   *soundBank
	recorder *storage.Recorder
	logger   *log.Logger

	images map[string]*ebiten.Image
	sheets map[string]*ebiten.Image
	face   *text.GoTextFaceSource

	ticks   int64
	clock   time.Duration
	started bool
}

// NewWindow builds the session and loads fonts.
func NewWindow(opts Options) (*Window, error) {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Config.World.Width <= 0 || opts.Config.World.Height <= 0 {
		opts.Config = config.DefaultFlappyConfig()
	}
	if opts.Runtime.TickRate <= 0 {
		opts.Runtime.TickRate = 60
	}
	if opts.Runtime.Seed == 0 {
		opts.Runtime.Seed = time.Now().UnixNano()
	}
	opts.Runtime.ScreenW = int(opts.Config.World.Width)
	opts.Runtime.ScreenH = int(opts.Config.World.Height)

	face, err := text.NewGoTextFaceSource(bytes.NewReader(fonts.PressStart2P_ttf))
	if err != nil {
		return nil, fmt.Errorf("desktop: load font: %w", err)
	}

	w := &Window{
		cfg:      opts.Config,
		runtime:  opts.Runtime,
		recorder: storage.NewRecorder(opts.Store, flappy.ID, opts.Player, opts.Logger),
		logger:   opts.Logger,
		sounds:   newSoundBank(opts.Logger, opts.Muted),
		images:   make(map[string]*ebiten.Image),
		sheets:   make(map[string]*ebiten.Image),
		face:     face,
	}
	w.session = flappy.NewSession(flappy.Options{
		Config: opts.Config,
		Sounds: w.sounds,
		Logger: opts.Logger,
	})
	w.session.OnInit(opts.Runtime)
	return w, nil
}

// Run opens the window and blocks until it is closed.
func (w *Window) Run() error {
	ebiten.SetWindowSize(w.runtime.ScreenW, w.runtime.ScreenH)
	ebiten.SetWindowTitle("Jet Flap")
	ebiten.SetTPS(w.runtime.TickRate)

	if err := ebiten.RunGame(w); err != nil {
		return fmt.Errorf("desktop: %w", err)
	}
	return nil
}

// start loads assets on the first frame, once the graphics driver is up.
func (w *Window) start() error {
	if err := w.session.OnLoadAssets(w); err != nil {
		return err
	}
	w.session.OnStart()
	w.started = true
	w.logger.Debug("window started", "tps", w.runtime.TickRate)
	return nil
}

// Update implements ebiten.Game.
func (w *Window) Update() error {
	if !w.started {
		if err := w.start(); err != nil {
			return err
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	if primaryPressed() {
		w.session.OnPrimaryInput(w.clock)
	}

	w.ticks++
	w.clock = w.runtime.TickTime(w.ticks)
	w.session.OnTick(w.clock)
	if _, err := w.recorder.Observe(w.session.State()); err != nil {
		w.logger.Error("could not save score", "err", err)
	}
	return nil
}

func primaryPressed() bool {
	return inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) ||
		inpututil.IsKeyJustPressed(ebiten.KeySpace) ||
		len(inpututil.AppendJustPressedTouchIDs(nil)) > 0
}

// Layout implements ebiten.Game. The play area has a fixed logical size.
func (w *Window) Layout(_, _ int) (int, int) {
	return w.runtime.ScreenW, w.runtime.ScreenH
}

// Draw implements ebiten.Game.
func (w *Window) Draw(screen *ebiten.Image) {
	if !w.started {
		return
	}

	w.drawBackground(screen)
	for _, wall := range w.session.Walls() {
		w.drawWall(screen, wall)
	}
	w.drawPlayer(screen)
	w.drawGround(screen)
	w.drawLabel(screen)
}

func (w *Window) drawBackground(screen *ebiten.Image) {
	tile := w.images["background"]
	if tile == nil {
		screen.Fill(skyColor)
		return
	}

	tw, th := tile.Bounds().Dx(), tile.Bounds().Dy()
	offset := math.Mod(w.session.BackgroundOffset(), float64(tw))
	if offset > 0 {
		offset -= float64(tw)
	}
	for y := 0; y < w.runtime.ScreenH; y += th {
		for x := offset; x < float64(w.runtime.ScreenW); x += float64(tw) {
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Translate(x, float64(y))
			screen.DrawImage(tile, op)
		}
	}
}

func (w *Window) drawWall(screen *ebiten.Image, wall *flappy.Wall) {
	b := wall.Body
	if img := w.images["wall"]; img != nil {
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(b.W()/float64(img.Bounds().Dx()), b.H()/float64(img.Bounds().Dy()))
		op.GeoM.Translate(b.X(), b.Y())
		screen.DrawImage(img, op)
	} else {
		vector.DrawFilledRect(screen, float32(b.X()), float32(b.Y()), float32(b.W()), float32(b.H()), wallColor, false)
	}

	capY := b.Y()
	if wall.Flipped {
		capY = b.Bottom() - capHeight
	}
	vector.DrawFilledRect(screen, float32(b.X()-3), float32(capY), float32(b.W()+6), capHeight, wallCapColor, false)
	vector.StrokeRect(screen, float32(b.X()-3), float32(capY), float32(b.W()+6), capHeight, 2, wallEdge, false)
}

func (w *Window) drawPlayer(screen *ebiten.Image) {
	p := w.session.Player()
	b := p.Body

	sheet := w.sheets["player"]
	if sheet == nil {
		vector.DrawFilledRect(screen, float32(b.X()), float32(b.Y()), float32(b.W()), float32(b.H()), bodyColor, false)
		return
	}

	frames := w.cfg.Player.FlyFrames + 1
	fw := sheet.Bounds().Dx() / frames
	fh := sheet.Bounds().Dy()
	frame := core.Clamp(p.Frame, 0, frames-1)
	sub := sheet.SubImage(image.Rect(frame*fw, 0, (frame+1)*fw, fh)).(*ebiten.Image)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(b.X(), b.Y())
	if w.session.Phase() == flappy.PhaseOver {
		op.ColorScale.ScaleWithColor(hurtColor)
	}
	screen.DrawImage(sub, op)
}

// drawGround draws a strip along the floor with ticks that move with the walls.
func (w *Window) drawGround(screen *ebiten.Image) {
	width := float32(w.runtime.ScreenW)
	y := float32(w.runtime.ScreenH - groundHeight)
	vector.DrawFilledRect(screen, 0, y, width, groundHeight, groundColor, false)

	factor := w.cfg.Background.ScrollFactor
	if factor <= 0 {
		factor = 1
	}
	shift := math.Mod(w.session.BackgroundOffset()/factor, 40)
	for x := float32(shift); x < width; x += 40 {
		if x >= 0 {
			vector.StrokeLine(screen, x, y, x+12, y+groundHeight, 2, wallEdge, false)
		}
	}
}

func (w *Window) drawLabel(screen *ebiten.Image) {
	clr := labelColor
	if w.session.Phase() == flappy.PhaseOver {
		clr = hurtColor
	}

	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(w.runtime.ScreenW)/2, float64(w.runtime.ScreenH)/5)
	op.ColorScale.ScaleWithColor(clr)
	op.LineSpacing = labelFontSize * 1.4
	op.PrimaryAlign = text.AlignCenter
	text.Draw(screen, w.session.Label(), &text.GoTextFace{
		Source: w.face,
		Size:   labelFontSize,
	}, op)

	if lvl := w.session.DifficultyLevel(); lvl > 0 {
		op = &text.DrawOptions{}
		op.GeoM.Translate(float64(w.runtime.ScreenW)-8, 8)
		op.ColorScale.ScaleWithColor(labelColor)
		op.PrimaryAlign = text.AlignEnd
		text.Draw(screen, fmt.Sprintf("LV %.0f%%", lvl*100), &text.GoTextFace{
			Source: w.face,
			Size:   hudFontSize,
		}, op)
	}
}
