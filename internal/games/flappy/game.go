// Package flappy implements Jet Flap: a one-button side-scroller where the
// player keeps a jet-powered sprite airborne and threads it through gaps in
// an endless stream of walls.
//
// Session holds the game rules and is driven by any host through its
// lifecycle callbacks. Game wraps a Session for the terminal platform.
package flappy

import (
	"fmt"
	"io"
	"math"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/jetflap/internal/config"
	"github.com/vovakirdan/jetflap/internal/core"
	"github.com/vovakirdan/jetflap/internal/registry"
)

// ID is the registry and score-table identifier.
const ID = "flappy"

// Visual characters for rendering
const (
	WallChar   = '█'
	CapChar    = '▓'
	GroundChar = '═'
	GroundTick = '╤'
	StarChar   = '·'
	FlameChar  = '≈'
)

// Flap frames plus the glide frame, indexed by Player.Frame.
var playerSprites = [...]string{`\o>`, `-o>`, `/o>`, `~o>`}

// How long a sound cue stays visible on screen.
const cueFlash = 150 * time.Millisecond

var (
	configPath       string
	difficultyPreset config.DifficultyPreset
	logger           = log.New(io.Discard)
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names fall back to
// the config file.
func SetDifficultyPreset(preset string) {
	p, err := config.ParsePreset(preset)
	if err != nil {
		logger.Warn("ignoring difficulty preset", "err", err)
		p = ""
	}
	difficultyPreset = p
}

// SetLogger sets the logger used by new game instances.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l
}

// LoadConfig resolves the flappy config the same way Game.Reset does.
func LoadConfig() config.FlappyConfig {
	cfg, err := config.LoadFlappy(configPath)
	if err != nil {
		logger.Warn("falling back to default config", "err", err)
		cfg = config.DefaultFlappyConfig()
	}
	config.ApplyFlappyPreset(&cfg, difficultyPreset)
	return cfg
}

// Game adapts a Session to the registry's fixed-tick interface.
type Game struct {
	session *Session
	runtime core.RuntimeConfig
	ticks   int64
	clock   time.Duration
	paused  bool

	sounds Sounds
	cueAt  map[Cue]time.Duration
}

// New creates a new Jet Flap game instance.
func New() *Game {
	return &Game{
		sounds: Silent{},
		cueAt:  make(map[Cue]time.Duration),
	}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return ID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Jet Flap"
}

// SetSounds routes sound cues to s in addition to the on-screen flashes.
func (g *Game) SetSounds(s Sounds) {
	if s == nil {
		s = Silent{}
	}
	g.sounds = s
}

// Reset builds a fresh session and starts it in the waiting phase.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.ticks = 0
	g.clock = 0
	g.paused = false
	clear(g.cueAt)

	g.session = NewSession(Options{
		Config: LoadConfig(),
		Sounds: SoundFunc(g.onCue),
		Logger: logger,
	})
	g.session.OnInit(runtime)
	g.session.OnStart()
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.session == nil {
		g.Reset(g.runtime)
	}

	if in.Has(core.ActionPause) && g.session.Phase() != PhaseOver {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionJump) {
		g.session.OnPrimaryInput(g.clock)
	}

	g.ticks++
	g.clock = g.runtime.TickTime(g.ticks)
	g.session.OnTick(g.clock)

	return core.StepResult{State: g.State()}
}

// Clock returns the simulated time since the last Reset.
func (g *Game) Clock() time.Duration {
	return g.clock
}

func (g *Game) onCue(c Cue) {
	g.cueAt[c] = g.clock
	g.sounds.Play(c)
}

func (g *Game) cueActive(c Cue) bool {
	at, ok := g.cueAt[c]
	return ok && g.clock-at <= cueFlash
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.session == nil {
		return core.GameState{Phase: PhaseWaiting.String()}
	}
	st := g.session.State()
	st.Paused = g.paused
	return st
}

// viewport maps world pixels onto terminal cells. The last row is reserved
// for the ground.
type viewport struct {
	sx, sy float64
	w, h   int
}

func (v viewport) col(x float64) int { return int(math.Floor(x * v.sx)) }
func (v viewport) row(y float64) int { return int(math.Floor(y * v.sy)) }

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.session == nil || dst.Width() <= 0 || dst.Height() < 2 {
		return
	}

	b := g.session.Bounds()
	v := viewport{
		w:  dst.Width(),
		h:  dst.Height() - 1,
		sx: float64(dst.Width()) / b.W,
		sy: float64(dst.Height()-1) / b.H,
	}

	g.drawBackdrop(dst, v)
	for _, w := range g.session.Walls() {
		g.drawWall(dst, v, w)
	}
	g.drawPlayer(dst, v)
	g.drawGround(dst, v)

	color := core.ColorLabel
	if g.session.Phase() == PhaseOver {
		color = core.ColorHurt
	}
	dst.DrawLinesCentered(dst.Height()/5, g.session.Label(), color)

	if g.session.diff.IsEnabled() {
		lvl := fmt.Sprintf(" Lv %.0f%% ", g.session.DifficultyLevel()*100)
		dst.DrawTextColored(dst.Width()-len(lvl)-1, 0, lvl, core.ColorMuted)
	}

	if g.paused {
		g.drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}
}

// drawBackdrop scatters sky streaks that scroll with the background offset.
func (g *Game) drawBackdrop(dst *core.Screen, v viewport) {
	shift := int(math.Floor(-g.session.BackgroundOffset() * v.sx))
	for y := 1; y < v.h; y += 3 {
		for x := (y * 7) % 11; x < v.w; x += 11 {
			dst.SetColored(wrap(x-shift, v.w), y, StarChar, core.ColorSky)
		}
	}
}

func (g *Game) drawWall(dst *core.Screen, v viewport, w *Wall) {
	x0 := v.col(w.Body.X())
	x1 := int(math.Ceil(w.Body.Right() * v.sx))
	y0 := v.row(w.Body.Y())
	y1 := int(math.Ceil(w.Body.Bottom() * v.sy))
	if x1 <= x0 {
		x1 = x0 + 1
	}

	body := core.NewRect(x0, y0, x1-x0, y1-y0).Clip(v.w, v.h)
	if body.Empty() {
		return
	}
	dst.DrawRectColored(body, WallChar, core.ColorWall)

	capY := y0
	if w.Flipped {
		capY = y1 - 1
	}
	lip := core.NewRect(x0-1, capY, x1-x0+2, 1).Clip(v.w, v.h)
	dst.DrawRectColored(lip, CapChar, core.ColorWallCap)
}

func (g *Game) drawPlayer(dst *core.Screen, v viewport) {
	p := g.session.Player()
	sprite := playerSprites[core.Clamp(p.Frame, 0, len(playerSprites)-1)]

	x := v.col(p.Body.X() + p.Body.W()/2) - 1
	y := core.Clamp(v.row(p.Body.Y()+p.Body.H()/2), 0, v.h-1)

	color := core.ColorPlayer
	if g.session.Phase() == PhaseOver {
		color = core.ColorHurt
	}
	dst.DrawTextColored(x, y, sprite, color)

	if g.cueActive(CueJet) {
		dst.SetColored(x-1, y, FlameChar, core.ColorFlame)
		if y+1 < v.h {
			dst.SetColored(x, y+1, FlameChar, core.ColorFlame)
		}
	}
}

// drawGround draws the floor row with tick marks that scroll with the walls.
func (g *Game) drawGround(dst *core.Screen, v viewport) {
	y := v.h
	factor := g.session.cfg.Background.ScrollFactor
	if factor <= 0 {
		factor = 1
	}
	shift := int(math.Floor(-g.session.BackgroundOffset() / factor * v.sx))
	for x := 0; x < v.w; x++ {
		r := GroundChar
		if wrap(x+shift, 8) == 0 {
			r = GroundTick
		}
		dst.SetColored(x, y, r, core.ColorGround)
	}
	if g.cueActive(CueScore) {
		score := " +" + FormatScore(wallScore) + " "
		dst.DrawTextColored(1, y, score, core.ColorLabel)
	}
}

// drawCenteredMessage draws a message box in the center of the screen.
func (g *Game) drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := core.Max(len(title), len(subtitle)) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	dst.DrawText(boxX+(boxW-len(title))/2, boxY+1, title)
	dst.DrawText(boxX+(boxW-len(subtitle))/2, boxY+3, subtitle)
}

func wrap(x, n int) int {
	if n <= 0 {
		return 0
	}
	return ((x % n) + n) % n
}

// Register the game with the registry
func init() {
	registry.Register(ID, func() registry.Game {
		return New()
	})
}
