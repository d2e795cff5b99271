package flappy

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/jetflap/internal/config"
	"github.com/vovakirdan/jetflap/internal/core"
	"github.com/vovakirdan/jetflap/internal/physics"
	"github.com/vovakirdan/jetflap/internal/scheduler"
)

// Phase is the session's position in the Waiting -> Playing -> Over cycle.
type Phase int

const (
	PhaseWaiting Phase = iota
	PhasePlaying
	PhaseOver
)

func (p Phase) String() string {
	switch p {
	case PhaseWaiting:
		return "waiting"
	case PhasePlaying:
		return "playing"
	case PhaseOver:
		return "over"
	default:
		return "unknown"
	}
}

// Score gained for each wall the player passes. Both halves of a gap count.
const wallScore = 0.5

// Lifecycle is the set of callbacks a host drives.
type Lifecycle interface {
	OnInit(rt core.RuntimeConfig)
	OnLoadAssets(p Preloader) error
	OnStart()
	OnTick(now time.Duration)
}

var _ Lifecycle = (*Session)(nil)

// Options configures a Session. Zero values get working defaults.
type Options struct {
	Config config.FlappyConfig
	Random Random
	Sounds Sounds
	Logger *log.Logger
}

// Session is the game session controller. It is owned by exactly one host
// and is only touched from that host's frame and input callbacks.
type Session struct {
	cfg    config.FlappyConfig
	diff   *config.DifficultyManager
	rnd    Random
	sounds Sounds
	logger *log.Logger

	world  *physics.World
	player *Player
	walls  []*Wall
	spawn  *scheduler.Loop

	phase     Phase
	score     float64
	passed    int
	label     string
	now       time.Duration
	startedAt time.Duration
	overAt    time.Duration

	bgOffset float64
	bgSpeed  float64
}

// NewSession creates a session. The host must call OnInit, OnLoadAssets and
// OnStart before ticking it.
func NewSession(opts Options) *Session {
	if opts.Config.World.Width <= 0 || opts.Config.World.Height <= 0 {
		opts.Config = config.DefaultFlappyConfig()
	}
	if opts.Sounds == nil {
		opts.Sounds = Silent{}
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	return &Session{
		cfg:    opts.Config,
		diff:   config.NewDifficultyManager(opts.Config.Difficulty),
		rnd:    opts.Random,
		sounds: opts.Sounds,
		logger: opts.Logger,
	}
}

// OnInit prepares collaborators that depend on the runtime.
func (s *Session) OnInit(rt core.RuntimeConfig) {
	if s.rnd == nil {
		s.rnd = NewRandom(rt.Seed)
	}
}

// OnLoadAssets hands every manifest entry to the host's loader.
// A nil loader means the host draws without assets.
func (s *Session) OnLoadAssets(p Preloader) error {
	if p == nil {
		return nil
	}
	for _, a := range Manifest() {
		if err := p.Preload(a); err != nil {
			return fmt.Errorf("flappy: preload %s (%s): %w", a.Name, a.Path, err)
		}
	}
	return nil
}

// OnStart builds the world, the player and the spawn timer, then resets.
func (s *Session) OnStart() {
	if s.rnd == nil {
		s.rnd = NewRandom(time.Now().UnixNano())
	}

	s.world = physics.NewWorld(s.cfg.World.Width, s.cfg.World.Height, s.cfg.Physics.Gravity)
	s.player = newPlayer(s.cfg.Player.Width, s.cfg.Player.Height)
	s.world.Add(s.player.Body)
	s.spawn = scheduler.NewLoop(s.cfg.Walls.SpawnInterval, func() { s.OnSpawnTimer() })

	s.Reset()
}

// OnTick advances physics, the background and the spawn timer to now, then
// runs the per-frame game logic.
func (s *Session) OnTick(now time.Duration) {
	if s.world == nil {
		return
	}

	dt := now - s.now
	if dt < 0 {
		dt = 0
	}
	s.now = now

	s.world.Step(dt)
	s.bgOffset += s.bgSpeed * dt.Seconds()
	s.spawn.Advance(now)
	s.OnFrameTick(now)
}

// OnFrameTick runs the per-frame game logic: hovering while waiting, and
// animation, collision and scoring once a run has started.
func (s *Session) OnFrameTick(now time.Duration) {
	if s.world == nil {
		return
	}

	if s.phase == PhaseWaiting {
		s.hover(now)
		return
	}

	if s.player.Body.Vel[1] > s.cfg.Physics.GlideThreshold {
		s.player.glide(s.cfg.Player.FlyFrames)
	} else {
		s.player.fly(now, s.cfg.Player.FlyFPS, s.cfg.Player.FlyFrames)
	}

	if s.phase != PhasePlaying {
		return
	}

	if s.player.Body.Bottom() >= s.world.Bounds.Bottom() {
		s.setGameOver(now)
	}
	if physics.OverlapAny(s.player.Body, s.wallBodies()) != nil {
		s.setGameOver(now)
	}
	s.sweepWalls()
}

// OnSpawnTimer creates one wall pair around a random gap centre.
// Returns nil unless a run is in progress.
func (s *Session) OnSpawnTimer() []*Wall {
	if s.phase != PhasePlaying || s.world == nil {
		return nil
	}

	h := s.cfg.World.Height
	centerY := float64(s.rnd.IntInRange(int(h*s.cfg.Walls.MinCenter), int(h*s.cfg.Walls.MaxCenter)))

	elapsed := s.now - s.startedAt
	speed := s.diff.Speed(s.cfg.Physics.Speed, s.score, elapsed)
	opening := s.diff.Opening(s.cfg.Walls.Opening, 2*s.cfg.Player.Height, s.score, elapsed)

	bottom := s.spawnWall(centerY, opening, speed, false)
	top := s.spawnWall(centerY, opening, speed, true)

	if s.diff.IsEnabled() {
		s.spawn.Period = s.diff.SpawnInterval(s.cfg.Walls.SpawnInterval, s.score, elapsed)
	}

	s.logger.Debug("walls spawned", "center", centerY, "opening", opening, "speed", speed)
	return []*Wall{bottom, top}
}

// OnPrimaryInput handles the click/tap/space action.
func (s *Session) OnPrimaryInput(now time.Duration) {
	if s.world == nil {
		return
	}

	switch s.phase {
	case PhaseWaiting:
		s.start(now)
		s.jet()
	case PhasePlaying:
		s.jet()
	case PhaseOver:
		if now-s.overAt >= s.cfg.Timing.ResetCooldown {
			s.Reset()
		}
	}
}

// Reset returns the session to Waiting with a clean slate.
func (s *Session) Reset() {
	if s.world == nil {
		return
	}
	prev := s.phase

	s.phase = PhaseWaiting
	s.score = 0
	s.passed = 0
	s.overAt = 0
	s.startedAt = 0

	s.spawn.Stop()
	s.spawn.Period = s.cfg.Walls.SpawnInterval
	s.clearWalls()

	s.player.Body.AllowGravity = false
	s.player.Body.Reset(s.cfg.World.Width*s.cfg.Player.StartX, s.cfg.World.Height/2)
	s.player.Anim = AnimGlide
	s.player.fly(s.now, s.cfg.Player.FlyFPS, s.cfg.Player.FlyFrames)

	s.bgSpeed = -s.cfg.Physics.Speed * s.cfg.Background.ScrollFactor
	s.refreshLabel()

	s.logger.Debug("session reset", "from", prev)
}

func (s *Session) start(now time.Duration) {
	s.phase = PhasePlaying
	s.startedAt = now
	s.player.Body.AllowGravity = true
	s.refreshLabel()
	s.spawn.Start(now)

	s.logger.Debug("run started", "at", now)
}

func (s *Session) jet() {
	s.player.Body.Vel[1] = -s.cfg.Physics.Jet
	s.sounds.Play(CueJet)
}

func (s *Session) addScore(w *Wall) {
	w.Scored = true
	s.passed++
	s.score += wallScore
	s.refreshLabel()
	s.sounds.Play(CueScore)
}

// setGameOver freezes the run. Calling it twice in one frame is a no-op.
func (s *Session) setGameOver(now time.Duration) {
	if s.phase == PhaseOver {
		return
	}

	s.phase = PhaseOver
	s.overAt = now
	s.player.Body.Vel[0] = 0
	for _, w := range s.walls {
		w.Body.Stop()
	}
	s.spawn.Stop()
	s.bgSpeed = 0
	s.refreshLabel()
	s.sounds.Play(CueHurt)

	s.logger.Debug("game over", "score", s.score, "run", now-s.startedAt)
}

// refreshLabel rewrites the centre text for the current phase and score.
func (s *Session) refreshLabel() {
	switch s.phase {
	case PhaseWaiting:
		s.label = "TOUCH TO\nSTART GAME"
	case PhasePlaying:
		s.label = "SCORE\n" + FormatScore(s.score)
	case PhaseOver:
		s.label = "FINAL SCORE\n" + FormatScore(s.score) + "\n\nTOUCH TO\nTRY AGAIN"
	}
}

func (s *Session) hover(now time.Duration) {
	period := s.cfg.Timing.HoverPeriod
	if period <= 0 {
		period = 200 * time.Millisecond
	}
	phase := float64(now) / float64(period)
	s.player.Body.SetPosition(s.player.Body.X(), s.cfg.World.Height/2+s.cfg.Timing.HoverAmplitude*math.Cos(phase))
	s.player.fly(now, s.cfg.Player.FlyFPS, s.cfg.Player.FlyFrames)
}

// Phase returns the current phase.
func (s *Session) Phase() Phase { return s.phase }

// Score returns the current score.
func (s *Session) Score() float64 { return s.score }

// Label returns the centre text the host should display.
func (s *Session) Label() string { return s.label }

// Player returns the player sprite.
func (s *Session) Player() *Player { return s.player }

// Walls returns the live wall roster. Callers must not modify it.
func (s *Session) Walls() []*Wall { return s.walls }

// Bounds returns the visible world area.
func (s *Session) Bounds() physics.Rect {
	if s.world == nil {
		return physics.Rect{W: s.cfg.World.Width, H: s.cfg.World.Height}
	}
	return s.world.Bounds
}

// BackgroundOffset returns how far the backdrop has scrolled, in pixels.
func (s *Session) BackgroundOffset() float64 { return s.bgOffset }

// SpawnRunning reports whether the spawn timer is armed.
func (s *Session) SpawnRunning() bool { return s.spawn != nil && s.spawn.Running() }

// Config returns the configuration the session runs with.
func (s *Session) Config() config.FlappyConfig { return s.cfg }

// DifficultyLevel returns the current difficulty level (0 when disabled).
func (s *Session) DifficultyLevel() float64 {
	return s.diff.Level(s.score, s.Elapsed())
}

// Elapsed returns how long the current or last run has lasted.
func (s *Session) Elapsed() time.Duration {
	switch s.phase {
	case PhasePlaying:
		return s.now - s.startedAt
	case PhaseOver:
		return s.overAt - s.startedAt
	default:
		return 0
	}
}

// Passed returns how many walls the player has passed in the current run.
func (s *Session) Passed() int { return s.passed }

// State summarises the session for hosts.
func (s *Session) State() core.GameState {
	return core.GameState{
		Score:    s.score,
		Walls:    s.passed,
		GameOver: s.phase == PhaseOver,
		Phase:    s.phase.String(),
		Elapsed:  s.Elapsed(),
	}
}

// FormatScore renders a score the way the label shows it: "0", "0.5", "12".
func FormatScore(score float64) string {
	return strconv.FormatFloat(score, 'f', -1, 64)
}
