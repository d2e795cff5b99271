package flappy

import (
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/jetflap/internal/config"
	"github.com/vovakirdan/jetflap/internal/core"
)

type fixedRandom struct {
	value  int
	lo, hi int
}

func (r *fixedRandom) IntInRange(lo, hi int) int {
	r.lo, r.hi = lo, hi
	return r.value
}

type cueRecorder struct {
	cues []Cue
}

func (r *cueRecorder) Play(c Cue) { r.cues = append(r.cues, c) }

func (r *cueRecorder) count(c Cue) int {
	n := 0
	for _, got := range r.cues {
		if got == c {
			n++
		}
	}
	return n
}

func newTestSession(t *testing.T, center int) (*Session, *cueRecorder) {
	t.Helper()
	rec := &cueRecorder{}
	s := NewSession(Options{
		Config: config.DefaultFlappyConfig(),
		Random: &fixedRandom{value: center},
		Sounds: rec,
	})
	s.OnInit(core.DefaultConfig())
	if err := s.OnLoadAssets(nil); err != nil {
		t.Fatalf("OnLoadAssets(nil) failed: %v", err)
	}
	s.OnStart()
	return s, rec
}

func TestNewSessionIsWaiting(t *testing.T) {
	s, rec := newTestSession(t, 240)

	if s.Phase() != PhaseWaiting {
		t.Fatalf("Expected waiting phase, got %v", s.Phase())
	}
	if s.Score() != 0 {
		t.Errorf("Expected score 0, got %v", s.Score())
	}
	if s.Label() != "TOUCH TO\nSTART GAME" {
		t.Errorf("Unexpected label %q", s.Label())
	}
	if len(s.Walls()) != 0 {
		t.Errorf("Expected no walls, got %d", len(s.Walls()))
	}
	if s.SpawnRunning() {
		t.Error("Spawn timer should not run while waiting")
	}
	p := s.Player().Body
	if p.X() != 200 || p.Y() != 240 {
		t.Errorf("Expected player at (200,240), got (%v,%v)", p.X(), p.Y())
	}
	if p.AllowGravity {
		t.Error("Gravity should be off while waiting")
	}
	if len(rec.cues) != 0 {
		t.Errorf("Expected no cues, got %v", rec.cues)
	}
}

func TestWaitingHover(t *testing.T) {
	s, _ := newTestSession(t, 240)

	for _, now := range []time.Duration{0, 100 * time.Millisecond, 750 * time.Millisecond, 2 * time.Second} {
		s.OnTick(now)
		want := 240 + 8*math.Cos(float64(now)/float64(200*time.Millisecond))
		if got := s.Player().Body.Y(); math.Abs(got-want) > 1e-9 {
			t.Errorf("At %v: expected y=%v, got %v", now, want, got)
		}
		if s.Phase() != PhaseWaiting || s.Score() != 0 {
			t.Errorf("At %v: hover changed phase or score", now)
		}
	}
	if len(s.Walls()) != 0 {
		t.Error("Walls spawned while waiting")
	}
}

func TestFirstInputStartsAndJets(t *testing.T) {
	s, rec := newTestSession(t, 240)

	s.OnPrimaryInput(0)

	if s.Phase() != PhasePlaying {
		t.Fatalf("Expected playing phase, got %v", s.Phase())
	}
	p := s.Player().Body
	if !p.AllowGravity {
		t.Error("Gravity should be on while playing")
	}
	if p.Vel[1] != -420 {
		t.Errorf("Expected jet velocity -420, got %v", p.Vel[1])
	}
	if s.Label() != "SCORE\n0" {
		t.Errorf("Unexpected label %q", s.Label())
	}
	if !s.SpawnRunning() {
		t.Error("Spawn timer should run after start")
	}
	if rec.count(CueJet) != 1 {
		t.Errorf("Expected one jet cue, got %v", rec.cues)
	}

	p.Vel[1] = 0
	s.OnPrimaryInput(10 * time.Millisecond)
	if p.Vel[1] != -420 {
		t.Errorf("Expected jet to overwrite velocity, got %v", p.Vel[1])
	}
	if rec.count(CueJet) != 2 {
		t.Errorf("Expected two jet cues, got %v", rec.cues)
	}
}

func TestSpawnTimerCreatesWallPair(t *testing.T) {
	rnd := &fixedRandom{value: 240}
	s := NewSession(Options{Config: config.DefaultFlappyConfig(), Random: rnd})
	s.OnInit(core.DefaultConfig())
	s.OnStart()

	if walls := s.OnSpawnTimer(); walls != nil {
		t.Fatalf("Spawn while waiting returned %d walls", len(walls))
	}

	s.OnPrimaryInput(0)
	walls := s.OnSpawnTimer()
	if len(walls) != 2 {
		t.Fatalf("Expected 2 walls, got %d", len(walls))
	}
	if rnd.lo != 144 || rnd.hi != 336 {
		t.Errorf("Expected gap centre range [144,336], got [%d,%d]", rnd.lo, rnd.hi)
	}

	bottom, top := walls[0], walls[1]
	if bottom.Flipped || !top.Flipped {
		t.Fatal("Expected bottom wall then flipped top wall")
	}
	if bottom.Body.Y() != 340 {
		t.Errorf("Expected bottom wall top at 340, got %v", bottom.Body.Y())
	}
	if top.Body.Bottom() != 140 {
		t.Errorf("Expected top wall bottom at 140, got %v", top.Body.Bottom())
	}
	for _, w := range walls {
		if w.Body.X() != 800 {
			t.Errorf("Expected wall at right edge, got x=%v", w.Body.X())
		}
		if w.Body.Vel[0] != -200 {
			t.Errorf("Expected wall velocity -200, got %v", w.Body.Vel[0])
		}
		if w.Body.AllowGravity || w.Scored {
			t.Error("New wall must ignore gravity and be unscored")
		}
	}
	if len(s.Walls()) != 2 {
		t.Errorf("Expected roster of 2, got %d", len(s.Walls()))
	}
}

func TestSpawnTimerFiresOnSchedule(t *testing.T) {
	s, _ := newTestSession(t, 240)
	s.OnPrimaryInput(0)

	step := time.Second / 60
	var now time.Duration
	for now < 1200*time.Millisecond {
		now += step
		s.OnTick(now)
		if s.Player().Body.Y() > 240 {
			s.OnPrimaryInput(now)
		}
	}
	if len(s.Walls()) != 0 {
		t.Fatalf("Walls spawned early: %d", len(s.Walls()))
	}

	for now < 1300*time.Millisecond {
		now += step
		s.OnTick(now)
		if s.Player().Body.Y() > 240 {
			s.OnPrimaryInput(now)
		}
	}
	if s.Phase() != PhasePlaying {
		t.Fatalf("Expected to still be playing, got %v", s.Phase())
	}
	if len(s.Walls()) != 2 {
		t.Errorf("Expected one wall pair after 1.25s, got %d walls", len(s.Walls()))
	}
}

func TestScoringPerWall(t *testing.T) {
	s, rec := newTestSession(t, 240)
	s.OnPrimaryInput(0)
	walls := s.OnSpawnTimer()

	p := s.Player().Body
	p.SetPosition(p.X(), 216)
	p.Vel[1] = 0

	walls[0].Body.SetPosition(199, walls[0].Body.Y())
	s.OnFrameTick(time.Second)
	if s.Score() != 0.5 {
		t.Fatalf("Expected score 0.5, got %v", s.Score())
	}
	if s.Label() != "SCORE\n0.5" {
		t.Errorf("Unexpected label %q", s.Label())
	}

	walls[1].Body.SetPosition(200, walls[1].Body.Y())
	s.OnFrameTick(time.Second)
	s.OnFrameTick(time.Second)
	if s.Score() != 1 {
		t.Errorf("Expected score 1, got %v", s.Score())
	}
	if s.Label() != "SCORE\n1" {
		t.Errorf("Unexpected label %q", s.Label())
	}
	if rec.count(CueScore) != 2 {
		t.Errorf("Expected two score cues, got %v", rec.cues)
	}
	if s.Phase() != PhasePlaying {
		t.Errorf("Passing through the gap ended the run: %v", s.Phase())
	}
}

func TestWallsLeavingScreenAreRemoved(t *testing.T) {
	s, _ := newTestSession(t, 240)
	s.OnPrimaryInput(0)
	walls := s.OnSpawnTimer()
	s.Player().Body.SetPosition(s.Player().Body.X(), 216)

	for _, w := range walls {
		w.Body.SetPosition(-w.Body.W()-1, w.Body.Y())
	}
	s.OnFrameTick(time.Second)

	if len(s.Walls()) != 0 {
		t.Errorf("Expected walls removed, got %d", len(s.Walls()))
	}
	if s.world.Len() != 1 {
		t.Errorf("Expected only the player in the world, got %d bodies", s.world.Len())
	}
	if s.Score() != 0 {
		t.Errorf("Removed walls must not score, got %v", s.Score())
	}
}

func TestWallsScrollPastPlayer(t *testing.T) {
	s, rec := newTestSession(t, 240)
	s.OnPrimaryInput(0)
	p := s.Player().Body

	checkpoints := map[int]float64{300: 1, 380: 2, 474: 3}
	live := make(map[*Wall]bool)
	removed := make(map[*Wall]bool)

	for i := 1; i <= 474; i++ {
		p.SetPosition(p.X(), 216)
		p.Vel[1] = 0
		s.OnTick(time.Duration(i) * time.Second / 60)

		if s.Phase() != PhasePlaying {
			t.Fatalf("Tick %d: run ended in the gap", i)
		}

		current := make(map[*Wall]bool, len(s.Walls()))
		for _, w := range s.Walls() {
			if removed[w] {
				t.Fatalf("Tick %d: removed wall is back in the roster", i)
			}
			current[w] = true
		}
		for w := range live {
			if !current[w] {
				removed[w] = true
			}
		}
		live = current

		if s.world.Len() != len(s.Walls())+1 {
			t.Fatalf("Tick %d: world has %d bodies for %d walls", i, s.world.Len(), len(s.Walls()))
		}
		if want, ok := checkpoints[i]; ok && s.Score() != want {
			t.Errorf("Tick %d: expected score %v, got %v", i, want, s.Score())
		}
	}

	if s.Score() != 3 || s.Passed() != 6 {
		t.Errorf("Expected score 3 from 6 walls, got %v from %d", s.Score(), s.Passed())
	}
	if len(removed) != 4 {
		t.Errorf("Expected 4 walls removed, got %d", len(removed))
	}
	if len(s.Walls()) != 8 {
		t.Errorf("Expected 8 live walls, got %d", len(s.Walls()))
	}
	for w := range removed {
		if !w.Scored {
			t.Error("A wall left the screen without scoring")
		}
	}
	if rec.count(CueScore) != 6 || rec.count(CueHurt) != 0 {
		t.Errorf("Unexpected cues: %v", rec.cues)
	}
}

func TestFloorContactEndsRun(t *testing.T) {
	s, rec := newTestSession(t, 240)
	s.OnPrimaryInput(0)
	walls := s.OnSpawnTimer()

	s.Player().Body.SetPosition(s.Player().Body.X(), 480-48)
	s.OnFrameTick(2 * time.Second)

	if s.Phase() != PhaseOver {
		t.Fatalf("Expected over phase, got %v", s.Phase())
	}
	if s.SpawnRunning() {
		t.Error("Spawn timer should stop on game over")
	}
	for _, w := range walls {
		if w.Body.Vel[0] != 0 || w.Body.Vel[1] != 0 {
			t.Errorf("Wall still moving: %v", w.Body.Vel)
		}
	}
	if s.Player().Body.Vel[0] != 0 {
		t.Error("Player horizontal velocity should be zero")
	}
	if rec.count(CueHurt) != 1 {
		t.Errorf("Expected one hurt cue, got %v", rec.cues)
	}
	if s.Label() != "FINAL SCORE\n0\n\nTOUCH TO\nTRY AGAIN" {
		t.Errorf("Unexpected label %q", s.Label())
	}
	if s.OnSpawnTimer() != nil {
		t.Error("Spawn after game over must produce nothing")
	}
}

func TestDoubleCollisionSingleTransition(t *testing.T) {
	s, rec := newTestSession(t, 240)
	s.OnPrimaryInput(0)
	walls := s.OnSpawnTimer()

	walls[0].Body.SetPosition(200, walls[0].Body.Y())
	s.Player().Body.SetPosition(s.Player().Body.X(), 480-48)
	s.OnFrameTick(time.Second)

	if s.Phase() != PhaseOver {
		t.Fatalf("Expected over phase, got %v", s.Phase())
	}
	if rec.count(CueHurt) != 1 {
		t.Errorf("Expected exactly one hurt cue, got %v", rec.cues)
	}
	if s.Score() != 0.5 {
		t.Errorf("Wall reached in the collision frame should still score, got %v", s.Score())
	}
	if s.Label() != "FINAL SCORE\n0.5\n\nTOUCH TO\nTRY AGAIN" {
		t.Errorf("Unexpected label %q", s.Label())
	}

	s.OnFrameTick(time.Second + time.Millisecond)
	if rec.count(CueHurt) != 1 {
		t.Errorf("Game over fired again: %v", rec.cues)
	}
}

func TestWallOverlapEndsRun(t *testing.T) {
	s, _ := newTestSession(t, 240)
	s.OnPrimaryInput(0)
	walls := s.OnSpawnTimer()

	walls[1].Body.SetPosition(220, walls[1].Body.Y())
	s.Player().Body.SetPosition(s.Player().Body.X(), 120)
	s.OnFrameTick(time.Second)

	if s.Phase() != PhaseOver {
		t.Fatalf("Expected over phase, got %v", s.Phase())
	}
}

func TestResetCooldown(t *testing.T) {
	s, rec := newTestSession(t, 240)
	s.OnPrimaryInput(0)
	s.OnSpawnTimer()

	over := time.Second
	s.Player().Body.SetPosition(s.Player().Body.X(), 480-48)
	s.OnFrameTick(over)
	velBefore := s.Player().Body.Vel[1]

	s.OnPrimaryInput(over + 399*time.Millisecond)
	if s.Phase() != PhaseOver {
		t.Fatalf("Reset before cooldown: %v", s.Phase())
	}
	if s.Player().Body.Vel[1] != velBefore || rec.count(CueJet) != 1 {
		t.Error("Input during game over must not jet")
	}

	s.OnPrimaryInput(over + 400*time.Millisecond)
	if s.Phase() != PhaseWaiting {
		t.Fatalf("Expected waiting after cooldown, got %v", s.Phase())
	}
	if s.Score() != 0 || len(s.Walls()) != 0 {
		t.Errorf("Reset left score=%v walls=%d", s.Score(), len(s.Walls()))
	}
	if s.world.Len() != 1 {
		t.Errorf("Expected only the player in the world, got %d bodies", s.world.Len())
	}
	p := s.Player().Body
	if p.AllowGravity || p.X() != 200 || p.Y() != 240 {
		t.Errorf("Player not reset: gravity=%v pos=(%v,%v)", p.AllowGravity, p.X(), p.Y())
	}
	if s.Label() != "TOUCH TO\nSTART GAME" {
		t.Errorf("Unexpected label %q", s.Label())
	}

	// Reset must land in Waiting; the next input starts a fresh run.
	s.OnPrimaryInput(over + time.Second)
	if s.Phase() != PhasePlaying {
		t.Errorf("Expected playing after restart, got %v", s.Phase())
	}
}

func TestStoppedSpawnTimerStaysQuiet(t *testing.T) {
	s, _ := newTestSession(t, 240)
	s.OnPrimaryInput(0)
	s.Player().Body.SetPosition(s.Player().Body.X(), 480-48)
	s.OnFrameTick(0)

	s.OnTick(10 * time.Second)
	if len(s.Walls()) != 0 {
		t.Errorf("Walls spawned after game over: %d", len(s.Walls()))
	}
}

func TestBackgroundScroll(t *testing.T) {
	s, _ := newTestSession(t, 240)

	s.OnTick(time.Second)
	if got := s.BackgroundOffset(); math.Abs(got+160) > 1e-9 {
		t.Fatalf("Expected offset -160 after 1s, got %v", got)
	}

	s.OnPrimaryInput(time.Second)
	s.Player().Body.SetPosition(s.Player().Body.X(), 480-48)
	s.OnFrameTick(time.Second)
	frozen := s.BackgroundOffset()

	s.OnTick(3 * time.Second)
	if s.BackgroundOffset() != frozen {
		t.Errorf("Background kept scrolling after game over: %v -> %v", frozen, s.BackgroundOffset())
	}
}

func TestAnimationFollowsVelocity(t *testing.T) {
	s, _ := newTestSession(t, 240)
	s.OnPrimaryInput(0)
	p := s.Player()

	p.Body.Vel[1] = 0
	s.OnFrameTick(100 * time.Millisecond)
	if p.Anim != AnimGlide || p.Frame != 3 {
		t.Errorf("Expected glide frame 3, got anim=%v frame=%d", p.Anim, p.Frame)
	}

	p.Body.Vel[1] = -420
	s.OnFrameTick(200 * time.Millisecond)
	if p.Anim != AnimFly || p.Frame != 0 {
		t.Errorf("Expected fly loop restarted at frame 0, got anim=%v frame=%d", p.Anim, p.Frame)
	}

	s.OnFrameTick(350 * time.Millisecond)
	if p.Frame != 1 {
		t.Errorf("Expected frame 1 after 150ms at 10fps, got %d", p.Frame)
	}
}

func TestSameSeedSameWalls(t *testing.T) {
	run := func() []float64 {
		s := NewSession(Options{Config: config.DefaultFlappyConfig()})
		s.OnInit(core.RuntimeConfig{Seed: 99})
		s.OnStart()
		s.OnPrimaryInput(0)

		var ys []float64
		for i := 0; i < 5; i++ {
			for _, w := range s.OnSpawnTimer() {
				ys = append(ys, w.Body.Y())
			}
		}
		return ys
	}

	a, b := run(), run()
	if len(a) != 10 {
		t.Fatalf("Expected 10 walls, got %d", len(a))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("Wall %d differs: %v vs %v", i, a[i], b[i])
		}
	}
}

type recordingPreloader struct {
	loaded []string
	failOn string
}

var errMissing = errors.New("missing file")

func (p *recordingPreloader) Preload(a Asset) error {
	if a.Name == p.failOn {
		return errMissing
	}
	p.loaded = append(p.loaded, a.Name)
	return nil
}

func TestOnLoadAssets(t *testing.T) {
	s := NewSession(Options{})

	p := &recordingPreloader{}
	if err := s.OnLoadAssets(p); err != nil {
		t.Fatalf("OnLoadAssets failed: %v", err)
	}
	if len(p.loaded) != len(Manifest()) {
		t.Errorf("Expected %d assets, got %v", len(Manifest()), p.loaded)
	}

	err := s.OnLoadAssets(&recordingPreloader{failOn: "player"})
	if !errors.Is(err, errMissing) {
		t.Fatalf("Expected wrapped errMissing, got %v", err)
	}
	if !strings.Contains(err.Error(), "player") {
		t.Errorf("Error should name the asset: %v", err)
	}
}

func TestTickBeforeStartIsNoop(t *testing.T) {
	s := NewSession(Options{})
	s.OnTick(time.Second)
	s.OnFrameTick(time.Second)
	s.OnPrimaryInput(time.Second)

	if s.Phase() != PhaseWaiting {
		t.Errorf("Expected waiting, got %v", s.Phase())
	}
}

func TestFormatScore(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{0.5, "0.5"},
		{1, "1"},
		{12.5, "12.5"},
	}
	for _, tt := range tests {
		if got := FormatScore(tt.in); got != tt.want {
			t.Errorf("FormatScore(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
