package flappy

import (
	"math/rand"
)

// Cue names a short sound clip.
type Cue string

const (
	CueJet   Cue = "jet"
	CueScore Cue = "score"
	CueHurt  Cue = "hurt"
)

// Sounds plays preloaded clips. Play must not block.
type Sounds interface {
	Play(cue Cue)
}

// SoundFunc adapts a function to the Sounds interface.
type SoundFunc func(cue Cue)

// Play calls f(cue).
func (f SoundFunc) Play(cue Cue) { f(cue) }

// Silent discards every cue.
type Silent struct{}

// Play does nothing.
func (Silent) Play(Cue) {}

// Random draws uniform integers.
type Random interface {
	// IntInRange returns an integer in [lo, hi], both inclusive.
	IntInRange(lo, hi int) int
}

type seededRandom struct {
	rng *rand.Rand
}

// NewRandom returns a deterministic Random for the given seed.
func NewRandom(seed int64) Random {
	return seededRandom{rng: rand.New(rand.NewSource(seed))}
}

func (r seededRandom) IntInRange(lo, hi int) int {
	if hi < lo {
		lo, hi = hi, lo
	}
	return lo + r.rng.Intn(hi-lo+1)
}

// AssetKind says how a host should load an asset.
type AssetKind int

const (
	AssetImage AssetKind = iota
	AssetSpritesheet
	AssetAudio
)

// Asset is one entry of the preload manifest.
type Asset struct {
	Kind   AssetKind
	Name   string
	Path   string
	FrameW int // spritesheets only
	FrameH int
}

// Preloader loads assets before the session starts.
type Preloader interface {
	Preload(a Asset) error
}

// Manifest lists every asset the game draws or plays.
func Manifest() []Asset {
	return []Asset{
		{Kind: AssetImage, Name: "wall", Path: "assets/wall.png"},
		{Kind: AssetImage, Name: "background", Path: "assets/background-texture.png"},
		{Kind: AssetSpritesheet, Name: "player", Path: "assets/player.png", FrameW: 48, FrameH: 48},
		{Kind: AssetAudio, Name: string(CueJet), Path: "assets/jet.wav"},
		{Kind: AssetAudio, Name: string(CueScore), Path: "assets/score.wav"},
		{Kind: AssetAudio, Name: string(CueHurt), Path: "assets/hurt.wav"},
	}
}
