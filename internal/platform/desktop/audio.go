package desktop

import (
	"bytes"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
	raudio "github.com/hajimehoshi/ebiten/v2/examples/resources/audio"

	"github.com/vovakirdan/jetflap/internal/games/flappy"
	"github.com/vovakirdan/jetflap/internal/platform/desktop/tone"
)

const sampleRate = 48000

// Only one audio context may exist per process.
var audioContext *audio.Context

// soundBank plays the game's cues. It implements flappy.Sounds.
type soundBank struct {
	players map[flappy.Cue]*audio.Player
	logger  *log.Logger
	muted   bool
}

func newSoundBank(logger *log.Logger, muted bool) *soundBank {
	if audioContext == nil && !muted {
		audioContext = audio.NewContext(sampleRate)
	}
	return &soundBank{
		players: make(map[flappy.Cue]*audio.Player),
		logger:  logger,
		muted:   muted,
	}
}

// load prepares the player for a cue.
func (b *soundBank) load(cue flappy.Cue) error {
	if b.muted {
		return nil
	}

	var (
		p   *audio.Player
		err error
	)
	switch cue {
	case flappy.CueJet:
		var s *vorbis.Stream
		if s, err = vorbis.DecodeWithoutResampling(bytes.NewReader(raudio.Jump_ogg)); err == nil {
			p, err = audioContext.NewPlayer(s)
		}
	case flappy.CueHurt:
		var s *wav.Stream
		if s, err = wav.DecodeWithoutResampling(bytes.NewReader(raudio.Jab_wav)); err == nil {
			p, err = audioContext.NewPlayer(s)
		}
	case flappy.CueScore:
		p = audioContext.NewPlayerFromBytes(tone.Chirp(sampleRate, 120*time.Millisecond, 880, 1760, 0.3))
	default:
		return fmt.Errorf("desktop: no sound for cue %q", cue)
	}
	if err != nil {
		return fmt.Errorf("desktop: load %s sound: %w", cue, err)
	}

	b.players[cue] = p
	return nil
}

// Play restarts the cue's clip from the beginning.
func (b *soundBank) Play(cue flappy.Cue) {
	b.logger.Debug("sound cue", "cue", cue)

	p, ok := b.players[cue]
	if !ok {
		return
	}
	if err := p.Rewind(); err != nil {
		b.logger.Warn("rewind failed", "cue", cue, "err", err)
		return
	}
	p.Play()
}
