package flappy

import (
	"time"

	"github.com/vovakirdan/jetflap/internal/physics"
)

// Animation is the sprite animation the player is showing.
type Animation int

const (
	AnimFly   Animation = iota // looping wing flap
	AnimGlide                  // single frame while sinking
)

// Player is the jet-powered sprite. It is created once per session and
// repositioned on every reset.
type Player struct {
	Body  *physics.Body
	Anim  Animation
	Frame int

	animStart time.Duration
}

func newPlayer(w, h float64) *Player {
	body := physics.NewBody(0, 0, w, h, "player")
	body.CollideWorldBounds = true
	return &Player{Body: body}
}

// fly keeps the flap loop running, restarting it if another animation was showing.
func (p *Player) fly(now time.Duration, fps, frames int) {
	if p.Anim != AnimFly {
		p.Anim = AnimFly
		p.animStart = now
	}
	if fps <= 0 || frames <= 0 {
		p.Frame = 0
		return
	}
	elapsed := now - p.animStart
	if elapsed < 0 {
		elapsed = 0
	}
	p.Frame = int(elapsed*time.Duration(fps)/time.Second) % frames
}

// glide shows the frame after the flap loop.
func (p *Player) glide(frames int) {
	p.Anim = AnimGlide
	p.Frame = frames
}
