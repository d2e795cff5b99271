package flappy

import (
	"github.com/vovakirdan/jetflap/internal/physics"
)

// Wall is one half of a gap. Top walls are the flipped twin of a bottom wall.
type Wall struct {
	Body    *physics.Body
	Flipped bool
	Scored  bool
}

// spawnWall creates a wall whose gap edge sits opening/2 away from centerY
// and registers it with the world and roster.
func (s *Session) spawnWall(centerY, opening, speed float64, flipped bool) *Wall {
	w := s.cfg.Walls
	top := centerY + opening/2
	if flipped {
		top = centerY - opening/2 - w.Height
	}

	body := physics.NewBody(s.cfg.World.Width, top, w.Width, w.Height, "wall")
	body.AllowGravity = false
	body.Immovable = true
	body.Vel[0] = -speed

	wall := &Wall{Body: body, Flipped: flipped}
	s.world.Add(body)
	s.walls = append(s.walls, wall)
	return wall
}

// sweepWalls scores walls the player has reached and retires walls that left
// the screen. Removals are collected first and applied after the pass.
func (s *Session) sweepWalls() {
	left := s.world.Bounds.X
	playerX := s.player.Body.X()

	var gone []*Wall
	for _, w := range s.walls {
		if w.Body.Right() < left {
			gone = append(gone, w)
			continue
		}
		if !w.Scored && w.Body.X() <= playerX {
			s.addScore(w)
		}
	}
	s.removeWalls(gone)
}

func (s *Session) removeWalls(gone []*Wall) {
	if len(gone) == 0 {
		return
	}
	drop := make(map[*Wall]bool, len(gone))
	for _, w := range gone {
		drop[w] = true
		s.world.Remove(w.Body)
	}

	kept := s.walls[:0]
	for _, w := range s.walls {
		if !drop[w] {
			kept = append(kept, w)
		}
	}
	for i := len(kept); i < len(s.walls); i++ {
		s.walls[i] = nil
	}
	s.walls = kept
}

func (s *Session) clearWalls() {
	for _, w := range s.walls {
		s.world.Remove(w.Body)
	}
	s.walls = nil
}

func (s *Session) wallBodies() []*physics.Body {
	bodies := make([]*physics.Body, len(s.walls))
	for i, w := range s.walls {
		bodies[i] = w.Body
	}
	return bodies
}
