package physics

import (
	"time"

	"github.com/solarlune/resolv"
)

// Broad-phase cell size in world pixels.
const cellSize = 16

// World owns a set of bodies, applies gravity and keeps bounded bodies inside.
type World struct {
	Gravity [2]float64
	Bounds  Rect
	Space   *resolv.Space

	bodies []*Body
}

// NewWorld creates a world of the given size with downward gravity.
func NewWorld(width, height, gravity float64) *World {
	return &World{
		Gravity: [2]float64{0, gravity},
		Bounds:  Rect{W: width, H: height},
		Space:   resolv.NewSpace(int(width), int(height), cellSize, cellSize),
	}
}

// Add registers a body with the world. Adding a body twice is a no-op.
func (w *World) Add(b *Body) {
	for _, existing := range w.bodies {
		if existing == b {
			return
		}
	}
	w.bodies = append(w.bodies, b)
	w.Space.Add(b.Object)
}

// Remove unregisters a body, keeping the order of the rest.
func (w *World) Remove(b *Body) {
	for i, existing := range w.bodies {
		if existing == b {
			w.bodies = append(w.bodies[:i], w.bodies[i+1:]...)
			w.Space.Remove(b.Object)
			return
		}
	}
}

// Len returns the number of registered bodies.
func (w *World) Len() int {
	return len(w.bodies)
}

// Step advances every body by dt: gravity into velocity, then velocity into
// position, then world-bounds containment.
func (w *World) Step(dt time.Duration) {
	secs := dt.Seconds()
	if secs <= 0 {
		return
	}

	for _, b := range w.bodies {
		b.Blocked = Blocked{}

		if b.AllowGravity && !b.Immovable {
			b.Vel[0] += w.Gravity[0] * secs
			b.Vel[1] += w.Gravity[1] * secs
		}

		b.Object.X += b.Vel[0] * secs
		b.Object.Y += b.Vel[1] * secs

		if b.CollideWorldBounds {
			w.contain(b)
		}
		b.Object.Update()
	}
}

// contain clamps a body into the world bounds and kills velocity on the
// blocked axis.
func (w *World) contain(b *Body) {
	obj := b.Object
	if obj.X < w.Bounds.X {
		obj.X = w.Bounds.X
		b.Vel[0] = 0
		b.Blocked.Left = true
	} else if b.Right() > w.Bounds.Right() {
		obj.X = w.Bounds.Right() - obj.W
		b.Vel[0] = 0
		b.Blocked.Right = true
	}

	if obj.Y < w.Bounds.Y {
		obj.Y = w.Bounds.Y
		b.Vel[1] = 0
		b.Blocked.Up = true
	} else if b.Bottom() > w.Bounds.Bottom() {
		obj.Y = w.Bounds.Bottom() - obj.H
		b.Vel[1] = 0
		b.Blocked.Down = true
	}
}

// Overlap reports whether two bodies overlap. Touching edges count.
func Overlap(a, b *Body) bool {
	return a.Object.Overlaps(b.Object)
}

// OverlapAny returns the first body in group that overlaps b, or nil.
// Bodies in a world are narrowed down through the space's cells first.
func OverlapAny(b *Body, group []*Body) *Body {
	if b.Object.Space == nil {
		for _, other := range group {
			if other != b && Overlap(b, other) {
				return other
			}
		}
		return nil
	}

	collision := b.Object.Check(0, 0)
	if collision == nil {
		return nil
	}
	near := make(map[*Body]bool, len(collision.Objects))
	for _, obj := range collision.Objects {
		if other, ok := obj.Data.(*Body); ok {
			near[other] = true
		}
	}
	for _, other := range group {
		if other != b && near[other] && Overlap(b, other) {
			return other
		}
	}
	return nil
}
