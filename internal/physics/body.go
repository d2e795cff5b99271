// Package physics is a small arcade-style physics world: axis-aligned bodies
// with velocity, optional gravity, world-bounds containment and overlap tests.
// Bodies are resolv objects, so the world's resolv.Space does the broad phase.
package physics

import "github.com/solarlune/resolv"

// Blocked records which world edges a body touched during the last step.
type Blocked struct {
	Up, Down, Left, Right bool
}

// Any reports whether the body touched any edge.
func (b Blocked) Any() bool {
	return b.Up || b.Down || b.Left || b.Right
}

// Body is an axis-aligned box moved by the world.
// The resolv object holds the top-left corner and size; units are world
// pixels and pixels/second.
type Body struct {
	Object *resolv.Object
	Vel    [2]float64

	AllowGravity       bool
	Immovable          bool
	CollideWorldBounds bool

	Blocked Blocked
}

// NewBody creates a body at (x, y) with the given size. Tags are passed to
// the resolv object.
func NewBody(x, y, w, h float64, tags ...string) *Body {
	obj := resolv.NewObject(x, y, w, h, tags...)
	obj.SetShape(resolv.NewRectangle(0, 0, w, h))

	b := &Body{Object: obj}
	obj.Data = b
	return b
}

// X returns the left edge.
func (b *Body) X() float64 { return b.Object.X }

// Y returns the top edge.
func (b *Body) Y() float64 { return b.Object.Y }

// W returns the width.
func (b *Body) W() float64 { return b.Object.W }

// H returns the height.
func (b *Body) H() float64 { return b.Object.H }

// Right returns the right edge.
func (b *Body) Right() float64 { return b.Object.X + b.Object.W }

// Bottom returns the bottom edge.
func (b *Body) Bottom() float64 { return b.Object.Y + b.Object.H }

// SetPosition moves the body to (x, y) without touching its velocity.
func (b *Body) SetPosition(x, y float64) {
	b.Object.X, b.Object.Y = x, y
	b.Object.Update()
}

// Reset moves the body to (x, y) and clears its motion.
func (b *Body) Reset(x, y float64) {
	b.Vel = [2]float64{}
	b.Blocked = Blocked{}
	b.SetPosition(x, y)
}

// Stop zeroes both velocity components.
func (b *Body) Stop() {
	b.Vel = [2]float64{}
}

// Rect returns the body's bounds.
func (b *Body) Rect() Rect {
	return Rect{X: b.Object.X, Y: b.Object.Y, W: b.Object.W, H: b.Object.H}
}

// Rect is an axis-aligned box in world units.
type Rect struct {
	X, Y, W, H float64
}

// Right returns the right edge.
func (r Rect) Right() float64 { return r.X + r.W }

// Bottom returns the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.H }
