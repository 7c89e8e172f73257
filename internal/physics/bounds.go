package physics

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Bounds is an axis-aligned rectangular world boundary. Y grows upward, so
// Max.Y is the top edge and Min.Y the bottom.
type Bounds struct {
	Min rl.Vector2
	Max rl.Vector2
}

// BoundsBehavior is a per-body policy for the world-bounds pass. The pass
// runs after integration and before collision detection, only when the
// world has bounds set (World.SetBounds) and only for bodies carrying a
// behavior other than BoundsIgnore. It is decoupled from collision
// resolution on purpose: bounds are a policy layer, not physics.
type BoundsBehavior interface {
	isBoundsBehavior()
}

// BoundsIgnore opts the body out of the pass entirely (infinite world).
type BoundsIgnore struct{}

// BoundsEventsOnly reports violations on the world's bounds event log
// without constraining the body.
type BoundsEventsOnly struct{}

// BoundsClamp keeps the body's shape inside the bounds, reflecting the
// velocity component into the wall scaled by Restitution.
type BoundsClamp struct {
	Restitution float32
}

// BoundsWrap teleports the body to the opposite edge once its center
// crosses a boundary.
type BoundsWrap struct{}

// BoundsDelete marks the body for deletion once its shape is out of bounds
// by more than SafetyMargin on any side.
type BoundsDelete struct {
	SafetyMargin float32
}

// BoundsPerBody marks the body as handled by game code; the pass skips it.
type BoundsPerBody struct{}

func (BoundsIgnore) isBoundsBehavior()     {}
func (BoundsEventsOnly) isBoundsBehavior() {}
func (BoundsClamp) isBoundsBehavior()      {}
func (BoundsWrap) isBoundsBehavior()       {}
func (BoundsDelete) isBoundsBehavior()     {}
func (BoundsPerBody) isBoundsBehavior()    {}

// Edge identifies the violated side of the world bounds.
type Edge int

const (
	EdgeLeft Edge = iota
	EdgeRight
	EdgeBottom
	EdgeTop
)

func (e Edge) String() string {
	switch e {
	case EdgeLeft:
		return "left"
	case EdgeRight:
		return "right"
	case EdgeBottom:
		return "bottom"
	case EdgeTop:
		return "top"
	}
	return "unknown"
}

// BoundsEvent records a body violating the world bounds. Like collision
// events, the log is cleared at the start of every internal step; drain it
// between Step calls.
type BoundsEvent struct {
	BodyID   BodyID
	Position rl.Vector2
	Edge     Edge
	// Overshoot is how far past the edge the body's shape reaches.
	Overshoot float32
}

// halfExtents returns the collider's half size along each axis, used by the
// bounds pass to keep whole shapes (not just centers) inside the world.
func halfExtents(c Collider) rl.Vector2 {
	switch s := c.Shape.(type) {
	case Rect:
		return rl.NewVector2(s.Width/2, s.Height/2)
	case Circle:
		return rl.NewVector2(s.Radius, s.Radius)
	}
	return rl.Vector2{}
}

// applyBounds enforces the body's BoundsBehavior against the world bounds.
// Appends to the world's bounds event log for BoundsEventsOnly bodies.
func (w *World) applyBounds(b *Body) {
	bounds := w.bounds
	half := halfExtents(b.Collider)

	switch behavior := b.BoundsBehavior.(type) {
	case nil, BoundsIgnore, BoundsPerBody:
		// Nothing to enforce; PerBody means the game owns it.

	case BoundsEventsOnly:
		for _, v := range violations(b.Position, half, *bounds) {
			w.boundsEvents = append(w.boundsEvents, BoundsEvent{
				BodyID:    b.ID,
				Position:  b.Position,
				Edge:      v.edge,
				Overshoot: v.overshoot,
			})
		}

	case BoundsClamp:
		p, v := b.Position, b.Velocity
		if p.X-half.X < bounds.Min.X {
			p.X = bounds.Min.X + half.X
			if v.X < 0 {
				v.X = -v.X * behavior.Restitution
			}
		} else if p.X+half.X > bounds.Max.X {
			p.X = bounds.Max.X - half.X
			if v.X > 0 {
				v.X = -v.X * behavior.Restitution
			}
		}
		if p.Y-half.Y < bounds.Min.Y {
			p.Y = bounds.Min.Y + half.Y
			if v.Y < 0 {
				v.Y = -v.Y * behavior.Restitution
			}
		} else if p.Y+half.Y > bounds.Max.Y {
			p.Y = bounds.Max.Y - half.Y
			if v.Y > 0 {
				v.Y = -v.Y * behavior.Restitution
			}
		}
		b.Position = p
		b.Velocity = v
		b.Collider.Position = p

	case BoundsWrap:
		p := b.Position
		spanX := bounds.Max.X - bounds.Min.X
		spanY := bounds.Max.Y - bounds.Min.Y
		if spanX > 0 {
			for p.X < bounds.Min.X {
				p.X += spanX
			}
			for p.X > bounds.Max.X {
				p.X -= spanX
			}
		}
		if spanY > 0 {
			for p.Y < bounds.Min.Y {
				p.Y += spanY
			}
			for p.Y > bounds.Max.Y {
				p.Y -= spanY
			}
		}
		b.Position = p
		b.Collider.Position = p

	case BoundsDelete:
		margin := behavior.SafetyMargin
		if b.Position.X+half.X < bounds.Min.X-margin ||
			b.Position.X-half.X > bounds.Max.X+margin ||
			b.Position.Y+half.Y < bounds.Min.Y-margin ||
			b.Position.Y-half.Y > bounds.Max.Y+margin {
			b.MarkForDeletion()
		}
	}
}

type violation struct {
	edge      Edge
	overshoot float32
}

func violations(pos, half rl.Vector2, bounds Bounds) []violation {
	var out []violation
	if d := bounds.Min.X - (pos.X - half.X); d > 0 {
		out = append(out, violation{EdgeLeft, d})
	}
	if d := (pos.X + half.X) - bounds.Max.X; d > 0 {
		out = append(out, violation{EdgeRight, d})
	}
	if d := bounds.Min.Y - (pos.Y - half.Y); d > 0 {
		out = append(out, violation{EdgeBottom, d})
	}
	if d := (pos.Y + half.Y) - bounds.Max.Y; d > 0 {
		out = append(out, violation{EdgeTop, d})
	}
	return out
}
