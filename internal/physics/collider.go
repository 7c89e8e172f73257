package physics

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Shape is a collision primitive. Rect stays axis-aligned: body rotation
// drives the angular dynamics but never the collision footprint.
type Shape interface {
	isShape()
}

// Rect is an axis-aligned rectangle, size in world units. The center
// position lives on the Collider.
type Rect struct {
	Width  float32
	Height float32
}

// Circle is a circle of the given radius. The center position lives on the
// Collider.
type Circle struct {
	Radius float32
}

func (Rect) isShape()   {}
func (Circle) isShape() {}

// Collider is a shape at a center position. The position mirrors the owning
// body's position after every step. IsTrigger colliders still produce
// collision events but never receive impulses or position correction.
type Collider struct {
	Position  rl.Vector2
	Shape     Shape
	IsTrigger bool
}

// NewRectCollider returns a rectangle collider centered at (x, y).
func NewRectCollider(x, y, width, height float32) Collider {
	return Collider{Position: rl.NewVector2(x, y), Shape: Rect{Width: width, Height: height}}
}

// NewCircleCollider returns a circle collider centered at (x, y).
func NewCircleCollider(x, y, radius float32) Collider {
	return Collider{Position: rl.NewVector2(x, y), Shape: Circle{Radius: radius}}
}

// rec converts a center-based rect to raylib's corner+size rectangle.
func rec(pos rl.Vector2, r Rect) rl.Rectangle {
	return rl.NewRectangle(pos.X-r.Width/2, pos.Y-r.Height/2, r.Width, r.Height)
}

// closestPointOnRect clamps p into the rectangle's bounds, giving the point
// on (or in) the rectangle nearest to p.
func closestPointOnRect(pos rl.Vector2, r Rect, p rl.Vector2) rl.Vector2 {
	return rl.NewVector2(
		math32.Min(math32.Max(p.X, pos.X-r.Width/2), pos.X+r.Width/2),
		math32.Min(math32.Max(p.Y, pos.Y-r.Height/2), pos.Y+r.Height/2),
	)
}

func lenSqr(v rl.Vector2) float32 { return v.X*v.X + v.Y*v.Y }

// CheckCollision reports whether two colliders overlap. All four shape
// pairings are covered; rect-circle is symmetric by argument swap. The
// boolean tests are raylib's own.
func CheckCollision(a, b Collider) bool {
	switch sa := a.Shape.(type) {
	case Rect:
		switch sb := b.Shape.(type) {
		case Rect:
			return rl.CheckCollisionRecs(rec(a.Position, sa), rec(b.Position, sb))
		case Circle:
			return rl.CheckCollisionCircleRec(b.Position, sb.Radius, rec(a.Position, sa))
		}
	case Circle:
		switch sb := b.Shape.(type) {
		case Rect:
			return rl.CheckCollisionCircleRec(a.Position, sa.Radius, rec(b.Position, sb))
		case Circle:
			return rl.CheckCollisionCircles(a.Position, sa.Radius, b.Position, sb.Radius)
		}
	}
	return false
}

// ContactPoint reports whether two colliders overlap and, if so, where:
// the overlap-region center for rect-rect, a point on the first circle's rim
// toward the second for circle-circle, the circle center clamped into the
// rectangle for rect-circle.
func ContactPoint(a, b Collider) (rl.Vector2, bool) {
	switch sa := a.Shape.(type) {
	case Rect:
		switch sb := b.Shape.(type) {
		case Rect:
			return rectRectContact(a.Position, sa, b.Position, sb)
		case Circle:
			return rectCircleContact(a.Position, sa, b.Position, sb.Radius)
		}
	case Circle:
		switch sb := b.Shape.(type) {
		case Rect:
			return rectCircleContact(b.Position, sb, a.Position, sa.Radius)
		case Circle:
			return circleCircleContact(a.Position, sa.Radius, b.Position, sb.Radius)
		}
	}
	return rl.Vector2{}, false
}

func rectRectContact(pos1 rl.Vector2, r1 Rect, pos2 rl.Vector2, r2 Rect) (rl.Vector2, bool) {
	rec1, rec2 := rec(pos1, r1), rec(pos2, r2)
	if !rl.CheckCollisionRecs(rec1, rec2) {
		return rl.Vector2{}, false
	}
	overlap := rl.GetCollisionRec(rec1, rec2)
	return rl.NewVector2(overlap.X+overlap.Width/2, overlap.Y+overlap.Height/2), true
}

func circleCircleContact(pos1 rl.Vector2, radius1 float32, pos2 rl.Vector2, radius2 float32) (rl.Vector2, bool) {
	if !rl.CheckCollisionCircles(pos1, radius1, pos2, radius2) {
		return rl.Vector2{}, false
	}
	between := rl.Vector2Subtract(pos2, pos1)
	if lenSqr(between) < 1e-6 {
		// Coincident centers; no direction to project along.
		return pos1, true
	}
	return rl.Vector2Add(pos1, rl.Vector2Scale(rl.Vector2Normalize(between), radius1)), true
}

func rectCircleContact(rectPos rl.Vector2, r Rect, circlePos rl.Vector2, radius float32) (rl.Vector2, bool) {
	closest := closestPointOnRect(rectPos, r, circlePos)
	if lenSqr(rl.Vector2Subtract(circlePos, closest)) > radius*radius {
		return rl.Vector2{}, false
	}
	return closest, true
}

// Penetration returns the overlap depth between two colliders: sum of radii
// minus center distance for circle-circle, radius minus distance to the
// clamped point for rect-circle, minimum axis overlap for rect-rect.
// Meaningful only when the colliders actually overlap.
func Penetration(a, b Collider) float32 {
	switch sa := a.Shape.(type) {
	case Rect:
		switch sb := b.Shape.(type) {
		case Rect:
			overlap := rl.GetCollisionRec(rec(a.Position, sa), rec(b.Position, sb))
			return math32.Min(overlap.Width, overlap.Height)
		case Circle:
			return rectCirclePenetration(a.Position, sa, b.Position, sb.Radius)
		}
	case Circle:
		switch sb := b.Shape.(type) {
		case Rect:
			return rectCirclePenetration(b.Position, sb, a.Position, sa.Radius)
		case Circle:
			distance := rl.Vector2Distance(a.Position, b.Position)
			return math32.Max(sa.Radius+sb.Radius-distance, 0)
		}
	}
	return 0
}

func rectCirclePenetration(rectPos rl.Vector2, r Rect, circlePos rl.Vector2, radius float32) float32 {
	closest := closestPointOnRect(rectPos, r, circlePos)
	return radius - rl.Vector2Distance(circlePos, closest)
}
