package physics

import (
	"testing"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

func approx(a, b, tol float32) bool {
	return math32.Abs(a-b) <= tol
}

func vecApprox(a, b rl.Vector2, tol float32) bool {
	return approx(a.X, b.X, tol) && approx(a.Y, b.Y, tol)
}

func TestCheckCollisionPairs(t *testing.T) {
	cases := []struct {
		name string
		a, b Collider
		want bool
	}{
		{
			"rects_overlapping",
			NewRectCollider(0, 0, 10, 10),
			NewRectCollider(8, 0, 10, 10),
			true,
		},
		{
			"rects_apart",
			NewRectCollider(0, 0, 10, 10),
			NewRectCollider(20, 0, 10, 10),
			false,
		},
		{
			"rects_edge_touching",
			NewRectCollider(0, 0, 10, 10),
			NewRectCollider(10, 0, 10, 10),
			false,
		},
		{
			"circles_overlapping",
			NewCircleCollider(0, 0, 5),
			NewCircleCollider(8, 0, 5),
			true,
		},
		{
			"circles_apart",
			NewCircleCollider(0, 0, 5),
			NewCircleCollider(11, 0, 5),
			false,
		},
		{
			"rect_circle_overlapping",
			NewRectCollider(0, 0, 10, 10),
			NewCircleCollider(6, 0, 3),
			true,
		},
		{
			"rect_circle_apart",
			NewRectCollider(0, 0, 10, 10),
			NewCircleCollider(10, 0, 3),
			false,
		},
		{
			"circle_inside_rect",
			NewCircleCollider(0, 0, 3),
			NewRectCollider(0, 0, 20, 20),
			true,
		},
		{
			"rect_circle_corner",
			NewRectCollider(0, 0, 10, 10),
			NewCircleCollider(7, 7, 3),
			true,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := CheckCollision(c.a, c.b); got != c.want {
				t.Errorf("CheckCollision = %v, want %v", got, c.want)
			}
			// Symmetric by argument swap.
			if got := CheckCollision(c.b, c.a); got != c.want {
				t.Errorf("CheckCollision swapped = %v, want %v", got, c.want)
			}
		})
	}
}

func TestContactPointRectRect(t *testing.T) {
	a := NewRectCollider(0, 0, 10, 10)
	b := NewRectCollider(8, 0, 10, 10)

	point, ok := ContactPoint(a, b)
	if !ok {
		t.Fatal("expected contact")
	}
	// Overlap region spans x [3,5], y [-5,5]; contact is its center.
	if !vecApprox(point, rl.NewVector2(4, 0), 1e-4) {
		t.Errorf("contact = %v, want (4, 0)", point)
	}
}

func TestContactPointCircleCircle(t *testing.T) {
	a := NewCircleCollider(0, 0, 5)
	b := NewCircleCollider(8, 0, 5)

	point, ok := ContactPoint(a, b)
	if !ok {
		t.Fatal("expected contact")
	}
	// On the first circle's rim toward the second.
	if !vecApprox(point, rl.NewVector2(5, 0), 1e-4) {
		t.Errorf("contact = %v, want (5, 0)", point)
	}
}

func TestContactPointRectCircle(t *testing.T) {
	rect := NewRectCollider(0, 0, 10, 10)
	circle := NewCircleCollider(6, 0, 3)

	point, ok := ContactPoint(rect, circle)
	if !ok {
		t.Fatal("expected contact")
	}
	// Circle center clamped to the rect's right edge.
	if !vecApprox(point, rl.NewVector2(5, 0), 1e-4) {
		t.Errorf("contact = %v, want (5, 0)", point)
	}

	// Same pair, swapped argument order.
	swapped, ok := ContactPoint(circle, rect)
	if !ok {
		t.Fatal("expected contact on swap")
	}
	if !vecApprox(swapped, point, 1e-4) {
		t.Errorf("swapped contact = %v, want %v", swapped, point)
	}
}

func TestContactPointNoOverlap(t *testing.T) {
	a := NewCircleCollider(0, 0, 2)
	b := NewCircleCollider(10, 0, 2)
	if _, ok := ContactPoint(a, b); ok {
		t.Error("expected no contact for separated circles")
	}
}

func TestContactPointCoincidentCircles(t *testing.T) {
	a := NewCircleCollider(3, 4, 2)
	b := NewCircleCollider(3, 4, 2)
	point, ok := ContactPoint(a, b)
	if !ok {
		t.Fatal("coincident circles should collide")
	}
	// No direction to project along; must not produce NaN.
	if point.X != point.X || point.Y != point.Y {
		t.Errorf("contact is NaN: %v", point)
	}
}

func TestPenetration(t *testing.T) {
	cases := []struct {
		name string
		a, b Collider
		want float32
	}{
		{
			"circles",
			NewCircleCollider(0, 0, 5),
			NewCircleCollider(8, 0, 5),
			2, // radii sum 10, distance 8
		},
		{
			"rect_circle",
			NewRectCollider(0, 0, 10, 10),
			NewCircleCollider(6, 0, 3),
			2, // radius 3, distance to edge 1
		},
		{
			"rects_min_axis",
			NewRectCollider(0, 0, 10, 10),
			NewRectCollider(8, 1, 10, 10),
			2, // x overlap 2 < y overlap 9
		},
		{
			"circle_center_inside_rect",
			NewRectCollider(0, 0, 20, 20),
			NewCircleCollider(0, 0, 3),
			3, // clamped point is the center itself
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := Penetration(c.a, c.b); !approx(got, c.want, 1e-4) {
				t.Errorf("Penetration = %v, want %v", got, c.want)
			}
		})
	}
}
