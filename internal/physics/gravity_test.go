package physics

import "testing"

func TestCalculateForce(t *testing.T) {
	cases := []struct {
		name     string
		field    *GravityField
		distance float32
		mass     float32
		want     float32
	}{
		{"constant", NewGravityField(10, 100, FalloffConstant), 50, 2, 20},
		{"constant_ignores_distance", NewGravityField(10, 100, FalloffConstant), 5, 2, 20},
		{"linear", NewGravityField(10, 100, FalloffLinear), 4, 2, 5},
		{"inverse_square", NewGravityField(10, 100, FalloffInverseSquare), 4, 2, 1.25},
		{"custom", NewCustomGravityField(10, 100, 0.5), 2, 2, 20.0 / 3.0},
		{"custom_zero_rate", NewCustomGravityField(10, 100, 0), 50, 2, 20},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.field.CalculateForce(c.distance, c.mass); !approx(got, c.want, 1e-4) {
				t.Errorf("CalculateForce(%v, %v) = %v, want %v", c.distance, c.mass, got, c.want)
			}
		})
	}
}

func TestFalloffMonotonicity(t *testing.T) {
	fields := map[string]*GravityField{
		"linear":         NewGravityField(100, 1000, FalloffLinear),
		"inverse_square": NewGravityField(100, 1000, FalloffInverseSquare),
		"custom":         NewCustomGravityField(100, 1000, 0.1),
	}

	for name, field := range fields {
		t.Run(name, func(t *testing.T) {
			prev := field.CalculateForce(0.5, 10)
			for d := float32(1); d < 100; d += 1 {
				got := field.CalculateForce(d, 10)
				if got >= prev {
					t.Fatalf("force did not decrease at distance %v: %v >= %v", d, got, prev)
				}
				prev = got
			}
		})
	}
}
