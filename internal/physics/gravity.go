package physics

// Falloff selects how a gravity field's pull decays with distance.
type Falloff int

const (
	// FalloffConstant pulls with the same force everywhere inside the radius.
	FalloffConstant Falloff = iota
	// FalloffLinear decays as 1/distance.
	FalloffLinear
	// FalloffInverseSquare decays as 1/distance², Newton style.
	FalloffInverseSquare
	// FalloffCustom decays as 1/(1 + distance²·Rate).
	FalloffCustom
)

// GravityField is a radius-bounded attractor carried by a body. Every other
// dynamic body inside Radius is pulled toward the owner, independent of the
// world's global gravity vector.
type GravityField struct {
	Strength float32
	Radius   float32
	Falloff  Falloff
	// Rate shapes FalloffCustom only; ignored by the other falloffs.
	Rate float32
}

// NewGravityField returns a field with the given strength, radius and
// falloff law.
func NewGravityField(strength, radius float32, falloff Falloff) *GravityField {
	return &GravityField{Strength: strength, Radius: radius, Falloff: falloff}
}

// NewCustomGravityField returns a FalloffCustom field where force decays as
// strength·mass / (1 + distance²·rate).
func NewCustomGravityField(strength, radius, rate float32) *GravityField {
	return &GravityField{Strength: strength, Radius: radius, Falloff: FalloffCustom, Rate: rate}
}

// CalculateForce returns the attractive force magnitude on a body of
// targetMass at the given distance. The caller clamps distance away from
// zero (the world uses a minimum of 0.1) so Linear and InverseSquare never
// divide by zero.
func (g *GravityField) CalculateForce(distance, targetMass float32) float32 {
	switch g.Falloff {
	case FalloffLinear:
		return g.Strength * targetMass / distance
	case FalloffInverseSquare:
		return g.Strength * targetMass / (distance * distance)
	case FalloffCustom:
		return g.Strength * targetMass / (1 + distance*distance*g.Rate)
	default:
		return g.Strength * targetMass
	}
}
