package physics

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// BodyID is an opaque handle assigned by the world on insertion. IDs grow
// monotonically and are never reused, so stale handles simply stop
// resolving instead of pointing at a reordered slot.
type BodyID uint32

// BodyType splits bodies into the three simulation roles.
type BodyType int

const (
	// BodyStatic bodies have infinite mass, never move, and start asleep.
	BodyStatic BodyType = iota
	// BodyDynamic bodies take forces, impulses, gravity and collision response.
	BodyDynamic
	// BodyKinematic bodies integrate position from velocity but ignore
	// forces, impulses and gravity. Use for moving platforms.
	BodyKinematic
)

// Material controls collision response and damping for a body.
type Material struct {
	// Restitution is bounce energy retention (0 = dead stop, 1 = perfect bounce).
	Restitution float32
	// Friction scales the tangential impulse at contacts (0 = ice, 1 = high grip).
	Friction float32
	// Drag damps linear and angular velocity (0 = none, higher = more).
	Drag float32
}

// DefaultMaterial: no bounce, moderate friction, no drag.
func DefaultMaterial() Material {
	return Material{Restitution: 0, Friction: 0.5, Drag: 0}
}

const (
	minDynamicMass         = 0.001
	sleepVelocityThreshold = 0.1
	sleepTimeThreshold     = 1.0
)

// Body is a 2D rigid body: kinematic state, mass properties, material,
// collider and optional gravity field. Create one with NewDynamicBody,
// NewStaticBody or NewKinematicBody, then hand it to World.AddBody, which
// assigns the ID and takes ownership.
type Body struct {
	ID   BodyID
	Type BodyType

	Position     rl.Vector2
	Velocity     rl.Vector2
	Acceleration rl.Vector2

	Rotation            float32 // radians
	AngularVelocity     float32
	AngularAcceleration float32

	Mass            float32 // +Inf for static and kinematic bodies
	MomentOfInertia float32

	Material Material
	Collider Collider

	GravityField      *GravityField
	BoundsBehavior    BoundsBehavior
	MarkedForDeletion bool

	forceAccum  rl.Vector2
	torqueAccum float32
	sleeping    bool
	sleepTimer  float32
}

// NewDynamicBody returns a body that fully participates in force
// integration, collision response and sleeping. Mass is clamped to a small
// minimum to avoid division by zero.
func NewDynamicBody(position rl.Vector2, collider Collider, mass float32) *Body {
	collider.Position = position
	mass = math32.Max(mass, minDynamicMass)
	return &Body{
		Type:            BodyDynamic,
		Position:        position,
		Mass:            mass,
		MomentOfInertia: momentOfInertia(collider, mass),
		Material:        DefaultMaterial(),
		Collider:        collider,
	}
}

// NewStaticBody returns an immovable body (walls, platforms): infinite mass
// and inertia, always asleep, bounds pass opted out.
func NewStaticBody(position rl.Vector2, collider Collider) *Body {
	collider.Position = position
	return &Body{
		Type:            BodyStatic,
		Position:        position,
		Mass:            math32.Inf(1),
		MomentOfInertia: math32.Inf(1),
		Material:        DefaultMaterial(),
		Collider:        collider,
		BoundsBehavior:  BoundsIgnore{},
		sleeping:        true,
	}
}

// NewKinematicBody returns a body moved only by its velocity (moving
// platforms): infinite mass and inertia, no forces, no sleep.
func NewKinematicBody(position rl.Vector2, collider Collider) *Body {
	collider.Position = position
	return &Body{
		Type:            BodyKinematic,
		Position:        position,
		Mass:            math32.Inf(1),
		MomentOfInertia: math32.Inf(1),
		Material:        DefaultMaterial(),
		Collider:        collider,
	}
}

// momentOfInertia computes the moment for the collider shape: solid disk
// ½·m·r² for circles, m·(w²+h²)/12 for rectangles.
func momentOfInertia(collider Collider, mass float32) float32 {
	switch s := collider.Shape.(type) {
	case Circle:
		return 0.5 * mass * s.Radius * s.Radius
	case Rect:
		return mass * (s.Width*s.Width + s.Height*s.Height) / 12
	}
	return mass
}

// ApplyForce accumulates a force to be integrated next step. No-op on
// non-dynamic bodies; wakes the body.
func (b *Body) ApplyForce(force rl.Vector2) {
	if b.Type == BodyDynamic {
		b.forceAccum = rl.Vector2Add(b.forceAccum, force)
		b.WakeUp()
	}
}

// ApplyImpulse changes velocity immediately by impulse/mass. No-op on
// non-dynamic bodies; wakes the body.
func (b *Body) ApplyImpulse(impulse rl.Vector2) {
	if b.Type == BodyDynamic {
		b.Velocity = rl.Vector2Add(b.Velocity, rl.Vector2Scale(impulse, 1/b.Mass))
		b.WakeUp()
	}
}

// ApplyTorque accumulates a rotational force to be integrated next step.
// No-op on non-dynamic bodies; wakes the body.
func (b *Body) ApplyTorque(torque float32) {
	if b.Type == BodyDynamic {
		b.torqueAccum += torque
		b.WakeUp()
	}
}

// ApplyAngularImpulse changes angular velocity immediately by
// impulse/inertia. No-op on non-dynamic bodies; wakes the body.
func (b *Body) ApplyAngularImpulse(impulse float32) {
	if b.Type == BodyDynamic {
		b.AngularVelocity += impulse / b.MomentOfInertia
		b.WakeUp()
	}
}

// SetVelocity sets velocity directly. Works on dynamic and kinematic bodies
// (the usual way to drive a kinematic platform); no-op on static.
func (b *Body) SetVelocity(velocity rl.Vector2) {
	if b.Type == BodyStatic {
		return
	}
	b.Velocity = velocity
	if b.Type == BodyDynamic {
		b.WakeUp()
	}
}

// SetPosition teleports the body and its collider.
func (b *Body) SetPosition(position rl.Vector2) {
	b.Position = position
	b.Collider.Position = position
	if b.Type == BodyDynamic {
		b.WakeUp()
	}
}

// SetGravityField attaches (or, with nil, removes) a gravity field.
func (b *Body) SetGravityField(field *GravityField) {
	b.GravityField = field
}

// MarkForDeletion flags the body for the next World.RemoveMarkedBodies sweep.
func (b *Body) MarkForDeletion() {
	b.MarkedForDeletion = true
}

// WakeUp clears the sleeping state and resets the sleep timer. Only dynamic
// bodies sleep, so this is a no-op for the other types.
func (b *Body) WakeUp() {
	if b.Type == BodyDynamic {
		b.sleeping = false
		b.sleepTimer = 0
	}
}

// IsSleeping reports whether the body is currently skipped by integration
// and force application. Static bodies report true.
func (b *Body) IsSleeping() bool {
	return b.sleeping
}

// ShouldSleep reports whether the body has stayed under the sleep velocity
// threshold (0.1 units/s) for longer than the sleep time threshold (1 s).
// Only dynamic bodies ever qualify.
func (b *Body) ShouldSleep() bool {
	return b.Type == BodyDynamic &&
		rl.Vector2Length(b.Velocity) < sleepVelocityThreshold &&
		b.sleepTimer > sleepTimeThreshold
}

// KineticEnergy returns ½·m·|v|², or 0 for infinite-mass bodies.
func (b *Body) KineticEnergy() float32 {
	if math32.IsInf(b.Mass, 1) {
		return 0
	}
	return 0.5 * b.Mass * lenSqr(b.Velocity)
}

// ClearForces zeroes the force accumulator without integrating it.
func (b *Body) ClearForces() {
	b.forceAccum = rl.Vector2{}
}

// Chainable builders for the common construction pattern:
// NewDynamicBody(...).WithRestitution(0.8).WithVelocity(...).

// WithPosition sets the initial position (collider included).
func (b *Body) WithPosition(position rl.Vector2) *Body {
	b.Position = position
	b.Collider.Position = position
	return b
}

// WithVelocity sets the initial velocity.
func (b *Body) WithVelocity(velocity rl.Vector2) *Body {
	b.Velocity = velocity
	return b
}

// WithMass sets the mass (clamped to the same minimum as NewDynamicBody)
// and recomputes the moment of inertia.
func (b *Body) WithMass(mass float32) *Body {
	b.Mass = math32.Max(mass, minDynamicMass)
	b.MomentOfInertia = momentOfInertia(b.Collider, b.Mass)
	return b
}

// WithCollider replaces the collider and recomputes the moment of inertia.
func (b *Body) WithCollider(collider Collider) *Body {
	collider.Position = b.Position
	b.Collider = collider
	b.MomentOfInertia = momentOfInertia(collider, b.Mass)
	return b
}

// WithMaterial replaces the full material.
func (b *Body) WithMaterial(material Material) *Body {
	b.Material = material
	return b
}

// WithRestitution sets restitution on the material.
func (b *Body) WithRestitution(restitution float32) *Body {
	b.Material.Restitution = restitution
	return b
}

// WithFriction sets friction on the material.
func (b *Body) WithFriction(friction float32) *Body {
	b.Material.Friction = friction
	return b
}

// WithDrag sets drag on the material.
func (b *Body) WithDrag(drag float32) *Body {
	b.Material.Drag = drag
	return b
}

// WithGravityField attaches a gravity field.
func (b *Body) WithGravityField(field *GravityField) *Body {
	b.GravityField = field
	return b
}

// WithBoundsBehavior sets how the world-bounds pass treats this body.
func (b *Body) WithBoundsBehavior(behavior BoundsBehavior) *Body {
	b.BoundsBehavior = behavior
	return b
}

// WithTrigger marks the collider as detect-only.
func (b *Body) WithTrigger() *Body {
	b.Collider.IsTrigger = true
	return b
}
