package physics

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Tuning constants for the solver. These are engine-wide, not per-material.
const (
	// extremePenetrationThreshold: beyond this the pair is treated as a
	// tunneling/degenerate case and resolution is skipped for the step.
	extremePenetrationThreshold = 50.0
	// gravityFieldMinDistance keeps Linear/InverseSquare falloffs away from
	// their singularity at distance zero.
	gravityFieldMinDistance = 0.1
	// correctionPercent and correctionSlop drive the positional bias that
	// keeps resting bodies from sinking.
	correctionPercent = 0.8
	correctionSlop    = 0.01
	// frictionDeadzone: tangential speed below this gets no friction impulse.
	frictionDeadzone = 1.5
	// frictionImpulseScale caps the friction impulse at this fraction of the
	// Coulomb limit; full Coulomb overcorrects at these time steps.
	frictionImpulseScale = 0.3
)

// CollisionEvent is one colliding pair from the last sub-step. An event is
// recorded even when the impulse is skipped (separating or trigger pair).
// The log is cleared at the start of every internal step, so drain it once
// per frame between Step calls.
type CollisionEvent struct {
	Body1ID      BodyID
	Body2ID      BodyID
	ContactPoint rl.Vector2
	Normal       rl.Vector2
}

// Stats summarizes the world for diagnostics and debug overlays.
type Stats struct {
	TotalBodies        int
	ActiveBodies       int
	SleepingBodies     int
	TotalKineticEnergy float32
}

// World owns a collection of bodies and advances them through time. All
// access is single-threaded: Step runs to completion inside the caller's
// frame, and the event logs are drained by the caller between steps.
type World struct {
	bodies     []*Body
	nextBodyID BodyID

	globalGravity rl.Vector2

	collisionEvents []CollisionEvent
	boundsEvents    []BoundsEvent

	bounds     *Bounds
	broadPhase BroadPhase

	sleepEnabled bool
	substeps     int
}

// NewWorld returns an empty world: zero gravity, one substep, sleeping
// enabled, all-pairs broad phase, no bounds.
func NewWorld() *World {
	return &World{
		broadPhase:   AllPairs{},
		sleepEnabled: true,
		substeps:     1,
	}
}

// AddBody assigns the next BodyID, takes ownership of the body and returns
// the id. IDs are never reused.
func (w *World) AddBody(body *Body) BodyID {
	id := w.nextBodyID
	w.nextBodyID++

	body.ID = id
	w.bodies = append(w.bodies, body)
	return id
}

// RemoveBody removes and returns the body with the given id, or nil if no
// such body exists. Ownership transfers back to the caller.
func (w *World) RemoveBody(id BodyID) *Body {
	for i, b := range w.bodies {
		if b.ID == id {
			w.bodies = append(w.bodies[:i], w.bodies[i+1:]...)
			return b
		}
	}
	return nil
}

// RemoveMarkedBodies sweeps out every body flagged MarkedForDeletion and
// returns them, preserving the order of the survivors.
func (w *World) RemoveMarkedBodies() []*Body {
	var removed []*Body
	remaining := w.bodies[:0]
	for _, b := range w.bodies {
		if b.MarkedForDeletion {
			removed = append(removed, b)
		} else {
			remaining = append(remaining, b)
		}
	}
	for i := len(remaining); i < len(w.bodies); i++ {
		w.bodies[i] = nil
	}
	w.bodies = remaining
	return removed
}

// Body returns the body with the given id, or nil. The pointer stays valid
// until the body is removed; mutate it freely between steps.
func (w *World) Body(id BodyID) *Body {
	for _, b := range w.bodies {
		if b.ID == id {
			return b
		}
	}
	return nil
}

// Bodies returns the underlying body slice in storage order. Read-side
// iteration for renderers and gameplay code; do not add or remove through it.
func (w *World) Bodies() []*Body {
	return w.bodies
}

// SetGlobalGravity sets the uniform gravity vector and wakes every dynamic
// body so the change takes effect on sleepers too.
func (w *World) SetGlobalGravity(gravity rl.Vector2) {
	w.globalGravity = gravity
	for _, b := range w.bodies {
		if b.Type == BodyDynamic {
			b.WakeUp()
		}
	}
}

// GlobalGravity returns the current uniform gravity vector.
func (w *World) GlobalGravity() rl.Vector2 {
	return w.globalGravity
}

// SetSubsteps sets how many equal sub-steps each Step is split into
// (minimum 1). More substeps = stiffer, more stable contacts.
func (w *World) SetSubsteps(substeps int) {
	if substeps < 1 {
		substeps = 1
	}
	w.substeps = substeps
}

// SetSleepEnabled toggles the sleep optimization. Disabling wakes every
// sleeping body.
func (w *World) SetSleepEnabled(enabled bool) {
	w.sleepEnabled = enabled
	if !enabled {
		for _, b := range w.bodies {
			b.WakeUp()
		}
	}
}

// SetBounds enables the world-bounds pass with the given bounds; nil
// disables it.
func (w *World) SetBounds(bounds *Bounds) {
	w.bounds = bounds
}

// SetBroadPhase swaps the candidate-pair source; nil restores AllPairs.
func (w *World) SetBroadPhase(bp BroadPhase) {
	if bp == nil {
		bp = AllPairs{}
	}
	w.broadPhase = bp
}

// CollisionEvents returns the collision events from the last sub-step.
func (w *World) CollisionEvents() []CollisionEvent {
	return w.collisionEvents
}

// ClearCollisionEvents empties the collision event log.
func (w *World) ClearCollisionEvents() {
	w.collisionEvents = w.collisionEvents[:0]
}

// BoundsEvents returns the bounds events from the last sub-step.
func (w *World) BoundsEvents() []BoundsEvent {
	return w.boundsEvents
}

// ClearBoundsEvents empties the bounds event log.
func (w *World) ClearBoundsEvents() {
	w.boundsEvents = w.boundsEvents[:0]
}

// Stats counts bodies by state and sums kinetic energy.
func (w *World) Stats() Stats {
	s := Stats{TotalBodies: len(w.bodies)}
	for _, b := range w.bodies {
		if b.sleeping {
			s.SleepingBodies++
		}
		s.TotalKineticEnergy += b.KineticEnergy()
	}
	s.ActiveBodies = s.TotalBodies - s.SleepingBodies
	return s
}

// Step advances the simulation by dt seconds, split into the configured
// number of sub-steps. Non-positive dt is a no-op. Step never fails:
// numerical edge cases clamp, fall back or skip rather than halting the
// frame.
func (w *World) Step(dt float32) {
	if dt <= 0 {
		return
	}
	subDT := dt / float32(w.substeps)
	for i := 0; i < w.substeps; i++ {
		w.stepInternal(subDT)
	}
}

// gravitySource is a snapshot of a field-carrying body taken before force
// application, so field forces are order-independent within a step.
type gravitySource struct {
	id       BodyID
	position rl.Vector2
	field    GravityField
}

func (w *World) stepInternal(dt float32) {
	w.collisionEvents = w.collisionEvents[:0]
	w.boundsEvents = w.boundsEvents[:0]

	var sources []gravitySource
	for _, b := range w.bodies {
		if b.GravityField != nil {
			sources = append(sources, gravitySource{id: b.ID, position: b.Position, field: *b.GravityField})
		}
	}

	w.applyForces(sources)
	w.integrate(dt)

	if w.bounds != nil {
		for _, b := range w.bodies {
			w.applyBounds(b)
		}
	}

	w.resolveCollisions()
}

// applyForces accumulates global gravity, gravity-field pulls and linear
// drag on every awake dynamic body.
func (w *World) applyForces(sources []gravitySource) {
	for _, b := range w.bodies {
		if b.Type != BodyDynamic || b.sleeping {
			continue
		}

		b.forceAccum = rl.Vector2Add(b.forceAccum, rl.Vector2Scale(w.globalGravity, b.Mass))

		for _, src := range sources {
			if src.id == b.ID {
				continue
			}
			toSource := rl.Vector2Subtract(src.position, b.Position)
			distance := rl.Vector2Length(toSource)
			if distance < src.field.Radius && distance > gravityFieldMinDistance {
				direction := rl.Vector2Scale(toSource, 1/distance)
				magnitude := src.field.CalculateForce(distance, b.Mass)
				b.forceAccum = rl.Vector2Add(b.forceAccum, rl.Vector2Scale(direction, magnitude))
			}
		}

		if b.Material.Drag > 0 {
			drag := rl.Vector2Scale(b.Velocity, -b.Material.Drag*b.Mass)
			b.forceAccum = rl.Vector2Add(b.forceAccum, drag)
		}
	}
}

// integrate runs semi-implicit Euler on awake dynamic bodies and
// velocity-only integration on kinematic ones, then updates sleep state.
func (w *World) integrate(dt float32) {
	for _, b := range w.bodies {
		switch {
		case b.Type == BodyDynamic && !b.sleeping:
			b.Acceleration = rl.Vector2Scale(b.forceAccum, 1/b.Mass)
			b.Velocity = rl.Vector2Add(b.Velocity, rl.Vector2Scale(b.Acceleration, dt))
			b.Position = rl.Vector2Add(b.Position, rl.Vector2Scale(b.Velocity, dt))

			b.AngularAcceleration = b.torqueAccum / b.MomentOfInertia
			b.AngularVelocity += b.AngularAcceleration * dt
			b.Rotation += b.AngularVelocity * dt
			if b.Material.Drag > 0 {
				b.AngularVelocity *= math32.Max(0, 1-b.Material.Drag*dt)
			}

			b.Collider.Position = b.Position
			b.forceAccum = rl.Vector2{}
			b.torqueAccum = 0

			if w.sleepEnabled {
				if rl.Vector2Length(b.Velocity) < sleepVelocityThreshold {
					b.sleepTimer += dt
				} else {
					b.sleepTimer = 0
				}
				if b.ShouldSleep() {
					b.sleeping = true
					b.Velocity = rl.Vector2{}
				}
			}

		case b.Type == BodyKinematic:
			b.Position = rl.Vector2Add(b.Position, rl.Vector2Scale(b.Velocity, dt))
			b.Collider.Position = b.Position
		}
	}
}

// resolveCollisions runs the broad phase, narrows candidates with
// CheckCollision and resolves each colliding pair in candidate order.
func (w *World) resolveCollisions() {
	var colliding [][2]int
	for _, pair := range w.broadPhase.Pairs(w.bodies) {
		if CheckCollision(w.bodies[pair[0]].Collider, w.bodies[pair[1]].Collider) {
			colliding = append(colliding, pair)
		}
	}
	for _, pair := range colliding {
		w.resolvePair(w.bodies[pair[0]], w.bodies[pair[1]])
	}
}

// resolvePair handles one colliding pair: contact, penetration, event,
// impulse, position correction. Correction runs whenever penetration
// exceeds the slop, independent of the impulse early-return for separating
// velocities.
func (w *World) resolvePair(b1, b2 *Body) {
	// Earlier resolutions this sub-step may have pushed the pair apart.
	contact, ok := ContactPoint(b1.Collider, b2.Collider)
	if !ok {
		return
	}

	penetration := Penetration(b1.Collider, b2.Collider)
	if penetration > extremePenetrationThreshold {
		// Tunneling or a pathological initial overlap; a corrective impulse
		// at this depth would explode. Leave it for later steps.
		return
	}

	normal := collisionNormal(b1, b2)

	w.collisionEvents = append(w.collisionEvents, CollisionEvent{
		Body1ID:      b1.ID,
		Body2ID:      b2.ID,
		ContactPoint: contact,
		Normal:       normal,
	})

	if b1.Collider.IsTrigger || b2.Collider.IsTrigger {
		// Detect-only: the event above is the whole response.
		return
	}

	w.applyImpulse(b1, b2, normal, contact)
	w.applyPositionCorrection(b1, b2, normal, penetration)
}

// invMass returns 1/m, or 0 for infinite mass so static and kinematic
// bodies drop out of the denominator.
func invMass(m float32) float32 {
	if math32.IsInf(m, 1) {
		return 0
	}
	return 1 / m
}

// perp returns v rotated 90° counterclockwise; ω·perp(r) is the velocity a
// point at lever arm r gains from angular velocity ω.
func perp(v rl.Vector2) rl.Vector2 {
	return rl.NewVector2(-v.Y, v.X)
}

func cross(a, b rl.Vector2) float32 {
	return a.X*b.Y - a.Y*b.X
}

// applyImpulse wakes the pair and applies the normal impulse and the capped
// friction impulse at the contact point, with angular lever-arm terms on
// both bodies.
func (w *World) applyImpulse(b1, b2 *Body, normal, contact rl.Vector2) {
	b1.WakeUp()
	b2.WakeUp()

	r1 := rl.Vector2Subtract(contact, b1.Position)
	r2 := rl.Vector2Subtract(contact, b2.Position)

	v1 := rl.Vector2Add(b1.Velocity, rl.Vector2Scale(perp(r1), b1.AngularVelocity))
	v2 := rl.Vector2Add(b2.Velocity, rl.Vector2Scale(perp(r2), b2.AngularVelocity))
	relative := rl.Vector2Subtract(v2, v1)

	alongNormal := rl.Vector2DotProduct(relative, normal)
	if alongNormal > 0 {
		// Already separating; no impulse (correction still runs).
		return
	}

	invM1, invM2 := invMass(b1.Mass), invMass(b2.Mass)
	invI1, invI2 := invMass(b1.MomentOfInertia), invMass(b2.MomentOfInertia)

	r1CrossN := cross(r1, normal)
	r2CrossN := cross(r2, normal)

	denominator := invM1 + invM2 + r1CrossN*r1CrossN*invI1 + r2CrossN*r2CrossN*invI2
	if denominator == 0 {
		// Both bodies immovable (e.g. kinematic vs static); nothing to solve.
		return
	}

	restitution := (b1.Material.Restitution + b2.Material.Restitution) / 2
	j := -(1 + restitution) * alongNormal / denominator
	impulse := rl.Vector2Scale(normal, j)

	if b1.Type == BodyDynamic {
		b1.Velocity = rl.Vector2Subtract(b1.Velocity, rl.Vector2Scale(impulse, invM1))
		b1.AngularVelocity -= r1CrossN * j * invI1
	}
	if b2.Type == BodyDynamic {
		b2.Velocity = rl.Vector2Add(b2.Velocity, rl.Vector2Scale(impulse, invM2))
		b2.AngularVelocity += r2CrossN * j * invI2
	}

	friction := (b1.Material.Friction + b2.Material.Friction) / 2
	if friction <= 0 {
		return
	}

	tangent := perp(normal)
	alongTangent := rl.Vector2DotProduct(relative, tangent)
	if math32.Abs(alongTangent) <= frictionDeadzone {
		return
	}

	r1CrossT := cross(r1, tangent)
	r2CrossT := cross(r2, tangent)

	tangentDenominator := invM1 + invM2 + r1CrossT*r1CrossT*invI1 + r2CrossT*r2CrossT*invI2
	if tangentDenominator == 0 {
		return
	}

	jt := -alongTangent / tangentDenominator
	maxFriction := friction * math32.Abs(j) * frictionImpulseScale
	jt = math32.Min(math32.Max(jt, -maxFriction), maxFriction)
	frictionImpulse := rl.Vector2Scale(tangent, jt)

	if b1.Type == BodyDynamic {
		b1.Velocity = rl.Vector2Subtract(b1.Velocity, rl.Vector2Scale(frictionImpulse, invM1))
		b1.AngularVelocity -= r1CrossT * jt * invI1
	}
	if b2.Type == BodyDynamic {
		b2.Velocity = rl.Vector2Add(b2.Velocity, rl.Vector2Scale(frictionImpulse, invM2))
		b2.AngularVelocity += r2CrossT * jt * invI2
	}
}

// applyPositionCorrection pushes dynamic bodies apart along the normal by a
// fraction of the penetration, split by inverse mass. A Baumgarte-style
// bias that stops resting bodies from sinking without a full solver.
func (w *World) applyPositionCorrection(b1, b2 *Body, normal rl.Vector2, penetration float32) {
	if penetration <= correctionSlop {
		return
	}

	invM1, invM2 := invMass(b1.Mass), invMass(b2.Mass)
	total := invM1 + invM2
	if total == 0 {
		return
	}

	correction := rl.Vector2Scale(normal, penetration*correctionPercent/total)

	if b1.Type == BodyDynamic {
		b1.Position = rl.Vector2Subtract(b1.Position, rl.Vector2Scale(correction, invM1))
		b1.Collider.Position = b1.Position
	}
	if b2.Type == BodyDynamic {
		b2.Position = rl.Vector2Add(b2.Position, rl.Vector2Scale(correction, invM2))
		b2.Collider.Position = b2.Position
	}
}

// collisionNormal picks the contact normal for a pair, always oriented from
// b1 toward b2: for rect-circle it runs from the clamped rectangle point
// toward the circle center, otherwise it is the normalized vector between
// the body centers. Degenerate zero vectors fall back to straight up.
func collisionNormal(b1, b2 *Body) rl.Vector2 {
	if rect, ok := b1.Collider.Shape.(Rect); ok {
		if _, circle := b2.Collider.Shape.(Circle); circle {
			return rectToCircleNormal(b1.Collider.Position, rect, b2.Collider)
		}
	}
	if rect, ok := b2.Collider.Shape.(Rect); ok {
		if _, circle := b1.Collider.Shape.(Circle); circle {
			// Negated so the normal stays oriented b1 -> b2 no matter which
			// side of the pair the circle is on.
			return rl.Vector2Scale(rectToCircleNormal(b2.Collider.Position, rect, b1.Collider), -1)
		}
	}
	between := rl.Vector2Subtract(b2.Position, b1.Position)
	if lenSqr(between) < 1e-6 {
		return rl.NewVector2(0, 1)
	}
	return rl.Vector2Normalize(between)
}

// rectToCircleNormal points from the rectangle's closest point toward the
// circle center, falling back to +Y when the center sits on that point.
func rectToCircleNormal(rectPos rl.Vector2, r Rect, circle Collider) rl.Vector2 {
	closest := closestPointOnRect(rectPos, r, circle.Position)
	direction := rl.Vector2Subtract(circle.Position, closest)
	if lenSqr(direction) < 0.001 {
		return rl.NewVector2(0, 1)
	}
	return rl.Vector2Normalize(direction)
}
