package scene

import (
	"fmt"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/jinzhu/copier"
	"gopkg.in/yaml.v3"

	"physics-engine/internal/physics"
)

// Def is the YAML definition of a physics scene (see assets/scenes/).
// Build turns it into a populated world.
type Def struct {
	Name     string     `yaml:"name"`
	Gravity  [2]float32 `yaml:"gravity"`
	Substeps int        `yaml:"substeps,omitempty"`
	Bounds   *BoundsDef `yaml:"bounds,omitempty"`
	Bodies   []BodyDef  `yaml:"bodies"`
}

// BoundsDef is the world boundary rectangle.
type BoundsDef struct {
	Min [2]float32 `yaml:"min"`
	Max [2]float32 `yaml:"max"`
}

// BodyDef describes one body, or a fan of Count bodies offset by Spread.
// Omitted material fields default to the zero value, not the engine
// default; leave material out entirely for the default material.
type BodyDef struct {
	Name     string           `yaml:"name"`
	Type     string           `yaml:"type"` // static | dynamic | kinematic
	Shape    ShapeDef         `yaml:"shape"`
	Position [2]float32       `yaml:"position"`
	Velocity [2]float32       `yaml:"velocity,omitempty"`
	Mass     float32          `yaml:"mass,omitempty"`
	Material *MaterialDef     `yaml:"material,omitempty"`
	Trigger  bool             `yaml:"trigger,omitempty"`
	Gravity  *GravityFieldDef `yaml:"gravity_field,omitempty"`
	Bounds   *BodyBoundsDef   `yaml:"bounds,omitempty"`
	Color    string           `yaml:"color,omitempty"`
	Count    int              `yaml:"count,omitempty"`
	Spread   [2]float32       `yaml:"spread,omitempty"`
}

// ShapeDef holds exactly one of rect or circle.
type ShapeDef struct {
	Rect   *RectDef   `yaml:"rect,omitempty"`
	Circle *CircleDef `yaml:"circle,omitempty"`
}

// RectDef is an axis-aligned rectangle size.
type RectDef struct {
	Width  float32 `yaml:"w"`
	Height float32 `yaml:"h"`
}

// CircleDef is a circle radius.
type CircleDef struct {
	Radius float32 `yaml:"r"`
}

// MaterialDef mirrors physics.Material.
type MaterialDef struct {
	Restitution float32 `yaml:"restitution"`
	Friction    float32 `yaml:"friction"`
	Drag        float32 `yaml:"drag"`
}

// GravityFieldDef mirrors physics.GravityField. Falloff is one of
// constant, linear, inverse_square, custom (custom uses rate).
type GravityFieldDef struct {
	Strength float32 `yaml:"strength"`
	Radius   float32 `yaml:"radius"`
	Falloff  string  `yaml:"falloff"`
	Rate     float32 `yaml:"rate,omitempty"`
}

// BodyBoundsDef selects a bounds behavior by name: ignore, events, clamp
// (uses restitution), wrap, delete (uses margin), per_body.
type BodyBoundsDef struct {
	Behavior    string  `yaml:"behavior"`
	Restitution float32 `yaml:"restitution,omitempty"`
	Margin      float32 `yaml:"margin,omitempty"`
}

// Instance ties a spawned body to its def for rendering.
type Instance struct {
	Name  string
	Color rl.Color
	ID    physics.BodyID
}

// Load reads and parses a scene file.
func Load(path string) (*Def, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene %s: %w", path, err)
	}
	return Parse(data)
}

// Parse parses scene YAML.
func Parse(data []byte) (*Def, error) {
	var def Def
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("parse scene: %w", err)
	}
	return &def, nil
}

// Build creates a world from the def: gravity, substeps, bounds, and every
// body. Defs with Count > 1 are instanced via template copies, each offset
// by Spread from the previous one.
func (d *Def) Build() (*physics.World, []Instance, error) {
	world := physics.NewWorld()
	world.SetGlobalGravity(rl.NewVector2(d.Gravity[0], d.Gravity[1]))
	if d.Substeps > 0 {
		world.SetSubsteps(d.Substeps)
	}
	if d.Bounds != nil {
		world.SetBounds(&physics.Bounds{
			Min: rl.NewVector2(d.Bounds.Min[0], d.Bounds.Min[1]),
			Max: rl.NewVector2(d.Bounds.Max[0], d.Bounds.Max[1]),
		})
	}

	var instances []Instance
	for i := range d.Bodies {
		def := &d.Bodies[i]
		count := def.Count
		if count < 1 {
			count = 1
		}
		for n := 0; n < count; n++ {
			var inst BodyDef
			if err := copier.CopyWithOption(&inst, def, copier.Option{DeepCopy: true}); err != nil {
				return nil, nil, fmt.Errorf("body %q: copy template: %w", def.Name, err)
			}
			inst.Position[0] += inst.Spread[0] * float32(n)
			inst.Position[1] += inst.Spread[1] * float32(n)

			body, err := buildBody(&inst)
			if err != nil {
				return nil, nil, fmt.Errorf("body %q: %w", def.Name, err)
			}
			id := world.AddBody(body)
			instances = append(instances, Instance{Name: inst.Name, Color: ParseColor(inst.Color), ID: id})
		}
	}
	return world, instances, nil
}

func buildBody(def *BodyDef) (*physics.Body, error) {
	collider, err := buildCollider(def)
	if err != nil {
		return nil, err
	}
	position := rl.NewVector2(def.Position[0], def.Position[1])

	var body *physics.Body
	switch def.Type {
	case "static":
		body = physics.NewStaticBody(position, collider)
	case "dynamic":
		body = physics.NewDynamicBody(position, collider, def.Mass)
	case "kinematic":
		body = physics.NewKinematicBody(position, collider)
	default:
		return nil, fmt.Errorf("unknown body type %q", def.Type)
	}

	body.SetVelocity(rl.NewVector2(def.Velocity[0], def.Velocity[1]))
	if def.Material != nil {
		body.WithMaterial(physics.Material{
			Restitution: def.Material.Restitution,
			Friction:    def.Material.Friction,
			Drag:        def.Material.Drag,
		})
	}
	if def.Gravity != nil {
		falloff, err := parseFalloff(def.Gravity.Falloff)
		if err != nil {
			return nil, err
		}
		body.SetGravityField(&physics.GravityField{
			Strength: def.Gravity.Strength,
			Radius:   def.Gravity.Radius,
			Falloff:  falloff,
			Rate:     def.Gravity.Rate,
		})
	}
	if def.Bounds != nil {
		behavior, err := parseBoundsBehavior(def.Bounds)
		if err != nil {
			return nil, err
		}
		body.WithBoundsBehavior(behavior)
	}
	return body, nil
}

func buildCollider(def *BodyDef) (physics.Collider, error) {
	var collider physics.Collider
	switch {
	case def.Shape.Rect != nil && def.Shape.Circle != nil:
		return collider, fmt.Errorf("shape has both rect and circle")
	case def.Shape.Rect != nil:
		collider = physics.NewRectCollider(def.Position[0], def.Position[1], def.Shape.Rect.Width, def.Shape.Rect.Height)
	case def.Shape.Circle != nil:
		collider = physics.NewCircleCollider(def.Position[0], def.Position[1], def.Shape.Circle.Radius)
	default:
		return collider, fmt.Errorf("shape needs rect or circle")
	}
	collider.IsTrigger = def.Trigger
	return collider, nil
}

func parseFalloff(name string) (physics.Falloff, error) {
	switch name {
	case "constant", "":
		return physics.FalloffConstant, nil
	case "linear":
		return physics.FalloffLinear, nil
	case "inverse_square":
		return physics.FalloffInverseSquare, nil
	case "custom":
		return physics.FalloffCustom, nil
	}
	return 0, fmt.Errorf("unknown falloff %q", name)
}

func parseBoundsBehavior(def *BodyBoundsDef) (physics.BoundsBehavior, error) {
	switch def.Behavior {
	case "ignore", "":
		return physics.BoundsIgnore{}, nil
	case "events":
		return physics.BoundsEventsOnly{}, nil
	case "clamp":
		return physics.BoundsClamp{Restitution: def.Restitution}, nil
	case "wrap":
		return physics.BoundsWrap{}, nil
	case "delete":
		return physics.BoundsDelete{SafetyMargin: def.Margin}, nil
	case "per_body":
		return physics.BoundsPerBody{}, nil
	}
	return nil, fmt.Errorf("unknown bounds behavior %q", def.Behavior)
}

// namedColors are the colors scene files may reference.
var namedColors = map[string]rl.Color{
	"red":     rl.Red,
	"orange":  rl.Orange,
	"yellow":  rl.Yellow,
	"gold":    rl.Gold,
	"green":   rl.Green,
	"lime":    rl.Lime,
	"blue":    rl.Blue,
	"skyblue": rl.SkyBlue,
	"purple":  rl.Purple,
	"pink":    rl.Pink,
	"gray":    rl.Gray,
	"white":   rl.RayWhite,
	"beige":   rl.Beige,
	"maroon":  rl.Maroon,
}

// ParseColor maps a color name to a raylib color, defaulting to white.
func ParseColor(name string) rl.Color {
	if c, ok := namedColors[name]; ok {
		return c
	}
	return rl.RayWhite
}
