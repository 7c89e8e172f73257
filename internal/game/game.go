package game

import (
	"strconv"
	"sync/atomic"

	"github.com/chewxy/math32"
	"github.com/fsnotify/fsnotify"
	rl "github.com/gen2brain/raylib-go/raylib"

	"physics-engine/internal/debug"
	"physics-engine/internal/engineconfig"
	"physics-engine/internal/logger"
	"physics-engine/internal/physics"
	"physics-engine/internal/scene"
)

// spawnPalette cycles colors for click-spawned balls.
var spawnPalette = []rl.Color{rl.Orange, rl.SkyBlue, rl.Lime, rl.Pink, rl.Gold}

// Game is the physics test demo: a scene-defined world stepped once per
// frame, drawn with raylib, with the scene file hot-reloaded on change.
// World coordinates are Y-up with the origin at the screen center.
type Game struct {
	scenePath string
	prefs     engineconfig.EnginePrefs
	log       *logger.Logger

	world     *physics.World
	sceneName string
	instances []scene.Instance

	overlay    *debug.Overlay
	watcher    *fsnotify.Watcher
	dirty      atomic.Bool
	lastEvents []physics.CollisionEvent

	collisions uint64
	spawned    int
	hudMsg     string
	hudTimer   float32
}

// New loads the scene, builds the world and starts watching the scene file
// for changes.
func New(scenePath string, prefs engineconfig.EnginePrefs, log *logger.Logger) (*Game, error) {
	g := &Game{
		scenePath: scenePath,
		prefs:     prefs,
		log:       log,
		overlay:   debug.New(),
	}
	if err := g.loadScene(); err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		// Hot reload is a convenience; run without it.
		log.Logf("scene watcher unavailable: %v", err)
		return g, nil
	}
	if err := watcher.Add(scenePath); err != nil {
		log.Logf("watch %s: %v", scenePath, err)
		_ = watcher.Close()
		return g, nil
	}
	g.watcher = watcher
	go func() {
		for ev := range watcher.Events {
			if ev.Op.Has(fsnotify.Write) || ev.Op.Has(fsnotify.Create) {
				g.dirty.Store(true)
			}
		}
	}()
	return g, nil
}

// Close stops the scene watcher.
func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

// Prefs returns the current preferences (toggles included) for persisting
// on exit.
func (g *Game) Prefs() engineconfig.EnginePrefs {
	return g.prefs
}

// loadScene (re)builds the world from the scene file and applies the
// preference overrides.
func (g *Game) loadScene() error {
	def, err := scene.Load(g.scenePath)
	if err != nil {
		return err
	}
	world, instances, err := def.Build()
	if err != nil {
		return err
	}
	if g.prefs.Substeps > 0 {
		world.SetSubsteps(g.prefs.Substeps)
	}
	world.SetSleepEnabled(g.prefs.SleepEnabled)

	g.world = world
	g.sceneName = def.Name
	g.instances = instances
	g.spawned = 0
	g.log.Logf("scene %q loaded: %d bodies", def.Name, len(instances))
	return nil
}

// Update handles input, steps the world by the frame time and drains the
// event logs. Call once per frame before Draw.
func (g *Game) Update() {
	if g.dirty.Swap(false) || rl.IsKeyPressed(rl.KeyR) {
		if err := g.loadScene(); err != nil {
			g.log.Logf("scene reload failed: %v", err)
			g.showHUD("reload failed, keeping old scene")
		} else {
			g.showHUD("scene reloaded")
		}
	}
	if rl.IsKeyPressed(rl.KeyF1) {
		g.prefs.ShowDebugText = !g.prefs.ShowDebugText
	}
	if rl.IsKeyPressed(rl.KeyF2) {
		g.prefs.ShowCollisionDebug = !g.prefs.ShowCollisionDebug
	}
	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		g.spawnBall(toWorld(rl.GetMousePosition()))
	}

	dt := rl.GetFrameTime()
	g.world.Step(dt)

	events := g.world.CollisionEvents()
	g.collisions += uint64(len(events))
	g.lastEvents = append(g.lastEvents[:0], events...)
	g.world.ClearCollisionEvents()
	g.world.ClearBoundsEvents()

	for _, b := range g.world.RemoveMarkedBodies() {
		g.log.Logf("body %d removed (out of bounds at %.0f,%.0f)", b.ID, b.Position.X, b.Position.Y)
		g.dropInstance(b.ID)
	}

	if g.hudTimer > 0 {
		g.hudTimer -= dt
	}
}

// Draw renders the world, optional collision debug, HUD text and overlay.
func (g *Game) Draw() {
	for _, inst := range g.instances {
		b := g.world.Body(inst.ID)
		if b == nil {
			continue
		}
		color := inst.Color
		if b.IsSleeping() && b.Type == physics.BodyDynamic {
			color = rl.Fade(color, 0.4)
		}
		drawBody(b, color)
	}

	if g.prefs.ShowCollisionDebug {
		for _, b := range g.world.Bodies() {
			drawColliderOutline(b)
		}
		for _, ev := range g.lastEvents {
			p := toScreen(ev.ContactPoint)
			rl.DrawCircleV(p, 3, rl.Red)
			n := toScreen(rl.Vector2Add(ev.ContactPoint, rl.Vector2Scale(ev.Normal, 20)))
			rl.DrawLineV(p, n, rl.Red)
		}
	}

	if g.prefs.ShowDebugText {
		g.drawHUD()
	}
	if g.hudTimer > 0 {
		rl.DrawText(g.hudMsg, 12, int32(rl.GetScreenHeight())-28, 20, rl.Yellow)
	}
	g.overlay.Draw(g.world.Stats(), g.prefs.ShowFPS, g.prefs.ShowMemAlloc, g.prefs.ShowDebugText)
}

func (g *Game) drawHUD() {
	lines := []string{
		"scene: " + g.sceneName,
		"collisions: " + strconv.FormatUint(g.collisions, 10),
		"click: spawn ball   R: reload   F1: text   F2: colliders",
	}
	y := int32(12)
	for _, line := range lines {
		rl.DrawText(line, 12, y, 20, rl.RayWhite)
		y += 24
	}
}

func (g *Game) showHUD(msg string) {
	g.hudMsg = msg
	g.hudTimer = 2
}

// spawnBall drops a bouncy dynamic circle at the given world position.
func (g *Game) spawnBall(pos rl.Vector2) {
	body := physics.NewDynamicBody(pos, physics.NewCircleCollider(pos.X, pos.Y, 15), 500).
		WithRestitution(0.6).
		WithFriction(0.3).
		WithBoundsBehavior(physics.BoundsDelete{SafetyMargin: 200})
	id := g.world.AddBody(body)
	g.instances = append(g.instances, scene.Instance{
		Name:  "spawned",
		Color: spawnPalette[g.spawned%len(spawnPalette)],
		ID:    id,
	})
	g.spawned++
}

func (g *Game) dropInstance(id physics.BodyID) {
	for i, inst := range g.instances {
		if inst.ID == id {
			g.instances = append(g.instances[:i], g.instances[i+1:]...)
			return
		}
	}
}

// toScreen maps world coordinates (Y-up, origin at screen center) to
// screen pixels.
func toScreen(v rl.Vector2) rl.Vector2 {
	return rl.NewVector2(
		float32(rl.GetScreenWidth())/2+v.X,
		float32(rl.GetScreenHeight())/2-v.Y,
	)
}

// toWorld is the inverse of toScreen.
func toWorld(v rl.Vector2) rl.Vector2 {
	return rl.NewVector2(
		v.X-float32(rl.GetScreenWidth())/2,
		float32(rl.GetScreenHeight())/2-v.Y,
	)
}

func drawBody(b *physics.Body, color rl.Color) {
	p := toScreen(b.Position)
	switch s := b.Collider.Shape.(type) {
	case physics.Circle:
		rl.DrawCircleV(p, s.Radius, color)
		// Rotation tick so spin is visible on a solid disk.
		tip := rl.NewVector2(p.X+math32.Cos(b.Rotation)*s.Radius, p.Y-math32.Sin(b.Rotation)*s.Radius)
		rl.DrawLineV(p, tip, rl.Fade(rl.Black, 0.5))
	case physics.Rect:
		rl.DrawRectangleRec(rl.NewRectangle(p.X-s.Width/2, p.Y-s.Height/2, s.Width, s.Height), color)
	}
}

func drawColliderOutline(b *physics.Body) {
	color := rl.Green
	if b.Collider.IsTrigger {
		color = rl.Yellow
	}
	p := toScreen(b.Collider.Position)
	switch s := b.Collider.Shape.(type) {
	case physics.Circle:
		rl.DrawCircleLines(int32(p.X), int32(p.Y), s.Radius, color)
	case physics.Rect:
		rl.DrawRectangleLinesEx(rl.NewRectangle(p.X-s.Width/2, p.Y-s.Height/2, s.Width, s.Height), 1, color)
	}
}
