package main

import (
	"os"

	"physics-engine/internal/engineconfig"
	"physics-engine/internal/game"
	"physics-engine/internal/graphics"
	"physics-engine/internal/logger"
)

const defaultScene = "assets/scenes/physics_test.yaml"

func main() {
	log := logger.New()
	prefs, _ := engineconfig.Load()

	scenePath := defaultScene
	if len(os.Args) > 1 {
		scenePath = os.Args[1]
	}

	g, err := game.New(scenePath, prefs, log)
	if err != nil {
		log.Logf("startup failed: %v", err)
		os.Exit(1)
	}
	defer g.Close()

	graphics.Run("physics test", 1280, 720, g.Update, g.Draw)

	if err := engineconfig.Save(g.Prefs()); err != nil {
		log.Logf("save prefs: %v", err)
	}
}
