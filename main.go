package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	flag.Parse()

	result := loadConfig()
	if result.HasError {
		log.Printf("Warning: Configuration errors detected, using defaults")
		for _, warning := range result.Warnings {
			log.Printf("Config: %s", warning)
		}
	}

	if err := InitGraphics(); err != nil {
		log.Fatalf("Failed to initialize graphics: %v", err)
	}

	game := NewGame(result, newDefaultStore())

	if args := flag.Args(); len(args) > 0 {
		if err := game.OpenPaths(args); err != nil {
			log.Fatalf("Failed to open %v: %v", args, err)
		}
	} else {
		game.RestoreLastImage()
	}

	ebiten.SetWindowTitle("Mockover")
	ebiten.SetWindowSize(result.Config.WindowWidth, result.Config.WindowHeight)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	// The screen is transparent so compare mode can show through; the editor
	// window paints its own opaque background.
	op := &ebiten.RunGameOptions{ScreenTransparent: true}
	if err := ebiten.RunGameWithOptions(game, op); err != nil {
		log.Fatal(err)
	}
}
