package main

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/younwookim/acestriker/internal/application/engine"
	"github.com/younwookim/acestriker/internal/application/game"
	"github.com/younwookim/acestriker/internal/application/scene/playing"
	"github.com/younwookim/acestriker/internal/infrastructure/audio"
)

func main() {
	// Parse command line flags
	configDir := flag.String("config", "", "Directory holding game.json or game.yaml (default: embedded)")
	recordFlag := flag.String("record", "", "Record input to file (e.g., -record replay.json, .msgpack for binary)")
	verifyFlag := flag.String("verify", "", "Re-simulate a recording headlessly and check its final state")
	mute := flag.Bool("mute", false, "Disable sound")
	seed := flag.Int64("seed", 0, "Spawn RNG seed (default: time-based)")
	flag.Parse()

	cfg, err := loadConfig(*configDir)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if *verifyFlag != "" {
		if err := runVerify(*verifyFlag, cfg, os.Stdout, log.Default()); err != nil {
			log.Fatal(err)
		}
		return
	}

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	eng := engine.New(cfg, engine.WithSeed(*seed))
	if err := eng.Start(); err != nil {
		log.Fatalf("Failed to start engine: %v", err)
	}

	sound := audio.NewSoundManager()
	sound.SetMuted(*mute)
	if !*mute {
		if err := sound.Initialize(); err != nil {
			// Non-fatal, game can run without sound
			log.Printf("Audio initialization failed: %v", err)
		}
	}
	defer sound.Cleanup()

	scene := playing.New(cfg, eng, playing.Options{
		RecordPath: *recordFlag,
		Cues:       sound,
	})

	w, h := int(cfg.Field.Width), int(cfg.Field.Height)
	g := game.New(scene, w, h, cfg.Display.Framerate)
	defer g.Close()

	// Set up ebiten
	ebiten.SetWindowSize(w*cfg.Display.Scale, h*cfg.Display.Scale)
	ebiten.SetWindowTitle(cfg.Display.Title)
	ebiten.SetTPS(cfg.Display.Framerate)

	// Run game
	if err := ebiten.RunGame(g); err != nil {
		g.Close()
		sound.Cleanup()
		log.Fatal(err)
	}
}
