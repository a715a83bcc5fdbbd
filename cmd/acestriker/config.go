package main

import (
	"fmt"
	"io/fs"
	"log"
	"os"

	"github.com/younwookim/acestriker/internal/infrastructure/config"
)

// loadConfig reads game.json/game.yaml from dir, or the embedded defaults
// when dir is empty, then applies .env and ACESTRIKER_* overrides.
func loadConfig(dir string) (*config.GameConfig, error) {
	var loader *config.Loader
	if dir == "" {
		fsys, err := fs.Sub(configFS, "configs")
		if err != nil {
			return nil, fmt.Errorf("failed to get config subfs: %w", err)
		}
		loader = config.NewFSLoader(fsys, "configs")
	} else {
		loader = config.NewLoader(dir)
	}

	cfg, err := loader.LoadGame()
	if err != nil {
		return nil, err
	}

	if err := config.LoadEnv(".env"); err != nil {
		return nil, err
	}
	if err := config.ApplyEnv(cfg, os.LookupEnv); err != nil {
		return nil, err
	}

	log.Printf("Config loaded from %s", loader.BasePath())
	return cfg, nil
}
