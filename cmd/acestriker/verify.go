package main

import (
	"fmt"
	"io"
	"log"

	"github.com/younwookim/acestriker/internal/application/replay"
	"github.com/younwookim/acestriker/internal/infrastructure/config"
)

// runVerify re-simulates a recording headlessly and reports the outcome to w
func runVerify(path string, cfg *config.GameConfig, w io.Writer, logger *log.Logger) error {
	data, err := replay.LoadReplay(path)
	if err != nil {
		return err
	}

	snap, err := replay.Verify(data, cfg, logger)
	if err != nil {
		return fmt.Errorf("replay %s: %w", path, err)
	}

	fmt.Fprintf(w, "replay %s OK: session=%s frames=%d tick=%d score=%d lives=%d status=%s\n",
		path, data.Session, len(data.Frames), snap.Tick, snap.Score, snap.Lives, snap.Status)
	return nil
}
