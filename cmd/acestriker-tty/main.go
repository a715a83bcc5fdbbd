package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/younwookim/acestriker/internal/application/engine"
	"github.com/younwookim/acestriker/internal/application/loop"
	"github.com/younwookim/acestriker/internal/infrastructure/audio"
	"github.com/younwookim/acestriker/internal/infrastructure/config"
	"github.com/younwookim/acestriker/internal/infrastructure/terminal"
)

// loadConfig reads dir when given, else starts from the defaults.
// .env and ACESTRIKER_* overrides apply either way.
func loadConfig(dir string) (*config.GameConfig, error) {
	cfg := config.Default()
	if dir != "" {
		loaded, err := config.NewLoader(dir).LoadGame()
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if err := config.LoadEnv(".env"); err != nil {
		return nil, err
	}
	if err := config.ApplyEnv(cfg, os.LookupEnv); err != nil {
		return nil, err
	}
	return cfg, nil
}

func main() {
	configDir := flag.String("config", "", "Directory holding game.json or game.yaml (default: built-in)")
	recordFlag := flag.String("record", "", "Record input to file")
	logFile := flag.String("log", "", "Write logs to file (the terminal is taken by the game)")
	hold := flag.Duration("hold", terminal.DefaultHoldTimeout, "How long a key counts as held after its last repeat")
	mute := flag.Bool("mute", false, "Disable sound")
	seed := flag.Int64("seed", 0, "Spawn RNG seed (default: time-based)")
	flag.Parse()

	logger := log.New(io.Discard, "", log.LstdFlags)
	if *logFile != "" {
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		logger.SetOutput(f)
	}

	cfg, err := loadConfig(*configDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := run(cfg, *seed, *recordFlag, *hold, *mute, logger); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func run(cfg *config.GameConfig, seed int64, recordPath string, hold time.Duration, mute bool, logger *log.Logger) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize screen: %w", err)
	}
	defer screen.Fini()
	screen.HideCursor()

	sound := audio.NewSoundManager()
	sound.SetMuted(mute)
	if !mute {
		if err := sound.Initialize(); err != nil {
			// Non-fatal, game can run without sound
			logger.Printf("Audio initialization failed: %v", err)
		}
	}
	defer sound.Cleanup()

	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	eng := engine.New(cfg, engine.WithSeed(seed), engine.WithLogger(logger))
	if err := eng.Start(); err != nil {
		return err
	}

	a := newApp(screen, cfg, eng, appOptions{
		RecordPath:  recordPath,
		HoldTimeout: hold,
		Cues:        sound,
		Logger:      logger,
	})
	defer a.close()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var interval time.Duration
	if cfg.Display.Framerate > 0 {
		interval = time.Second / time.Duration(cfg.Display.Framerate)
	}
	runner := loop.NewRunner(a.ticker(), interval, logger, a.onFrame)
	runner.Start(ctx)
	defer runner.Stop()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	for {
		select {
		case <-runner.Done():
			return runner.Err()
		case ev := <-events:
			if a.handleEvent(ev, time.Now()) {
				return nil
			}
		}
	}
}
