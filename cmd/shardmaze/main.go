package main

import (
	"flag"
	"fmt"
	"os"
	"runtime/debug"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/shardmaze/config"
	"github.com/lixenwraith/shardmaze/engine"
)

const logDir = "logs"

var (
	configPath = flag.String("config", "", "YAML config overlaid on the defaults")
	seedFlag   = flag.Uint64("seed", 0, "Random seed, 0 uses the config seed or the clock")
	flankFlag  = flag.String("flank", "", "Flanker behavior: cosmetic or orbit")
	debugFlag  = flag.Bool("debug", false, "Write JSON logs to logs/shardmaze.log")
	dumpFlag   = flag.Bool("dump-config", false, "Print the effective config as YAML and exit")
)

func main() {
	flag.Parse()

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *dumpFlag {
		data, err := cfg.Marshal()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to encode config: %v\n", err)
			os.Exit(1)
		}
		os.Stdout.Write(data)
		return
	}

	logger, logFile := setupLogging(logDir, *debugFlag)
	if logFile != nil {
		defer logFile.Close()
	}

	clock := engine.NewPausableClock(engine.NewMonotonicTimeProvider())
	opts := []engine.Option{engine.WithLogger(logger), engine.WithClock(clock)}
	if *seedFlag != 0 {
		opts = append(opts, engine.WithSeed(*seedFlag))
	}
	session, err := engine.NewSession(cfg, opts...)
	if err != nil {
		logger.Error().Err(err).Msg("session setup failed")
		fmt.Fprintf(os.Stderr, "Failed to start session: %v\n", err)
		os.Exit(1)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize terminal: %v\n", err)
		os.Exit(1)
	}

	// Panic Recovery: restore the terminal before printing the trace
	defer func() {
		if r := recover(); r != nil {
			screen.Fini()
			fmt.Fprintf(os.Stderr, "\n\x1b[31mSHARDMAZE CRASHED: %v\x1b[0m\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()

	audio, err := NewAudio()
	if err != nil {
		// Non-fatal, game can run without sound
		logger.Warn().Err(err).Msg("audio initialization failed")
	}
	defer audio.Close()

	h := &host{
		cfg:      cfg,
		session:  session,
		clock:    clock,
		screen:   screen,
		view:     newView(screen),
		controls: newControls(),
		audio:    audio,
		log:      logger.With().Str("session", session.ID.String()).Logger(),
	}
	if err := h.run(); err != nil {
		fmt.Fprintf(os.Stderr, "Game loop failed: %v\n", err)
		os.Exit(1)
	}

	snap := session.Snapshot()
	logger.Info().Object("stats", session.Stats()).Msg("session ended")
	fmt.Printf("Level %d, %d shards, %s after %s\n", snap.Level, snap.Shards, snap.Phase, snap.Elapsed.Round(time.Second))
}

func loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if *flankFlag != "" {
		cfg.Pursuit.FlankMode = *flankFlag
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}
