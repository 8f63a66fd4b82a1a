package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"duelsim/internal/config"
	"duelsim/internal/sim"
)

const defaultConfigPath = "assets/sim.yaml"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:]); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	cfg, err := loadConfig(args)
	if err != nil {
		return err
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	})))
	slog.Info("duelsim starting",
		"p1", cfg.Player1.Character, "p2", cfg.Player2.Character,
		"stage", cfg.Stage, "runs", cfg.Runs, "seed", cfg.Seed)

	m, err := newMatchup(ctx, cfg)
	if err != nil {
		return err
	}

	if cfg.Runs <= 1 {
		return runSingle(m, cfg)
	}
	return runBatch(ctx, m, cfg)
}

// loadConfig applies file, environment and then explicitly set flags.
func loadConfig(args []string) (config.Sim, error) {
	fs := flag.NewFlagSet("duelsim", flag.ContinueOnError)
	path := fs.String("config", defaultConfigPath, "sim config file")
	dataDir := fs.String("data", "", "data dir with characters/ and policies.yaml")
	out := fs.String("out", "", "output file (single) or summary file (batch)")
	p1 := fs.String("p1", "", "player 1 character id")
	p2 := fs.String("p2", "", "player 2 character id")
	stage := fs.String("stage", "", "stage")
	seed := fs.Int64("seed", 0, "seed")
	runs := fs.Int("n", 0, "number of simulations")
	workers := fs.Int("workers", 0, "batch workers")
	saveLog := fs.Bool("log", true, "save full event log when n==1")
	level := fs.String("loglevel", "", "debug|info|warn|error")
	if err := fs.Parse(args); err != nil {
		return config.Sim{}, err
	}

	cfg, err := config.LoadSim(*path)
	if err != nil {
		return cfg, fmt.Errorf("loading sim config: %w", err)
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "data":
			cfg.DataDir = *dataDir
		case "out":
			cfg.Out = *out
		case "p1":
			cfg.Player1.Character = *p1
		case "p2":
			cfg.Player2.Character = *p2
		case "stage":
			cfg.Stage = *stage
		case "seed":
			cfg.Seed = *seed
		case "n":
			cfg.Runs = *runs
		case "workers":
			cfg.Workers = *workers
		case "log":
			cfg.SaveLog = *saveLog
		case "loglevel":
			cfg.LogLevel = *level
		}
	})
	return cfg, nil
}

func runSingle(m *matchup, cfg config.Sim) error {
	var rec *sim.Recorder
	if cfg.SaveLog {
		rec = &sim.Recorder{}
	}
	res, err := m.play(cfg.Seed, cfg.MaxTurns, rec)
	if err != nil {
		return err
	}
	if err := os.WriteFile(cfg.Out, sim.MarshalPretty(res), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", cfg.Out, err)
	}
	slog.Info("single run finished", "winner", res.Winner, "turns", res.Turns, "timed_out", res.TimedOut, "out", cfg.Out)
	return nil
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
