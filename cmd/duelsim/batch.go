package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/sync/errgroup"

	"duelsim/internal/combat"
	"duelsim/internal/config"
	"duelsim/internal/sim"
)

type batchStats struct {
	Runs        int
	Wins        map[string]int
	DoubleKOs   int
	TimedOut    int
	SumTurns    int
	Judgments   map[string]int
	DamageTaken map[string]int
	Knockdowns  map[string]int
}

func (st *batchStats) add(res sim.SimResult) {
	st.Runs++
	st.Wins[res.Winner.String()]++
	if res.DoubleKO {
		st.DoubleKOs++
	}
	if res.TimedOut {
		st.TimedOut++
	}
	st.SumTurns += res.Turns
	for k, v := range res.Judgments {
		st.Judgments[k] += v
	}
	for k, v := range res.DamageTaken {
		st.DamageTaken[k] += v
	}
	for k, v := range res.Knockdowns {
		st.Knockdowns[k] += v
	}
}

// runBatch plays cfg.Runs matches, each with its own seed, and writes an
// aggregate summary.
func runBatch(ctx context.Context, m *matchup, cfg config.Sim) error {
	n := cfg.Runs
	st := batchStats{
		Wins:        map[string]int{},
		Judgments:   map[string]int{},
		DamageTaken: map[string]int{},
		Knockdowns:  map[string]int{},
	}
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(cfg.Workers, 1))
	for i := 0; i < n; i++ {
		if gctx.Err() != nil {
			break
		}
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := m.play(cfg.Seed+int64(i), cfg.MaxTurns, nil)
			if err != nil {
				return fmt.Errorf("run %d: %w", i, err)
			}
			mu.Lock()
			st.add(res)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	// A cancelled batch stops scheduling without any run failing.
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("batch stopped after %d of %d runs: %w", st.Runs, n, err)
	}

	totalJudged := 0
	for _, v := range st.Judgments {
		totalJudged += v
	}
	ratio := func(m map[string]int, total int) map[string]any {
		out := map[string]any{}
		for k, v := range m {
			share := 0.0
			if total > 0 {
				share = float64(v) / float64(total)
			}
			out[k] = map[string]any{"total": v, "ratio": share}
		}
		return out
	}

	summary := map[string]any{
		"runs":         st.Runs,
		"p1":           m.ids[0].String(),
		"p2":           m.ids[1].String(),
		"p1_win_rate":  float64(st.Wins[combat.Player1.String()]) / float64(st.Runs),
		"p2_win_rate":  float64(st.Wins[combat.Player2.String()]) / float64(st.Runs),
		"double_ko":    st.DoubleKOs,
		"timed_out":    st.TimedOut,
		"avg_turns":    float64(st.SumTurns) / float64(st.Runs),
		"judgments":    ratio(st.Judgments, totalJudged),
		"damage_taken": st.DamageTaken,
		"knockdowns":   st.Knockdowns,
	}
	if err := os.WriteFile(cfg.Out, sim.MarshalPretty(summary), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", cfg.Out, err)
	}
	slog.Info("batch finished", "runs", st.Runs, "out", filepath.Base(cfg.Out))
	return nil
}
