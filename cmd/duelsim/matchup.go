package main

import (
	"context"
	"fmt"
	"log/slog"

	"duelsim/internal/combat"
	"duelsim/internal/config"
	"duelsim/internal/sim"
	"duelsim/internal/util"
)

// policySeedOffset keeps the CPU input stream apart from the battle stream.
const policySeedOffset = 7919

// matchup is the shared, read-only setup of every run.
type matchup struct {
	catalog  *combat.Catalog
	ids      [2]combat.CharacterID
	policies [2]sim.Policy
	items    [2]combat.Item
	stage    combat.Stage
}

func newMatchup(ctx context.Context, cfg config.Sim) (*matchup, error) {
	sides := [2]config.SideConfig{cfg.Player1, cfg.Player2}
	m := &matchup{}
	for i, sc := range sides {
		id, err := combat.ParseCharacterID(sc.Character)
		if err != nil {
			return nil, fmt.Errorf("player %d: %w", i+1, err)
		}
		it, err := combat.ParseItem(sc.Item)
		if err != nil {
			return nil, fmt.Errorf("player %d: %w", i+1, err)
		}
		m.ids[i] = id
		m.items[i] = it
	}
	stage, err := combat.ParseStage(cfg.Stage)
	if err != nil {
		return nil, err
	}
	m.stage = stage

	m.catalog, err = combat.Prepare(ctx, config.DirLoader{Dir: cfg.DataDir}, m.ids[0], m.ids[1])
	if err != nil {
		return nil, err
	}
	slog.Debug("catalog loaded", "characters", m.catalog.Len())

	pc, err := config.LoadPolicies(cfg.DataDir)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]config.Policy, len(pc.Policies))
	for _, p := range pc.Policies {
		byID[p.ID] = p
	}
	for i, sc := range sides {
		if sc.Policy == "idle" {
			m.policies[i] = sim.IdlePolicy{}
			continue
		}
		p, ok := byID[sc.Policy]
		if !ok {
			return nil, fmt.Errorf("player %d: unknown policy %q", i+1, sc.Policy)
		}
		wp, err := sim.NewWeightedPolicy(p, m.catalog, m.ids[i])
		if err != nil {
			return nil, err
		}
		m.policies[i] = wp
	}
	return m, nil
}

// play runs one match. Safe to call from several goroutines.
func (m *matchup) play(seed int64, maxTurns int, rec *sim.Recorder) (sim.SimResult, error) {
	opts := []combat.Option{
		combat.WithRand(util.New(seed)),
		combat.WithLogger(slog.Default()),
		combat.WithStage(m.stage),
		combat.WithItems(m.items[0], m.items[1]),
	}
	if rec != nil {
		opts = append(opts, combat.WithEmitter(rec.Emit))
	}
	b, err := combat.NewBattle(m.catalog, m.ids[0], m.ids[1], opts...)
	if err != nil {
		return sim.SimResult{}, err
	}
	env := &sim.Env{MaxTurns: maxTurns, Rng: util.New(seed + policySeedOffset)}
	return sim.RunSingle(env, b, m.policies[0], m.policies[1], rec)
}
