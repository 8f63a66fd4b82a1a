package sim

import (
	"fmt"
	"math"

	"duelsim/internal/combat"
	"duelsim/internal/config"
)

// Policy produces one side's input for the next turn.
type Policy interface {
	Next(env *Env, st combat.BattleState, side combat.Side) combat.TurnInput
}

type weightedMove struct {
	cmd    combat.Command
	cost   int
	weight float64
}

// WeightedPolicy picks commands by weight from a configured table.
type WeightedPolicy struct {
	id         string
	moves      []weightedMove
	chargeDir  combat.Direction
	chargeMin  int
	chargeMax  int
	reactMin   int
	reactMax   int
	itemChance float64
	mashRate   float64
}

// NewWeightedPolicy binds a policy to one character. Every command in the
// table must exist in the character's move list.
func NewWeightedPolicy(cfg config.Policy, cat *combat.Catalog, id combat.CharacterID) (*WeightedPolicy, error) {
	if len(cfg.Commands) == 0 {
		return nil, fmt.Errorf("policy %s: no commands", cfg.ID)
	}
	wp := &WeightedPolicy{
		id:         cfg.ID,
		chargeMin:  cfg.Charge.FramesMin,
		chargeMax:  cfg.Charge.FramesMax,
		reactMin:   cfg.ReactMin,
		reactMax:   cfg.ReactMax,
		itemChance: cfg.ItemChance,
		mashRate:   cfg.MashRate,
	}
	if cfg.Charge.Direction != "" {
		d, err := combat.ParseDirection(cfg.Charge.Direction)
		if err != nil {
			return nil, fmt.Errorf("policy %s: %w", cfg.ID, err)
		}
		wp.chargeDir = d
	}
	for _, wc := range cfg.Commands {
		cmd, err := combat.ParseCommand(wc.Command)
		if err != nil {
			return nil, fmt.Errorf("policy %s: %w", cfg.ID, err)
		}
		mv, err := cat.Move(id, cmd.String())
		if err != nil {
			return nil, fmt.Errorf("policy %s: %w", cfg.ID, err)
		}
		wp.moves = append(wp.moves, weightedMove{cmd: cmd, cost: mv.ReikiCost, weight: math.Max(wc.Weight, 0)})
	}
	return wp, nil
}

func (p *WeightedPolicy) ID() string { return p.id }

func (p *WeightedPolicy) Next(env *Env, st combat.BattleState, side combat.Side) combat.TurnInput {
	me := st.Player(side)
	if me.KnockedDown {
		return combat.TurnInput{RecoveryPresses: p.mash(env, me.KnockdownRecovery)}
	}

	var in combat.TurnInput
	if me.Item != combat.ItemNone && env.Rng.Float64() < p.itemChance {
		in.UseItem = true
	} else if p.chargeMax > 0 {
		in.Charge = combat.ChargeInput{
			Charging:   true,
			Direction:  p.chargeDir,
			FramesHeld: rollInt(env, p.chargeMin, p.chargeMax),
		}
	}

	if mv, ok := p.pick(env, me.Reiki); ok {
		cmd := mv.cmd
		cmd.Timestamp = rollInt(env, p.reactMin, p.reactMax)
		in.Command = &cmd
	}
	return in
}

// pick draws a weighted command among those the side can pay for.
func (p *WeightedPolicy) pick(env *Env, reiki int) (weightedMove, bool) {
	total := 0.0
	for _, m := range p.moves {
		if m.cost <= reiki {
			total += m.weight
		}
	}
	if total <= 0 {
		return weightedMove{}, false
	}
	roll := env.Rng.Float64() * total
	acc := 0.0
	var last weightedMove
	for _, m := range p.moves {
		if m.cost > reiki || m.weight == 0 {
			continue
		}
		acc += m.weight
		last = m
		if roll < acc {
			return m, true
		}
	}
	return last, true
}

// mash presses recovery on a subset of the frames still needed.
func (p *WeightedPolicy) mash(env *Env, remaining int) []int {
	if p.mashRate <= 0 {
		return nil
	}
	var presses []int
	for f := 0; f < remaining; f++ {
		if env.Rng.Float64() < p.mashRate {
			presses = append(presses, f)
		}
	}
	return presses
}

// rollInt is uniform on [lo, hi]; hi <= lo yields lo.
func rollInt(env *Env, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + env.Rng.Intn(hi-lo+1)
}

// IdlePolicy never acts. Useful as a training dummy.
type IdlePolicy struct{}

func (IdlePolicy) Next(*Env, combat.BattleState, combat.Side) combat.TurnInput {
	return combat.TurnInput{}
}
