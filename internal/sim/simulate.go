package sim

import (
	"encoding/json"
	"math/rand"

	"duelsim/internal/combat"
)

// DefaultMaxTurns caps a match when the caller does not.
const DefaultMaxTurns = 200

type Env struct {
	Turn     int
	MaxTurns int
	Rng      *rand.Rand
}

type SimResult struct {
	Winner      combat.Side         `json:"winner"`
	Turns       int                 `json:"turns"`
	TimedOut    bool                `json:"timed_out,omitempty"`
	DoubleKO    bool                `json:"double_ko,omitempty"`
	Judgments   map[string]int      `json:"judgments"`
	DamageTaken map[string]int      `json:"damage_taken"`
	Knockdowns  map[string]int      `json:"knockdowns"`
	Log         []string            `json:"log,omitempty"`
	Final       *combat.BattleState `json:"final,omitempty"`
	Events      []combat.Event      `json:"events,omitempty"`
}

// Recorder collects battle events. Pass Emit to combat.WithEmitter.
type Recorder struct {
	events []combat.Event
}

func (r *Recorder) Emit(ev combat.Event) { r.events = append(r.events, ev) }

func (r *Recorder) Events() []combat.Event { return r.events }

// RunSingle plays b to completion with the two policies. A non-nil rec keeps
// the turn log, the final state and the recorded events. A match that hits
// the turn cap is decided on remaining health, ties going to player 1.
func RunSingle(env *Env, b *combat.Battle, p1, p2 Policy, rec *Recorder) (SimResult, error) {
	res := SimResult{
		Judgments:   map[string]int{},
		DamageTaken: map[string]int{},
		Knockdowns:  map[string]int{},
	}
	maxTurns := env.MaxTurns
	if maxTurns <= 0 {
		maxTurns = DefaultMaxTurns
	}

	for !b.MatchOver() && env.Turn < maxTurns {
		st := b.State()
		in1 := p1.Next(env, st, combat.Player1)
		in2 := p2.Next(env, st, combat.Player2)
		tr, err := b.ProcessTurn(in1, in2)
		if err != nil {
			return res, err
		}
		env.Turn++

		for _, side := range []combat.Side{combat.Player1, combat.Player2} {
			so := tr.Outcome.Side(side)
			if so.Command != "" {
				res.Judgments[so.Judgment.String()]++
			}
			res.DamageTaken[side.Other().String()] += so.Dealt.HPDamage
			if so.KnockedDown {
				res.Knockdowns[side.String()]++
			}
		}
		res.DoubleKO = tr.Outcome.DoubleKO
		if rec != nil {
			res.Log = append(res.Log, tr.Message)
		}
	}

	final := b.State()
	res.Turns = env.Turn
	res.Winner = final.Winner
	if !final.MatchOver {
		res.TimedOut = true
		res.Winner = combat.Player1
		if final.P2.HP > final.P1.HP {
			res.Winner = combat.Player2
		}
	}
	if rec != nil {
		res.Final = &final
		res.Events = rec.Events()
	}
	return res, nil
}

func MarshalPretty(v any) []byte {
	b, _ := json.MarshalIndent(v, "", "  ")
	return b
}
