package combat

import (
	"testing"

	"github.com/stretchr/testify/require"

	"duelsim/internal/config"
)

// scriptedRand replays fixed draws. Once a script runs out, Intn returns
// n-1 and Float64 returns 0.999, i.e. the top of every random range and no
// special hits.
type scriptedRand struct {
	ints   []int
	floats []float64
	nInt   int
	nFloat int
}

func (r *scriptedRand) Intn(n int) int {
	r.nInt++
	if len(r.ints) == 0 {
		return n - 1
	}
	v := r.ints[0]
	r.ints = r.ints[1:]
	return min(v, n-1)
}

func (r *scriptedRand) Float64() float64 {
	r.nFloat++
	if len(r.floats) == 0 {
		return 0.999
	}
	v := r.floats[0]
	r.floats = r.floats[1:]
	return v
}

func moveDef(id, cmd, typ string, success, evasion, power, drain, cost, prep int) config.MoveDef {
	return config.MoveDef{
		ID: id, Command: cmd, Name: id, Type: typ, Priority: "medium",
		SuccessRate: success, EvasionRate: evasion, Power: power, BalanceDrain: drain,
		ReikiCost: cost,
		Frames: config.FramesDef{
			PrepTransition: map[string]int{"forest": 6, "dark": 7},
			Preparation:    prep,
			Activation:     10,
		},
	}
}

func testCharacterDef(id string) *config.CharacterDef {
	return &config.CharacterDef{
		ID:   id,
		Name: id,
		Stats: config.StatsDef{
			Defense:         0.25,
			BalanceDefense:  1.0,
			KnockdownSpeed:  4,
			KnockdownFrames: 300,
		},
		Moves: []config.MoveDef{
			moveDef("forward_a", "→A", "contact", 300, 0, 100, 100, 0, 18),
			moveDef("up_a", "↑A", "aerial", 300, 0, 400, 10, 0, 20),
			moveDef("down_a", "↓A", "ground", 300, 0, 10, 300, 0, 18),
			moveDef("forward_x", "→X", "shockwave", 300, 0, 100, 50, 8, 30),
			moveDef("forward_y", "→Y", "shockwave", 400, 0, 200, 100, 25, 30),
			moveDef("back_a", "←A", "guard", 0, 200, 0, 0, 0, 6),
		},
	}
}

func testCatalog(t *testing.T) *Catalog {
	t.Helper()
	cat, err := NewCatalog(testCharacterDef("yusuke"), testCharacterDef("kuwabara"))
	require.NoError(t, err)
	return cat
}

func cmd(s string, ts int) *Command {
	c, err := ParseCommand(s)
	if err != nil {
		panic(err)
	}
	c.Timestamp = ts
	return &c
}

// fullCharge holds punch charge long enough to fill the gauge.
var fullCharge = ChargeInput{Charging: true, Direction: DirForward, FramesHeld: 61}
