package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"duelsim/internal/combat"
	"duelsim/internal/config"
	"duelsim/internal/util"
)

func testDef(id string) *config.CharacterDef {
	move := func(mid, cmd, typ string, success, evasion, power, drain, cost int) config.MoveDef {
		return config.MoveDef{
			ID: mid, Command: cmd, Type: typ,
			SuccessRate: success, EvasionRate: evasion, Power: power, BalanceDrain: drain,
			ReikiCost: cost,
			Frames:    config.FramesDef{Preparation: 18, Activation: 10},
		}
	}
	return &config.CharacterDef{
		ID: id,
		Stats: config.StatsDef{
			Defense: 0.2, BalanceDefense: 0.6,
			PoweredHitRate: 0.1, CleanHitRate: 0.05,
			KnockdownFrames: 120,
		},
		Moves: []config.MoveDef{
			move("forward_a", "→A", "contact", 340, 100, 140, 120, 0),
			move("forward_x", "→X", "shockwave", 380, 60, 180, 140, 10),
			move("back_a", "←A", "guard", 0, 220, 0, 0, 0),
		},
	}
}

func testCatalog(t *testing.T) *combat.Catalog {
	t.Helper()
	cat, err := combat.NewCatalog(testDef("yusuke"), testDef("hiei"))
	require.NoError(t, err)
	return cat
}

func aggressive() config.Policy {
	return config.Policy{
		ID: "aggressive",
		Commands: []config.WeightedCommand{
			{Command: "→A", Weight: 3},
			{Command: "→X", Weight: 1},
		},
		Charge:   config.ChargeWindow{Direction: "→", FramesMin: 40, FramesMax: 61},
		ReactMin: 2, ReactMax: 20,
		MashRate: 0.5,
	}
}

func TestNewWeightedPolicy(t *testing.T) {
	cat := testCatalog(t)

	p, err := NewWeightedPolicy(aggressive(), cat, combat.Yusuke)
	require.NoError(t, err)
	assert.Equal(t, "aggressive", p.ID())

	bad := aggressive()
	bad.Commands = append(bad.Commands, config.WeightedCommand{Command: "↓Y", Weight: 1})
	_, err = NewWeightedPolicy(bad, cat, combat.Yusuke)
	assert.ErrorIs(t, err, combat.ErrLookup)

	bad = aggressive()
	bad.Charge.Direction = "sideways"
	_, err = NewWeightedPolicy(bad, cat, combat.Yusuke)
	assert.ErrorIs(t, err, combat.ErrValidation)

	_, err = NewWeightedPolicy(config.Policy{ID: "empty"}, cat, combat.Yusuke)
	assert.Error(t, err)
}

func TestWeightedPolicyNext(t *testing.T) {
	cat := testCatalog(t)
	p, err := NewWeightedPolicy(aggressive(), cat, combat.Yusuke)
	require.NoError(t, err)
	env := &Env{Rng: util.New(3)}

	var st combat.BattleState
	st.P1.Reiki = combat.InitialReiki

	for i := 0; i < 50; i++ {
		in := p.Next(env, st, combat.Player1)
		require.NotNil(t, in.Command)
		assert.Contains(t, []string{"→A", "→X"}, in.Command.String())
		assert.GreaterOrEqual(t, in.Command.Timestamp, 2)
		assert.LessOrEqual(t, in.Command.Timestamp, 20)
		assert.True(t, in.Charge.Charging)
		assert.Equal(t, combat.DirForward, in.Charge.Direction)
		assert.GreaterOrEqual(t, in.Charge.FramesHeld, 40)
		assert.LessOrEqual(t, in.Charge.FramesHeld, 61)
	}

	t.Run("skips what it cannot pay for", func(t *testing.T) {
		st.P1.Reiki = 0
		for i := 0; i < 50; i++ {
			in := p.Next(env, st, combat.Player1)
			require.NotNil(t, in.Command)
			assert.Equal(t, "→A", in.Command.String())
		}
	})

	t.Run("mashes while down", func(t *testing.T) {
		st.P1.KnockedDown = true
		st.P1.KnockdownRecovery = 40
		in := p.Next(env, st, combat.Player1)
		assert.Nil(t, in.Command)
		assert.False(t, in.Charge.Charging)
		assert.NotEmpty(t, in.RecoveryPresses)
		for _, f := range in.RecoveryPresses {
			assert.Less(t, f, 40)
		}
	})
}

func TestRunSingle(t *testing.T) {
	cat := testCatalog(t)
	p1, err := NewWeightedPolicy(aggressive(), cat, combat.Yusuke)
	require.NoError(t, err)
	p2, err := NewWeightedPolicy(aggressive(), cat, combat.Hiei)
	require.NoError(t, err)

	play := func(seed int64) SimResult {
		rec := &Recorder{}
		b, err := combat.NewBattle(cat, combat.Yusuke, combat.Hiei,
			combat.WithRand(util.New(seed)),
			combat.WithEmitter(rec.Emit),
		)
		require.NoError(t, err)
		res, err := RunSingle(&Env{MaxTurns: 100, Rng: util.New(seed + 1)}, b, p1, p2, rec)
		require.NoError(t, err)
		return res
	}

	res := play(12345)
	assert.Greater(t, res.Turns, 0)
	assert.NotEqual(t, combat.SideNone, res.Winner)
	assert.Len(t, res.Log, res.Turns)
	assert.NotEmpty(t, res.Events)
	require.NotNil(t, res.Final)
	if !res.TimedOut {
		assert.True(t, res.Final.MatchOver)
		assert.Equal(t, res.Final.Winner, res.Winner)
	}
	assert.Equal(t, res, play(12345), "same seed, same match")
}

func TestRunSingle_TimesOut(t *testing.T) {
	b, err := combat.NewBattle(testCatalog(t), combat.Yusuke, combat.Hiei)
	require.NoError(t, err)

	res, err := RunSingle(&Env{MaxTurns: 10, Rng: util.New(1)}, b, IdlePolicy{}, IdlePolicy{}, nil)
	require.NoError(t, err)
	assert.True(t, res.TimedOut)
	assert.Equal(t, 10, res.Turns)
	assert.Equal(t, combat.Player1, res.Winner)
	assert.Nil(t, res.Final)
	assert.Empty(t, res.Log)
	assert.Empty(t, res.Judgments)
}

func TestMarshalPretty(t *testing.T) {
	out := MarshalPretty(SimResult{Winner: combat.Player2, Turns: 3})
	assert.Contains(t, string(out), `"winner": "p2"`)
	assert.Contains(t, string(out), "\n  \"turns\": 3")
}
