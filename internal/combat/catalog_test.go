package combat

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"duelsim/internal/config"
)

type mapLoader struct {
	defs  map[string]*config.CharacterDef
	calls atomic.Int32
}

func (l *mapLoader) LoadCharacter(_ context.Context, id string) (*config.CharacterDef, error) {
	l.calls.Add(1)
	cd, ok := l.defs[id]
	if !ok {
		return nil, errors.New("no such file")
	}
	return cd, nil
}

func TestPrepare(t *testing.T) {
	loader := &mapLoader{defs: map[string]*config.CharacterDef{
		"yusuke":   testCharacterDef("yusuke"),
		"kuwabara": testCharacterDef("kuwabara"),
	}}

	cat, err := Prepare(context.Background(), loader, Yusuke, Kuwabara, Yusuke)
	require.NoError(t, err)
	assert.Equal(t, 2, cat.Len())
	assert.Equal(t, []CharacterID{Yusuke, Kuwabara}, cat.IDs())
	assert.EqualValues(t, 2, loader.calls.Load(), "duplicates load once")

	_, err = Prepare(context.Background(), loader, Yusuke, Hiei)
	assert.ErrorIs(t, err, ErrLookup)

	_, err = Prepare(context.Background(), nil, Yusuke)
	assert.ErrorIs(t, err, ErrPrecondition)
}

func TestCatalogLookups(t *testing.T) {
	cat := testCatalog(t)

	mv, err := cat.Move(Yusuke, "→A")
	require.NoError(t, err)
	assert.Equal(t, "forward_a", mv.ID)
	assert.Equal(t, MoveContact, mv.Type)
	assert.Equal(t, 18, mv.Frames.Preparation)
	assert.Equal(t, 7, mv.Frames.PrepTransition[StageDark])

	byID, err := cat.MoveByID(Kuwabara, "back_a")
	require.NoError(t, err)
	assert.Equal(t, MoveGuard, byID.Type)

	_, err = cat.Move(Yusuke, "↓Y")
	assert.ErrorIs(t, err, ErrLookup)
	_, err = cat.Stats(Hiei)
	assert.ErrorIs(t, err, ErrLookup)

	var empty *Catalog
	_, err = empty.Character(Yusuke)
	assert.ErrorIs(t, err, ErrPrecondition)
	assert.False(t, empty.Has(Yusuke))

	moves, err := cat.Moves(Yusuke)
	require.NoError(t, err)
	moves[0].Command = "changed"
	again, err := cat.Move(Yusuke, "→A")
	require.NoError(t, err)
	assert.Equal(t, "→A", again.Command, "Moves returns a copy")

	st, err := cat.Stats(Yusuke)
	require.NoError(t, err)
	assert.InDelta(t, 384.0, st.RealHP(), 1e-9)
	assert.Equal(t, 256, st.RealBalance())
}

func TestNewCatalogValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.CharacterDef)
		want   error
	}{
		{"unknown id", func(cd *config.CharacterDef) { cd.ID = "nobody" }, ErrLookup},
		{"zero defense", func(cd *config.CharacterDef) { cd.Stats.Defense = 0 }, ErrValidation},
		{"rate as percent", func(cd *config.CharacterDef) { cd.Stats.PoweredHitRate = 9.8 }, ErrValidation},
		{"bad move type", func(cd *config.CharacterDef) { cd.Moves[0].Type = "dance" }, ErrValidation},
		{"cost above gauge", func(cd *config.CharacterDef) { cd.Moves[0].ReikiCost = MaxReiki + 1 }, ErrValidation},
		{"bad stage key", func(cd *config.CharacterDef) { cd.Moves[0].Frames.PrepTransition["moon"] = 3 }, ErrValidation},
		{"duplicate command", func(cd *config.CharacterDef) { cd.Moves[1].Command = "→A" }, ErrValidation},
		{"no moves", func(cd *config.CharacterDef) { cd.Moves = nil }, ErrValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cd := testCharacterDef("yusuke")
			tt.mutate(cd)
			_, err := NewCatalog(cd)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestParseCommand(t *testing.T) {
	tests := []struct {
		in      string
		want    Command
		wantErr bool
	}{
		{in: "→A", want: Command{Direction: DirForward, Button: ButtonA}},
		{in: "↓Y", want: Command{Direction: DirDown, Button: ButtonY}},
		{in: " back B ", want: Command{Direction: DirBack, Button: ButtonB}},
		{in: "A", wantErr: true},
		{in: "→Z", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseCommand(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
	assert.Equal(t, "←X", Command{Direction: DirBack, Button: ButtonX}.String())
}

func TestDetermineInitiative(t *testing.T) {
	assert.Equal(t, Player1, DetermineInitiative(cmd("→A", 3), cmd("→A", 5)))
	assert.Equal(t, Player2, DetermineInitiative(cmd("→A", 6), cmd("→A", 5)))
	assert.Equal(t, Player1, DetermineInitiative(cmd("→A", 5), cmd("→A", 5)))
	assert.Equal(t, Player2, DetermineInitiative(nil, cmd("→A", 500)))
	assert.Equal(t, Player1, DetermineInitiative(nil, nil))
}

func TestParseEnums(t *testing.T) {
	id, err := ParseCharacterID("Toguro_80")
	require.NoError(t, err)
	assert.Equal(t, Toguro80, id)

	_, err = ParseCharacterID("goku")
	assert.ErrorIs(t, err, ErrLookup)

	st, err := ParseStage("timegap")
	require.NoError(t, err)
	assert.Equal(t, StageTimegap, st)

	it, err := ParseItem("love_small")
	require.NoError(t, err)
	assert.Equal(t, ItemLoveSmall, it)
	_, err = ParseItem("potion")
	assert.ErrorIs(t, err, ErrValidation)

	assert.True(t, MoveAerial.IsAttack())
	assert.False(t, MoveBuff.IsAttack())
}
