package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const yusukeYAML = `id: yusuke
name: 幽助
name_en: Yusuke
stats:
  defense: 0.203
  balance_defense: 0.625
  powered_hit_rate: 0.098
  clean_hit_rate: 0.055
  knockdown_frames: 352
moves:
  - id: forward_a
    command: "→A"
    type: contact
    priority: medium
    success_rate: 320
    evasion_rate: 96
    power: 96
    balance_drain: 64
    frames:
      prep_transition: {forest: 6, dark: 7}
      preparation: 18
      activation: 10
`

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func TestLoadCharacter(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "characters", "yusuke.yaml"), yusukeYAML)

	cd, err := LoadCharacter(dir, "yusuke")
	require.NoError(t, err)
	assert.Equal(t, "Yusuke", cd.NameEn)
	assert.Equal(t, 0.203, cd.Stats.Defense)
	assert.Equal(t, 352, cd.Stats.KnockdownFrames)
	require.Len(t, cd.Moves, 1)
	mv := cd.Moves[0]
	assert.Equal(t, "→A", mv.Command)
	assert.Equal(t, 320, mv.SuccessRate)
	assert.Equal(t, 7, mv.Frames.PrepTransition["dark"])
	assert.Equal(t, 18, mv.Frames.Preparation)

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadCharacter(dir, "hiei")
		require.Error(t, err)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
	t.Run("id mismatch", func(t *testing.T) {
		writeFile(t, filepath.Join(dir, "characters", "kuwabara.yaml"), yusukeYAML)
		_, err := LoadCharacter(dir, "kuwabara")
		assert.ErrorContains(t, err, `declares id "yusuke"`)
	})
	t.Run("no moves", func(t *testing.T) {
		writeFile(t, filepath.Join(dir, "characters", "jin.yaml"), "id: jin\nstats: {defense: 0.2}\n")
		_, err := LoadCharacter(dir, "jin")
		assert.ErrorContains(t, err, "no moves")
	})
}

func TestDirLoader(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "characters", "yusuke.yaml"), yusukeYAML)
	l := DirLoader{Dir: dir}

	cd, err := l.LoadCharacter(context.Background(), "yusuke")
	require.NoError(t, err)
	assert.Equal(t, "yusuke", cd.ID)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = l.LoadCharacter(ctx, "yusuke")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLoadPolicies(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "policies.yaml"), `policies:
  - id: aggressive
    commands:
      - { command: "→A", weight: 3 }
      - { command: "→X", weight: 1 }
    charge: { direction: "→", frames_min: 30, frames_max: 61 }
    react_min: 4
    react_max: 20
    item_chance: 0.25
    mash_rate: 0.5
`)
	pc, err := LoadPolicies(dir)
	require.NoError(t, err)
	require.Len(t, pc.Policies, 1)
	p := pc.Policies[0]
	assert.Equal(t, "aggressive", p.ID)
	assert.Len(t, p.Commands, 2)
	assert.Equal(t, 3.0, p.Commands[0].Weight)
	assert.Equal(t, ChargeWindow{Direction: "→", FramesMin: 30, FramesMax: 61}, p.Charge)
	assert.Equal(t, 0.25, p.ItemChance)

	_, err = LoadPolicies(t.TempDir())
	assert.Error(t, err)
}

func TestLoadSim(t *testing.T) {
	t.Run("missing file yields defaults", func(t *testing.T) {
		cfg, err := LoadSim(filepath.Join(t.TempDir(), "nope.yaml"))
		require.NoError(t, err)
		assert.Equal(t, DefaultSim(), cfg)
	})

	t.Run("file then env", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "sim.yaml")
		writeFile(t, path, `data_dir: data
player1:
  character: hiei
  policy: turtle
  item: spirit_large
seed: 7
runs: 50
`)
		t.Setenv("DUELSIM_SEED", "99")
		t.Setenv("DUELSIM_P2_CHARACTER", "jin")

		cfg, err := LoadSim(path)
		require.NoError(t, err)
		assert.Equal(t, "data", cfg.DataDir)
		assert.Equal(t, SideConfig{Character: "hiei", Policy: "turtle", Item: "spirit_large"}, cfg.Player1)
		assert.Equal(t, "jin", cfg.Player2.Character)
		assert.Equal(t, "balanced", cfg.Player2.Policy, "unset fields keep defaults")
		assert.Equal(t, int64(99), cfg.Seed)
		assert.Equal(t, 50, cfg.Runs)
		assert.Equal(t, 8, cfg.Workers)
	})

	t.Run("bad yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "sim.yaml")
		writeFile(t, path, "runs: [oops")
		_, err := LoadSim(path)
		assert.ErrorContains(t, err, "parsing config")
	})

	t.Run("bad env", func(t *testing.T) {
		t.Setenv("DUELSIM_RUNS", "many")
		_, err := LoadSim(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.ErrorContains(t, err, "parse env")
	})
}
