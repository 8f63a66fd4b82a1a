package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

func loadYAML(path string, out any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(b, out)
}

// LoadCharacter reads <dir>/characters/<id>.yaml.
func LoadCharacter(dir, id string) (*CharacterDef, error) {
	var cd CharacterDef
	path := filepath.Join(dir, "characters", id+".yaml")
	if err := loadYAML(path, &cd); err != nil {
		return nil, fmt.Errorf("reading character %s: %w", id, err)
	}
	if cd.ID == "" {
		cd.ID = id
	}
	if cd.ID != id {
		return nil, fmt.Errorf("character file %s declares id %q", path, cd.ID)
	}
	if len(cd.Moves) == 0 {
		return nil, fmt.Errorf("character %s has no moves", id)
	}
	return &cd, nil
}

// LoadPolicies reads <dir>/policies.yaml.
func LoadPolicies(dir string) (*PoliciesConfig, error) {
	var pc PoliciesConfig
	if err := loadYAML(filepath.Join(dir, "policies.yaml"), &pc); err != nil {
		return nil, fmt.Errorf("reading policies: %w", err)
	}
	return &pc, nil
}

// DirLoader loads character files from a data directory.
type DirLoader struct {
	Dir string
}

func (l DirLoader) LoadCharacter(ctx context.Context, id string) (*CharacterDef, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return LoadCharacter(l.Dir, id)
}
