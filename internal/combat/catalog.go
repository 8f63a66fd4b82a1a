package combat

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"

	"duelsim/internal/config"
)

// Loader supplies raw character data. config.DirLoader is the file-backed one.
type Loader interface {
	LoadCharacter(ctx context.Context, id string) (*config.CharacterDef, error)
}

// Catalog is the read-only character and move table. It is never mutated
// after NewCatalog returns, so one Catalog may back many battles.
type Catalog struct {
	chars     map[CharacterID]*Character
	byCommand map[CharacterID]map[string]int
	byMoveID  map[CharacterID]map[string]int
}

// Prepare loads every requested character concurrently and builds a Catalog.
// It is the only blocking step; battles built on the result perform no I/O.
func Prepare(ctx context.Context, loader Loader, ids ...CharacterID) (*Catalog, error) {
	if loader == nil {
		return nil, newError(CodePrecondition, "no character loader")
	}
	seen := make(map[CharacterID]bool, len(ids))
	uniq := ids[:0:0]
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			uniq = append(uniq, id)
		}
	}
	defs := make([]*config.CharacterDef, len(uniq))
	g, gctx := errgroup.WithContext(ctx)
	for i, id := range uniq {
		i, id := i, id
		g.Go(func() error {
			cd, err := loader.LoadCharacter(gctx, id.String())
			if err != nil {
				return wrapError(CodeLookup, err, "load character %s", id)
			}
			defs[i] = cd
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return NewCatalog(defs...)
}

// NewCatalog validates and indexes already-loaded character definitions.
func NewCatalog(defs ...*config.CharacterDef) (*Catalog, error) {
	c := &Catalog{
		chars:     map[CharacterID]*Character{},
		byCommand: map[CharacterID]map[string]int{},
		byMoveID:  map[CharacterID]map[string]int{},
	}
	for _, cd := range defs {
		if cd == nil {
			continue
		}
		ch, err := buildCharacter(cd)
		if err != nil {
			return nil, err
		}
		cmds := make(map[string]int, len(ch.Moves))
		ids := make(map[string]int, len(ch.Moves))
		for i, m := range ch.Moves {
			if _, dup := cmds[m.Command]; dup {
				return nil, newError(CodeValidation, "%s: duplicate command %s", ch.ID, m.Command)
			}
			cmds[m.Command] = i
			if m.ID != "" {
				ids[m.ID] = i
			}
		}
		c.chars[ch.ID] = ch
		c.byCommand[ch.ID] = cmds
		c.byMoveID[ch.ID] = ids
	}
	return c, nil
}

func buildCharacter(cd *config.CharacterDef) (*Character, error) {
	id, err := ParseCharacterID(cd.ID)
	if err != nil {
		return nil, err
	}
	st := cd.Stats
	if st.Defense <= 0 || st.BalanceDefense <= 0 {
		return nil, newError(CodeValidation, "%s: defense multipliers must be positive", id)
	}
	if st.PoweredHitRate < 0 || st.PoweredHitRate > 1 || st.CleanHitRate < 0 || st.CleanHitRate > 1 {
		return nil, newError(CodeValidation, "%s: hit rates must be fractions in [0,1]", id)
	}
	ch := &Character{
		ID:           id,
		Name:         cd.Name,
		NameEn:       cd.NameEn,
		CanTransform: cd.CanTransform,
		Stats: CharacterStats{
			Defense:         st.Defense,
			BalanceDefense:  st.BalanceDefense,
			PoweredHitRate:  st.PoweredHitRate,
			CleanHitRate:    st.CleanHitRate,
			KnockdownSpeed:  st.KnockdownSpeed,
			KnockdownFrames: st.KnockdownFrames,
			Airtime:         st.Airtime,
			AirtimeTouki:    st.AirtimeTouki,
		},
	}
	if cd.CanTransform && cd.TransformInto != "" {
		into, err := ParseCharacterID(cd.TransformInto)
		if err != nil {
			return nil, err
		}
		ch.TransformInto = into
	}
	for _, md := range cd.Moves {
		if md.Command == "" {
			return nil, newError(CodeValidation, "%s: move %q has no command", id, md.ID)
		}
		mt, err := ParseMoveType(md.Type)
		if err != nil {
			return nil, wrapError(CodeValidation, err, "%s: move %s", id, md.Command)
		}
		if md.ReikiCost < 0 || md.ReikiCost > MaxReiki {
			return nil, newError(CodeValidation, "%s: move %s reiki cost %d out of range", id, md.Command, md.ReikiCost)
		}
		prep := map[Stage]int{}
		for k, v := range md.Frames.PrepTransition {
			s, err := ParseStage(k)
			if err != nil {
				return nil, wrapError(CodeValidation, err, "%s: move %s", id, md.Command)
			}
			prep[s] = v
		}
		ch.Moves = append(ch.Moves, Move{
			ID:       md.ID,
			Command:  md.Command,
			Name:     md.Name,
			Type:     mt,
			Priority: ParsePriority(md.Priority),
			Stats: MoveStats{
				SuccessRate:  md.SuccessRate,
				EvasionRate:  md.EvasionRate,
				Power:        md.Power,
				BalanceDrain: md.BalanceDrain,
			},
			ReikiCost: md.ReikiCost,
			Frames: MoveFrames{
				PrepTransition: prep,
				Preparation:    md.Frames.Preparation,
				Activation:     md.Frames.Activation,
			},
		})
	}
	if len(ch.Moves) == 0 {
		return nil, newError(CodeValidation, "%s: no moves", id)
	}
	return ch, nil
}

func (c *Catalog) Has(id CharacterID) bool {
	if c == nil {
		return false
	}
	_, ok := c.chars[id]
	return ok
}

// Len is the number of loaded characters.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.chars)
}

// IDs returns the loaded characters in roster order.
func (c *Catalog) IDs() []CharacterID {
	out := make([]CharacterID, 0, c.Len())
	if c == nil {
		return out
	}
	for id := range c.chars {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Character returns the shared catalog entry; callers must not modify it.
func (c *Catalog) Character(id CharacterID) (*Character, error) {
	if c == nil {
		return nil, newError(CodePrecondition, "catalog not loaded")
	}
	ch, ok := c.chars[id]
	if !ok {
		return nil, newError(CodeLookup, "character %s not loaded", id)
	}
	return ch, nil
}

func (c *Catalog) Stats(id CharacterID) (CharacterStats, error) {
	ch, err := c.Character(id)
	if err != nil {
		return CharacterStats{}, err
	}
	return ch.Stats, nil
}

// Move looks a move up by its command string, e.g. "→A".
func (c *Catalog) Move(id CharacterID, command string) (Move, error) {
	ch, err := c.Character(id)
	if err != nil {
		return Move{}, err
	}
	i, ok := c.byCommand[id][command]
	if !ok {
		return Move{}, newError(CodeLookup, "move %s not found for %s", command, id)
	}
	return ch.Moves[i], nil
}

func (c *Catalog) MoveByID(id CharacterID, moveID string) (Move, error) {
	ch, err := c.Character(id)
	if err != nil {
		return Move{}, err
	}
	i, ok := c.byMoveID[id][moveID]
	if !ok {
		return Move{}, newError(CodeLookup, "move id %s not found for %s", moveID, id)
	}
	return ch.Moves[i], nil
}

// Moves returns a copy of the character's move list.
func (c *Catalog) Moves(id CharacterID) ([]Move, error) {
	ch, err := c.Character(id)
	if err != nil {
		return nil, err
	}
	out := make([]Move, len(ch.Moves))
	copy(out, ch.Moves)
	return out, nil
}
