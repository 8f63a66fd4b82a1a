package combat

import "strings"

const (
	MaxHP        = 96
	MaxReiki     = 25
	InitialReiki = 20
	// RewardReiki is the crystal ball grant for a direct hit.
	RewardReiki = 3
)

func (c CharacterID) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

// Stage only shifts preparation timing; it never changes an outcome.
type Stage int

const (
	StageForest Stage = iota
	StageDark
	StageGuillotine
	StageTimegap
)

func (s Stage) String() string {
	switch s {
	case StageDark:
		return "dark"
	case StageGuillotine:
		return "guillotine"
	case StageTimegap:
		return "timegap"
	}
	return "forest"
}

func (s Stage) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func ParseStage(s string) (Stage, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "forest":
		return StageForest, nil
	case "dark":
		return StageDark, nil
	case "guillotine":
		return StageGuillotine, nil
	case "timegap":
		return StageTimegap, nil
	}
	return StageForest, newError(CodeValidation, "unknown stage %q", s)
}

type Phase int

const (
	PhaseInput Phase = iota
	PhasePreparation
	PhaseActivation
	PhaseResolution
	PhaseReward
	PhaseMatchOver
)

func (p Phase) String() string {
	switch p {
	case PhaseInput:
		return "input"
	case PhasePreparation:
		return "preparation"
	case PhaseActivation:
		return "activation"
	case PhaseResolution:
		return "resolution"
	case PhaseReward:
		return "reward"
	case PhaseMatchOver:
		return "match_over"
	}
	return "unknown"
}

func (p Phase) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

// Item is a stocked consumable.
type Item int

const (
	ItemNone Item = iota
	ItemReikiLarge
	ItemReikiSmall
	ItemSpiritLarge
	ItemSpiritSmall
	ItemLoveLarge
	ItemLoveSmall
)

func (it Item) String() string {
	switch it {
	case ItemReikiLarge:
		return "reiki_large"
	case ItemReikiSmall:
		return "reiki_small"
	case ItemSpiritLarge:
		return "spirit_large"
	case ItemSpiritSmall:
		return "spirit_small"
	case ItemLoveLarge:
		return "love_large"
	case ItemLoveSmall:
		return "love_small"
	}
	return "none"
}

func (it Item) MarshalText() ([]byte, error) { return []byte(it.String()), nil }

func ParseItem(s string) (Item, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if key == "" || key == "none" {
		return ItemNone, nil
	}
	for it := ItemReikiLarge; it <= ItemLoveSmall; it++ {
		if it.String() == key {
			return it, nil
		}
	}
	return ItemNone, newError(CodeValidation, "unknown item %q", s)
}

// PlayerState is one side of the battle. Only Battle mutates it.
type PlayerState struct {
	Character CharacterID `json:"character"`

	HP int `json:"hp"`
	// HPCarry is the fractional damage accumulator, in [0,1).
	HPCarry float64 `json:"hp_carry"`
	// DotCarry accumulates damage over time separately from HPCarry.
	DotCarry float64 `json:"dot_carry"`
	Balance  int     `json:"balance"`
	Touki    int     `json:"touki"`
	Reiki    int     `json:"reiki"`

	KnockedDown       bool `json:"knocked_down"`
	KnockdownRecovery int  `json:"knockdown_recovery"`

	ToukiBuff ToukiBuff `json:"touki_buff"`
	Item      Item      `json:"item"`
	Command   *Command  `json:"command,omitempty"`
}

func newPlayerState(id CharacterID) PlayerState {
	return PlayerState{
		Character: id,
		HP:        MaxHP,
		Reiki:     InitialReiki,
	}
}

// tickDot applies one damage-over-time amount, negative for regeneration,
// and returns the HP change actually applied.
func (p *PlayerState) tickDot(amount float64) int {
	delta, carry := applyDot(p.DotCarry, amount)
	p.DotCarry = carry
	hp := min(MaxHP, max(0, p.HP+delta))
	delta = hp - p.HP
	p.HP = hp
	return delta
}

func (p PlayerState) validate() error {
	switch {
	case p.HP < 0 || p.HP > MaxHP:
		return newError(CodeValidation, "%s hp %d out of range", p.Character, p.HP)
	case p.HPCarry < 0 || p.HPCarry >= 1:
		return newError(CodeValidation, "%s hp carry %v out of range", p.Character, p.HPCarry)
	case p.DotCarry < 0 || p.DotCarry >= 1:
		return newError(CodeValidation, "%s dot carry %v out of range", p.Character, p.DotCarry)
	case p.Balance < 0 || p.Balance > MaxBalance:
		return newError(CodeValidation, "%s balance %d out of range", p.Character, p.Balance)
	case p.Touki < 0 || p.Touki > MaxTouki:
		return newError(CodeValidation, "%s touki %d out of range", p.Character, p.Touki)
	case p.Reiki < 0 || p.Reiki > MaxReiki:
		return newError(CodeValidation, "%s reiki %d out of range", p.Character, p.Reiki)
	}
	return nil
}

// Reward is the crystal ball handed out in the reward phase.
type Reward struct {
	Side Side `json:"side"`
	// Reiki is the amount granted. The gauge itself stays capped at MaxReiki.
	Reiki int `json:"reiki"`
}

// BattleState is the canonical battle snapshot.
type BattleState struct {
	P1 PlayerState `json:"p1"`
	P2 PlayerState `json:"p2"`

	Turn  int   `json:"turn"`
	Phase Phase `json:"phase"`
	First Side  `json:"first"`
	Stage Stage `json:"stage"`

	Reward *Reward `json:"reward,omitempty"`
	// Totals of the last resolved turn.
	LastDamage        int `json:"last_damage"`
	LastBalanceDamage int `json:"last_balance_damage"`

	Winner    Side `json:"winner"`
	MatchOver bool `json:"match_over"`
}

// Player returns the state of one side.
func (s *BattleState) Player(side Side) *PlayerState {
	if side == Player2 {
		return &s.P2
	}
	return &s.P1
}

// clone deep-copies the pointer fields so a working copy can be discarded.
func (s BattleState) clone() BattleState {
	out := s
	if s.P1.Command != nil {
		c := *s.P1.Command
		out.P1.Command = &c
	}
	if s.P2.Command != nil {
		c := *s.P2.Command
		out.P2.Command = &c
	}
	if s.Reward != nil {
		r := *s.Reward
		out.Reward = &r
	}
	return out
}

// SideOutcome is what one side did this turn and what happened to it.
type SideOutcome struct {
	Command     string         `json:"command,omitempty"`
	Move        string         `json:"move,omitempty"`
	MoveType    string         `json:"move_type"`
	Role        Role           `json:"role"`
	Corrections Corrections    `json:"corrections"`
	Modifiers   Modifiers      `json:"modifiers"`
	Stats       CorrectedStats `json:"stats"`
	Judgment    JudgmentResult `json:"judgment"`
	// Dealt is the damage this side's action did to the opponent.
	Dealt DamageResult `json:"dealt"`

	ItemUsed    Item `json:"item_used,omitempty"`
	Recovered   bool `json:"recovered,omitempty"`
	KnockedDown bool `json:"knocked_down"`
	Defeated    bool `json:"defeated"`
	Rewarded    bool `json:"rewarded"`
}

// Outcome is the structured record of one resolved turn.
type Outcome struct {
	Turn           int         `json:"turn"`
	First          Side        `json:"first"`
	CompleteSecond bool        `json:"complete_second"`
	Scenario       string      `json:"scenario"`
	P1             SideOutcome `json:"p1"`
	P2             SideOutcome `json:"p2"`
	DoubleKO       bool        `json:"double_ko"`
	Winner         Side        `json:"winner"`
	MatchOver      bool        `json:"match_over"`
}

func (o *Outcome) Side(side Side) *SideOutcome {
	if side == Player2 {
		return &o.P2
	}
	return &o.P1
}

// TurnResult is returned by ProcessTurn.
type TurnResult struct {
	State   BattleState `json:"state"`
	Outcome Outcome     `json:"outcome"`
	Message string      `json:"message"`
}
