package combat

// Judgment thresholds on attacker success minus defender evasion.
const (
	DirectHitThreshold = 192
	GrazeThreshold     = 128
	EvadeThreshold     = 64
)

const (
	secondPenalty         = 0.9
	completeSecondPenalty = 0.75

	lowHPCeiling  = MaxHP / 4
	lowHPMaxBonus = 0.15
	// specialLowHPBonus is the extra powered/clean hit chance at 0 HP.
	specialLowHPBonus = 38.0 / 256
)

// Flat bonuses added after the multiplicative pipeline.
const (
	poweredSuccessBonus = 56
	poweredEvasionBonus = 32
	poweredPowerBonus   = 16

	cleanSuccessBonus = 32
	cleanEvasionBonus = 16
	cleanPowerBonus   = 16
	cleanDrainBonus   = 48
)

// JudgmentResult is the outcome of one actor's action.
type JudgmentResult int

const (
	DirectHit JudgmentResult = iota
	Graze
	Evade
	DirectFail
)

func (j JudgmentResult) String() string {
	switch j {
	case DirectHit:
		return "direct_hit"
	case Graze:
		return "graze"
	case Evade:
		return "evade"
	case DirectFail:
		return "direct_fail"
	}
	return "unknown"
}

func (j JudgmentResult) MarshalText() ([]byte, error) { return []byte(j.String()), nil }

// Connects reports whether the judgment deals damage.
func (j JudgmentResult) Connects() bool { return j == DirectHit || j == Graze }

// Classify maps a success differential to a judgment.
func Classify(diff float64) JudgmentResult {
	switch {
	case diff >= DirectHitThreshold:
		return DirectHit
	case diff >= GrazeThreshold:
		return Graze
	case diff >= EvadeThreshold:
		return Evade
	default:
		return DirectFail
	}
}

// Corrections are one side's multipliers for the current turn.
type Corrections struct {
	Touki   float64 `json:"touki"`
	Random  float64 `json:"random"`
	Balance float64 `json:"balance"`
	LowHP   float64 `json:"low_hp"`
}

// NewCorrections builds a side's multipliers from its gauges and random draw.
func NewCorrections(touki, balance, hp int, random float64) (Corrections, error) {
	tm, err := ToukiMultiplier(touki)
	if err != nil {
		return Corrections{}, err
	}
	bm, err := BalanceMultiplier(balance)
	if err != nil {
		return Corrections{}, err
	}
	return Corrections{Touki: tm, Random: random, Balance: bm, LowHP: LowHPCorrection(hp)}, nil
}

func (c Corrections) apply(base int) float64 {
	v := float64(base) * c.Touki * c.Random * c.Balance
	return v * c.LowHP
}

// Role is a side's initiative standing for one judgment.
type Role int

const (
	RoleFirst Role = iota
	RoleSecond
	RoleCompleteSecond
)

func (r Role) String() string {
	switch r {
	case RoleFirst:
		return "first"
	case RoleSecond:
		return "second"
	case RoleCompleteSecond:
		return "complete_second"
	}
	return "unknown"
}

func (r Role) MarshalText() ([]byte, error) { return []byte(r.String()), nil }

// penalty applies to success and evasion only.
func (r Role) penalty() float64 {
	switch r {
	case RoleSecond:
		return secondPenalty
	case RoleCompleteSecond:
		return secondPenalty * completeSecondPenalty
	}
	return 1.0
}

// asDefender is the actor as seen from the other side's judgment. A defender
// is only ever first or second; the complete-second penalty stays with its
// own attack.
func (a Actor) asDefender() Actor {
	if a.Role == RoleCompleteSecond {
		a.Role = RoleSecond
	}
	return a
}

// Modifiers are the special hit rolls of one side for one turn.
type Modifiers struct {
	PoweredHit bool `json:"powered_hit"`
	CleanHit   bool `json:"clean_hit"`
}

// lowHPRatio is 0 above a quarter of max HP and rises linearly to 1 at 0 HP.
func lowHPRatio(hp int) float64 {
	if hp > lowHPCeiling {
		return 0
	}
	if hp < 0 {
		hp = 0
	}
	pct := float64(hp) / MaxHP
	return (0.25 - pct) / 0.25
}

// LowHPCorrection is 1.0 above 25% HP and ramps linearly to 1.15 at 0 HP.
func LowHPCorrection(hp int) float64 {
	return 1.0 + lowHPRatio(hp)*lowHPMaxBonus
}

// RollModifiers draws the powered and clean hit rolls, in that order. Both
// are always drawn so the number of random draws per turn is fixed.
func RollModifiers(rng Rand, stats CharacterStats, hp int) Modifiers {
	bonus := lowHPRatio(hp) * specialLowHPBonus
	powered := rng.Float64() < stats.PoweredHitRate+bonus
	clean := rng.Float64() < stats.CleanHitRate+bonus
	return Modifiers{PoweredHit: powered, CleanHit: clean}
}

// Actor is one side as seen by a judgment.
type Actor struct {
	Move        MoveStats
	Corrections Corrections
	Role        Role
	Modifiers   Modifiers
}

// JudgmentInput pairs the acting side with the side it targets.
type JudgmentInput struct {
	Attacker Actor
	Defender Actor
}

// CorrectedSuccess is the attacker's success rate after every correction.
func CorrectedSuccess(a Actor) float64 {
	v := a.Corrections.apply(a.Move.SuccessRate) * a.Role.penalty()
	if a.Modifiers.PoweredHit {
		v += poweredSuccessBonus
	}
	if a.Modifiers.CleanHit {
		v += cleanSuccessBonus
	}
	return v
}

// CorrectedEvasion is the defender's evasion after every correction. Clean
// hits only help when attacking, so they are ignored here.
func CorrectedEvasion(d Actor) float64 {
	v := d.Corrections.apply(d.Move.EvasionRate) * d.Role.penalty()
	if d.Modifiers.PoweredHit {
		v += poweredEvasionBonus
	}
	return v
}

// Judge classifies the attacker's action against the defender.
func Judge(in JudgmentInput) JudgmentResult {
	return Classify(SuccessDiff(in))
}

// SuccessDiff is attacker success minus defender evasion.
func SuccessDiff(in JudgmentInput) float64 {
	return CorrectedSuccess(in.Attacker) - CorrectedEvasion(in.Defender)
}

// CorrectedStats are a side's four stats with every correction and bonus,
// truncated. Reported in outcomes; judgments use the unrounded values.
type CorrectedStats struct {
	SuccessRate  int `json:"success_rate"`
	EvasionRate  int `json:"evasion_rate"`
	Power        int `json:"power"`
	BalanceDrain int `json:"balance_drain"`
}

func Corrected(a Actor) CorrectedStats {
	success := a.Corrections.apply(a.Move.SuccessRate) * a.Role.penalty()
	evasion := a.Corrections.apply(a.Move.EvasionRate) * a.asDefender().Role.penalty()
	power := a.Corrections.apply(a.Move.Power)
	drain := a.Corrections.apply(a.Move.BalanceDrain)
	if a.Modifiers.PoweredHit {
		success += poweredSuccessBonus
		evasion += poweredEvasionBonus
		power += poweredPowerBonus
	}
	if a.Modifiers.CleanHit {
		success += cleanSuccessBonus
		evasion += cleanEvasionBonus
		power += cleanPowerBonus
		drain += cleanDrainBonus
	}
	return CorrectedStats{
		SuccessRate:  int(success),
		EvasionRate:  int(evasion),
		Power:        int(power),
		BalanceDrain: int(drain),
	}
}
