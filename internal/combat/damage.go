package combat

import "math"

// HitType is how a connecting action lands.
type HitType int

const (
	HitNone HitType = iota
	HitDirect
	HitGraze
	HitBlock
)

func (h HitType) String() string {
	switch h {
	case HitDirect:
		return "direct"
	case HitGraze:
		return "graze"
	case HitBlock:
		return "block"
	}
	return "none"
}

func (h HitType) MarshalText() ([]byte, error) { return []byte(h.String()), nil }

// Health and stability scalars per hit type. Blocked hits still drain
// stability in full.
var (
	hpScale      = [...]float64{HitNone: 0, HitDirect: 1.0, HitGraze: 0.25, HitBlock: 0.375}
	balanceScale = [...]float64{HitNone: 0, HitDirect: 1.0, HitGraze: 0.5, HitBlock: 1.0}
)

// DamageInput is everything needed to resolve one action against its target.
type DamageInput struct {
	BasePower int
	BaseDrain int
	// Corrections and Modifiers belong to the attacker.
	Corrections Corrections
	Modifiers   Modifiers
	Judgment    JudgmentResult

	Defender        CharacterStats
	DefenderGuards  bool
	DefenderHP      int
	DefenderBalance int
	// Carry is the defender's fractional accumulator before this hit.
	Carry float64
}

type DamageResult struct {
	HPDamage      int     `json:"hp_damage"`
	Fraction      float64 `json:"fraction"`
	Carry         float64 `json:"carry"`
	BalanceDamage int     `json:"balance_damage"`
	Hit           HitType `json:"hit"`
	Knockdown     bool    `json:"knockdown"`
	Defeated      bool    `json:"defeated"`
}

// Resolve turns a judgment into health and stability damage.
func Resolve(in DamageInput) DamageResult {
	if !in.Judgment.Connects() {
		return DamageResult{Carry: in.Carry, Hit: HitNone}
	}

	power := in.Corrections.apply(in.BasePower)
	drain := in.Corrections.apply(in.BaseDrain)
	if in.Modifiers.PoweredHit {
		power += poweredPowerBonus
	}
	if in.Modifiers.CleanHit {
		power += cleanPowerBonus
		drain += cleanDrainBonus
	}

	hpAfterDefense := power * in.Defender.Defense
	balanceAfterDefense := drain * in.Defender.BalanceDefense

	hit := HitGraze
	if in.Judgment == DirectHit {
		hit = HitDirect
		if in.DefenderGuards {
			hit = HitBlock
		}
	}

	hp := hpAfterDefense * hpScale[hit]
	hpInt := math.Floor(hp)
	frac := hp - hpInt
	extra, carry := AccumulateFraction(in.Carry, frac)
	total := int(hpInt) + extra

	remaining := in.DefenderHP - total
	balance := int(math.Floor(balanceAfterDefense * balanceScale[hit]))
	if hit == HitGraze && remaining <= 0 {
		// A lethal graze counts as a full hit.
		hit = HitDirect
		balance = int(math.Floor(balanceAfterDefense))
	}

	return DamageResult{
		HPDamage:      total,
		Fraction:      frac,
		Carry:         carry,
		BalanceDamage: balance,
		Hit:           hit,
		Knockdown:     in.DefenderBalance+balance >= KnockdownSentinel,
		Defeated:      remaining <= 0 || (in.DefenderHP == 0 && in.BaseDrain == 0),
	}
}

// AccumulateFraction adds sub-point damage to a carry in [0,1). Reaching 1.0
// converts into one extra point of damage.
func AccumulateFraction(carry, frac float64) (int, float64) {
	sum := carry + frac
	if sum >= 1.0 {
		return 1, sum - 1.0
	}
	return 0, sum
}

// DoubleKOWinner settles a simultaneous defeat. hp is each side's health
// before the turn's damage; the side that overshot by less wins, and an
// exact tie goes to player 1.
func DoubleKOWinner(p1Damage, p1HP, p2Damage, p2HP int) Side {
	p1Excess := p1Damage - p1HP
	p2Excess := p2Damage - p2HP
	if p2Excess < p1Excess {
		return Player2
	}
	return Player1
}

// applyDot feeds a per-frame damage-over-time amount into a separate
// accumulator in [0,1). Crossing 1 costs a point of HP; dropping below 0
// (regeneration) restores one. The returned delta is the HP change.
func applyDot(carry, amount float64) (int, float64) {
	next := carry + amount
	delta := 0
	for next >= 1.0 {
		next -= 1.0
		delta--
	}
	for next < 0 {
		next += 1.0
		delta++
	}
	return delta, next
}
