package combat

const (
	// MaxBalance is the highest stability damage a standing player can hold.
	MaxBalance = 255
	// KnockdownSentinel marks a knockdown; it is reset to 0 in the same step.
	KnockdownSentinel = 256
	// StaggerThreshold is where the gauge reads as staggered.
	StaggerThreshold = 224

	balanceDeadZone = 8
	// recoveryQuantum is the frames removed by one recovery input.
	recoveryQuantum = 4
	// RecoveryAnimationFrames follow every knockdown recovery.
	RecoveryAnimationFrames = 106
)

// balanceRaw holds 256ths; index is accumulated stability damage.
// Entries 0-8 are never read.
var balanceRaw = [MaxBalance + 1]int{
	0, 0, 0, 0, 0, 0, 0, 0, 0, 254, 254, 254, 254, 253, 253, 253, 253, 252, 252, 251,
	251, 250, 250, 249, 249, 248, 247, 246, 245, 244, 243, 242, 241, 240, 239, 238, 237, 236, 235, 234,
	233, 232, 231, 230, 229, 228, 227, 226, 225, 224, 223, 222, 221, 220, 219, 218, 217, 216, 215, 214,
	213, 212, 211, 210, 209, 208, 208, 207, 207, 206, 206, 205, 205, 204, 204, 204, 204, 204, 204, 204,
	204, 204, 204, 204, 204, 204, 204, 204, 204, 204, 204, 204, 204, 204, 204, 204, 204, 201, 201, 201,
	201, 201, 201, 201, 201, 201, 201, 201, 201, 201, 201, 201, 201, 198, 198, 198, 198, 198, 198, 198,
	198, 198, 198, 198, 198, 198, 198, 198, 198, 195, 195, 195, 195, 195, 195, 195, 195, 195, 195, 195,
	195, 195, 195, 195, 195, 192, 192, 192, 192, 192, 192, 192, 192, 192, 192, 192, 192, 192, 192, 192,
	192, 188, 188, 188, 188, 188, 188, 188, 188, 188, 188, 188, 188, 188, 188, 188, 188, 186, 186, 186,
	186, 186, 186, 186, 186, 183, 183, 183, 183, 183, 183, 183, 183, 183, 183, 183, 183, 183, 183, 183,
	183, 181, 181, 181, 181, 181, 181, 181, 181, 181, 181, 181, 181, 181, 181, 181, 181, 179, 179, 179,
	179, 179, 179, 179, 179, 179, 179, 179, 179, 179, 179, 179, 179, 175, 175, 175, 175, 175, 175, 175,
	175, 175, 175, 175, 175, 175, 175, 175, 175, 175, 175, 175, 175, 175, 175, 175,
}

// BalanceMultiplier converts accumulated stability damage to a performance
// multiplier. Damage up to 8 is uncorrected.
func BalanceMultiplier(damage int) (float64, error) {
	if damage < 0 || damage > MaxBalance {
		return 0, newError(CodeValidation, "balance %d out of range 0-%d", damage, MaxBalance)
	}
	if damage <= balanceDeadZone {
		return 1.0, nil
	}
	return float64(balanceRaw[damage]) / 256, nil
}

// AddBalanceDamage accumulates incoming stability damage. Any single hit of
// 256 or more, or a running total reaching 256, yields KnockdownSentinel.
func AddBalanceDamage(current, incoming int) int {
	if incoming >= KnockdownSentinel {
		return KnockdownSentinel
	}
	next := current + incoming
	if next >= KnockdownSentinel {
		return KnockdownSentinel
	}
	return clamp(next, 0, MaxBalance)
}

func IsKnockdown(balance int) bool { return balance == KnockdownSentinel }

// BalanceState is the display classification of the stability gauge.
type BalanceState int

const (
	BalanceNormal BalanceState = iota
	BalanceStaggered
	BalanceKnockdown
)

func (s BalanceState) String() string {
	switch s {
	case BalanceStaggered:
		return "staggered"
	case BalanceKnockdown:
		return "knockdown"
	}
	return "normal"
}

func BalanceStatus(balance int) BalanceState {
	switch {
	case balance >= KnockdownSentinel:
		return BalanceKnockdown
	case balance >= StaggerThreshold:
		return BalanceStaggered
	default:
		return BalanceNormal
	}
}

// RecoveryFramesRemaining reduces the remaining knockdown frames by a fixed
// quantum per recovery input. pressFrames are the frames on which an input
// was seen; several buttons on one frame count once.
func RecoveryFramesRemaining(remaining int, pressFrames []int) int {
	seen := make(map[int]struct{}, len(pressFrames))
	for _, f := range pressFrames {
		seen[f] = struct{}{}
	}
	return max(0, remaining-len(seen)*recoveryQuantum)
}

// ForcesRecovery reports whether an opponent's move ends a knockdown early.
func ForcesRecovery(opponent MoveType) bool {
	return opponent.IsAttack()
}
