package combat

// Rand is the only source of non-determinism in a battle. *rand.Rand from
// util.New satisfies it.
type Rand interface {
	Intn(n int) int
	Float64() float64
}

// Range is an inclusive draw range in 256ths.
type Range struct {
	Min, Max int
}

var (
	fullRange  = Range{Min: 192, Max: 255}
	mixedRange = Range{Min: 128, Max: 255}
)

// Draw returns uniform_int[r.Min, r.Max] / 256.
func Draw(rng Rand, r Range) float64 {
	return float64(DrawRaw(rng, r)) / 256
}

// DrawRaw returns the integer draw before scaling.
func DrawRaw(rng Rand, r Range) int {
	if r.Max < r.Min {
		r.Max = r.Min
	}
	return r.Min + rng.Intn(r.Max-r.Min+1)
}

// Scenario decides the second actor's random range.
type Scenario int

const (
	ScenarioBothAttack Scenario = iota
	ScenarioMixed
	// ScenarioCounter has no detection rule yet; ClassifyScenario never
	// returns it.
	ScenarioCounter
	ScenarioAerialCollision
)

func (s Scenario) String() string {
	switch s {
	case ScenarioBothAttack:
		return "both-attack"
	case ScenarioMixed:
		return "mixed"
	case ScenarioCounter:
		return "counter"
	case ScenarioAerialCollision:
		return "aerial-collision"
	}
	return "unknown"
}

// ClassifyScenario maps the two actors' move types to a draw scenario.
func ClassifyScenario(first, second MoveType) Scenario {
	if first == MoveAerial && second == MoveAerial {
		return ScenarioAerialCollision
	}
	if first.IsAttack() && second.IsAttack() {
		return ScenarioBothAttack
	}
	return ScenarioMixed
}

// FirstRange is the first actor's draw range in every scenario.
func FirstRange() Range { return fullRange }

// SecondRange is [192,255] when both sides attack and [128,255] otherwise.
func SecondRange(s Scenario) Range {
	if s == ScenarioBothAttack {
		return fullRange
	}
	return mixedRange
}
