package combat

import "strings"

// CharacterID identifies a playable character.
type CharacterID int

const (
	CharacterUnknown CharacterID = iota
	Yusuke
	Kuwabara
	Kurama1
	Kurama2
	Youko
	YoukoKurama
	Hiei
	HieiDragon
	Genkai
	GenkaiYoung
	Suzuku
	Touya
	Jin
	Shishiwakamaru
	Karasu
	KarasuUnmasked
	KarasuBlonde
	Bui
	ToguroElder
	ToguroYounger
	Toguro80
	Toguro100
	Gourmet
	Makintaro
	Itsuki
	Sensui
)

// AllCharacters lists every known character in roster order.
var AllCharacters = []CharacterID{
	Yusuke, Kuwabara, Kurama1, Kurama2, Youko, YoukoKurama, Hiei, HieiDragon,
	Genkai, GenkaiYoung, Suzuku, Touya, Jin, Shishiwakamaru, Karasu, KarasuUnmasked,
	KarasuBlonde, Bui, ToguroElder, ToguroYounger, Toguro80, Toguro100, Gourmet,
	Makintaro, Itsuki, Sensui,
}

func (c CharacterID) String() string {
	switch c {
	case Yusuke:
		return "yusuke"
	case Kuwabara:
		return "kuwabara"
	case Kurama1:
		return "kurama1"
	case Kurama2:
		return "kurama2"
	case Youko:
		return "youko"
	case YoukoKurama:
		return "youko_kurama"
	case Hiei:
		return "hiei"
	case HieiDragon:
		return "hiei_dragon"
	case Genkai:
		return "genkai"
	case GenkaiYoung:
		return "genkai_young"
	case Suzuku:
		return "suzuku"
	case Touya:
		return "touya"
	case Jin:
		return "jin"
	case Shishiwakamaru:
		return "shishiwakamaru"
	case Karasu:
		return "karasu"
	case KarasuUnmasked:
		return "karasu_unmasked"
	case KarasuBlonde:
		return "karasu_blonde"
	case Bui:
		return "bui"
	case ToguroElder:
		return "toguro_elder"
	case ToguroYounger:
		return "toguro_younger"
	case Toguro80:
		return "toguro_80"
	case Toguro100:
		return "toguro_100"
	case Gourmet:
		return "gourmet"
	case Makintaro:
		return "makintaro"
	case Itsuki:
		return "itsuki"
	case Sensui:
		return "sensui"
	default:
		return "unknown"
	}
}

// ParseCharacterID maps a data-file id to a CharacterID.
func ParseCharacterID(s string) (CharacterID, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for _, id := range AllCharacters {
		if id.String() == key {
			return id, nil
		}
	}
	return CharacterUnknown, newError(CodeLookup, "unknown character %q", s)
}

// MoveType is the action classification of a move.
type MoveType int

const (
	MoveUnknown MoveType = iota
	MovePunch
	MoveDefense
	MoveTechnique
	MoveSpirit
	MoveAerial
	MoveExtension
	MoveContact
	MoveGround
	MoveShockwave
	MoveGuard
	MoveEvasion
	MoveBuff
)

func (t MoveType) String() string {
	switch t {
	case MovePunch:
		return "punch"
	case MoveDefense:
		return "defense"
	case MoveTechnique:
		return "technique"
	case MoveSpirit:
		return "spirit"
	case MoveAerial:
		return "aerial"
	case MoveExtension:
		return "extension"
	case MoveContact:
		return "contact"
	case MoveGround:
		return "ground"
	case MoveShockwave:
		return "shockwave"
	case MoveGuard:
		return "guard"
	case MoveEvasion:
		return "evasion"
	case MoveBuff:
		return "buff"
	default:
		return "unknown"
	}
}

// ParseMoveType accepts the English names used in data files.
func ParseMoveType(s string) (MoveType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "punch":
		return MovePunch, nil
	case "defense":
		return MoveDefense, nil
	case "technique":
		return MoveTechnique, nil
	case "spirit":
		return MoveSpirit, nil
	case "aerial":
		return MoveAerial, nil
	case "extension":
		return MoveExtension, nil
	case "contact":
		return MoveContact, nil
	case "ground":
		return MoveGround, nil
	case "shockwave":
		return MoveShockwave, nil
	case "guard":
		return MoveGuard, nil
	case "evasion":
		return MoveEvasion, nil
	case "buff":
		return MoveBuff, nil
	}
	return MoveUnknown, newError(CodeValidation, "unknown move type %q", s)
}

// IsAttack reports whether the move type counts as an attack for the random
// correction scenario.
func (t MoveType) IsAttack() bool {
	switch t {
	case MoveAerial, MoveExtension, MoveContact, MoveGround, MoveShockwave:
		return true
	}
	return false
}

// Priority orders simultaneous actions.
type Priority int

const (
	PriorityLow Priority = iota
	PriorityMedium
	PriorityHigh
	PriorityHighest
)

func ParsePriority(s string) Priority {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "highest":
		return PriorityHighest
	case "high":
		return PriorityHigh
	case "medium":
		return PriorityMedium
	}
	return PriorityLow
}

// CharacterStats are the per-character constants. Rates are fractions in [0,1].
type CharacterStats struct {
	Defense         float64
	BalanceDefense  float64
	PoweredHitRate  float64
	CleanHitRate    float64
	KnockdownSpeed  int
	KnockdownFrames int
	Airtime         int
	AirtimeTouki    float64
}

// RealHP is the raw damage a character can absorb before defeat.
func (s CharacterStats) RealHP() float64 {
	if s.Defense <= 0 {
		return 0
	}
	return MaxHP / s.Defense
}

// RealBalance is the raw stability drain needed to knock the character down.
func (s CharacterStats) RealBalance() int {
	if s.BalanceDefense <= 0 {
		return 0
	}
	return int(KnockdownSentinel / s.BalanceDefense)
}

// MoveStats are the four base stats of a move before any correction.
type MoveStats struct {
	SuccessRate  int
	EvasionRate  int
	Power        int
	BalanceDrain int
}

type Move struct {
	ID        string
	Command   string
	Name      string
	Type      MoveType
	Priority  Priority
	Stats     MoveStats
	ReikiCost int
	Frames    MoveFrames
}

type MoveFrames struct {
	PrepTransition map[Stage]int
	Preparation    int
	Activation     int
}

type Character struct {
	ID            CharacterID
	Name          string
	NameEn        string
	Stats         CharacterStats
	Moves         []Move
	CanTransform  bool
	TransformInto CharacterID
}
