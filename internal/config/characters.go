package config

// CharacterDef is the on-disk shape of one character file.
type CharacterDef struct {
	ID                 string    `yaml:"id"`
	Name               string    `yaml:"name"`
	NameEn             string    `yaml:"name_en"`
	CanTransform       bool      `yaml:"can_transform"`
	TransformInto      string    `yaml:"transform_into"`
	TransformCondition string    `yaml:"transform_condition"`
	Stats              StatsDef  `yaml:"stats"`
	Moves              []MoveDef `yaml:"moves"`
}

type StatsDef struct {
	Defense         float64 `yaml:"defense"`
	BalanceDefense  float64 `yaml:"balance_defense"`
	PoweredHitRate  float64 `yaml:"powered_hit_rate"`
	CleanHitRate    float64 `yaml:"clean_hit_rate"`
	KnockdownSpeed  int     `yaml:"knockdown_speed"`
	KnockdownFrames int     `yaml:"knockdown_frames"`
	Airtime         int     `yaml:"airtime"`
	AirtimeTouki    float64 `yaml:"airtime_touki"`
}

type MoveDef struct {
	ID           string    `yaml:"id"`
	Command      string    `yaml:"command"`
	Name         string    `yaml:"name"`
	NameEn       string    `yaml:"name_en"`
	Type         string    `yaml:"type"`
	Priority     string    `yaml:"priority"`
	SuccessRate  int       `yaml:"success_rate"`
	EvasionRate  int       `yaml:"evasion_rate"`
	Power        int       `yaml:"power"`
	BalanceDrain int       `yaml:"balance_drain"`
	ReikiCost    int       `yaml:"reiki_cost"`
	Frames       FramesDef `yaml:"frames"`
}

// FramesDef holds the ground timings of a move. Preparation transition
// offsets are per stage.
type FramesDef struct {
	PrepTransition map[string]int `yaml:"prep_transition"`
	Preparation    int            `yaml:"preparation"`
	Activation     int            `yaml:"activation"`
}
