package config

// PoliciesConfig lists the CPU input policies used by the simulator.
type PoliciesConfig struct {
	Policies []Policy `yaml:"policies"`
}

type Policy struct {
	ID       string            `yaml:"id"`
	Note     string            `yaml:"note"`
	Commands []WeightedCommand `yaml:"commands"`
	Charge   ChargeWindow      `yaml:"charge"`
	// ReactMin/ReactMax bound the frame on which the command is entered.
	ReactMin int `yaml:"react_min"`
	ReactMax int `yaml:"react_max"`
	// ItemChance is the chance of using a stocked item instead of charging.
	ItemChance float64 `yaml:"item_chance"`
	// MashRate is recovery presses per frame while knocked down (0..1).
	MashRate float64 `yaml:"mash_rate"`
}

type WeightedCommand struct {
	Command string  `yaml:"command"`
	Weight  float64 `yaml:"weight"`
	Note    string  `yaml:"note"`
}

type ChargeWindow struct {
	Direction string `yaml:"direction"`
	FramesMin int    `yaml:"frames_min"`
	FramesMax int    `yaml:"frames_max"`
}
