package combat

// Event is one entry of the battle log handed to the emitter.
type Event struct {
	Turn    int            `json:"turn"`
	Type    string         `json:"type"`
	Payload map[string]any `json:"payload,omitempty"`
}
