package component

// ActionConfig describes an action. Kind is looked up in the AI action
// registry; Steps is used by the "steps" kind.
type ActionConfig struct {
	Kind      string
	Label     string
	Speed     float64
	PerSecond float64
	Steps     []ActionConfig
}

// ChoiceConfig pairs a scorer with the action it selects. Scorer names a
// registered scorer, or Script names a tengo scorer script.
type ChoiceConfig struct {
	Scorer string
	Script string
	Action ActionConfig
}

// ThinkerConfig is turned into a running thinker by the AI system the first
// time it sees the entity.
type ThinkerConfig struct {
	Label     string
	Picker    string
	Threshold float64
	Choices   []ChoiceConfig
	Otherwise *ActionConfig
}

var ThinkerConfigComponent = NewComponent[ThinkerConfig]()

// AIStatus mirrors the running thinker for the HUD and inspector.
type AIStatus struct {
	Choice string
	Action string
	State  string
	Scores []float64
}

var AIStatusComponent = NewComponent[AIStatus]()
