package soul

// Character is the root entity: it exclusively owns one emotion vector,
// one personality tag, and the optional per-layer sub-states. A
// Character has a single logical owner for its lifetime; the engine
// never shares ownership between characters, and holds no internal
// locks — callers serialise operations on one character themselves.
type Character struct {
	Personality Personality
	emotions    EmotionVector

	preHooks  []PreHook
	postHooks []PostHook

	history      *History
	presentation *Presentation
	beliefs      *Beliefs
	erosion      *Erosion
	triggers     *Triggers
}

// Options bundles the sub-layers a caller wants wired into a new
// character. Nil fields leave that layer uninitialised
// (ErrLayerNotInitialized on use).
type Options struct {
	// History: non-nil TimeSource enables the layer.
	TimeSource   func() float64
	HistoryAlpha float64

	EnablePresentation bool

	// Beliefs: a nil InitialBeliefs slice with an Evaluator still enables
	// the layer with an empty belief list; pass EnableBeliefs to enable it
	// with zero beliefs and no evaluator yet.
	EnableBeliefs  bool
	InitialBeliefs []Belief
	Evaluator      Evaluator

	// Erosion: EnableErosion with ErosionHardening == 0 selects the
	// default hardening factor (1.1).
	EnableErosion    bool
	ErosionHardening float64

	// Triggers: EnableTriggers with a nil map enables the layer with no
	// per-character sensitivity overrides.
	EnableTriggers   bool
	TriggerOverrides map[string]Sensitivity
}

// NewCharacter constructs a fully wired character: it seals the
// process-wide registries on first use, sets personality, and
// registers post-hooks in the canonical order — History first (so
// baselines update before Presentation recomputes on the new emotion
// values), Presentation second. No pre-hooks are registered by default.
func NewCharacter(personality Personality, opts Options) *Character {
	registries.seal()

	c := &Character{Personality: personality}

	if opts.TimeSource != nil {
		c.InitHistory(opts.TimeSource, opts.HistoryAlpha)
	}
	if opts.EnablePresentation {
		c.InitPresentation()
	}
	if opts.EnableBeliefs || opts.InitialBeliefs != nil || opts.Evaluator != nil {
		c.InitBeliefs(opts.InitialBeliefs)
		if opts.Evaluator != nil {
			_ = c.SetEvaluatorBackend(opts.Evaluator)
		}
	}
	if opts.EnableErosion {
		c.InitErosion(opts.ErosionHardening)
	}
	if opts.EnableTriggers || opts.TriggerOverrides != nil {
		c.InitTriggers(opts.TriggerOverrides)
	}

	if c.history != nil {
		c.RegisterPostHook(historyPostHook)
	}
	if c.presentation != nil {
		c.RegisterPostHook(presentationPostHook)
	}

	return c
}
