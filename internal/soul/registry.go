package soul

import "sync"

// BiasStrength is a situation's or person modifier's pull on one emotion:
// the value it pushes toward (Bias) and how hard it pushes (Strength).
type BiasStrength struct {
	Bias     float64
	Strength float64
}

// TopicDef is the process-wide definition of a trigger topic: the
// keywords that fire it and the default deltas applied on a fire.
type TopicDef struct {
	Keywords      []string
	DefaultDeltas map[Emotion]float64
}

// registries holds every process-wide, immutable-after-init table:
// interactions, cross-effects, personality multipliers, masking
// abilities, situations, and topics. Populated at package init with the
// shipped defaults, extensible via Register* until the first character
// is constructed, after which mutation is undefined behaviour and the
// Register* functions return ErrRegistrySealed.
var registries = newRegistryTable()

type registryTable struct {
	mu sync.Mutex

	sealed bool

	interactions map[string]map[Emotion]float64

	crossEffects map[Emotion]map[Emotion]float64

	personalityMult map[Personality]map[Emotion]float64
	maskingAbility  map[Personality]float64

	situations map[string]map[Emotion]BiasStrength

	topicOrder []string
	topics     map[string]TopicDef
}

func newRegistryTable() *registryTable {
	t := &registryTable{
		interactions:    make(map[string]map[Emotion]float64),
		crossEffects:    make(map[Emotion]map[Emotion]float64),
		personalityMult: make(map[Personality]map[Emotion]float64),
		maskingAbility:  make(map[Personality]float64),
		situations:      make(map[string]map[Emotion]BiasStrength),
		topics:          make(map[string]TopicDef),
	}
	seedDefaults(t)
	return t
}

// seal is called by the first NewCharacter. Idempotent.
func (t *registryTable) seal() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.sealed = true
}

func (t *registryTable) checkUnsealed() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.sealed {
		return ErrRegistrySealed
	}
	return nil
}

// RegisterInteraction extends the interaction catalogue. Safe to call only
// before the first character is constructed.
func RegisterInteraction(name string, deltas map[Emotion]float64) error {
	if err := registries.checkUnsealed(); err != nil {
		return err
	}
	registries.mu.Lock()
	defer registries.mu.Unlock()
	cp := make(map[Emotion]float64, len(deltas))
	for e, v := range deltas {
		cp[e] = v
	}
	registries.interactions[name] = cp
	return nil
}

// RegisterCrossEffect extends the cross-effects matrix X[source][target].
func RegisterCrossEffect(source, target Emotion, factor float64) error {
	if err := registries.checkUnsealed(); err != nil {
		return err
	}
	registries.mu.Lock()
	defer registries.mu.Unlock()
	if registries.crossEffects[source] == nil {
		registries.crossEffects[source] = make(map[Emotion]float64)
	}
	registries.crossEffects[source][target] = factor
	return nil
}

// RegisterSituation extends the situation catalogue.
func RegisterSituation(name string, mods map[Emotion]BiasStrength) error {
	if err := registries.checkUnsealed(); err != nil {
		return err
	}
	registries.mu.Lock()
	defer registries.mu.Unlock()
	cp := make(map[Emotion]BiasStrength, len(mods))
	for e, v := range mods {
		cp[e] = v
	}
	registries.situations[name] = cp
	return nil
}

// RegisterTopic extends the trigger topic registry. Topics are scanned
// in registration order, which is preserved even across
// re-registration of an existing name.
func RegisterTopic(name string, def TopicDef) error {
	if err := registries.checkUnsealed(); err != nil {
		return err
	}
	registries.mu.Lock()
	defer registries.mu.Unlock()
	if _, exists := registries.topics[name]; !exists {
		registries.topicOrder = append(registries.topicOrder, name)
	}
	kws := make([]string, len(def.Keywords))
	copy(kws, def.Keywords)
	deltas := make(map[Emotion]float64, len(def.DefaultDeltas))
	for e, v := range def.DefaultDeltas {
		deltas[e] = v
	}
	registries.topics[name] = TopicDef{Keywords: kws, DefaultDeltas: deltas}
	return nil
}

func personalityMultiplier(p Personality, e Emotion) float64 {
	registries.mu.Lock()
	defer registries.mu.Unlock()
	if table, ok := registries.personalityMult[p]; ok {
		if m, ok := table[e]; ok {
			return m
		}
	}
	return 1.0
}

func maskingAbility(p Personality) float64 {
	registries.mu.Lock()
	defer registries.mu.Unlock()
	if m, ok := registries.maskingAbility[p]; ok {
		return m
	}
	return 0.5
}

func interactionDeltas(name string) (map[Emotion]float64, bool) {
	registries.mu.Lock()
	defer registries.mu.Unlock()
	d, ok := registries.interactions[name]
	return d, ok
}

func crossEffectsFor(source Emotion) map[Emotion]float64 {
	registries.mu.Lock()
	defer registries.mu.Unlock()
	return registries.crossEffects[source]
}

func situationMods(name string) (map[Emotion]BiasStrength, bool) {
	registries.mu.Lock()
	defer registries.mu.Unlock()
	m, ok := registries.situations[name]
	return m, ok
}

func topicOrderSnapshot() []string {
	registries.mu.Lock()
	defer registries.mu.Unlock()
	out := make([]string, len(registries.topicOrder))
	copy(out, registries.topicOrder)
	return out
}

func topicDef(name string) (TopicDef, bool) {
	registries.mu.Lock()
	defer registries.mu.Unlock()
	d, ok := registries.topics[name]
	return d, ok
}

// seedDefaults populates the shipped interaction catalogue, cross-effects
// matrix, personality tables, situations, and topics.
func seedDefaults(t *registryTable) {
	t.interactions["social"] = map[Emotion]float64{
		Happiness:  0.15,
		Loneliness: -0.2,
		Trust:      0.05,
		Energy:     0.05,
	}
	t.interactions["conflict"] = map[Emotion]float64{
		Anger:      0.2,
		Trust:      -0.1,
		Anxiety:    0.1,
		Confidence: -0.05,
	}
	t.interactions["achievement"] = map[Emotion]float64{
		Confidence: 0.2,
		Happiness:  0.15,
		Energy:     0.05,
	}
	t.interactions["loss"] = map[Emotion]float64{
		Happiness:  -0.2,
		Loneliness: 0.15,
		Anxiety:    0.1,
	}
	t.interactions["rest"] = map[Emotion]float64{
		Energy:  0.25,
		Anxiety: -0.1,
	}
	t.interactions["threat"] = map[Emotion]float64{
		Fear:    0.25,
		Anxiety: 0.15,
		Anger:   0.1,
		Trust:   -0.05,
	}

	set := func(src, tgt Emotion, f float64) {
		if t.crossEffects[src] == nil {
			t.crossEffects[src] = make(map[Emotion]float64)
		}
		t.crossEffects[src][tgt] = f
	}
	set(Fear, Anxiety, 0.3)
	set(Fear, Confidence, -0.2)
	set(Anger, Trust, -0.15)
	set(Anger, Anxiety, 0.1)
	set(Loneliness, Happiness, -0.2)
	set(Loneliness, Anxiety, 0.1)
	set(Happiness, Anxiety, -0.15)
	set(Happiness, Confidence, 0.1)
	set(Trust, Anxiety, -0.1)
	set(Confidence, Anxiety, -0.1)
	set(Confidence, Energy, 0.1)
	set(Energy, Confidence, 0.05)
	set(Anxiety, Confidence, -0.1)
	set(Anxiety, Energy, -0.05)

	t.personalityMult[Default] = map[Emotion]float64{}
	t.personalityMult[Worrier] = map[Emotion]float64{
		Fear:       1.5,
		Anxiety:    1.5,
		Confidence: 0.8,
	}
	t.personalityMult[Hothead] = map[Emotion]float64{
		Anger:  1.6,
		Fear:   0.7,
		Energy: 1.2,
	}
	t.personalityMult[Stoic] = map[Emotion]float64{
		Fear:    0.5,
		Anger:   0.6,
		Anxiety: 0.5,
	}
	t.personalityMult[Social] = map[Emotion]float64{
		Happiness:  1.3,
		Loneliness: 1.4,
		Trust:      1.2,
	}

	t.maskingAbility[Default] = 0.5
	t.maskingAbility[Stoic] = 0.9
	t.maskingAbility[Hothead] = 0.2
	t.maskingAbility[Worrier] = 0.3
	t.maskingAbility[Social] = 0.6

	t.situations["loud_party"] = map[Emotion]BiasStrength{
		Happiness: {Bias: 0.5, Strength: 0.4},
		Energy:    {Bias: 0.4, Strength: 0.3},
	}
	t.situations["quiet_library"] = map[Emotion]BiasStrength{
		Anxiety: {Bias: -0.1, Strength: 0.2},
		Energy:  {Bias: -0.2, Strength: 0.3},
	}
	t.situations["formal_dinner"] = map[Emotion]BiasStrength{
		Anger:      {Bias: -0.3, Strength: 0.5},
		Confidence: {Bias: 0.2, Strength: 0.3},
	}
	t.situations["confrontation"] = map[Emotion]BiasStrength{
		Fear:  {Bias: -0.2, Strength: 0.4},
		Anger: {Bias: 0.2, Strength: 0.3},
	}

	reg := func(name string, keywords []string, deltas map[Emotion]float64) {
		t.topicOrder = append(t.topicOrder, name)
		t.topics[name] = TopicDef{Keywords: keywords, DefaultDeltas: deltas}
	}
	reg("father", []string{"father", "dad", "papa"}, map[Emotion]float64{
		Anxiety: 0.1, Loneliness: 0.05,
	})
	reg("death", []string{"death", "died", "funeral"}, map[Emotion]float64{
		Fear: 0.2, Anxiety: 0.15, Happiness: -0.1,
	})
	reg("money", []string{"money", "debt", "poor"}, map[Emotion]float64{
		Anxiety: 0.1, Confidence: -0.05,
	})
	reg("betrayal", []string{"betray", "betrayal", "backstab"}, map[Emotion]float64{
		Trust: -0.2, Anger: 0.15,
	})
	reg("praise", []string{"well done", "proud of you", "impressive"}, map[Emotion]float64{
		Happiness: 0.15, Confidence: 0.1,
	})
}
