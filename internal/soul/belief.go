package soul

import "strings"

// Belief is a text+metadata belief record. Text is opaque to the engine;
// tags drive the default keyword evaluator and caller-side filtering.
type Belief struct {
	Text     string
	Strength float64
	Inertia  float64
	Tags     []string

	erosion ErosionState
}

// Evaluator produces emotion deltas and per-belief impact verdicts for a
// scene+conversation turn. The default (fake-LLM) evaluator is keyword
// based; internal/llmeval implements this contract on top of a real LLM
// provider.
type Evaluator func(beliefs []Belief, emotions EmotionVector, scene, conversation string) (map[Emotion]float64, map[int]Impact)

// Beliefs is the ordered, append-only belief store. Beliefs are
// addressed by stable index and never reordered.
type Beliefs struct {
	list      []Belief
	evaluator Evaluator
}

// InitBeliefs attaches a Beliefs layer, seeded with an initial belief list.
func (c *Character) InitBeliefs(initial []Belief) {
	list := make([]Belief, len(initial))
	for i, b := range initial {
		b.Strength = clamp01(b.Strength)
		b.Inertia = clamp01(b.Inertia)
		b.erosion = defaultErosionState()
		list[i] = b
	}
	c.beliefs = &Beliefs{list: list}
}

// BeliefsLayer returns the character's Beliefs layer, or nil if uninitialised.
func (c *Character) BeliefsLayer() *Beliefs {
	return c.beliefs
}

// AddBelief appends a new belief, returning its stable index.
func (c *Character) AddBelief(b Belief) (int, error) {
	if c.beliefs == nil {
		return 0, ErrLayerNotInitialized
	}
	b.Strength = clamp01(b.Strength)
	b.Inertia = clamp01(b.Inertia)
	b.erosion = defaultErosionState()
	c.beliefs.list = append(c.beliefs.list, b)
	return len(c.beliefs.list) - 1, nil
}

// GetBeliefs returns every belief, in stable index order.
func (c *Character) GetBeliefs() []Belief {
	if c.beliefs == nil {
		return nil
	}
	out := make([]Belief, len(c.beliefs.list))
	copy(out, c.beliefs.list)
	return out
}

// GetBeliefsByTag returns every belief carrying the given tag.
func (c *Character) GetBeliefsByTag(tag string) []Belief {
	if c.beliefs == nil {
		return nil
	}
	var out []Belief
	for _, b := range c.beliefs.list {
		for _, t := range b.Tags {
			if t == tag {
				out = append(out, b)
				break
			}
		}
	}
	return out
}

// SetEvaluatorBackend installs the pluggable evaluator function.
func (c *Character) SetEvaluatorBackend(eval Evaluator) error {
	if c.beliefs == nil {
		return ErrLayerNotInitialized
	}
	c.beliefs.evaluator = eval
	return nil
}

// Evaluate runs the configured evaluator over the character's beliefs and
// current emotions against a scene+conversation turn.
func (c *Character) Evaluate(scene, conversation string) (map[Emotion]float64, map[int]Impact, error) {
	if c.beliefs == nil {
		return nil, nil, ErrLayerNotInitialized
	}
	if c.beliefs.evaluator == nil {
		return nil, nil, ErrEvaluatorNotSet
	}
	deltas, impacts := c.beliefs.evaluator(c.beliefs.list, c.emotions, scene, conversation)
	for idx := range impacts {
		if idx < 0 || idx >= len(c.beliefs.list) {
			delete(impacts, idx)
		}
	}
	return deltas, impacts, nil
}

// ApplyShock is a scripted, evaluator-bypassing discontinuous belief
// change gated by inertia. Returns false (no-op) if magnitude does not
// exceed the belief's resistance threshold (1 - inertia). On success the
// belief's strength moves toward direction, inertia decrements slightly
// (a belief that has cracked once cracks more easily again), and the
// belief's erosion pressure resets to zero — a shock is a fresh start
// for the slow-pressure narrative, even though accumulated threshold
// hardening from past tips persists.
func (c *Character) ApplyShock(index int, direction int, magnitude float64) (bool, error) {
	if c.beliefs == nil {
		return false, ErrLayerNotInitialized
	}
	if index < 0 || index >= len(c.beliefs.list) {
		return false, ErrInvalidBeliefIndex
	}
	b := &c.beliefs.list[index]
	threshold := 1 - b.Inertia
	if magnitude <= threshold {
		return false, nil
	}
	sign := 1.0
	if direction < 0 {
		sign = -1.0
	}
	b.Strength = clamp01(b.Strength + sign*(magnitude-threshold))
	b.Inertia = clamp01(b.Inertia - 0.05)
	b.erosion.Pressure = 0
	return true, nil
}

// KeywordCluster pairs a belief tag with the keyword lists the default
// evaluator scans for. The first cluster to match a belief's tags in
// the lowercased scene+conversation text decides that belief's impact.
type KeywordCluster struct {
	Tag       string
	Challenge []string
	Reinforce []string
}

// DefaultEvaluatorClusters is the shipped keyword table. Callers may
// build their own table and evaluator via NewKeywordEvaluator.
var DefaultEvaluatorClusters = []KeywordCluster{
	{
		Tag:       "trust",
		Challenge: []string{"lied", "betrayed", "can't trust"},
		Reinforce: []string{"kept their word", "always honest", "trustworthy"},
	},
	{
		Tag:       "safety",
		Challenge: []string{"in danger", "not safe", "under attack"},
		Reinforce: []string{"protected", "safe now", "out of danger"},
	},
	{
		Tag:       "worth",
		Challenge: []string{"worthless", "you failed", "not good enough"},
		Reinforce: []string{"proud of you", "well done", "you matter"},
	},
}

// NewKeywordEvaluator builds an Evaluator over a custom cluster table,
// following the exact scan-and-score rules of DefaultEvaluator.
func NewKeywordEvaluator(clusters []KeywordCluster) Evaluator {
	byTag := make(map[string]KeywordCluster, len(clusters))
	for _, c := range clusters {
		byTag[c.Tag] = c
	}
	return func(beliefs []Belief, emotions EmotionVector, scene, conversation string) (map[Emotion]float64, map[int]Impact) {
		text := strings.ToLower(scene + " " + conversation)
		deltas := make(map[Emotion]float64)
		impacts := make(map[int]Impact)
		for i, b := range beliefs {
			impact := Neutral
		tagLoop:
			for _, tag := range b.Tags {
				cluster, ok := byTag[tag]
				if !ok {
					continue
				}
				for _, kw := range cluster.Challenge {
					if strings.Contains(text, strings.ToLower(kw)) {
						impact = Challenged
						break tagLoop
					}
				}
				for _, kw := range cluster.Reinforce {
					if strings.Contains(text, strings.ToLower(kw)) {
						impact = Reinforced
						break tagLoop
					}
				}
			}
			s := b.Strength
			switch impact {
			case Challenged:
				deltas[Anxiety] += 0.1 * s
				deltas[Fear] += 0.05 * s
				deltas[Anger] += 0.03 * s
				deltas[Happiness] -= 0.05 * s
				impacts[i] = Challenged
			case Reinforced:
				deltas[Happiness] += 0.05 * s
				deltas[Confidence] += 0.05 * s
				deltas[Anxiety] -= 0.025 * s
				impacts[i] = Reinforced
			}
		}
		return deltas, impacts
	}
}

// DefaultEvaluator is ready to install with SetEvaluatorBackend.
var DefaultEvaluator = NewKeywordEvaluator(DefaultEvaluatorClusters)
