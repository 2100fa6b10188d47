package soul

// PreHook transforms an interaction's post-scale base delta map before
// cross-effects are computed. Hooks run in registration order; each
// hook's return value replaces base for the rest of the pipeline.
type PreHook func(c *Character, interaction string, base map[Emotion]float64) map[Emotion]float64

// PostHook observes the applied deltas after a full interaction has
// committed to core emotions. Hooks run in registration order and must
// not mutate core emotions themselves — they may only touch other
// layers' state (history baselines, presentation cache, ...).
type PostHook func(c *Character, interaction string, applied map[Emotion]float64)

// RegisterPreHook appends a pre-hook to this character's pipeline.
func (c *Character) RegisterPreHook(h PreHook) {
	c.preHooks = append(c.preHooks, h)
}

// RegisterPostHook appends a post-hook to this character's pipeline.
func (c *Character) RegisterPostHook(h PostHook) {
	c.postHooks = append(c.postHooks, h)
}

// GetEmotion reads a single emotion value.
func (c *Character) GetEmotion(e Emotion) float64 {
	return c.emotions[e]
}

// GetEmotions returns a copy of the full emotion vector.
func (c *Character) GetEmotions() EmotionVector {
	return c.emotions
}

// ApplyInteraction runs the strict-ordering pipeline: scale -> pre-hooks
// -> cross-effects (single pass, from post-pre-hook base only) ->
// sum-and-scale by personality -> commit -> post-hooks.
// Returns the applied deltas after personality scaling, as actually
// committed to core emotions.
func (c *Character) ApplyInteraction(name string, intensity float64) (map[Emotion]float64, error) {
	catalogue, ok := interactionDeltas(name)
	if !ok {
		return nil, ErrUnknownInteraction
	}

	base := make(map[Emotion]float64, len(catalogue))
	for e, v := range catalogue {
		base[e] = v * intensity
	}

	for _, hook := range c.preHooks {
		base = hook(c, name, base)
	}

	cross := make(map[Emotion]float64)
	for src, srcDelta := range base {
		if srcDelta == 0 {
			continue
		}
		targets := crossEffectsFor(src)
		for tgt, factor := range targets {
			cross[tgt] += srcDelta * factor
		}
	}

	applied := make(map[Emotion]float64, numEmotions)
	for _, e := range Emotions {
		raw := base[e] + cross[e]
		if raw == 0 {
			continue
		}
		applied[e] = raw * personalityMultiplier(c.Personality, e)
	}

	for _, e := range Emotions {
		if d, ok := applied[e]; ok {
			c.emotions[e] = clampUnit(c.emotions[e] + d)
		}
	}

	for _, hook := range c.postHooks {
		hook(c, name, applied)
	}

	return applied, nil
}

// Nudge is the single-emotion path used for scripted events and by
// Triggers. It skips cross-effects and hooks entirely — aggregated state
// settles on the next full interaction. Returns the final applied delta
// after personality scaling and clamping.
func (c *Character) Nudge(e Emotion, delta float64) float64 {
	applied := delta * personalityMultiplier(c.Personality, e)
	before := c.emotions[e]
	c.emotions[e] = clampUnit(before + applied)
	return c.emotions[e] - before
}
