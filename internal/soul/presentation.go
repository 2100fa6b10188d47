package soul

// PersonModifier is a per-person, per-emotion pull registered while that
// person is present in the active situation.
type PersonModifier struct {
	Bias     float64
	Strength float64
}

// Presentation derives an outward-facing emotion vector from core state
// plus the active situation and any present people's modifiers. The
// presented vector is a derived cache, never a source of truth.
type Presentation struct {
	activeSituation string
	hasSituation    bool

	presented    EmotionVector
	hasPresented bool

	personMods map[string]map[Emotion]PersonModifier
	present    []string
}

// InitPresentation attaches a Presentation layer to the character.
func (c *Character) InitPresentation() {
	c.presentation = &Presentation{
		personMods: make(map[string]map[Emotion]PersonModifier),
	}
}

// PresentationLayer returns the character's Presentation layer, or nil if
// uninitialised.
func (c *Character) PresentationLayer() *Presentation {
	return c.presentation
}

// RegisterPersonModifier sets person-specific bias/strength for one
// emotion, used whenever that person is present in a situation that
// modifies that emotion. Modifiers on emotions the active situation does
// not list have no effect.
func (c *Character) RegisterPersonModifier(personID string, e Emotion, mod PersonModifier) error {
	if c.presentation == nil {
		return ErrLayerNotInitialized
	}
	p := c.presentation
	if p.personMods[personID] == nil {
		p.personMods[personID] = make(map[Emotion]PersonModifier)
	}
	p.personMods[personID][e] = mod
	return nil
}

// EnterSituation sets the active situation and the list of currently
// present people, then recomputes the presented cache.
func (c *Character) EnterSituation(name string, people []string) error {
	if c.presentation == nil {
		return ErrLayerNotInitialized
	}
	if _, ok := situationMods(name); !ok {
		return ErrUnknownSituation
	}
	p := c.presentation
	p.activeSituation = name
	p.hasSituation = true
	p.present = append([]string(nil), people...)
	p.recompute(c.Personality, c.emotions)
	return nil
}

// LeaveSituation clears the active situation. The presented cache then
// mirrors core emotions exactly.
func (c *Character) LeaveSituation() error {
	if c.presentation == nil {
		return ErrLayerNotInitialized
	}
	p := c.presentation
	p.activeSituation = ""
	p.hasSituation = false
	p.present = nil
	p.hasPresented = false
	return nil
}

// GetPerceived returns the presented emotion vector: core emotions
// unchanged if no situation is active, otherwise the masked vector.
func (c *Character) GetPerceived() EmotionVector {
	if c.presentation == nil || !c.presentation.hasSituation {
		return c.emotions
	}
	return c.presentation.presented
}

// GetMaskingStrain returns the average, 0.5-normalized gap between core
// and presented emotions. Zero when no situation is active.
func (c *Character) GetMaskingStrain() float64 {
	if c.presentation == nil || !c.presentation.hasSituation {
		return 0
	}
	var sum float64
	for _, e := range Emotions {
		d := c.emotions[e] - c.presentation.presented[e]
		if d < 0 {
			d = -d
		}
		sum += d
	}
	mean := sum / float64(numEmotions)
	return clamp(mean/0.5, 0, 1)
}

// recompute derives the presented vector: base mods come from the active
// situation; every present person's registered modifier on an emotion
// adds to bias and takes the max of strength.
func (p *Presentation) recompute(personality Personality, core EmotionVector) {
	if !p.hasSituation {
		p.hasPresented = false
		return
	}
	base, _ := situationMods(p.activeSituation)
	mask := maskingAbility(personality)

	presented := core
	for _, e := range Emotions {
		mod, ok := base[e]
		if !ok {
			continue
		}
		bias, strength := mod.Bias, mod.Strength
		for _, personID := range p.present {
			mods, ok := p.personMods[personID]
			if !ok {
				continue
			}
			pm, ok := mods[e]
			if !ok {
				continue
			}
			bias += pm.Bias
			if pm.Strength > strength {
				strength = pm.Strength
			}
		}
		presented[e] = clampUnit(core[e] + (bias-core[e])*strength*mask)
	}
	p.presented = presented
	p.hasPresented = true
}

// presentationPostHook is registered by the facade so any core-emotion
// change while a situation is active recomputes the presented cache.
func presentationPostHook(c *Character, interaction string, applied map[Emotion]float64) {
	if c.presentation == nil || !c.presentation.hasSituation {
		return
	}
	c.presentation.recompute(c.Personality, c.emotions)
}
