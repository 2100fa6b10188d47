package soul

import "testing"

// TestRegistryMutationSealedAfterFirstCharacter exercises the one-way
// seal: constructing any character (this test or an earlier one in the
// same binary) must make every Register* call fail from then on.
func TestRegistryMutationSealedAfterFirstCharacter(t *testing.T) {
	_ = newTestCharacter(Default)

	if err := RegisterInteraction("new-one", map[Emotion]float64{Happiness: 0.1}); err != ErrRegistrySealed {
		t.Fatalf("expected ErrRegistrySealed, got %v", err)
	}
	if err := RegisterCrossEffect(Happiness, Trust, 0.1); err != ErrRegistrySealed {
		t.Fatalf("expected ErrRegistrySealed, got %v", err)
	}
	if err := RegisterSituation("new-situation", map[Emotion]BiasStrength{Happiness: {Bias: 0.1, Strength: 0.1}}); err != ErrRegistrySealed {
		t.Fatalf("expected ErrRegistrySealed, got %v", err)
	}
	if err := RegisterTopic("new-topic", TopicDef{Keywords: []string{"x"}}); err != ErrRegistrySealed {
		t.Fatalf("expected ErrRegistrySealed, got %v", err)
	}
}

func TestUnknownPersonalityAndMaskingDefaults(t *testing.T) {
	// A Personality value outside the seeded table (there is no
	// registration path for personalities, they are a closed enum) must
	// fall back to neutral multipliers and mid masking ability rather
	// than panicking.
	var unseeded Personality = 99
	if m := personalityMultiplier(unseeded, Happiness); m != 1.0 {
		t.Errorf("multiplier for unseeded personality = %v, want 1.0", m)
	}
	if m := maskingAbility(unseeded); m != 0.5 {
		t.Errorf("masking ability for unseeded personality = %v, want 0.5", m)
	}
}
