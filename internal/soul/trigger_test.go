package soul

import "testing"

func newTriggerCharacter() *Character {
	return NewCharacter(Default, Options{EnableTriggers: true})
}

func TestProcessTextFiresOnWordBoundaryMatch(t *testing.T) {
	c := newTriggerCharacter()
	fired, err := c.ProcessText("I keep worrying about money problems")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fired) != 1 || fired[0].Topic != "money" {
		t.Fatalf("fired = %+v, want exactly [money]", fired)
	}
	if fired[0].Applied[Anxiety] <= 0 {
		t.Errorf("anxiety applied = %v, want > 0", fired[0].Applied[Anxiety])
	}
}

func TestProcessTextRequiresWordBoundary(t *testing.T) {
	c := newTriggerCharacter()
	fired, err := c.ProcessText("he lives in moneypit lane")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fired) != 0 {
		t.Fatalf("fired = %+v, want none: \"money\" must not match inside \"moneypit\"", fired)
	}
}

func TestFiredTopicEntersCooldown(t *testing.T) {
	c := newTriggerCharacter()
	if _, err := c.ProcessText("money troubles again"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fired, err := c.ProcessText("more money talk")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fired) != 0 {
		t.Fatalf("expected topic on cooldown to not refire, got %+v", fired)
	}
	for i := 0; i < DefaultCooldown; i++ {
		if err := c.AdvanceTurn(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	fired, err = c.ProcessText("money again")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fired) != 1 {
		t.Fatalf("expected topic to refire after cooldown elapsed, got %+v", fired)
	}
}

func TestTriggerTopicBypassesKeywordScan(t *testing.T) {
	c := newTriggerCharacter()
	ft, err := c.TriggerTopic("betrayal")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ft == nil || ft.Topic != "betrayal" {
		t.Fatalf("ft = %+v, want betrayal", ft)
	}
}

func TestTriggerTopicUnknown(t *testing.T) {
	c := newTriggerCharacter()
	if _, err := c.TriggerTopic("not-a-topic"); err != ErrUnknownTopic {
		t.Fatalf("expected ErrUnknownTopic, got %v", err)
	}
}

func TestSensitivityOverrideDesensitizes(t *testing.T) {
	c := NewCharacter(Default, Options{
		EnableTriggers: true,
		TriggerOverrides: map[string]Sensitivity{
			"money": {Intensity: 1.0, DesensitizeRate: 0.3, MinIntensity: 0.1},
		},
	})
	first, err := c.TriggerTopic("money")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	firstDelta := first.Applied[Anxiety]

	for i := 0; i < DefaultCooldown; i++ {
		_ = c.AdvanceTurn()
	}
	second, err := c.TriggerTopic("money")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	secondDelta := second.Applied[Anxiety]

	if secondDelta >= firstDelta {
		t.Errorf("second fire delta = %v, want smaller than first fire delta %v after desensitization", secondDelta, firstDelta)
	}
}

func TestTriggersLayerNotInitialized(t *testing.T) {
	c := NewCharacter(Default, Options{})
	if _, err := c.ProcessText("money"); err != ErrLayerNotInitialized {
		t.Fatalf("expected ErrLayerNotInitialized, got %v", err)
	}
}
