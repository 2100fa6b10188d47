package soul

import "testing"

func newErosionCharacter() *Character {
	c := NewCharacter(Default, Options{})
	c.InitBeliefs([]Belief{
		{Text: "he will keep me safe", Strength: 0.6, Inertia: 0.5, Tags: []string{"safety"}},
	})
	c.InitErosion(0) // 0 selects the default hardening factor
	return c
}

func TestApplyPressureClampsToUnitRange(t *testing.T) {
	c := newErosionCharacter()
	for i := 0; i < 5; i++ {
		if err := c.ApplyPressure(0, -1, 0.5); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	proximity, err := c.GetTippingProximity(0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if proximity != 1 {
		t.Errorf("proximity = %v, want 1 (pressure saturated past threshold)", proximity)
	}
}

func TestCheckTippingPointBelowThresholdIsNoOp(t *testing.T) {
	c := newErosionCharacter()
	if err := c.ApplyPressure(0, -1, 0.1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	event, err := c.CheckTippingPoint(0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if event != nil {
		t.Fatalf("expected no tip below threshold, got %+v", event)
	}
}

func TestProcessEvaluationTipsAfterRepeatedChallenges(t *testing.T) {
	c := newErosionCharacter()
	deltas := map[Emotion]float64{Anxiety: 0.1, Fear: 0.05}
	impacts := map[int]Impact{0: Challenged}

	var lastEvents []ShiftEvent
	for i := 0; i < 7; i++ {
		events, err := c.ProcessEvaluation(impacts, deltas)
		if err != nil {
			t.Fatalf("unexpected error on call %d: %v", i, err)
		}
		if i < 6 {
			if len(events) != 0 {
				t.Fatalf("call %d: expected no tip yet, got %+v", i, events)
			}
		} else {
			lastEvents = events
		}
	}

	if len(lastEvents) != 1 {
		t.Fatalf("expected exactly one shift event on the 7th call, got %d", len(lastEvents))
	}
	ev := lastEvents[0]
	if ev.Direction != -1 {
		t.Errorf("direction = %d, want -1 (challenged pressure is negative)", ev.Direction)
	}
	if !almostEqual(ev.OldStrength, 0.6) {
		t.Errorf("old strength = %v, want 0.6", ev.OldStrength)
	}
	if !almostEqual(ev.NewStrength, 0.5) {
		t.Errorf("new strength = %v, want 0.5", ev.NewStrength)
	}

	beliefs := c.GetBeliefs()
	if beliefs[0].erosion.Pressure != 0 {
		t.Errorf("pressure after tip = %v, want 0", beliefs[0].erosion.Pressure)
	}
	if !almostEqual(beliefs[0].erosion.Threshold, 0.33) {
		t.Errorf("threshold after tip = %v, want 0.33 (0.3 * 1.1)", beliefs[0].erosion.Threshold)
	}
}

func TestTickDecaysPressureTowardZero(t *testing.T) {
	c := newErosionCharacter()
	if err := c.ApplyPressure(0, 1, 0.2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := c.Tick(10); err != nil { // dt = 10 - 0 = 10, step = 0.01*10 = 0.1
		t.Fatalf("unexpected error: %v", err)
	}
	proximity, _ := c.GetTippingProximity(0)
	if proximity <= 0 {
		t.Errorf("expected residual pressure after partial decay, proximity = %v", proximity)
	}
	if err := c.Tick(1000); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	beliefs := c.GetBeliefs()
	if beliefs[0].erosion.Pressure != 0 {
		t.Errorf("pressure after long decay = %v, want 0 (never crosses zero)", beliefs[0].erosion.Pressure)
	}
}

func TestErosionLayerNotInitialized(t *testing.T) {
	c := NewCharacter(Default, Options{})
	c.InitBeliefs(nil)
	if err := c.ApplyPressure(0, 1, 0.1); err != ErrLayerNotInitialized {
		t.Fatalf("expected ErrLayerNotInitialized, got %v", err)
	}
}

func TestApplyPressureInvalidBeliefIndex(t *testing.T) {
	c := newErosionCharacter()
	if err := c.ApplyPressure(5, 1, 0.1); err != ErrInvalidBeliefIndex {
		t.Fatalf("expected ErrInvalidBeliefIndex, got %v", err)
	}
}

func TestErosionMethodsWithoutBeliefsLayer(t *testing.T) {
	c := NewCharacter(Default, Options{EnableErosion: true})
	if err := c.ApplyPressure(0, 1, 0.1); err != ErrLayerNotInitialized {
		t.Fatalf("ApplyPressure: expected ErrLayerNotInitialized, got %v", err)
	}
	if _, err := c.CheckTippingPoint(0); err != ErrLayerNotInitialized {
		t.Fatalf("CheckTippingPoint: expected ErrLayerNotInitialized, got %v", err)
	}
	if _, err := c.GetTippingProximity(0); err != ErrLayerNotInitialized {
		t.Fatalf("GetTippingProximity: expected ErrLayerNotInitialized, got %v", err)
	}
	if _, err := c.ProcessEvaluation(map[int]Impact{0: Challenged}, map[Emotion]float64{Anxiety: 0.1}); err != ErrLayerNotInitialized {
		t.Fatalf("ProcessEvaluation: expected ErrLayerNotInitialized, got %v", err)
	}
}
