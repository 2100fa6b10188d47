package llmeval

import (
	"testing"

	"github.com/keshon/soul-engine/internal/ai"
	"github.com/keshon/soul-engine/internal/logging"
	"github.com/keshon/soul-engine/internal/soul"
)

type fakeProvider struct {
	reply string
	err   error
}

func (f *fakeProvider) Generate(messages []ai.Message) (string, error) {
	return f.reply, f.err
}

func TestEvaluatorParsesWellFormedJSON(t *testing.T) {
	provider := &fakeProvider{reply: `{"deltas": {"anxiety": 0.15, "happiness": -0.1}, "impacts": {"0": "challenged"}}`}
	ev := New(provider, 600, logging.Discard())

	beliefs := []soul.Belief{{Text: "b0"}}
	deltas, impacts := ev.Evaluator()(beliefs, soul.EmotionVector{}, "scene", "turn")

	if !almostEqual(deltas[soul.Anxiety], 0.15) {
		t.Errorf("anxiety delta = %v, want 0.15", deltas[soul.Anxiety])
	}
	if !almostEqual(deltas[soul.Happiness], -0.1) {
		t.Errorf("happiness delta = %v, want -0.1", deltas[soul.Happiness])
	}
	if impacts[0] != soul.Challenged {
		t.Errorf("impacts[0] = %v, want Challenged", impacts[0])
	}
}

func TestEvaluatorClampsOutOfRangeDeltas(t *testing.T) {
	provider := &fakeProvider{reply: `{"deltas": {"fear": 5.0}, "impacts": {}}`}
	ev := New(provider, 600, logging.Discard())

	deltas, _ := ev.Evaluator()([]soul.Belief{{}}, soul.EmotionVector{}, "", "")
	if !almostEqual(deltas[soul.Fear], 0.2) {
		t.Errorf("fear delta = %v, want clamped to 0.2", deltas[soul.Fear])
	}
}

func TestEvaluatorDropsOutOfRangeBeliefIndices(t *testing.T) {
	provider := &fakeProvider{reply: `{"deltas": {}, "impacts": {"0": "reinforced", "9": "challenged"}}`}
	ev := New(provider, 600, logging.Discard())

	_, impacts := ev.Evaluator()([]soul.Belief{{}}, soul.EmotionVector{}, "", "")
	if len(impacts) != 1 {
		t.Fatalf("impacts = %v, want exactly one surviving entry", impacts)
	}
	if impacts[0] != soul.Reinforced {
		t.Errorf("impacts[0] = %v, want Reinforced", impacts[0])
	}
}

func TestEvaluatorDegradesToNeutralOnProviderError(t *testing.T) {
	provider := &fakeProvider{err: errBoom{}}
	ev := New(provider, 600, logging.Discard())

	deltas, impacts := ev.Evaluator()([]soul.Belief{{}}, soul.EmotionVector{}, "", "")
	if len(deltas) != 0 || len(impacts) != 0 {
		t.Errorf("expected empty neutral result on provider failure, got deltas=%v impacts=%v", deltas, impacts)
	}
}

func TestEvaluatorExtractsJSONFromChattyReply(t *testing.T) {
	provider := &fakeProvider{reply: "Sure, here you go:\n```json\n{\"deltas\": {\"trust\": 0.05}, \"impacts\": {}}\n```\nHope that helps!"}
	ev := New(provider, 600, logging.Discard())

	deltas, _ := ev.Evaluator()([]soul.Belief{{}}, soul.EmotionVector{}, "", "")
	if !almostEqual(deltas[soul.Trust], 0.05) {
		t.Errorf("trust delta = %v, want 0.05", deltas[soul.Trust])
	}
}

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

func almostEqual(a, b float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < 1e-9
}
