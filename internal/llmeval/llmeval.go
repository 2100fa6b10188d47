// Package llmeval implements soul.Evaluator on top of a real ai.Provider,
// so the belief layer can be judged by an LLM instead of the shipped
// keyword evaluator.
package llmeval

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/keshon/soul-engine/internal/ai"
	"github.com/keshon/soul-engine/internal/soul"
	"github.com/keshon/soul-engine/pkg/retrylimit"
)

// CharsPerToken mirrors the corpus's rough English token estimate.
const CharsPerToken = 4

// Budget bounds how much scene/conversation text is sent per evaluation,
// in characters, to keep prompts cheap and deterministic in size.
type Budget struct {
	MaxSceneChars        int
	MaxConversationChars int
	MaxBeliefChars       int
}

// DefaultBudget mirrors the shipped keyword evaluator's expectation of
// short scene/turn text: generous enough for a few paragraphs.
func DefaultBudget() Budget {
	return Budget{
		MaxSceneChars:        600 * CharsPerToken,
		MaxConversationChars: 800 * CharsPerToken,
		MaxBeliefChars:       300 * CharsPerToken,
	}
}

func trimToChars(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	out := string(r[:max])
	if i := strings.LastIndex(out, " "); i > max/2 {
		return strings.TrimSpace(out[:i])
	}
	return strings.TrimSpace(out)
}

const systemPrompt = `You are an emotion and belief evaluator for a narrative character. Given the character's current beliefs (indexed) and current emotions, and a scene plus a conversation turn, decide:
1. emotion deltas: small adjustments in [-0.2, 0.2] for any of happiness, anger, fear, trust, energy, loneliness, anxiety, confidence.
2. per-belief impact: for each belief index that is meaningfully touched by the turn, "challenged", "reinforced", or omit it entirely if untouched.
Respond with JSON only, in this exact shape: {"deltas": {"happiness": 0.0}, "impacts": {"0": "challenged"}}. Never include beliefs that were not touched. Never invent belief indices.`

type evalResponse struct {
	Deltas  map[string]float64 `json:"deltas"`
	Impacts map[string]string  `json:"impacts"`
}

var jsonObjectRegex = regexp.MustCompile(`(?s)\{.*\}`)

func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if loc := jsonObjectRegex.FindStringIndex(raw); loc != nil {
		return raw[loc[0]:loc[1]]
	}
	return raw
}

var emotionByName = map[string]soul.Emotion{
	"happiness":  soul.Happiness,
	"anger":      soul.Anger,
	"fear":       soul.Fear,
	"trust":      soul.Trust,
	"energy":     soul.Energy,
	"loneliness": soul.Loneliness,
	"anxiety":    soul.Anxiety,
	"confidence": soul.Confidence,
}

// Evaluator wraps an ai.Provider with a rate limiter, retry policy and
// logger; its Evaluator method exposes it as a soul.Evaluator.
type Evaluator struct {
	provider ai.Provider
	limiter  *retrylimit.AdaptiveLimiter
	budget   Budget
	log      zerolog.Logger
}

// New builds an Evaluator. ratePerMinute (6 when not positive) sets the
// adaptive limiter's initial rate; the limiter then ranges from a quarter
// of that rate up to twice it. retrylimit.NewAdaptiveLimiter raises an
// initial or minimum rate below 1 request per second to 1.
func New(provider ai.Provider, ratePerMinute int, log zerolog.Logger) *Evaluator {
	if ratePerMinute <= 0 {
		ratePerMinute = 6
	}
	perSecond := float64(ratePerMinute) / 60.0
	lim := retrylimit.NewAdaptiveLimiter(rate.Limit(perSecond), rate.Limit(perSecond/4), rate.Limit(perSecond*2), rate.Limit(perSecond/4), 0.5)
	return &Evaluator{provider: provider, limiter: lim, budget: DefaultBudget(), log: log}
}

// Evaluator adapts e to the soul.Evaluator function contract. Any failure
// (network, rate limit exhaustion, malformed JSON) degrades to an empty
// result rather than panicking — the belief layer treats "no impacts" as
// a legitimate neutral outcome.
func (e *Evaluator) Evaluator() soul.Evaluator {
	return func(beliefs []soul.Belief, emotions soul.EmotionVector, scene, conversation string) (map[soul.Emotion]float64, map[int]soul.Impact) {
		deltas, impacts, err := e.evaluate(beliefs, emotions, scene, conversation)
		if err != nil {
			e.log.Warn().Err(err).Msg("llm evaluation failed, returning neutral result")
			return map[soul.Emotion]float64{}, map[int]soul.Impact{}
		}
		return deltas, impacts
	}
}

func (e *Evaluator) evaluate(beliefs []soul.Belief, emotions soul.EmotionVector, scene, conversation string) (map[soul.Emotion]float64, map[int]soul.Impact, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()
	if err := e.limiter.Wait(ctx); err != nil {
		return nil, nil, fmt.Errorf("rate limiter: %w", err)
	}

	messages := []ai.Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: e.buildUserContent(beliefs, emotions, scene, conversation)},
	}

	var raw string
	err := retrylimit.WithRetryMax(ctx, func() error {
		out, err := e.provider.Generate(messages)
		if err != nil {
			e.limiter.RateLimited()
			return err
		}
		e.limiter.Success()
		raw = out
		return nil
	}, e.limiter, 3)
	if err != nil {
		return nil, nil, fmt.Errorf("provider generate: %w", err)
	}

	var parsed evalResponse
	if err := json.Unmarshal([]byte(extractJSON(raw)), &parsed); err != nil {
		return nil, nil, fmt.Errorf("unmarshal evaluator response: %w body=%s", err, trimToChars(raw, 200))
	}

	deltas := make(map[soul.Emotion]float64, len(parsed.Deltas))
	for name, v := range parsed.Deltas {
		em, ok := emotionByName[strings.ToLower(name)]
		if !ok {
			continue
		}
		deltas[em] = clampDelta(v)
	}

	impacts := make(map[int]soul.Impact, len(parsed.Impacts))
	for idxStr, verdict := range parsed.Impacts {
		var idx int
		if _, err := fmt.Sscanf(idxStr, "%d", &idx); err != nil {
			continue
		}
		if idx < 0 || idx >= len(beliefs) {
			continue
		}
		switch strings.ToLower(verdict) {
		case "challenged":
			impacts[idx] = soul.Challenged
		case "reinforced":
			impacts[idx] = soul.Reinforced
		}
	}

	return deltas, impacts, nil
}

func clampDelta(v float64) float64 {
	if v > 0.2 {
		return 0.2
	}
	if v < -0.2 {
		return -0.2
	}
	return v
}

func (e *Evaluator) buildUserContent(beliefs []soul.Belief, emotions soul.EmotionVector, scene, conversation string) string {
	var b strings.Builder
	b.WriteString("Beliefs:\n")
	for i, belief := range beliefs {
		fmt.Fprintf(&b, "[%d] (strength=%.2f tags=%v) %s\n", i, belief.Strength, belief.Tags, trimToChars(belief.Text, e.budget.MaxBeliefChars))
	}
	b.WriteString("\nCurrent emotions:\n")
	for _, em := range soul.Emotions {
		fmt.Fprintf(&b, "%s=%.2f ", em, emotions[em])
	}
	b.WriteString("\n\nScene:\n")
	b.WriteString(trimToChars(scene, e.budget.MaxSceneChars))
	b.WriteString("\n\nConversation turn:\n")
	b.WriteString(trimToChars(conversation, e.budget.MaxConversationChars))
	return b.String()
}
