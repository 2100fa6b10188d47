package soul

// ErosionState is the hidden pressure state tracked per belief.
type ErosionState struct {
	Pressure      float64
	Threshold     float64
	ShiftAmount   float64
	DecayRate     float64
	LastEventTime float64
}

// Erosion default per-belief parameters.
const (
	DefaultErosionThreshold   = 0.3
	DefaultErosionShiftAmount = 0.1
	DefaultErosionDecayRate   = 0.01
	// DefaultHardeningFactor is applied to a belief's threshold every time
	// it tips. The factor is configurable; there is deliberately no upper
	// cap on how much a threshold can harden over a belief's lifetime.
	DefaultHardeningFactor = 1.1
)

func defaultErosionState() ErosionState {
	return ErosionState{
		Threshold:   DefaultErosionThreshold,
		ShiftAmount: DefaultErosionShiftAmount,
		DecayRate:   DefaultErosionDecayRate,
	}
}

// ShiftEvent records a belief tipping point: pressure crossed threshold,
// strength moved, and the threshold hardened.
type ShiftEvent struct {
	BeliefIndex int
	Direction   int
	OldStrength float64
	NewStrength float64
}

// Erosion is the per-character erosion layer configuration. Per-belief
// erosion state itself lives on Belief.erosion.
type Erosion struct {
	HardeningFactor float64
}

// InitErosion attaches an Erosion layer with the given hardening factor
// (0 or negative selects the default of 1.1).
func (c *Character) InitErosion(hardeningFactor float64) {
	if hardeningFactor <= 0 {
		hardeningFactor = DefaultHardeningFactor
	}
	c.erosion = &Erosion{HardeningFactor: hardeningFactor}
}

// ErosionLayer returns the character's Erosion layer, or nil if uninitialised.
func (c *Character) ErosionLayer() *Erosion {
	return c.erosion
}

// ApplyPressure nudges a belief's hidden pressure by direction*|amount|,
// clamped to [-1, 1].
func (c *Character) ApplyPressure(index int, direction int, amount float64) error {
	if c.erosion == nil || c.beliefs == nil {
		return ErrLayerNotInitialized
	}
	if index < 0 || index >= len(c.beliefs.list) {
		return ErrInvalidBeliefIndex
	}
	if amount < 0 {
		amount = -amount
	}
	sign := 1.0
	if direction < 0 {
		sign = -1.0
	}
	es := &c.beliefs.list[index].erosion
	es.Pressure = clampUnit(es.Pressure + sign*amount)
	return nil
}

// CheckTippingPoint tips a belief if |pressure| >= threshold: records a
// ShiftEvent, moves strength by direction*shift_amount, resets pressure
// to zero, and hardens the threshold by HardeningFactor.
func (c *Character) CheckTippingPoint(index int) (*ShiftEvent, error) {
	if c.erosion == nil || c.beliefs == nil {
		return nil, ErrLayerNotInitialized
	}
	if index < 0 || index >= len(c.beliefs.list) {
		return nil, ErrInvalidBeliefIndex
	}
	b := &c.beliefs.list[index]
	es := &b.erosion
	p := es.Pressure
	if p < 0 {
		p = -p
	}
	if p < es.Threshold {
		return nil, nil
	}
	direction := 1
	if es.Pressure < 0 {
		direction = -1
	}
	old := b.Strength
	b.Strength = clamp01(b.Strength + float64(direction)*es.ShiftAmount)
	event := &ShiftEvent{
		BeliefIndex: index,
		Direction:   direction,
		OldStrength: old,
		NewStrength: b.Strength,
	}
	es.Pressure = 0
	es.Threshold *= c.erosion.HardeningFactor
	return event, nil
}

// Tick advances time decay for every belief: pressure moves toward zero
// by decay_rate*dt, never crossing sign, where dt = currentTime -
// last_event_time. A call with dt == 0 is a no-op.
func (c *Character) Tick(currentTime float64) error {
	if c.erosion == nil {
		return ErrLayerNotInitialized
	}
	if c.beliefs == nil {
		return nil
	}
	for i := range c.beliefs.list {
		es := &c.beliefs.list[i].erosion
		dt := currentTime - es.LastEventTime
		if dt < 0 {
			dt = 0
		}
		if dt == 0 {
			continue
		}
		step := es.DecayRate * dt
		if es.Pressure > 0 {
			es.Pressure -= step
			if es.Pressure < 0 {
				es.Pressure = 0
			}
		} else if es.Pressure < 0 {
			es.Pressure += step
			if es.Pressure > 0 {
				es.Pressure = 0
			}
		}
		es.LastEventTime = currentTime
	}
	return nil
}

// GetTippingProximity returns a 0..1 gradual signal of how close a
// belief is to tipping.
func (c *Character) GetTippingProximity(index int) (float64, error) {
	if c.erosion == nil || c.beliefs == nil {
		return 0, ErrLayerNotInitialized
	}
	if index < 0 || index >= len(c.beliefs.list) {
		return 0, ErrInvalidBeliefIndex
	}
	es := c.beliefs.list[index].erosion
	p := es.Pressure
	if p < 0 {
		p = -p
	}
	if es.Threshold <= 0 {
		return 1, nil
	}
	return clamp(p/es.Threshold, 0, 1), nil
}

// ProcessEvaluation is the erosion/evaluation convenience wiring: total
// emotion-delta magnitude caps a single evaluation's pressure
// contribution at 0.15, applied per-belief according to its impact
// verdict, and every application is followed by a tipping check.
func (c *Character) ProcessEvaluation(impacts map[int]Impact, deltas map[Emotion]float64) ([]ShiftEvent, error) {
	if c.erosion == nil || c.beliefs == nil {
		return nil, ErrLayerNotInitialized
	}
	var magnitude float64
	for _, v := range deltas {
		if v < 0 {
			v = -v
		}
		magnitude += v
	}
	amount := magnitude * 0.3
	if amount > 0.15 {
		amount = 0.15
	}

	var events []ShiftEvent
	for idx, impact := range impacts {
		if idx < 0 || idx >= len(c.beliefs.list) {
			continue
		}
		switch impact {
		case Challenged:
			if err := c.ApplyPressure(idx, -1, amount); err != nil {
				return events, err
			}
		case Reinforced:
			if err := c.ApplyPressure(idx, 1, amount); err != nil {
				return events, err
			}
		default:
			continue
		}
		event, err := c.CheckTippingPoint(idx)
		if err != nil {
			return events, err
		}
		if event != nil {
			events = append(events, *event)
		}
	}
	return events, nil
}
