package soul

import "errors"

// Programmer-error sentinels. All are meant to be compared with errors.Is
// at the call site; the engine never coerces or swallows them.
var (
	ErrUnknownInteraction  = errors.New("soul: unknown interaction")
	ErrUnknownSituation    = errors.New("soul: unknown situation")
	ErrUnknownTopic        = errors.New("soul: unknown topic")
	ErrInvalidBeliefIndex  = errors.New("soul: invalid belief index")
	ErrEvaluatorNotSet     = errors.New("soul: evaluator backend not configured")
	ErrLayerNotInitialized = errors.New("soul: layer not initialized on character")
	ErrRegistrySealed      = errors.New("soul: registry mutation after first character construction")
)
