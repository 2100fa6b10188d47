// Package worldrunner drives the background per-character ticks a live
// deployment needs but the core soul package deliberately does not own:
// erosion time-decay and trigger cooldown advancement.
package worldrunner

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/keshon/soul-engine/internal/soul"
	"github.com/keshon/soul-engine/pkg/jobmgr"
	"github.com/keshon/soul-engine/pkg/util"
)

// TimeSource returns the current logical time, in the same units the
// character's History/Erosion layers were constructed with.
type TimeSource func() float64

// Registration pairs a character with the name worldrunner reports it
// under.
type Registration struct {
	Name      string
	Character *soul.Character
}

// Runner ticks a fixed set of registered characters on an interval,
// running the tick loop as one background job via pkg/jobmgr and fanning
// each tick's per-character work out with pkg/util.Parallel.
type Runner struct {
	interval time.Duration
	now      TimeSource
	regs     []Registration
	jobs     *jobmgr.Manager
	log      zerolog.Logger
	workers  int
}

// New builds a Runner. interval controls how often AdvanceTurn/Tick run
// across every registered character.
func New(interval time.Duration, now TimeSource, log zerolog.Logger) *Runner {
	return &Runner{
		interval: interval,
		now:      now,
		jobs:     jobmgr.NewManager(func(msg string) { log.Info().Str("job", msg).Msg("worldrunner job event") }),
		log:      log,
		workers:  4,
	}
}

// Register adds a character to the tick set. Not safe to call once Start
// has been invoked.
func (r *Runner) Register(name string, c *soul.Character) {
	r.regs = append(r.regs, Registration{Name: name, Character: c})
}

// Start launches the tick loop as an async job named "world-tick" and
// returns immediately. Cancel ctx (or call Stop) to halt it.
func (r *Runner) Start(ctx context.Context) error {
	return r.jobs.StartAsync("world-tick", func(jobCtx context.Context) error {
		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-jobCtx.Done():
				return nil
			case <-ticker.C:
				r.tickAll()
			}
		}
	})
}

// Stop cancels the tick loop.
func (r *Runner) Stop() error {
	return r.jobs.Stop("world-tick")
}

func (r *Runner) tickAll() {
	t := r.now()
	err := util.Parallel(r.regs, r.workers, func(_ context.Context, reg Registration) error {
		if err := reg.Character.AdvanceTurn(); err != nil && err != soul.ErrLayerNotInitialized {
			r.log.Warn().Str("character", reg.Name).Err(err).Msg("advance turn failed")
		}
		if err := reg.Character.Tick(t); err != nil && err != soul.ErrLayerNotInitialized {
			r.log.Warn().Str("character", reg.Name).Err(err).Msg("erosion tick failed")
		}
		return nil
	})
	if err != nil {
		r.log.Error().Err(err).Msg("world tick pass failed")
	}
}
