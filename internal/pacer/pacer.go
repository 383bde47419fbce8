// Package pacer spaces out automatic game steps so a person can follow
// bot plays. It only decides when the next step is due; the caller applies
// the step itself on its own goroutine.
package pacer

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/hearts/internal/game"
)

// Pacer schedules one pending automatic step at a time
type Pacer struct {
	clock      quartz.Clock
	aiDelay    time.Duration
	trickDelay time.Duration
	logger     *log.Logger

	mu      sync.Mutex
	pending *pending
}

type pending struct {
	timer *quartz.Timer
	ch    chan bool
	once  sync.Once
}

func (pd *pending) finish(fired bool) {
	pd.once.Do(func() { pd.ch <- fired })
}

// New creates a pacer. aiDelay precedes each bot play and the pass at an
// all-bot table; trickDelay is how long a finished trick stays visible.
func New(clock quartz.Clock, aiDelay, trickDelay time.Duration, logger *log.Logger) *Pacer {
	if logger == nil {
		logger = log.Default()
	}
	return &Pacer{
		clock:      clock,
		aiDelay:    aiDelay,
		trickDelay: trickDelay,
		logger:     logger.WithPrefix("pacer"),
	}
}

// DelayFor returns the pause before the automatic step out of phase
func (p *Pacer) DelayFor(phase game.Phase) time.Duration {
	switch phase {
	case game.PhaseTrickEnd:
		return p.trickDelay
	case game.PhasePlaying, game.PhasePassing:
		return p.aiDelay
	default:
		return 0
	}
}

// Schedule starts the delay for phase and replaces any pending schedule.
// The returned channel receives true once the delay has elapsed, or false
// if the schedule was cancelled first. A zero delay is due immediately.
func (p *Pacer) Schedule(phase game.Phase) <-chan bool {
	d := p.DelayFor(phase)
	ch := make(chan bool, 1)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.cancelLocked()

	if d <= 0 {
		ch <- true
		return ch
	}

	pd := &pending{ch: ch}
	pd.timer = p.clock.AfterFunc(d, func() {
		p.mu.Lock()
		if p.pending == pd {
			p.pending = nil
		}
		p.mu.Unlock()
		pd.finish(true)
	}, "pacer", phase.String())
	p.pending = pd
	p.logger.Debug("Scheduled step", "phase", phase, "delay", d)
	return ch
}

// Cancel abandons the pending schedule, if any
func (p *Pacer) Cancel() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cancelLocked()
}

// Pending reports whether a schedule is waiting to fire
func (p *Pacer) Pending() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pending != nil
}

func (p *Pacer) cancelLocked() {
	if p.pending == nil {
		return
	}
	p.pending.timer.Stop()
	p.pending.finish(false)
	p.pending = nil
}

// Run drives e until it waits on a human or the round ends, pausing before
// every step. It returns the number of steps taken, or early with false
// when stop is closed.
func (p *Pacer) Run(e *game.Engine, stop <-chan struct{}) (int, bool) {
	steps := 0
	for !e.WaitingForHuman() {
		switch e.Phase() {
		case game.PhaseRoundEnd, game.PhaseGameOver:
			return steps, true
		}
		select {
		case fired := <-p.Schedule(e.Phase()):
			if !fired {
				return steps, false
			}
		case <-stop:
			p.Cancel()
			return steps, false
		}
		if !e.AdvanceAITurn() {
			return steps, true
		}
		steps++
	}
	return steps, true
}
