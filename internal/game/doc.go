// Package game implements the rules and round/game state machine for
// four-player Hearts.
//
// The core type is State, an immutable snapshot of a game. Every transition
// is a pure function:
//
//	next, err := game.Apply(state, game.PlayCard{Seat: 0, Card: deck.TwoOfClubs})
//
// A rejected event (illegal card, wrong phase, incomplete pass) returns the
// original state together with an error wrapping one of ErrIllegalMove,
// ErrPassSelection, ErrWrongPhase or ErrNotYourTurn. Playing a card the seat
// does not hold is a programming error and panics with InvariantError.
//
// # Phases
//
//	passing -> playing -> trick-end -> playing ... -> round-end -> passing ...
//	                                             \-> game-over
//
// Passing is skipped every fourth round (PassHold).
//
// # Engine
//
// Engine wraps a State for interactive use. It owns the random source,
// asks an Agent for every bot decision and publishes GameEvents:
//
//	e, _ := game.NewEngine(game.EngineConfig{Agents: agents, Rand: randutil.New(42)})
//	for e.AdvanceAITurn() {
//	}
//
// AdvanceAITurn performs exactly one automatic step, so any pacing delay
// belongs to the caller.
package game
