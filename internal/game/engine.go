package game

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/lox/hearts/internal/deck"
	"github.com/lox/hearts/internal/randutil"
)

// EngineConfig configures a new Engine
type EngineConfig struct {
	Setup Setup
	// Agents drive the bot seats; a nil entry is a human seat.
	Agents [NumSeats]Agent
	Rand   randutil.Source
	Logger *log.Logger
}

// Engine owns one game and applies inbound events to it one at a time.
// It is not safe for concurrent use; callers drive it from a single goroutine.
type Engine struct {
	state      State
	agents     [NumSeats]Agent
	rng        randutil.Source
	logger     *log.Logger
	baseLogger *log.Logger
	eventBus   *SimpleEventBus
}

// NewEngine deals the first round of a new game
func NewEngine(cfg EngineConfig) (*Engine, error) {
	if cfg.Rand == nil {
		return nil, errors.New("engine requires a random source")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}

	setup := cfg.Setup
	for seat, a := range cfg.Agents {
		setup.Humans[seat] = a == nil
	}
	if setup.ID == "" {
		id, err := newGameID(cfg.Rand)
		if err != nil {
			return nil, err
		}
		setup.ID = id
	}

	state, err := NewGame(setup, deck.Shuffle(deck.NewDeck(), cfg.Rand))
	if err != nil {
		return nil, err
	}

	base := logger.WithPrefix("engine")
	e := &Engine{
		state:      state,
		agents:     cfg.Agents,
		rng:        cfg.Rand,
		logger:     base.With("game", shortID(setup.ID)),
		baseLogger: base,
		eventBus:   NewEventBus(),
	}
	e.logger.Info("Starting game", "target", state.TargetScore, "human", state.HumanSeat())
	e.beginRound()
	return e, nil
}

// Subscribe registers a subscriber for game events
func (e *Engine) Subscribe(subscriber EventSubscriber) {
	e.eventBus.Subscribe(subscriber)
}

// Snapshot returns a deep copy of the current state
func (e *Engine) Snapshot() State {
	return e.state.Clone()
}

// Phase returns the current phase
func (e *Engine) Phase() Phase {
	return e.state.Phase
}

// SelectCardForPass toggles a card in the human seat's pass selection
func (e *Engine) SelectCardForPass(c deck.Card) error {
	seat, err := e.humanSeat()
	if err != nil {
		return err
	}
	return e.apply(SelectCardForPass{Seat: seat, Card: c})
}

// ConfirmPass exchanges the selected cards
func (e *Engine) ConfirmPass() error {
	return e.apply(ConfirmPass{})
}

// PlayCard plays a card for the human seat
func (e *Engine) PlayCard(c deck.Card) error {
	seat, err := e.humanSeat()
	if err != nil {
		return err
	}
	return e.apply(PlayCard{Seat: seat, Card: c})
}

// StartNewRound deals the next round once the current one has been scored
func (e *Engine) StartNewRound() error {
	if err := e.apply(StartNewRound{Deck: deck.Shuffle(deck.NewDeck(), e.rng)}); err != nil {
		return err
	}
	e.beginRound()
	return nil
}

// ResetGame abandons the current game and starts a new one, with a new
// id, from round one
func (e *Engine) ResetGame() error {
	id, err := newGameID(e.rng)
	if err != nil {
		return err
	}
	if err := e.apply(ResetGame{ID: id, Deck: deck.Shuffle(deck.NewDeck(), e.rng)}); err != nil {
		return err
	}
	e.logger = e.baseLogger.With("game", shortID(id))
	e.logger.Info("Game reset")
	e.beginRound()
	return nil
}

// WaitingForHuman reports whether the next step needs input from a person
func (e *Engine) WaitingForHuman() bool {
	switch e.state.Phase {
	case PhasePassing:
		return e.state.HumanSeat() >= 0
	case PhasePlaying:
		return e.agents[e.state.CurrentPlayer] == nil
	default:
		return false
	}
}

// AdvanceAITurn performs one automatic step: a bot play, leaving the
// trick-end display, or confirming the pass at an all-bot table. It
// returns false when the engine is waiting on a human or the round is over.
func (e *Engine) AdvanceAITurn() bool {
	switch e.state.Phase {
	case PhaseTrickEnd:
		e.mustApply(Continue{})
		return true

	case PhasePassing:
		if e.state.HumanSeat() >= 0 {
			return false
		}
		e.mustApply(ConfirmPass{})
		return true

	case PhasePlaying:
		seat := e.state.CurrentPlayer
		agent := e.agents[seat]
		if agent == nil {
			return false
		}
		view := e.state.ViewFor(seat)
		card := agent.ChoosePlay(view)
		if !deck.Contains(view.Legal, card) {
			e.logger.Error("Agent chose an illegal card, using fallback",
				"player", e.state.Players[seat].Name, "card", card, "legal", deck.FormatCards(view.Legal))
			card = deck.Lowest(view.Legal)
		}
		e.mustApply(PlayCard{Seat: seat, Card: card})
		return true

	default:
		return false
	}
}

// AdvanceUntilHuman runs bot steps until a human must act or the round
// ends, returning the number of steps taken.
func (e *Engine) AdvanceUntilHuman() int {
	steps := 0
	for e.AdvanceAITurn() {
		steps++
	}
	return steps
}

func (e *Engine) humanSeat() (int, error) {
	seat := e.state.HumanSeat()
	if seat < 0 {
		return -1, fmt.Errorf("%w: no human seat at this table", ErrNotYourTurn)
	}
	return seat, nil
}

// RoundStart describes the round in progress. Subscribers added after the
// round was dealt use it to catch up on the announcement they missed.
func (e *Engine) RoundStart() RoundStartEvent {
	return RoundStartEvent{
		GameID:    e.state.ID,
		Round:     e.state.Round,
		Direction: e.state.Direction,
		Scores:    e.state.Scores,
		timestamp: time.Now(),
	}
}

// beginRound announces a freshly dealt round and lets bots pick passes
func (e *Engine) beginRound() {
	s := e.state
	e.logger.Debug("Round dealt", "round", s.Round, "direction", s.Direction)
	e.eventBus.Publish(e.RoundStart())

	if s.Phase != PhasePassing {
		return
	}
	for seat, agent := range e.agents {
		if agent == nil {
			continue
		}
		cards := agent.ChoosePass(e.state.ViewFor(seat))
		next, err := Apply(e.state, SetPassSelection{Seat: seat, Cards: cards})
		if err != nil {
			e.logger.Error("Agent chose an invalid pass, using fallback",
				"player", s.Players[seat].Name, "error", err)
			next, err = Apply(e.state, SetPassSelection{Seat: seat, Cards: fallbackPass(s.Players[seat].Hand)})
			if err != nil {
				invariant("fallback pass rejected: %v", err)
			}
		}
		e.state = next
	}
}

// fallbackPass returns the three highest cards of a hand
func fallbackPass(hand []deck.Card) []deck.Card {
	rest := append([]deck.Card(nil), hand...)
	picked := make([]deck.Card, 0, PassCount)
	for len(picked) < PassCount && len(rest) > 0 {
		c := deck.Highest(rest)
		picked = append(picked, c)
		rest, _ = deck.Remove(rest, c)
	}
	return picked
}

func (e *Engine) mustApply(ev Event) {
	if err := e.apply(ev); err != nil {
		invariant("%s rejected during automatic step: %v", EventName(ev), err)
	}
}

func (e *Engine) apply(ev Event) error {
	prev := e.state
	next, err := Apply(prev, ev)
	if err != nil {
		if IsRecoverable(err) {
			e.state.Message = userMessage(err)
			e.logger.Debug("Rejected event", "event", EventName(ev), "error", err)
			e.eventBus.Publish(MoveRejectedEvent{Seat: seatOf(ev), Reason: e.state.Message, timestamp: time.Now()})
		}
		return err
	}
	e.state = next
	e.publishTransition(prev, next, ev)
	return nil
}

func (e *Engine) publishTransition(prev, next State, ev Event) {
	now := time.Now()
	switch ev := ev.(type) {
	case ConfirmPass:
		e.logger.Debug("Cards passed", "direction", prev.Direction)
		e.eventBus.Publish(PassDoneEvent{Direction: prev.Direction, Passed: prev.PassSelections, timestamp: now})

	case PlayCard:
		trickSize := len(next.Trick)
		if next.Phase == PhaseTrickEnd {
			trickSize = NumSeats
		}
		e.logger.Debug("Card played", "player", next.Players[ev.Seat].Name, "card", ev.Card)
		e.eventBus.Publish(CardPlayedEvent{
			Seat:        ev.Seat,
			Name:        next.Players[ev.Seat].Name,
			Card:        ev.Card,
			BrokeHearts: !prev.HeartsBroken && next.HeartsBroken,
			TrickSize:   trickSize,
			timestamp:   now,
		})
		if next.Phase == PhaseTrickEnd && next.TrickWinner != nil {
			e.logger.Debug("Trick won", "player", next.TrickWinner.Name, "points", next.TrickWinner.Points)
			e.eventBus.Publish(TrickEndEvent{
				Winner:    *next.TrickWinner,
				Trick:     next.LastTrick,
				Number:    next.TricksPlayed,
				timestamp: now,
			})
		}

	case Continue:
		if next.Phase != PhaseRoundEnd && next.Phase != PhaseGameOver {
			return
		}
		e.logger.Info("Round complete", "round", next.Round, "roundScores", next.RoundScores, "scores", next.Scores)
		e.eventBus.Publish(RoundEndEvent{
			Round:       next.Round,
			RoundScores: next.RoundScores,
			Scores:      next.Scores,
			MoonShooter: next.MoonShooter,
			timestamp:   now,
		})
		if winner, ok := next.GameWinner(); ok {
			e.logger.Info("Game over", "winner", next.Players[winner].Name, "scores", next.Scores)
			e.eventBus.Publish(GameOverEvent{
				GameID:    next.ID,
				Winner:    winner,
				Name:      next.Players[winner].Name,
				Scores:    next.Scores,
				Rounds:    next.Round,
				timestamp: now,
			})
		}
	}
}

func seatOf(ev Event) int {
	switch ev := ev.(type) {
	case PlayCard:
		return ev.Seat
	case SelectCardForPass:
		return ev.Seat
	case SetPassSelection:
		return ev.Seat
	default:
		return -1
	}
}

func userMessage(err error) string {
	msg := err.Error()
	if msg == "" {
		return msg
	}
	return strings.ToUpper(msg[:1]) + msg[1:]
}

// newGameID draws a uuid from the game's random source so seeded games
// replay with the same ids
func newGameID(src randutil.Source) (string, error) {
	id, err := uuid.NewRandomFromReader(randutil.Reader{Src: src})
	if err != nil {
		return "", fmt.Errorf("failed to generate game id: %w", err)
	}
	return id.String(), nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
