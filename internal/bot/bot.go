// Package bot provides the computer opponents for a Hearts table.
package bot

import (
	"fmt"
	"sort"

	"github.com/charmbracelet/log"

	"github.com/lox/hearts/internal/deck"
	"github.com/lox/hearts/internal/game"
	"github.com/lox/hearts/internal/randutil"
)

// Strategy names accepted by New
const (
	StrategyHeuristic = "heuristic"
	StrategyRandom    = "random"
)

var constructors = map[string]func(randutil.Source, *log.Logger) game.Agent{
	StrategyHeuristic: func(src randutil.Source, logger *log.Logger) game.Agent { return NewHeuristic(src, logger) },
	StrategyRandom:    func(src randutil.Source, logger *log.Logger) game.Agent { return NewRandBot(src, logger) },
}

// Strategies returns the known strategy names in sorted order
func Strategies() []string {
	names := make([]string, 0, len(constructors))
	for name := range constructors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// New creates an agent for the named strategy
func New(strategy string, src randutil.Source, logger *log.Logger) (game.Agent, error) {
	ctor, ok := constructors[strategy]
	if !ok {
		return nil, fmt.Errorf("unknown bot strategy %q (known: %v)", strategy, Strategies())
	}
	if logger == nil {
		logger = log.Default()
	}
	return ctor(src, logger), nil
}

// Heuristic plays the rule-based strategy from ChoosePass and ChoosePlay
type Heuristic struct {
	rng    randutil.Source
	logger *log.Logger
}

// NewHeuristic creates a heuristic bot drawing tie-breaks from src
func NewHeuristic(src randutil.Source, logger *log.Logger) *Heuristic {
	return &Heuristic{rng: src, logger: logger.WithPrefix("bot")}
}

func (h *Heuristic) ChoosePass(view game.View) []deck.Card {
	cards := ChoosePass(view.Hand)
	h.logger.Debug("Chose pass", "seat", view.Seat, "cards", deck.FormatCards(cards), "direction", view.Direction)
	return cards
}

func (h *Heuristic) ChoosePlay(view game.View) deck.Card {
	card, reason := ChoosePlay(view, h.rng)
	h.logger.Debug("Chose play", "seat", view.Seat, "card", card, "reasoning", reason)
	return card
}

// RandBot is a simple bot that makes uniform random legal choices
type RandBot struct {
	rng    randutil.Source
	logger *log.Logger
}

// NewRandBot creates a new RandBot instance
func NewRandBot(src randutil.Source, logger *log.Logger) *RandBot {
	return &RandBot{rng: src, logger: logger.WithPrefix("rand-bot")}
}

func (r *RandBot) ChoosePass(view game.View) []deck.Card {
	shuffled := deck.Shuffle(view.Hand, r.rng)
	return shuffled[:min(game.PassCount, len(shuffled))]
}

func (r *RandBot) ChoosePlay(view game.View) deck.Card {
	return view.Legal[randutil.IntN(r.rng, len(view.Legal))]
}
