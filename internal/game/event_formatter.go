package game

import (
	"fmt"
	"strings"

	"github.com/lox/hearts/internal/deck"
)

// FormattingOptions controls how events are formatted for different contexts
type FormattingOptions struct {
	ShowPassedCards bool   // Include every seat's passed cards (for history files)
	Perspective     int    // Seat whose passed cards are always shown; -1 for none
	Separator       string // Between cards, defaults to a single space
}

// EventFormatter provides centralized formatting for all game events
type EventFormatter struct {
	opts FormattingOptions
}

// NewEventFormatter creates a new event formatter with the given options
func NewEventFormatter(opts FormattingOptions) *EventFormatter {
	if opts.Separator == "" {
		opts.Separator = " "
	}
	return &EventFormatter{opts: opts}
}

// Format renders any game event as a single log line. Unknown events
// format as an empty string.
func (ef *EventFormatter) Format(event GameEvent) string {
	switch e := event.(type) {
	case RoundStartEvent:
		return ef.FormatRoundStart(e)
	case PassDoneEvent:
		return ef.FormatPassDone(e)
	case CardPlayedEvent:
		return ef.FormatCardPlayed(e)
	case TrickEndEvent:
		return ef.FormatTrickEnd(e)
	case RoundEndEvent:
		return ef.FormatRoundEnd(e)
	case GameOverEvent:
		return ef.FormatGameOver(e)
	case MoveRejectedEvent:
		return e.Reason
	default:
		return ""
	}
}

// FormatRoundStart formats a round start event
func (ef *EventFormatter) FormatRoundStart(event RoundStartEvent) string {
	if event.Direction == PassHold {
		return fmt.Sprintf("*** ROUND %d *** (no passing)", event.Round)
	}
	return fmt.Sprintf("*** ROUND %d *** (pass %s)", event.Round, event.Direction)
}

// FormatPassDone formats the card exchange
func (ef *EventFormatter) FormatPassDone(event PassDoneEvent) string {
	var result strings.Builder
	result.WriteString(fmt.Sprintf("Cards passed %s", event.Direction))
	for seat, cards := range event.Passed {
		if !ef.opts.ShowPassedCards && seat != ef.opts.Perspective {
			continue
		}
		target := PassTarget(seat, event.Direction)
		result.WriteString(fmt.Sprintf("\n  seat %d -> seat %d: [%s]", seat, target, ef.formatCards(cards)))
	}
	return result.String()
}

// FormatCardPlayed formats a single play
func (ef *EventFormatter) FormatCardPlayed(event CardPlayedEvent) string {
	text := fmt.Sprintf("%s: plays %s", event.Name, event.Card)
	if event.BrokeHearts {
		text += " (hearts broken)"
	}
	return text
}

// FormatTrickEnd formats the resolution of a trick
func (ef *EventFormatter) FormatTrickEnd(event TrickEndEvent) string {
	cards := make([]deck.Card, len(event.Trick))
	for i, p := range event.Trick {
		cards[i] = p.Card
	}
	return fmt.Sprintf("Trick %d [%s] won by %s (%s)",
		event.Number, ef.formatCards(cards), event.Winner.Name, pointsText(event.Winner.Points))
}

// FormatRoundEnd formats the settled round
func (ef *EventFormatter) FormatRoundEnd(event RoundEndEvent) string {
	var result strings.Builder
	result.WriteString(fmt.Sprintf("=== Round %d Complete ===", event.Round))
	if event.MoonShooter >= 0 {
		result.WriteString(fmt.Sprintf("\nSeat %d shot the moon!", event.MoonShooter))
	}
	for seat := range event.Scores {
		result.WriteString(fmt.Sprintf("\nSeat %d: +%d = %d", seat, event.RoundScores[seat], event.Scores[seat]))
	}
	return result.String()
}

// FormatGameOver formats the end of a game
func (ef *EventFormatter) FormatGameOver(event GameOverEvent) string {
	return fmt.Sprintf("Game over after %d rounds: %s wins with %d", event.Rounds, event.Name, event.Scores[event.Winner])
}

func (ef *EventFormatter) formatCards(cards []deck.Card) string {
	formatted := make([]string, len(cards))
	for i, c := range cards {
		formatted[i] = c.String()
	}
	return strings.Join(formatted, ef.opts.Separator)
}

func pointsText(points int) string {
	if points == 1 {
		return "1 point"
	}
	return fmt.Sprintf("%d points", points)
}
