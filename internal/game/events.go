package game

import (
	"time"

	"github.com/lox/hearts/internal/deck"
)

// EventType represents a game event type with type safety
type EventType string

// EventType constants for game domain events
const (
	EventTypeRoundStart   EventType = "round_start"
	EventTypePassDone     EventType = "pass_done"
	EventTypeCardPlayed   EventType = "card_played"
	EventTypeTrickEnd     EventType = "trick_end"
	EventTypeRoundEnd     EventType = "round_end"
	EventTypeGameOver     EventType = "game_over"
	EventTypeMoveRejected EventType = "move_rejected"
)

// String returns the string representation of the event type
func (et EventType) String() string {
	return string(et)
}

// GameEvent represents anything published while a game runs
type GameEvent interface {
	EventType() EventType
	Timestamp() time.Time
}

// RoundStartEvent is published after cards are dealt
type RoundStartEvent struct {
	GameID    string
	Round     int
	Direction PassDirection
	Scores    [NumSeats]int
	timestamp time.Time
}

func (e RoundStartEvent) EventType() EventType { return EventTypeRoundStart }
func (e RoundStartEvent) Timestamp() time.Time { return e.timestamp }

// PassDoneEvent is published when cards have been exchanged
type PassDoneEvent struct {
	Direction PassDirection
	Passed    [NumSeats][]deck.Card
	timestamp time.Time
}

func (e PassDoneEvent) EventType() EventType { return EventTypePassDone }
func (e PassDoneEvent) Timestamp() time.Time { return e.timestamp }

// CardPlayedEvent is published for every accepted play
type CardPlayedEvent struct {
	Seat        int
	Name        string
	Card        deck.Card
	BrokeHearts bool
	TrickSize   int
	timestamp   time.Time
}

func (e CardPlayedEvent) EventType() EventType { return EventTypeCardPlayed }
func (e CardPlayedEvent) Timestamp() time.Time { return e.timestamp }

// TrickEndEvent is published when the fourth card resolves a trick
type TrickEndEvent struct {
	Winner    TrickWinnerInfo
	Trick     []Play
	Number    int
	timestamp time.Time
}

func (e TrickEndEvent) EventType() EventType { return EventTypeTrickEnd }
func (e TrickEndEvent) Timestamp() time.Time { return e.timestamp }

// RoundEndEvent is published once round scores are settled
type RoundEndEvent struct {
	Round       int
	RoundScores [NumSeats]int
	Scores      [NumSeats]int
	MoonShooter int
	timestamp   time.Time
}

func (e RoundEndEvent) EventType() EventType { return EventTypeRoundEnd }
func (e RoundEndEvent) Timestamp() time.Time { return e.timestamp }

// GameOverEvent is published when a cumulative score reaches the target
type GameOverEvent struct {
	GameID    string
	Winner    int
	Name      string
	Scores    [NumSeats]int
	Rounds    int
	timestamp time.Time
}

func (e GameOverEvent) EventType() EventType { return EventTypeGameOver }
func (e GameOverEvent) Timestamp() time.Time { return e.timestamp }

// MoveRejectedEvent is published when a request is refused
type MoveRejectedEvent struct {
	Seat      int
	Reason    string
	timestamp time.Time
}

func (e MoveRejectedEvent) EventType() EventType { return EventTypeMoveRejected }
func (e MoveRejectedEvent) Timestamp() time.Time { return e.timestamp }

// EventSubscriber can subscribe to game events
type EventSubscriber interface {
	OnEvent(event GameEvent)
}

// EventSubscriberFunc adapts a function to EventSubscriber
type EventSubscriberFunc func(event GameEvent)

func (f EventSubscriberFunc) OnEvent(event GameEvent) { f(event) }

// EventBus manages event publishing and subscription
type EventBus interface {
	Subscribe(subscriber EventSubscriber)
	Publish(event GameEvent)
}

// SimpleEventBus is a basic in-memory, synchronous event bus
type SimpleEventBus struct {
	subscribers []EventSubscriber
}

// NewEventBus creates a new event bus
func NewEventBus() *SimpleEventBus {
	return &SimpleEventBus{
		subscribers: make([]EventSubscriber, 0),
	}
}

// Subscribe adds a subscriber to receive events
func (bus *SimpleEventBus) Subscribe(subscriber EventSubscriber) {
	bus.subscribers = append(bus.subscribers, subscriber)
}

// Publish sends an event to all subscribers in subscription order
func (bus *SimpleEventBus) Publish(event GameEvent) {
	for _, subscriber := range bus.subscribers {
		subscriber.OnEvent(event)
	}
}
