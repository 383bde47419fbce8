package game

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/lox/hearts/internal/fileutil"
)

// HistoryWriter stores the text of a finished game
type HistoryWriter interface {
	WriteGameHistory(gameID string, content string) error
}

// FileHistoryWriter writes game history to files
type FileHistoryWriter struct {
	directory string
}

// NewFileHistoryWriter creates a new file-based game history writer
func NewFileHistoryWriter(directory string) *FileHistoryWriter {
	return &FileHistoryWriter{directory: directory}
}

// WriteGameHistory writes game history to <directory>/game_<id>.txt
func (w *FileHistoryWriter) WriteGameHistory(gameID string, content string) error {
	if err := os.MkdirAll(w.directory, 0o755); err != nil {
		return fmt.Errorf("failed to create history directory: %w", err)
	}
	filename := filepath.Join(w.directory, fmt.Sprintf("game_%s.txt", gameID))
	if err := fileutil.WriteFileAtomic(filename, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write history file: %w", err)
	}
	return nil
}

// NoOpHistoryWriter discards history (for tests)
type NoOpHistoryWriter struct{}

func (w *NoOpHistoryWriter) WriteGameHistory(gameID string, content string) error {
	return nil
}

// GameHistory records every event of a game as formatted text. It is an
// EventSubscriber and saves itself through its writer when the game ends.
// A round one with a new game id starts a fresh record, so each game
// played through a reset is saved under its own id.
type GameHistory struct {
	GameID    string
	StartTime time.Time
	Seed      int64
	Names     [NumSeats]string
	Lines     []string

	formatter *EventFormatter
	writer    HistoryWriter
	saveErr   error
}

// NewGameHistory creates a history for the game described by s
func NewGameHistory(s State, seed int64, writer HistoryWriter) *GameHistory {
	if writer == nil {
		writer = &NoOpHistoryWriter{}
	}
	hh := &GameHistory{
		GameID:    s.ID,
		StartTime: time.Now(),
		Seed:      seed,
		formatter: NewEventFormatter(FormattingOptions{ShowPassedCards: true, Perspective: -1}),
		writer:    writer,
	}
	for i, p := range s.Players {
		hh.Names[i] = p.Name
	}
	return hh
}

// OnEvent implements EventSubscriber
func (hh *GameHistory) OnEvent(event GameEvent) {
	switch ev := event.(type) {
	case MoveRejectedEvent:
		return
	case RoundStartEvent:
		if ev.Round == 1 && ev.GameID != hh.GameID {
			hh.startGame(ev.GameID)
		}
	}
	if line := hh.formatter.Format(event); line != "" {
		hh.Lines = append(hh.Lines, hh.nameSeats(line))
	}
	if _, over := event.(GameOverEvent); over {
		if err := hh.SaveToFile(); err != nil && hh.saveErr == nil {
			hh.saveErr = err
		}
	}
}

// startGame drops the lines of an abandoned game and records a new one
func (hh *GameHistory) startGame(id string) {
	hh.GameID = id
	hh.StartTime = time.Now()
	hh.Lines = nil
}

// nameSeats replaces "seat N" and "Seat N" with the player's name
func (hh *GameHistory) nameSeats(line string) string {
	pairs := make([]string, 0, NumSeats*4)
	for seat, name := range hh.Names {
		pairs = append(pairs,
			fmt.Sprintf("Seat %d", seat), name,
			fmt.Sprintf("seat %d", seat), name)
	}
	return strings.NewReplacer(pairs...).Replace(line)
}

// GenerateHistoryText renders the whole game
func (hh *GameHistory) GenerateHistoryText() string {
	var history strings.Builder
	history.WriteString(fmt.Sprintf("=== GAME %s ===\n", hh.GameID))
	history.WriteString(fmt.Sprintf("Date: %s\n", hh.StartTime.Format("2006-01-02 15:04:05")))
	history.WriteString(fmt.Sprintf("Seed: %d\n", hh.Seed))
	history.WriteString(fmt.Sprintf("Players: %s\n\n", strings.Join(hh.Names[:], ", ")))
	for _, line := range hh.Lines {
		history.WriteString(line)
		history.WriteString("\n")
	}
	history.WriteString("=== END GAME ===\n")
	return history.String()
}

// SaveToFile saves the history using the configured writer
func (hh *GameHistory) SaveToFile() error {
	return hh.writer.WriteGameHistory(hh.GameID, hh.GenerateHistoryText())
}

// Err returns the first error from an automatic save at game over, if any
func (hh *GameHistory) Err() error {
	return hh.saveErr
}
