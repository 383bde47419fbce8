package game

import (
	"fmt"
	"slices"

	"github.com/lox/hearts/internal/deck"
)

// Event is an input to the state machine
type Event interface {
	eventName() string
}

// SelectCardForPass toggles a card in a seat's pass selection
type SelectCardForPass struct {
	Seat int
	Card deck.Card
}

// SetPassSelection replaces a seat's pass selection; used for bot seats
type SetPassSelection struct {
	Seat  int
	Cards []deck.Card
}

// ConfirmPass exchanges the selected cards and starts play
type ConfirmPass struct{}

// PlayCard plays a card from a seat's hand onto the current trick
type PlayCard struct {
	Seat int
	Card deck.Card
}

// Continue leaves the trick-end display and moves on
type Continue struct{}

// StartNewRound deals the next round after a round ends
type StartNewRound struct {
	Deck []deck.Card
}

// ResetGame zeroes all scores and deals round one. A non-empty ID
// replaces the game id.
type ResetGame struct {
	ID   string
	Deck []deck.Card
}

func (SelectCardForPass) eventName() string { return "select_card_for_pass" }
func (SetPassSelection) eventName() string  { return "set_pass_selection" }
func (ConfirmPass) eventName() string       { return "confirm_pass" }
func (PlayCard) eventName() string          { return "play_card" }
func (Continue) eventName() string          { return "continue" }
func (StartNewRound) eventName() string     { return "start_new_round" }
func (ResetGame) eventName() string         { return "reset_game" }

// EventName returns a stable name for logging
func EventName(ev Event) string {
	return ev.eventName()
}

// Apply returns the state that results from applying ev to s. On error the
// returned state is s itself and no change has taken place.
func Apply(s State, ev Event) (State, error) {
	next := s.Clone()
	var err error

	switch ev := ev.(type) {
	case SelectCardForPass:
		err = next.selectCardForPass(ev.Seat, ev.Card)
	case SetPassSelection:
		err = next.setPassSelection(ev.Seat, ev.Cards)
	case ConfirmPass:
		err = next.confirmPass()
	case PlayCard:
		err = next.playCard(ev.Seat, ev.Card)
	case Continue:
		err = next.continueAfterTrick()
	case StartNewRound:
		err = next.startNewRound(ev.Deck)
	case ResetGame:
		err = next.resetGame(ev.ID, ev.Deck)
	default:
		err = fmt.Errorf("%w: unknown event %T", ErrWrongPhase, ev)
	}

	if err != nil {
		return s, err
	}
	return next, nil
}

func (s *State) requirePhase(p Phase) error {
	if s.Phase != p {
		return fmt.Errorf("%w: expected %s, in %s", ErrWrongPhase, p, s.Phase)
	}
	return nil
}

func validSeat(seat int) error {
	if seat < 0 || seat >= NumSeats {
		return fmt.Errorf("%w: no seat %d", ErrNotYourTurn, seat)
	}
	return nil
}

func (s *State) selectCardForPass(seat int, c deck.Card) error {
	if err := s.requirePhase(PhasePassing); err != nil {
		return err
	}
	if err := validSeat(seat); err != nil {
		return err
	}
	if !deck.Contains(s.Players[seat].Hand, c) {
		return fmt.Errorf("%w: %s is not in %s's hand", ErrIllegalMove, c, s.Players[seat].Name)
	}

	selected := s.PassSelections[seat]
	if idx := slices.Index(selected, c); idx >= 0 {
		s.PassSelections[seat] = slices.Delete(selected, idx, idx+1)
	} else {
		if len(selected) >= PassCount {
			return fmt.Errorf("%w: already selected %d cards", ErrPassSelection, PassCount)
		}
		s.PassSelections[seat] = append(selected, c)
	}

	n := len(s.PassSelections[seat])
	if n == PassCount {
		s.Message = fmt.Sprintf("Ready to pass %s %s.", deck.FormatCards(s.PassSelections[seat]), s.Direction)
	} else {
		s.Message = fmt.Sprintf("Selected %d of %d cards to pass %s.", n, PassCount, s.Direction)
	}
	return nil
}

func (s *State) setPassSelection(seat int, cards []deck.Card) error {
	if err := s.requirePhase(PhasePassing); err != nil {
		return err
	}
	if err := validSeat(seat); err != nil {
		return err
	}
	if len(cards) != PassCount {
		return fmt.Errorf("%w: need %d cards, got %d", ErrPassSelection, PassCount, len(cards))
	}
	hand := s.Players[seat].Hand
	for i, c := range cards {
		if !deck.Contains(hand, c) {
			return fmt.Errorf("%w: %s is not in %s's hand", ErrPassSelection, c, s.Players[seat].Name)
		}
		if slices.Contains(cards[:i], c) {
			return fmt.Errorf("%w: %s selected twice", ErrPassSelection, c)
		}
	}
	s.PassSelections[seat] = slices.Clone(cards)
	return nil
}

func (s *State) confirmPass() error {
	if err := s.requirePhase(PhasePassing); err != nil {
		return err
	}
	for seat, sel := range s.PassSelections {
		if len(sel) != PassCount {
			return fmt.Errorf("%w: %s has selected %d of %d cards",
				ErrPassSelection, s.Players[seat].Name, len(sel), PassCount)
		}
	}

	var hands [NumSeats][]deck.Card
	for seat, p := range s.Players {
		hand := p.Hand
		for _, c := range s.PassSelections[seat] {
			var ok bool
			if hand, ok = deck.Remove(hand, c); !ok {
				invariant("pass card %s missing from %s's hand", c, p.Name)
			}
		}
		hands[seat] = hand
	}
	for seat, sel := range s.PassSelections {
		target := PassTarget(seat, s.Direction)
		hands[target] = append(hands[target], sel...)
	}
	for seat := range s.Players {
		deck.Sort(hands[seat])
		s.Players[seat].Hand = hands[seat]
		s.PassSelections[seat] = nil
	}

	s.CurrentPlayer = OpeningLeader(hands)
	s.Phase = PhasePlaying
	s.Message = fmt.Sprintf("Cards passed %s. %s leads the 2♣.", s.Direction, s.Players[s.CurrentPlayer].Name)
	return nil
}

func (s *State) playCard(seat int, c deck.Card) error {
	if err := s.requirePhase(PhasePlaying); err != nil {
		return err
	}
	if err := validSeat(seat); err != nil {
		return err
	}
	if seat != s.CurrentPlayer {
		return fmt.Errorf("%w: waiting for %s", ErrNotYourTurn, s.Players[s.CurrentPlayer].Name)
	}

	p := &s.Players[seat]
	if !deck.Contains(p.Hand, c) {
		invariant("%s played %s which is not in hand", p.Name, c)
	}
	if !IsLegal(c, p.Hand, s.Trick, s.HeartsBroken, s.FirstTrick()) {
		return fmt.Errorf("%w: %s", ErrIllegalMove, illegalReason(*s, seat, c))
	}

	p.Hand, _ = deck.Remove(p.Hand, c)
	s.Trick = append(s.Trick, Play{Card: c, Seat: seat})
	if len(s.Trick) == 1 {
		s.LastTrick = nil
	}
	if c.Suit == deck.Hearts && !s.HeartsBroken {
		s.HeartsBroken = true
		s.Message = fmt.Sprintf("%s played %s. Hearts are broken!", p.Name, c)
	} else {
		s.Message = fmt.Sprintf("%s played %s.", p.Name, c)
	}

	if len(s.Trick) == NumSeats {
		s.resolveTrick()
		return nil
	}
	s.CurrentPlayer = (seat + 1) % NumSeats
	return nil
}

func illegalReason(s State, seat int, c deck.Card) string {
	hand := s.Players[seat].Hand
	if lead, ok := s.LeadSuit(); ok {
		return fmt.Sprintf("%s must follow %s", c, lead.Name())
	}
	if s.FirstTrick() && deck.Contains(hand, deck.TwoOfClubs) {
		return "the first trick must be led with the 2♣"
	}
	return fmt.Sprintf("cannot lead %s until hearts are broken", c)
}

func (s *State) resolveTrick() {
	idx := TrickWinner(s.Trick)
	if idx < 0 {
		invariant("resolving an empty trick")
	}
	winner := s.Trick[idx].Seat
	points := TrickPoints(s.Trick)

	for _, play := range s.Trick {
		s.Players[winner].TricksTaken = append(s.Players[winner].TricksTaken, play.Card)
	}
	s.RoundScores[winner] += points
	s.LastTrick = s.Trick
	s.Trick = nil
	s.TricksPlayed++
	s.CurrentPlayer = winner
	s.TrickWinner = &TrickWinnerInfo{Name: s.Players[winner].Name, Points: points, WinnerID: winner}
	s.Phase = PhaseTrickEnd

	if points == 1 {
		s.Message = fmt.Sprintf("%s takes the trick (1 point).", s.Players[winner].Name)
	} else {
		s.Message = fmt.Sprintf("%s takes the trick (%d points).", s.Players[winner].Name, points)
	}
}

func (s *State) continueAfterTrick() error {
	if err := s.requirePhase(PhaseTrickEnd); err != nil {
		return err
	}
	s.TrickWinner = nil
	if s.HandsEmpty() {
		s.finishRound()
		return nil
	}
	s.Phase = PhasePlaying
	s.Message = fmt.Sprintf("%s leads.", s.Players[s.CurrentPlayer].Name)
	return nil
}

func (s *State) finishRound() {
	adjusted, shooter := AdjustForMoon(s.RoundScores)
	s.RoundScores = adjusted
	s.MoonShooter = shooter
	for seat := range s.Scores {
		s.Scores[seat] += adjusted[seat]
	}

	if shooter >= 0 {
		s.Message = fmt.Sprintf("%s shot the moon!", s.Players[shooter].Name)
	} else {
		s.Message = fmt.Sprintf("Round %d complete.", s.Round)
	}

	for _, score := range s.Scores {
		if score >= s.TargetScore {
			s.Winner = LowestScorer(s.Scores)
			s.Phase = PhaseGameOver
			s.Message += fmt.Sprintf(" Game over: %s wins with %d.", s.Players[s.Winner].Name, s.Scores[s.Winner])
			return
		}
	}
	s.Phase = PhaseRoundEnd
}

func (s *State) startNewRound(shuffled []deck.Card) error {
	if err := s.requirePhase(PhaseRoundEnd); err != nil {
		return err
	}
	return s.dealRound(s.Round+1, shuffled)
}

func (s *State) resetGame(id string, shuffled []deck.Card) error {
	if id != "" {
		s.ID = id
	}
	s.Scores = [NumSeats]int{}
	return s.dealRound(1, shuffled)
}
