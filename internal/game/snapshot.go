package game

import "slices"

// Snapshot is an immutable copy of a Machine's state, used for rendering.
type Snapshot struct {
	Deck             Deck
	Mode             Mode
	PreviewCountdown int
	HintCountdown    int
	HintsLeft        int
	Selected         []int
	Matched          []int
	Incorrect        []int
	Won              bool
}

// SlotState is the visual state of one slot.
type SlotState int

const (
	FaceDown SlotState = iota
	FaceUp
	Matched
	IncorrectFlash
)

func (s SlotState) String() string {
	switch s {
	case FaceDown:
		return "face-down"
	case FaceUp:
		return "face-up"
	case Matched:
		return "matched"
	case IncorrectFlash:
		return "incorrect"
	}
	return "unknown"
}

// RevealAll reports whether every card is shown, during the preview or a hint.
func (s Snapshot) RevealAll() bool {
	return s.Mode == ModePreviewing || s.Mode == ModeHintActive
}

// SlotState derives the visual state of slot.
func (s Snapshot) SlotState(slot int) SlotState {
	switch {
	case slices.Contains(s.Incorrect, slot):
		return IncorrectFlash
	case slices.Contains(s.Matched, slot):
		return Matched
	case slices.Contains(s.Selected, slot), s.RevealAll():
		return FaceUp
	}
	return FaceDown
}

// Clickable reports whether a click on slot would be accepted.
func (s Snapshot) Clickable(slot int) bool {
	return s.Mode == ModePlaying && s.Deck.Valid(slot) &&
		len(s.Selected) < 2 &&
		!slices.Contains(s.Selected, slot) &&
		!slices.Contains(s.Matched, slot)
}

// Progress summarizes the snapshot for progress reports.
func (s Snapshot) Progress(sessionID string) Progress {
	return Progress{
		SessionID: sessionID,
		Matched:   len(s.Matched),
		Total:     len(s.Deck),
		HintsLeft: s.HintsLeft,
		Mode:      s.Mode.String(),
		Won:       s.Won,
	}
}
