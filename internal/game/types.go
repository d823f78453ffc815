package game

import "fmt"

// Role of a websocket client.
type Role string

const (
	RolePlayer  Role = "player"  // A browser playing a session, sending progress.
	RoleWatcher Role = "watcher" // A browser on the watch page, receiving progress.
)

// Progress is the summary of one session reported by a player.
type Progress struct {
	SessionID string `json:"session_id"`
	Matched   int    `json:"matched"`    // Number of matched slots
	Total     int    `json:"total"`      // Number of slots in the deck
	HintsLeft int    `json:"hints_left"` // Hints not yet used
	Mode      string `json:"mode"`
	Won       bool   `json:"won"`
}

// Percent of the deck matched, rounded down.
func (p Progress) Percent() int {
	if p.Total <= 0 {
		return 0
	}
	return 100 * p.Matched / p.Total
}

func (p Progress) String() string {
	return fmt.Sprintf("session %s: %d/%d matched, %d hints left, mode=%s, won=%t",
		p.SessionID, p.Matched, p.Total, p.HintsLeft, p.Mode, p.Won)
}
