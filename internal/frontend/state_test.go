package frontend

import (
	"net/url"
	"testing"

	"github.com/janpfeifer/HeartPairs/internal/game"
)

func newTestState(t *testing.T) *GlobalClientState {
	t.Helper()
	State = nil
	InitState()
	t.Cleanup(func() { State = nil })
	return State
}

func mustMessage(t *testing.T, msgType game.MessageType, payload any) game.WsMessage {
	t.Helper()
	msg, err := game.NewWsMessage(msgType, payload)
	if err != nil {
		t.Fatalf("Failed to create %s message: %v", msgType, err)
	}
	return msg
}

func TestHandleMessage(t *testing.T) {
	s := newTestState(t)
	notified := 0
	s.Listeners["test"] = func() { notified++ }

	s.handleMessage(mustMessage(t, game.MsgTypeSessions, game.SessionsMessage{
		Sessions: []game.Progress{{SessionID: "b", Matched: 2}, {SessionID: "a"}},
	}))
	sessions := s.Sessions()
	if len(sessions) != 2 || sessions[0].SessionID != "a" || sessions[1].SessionID != "b" {
		t.Fatalf("Expected sessions a and b in order, got %v", sessions)
	}

	s.handleMessage(mustMessage(t, game.MsgTypeProgress, game.ProgressMessage{
		Progress: game.Progress{SessionID: "a", Matched: 10, Total: game.DeckSize},
	}))
	if got := s.Sessions()[0]; got.Matched != 10 {
		t.Errorf("Expected session a updated to 10 matched, got %v", got)
	}

	s.handleMessage(mustMessage(t, game.MsgTypeEnded, game.EndedMessage{SessionID: "b"}))
	if got := s.Sessions(); len(got) != 1 {
		t.Errorf("Expected session b to be removed, got %v", got)
	}

	s.handleMessage(mustMessage(t, game.MsgTypeError, game.ErrorMessage{Message: "boom"}))
	if s.Error != "boom" {
		t.Errorf("Expected error 'boom', got %q", s.Error)
	}

	s.handleMessage(game.WsMessage{Type: "bogus"})
	if notified != 4 {
		t.Errorf("Expected 4 notifications, got %d", notified)
	}
}

func TestNewSession(t *testing.T) {
	s := newTestState(t)
	first := s.NewSession()
	second := s.NewSession()
	if first == "" || first == second {
		t.Errorf("Expected distinct session ids, got %q and %q", first, second)
	}
	if s.SessionID != second {
		t.Errorf("Expected SessionID %q, got %q", second, s.SessionID)
	}

	// Not connected: reports are dropped silently.
	s.ReportProgress(game.Progress{SessionID: second})
}

func TestWsURL(t *testing.T) {
	tests := []struct {
		page, want string
	}{
		{"http://localhost:8080/", "ws://localhost:8080/ws"},
		{"https://example.com/watch", "wss://example.com/ws"},
	}
	for _, tc := range tests {
		t.Run(tc.page, func(t *testing.T) {
			u, err := url.Parse(tc.page)
			if err != nil {
				t.Fatal(err)
			}
			if got := wsURL(u); got != tc.want {
				t.Errorf("wsURL(%s) = %s, want %s", tc.page, got, tc.want)
			}
		})
	}
}

func TestStatusText(t *testing.T) {
	deck := make(game.Deck, game.DeckSize)
	tests := []struct {
		name string
		snap game.Snapshot
		want string
	}{
		{"preview", game.Snapshot{Deck: deck, Mode: game.ModePreviewing, PreviewCountdown: 3}, "Memorize the cards... 3"},
		{"hint", game.Snapshot{Deck: deck, Mode: game.ModeHintActive, HintCountdown: 4}, "Hint: 4"},
		{"playing", game.Snapshot{Deck: deck, Mode: game.ModePlaying, Matched: []int{0, 1, 2, 3}}, "2 of 19 pairs found"},
		{"won", game.Snapshot{Deck: deck, Mode: game.ModePlaying, Won: true}, "You found them all!"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := statusText(tc.snap); got != tc.want {
				t.Errorf("statusText = %q, want %q", got, tc.want)
			}
		})
	}
}
