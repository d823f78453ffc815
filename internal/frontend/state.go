package frontend

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/google/uuid"
	"github.com/janpfeifer/HeartPairs/internal/game"
	"github.com/maxence-charriere/go-app/v10/pkg/app"
	"k8s.io/klog/v2"
)

// GlobalClientState manages the connection to the server, the current
// session id and, on the watch page, the progress of live sessions.
type GlobalClientState struct {
	SessionID string
	Role      game.Role
	Error     string
	Conn      *websocket.Conn

	// Sound effects on match and mismatch.
	SoundEnabled bool

	// Progress reports waiting to be written by writeLoop.
	progress chan game.Progress

	mu       sync.Mutex
	sessions map[string]game.Progress

	// Listeners for state updates
	Listeners map[string]func()
}

var State *GlobalClientState

func InitState() {
	if State == nil {
		klog.V(1).Infof("InitState: creating new state (was nil)")
		State = &GlobalClientState{
			Listeners:    make(map[string]func()),
			SoundEnabled: true,
			sessions:     make(map[string]game.Progress),
		}
	} else {
		klog.V(1).Infof("InitState: state already exists")
	}
}

// NewSession picks a fresh session id, used when a new deck is dealt.
func (s *GlobalClientState) NewSession() string {
	s.SessionID = uuid.NewString()
	klog.Infof("NewSession: %s", s.SessionID)
	return s.SessionID
}

func (s *GlobalClientState) ToggleSound() {
	s.SoundEnabled = !s.SoundEnabled
	klog.Infof("ToggleSound: SoundEnabled is now %v", s.SoundEnabled)
	s.Notify()
}

func (s *GlobalClientState) PlaySound(url string) {
	if !s.SoundEnabled || app.IsServer {
		return
	}

	// Create a new Audio element for the sound effect
	audio := app.Window().Get("document").Call("createElement", "audio")
	audio.Set("src", url)

	// Play the sound (fire and forget)
	promise := audio.Call("play")
	if promise.Truthy() {
		promise.Call("catch", app.FuncOf(func(this app.Value, args []app.Value) any {
			klog.Errorf("PlaySound: Failed to play %s: %v", url, args[0])
			return nil
		}))
	}
}

func (s *GlobalClientState) Notify() {
	klog.V(1).Infof("GlobalClientState: Notifying %d listeners", len(s.Listeners))
	for _, l := range s.Listeners {
		if l != nil {
			l()
		}
	}
}

// Sessions returns the live sessions known to a watcher, sorted by id.
func (s *GlobalClientState) Sessions() []game.Progress {
	s.mu.Lock()
	defer s.mu.Unlock()
	sessions := make([]game.Progress, 0, len(s.sessions))
	for _, p := range s.sessions {
		sessions = append(sessions, p)
	}
	sort.Slice(sessions, func(i, j int) bool { return sessions[i].SessionID < sessions[j].SessionID })
	return sessions
}

// wsURL returns the websocket endpoint on the same host as page.
func wsURL(page *url.URL) string {
	scheme := "ws"
	if page.Scheme == "https" {
		scheme = "wss"
	}
	return fmt.Sprintf("%s://%s/ws", scheme, page.Host)
}

// ConnectWS connects to the server and introduces itself with the given role.
// Players then stream their progress, watchers receive everyone's.
func (s *GlobalClientState) ConnectWS(role game.Role) error {
	if s.Conn != nil {
		klog.Infof("ConnectWS: Closing existing connection")
		s.Conn.CloseNow()
	}

	target := wsURL(app.Window().URL())
	klog.Infof("ConnectWS: Connecting to %s as %s", target, role)

	// We use a context that lasts for the duration of the connection setup.
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, target, nil)
	if err != nil {
		klog.Errorf("ConnectWS: Dial failed: %v", err)
		return fmt.Errorf("dial failed: %w", err)
	}

	s.Conn = conn
	s.Role = role

	hello := game.HelloMessage{Role: role}
	if role == game.RolePlayer {
		hello.SessionID = s.SessionID
	}
	helloMsg, err := game.NewWsMessage(game.MsgTypeHello, hello)
	if err != nil {
		klog.Errorf("ConnectWS: Failed to create hello message: %v", err)
		return fmt.Errorf("failed to create hello message: %w", err)
	}
	if err := wsjson.Write(ctx, conn, helloMsg); err != nil {
		klog.Errorf("ConnectWS: Failed to send hello: %v", err)
		return fmt.Errorf("failed to send hello: %w", err)
	}

	if role == game.RolePlayer {
		s.progress = make(chan game.Progress, 16)
		go s.writeLoop(conn, s.progress)
	}
	go s.readLoop(conn)
	return nil
}

// Disconnect closes the connection, if any.
func (s *GlobalClientState) Disconnect() {
	if s.Conn == nil {
		return
	}
	s.Conn.Close(websocket.StatusNormalClosure, "")
	s.Conn = nil
	if s.progress != nil {
		close(s.progress)
		s.progress = nil
	}
}

// ReportProgress queues a progress report. Reports are dropped if not connected
// or if the connection cannot keep up.
func (s *GlobalClientState) ReportProgress(p game.Progress) {
	if s.progress == nil {
		return
	}
	select {
	case s.progress <- p:
	default:
		klog.Warningf("ReportProgress: queue full, dropping report %s", p)
	}
}

func (s *GlobalClientState) writeLoop(conn *websocket.Conn, progress <-chan game.Progress) {
	for p := range progress {
		msg, err := game.NewWsMessage(game.MsgTypeProgress, game.ProgressMessage{Progress: p})
		if err != nil {
			klog.Errorf("writeLoop: Failed to create progress message: %v", err)
			continue
		}
		ctx, cancel := context.WithTimeout(context.Background(), time.Second*2)
		err = wsjson.Write(ctx, conn, msg)
		cancel()
		if err != nil {
			klog.Errorf("writeLoop: WS write error: %v", err)
			return
		}
	}
}

func (s *GlobalClientState) readLoop(conn *websocket.Conn) {
	ctx := context.Background()
	klog.Infof("readLoop: started")
	for {
		var msg game.WsMessage
		err := wsjson.Read(ctx, conn, &msg)
		if err != nil {
			klog.Errorf("readLoop: WS read error: %v", err)
			break
		}

		klog.V(1).Infof("readLoop: received message type: %s", msg.Type)
		s.handleMessage(msg)
	}
}

func (s *GlobalClientState) handleMessage(msg game.WsMessage) {
	p, err := msg.Parse()
	if err != nil {
		klog.Errorf("handleMessage: Failed to parse %s message: %v", msg.Type, err)
		return
	}

	switch payload := p.(type) {
	case *game.SessionsMessage:
		s.mu.Lock()
		s.sessions = make(map[string]game.Progress, len(payload.Sessions))
		for _, progress := range payload.Sessions {
			s.sessions[progress.SessionID] = progress
		}
		s.mu.Unlock()
		klog.Infof("handleMessage: %d live sessions", len(payload.Sessions))

	case *game.ProgressMessage:
		s.mu.Lock()
		s.sessions[payload.Progress.SessionID] = payload.Progress
		s.mu.Unlock()

	case *game.EndedMessage:
		s.mu.Lock()
		delete(s.sessions, payload.SessionID)
		s.mu.Unlock()

	case *game.ErrorMessage:
		klog.Errorf("handleMessage: server error: %s", payload.Message)
		s.Error = payload.Message

	default:
		klog.Warningf("handleMessage: unexpected message type %s", msg.Type)
		return
	}
	s.Notify()
}
