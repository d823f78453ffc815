package server

import (
	"context"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/janpfeifer/HeartPairs/internal/game"
	"k8s.io/klog/v2"
)

// writeTimeout bounds every message written to a client.
const writeTimeout = 2 * time.Second

// ServerState keeps the latest progress of every live session, and the
// connected clients. Nothing outlives a connection.
type ServerState struct {
	// Address the server is listening on.
	Address string

	mu       sync.RWMutex
	Sessions map[string]game.Progress
	watchers map[*websocket.Conn]struct{}
	conns    map[*websocket.Conn]game.Role
}

// NewServerState creates an empty ServerState.
func NewServerState() *ServerState {
	return &ServerState{
		Sessions: make(map[string]game.Progress),
		watchers: make(map[*websocket.Conn]struct{}),
		conns:    make(map[*websocket.Conn]game.Role),
	}
}

// HandleWS upgrades the connection and serves one player or watcher.
// The first message must be a MsgTypeHello.
func (s *ServerState) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		klog.Errorf("HandleWS: failed to accept websocket: %v", err)
		return
	}
	defer conn.CloseNow()

	ctx := r.Context()
	var msg game.WsMessage
	if err := wsjson.Read(ctx, conn, &msg); err != nil {
		klog.Errorf("HandleWS: failed to read hello: %v", err)
		return
	}
	if msg.Type != game.MsgTypeHello {
		s.sendError(ctx, conn, "expected hello message, got "+string(msg.Type))
		return
	}
	p, err := msg.Parse()
	if err != nil {
		s.sendError(ctx, conn, "invalid hello message")
		return
	}
	hello := p.(*game.HelloMessage)

	s.mu.Lock()
	s.conns[conn] = hello.Role
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		delete(s.conns, conn)
		s.mu.Unlock()
	}()

	switch hello.Role {
	case game.RolePlayer:
		if hello.SessionID == "" {
			s.sendError(ctx, conn, "player hello without a session id")
			return
		}
		s.servePlayer(ctx, conn, hello.SessionID)
	case game.RoleWatcher:
		s.serveWatcher(ctx, conn)
	default:
		s.sendError(ctx, conn, "unknown role: "+string(hello.Role))
	}
}

func (s *ServerState) servePlayer(ctx context.Context, conn *websocket.Conn, sessionID string) {
	klog.Infof("Player session %s connected", sessionID)
	defer func() {
		s.mu.Lock()
		delete(s.Sessions, sessionID)
		s.mu.Unlock()
		klog.Infof("Player session %s disconnected", sessionID)
		s.broadcast(game.MsgTypeEnded, game.EndedMessage{SessionID: sessionID})
	}()

	for {
		var msg game.WsMessage
		if err := wsjson.Read(ctx, conn, &msg); err != nil {
			klog.V(1).Infof("servePlayer: read ended for %s: %v", sessionID, err)
			return
		}
		if msg.Type != game.MsgTypeProgress {
			klog.Warningf("servePlayer: unexpected message %s from %s", msg.Type, sessionID)
			continue
		}
		p, err := msg.Parse()
		if err != nil {
			klog.Errorf("servePlayer: failed to parse progress from %s: %v", sessionID, err)
			continue
		}
		progress := p.(*game.ProgressMessage).Progress
		// A player only reports on its own session.
		progress.SessionID = sessionID

		s.mu.Lock()
		previous := s.Sessions[sessionID]
		s.Sessions[sessionID] = progress
		s.mu.Unlock()

		if progress.Won && !previous.Won {
			klog.Infof("Session %s won, %d hints left", sessionID, progress.HintsLeft)
		} else {
			klog.V(1).Infof("Progress: %s", progress)
		}
		s.broadcast(game.MsgTypeProgress, game.ProgressMessage{Progress: progress})
	}
}

func (s *ServerState) serveWatcher(ctx context.Context, conn *websocket.Conn) {
	s.mu.Lock()
	s.watchers[conn] = struct{}{}
	sessions := s.sortedSessionsLocked()
	s.mu.Unlock()
	klog.Infof("Watcher connected, %d live sessions", len(sessions))

	defer func() {
		s.mu.Lock()
		delete(s.watchers, conn)
		s.mu.Unlock()
		klog.Infof("Watcher disconnected")
	}()

	if err := s.send(ctx, conn, game.MsgTypeSessions, game.SessionsMessage{Sessions: sessions}); err != nil {
		klog.Errorf("serveWatcher: failed to send sessions: %v", err)
		return
	}

	// Watchers only listen: wait until the client goes away.
	ctx = conn.CloseRead(ctx)
	<-ctx.Done()
}

func (s *ServerState) sortedSessionsLocked() []game.Progress {
	sessions := make([]game.Progress, 0, len(s.Sessions))
	for _, p := range s.Sessions {
		sessions = append(sessions, p)
	}
	sort.Slice(sessions, func(i, j int) bool { return sessions[i].SessionID < sessions[j].SessionID })
	return sessions
}

// broadcast sends a message to every watcher. Failures are logged, and the
// failing watcher is dropped by its own handler once its connection closes.
func (s *ServerState) broadcast(msgType game.MessageType, payload any) {
	s.mu.RLock()
	watchers := make([]*websocket.Conn, 0, len(s.watchers))
	for conn := range s.watchers {
		watchers = append(watchers, conn)
	}
	s.mu.RUnlock()

	for _, conn := range watchers {
		if err := s.send(context.Background(), conn, msgType, payload); err != nil {
			klog.Errorf("broadcast: failed to send %s: %v", msgType, err)
		}
	}
}

func (s *ServerState) send(ctx context.Context, conn *websocket.Conn, msgType game.MessageType, payload any) error {
	msg, err := game.NewWsMessage(msgType, payload)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	return wsjson.Write(ctx, conn, msg)
}

func (s *ServerState) sendError(ctx context.Context, conn *websocket.Conn, message string) {
	klog.Warningf("HandleWS: %s", message)
	if err := s.send(ctx, conn, game.MsgTypeError, game.ErrorMessage{Message: message}); err != nil {
		klog.Errorf("HandleWS: failed to send error: %v", err)
	}
	conn.Close(websocket.StatusPolicyViolation, message)
}

// CloseAll closes every client connection, used on shutdown.
func (s *ServerState) CloseAll() {
	s.mu.RLock()
	conns := make([]*websocket.Conn, 0, len(s.conns))
	for conn := range s.conns {
		conns = append(conns, conn)
	}
	s.mu.RUnlock()

	for _, conn := range conns {
		conn.Close(websocket.StatusGoingAway, "server shutting down")
	}
}
