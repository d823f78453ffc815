package game

import (
	"encoding/json"
	"fmt"
)

// Message type for WebSocket communication between client and server.
type MessageType string

const (
	MsgTypeHello    MessageType = "hello"    // Client identifies its role
	MsgTypeProgress MessageType = "progress" // Player reports progress; server forwards it to watchers
	MsgTypeSessions MessageType = "sessions" // Server sends all live sessions to a new watcher
	MsgTypeEnded    MessageType = "ended"    // Server tells watchers a session disconnected
	MsgTypeError    MessageType = "error"    // Server sends an error message
)

// WsMessage represents a WebSocket message.
type WsMessage struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// NewWsMessage creates a new WsMessage with a marshaled payload.
func NewWsMessage(msgType MessageType, payload any) (WsMessage, error) {
	if payload == nil {
		return WsMessage{Type: msgType}, nil
	}
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return WsMessage{}, fmt.Errorf("failed to marshal payload: %w", err)
	}
	return WsMessage{
		Type:    msgType,
		Payload: payloadBytes,
	}, nil
}

// Parse unmarshals the message payload into one of the message types (HelloMessage, ProgressMessage, etc.)
func (m *WsMessage) Parse() (any, error) {
	var target any
	switch m.Type {
	case MsgTypeHello:
		target = &HelloMessage{}
	case MsgTypeProgress:
		target = &ProgressMessage{}
	case MsgTypeSessions:
		target = &SessionsMessage{}
	case MsgTypeEnded:
		target = &EndedMessage{}
	case MsgTypeError:
		target = &ErrorMessage{}
	default:
		return nil, fmt.Errorf("unknown message type: %s", m.Type)
	}

	if len(m.Payload) == 0 {
		return target, nil
	}

	err := json.Unmarshal(m.Payload, target)
	return target, err
}

// HelloMessage is the payload for MsgTypeHello
type HelloMessage struct {
	Role      Role   `json:"role"`
	SessionID string `json:"session_id,omitempty"` // Only for RolePlayer
}

// ProgressMessage is the payload for MsgTypeProgress
type ProgressMessage struct {
	Progress Progress `json:"progress"`
}

// SessionsMessage is the payload for MsgTypeSessions
type SessionsMessage struct {
	Sessions []Progress `json:"sessions"`
}

// EndedMessage is the payload for MsgTypeEnded
type EndedMessage struct {
	SessionID string `json:"session_id"`
}

// ErrorMessage is the payload for MsgTypeError
type ErrorMessage struct {
	Message string `json:"message"`
}
