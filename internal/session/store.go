// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MaxMessages is the maximum number of messages kept in a session.
// When exceeded, the oldest messages are dropped.
const MaxMessages = 1000

// =============================================================================
// MESSAGE TYPES
// =============================================================================

// Role identifies who produced a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one entry in a session.
type Message struct {
	ID      string
	Role    Role
	Content string
	Time    time.Time
}

// Session is a point-in-time copy of the current session.
type Session struct {
	ID        string
	StartedAt time.Time
	Messages  []Message
}

// =============================================================================
// STORE
// =============================================================================

// Store holds the current session. It is safe for concurrent use.
type Store struct {
	mu        sync.Mutex
	id        string
	startedAt time.Time
	messages  []Message
	now       func() time.Time
}

// NewStore creates a store with a fresh session.
func NewStore() *Store {
	s := &Store{now: time.Now}
	s.reset()
	return s
}

func (s *Store) reset() {
	s.id = uuid.NewString()
	s.startedAt = s.now()
	s.messages = nil
}

// SessionID returns the current session ID.
func (s *Store) SessionID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.id
}

// AddMessage appends a message with the given role.
func (s *Store) AddMessage(role Role, content string) Message {
	return s.add(Message{Role: role, Content: content})
}

func (s *Store) add(msg Message) Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	msg.ID = uuid.NewString()
	msg.Time = s.now()
	s.messages = append(s.messages, msg)

	if over := len(s.messages) - MaxMessages; over > 0 {
		s.messages = append([]Message(nil), s.messages[over:]...)
	}
	return msg
}

// CurrentSession returns a copy of the current session.
func (s *Store) CurrentSession() Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	msgs := make([]Message, len(s.messages))
	copy(msgs, s.messages)
	return Session{ID: s.id, StartedAt: s.startedAt, Messages: msgs}
}

// ClearSession discards all messages and starts a new session. It returns
// the new session ID.
func (s *Store) ClearSession() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reset()
	return s.id
}

// Len returns the number of messages in the current session.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.messages)
}

// =============================================================================
// SESSION STATUS
// =============================================================================

// Status summarizes the current session for status displays.
type Status struct {
	SessionID    string
	StartedAt    time.Time
	Duration     time.Duration
	MessageCount int
}

// GetStatus returns the current session status.
func (s *Store) GetStatus() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Status{
		SessionID:    s.id,
		StartedAt:    s.startedAt,
		Duration:     s.now().Sub(s.startedAt),
		MessageCount: len(s.messages),
	}
}

// ShortID returns the first eight characters of a session ID.
func ShortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}

// FormatDuration returns a human-readable duration string.
func FormatDuration(d time.Duration) string {
	if d < time.Minute {
		return strconv.Itoa(int(d.Seconds())) + "s"
	}
	if d >= time.Hour {
		hours := int(d.Hours())
		mins := int(d.Minutes()) % 60
		return strconv.Itoa(hours) + "h " + strconv.Itoa(mins) + "m"
	}
	mins := int(d.Minutes())
	secs := int(d.Seconds()) % 60
	if secs == 0 {
		return strconv.Itoa(mins) + "m"
	}
	return strconv.Itoa(mins) + "m " + strconv.Itoa(secs) + "s"
}
