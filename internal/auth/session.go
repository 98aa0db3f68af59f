package auth

import (
	"encoding/json"
	"fmt"
)

// SessionKey is the secure-store key holding the local session record.
const SessionKey = "userSession"

// Session is the record persisted for the signed-in user.
type Session struct {
	UserID int64  `json:"userId"`
	Email  string `json:"email"`
}

// Encode serializes the session for the secure store.
func (s Session) Encode() (string, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("encoding session: %w", err)
	}
	return string(b), nil
}

// DecodeSession parses a stored session record.
func DecodeSession(raw string) (Session, error) {
	var s Session
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return Session{}, fmt.Errorf("decoding session: %w", err)
	}
	if s.UserID <= 0 {
		return Session{}, fmt.Errorf("decoding session: missing user id")
	}
	return s, nil
}
