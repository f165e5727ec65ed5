package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"store-rating/constants"
	"store-rating/dto"
)

// Session is the authenticated state of a client: the bearer token and the
// user summary returned at login.
type Session struct {
	Token string          `json:"token"`
	User  dto.UserSummary `json:"user"`
}

// DashboardPath is the route group the session's role may use, or "" when
// the role is unknown.
func (s *Session) DashboardPath() string {
	if s == nil {
		return ""
	}
	return constants.RoleRouteGroups[s.User.Role]
}

// SessionStore persists a session between runs.
type SessionStore interface {
	Load() (*Session, error)
	Save(s *Session) error
	Clear() error
}

// FileStore keeps the session as JSON in a single file.
type FileStore struct {
	Path string
}

// Load returns nil, nil when no session has been saved.
func (f FileStore) Load() (*Session, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", f.Path, err)
	}
	if s.Token == "" {
		return nil, nil
	}
	return &s, nil
}

func (f FileStore) Save(s *Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(f.Path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(f.Path, data, 0o600)
}

func (f FileStore) Clear() error {
	if err := os.Remove(f.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// MemoryStore keeps the session in memory only.
type MemoryStore struct {
	session *Session
}

func (m *MemoryStore) Load() (*Session, error) { return m.session, nil }

func (m *MemoryStore) Save(s *Session) error {
	m.session = s
	return nil
}

func (m *MemoryStore) Clear() error {
	m.session = nil
	return nil
}
