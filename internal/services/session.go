package services

import (
	"sync"

	"github.com/yukikurage/leave-request-manager/internal/models"
)

// Identity is the authenticated user as seen by the rest of the application.
type Identity struct {
	UserID       uint64      `json:"id"`
	Username     string      `json:"username"`
	EmployeeName string      `json:"employee_name"`
	Role         models.Role `json:"role"`
}

func identityOf(user *models.User) Identity {
	return Identity{
		UserID:       user.ID,
		Username:     user.Username,
		EmployeeName: user.EmployeeName,
		Role:         user.Role,
	}
}

// Session holds at most one authenticated identity. Callers create one per
// client (a desktop process, an HTTP request) and pass it explicitly.
type Session struct {
	mu       sync.RWMutex
	identity *Identity
}

// NewSession returns an empty session.
func NewSession() *Session {
	return &Session{}
}

// Current returns the session identity, if any.
func (s *Session) Current() (Identity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.identity == nil {
		return Identity{}, false
	}
	return *s.identity, true
}

// HasRole reports whether an identity is present and has the given role.
func (s *Session) HasRole(role models.Role) bool {
	identity, ok := s.Current()
	return ok && identity.Role == role
}

func (s *Session) set(identity Identity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.identity = &identity
}

func (s *Session) clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.identity = nil
}
