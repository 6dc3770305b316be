// File: services/adminsession/session.go
package adminsession

import (
	"crypto/subtle"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// ErrUnauthorized is returned on any failed login. It carries no detail
// about how close the attempt was.
var ErrUnauthorized = errors.New("unauthorized")

// Service issues, validates and revokes admin session tokens. There is a
// single admin identity; a token is an opaque value delivered via cookie.
type Service interface {
	Login(password string) (string, error)
	Logout(token string)
	Authorize(token string) bool
}

// MemoryService keeps sessions in process memory, so every session dies
// with the process. That is deliberate: admin sessions are never
// persisted or shared.
type MemoryService struct {
	mu     sync.Mutex
	tokens map[string]time.Time

	secret string
	hash   string
}

// New builds a session service. hash (bcrypt) takes precedence over the
// plain secret; with both empty, Login always fails.
func New(secret, hash string) *MemoryService {
	return &MemoryService{
		tokens: make(map[string]time.Time),
		secret: secret,
		hash:   hash,
	}
}

func (s *MemoryService) Login(password string) (string, error) {
	if !s.verify(password) {
		return "", ErrUnauthorized
	}
	token := uuid.New().String()
	s.mu.Lock()
	s.tokens[token] = time.Now()
	s.mu.Unlock()
	return token, nil
}

func (s *MemoryService) verify(password string) bool {
	if s.hash != "" {
		return bcrypt.CompareHashAndPassword([]byte(s.hash), []byte(password)) == nil
	}
	if s.secret == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(s.secret), []byte(password)) == 1
}

func (s *MemoryService) Logout(token string) {
	s.mu.Lock()
	delete(s.tokens, token)
	s.mu.Unlock()
}

func (s *MemoryService) Authorize(token string) bool {
	if token == "" {
		return false
	}
	s.mu.Lock()
	_, ok := s.tokens[token]
	s.mu.Unlock()
	return ok
}
