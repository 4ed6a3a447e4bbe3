package auth

import (
	"errors"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/Inovatum/site-vendas/internal/shared/apperr"
)

// SessionStore guarda as sessões vivas por jti. O token só vale se a
// assinatura bater E a sessão ainda existir — logout derruba na hora,
// sem esperar a expiração do JWT.
type SessionStore interface {
	Save(id string, ident Identity, expiresAt time.Time)
	Load(id string) (Identity, bool)
	Clear(id string)
}

type memorySession struct {
	ident     Identity
	expiresAt time.Time
}

type MemorySessionStore struct {
	mu       sync.Mutex
	sessions map[string]memorySession
	now      func() time.Time
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: make(map[string]memorySession), now: time.Now}
}

func (s *MemorySessionStore) Save(id string, ident Identity, expiresAt time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[id] = memorySession{ident: ident, expiresAt: expiresAt}
}

func (s *MemorySessionStore) Load(id string) (Identity, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return Identity{}, false
	}
	if s.now().After(sess.expiresAt) {
		delete(s.sessions, id)
		return Identity{}, false
	}
	return sess.ident, true
}

func (s *MemorySessionStore) Clear(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

type claims struct {
	Username string `json:"username"`
	FullName string `json:"full_name,omitempty"`
	Source   string `json:"source,omitempty"`
	AdminID  int64  `json:"admin_id,omitempty"`
	jwt.RegisteredClaims
}

// Sessions emite e verifica os tokens do painel.
type Sessions struct {
	secret []byte
	ttl    time.Duration
	store  SessionStore
	now    func() time.Time
}

func NewSessions(secret string, ttl time.Duration, store SessionStore) *Sessions {
	return &Sessions{secret: []byte(secret), ttl: ttl, store: store, now: time.Now}
}

// Issue assina um JWT HS256 e registra a sessão.
func (s *Sessions) Issue(ident Identity) (string, time.Time, error) {
	now := s.now()
	expiresAt := now.Add(s.ttl)
	id := uuid.NewString()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Username: ident.Username,
		FullName: ident.FullName,
		Source:   ident.Source,
		AdminID:  ident.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        id,
			Subject:   ident.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	})
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, err
	}

	s.store.Save(id, ident, expiresAt)
	return signed, expiresAt, nil
}

// Verify valida assinatura, expiração e presença no store.
func (s *Sessions) Verify(token string) (Identity, error) {
	parsed, err := jwt.ParseWithClaims(token, &claims{}, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil || !parsed.Valid {
		return Identity{}, apperr.UnauthorizedErr("Sessão inválida ou expirada.")
	}
	c, ok := parsed.Claims.(*claims)
	if !ok || c.ID == "" {
		return Identity{}, apperr.UnauthorizedErr("Sessão inválida ou expirada.")
	}
	ident, ok := s.store.Load(c.ID)
	if !ok {
		return Identity{}, apperr.UnauthorizedErr("Sessão encerrada. Entre novamente.")
	}
	return ident, nil
}

// Revoke derruba a sessão do token (logout). Token ilegível é ignorado.
func (s *Sessions) Revoke(token string) {
	parsed, err := jwt.ParseWithClaims(token, &claims{}, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		return
	}
	if c, ok := parsed.Claims.(*claims); ok && c.ID != "" {
		s.store.Clear(c.ID)
	}
}
