package cart

import (
	"sync"
	"time"
)

// Store mapeia o id do cookie assinado para o carrinho. Carrinhos sem
// toque por TTL são varridos pelo janitor.
type Store struct {
	mu    sync.Mutex
	carts map[string]*Cart
	ttl   time.Duration
	now   func() time.Time
}

const DefaultTTL = 24 * time.Hour

func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{
		carts: make(map[string]*Cart),
		ttl:   ttl,
		now:   time.Now,
	}
}

// Get devolve o carrinho da sessão, criando um vazio na primeira visita.
func (s *Store) Get(id string) *Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.carts[id]
	if !ok {
		c = &Cart{}
		s.carts[id] = c
	}
	c.touched = s.now()
	return c
}

// Mutate roda fn segurando o lock do store. Todo acesso de escrita ao
// carrinho passa por aqui; handlers nunca seguram um *Cart entre
// requests.
func (s *Store) Mutate(id string, fn func(*Cart) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.carts[id]
	if !ok {
		c = &Cart{}
		s.carts[id] = c
	}
	c.touched = s.now()
	return fn(c)
}

// View roda fn com uma cópia rasa do carrinho, sem estender o TTL.
func (s *Store) View(id string, fn func(Cart)) {
	s.mu.Lock()
	c, ok := s.carts[id]
	var cp Cart
	if ok {
		cp = *c
		cp.Items = append([]Item(nil), c.Items...)
	}
	s.mu.Unlock()
	fn(cp)
}

// Sweep remove carrinhos expirados e devolve quantos caíram.
func (s *Store) Sweep() int {
	cutoff := s.now().Add(-s.ttl)
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, c := range s.carts {
		if c.touched.Before(cutoff) {
			delete(s.carts, id)
			removed++
		}
	}
	return removed
}

// Janitor varre periodicamente até o canal done fechar.
func (s *Store) Janitor(interval time.Duration, done <-chan struct{}) {
	if interval <= 0 {
		interval = time.Hour
	}
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-t.C:
			s.Sweep()
		case <-done:
			return
		}
	}
}
