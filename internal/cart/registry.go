package cart

import "sync"

// Session owns one cashier's cart and serializes all access to it. The
// cart itself assumes a single caller; the session mutex is the
// serialization point that makes that assumption hold under an HTTP
// server.
type Session struct {
	mu   sync.Mutex
	cart *Cart
}

// Do runs fn with exclusive access to the session's cart.
func (s *Session) Do(fn func(c *Cart) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.cart)
}

// View returns a consistent snapshot of the session's cart.
func (s *Session) View() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Snapshot()
}

// Registry hands out one cart session per cashier, created on demand.
type Registry struct {
	mu       sync.Mutex
	sessions map[int]*Session
}

// NewRegistry creates an empty session registry.
func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[int]*Session),
	}
}

// Session returns the cart session for the given cashier, creating an
// empty one on first use.
func (r *Registry) Session(cashierID int) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.sessions[cashierID]
	if !ok {
		session = &Session{cart: New()}
		r.sessions[cashierID] = session
	}
	return session
}
