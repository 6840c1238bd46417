package enrollment

import (
	"sync"

	"github.com/google/uuid"

	"github.com/okapi-money/okapi/internal/credential"
	"github.com/okapi-money/okapi/internal/notification"
)

// Service tracks in-flight drafts for the hosting surface, keyed by an
// opaque enrollment ID. Each draft is owned by exactly one Machine.
type Service struct {
	mu       sync.Mutex
	machines map[string]*Machine

	accounts *credential.Store
	notifier notification.Notifier
	opts     []Option
}

// NewService builds a draft registry. The options are applied to every
// machine it creates.
func NewService(accounts *credential.Store, notifier notification.Notifier, opts ...Option) *Service {
	return &Service{
		machines: make(map[string]*Machine),
		accounts: accounts,
		notifier: notifier,
		opts:     opts,
	}
}

// Begin starts a fresh enrollment and returns its ID and machine.
func (s *Service) Begin() (string, *Machine) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := uuid.New().String()
	m := NewMachine(s.accounts, s.notifier, s.opts...)
	s.machines[id] = m
	return id, m
}

// Get resolves an enrollment ID to its machine.
func (s *Service) Get(id string) (*Machine, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.machines[id]
	return m, ok
}

// Remove discards a draft, cancelling its timers first. Safe to call for
// unknown or already-removed IDs.
func (s *Service) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if m, ok := s.machines[id]; ok {
		m.Close()
		delete(s.machines, id)
	}
}
