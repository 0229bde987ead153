package store

import (
	"context"
	"sync"
	"time"

	"gymdesk/internal/member/models"
	"gymdesk/pkg/domain"
	"gymdesk/pkg/platform/sentinel"
)

// InMemoryStore keeps members in a map. It backs unit tests and
// single-node deployments without a database.
type InMemoryStore struct {
	mu      sync.RWMutex
	members map[domain.MemberID]*models.Member
	nextID  int64
	clock   func() time.Time
}

func NewInMemory() *InMemoryStore {
	return &InMemoryStore{
		members: make(map[domain.MemberID]*models.Member),
		clock:   time.Now,
	}
}

// WithClock replaces the store clock. Tests use it to pin timestamps.
func (s *InMemoryStore) WithClock(clock func() time.Time) *InMemoryStore {
	s.clock = clock
	return s
}

func (s *InMemoryStore) Create(_ context.Context, name, contact string) (*models.Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	now := s.clock()
	m := &models.Member{
		ID:        domain.MemberID(s.nextID),
		Name:      name,
		Contact:   contact,
		Status:    models.StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.members[m.ID] = m
	return copyMember(m), nil
}

func (s *InMemoryStore) Update(_ context.Context, id domain.MemberID, name, contact string) (*models.Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.members[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}

	// UpdatedAt must strictly advance even when two updates land within
	// one clock tick.
	now := s.clock()
	if !now.After(m.UpdatedAt) {
		now = m.UpdatedAt.Add(time.Nanosecond)
	}

	m.Name = name
	m.Contact = contact
	m.UpdatedAt = now
	return copyMember(m), nil
}

func (s *InMemoryStore) FindByID(_ context.Context, id domain.MemberID) (*models.Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if m, ok := s.members[id]; ok {
		return copyMember(m), nil
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemoryStore) List(_ context.Context) ([]*models.Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.Member, 0, len(s.members))
	for _, m := range s.members {
		out = append(out, copyMember(m))
	}
	return out, nil
}

func (s *InMemoryStore) Exists(_ context.Context, id domain.MemberID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.members[id]
	return ok, nil
}

// copyMember keeps callers from mutating store state through the
// returned pointer.
func copyMember(m *models.Member) *models.Member {
	out := *m
	return &out
}
