package store

import (
	"context"
	"sync"
	"time"

	"gymdesk/internal/attendance/models"
	"gymdesk/pkg/domain"
)

// InMemoryStore keeps the check-in ledger in a slice per member.
type InMemoryStore struct {
	mu       sync.RWMutex
	byMember map[domain.MemberID][]*models.CheckIn
	nextID   int64
	lastTS   time.Time
	clock    func() time.Time
}

func NewInMemory() *InMemoryStore {
	return &InMemoryStore{
		byMember: make(map[domain.MemberID][]*models.CheckIn),
		clock:    time.Now,
	}
}

// WithClock replaces the store clock. Tests use it to pin timestamps.
func (s *InMemoryStore) WithClock(clock func() time.Time) *InMemoryStore {
	s.clock = clock
	return s
}

func (s *InMemoryStore) Append(_ context.Context, memberID domain.MemberID) (*models.CheckIn, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Timestamps never go backwards, even if the wall clock does. Two
	// appends within one tick share an instant but still get distinct ids.
	ts := s.clock()
	if ts.Before(s.lastTS) {
		ts = s.lastTS
	}
	s.lastTS = ts

	s.nextID++
	c := &models.CheckIn{
		ID:        domain.CheckInID(s.nextID),
		MemberID:  memberID,
		Timestamp: ts,
	}
	s.byMember[memberID] = append(s.byMember[memberID], c)
	return copyCheckIn(c), nil
}

func (s *InMemoryStore) ListByMember(_ context.Context, memberID domain.MemberID) ([]*models.CheckIn, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := s.byMember[memberID]
	out := make([]*models.CheckIn, 0, len(records))
	for _, c := range records {
		out = append(out, copyCheckIn(c))
	}
	return out, nil
}

func copyCheckIn(c *models.CheckIn) *models.CheckIn {
	out := *c
	return &out
}
