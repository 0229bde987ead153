package store

import (
	"context"
	"sync"
	"time"

	"gymdesk/internal/payment/models"
	"gymdesk/pkg/domain"
)

// InMemoryStore keeps the payment ledger in a slice per member.
type InMemoryStore struct {
	mu       sync.RWMutex
	byMember map[domain.MemberID][]*models.Payment
	nextID   int64
	clock    func() time.Time
}

func NewInMemory() *InMemoryStore {
	return &InMemoryStore{
		byMember: make(map[domain.MemberID][]*models.Payment),
		clock:    time.Now,
	}
}

// WithClock replaces the store clock. Tests use it to pin timestamps.
func (s *InMemoryStore) WithClock(clock func() time.Time) *InMemoryStore {
	s.clock = clock
	return s
}

func (s *InMemoryStore) Append(_ context.Context, memberID domain.MemberID, amount float64, method, notes string) (*models.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	p := &models.Payment{
		ID:       domain.PaymentID(s.nextID),
		MemberID: memberID,
		Amount:   amount,
		Method:   method,
		Notes:    notes,
		Date:     s.clock(),
	}
	s.byMember[memberID] = append(s.byMember[memberID], p)
	return copyPayment(p), nil
}

func (s *InMemoryStore) ListByMember(_ context.Context, memberID domain.MemberID) ([]*models.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := s.byMember[memberID]
	out := make([]*models.Payment, 0, len(records))
	for _, p := range records {
		out = append(out, copyPayment(p))
	}
	return out, nil
}

func copyPayment(p *models.Payment) *models.Payment {
	out := *p
	return &out
}
