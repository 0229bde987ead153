package store

import (
	"context"
	"sync"

	"gymdesk/internal/identity/models"
	"gymdesk/pkg/domain"
	"gymdesk/pkg/platform/sentinel"
)

// InMemoryStore keeps identity records in maps. The reverse link map
// makes the member-side uniqueness check O(1).
type InMemoryStore struct {
	mu       sync.RWMutex
	profiles map[domain.Principal]*models.Profile
	roles    map[domain.Principal]domain.Role
	links    map[domain.Principal]domain.MemberID
	byMember map[domain.MemberID]domain.Principal
}

func NewInMemory() *InMemoryStore {
	return &InMemoryStore{
		profiles: make(map[domain.Principal]*models.Profile),
		roles:    make(map[domain.Principal]domain.Role),
		links:    make(map[domain.Principal]domain.MemberID),
		byMember: make(map[domain.MemberID]domain.Principal),
	}
}

func (s *InMemoryStore) SaveProfile(_ context.Context, principal domain.Principal, profile *models.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := *profile
	s.profiles[principal] = &p
	return nil
}

func (s *InMemoryStore) FindProfile(_ context.Context, principal domain.Principal) (*models.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if p, ok := s.profiles[principal]; ok {
		out := *p
		return &out, nil
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemoryStore) AssignRole(_ context.Context, principal domain.Principal, role domain.Role) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.roles[principal] = role
	return nil
}

func (s *InMemoryStore) FindRole(_ context.Context, principal domain.Principal) (domain.Role, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if role, ok := s.roles[principal]; ok {
		return role, nil
	}
	return "", sentinel.ErrNotFound
}

func (s *InMemoryStore) LinkMember(_ context.Context, principal domain.Principal, memberID domain.MemberID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.byMember[memberID]; ok && existing != principal {
		return sentinel.ErrConflict
	}

	// Replacing this principal's link frees its previous member.
	if prev, ok := s.links[principal]; ok {
		delete(s.byMember, prev)
	}

	s.links[principal] = memberID
	s.byMember[memberID] = principal
	return nil
}

func (s *InMemoryStore) FindLink(_ context.Context, principal domain.Principal) (domain.MemberID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if memberID, ok := s.links[principal]; ok {
		return memberID, nil
	}
	return 0, sentinel.ErrNotFound
}
