package testutil

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/eventhub-server/internal/model"
)

// UserStore is an in-memory model.UserStore enforcing email uniqueness.
type UserStore struct {
	mu    sync.Mutex
	users map[uuid.UUID]model.User
}

func NewUserStore() *UserStore {
	return &UserStore{users: map[uuid.UUID]model.User{}}
}

func (s *UserStore) GetByEmail(_ context.Context, email string) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == model.NormalizeEmail(email) {
			return u, nil
		}
	}
	return model.User{}, model.ErrNotFound
}

func (s *UserStore) GetByID(_ context.Context, id uuid.UUID) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return model.User{}, model.ErrNotFound
	}
	return u, nil
}

func (s *UserStore) Create(_ context.Context, user model.User) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.emailTaken(user.Email, uuid.Nil) {
		return model.User{}, model.ErrConflict
	}
	s.users[user.ID] = user
	return user, nil
}

func (s *UserStore) UpdateProfile(_ context.Context, id uuid.UUID, name, email string) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return model.User{}, model.ErrNotFound
	}
	if s.emailTaken(email, id) {
		return model.User{}, model.ErrConflict
	}
	u.Name, u.Email, u.UpdatedAt = name, email, time.Now()
	s.users[id] = u
	return u, nil
}

func (s *UserStore) UpdatePassword(_ context.Context, id uuid.UUID, passwordHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return model.ErrNotFound
	}
	u.PasswordHash = passwordHash
	s.users[id] = u
	return nil
}

func (s *UserStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return model.ErrNotFound
	}
	delete(s.users, id)
	return nil
}

func (s *UserStore) emailTaken(email string, except uuid.UUID) bool {
	for id, u := range s.users {
		if id != except && u.Email == email {
			return true
		}
	}
	return false
}

// TicketStore is an in-memory model.TicketStore that allows one reserved
// ticket per (user, event), checked and inserted under one lock.
type TicketStore struct {
	mu      sync.Mutex
	tickets map[uuid.UUID]model.Ticket
}

func NewTicketStore() *TicketStore {
	return &TicketStore{tickets: map[uuid.UUID]model.Ticket{}}
}

func (s *TicketStore) Create(_ context.Context, ticket model.Ticket) (model.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.tickets {
		if t.UserID == ticket.UserID && t.EventID == ticket.EventID && t.Status == model.TicketStatusReserved {
			return model.Ticket{}, model.ErrConflict
		}
	}
	s.tickets[ticket.ID] = ticket
	return ticket, nil
}

func (s *TicketStore) GetActiveByUserID(_ context.Context, userID uuid.UUID) ([]model.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []model.Ticket{}
	for _, t := range s.tickets {
		if t.UserID == userID && t.Status == model.TicketStatusReserved {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ReservedAt.After(out[j].ReservedAt) })
	return out, nil
}

func (s *TicketStore) Cancel(_ context.Context, id, userID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tickets[id]
	if !ok || t.UserID != userID || t.Status != model.TicketStatusReserved {
		return model.ErrNotFound
	}
	now := time.Now()
	t.Status, t.CancelledAt = model.TicketStatusCancelled, &now
	s.tickets[id] = t
	return nil
}

// ReviewStore is an in-memory model.ReviewStore.
type ReviewStore struct {
	mu      sync.Mutex
	reviews []model.Review
}

func NewReviewStore() *ReviewStore {
	return &ReviewStore{}
}

func (s *ReviewStore) Create(_ context.Context, review model.Review) (model.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reviews = append(s.reviews, review)
	return review, nil
}

func (s *ReviewStore) GetByEventID(_ context.Context, eventID string) ([]model.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []model.Review{}
	for i := len(s.reviews) - 1; i >= 0; i-- {
		if s.reviews[i].EventID == eventID {
			out = append(out, s.reviews[i])
		}
	}
	return out, nil
}
