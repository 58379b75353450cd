// Package mocks holds testify mocks of the model interfaces.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/dtroode/eventhub-server/internal/model"
)

var (
	_ model.UserStore   = (*UserStore)(nil)
	_ model.TicketStore = (*TicketStore)(nil)
	_ model.ReviewStore = (*ReviewStore)(nil)
)

type UserStore struct {
	mock.Mock
}

func (m *UserStore) GetByEmail(ctx context.Context, email string) (model.User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *UserStore) GetByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *UserStore) Create(ctx context.Context, user model.User) (model.User, error) {
	args := m.Called(ctx, user)
	if fn, ok := args.Get(0).(func(context.Context, model.User) model.User); ok {
		return fn(ctx, user), args.Error(1)
	}
	return args.Get(0).(model.User), args.Error(1)
}

func (m *UserStore) UpdateProfile(ctx context.Context, id uuid.UUID, name, email string) (model.User, error) {
	args := m.Called(ctx, id, name, email)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *UserStore) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	args := m.Called(ctx, id, passwordHash)
	return args.Error(0)
}

func (m *UserStore) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type TicketStore struct {
	mock.Mock
}

func (m *TicketStore) Create(ctx context.Context, ticket model.Ticket) (model.Ticket, error) {
	args := m.Called(ctx, ticket)
	if fn, ok := args.Get(0).(func(context.Context, model.Ticket) model.Ticket); ok {
		return fn(ctx, ticket), args.Error(1)
	}
	return args.Get(0).(model.Ticket), args.Error(1)
}

func (m *TicketStore) GetActiveByUserID(ctx context.Context, userID uuid.UUID) ([]model.Ticket, error) {
	args := m.Called(ctx, userID)
	tickets, _ := args.Get(0).([]model.Ticket)
	return tickets, args.Error(1)
}

func (m *TicketStore) Cancel(ctx context.Context, id, userID uuid.UUID) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

type ReviewStore struct {
	mock.Mock
}

func (m *ReviewStore) Create(ctx context.Context, review model.Review) (model.Review, error) {
	args := m.Called(ctx, review)
	if fn, ok := args.Get(0).(func(context.Context, model.Review) model.Review); ok {
		return fn(ctx, review), args.Error(1)
	}
	return args.Get(0).(model.Review), args.Error(1)
}

func (m *ReviewStore) GetByEventID(ctx context.Context, eventID string) ([]model.Review, error) {
	args := m.Called(ctx, eventID)
	reviews, _ := args.Get(0).([]model.Review)
	return reviews, args.Error(1)
}
