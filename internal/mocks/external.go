package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"github.com/dtroode/eventhub-server/internal/model"
)

var (
	_ model.EventCatalog = (*EventCatalog)(nil)
	_ model.Storage      = (*Storage)(nil)
)

type EventCatalog struct {
	mock.Mock
}

func (m *EventCatalog) Search(ctx context.Context, query model.EventQuery) (model.EventPage, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(model.EventPage), args.Error(1)
}

func (m *EventCatalog) GetByID(ctx context.Context, id string) (model.EventDetail, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.EventDetail), args.Error(1)
}

type Storage struct {
	mock.Mock
}

func (m *Storage) Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error {
	args := m.Called(ctx, key, reader, size, contentType)
	return args.Error(0)
}

func (m *Storage) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	args := m.Called(ctx, key)
	rc, _ := args.Get(0).(io.ReadCloser)
	return rc, args.Error(1)
}

func (m *Storage) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *Storage) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}
