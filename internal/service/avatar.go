package service

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"github.com/dtroode/eventhub-server/internal/logger"
	"github.com/dtroode/eventhub-server/internal/model"
)

// MaxAvatarSize is the largest accepted avatar upload in bytes.
const MaxAvatarSize = 2 << 20

type Avatar struct {
	storage model.Storage
	logger  *logger.Logger
}

func NewAvatar(storage model.Storage, logger *logger.Logger) *Avatar {
	return &Avatar{storage: storage, logger: logger}
}

func avatarKey(userID uuid.UUID) string {
	return "avatars/" + userID.String()
}

func (s *Avatar) Upload(ctx context.Context, userID uuid.UUID, reader io.Reader, size int64, contentType string) error {
	if !strings.HasPrefix(contentType, "image/") {
		return model.NewValidationError("Avatar must be an image")
	}
	if size <= 0 || size > MaxAvatarSize {
		return model.NewValidationError("Avatar must be between 1 byte and 2 MiB")
	}

	if err := s.storage.Upload(ctx, avatarKey(userID), reader, size, contentType); err != nil {
		return fmt.Errorf("failed to upload avatar: %w", err)
	}

	s.logger.Info("Avatar service: avatar uploaded", "user_id", userID, "size", size)

	return nil
}

// Download returns the avatar stream; the caller closes it.
func (s *Avatar) Download(ctx context.Context, userID uuid.UUID) (io.ReadCloser, error) {
	ok, err := s.storage.Exists(ctx, avatarKey(userID))
	if err != nil {
		return nil, fmt.Errorf("failed to check avatar: %w", err)
	}
	if !ok {
		return nil, model.ErrNotFound
	}

	rc, err := s.storage.Download(ctx, avatarKey(userID))
	if err != nil {
		return nil, fmt.Errorf("failed to download avatar: %w", err)
	}
	return rc, nil
}

func (s *Avatar) Remove(ctx context.Context, userID uuid.UUID) error {
	if err := s.storage.Delete(ctx, avatarKey(userID)); err != nil {
		return fmt.Errorf("failed to delete avatar: %w", err)
	}
	return nil
}
