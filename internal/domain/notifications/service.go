package notifications

import (
	"context"
	"errors"
	"strings"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
)

const (
	// DefaultFeedLimit limita el feed de no leídas (modelo poll, sin push).
	DefaultFeedLimit = 10
	MaxFeedLimit     = 50
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Feed devuelve las no leídas más recientes y el conteo total de no leídas.
func (s *Service) Feed(ctx context.Context, userID string, limit int) ([]Notification, int, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, 0, ErrInvalidInput
	}
	if limit < 1 {
		limit = DefaultFeedLimit
	}
	if limit > MaxFeedLimit {
		limit = MaxFeedLimit
	}

	items, err := s.repo.ListUnreadByUser(ctx, userID, limit)
	if err != nil {
		return nil, 0, err
	}
	count, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	return items, count, nil
}

func (s *Service) MarkRead(ctx context.Context, id, userID string) error {
	id = strings.TrimSpace(id)
	userID = strings.TrimSpace(userID)
	if id == "" || userID == "" {
		return ErrInvalidInput
	}
	if err := s.repo.MarkRead(ctx, id, userID); err != nil {
		// No distinguimos "ajena" de "inexistente": siempre not found,
		// para no filtrar existencia de notificaciones de otros usuarios.
		return ErrNotFound
	}
	return nil
}

func (s *Service) MarkAllRead(ctx context.Context, userID string) error {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return ErrInvalidInput
	}
	return s.repo.MarkAllRead(ctx, userID)
}
