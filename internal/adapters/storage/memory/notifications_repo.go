package memory

import (
	"context"
	"sort"

	"pet-adoption-hub/internal/domain/notifications"
)

type notificationsView struct {
	s *Store
}

func (r *notificationsView) ListUnreadByUser(ctx context.Context, userID string, limit int) ([]notifications.Notification, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]notifications.Notification, 0)
	for _, n := range r.s.notes {
		if n.UserID == userID && !n.IsRead {
			out = append(out, n)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *notificationsView) CountUnread(ctx context.Context, userID string) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	count := 0
	for _, n := range r.s.notes {
		if n.UserID == userID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (r *notificationsView) MarkRead(ctx context.Context, id, userID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	n, ok := r.s.notes[id]
	if !ok || n.UserID != userID || n.IsRead {
		// Mismo contrato que el UPDATE filtrado: ajena o ya leída => not found.
		return ErrNotFound
	}
	n.IsRead = true
	r.s.notes[id] = n
	return nil
}

func (r *notificationsView) MarkAllRead(ctx context.Context, userID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for id, n := range r.s.notes {
		if n.UserID == userID && !n.IsRead {
			n.IsRead = true
			r.s.notes[id] = n
		}
	}
	return nil
}
