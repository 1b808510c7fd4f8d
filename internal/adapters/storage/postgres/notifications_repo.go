package postgres

import (
	"context"
	"database/sql"
	"strings"

	"pet-adoption-hub/internal/domain/notifications"
)

type NotificationsRepo struct {
	db *sql.DB
}

func NewNotificationsRepo(db *sql.DB) *NotificationsRepo {
	return &NotificationsRepo{db: db}
}

func (r *NotificationsRepo) ListUnreadByUser(ctx context.Context, userID string, limit int) ([]notifications.Notification, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, user_id, type, message,
			related_entity_type, related_entity_id,
			is_read, created_at
		FROM notifications
		WHERE user_id = $1 AND is_read = FALSE
		ORDER BY created_at DESC
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]notifications.Notification, 0, limit)
	for rows.Next() {
		var (
			n       notifications.Notification
			relType sql.NullString
			relID   sql.NullString
		)
		if err := rows.Scan(
			&n.ID,
			&n.UserID,
			&n.Type,
			&n.Message,
			&relType,
			&relID,
			&n.IsRead,
			&n.CreatedAt,
		); err != nil {
			return nil, err
		}
		if relType.Valid {
			n.RelatedEntityType = notifications.RelatedEntityType(relType.String)
		}
		if relID.Valid {
			n.RelatedEntityID = relID.String
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func (r *NotificationsRepo) CountUnread(ctx context.Context, userID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM notifications
		WHERE user_id = $1 AND is_read = FALSE
	`, strings.TrimSpace(userID)).Scan(&count)
	return count, err
}

func (r *NotificationsRepo) MarkRead(ctx context.Context, id, userID string) error {
	// El filtro user_id + is_read hace que marcar una ajena (o una ya
	// leída) termine en count 0 => not found, sin filtrar existencia.
	res, err := r.db.ExecContext(ctx, `
		UPDATE notifications
		SET is_read = TRUE
		WHERE id = $1 AND user_id = $2 AND is_read = FALSE
	`, id, userID)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *NotificationsRepo) MarkAllRead(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE notifications
		SET is_read = TRUE
		WHERE user_id = $1 AND is_read = FALSE
	`, userID)
	return err
}

func insertNotification(ctx context.Context, q queryer, n notifications.Notification) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO notifications (
			id, user_id, type, message,
			related_entity_type, related_entity_id,
			is_read, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`,
		n.ID,
		n.UserID,
		string(n.Type),
		n.Message,
		toNullString(string(n.RelatedEntityType)),
		toNullString(n.RelatedEntityID),
		n.IsRead,
		n.CreatedAt,
	)
	return err
}

// queryer cubre *sql.DB y *sql.Tx.
type queryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func toNullString(s string) sql.NullString {
	if strings.TrimSpace(s) == "" {
		return sql.NullString{Valid: false}
	}
	return sql.NullString{String: s, Valid: true}
}
