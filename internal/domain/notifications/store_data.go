package notifications

import (
	"context"

	"github.com/go-faster/errors"
)

func (s *Store) CreateNotification(ctx context.Context, userID string, msg Message) error {
	_, err := s.DB.Exec(ctx, `
    INSERT INTO notifications (user_id, type, title, body, entity_type, entity_id)
    VALUES ($1,$2,$3,$4,$5,$6)
  `, userID, msg.Type, msg.Title, msg.Body, msg.EntityType, msg.EntityID)
	return errors.Wrap(err, "create notification")
}

func (s *Store) UserEmail(ctx context.Context, userID string) (string, error) {
	var email string
	if err := s.DB.QueryRow(ctx, "SELECT email FROM users WHERE id = $1", userID).Scan(&email); err != nil {
		return "", errors.Wrap(err, "user email")
	}
	return email, nil
}

func (s *Store) ListNotifications(ctx context.Context, userID string, unreadOnly bool, limit, offset int) ([]Notification, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id::text, user_id, type, title, body, entity_type, entity_id, read_at, created_at
    FROM notifications
    WHERE user_id = $1 AND ($2 = false OR read_at IS NULL)
    ORDER BY created_at DESC
    LIMIT $3 OFFSET $4
  `, userID, unreadOnly, limit, offset)
	if err != nil {
		return nil, errors.Wrap(err, "list notifications")
	}
	defer rows.Close()

	out := []Notification{}
	for rows.Next() {
		var n Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Type, &n.Title, &n.Body, &n.EntityType, &n.EntityID, &n.ReadAt, &n.CreatedAt); err != nil {
			return nil, errors.Wrap(err, "scan notification")
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func (s *Store) CountNotifications(ctx context.Context, userID string, unreadOnly bool) (int, error) {
	var total int
	if err := s.DB.QueryRow(ctx, `
    SELECT COUNT(1) FROM notifications
    WHERE user_id = $1 AND ($2 = false OR read_at IS NULL)
  `, userID, unreadOnly).Scan(&total); err != nil {
		return 0, errors.Wrap(err, "count notifications")
	}
	return total, nil
}

func (s *Store) MarkRead(ctx context.Context, userID, notificationID string) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE notifications SET read_at = COALESCE(read_at, now())
    WHERE user_id = $1 AND id::text = $2
  `, userID, notificationID)
	if err != nil {
		return errors.Wrap(err, "mark notification read")
	}
	if tag.RowsAffected() == 0 {
		return ErrNotificationNotFound
	}
	return nil
}
