package notifications

import (
	"context"
	"log/slog"
)

type Mailer interface {
	Send(ctx context.Context, from, to, subject, body string) error
}

// Dispatcher runs mail delivery outside the caller's request. A nil
// Dispatcher sends inline.
type Dispatcher interface {
	Enqueue(jobType string, run func(ctx context.Context) error) bool
}

type Service struct {
	store        StoreAPI
	Mailer       Mailer
	Dispatcher   Dispatcher
	DefaultFrom  string
	EmailEnabled bool
}

func New(store StoreAPI, mailer Mailer) *Service {
	return &Service{store: store, Mailer: mailer, DefaultFrom: "no-reply@example.com", EmailEnabled: mailer != nil}
}

// Create stores an in-app notification and, when email is enabled, mails
// it. Mail failures are logged only.
func (s *Service) Create(ctx context.Context, userID string, msg Message) error {
	if err := s.store.CreateNotification(ctx, userID, msg); err != nil {
		return err
	}

	if s.Mailer == nil || !s.EmailEnabled {
		return nil
	}

	email, err := s.store.UserEmail(ctx, userID)
	if err != nil {
		slog.Warn("notification email lookup failed", "err", err)
		return nil
	}
	if email == "" {
		return nil
	}
	send := func(ctx context.Context) error {
		return s.Mailer.Send(ctx, s.DefaultFrom, email, msg.Title, msg.Body)
	}
	if s.Dispatcher != nil && s.Dispatcher.Enqueue(jobSendEmail, send) {
		return nil
	}
	if err := send(ctx); err != nil {
		slog.Warn("notification email send failed", "err", err)
	}
	return nil
}

func (s *Service) List(ctx context.Context, userID string, unreadOnly bool, limit, offset int) ([]Notification, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	if offset < 0 {
		offset = 0
	}
	return s.store.ListNotifications(ctx, userID, unreadOnly, limit, offset)
}

func (s *Service) Count(ctx context.Context, userID string, unreadOnly bool) (int, error) {
	return s.store.CountNotifications(ctx, userID, unreadOnly)
}

func (s *Service) MarkRead(ctx context.Context, userID, notificationID string) error {
	return s.store.MarkRead(ctx, userID, notificationID)
}
