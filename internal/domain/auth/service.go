package auth

import (
	"context"
	"time"

	"pms/internal/domain/directory"
)

type UserLookup interface {
	Get(ctx context.Context, id string) (directory.User, error)
}

type Session struct {
	Token     string         `json:"token"`
	ExpiresAt time.Time      `json:"expiresAt"`
	User      directory.User `json:"user"`
}

type Service struct {
	users  UserLookup
	secret string
	ttl    time.Duration
}

func NewService(users UserLookup, secret string, ttl time.Duration) *Service {
	return &Service{users: users, secret: secret, ttl: ttl}
}

// StartSession issues a token for a directory user. The caller is trusted
// to be who it says it is.
func (s *Service) StartSession(ctx context.Context, userID string) (Session, error) {
	user, err := s.users.Get(ctx, userID)
	if err != nil {
		return Session{}, err
	}
	token, err := GenerateToken(s.secret, Claims{
		UserID:     user.ID,
		Name:       user.Name,
		Role:       string(user.Role),
		Department: user.Department,
	}, s.ttl)
	if err != nil {
		return Session{}, err
	}
	return Session{Token: token, ExpiresAt: time.Now().Add(s.ttl).UTC(), User: user}, nil
}

func (s *Service) Parse(token string) (*Claims, error) {
	return ParseToken(s.secret, token)
}
