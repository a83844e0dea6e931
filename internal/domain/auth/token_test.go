package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"pms/internal/domain/directory"
	"pms/internal/domain/performance"
)

func TestGenerateAndParseToken(t *testing.T) {
	secret := "test-secret"
	claims := Claims{UserID: "u1", Name: "Lena", Role: "PM", Department: "Engineering"}

	token, err := GenerateToken(secret, claims, time.Hour)
	if err != nil {
		t.Fatalf("token error: %v", err)
	}

	parsed, err := ParseToken(secret, token)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	if parsed.UserID != claims.UserID || parsed.Name != claims.Name || parsed.Role != claims.Role || parsed.Department != claims.Department {
		t.Fatalf("claims mismatch: %+v", parsed)
	}
	actor := parsed.Actor()
	if actor.ID != "u1" || actor.Role != performance.RolePM {
		t.Fatalf("unexpected actor: %+v", actor)
	}
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	token, err := GenerateToken("secret-a", Claims{UserID: "u1", Role: "EMPLOYEE"}, time.Hour)
	if err != nil {
		t.Fatalf("token error: %v", err)
	}
	if _, err := ParseToken("secret-b", token); err == nil {
		t.Fatal("expected signature error")
	}
}

func TestParseTokenRejectsExpired(t *testing.T) {
	token, err := GenerateToken("secret", Claims{UserID: "u1", Role: "EMPLOYEE"}, -time.Minute)
	if err != nil {
		t.Fatalf("token error: %v", err)
	}
	if _, err := ParseToken("secret", token); err == nil {
		t.Fatal("expected expiry error")
	}
}

func TestParseTokenRejectsUnknownRole(t *testing.T) {
	token, err := GenerateToken("secret", Claims{UserID: "u1", Role: "HR"}, time.Hour)
	if err != nil {
		t.Fatalf("token error: %v", err)
	}
	if _, err := ParseToken("secret", token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

type stubUsers map[string]directory.User

func (s stubUsers) Get(_ context.Context, id string) (directory.User, error) {
	user, ok := s[id]
	if !ok {
		return directory.User{}, directory.ErrUserNotFound
	}
	return user, nil
}

func TestStartSession(t *testing.T) {
	users := stubUsers{"cto-1": {ID: "cto-1", Name: "Dana", Role: performance.RoleCTO, Department: "Engineering"}}
	svc := NewService(users, "secret", time.Hour)

	session, err := svc.StartSession(context.Background(), "cto-1")
	if err != nil {
		t.Fatalf("start session: %v", err)
	}
	claims, err := svc.Parse(session.Token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.UserID != "cto-1" || claims.Role != "CTO" || claims.Department != "Engineering" {
		t.Fatalf("unexpected claims: %+v", claims)
	}

	if _, err := svc.StartSession(context.Background(), "nobody"); !errors.Is(err, directory.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
