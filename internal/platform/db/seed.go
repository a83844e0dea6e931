package db

import (
	"context"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type SeedUser struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Email       string `yaml:"email"`
	Role        string `yaml:"role"`
	Department  string `yaml:"department"`
	Designation string `yaml:"designation"`
}

type SeedDirectory struct {
	Users []SeedUser `yaml:"users"`
}

// DefaultSeedDirectory is used when no directory file is configured, so a
// fresh database always has one administrator.
var DefaultSeedDirectory = SeedDirectory{
	Users: []SeedUser{
		{ID: "admin", Name: "Administrator", Role: "ADMIN", Designation: "System administrator"},
	},
}

var seedRoles = map[string]struct{}{"EMPLOYEE": {}, "PM": {}, "CTO": {}, "ADMIN": {}}

func LoadSeedDirectory(path string) (SeedDirectory, error) {
	if strings.TrimSpace(path) == "" {
		return DefaultSeedDirectory, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return SeedDirectory{}, fmt.Errorf("read seed directory %s: %w", path, err)
	}
	return ParseSeedDirectory(raw)
}

func ParseSeedDirectory(raw []byte) (SeedDirectory, error) {
	var dir SeedDirectory
	if err := yaml.Unmarshal(raw, &dir); err != nil {
		return SeedDirectory{}, fmt.Errorf("parse seed directory: %w", err)
	}
	seen := map[string]struct{}{}
	for i, user := range dir.Users {
		user.ID = strings.TrimSpace(user.ID)
		user.Name = strings.TrimSpace(user.Name)
		user.Role = strings.ToUpper(strings.TrimSpace(user.Role))
		if user.ID == "" || user.Name == "" {
			return SeedDirectory{}, fmt.Errorf("seed user %d: id and name are required", i)
		}
		if _, ok := seedRoles[user.Role]; !ok {
			return SeedDirectory{}, fmt.Errorf("seed user %s: unknown role %q", user.ID, user.Role)
		}
		if _, ok := seen[user.ID]; ok {
			return SeedDirectory{}, fmt.Errorf("seed user %s: duplicate id", user.ID)
		}
		seen[user.ID] = struct{}{}
		dir.Users[i] = user
	}
	return dir, nil
}

// Seed upserts every directory user. Running it again only refreshes the
// directory fields.
func Seed(ctx context.Context, q Queryer, dir SeedDirectory) error {
	for _, user := range dir.Users {
		if err := ensureUser(ctx, q, user); err != nil {
			return err
		}
	}
	return nil
}

func ensureUser(ctx context.Context, q Queryer, user SeedUser) error {
	_, err := q.Exec(ctx, `
    INSERT INTO users (id, name, email, role, department, designation)
    VALUES ($1, $2, $3, $4, $5, $6)
    ON CONFLICT (id) DO UPDATE SET
      name = EXCLUDED.name,
      email = EXCLUDED.email,
      role = EXCLUDED.role,
      department = EXCLUDED.department,
      designation = EXCLUDED.designation
  `, user.ID, user.Name, user.Email, user.Role, user.Department, user.Designation)
	if err != nil {
		return fmt.Errorf("seed user %s: %w", user.ID, err)
	}
	return nil
}
