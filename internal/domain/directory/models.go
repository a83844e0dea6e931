package directory

import (
	"time"

	"pms/internal/domain/performance"
)

// User is a directory entry. The directory is reference data; this service
// never changes it outside seeding.
type User struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Email       string           `json:"email"`
	Role        performance.Role `json:"role"`
	Department  string           `json:"department"`
	Designation string           `json:"designation"`
	CreatedAt   time.Time        `json:"createdAt"`
}

func (u User) Actor() performance.Actor {
	return performance.Actor{
		ID:         u.ID,
		Name:       u.Name,
		Role:       u.Role,
		Department: u.Department,
	}
}

type Filter struct {
	Role       performance.Role
	Department string
}
