package notifications

import "pms/internal/platform/db"

type Store struct {
	DB db.Queryer
}

func NewStore(q db.Queryer) *Store {
	return &Store{DB: q}
}
