package directory

import "context"

type StoreAPI interface {
	GetUser(ctx context.Context, id string) (User, error)
	ListUsers(ctx context.Context, filter Filter) ([]User, error)
}
