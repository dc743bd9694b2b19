package group

import "context"

type Repository interface {
	List(ctx context.Context) ([]Group, error)
	GetByID(ctx context.Context, groupID int) (Group, bool, error)
}
