package repository

import (
	"context"

	"github.com/linkmart/linkmart/internal/domain/model"
)

// UserRepository describes persistence operations with users.
type UserRepository interface {
	Create(ctx context.Context, login, passwordHash string, role model.UserRole) (*model.User, error)
	GetByLogin(ctx context.Context, login string) (*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
	FirstInternal(ctx context.Context) (*model.User, error)
}
