package domain

//go:generate mockgen -destination=../../mocks/mock_user_repository.go -package=mocks github.com/Shaurya8425/Blogs/internal/auth/domain UserRepository

import "context"

type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	Create(ctx context.Context, user *User) error
	Update(ctx context.Context, user *User) error
}
