package user

import "context"

// Repository describes user persistence.
type Repository interface {
	CreateUser(ctx context.Context, u User) (User, error)
	GetUser(ctx context.Context, id int64) (User, bool, error)
	GetUserByUsername(ctx context.Context, username string) (User, bool, error)
	GetUserByEmail(ctx context.Context, email string) (User, bool, error)
	ListUsers(ctx context.Context, filter Filter) ([]User, error)
	UpdateUser(ctx context.Context, id int64, patch Patch) (User, bool, error)
	// DeleteUser removes the user's team memberships and attendance, and clears
	// authorship references. Teams the user created are kept.
	DeleteUser(ctx context.Context, id int64) (bool, error)
}
