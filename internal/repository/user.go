package repository

import (
	"context"

	"github.com/jaekwang-park/taskboard/internal/model"
)

// UserRepository maps identity-provider subjects to local users.
type UserRepository interface {
	// GetOrCreate inserts the user or refreshes email and, when non-empty, the
	// display name of an existing one.
	GetOrCreate(ctx context.Context, cognitoSub, email, displayName string) (model.User, error)
	GetByCognitoSub(ctx context.Context, cognitoSub string) (model.User, error)
}
