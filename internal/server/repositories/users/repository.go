// Package users stores user accounts.
package users

import (
	"context"

	"github.com/dmitrijs2005/carsapi/internal/server/models"
)

// Repository persists users. Create returns common.ErrorAlreadyExists when
// the username is taken; GetUserByLogin returns common.ErrorNotFound when
// no such user exists.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByLogin(ctx context.Context, login string) (*models.User, error)
}
