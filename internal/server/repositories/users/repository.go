// Package users declares the account repository contract.
package users

import (
	"context"

	"github.com/Shubham-musmade/interview-tracker/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByLogin(ctx context.Context, login string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
}
