// Package vehicles stores car listings.
package vehicles

import (
	"context"

	"github.com/dmitrijs2005/carsapi/internal/server/models"
)

// Repository persists cars. Get, GetForUpdate, Update and Delete return
// common.ErrorNotFound for an unknown id.
type Repository interface {
	Create(ctx context.Context, car *models.Car) (*models.Car, error)
	List(ctx context.Context) ([]models.Car, error)
	Get(ctx context.Context, id int64) (*models.Car, error)
	// GetForUpdate is Get that also locks the row for the rest of the
	// surrounding transaction.
	GetForUpdate(ctx context.Context, id int64) (*models.Car, error)
	Update(ctx context.Context, car *models.Car) error
	Delete(ctx context.Context, id int64) error
}
