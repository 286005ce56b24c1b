package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/carsapi/internal/common"
	"github.com/dmitrijs2005/carsapi/internal/dbx"
	"github.com/dmitrijs2005/carsapi/internal/logging"
	"github.com/dmitrijs2005/carsapi/internal/server/models"
	"github.com/dmitrijs2005/carsapi/internal/server/repositories/repomanager"
)

// VehicleService manages car listings. Repository errors other than
// common.ErrorNotFound are wrapped; validation failures come back as
// *common.ValidationError.
type VehicleService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
}

func NewVehicleService(db *sql.DB, m repomanager.RepositoryManager, logger logging.Logger) *VehicleService {
	return &VehicleService{db: db, repomanager: m, logger: logger.With("module", "vehicle_service")}
}

func (s *VehicleService) List(ctx context.Context) ([]models.Car, error) {
	cars, err := s.repomanager.Vehicles(s.db).List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing cars: %w", err)
	}
	return cars, nil
}

// Create stores a new car; every field must be supplied.
func (s *VehicleService) Create(ctx context.Context, in models.CarFields) (*models.Car, error) {
	if err := validateCarFields(in, false); err != nil {
		return nil, err
	}

	car := &models.Car{}
	in.Apply(car)

	created, err := s.repomanager.Vehicles(s.db).Create(ctx, car)
	if err != nil {
		return nil, fmt.Errorf("error creating car: %w", err)
	}
	s.logger.Info(ctx, "car created", "car_id", created.ID)
	return created, nil
}

func (s *VehicleService) Get(ctx context.Context, id int64) (*models.Car, error) {
	car, err := s.repomanager.Vehicles(s.db).Get(ctx, id)
	if err != nil {
		return nil, wrapRepoErr("error fetching car", err)
	}
	return car, nil
}

// Replace is a full update: every field must be supplied.
func (s *VehicleService) Replace(ctx context.Context, id int64, in models.CarFields) (*models.Car, error) {
	return s.update(ctx, id, in, false)
}

// Patch applies only the supplied fields.
func (s *VehicleService) Patch(ctx context.Context, id int64, in models.CarFields) (*models.Car, error) {
	return s.update(ctx, id, in, true)
}

func (s *VehicleService) update(ctx context.Context, id int64, in models.CarFields, partial bool) (*models.Car, error) {
	var result *models.Car

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Vehicles(tx)

		car, err := repo.GetForUpdate(ctx, id)
		if err != nil {
			return wrapRepoErr("error fetching car", err)
		}
		if err := validateCarFields(in, partial); err != nil {
			return err
		}

		in.Apply(car)
		if err := repo.Update(ctx, car); err != nil {
			return wrapRepoErr("error updating car", err)
		}
		result = car
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *VehicleService) Delete(ctx context.Context, id int64) error {
	if err := s.repomanager.Vehicles(s.db).Delete(ctx, id); err != nil {
		return wrapRepoErr("error deleting car", err)
	}
	s.logger.Info(ctx, "car deleted", "car_id", id)
	return nil
}

func wrapRepoErr(msg string, err error) error {
	if errors.Is(err, common.ErrorNotFound) {
		return common.ErrorNotFound
	}
	return fmt.Errorf("%s: %w", msg, err)
}
