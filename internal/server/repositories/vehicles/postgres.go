package vehicles

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/carsapi/internal/common"
	"github.com/dmitrijs2005/carsapi/internal/dbx"
	"github.com/dmitrijs2005/carsapi/internal/server/models"
)

const carColumns = `id, brand, model, year_made, fuel, gear, mileage, price`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanCar(s scanner) (*models.Car, error) {
	c := &models.Car{}
	if err := s.Scan(&c.ID, &c.Brand, &c.Model, &c.YearMade, &c.Fuel, &c.Gear, &c.Mileage, &c.Price); err != nil {
		return nil, err
	}
	return c, nil
}

func (r *PostgresRepository) Create(ctx context.Context, car *models.Car) (*models.Car, error) {
	query :=
		`INSERT INTO cars (brand, model, year_made, fuel, gear, mileage, price)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, query,
		car.Brand, car.Model, car.YearMade, car.Fuel, car.Gear, car.Mileage, car.Price).Scan(&car.ID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return car, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]models.Car, error) {
	query := `SELECT ` + carColumns + ` FROM cars ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]models.Car, 0)
	for rows.Next() {
		c, err := scanCar(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) get(ctx context.Context, query string, id int64) (*models.Car, error) {
	c, err := scanCar(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return c, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id int64) (*models.Car, error) {
	return r.get(ctx, `SELECT `+carColumns+` FROM cars WHERE id = $1`, id)
}

func (r *PostgresRepository) GetForUpdate(ctx context.Context, id int64) (*models.Car, error) {
	return r.get(ctx, `SELECT `+carColumns+` FROM cars WHERE id = $1 FOR UPDATE`, id)
}

func (r *PostgresRepository) Update(ctx context.Context, car *models.Car) error {
	query :=
		`UPDATE cars SET brand = $2, model = $3, year_made = $4, fuel = $5,
		 gear = $6, mileage = $7, price = $8
		 WHERE id = $1
		 `

	res, err := r.db.ExecContext(ctx, query,
		car.ID, car.Brand, car.Model, car.YearMade, car.Fuel, car.Gear, car.Mileage, car.Price)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return checkAffected(res)
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM cars WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return checkAffected(res)
}

func checkAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
