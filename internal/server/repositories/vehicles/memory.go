package vehicles

import (
	"context"
	"sort"
	"sync"

	"github.com/dmitrijs2005/carsapi/internal/common"
	"github.com/dmitrijs2005/carsapi/internal/server/models"
)

// MemoryRepository keeps cars in a map with a monotonically increasing id.
type MemoryRepository struct {
	mu     sync.RWMutex
	cars   map[int64]models.Car
	nextID int64
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{cars: make(map[int64]models.Car)}
}

func (r *MemoryRepository) Create(ctx context.Context, car *models.Car) (*models.Car, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	car.ID = r.nextID
	r.cars[car.ID] = *car
	return car, nil
}

func (r *MemoryRepository) List(ctx context.Context) ([]models.Car, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]models.Car, 0, len(r.cars))
	for _, c := range r.cars {
		result = append(result, c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *MemoryRepository) Get(ctx context.Context, id int64) (*models.Car, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.cars[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &c, nil
}

func (r *MemoryRepository) GetForUpdate(ctx context.Context, id int64) (*models.Car, error) {
	return r.Get(ctx, id)
}

func (r *MemoryRepository) Update(ctx context.Context, car *models.Car) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.cars[car.ID]; !ok {
		return common.ErrorNotFound
	}
	r.cars[car.ID] = *car
	return nil
}

func (r *MemoryRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.cars[id]; !ok {
		return common.ErrorNotFound
	}
	delete(r.cars, id)
	return nil
}
