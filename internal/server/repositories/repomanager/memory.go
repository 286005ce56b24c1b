package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/carsapi/internal/dbx"
	"github.com/dmitrijs2005/carsapi/internal/server/repositories/users"
	"github.com/dmitrijs2005/carsapi/internal/server/repositories/vehicles"
)

// MemoryRepositoryManager hands out the same in-memory repositories
// regardless of the DBTX passed in. Data lives as long as the manager.
type MemoryRepositoryManager struct {
	users    *users.MemoryRepository
	vehicles *vehicles.MemoryRepository
}

func NewMemoryRepositoryManager() *MemoryRepositoryManager {
	return &MemoryRepositoryManager{
		users:    users.NewMemoryRepository(),
		vehicles: vehicles.NewMemoryRepository(),
	}
}

// RunMigrations is a no-op; there is no schema.
func (m *MemoryRepositoryManager) RunMigrations(context.Context, *sql.DB) error { return nil }

func (m *MemoryRepositoryManager) Users(dbx.DBTX) users.Repository { return m.users }

func (m *MemoryRepositoryManager) Vehicles(dbx.DBTX) vehicles.Repository { return m.vehicles }
