package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/carsapi/internal/dbx"
	"github.com/dmitrijs2005/carsapi/internal/server/repositories/users"
	"github.com/dmitrijs2005/carsapi/internal/server/repositories/vehicles"
)

// RepositoryManager vends repositories bound to a DBTX, which may be the
// pool or a transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Vehicles(db dbx.DBTX) vehicles.Repository
}
