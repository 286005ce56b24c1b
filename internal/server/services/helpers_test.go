package services

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/dmitrijs2005/carsapi/internal/dbx"
	"github.com/dmitrijs2005/carsapi/internal/logging"
	"github.com/dmitrijs2005/carsapi/internal/server/auth"
	"github.com/dmitrijs2005/carsapi/internal/server/config"
	"github.com/dmitrijs2005/carsapi/internal/server/models"
	"github.com/dmitrijs2005/carsapi/internal/server/repositories/repomanager"
	usersrepo "github.com/dmitrijs2005/carsapi/internal/server/repositories/users"
	vehiclesrepo "github.com/dmitrijs2005/carsapi/internal/server/repositories/vehicles"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.BcryptCost = bcrypt.MinCost
	return cfg
}

func newTestIssuer(t *testing.T) (*auth.Issuer, *auth.Codec) {
	t.Helper()
	codec, err := auth.NewCodec([]byte("test-secret"), "HS256")
	require.NoError(t, err)
	return auth.NewIssuer(codec, time.Hour, 24*time.Hour), codec
}

func newUserService(t *testing.T, rm repomanager.RepositoryManager) (*UserService, *auth.Codec) {
	t.Helper()
	issuer, codec := newTestIssuer(t)
	return NewUserService(nil, rm, issuer, testConfig(), logging.NewNopLogger()), codec
}

// fakeUsersRepo lets a test force repository failures.
type fakeUsersRepo struct {
	createErr error
	getOut    *models.User
	getErr    error
	created   int
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created++
	return u, nil
}

func (f *fakeUsersRepo) GetUserByLogin(ctx context.Context, userName string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}

// fakeRepoManager wraps a real in-memory manager and lets a test swap in
// individual repositories.
type fakeRepoManager struct {
	mem      *repomanager.MemoryRepositoryManager
	users    usersrepo.Repository
	vehicles vehiclesrepo.Repository
}

func newFakeRepoManager() *fakeRepoManager {
	return &fakeRepoManager{mem: repomanager.NewMemoryRepositoryManager()}
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }

func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository {
	if m.users != nil {
		return m.users
	}
	return m.mem.Users(db)
}

func (m *fakeRepoManager) Vehicles(db dbx.DBTX) vehiclesrepo.Repository {
	if m.vehicles != nil {
		return m.vehicles
	}
	return m.mem.Vehicles(db)
}

func ptr[T any](v T) *T { return &v }

func validCarFields() models.CarFields {
	return models.CarFields{
		Brand:    ptr("Lada"),
		Model:    ptr("Niva"),
		YearMade: ptr(1977),
		Fuel:     ptr("Бензин"),
		Gear:     ptr("Механика"),
		Mileage:  ptr(120000),
		Price:    ptr(300000),
	}
}
