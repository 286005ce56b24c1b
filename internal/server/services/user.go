// Package services contains server-side business logic. This file implements
// UserService, which handles registration and login and mints the JWT pair
// handed out as session cookies.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/dmitrijs2005/carsapi/internal/common"
	"github.com/dmitrijs2005/carsapi/internal/logging"
	"github.com/dmitrijs2005/carsapi/internal/server/auth"
	"github.com/dmitrijs2005/carsapi/internal/server/config"
	"github.com/dmitrijs2005/carsapi/internal/server/models"
	"github.com/dmitrijs2005/carsapi/internal/server/repositories/repomanager"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// maxPasswordBytes is the bcrypt input limit.
const maxPasswordBytes = 72

// UserService provides authentication-related operations:
// - Register: validate and create users with a bcrypt password hash
// - Login: verify credentials and mint an access/refresh token pair
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	issuer      *auth.Issuer
	bcryptCost  int
	logger      logging.Logger

	dummyOnce sync.Once
	dummyHash []byte
}

// NewUserService constructs a UserService using repositories, the token
// issuer and server config. db may be nil for in-memory storage.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, issuer *auth.Issuer, cfg *config.Config, logger logging.Logger) *UserService {
	cost := cfg.BcryptCost
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &UserService{
		db:          db,
		repomanager: m,
		issuer:      issuer,
		bcryptCost:  cost,
		logger:      logger.With("module", "user_service"),
	}
}

// Register validates the credentials and creates a new user. Validation
// failures, including a taken username, come back as *common.ValidationError
// and nothing is stored.
func (s *UserService) Register(ctx context.Context, username, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	repo := s.repomanager.Users(s.db)

	verr := common.NewValidationError()
	switch {
	case username == "":
		verr.Add("username", msgRequired)
	case utf8.RuneCountInString(username) > maxUserNameLength:
		verr.Add("username", maxLengthMsg(maxUserNameLength))
	default:
		_, err := repo.GetUserByLogin(ctx, username)
		switch {
		case err == nil:
			verr.Add("username", "User with this username already exists")
		case !errors.Is(err, common.ErrorNotFound):
			return nil, fmt.Errorf("error looking up user: %w", err)
		}
	}
	switch {
	case password == "":
		verr.Add("password", msgRequired)
	case utf8.RuneCountInString(password) < minPasswordLength:
		verr.Add("password", "Password must be at least 8 characters long")
	case len(password) > maxPasswordBytes:
		verr.Add("password", fmt.Sprintf("Password must be at most %d bytes long", maxPasswordBytes))
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{ID: uuid.NewString(), UserName: username, PasswordHash: hash}
	u, err := repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			verr.Add("username", "User with this username already exists")
			return nil, verr
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	s.logger.Info(ctx, "user registered", "user_id", u.ID)
	return u, nil
}

// Login verifies the password against the stored hash and, on success,
// returns a new TokenPair whose subject is the user id. Unknown users and
// wrong passwords both yield common.ErrorUnauthorized.
func (s *UserService) Login(ctx context.Context, username, password string) (*auth.TokenPair, error) {
	verr := common.NewValidationError()
	if strings.TrimSpace(username) == "" {
		verr.Add("username", msgRequired)
	}
	if password == "" {
		verr.Add("password", msgRequired)
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	repo := s.repomanager.Users(s.db)
	user, err := repo.GetUserByLogin(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			// Keep timing in line with the wrong-password path.
			_ = bcrypt.CompareHashAndPassword(s.getDummyHash(), []byte(password))
			return nil, common.ErrorUnauthorized
		}
		s.logger.Error(ctx, "user lookup failed", "error", err)
		return nil, common.ErrorInternal
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		return nil, common.ErrorUnauthorized
	}

	pair, err := s.issuer.IssuePair(user.ID)
	if err != nil {
		s.logger.Error(ctx, "token issue failed", "error", err)
		return nil, common.ErrorInternal
	}
	return pair, nil
}

func (s *UserService) getDummyHash() []byte {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = bcrypt.GenerateFromPassword([]byte("dummy-password"), s.bcryptCost)
	})
	return s.dummyHash
}
