// Package service registers users, authenticates them and serves their
// profile to themselves.
package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"contacts/internal/persistence"
	"contacts/internal/platform/metrics"
	"contacts/internal/user/models"
	"contacts/internal/user/password"
	id "contacts/pkg/domain"
	dErrors "contacts/pkg/domain-errors"
	"contacts/pkg/platform/sentinel"
	"contacts/pkg/requestcontext"
)

// Store reads users.
type Store interface {
	FindByID(ctx context.Context, userID id.UserID) (*models.User, error)
	FindByUUID(ctx context.Context, uuid string) (*models.User, error)
}

// TokenIssuer mints access tokens for authenticated users.
type TokenIssuer interface {
	GenerateAccessToken(userID id.UserID, userUUID string, expiresIn time.Duration) (string, error)
}

type Service struct {
	store    Store
	uow      *persistence.Manager
	tokens   TokenIssuer
	tokenTTL time.Duration
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

// Option configures a Service.
type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithTokenTTL sets the lifetime of issued tokens. Non-positive values keep
// the one hour default.
func WithTokenTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.tokenTTL = ttl
		}
	}
}

func New(store Store, uow *persistence.Manager, tokens TokenIssuer, opts ...Option) *Service {
	s := &Service{
		store:    store,
		uow:      uow,
		tokens:   tokens,
		tokenTTL: time.Hour,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register creates a user with a bcrypt-hashed password.
func (s *Service) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	uuid := strings.TrimSpace(req.UUID)
	if _, err := s.store.FindByUUID(ctx, uuid); err == nil {
		return nil, dErrors.New(dErrors.CodeConflict, "There is already an account with this uuid")
	} else if !errors.Is(err, sentinel.ErrNotFound) {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to check uuid")
	}

	hash, err := password.Hash(req.PlainPassword)
	if err != nil {
		return nil, err
	}
	u := &models.User{
		UUID:      uuid,
		Roles:     []string{},
		Password:  hash,
		CreatedAt: requestcontext.Now(ctx).UTC(),
	}
	sess := s.uow.NewSession()
	if err := sess.Persist(u); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to schedule user")
	}
	if err := sess.Flush(ctx); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, dErrors.New(dErrors.CodeConflict, "There is already an account with this uuid")
		}
		s.logger.ErrorContext(ctx, "failed to register user", "error", err)
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to register user")
	}
	s.metrics.IncrementUsersCreated()
	s.logger.InfoContext(ctx, "user registered", "user_id", u.ID)
	return u, nil
}

// Authenticate exchanges credentials for an access token. Unknown users and
// wrong passwords are indistinguishable to the caller.
func (s *Service) Authenticate(ctx context.Context, req models.AuthRequest) (*models.TokenResponse, error) {
	invalid := dErrors.New(dErrors.CodeUnauthorized, "invalid credentials")
	u, err := s.store.FindByUUID(ctx, strings.TrimSpace(req.UUID))
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, invalid
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load user")
	}
	if err := password.Verify(req.Password, u.Password); err != nil {
		if dErrors.HasCode(err, dErrors.CodeUnauthorized) {
			return nil, invalid
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to verify password")
	}
	token, err := s.tokens.GenerateAccessToken(u.ID, u.UUID, s.tokenTTL)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to issue token")
	}
	return &models.TokenResponse{Token: token, ExpiresIn: int(s.tokenTTL.Seconds())}, nil
}

// Get returns the caller's own user. Other users are forbidden.
func (s *Service) Get(ctx context.Context, userID id.UserID) (*models.User, error) {
	principal := requestcontext.UserID(ctx)
	if principal.IsNil() {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "authentication required")
	}
	if principal != userID {
		return nil, dErrors.New(dErrors.CodeForbidden, "Access Denied.")
	}
	u, err := s.store.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "User not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load user")
	}
	return u, nil
}
