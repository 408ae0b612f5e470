package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/rs/xid"

	"github.com/paul-ayesiga/portfolio-service/internal/apperror"
	"github.com/paul-ayesiga/portfolio-service/internal/dto"
	"github.com/paul-ayesiga/portfolio-service/internal/keycloak"
	"github.com/paul-ayesiga/portfolio-service/internal/metrics"
	"github.com/paul-ayesiga/portfolio-service/internal/validation"
)

// IdentityProvider is the subset of the Keycloak admin API used for
// registration. *keycloak.Client implements it.
type IdentityProvider interface {
	AdminToken(ctx context.Context) (string, error)
	CreateUser(ctx context.Context, token string, u keycloak.NewUser) (string, error)
	FindRealmRole(ctx context.Context, token, name string) (keycloak.Role, error)
	AssignRealmRole(ctx context.Context, token, userID string, role keycloak.Role) error
	DeleteUser(ctx context.Context, token, userID string) error
}

var _ IdentityProvider = (*keycloak.Client)(nil)

type RegistrationOptions struct {
	// Role is the realm role every new account receives.
	Role string

	// RollbackOnFailure deletes the freshly created account when the role
	// step fails. When false the account is left in place and its id logged.
	RollbackOnFailure bool
}

// RegistrationService creates accounts in the identity provider.
//
// STEPS (strictly in order, no retries):
//  1. admin token
//  2. create user → user id
//  3. find role, assign it to the user
//
// A failure stops the sequence. Step 3 failing after step 2 succeeded leaves
// an account without its role unless RollbackOnFailure is set.
type RegistrationService struct {
	idp      IdentityProvider
	validate *validation.Validator
	logger   *slog.Logger
	opts     RegistrationOptions
}

func NewRegistrationService(idp IdentityProvider, v *validation.Validator, logger *slog.Logger, opts RegistrationOptions) *RegistrationService {
	if opts.Role == "" {
		opts.Role = "client"
	}
	return &RegistrationService{idp: idp, validate: v, logger: logger, opts: opts}
}

func (s *RegistrationService) Register(ctx context.Context, in dto.Registration) (*dto.RegistrationResult, error) {
	if err := s.validate.Struct(in); err != nil {
		metrics.Registrations.WithLabelValues("validation_error").Inc()
		return nil, err
	}

	// Every log line of one attempt carries the same id.
	logger := s.logger.With(
		slog.String("registration_id", xid.New().String()),
		slog.String("username", in.Username),
	)
	logger.Info("starting user registration")

	if err := s.register(ctx, logger, in); err != nil {
		outcome := "server_error"
		if errors.Is(err, apperror.ErrIntegration) {
			outcome = "keycloak_error"
		}
		metrics.Registrations.WithLabelValues(outcome).Inc()
		logger.Error("user registration failed", slog.String("error", err.Error()))
		return nil, registrationFailed(err)
	}

	metrics.Registrations.WithLabelValues("success").Inc()
	logger.Info("user registration completed")
	return &dto.RegistrationResult{Message: "User registered successfully", Username: in.Username}, nil
}

func (s *RegistrationService) register(ctx context.Context, logger *slog.Logger, in dto.Registration) error {
	token, err := s.idp.AdminToken(ctx)
	if err != nil {
		return err
	}
	logger.Info("obtained admin token")

	userID, err := s.idp.CreateUser(ctx, token, keycloak.NewUser{
		Username:  in.Username,
		Email:     in.Email,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Password:  in.Password,
	})
	if err != nil {
		return err
	}
	logger.Info("user created", slog.String("user_id", userID))

	if err := s.assignRole(ctx, token, userID); err != nil {
		s.compensate(ctx, logger, token, userID)
		return err
	}
	logger.Info("role assigned", slog.String("user_id", userID), slog.String("role", s.opts.Role))
	return nil
}

func (s *RegistrationService) assignRole(ctx context.Context, token, userID string) error {
	role, err := s.idp.FindRealmRole(ctx, token, s.opts.Role)
	if err != nil {
		return err
	}
	return s.idp.AssignRealmRole(ctx, token, userID, role)
}

// compensate deletes the account created in step 2, or reports it as
// orphaned when rollback is disabled.
func (s *RegistrationService) compensate(ctx context.Context, logger *slog.Logger, token, userID string) {
	if !s.opts.RollbackOnFailure {
		logger.Warn("account created without its role; left in place",
			slog.String("orphan_user_id", userID),
			slog.String("role", s.opts.Role),
		)
		return
	}

	if err := s.idp.DeleteUser(ctx, token, userID); err != nil {
		logger.Error("rollback failed; account left in place",
			slog.String("orphan_user_id", userID),
			slog.String("error", err.Error()),
		)
		return
	}
	logger.Info("rolled back created account", slog.String("user_id", userID))
}

// registrationFailed prefixes integration errors the way the API reports
// them, keeping the upstream status and body.
func registrationFailed(err error) error {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) && errors.Is(appErr.Err, apperror.ErrIntegration) {
		return apperror.Integration("User registration failed: "+appErr.Message, appErr.Status, appErr.Body, err)
	}
	return err
}
