package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"student-manager-api/internal/application/ports"
	"student-manager-api/internal/domain/apperror"
	"student-manager-api/internal/domain/user"
	"student-manager-api/internal/infrastructure/metrics"
)

const msgInvalidCredentials = "Invalid email or password"

type AuthService struct {
	userRepository user.Repository
	hasher         ports.PasswordHasher
	tokens         ports.TokenService
	mCounter       *prometheus.CounterVec
	dbTimeout      time.Duration
}

func NewAuthService(
	userRepository user.Repository,
	hasher ports.PasswordHasher,
	tokens ports.TokenService,
	mCounter *prometheus.CounterVec,
	dbTimeout time.Duration,
) ports.AuthService {
	return &AuthService{
		userRepository: userRepository,
		hasher:         hasher,
		tokens:         tokens,
		mCounter:       mCounter,
		dbTimeout:      dbTimeout,
	}
}

func (as *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error) {
	if err := passwordPolicy(as.hasher, in.Password, "password"); err != nil {
		return nil, err
	}

	ctx, cancel := withTimeout(ctx, as.dbTimeout)
	defer cancel()

	exists, err := as.userRepository.EmailExists(ctx, in.Email, uuid.Nil)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if exists {
		return nil, apperror.Conflict("User", "email", in.Email)
	}

	hash, err := as.hasher.Hash(in.Password)
	if err != nil {
		return nil, weakPassword(err, "password")
	}

	u, err := as.userRepository.Create(ctx, user.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		Role:         user.RoleAdmin,
	})
	if err != nil {
		return nil, wrap("create user", err)
	}

	res, err := as.issue(u)
	if err != nil {
		return nil, err
	}

	as.mCounter.WithLabelValues(metrics.UserRegisteredTotal).Inc()

	return res, nil
}

func (as *AuthService) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	ctx, cancel := withTimeout(ctx, as.dbTimeout)
	defer cancel()

	u, err := as.userRepository.FetchByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("fetch user by email: %w", err)
	}
	if u == nil || !as.hasher.Verify(password, u.PasswordHash) {
		as.mCounter.WithLabelValues(metrics.LoginFailedTotal).Inc()
		return nil, apperror.Authentication(msgInvalidCredentials)
	}

	res, err := as.issue(u)
	if err != nil {
		return nil, err
	}

	as.mCounter.WithLabelValues(metrics.LoginSucceededTotal).Inc()

	return res, nil
}

// Me echoes the principal carried by the verified token.
func (as *AuthService) Me(_ context.Context, pr user.Principal) (user.Principal, error) {
	return pr, nil
}

func (as *AuthService) issue(u *user.User) (*ports.AuthResult, error) {
	token, err := as.tokens.Issue(u.UUID.String(), u.Email, string(u.Role))
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	return &ports.AuthResult{Token: token, User: u}, nil
}
