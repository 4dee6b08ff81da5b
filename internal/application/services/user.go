package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"student-manager-api/internal/application/ports"
	"student-manager-api/internal/domain/apperror"
	"student-manager-api/internal/domain/student"
	"student-manager-api/internal/domain/user"
	"student-manager-api/internal/infrastructure/metrics"
)

type UserService struct {
	userRepository user.Repository
	hasher         ports.PasswordHasher
	policy         user.Policy
	mCounter       *prometheus.CounterVec
	dbTimeout      time.Duration
}

func NewUserService(
	userRepository user.Repository,
	hasher ports.PasswordHasher,
	policy user.Policy,
	mCounter *prometheus.CounterVec,
	dbTimeout time.Duration,
) ports.UserService {
	return &UserService{
		userRepository: userRepository,
		hasher:         hasher,
		policy:         policy,
		mCounter:       mCounter,
		dbTimeout:      dbTimeout,
	}
}

func (us *UserService) FindAll(ctx context.Context, pr user.Principal, page, limit int) (*ports.UserList, error) {
	if err := validatePage(page, limit); err != nil {
		return nil, err
	}

	ctx, cancel := withTimeout(ctx, us.dbTimeout)
	defer cancel()

	req, err := us.requester(ctx, pr)
	if err != nil {
		return nil, err
	}
	if err = us.policy.CanListUsers(req.Principal()); err != nil {
		return nil, err
	}

	users, total, err := us.userRepository.FetchAll(ctx, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}

	return &ports.UserList{
		Users:      users,
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: student.TotalPages(total, limit),
	}, nil
}

func (us *UserService) Profile(ctx context.Context, pr user.Principal, id user.UUID) (*user.User, error) {
	ctx, cancel := withTimeout(ctx, us.dbTimeout)
	defer cancel()

	u, req, err := us.targetAndRequester(ctx, pr, id)
	if err != nil {
		return nil, err
	}
	if err = us.policy.CanViewProfile(req.Principal(), id); err != nil {
		return nil, err
	}

	return u, nil
}

func (us *UserService) UpdateProfile(ctx context.Context, pr user.Principal, id user.UUID, upd user.ProfileUpdate) (*user.User, error) {
	ctx, cancel := withTimeout(ctx, us.dbTimeout)
	defer cancel()

	u, req, err := us.targetAndRequester(ctx, pr, id)
	if err != nil {
		return nil, err
	}
	if err = us.policy.CanUpdateProfile(req.Principal(), id); err != nil {
		return nil, err
	}

	if upd.Email != nil && !strings.EqualFold(*upd.Email, u.Email) {
		exists, err := us.userRepository.EmailExists(ctx, *upd.Email, id)
		if err != nil {
			return nil, fmt.Errorf("check email: %w", err)
		}
		if exists {
			return nil, apperror.Conflict("User", "email", *upd.Email)
		}
	}

	updated, err := us.userRepository.UpdateProfile(ctx, id, upd)
	if err != nil {
		return nil, wrap("update user profile", err)
	}
	if updated == nil {
		return nil, apperror.NotFound("User", id.String())
	}

	us.mCounter.WithLabelValues(metrics.UserUpdatedTotal).Inc()

	return updated, nil
}

func (us *UserService) ChangePassword(ctx context.Context, pr user.Principal, id user.UUID, in ports.PasswordChange) error {
	if err := passwordPolicy(us.hasher, in.NewPassword, "newPassword"); err != nil {
		return err
	}
	if in.NewPassword != in.ConfirmPassword {
		return apperror.Validation(
			"New password and confirmation password do not match",
			apperror.FieldError{Field: "confirmPassword", Message: "New password and confirmation password do not match"},
		)
	}

	ctx, cancel := withTimeout(ctx, us.dbTimeout)
	defer cancel()

	u, req, err := us.targetAndRequester(ctx, pr, id)
	if err != nil {
		return err
	}
	if err = us.policy.CanChangePassword(req.Principal(), id); err != nil {
		return err
	}

	if !us.hasher.Verify(in.CurrentPassword, u.PasswordHash) {
		return apperror.Authentication("Current password is incorrect")
	}

	hash, err := us.hasher.Hash(in.NewPassword)
	if err != nil {
		return weakPassword(err, "newPassword")
	}
	if err = us.userRepository.UpdatePassword(ctx, id, hash); err != nil {
		return wrap("update password", err)
	}

	us.mCounter.WithLabelValues(metrics.PasswordChangedTotal).Inc()

	return nil
}

func (us *UserService) ChangeRole(ctx context.Context, pr user.Principal, id user.UUID, role user.Role) (*user.User, error) {
	ctx, cancel := withTimeout(ctx, us.dbTimeout)
	defer cancel()

	_, req, err := us.targetAndRequester(ctx, pr, id)
	if err != nil {
		return nil, err
	}
	if err = us.policy.CanChangeRole(req.Principal(), id); err != nil {
		return nil, err
	}
	if !role.Valid() {
		return nil, apperror.Validation(
			"Invalid role specified",
			apperror.FieldError{Field: "role", Message: "Invalid role specified"},
		)
	}

	updated, err := us.userRepository.UpdateRole(ctx, id, role)
	if err != nil {
		return nil, fmt.Errorf("update user role: %w", err)
	}
	if updated == nil {
		return nil, apperror.NotFound("User", id.String())
	}

	us.mCounter.WithLabelValues(metrics.RoleChangedTotal).Inc()

	return updated, nil
}

func (us *UserService) Delete(ctx context.Context, pr user.Principal, id user.UUID) error {
	ctx, cancel := withTimeout(ctx, us.dbTimeout)
	defer cancel()

	_, req, err := us.targetAndRequester(ctx, pr, id)
	if err != nil {
		return err
	}
	if err = us.policy.CanDeleteUser(req.Principal(), id); err != nil {
		return err
	}

	deleted, err := us.userRepository.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if !deleted {
		return apperror.NotFound("User", id.String())
	}

	us.mCounter.WithLabelValues(metrics.UserDeletedTotal).Inc()

	return nil
}

// requester reloads the caller so a stale token cannot act for a deleted
// account or with a revoked role.
func (us *UserService) requester(ctx context.Context, pr user.Principal) (*user.User, error) {
	u, err := us.userRepository.FetchByID(ctx, pr.ID)
	if err != nil {
		return nil, fmt.Errorf("fetch requesting user: %w", err)
	}
	if u == nil {
		return nil, apperror.Authentication("Invalid requesting user")
	}
	return u, nil
}

func (us *UserService) targetAndRequester(ctx context.Context, pr user.Principal, id user.UUID) (*user.User, *user.User, error) {
	u, err := us.userRepository.FetchByID(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("fetch user: %w", err)
	}
	if u == nil {
		return nil, nil, apperror.NotFound("User", id.String())
	}

	req, err := us.requester(ctx, pr)
	if err != nil {
		return nil, nil, err
	}

	return u, req, nil
}
