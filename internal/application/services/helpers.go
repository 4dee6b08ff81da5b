package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"student-manager-api/internal/application/ports"
	"student-manager-api/internal/domain/apperror"
	"student-manager-api/internal/domain/student"
	"student-manager-api/internal/infrastructure/password"
)

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}

// wrap keeps classified errors as they are and adds op context to the rest.
func wrap(op string, err error) error {
	var appErr *apperror.Error
	if errors.As(err, &appErr) {
		return err
	}
	return fmt.Errorf("%s: %w", op, err)
}

const msgWeakPassword = "Password does not meet security requirements"

// passwordPolicy rejects pw before any store call is made.
func passwordPolicy(h ports.PasswordHasher, pw, field string) error {
	return policyError(h.Validate(pw), field)
}

func policyError(reasons []string, field string) error {
	if len(reasons) == 0 {
		return nil
	}
	details := make([]apperror.FieldError, 0, len(reasons))
	for _, r := range reasons {
		details = append(details, apperror.FieldError{Field: field, Message: r})
	}
	return apperror.Validation(msgWeakPassword, details...)
}

func weakPassword(err error, field string) error {
	var weak *password.WeakPasswordError
	if !errors.As(err, &weak) {
		return fmt.Errorf("hash password: %w", err)
	}
	return policyError(weak.Reasons, field)
}

func validatePage(page, limit int) error {
	var details []apperror.FieldError
	if page < 1 {
		details = append(details, apperror.FieldError{Field: "page", Message: "Page must be greater than 0"})
	} else if page > student.MaxPage {
		details = append(details, apperror.FieldError{Field: "page", Message: fmt.Sprintf("Page must not exceed %d", student.MaxPage)})
	}
	if limit < 1 || limit > student.MaxLimit {
		details = append(details, apperror.FieldError{Field: "limit", Message: "Limit must be between 1 and 100"})
	}
	if len(details) > 0 {
		return apperror.Validation(details[0].Message, details...)
	}
	return nil
}
