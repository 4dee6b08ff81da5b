package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"student-manager-api/internal/application/ports"
	"student-manager-api/internal/domain/apperror"
	"student-manager-api/internal/domain/student"
	"student-manager-api/internal/domain/user"
	"student-manager-api/internal/infrastructure/metrics"
	"student-manager-api/internal/infrastructure/mq"
	"student-manager-api/pkg/cpf"
)

type StudentService struct {
	studentRepository student.Repository
	policy            user.Policy
	events            ports.EventPublisher
	mCounter          *prometheus.CounterVec
	dbTimeout         time.Duration
}

func NewStudentService(
	studentRepository student.Repository,
	policy user.Policy,
	events ports.EventPublisher,
	mCounter *prometheus.CounterVec,
	dbTimeout time.Duration,
) ports.StudentService {
	return &StudentService{
		studentRepository: studentRepository,
		policy:            policy,
		events:            events,
		mCounter:          mCounter,
		dbTimeout:         dbTimeout,
	}
}

func (ss *StudentService) Create(ctx context.Context, pr user.Principal, in student.Student) (*student.Student, error) {
	if err := ss.policy.CanMutateStudents(pr); err != nil {
		return nil, err
	}
	in.CPF = cpf.Clean(in.CPF)

	ctx, cancel := withTimeout(ctx, ss.dbTimeout)
	defer cancel()

	// first conflict wins: RA, then CPF, then email
	for _, c := range []struct {
		field student.UniqueField
		value string
	}{
		{student.FieldRA, in.RA},
		{student.FieldCPF, in.CPF},
		{student.FieldEmail, in.Email},
	} {
		if err := ss.ensureUnique(ctx, c.field, c.value, uuid.Nil); err != nil {
			return nil, err
		}
	}

	s, err := ss.studentRepository.Create(ctx, in, pr.ID)
	if err != nil {
		return nil, ss.conflictOr("create student", err)
	}

	ss.mCounter.WithLabelValues(metrics.StudentCreatedTotal).Inc()
	ss.events.Publish(mq.NewStudentEvent(student.ActionCreated, s, pr.ID))

	return s, nil
}

func (ss *StudentService) FindByID(ctx context.Context, id student.UUID) (*student.Student, error) {
	ctx, cancel := withTimeout(ctx, ss.dbTimeout)
	defer cancel()

	return ss.fetch(ctx, id)
}

func (ss *StudentService) Update(ctx context.Context, pr user.Principal, id student.UUID, upd student.Update) (*student.Student, error) {
	if err := ss.policy.CanMutateStudents(pr); err != nil {
		return nil, err
	}
	if upd.Empty() {
		return nil, apperror.Validation("At least one field (name or email) must be provided for update")
	}

	ctx, cancel := withTimeout(ctx, ss.dbTimeout)
	defer cancel()

	existing, err := ss.fetch(ctx, id)
	if err != nil {
		return nil, err
	}
	if upd.Email != nil && !strings.EqualFold(*upd.Email, existing.Email) {
		if err = ss.ensureUnique(ctx, student.FieldEmail, *upd.Email, id); err != nil {
			return nil, err
		}
	}

	s, err := ss.studentRepository.Update(ctx, id, upd, pr.ID)
	if err != nil {
		return nil, ss.conflictOr("update student", err)
	}
	if s == nil {
		return nil, apperror.NotFound("Student", id.String())
	}

	ss.mCounter.WithLabelValues(metrics.StudentUpdatedTotal).Inc()
	ss.events.Publish(mq.NewStudentEvent(student.ActionUpdated, s, pr.ID))

	return s, nil
}

func (ss *StudentService) Delete(ctx context.Context, pr user.Principal, id student.UUID) error {
	if err := ss.policy.CanMutateStudents(pr); err != nil {
		return err
	}

	ctx, cancel := withTimeout(ctx, ss.dbTimeout)
	defer cancel()

	existing, err := ss.fetch(ctx, id)
	if err != nil {
		return err
	}

	deleted, err := ss.studentRepository.Delete(ctx, id, pr.ID)
	if err != nil {
		return fmt.Errorf("delete student: %w", err)
	}
	if !deleted {
		return apperror.NotFound("Student", id.String())
	}

	now := time.Now().UTC()
	existing.DeletedAt = &now

	ss.mCounter.WithLabelValues(metrics.StudentDeletedTotal).Inc()
	ss.events.Publish(mq.NewStudentEvent(student.ActionDeleted, existing, pr.ID))

	return nil
}

func (ss *StudentService) List(ctx context.Context, f student.Filter, p student.Page) (*student.ListResult, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	ctx, cancel := withTimeout(ctx, ss.dbTimeout)
	defer cancel()

	students, total, err := ss.studentRepository.List(ctx, f, p)
	if err != nil {
		return nil, err
	}

	return &student.ListResult{
		Students:   students,
		Page:       p.Page,
		Limit:      p.Limit,
		Total:      total,
		TotalPages: student.TotalPages(total, p.Limit),
	}, nil
}

// History lists the audit trail of a student, including one that was deleted.
func (ss *StudentService) History(ctx context.Context, id student.UUID) (student.UserActions, error) {
	ctx, cancel := withTimeout(ctx, ss.dbTimeout)
	defer cancel()

	known, err := ss.studentRepository.Known(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("lookup student: %w", err)
	}
	if !known {
		return nil, apperror.NotFound("Student", id.String())
	}

	actions, err := ss.studentRepository.FetchActions(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("fetch student actions: %w", err)
	}

	return actions, nil
}

func (ss *StudentService) fetch(ctx context.Context, id student.UUID) (*student.Student, error) {
	s, err := ss.studentRepository.FetchByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("fetch student: %w", err)
	}
	if s == nil {
		return nil, apperror.NotFound("Student", id.String())
	}
	return s, nil
}

func (ss *StudentService) ensureUnique(ctx context.Context, field student.UniqueField, value string, excludeID student.UUID) error {
	exists, err := ss.studentRepository.Exists(ctx, field, value, excludeID)
	if err != nil {
		return fmt.Errorf("check student %s: %w", field, err)
	}
	if exists {
		ss.mCounter.WithLabelValues(metrics.StudentConflictTotal).Inc()
		return student.ConflictError(field, value)
	}
	return nil
}

func (ss *StudentService) conflictOr(op string, err error) error {
	if errors.Is(err, apperror.ErrConflict) {
		ss.mCounter.WithLabelValues(metrics.StudentConflictTotal).Inc()
		return err
	}
	return fmt.Errorf("%s: %w", op, err)
}
