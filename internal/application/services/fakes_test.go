package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"golang.org/x/crypto/bcrypt"

	"student-manager-api/internal/domain/student"
	"student-manager-api/internal/domain/user"
	"student-manager-api/internal/infrastructure/metrics"
	"student-manager-api/internal/infrastructure/mq"
	"student-manager-api/internal/infrastructure/password"
)

var errNotUsed = errors.New("not used")

type FakeUserRepository struct {
	FetchByIDFunc     func(ctx context.Context, id user.UUID) (*user.User, error)
	FetchByEmailFunc  func(ctx context.Context, email string) (*user.User, error)
	FetchAllFunc      func(ctx context.Context, limit, offset int) (user.Users, int, error)
	EmailExistsFunc   func(ctx context.Context, email string, excludeID user.UUID) (bool, error)
	CreateFunc        func(ctx context.Context, u user.User) (*user.User, error)
	UpdateProfileFunc func(ctx context.Context, id user.UUID, upd user.ProfileUpdate) (*user.User, error)
	UpdatePasswordFn  func(ctx context.Context, id user.UUID, hash string) error
	UpdateRoleFunc    func(ctx context.Context, id user.UUID, role user.Role) (*user.User, error)
	DeleteFunc        func(ctx context.Context, id user.UUID) (bool, error)
}

func (f *FakeUserRepository) FetchByID(ctx context.Context, id user.UUID) (*user.User, error) {
	if f.FetchByIDFunc == nil {
		return nil, errNotUsed
	}
	return f.FetchByIDFunc(ctx, id)
}
func (f *FakeUserRepository) FetchByEmail(ctx context.Context, email string) (*user.User, error) {
	if f.FetchByEmailFunc == nil {
		return nil, errNotUsed
	}
	return f.FetchByEmailFunc(ctx, email)
}
func (f *FakeUserRepository) FetchAll(ctx context.Context, limit, offset int) (user.Users, int, error) {
	if f.FetchAllFunc == nil {
		return nil, 0, errNotUsed
	}
	return f.FetchAllFunc(ctx, limit, offset)
}
func (f *FakeUserRepository) EmailExists(ctx context.Context, email string, excludeID user.UUID) (bool, error) {
	if f.EmailExistsFunc == nil {
		return false, errNotUsed
	}
	return f.EmailExistsFunc(ctx, email, excludeID)
}
func (f *FakeUserRepository) Create(ctx context.Context, u user.User) (*user.User, error) {
	if f.CreateFunc == nil {
		return nil, errNotUsed
	}
	return f.CreateFunc(ctx, u)
}
func (f *FakeUserRepository) UpdateProfile(ctx context.Context, id user.UUID, upd user.ProfileUpdate) (*user.User, error) {
	if f.UpdateProfileFunc == nil {
		return nil, errNotUsed
	}
	return f.UpdateProfileFunc(ctx, id, upd)
}
func (f *FakeUserRepository) UpdatePassword(ctx context.Context, id user.UUID, hash string) error {
	if f.UpdatePasswordFn == nil {
		return errNotUsed
	}
	return f.UpdatePasswordFn(ctx, id, hash)
}
func (f *FakeUserRepository) UpdateRole(ctx context.Context, id user.UUID, role user.Role) (*user.User, error) {
	if f.UpdateRoleFunc == nil {
		return nil, errNotUsed
	}
	return f.UpdateRoleFunc(ctx, id, role)
}
func (f *FakeUserRepository) Delete(ctx context.Context, id user.UUID) (bool, error) {
	if f.DeleteFunc == nil {
		return false, errNotUsed
	}
	return f.DeleteFunc(ctx, id)
}

type FakeStudentRepository struct {
	CreateFunc       func(ctx context.Context, s student.Student, actorID student.UUID) (*student.Student, error)
	FetchByIDFunc    func(ctx context.Context, id student.UUID) (*student.Student, error)
	UpdateFunc       func(ctx context.Context, id student.UUID, upd student.Update, actorID student.UUID) (*student.Student, error)
	DeleteFunc       func(ctx context.Context, id student.UUID, actorID student.UUID) (bool, error)
	ListFunc         func(ctx context.Context, f student.Filter, p student.Page) (student.Students, int, error)
	ExistsFunc       func(ctx context.Context, field student.UniqueField, value string, excludeID student.UUID) (bool, error)
	FetchActionsFunc func(ctx context.Context, studentID student.UUID) (student.UserActions, error)
	KnownFunc        func(ctx context.Context, id student.UUID) (bool, error)
}

func (f *FakeStudentRepository) Create(ctx context.Context, s student.Student, actorID student.UUID) (*student.Student, error) {
	if f.CreateFunc == nil {
		return nil, errNotUsed
	}
	return f.CreateFunc(ctx, s, actorID)
}
func (f *FakeStudentRepository) FetchByID(ctx context.Context, id student.UUID) (*student.Student, error) {
	if f.FetchByIDFunc == nil {
		return nil, errNotUsed
	}
	return f.FetchByIDFunc(ctx, id)
}
func (f *FakeStudentRepository) Update(ctx context.Context, id student.UUID, upd student.Update, actorID student.UUID) (*student.Student, error) {
	if f.UpdateFunc == nil {
		return nil, errNotUsed
	}
	return f.UpdateFunc(ctx, id, upd, actorID)
}
func (f *FakeStudentRepository) Delete(ctx context.Context, id student.UUID, actorID student.UUID) (bool, error) {
	if f.DeleteFunc == nil {
		return false, errNotUsed
	}
	return f.DeleteFunc(ctx, id, actorID)
}
func (f *FakeStudentRepository) List(ctx context.Context, fl student.Filter, p student.Page) (student.Students, int, error) {
	if f.ListFunc == nil {
		return nil, 0, errNotUsed
	}
	return f.ListFunc(ctx, fl, p)
}
func (f *FakeStudentRepository) Exists(ctx context.Context, field student.UniqueField, value string, excludeID student.UUID) (bool, error) {
	if f.ExistsFunc == nil {
		return false, errNotUsed
	}
	return f.ExistsFunc(ctx, field, value, excludeID)
}
func (f *FakeStudentRepository) FetchActions(ctx context.Context, studentID student.UUID) (student.UserActions, error) {
	if f.FetchActionsFunc == nil {
		return nil, errNotUsed
	}
	return f.FetchActionsFunc(ctx, studentID)
}
func (f *FakeStudentRepository) Known(ctx context.Context, id student.UUID) (bool, error) {
	if f.KnownFunc == nil {
		return false, errNotUsed
	}
	return f.KnownFunc(ctx, id)
}

type capturePublisher struct {
	mu     sync.Mutex
	events []mq.Event
}

func (p *capturePublisher) Publish(e mq.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
}

func (p *capturePublisher) PublisherWorker(ctx context.Context) { <-ctx.Done() }

func (p *capturePublisher) Events() []mq.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]mq.Event(nil), p.events...)
}

func newCounter() *prometheus.CounterVec {
	return metrics.NewCounter(prometheus.NewRegistry())
}

func counterValue(c *prometheus.CounterVec, label string) float64 {
	return testutil.ToFloat64(c.WithLabelValues(label))
}

func testHasher() *password.Hasher { return password.NewWithCost(bcrypt.MinCost) }

func mustHash(t *testing.T, pw string) string {
	t.Helper()
	h, err := testHasher().Hash(pw)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	return h
}

func newUser(role user.Role) *user.User {
	return &user.User{
		UUID:  uuid.New(),
		Name:  "Ana Souza",
		Email: "ana@example.com",
		Role:  role,
	}
}

// byID serves FetchByID from a fixed set of users.
func byID(users ...*user.User) func(ctx context.Context, id user.UUID) (*user.User, error) {
	return func(_ context.Context, id user.UUID) (*user.User, error) {
		for _, u := range users {
			if u.UUID == id {
				return u, nil
			}
		}
		return nil, nil
	}
}
