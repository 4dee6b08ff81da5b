package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Counter label values.
const (
	RequestsTotal        = "app_requests_total"
	UserRegisteredTotal  = "user_registered_total"
	LoginSucceededTotal  = "login_succeeded_total"
	LoginFailedTotal     = "login_failed_total"
	UserUpdatedTotal     = "user_updated_total"
	UserDeletedTotal     = "user_deleted_total"
	PasswordChangedTotal = "password_changed_total"
	RoleChangedTotal     = "role_changed_total"
	StudentCreatedTotal  = "student_created_total"
	StudentUpdatedTotal  = "student_updated_total"
	StudentDeletedTotal  = "student_deleted_total"
	StudentConflictTotal = "student_conflict_total"
	RateLimitedTotal     = "rate_limited_total"
	EventDroppedTotal    = "event_dropped_total"
	EventPublishedTotal  = "event_published_total"
)

// NewCounter registers the service-wide counter on reg. A nil reg uses the
// default prometheus registry.
func NewCounter(reg prometheus.Registerer) *prometheus.CounterVec {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	return promauto.With(reg).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "studentmanager",
			Name:      "general_counters",
		},
		[]string{"result"})
}
