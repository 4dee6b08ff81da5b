package mq

import (
	"context"
	"encoding/json"
	"net"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"student-manager-api/config"
	"student-manager-api/internal/domain/student"
	"student-manager-api/internal/infrastructure/metrics"
)

// "Rely on metrics, not guesses."
const bufferSize = 128

const (
	RoutingKeyCreated = "student.created"
	RoutingKeyUpdated = "student.updated"
	RoutingKeyDeleted = "student.deleted"
)

var RoutingKeys = []string{RoutingKeyCreated, RoutingKeyUpdated, RoutingKeyDeleted}

type (
	InputCh  = chan Event
	RabbitMQ struct {
		cfg      config.MQ
		log      *zap.Logger
		mCounter *prometheus.CounterVec
		conn     *amqp091.Connection
		pubCh    *amqp091.Channel
		in       InputCh
	}
	StudentPayload struct {
		ID        uuid.UUID  `json:"id"`
		Name      string     `json:"name"`
		Email     string     `json:"email"`
		RA        string     `json:"ra"`
		CPF       string     `json:"cpf"`
		CreatedAt time.Time  `json:"createdAt"`
		UpdatedAt time.Time  `json:"updatedAt"`
		DeletedAt *time.Time `json:"deletedAt,omitempty"`
	}
	Event struct {
		Id        uuid.UUID      `json:"event_id"`
		TS        time.Time      `json:"time_stamp"`
		Action    student.Action `json:"event_action"`
		StudentID string         `json:"student_id"`
		ActorID   string         `json:"actor_id"`
		Payload   StudentPayload `json:"student_payload"`
	}
)

func NewStudentEvent(action student.Action, s *student.Student, actorID student.UUID) Event {
	return Event{
		Id:        uuid.New(),
		TS:        time.Now().UTC(),
		Action:    action,
		StudentID: s.UUID.String(),
		ActorID:   actorID.String(),
		Payload: StudentPayload{
			ID:        s.UUID,
			Name:      s.Name,
			Email:     s.Email,
			RA:        s.RA,
			CPF:       s.CPF,
			CreatedAt: s.CreatedAt,
			UpdatedAt: s.UpdatedAt,
			DeletedAt: s.DeletedAt,
		},
	}
}

func (e Event) RoutingKey() string {
	switch e.Action {
	case student.ActionCreated:
		return RoutingKeyCreated
	case student.ActionUpdated:
		return RoutingKeyUpdated
	default:
		return RoutingKeyDeleted
	}
}

func New(cfg config.MQ, logger *zap.Logger, mCounter *prometheus.CounterVec) *RabbitMQ {
	return &RabbitMQ{
		cfg:      cfg,
		log:      logger,
		mCounter: mCounter,
		in:       make(chan Event, bufferSize),
	}
}

func (r *RabbitMQ) Connect(ctx context.Context, dsn string) error {
	dialer := &net.Dialer{Timeout: 10 * time.Second}

	amqpCfg := amqp091.Config{
		Heartbeat: 10 * time.Second,
		Locale:    "en_US",
		Properties: amqp091.Table{
			"connection_name": "studentmanagerapi",
		},
		Dial: func(network, addr string) (net.Conn, error) {
			return dialer.DialContext(ctx, network, addr)
		},
	}

	var err error
	r.conn, err = amqp091.DialConfig(dsn, amqpCfg)
	if err != nil {
		return err
	}
	r.pubCh, err = r.conn.Channel()
	if err != nil {
		_ = r.conn.Close()
		return err
	}

	r.log.Info("rabbitmq connected successfully")

	return nil
}

func (r *RabbitMQ) Init() error {
	if err := r.pubCh.ExchangeDeclare(
		r.cfg.Exchange,
		r.cfg.ExchangeType,
		true,
		false,
		false,
		false,
		nil,
	); err != nil {
		_ = r.pubCh.Close()
		return err
	}
	q, err := r.pubCh.QueueDeclare(
		r.cfg.QueueName,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return err
	}

	for _, rk := range RoutingKeys {
		if err = r.pubCh.QueueBind(q.Name, rk, r.cfg.Exchange, false, nil); err != nil {
			return err
		}
	}

	return nil
}

// Publish hands e to the publisher worker without blocking. When the buffer
// is full the event is dropped and counted.
func (r *RabbitMQ) Publish(e Event) {
	select {
	case r.in <- e:
	default:
		r.log.Warn("mq buffer full, event dropped",
			zap.Stringer("event_id", e.Id),
			zap.String("action", string(e.Action)),
			zap.String("student_id", e.StudentID),
		)
		if r.mCounter != nil {
			r.mCounter.WithLabelValues(metrics.EventDroppedTotal).Inc()
		}
	}
}

func (r *RabbitMQ) PublisherWorker(ctx context.Context) {
	r.log.Info("starting publisher worker")

	defer func() {
		r.log.Info("publisher worker gracefully stopped")
	}()

	for {
		select {
		case e := <-r.in:
			if err := r.publish(ctx, e); err != nil {
				// alert
				r.log.Error("mq publish error", zap.Error(err), zap.Stringer("event_id", e.Id))
				continue
			}
			if r.mCounter != nil {
				r.mCounter.WithLabelValues(metrics.EventPublishedTotal).Inc()
			}
		case <-ctx.Done():
			if r.pubCh != nil {
				_ = r.pubCh.Close()
			}
			return
		}
	}
}

func (r *RabbitMQ) publish(ctx context.Context, e Event) error {
	b, err := json.Marshal(e)
	if err != nil {
		return err
	}

	pub := amqp091.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp091.Persistent,
		MessageId:    e.Id.String(),
		Timestamp:    e.TS,
		Type:         string(e.Action),
		Body:         b,
	}

	return r.pubCh.PublishWithContext(
		ctx,
		r.cfg.Exchange,
		e.RoutingKey(),
		false,
		false,
		pub,
	)
}

func (r *RabbitMQ) GetConn() *amqp091.Connection { return r.conn }

func (r *RabbitMQ) Close() {
	if r.conn != nil && !r.conn.IsClosed() {
		_ = r.conn.Close()
	}
}

// Discard is the publisher used when messaging is disabled.
type Discard struct{}

func (Discard) Publish(Event) {}

func (Discard) PublisherWorker(ctx context.Context) { <-ctx.Done() }
