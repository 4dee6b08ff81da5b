package ports

import (
	"context"

	"github.com/rabbitmq/amqp091-go"

	"student-manager-api/internal/infrastructure/mq"
)

// EventPublisher must never block the caller.
type EventPublisher interface {
	Publish(e mq.Event)
	PublisherWorker(ctx context.Context)
}

type RabbitMQ interface {
	EventPublisher
	Connect(ctx context.Context, dsn string) error
	Init() error
	GetConn() *amqp091.Connection
	Close()
}
