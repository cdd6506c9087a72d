package events

//go:generate go run go.uber.org/mock/mockgen -source=./events.go -destination=./mocks/events_mock.go -package=mocks

import (
	"context"
	"encoding/json"
	"fmt"
	"roomify/config"
	"roomify/infras/kafka"
	"roomify/infras/otel"
	"roomify/shared/constant"
	"time"

	goRedis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	TypeBookingCreated    = "booking.created"
	TypeBookingApproved   = "booking.approved"
	TypeBookingRejected   = "booking.rejected"
	TypeBookingCancelled  = "booking.cancelled"
	TypeBookingCheckedIn  = "booking.checked_in"
	TypeBookingCheckedOut = "booking.checked_out"
	TypeRoomCreated       = "room.created"
	TypeRoomStatusChanged = "room.status_changed"
)

// Event describes a committed change. It is published after the store lock
// is released, so subscribers may observe it slightly after readers do.
type Event struct {
	Type       string    `json:"type"`
	BookingID  string    `json:"booking_id,omitempty"`
	RoomID     string    `json:"room_id"`
	UserID     string    `json:"user_id,omitempty"`
	ActorID    string    `json:"actor_id"`
	Status     string    `json:"status"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Key groups events of one booking (or room) on the same partition.
func (e Event) Key() string {
	if e.BookingID != constant.Empty {
		return e.BookingID
	}

	return e.RoomID
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// New picks the publisher named by EVENTS_DRIVER.
func New(cfg *config.Config, redisClient *goRedis.Client, ot otel.Otel) Publisher {
	switch cfg.Events.Driver {
	case constant.EventsDriverKafka:
		log.Info().Str("topic", cfg.Events.Topic).Msg("Publishing booking events to Kafka")

		return NewKafkaPublisher(kafka.New(cfg), cfg.Events.Topic, ot)
	case constant.EventsDriverRedis:
		log.Info().Str("channel", cfg.Events.Channel).Msg("Publishing booking events to Redis")

		return NewRedisPublisher(redisClient, cfg.Events.Channel, ot)
	default:
		log.Info().Msg("Booking events are not published")

		return NewNoopPublisher()
	}
}

type kafkaPublisher struct {
	client kafka.Client
	topic  string
	otel   otel.Otel
}

func NewKafkaPublisher(client kafka.Client, topic string, ot otel.Otel) Publisher {
	return &kafkaPublisher{client: client, topic: topic, otel: ot}
}

func (p *kafkaPublisher) Publish(ctx context.Context, event Event) (err error) {
	ctx, scope := p.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".Kafka.Publish")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute("event.type", event.Type)

	if err = p.client.SendMessages(ctx, p.topic, kafka.Message{Key: event.Key(), Value: event}); err != nil {
		return fmt.Errorf("failed to publish %s: %w", event.Type, err)
	}

	return nil
}

func (p *kafkaPublisher) Close() error {
	return p.client.Close() // nolint:wrapcheck
}

type redisPublisher struct {
	client  *goRedis.Client
	channel string
	otel    otel.Otel
}

func NewRedisPublisher(client *goRedis.Client, channel string, ot otel.Otel) Publisher {
	return &redisPublisher{client: client, channel: channel, otel: ot}
}

func (p *redisPublisher) Publish(ctx context.Context, event Event) (err error) {
	ctx, scope := p.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".Redis.Publish")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute("event.type", event.Type)

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", event.Type, err)
	}

	if err = p.client.Publish(ctx, p.channel, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish %s: %w", event.Type, err)
	}

	return nil
}

// Close is a no-op: the redis client is shared and closed by its owner.
func (p *redisPublisher) Close() error {
	return nil
}

type noopPublisher struct{}

func NewNoopPublisher() Publisher {
	return noopPublisher{}
}

func (noopPublisher) Publish(context.Context, Event) error {
	return nil
}

func (noopPublisher) Close() error {
	return nil
}

// Emit publishes events in order on the calling goroutine, so the caller
// waits for the publisher. A cancelled caller context does not abort
// delivery. Failures are logged and otherwise ignored; the change they
// describe is already committed.
func Emit(ctx context.Context, publisher Publisher, evs ...Event) {
	c := context.WithoutCancel(ctx)

	for _, ev := range evs {
		if err := publisher.Publish(c, ev); err != nil {
			log.Error().Err(err).Str("type", ev.Type).Str("key", ev.Key()).Msg("failed to publish event")
		}
	}
}
