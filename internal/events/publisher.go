package events

//go:generate go run go.uber.org/mock/mockgen -source=./publisher.go -destination=./mocks/publisher_mock.go -package=mocks

import (
	"context"

	"github.com/rs/zerolog/log"

	"shuttle/config"
	"shuttle/infras/kafka"
	"shuttle/infras/otel"
	"shuttle/shared/constant"
	"shuttle/shared/timezone"
)

const (
	TypeReservationCreated   = "reservation.created"
	TypeReservationConfirmed = "reservation.confirmed"
	TypeReservationRejected  = "reservation.rejected"
	TypeReservationCancelled = "reservation.cancelled"
)

type ReservationEvent struct {
	Type            string `json:"type"`
	ReservationID   string `json:"reservation_id"`
	CourtID         string `json:"court_id"`
	ReservationDate string `json:"reservation_date"`
	StartHour       int    `json:"start_hour"`
	EndHour         int    `json:"end_hour"`
	UserID          string `json:"user_id"`
	OccurredAt      string `json:"occurred_at"`
}

// Publisher emits reservation lifecycle events. Delivery is best effort:
// broker failures are logged and never surfaced to the request path.
type Publisher interface {
	PublishReservationEvent(ctx context.Context, event ReservationEvent)
}

type publisherImpl struct {
	client kafka.Client
	cfg    *config.Config
	otel   otel.Otel
}

func NewPublisher(client kafka.Client, cfg *config.Config, otel otel.Otel) Publisher {
	return &publisherImpl{
		client: client,
		cfg:    cfg,
		otel:   otel,
	}
}

func (p *publisherImpl) PublishReservationEvent(ctx context.Context, event ReservationEvent) {
	if !p.cfg.Kafka.Enable {
		return
	}

	ctx, scope := p.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".PublishReservationEvent")
	defer scope.End()

	if event.OccurredAt == "" {
		event.OccurredAt = timezone.Now().Format(constant.DateFormat)
	}

	scope.SetAttributes(map[string]any{
		"event.type":     event.Type,
		"reservation.id": event.ReservationID,
	})

	message := kafka.Message{
		Key:   event.ReservationID,
		Value: event,
	}

	if err := p.client.SendMessages(ctx, p.cfg.Kafka.Topics.ReservationEvents, message); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("type", event.Type).Str("reservation_id", event.ReservationID).Msg("failed to publish reservation event")
	}
}
