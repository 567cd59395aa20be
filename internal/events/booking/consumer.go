package booking

import (
	"context"
	"venuebook/infras/kafka"
	"venuebook/infras/metrics"
	"venuebook/infras/otel"
	"venuebook/internal/domains/booking/model/dto"
	"venuebook/shared/constant"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
)

const (
	resultOK      = "ok"
	resultInvalid = "invalid"
	unknownType   = "unknown"
)

var knownEvents = map[string]bool{
	constant.BookingEventCreated:       true,
	constant.BookingEventUpdated:       true,
	constant.BookingEventStatusChanged: true,
	constant.BookingEventDeleted:       true,
}

// Consumer records booking events published by the API as an audit trail.
type Consumer struct {
	otel    otel.Otel
	metrics *metrics.Metrics
}

func NewConsumer(otel otel.Otel, metrics *metrics.Metrics) *Consumer {
	return &Consumer{
		otel:    otel,
		metrics: metrics,
	}
}

func (c *Consumer) Handle(message kafkaGo.Message) {
	_, scope := c.otel.NewScope(context.Background(), constant.OtelEventScopeName, constant.OtelEventScopeName+".BookingEvent")
	defer scope.End()

	event, err := kafka.DecodeKafkaMessage[dto.Event](message)
	if err != nil {
		scope.TraceError(err)
		c.count(unknownType, resultInvalid)

		return
	}

	if !knownEvents[event.Type] || event.BookingID == constant.Empty {
		log.Warn().Str("type", event.Type).Str("key", string(message.Key)).Msg("discarding malformed booking event")
		c.count(unknownType, resultInvalid)

		return
	}

	scope.SetAttributes(map[string]any{
		"event.type": event.Type,
		"booking.id": event.BookingID,
	})

	log.Info().
		Str("type", event.Type).
		Str("booking_id", event.BookingID).
		Str("venue_id", event.VenueID).
		Str("user_id", event.UserID).
		Str("actor_id", event.ActorID).
		Str("reservation_date", event.ReservationDate).
		Str("status", event.Status).
		Str("occurred_at", event.OccurredAt).
		Msg("booking event")

	c.count(event.Type, resultOK)
}

func (c *Consumer) count(eventType, result string) {
	if c.metrics == nil {
		return
	}

	c.metrics.BookingEventsConsumed.WithLabelValues(eventType, result).Inc()
}
