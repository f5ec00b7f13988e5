package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-HeliTourService/pkg/logger"
)

type recordingChannel struct {
	exchange string
	key      string
	msg      amqp.Publishing
	err      error
}

func (c *recordingChannel) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	c.exchange = exchange
	c.key = key
	c.msg = msg
	return c.err
}

func TestPublisher_PublishReservationCancelled(t *testing.T) {
	ch := &recordingChannel{}
	p := NewPublisher(ch, "heli.reservations", logger.NewNop())

	err := p.PublishReservationCancelled(context.Background(), ReservationCancelled{
		BookingNumber:   "HT-20240615-1A2B3C",
		TotalPrice:      110000,
		FeePercentage:   50,
		CancellationFee: 55000,
		RefundAmount:    55000,
		OccurredAt:      time.Date(2024, 6, 13, 10, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	assert.Equal(t, "heli.reservations", ch.exchange)
	assert.Equal(t, RoutingReservationCancelled, ch.key)
	assert.Equal(t, "application/json", ch.msg.ContentType)
	assert.Equal(t, amqp.Persistent, ch.msg.DeliveryMode)

	var got ReservationCancelled
	require.NoError(t, json.Unmarshal(ch.msg.Body, &got))
	assert.Equal(t, int64(55000), got.RefundAmount)
	assert.Equal(t, int64(55000), got.CancellationFee)
}

func TestPublisher_Errors(t *testing.T) {
	ch := &recordingChannel{err: errors.New("channel closed")}
	p := NewPublisher(ch, "heli.reservations", logger.NewNop())

	assert.Error(t, p.PublishRefundProcessed(context.Background(), RefundProcessed{}))
}

func TestPublisher_Disabled(t *testing.T) {
	p := NewPublisher(nil, "heli.reservations", logger.NewNop())
	assert.NoError(t, p.PublishReservationCreated(context.Background(), ReservationCreated{}))
}
