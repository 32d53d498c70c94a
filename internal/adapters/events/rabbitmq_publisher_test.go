package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/SscSPs/banking_app/internal/core/domain"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPublishing(t *testing.T) {
	occurred := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	event := domain.MoneyMovedEvent{
		EventID:      "0f8fad5b-d9cb-469f-a165-70867728950e",
		EventType:    domain.EventTransferCompleted,
		OwnerID:      "owner-1",
		SenderIBAN:   "LT000000001000000001",
		ReceiverIBAN: "LT000000002000000002",
		Amount:       decimal.RequireFromString("30.50"),
		OccurredAt:   occurred,
	}

	msg, err := newPublishing(event)
	require.NoError(t, err)

	assert.Equal(t, "application/json", msg.ContentType)
	assert.Equal(t, amqp.Persistent, msg.DeliveryMode)
	assert.Equal(t, event.EventID, msg.MessageId)
	assert.Equal(t, "transfer.completed", msg.Type)
	assert.Equal(t, occurred, msg.Timestamp)

	var body map[string]any
	require.NoError(t, json.Unmarshal(msg.Body, &body))
	assert.Equal(t, "transfer.completed", body["eventType"])
	assert.Equal(t, "LT000000001000000001", body["senderIban"])
	assert.Equal(t, "30.5", body["amount"])
}

func TestNewPublishing_TopUpOmitsSender(t *testing.T) {
	msg, err := newPublishing(domain.MoneyMovedEvent{
		EventType:    domain.EventAccountToppedUp,
		ReceiverIBAN: "LT000000001000000001",
		Amount:       decimal.NewFromInt(50),
	})
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(msg.Body, &body))
	_, hasSender := body["senderIban"]
	assert.False(t, hasSender)
	assert.False(t, msg.Timestamp.IsZero())
}

func TestNoopPublisher(t *testing.T) {
	assert.NoError(t, NoopPublisher{}.PublishMoneyMoved(context.Background(), domain.MoneyMovedEvent{}))
}
