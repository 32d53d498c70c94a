package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MoneyMovedEventType names the events emitted after a committed balance change.
type MoneyMovedEventType string

const (
	EventAccountToppedUp   MoneyMovedEventType = "account.topped_up"
	EventTransferCompleted MoneyMovedEventType = "transfer.completed"
)

// MoneyMovedEvent is published once a top-up or transfer has been committed.
type MoneyMovedEvent struct {
	EventID      string              `json:"eventId"`
	EventType    MoneyMovedEventType `json:"eventType"`
	OwnerID      string              `json:"ownerId"`
	SenderIBAN   string              `json:"senderIban,omitempty"`
	ReceiverIBAN string              `json:"receiverIban"`
	Amount       decimal.Decimal     `json:"amount"`
	OccurredAt   time.Time           `json:"occurredAt"`
}
