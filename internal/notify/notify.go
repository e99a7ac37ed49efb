package notify

import (
	"procurehub/utils"
)

//go:generate mockgen -source=notify.go -destination=mock_notify.go -package=notify

// EventType names a notification the core emits to participants.
type EventType string

const (
	EventBidReceived   EventType = "bid_received"
	EventBidSubmitted  EventType = "bid_submitted"
	EventTenderAwarded EventType = "tender_awarded"
	EventTenderLost    EventType = "tender_lost"
	EventPrivateInvite EventType = "private_invite"
)

// Event is one notification addressed to a single recipient.
type Event struct {
	RecipientID string
	Type        EventType
	TenderID    string
	BidID       string
	Message     string
}

// Notifier delivers events to participants. Delivery and retry are the
// collaborator's responsibility; the core fires and forgets.
type Notifier interface {
	Notify(event Event)
}

// LogNotifier writes every event to the structured log. It stands in for a
// real delivery service in development and tests.
type LogNotifier struct{}

func NewLogNotifier() *LogNotifier { return &LogNotifier{} }

func (n *LogNotifier) Notify(event Event) {
	utils.Info("notification", map[string]any{
		"recipient_id": event.RecipientID,
		"type":         string(event.Type),
		"tender_id":    event.TenderID,
		"bid_id":       event.BidID,
		"message":      event.Message,
	})
}
