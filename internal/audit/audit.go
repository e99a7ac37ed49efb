package audit

import (
	"procurehub/utils"
)

//go:generate mockgen -source=audit.go -destination=mock_audit.go -package=audit

// Action names a logical state transition. Exactly one record is emitted
// per transition, never per internal sub-step.
type Action string

const (
	ActionRFQCreate   Action = "rfq_create"
	ActionRFQUpdate   Action = "rfq_update"
	ActionRFQPublish  Action = "rfq_publish"
	ActionRFQCancel   Action = "rfq_cancel"
	ActionRFQDelete   Action = "rfq_delete"
	ActionRFQAward    Action = "rfq_award"
	ActionBidSubmit   Action = "bid_submit"
	ActionBidUpdate   Action = "bid_update"
	ActionBidCancel   Action = "bid_cancel"
	ActionBidWithdraw Action = "bid_withdraw"
	ActionBidsReveal  Action = "bids_reveal"
)

// Entry is one audit record.
type Entry struct {
	ActorID     string
	Action      Action
	Description string
	EntityType  string // "RFQ" or "Bid"
	EntityID    string
}

// Auditor records state-changing operations for compliance review.
type Auditor interface {
	Record(entry Entry)
}

// LogAuditor writes audit entries to the structured log.
type LogAuditor struct{}

func NewLogAuditor() *LogAuditor { return &LogAuditor{} }

func (a *LogAuditor) Record(entry Entry) {
	utils.Info("audit", map[string]any{
		"actor_id":    entry.ActorID,
		"action":      string(entry.Action),
		"description": entry.Description,
		"entity_type": entry.EntityType,
		"entity_id":   entry.EntityID,
	})
}
