package bidding

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"procurehub/internal/audit"
	model "procurehub/internal/models"
	"procurehub/internal/notify"
	"procurehub/internal/procureerrors"
	"procurehub/internal/repository"
	tender "procurehub/internal/tenderService"
	"procurehub/utils"
)

// GraceWindow is how long after submission a vendor can cancel a bid
// outright. Past it, only a recorded withdrawal is available.
const GraceWindow = 5 * time.Minute

// Withdrawal modes returned by CancelOrWithdraw.
const (
	ModeCancelled = "cancelled" // hard delete within the grace window
	ModeWithdrawn = "withdrawn" // soft withdrawal after it
)

// Service implements bid submission, amendment and the cancellation /
// withdrawal split.
type Service struct {
	tenders  repository.TenderDB
	bids     repository.BidDB
	notifier notify.Notifier
	auditor  audit.Auditor
	now      func() time.Time
}

// NewService creates a bid Service instance.
func NewService(tenders repository.TenderDB, bids repository.BidDB, notifier notify.Notifier, auditor audit.Auditor) *Service {
	return &Service{
		tenders:  tenders,
		bids:     bids,
		notifier: notifier,
		auditor:  auditor,
		now:      time.Now,
	}
}

// WithClock replaces the time source, so tests can cross the grace window
// and tender deadlines without sleeping.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// SubmitBidInput carries the vendor-supplied bid fields. Totals are always
// recomputed server-side.
type SubmitBidInput struct {
	TenderID                string
	UnitPrice               decimal.Decimal
	Quantity                int
	IsVATRegistered         bool
	DeliveryTimeline        int // days
	WarrantyPeriod          int // months
	WarrantyTerms           string
	Remarks                 string
	TechnicalSpecifications string
}

// AmendBidInput patches an existing bid; nil fields are left unchanged.
type AmendBidInput struct {
	UnitPrice               *decimal.Decimal
	Quantity                *int
	IsVATRegistered         *bool
	DeliveryTimeline        *int
	WarrantyPeriod          *int
	WarrantyTerms           *string
	Remarks                 *string
	TechnicalSpecifications *string
}

// Submit places a new bid for the acting vendor. Preconditions are checked
// in a fixed order so callers get stable errors: tender exists, tender
// accepts bids, vendor is allowed in, vendor has no existing bid, input is
// valid. The repository re-checks the racy ones atomically.
func (s *Service) Submit(actor model.Actor, in SubmitBidInput) (model.Bid, error) {
	if actor.Role != model.RoleVendor {
		return model.Bid{}, fmt.Errorf("submit bid as %s: %w", actor.Role, procureerrors.ErrForbidden)
	}

	now := s.now()
	t, err := s.tenders.GetTender(in.TenderID)
	if err != nil {
		return model.Bid{}, fmt.Errorf("service: %w", err)
	}
	if !t.CanAcceptBids(now) {
		// Repair stale expiry state on the way out.
		if _, sweepErr := s.tenders.SweepExpired(now); sweepErr != nil {
			utils.Warn("sweep after closed-tender refusal failed", map[string]any{"error": sweepErr.Error()})
		}
		return model.Bid{}, fmt.Errorf("tender %s is not accepting bids: %w", t.ID, procureerrors.ErrTenderClosed)
	}
	if t.IsPrivate && !t.IsInvited(actor.ID) {
		return model.Bid{}, fmt.Errorf("tender %s is private: %w", t.ID, procureerrors.ErrForbidden)
	}
	// The occupied-slot refusal wins over field validation; any surviving
	// row blocks, including a withdrawn one.
	existing, err := s.bids.ListBidsForVendor(actor.ID)
	if err != nil {
		return model.Bid{}, fmt.Errorf("service: %w", err)
	}
	for _, prev := range existing {
		if prev.TenderID == in.TenderID {
			return model.Bid{}, fmt.Errorf("create bid for tender %s by vendor %s: %w", in.TenderID, actor.ID, procureerrors.ErrDuplicateBid)
		}
	}
	if err := validateBidFields(in.UnitPrice, in.Quantity, in.DeliveryTimeline); err != nil {
		return model.Bid{}, err
	}

	b := model.Bid{
		ID:                      utils.GenerateID(),
		TenderID:                in.TenderID,
		VendorID:                actor.ID,
		UnitPrice:               in.UnitPrice,
		Quantity:                in.Quantity,
		IsVATRegistered:         in.IsVATRegistered,
		DeliveryTimeline:        in.DeliveryTimeline,
		WarrantyPeriod:          in.WarrantyPeriod,
		WarrantyTerms:           in.WarrantyTerms,
		Remarks:                 in.Remarks,
		TechnicalSpecifications: in.TechnicalSpecifications,
		Status:                  model.BidPending,
		CreatedAt:               now,
		UpdatedAt:               now,
	}
	b.ComputeTotals()

	if err := s.bids.CreateBid(&b, now); err != nil {
		return model.Bid{}, fmt.Errorf("service: %w", err)
	}

	s.auditor.Record(audit.Entry{
		ActorID:     actor.ID,
		Action:      audit.ActionBidSubmit,
		Description: fmt.Sprintf("Submitted bid for RFQ: %s", t.ReferenceID),
		EntityType:  "Bid",
		EntityID:    b.ID,
	})

	// The buyer learns a bid arrived, never its amount.
	s.notifier.Notify(notify.Event{
		RecipientID: t.CreatedBy,
		Type:        notify.EventBidReceived,
		TenderID:    t.ID,
		BidID:       b.ID,
		Message:     fmt.Sprintf("A new bid was received for %q", t.Title),
	})
	s.notifier.Notify(notify.Event{
		RecipientID: actor.ID,
		Type:        notify.EventBidSubmitted,
		TenderID:    t.ID,
		BidID:       b.ID,
		Message:     fmt.Sprintf("Your bid for %q was submitted", t.Title),
	})

	return b, nil
}

// Amend updates the vendor's own pending bid while the tender still
// accepts bids. The buyer is deliberately not notified; telling them a
// bid changed would leak activity on a sealed tender.
func (s *Service) Amend(actor model.Actor, bidID string, in AmendBidInput) (model.Bid, error) {
	now := s.now()
	b, err := s.bids.GetBid(bidID)
	if err != nil {
		return model.Bid{}, fmt.Errorf("service: %w", err)
	}
	if b.VendorID != actor.ID && !actor.IsAdmin() {
		return model.Bid{}, fmt.Errorf("bid %s belongs to another vendor: %w", bidID, procureerrors.ErrForbidden)
	}
	if b.Status != model.BidPending {
		return model.Bid{}, fmt.Errorf("bid %s is %s: %w", bidID, b.Status, procureerrors.ErrInvalidState)
	}
	t, err := s.tenders.GetTender(b.TenderID)
	if err != nil {
		return model.Bid{}, fmt.Errorf("service: %w", err)
	}
	if !t.CanAcceptBids(now) {
		return model.Bid{}, fmt.Errorf("tender %s is not accepting bids: %w", t.ID, procureerrors.ErrTenderClosed)
	}

	if in.UnitPrice != nil {
		b.UnitPrice = *in.UnitPrice
	}
	if in.Quantity != nil {
		b.Quantity = *in.Quantity
	}
	if in.IsVATRegistered != nil {
		b.IsVATRegistered = *in.IsVATRegistered
	}
	if in.DeliveryTimeline != nil {
		b.DeliveryTimeline = *in.DeliveryTimeline
	}
	if in.WarrantyPeriod != nil {
		b.WarrantyPeriod = *in.WarrantyPeriod
	}
	if in.WarrantyTerms != nil {
		b.WarrantyTerms = *in.WarrantyTerms
	}
	if in.Remarks != nil {
		b.Remarks = *in.Remarks
	}
	if in.TechnicalSpecifications != nil {
		b.TechnicalSpecifications = *in.TechnicalSpecifications
	}

	if err := validateBidFields(b.UnitPrice, b.Quantity, b.DeliveryTimeline); err != nil {
		return model.Bid{}, err
	}
	b.ComputeTotals()

	updated, err := s.bids.UpdateBid(b, now)
	if err != nil {
		return model.Bid{}, fmt.Errorf("service: %w", err)
	}

	s.auditor.Record(audit.Entry{
		ActorID:     actor.ID,
		Action:      audit.ActionBidUpdate,
		Description: fmt.Sprintf("Updated bid for RFQ: %s", t.ReferenceID),
		EntityType:  "Bid",
		EntityID:    updated.ID,
	})
	return updated, nil
}

// CancelOrWithdraw retracts the vendor's bid. Within GraceWindow of
// submission the bid row is deleted and the vendor may bid again. After
// it, the bid is marked withdrawn: the row stays for the audit trail and
// blocks resubmission. Returns which mode applied.
func (s *Service) CancelOrWithdraw(actor model.Actor, bidID, reason string) (string, error) {
	now := s.now()
	b, err := s.bids.GetBid(bidID)
	if err != nil {
		return "", fmt.Errorf("service: %w", err)
	}
	if b.VendorID != actor.ID && !actor.IsAdmin() {
		return "", fmt.Errorf("bid %s belongs to another vendor: %w", bidID, procureerrors.ErrForbidden)
	}
	if b.Status != model.BidPending {
		return "", fmt.Errorf("bid %s is %s: %w", bidID, b.Status, procureerrors.ErrInvalidState)
	}

	t, err := s.tenders.GetTender(b.TenderID)
	if err != nil {
		return "", fmt.Errorf("service: %w", err)
	}

	if now.Sub(b.CreatedAt) <= GraceWindow {
		if err := s.bids.DeleteBid(bidID, now); err != nil {
			return "", fmt.Errorf("service: %w", err)
		}
		s.auditor.Record(audit.Entry{
			ActorID:     actor.ID,
			Action:      audit.ActionBidCancel,
			Description: fmt.Sprintf("Cancelled bid for RFQ: %s", t.ReferenceID),
			EntityType:  "Bid",
			EntityID:    bidID,
		})
		return ModeCancelled, nil
	}

	if _, err := s.bids.WithdrawBid(bidID, reason, now); err != nil {
		return "", fmt.Errorf("service: %w", err)
	}
	s.auditor.Record(audit.Entry{
		ActorID:     actor.ID,
		Action:      audit.ActionBidWithdraw,
		Description: fmt.Sprintf("Withdrew bid for RFQ: %s", t.ReferenceID),
		EntityType:  "Bid",
		EntityID:    bidID,
	})
	return ModeWithdrawn, nil
}

// GetBid returns one bid as the actor may see it. The owning vendor always
// sees full pricing; the tender owner and admins see pricing only once the
// sealed gate allows it; anyone else is refused. A read that crosses the
// gate marks the tender's bids revealed, same as listing them would.
func (s *Service) GetBid(actor model.Actor, bidID string) (model.BidView, error) {
	now := s.now()
	b, err := s.bids.GetBid(bidID)
	if err != nil {
		return model.BidView{}, fmt.Errorf("service: %w", err)
	}
	t, err := s.tenders.GetTender(b.TenderID)
	if err != nil {
		return model.BidView{}, fmt.Errorf("service: %w", err)
	}
	if actor.ID != b.VendorID && actor.ID != t.CreatedBy && !actor.IsAdmin() {
		return model.BidView{}, fmt.Errorf("bid %s: %w", bidID, procureerrors.ErrForbidden)
	}
	if tender.PricingVisible(t, now) {
		b.IsRevealed = true
		if err := tender.RevealBids(s.bids, s.auditor, actor, t); err != nil {
			return model.BidView{}, fmt.Errorf("service: %w", err)
		}
	}
	priced := tender.CanSeeBidPricing(t, b, actor, now)
	return model.NewBidView(b, priced), nil
}

// ListVendorBids returns all of the vendor's own bids, fully priced.
func (s *Service) ListVendorBids(actor model.Actor) ([]model.BidView, error) {
	bids, err := s.bids.ListBidsForVendor(actor.ID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list vendor bids: %w", err)
	}
	views := make([]model.BidView, 0, len(bids))
	for _, b := range bids {
		views = append(views, model.NewBidView(b, true))
	}
	return views, nil
}

func validateBidFields(unitPrice decimal.Decimal, quantity, deliveryTimeline int) error {
	if !unitPrice.IsPositive() {
		return fmt.Errorf("unit price must be positive: %w", procureerrors.ErrInvalidInput)
	}
	if quantity <= 0 {
		return fmt.Errorf("quantity must be positive: %w", procureerrors.ErrInvalidInput)
	}
	if deliveryTimeline <= 0 {
		return fmt.Errorf("delivery timeline must be positive: %w", procureerrors.ErrInvalidInput)
	}
	return nil
}
