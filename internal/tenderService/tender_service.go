package tender

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"procurehub/internal/audit"
	model "procurehub/internal/models"
	"procurehub/internal/notify"
	"procurehub/internal/procureerrors"
	"procurehub/internal/repository"
	"procurehub/utils"
)

// Service implements the tender lifecycle: creation, editing, publishing,
// removal, expiry sweeping and the award workflow.
type Service struct {
	tenders  repository.TenderDB
	bids     repository.BidDB
	notifier notify.Notifier
	auditor  audit.Auditor
	now      func() time.Time
}

// NewService creates a tender Service instance.
func NewService(tenders repository.TenderDB, bids repository.BidDB, notifier notify.Notifier, auditor audit.Auditor) *Service {
	return &Service{
		tenders:  tenders,
		bids:     bids,
		notifier: notifier,
		auditor:  auditor,
		now:      time.Now,
	}
}

// WithClock replaces the time source. Deadline behavior is real-time, so
// tests need to move the clock rather than sleep.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// CreateTenderInput carries the caller-supplied tender fields. Derived
// fields (reference, counter, timestamps) are never accepted from input.
type CreateTenderInput struct {
	Title              string
	Description        string
	Items              []model.LineItem
	Category           string
	BudgetPrice        *decimal.Decimal
	ShowBudget         bool
	ClosingDate        time.Time
	Sealed             *bool // nil defaults to true
	Private            bool
	InvitedVendors     []string
	DeliveryLocation   string
	DeliveryDeadline   *time.Time
	TermsAndConditions string
	Status             model.TenderStatus // draft or open; empty defaults to open
}

// UpdateTenderInput patches a tender; nil fields are left unchanged.
type UpdateTenderInput struct {
	Title              *string
	Description        *string
	Items              []model.LineItem
	Category           *string
	BudgetPrice        *decimal.Decimal
	ShowBudget         *bool
	ClosingDate        *time.Time
	Sealed             *bool
	Private            *bool
	InvitedVendors     []string
	DeliveryLocation   *string
	DeliveryDeadline   *time.Time
	TermsAndConditions *string
}

// CreateTender validates and stores a new tender owned by the acting buyer.
func (s *Service) CreateTender(actor model.Actor, in CreateTenderInput) (model.Tender, error) {
	if actor.Role != model.RoleBuyer && !actor.IsAdmin() {
		return model.Tender{}, fmt.Errorf("create tender as %s: %w", actor.Role, procureerrors.ErrForbidden)
	}

	now := s.now()
	if err := validateTenderFields(in.Title, in.Description, in.Items, in.Category, in.ClosingDate, now); err != nil {
		return model.Tender{}, err
	}

	status := in.Status
	if status == "" {
		status = model.TenderOpen
	}
	if status != model.TenderDraft && status != model.TenderOpen {
		return model.Tender{}, fmt.Errorf("create tender with status %s: %w", status, procureerrors.ErrInvalidInput)
	}

	sealed := true
	if in.Sealed != nil {
		sealed = *in.Sealed
	}

	t := model.Tender{
		ID:                 utils.GenerateID(),
		Title:              in.Title,
		Description:        in.Description,
		Items:              in.Items,
		Category:           in.Category,
		BudgetPrice:        in.BudgetPrice,
		ShowBudget:         in.ShowBudget,
		ClosingDate:        in.ClosingDate,
		Status:             status,
		IsSealed:           sealed,
		IsPrivate:          in.Private,
		InvitedVendors:     in.InvitedVendors,
		CreatedBy:          actor.ID,
		DeliveryLocation:   in.DeliveryLocation,
		DeliveryDeadline:   in.DeliveryDeadline,
		TermsAndConditions: in.TermsAndConditions,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := s.tenders.CreateTender(&t); err != nil {
		return model.Tender{}, fmt.Errorf("service: failed to create tender: %w", err)
	}

	s.auditor.Record(audit.Entry{
		ActorID:     actor.ID,
		Action:      audit.ActionRFQCreate,
		Description: fmt.Sprintf("Created RFQ: %s - %s", t.ReferenceID, t.Title),
		EntityType:  "RFQ",
		EntityID:    t.ID,
	})

	if t.IsPrivate {
		for _, vendorID := range t.InvitedVendors {
			s.notifier.Notify(notify.Event{
				RecipientID: vendorID,
				Type:        notify.EventPrivateInvite,
				TenderID:    t.ID,
				Message:     fmt.Sprintf("You have been invited to bid on: %s", t.Title),
			})
		}
	}

	return t, nil
}

// UpdateTender applies a patch to a tender the actor owns. Edits are
// refused once bids exist outside draft, so vendors never bid against
// specifications that change under them.
func (s *Service) UpdateTender(actor model.Actor, tenderID string, in UpdateTenderInput) (model.Tender, error) {
	t, err := s.tenders.GetTender(tenderID)
	if err != nil {
		return model.Tender{}, fmt.Errorf("service: %w", err)
	}
	if err := requireOwner(actor, t); err != nil {
		return model.Tender{}, err
	}

	applyString := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	applyString(&t.Title, in.Title)
	applyString(&t.Description, in.Description)
	applyString(&t.DeliveryLocation, in.DeliveryLocation)
	applyString(&t.TermsAndConditions, in.TermsAndConditions)
	if in.Items != nil {
		t.Items = in.Items
	}
	if in.Category != nil {
		t.Category = *in.Category
	}
	if in.BudgetPrice != nil {
		t.BudgetPrice = in.BudgetPrice
	}
	if in.ShowBudget != nil {
		t.ShowBudget = *in.ShowBudget
	}
	if in.ClosingDate != nil {
		t.ClosingDate = *in.ClosingDate
	}
	if in.Sealed != nil {
		t.IsSealed = *in.Sealed
	}
	if in.Private != nil {
		t.IsPrivate = *in.Private
	}
	if in.InvitedVendors != nil {
		t.InvitedVendors = in.InvitedVendors
	}

	if err := validateTenderFields(t.Title, t.Description, t.Items, t.Category, t.ClosingDate, s.now()); err != nil {
		return model.Tender{}, err
	}

	updated, err := s.tenders.UpdateTender(t)
	if err != nil {
		return model.Tender{}, fmt.Errorf("service: %w", err)
	}

	s.auditor.Record(audit.Entry{
		ActorID:     actor.ID,
		Action:      audit.ActionRFQUpdate,
		Description: fmt.Sprintf("Updated RFQ: %s", updated.ReferenceID),
		EntityType:  "RFQ",
		EntityID:    updated.ID,
	})
	return updated, nil
}

// PublishTender moves a draft tender to open.
func (s *Service) PublishTender(actor model.Actor, tenderID string) (model.Tender, error) {
	t, err := s.tenders.GetTender(tenderID)
	if err != nil {
		return model.Tender{}, fmt.Errorf("service: %w", err)
	}
	if err := requireOwner(actor, t); err != nil {
		return model.Tender{}, err
	}

	published, err := s.tenders.PublishTender(tenderID)
	if err != nil {
		return model.Tender{}, fmt.Errorf("service: %w", err)
	}

	s.auditor.Record(audit.Entry{
		ActorID:     actor.ID,
		Action:      audit.ActionRFQPublish,
		Description: fmt.Sprintf("Published RFQ: %s", published.ReferenceID),
		EntityType:  "RFQ",
		EntityID:    published.ID,
	})
	return published, nil
}

// RemoveTender hard-deletes a tender without bids and cancels one with
// bids, preserving bid history. Returns true when the tender was cancelled
// rather than deleted.
func (s *Service) RemoveTender(actor model.Actor, tenderID string) (bool, error) {
	t, err := s.tenders.GetTender(tenderID)
	if err != nil {
		return false, fmt.Errorf("service: %w", err)
	}
	if err := requireOwner(actor, t); err != nil {
		return false, err
	}

	cancelled, err := s.tenders.RemoveTender(tenderID)
	if err != nil {
		return false, fmt.Errorf("service: %w", err)
	}

	action := audit.ActionRFQDelete
	desc := fmt.Sprintf("Deleted RFQ: %s", t.ReferenceID)
	if cancelled {
		action = audit.ActionRFQCancel
		desc = fmt.Sprintf("Cancelled RFQ: %s", t.ReferenceID)
	}
	s.auditor.Record(audit.Entry{
		ActorID:     actor.ID,
		Action:      action,
		Description: desc,
		EntityType:  "RFQ",
		EntityID:    t.ID,
	})
	return cancelled, nil
}

// SweepExpired closes every open tender past its deadline. Safe to call
// repeatedly; read paths invoke it so status stays accurate without a
// trusted scheduler.
func (s *Service) SweepExpired() (int, error) {
	closed, err := s.tenders.SweepExpired(s.now())
	if err != nil {
		return 0, fmt.Errorf("service: failed to sweep expired tenders: %w", err)
	}
	if closed > 0 {
		utils.Info("closed expired tenders", map[string]any{"count": closed})
	}
	return closed, nil
}

// AwardTender commits the buyer's choice of winning bid. The repository
// applies the whole flip atomically; this layer adds authorization, the
// audit record and participant notifications.
func (s *Service) AwardTender(actor model.Actor, tenderID, bidID, remarks string) (model.Tender, error) {
	t, err := s.tenders.GetTender(tenderID)
	if err != nil {
		return model.Tender{}, fmt.Errorf("service: %w", err)
	}
	if err := requireOwner(actor, t); err != nil {
		return model.Tender{}, err
	}

	result, err := s.tenders.AwardTender(tenderID, bidID, remarks, s.now())
	if err != nil {
		return model.Tender{}, fmt.Errorf("service: %w", err)
	}

	s.auditor.Record(audit.Entry{
		ActorID:     actor.ID,
		Action:      audit.ActionRFQAward,
		Description: fmt.Sprintf("Awarded RFQ %s to vendor %s", result.Tender.ReferenceID, result.Winner.VendorID),
		EntityType:  "RFQ",
		EntityID:    result.Tender.ID,
	})

	s.notifier.Notify(notify.Event{
		RecipientID: result.Winner.VendorID,
		Type:        notify.EventTenderAwarded,
		TenderID:    result.Tender.ID,
		BidID:       result.Winner.ID,
		Message:     fmt.Sprintf("Your bid for %q has been accepted", result.Tender.Title),
	})
	for _, loser := range result.Losers {
		s.notifier.Notify(notify.Event{
			RecipientID: loser.VendorID,
			Type:        notify.EventTenderLost,
			TenderID:    result.Tender.ID,
			BidID:       loser.ID,
			Message:     fmt.Sprintf("The tender %q has been awarded to another vendor", result.Tender.Title),
		})
	}

	return result.Tender, nil
}

// GetTender returns one tender, repairing stale expiry state first.
// Private tenders are only visible to the owner, admins and invited vendors.
func (s *Service) GetTender(actor model.Actor, tenderID string) (model.Tender, error) {
	if _, err := s.SweepExpired(); err != nil {
		return model.Tender{}, err
	}
	t, err := s.tenders.GetTender(tenderID)
	if err != nil {
		return model.Tender{}, fmt.Errorf("service: %w", err)
	}
	if t.IsPrivate && actor.ID != t.CreatedBy && !actor.IsAdmin() && !t.IsInvited(actor.ID) {
		return model.Tender{}, fmt.Errorf("private tender %s: %w", tenderID, procureerrors.ErrForbidden)
	}
	return t, nil
}

// ListTenders returns tenders for browsing, repairing expiry state first.
// Non-admin callers listing someone else's tenders only see the public set.
func (s *Service) ListTenders(actor model.Actor, f repository.TenderFilter) ([]model.Tender, error) {
	if _, err := s.SweepExpired(); err != nil {
		return nil, err
	}
	if f.CreatedBy == "" || (f.CreatedBy != actor.ID && !actor.IsAdmin()) {
		f.PublicOnly = true
	}
	tenders, err := s.tenders.ListTenders(f)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list tenders: %w", err)
	}
	return tenders, nil
}

// ListBids returns the tender's bids for its owner or an admin, redacted
// by the sealed visibility gate. The first call after pricing becomes
// visible marks every bid revealed and audits the reveal once.
func (s *Service) ListBids(actor model.Actor, tenderID string) ([]model.BidView, model.Tender, error) {
	if _, err := s.SweepExpired(); err != nil {
		return nil, model.Tender{}, err
	}
	t, err := s.tenders.GetTender(tenderID)
	if err != nil {
		return nil, model.Tender{}, fmt.Errorf("service: %w", err)
	}
	if actor.ID != t.CreatedBy && !actor.IsAdmin() {
		return nil, model.Tender{}, fmt.Errorf("list bids for tender %s: %w", tenderID, procureerrors.ErrForbidden)
	}

	bids, err := s.bids.ListBidsForTender(tenderID)
	if err != nil {
		return nil, model.Tender{}, fmt.Errorf("service: failed to list bids: %w", err)
	}

	visible := PricingVisible(t, s.now())
	views := make([]model.BidView, 0, len(bids))
	for _, b := range bids {
		if visible {
			b.IsRevealed = true
		}
		views = append(views, model.NewBidView(b, visible))
	}

	if visible {
		if err := RevealBids(s.bids, s.auditor, actor, t); err != nil {
			return nil, model.Tender{}, fmt.Errorf("service: %w", err)
		}
	}

	return views, t, nil
}

// requireOwner allows the owning buyer and admins through.
func requireOwner(actor model.Actor, t model.Tender) error {
	if actor.ID != t.CreatedBy && !actor.IsAdmin() {
		return fmt.Errorf("tender %s owned by %s: %w", t.ID, t.CreatedBy, procureerrors.ErrForbidden)
	}
	return nil
}

func validateTenderFields(title, description string, items []model.LineItem, category string, closingDate time.Time, now time.Time) error {
	if title == "" || description == "" {
		return fmt.Errorf("title and description are required: %w", procureerrors.ErrInvalidInput)
	}
	if len(items) == 0 {
		return fmt.Errorf("at least one line item is required: %w", procureerrors.ErrInvalidInput)
	}
	for _, item := range items {
		if item.Name == "" || item.Quantity <= 0 {
			return fmt.Errorf("line item needs a name and positive quantity: %w", procureerrors.ErrInvalidInput)
		}
	}
	if !model.IsValidCategory(category) {
		return fmt.Errorf("unknown category %q: %w", category, procureerrors.ErrInvalidInput)
	}
	if !closingDate.After(now) {
		return fmt.Errorf("closing date must be in the future: %w", procureerrors.ErrInvalidInput)
	}
	return nil
}
