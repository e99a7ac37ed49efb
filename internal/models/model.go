package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type (
	Role         string // Role of an authenticated actor
	TenderStatus string // Lifecycle status of a tender
	BidStatus    string // Lifecycle status of a bid
)

const (
	RoleBuyer  Role = "buyer"
	RoleVendor Role = "vendor"
	RoleAdmin  Role = "admin"

	TenderDraft     TenderStatus = "draft"     // editable, not yet visible to vendors
	TenderOpen      TenderStatus = "open"      // accepting bids until the closing date
	TenderClosed    TenderStatus = "closed"    // deadline passed, awaiting award
	TenderAwarded   TenderStatus = "awarded"   // terminal
	TenderCancelled TenderStatus = "cancelled" // terminal

	BidPending     BidStatus = "pending"
	BidUnderReview BidStatus = "under_review"
	BidWon         BidStatus = "won"       // terminal
	BidLost        BidStatus = "lost"      // terminal
	BidWithdrawn   BidStatus = "withdrawn" // terminal
)

// VATRatePercent is the flat VAT rate applied to VAT-registered bids.
const VATRatePercent = 18

// Actor identifies an already-authenticated caller. Authentication itself
// happens upstream; the core only does ownership and role checks.
type Actor struct {
	ID   string `json:"id"`
	Role Role   `json:"role"`
}

func (a Actor) IsAdmin() bool { return a.Role == RoleAdmin }

// Categories is the closed set of tender categories. The core validates
// against it but does not own its presentation.
var Categories = []string{
	"IT & Electronics",
	"Construction & Raw Materials",
	"Office Stationery",
	"Vehicles & Spare Parts",
	"Furniture",
	"Medical Equipment",
	"Catering & Food",
	"Cleaning & Maintenance",
	"Security Services",
	"Printing & Publishing",
	"Consulting Services",
	"Other",
}

// IsValidCategory reports whether c belongs to the closed category set.
func IsValidCategory(c string) bool {
	for _, v := range Categories {
		if v == c {
			return true
		}
	}
	return false
}

// LineItem is one requested item on a tender.
type LineItem struct {
	Name           string `json:"name"`
	Quantity       int    `json:"quantity"`
	Unit           string `json:"unit"`
	Specifications string `json:"specifications,omitempty"`
}

// Tender is a buyer's request for quotation.
type Tender struct {
	ID                 string           `json:"id" db:"id"`
	ReferenceID        string           `json:"reference_id" db:"reference_id"`
	Title              string           `json:"title" db:"title"`
	Description        string           `json:"description" db:"description"`
	Items              []LineItem       `json:"items"`
	Category           string           `json:"category" db:"category"`
	BudgetPrice        *decimal.Decimal `json:"budget_price,omitempty" db:"budget_price"`
	ShowBudget         bool             `json:"show_budget" db:"show_budget"`
	ClosingDate        time.Time        `json:"closing_date" db:"closing_date"`
	Status             TenderStatus     `json:"status" db:"status"`
	IsSealed           bool             `json:"is_sealed" db:"is_sealed"`
	IsPrivate          bool             `json:"is_private" db:"is_private"`
	InvitedVendors     []string         `json:"invited_vendors,omitempty"`
	CreatedBy          string           `json:"created_by" db:"created_by"`
	AwardedTo          string           `json:"awarded_to,omitempty" db:"awarded_to"`
	AwardedBid         string           `json:"awarded_bid,omitempty" db:"awarded_bid"`
	AwardedAt          *time.Time       `json:"awarded_at,omitempty" db:"awarded_at"`
	AwardRemarks       string           `json:"award_remarks,omitempty" db:"award_remarks"`
	DeliveryLocation   string           `json:"delivery_location,omitempty" db:"delivery_location"`
	DeliveryDeadline   *time.Time       `json:"delivery_deadline,omitempty" db:"delivery_deadline"`
	TermsAndConditions string           `json:"terms_and_conditions,omitempty" db:"terms_and_conditions"`
	BidCount           int              `json:"bid_count" db:"bid_count"`
	CreatedAt          time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time        `json:"-" db:"updated_at"`
}

// IsExpired reports whether the closing deadline has passed at the given
// instant. Callers must evaluate it fresh per decision; deadlines are
// real-time and a cached answer goes stale the moment it is taken.
func (t Tender) IsExpired(now time.Time) bool {
	return !now.Before(t.ClosingDate)
}

// CanAcceptBids reports whether the tender accepts bid mutations at the
// given instant.
func (t Tender) CanAcceptBids(now time.Time) bool {
	return t.Status == TenderOpen && !t.IsExpired(now)
}

// IsTerminal reports whether no further mutation is permitted.
func (t Tender) IsTerminal() bool {
	return t.Status == TenderAwarded || t.Status == TenderCancelled
}

// IsInvited reports whether vendorID is on the private invite list.
func (t Tender) IsInvited(vendorID string) bool {
	for _, v := range t.InvitedVendors {
		if v == vendorID {
			return true
		}
	}
	return false
}

// FormatReferenceID builds the year-scoped tender reference, e.g. RFQ-2026-0042.
func FormatReferenceID(year, seq int) string {
	return fmt.Sprintf("RFQ-%d-%04d", year, seq)
}

// Bid is a vendor's priced proposal against a tender. A vendor holds at
// most one surviving bid row per tender.
type Bid struct {
	ID                      string          `json:"id" db:"id"`
	TenderID                string          `json:"tender_id" db:"tender_id"`
	VendorID                string          `json:"vendor_id" db:"vendor_id"`
	UnitPrice               decimal.Decimal `json:"unit_price" db:"unit_price"`
	Quantity                int             `json:"quantity" db:"quantity"`
	Subtotal                decimal.Decimal `json:"subtotal" db:"subtotal"`
	IsVATRegistered         bool            `json:"is_vat_registered" db:"is_vat_registered"`
	VATAmount               decimal.Decimal `json:"vat_amount" db:"vat_amount"`
	TotalPrice              decimal.Decimal `json:"total_price" db:"total_price"`
	DeliveryTimeline        int             `json:"delivery_timeline" db:"delivery_timeline"` // days
	WarrantyPeriod          int             `json:"warranty_period" db:"warranty_period"`     // months
	WarrantyTerms           string          `json:"warranty_terms,omitempty" db:"warranty_terms"`
	Remarks                 string          `json:"remarks,omitempty" db:"remarks"`
	TechnicalSpecifications string          `json:"technical_specifications,omitempty" db:"technical_specifications"`
	Status                  BidStatus       `json:"status" db:"status"`
	IsRevealed              bool            `json:"is_revealed" db:"is_revealed"`
	WithdrawnAt             *time.Time      `json:"withdrawn_at,omitempty" db:"withdrawn_at"`
	WithdrawalReason        string          `json:"withdrawal_reason,omitempty" db:"withdrawal_reason"`
	CreatedAt               time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt               time.Time       `json:"-" db:"updated_at"`
}

// ComputeTotals derives subtotal, VAT and total from unit price and
// quantity. Derived fields are never trusted from caller input.
func (b *Bid) ComputeTotals() {
	b.Subtotal = b.UnitPrice.Mul(decimal.NewFromInt(int64(b.Quantity)))
	if b.IsVATRegistered {
		b.VATAmount = b.Subtotal.Mul(decimal.NewFromInt(VATRatePercent)).Div(decimal.NewFromInt(100))
	} else {
		b.VATAmount = decimal.Zero
	}
	b.TotalPrice = b.Subtotal.Add(b.VATAmount)
}
