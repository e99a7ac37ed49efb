package models

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// SealedMarker is what redacted pricing serializes to. It is deliberately
// not null and not zero so a client can never mistake "sealed" for "free".
const SealedMarker = "***"

// SealedAmount is a price that is either sealed or revealed. The zero
// value is sealed, so a forgotten assignment fails closed.
type SealedAmount struct {
	revealed bool
	amount   decimal.Decimal
}

// Revealed wraps a real amount.
func Revealed(a decimal.Decimal) SealedAmount {
	return SealedAmount{revealed: true, amount: a}
}

// Sealed returns the redacted amount.
func Sealed() SealedAmount {
	return SealedAmount{}
}

// IsSealed reports whether the amount is redacted.
func (s SealedAmount) IsSealed() bool { return !s.revealed }

// Amount returns the underlying value and whether it is visible.
func (s SealedAmount) Amount() (decimal.Decimal, bool) {
	return s.amount, s.revealed
}

// MarshalJSON emits the amount when revealed and the sealed marker otherwise.
func (s SealedAmount) MarshalJSON() ([]byte, error) {
	if !s.revealed {
		return json.Marshal(SealedMarker)
	}
	return json.Marshal(s.amount)
}

// BidView is the read model for a bid whose pricing may be redacted by the
// sealed visibility gate. Non-pricing fields pass through untouched.
type BidView struct {
	ID                      string       `json:"id"`
	TenderID                string       `json:"tender_id"`
	VendorID                string       `json:"vendor_id"`
	UnitPrice               SealedAmount `json:"unit_price"`
	Quantity                int          `json:"quantity"`
	Subtotal                SealedAmount `json:"subtotal"`
	VATAmount               SealedAmount `json:"vat_amount"`
	TotalPrice              SealedAmount `json:"total_price"`
	IsVATRegistered         bool         `json:"is_vat_registered"`
	DeliveryTimeline        int          `json:"delivery_timeline"`
	WarrantyPeriod          int          `json:"warranty_period"`
	WarrantyTerms           string       `json:"warranty_terms,omitempty"`
	Remarks                 string       `json:"remarks,omitempty"`
	TechnicalSpecifications string       `json:"technical_specifications,omitempty"`
	Status                  BidStatus    `json:"status"`
	IsRevealed              bool         `json:"is_revealed"`
	CreatedAt               time.Time    `json:"created_at"`
}

// NewBidView projects a bid for a reader. When priced is false every
// pricing field carries the sealed marker.
func NewBidView(b Bid, priced bool) BidView {
	v := BidView{
		ID:                      b.ID,
		TenderID:                b.TenderID,
		VendorID:                b.VendorID,
		UnitPrice:               Sealed(),
		Quantity:                b.Quantity,
		Subtotal:                Sealed(),
		VATAmount:               Sealed(),
		TotalPrice:              Sealed(),
		IsVATRegistered:         b.IsVATRegistered,
		DeliveryTimeline:        b.DeliveryTimeline,
		WarrantyPeriod:          b.WarrantyPeriod,
		WarrantyTerms:           b.WarrantyTerms,
		Remarks:                 b.Remarks,
		TechnicalSpecifications: b.TechnicalSpecifications,
		Status:                  b.Status,
		IsRevealed:              b.IsRevealed,
		CreatedAt:               b.CreatedAt,
	}
	if priced {
		v.UnitPrice = Revealed(b.UnitPrice)
		v.Subtotal = Revealed(b.Subtotal)
		v.VATAmount = Revealed(b.VATAmount)
		v.TotalPrice = Revealed(b.TotalPrice)
	}
	return v
}
