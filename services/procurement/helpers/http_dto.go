package helpers

import (
	"time"

	"github.com/shopspring/decimal"

	model "procurehub/internal/models"
)

// Request/Response DTOs

type LineItemPayload struct {
	Name           string `json:"name" binding:"required"`
	Quantity       int    `json:"quantity" binding:"required,gt=0"`
	Unit           string `json:"unit"`
	Specifications string `json:"specifications"`
}

type CreateTenderRequest struct {
	Title              string            `json:"title" binding:"required"`
	Description        string            `json:"description" binding:"required"`
	Items              []LineItemPayload `json:"items" binding:"required,min=1,dive"`
	Category           string            `json:"category" binding:"required"`
	BudgetPrice        *decimal.Decimal  `json:"budget_price"`
	ShowBudget         bool              `json:"show_budget"`
	ClosingDate        time.Time         `json:"closing_date" binding:"required"`
	Sealed             *bool             `json:"sealed"`
	Private            bool              `json:"private"`
	InvitedVendors     []string          `json:"invited_vendors"`
	DeliveryLocation   string            `json:"delivery_location"`
	DeliveryDeadline   *time.Time        `json:"delivery_deadline"`
	TermsAndConditions string            `json:"terms_and_conditions"`
	Status             string            `json:"status"` // draft or open, defaults to open
}

type UpdateTenderRequest struct {
	Title              *string           `json:"title"`
	Description        *string           `json:"description"`
	Items              []LineItemPayload `json:"items" binding:"omitempty,min=1,dive"`
	Category           *string           `json:"category"`
	BudgetPrice        *decimal.Decimal  `json:"budget_price"`
	ShowBudget         *bool             `json:"show_budget"`
	ClosingDate        *time.Time        `json:"closing_date"`
	Sealed             *bool             `json:"sealed"`
	Private            *bool             `json:"private"`
	InvitedVendors     []string          `json:"invited_vendors"`
	DeliveryLocation   *string           `json:"delivery_location"`
	DeliveryDeadline   *time.Time        `json:"delivery_deadline"`
	TermsAndConditions *string           `json:"terms_and_conditions"`
}

type SubmitBidRequest struct {
	TenderID                string          `json:"tender_id" binding:"required"`
	UnitPrice               decimal.Decimal `json:"unit_price" binding:"required"`
	Quantity                int             `json:"quantity" binding:"required,gt=0"`
	IsVATRegistered         bool            `json:"is_vat_registered"`
	DeliveryTimeline        int             `json:"delivery_timeline" binding:"required,gt=0"`
	WarrantyPeriod          int             `json:"warranty_period"`
	WarrantyTerms           string          `json:"warranty_terms"`
	Remarks                 string          `json:"remarks"`
	TechnicalSpecifications string          `json:"technical_specifications"`
}

type AmendBidRequest struct {
	UnitPrice               *decimal.Decimal `json:"unit_price"`
	Quantity                *int             `json:"quantity"`
	IsVATRegistered         *bool            `json:"is_vat_registered"`
	DeliveryTimeline        *int             `json:"delivery_timeline"`
	WarrantyPeriod          *int             `json:"warranty_period"`
	WarrantyTerms           *string          `json:"warranty_terms"`
	Remarks                 *string          `json:"remarks"`
	TechnicalSpecifications *string          `json:"technical_specifications"`
}

type CancelBidRequest struct {
	Reason string `json:"reason"`
}

type AwardRequest struct {
	BidID   string `json:"bid_id" binding:"required"`
	Remarks string `json:"remarks"`
}

type TenderResponse struct {
	ID                 string             `json:"id"`
	ReferenceID        string             `json:"reference_id"`
	Title              string             `json:"title"`
	Description        string             `json:"description"`
	Items              []model.LineItem   `json:"items"`
	Category           string             `json:"category"`
	BudgetPrice        *decimal.Decimal   `json:"budget_price,omitempty"`
	ShowBudget         bool               `json:"show_budget"`
	ClosingDate        time.Time          `json:"closing_date"`
	Status             model.TenderStatus `json:"status"`
	Sealed             bool               `json:"sealed"`
	Private            bool               `json:"private"`
	InvitedVendors     []string           `json:"invited_vendors,omitempty"`
	CreatedBy          string             `json:"created_by"`
	AwardedTo          string             `json:"awarded_to,omitempty"`
	AwardedBid         string             `json:"awarded_bid,omitempty"`
	AwardedAt          *time.Time         `json:"awarded_at,omitempty"`
	AwardRemarks       string             `json:"award_remarks,omitempty"`
	DeliveryLocation   string             `json:"delivery_location,omitempty"`
	DeliveryDeadline   *time.Time         `json:"delivery_deadline,omitempty"`
	TermsAndConditions string             `json:"terms_and_conditions,omitempty"`
	BidCount           int                `json:"bid_count"`
	CreatedAt          time.Time          `json:"created_at"`
}

type RemoveTenderResponse struct {
	ID     string `json:"id"`
	Result string `json:"result"` // "cancelled" or "deleted"
}

type CancelBidResponse struct {
	ID     string `json:"id"`
	Result string `json:"result"` // "cancelled" or "withdrawn"
}

type SweepResponse struct {
	Closed int `json:"closed"`
}

type TenderBidsResponse struct {
	Tender TenderResponse  `json:"tender"`
	Bids   []model.BidView `json:"bids"`
}

// NewTenderResponse builds the outward tender view. The budget is hidden
// from everyone but the owner and admins unless the buyer chose to show it,
// and the invite list is only shown to the owner and admins.
func NewTenderResponse(t model.Tender, actor model.Actor) TenderResponse {
	isOwner := actor.ID == t.CreatedBy || actor.IsAdmin()
	resp := TenderResponse{
		ID:                 t.ID,
		ReferenceID:        t.ReferenceID,
		Title:              t.Title,
		Description:        t.Description,
		Items:              t.Items,
		Category:           t.Category,
		ShowBudget:         t.ShowBudget,
		ClosingDate:        t.ClosingDate,
		Status:             t.Status,
		Sealed:             t.IsSealed,
		Private:            t.IsPrivate,
		CreatedBy:          t.CreatedBy,
		AwardedTo:          t.AwardedTo,
		AwardedBid:         t.AwardedBid,
		AwardedAt:          t.AwardedAt,
		AwardRemarks:       t.AwardRemarks,
		DeliveryLocation:   t.DeliveryLocation,
		DeliveryDeadline:   t.DeliveryDeadline,
		TermsAndConditions: t.TermsAndConditions,
		BidCount:           t.BidCount,
		CreatedAt:          t.CreatedAt,
	}
	if t.ShowBudget || isOwner {
		resp.BudgetPrice = t.BudgetPrice
	}
	if isOwner {
		resp.InvitedVendors = t.InvitedVendors
	}
	return resp
}

// NewTenderResponses maps a tender list for one reader.
func NewTenderResponses(tenders []model.Tender, actor model.Actor) []TenderResponse {
	out := make([]TenderResponse, 0, len(tenders))
	for _, t := range tenders {
		out = append(out, NewTenderResponse(t, actor))
	}
	return out
}
