package handler

import (
	"fmt"
	"net/http"

	bidding "procurehub/internal/bidService"
	model "procurehub/internal/models"
	"procurehub/internal/repository"
	tender "procurehub/internal/tenderService"
	"procurehub/services/procurement/helpers"
	"procurehub/utils"

	"github.com/gin-gonic/gin"
)

type TenderServiceInterface interface {
	CreateTender(actor model.Actor, in tender.CreateTenderInput) (model.Tender, error)
	UpdateTender(actor model.Actor, tenderID string, in tender.UpdateTenderInput) (model.Tender, error)
	PublishTender(actor model.Actor, tenderID string) (model.Tender, error)
	RemoveTender(actor model.Actor, tenderID string) (bool, error)
	SweepExpired() (int, error)
	AwardTender(actor model.Actor, tenderID, bidID, remarks string) (model.Tender, error)
	GetTender(actor model.Actor, tenderID string) (model.Tender, error)
	ListTenders(actor model.Actor, f repository.TenderFilter) ([]model.Tender, error)
	ListBids(actor model.Actor, tenderID string) ([]model.BidView, model.Tender, error)
}

type BidServiceInterface interface {
	Submit(actor model.Actor, in bidding.SubmitBidInput) (model.Bid, error)
	Amend(actor model.Actor, bidID string, in bidding.AmendBidInput) (model.Bid, error)
	CancelOrWithdraw(actor model.Actor, bidID, reason string) (string, error)
	GetBid(actor model.Actor, bidID string) (model.BidView, error)
	ListVendorBids(actor model.Actor) ([]model.BidView, error)
}

type ProcurementHandler struct {
	tenders TenderServiceInterface
	bids    BidServiceInterface
}

func NewProcurementHandler(tenders TenderServiceInterface, bids BidServiceInterface) *ProcurementHandler {
	return &ProcurementHandler{tenders: tenders, bids: bids}
}

// CreateTenderHandler handles POST /tenders
func (h *ProcurementHandler) CreateTenderHandler(c *gin.Context) {
	var req helpers.CreateTenderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "CreateTenderHandler", err)
		return
	}
	actor := helpers.ActorFromContext(c)

	t, err := h.tenders.CreateTender(actor, tender.CreateTenderInput{
		Title:              req.Title,
		Description:        req.Description,
		Items:              toLineItems(req.Items),
		Category:           req.Category,
		BudgetPrice:        req.BudgetPrice,
		ShowBudget:         req.ShowBudget,
		ClosingDate:        req.ClosingDate,
		Sealed:             req.Sealed,
		Private:            req.Private,
		InvitedVendors:     req.InvitedVendors,
		DeliveryLocation:   req.DeliveryLocation,
		DeliveryDeadline:   req.DeliveryDeadline,
		TermsAndConditions: req.TermsAndConditions,
		Status:             model.TenderStatus(req.Status),
	})
	if err != nil {
		respondError(c, "CreateTenderHandler", err, map[string]any{"actor_id": actor.ID})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, helpers.NewTenderResponse(t, actor), "tender created successfully")
	helpers.LogSuccess("CreateTenderHandler", "tender created successfully", map[string]any{
		"tender_id":    t.ID,
		"reference_id": t.ReferenceID,
		"actor_id":     actor.ID,
	})
}

// GetTenderHandler handles GET /tenders/:tender_id
func (h *ProcurementHandler) GetTenderHandler(c *gin.Context) {
	tenderID := c.Param("tender_id")
	actor := helpers.ActorFromContext(c)

	t, err := h.tenders.GetTender(actor, tenderID)
	if err != nil {
		respondError(c, "GetTenderHandler", err, map[string]any{"tender_id": tenderID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.NewTenderResponse(t, actor), "tender retrieved successfully")
}

// ListTendersHandler handles GET /tenders
func (h *ProcurementHandler) ListTendersHandler(c *gin.Context) {
	actor := helpers.ActorFromContext(c)
	f := repository.TenderFilter{
		Status:   model.TenderStatus(c.Query("status")),
		Category: c.Query("category"),
	}
	if c.Query("mine") == "true" {
		f.CreatedBy = actor.ID
	}

	tenders, err := h.tenders.ListTenders(actor, f)
	if err != nil {
		respondError(c, "ListTendersHandler", err, nil)
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.NewTenderResponses(tenders, actor), "tenders retrieved successfully")
	helpers.LogSuccess("ListTendersHandler", "tenders retrieved successfully", map[string]any{"count": len(tenders)})
}

// UpdateTenderHandler handles PUT /tenders/:tender_id
func (h *ProcurementHandler) UpdateTenderHandler(c *gin.Context) {
	tenderID := c.Param("tender_id")
	var req helpers.UpdateTenderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "UpdateTenderHandler", err)
		return
	}
	actor := helpers.ActorFromContext(c)

	in := tender.UpdateTenderInput{
		Title:              req.Title,
		Description:        req.Description,
		Category:           req.Category,
		BudgetPrice:        req.BudgetPrice,
		ShowBudget:         req.ShowBudget,
		ClosingDate:        req.ClosingDate,
		Sealed:             req.Sealed,
		Private:            req.Private,
		InvitedVendors:     req.InvitedVendors,
		DeliveryLocation:   req.DeliveryLocation,
		DeliveryDeadline:   req.DeliveryDeadline,
		TermsAndConditions: req.TermsAndConditions,
	}
	if req.Items != nil {
		in.Items = toLineItems(req.Items)
	}

	t, err := h.tenders.UpdateTender(actor, tenderID, in)
	if err != nil {
		respondError(c, "UpdateTenderHandler", err, map[string]any{"tender_id": tenderID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.NewTenderResponse(t, actor), "tender updated successfully")
	helpers.LogSuccess("UpdateTenderHandler", "tender updated successfully", map[string]any{"tender_id": t.ID})
}

// PublishTenderHandler handles POST /tenders/:tender_id/publish
func (h *ProcurementHandler) PublishTenderHandler(c *gin.Context) {
	tenderID := c.Param("tender_id")
	actor := helpers.ActorFromContext(c)

	t, err := h.tenders.PublishTender(actor, tenderID)
	if err != nil {
		respondError(c, "PublishTenderHandler", err, map[string]any{"tender_id": tenderID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.NewTenderResponse(t, actor), "tender published successfully")
	helpers.LogSuccess("PublishTenderHandler", "tender published successfully", map[string]any{"tender_id": t.ID})
}

// RemoveTenderHandler handles DELETE /tenders/:tender_id
func (h *ProcurementHandler) RemoveTenderHandler(c *gin.Context) {
	tenderID := c.Param("tender_id")
	actor := helpers.ActorFromContext(c)

	cancelled, err := h.tenders.RemoveTender(actor, tenderID)
	if err != nil {
		respondError(c, "RemoveTenderHandler", err, map[string]any{"tender_id": tenderID})
		return
	}

	result := "deleted"
	if cancelled {
		result = "cancelled"
	}
	utils.JSONResponse(c, http.StatusOK, helpers.RemoveTenderResponse{ID: tenderID, Result: result}, "tender removed successfully")
	helpers.LogSuccess("RemoveTenderHandler", "tender removed successfully", map[string]any{
		"tender_id": tenderID,
		"result":    result,
	})
}

// AwardTenderHandler handles POST /tenders/:tender_id/award
func (h *ProcurementHandler) AwardTenderHandler(c *gin.Context) {
	tenderID := c.Param("tender_id")
	var req helpers.AwardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "AwardTenderHandler", err)
		return
	}
	actor := helpers.ActorFromContext(c)

	t, err := h.tenders.AwardTender(actor, tenderID, req.BidID, req.Remarks)
	if err != nil {
		respondError(c, "AwardTenderHandler", err, map[string]any{"tender_id": tenderID, "bid_id": req.BidID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.NewTenderResponse(t, actor), "tender awarded successfully")
	helpers.LogSuccess("AwardTenderHandler", "tender awarded successfully", map[string]any{
		"tender_id": t.ID,
		"bid_id":    req.BidID,
	})
}

// ListTenderBidsHandler handles GET /tenders/:tender_id/bids
func (h *ProcurementHandler) ListTenderBidsHandler(c *gin.Context) {
	tenderID := c.Param("tender_id")
	actor := helpers.ActorFromContext(c)

	views, t, err := h.tenders.ListBids(actor, tenderID)
	if err != nil {
		respondError(c, "ListTenderBidsHandler", err, map[string]any{"tender_id": tenderID})
		return
	}

	resp := helpers.TenderBidsResponse{
		Tender: helpers.NewTenderResponse(t, actor),
		Bids:   views,
	}
	utils.JSONResponse(c, http.StatusOK, resp, "bids retrieved successfully")
	helpers.LogSuccess("ListTenderBidsHandler", "bids retrieved successfully", map[string]any{
		"tender_id": tenderID,
		"count":     len(views),
	})
}

// SweepExpiredHandler handles POST /tenders/sweep
func (h *ProcurementHandler) SweepExpiredHandler(c *gin.Context) {
	closed, err := h.tenders.SweepExpired()
	if err != nil {
		respondError(c, "SweepExpiredHandler", err, nil)
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.SweepResponse{Closed: closed}, "expired tenders closed")
	helpers.LogSuccess("SweepExpiredHandler", "expired tenders closed", map[string]any{"closed": closed})
}

// ListCategoriesHandler handles GET /categories
func (h *ProcurementHandler) ListCategoriesHandler(c *gin.Context) {
	utils.JSONResponse(c, http.StatusOK, model.Categories, "categories retrieved successfully")
}

// SubmitBidHandler handles POST /bids
func (h *ProcurementHandler) SubmitBidHandler(c *gin.Context) {
	var req helpers.SubmitBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "SubmitBidHandler", err)
		return
	}
	actor := helpers.ActorFromContext(c)

	b, err := h.bids.Submit(actor, bidding.SubmitBidInput{
		TenderID:                req.TenderID,
		UnitPrice:               req.UnitPrice,
		Quantity:                req.Quantity,
		IsVATRegistered:         req.IsVATRegistered,
		DeliveryTimeline:        req.DeliveryTimeline,
		WarrantyPeriod:          req.WarrantyPeriod,
		WarrantyTerms:           req.WarrantyTerms,
		Remarks:                 req.Remarks,
		TechnicalSpecifications: req.TechnicalSpecifications,
	})
	if err != nil {
		respondError(c, "SubmitBidHandler", err, map[string]any{"tender_id": req.TenderID, "vendor_id": actor.ID})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, b, "bid submitted successfully")
	helpers.LogSuccess("SubmitBidHandler", "bid submitted successfully", map[string]any{
		"bid_id":    b.ID,
		"tender_id": b.TenderID,
		"vendor_id": b.VendorID,
	})
}

// AmendBidHandler handles PUT /bids/:bid_id
func (h *ProcurementHandler) AmendBidHandler(c *gin.Context) {
	bidID := c.Param("bid_id")
	var req helpers.AmendBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "AmendBidHandler", err)
		return
	}
	actor := helpers.ActorFromContext(c)

	b, err := h.bids.Amend(actor, bidID, bidding.AmendBidInput{
		UnitPrice:               req.UnitPrice,
		Quantity:                req.Quantity,
		IsVATRegistered:         req.IsVATRegistered,
		DeliveryTimeline:        req.DeliveryTimeline,
		WarrantyPeriod:          req.WarrantyPeriod,
		WarrantyTerms:           req.WarrantyTerms,
		Remarks:                 req.Remarks,
		TechnicalSpecifications: req.TechnicalSpecifications,
	})
	if err != nil {
		respondError(c, "AmendBidHandler", err, map[string]any{"bid_id": bidID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, b, "bid updated successfully")
	helpers.LogSuccess("AmendBidHandler", "bid updated successfully", map[string]any{"bid_id": b.ID})
}

// CancelBidHandler handles DELETE /bids/:bid_id
func (h *ProcurementHandler) CancelBidHandler(c *gin.Context) {
	bidID := c.Param("bid_id")
	var req helpers.CancelBidRequest
	if c.Request.Body != nil && c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			helpers.HandleBindError(c, "CancelBidHandler", err)
			return
		}
	}
	actor := helpers.ActorFromContext(c)

	mode, err := h.bids.CancelOrWithdraw(actor, bidID, req.Reason)
	if err != nil {
		respondError(c, "CancelBidHandler", err, map[string]any{"bid_id": bidID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.CancelBidResponse{ID: bidID, Result: mode}, "bid "+mode)
	helpers.LogSuccess("CancelBidHandler", "bid "+mode, map[string]any{"bid_id": bidID, "result": mode})
}

// GetBidHandler handles GET /bids/:bid_id
func (h *ProcurementHandler) GetBidHandler(c *gin.Context) {
	bidID := c.Param("bid_id")
	actor := helpers.ActorFromContext(c)

	view, err := h.bids.GetBid(actor, bidID)
	if err != nil {
		respondError(c, "GetBidHandler", err, map[string]any{"bid_id": bidID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, view, "bid retrieved successfully")
}

// ListMyBidsHandler handles GET /bids/my
func (h *ProcurementHandler) ListMyBidsHandler(c *gin.Context) {
	actor := helpers.ActorFromContext(c)

	views, err := h.bids.ListVendorBids(actor)
	if err != nil {
		respondError(c, "ListMyBidsHandler", err, map[string]any{"vendor_id": actor.ID})
		return
	}
	if views == nil {
		views = []model.BidView{}
	}

	utils.JSONResponse(c, http.StatusOK, views, "bids retrieved successfully")
	helpers.LogSuccess("ListMyBidsHandler", "bids retrieved successfully", map[string]any{
		"vendor_id": actor.ID,
		"count":     len(views),
	})
}

func respondError(c *gin.Context, handlerName string, err error, ctx map[string]any) {
	status, message := helpers.MapErrorToHTTP(err)
	utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
	if ctx == nil {
		ctx = map[string]any{}
	}
	ctx["error"] = err.Error()
	utils.Warn(handlerName+": "+message, ctx)
}

func toLineItems(payload []helpers.LineItemPayload) []model.LineItem {
	items := make([]model.LineItem, 0, len(payload))
	for _, p := range payload {
		items = append(items, model.LineItem{
			Name:           p.Name,
			Quantity:       p.Quantity,
			Unit:           p.Unit,
			Specifications: p.Specifications,
		})
	}
	return items
}
