package integrationtests

import (
	"net/http"
	"testing"
	"time"

	model "procurehub/internal/models"
	"procurehub/services/procurement/helpers"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var (
	buyer   = model.Actor{ID: "buyer1", Role: model.RoleBuyer}
	vendor1 = model.Actor{ID: "vendor1", Role: model.RoleVendor}
	vendor2 = model.Actor{ID: "vendor2", Role: model.RoleVendor}
)

func createTenderBody(closing time.Time) helpers.CreateTenderRequest {
	return helpers.CreateTenderRequest{
		Title:       "Office laptops",
		Description: "50 laptops for the new office",
		Items:       []helpers.LineItemPayload{{Name: "Laptop", Quantity: 50, Unit: "pcs"}},
		Category:    "IT & Electronics",
		ClosingDate: closing,
	}
}

func submitBidBody(tenderID, unitPrice string) helpers.SubmitBidRequest {
	return helpers.SubmitBidRequest{
		TenderID:         tenderID,
		UnitPrice:        decimal.RequireFromString(unitPrice),
		Quantity:         50,
		IsVATRegistered:  true,
		DeliveryTimeline: 14,
	}
}

// Full sealed-tender walk: create, bid, grace-window cancel and resubmit,
// deadline passes, reveal, award.
func TestSealedTenderLifecycle(t *testing.T) {
	router, clock := SetupTestRouter()
	closing := clock.Now().Add(48 * time.Hour)

	// Buyer publishes an open sealed tender.
	resp, w := ExecuteRequestAndParse(t, router, http.MethodPost, "/tenders", createTenderBody(closing), buyer)
	require.Equal(t, http.StatusCreated, w.Code)
	tenderID := data(t, resp)["id"].(string)
	require.Equal(t, "RFQ-2026-0001", data(t, resp)["reference_id"])
	require.Equal(t, true, data(t, resp)["sealed"])

	// Two vendors bid.
	resp, w = ExecuteRequestAndParse(t, router, http.MethodPost, "/bids", submitBidBody(tenderID, "900"), vendor1)
	require.Equal(t, http.StatusCreated, w.Code)
	bid1ID := data(t, resp)["id"].(string)

	resp, w = ExecuteRequestAndParse(t, router, http.MethodPost, "/bids", submitBidBody(tenderID, "950"), vendor2)
	require.Equal(t, http.StatusCreated, w.Code)
	bid2ID := data(t, resp)["id"].(string)

	// A vendor bidding twice is refused.
	_, w = ExecuteRequestAndParse(t, router, http.MethodPost, "/bids", submitBidBody(tenderID, "800"), vendor1)
	require.Equal(t, http.StatusConflict, w.Code)

	// While bidding is live the buyer sees bids with sealed pricing.
	resp, w = ExecuteRequestAndParse(t, router, http.MethodGet, "/tenders/"+tenderID+"/bids", nil, buyer)
	require.Equal(t, http.StatusOK, w.Code)
	bids := data(t, resp)["bids"].([]any)
	require.Len(t, bids, 2)
	for _, raw := range bids {
		b := raw.(map[string]any)
		require.Equal(t, "***", b["unit_price"])
		require.Equal(t, "***", b["total_price"])
		require.NotEmpty(t, b["vendor_id"])
	}

	// Another vendor cannot see the bid list at all.
	_, w = ExecuteRequestAndParse(t, router, http.MethodGet, "/tenders/"+tenderID+"/bids", nil, vendor1)
	require.Equal(t, http.StatusForbidden, w.Code)

	// Awarding before the deadline on a sealed tender is refused.
	_, w = ExecuteRequestAndParse(t, router, http.MethodPost, "/tenders/"+tenderID+"/award", helpers.AwardRequest{BidID: bid1ID}, buyer)
	require.Equal(t, http.StatusConflict, w.Code)

	// vendor2 cancels within the grace window and submits a better price.
	clock.Advance(3 * time.Minute)
	resp, w = ExecuteRequestAndParse(t, router, http.MethodDelete, "/bids/"+bid2ID, nil, vendor2)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "cancelled", data(t, resp)["result"])

	resp, w = ExecuteRequestAndParse(t, router, http.MethodPost, "/bids", submitBidBody(tenderID, "850"), vendor2)
	require.Equal(t, http.StatusCreated, w.Code)
	bid2ID = data(t, resp)["id"].(string)

	// The deadline passes; the tender reads closed without any sweep call.
	clock.Advance(72 * time.Hour)
	resp, w = ExecuteRequestAndParse(t, router, http.MethodGet, "/tenders/"+tenderID, nil, vendor1)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "closed", data(t, resp)["status"])

	// Late bids are refused as closed, not forbidden.
	_, w = ExecuteRequestAndParse(t, router, http.MethodPost, "/bids", submitBidBody(tenderID, "700"), model.Actor{ID: "vendor3", Role: model.RoleVendor})
	require.Equal(t, http.StatusConflict, w.Code)

	// Pricing is now revealed to the buyer.
	resp, w = ExecuteRequestAndParse(t, router, http.MethodGet, "/tenders/"+tenderID+"/bids", nil, buyer)
	require.Equal(t, http.StatusOK, w.Code)
	bids = data(t, resp)["bids"].([]any)
	prices := map[string]string{}
	for _, raw := range bids {
		b := raw.(map[string]any)
		require.Equal(t, true, b["is_revealed"])
		prices[b["vendor_id"].(string)] = b["unit_price"].(string)
	}
	require.Equal(t, "900", prices["vendor1"])
	require.Equal(t, "850", prices["vendor2"])

	// Award to vendor2.
	resp, w = ExecuteRequestAndParse(t, router, http.MethodPost, "/tenders/"+tenderID+"/award", helpers.AwardRequest{BidID: bid2ID, Remarks: "best offer"}, buyer)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "awarded", data(t, resp)["status"])
	require.Equal(t, "vendor2", data(t, resp)["awarded_to"])

	// A second award attempt is refused.
	_, w = ExecuteRequestAndParse(t, router, http.MethodPost, "/tenders/"+tenderID+"/award", helpers.AwardRequest{BidID: bid1ID}, buyer)
	require.Equal(t, http.StatusConflict, w.Code)

	// The losing vendor sees the outcome on their own bid.
	resp, w = ExecuteRequestAndParse(t, router, http.MethodGet, "/bids/"+bid1ID, nil, vendor1)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "lost", data(t, resp)["status"])
}

func TestPrivateTenderAccess(t *testing.T) {
	router, clock := SetupTestRouter()

	body := createTenderBody(clock.Now().Add(24 * time.Hour))
	body.Private = true
	body.InvitedVendors = []string{vendor1.ID}

	resp, w := ExecuteRequestAndParse(t, router, http.MethodPost, "/tenders", body, buyer)
	require.Equal(t, http.StatusCreated, w.Code)
	tenderID := data(t, resp)["id"].(string)

	// Invited vendor can view and bid.
	_, w = ExecuteRequestAndParse(t, router, http.MethodGet, "/tenders/"+tenderID, nil, vendor1)
	require.Equal(t, http.StatusOK, w.Code)
	_, w = ExecuteRequestAndParse(t, router, http.MethodPost, "/bids", submitBidBody(tenderID, "900"), vendor1)
	require.Equal(t, http.StatusCreated, w.Code)

	// Uninvited vendor can do neither.
	_, w = ExecuteRequestAndParse(t, router, http.MethodGet, "/tenders/"+tenderID, nil, vendor2)
	require.Equal(t, http.StatusForbidden, w.Code)
	_, w = ExecuteRequestAndParse(t, router, http.MethodPost, "/bids", submitBidBody(tenderID, "900"), vendor2)
	require.Equal(t, http.StatusForbidden, w.Code)

	// Private tenders stay out of anonymous browsing.
	resp, w = ExecuteRequestAndParse(t, router, http.MethodGet, "/tenders", nil, model.Actor{})
	require.Equal(t, http.StatusOK, w.Code)
	require.Empty(t, resp["data"].([]any))
}

func TestWithdrawAfterGraceWindow(t *testing.T) {
	router, clock := SetupTestRouter()

	resp, w := ExecuteRequestAndParse(t, router, http.MethodPost, "/tenders", createTenderBody(clock.Now().Add(24*time.Hour)), buyer)
	require.Equal(t, http.StatusCreated, w.Code)
	tenderID := data(t, resp)["id"].(string)

	resp, w = ExecuteRequestAndParse(t, router, http.MethodPost, "/bids", submitBidBody(tenderID, "900"), vendor1)
	require.Equal(t, http.StatusCreated, w.Code)
	bidID := data(t, resp)["id"].(string)

	clock.Advance(10 * time.Minute)
	resp, w = ExecuteRequestAndParse(t, router, http.MethodDelete, "/bids/"+bidID, helpers.CancelBidRequest{Reason: "supplier issue"}, vendor1)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "withdrawn", data(t, resp)["result"])

	// The withdrawn slot stays taken.
	_, w = ExecuteRequestAndParse(t, router, http.MethodPost, "/bids", submitBidBody(tenderID, "800"), vendor1)
	require.Equal(t, http.StatusConflict, w.Code)

	// The vendor still sees the withdrawn bid in their history.
	resp, w = ExecuteRequestAndParse(t, router, http.MethodGet, "/bids/my", nil, vendor1)
	require.Equal(t, http.StatusOK, w.Code)
	myBids := resp["data"].([]any)
	require.Len(t, myBids, 1)
	require.Equal(t, "withdrawn", myBids[0].(map[string]any)["status"])
}

func TestDraftPublishFlow(t *testing.T) {
	router, clock := SetupTestRouter()

	body := createTenderBody(clock.Now().Add(24 * time.Hour))
	body.Status = "draft"

	resp, w := ExecuteRequestAndParse(t, router, http.MethodPost, "/tenders", body, buyer)
	require.Equal(t, http.StatusCreated, w.Code)
	tenderID := data(t, resp)["id"].(string)

	// Drafts do not accept bids.
	_, w = ExecuteRequestAndParse(t, router, http.MethodPost, "/bids", submitBidBody(tenderID, "900"), vendor1)
	require.Equal(t, http.StatusConflict, w.Code)

	// Publish, then bidding opens.
	resp, w = ExecuteRequestAndParse(t, router, http.MethodPost, "/tenders/"+tenderID+"/publish", nil, buyer)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "open", data(t, resp)["status"])

	_, w = ExecuteRequestAndParse(t, router, http.MethodPost, "/bids", submitBidBody(tenderID, "900"), vendor1)
	require.Equal(t, http.StatusCreated, w.Code)
}

func TestRemoveTenderModes(t *testing.T) {
	router, clock := SetupTestRouter()

	// Without bids the tender is deleted outright.
	resp, w := ExecuteRequestAndParse(t, router, http.MethodPost, "/tenders", createTenderBody(clock.Now().Add(24*time.Hour)), buyer)
	require.Equal(t, http.StatusCreated, w.Code)
	emptyID := data(t, resp)["id"].(string)

	resp, w = ExecuteRequestAndParse(t, router, http.MethodDelete, "/tenders/"+emptyID, nil, buyer)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "deleted", data(t, resp)["result"])

	_, w = ExecuteRequestAndParse(t, router, http.MethodGet, "/tenders/"+emptyID, nil, buyer)
	require.Equal(t, http.StatusNotFound, w.Code)

	// With bids it is cancelled and history survives.
	resp, w = ExecuteRequestAndParse(t, router, http.MethodPost, "/tenders", createTenderBody(clock.Now().Add(24*time.Hour)), buyer)
	require.Equal(t, http.StatusCreated, w.Code)
	biddedID := data(t, resp)["id"].(string)
	_, w = ExecuteRequestAndParse(t, router, http.MethodPost, "/bids", submitBidBody(biddedID, "900"), vendor1)
	require.Equal(t, http.StatusCreated, w.Code)

	resp, w = ExecuteRequestAndParse(t, router, http.MethodDelete, "/tenders/"+biddedID, nil, buyer)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "cancelled", data(t, resp)["result"])

	resp, w = ExecuteRequestAndParse(t, router, http.MethodGet, "/tenders/"+biddedID, nil, buyer)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "cancelled", data(t, resp)["status"])
}

func TestCategoriesEndpoint(t *testing.T) {
	router, _ := SetupTestRouter()

	resp, w := ExecuteRequestAndParse(t, router, http.MethodGet, "/categories", nil, model.Actor{})
	require.Equal(t, http.StatusOK, w.Code)
	categories := resp["data"].([]any)
	require.Contains(t, categories, "IT & Electronics")
	require.Contains(t, categories, "Other")
}
