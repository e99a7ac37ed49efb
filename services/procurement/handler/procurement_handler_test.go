package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	bidding "procurehub/internal/bidService"
	model "procurehub/internal/models"
	"procurehub/internal/procureerrors"
	tender "procurehub/internal/tenderService"
	"procurehub/services/procurement/helpers"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func setupHandlerTest(t *testing.T) (*MockTenderServiceInterface, *MockBidServiceInterface, *gin.Engine) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockTenders := NewMockTenderServiceInterface(ctrl)
	mockBids := NewMockBidServiceInterface(ctrl)
	h := NewProcurementHandler(mockTenders, mockBids)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(helpers.ActorContextKey, model.Actor{
			ID:   c.GetHeader("X-Actor-ID"),
			Role: model.Role(c.GetHeader("X-Actor-Role")),
		})
	})

	router.POST("/tenders", h.CreateTenderHandler)
	router.POST("/tenders/:tender_id/award", h.AwardTenderHandler)
	router.GET("/tenders/:tender_id/bids", h.ListTenderBidsHandler)
	router.POST("/bids", h.SubmitBidHandler)
	router.DELETE("/bids/:bid_id", h.CancelBidHandler)

	return mockTenders, mockBids, router
}

func doRequest(t *testing.T, router *gin.Engine, method, url string, body any, actor model.Actor) *httptest.ResponseRecorder {
	t.Helper()
	var reqBody []byte
	if body != nil {
		switch v := body.(type) {
		case string:
			reqBody = []byte(v)
		default:
			var err error
			reqBody, err = json.Marshal(v)
			require.NoError(t, err)
		}
	}
	req := httptest.NewRequest(method, url, bytes.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Actor-ID", actor.ID)
	req.Header.Set("X-Actor-Role", string(actor.Role))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCreateTenderHandler(t *testing.T) {
	buyer := model.Actor{ID: "buyer1", Role: model.RoleBuyer}
	closing := time.Now().Add(48 * time.Hour).UTC().Truncate(time.Second)

	validBody := helpers.CreateTenderRequest{
		Title:       "Office laptops",
		Description: "50 laptops",
		Items:       []helpers.LineItemPayload{{Name: "Laptop", Quantity: 50, Unit: "pcs"}},
		Category:    "IT & Electronics",
		ClosingDate: closing,
	}

	t.Run("created", func(t *testing.T) {
		mockTenders, _, router := setupHandlerTest(t)
		mockTenders.EXPECT().CreateTender(buyer, gomock.Any()).DoAndReturn(
			func(actor model.Actor, in tender.CreateTenderInput) (model.Tender, error) {
				require.Equal(t, "Office laptops", in.Title)
				require.Len(t, in.Items, 1)
				return model.Tender{
					ID:          "t1",
					ReferenceID: "RFQ-2026-0001",
					Title:       in.Title,
					Status:      model.TenderOpen,
					CreatedBy:   actor.ID,
				}, nil
			})

		w := doRequest(t, router, http.MethodPost, "/tenders", validBody, buyer)
		require.Equal(t, http.StatusCreated, w.Code)

		var resp map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		data := resp["data"].(map[string]any)
		require.Equal(t, "RFQ-2026-0001", data["reference_id"])
	})

	t.Run("invalid_json", func(t *testing.T) {
		_, _, router := setupHandlerTest(t)
		w := doRequest(t, router, http.MethodPost, "/tenders", `{not json}`, buyer)
		require.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("missing_items", func(t *testing.T) {
		_, _, router := setupHandlerTest(t)
		body := validBody
		body.Items = nil
		w := doRequest(t, router, http.MethodPost, "/tenders", body, buyer)
		require.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("vendor_forbidden", func(t *testing.T) {
		vendor := model.Actor{ID: "vendor1", Role: model.RoleVendor}
		mockTenders, _, router := setupHandlerTest(t)
		mockTenders.EXPECT().CreateTender(vendor, gomock.Any()).Return(model.Tender{}, procureerrors.ErrForbidden)

		w := doRequest(t, router, http.MethodPost, "/tenders", validBody, vendor)
		require.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestAwardTenderHandler(t *testing.T) {
	buyer := model.Actor{ID: "buyer1", Role: model.RoleBuyer}

	t.Run("too_early_maps_to_conflict", func(t *testing.T) {
		mockTenders, _, router := setupHandlerTest(t)
		mockTenders.EXPECT().AwardTender(buyer, "t1", "b1", "").Return(model.Tender{}, procureerrors.ErrTooEarly)

		w := doRequest(t, router, http.MethodPost, "/tenders/t1/award", helpers.AwardRequest{BidID: "b1"}, buyer)
		require.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("awarded", func(t *testing.T) {
		mockTenders, _, router := setupHandlerTest(t)
		mockTenders.EXPECT().AwardTender(buyer, "t1", "b1", "best offer").Return(model.Tender{
			ID:        "t1",
			Status:    model.TenderAwarded,
			AwardedTo: "vendor2",
			CreatedBy: buyer.ID,
		}, nil)

		w := doRequest(t, router, http.MethodPost, "/tenders/t1/award", helpers.AwardRequest{BidID: "b1", Remarks: "best offer"}, buyer)
		require.Equal(t, http.StatusOK, w.Code)

		var resp map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		data := resp["data"].(map[string]any)
		require.Equal(t, "awarded", data["status"])
		require.Equal(t, "vendor2", data["awarded_to"])
	})
}

func TestListTenderBidsHandler_SealedMarker(t *testing.T) {
	buyer := model.Actor{ID: "buyer1", Role: model.RoleBuyer}
	mockTenders, _, router := setupHandlerTest(t)

	bid := model.Bid{
		ID:        "b1",
		TenderID:  "t1",
		VendorID:  "vendor1",
		UnitPrice: decimal.RequireFromString("850"),
		Quantity:  50,
		Status:    model.BidPending,
	}
	bid.ComputeTotals()

	mockTenders.EXPECT().ListBids(buyer, "t1").Return(
		[]model.BidView{model.NewBidView(bid, false)},
		model.Tender{ID: "t1", Status: model.TenderOpen, IsSealed: true, CreatedBy: buyer.ID},
		nil,
	)

	w := doRequest(t, router, http.MethodGet, "/tenders/t1/bids", nil, buyer)
	require.Equal(t, http.StatusOK, w.Code)

	// Redacted pricing serializes to the marker, never to a number.
	require.Contains(t, w.Body.String(), `"unit_price":"***"`)
	require.NotContains(t, w.Body.String(), "850")
}

func TestSubmitBidHandler(t *testing.T) {
	vendor := model.Actor{ID: "vendor1", Role: model.RoleVendor}

	body := helpers.SubmitBidRequest{
		TenderID:         "t1",
		UnitPrice:        decimal.RequireFromString("850.50"),
		Quantity:         50,
		DeliveryTimeline: 14,
	}

	t.Run("created", func(t *testing.T) {
		_, mockBids, router := setupHandlerTest(t)
		mockBids.EXPECT().Submit(vendor, gomock.Any()).DoAndReturn(
			func(actor model.Actor, in bidding.SubmitBidInput) (model.Bid, error) {
				require.Equal(t, "t1", in.TenderID)
				require.True(t, in.UnitPrice.Equal(decimal.RequireFromString("850.50")))
				b := model.Bid{ID: "b1", TenderID: in.TenderID, VendorID: actor.ID, UnitPrice: in.UnitPrice, Quantity: in.Quantity, Status: model.BidPending}
				b.ComputeTotals()
				return b, nil
			})

		w := doRequest(t, router, http.MethodPost, "/bids", body, vendor)
		require.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("duplicate_maps_to_conflict", func(t *testing.T) {
		_, mockBids, router := setupHandlerTest(t)
		mockBids.EXPECT().Submit(vendor, gomock.Any()).Return(model.Bid{}, procureerrors.ErrDuplicateBid)

		w := doRequest(t, router, http.MethodPost, "/bids", body, vendor)
		require.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("missing_quantity", func(t *testing.T) {
		_, _, router := setupHandlerTest(t)
		invalid := body
		invalid.Quantity = 0
		w := doRequest(t, router, http.MethodPost, "/bids", invalid, vendor)
		require.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestCancelBidHandler(t *testing.T) {
	vendor := model.Actor{ID: "vendor1", Role: model.RoleVendor}

	t.Run("withdrawn_with_reason", func(t *testing.T) {
		_, mockBids, router := setupHandlerTest(t)
		mockBids.EXPECT().CancelOrWithdraw(vendor, "b1", "supplier issue").Return(bidding.ModeWithdrawn, nil)

		w := doRequest(t, router, http.MethodDelete, "/bids/b1", helpers.CancelBidRequest{Reason: "supplier issue"}, vendor)
		require.Equal(t, http.StatusOK, w.Code)

		var resp map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		data := resp["data"].(map[string]any)
		require.Equal(t, "withdrawn", data["result"])
	})

	t.Run("cancelled_without_body", func(t *testing.T) {
		_, mockBids, router := setupHandlerTest(t)
		mockBids.EXPECT().CancelOrWithdraw(vendor, "b1", "").Return(bidding.ModeCancelled, nil)

		w := doRequest(t, router, http.MethodDelete, "/bids/b1", nil, vendor)
		require.Equal(t, http.StatusOK, w.Code)
	})
}
