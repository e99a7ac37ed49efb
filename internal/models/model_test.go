package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// Test ComputeTotals
func TestBid_ComputeTotals(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		unitPrice     string
		quantity      int
		vatRegistered bool
		wantSubtotal  string
		wantVAT       string
		wantTotal     string
	}{
		{name: "vat_registered", unitPrice: "100.50", quantity: 3, vatRegistered: true, wantSubtotal: "301.50", wantVAT: "54.27", wantTotal: "355.77"},
		{name: "not_vat_registered", unitPrice: "100.50", quantity: 3, vatRegistered: false, wantSubtotal: "301.50", wantVAT: "0", wantTotal: "301.50"},
		{name: "single_unit", unitPrice: "1", quantity: 1, vatRegistered: true, wantSubtotal: "1", wantVAT: "0.18", wantTotal: "1.18"},
		{name: "fractional_price_exact", unitPrice: "0.10", quantity: 10, vatRegistered: true, wantSubtotal: "1.00", wantVAT: "0.18", wantTotal: "1.18"},
		{name: "large_quantity", unitPrice: "2500", quantity: 10000, vatRegistered: true, wantSubtotal: "25000000", wantVAT: "4500000", wantTotal: "29500000"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			b := Bid{
				UnitPrice:       decimal.RequireFromString(tc.unitPrice),
				Quantity:        tc.quantity,
				IsVATRegistered: tc.vatRegistered,
			}
			b.ComputeTotals()

			require.True(t, b.Subtotal.Equal(decimal.RequireFromString(tc.wantSubtotal)), "subtotal: want %s, got %s", tc.wantSubtotal, b.Subtotal)
			require.True(t, b.VATAmount.Equal(decimal.RequireFromString(tc.wantVAT)), "vat: want %s, got %s", tc.wantVAT, b.VATAmount)
			require.True(t, b.TotalPrice.Equal(decimal.RequireFromString(tc.wantTotal)), "total: want %s, got %s", tc.wantTotal, b.TotalPrice)
		})
	}
}

// Test deadline evaluation boundaries
func TestTender_IsExpired(t *testing.T) {
	t.Parallel()

	closing := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	tender := Tender{Status: TenderOpen, ClosingDate: closing}

	tests := []struct {
		name        string
		now         time.Time
		wantExpired bool
	}{
		{name: "before_deadline", now: closing.Add(-time.Second), wantExpired: false},
		{name: "exactly_at_deadline", now: closing, wantExpired: true},
		{name: "after_deadline", now: closing.Add(time.Second), wantExpired: true},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			require.Equal(t, tc.wantExpired, tender.IsExpired(tc.now))
			require.Equal(t, !tc.wantExpired, tender.CanAcceptBids(tc.now))
		})
	}
}

func TestTender_CanAcceptBids_Status(t *testing.T) {
	t.Parallel()

	closing := time.Now().Add(time.Hour)
	now := time.Now()

	tests := []struct {
		name   string
		status TenderStatus
		want   bool
	}{
		{name: "open", status: TenderOpen, want: true},
		{name: "draft", status: TenderDraft, want: false},
		{name: "closed", status: TenderClosed, want: false},
		{name: "awarded", status: TenderAwarded, want: false},
		{name: "cancelled", status: TenderCancelled, want: false},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			tender := Tender{Status: tc.status, ClosingDate: closing}
			require.Equal(t, tc.want, tender.CanAcceptBids(now))
		})
	}
}

func TestFormatReferenceID(t *testing.T) {
	t.Parallel()

	require.Equal(t, "RFQ-2026-0001", FormatReferenceID(2026, 1))
	require.Equal(t, "RFQ-2026-0042", FormatReferenceID(2026, 42))
	require.Equal(t, "RFQ-2027-12345", FormatReferenceID(2027, 12345)) // sequence wider than the pad
}

func TestIsValidCategory(t *testing.T) {
	t.Parallel()

	require.True(t, IsValidCategory("IT & Electronics"))
	require.True(t, IsValidCategory("Other"))
	require.False(t, IsValidCategory("it & electronics")) // case sensitive
	require.False(t, IsValidCategory(""))
	require.False(t, IsValidCategory("Weapons"))
}

func TestTender_IsInvited(t *testing.T) {
	t.Parallel()

	tender := Tender{InvitedVendors: []string{"vendor1", "vendor2"}}
	require.True(t, tender.IsInvited("vendor1"))
	require.False(t, tender.IsInvited("vendor3"))
	require.False(t, Tender{}.IsInvited("vendor1"))
}
