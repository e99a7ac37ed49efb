package tender

import (
	"fmt"
	"time"

	"procurehub/internal/audit"
	model "procurehub/internal/models"
	"procurehub/internal/repository"
)

// PricingVisible reports whether bid pricing on the tender is open to the
// buyer at the given instant. Sealed tenders hide pricing while bidding is
// live; the seal lifts when the deadline passes or the tender leaves the
// open state. Non-sealed tenders never hide anything from the buyer.
func PricingVisible(t model.Tender, now time.Time) bool {
	if !t.IsSealed {
		return true
	}
	return t.Status != model.TenderOpen || t.IsExpired(now)
}

// CanSeeBidPricing decides whether the actor may see the bid's monetary
// fields. Vendors always see their own numbers. The tender owner and
// admins see them once PricingVisible allows it. Everyone else is refused
// at the authorization layer before this gate matters, so the default
// here fails closed.
func CanSeeBidPricing(t model.Tender, b model.Bid, actor model.Actor, now time.Time) bool {
	if actor.ID == b.VendorID {
		return true
	}
	if actor.ID != t.CreatedBy && !actor.IsAdmin() {
		return false
	}
	return PricingVisible(t, now)
}

// RevealBids flips every bid of the tender to revealed and records the
// reveal transition exactly once, on whichever read first crosses the
// visibility gate. Callers invoke it only once PricingVisible holds.
func RevealBids(bids repository.BidDB, auditor audit.Auditor, actor model.Actor, t model.Tender) error {
	flipped, err := bids.MarkBidsRevealed(t.ID)
	if err != nil {
		return fmt.Errorf("mark bids revealed for tender %s: %w", t.ID, err)
	}
	if flipped > 0 {
		auditor.Record(audit.Entry{
			ActorID:     actor.ID,
			Action:      audit.ActionBidsReveal,
			Description: fmt.Sprintf("Bids revealed for RFQ: %s", t.ReferenceID),
			EntityType:  "RFQ",
			EntityID:    t.ID,
		})
	}
	return nil
}
