package repository

import (
	"fmt"
	"sort"
	"sync"
	"time"

	model "procurehub/internal/models"
	"procurehub/internal/procureerrors"
)

// TenderDB owns tender rows and their status field. Status transitions are
// enforced here, behind single entry points, so the invariants stay
// checkable in one place.
type TenderDB interface {
	CreateTender(t *model.Tender) error
	GetTender(id string) (model.Tender, error)
	ListTenders(f TenderFilter) ([]model.Tender, error)
	UpdateTender(t model.Tender) (model.Tender, error)
	PublishTender(id string) (model.Tender, error)
	// RemoveTender hard-deletes a tender with zero active bids and cancels
	// one that has any; the returned flag reports which path was taken.
	RemoveTender(id string) (cancelled bool, err error)
	// SweepExpired closes every open tender whose deadline has passed.
	// Idempotent; already-closed tenders are skipped.
	SweepExpired(now time.Time) (int, error)
	// AwardTender applies the full award flip (tender -> awarded, winner ->
	// won, remaining pending bids -> lost) as one atomic unit.
	AwardTender(tenderID, bidID, remarks string, now time.Time) (AwardResult, error)
}

// BidDB owns bid rows, the one-bid-per-vendor-per-tender constraint, and
// the tender bid counter updates that accompany every bid mutation.
type BidDB interface {
	CreateBid(b *model.Bid, now time.Time) error
	GetBid(id string) (model.Bid, error)
	UpdateBid(b model.Bid, now time.Time) (model.Bid, error)
	DeleteBid(id string, now time.Time) error
	WithdrawBid(id, reason string, now time.Time) (model.Bid, error)
	ListBidsForTender(tenderID string) ([]model.Bid, error)
	ListBidsForVendor(vendorID string) ([]model.Bid, error)
	// MarkBidsRevealed flips the revealed flag on every bid of the tender
	// and returns how many actually changed, so the caller can audit the
	// reveal transition exactly once.
	MarkBidsRevealed(tenderID string) (int, error)
}

// TenderFilter narrows ListTenders. Zero values mean "no constraint".
type TenderFilter struct {
	Status    model.TenderStatus
	Category  string
	CreatedBy string
	// PublicOnly excludes private and cancelled tenders (the public browse view).
	PublicOnly bool
}

// AwardResult carries everything the award workflow needs to notify
// participants after the atomic flip.
type AwardResult struct {
	Tender model.Tender
	Winner model.Bid
	Losers []model.Bid
}

// MemoryRepo is a concurrency-safe in-memory implementation of TenderDB and
// BidDB. One mutex guards tenders, bids and the reference counters, so every
// composite operation below is serializable by construction.
type MemoryRepo struct {
	mu      sync.RWMutex
	tenders map[string]*model.Tender
	bids    map[string]*model.Bid
	refSeq  map[int]int // year -> last issued reference sequence
}

// NewMemoryRepo creates a new in-memory repository instance.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		tenders: make(map[string]*model.Tender),
		bids:    make(map[string]*model.Bid),
		refSeq:  make(map[int]int),
	}
}

func (r *MemoryRepo) CreateTender(t *model.Tender) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	year := t.CreatedAt.Year()
	r.refSeq[year]++
	t.ReferenceID = model.FormatReferenceID(year, r.refSeq[year])

	stored := cloneTender(*t)
	r.tenders[t.ID] = &stored
	return nil
}

func (r *MemoryRepo) GetTender(id string) (model.Tender, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.tenders[id]
	if !ok {
		return model.Tender{}, fmt.Errorf("get tender %s: %w", id, procureerrors.ErrNotFound)
	}
	return cloneTender(*t), nil
}

func (r *MemoryRepo) ListTenders(f TenderFilter) ([]model.Tender, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.Tender, 0)
	for _, t := range r.tenders {
		if f.PublicOnly && (t.IsPrivate || t.Status == model.TenderCancelled || t.Status == model.TenderDraft) {
			continue
		}
		if f.Status != "" && t.Status != f.Status {
			continue
		}
		if f.Category != "" && t.Category != f.Category {
			continue
		}
		if f.CreatedBy != "" && t.CreatedBy != f.CreatedBy {
			continue
		}
		out = append(out, cloneTender(*t))
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ClosingDate.Before(out[j].ClosingDate)
	})
	return out, nil
}

// UpdateTender replaces the mutable fields of a tender. Status, bid counter
// and identity fields are never touched through this path.
func (r *MemoryRepo) UpdateTender(t model.Tender) (model.Tender, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.tenders[t.ID]
	if !ok {
		return model.Tender{}, fmt.Errorf("update tender %s: %w", t.ID, procureerrors.ErrNotFound)
	}
	if stored.Status == model.TenderClosed || stored.Status == model.TenderAwarded || stored.Status == model.TenderCancelled {
		return model.Tender{}, fmt.Errorf("update tender %s in status %s: %w", t.ID, stored.Status, procureerrors.ErrInvalidState)
	}
	if stored.BidCount > 0 && stored.Status != model.TenderDraft {
		return model.Tender{}, fmt.Errorf("update tender %s with %d bids: %w", t.ID, stored.BidCount, procureerrors.ErrConflict)
	}

	next := cloneTender(t)
	next.ReferenceID = stored.ReferenceID
	next.Status = stored.Status
	next.BidCount = stored.BidCount
	next.CreatedBy = stored.CreatedBy
	next.CreatedAt = stored.CreatedAt
	r.tenders[t.ID] = &next
	return cloneTender(next), nil
}

func (r *MemoryRepo) PublishTender(id string) (model.Tender, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.tenders[id]
	if !ok {
		return model.Tender{}, fmt.Errorf("publish tender %s: %w", id, procureerrors.ErrNotFound)
	}
	if t.Status != model.TenderDraft {
		return model.Tender{}, fmt.Errorf("publish tender %s in status %s: %w", id, t.Status, procureerrors.ErrInvalidState)
	}
	t.Status = model.TenderOpen
	return cloneTender(*t), nil
}

func (r *MemoryRepo) RemoveTender(id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.tenders[id]
	if !ok {
		return false, fmt.Errorf("remove tender %s: %w", id, procureerrors.ErrNotFound)
	}
	if t.Status == model.TenderAwarded || t.Status == model.TenderCancelled {
		return false, fmt.Errorf("remove tender %s in status %s: %w", id, t.Status, procureerrors.ErrInvalidState)
	}

	if t.BidCount > 0 {
		t.Status = model.TenderCancelled
		return true, nil
	}

	delete(r.tenders, id)
	for bidID, b := range r.bids {
		if b.TenderID == id {
			delete(r.bids, bidID)
		}
	}
	return false, nil
}

func (r *MemoryRepo) SweepExpired(now time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	closed := 0
	for _, t := range r.tenders {
		if t.Status == model.TenderOpen && t.IsExpired(now) {
			t.Status = model.TenderClosed
			closed++
		}
	}
	return closed, nil
}

func (r *MemoryRepo) AwardTender(tenderID, bidID, remarks string, now time.Time) (AwardResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.tenders[tenderID]
	if !ok {
		return AwardResult{}, fmt.Errorf("award tender %s: %w", tenderID, procureerrors.ErrNotFound)
	}
	// Award is strictly one-shot, and drafts have nothing to award.
	if t.Status == model.TenderAwarded || t.Status == model.TenderCancelled {
		return AwardResult{}, fmt.Errorf("award tender %s in status %s: %w", tenderID, t.Status, procureerrors.ErrInvalidState)
	}
	if t.Status == model.TenderDraft {
		return AwardResult{}, fmt.Errorf("award draft tender %s: %w", tenderID, procureerrors.ErrInvalidState)
	}
	// A sealed tender may only be awarded once the deadline has passed,
	// whatever its stored status says. Non-sealed tenders may be awarded at
	// any time while open or closed.
	if t.IsSealed && !t.IsExpired(now) {
		return AwardResult{}, fmt.Errorf("award sealed tender %s before %s: %w", tenderID, t.ClosingDate.Format(time.RFC3339), procureerrors.ErrTooEarly)
	}

	winner, ok := r.bids[bidID]
	if !ok || winner.TenderID != tenderID {
		return AwardResult{}, fmt.Errorf("award tender %s: winning bid %s: %w", tenderID, bidID, procureerrors.ErrNotFound)
	}
	if winner.Status != model.BidPending {
		return AwardResult{}, fmt.Errorf("award tender %s: bid %s has status %s: %w", tenderID, bidID, winner.Status, procureerrors.ErrInvalidState)
	}

	t.Status = model.TenderAwarded
	t.AwardedTo = winner.VendorID
	t.AwardedBid = winner.ID
	awardedAt := now
	t.AwardedAt = &awardedAt
	t.AwardRemarks = remarks
	winner.Status = model.BidWon

	var losers []model.Bid
	for _, b := range r.bids {
		if b.TenderID == tenderID && b.ID != bidID && b.Status == model.BidPending {
			b.Status = model.BidLost
			losers = append(losers, cloneBid(*b))
		}
	}

	return AwardResult{
		Tender: cloneTender(*t),
		Winner: cloneBid(*winner),
		Losers: losers,
	}, nil
}

// CreateBid inserts a bid, re-validating the tender state and the
// one-bid-per-vendor constraint under the lock, and increments the tender's
// bid counter in the same critical section. An open-but-expired tender is
// closed here as read-time repair before the rejection.
func (r *MemoryRepo) CreateBid(b *model.Bid, now time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.tenders[b.TenderID]
	if !ok {
		return fmt.Errorf("create bid for tender %s: %w", b.TenderID, procureerrors.ErrNotFound)
	}
	if t.Status == model.TenderOpen && t.IsExpired(now) {
		t.Status = model.TenderClosed
		return fmt.Errorf("create bid for tender %s: %w", b.TenderID, procureerrors.ErrTenderClosed)
	}
	if !t.CanAcceptBids(now) {
		return fmt.Errorf("create bid for tender %s in status %s: %w", b.TenderID, t.Status, procureerrors.ErrTenderClosed)
	}
	for _, existing := range r.bids {
		if existing.TenderID == b.TenderID && existing.VendorID == b.VendorID {
			return fmt.Errorf("create bid for tender %s by vendor %s: %w", b.TenderID, b.VendorID, procureerrors.ErrDuplicateBid)
		}
	}

	stored := cloneBid(*b)
	r.bids[b.ID] = &stored
	t.BidCount++
	return nil
}

func (r *MemoryRepo) GetBid(id string) (model.Bid, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.bids[id]
	if !ok {
		return model.Bid{}, fmt.Errorf("get bid %s: %w", id, procureerrors.ErrNotFound)
	}
	return cloneBid(*b), nil
}

// UpdateBid replaces the vendor-editable fields of a pending bid while the
// tender still accepts bids.
func (r *MemoryRepo) UpdateBid(b model.Bid, now time.Time) (model.Bid, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.bids[b.ID]
	if !ok {
		return model.Bid{}, fmt.Errorf("update bid %s: %w", b.ID, procureerrors.ErrNotFound)
	}
	t, ok := r.tenders[stored.TenderID]
	if !ok {
		return model.Bid{}, fmt.Errorf("update bid %s: tender %s: %w", b.ID, stored.TenderID, procureerrors.ErrNotFound)
	}
	if t.Status == model.TenderOpen && t.IsExpired(now) {
		t.Status = model.TenderClosed
	}
	if !t.CanAcceptBids(now) {
		return model.Bid{}, fmt.Errorf("update bid %s: %w", b.ID, procureerrors.ErrTenderClosed)
	}
	if stored.Status != model.BidPending {
		return model.Bid{}, fmt.Errorf("update bid %s with status %s: %w", b.ID, stored.Status, procureerrors.ErrInvalidState)
	}

	next := cloneBid(b)
	next.TenderID = stored.TenderID
	next.VendorID = stored.VendorID
	next.Status = stored.Status
	next.IsRevealed = stored.IsRevealed
	next.CreatedAt = stored.CreatedAt
	r.bids[b.ID] = &next
	return cloneBid(next), nil
}

// DeleteBid is the grace-window hard delete: the row disappears and the
// counter drops, as if the bid never existed.
func (r *MemoryRepo) DeleteBid(id string, now time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.bids[id]
	if !ok {
		return fmt.Errorf("delete bid %s: %w", id, procureerrors.ErrNotFound)
	}
	t, ok := r.tenders[b.TenderID]
	if !ok {
		return fmt.Errorf("delete bid %s: tender %s: %w", id, b.TenderID, procureerrors.ErrNotFound)
	}
	if t.Status == model.TenderOpen && t.IsExpired(now) {
		t.Status = model.TenderClosed
	}
	if !t.CanAcceptBids(now) {
		return fmt.Errorf("delete bid %s: tender %s no longer accepts bids: %w", id, b.TenderID, procureerrors.ErrInvalidState)
	}

	delete(r.bids, id)
	t.BidCount--
	return nil
}

// WithdrawBid is the post-grace soft path: the row persists with status
// withdrawn for audit, the counter reflects active bids only.
func (r *MemoryRepo) WithdrawBid(id, reason string, now time.Time) (model.Bid, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.bids[id]
	if !ok {
		return model.Bid{}, fmt.Errorf("withdraw bid %s: %w", id, procureerrors.ErrNotFound)
	}
	t, ok := r.tenders[b.TenderID]
	if !ok {
		return model.Bid{}, fmt.Errorf("withdraw bid %s: tender %s: %w", id, b.TenderID, procureerrors.ErrNotFound)
	}
	if t.Status == model.TenderOpen && t.IsExpired(now) {
		t.Status = model.TenderClosed
	}
	if !t.CanAcceptBids(now) {
		return model.Bid{}, fmt.Errorf("withdraw bid %s: tender %s no longer accepts bids: %w", id, b.TenderID, procureerrors.ErrInvalidState)
	}
	if b.Status != model.BidPending {
		return model.Bid{}, fmt.Errorf("withdraw bid %s with status %s: %w", id, b.Status, procureerrors.ErrInvalidState)
	}

	b.Status = model.BidWithdrawn
	withdrawnAt := now
	b.WithdrawnAt = &withdrawnAt
	b.WithdrawalReason = reason
	t.BidCount--
	return cloneBid(*b), nil
}

func (r *MemoryRepo) ListBidsForTender(tenderID string) ([]model.Bid, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.Bid, 0)
	for _, b := range r.bids {
		if b.TenderID == tenderID {
			out = append(out, cloneBid(*b))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *MemoryRepo) ListBidsForVendor(vendorID string) ([]model.Bid, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.Bid, 0)
	for _, b := range r.bids {
		if b.VendorID == vendorID {
			out = append(out, cloneBid(*b))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *MemoryRepo) MarkBidsRevealed(tenderID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	flipped := 0
	for _, b := range r.bids {
		if b.TenderID == tenderID && !b.IsRevealed {
			b.IsRevealed = true
			flipped++
		}
	}
	return flipped, nil
}

// cloneTender copies a tender including its slices so callers never alias
// repository-owned memory.
func cloneTender(t model.Tender) model.Tender {
	c := t
	c.Items = append([]model.LineItem(nil), t.Items...)
	c.InvitedVendors = append([]string(nil), t.InvitedVendors...)
	if t.BudgetPrice != nil {
		budget := *t.BudgetPrice
		c.BudgetPrice = &budget
	}
	if t.AwardedAt != nil {
		at := *t.AwardedAt
		c.AwardedAt = &at
	}
	if t.DeliveryDeadline != nil {
		dd := *t.DeliveryDeadline
		c.DeliveryDeadline = &dd
	}
	return c
}

func cloneBid(b model.Bid) model.Bid {
	c := b
	if b.WithdrawnAt != nil {
		at := *b.WithdrawnAt
		c.WithdrawnAt = &at
	}
	return c
}
