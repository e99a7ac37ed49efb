package repository

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	model "procurehub/internal/models"
	"procurehub/internal/procureerrors"
)

// PostgresRepo implements TenderDB and BidDB over Postgres. Composite
// operations run in transactions with the tender row locked, and the unique
// (tender_id, vendor_id) index enforces one bid per vendor at the storage
// layer rather than as an application pre-check.
type PostgresRepo struct {
	db *sqlx.DB
}

// NewPostgresRepo wraps an open sqlx handle.
func NewPostgresRepo(db *sqlx.DB) *PostgresRepo {
	return &PostgresRepo{db: db}
}

// tenderRow maps the tenders table; items is JSONB and invited vendors a
// text array, neither of which scans directly into the model struct.
type tenderRow struct {
	ID                 string           `db:"id"`
	ReferenceID        string           `db:"reference_id"`
	Title              string           `db:"title"`
	Description        string           `db:"description"`
	Items              []byte           `db:"items"`
	Category           string           `db:"category"`
	BudgetPrice        *decimal.Decimal `db:"budget_price"`
	ShowBudget         bool             `db:"show_budget"`
	ClosingDate        time.Time        `db:"closing_date"`
	Status             string           `db:"status"`
	IsSealed           bool             `db:"is_sealed"`
	IsPrivate          bool             `db:"is_private"`
	InvitedVendors     pq.StringArray   `db:"invited_vendors"`
	CreatedBy          string           `db:"created_by"`
	AwardedTo          string           `db:"awarded_to"`
	AwardedBid         string           `db:"awarded_bid"`
	AwardedAt          *time.Time       `db:"awarded_at"`
	AwardRemarks       string           `db:"award_remarks"`
	DeliveryLocation   string           `db:"delivery_location"`
	DeliveryDeadline   *time.Time       `db:"delivery_deadline"`
	TermsAndConditions string           `db:"terms_and_conditions"`
	BidCount           int              `db:"bid_count"`
	CreatedAt          time.Time        `db:"created_at"`
	UpdatedAt          time.Time        `db:"updated_at"`
}

func (row tenderRow) toModel() (model.Tender, error) {
	var items []model.LineItem
	if len(row.Items) > 0 {
		if err := json.Unmarshal(row.Items, &items); err != nil {
			return model.Tender{}, fmt.Errorf("decode tender %s items: %w", row.ID, err)
		}
	}
	return model.Tender{
		ID:                 row.ID,
		ReferenceID:        row.ReferenceID,
		Title:              row.Title,
		Description:        row.Description,
		Items:              items,
		Category:           row.Category,
		BudgetPrice:        row.BudgetPrice,
		ShowBudget:         row.ShowBudget,
		ClosingDate:        row.ClosingDate,
		Status:             model.TenderStatus(row.Status),
		IsSealed:           row.IsSealed,
		IsPrivate:          row.IsPrivate,
		InvitedVendors:     row.InvitedVendors,
		CreatedBy:          row.CreatedBy,
		AwardedTo:          row.AwardedTo,
		AwardedBid:         row.AwardedBid,
		AwardedAt:          row.AwardedAt,
		AwardRemarks:       row.AwardRemarks,
		DeliveryLocation:   row.DeliveryLocation,
		DeliveryDeadline:   row.DeliveryDeadline,
		TermsAndConditions: row.TermsAndConditions,
		BidCount:           row.BidCount,
		CreatedAt:          row.CreatedAt,
		UpdatedAt:          row.UpdatedAt,
	}, nil
}

const tenderColumns = `id, reference_id, title, description, items, category, budget_price,
		show_budget, closing_date, status, is_sealed, is_private, invited_vendors,
		created_by, awarded_to, awarded_bid, awarded_at, award_remarks,
		delivery_location, delivery_deadline, terms_and_conditions, bid_count,
		created_at, updated_at`

func (r *PostgresRepo) CreateTender(t *model.Tender) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return fmt.Errorf("create tender: begin: %w", err)
	}
	defer tx.Rollback()

	year := t.CreatedAt.Year()
	var seq int
	err = tx.QueryRow(`
        INSERT INTO tender_reference_seq (year, last_seq)
        VALUES ($1, 1)
        ON CONFLICT (year) DO UPDATE SET last_seq = tender_reference_seq.last_seq + 1
        RETURNING last_seq`, year).Scan(&seq)
	if err != nil {
		return fmt.Errorf("create tender: next reference: %w", err)
	}
	t.ReferenceID = model.FormatReferenceID(year, seq)

	items, err := json.Marshal(t.Items)
	if err != nil {
		return fmt.Errorf("create tender: encode items: %w", err)
	}

	_, err = tx.Exec(`
        INSERT INTO tenders
            (id, reference_id, title, description, items, category, budget_price,
             show_budget, closing_date, status, is_sealed, is_private, invited_vendors,
             created_by, delivery_location, delivery_deadline, terms_and_conditions,
             bid_count, created_at, updated_at)
        VALUES
            ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, 0, $18, $18)`,
		t.ID, t.ReferenceID, t.Title, t.Description, items, t.Category, t.BudgetPrice,
		t.ShowBudget, t.ClosingDate, string(t.Status), t.IsSealed, t.IsPrivate,
		pq.StringArray(t.InvitedVendors), t.CreatedBy, t.DeliveryLocation,
		t.DeliveryDeadline, t.TermsAndConditions, t.CreatedAt)
	if err != nil {
		return fmt.Errorf("create tender %s: %w", t.ID, err)
	}
	return tx.Commit()
}

func (r *PostgresRepo) GetTender(id string) (model.Tender, error) {
	var row tenderRow
	err := r.db.Get(&row, `SELECT `+tenderColumns+` FROM tenders WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Tender{}, fmt.Errorf("get tender %s: %w", id, procureerrors.ErrNotFound)
	}
	if err != nil {
		return model.Tender{}, fmt.Errorf("get tender %s: %w", id, err)
	}
	return row.toModel()
}

func (r *PostgresRepo) ListTenders(f TenderFilter) ([]model.Tender, error) {
	query := `SELECT ` + tenderColumns + ` FROM tenders WHERE 1=1`
	var args []interface{}
	n := 0
	add := func(cond string, v interface{}) {
		n++
		query += fmt.Sprintf(" AND "+cond, n)
		args = append(args, v)
	}
	if f.Status != "" {
		add("status = $%d", string(f.Status))
	}
	if f.Category != "" {
		add("category = $%d", f.Category)
	}
	if f.CreatedBy != "" {
		add("created_by = $%d", f.CreatedBy)
	}
	if f.PublicOnly {
		query += ` AND NOT is_private AND status NOT IN ('cancelled', 'draft')`
	}
	query += ` ORDER BY closing_date ASC`

	var rows []tenderRow
	if err := r.db.Select(&rows, query, args...); err != nil {
		return nil, fmt.Errorf("list tenders: %w", err)
	}
	out := make([]model.Tender, 0, len(rows))
	for _, row := range rows {
		t, err := row.toModel()
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

func (r *PostgresRepo) UpdateTender(t model.Tender) (model.Tender, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return model.Tender{}, fmt.Errorf("update tender: begin: %w", err)
	}
	defer tx.Rollback()

	stored, err := lockTender(tx, t.ID)
	if err != nil {
		return model.Tender{}, fmt.Errorf("update tender: %w", err)
	}
	status := model.TenderStatus(stored.Status)
	if status == model.TenderClosed || status == model.TenderAwarded || status == model.TenderCancelled {
		return model.Tender{}, fmt.Errorf("update tender %s in status %s: %w", t.ID, status, procureerrors.ErrInvalidState)
	}
	if stored.BidCount > 0 && status != model.TenderDraft {
		return model.Tender{}, fmt.Errorf("update tender %s with %d bids: %w", t.ID, stored.BidCount, procureerrors.ErrConflict)
	}

	items, err := json.Marshal(t.Items)
	if err != nil {
		return model.Tender{}, fmt.Errorf("update tender: encode items: %w", err)
	}
	_, err = tx.Exec(`
        UPDATE tenders SET
            title = $1, description = $2, items = $3, category = $4, budget_price = $5,
            show_budget = $6, closing_date = $7, is_sealed = $8, is_private = $9,
            invited_vendors = $10, delivery_location = $11, delivery_deadline = $12,
            terms_and_conditions = $13, updated_at = NOW()
        WHERE id = $14`,
		t.Title, t.Description, items, t.Category, t.BudgetPrice, t.ShowBudget,
		t.ClosingDate, t.IsSealed, t.IsPrivate, pq.StringArray(t.InvitedVendors),
		t.DeliveryLocation, t.DeliveryDeadline, t.TermsAndConditions, t.ID)
	if err != nil {
		return model.Tender{}, fmt.Errorf("update tender %s: %w", t.ID, err)
	}
	if err := tx.Commit(); err != nil {
		return model.Tender{}, fmt.Errorf("update tender %s: commit: %w", t.ID, err)
	}
	return r.GetTender(t.ID)
}

func (r *PostgresRepo) PublishTender(id string) (model.Tender, error) {
	res, err := r.db.Exec(`
        UPDATE tenders SET status = 'open', updated_at = NOW()
        WHERE id = $1 AND status = 'draft'`, id)
	if err != nil {
		return model.Tender{}, fmt.Errorf("publish tender %s: %w", id, err)
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		t, err := r.GetTender(id)
		if err != nil {
			return model.Tender{}, err
		}
		return model.Tender{}, fmt.Errorf("publish tender %s in status %s: %w", id, t.Status, procureerrors.ErrInvalidState)
	}
	return r.GetTender(id)
}

func (r *PostgresRepo) RemoveTender(id string) (bool, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return false, fmt.Errorf("remove tender: begin: %w", err)
	}
	defer tx.Rollback()

	stored, err := lockTender(tx, id)
	if err != nil {
		return false, fmt.Errorf("remove tender: %w", err)
	}
	status := model.TenderStatus(stored.Status)
	if status == model.TenderAwarded || status == model.TenderCancelled {
		return false, fmt.Errorf("remove tender %s in status %s: %w", id, status, procureerrors.ErrInvalidState)
	}

	cancelled := false
	if stored.BidCount > 0 {
		_, err = tx.Exec(`UPDATE tenders SET status = 'cancelled', updated_at = NOW() WHERE id = $1`, id)
		cancelled = true
	} else {
		if _, err = tx.Exec(`DELETE FROM bids WHERE tender_id = $1`, id); err == nil {
			_, err = tx.Exec(`DELETE FROM tenders WHERE id = $1`, id)
		}
	}
	if err != nil {
		return false, fmt.Errorf("remove tender %s: %w", id, err)
	}
	return cancelled, tx.Commit()
}

func (r *PostgresRepo) SweepExpired(now time.Time) (int, error) {
	res, err := r.db.Exec(`
        UPDATE tenders SET status = 'closed', updated_at = NOW()
        WHERE status = 'open' AND closing_date <= $1`, now)
	if err != nil {
		return 0, fmt.Errorf("sweep expired tenders: %w", err)
	}
	affected, err := res.RowsAffected()
	return int(affected), err
}

func (r *PostgresRepo) AwardTender(tenderID, bidID, remarks string, now time.Time) (AwardResult, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return AwardResult{}, fmt.Errorf("award tender: begin: %w", err)
	}
	defer tx.Rollback()

	stored, err := lockTender(tx, tenderID)
	if err != nil {
		return AwardResult{}, fmt.Errorf("award tender: %w", err)
	}
	t, err := stored.toModel()
	if err != nil {
		return AwardResult{}, err
	}
	if t.Status == model.TenderAwarded || t.Status == model.TenderCancelled {
		return AwardResult{}, fmt.Errorf("award tender %s in status %s: %w", tenderID, t.Status, procureerrors.ErrInvalidState)
	}
	if t.Status == model.TenderDraft {
		return AwardResult{}, fmt.Errorf("award draft tender %s: %w", tenderID, procureerrors.ErrInvalidState)
	}
	if t.IsSealed && !t.IsExpired(now) {
		return AwardResult{}, fmt.Errorf("award sealed tender %s before %s: %w", tenderID, t.ClosingDate.Format(time.RFC3339), procureerrors.ErrTooEarly)
	}

	var winner model.Bid
	err = tx.Get(&winner, `SELECT * FROM bids WHERE id = $1 FOR UPDATE`, bidID)
	if errors.Is(err, sql.ErrNoRows) || (err == nil && winner.TenderID != tenderID) {
		return AwardResult{}, fmt.Errorf("award tender %s: winning bid %s: %w", tenderID, bidID, procureerrors.ErrNotFound)
	}
	if err != nil {
		return AwardResult{}, fmt.Errorf("award tender %s: load bid: %w", tenderID, err)
	}
	if winner.Status != model.BidPending {
		return AwardResult{}, fmt.Errorf("award tender %s: bid %s has status %s: %w", tenderID, bidID, winner.Status, procureerrors.ErrInvalidState)
	}

	_, err = tx.Exec(`
        UPDATE tenders SET status = 'awarded', awarded_to = $1, awarded_bid = $2,
            awarded_at = $3, award_remarks = $4, updated_at = NOW()
        WHERE id = $5`,
		winner.VendorID, winner.ID, now, remarks, tenderID)
	if err != nil {
		return AwardResult{}, fmt.Errorf("award tender %s: %w", tenderID, err)
	}
	if _, err = tx.Exec(`UPDATE bids SET status = 'won', updated_at = NOW() WHERE id = $1`, bidID); err != nil {
		return AwardResult{}, fmt.Errorf("award tender %s: mark winner: %w", tenderID, err)
	}

	var losers []model.Bid
	err = tx.Select(&losers, `
        UPDATE bids SET status = 'lost', updated_at = NOW()
        WHERE tender_id = $1 AND id <> $2 AND status = 'pending'
        RETURNING *`, tenderID, bidID)
	if err != nil {
		return AwardResult{}, fmt.Errorf("award tender %s: mark losers: %w", tenderID, err)
	}
	if err := tx.Commit(); err != nil {
		return AwardResult{}, fmt.Errorf("award tender %s: commit: %w", tenderID, err)
	}

	awarded, err := r.GetTender(tenderID)
	if err != nil {
		return AwardResult{}, err
	}
	winner.Status = model.BidWon
	return AwardResult{Tender: awarded, Winner: winner, Losers: losers}, nil
}

func (r *PostgresRepo) CreateBid(b *model.Bid, now time.Time) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return fmt.Errorf("create bid: begin: %w", err)
	}
	defer tx.Rollback()

	stored, err := lockTender(tx, b.TenderID)
	if err != nil {
		return fmt.Errorf("create bid: %w", err)
	}
	t, err := stored.toModel()
	if err != nil {
		return err
	}
	if t.Status == model.TenderOpen && t.IsExpired(now) {
		// Read-time repair before rejecting; committed even though the
		// submission fails.
		if _, err := tx.Exec(`UPDATE tenders SET status = 'closed', updated_at = NOW() WHERE id = $1`, t.ID); err != nil {
			return fmt.Errorf("create bid: close expired tender %s: %w", t.ID, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("create bid: commit lazy close: %w", err)
		}
		return fmt.Errorf("create bid for tender %s: %w", b.TenderID, procureerrors.ErrTenderClosed)
	}
	if !t.CanAcceptBids(now) {
		return fmt.Errorf("create bid for tender %s in status %s: %w", b.TenderID, t.Status, procureerrors.ErrTenderClosed)
	}

	_, err = tx.Exec(`
        INSERT INTO bids
            (id, tender_id, vendor_id, unit_price, quantity, subtotal, is_vat_registered,
             vat_amount, total_price, delivery_timeline, warranty_period, warranty_terms,
             remarks, technical_specifications, status, is_revealed, created_at, updated_at)
        VALUES
            ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, false, $16, $16)`,
		b.ID, b.TenderID, b.VendorID, b.UnitPrice, b.Quantity, b.Subtotal, b.IsVATRegistered,
		b.VATAmount, b.TotalPrice, b.DeliveryTimeline, b.WarrantyPeriod, b.WarrantyTerms,
		b.Remarks, b.TechnicalSpecifications, string(b.Status), b.CreatedAt)
	if isUniqueViolation(err) {
		return fmt.Errorf("create bid for tender %s by vendor %s: %w", b.TenderID, b.VendorID, procureerrors.ErrDuplicateBid)
	}
	if err != nil {
		return fmt.Errorf("create bid %s: %w", b.ID, err)
	}
	if _, err = tx.Exec(`UPDATE tenders SET bid_count = bid_count + 1, updated_at = NOW() WHERE id = $1`, b.TenderID); err != nil {
		return fmt.Errorf("create bid %s: bump counter: %w", b.ID, err)
	}
	return tx.Commit()
}

func (r *PostgresRepo) GetBid(id string) (model.Bid, error) {
	var b model.Bid
	err := r.db.Get(&b, `SELECT * FROM bids WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Bid{}, fmt.Errorf("get bid %s: %w", id, procureerrors.ErrNotFound)
	}
	if err != nil {
		return model.Bid{}, fmt.Errorf("get bid %s: %w", id, err)
	}
	return b, nil
}

func (r *PostgresRepo) UpdateBid(b model.Bid, now time.Time) (model.Bid, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return model.Bid{}, fmt.Errorf("update bid: begin: %w", err)
	}
	defer tx.Rollback()

	var stored model.Bid
	err = tx.Get(&stored, `SELECT * FROM bids WHERE id = $1 FOR UPDATE`, b.ID)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Bid{}, fmt.Errorf("update bid %s: %w", b.ID, procureerrors.ErrNotFound)
	}
	if err != nil {
		return model.Bid{}, fmt.Errorf("update bid %s: %w", b.ID, err)
	}
	if err := checkTenderAcceptsBids(tx, stored.TenderID, now, procureerrors.ErrTenderClosed); err != nil {
		return model.Bid{}, fmt.Errorf("update bid %s: %w", b.ID, err)
	}
	if stored.Status != model.BidPending {
		return model.Bid{}, fmt.Errorf("update bid %s with status %s: %w", b.ID, stored.Status, procureerrors.ErrInvalidState)
	}

	_, err = tx.Exec(`
        UPDATE bids SET
            unit_price = $1, quantity = $2, subtotal = $3, is_vat_registered = $4,
            vat_amount = $5, total_price = $6, delivery_timeline = $7, warranty_period = $8,
            warranty_terms = $9, remarks = $10, technical_specifications = $11, updated_at = NOW()
        WHERE id = $12`,
		b.UnitPrice, b.Quantity, b.Subtotal, b.IsVATRegistered, b.VATAmount, b.TotalPrice,
		b.DeliveryTimeline, b.WarrantyPeriod, b.WarrantyTerms, b.Remarks,
		b.TechnicalSpecifications, b.ID)
	if err != nil {
		return model.Bid{}, fmt.Errorf("update bid %s: %w", b.ID, err)
	}
	if err := tx.Commit(); err != nil {
		return model.Bid{}, fmt.Errorf("update bid %s: commit: %w", b.ID, err)
	}
	return r.GetBid(b.ID)
}

func (r *PostgresRepo) DeleteBid(id string, now time.Time) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return fmt.Errorf("delete bid: begin: %w", err)
	}
	defer tx.Rollback()

	var stored model.Bid
	err = tx.Get(&stored, `SELECT * FROM bids WHERE id = $1 FOR UPDATE`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("delete bid %s: %w", id, procureerrors.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("delete bid %s: %w", id, err)
	}
	if err := checkTenderAcceptsBids(tx, stored.TenderID, now, procureerrors.ErrInvalidState); err != nil {
		return fmt.Errorf("delete bid %s: %w", id, err)
	}

	if _, err = tx.Exec(`DELETE FROM bids WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete bid %s: %w", id, err)
	}
	if _, err = tx.Exec(`UPDATE tenders SET bid_count = bid_count - 1, updated_at = NOW() WHERE id = $1`, stored.TenderID); err != nil {
		return fmt.Errorf("delete bid %s: drop counter: %w", id, err)
	}
	return tx.Commit()
}

func (r *PostgresRepo) WithdrawBid(id, reason string, now time.Time) (model.Bid, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return model.Bid{}, fmt.Errorf("withdraw bid: begin: %w", err)
	}
	defer tx.Rollback()

	var stored model.Bid
	err = tx.Get(&stored, `SELECT * FROM bids WHERE id = $1 FOR UPDATE`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Bid{}, fmt.Errorf("withdraw bid %s: %w", id, procureerrors.ErrNotFound)
	}
	if err != nil {
		return model.Bid{}, fmt.Errorf("withdraw bid %s: %w", id, err)
	}
	if err := checkTenderAcceptsBids(tx, stored.TenderID, now, procureerrors.ErrInvalidState); err != nil {
		return model.Bid{}, fmt.Errorf("withdraw bid %s: %w", id, err)
	}
	if stored.Status != model.BidPending {
		return model.Bid{}, fmt.Errorf("withdraw bid %s with status %s: %w", id, stored.Status, procureerrors.ErrInvalidState)
	}

	_, err = tx.Exec(`
        UPDATE bids SET status = 'withdrawn', withdrawn_at = $1, withdrawal_reason = $2, updated_at = NOW()
        WHERE id = $3`, now, reason, id)
	if err != nil {
		return model.Bid{}, fmt.Errorf("withdraw bid %s: %w", id, err)
	}
	if _, err = tx.Exec(`UPDATE tenders SET bid_count = bid_count - 1, updated_at = NOW() WHERE id = $1`, stored.TenderID); err != nil {
		return model.Bid{}, fmt.Errorf("withdraw bid %s: drop counter: %w", id, err)
	}
	if err := tx.Commit(); err != nil {
		return model.Bid{}, fmt.Errorf("withdraw bid %s: commit: %w", id, err)
	}
	return r.GetBid(id)
}

func (r *PostgresRepo) ListBidsForTender(tenderID string) ([]model.Bid, error) {
	bids := []model.Bid{}
	err := r.db.Select(&bids, `SELECT * FROM bids WHERE tender_id = $1 ORDER BY created_at ASC`, tenderID)
	if err != nil {
		return nil, fmt.Errorf("list bids for tender %s: %w", tenderID, err)
	}
	return bids, nil
}

func (r *PostgresRepo) ListBidsForVendor(vendorID string) ([]model.Bid, error) {
	bids := []model.Bid{}
	err := r.db.Select(&bids, `SELECT * FROM bids WHERE vendor_id = $1 ORDER BY created_at DESC`, vendorID)
	if err != nil {
		return nil, fmt.Errorf("list bids for vendor %s: %w", vendorID, err)
	}
	return bids, nil
}

func (r *PostgresRepo) MarkBidsRevealed(tenderID string) (int, error) {
	res, err := r.db.Exec(`UPDATE bids SET is_revealed = true, updated_at = NOW() WHERE tender_id = $1 AND NOT is_revealed`, tenderID)
	if err != nil {
		return 0, fmt.Errorf("mark bids revealed for tender %s: %w", tenderID, err)
	}
	affected, err := res.RowsAffected()
	return int(affected), err
}

// lockTender loads a tender row FOR UPDATE within tx.
func lockTender(tx *sqlx.Tx, id string) (tenderRow, error) {
	var row tenderRow
	err := tx.Get(&row, `SELECT `+tenderColumns+` FROM tenders WHERE id = $1 FOR UPDATE`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return tenderRow{}, fmt.Errorf("tender %s: %w", id, procureerrors.ErrNotFound)
	}
	if err != nil {
		return tenderRow{}, fmt.Errorf("tender %s: %w", id, err)
	}
	return row, nil
}

// checkTenderAcceptsBids locks the tender, applies read-time repair on an
// expired-but-open row, and returns refusal when bids are no longer
// accepted. The sentinel differs by workflow (submission vs cancellation).
// The refusal aborts the caller's operation, so the repair is committed
// here; the caller's deferred rollback then becomes a no-op.
func checkTenderAcceptsBids(tx *sqlx.Tx, tenderID string, now time.Time, refusal error) error {
	row, err := lockTender(tx, tenderID)
	if err != nil {
		return err
	}
	t, err := row.toModel()
	if err != nil {
		return err
	}
	if t.Status == model.TenderOpen && t.IsExpired(now) {
		if _, err := tx.Exec(`UPDATE tenders SET status = 'closed', updated_at = NOW() WHERE id = $1`, t.ID); err != nil {
			return fmt.Errorf("close expired tender %s: %w", t.ID, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("close expired tender %s: commit: %w", t.ID, err)
		}
		return fmt.Errorf("tender %s deadline passed: %w", t.ID, refusal)
	}
	if !t.CanAcceptBids(now) {
		return fmt.Errorf("tender %s in status %s: %w", t.ID, t.Status, refusal)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
