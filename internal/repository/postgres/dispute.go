package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"toolshare-backend/internal/domain"
	"toolshare-backend/internal/repository"
)

type disputeRepository struct {
	db *sql.DB
}

func NewDisputeRepository(db *sql.DB) repository.DisputeRepository {
	return &disputeRepository{db: db}
}

func (r *disputeRepository) CreateWithClaim(ctx context.Context, d *domain.Dispute) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// Raising the claim flag is the gate: it only flips if no open dispute
	// holds it already, which makes a second concurrent open lose cleanly.
	res, err := tx.ExecContext(ctx,
		`UPDATE bookings SET has_active_claim = true, updated_on = $1 WHERE id = $2 AND has_active_claim = false`,
		time.Now(), d.BookingID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrDisputeAlreadyActive
	}

	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	d.Status = domain.DisputeStatusOpen
	d.CreatedOn = time.Now()

	evidence, err := json.Marshal(d.Evidence)
	if err != nil {
		return fmt.Errorf("failed to encode evidence: %w", err)
	}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO disputes (id, booking_id, raised_by, reason, description, evidence, status, created_on)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		d.ID, d.BookingID, d.RaisedBy, d.Reason, d.Description, evidence, d.Status, d.CreatedOn)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (r *disputeRepository) GetByID(ctx context.Context, id string) (*domain.Dispute, error) {
	query := `SELECT id, booking_id, raised_by, reason, description, evidence, status, resolution, resolved_on, created_on
	          FROM disputes WHERE id = $1`
	d, err := scanDispute(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return d, nil
}

func scanDispute(row rowScanner) (*domain.Dispute, error) {
	d := &domain.Dispute{}
	var evidence []byte
	var resolution sql.NullString
	err := row.Scan(&d.ID, &d.BookingID, &d.RaisedBy, &d.Reason, &d.Description, &evidence,
		&d.Status, &resolution, &d.ResolvedOn, &d.CreatedOn)
	if err != nil {
		return nil, err
	}
	if resolution.Valid {
		d.Resolution = domain.DisputeResolution(resolution.String)
	}
	if len(evidence) > 0 {
		if err := json.Unmarshal(evidence, &d.Evidence); err != nil {
			return nil, fmt.Errorf("failed to decode evidence: %w", err)
		}
	}
	return d, nil
}

func (r *disputeRepository) Resolve(ctx context.Context, d *domain.Dispute) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE disputes SET status = $1, resolution = $2, resolved_on = $3 WHERE id = $4 AND status = $5`,
		domain.DisputeStatusResolved, d.Resolution, d.ResolvedOn, d.ID, domain.DisputeStatusOpen)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}

	// has_active_claim holds iff an open dispute still references the booking.
	_, err = tx.ExecContext(ctx,
		`UPDATE bookings SET has_active_claim = EXISTS (
		     SELECT 1 FROM disputes WHERE booking_id = $1 AND status = $2
		 ), updated_on = $3 WHERE id = $1`,
		d.BookingID, domain.DisputeStatusOpen, time.Now())
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (r *disputeRepository) ListByBooking(ctx context.Context, bookingID string) ([]domain.Dispute, error) {
	query := `SELECT id, booking_id, raised_by, reason, description, evidence, status, resolution, resolved_on, created_on
	          FROM disputes WHERE booking_id = $1 ORDER BY created_on DESC`
	rows, err := r.db.QueryContext(ctx, query, bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var disputes []domain.Dispute
	for rows.Next() {
		d, err := scanDispute(rows)
		if err != nil {
			return nil, err
		}
		disputes = append(disputes, *d)
	}
	return disputes, rows.Err()
}
