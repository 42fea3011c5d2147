package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"toolshare-backend/internal/domain"
	"toolshare-backend/internal/repository"
)

const bookingColumns = `id, tool_id, owner_id, renter_id, start_date, end_date, pickup_hour,
	daily_price_cents, total_price_cents, deposit_cents, status, validation_code,
	renter_has_returned, has_used_return_button, owner_acknowledged_return, return_confirmed_on,
	has_active_claim, cancellation_reason, cancellation_message, cancelled_by, refund_tier,
	refund_amount_cents, refusal_reason, refusal_message, completed_by, created_on, updated_on`

type bookingRepository struct {
	db *sql.DB
}

func NewBookingRepository(db *sql.DB) repository.BookingRepository {
	return &bookingRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	b := &domain.Booking{}
	var cancelledBy, refundTier, completedBy sql.NullString
	err := row.Scan(
		&b.ID, &b.ToolID, &b.OwnerID, &b.RenterID, &b.StartDate, &b.EndDate, &b.PickupHour,
		&b.DailyPriceCents, &b.TotalPriceCents, &b.DepositCents, &b.Status, &b.ValidationCode,
		&b.RenterHasReturned, &b.HasUsedReturnButton, &b.OwnerAcknowledgedReturn, &b.ReturnConfirmedOn,
		&b.HasActiveClaim, &b.CancellationReason, &b.CancellationMessage, &cancelledBy, &refundTier,
		&b.RefundAmountCents, &b.RefusalReason, &b.RefusalMessage, &completedBy, &b.CreatedOn, &b.UpdatedOn,
	)
	if err != nil {
		return nil, err
	}
	if cancelledBy.Valid {
		b.CancelledBy = domain.Actor(cancelledBy.String)
	}
	if refundTier.Valid {
		b.RefundTier = domain.RefundTier(refundTier.String)
	}
	if completedBy.Valid {
		actor := domain.Actor(completedBy.String)
		b.CompletedBy = &actor
	}
	return b, nil
}

func (r *bookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	now := time.Now()
	b.CreatedOn = now
	b.UpdatedOn = now
	query := `INSERT INTO bookings (id, tool_id, owner_id, renter_id, start_date, end_date, pickup_hour,
	          daily_price_cents, total_price_cents, deposit_cents, status, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.db.ExecContext(ctx, query, b.ID, b.ToolID, b.OwnerID, b.RenterID, b.StartDate, b.EndDate,
		b.PickupHour, b.DailyPriceCents, b.TotalPriceCents, b.DepositCents, b.Status, b.CreatedOn, b.UpdatedOn)
	return err
}

func (r *bookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`
	b, err := scanBooking(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, b *domain.Booking, from domain.BookingStatus) error {
	query := `UPDATE bookings SET status=$1, validation_code=$2,
	          renter_has_returned=$3, has_used_return_button=$4, owner_acknowledged_return=$5, return_confirmed_on=$6,
	          cancellation_reason=$7, cancellation_message=$8, cancelled_by=NULLIF($9, ''), refund_tier=NULLIF($10, ''),
	          refund_amount_cents=$11, refusal_reason=$12, refusal_message=$13, completed_by=NULLIF($14, ''),
	          updated_on=$15
	          WHERE id=$16 AND status=$17`
	var completedBy string
	if b.CompletedBy != nil {
		completedBy = string(*b.CompletedBy)
	}
	res, err := r.db.ExecContext(ctx, query, b.Status, b.ValidationCode,
		b.RenterHasReturned, b.HasUsedReturnButton, b.OwnerAcknowledgedReturn, b.ReturnConfirmedOn,
		b.CancellationReason, b.CancellationMessage, string(b.CancelledBy), string(b.RefundTier),
		b.RefundAmountCents, b.RefusalReason, b.RefusalMessage, completedBy,
		time.Now(), b.ID, from)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	// Zero rows means another operation committed first; the caller loses the
	// race and must observe the violation, not overwrite.
	if affected == 0 {
		return domain.ErrInvalidTransition
	}
	return nil
}

func (r *bookingRepository) UpdateReturnFlags(ctx context.Context, b *domain.Booking) error {
	query := `UPDATE bookings SET renter_has_returned=$1, has_used_return_button=$2,
	          owner_acknowledged_return=$3, return_confirmed_on=$4, updated_on=$5
	          WHERE id=$6 AND status=$7`
	res, err := r.db.ExecContext(ctx, query, b.RenterHasReturned, b.HasUsedReturnButton,
		b.OwnerAcknowledgedReturn, b.ReturnConfirmedOn, time.Now(), b.ID, domain.BookingStatusOngoing)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrInvalidTransition
	}
	return nil
}

func (r *bookingRepository) ListByRenter(ctx context.Context, renterID, status string, page, pageSize int32) ([]domain.Booking, int32, error) {
	return r.list(ctx, "renter_id", renterID, status, page, pageSize)
}

func (r *bookingRepository) ListByOwner(ctx context.Context, ownerID, status string, page, pageSize int32) ([]domain.Booking, int32, error) {
	return r.list(ctx, "owner_id", ownerID, status, page, pageSize)
}

func (r *bookingRepository) list(ctx context.Context, partyColumn, partyID, status string, page, pageSize int32) ([]domain.Booking, int32, error) {
	offset := (page - 1) * pageSize
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE ` + partyColumn + ` = $1`

	args := []interface{}{partyID}
	argIdx := 2
	if status != "" {
		query += " AND status = $2"
		args = append(args, status)
		argIdx++
	}

	var count int32
	countQuery := "SELECT count(*) FROM (" + query + ") as sub"
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query += fmt.Sprintf(" ORDER BY created_on DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, 0, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, count, rows.Err()
}

func (r *bookingRepository) ListAwaitingAutoComplete(ctx context.Context, cutoff time.Time) ([]domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings
	          WHERE status = $1
	            AND renter_has_returned = true
	            AND owner_acknowledged_return = false
	            AND has_active_claim = false
	            AND return_confirmed_on <= $2
	          ORDER BY return_confirmed_on ASC`
	rows, err := r.db.QueryContext(ctx, query, domain.BookingStatusOngoing, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, rows.Err()
}
