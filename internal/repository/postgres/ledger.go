package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"toolshare-backend/internal/domain"
	"toolshare-backend/internal/repository"
)

type ledgerRepository struct {
	db *sql.DB
}

func NewLedgerRepository(db *sql.DB) repository.LedgerRepository {
	return &ledgerRepository{db: db}
}

func (r *ledgerRepository) CreateTransaction(ctx context.Context, tx *domain.LedgerTransaction) error {
	if tx.ID == "" {
		tx.ID = uuid.NewString()
	}
	tx.CreatedOn = time.Now()
	query := `INSERT INTO ledger_transactions (id, booking_id, user_id, amount_cents, type, description, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.db.ExecContext(ctx, query, tx.ID, tx.BookingID, tx.UserID, tx.AmountCents, tx.Type,
		tx.Description, tx.CreatedOn)
	return err
}

func (r *ledgerRepository) ListByBooking(ctx context.Context, bookingID string) ([]domain.LedgerTransaction, error) {
	query := `SELECT id, booking_id, user_id, amount_cents, type, description, created_on
	          FROM ledger_transactions WHERE booking_id = $1 ORDER BY created_on ASC`
	rows, err := r.db.QueryContext(ctx, query, bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectTransactions(rows)
}

func (r *ledgerRepository) ListByUser(ctx context.Context, userID string, page, pageSize int32) ([]domain.LedgerTransaction, int32, error) {
	offset := (page - 1) * pageSize

	var count int32
	if err := r.db.QueryRowContext(ctx,
		`SELECT count(*) FROM ledger_transactions WHERE user_id = $1`, userID).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := `SELECT id, booking_id, user_id, amount_cents, type, description, created_on
	          FROM ledger_transactions WHERE user_id = $1 ORDER BY created_on DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, userID, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	txs, err := collectTransactions(rows)
	if err != nil {
		return nil, 0, err
	}
	return txs, count, nil
}

func collectTransactions(rows *sql.Rows) ([]domain.LedgerTransaction, error) {
	var txs []domain.LedgerTransaction
	for rows.Next() {
		var tx domain.LedgerTransaction
		if err := rows.Scan(&tx.ID, &tx.BookingID, &tx.UserID, &tx.AmountCents, &tx.Type,
			&tx.Description, &tx.CreatedOn); err != nil {
			return nil, err
		}
		txs = append(txs, tx)
	}
	return txs, rows.Err()
}
