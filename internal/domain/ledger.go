package domain

import "time"

type TransactionType string

const (
	TransactionTypeRentalCharge   TransactionType = "RENTAL_CHARGE"
	TransactionTypeRentalRefund   TransactionType = "RENTAL_REFUND"
	TransactionTypeOwnerPayout    TransactionType = "OWNER_PAYOUT"
	TransactionTypeDepositHold    TransactionType = "DEPOSIT_HOLD"
	TransactionTypeDepositRelease TransactionType = "DEPOSIT_RELEASE"
	TransactionTypeDepositForfeit TransactionType = "DEPOSIT_FORFEIT"
)

// LedgerTransaction is one settlement record. The engine only emits these;
// actual gateway movement is the payment collaborator's job.
type LedgerTransaction struct {
	ID          string          `json:"id"`
	BookingID   string          `json:"booking_id"`
	UserID      string          `json:"user_id"`
	AmountCents int64           `json:"amount_cents"` // positive credit, negative debit
	Type        TransactionType `json:"type"`
	Description string          `json:"description"`
	CreatedOn   time.Time       `json:"created_on"`
}

// RefundInstruction is what the payment collaborator receives when a
// cancellation or dispute resolution returns money to the renter.
type RefundInstruction struct {
	BookingID   string `json:"booking_id"`
	AmountCents int64  `json:"amount_cents"`
}
