package service

import (
	"context"
	"fmt"

	"toolshare-backend/internal/domain"
	"toolshare-backend/internal/repository"
)

// RefundGateway is the payment collaborator boundary: it receives refund
// instructions and settles them against the gateway out of band.
type RefundGateway interface {
	IssueRefund(ctx context.Context, instruction domain.RefundInstruction) error
}

type settlementService struct {
	ledgerRepo repository.LedgerRepository
	gateway    RefundGateway
}

func NewSettlementService(ledgerRepo repository.LedgerRepository, gateway RefundGateway) SettlementService {
	return &settlementService{ledgerRepo: ledgerRepo, gateway: gateway}
}

// HoldFunds records the rental charge and the deposit hold taken when the
// renter submits a request.
func (s *settlementService) HoldFunds(ctx context.Context, b *domain.Booking) error {
	charge := &domain.LedgerTransaction{
		BookingID:   b.ID,
		UserID:      b.RenterID,
		AmountCents: -b.TotalPriceCents,
		Type:        domain.TransactionTypeRentalCharge,
		Description: fmt.Sprintf("Rental charge for tool %s", b.ToolID),
	}
	if err := s.ledgerRepo.CreateTransaction(ctx, charge); err != nil {
		return err
	}
	if b.DepositCents == 0 {
		return nil
	}
	hold := &domain.LedgerTransaction{
		BookingID:   b.ID,
		UserID:      b.RenterID,
		AmountCents: -b.DepositCents,
		Type:        domain.TransactionTypeDepositHold,
		Description: fmt.Sprintf("Security deposit hold for tool %s", b.ToolID),
	}
	return s.ledgerRepo.CreateTransaction(ctx, hold)
}

func (s *settlementService) Refund(ctx context.Context, b *domain.Booking, amountCents int64) error {
	if amountCents <= 0 {
		return nil
	}
	// Refund can never exceed what was paid.
	if amountCents > b.TotalPriceCents {
		amountCents = b.TotalPriceCents
	}
	tx := &domain.LedgerTransaction{
		BookingID:   b.ID,
		UserID:      b.RenterID,
		AmountCents: amountCents,
		Type:        domain.TransactionTypeRentalRefund,
		Description: fmt.Sprintf("Refund for booking %s", b.ID),
	}
	if err := s.ledgerRepo.CreateTransaction(ctx, tx); err != nil {
		return err
	}
	return s.gateway.IssueRefund(ctx, domain.RefundInstruction{
		BookingID:   b.ID,
		AmountCents: amountCents,
	})
}

func (s *settlementService) PayoutOwner(ctx context.Context, b *domain.Booking) error {
	tx := &domain.LedgerTransaction{
		BookingID:   b.ID,
		UserID:      b.OwnerID,
		AmountCents: b.TotalPriceCents,
		Type:        domain.TransactionTypeOwnerPayout,
		Description: fmt.Sprintf("Earnings from rental of tool %s", b.ToolID),
	}
	return s.ledgerRepo.CreateTransaction(ctx, tx)
}

// ReleaseDeposit returns the held deposit to the renter. A deposit that was
// already released or forfeited (by a resolved dispute) stays settled; the
// call is then a no-op so completion after a forfeiture cannot double-move it.
func (s *settlementService) ReleaseDeposit(ctx context.Context, b *domain.Booking) error {
	if b.DepositCents == 0 {
		return nil
	}
	settled, err := s.depositSettled(ctx, b.ID)
	if err != nil {
		return err
	}
	if settled {
		return nil
	}
	tx := &domain.LedgerTransaction{
		BookingID:   b.ID,
		UserID:      b.RenterID,
		AmountCents: b.DepositCents,
		Type:        domain.TransactionTypeDepositRelease,
		Description: fmt.Sprintf("Security deposit released for booking %s", b.ID),
	}
	return s.ledgerRepo.CreateTransaction(ctx, tx)
}

func (s *settlementService) ForfeitDeposit(ctx context.Context, b *domain.Booking, disputeID string) error {
	if b.DepositCents == 0 {
		return nil
	}
	settled, err := s.depositSettled(ctx, b.ID)
	if err != nil {
		return err
	}
	if settled {
		return nil
	}
	tx := &domain.LedgerTransaction{
		BookingID:   b.ID,
		UserID:      b.OwnerID,
		AmountCents: b.DepositCents,
		Type:        domain.TransactionTypeDepositForfeit,
		Description: fmt.Sprintf("Security deposit forfeited under dispute %s", disputeID),
	}
	return s.ledgerRepo.CreateTransaction(ctx, tx)
}

func (s *settlementService) depositSettled(ctx context.Context, bookingID string) (bool, error) {
	txs, err := s.ledgerRepo.ListByBooking(ctx, bookingID)
	if err != nil {
		return false, err
	}
	for _, tx := range txs {
		if tx.Type == domain.TransactionTypeDepositRelease || tx.Type == domain.TransactionTypeDepositForfeit {
			return true, nil
		}
	}
	return false, nil
}

func (s *settlementService) Statement(ctx context.Context, userID string, page, pageSize int32) ([]domain.LedgerTransaction, int32, error) {
	return s.ledgerRepo.ListByUser(ctx, userID, page, pageSize)
}

func (s *settlementService) BookingLedger(ctx context.Context, bookingID string) ([]domain.LedgerTransaction, error) {
	return s.ledgerRepo.ListByBooking(ctx, bookingID)
}
