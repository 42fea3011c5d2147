package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"toolshare-backend/internal/domain"
	"toolshare-backend/internal/logger"
	"toolshare-backend/internal/repository"
)

type disputeService struct {
	disputeRepo repository.DisputeRepository
	bookingRepo repository.BookingRepository
	settlement  SettlementService
	notifier    Notifier
	now         Clock
}

func NewDisputeService(
	disputeRepo repository.DisputeRepository,
	bookingRepo repository.BookingRepository,
	settlement SettlementService,
	notifier Notifier,
	now Clock,
) DisputeService {
	if now == nil {
		now = time.Now
	}
	return &disputeService{
		disputeRepo: disputeRepo,
		bookingRepo: bookingRepo,
		settlement:  settlement,
		notifier:    notifier,
		now:         now,
	}
}

func (s *disputeService) Open(ctx context.Context, userID, bookingID string, reason domain.ReasonCode, description string, evidence []domain.EvidenceFile) (*domain.Dispute, error) {
	b, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !b.IsParty(userID) {
		return nil, domain.ErrNotParticipant
	}
	if b.HasActiveClaim {
		return nil, domain.ErrDisputeAlreadyActive
	}
	if !domain.IsDisputeReason(reason) {
		return nil, fmt.Errorf("unknown dispute reason %q", reason)
	}
	if strings.TrimSpace(description) == "" {
		return nil, fmt.Errorf("dispute description is required")
	}

	// All-or-nothing: one oversized file rejects the whole submission before
	// anything is persisted.
	for _, f := range evidence {
		if f.SizeBytes > domain.MaxEvidenceSizeBytes {
			return nil, fmt.Errorf("evidence file %q is %d bytes: %w", f.Name, f.SizeBytes, domain.ErrEvidenceTooLarge)
		}
	}

	d := &domain.Dispute{
		BookingID:   bookingID,
		RaisedBy:    userID,
		Reason:      reason,
		Description: description,
		Evidence:    evidence,
	}
	if err := s.disputeRepo.CreateWithClaim(ctx, d); err != nil {
		return nil, err
	}

	counterpart := b.OwnerID
	if userID == b.OwnerID {
		counterpart = b.RenterID
	}
	s.notifier.Publish(ctx, domain.Event{
		Type:        domain.EventDisputeOpened,
		BookingID:   bookingID,
		ActorID:     userID,
		RecipientID: counterpart,
		OccurredOn:  s.now(),
		Attributes:  map[string]string{"dispute_id": d.ID, "reason": string(reason)},
	})
	return d, nil
}

func (s *disputeService) Resolve(ctx context.Context, disputeID string, resolution domain.DisputeResolution) (*domain.Dispute, error) {
	d, err := s.disputeRepo.GetByID(ctx, disputeID)
	if err != nil {
		return nil, err
	}
	if !d.IsOpen() {
		return nil, domain.ErrNotFound
	}
	switch resolution {
	case domain.ResolutionRefundRenter, domain.ResolutionReleaseOwner, domain.ResolutionForfeitDeposit:
	default:
		return nil, fmt.Errorf("unknown dispute resolution %q", resolution)
	}

	b, err := s.bookingRepo.GetByID(ctx, d.BookingID)
	if err != nil {
		return nil, err
	}

	resolvedOn := s.now()
	d.Status = domain.DisputeStatusResolved
	d.Resolution = resolution
	d.ResolvedOn = &resolvedOn
	if err := s.disputeRepo.Resolve(ctx, d); err != nil {
		return nil, err
	}

	switch resolution {
	case domain.ResolutionRefundRenter:
		if err := s.settlement.Refund(ctx, b, b.TotalPriceCents); err != nil {
			logger.Error("Failed to record dispute refund", "dispute_id", d.ID, "error", err)
			return nil, err
		}
	case domain.ResolutionForfeitDeposit:
		// The only path that forfeits a deposit.
		if err := s.settlement.ForfeitDeposit(ctx, b, d.ID); err != nil {
			logger.Error("Failed to record deposit forfeiture", "dispute_id", d.ID, "error", err)
			return nil, err
		}
	}

	s.notifier.Publish(ctx, domain.Event{
		Type:        domain.EventDisputeResolved,
		BookingID:   d.BookingID,
		ActorID:     string(domain.ActorSystem),
		RecipientID: d.RaisedBy,
		OccurredOn:  resolvedOn,
		Attributes:  map[string]string{"dispute_id": d.ID, "resolution": string(resolution)},
	})
	return d, nil
}

func (s *disputeService) ListByBooking(ctx context.Context, userID, bookingID string) ([]domain.Dispute, error) {
	b, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !b.IsParty(userID) {
		return nil, domain.ErrNotParticipant
	}
	return s.disputeRepo.ListByBooking(ctx, bookingID)
}
