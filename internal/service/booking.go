package service

import (
	"context"
	"fmt"
	"time"

	"toolshare-backend/internal/domain"
	"toolshare-backend/internal/logger"
	"toolshare-backend/internal/repository"
	"toolshare-backend/internal/security"
)

type bookingService struct {
	bookingRepo repository.BookingRepository
	userRepo    repository.UserRepository
	settlement  SettlementService
	notifier    Notifier
	now         Clock
}

func NewBookingService(
	bookingRepo repository.BookingRepository,
	userRepo repository.UserRepository,
	settlement SettlementService,
	notifier Notifier,
	now Clock,
) BookingService {
	if now == nil {
		now = time.Now
	}
	return &bookingService{
		bookingRepo: bookingRepo,
		userRepo:    userRepo,
		settlement:  settlement,
		notifier:    notifier,
		now:         now,
	}
}

func (s *bookingService) Create(ctx context.Context, req CreateBookingRequest) (*domain.Booking, error) {
	if req.RenterID == req.OwnerID {
		return nil, fmt.Errorf("renter and owner must be distinct users")
	}
	if _, err := s.userRepo.GetByID(ctx, req.RenterID); err != nil {
		return nil, err
	}
	if _, err := s.userRepo.GetByID(ctx, req.OwnerID); err != nil {
		return nil, err
	}

	total, err := domain.TotalPrice(req.DailyPriceCents, req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	b := &domain.Booking{
		ToolID:          req.ToolID,
		OwnerID:         req.OwnerID,
		RenterID:        req.RenterID,
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
		PickupHour:      req.PickupHour,
		DailyPriceCents: req.DailyPriceCents,
		TotalPriceCents: total,
		DepositCents:    req.DepositCents,
		Status:          domain.BookingStatusPending,
	}
	if err := s.bookingRepo.Create(ctx, b); err != nil {
		return nil, err
	}

	if err := s.settlement.HoldFunds(ctx, b); err != nil {
		logger.Error("Failed to record fund hold", "booking_id", b.ID, "error", err)
		return nil, err
	}

	s.notifier.Publish(ctx, s.event(domain.EventBookingRequested, b, req.RenterID, b.OwnerID, nil))
	return b, nil
}

func (s *bookingService) Get(ctx context.Context, userID, bookingID string) (*domain.Booking, error) {
	b, err := s.partyBooking(ctx, userID, bookingID)
	if err != nil {
		return nil, err
	}
	// The pickup code has its own reveal gate.
	b.ValidationCode = ""
	return b, nil
}

func (s *bookingService) ListRentals(ctx context.Context, renterID, status string, page, pageSize int32) ([]domain.Booking, int32, error) {
	return s.bookingRepo.ListByRenter(ctx, renterID, status, page, pageSize)
}

func (s *bookingService) ListLendings(ctx context.Context, ownerID, status string, page, pageSize int32) ([]domain.Booking, int32, error) {
	return s.bookingRepo.ListByOwner(ctx, ownerID, status, page, pageSize)
}

// Accept moves PENDING to ACCEPTED and issues a fresh pickup validation code.
func (s *bookingService) Accept(ctx context.Context, ownerID, bookingID string) (*domain.Booking, error) {
	b, err := s.ownerBooking(ctx, ownerID, bookingID)
	if err != nil {
		return nil, err
	}
	if b.Status != domain.BookingStatusPending {
		return nil, domain.NewTransitionError(b, "accept")
	}

	code, err := security.GeneratePickupCode()
	if err != nil {
		return nil, err
	}
	b.Status = domain.BookingStatusAccepted
	b.ValidationCode = code
	if err := s.bookingRepo.UpdateStatus(ctx, b, domain.BookingStatusPending); err != nil {
		return nil, err
	}

	s.notifier.Publish(ctx, s.event(domain.EventBookingAccepted, b, ownerID, b.RenterID, nil))
	return b, nil
}

func (s *bookingService) Reject(ctx context.Context, ownerID, bookingID string, reason domain.ReasonCode, message string) (*domain.Booking, error) {
	b, err := s.ownerBooking(ctx, ownerID, bookingID)
	if err != nil {
		return nil, err
	}
	if b.Status != domain.BookingStatusPending {
		return nil, domain.NewTransitionError(b, "reject")
	}
	if !domain.IsRefusalReason(reason) {
		return nil, fmt.Errorf("unknown refusal reason %q", reason)
	}

	b.Status = domain.BookingStatusRejected
	b.RefusalReason = reason
	b.RefusalMessage = message
	if err := s.bookingRepo.UpdateStatus(ctx, b, domain.BookingStatusPending); err != nil {
		return nil, err
	}

	// Nothing was committed; everything held at request time goes back.
	if err := s.settlement.Refund(ctx, b, b.TotalPriceCents); err != nil {
		logger.Error("Failed to record refund on rejection", "booking_id", b.ID, "error", err)
		return nil, err
	}
	if err := s.settlement.ReleaseDeposit(ctx, b); err != nil {
		logger.Error("Failed to release deposit on rejection", "booking_id", b.ID, "error", err)
		return nil, err
	}

	s.notifier.Publish(ctx, s.event(domain.EventBookingRejected, b, ownerID, b.RenterID, map[string]string{
		"reason": string(reason),
	}))
	return b, nil
}

// Activate is the owner confirming the code the renter presented at pickup.
func (s *bookingService) Activate(ctx context.Context, ownerID, bookingID, suppliedCode string) (*domain.Booking, error) {
	b, err := s.ownerBooking(ctx, ownerID, bookingID)
	if err != nil {
		return nil, err
	}
	if b.Status != domain.BookingStatusAccepted {
		return nil, domain.NewTransitionError(b, "activate")
	}

	start, err := b.StartDateTime()
	if err != nil {
		return nil, err
	}
	if s.now().Truncate(24 * time.Hour).Before(start.Truncate(24 * time.Hour)) {
		return nil, domain.NewTransitionError(b, "activate")
	}
	if !security.PickupCodeMatches(b.ValidationCode, suppliedCode) {
		return nil, domain.ErrCodeMismatch
	}

	b.Status = domain.BookingStatusOngoing
	b.ValidationCode = "" // spent at pickup
	if err := s.bookingRepo.UpdateStatus(ctx, b, domain.BookingStatusAccepted); err != nil {
		return nil, err
	}

	s.notifier.Publish(ctx, s.event(domain.EventBookingActivated, b, ownerID, b.RenterID, nil))
	return b, nil
}

func (s *bookingService) Cancel(ctx context.Context, userID, bookingID string, reason domain.ReasonCode, message string) (*domain.Booking, error) {
	b, err := s.partyBooking(ctx, userID, bookingID)
	if err != nil {
		return nil, err
	}
	actor, _ := b.ActorFor(userID)

	if b.Status != domain.BookingStatusPending && b.Status != domain.BookingStatusAccepted {
		return nil, domain.NewTransitionError(b, "cancel")
	}
	if !domain.IsCancellationReason(reason) {
		return nil, fmt.Errorf("unknown cancellation reason %q", reason)
	}

	decision := domain.EvaluateCancellation(b, actor, s.now())
	if !decision.Allowed {
		return nil, domain.ErrCancellationNotAllowed
	}

	// The refund decision is snapshotted at the moment of cancellation and
	// never recomputed.
	from := b.Status
	b.Status = domain.BookingStatusCancelled
	b.CancellationReason = reason
	b.CancellationMessage = message
	b.CancelledBy = actor
	b.RefundTier = decision.Tier
	if decision.Tier == domain.RefundTierFull {
		b.RefundAmountCents = b.TotalPriceCents
	}
	if err := s.bookingRepo.UpdateStatus(ctx, b, from); err != nil {
		return nil, err
	}

	if b.RefundAmountCents > 0 {
		if err := s.settlement.Refund(ctx, b, b.RefundAmountCents); err != nil {
			logger.Error("Failed to record refund on cancellation", "booking_id", b.ID, "error", err)
			return nil, err
		}
	}
	// The deposit is never forfeited by cancellation alone.
	if err := s.settlement.ReleaseDeposit(ctx, b); err != nil {
		logger.Error("Failed to release deposit on cancellation", "booking_id", b.ID, "error", err)
		return nil, err
	}

	counterpart := b.OwnerID
	if actor == domain.ActorOwner {
		counterpart = b.RenterID
	}
	s.notifier.Publish(ctx, s.event(domain.EventBookingCancelled, b, userID, counterpart, map[string]string{
		"reason":      string(reason),
		"refund_tier": string(decision.Tier),
	}))
	return b, nil
}

// ConfirmReturn is the renter's half of the return handshake. It may fire at
// most once per booking.
func (s *bookingService) ConfirmReturn(ctx context.Context, renterID, bookingID string) (*domain.Booking, error) {
	b, err := s.partyBooking(ctx, renterID, bookingID)
	if err != nil {
		return nil, err
	}
	if b.RenterID != renterID {
		return nil, domain.ErrNotParticipant
	}
	if b.Status != domain.BookingStatusOngoing {
		return nil, domain.NewTransitionError(b, "confirm_return")
	}
	if b.HasUsedReturnButton {
		return nil, domain.ErrAlreadyConfirmed
	}

	confirmedOn := s.now()
	b.RenterHasReturned = true
	b.HasUsedReturnButton = true
	b.ReturnConfirmedOn = &confirmedOn

	if b.OwnerAcknowledgedReturn && !b.HasActiveClaim {
		return s.complete(ctx, b, domain.ActorRenter)
	}

	if err := s.bookingRepo.UpdateReturnFlags(ctx, b); err != nil {
		return nil, err
	}
	s.notifier.Publish(ctx, s.event(domain.EventReturnConfirmed, b, renterID, b.OwnerID, nil))
	return b, nil
}

// AcknowledgeReturn is the owner's half. With the renter's confirmation in
// place and no active claim it drives the booking to COMPLETED.
func (s *bookingService) AcknowledgeReturn(ctx context.Context, ownerID, bookingID string) (*domain.Booking, error) {
	b, err := s.ownerBooking(ctx, ownerID, bookingID)
	if err != nil {
		return nil, err
	}
	if b.Status != domain.BookingStatusOngoing {
		return nil, domain.NewTransitionError(b, "acknowledge_return")
	}
	if b.HasActiveClaim {
		return nil, domain.ErrDisputeAlreadyActive
	}

	b.OwnerAcknowledgedReturn = true
	if b.RenterHasReturned {
		return s.complete(ctx, b, domain.ActorOwner)
	}

	if err := s.bookingRepo.UpdateReturnFlags(ctx, b); err != nil {
		return nil, err
	}
	s.notifier.Publish(ctx, s.event(domain.EventReturnAcknowledged, b, ownerID, b.RenterID, nil))
	return b, nil
}

// CompleteOverride lets the owner close out a rental whose period elapsed
// without the renter ever confirming the return, as long as no claim is open.
func (s *bookingService) CompleteOverride(ctx context.Context, ownerID, bookingID string) (*domain.Booking, error) {
	b, err := s.ownerBooking(ctx, ownerID, bookingID)
	if err != nil {
		return nil, err
	}
	if b.Status != domain.BookingStatusOngoing {
		return nil, domain.NewTransitionError(b, "complete")
	}
	if b.HasActiveClaim {
		return nil, domain.ErrDisputeAlreadyActive
	}
	end, err := b.EndDateTime()
	if err != nil {
		return nil, err
	}
	if s.now().Before(end) {
		return nil, domain.NewTransitionError(b, "complete")
	}
	return s.complete(ctx, b, domain.ActorOwner)
}

func (s *bookingService) AutoComplete(ctx context.Context, bookingID string) error {
	b, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return err
	}
	if b.Status != domain.BookingStatusOngoing || !b.RenterHasReturned || b.HasActiveClaim {
		// Someone else finished or claimed it since the job scanned; re-runs
		// are no-ops.
		return nil
	}
	b.OwnerAcknowledgedReturn = true
	_, err = s.complete(ctx, b, domain.ActorSystem)
	return err
}

func (s *bookingService) complete(ctx context.Context, b *domain.Booking, by domain.Actor) (*domain.Booking, error) {
	b.Status = domain.BookingStatusCompleted
	b.CompletedBy = &by
	if err := s.bookingRepo.UpdateStatus(ctx, b, domain.BookingStatusOngoing); err != nil {
		return nil, err
	}

	if err := s.settlement.PayoutOwner(ctx, b); err != nil {
		logger.Error("Failed to record owner payout", "booking_id", b.ID, "error", err)
		return nil, err
	}
	if err := s.settlement.ReleaseDeposit(ctx, b); err != nil {
		logger.Error("Failed to release deposit", "booking_id", b.ID, "error", err)
		return nil, err
	}

	s.notifier.Publish(ctx, s.event(domain.EventBookingCompleted, b, string(by), b.RenterID, nil))
	return b, nil
}

func (s *bookingService) RevealCode(ctx context.Context, renterID, bookingID string) (string, bool, error) {
	b, err := s.partyBooking(ctx, renterID, bookingID)
	if err != nil {
		return "", false, err
	}
	if b.RenterID != renterID {
		return "", false, domain.ErrNotParticipant
	}
	if b.Status != domain.BookingStatusAccepted {
		return "", false, domain.NewTransitionError(b, "reveal_code")
	}
	start, err := time.Parse(domain.DateLayout, b.StartDate)
	if err != nil {
		return "", false, err
	}
	// Best-effort UX gate: the code is simply withheld from the response
	// before the start date, nothing more.
	if s.now().Before(start) {
		return "", false, nil
	}
	return b.ValidationCode, true, nil
}

func (s *bookingService) ownerBooking(ctx context.Context, ownerID, bookingID string) (*domain.Booking, error) {
	b, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.OwnerID != ownerID {
		return nil, domain.ErrNotParticipant
	}
	return b, nil
}

func (s *bookingService) partyBooking(ctx context.Context, userID, bookingID string) (*domain.Booking, error) {
	b, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !b.IsParty(userID) {
		return nil, domain.ErrNotParticipant
	}
	return b, nil
}

func (s *bookingService) event(t domain.EventType, b *domain.Booking, actorID, recipientID string, attrs map[string]string) domain.Event {
	return domain.Event{
		Type:        t,
		BookingID:   b.ID,
		ActorID:     actorID,
		RecipientID: recipientID,
		OccurredOn:  s.now(),
		Attributes:  attrs,
	}
}
