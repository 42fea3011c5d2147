package service

import (
	"context"
	"time"

	"toolshare-backend/internal/domain"
)

// Clock supplies "now" to every time-dependent rule. Injected so the
// cancellation window and the return grace period stay testable; nothing in
// the engine reads the wall clock directly.
type Clock func() time.Time

// Notifier receives the engine's domain events. Fan-out (email, push, in-app,
// queue) is a collaborator concern; delivery failures never fail the
// operation that emitted the event.
type Notifier interface {
	Publish(ctx context.Context, event domain.Event)
}

// CreateBookingRequest carries the renter's request against a tool's
// availability calendar. Prices arrive as a snapshot from the listing.
type CreateBookingRequest struct {
	RenterID        string
	OwnerID         string
	ToolID          string
	StartDate       string // yyyy-mm-dd
	EndDate         string // yyyy-mm-dd
	PickupHour      *string
	DailyPriceCents int64
	DepositCents    int64
}

type BookingService interface {
	Create(ctx context.Context, req CreateBookingRequest) (*domain.Booking, error)
	Get(ctx context.Context, userID, bookingID string) (*domain.Booking, error)
	ListRentals(ctx context.Context, renterID, status string, page, pageSize int32) ([]domain.Booking, int32, error)
	ListLendings(ctx context.Context, ownerID, status string, page, pageSize int32) ([]domain.Booking, int32, error)

	Accept(ctx context.Context, ownerID, bookingID string) (*domain.Booking, error)
	Reject(ctx context.Context, ownerID, bookingID string, reason domain.ReasonCode, message string) (*domain.Booking, error)
	Activate(ctx context.Context, ownerID, bookingID, suppliedCode string) (*domain.Booking, error)
	Cancel(ctx context.Context, userID, bookingID string, reason domain.ReasonCode, message string) (*domain.Booking, error)

	ConfirmReturn(ctx context.Context, renterID, bookingID string) (*domain.Booking, error)
	AcknowledgeReturn(ctx context.Context, ownerID, bookingID string) (*domain.Booking, error)
	CompleteOverride(ctx context.Context, ownerID, bookingID string) (*domain.Booking, error)

	// AutoComplete finishes one booking whose return grace period elapsed.
	// Idempotent; invoked by the scheduler, attributed to the system actor.
	AutoComplete(ctx context.Context, bookingID string) error

	// RevealCode returns the pickup code to the renter, hidden before the
	// start date. Display-layer gating only, not a security boundary.
	RevealCode(ctx context.Context, renterID, bookingID string) (code string, visible bool, err error)
}

type DisputeService interface {
	Open(ctx context.Context, userID, bookingID string, reason domain.ReasonCode, description string, evidence []domain.EvidenceFile) (*domain.Dispute, error)
	Resolve(ctx context.Context, disputeID string, resolution domain.DisputeResolution) (*domain.Dispute, error)
	ListByBooking(ctx context.Context, userID, bookingID string) ([]domain.Dispute, error)
}

type ReviewService interface {
	CanReviewApp(ctx context.Context, userID string) (bool, error)
	CanReviewTool(ctx context.Context, userID, bookingID string) (bool, error)
	SubmitAppReview(ctx context.Context, userID string, rating int, comment string) (*domain.AppReview, error)
	SubmitToolReview(ctx context.Context, userID, bookingID string, rating int, comment string) (*domain.ToolReview, error)
	ListToolReviews(ctx context.Context, toolID string, page, pageSize int32) ([]domain.ToolReview, int32, error)
}

// SettlementService turns lifecycle outcomes into ledger records and refund
// instructions. Gateway settlement itself is external.
type SettlementService interface {
	HoldFunds(ctx context.Context, b *domain.Booking) error
	Refund(ctx context.Context, b *domain.Booking, amountCents int64) error
	PayoutOwner(ctx context.Context, b *domain.Booking) error
	ReleaseDeposit(ctx context.Context, b *domain.Booking) error
	ForfeitDeposit(ctx context.Context, b *domain.Booking, disputeID string) error
	Statement(ctx context.Context, userID string, page, pageSize int32) ([]domain.LedgerTransaction, int32, error)
	BookingLedger(ctx context.Context, bookingID string) ([]domain.LedgerTransaction, error)
}

type NotificationService interface {
	GetNotifications(ctx context.Context, userID string, page, pageSize int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, userID, notificationID string) error
}
