package repository

import (
	"context"
	"time"

	"toolshare-backend/internal/domain"
)

type UserRepository interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
}

type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) error
	GetByID(ctx context.Context, id string) (*domain.Booking, error)

	// UpdateStatus persists the booking's mutable fields, guarded by a
	// compare-and-swap on the status column: the write only lands if the
	// stored status still equals from. A lost race surfaces as
	// domain.ErrInvalidTransition, never as a silent overwrite.
	UpdateStatus(ctx context.Context, b *domain.Booking, from domain.BookingStatus) error

	// UpdateReturnFlags persists the return acknowledgement fields without
	// touching status. Guarded on has_used_return_button for the renter leg.
	UpdateReturnFlags(ctx context.Context, b *domain.Booking) error

	ListByRenter(ctx context.Context, renterID, status string, page, pageSize int32) ([]domain.Booking, int32, error)
	ListByOwner(ctx context.Context, ownerID, status string, page, pageSize int32) ([]domain.Booking, int32, error)

	// ListAwaitingAutoComplete returns ONGOING bookings whose renter confirmed
	// the return before cutoff, with no owner acknowledgement and no active
	// claim. Feeds the grace-period job.
	ListAwaitingAutoComplete(ctx context.Context, cutoff time.Time) ([]domain.Booking, error)
}

type DisputeRepository interface {
	// CreateWithClaim inserts the dispute and raises the booking's active
	// claim flag in one transaction. Returns domain.ErrDisputeAlreadyActive
	// if the flag was already raised.
	CreateWithClaim(ctx context.Context, d *domain.Dispute) error

	GetByID(ctx context.Context, id string) (*domain.Dispute, error)

	// Resolve moves the dispute to RESOLVED and recomputes the booking's
	// active claim flag from the remaining open disputes, in one transaction.
	Resolve(ctx context.Context, d *domain.Dispute) error

	ListByBooking(ctx context.Context, bookingID string) ([]domain.Dispute, error)
}

type ReviewRepository interface {
	CreateToolReview(ctx context.Context, r *domain.ToolReview) error
	CreateAppReview(ctx context.Context, r *domain.AppReview) error
	ToolReviewExists(ctx context.Context, reviewerID, bookingID string) (bool, error)
	AppReviewExists(ctx context.Context, reviewerID string) (bool, error)
	ListToolReviews(ctx context.Context, toolID string, page, pageSize int32) ([]domain.ToolReview, int32, error)
}

type LedgerRepository interface {
	CreateTransaction(ctx context.Context, tx *domain.LedgerTransaction) error
	ListByBooking(ctx context.Context, bookingID string) ([]domain.LedgerTransaction, error)
	ListByUser(ctx context.Context, userID string, page, pageSize int32) ([]domain.LedgerTransaction, int32, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, note *domain.Notification) error
	List(ctx context.Context, userID string, limit, offset int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, id, userID string) error
}
