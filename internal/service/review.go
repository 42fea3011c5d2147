package service

import (
	"context"
	"time"

	"toolshare-backend/internal/domain"
	"toolshare-backend/internal/repository"
)

type reviewService struct {
	reviewRepo  repository.ReviewRepository
	bookingRepo repository.BookingRepository
	notifier    Notifier
	now         Clock
}

func NewReviewService(
	reviewRepo repository.ReviewRepository,
	bookingRepo repository.BookingRepository,
	notifier Notifier,
	now Clock,
) ReviewService {
	if now == nil {
		now = time.Now
	}
	return &reviewService{
		reviewRepo:  reviewRepo,
		bookingRepo: bookingRepo,
		notifier:    notifier,
		now:         now,
	}
}

// CanReviewApp is false once the user has ever submitted an app review.
func (s *reviewService) CanReviewApp(ctx context.Context, userID string) (bool, error) {
	exists, err := s.reviewRepo.AppReviewExists(ctx, userID)
	if err != nil {
		return false, err
	}
	return !exists, nil
}

// CanReviewTool requires a completed booking, the reviewer being its renter,
// and no prior tool review for the (reviewer, booking) pair.
func (s *reviewService) CanReviewTool(ctx context.Context, userID, bookingID string) (bool, error) {
	b, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return false, err
	}
	if b.Status != domain.BookingStatusCompleted || b.RenterID != userID {
		return false, nil
	}
	exists, err := s.reviewRepo.ToolReviewExists(ctx, userID, bookingID)
	if err != nil {
		return false, err
	}
	return !exists, nil
}

func (s *reviewService) SubmitAppReview(ctx context.Context, userID string, rating int, comment string) (*domain.AppReview, error) {
	// Input validation happens before any persistence call.
	if err := domain.ValidateReviewInput(rating, comment); err != nil {
		return nil, err
	}
	ok, err := s.CanReviewApp(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrInvalidReviewInput
	}

	rv := &domain.AppReview{
		ReviewerID: userID,
		Rating:     rating,
		Comment:    comment,
	}
	if err := s.reviewRepo.CreateAppReview(ctx, rv); err != nil {
		return nil, err
	}

	s.notifier.Publish(ctx, domain.Event{
		Type:       domain.EventReviewSubmitted,
		ActorID:    userID,
		OccurredOn: s.now(),
		Attributes: map[string]string{"kind": "app"},
	})
	return rv, nil
}

func (s *reviewService) SubmitToolReview(ctx context.Context, userID, bookingID string, rating int, comment string) (*domain.ToolReview, error) {
	if err := domain.ValidateReviewInput(rating, comment); err != nil {
		return nil, err
	}
	b, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.Status != domain.BookingStatusCompleted || b.RenterID != userID {
		return nil, domain.ErrInvalidReviewInput
	}
	exists, err := s.reviewRepo.ToolReviewExists(ctx, userID, bookingID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrInvalidReviewInput
	}

	rv := &domain.ToolReview{
		BookingID:  bookingID,
		ToolID:     b.ToolID,
		ReviewerID: userID,
		RevieweeID: b.OwnerID,
		Rating:     rating,
		Comment:    comment,
	}
	if err := s.reviewRepo.CreateToolReview(ctx, rv); err != nil {
		return nil, err
	}

	s.notifier.Publish(ctx, domain.Event{
		Type:        domain.EventReviewSubmitted,
		BookingID:   bookingID,
		ActorID:     userID,
		RecipientID: b.OwnerID,
		OccurredOn:  s.now(),
		Attributes:  map[string]string{"kind": "tool", "tool_id": b.ToolID},
	})
	return rv, nil
}

func (s *reviewService) ListToolReviews(ctx context.Context, toolID string, page, pageSize int32) ([]domain.ToolReview, int32, error) {
	return s.reviewRepo.ListToolReviews(ctx, toolID, page, pageSize)
}
