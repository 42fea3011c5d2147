package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"toolshare-backend/internal/domain"
	"toolshare-backend/internal/service"
)

type reviewFixture struct {
	reviewRepo  *MockReviewRepo
	bookingRepo *MockBookingRepo
	notifier    *MockNotifier
	svc         service.ReviewService
}

func newReviewFixture() *reviewFixture {
	f := &reviewFixture{
		reviewRepo:  new(MockReviewRepo),
		bookingRepo: new(MockBookingRepo),
		notifier:    new(MockNotifier),
	}
	now := time.Date(2026, 3, 20, 12, 0, 0, 0, time.UTC)
	f.svc = service.NewReviewService(f.reviewRepo, f.bookingRepo, f.notifier, func() time.Time { return now })
	return f
}

func TestReviewService_SubmitToolReview(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		f := newReviewFixture()
		f.bookingRepo.On("GetByID", ctx, "bk-1").Return(testBooking(domain.BookingStatusCompleted), nil)
		f.reviewRepo.On("ToolReviewExists", ctx, "renter-1", "bk-1").Return(false, nil)
		f.reviewRepo.On("CreateToolReview", ctx, mock.AnythingOfType("*domain.ToolReview")).Return(nil)
		f.notifier.On("Publish", ctx, mock.AnythingOfType("domain.Event")).Return()

		rv, err := f.svc.SubmitToolReview(ctx, "renter-1", "bk-1", 4, "solid drill, would rent again")
		assert.NoError(t, err)
		assert.Equal(t, "tool-1", rv.ToolID)
		assert.Equal(t, "owner-1", rv.RevieweeID)
		assert.Equal(t, 4, rv.Rating)
	})

	t.Run("Invalid input never reaches persistence", func(t *testing.T) {
		f := newReviewFixture()

		_, err := f.svc.SubmitToolReview(ctx, "renter-1", "bk-1", 0, "fine")
		assert.ErrorIs(t, err, domain.ErrInvalidReviewInput)

		_, err = f.svc.SubmitToolReview(ctx, "renter-1", "bk-1", 3, "ok")
		assert.ErrorIs(t, err, domain.ErrInvalidReviewInput)

		f.bookingRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
		f.reviewRepo.AssertNotCalled(t, "CreateToolReview", mock.Anything, mock.Anything)
	})

	t.Run("Only a completed booking qualifies", func(t *testing.T) {
		f := newReviewFixture()
		f.bookingRepo.On("GetByID", ctx, "bk-1").Return(testBooking(domain.BookingStatusOngoing), nil)

		_, err := f.svc.SubmitToolReview(ctx, "renter-1", "bk-1", 4, "great tool")
		assert.ErrorIs(t, err, domain.ErrInvalidReviewInput)
	})

	t.Run("Only the renter reviews the tool", func(t *testing.T) {
		f := newReviewFixture()
		f.bookingRepo.On("GetByID", ctx, "bk-1").Return(testBooking(domain.BookingStatusCompleted), nil)

		_, err := f.svc.SubmitToolReview(ctx, "owner-1", "bk-1", 4, "my own tool")
		assert.ErrorIs(t, err, domain.ErrInvalidReviewInput)
	})

	t.Run("One review per booking", func(t *testing.T) {
		f := newReviewFixture()
		f.bookingRepo.On("GetByID", ctx, "bk-1").Return(testBooking(domain.BookingStatusCompleted), nil)
		f.reviewRepo.On("ToolReviewExists", ctx, "renter-1", "bk-1").Return(true, nil)

		_, err := f.svc.SubmitToolReview(ctx, "renter-1", "bk-1", 4, "again!")
		assert.ErrorIs(t, err, domain.ErrInvalidReviewInput)
		f.reviewRepo.AssertNotCalled(t, "CreateToolReview", mock.Anything, mock.Anything)
	})
}

func TestReviewService_CanReviewTool(t *testing.T) {
	ctx := context.Background()

	t.Run("Eligible", func(t *testing.T) {
		f := newReviewFixture()
		f.bookingRepo.On("GetByID", ctx, "bk-1").Return(testBooking(domain.BookingStatusCompleted), nil)
		f.reviewRepo.On("ToolReviewExists", ctx, "renter-1", "bk-1").Return(false, nil)

		ok, err := f.svc.CanReviewTool(ctx, "renter-1", "bk-1")
		assert.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("Owner is never eligible", func(t *testing.T) {
		f := newReviewFixture()
		f.bookingRepo.On("GetByID", ctx, "bk-1").Return(testBooking(domain.BookingStatusCompleted), nil)

		ok, err := f.svc.CanReviewTool(ctx, "owner-1", "bk-1")
		assert.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("Cancelled booking is not eligible", func(t *testing.T) {
		f := newReviewFixture()
		f.bookingRepo.On("GetByID", ctx, "bk-1").Return(testBooking(domain.BookingStatusCancelled), nil)

		ok, err := f.svc.CanReviewTool(ctx, "renter-1", "bk-1")
		assert.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestReviewService_SubmitAppReview(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		f := newReviewFixture()
		f.reviewRepo.On("AppReviewExists", ctx, "renter-1").Return(false, nil)
		f.reviewRepo.On("CreateAppReview", ctx, mock.AnythingOfType("*domain.AppReview")).Return(nil)
		f.notifier.On("Publish", ctx, mock.AnythingOfType("domain.Event")).Return()

		rv, err := f.svc.SubmitAppReview(ctx, "renter-1", 5, "found every tool I needed")
		assert.NoError(t, err)
		assert.Equal(t, "renter-1", rv.ReviewerID)
	})

	t.Run("One app review per user, ever", func(t *testing.T) {
		f := newReviewFixture()
		f.reviewRepo.On("AppReviewExists", ctx, "renter-1").Return(true, nil)

		_, err := f.svc.SubmitAppReview(ctx, "renter-1", 5, "second try")
		assert.ErrorIs(t, err, domain.ErrInvalidReviewInput)
		f.reviewRepo.AssertNotCalled(t, "CreateAppReview", mock.Anything, mock.Anything)
	})

	t.Run("Validation precedes the eligibility lookup", func(t *testing.T) {
		f := newReviewFixture()

		_, err := f.svc.SubmitAppReview(ctx, "renter-1", 3, "no")
		assert.ErrorIs(t, err, domain.ErrInvalidReviewInput)
		f.reviewRepo.AssertNotCalled(t, "AppReviewExists", mock.Anything, mock.Anything)
	})
}
