package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"toolshare-backend/internal/domain"
	"toolshare-backend/internal/security"
	"toolshare-backend/internal/service"
)

// stubBookingService overrides the methods a test exercises; the rest of the
// interface is never reached.
type stubBookingService struct {
	service.BookingService
	acceptFn func(ctx context.Context, ownerID, bookingID string) (*domain.Booking, error)
	getFn    func(ctx context.Context, userID, bookingID string) (*domain.Booking, error)
	cancelFn func(ctx context.Context, userID, bookingID string, reason domain.ReasonCode, message string) (*domain.Booking, error)
}

func (s *stubBookingService) Accept(ctx context.Context, ownerID, bookingID string) (*domain.Booking, error) {
	return s.acceptFn(ctx, ownerID, bookingID)
}

func (s *stubBookingService) Get(ctx context.Context, userID, bookingID string) (*domain.Booking, error) {
	return s.getFn(ctx, userID, bookingID)
}

func (s *stubBookingService) Cancel(ctx context.Context, userID, bookingID string, reason domain.ReasonCode, message string) (*domain.Booking, error) {
	return s.cancelFn(ctx, userID, bookingID, reason, message)
}

func testRouter(bookings service.BookingService) (http.Handler, string) {
	tokens := security.NewTokenManager("test-secret", 60)
	token, _ := tokens.GenerateAccessToken("owner-1", "owner@test.com")
	router := NewRouter(tokens,
		NewBookingHandler(bookings, nil),
		NewDisputeHandler(nil),
		NewReviewHandler(nil),
		NewNotificationHandler(nil),
	)
	return router, token
}

func TestBookingHandler_Accept(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc := &stubBookingService{
			acceptFn: func(ctx context.Context, ownerID, bookingID string) (*domain.Booking, error) {
				assert.Equal(t, "owner-1", ownerID)
				assert.Equal(t, "bk-1", bookingID)
				return &domain.Booking{ID: bookingID, Status: domain.BookingStatusAccepted}, nil
			},
		}
		router, token := testRouter(svc)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings/bk-1/accept", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		var body domain.Booking
		assert.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		assert.Equal(t, domain.BookingStatusAccepted, body.Status)
	})

	t.Run("Transition conflict carries allowed actions", func(t *testing.T) {
		svc := &stubBookingService{
			acceptFn: func(ctx context.Context, ownerID, bookingID string) (*domain.Booking, error) {
				b := &domain.Booking{ID: bookingID, Status: domain.BookingStatusOngoing}
				return nil, domain.NewTransitionError(b, "accept")
			},
		}
		router, token := testRouter(svc)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings/bk-1/accept", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusConflict, rec.Code)
		var body errorResponse
		assert.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		assert.Equal(t, "ONGOING", body.Status)
		assert.Contains(t, body.AllowedActions, "open_dispute")
	})

	t.Run("Missing token", func(t *testing.T) {
		router, _ := testRouter(&stubBookingService{})

		req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings/bk-1/accept", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestBookingHandler_Cancel(t *testing.T) {
	svc := &stubBookingService{
		cancelFn: func(ctx context.Context, userID, bookingID string, reason domain.ReasonCode, message string) (*domain.Booking, error) {
			assert.Equal(t, domain.ReasonChangeOfPlans, reason)
			return nil, domain.ErrCancellationNotAllowed
		},
	}
	router, token := testRouter(svc)

	body := strings.NewReader(`{"reason": "change-of-plans"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings/bk-1/cancel", body)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestBookingHandler_Get_NotFound(t *testing.T) {
	svc := &stubBookingService{
		getFn: func(ctx context.Context, userID, bookingID string) (*domain.Booking, error) {
			return nil, domain.ErrNotFound
		},
	}
	router, token := testRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings/missing", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestWriteError(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{domain.ErrNotFound, http.StatusNotFound},
		{domain.ErrNotParticipant, http.StatusForbidden},
		{domain.ErrInvalidTransition, http.StatusConflict},
		{domain.ErrCancellationNotAllowed, http.StatusConflict},
		{domain.ErrAlreadyConfirmed, http.StatusConflict},
		{domain.ErrDisputeAlreadyActive, http.StatusConflict},
		{domain.ErrEvidenceTooLarge, http.StatusRequestEntityTooLarge},
		{domain.ErrInvalidReviewInput, http.StatusUnprocessableEntity},
		{domain.ErrCodeMismatch, http.StatusUnprocessableEntity},
		{assert.AnError, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		writeError(rec, tc.err)
		assert.Equal(t, tc.code, rec.Code, "error %v", tc.err)
	}
}
