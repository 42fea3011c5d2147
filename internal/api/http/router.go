package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"toolshare-backend/internal/security"
)

// NewRouter wires every handler under /api/v1 behind the auth middleware.
func NewRouter(
	tokens security.TokenManager,
	bookings *BookingHandler,
	disputes *DisputeHandler,
	reviews *ReviewHandler,
	notifications *NotificationHandler,
) *mux.Router {
	r := mux.NewRouter()
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(AuthMiddleware(tokens))

	// Bookings
	api.HandleFunc("/bookings", bookings.Create).Methods(http.MethodPost)
	api.HandleFunc("/bookings/rentals", bookings.ListRentals).Methods(http.MethodGet)
	api.HandleFunc("/bookings/lendings", bookings.ListLendings).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{id}", bookings.Get).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{id}/accept", bookings.Accept).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{id}/reject", bookings.Reject).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{id}/activate", bookings.Activate).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{id}/cancel", bookings.Cancel).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{id}/confirm-return", bookings.ConfirmReturn).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{id}/acknowledge-return", bookings.AcknowledgeReturn).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{id}/complete", bookings.Complete).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{id}/code", bookings.RevealCode).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{id}/ledger", bookings.Ledger).Methods(http.MethodGet)
	api.HandleFunc("/ledger/statement", bookings.Statement).Methods(http.MethodGet)

	// Disputes
	api.HandleFunc("/bookings/{id}/disputes", disputes.Open).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{id}/disputes", disputes.ListByBooking).Methods(http.MethodGet)
	api.HandleFunc("/disputes/{id}/resolve", disputes.Resolve).Methods(http.MethodPost)

	// Reviews
	api.HandleFunc("/reviews/app/eligibility", reviews.CanReviewApp).Methods(http.MethodGet)
	api.HandleFunc("/reviews/app", reviews.SubmitAppReview).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{id}/review/eligibility", reviews.CanReviewTool).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{id}/review", reviews.SubmitToolReview).Methods(http.MethodPost)
	api.HandleFunc("/tools/{toolId}/reviews", reviews.ListToolReviews).Methods(http.MethodGet)

	// Notifications
	api.HandleFunc("/notifications", notifications.List).Methods(http.MethodGet)
	api.HandleFunc("/notifications/{id}/read", notifications.MarkAsRead).Methods(http.MethodPost)

	return r
}
