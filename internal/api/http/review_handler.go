package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"toolshare-backend/internal/service"
)

type ReviewHandler struct {
	reviews service.ReviewService
}

func NewReviewHandler(reviews service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviews: reviews}
}

type eligibilityResponse struct {
	Eligible bool `json:"eligible"`
}

func (h *ReviewHandler) CanReviewApp(w http.ResponseWriter, r *http.Request) {
	ok, err := h.reviews.CanReviewApp(r.Context(), callerID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, eligibilityResponse{Eligible: ok})
}

func (h *ReviewHandler) CanReviewTool(w http.ResponseWriter, r *http.Request) {
	ok, err := h.reviews.CanReviewTool(r.Context(), callerID(r), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, eligibilityResponse{Eligible: ok})
}

type submitReviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

func (h *ReviewHandler) SubmitAppReview(w http.ResponseWriter, r *http.Request) {
	var req submitReviewRequest
	if !decodeBody(w, r, &req) {
		return
	}
	rv, err := h.reviews.SubmitAppReview(r.Context(), callerID(r), req.Rating, req.Comment)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rv)
}

func (h *ReviewHandler) SubmitToolReview(w http.ResponseWriter, r *http.Request) {
	var req submitReviewRequest
	if !decodeBody(w, r, &req) {
		return
	}
	rv, err := h.reviews.SubmitToolReview(r.Context(), callerID(r), mux.Vars(r)["id"], req.Rating, req.Comment)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rv)
}

func (h *ReviewHandler) ListToolReviews(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)
	reviews, total, err := h.reviews.ListToolReviews(r.Context(), mux.Vars(r)["toolId"], page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse{Items: reviews, Total: total})
}
