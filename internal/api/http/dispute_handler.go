package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"toolshare-backend/internal/domain"
	"toolshare-backend/internal/service"
)

type DisputeHandler struct {
	disputes service.DisputeService
}

func NewDisputeHandler(disputes service.DisputeService) *DisputeHandler {
	return &DisputeHandler{disputes: disputes}
}

type openDisputeRequest struct {
	Reason      string                `json:"reason"`
	Description string                `json:"description"`
	Evidence    []domain.EvidenceFile `json:"evidence,omitempty"`
}

func (h *DisputeHandler) Open(w http.ResponseWriter, r *http.Request) {
	var req openDisputeRequest
	if !decodeBody(w, r, &req) {
		return
	}
	d, err := h.disputes.Open(r.Context(), callerID(r), mux.Vars(r)["id"],
		domain.ReasonCode(req.Reason), req.Description, req.Evidence)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, d)
}

func (h *DisputeHandler) ListByBooking(w http.ResponseWriter, r *http.Request) {
	disputes, err := h.disputes.ListByBooking(r.Context(), callerID(r), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse{Items: disputes, Total: int32(len(disputes))})
}

type resolveDisputeRequest struct {
	Resolution string `json:"resolution"`
}

func (h *DisputeHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	var req resolveDisputeRequest
	if !decodeBody(w, r, &req) {
		return
	}
	d, err := h.disputes.Resolve(r.Context(), mux.Vars(r)["id"], domain.DisputeResolution(req.Resolution))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}
