package http

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"toolshare-backend/internal/domain"
	"toolshare-backend/internal/service"
)

type BookingHandler struct {
	bookings   service.BookingService
	settlement service.SettlementService
}

func NewBookingHandler(bookings service.BookingService, settlement service.SettlementService) *BookingHandler {
	return &BookingHandler{bookings: bookings, settlement: settlement}
}

type createBookingRequest struct {
	OwnerID         string  `json:"owner_id"`
	ToolID          string  `json:"tool_id"`
	StartDate       string  `json:"start_date"`
	EndDate         string  `json:"end_date"`
	PickupHour      *string `json:"pickup_hour,omitempty"`
	DailyPriceCents int64   `json:"daily_price_cents"`
	DepositCents    int64   `json:"deposit_cents"`
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createBookingRequest
	if !decodeBody(w, r, &req) {
		return
	}
	b, err := h.bookings.Create(r.Context(), service.CreateBookingRequest{
		RenterID:        callerID(r),
		OwnerID:         req.OwnerID,
		ToolID:          req.ToolID,
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
		PickupHour:      req.PickupHour,
		DailyPriceCents: req.DailyPriceCents,
		DepositCents:    req.DepositCents,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, b)
}

func (h *BookingHandler) Get(w http.ResponseWriter, r *http.Request) {
	b, err := h.bookings.Get(r.Context(), callerID(r), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

type listResponse struct {
	Items interface{} `json:"items"`
	Total int32       `json:"total"`
}

func (h *BookingHandler) ListRentals(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)
	items, total, err := h.bookings.ListRentals(r.Context(), callerID(r), r.URL.Query().Get("status"), page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse{Items: items, Total: total})
}

func (h *BookingHandler) ListLendings(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)
	items, total, err := h.bookings.ListLendings(r.Context(), callerID(r), r.URL.Query().Get("status"), page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse{Items: items, Total: total})
}

func (h *BookingHandler) Accept(w http.ResponseWriter, r *http.Request) {
	b, err := h.bookings.Accept(r.Context(), callerID(r), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

type reasonRequest struct {
	Reason  string `json:"reason"`
	Message string `json:"message,omitempty"`
}

func (h *BookingHandler) Reject(w http.ResponseWriter, r *http.Request) {
	var req reasonRequest
	if !decodeBody(w, r, &req) {
		return
	}
	b, err := h.bookings.Reject(r.Context(), callerID(r), mux.Vars(r)["id"], domain.ReasonCode(req.Reason), req.Message)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

type activateRequest struct {
	ValidationCode string `json:"validation_code"`
}

func (h *BookingHandler) Activate(w http.ResponseWriter, r *http.Request) {
	var req activateRequest
	if !decodeBody(w, r, &req) {
		return
	}
	b, err := h.bookings.Activate(r.Context(), callerID(r), mux.Vars(r)["id"], req.ValidationCode)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (h *BookingHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	var req reasonRequest
	if !decodeBody(w, r, &req) {
		return
	}
	b, err := h.bookings.Cancel(r.Context(), callerID(r), mux.Vars(r)["id"], domain.ReasonCode(req.Reason), req.Message)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (h *BookingHandler) ConfirmReturn(w http.ResponseWriter, r *http.Request) {
	b, err := h.bookings.ConfirmReturn(r.Context(), callerID(r), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (h *BookingHandler) AcknowledgeReturn(w http.ResponseWriter, r *http.Request) {
	b, err := h.bookings.AcknowledgeReturn(r.Context(), callerID(r), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (h *BookingHandler) Complete(w http.ResponseWriter, r *http.Request) {
	b, err := h.bookings.CompleteOverride(r.Context(), callerID(r), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

type revealCodeResponse struct {
	Code    string `json:"code,omitempty"`
	Visible bool   `json:"visible"`
}

func (h *BookingHandler) RevealCode(w http.ResponseWriter, r *http.Request) {
	code, visible, err := h.bookings.RevealCode(r.Context(), callerID(r), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, revealCodeResponse{Code: code, Visible: visible})
}

func (h *BookingHandler) Ledger(w http.ResponseWriter, r *http.Request) {
	// Party check runs through the booking lookup.
	if _, err := h.bookings.Get(r.Context(), callerID(r), mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}
	txs, err := h.settlement.BookingLedger(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse{Items: txs, Total: int32(len(txs))})
}

func (h *BookingHandler) Statement(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)
	txs, total, err := h.settlement.Statement(r.Context(), callerID(r), page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse{Items: txs, Total: total})
}

func pagination(r *http.Request) (page, pageSize int32) {
	page, pageSize = 1, 20
	if v, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && v > 0 {
		page = int32(v)
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("page_size")); err == nil && v > 0 && v <= 100 {
		pageSize = int32(v)
	}
	return page, pageSize
}
