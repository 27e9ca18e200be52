package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gearshare/backend/internal/domain/entities"
)

// BookingService defines the interface for booking lifecycle operations
type BookingService interface {
	Create(ctx context.Context, itemID int64, start, end time.Time, bookerID int64) (*entities.Booking, error)
	Approve(ctx context.Context, bookingID int64, approve bool, actingUserID int64) (*entities.Booking, error)
	GetByID(ctx context.Context, bookingID, actingUserID int64) (*entities.Booking, error)
	ListByBooker(ctx context.Context, state string, bookerID int64) ([]*entities.Booking, error)
	ListByOwner(ctx context.Context, ownerID int64, state string) ([]*entities.Booking, error)
}

// BookingHandler handles booking requests
type BookingHandler struct {
	service BookingService
}

// NewBookingHandler creates a new booking handler
func NewBookingHandler(service BookingService) *BookingHandler {
	return &BookingHandler{service: service}
}

type createBookingPayload struct {
	ItemID int64     `json:"item_id"`
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
}

// Create handles POST /bookings
func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	bookerID, err := actingUserID(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	var payload createBookingPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	booking, err := h.service.Create(r.Context(), payload.ItemID, payload.Start, payload.End, bookerID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, booking)
}

// Approve handles PATCH /bookings/{bookingId}?approved=true|false
func (h *BookingHandler) Approve(w http.ResponseWriter, r *http.Request) {
	actorID, err := actingUserID(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	bookingID, err := pathID(r, "bookingId")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	approved, err := strconv.ParseBool(r.URL.Query().Get("approved"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "approved query parameter must be true or false")
		return
	}

	booking, err := h.service.Approve(r.Context(), bookingID, approved, actorID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, booking)
}

// GetByID handles GET /bookings/{bookingId}
func (h *BookingHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	actorID, err := actingUserID(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	bookingID, err := pathID(r, "bookingId")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	booking, err := h.service.GetByID(r.Context(), bookingID, actorID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, booking)
}

// ListByBooker handles GET /bookings?state=
func (h *BookingHandler) ListByBooker(w http.ResponseWriter, r *http.Request) {
	bookerID, err := actingUserID(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	bookings, err := h.service.ListByBooker(r.Context(), r.URL.Query().Get("state"), bookerID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, bookings)
}

// ListByOwner handles GET /bookings/owner?state=
func (h *BookingHandler) ListByOwner(w http.ResponseWriter, r *http.Request) {
	ownerID, err := actingUserID(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	bookings, err := h.service.ListByOwner(r.Context(), ownerID, r.URL.Query().Get("state"))
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, bookings)
}
