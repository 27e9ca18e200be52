package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gearshare/backend/internal/domain/entities"
)

// RequestService defines the interface for item request board operations
type RequestService interface {
	Create(ctx context.Context, description string, requestorID int64) (*entities.ItemRequest, error)
	ListByRequestor(ctx context.Context, requestorID int64) ([]*entities.ItemRequestView, error)
	ListOthers(ctx context.Context, excludingUserID int64, offset, limit int) ([]*entities.ItemRequestView, error)
	GetByID(ctx context.Context, requestID, viewerID int64) (*entities.ItemRequestView, error)
}

// RequestHandler handles item request requests
type RequestHandler struct {
	service RequestService
}

// NewRequestHandler creates a new item request handler
func NewRequestHandler(service RequestService) *RequestHandler {
	return &RequestHandler{service: service}
}

type createRequestPayload struct {
	Description string `json:"description"`
}

// Create handles POST /requests
func (h *RequestHandler) Create(w http.ResponseWriter, r *http.Request) {
	requestorID, err := actingUserID(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	var payload createRequestPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	request, err := h.service.Create(r.Context(), payload.Description, requestorID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, request)
}

// ListByRequestor handles GET /requests
func (h *RequestHandler) ListByRequestor(w http.ResponseWriter, r *http.Request) {
	requestorID, err := actingUserID(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	views, err := h.service.ListByRequestor(r.Context(), requestorID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, views)
}

// ListOthers handles GET /requests/all?from=&size=
func (h *RequestHandler) ListOthers(w http.ResponseWriter, r *http.Request) {
	userID, err := actingUserID(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	from, err := queryInt(r, "from", 0)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	size, err := queryInt(r, "size", 10)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	views, err := h.service.ListOthers(r.Context(), userID, from, size)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, views)
}

// GetByID handles GET /requests/{requestId}
func (h *RequestHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	viewerID, err := actingUserID(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	requestID, err := pathID(r, "requestId")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	view, err := h.service.GetByID(r.Context(), requestID, viewerID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, view)
}

func queryInt(r *http.Request, name string, defaultValue int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return defaultValue, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.New(name + " query parameter must be an integer")
	}
	return value, nil
}
