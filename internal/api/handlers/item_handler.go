package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gearshare/backend/internal/domain/entities"
)

// ItemService defines the interface for item catalog operations
type ItemService interface {
	Create(ctx context.Context, ownerID int64, name, description string, available bool, requestID *int64) (*entities.Item, error)
	Update(ctx context.Context, itemID int64, update entities.ItemUpdate, actingUserID int64) (*entities.Item, error)
	GetByID(ctx context.Context, itemID, viewerID int64) (*entities.ItemView, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]*entities.ItemView, error)
	Search(ctx context.Context, text string) ([]*entities.ItemView, error)
	AddComment(ctx context.Context, itemID, authorID int64, text string) (*entities.Comment, error)
}

// ItemHandler handles item requests
type ItemHandler struct {
	service ItemService
}

// NewItemHandler creates a new item handler
func NewItemHandler(service ItemService) *ItemHandler {
	return &ItemHandler{service: service}
}

type createItemPayload struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   bool   `json:"available"`
	RequestID   *int64 `json:"request_id"`
}

type commentPayload struct {
	Text string `json:"text"`
}

// Create handles POST /items
func (h *ItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	ownerID, err := actingUserID(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	var payload createItemPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	item, err := h.service.Create(r.Context(), ownerID, payload.Name, payload.Description, payload.Available, payload.RequestID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, item)
}

// Update handles PATCH /items/{itemId}
func (h *ItemHandler) Update(w http.ResponseWriter, r *http.Request) {
	actorID, err := actingUserID(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	itemID, err := pathID(r, "itemId")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	var update entities.ItemUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	item, err := h.service.Update(r.Context(), itemID, update, actorID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, item)
}

// GetByID handles GET /items/{itemId}
func (h *ItemHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	viewerID, err := actingUserID(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	itemID, err := pathID(r, "itemId")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	view, err := h.service.GetByID(r.Context(), itemID, viewerID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, view)
}

// ListByOwner handles GET /items
func (h *ItemHandler) ListByOwner(w http.ResponseWriter, r *http.Request) {
	ownerID, err := actingUserID(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	views, err := h.service.ListByOwner(r.Context(), ownerID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, views)
}

// Search handles GET /items/search?text=
func (h *ItemHandler) Search(w http.ResponseWriter, r *http.Request) {
	views, err := h.service.Search(r.Context(), r.URL.Query().Get("text"))
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, views)
}

// AddComment handles POST /items/{itemId}/comment
func (h *ItemHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	authorID, err := actingUserID(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	itemID, err := pathID(r, "itemId")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	var payload commentPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	comment, err := h.service.AddComment(r.Context(), itemID, authorID, payload.Text)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, comment)
}
