package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/msomdec/campus-market/internal/domain"
	"github.com/msomdec/campus-market/internal/service"
)

// ItemHandler handles catalog-related HTTP requests.
type ItemHandler struct {
	catalog *service.CatalogService
}

// NewItemHandler creates a new ItemHandler.
func NewItemHandler(catalog *service.CatalogService) *ItemHandler {
	return &ItemHandler{catalog: catalog}
}

// HandleList returns the visible subset of the catalog. When a valid auth
// cookie accompanies the request, the response also identifies the viewer.
// GET /api/items?q=&category=&mode=&view=
// Response: {"items": [...], "viewer": {...}?}
func (h *ItemHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := domain.ItemFilter{
		Search:   q.Get("q"),
		Category: domain.Category(q.Get("category")),
		Mode:     domain.Mode(q.Get("mode")),
		View:     domain.View(q.Get("view")),
	}

	items, err := h.catalog.Query(r.Context(), filter)
	if err != nil {
		slog.Error("query items", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred. Please try again.")
		return
	}

	payload := map[string]any{
		"items": toItemDTOs(items),
	}
	if user := UserFromContext(r.Context()); user != nil {
		payload["viewer"] = toUserDTO(user)
	}

	writeJSON(w, http.StatusOK, payload)
}

// HandleCreate posts a new listing as the authenticated user.
// POST /api/items
// Request:  {"name":"...","category":"...","mode":"...","price":0,"description":"...","image":"..."}
// Response: {"item": {...}}
func (h *ItemHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req struct {
		Name        string  `json:"name"`
		Category    string  `json:"category"`
		Mode        string  `json:"mode"`
		Price       float64 `json:"price"`
		Description string  `json:"description"`
		Image       string  `json:"image"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	input := service.AddItemInput{
		Name:        req.Name,
		Category:    domain.Category(req.Category),
		Mode:        domain.Mode(req.Mode),
		Price:       req.Price,
		Description: req.Description,
		Image:       req.Image,
	}

	item, err := h.catalog.AddItem(r.Context(), input, user)
	if err != nil {
		if errors.Is(err, domain.ErrNotSeller) {
			writeError(w, http.StatusForbidden, "Only seller accounts can post items.")
			return
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		slog.Error("create item", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred. Please try again.")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"item": toItemDTO(*item),
	})
}
