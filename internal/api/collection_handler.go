package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"knowledgeagent/internal/api/shared"
	"knowledgeagent/internal/store"
)

// CreateCollectionRequest represents the request body for registering a new
// vector collection.
type CreateCollectionRequest struct {
	Name         string `json:"name"          validate:"required,min=1,max=63,alphanum_underscore"`
	Dimension    int    `json:"dimension"     validate:"required,gt=0,lte=4096"`
	DistanceFunc string `json:"distance_func" validate:"omitempty,oneof=cosine l2 dot"`
}

// CollectionResponse represents the response data for a vector collection.
type CollectionResponse struct {
	Name         string    `json:"name"`
	Table        string    `json:"table"`
	Dimension    int       `json:"dimension"`
	DistanceFunc string    `json:"distance_func"`
	CreatedAt    time.Time `json:"created_at"`
}

// CollectionHandler handles the admin collection registry endpoints.
type CollectionHandler struct {
	collections store.CollectionStore
	validator   *validator.Validate
	logger      *slog.Logger
}

// NewCollectionHandler creates a new CollectionHandler.
func NewCollectionHandler(collections store.CollectionStore, logger *slog.Logger) *CollectionHandler {
	v := validator.New()
	// Collection names become SQL identifiers; constrain them tightly.
	_ = v.RegisterValidation("alphanum_underscore", func(fl validator.FieldLevel) bool {
		for _, r := range fl.Field().String() {
			switch {
			case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			default:
				return false
			}
		}
		return true
	})

	return &CollectionHandler{
		collections: collections,
		validator:   v,
		logger:      logger.With("component", "collection_handler"),
	}
}

// ListCollections handles GET /api/admin/collections requests.
func (h *CollectionHandler) ListCollections(w http.ResponseWriter, r *http.Request) {
	collections, err := h.collections.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list collections", "error", err)
		shared.RespondWithError(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err))
		return
	}

	resp := make([]CollectionResponse, 0, len(collections))
	for _, c := range collections {
		resp = append(resp, collectionToResponse(c))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

// CreateCollection handles POST /api/admin/collections requests.
func (h *CollectionHandler) CreateCollection(w http.ResponseWriter, r *http.Request) {
	var req CreateCollectionRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: invalid collection definition")
		return
	}

	if req.DistanceFunc == "" {
		req.DistanceFunc = "cosine"
	}

	collection := store.Collection{
		Name:         req.Name,
		Table:        "embeddings_" + req.Name,
		Dimension:    req.Dimension,
		DistanceFunc: req.DistanceFunc,
	}

	if err := h.collections.Create(r.Context(), collection); err != nil {
		h.logger.Error("failed to create collection", "error", err, "collection", req.Name)
		shared.RespondWithError(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err))
		return
	}

	created, err := h.collections.GetByName(r.Context(), req.Name)
	if err != nil {
		h.logger.Error("failed to read back created collection", "error", err, "collection", req.Name)
		shared.RespondWithError(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err))
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, collectionToResponse(*created))
}

// GetCollection handles GET /api/admin/collections/{name} requests.
func (h *CollectionHandler) GetCollection(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	collection, err := h.collections.GetByName(r.Context(), name)
	if err != nil {
		if !store.IsNotFoundError(err) {
			h.logger.Error("failed to get collection", "error", err, "collection", name)
		}
		shared.RespondWithError(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err))
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, collectionToResponse(*collection))
}

// DeleteCollection handles DELETE /api/admin/collections/{name} requests.
func (h *CollectionHandler) DeleteCollection(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	if err := h.collections.Delete(r.Context(), name); err != nil {
		if !store.IsNotFoundError(err) {
			h.logger.Error("failed to delete collection", "error", err, "collection", name)
		}
		shared.RespondWithError(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err))
		return
	}

	h.logger.Info("collection deleted via admin API",
		"collection", name,
		"subject", r.Context().Value(shared.AdminSubjectKey))
	w.WriteHeader(http.StatusNoContent)
}

// collectionToResponse converts a store.Collection to a CollectionResponse.
func collectionToResponse(c store.Collection) CollectionResponse {
	return CollectionResponse{
		Name:         c.Name,
		Table:        c.Table,
		Dimension:    c.Dimension,
		DistanceFunc: c.DistanceFunc,
		CreatedAt:    c.CreatedAt,
	}
}
