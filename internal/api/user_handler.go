package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"knowledgeagent/internal/api/shared"
)

// UserResponse represents the response data for a user.
type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// mockUsers is the fixture data served by the user endpoints. The backend
// has no user persistence yet; frontends develop against this stable set.
var mockUsers = []UserResponse{
	{
		ID:        "7b0d67dc-72a1-4c0f-a7e7-0b8b2b0c1a01",
		Name:      "Ada Reyes",
		Email:     "ada.reyes@example.com",
		Role:      "admin",
		CreatedAt: time.Date(2025, time.March, 12, 9, 30, 0, 0, time.UTC),
	},
	{
		ID:        "f3a9c2de-5f14-4d2a-9a53-6f1f3c9e2b02",
		Name:      "Marcus Lindqvist",
		Email:     "marcus.lindqvist@example.com",
		Role:      "editor",
		CreatedAt: time.Date(2025, time.April, 2, 14, 5, 0, 0, time.UTC),
	},
	{
		ID:        "0c4e8b11-9d27-4a6b-b7c0-2e5d4a8f3c03",
		Name:      "Priya Natarajan",
		Email:     "priya.natarajan@example.com",
		Role:      "viewer",
		CreatedAt: time.Date(2025, time.May, 21, 8, 45, 0, 0, time.UTC),
	},
}

// UserHandler serves the mock user endpoints.
type UserHandler struct{}

// NewUserHandler creates a new UserHandler.
func NewUserHandler() *UserHandler {
	return &UserHandler{}
}

// ListUsers handles GET /api/users requests.
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, mockUsers)
}

// GetUser handles GET /api/users/{id} requests.
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	for _, u := range mockUsers {
		if u.ID == id {
			shared.RespondWithJSON(w, r, http.StatusOK, u)
			return
		}
	}
	shared.RespondWithError(w, r, http.StatusNotFound, "User not found")
}
