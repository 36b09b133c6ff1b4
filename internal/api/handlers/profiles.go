package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/mentor3d/professor/internal/domain"
	"github.com/mentor3d/professor/internal/storage"
)

// ProfileHandler handles user profiles
type ProfileHandler struct {
	store storage.ProfileStore
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(store storage.ProfileStore) *ProfileHandler {
	return &ProfileHandler{store: store}
}

// ProfileResponse represents a profile in API responses
type ProfileResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// Get returns the profile for an external user ID, creating a default
// student profile on first sight.
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		BadRequest(w, r, "profile ID is required")
		return
	}

	profile, err := h.store.GetProfile(r.Context(), id)
	if errors.Is(err, domain.ErrProfileNotFound) {
		profile = domain.NewProfile(id, "", "")
		if err := h.store.CreateProfile(r.Context(), profile); err != nil {
			InternalError(w, r, "failed to create profile", err)
			return
		}
	} else if err != nil {
		InternalError(w, r, "failed to load profile", err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"profile": ProfileResponse{
			ID:        profile.ID,
			Email:     profile.Email,
			FullName:  profile.FullName,
			Role:      profile.Role,
			CreatedAt: profile.CreatedAt,
		},
	})
}
