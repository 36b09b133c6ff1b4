package handlers

import (
	"net/http"

	"github.com/mentor3d/professor/internal/exec"
)

// Languages returns the supported language-to-identifier mapping
func Languages(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"languages": exec.SupportedLanguages(),
	})
}
