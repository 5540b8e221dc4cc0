package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/xelth-com/goodstrack/internal/middleware"
	"github.com/xelth-com/goodstrack/internal/models"
)

// listUsers lists accounts, optionally filtered by ?role=
func (r *Router) listUsers(w http.ResponseWriter, req *http.Request) {
	list, err := r.users.List(req.Context(), models.Role(req.URL.Query().Get("role")))
	if err != nil {
		r.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, list)
}

// updateUser saves profile changes. Users edit their own profile; officials may edit any.
func (r *Router) updateUser(w http.ResponseWriter, req *http.Request) {
	id := mux.Vars(req)["id"]
	claims, ok := middleware.ClaimsFromContext(req.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	if claims.UserID != id && claims.Role != models.RoleOfficial {
		respondError(w, http.StatusForbidden, "Forbidden")
		return
	}

	var body models.User
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	body.ID = id

	user, err := r.users.SyncProfile(req.Context(), body)
	if err != nil {
		r.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}
