package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/xelth-com/goodstrack/internal/models"
	"github.com/xelth-com/goodstrack/internal/services/users"
	"github.com/xelth-com/goodstrack/internal/utils"
)

// LoginRequest represents a login request.
// Phone verification happens in the external auth provider; this endpoint only issues the session.
type LoginRequest struct {
	Phone string `json:"phone"`
}

// login issues a session token for a registered phone number
func (r *Router) login(w http.ResponseWriter, req *http.Request) {
	var loginReq LoginRequest
	if err := json.NewDecoder(req.Body).Decode(&loginReq); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	user, err := r.users.GetByPhone(req.Context(), loginReq.Phone)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			respondError(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		r.respondServiceError(w, err)
		return
	}

	r.respondSession(w, http.StatusOK, user)
}

// register handles user registration
func (r *Router) register(w http.ResponseWriter, req *http.Request) {
	var regReq users.SignUpRequest
	if err := json.NewDecoder(req.Body).Decode(&regReq); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	user, err := r.users.Register(req.Context(), regReq)
	if err != nil {
		r.respondServiceError(w, err)
		return
	}

	r.respondSession(w, http.StatusCreated, user)
}

func (r *Router) respondSession(w http.ResponseWriter, status int, user *models.User) {
	token, err := utils.GenerateToken(*user, r.jwtSecret, utils.DefaultSessionTTL)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}
	respondJSON(w, status, map[string]interface{}{
		"accessToken": token,
		"user":        user,
	})
}
