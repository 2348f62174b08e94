package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"miniblog/internal/middleware"
	"miniblog/internal/repository"
)

type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=64"`
	Email    string `json:"email" validate:"required,email,max=120"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

type UserResponse struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
}

func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, KindValidation, "Invalid request body")
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, http.StatusBadRequest, KindValidation, "Invalid registration data: "+err.Error())
		return
	}

	serviceReq := repository.CreateUserRequest{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	}

	user, err := h.AuthService.Register(r.Context(), serviceReq)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			WriteError(w, http.StatusBadRequest, KindConflict, "Username or email already registered")
			return
		}
		WriteError(w, http.StatusInternalServerError, KindInternal, "Internal server error")
		return
	}

	response := map[string]interface{}{
		"message": "User registered successfully",
		"user": UserResponse{
			UserID:   user.UserID,
			Username: user.Username,
			Email:    user.Email,
		},
	}

	WriteSuccess(w, response, http.StatusOK)
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, KindValidation, "Invalid request body")
		return
	}

	if req.Username == "" || req.Password == "" {
		WriteError(w, http.StatusBadRequest, KindValidation, "Username and password are required")
		return
	}

	_, accessToken, err := h.AuthService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		// unknown user and wrong password are indistinguishable on purpose
		if errors.Is(err, repository.ErrNotFound) || errors.Is(err, repository.ErrWrongPassword) {
			WriteError(w, http.StatusUnauthorized, KindUnauthorized, "Invalid username or password")
			return
		}
		WriteError(w, http.StatusInternalServerError, KindInternal, "Internal server error")
		return
	}

	WriteSuccess(w, LoginResponse{AccessToken: accessToken}, http.StatusOK)
}

// Logout denylists the presented token's jti for its remaining lifetime.
func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	claims := middleware.TokenClaims(r.Context())
	if claims == nil {
		WriteError(w, http.StatusUnauthorized, KindUnauthorized, "Authentication required")
		return
	}

	if err := h.AuthService.RevokeToken(r.Context(), claims); err != nil {
		WriteError(w, http.StatusInternalServerError, KindInternal, "Internal server error")
		return
	}

	WriteSuccess(w, map[string]string{"msg": "Access token revoked"}, http.StatusOK)
}

func (h *Handlers) Verify(w http.ResponseWriter, r *http.Request) {
	user := middleware.CurrentUser(r.Context())
	if user == nil {
		WriteError(w, http.StatusUnauthorized, KindUnauthorized, "Authentication required")
		return
	}

	WriteSuccess(w, map[string]string{
		"message": fmt.Sprintf("Verify endpoint for %s", user.Username),
	}, http.StatusOK)
}
