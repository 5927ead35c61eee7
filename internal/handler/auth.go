package handler

import (
	"net/http"

	"github.com/msomdec/inkpost/internal/service"
)

// AuthHandler handles authentication-related HTTP requests.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// HandleRegister creates an account and signs it in.
// POST /auth/register
// Request:  {"email":"...","password":"...","username":"..."}
// Response: 201 {"token":"...","user":{...}}
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req service.RegisterInput
	if !decode(w, r, &req) {
		return
	}

	sess, err := h.auth.Register(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, "register user", err)
		return
	}

	writeJSON(w, http.StatusCreated, toSessionDTO(sess))
}

// HandleLogin exchanges credentials for a token.
// POST /auth/login
// Request:  {"email":"...","password":"..."}
// Response: 200 {"token":"...","user":{...}}
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req service.LoginInput
	if !decode(w, r, &req) {
		return
	}

	sess, err := h.auth.Login(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, "login user", err)
		return
	}

	writeJSON(w, http.StatusOK, toSessionDTO(sess))
}

// HandleMe returns the currently authenticated user.
// GET /auth/me
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"user": toUserDTO(UserFromContext(r.Context())),
	})
}
