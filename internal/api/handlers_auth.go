package api

import (
	"net/http"

	"github.com/shelftrack/shelftrack/internal/auth"
	"github.com/shelftrack/shelftrack/internal/httputil"
	"github.com/shelftrack/shelftrack/internal/models"
	"github.com/shelftrack/shelftrack/internal/repository"
)

const minPasswordLength = 8

type registerRequest struct {
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	Password    string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := httputil.ReadJSON(r, &req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		return
	}

	req.Email = auth.NormalizeEmail(req.Email)
	if req.Email == "" {
		httputil.WriteError(w, http.StatusBadRequest, "BAD_REQUEST", "email is required")
		return
	}
	if err := auth.ValidatePassword(req.Password, minPasswordLength); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "WEAK_PASSWORD", "password must be at least 8 characters")
		return
	}

	hash, err := s.auth.HashPassword(req.Password)
	if err != nil {
		httputil.WriteError(w, http.StatusInternalServerError, "INTERNAL", "failed to hash password")
		return
	}

	user := &models.User{
		Email:        req.Email,
		DisplayName:  req.DisplayName,
		PasswordHash: hash,
	}
	if err := s.users.Create(user); err != nil {
		if err == repository.ErrEmailTaken {
			httputil.WriteError(w, http.StatusConflict, "EMAIL_TAKEN", "an account with this email already exists")
			return
		}
		s.log.WithError(err).Error("user create failed")
		httputil.WriteError(w, http.StatusInternalServerError, "INTERNAL", "failed to create account")
		return
	}

	token, err := s.auth.GenerateToken(user.ID)
	if err != nil {
		httputil.WriteError(w, http.StatusInternalServerError, "INTERNAL", "failed to generate token")
		return
	}

	user.PasswordHash = ""
	httputil.WriteJSON(w, http.StatusCreated, loginResponse{Token: token, User: user})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httputil.ReadJSON(r, &req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		return
	}

	user, err := s.users.GetByEmail(auth.NormalizeEmail(req.Email))
	if err != nil {
		httputil.WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "invalid credentials")
		return
	}
	if err := s.auth.VerifyPassword(user.PasswordHash, req.Password); err != nil {
		httputil.WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "invalid credentials")
		return
	}

	token, err := s.auth.GenerateToken(user.ID)
	if err != nil {
		httputil.WriteError(w, http.StatusInternalServerError, "INTERNAL", "failed to generate token")
		return
	}

	user.PasswordHash = ""
	httputil.WriteJSON(w, http.StatusOK, loginResponse{Token: token, User: user})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	user, err := s.users.GetByID(userID)
	if err != nil {
		httputil.WriteError(w, http.StatusNotFound, "NOT_FOUND", "user not found")
		return
	}
	user.PasswordHash = ""
	httputil.WriteJSON(w, http.StatusOK, user)
}
