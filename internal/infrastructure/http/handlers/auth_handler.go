package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/KothuriSowmya/blood-donation-backend/internal/application/auth"
	"github.com/KothuriSowmya/blood-donation-backend/internal/application/ports"
	"github.com/KothuriSowmya/blood-donation-backend/internal/domain"
	domerrors "github.com/KothuriSowmya/blood-donation-backend/internal/domain/errors"
	"github.com/KothuriSowmya/blood-donation-backend/internal/infrastructure/http/middleware"
)

// AuthHandler serves /api/auth/*: registration, login, and the authenticated
// profile endpoints.
type AuthHandler struct {
	register      *auth.Register
	login         *auth.Login
	updateProfile *auth.UpdateProfile
	userRepo      ports.UserRepository
	validate      *validator.Validate
	log           zerolog.Logger
}

func NewAuthHandler(register *auth.Register, login *auth.Login, updateProfile *auth.UpdateProfile, userRepo ports.UserRepository, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		register:      register,
		login:         login,
		updateProfile: updateProfile,
		userRepo:      userRepo,
		validate:      validator.New(),
		log:           log,
	}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Username string `json:"username" validate:"required,max=64"`
		Email    string `json:"email" validate:"required,email,max=254"`
		Password string `json:"password" validate:"required,max=128"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", domerrors.ErrMissingField.Error())
		return
	}
	username := SanitizeUsername(body.Username)
	email := SanitizeEmail(body.Email)
	password := SanitizePassword(body.Password)
	if username == "" || email == "" || password == "" {
		writeErr(w, http.StatusBadRequest, "", domerrors.ErrMissingField.Error())
		return
	}
	result, err := h.register.Execute(r.Context(), auth.RegisterInput{
		Username: username,
		Email:    email,
		Password: password,
	})
	if err != nil {
		AuditLog(h.log, r, "user.register", "", false, err.Error())
		middleware.RecordAuthAttempt("register", false)
		switch {
		case errors.Is(err, domerrors.ErrMissingField):
			writeErr(w, http.StatusBadRequest, "", err.Error())
		case errors.Is(err, domerrors.ErrUserExists):
			writeErr(w, http.StatusConflict, "", err.Error())
		default:
			h.log.Error().Err(err).Msg("register failed")
			writeErr(w, http.StatusInternalServerError, "", "internal error")
		}
		return
	}
	AuditLog(h.log, r, "user.register", result.User.ID.String(), true, "")
	middleware.RecordAuthAttempt("register", true)
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"id":         result.User.ID.String(),
		"username":   result.User.Username,
		"email":      result.User.Email,
		"created_at": result.User.CreatedAt,
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email" validate:"required,email,max=254"`
		Password string `json:"password" validate:"required,max=128"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", domerrors.ErrMissingField.Error())
		return
	}
	email := SanitizeEmail(body.Email)
	password := SanitizePassword(body.Password)
	if email == "" || password == "" {
		writeErr(w, http.StatusBadRequest, "", domerrors.ErrMissingField.Error())
		return
	}
	result, err := h.login.Execute(r.Context(), auth.LoginInput{
		Email:    email,
		Password: password,
	})
	if err != nil {
		AuditLog(h.log, r, "user.login", "", false, err.Error())
		middleware.RecordAuthAttempt("login", false)
		switch {
		case errors.Is(err, domerrors.ErrMissingField):
			writeErr(w, http.StatusBadRequest, "", err.Error())
		case errors.Is(err, domerrors.ErrInvalidCredentials):
			writeErr(w, http.StatusUnauthorized, ErrCodeInvalidCredentials, err.Error())
		case errors.Is(err, domerrors.ErrAccountLocked):
			writeErr(w, http.StatusTooManyRequests, ErrCodeAccountLocked, err.Error())
		default:
			h.log.Error().Err(err).Msg("login failed")
			writeErr(w, http.StatusInternalServerError, "", "internal error")
		}
		return
	}
	AuditLog(h.log, r, "user.login", result.User.ID.String(), true, "")
	middleware.RecordAuthAttempt("login", true)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"token": result.Token,
		"user": map[string]interface{}{
			"id":       result.User.ID.String(),
			"username": result.User.Username,
			"email":    result.User.Email,
		},
	})
}

// Update applies a partial profile update for the authenticated user.
// Requires AuthValidator middleware.
func (h *AuthHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := authedUserID(w, r)
	if !ok {
		return
	}
	var body struct {
		Phone    string `json:"phone" validate:"max=32"`
		Location string `json:"location" validate:"max=128"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid profile fields")
		return
	}
	result, err := h.updateProfile.Execute(r.Context(), auth.UpdateProfileInput{
		UserID:   userID,
		Phone:    body.Phone,
		Location: body.Location,
	})
	if err != nil {
		AuditLog(h.log, r, "user.update_profile", userID.String(), false, err.Error())
		if errors.Is(err, domerrors.ErrUserNotFound) {
			writeErr(w, http.StatusNotFound, "", err.Error())
			return
		}
		h.log.Error().Err(err).Msg("profile update failed")
		writeErr(w, http.StatusInternalServerError, "", "internal error")
		return
	}
	AuditLog(h.log, r, "user.update_profile", userID.String(), true, "")
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"msg":  "profile updated successfully",
		"user": result.User.Public(),
	})
}

// Me returns the authenticated user's public profile. Requires AuthValidator
// middleware.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := authedUserID(w, r)
	if !ok {
		return
	}
	user, err := h.userRepo.GetByID(r.Context(), userID)
	if err != nil {
		h.log.Error().Err(err).Msg("load profile failed")
		writeErr(w, http.StatusInternalServerError, "", "internal error")
		return
	}
	if user == nil {
		writeErr(w, http.StatusNotFound, "", domerrors.ErrUserNotFound.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"user": user.Public()})
}

func authedUserID(w http.ResponseWriter, r *http.Request) (domain.UserID, bool) {
	idStr := middleware.UserIDFromContext(r.Context())
	if idStr == "" {
		writeErr(w, http.StatusUnauthorized, "", "unauthorized")
		return domain.UserID{}, false
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		writeErr(w, http.StatusUnauthorized, ErrCodeInvalidToken, "invalid or expired token")
		return domain.UserID{}, false
	}
	return domain.NewUserID(id), true
}
