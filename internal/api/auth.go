package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"pushauth/internal/auth"
	"pushauth/internal/constants"
)

// AuthService is the part of auth.Service the handlers drive.
type AuthService interface {
	Register(ctx context.Context, in auth.RegisterInput) (*auth.Session, error)
	Login(ctx context.Context, in auth.LoginInput) (*auth.Session, error)
	Logout(ctx context.Context, caller auth.Identity, in auth.LogoutInput) error
}

type AuthHandler struct {
	service AuthService
}

func NewAuthHandler(service AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

// POST /auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req auth.RegisterInput
	if err := decodeBody(r.Body, &req); err != nil {
		writeMessage(w, http.StatusUnprocessableEntity, constants.MsgInvalidPayload)
		return
	}

	session, err := h.service.Register(r.Context(), req)
	if err != nil {
		var vErr *auth.ValidationError
		switch {
		case errors.As(err, &vErr):
			writeMessage(w, http.StatusUnprocessableEntity, vErr.Message)
		case errors.Is(err, auth.ErrDeviceTokenSave):
			writeMessage(w, http.StatusUnprocessableEntity, constants.MsgSomethingWentWrong)
		default:
			slog.Error("error registering user", "error", err)
			writeMessage(w, http.StatusInternalServerError, constants.MsgSomethingWentWrong)
		}
		return
	}

	writeJSON(w, http.StatusOK, RegisterResponse{
		Message: constants.MsgRegistered,
		Token:   session.Token,
		User:    session.User,
	})
}

// POST /auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req auth.LoginInput
	if err := decodeBody(r.Body, &req); err != nil {
		writeStatus(w, http.StatusUnprocessableEntity, false, constants.MsgInvalidPayload)
		return
	}

	session, err := h.service.Login(r.Context(), req)
	if err != nil {
		var vErr *auth.ValidationError
		switch {
		case errors.As(err, &vErr):
			writeStatus(w, http.StatusUnprocessableEntity, false, vErr.Message)
		case errors.Is(err, auth.ErrCredentialsMismatch):
			writeStatus(w, http.StatusUnprocessableEntity, false, constants.MsgCredentialsMismatch)
		case errors.Is(err, auth.ErrAccountBlocked):
			writeStatus(w, http.StatusUnprocessableEntity, false, constants.MsgAccountBlocked)
		case errors.Is(err, auth.ErrPasswordMismatch):
			forbidden(w, constants.MsgPasswordMismatch)
		case errors.Is(err, auth.ErrDeviceTokenSave):
			slog.Error("error saving device token on login", "error", err)
			writeStatus(w, http.StatusInternalServerError, false, constants.MsgDeviceTokenNotSaved)
		default:
			slog.Error("error logging in", "error", err)
			internalError(w)
		}
		return
	}

	writeJSON(w, http.StatusOK, LoginResponse{
		Success: true,
		Message: constants.MsgLoggedIn,
		Token:   session.Token,
		Data:    session.User,
	})
}

// POST /auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		unauthorized(w, constants.MsgTokenMissing)
		return
	}

	var req auth.LogoutInput
	if err := decodeBody(r.Body, &req); err != nil {
		writeStatus(w, http.StatusUnprocessableEntity, false, constants.MsgInvalidPayload)
		return
	}

	err := h.service.Logout(r.Context(), caller, req)
	if err != nil {
		var vErr *auth.ValidationError
		switch {
		case errors.As(err, &vErr):
			// Rule failures on logout are reported with 200.
			writeStatus(w, http.StatusOK, false, vErr.Message)
		case errors.Is(err, auth.ErrUnauthenticated):
			unauthorized(w, constants.MsgTokenMissing)
		default:
			slog.Error("error logging out", "error", err, "user_id", caller.UserID)
			internalError(w)
		}
		return
	}

	writeStatus(w, http.StatusOK, true, constants.MsgLoggedOut)
}
