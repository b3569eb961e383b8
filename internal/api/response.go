package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"pushauth/internal/constants"
	"pushauth/internal/models"
)

// MessageResponse is the register error body.
type MessageResponse struct {
	Message string `json:"message"`
}

// StatusResponse is the login/logout error body and the logout success body.
type StatusResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type RegisterResponse struct {
	Message string       `json:"message"`
	Token   string       `json:"token"`
	User    *models.User `json:"user"`
}

type LoginResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Token   string       `json:"token"`
	Data    *models.User `json:"data"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("error encoding response", "error", err)
	}
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, MessageResponse{Message: message})
}

func writeStatus(w http.ResponseWriter, status int, success bool, message string) {
	writeJSON(w, status, StatusResponse{Success: success, Message: message})
}

func unauthorized(w http.ResponseWriter, message string) {
	writeStatus(w, http.StatusUnauthorized, false, message)
}

func forbidden(w http.ResponseWriter, message string) {
	writeStatus(w, http.StatusForbidden, false, message)
}

func internalError(w http.ResponseWriter) {
	writeStatus(w, http.StatusInternalServerError, false, constants.MsgSomethingWentWrong)
}
