// Package handler contains the HTTP-facing layer: it parses requests,
// invokes services, and maps outcomes to status codes and JSON envelopes.
// Handlers hold no state across requests — each route is an independent
// transaction against the store.
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/asif/userstore/internal/apperror"
	"github.com/asif/userstore/internal/service"
)

// UserHandler exposes the user resource routes.
type UserHandler struct {
	users  *service.UserService
	logger *slog.Logger
}

// NewUserHandler creates a UserHandler.
func NewUserHandler(users *service.UserService, logger *slog.Logger) *UserHandler {
	return &UserHandler{users: users, logger: logger}
}

// registerRequest is the body of POST /register and PUT /users/{id}.
// All three fields are required in both cases; partial updates are not
// supported.
type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// loginRequest is the body of POST /login.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleList returns every user.
//
// HTTP: GET /users
//
// An empty store is reported as 404 with a message — "no records" and
// "absent resource" are deliberately conflated here, preserving the
// observed behavior of the list route.
func (h *UserHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	if len(users) == 0 {
		writeJSON(w, http.StatusNotFound, envelope{"msg": "no users found"})
		return
	}

	writeJSON(w, http.StatusOK, envelope{
		"total_user": len(users),
		"allUsers":   users,
	})
}

// HandleGetByID returns a single user.
//
// HTTP: GET /users/{id}
func (h *UserHandler) HandleGetByID(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, envelope{"user": user})
}

// HandleRegister creates a new account.
//
// HTTP: POST /register
// BODY: {"username": ..., "email": ..., "password": ...}
func (h *UserHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid register JSON", slog.String("error", err.Error()))
		writeError(w, apperror.ValidationFailed("body", "invalid JSON body"))
		return
	}

	user, err := h.users.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, envelope{"newUser": user})
}

// HandleLogin checks credentials and returns the account on success.
//
// HTTP: POST /login
// BODY: {"email": ..., "password": ...}
//
// No token is issued — the route only reports whether the credentials
// resolve to an account.
func (h *UserHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid login JSON", slog.String("error", err.Error()))
		writeError(w, apperror.ValidationFailed("body", "invalid JSON body"))
		return
	}

	user, err := h.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, envelope{"user": user})
}

// HandleUpdate replaces all mutable fields of an existing user.
//
// HTTP: PUT /users/{id}
// BODY: {"username": ..., "email": ..., "password": ...}
//
// Responds 201 with the updated record, mirroring the create route.
func (h *UserHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid update JSON", slog.String("error", err.Error()))
		writeError(w, apperror.Unauthorized("invalid JSON body"))
		return
	}

	user, err := h.users.Update(r.Context(), r.PathValue("id"), req.Username, req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, envelope{"updateUser": user})
}

// HandleDelete removes a user.
//
// HTTP: DELETE /users/{id}
func (h *UserHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.users.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, envelope{"msg": "user deleted successfully"})
}
