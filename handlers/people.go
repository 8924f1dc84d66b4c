// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strings"

	"github.com/danielhkuo/chit-pick/codec"
	"github.com/danielhkuo/chit-pick/ledger"
	"github.com/danielhkuo/chit-pick/middleware"
	"github.com/danielhkuo/chit-pick/models"
	"github.com/danielhkuo/chit-pick/roster"
)

type PeopleHandler struct {
	roster *roster.Store
	ledger *ledger.Store
	codec  *codec.Codec
}

func NewPeopleHandler(db *sql.DB, c *codec.Codec) *PeopleHandler {
	return &PeopleHandler{
		roster: roster.New(db),
		ledger: ledger.New(db, c),
		codec:  c,
	}
}

// List handles GET /people
func (h *PeopleHandler) List(w http.ResponseWriter, r *http.Request) {
	people, err := h.roster.List(r.Context())
	if err != nil {
		slog.Error("failed to list people", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if people == nil {
		people = []string{}
	}

	middleware.JSONResponse(w, http.StatusOK, models.PeopleResponse{People: people})
}

// Add handles POST /people - batch insert of staged names
func (h *PeopleHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req models.AddPeopleRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	// Validate and trim every name before touching storage
	names := make([]string, 0, len(req.Names))
	for _, name := range req.Names {
		trimmed := strings.TrimSpace(name)
		if trimmed == "" {
			middleware.ErrorResponse(w, http.StatusBadRequest, "names must not be blank")
			return
		}
		names = append(names, trimmed)
	}
	if len(names) == 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "names cannot be empty")
		return
	}

	if err := h.roster.AddBatch(r.Context(), names); err != nil {
		slog.Error("failed to add people", "error", err, "count", len(names))
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to add people")
		return
	}

	slog.Info("people added", "count", len(names))

	middleware.JSONResponse(w, http.StatusCreated, models.AddPeopleResponse{Added: len(names)})
}

// Remove handles DELETE /people/{name}
// Removes every roster row with the name plus any assignment where
// the person appears as giver or receiver.
func (h *PeopleHandler) Remove(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.PathValue("name"))
	if name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name is required")
		return
	}

	removed, err := h.roster.RemoveByName(r.Context(), name)
	if err != nil {
		slog.Error("failed to remove person", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to remove person")
		return
	}

	token := h.codec.LookupToken(name)
	removedAssignments, err := h.ledger.RemoveByParticipant(r.Context(), token, token)
	if err != nil {
		slog.Error("failed to remove assignments for person", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to remove assignments")
		return
	}

	slog.Info("person removed", "removed_people", removed, "removed_assignments", removedAssignments)

	middleware.JSONResponse(w, http.StatusOK, models.RemovePersonResponse{
		RemovedPeople:      removed,
		RemovedAssignments: removedAssignments,
	})
}

// RemoveAll handles DELETE /people - deletes every person and every
// assignment. Confirmation UX is the caller's concern.
func (h *PeopleHandler) RemoveAll(w http.ResponseWriter, r *http.Request) {
	if err := h.roster.DeleteAll(r.Context()); err != nil {
		slog.Error("failed to delete all people", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete people")
		return
	}

	deleted, err := h.ledger.ClearAll(r.Context())
	if err != nil {
		slog.Error("failed to clear assignments", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to clear assignments")
		return
	}

	slog.Info("all people deleted", "cleared_assignments", deleted)

	middleware.JSONResponse(w, http.StatusOK, models.ResetResponse{Deleted: deleted})
}
