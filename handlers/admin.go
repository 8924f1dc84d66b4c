// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/chit-pick/codec"
	"github.com/danielhkuo/chit-pick/ledger"
	"github.com/danielhkuo/chit-pick/middleware"
	"github.com/danielhkuo/chit-pick/models"
)

type AdminHandler struct {
	ledger *ledger.Store
}

func NewAdminHandler(db *sql.DB, c *codec.Codec) *AdminHandler {
	return &AdminHandler{ledger: ledger.New(db, c)}
}

// AssignmentCount handles GET /assignments/count
// Lets an admin see how much a reset would destroy before confirming.
func (h *AdminHandler) AssignmentCount(w http.ResponseWriter, r *http.Request) {
	n, err := h.ledger.Count(r.Context())
	if err != nil {
		slog.Error("failed to count assignments", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.AssignmentCountResponse{Count: n})
}

// ResetAssignments handles DELETE /assignments
// Clears the ledger so everyone can pick again in a new cycle. The
// roster is untouched. Confirmation policy belongs to the caller.
func (h *AdminHandler) ResetAssignments(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.ledger.ClearAll(r.Context())
	if err != nil {
		slog.Error("failed to reset assignments", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to reset assignments")
		return
	}

	slog.Info("assignments reset", "deleted", deleted)

	middleware.JSONResponse(w, http.StatusOK, models.ResetResponse{Deleted: deleted})
}
