// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/chit-pick/chits"
	"github.com/danielhkuo/chit-pick/codec"
	"github.com/danielhkuo/chit-pick/engine"
	"github.com/danielhkuo/chit-pick/ledger"
	"github.com/danielhkuo/chit-pick/middleware"
	"github.com/danielhkuo/chit-pick/models"
	"github.com/danielhkuo/chit-pick/roster"
)

type PickHandler struct {
	engine *engine.Engine
	codec  *codec.Codec
}

func NewPickHandler(db *sql.DB, c *codec.Codec) *PickHandler {
	return &PickHandler{
		engine: engine.New(roster.New(db), ledger.New(db, c), c),
		codec:  c,
	}
}

// Check handles POST /pick/check
// Returns the stored assignment if the giver already picked, otherwise
// the eligible pool laid out as chits.
func (h *PickHandler) Check(w http.ResponseWriter, r *http.Request) {
	var req models.CheckRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	res, err := h.engine.CheckExisting(r.Context(), req.Name)
	if err != nil {
		writeEngineError(w, err, "check failed")
		return
	}

	if res.Assigned {
		middleware.JSONResponse(w, http.StatusOK, models.CheckResponse{
			Assigned: true,
			Receiver: res.Receiver,
		})
		return
	}

	placed := chits.Layout(res.Pool, nil)
	out := make([]models.Chit, len(placed))
	for i, c := range placed {
		out[i] = models.Chit{Name: c.Name, Left: c.Left, Top: c.Top, Rot: c.Rot}
	}

	middleware.JSONResponse(w, http.StatusOK, models.CheckResponse{Chits: out})
}

// Reveal handles POST /pick/reveal
// Commits the picked chit. The engine re-validates everything; a lost
// race comes back as 409 with a reason the UI can act on.
func (h *PickHandler) Reveal(w http.ResponseWriter, r *http.Request) {
	var req models.RevealRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	meta := engine.Meta{
		IPHash:    h.codec.HashIP(middleware.GetClientIP(r)),
		UserAgent: r.UserAgent(),
	}

	a, err := h.engine.Commit(r.Context(), req.Name, req.Receiver, meta)
	if err != nil {
		writeEngineError(w, err, "reveal failed")
		return
	}

	slog.Info("chit revealed", "ip_hash", meta.IPHash)

	middleware.JSONResponse(w, http.StatusCreated, models.RevealResponse{
		Receiver:   a.Receiver,
		RevealedAt: a.CreatedAt,
	})
}

// writeEngineError maps the engine's error taxonomy onto HTTP status
// codes
func writeEngineError(w http.ResponseWriter, err error, logMsg string) {
	var conflict *engine.ConflictError
	switch {
	case errors.Is(err, engine.ErrValidation):
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())

	case errors.As(err, &conflict):
		if conflict.Reason == engine.AlreadyAssigned {
			middleware.ConflictResponse(w, "You already have an assignment", models.ReasonAlreadyAssigned)
		} else {
			middleware.ConflictResponse(w, "That chit was just taken - pick another", models.ReasonReceiverTaken)
		}

	case errors.Is(err, codec.ErrDecode):
		// Key mismatch or corrupt record: surface loudly, never as
		// "no assignment"
		slog.Error(logMsg, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Stored assignment cannot be decoded")

	default:
		slog.Error(logMsg, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
	}
}
