// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/danielhkuo/chit-pick/codec"
	"github.com/danielhkuo/chit-pick/handlers"
	"github.com/danielhkuo/chit-pick/middleware"
)

func NewRouter(db *sql.DB, c *codec.Codec) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	peopleHandler := handlers.NewPeopleHandler(db, c)
	pickHandler := handlers.NewPickHandler(db, c)
	adminHandler := handlers.NewAdminHandler(db, c)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Roster management
	mux.HandleFunc("GET /people", middleware.WithLogging(peopleHandler.List))
	mux.HandleFunc("POST /people", middleware.WithLogging(peopleHandler.Add))
	mux.HandleFunc("DELETE /people/{name}", middleware.WithLogging(peopleHandler.Remove))
	mux.HandleFunc("DELETE /people", middleware.WithLogging(peopleHandler.RemoveAll))

	// Picker flow
	mux.HandleFunc("POST /pick/check", middleware.WithLogging(pickHandler.Check))
	mux.HandleFunc("POST /pick/reveal", middleware.WithLogging(pickHandler.Reveal))

	// Administration
	mux.HandleFunc("GET /assignments/count", middleware.WithLogging(adminHandler.AssignmentCount))
	mux.HandleFunc("DELETE /assignments", middleware.WithLogging(adminHandler.ResetAssignments))

	// Root endpoint ({$} keeps unknown paths 404ing)
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("chit-pick API v1"))
	})

	return mux
}
