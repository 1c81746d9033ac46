package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

// NewRouter creates the HTTP router with all endpoints
func NewRouter(h *Handler) http.Handler {
	r := mux.NewRouter()

	api := r.PathPrefix("/api/v1").Subrouter()

	// System
	api.HandleFunc("/health", h.HealthCheck).Methods("GET")

	// Questions
	api.HandleFunc("/questions", h.GetQuestions).Methods("GET")
	api.HandleFunc("/questions", h.CreateQuestion).Methods("POST")
	api.HandleFunc("/questions/{id}", h.GetQuestion).Methods("GET")
	api.HandleFunc("/questions/{id}", h.UpdateQuestion).Methods("PUT")
	api.HandleFunc("/questions/{id}", h.DeleteQuestion).Methods("DELETE")
	api.HandleFunc("/questions/{id}/master", h.MasterQuestion).Methods("POST")

	// Dashboard
	api.HandleFunc("/stats", h.GetStats).Methods("GET")
	api.HandleFunc("/logs", h.GetLogs).Methods("GET")

	// Reflections
	api.HandleFunc("/reflections", h.GetReflections).Methods("GET")
	api.HandleFunc("/reflections/{date}", h.UpsertReflection).Methods("PUT")

	// Review sessions
	api.HandleFunc("/sessions", h.StartSession).Methods("POST")
	api.HandleFunc("/sessions/{id}/reveal", h.RevealQuestion).Methods("POST")
	api.HandleFunc("/sessions/{id}/rate", h.RateQuestion).Methods("POST")
	api.HandleFunc("/sessions/{id}", h.AbandonSession).Methods("DELETE")

	// CORS for the web frontend
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	})

	return c.Handler(r)
}
