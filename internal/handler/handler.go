package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/finlytic/ccfm-service/internal/ccfm"
	"github.com/finlytic/ccfm-service/internal/models"
	"github.com/finlytic/ccfm-service/internal/service"
	"github.com/sirupsen/logrus"
)

// AnalysisService is the business surface the handlers call into
type AnalysisService interface {
	Register(name, username, email, password, branch string) (*models.User, error)
	Login(username, password string) (string, *models.User, error)
	Analyze(ctx context.Context, raw map[string]any) (*service.AnalysisResult, []ccfm.FieldError, error)
	History(ctx context.Context) ([]models.TrendPoint, error)
}

type Handler struct {
	svc AnalysisService
	log *logrus.Logger
}

func NewHandler(svc AnalysisService, log *logrus.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

type registerRequest struct {
	Name     string `json:"name"`
	Username string `json:"userID"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Branch   string `json:"branch"`
}

type loginRequest struct {
	Username string `json:"userID"`
	Password string `json:"password"`
}

// Register handles user registration
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if _, err := h.svc.Register(req.Name, req.Username, req.Email, req.Password, req.Branch); err != nil {
		if errors.Is(err, service.ErrPersistence) {
			h.log.Errorf("Registration failed: %v", err)
			writeError(w, http.StatusInternalServerError, "Registration failed")
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"message": "User registered successfully"})
}

// Login handles user authentication
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	token, user, err := h.svc.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			writeError(w, http.StatusBadRequest, "Invalid credentials")
			return
		}
		h.log.Errorf("Login failed: %v", err)
		writeError(w, http.StatusInternalServerError, "Login failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Login successful",
		"token":   token,
		"user":    user,
	})
}

// Analyze runs one analysis for the authenticated user
func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	var raw map[string]any
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, fieldErrs, err := h.svc.Analyze(r.Context(), raw)
	if err != nil {
		h.writeServiceError(w, err, "Failed to save metrics")
		return
	}
	if len(fieldErrs) > 0 {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":   "Validation failed",
			"details": fieldErrs,
		})
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// History returns the authenticated user's recent trend points
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	points, err := h.svc.History(r.Context())
	if err != nil {
		h.writeServiceError(w, err, "Failed to fetch history")
		return
	}
	writeJSON(w, http.StatusOK, points)
}

// Health is a liveness probe
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// writeServiceError maps service sentinels onto HTTP statuses. Persistence
// detail stays in the log; the client only sees the generic message.
func (h *Handler) writeServiceError(w http.ResponseWriter, err error, persistenceMessage string) {
	switch {
	case errors.Is(err, service.ErrUnauthenticated):
		writeError(w, http.StatusUnauthorized, "User not authenticated")
	case errors.Is(err, service.ErrUserNotFound):
		writeError(w, http.StatusNotFound, "User not found")
	default:
		h.log.Errorf("Request failed: %v", err)
		writeError(w, http.StatusInternalServerError, persistenceMessage)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
