package auth

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/guideshare/guideshare/pkg/session"
)

// Handler exposes the unauthenticated auth endpoints: login, register
// and logout. Mounted under /api/auth, the one API prefix the admin
// gate leaves open.
type Handler struct {
	service  *Service
	sessions *session.Store
	log      *slog.Logger
}

// NewHandler creates the auth HTTP handler.
func NewHandler(service *Service, sessions *session.Store, log *slog.Logger) *Handler {
	if log == nil {
		log = slog.Default()
	}
	return &Handler{service: service, sessions: sessions, log: log}
}

// Router returns the chi router for the auth endpoints.
func (h *Handler) Router() chi.Router {
	r := chi.NewRouter()
	r.Post("/login", h.login)
	r.Post("/register", h.register)
	r.Post("/logout", h.logout)
	return r
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if !h.decode(w, r, &req) {
		return
	}

	signed, err := h.service.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		h.writeError(w, http.StatusUnauthorized, "invalid username or password")
		return
	}

	h.sessions.Create(w, signed)
	h.writeJSON(w, http.StatusOK, tokenResponse{Token: signed})
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if !h.decode(w, r, &req) {
		return
	}
	if req.Username == "" || req.Password == "" {
		h.writeError(w, http.StatusBadRequest, "username and password are required")
		return
	}

	signed, err := h.service.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, ErrUsernameTaken) {
			h.writeError(w, http.StatusConflict, "username already taken")
			return
		}
		h.log.Error("registration failed", "error", err)
		h.writeError(w, http.StatusInternalServerError, "registration failed")
		return
	}

	h.sessions.Create(w, signed)
	h.writeJSON(w, http.StatusCreated, tokenResponse{Token: signed})
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	h.sessions.Destroy(w)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dest any) bool {
	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.log.Error("failed to write response", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
