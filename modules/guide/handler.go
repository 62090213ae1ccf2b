package guide

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/guideshare/guideshare/pkg/authz"
	"github.com/guideshare/guideshare/pkg/session"
)

// Handler serves the guide authorization surface: whether the caller
// may see a guide, and whether they may edit it. The full guide page
// rendering lives elsewhere; this is the decision layer it builds on.
type Handler struct {
	store *Store
	authz *authz.Service
	log   *slog.Logger
}

// NewHandler creates the guide HTTP handler.
func NewHandler(store *Store, authzSvc *authz.Service, log *slog.Logger) *Handler {
	if log == nil {
		log = slog.Default()
	}
	return &Handler{store: store, authz: authzSvc, log: log}
}

// Router returns the chi router for guide routes.
func (h *Handler) Router() chi.Router {
	r := chi.NewRouter()
	r.Get("/{id}", h.show)
	return r
}

type guideResponse struct {
	ID        int64 `json:"id"`
	AuthorID  int64 `json:"authorId"`
	IsPrivate bool  `json:"isPrivate"`
	CanEdit   bool  `json:"canEdit"`
}

// show returns the guide's authorization view for callers allowed to
// see it. Hidden guides are reported as not found so their existence
// does not leak.
func (h *Handler) show(w http.ResponseWriter, r *http.Request) {
	idParam := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idParam, 10, 64)
	if err != nil {
		h.notFound(w)
		return
	}

	user, _ := session.IdentityFromContext(r.Context())
	if !h.authz.PublicOrSharedWith(r.Context(), user, id) {
		h.notFound(w)
		return
	}

	view, err := h.store.GuideView(r.Context(), id)
	if err != nil {
		h.notFound(w)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if err := json.NewEncoder(w).Encode(guideResponse{
		ID:        view.ID,
		AuthorID:  view.AuthorID,
		IsPrivate: view.IsPrivate,
		CanEdit:   h.authz.OwnerOrAdmin(r.Context(), user, idParam, authz.ItemGuide),
	}); err != nil {
		h.log.Error("failed to write guide response", "error", err)
	}
}

func (h *Handler) notFound(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": "not found"})
}
