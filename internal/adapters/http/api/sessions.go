package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/okian/lobby/internal/adapters/http/validation"
	"github.com/okian/lobby/internal/domain/icons"
	"github.com/okian/lobby/internal/domain/model"
	"github.com/okian/lobby/internal/domain/roster"
	"github.com/okian/lobby/internal/domain/types"
)

// SessionDependencies defines the lobby operations behind the session routes.
type SessionDependencies interface {
	NewSession(ctx context.Context) (*model.Session, error)
	Session(ctx context.Context, id string) (*model.Session, error)
	Select(ctx context.Context, id string, key roster.SlotKey, champion string) (*model.Session, error)
	Predict(ctx context.Context, id string) (*model.Session, error)
	Reset(ctx context.Context, id string) (*model.Session, error)
}

// SessionsHandler handles session requests.
type SessionsHandler struct {
	deps     SessionDependencies
	resolver *icons.Resolver
}

// NewSessionsHandler creates a new sessions handler.
func NewSessionsHandler(deps SessionDependencies, resolver *icons.Resolver) *SessionsHandler {
	if resolver == nil {
		resolver = icons.NewResolver(nil)
	}
	return &SessionsHandler{deps: deps, resolver: resolver}
}

const maxBodyBytes = 1 << 16

// selectRequest is the body of PUT /api/sessions/{id}/slots/{slot}. Slot is
// taken from the path.
type selectRequest struct {
	Slot     string `json:"-" validate:"required,slotkey"`
	Champion string `json:"champion" validate:"required,max=64"`
}

// HandleCreate handles POST /api/sessions requests.
func (h *SessionsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	const op = "api.create_session"
	sess, err := h.deps.NewSession(r.Context())
	if err != nil {
		h.fail(w, op, err)
		return
	}
	w.Header().Set("Location", "/api/sessions/"+sess.ID)
	writeJSON(w, http.StatusCreated, types.NewSessionState(sess, h.resolver))
}

// HandleGet handles GET /api/sessions/{id} requests.
func (h *SessionsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_session"
	sess, err := h.deps.Session(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, types.NewSessionState(sess, h.resolver))
}

// HandleSelect handles PUT /api/sessions/{id}/slots/{slot} requests.
func (h *SessionsHandler) HandleSelect(w http.ResponseWriter, r *http.Request) {
	const op = "api.select_champion"
	var req selectRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	req.Slot = chi.URLParam(r, "slot")
	if err := validation.Get().Struct(req); err != nil {
		if _, ok := validation.FormatError(err)["slot"]; ok && req.Slot != "" {
			writeError(w, http.StatusNotFound, "not_found", WrapKind(op, ErrNotFound, roster.ErrUnknownSlot))
			return
		}
		writeJSON(w, http.StatusBadRequest, errorResponse{Code: "bad_request", Message: validation.Message(err)})
		return
	}

	sess, err := h.deps.Select(r.Context(), chi.URLParam(r, "id"), roster.SlotKey(req.Slot), req.Champion)
	if err != nil {
		h.fail(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, types.NewSessionState(sess, h.resolver))
}

// HandlePredict handles POST /api/sessions/{id}/prediction requests.
func (h *SessionsHandler) HandlePredict(w http.ResponseWriter, r *http.Request) {
	const op = "api.predict"
	sess, err := h.deps.Predict(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, types.NewSessionState(sess, h.resolver))
}

// HandleReset handles POST /api/sessions/{id}/reset requests.
func (h *SessionsHandler) HandleReset(w http.ResponseWriter, r *http.Request) {
	const op = "api.reset_session"
	sess, err := h.deps.Reset(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, types.NewSessionState(sess, h.resolver))
}

func (h *SessionsHandler) fail(w http.ResponseWriter, op string, err error) {
	status, code := statusOf(err)
	writeError(w, status, code, &Error{Op: op, Kind: kindOf(status), Err: err})
}
