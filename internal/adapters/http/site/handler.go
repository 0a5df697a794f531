package site

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"time"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"

	"github.com/okian/lobby/internal/adapters/http/middleware"
	"github.com/okian/lobby/internal/adapters/http/validation"
	"github.com/okian/lobby/internal/domain/catalog"
	"github.com/okian/lobby/internal/domain/icons"
	"github.com/okian/lobby/internal/domain/model"
	"github.com/okian/lobby/internal/domain/roster"
	"github.com/okian/lobby/pkg/logger"
)

// DefaultCookieName holds the session id of a browser.
const DefaultCookieName = "lobby_session"

// Dependencies are the lobby operations the page drives.
type Dependencies interface {
	Catalog() catalog.Catalog
	SessionOrNew(ctx context.Context, id string) (*model.Session, bool, error)
	Select(ctx context.Context, id string, key roster.SlotKey, champion string) (*model.Session, error)
	Predict(ctx context.Context, id string) (*model.Session, error)
	Reset(ctx context.Context, id string) (*model.Session, error)
}

// Handler serves the lobby page.
type Handler struct {
	deps         Dependencies
	resolver     *icons.Resolver
	iconFS       fs.FS
	cookieName   string
	cookieMaxAge time.Duration
	secure       bool
	logger       logger.Logger
}

// Option configures a Handler.
type Option func(*Handler)

// WithIconFS serves champion icons from files under /icons/.
func WithIconFS(files fs.FS) Option {
	return func(h *Handler) { h.iconFS = files }
}

// WithCookieName overrides DefaultCookieName.
func WithCookieName(name string) Option {
	return func(h *Handler) {
		if name != "" {
			h.cookieName = name
		}
	}
}

// WithCookieMaxAge sets how long browsers keep the session cookie.
func WithCookieMaxAge(d time.Duration) Option {
	return func(h *Handler) { h.cookieMaxAge = d }
}

// WithSecureCookie marks the session cookie Secure.
func WithSecureCookie(secure bool) Option {
	return func(h *Handler) { h.secure = secure }
}

// WithLogger sets the handler logger.
func WithLogger(l logger.Logger) Option {
	return func(h *Handler) {
		if l != nil {
			h.logger = l
		}
	}
}

// NewHandler creates the page handler.
func NewHandler(deps Dependencies, resolver *icons.Resolver, opts ...Option) *Handler {
	if resolver == nil {
		resolver = icons.NewResolver(nil)
	}
	h := &Handler{
		deps:       deps,
		resolver:   resolver,
		cookieName: DefaultCookieName,
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.logger == nil {
		h.logger = logger.Named("site")
	}
	return h
}

// Register attaches the page, its form posts and its assets to r.
func (h *Handler) Register(_ context.Context, r chi.Router) {
	if r == nil {
		panic("router is nil")
	}

	r.Get("/", middleware.Metrics(h.HandleIndex, "page"))
	r.Post("/select", middleware.Metrics(h.HandleSelect, "select"))
	r.Post("/predict", middleware.Metrics(h.HandlePredict, "predict"))
	r.Post("/reset", middleware.Metrics(h.HandleReset, "page_reset"))

	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(FS())))
	if h.iconFS != nil {
		r.Handle("/icons/*", http.StripPrefix("/icons/", http.FileServer(http.FS(h.iconFS))))
	}
}

// HandleIndex handles GET / requests, starting a session when the browser
// has none.
func (h *Handler) HandleIndex(w http.ResponseWriter, r *http.Request) {
	sess, err := h.session(w, r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	view := BuildLobby(h.deps.Catalog(), sess.Roster, h.resolver, sess.Prediction)
	templ.Handler(Page(view),
		templ.WithErrorHandler(func(r *http.Request, err error) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				h.fail(w, r, fmt.Errorf("%w: %w", ErrRender, err))
			})
		}),
	).ServeHTTP(w, r)
}

// selectForm is the body of POST /select.
type selectForm struct {
	Slot     string `validate:"required,slotkey"`
	Champion string `validate:"required,max=64"`
}

// HandleSelect handles POST /select requests.
func (h *Handler) HandleSelect(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	form := selectForm{Slot: r.PostForm.Get("slot"), Champion: r.PostForm.Get("champion")}
	if err := validation.Get().Struct(form); err != nil {
		http.Error(w, validation.Message(err), http.StatusBadRequest)
		return
	}

	sess, err := h.session(w, r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if _, err := h.deps.Select(r.Context(), sess.ID, roster.SlotKey(form.Slot), form.Champion); err != nil {
		h.fail(w, r, err)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// HandlePredict handles POST /predict requests.
func (h *Handler) HandlePredict(w http.ResponseWriter, r *http.Request) {
	h.apply(w, r, h.deps.Predict)
}

// HandleReset handles POST /reset requests.
func (h *Handler) HandleReset(w http.ResponseWriter, r *http.Request) {
	h.apply(w, r, h.deps.Reset)
}

func (h *Handler) apply(w http.ResponseWriter, r *http.Request, op func(context.Context, string) (*model.Session, error)) {
	sess, err := h.session(w, r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if _, err := op(r.Context(), sess.ID); err != nil {
		h.fail(w, r, err)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// session resolves the browser session, replacing a missing or expired one
// and refreshing the cookie.
func (h *Handler) session(w http.ResponseWriter, r *http.Request) (*model.Session, error) {
	var id string
	if c, err := r.Cookie(h.cookieName); err == nil {
		id = c.Value
	}
	sess, created, err := h.deps.SessionOrNew(r.Context(), id)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSession, err)
	}
	if created {
		h.logger.Debug(r.Context(), "new browser session", logger.String("session", sess.ID))
	}
	cookie := &http.Cookie{
		Name:     h.cookieName,
		Value:    sess.ID,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
	}
	if h.cookieMaxAge > 0 {
		cookie.MaxAge = int(h.cookieMaxAge.Seconds())
	}
	http.SetCookie(w, cookie)
	return sess, nil
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, roster.ErrUnknownChampion):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	case errors.Is(err, roster.ErrUnknownSlot):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		h.logger.Error(r.Context(), "lobby page failed", logger.Error(err), logger.String("path", r.URL.Path))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}
