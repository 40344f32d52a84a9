package flash

import (
	"net/http"
	"time"

	"github.com/aquamarinepk/aqm"
	"github.com/aquamarinepk/aqm/telemetry"
	aqmtemplate "github.com/aquamarinepk/aqm/template"
	"github.com/go-chi/chi/v5"
)

// Handler serves the staff terminal pages: sign-in, the tables grid with its
// detail modal, the open-order form and the comanda closure page. All data
// comes from the Gateway; the only state held here is the session store and
// the shared table store.
type Handler struct {
	tmplMgr      *aqmtemplate.Manager
	gateway      *Gateway
	tableStore   *TableStore
	logger       aqm.Logger
	config       *aqm.Config
	http         *telemetry.HTTP
	sessionStore *SessionStore
}

func NewHandler(
	tmplMgr *aqmtemplate.Manager,
	gateway *Gateway,
	tableStore *TableStore,
	config *aqm.Config,
	logger aqm.Logger,
) *Handler {
	if logger == nil {
		logger = aqm.NewNoopLogger()
	}

	sessionTTLStr, _ := config.GetString("auth.session.ttl")
	sessionTTL, _ := time.ParseDuration(sessionTTLStr)
	sessionStore := NewSessionStore(sessionTTL)

	return &Handler{
		tmplMgr:      tmplMgr,
		gateway:      gateway,
		tableStore:   tableStore,
		logger:       logger,
		config:       config,
		http:         telemetry.NewHTTP(),
		sessionStore: sessionStore,
	}
}

// RegisterRoutes wires the terminal's navigational surface.
func (h *Handler) RegisterRoutes(r chi.Router) {
	// Public routes
	r.Get("/signin", h.ShowSignIn)
	r.Post("/signin", h.HandleSignIn)
	r.Post("/signout", h.HandleSignOut)

	// Protected routes (require session)
	r.Group(func(r chi.Router) {
		r.Use(h.SessionMiddleware)

		r.Get("/", h.Home)
		r.Get("/tables", h.Tables)
		r.Get("/tables/{id}/modal", h.TableModal)
		r.Get("/open-order", h.OpenOrderForm)
		r.Post("/open-order", h.OpenOrder)
		r.Get("/orders/{id}/closed", h.OrderClosed)
	})
}

func (h *Handler) log() aqm.Logger {
	return h.logger
}

func (h *Handler) renderTemplate(w http.ResponseWriter, templateName, layout string, data map[string]interface{}) {
	tmpl, err := h.tmplMgr.Get(templateName)
	if err != nil {
		h.log().Error("error loading template", "error", err, "template", templateName)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if err := tmpl.ExecuteTemplate(w, layout, data); err != nil {
		h.log().Error("error rendering template", "error", err, "layout", layout)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// Home lands staff on the tables grid.
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.http.Start(w, r, "Handler.Home")
	defer finish()

	http.Redirect(w, r, "/tables", http.StatusSeeOther)
}

func (h *Handler) getUserFromSession(r *http.Request) map[string]interface{} {
	session := sessionFromContext(r.Context())
	if session == nil {
		return nil
	}

	return map[string]interface{}{
		"Email":   session.Email,
		"Role":    session.Role,
		"IsAdmin": session.Role == "ADMIN",
	}
}
