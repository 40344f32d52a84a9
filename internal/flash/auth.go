package flash

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ShowSignIn displays the sign-in page.
func (h *Handler) ShowSignIn(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.http.Start(w, r, "Handler.ShowSignIn")
	defer finish()

	data := map[string]interface{}{
		"Title":    "Entrar - Comanda Flash",
		"Template": "signin",
		"HideNav":  true,
	}

	h.renderTemplate(w, "signin.html", "base.html", data)
}

// HandleSignIn exchanges credentials for a backend token and opens a session.
func (h *Handler) HandleSignIn(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.http.Start(w, r, "Handler.HandleSignIn")
	defer finish()

	renderError := func(message string) {
		data := map[string]interface{}{
			"Title":    "Entrar - Comanda Flash",
			"Template": "signin",
			"HideNav":  true,
			"Error":    message,
		}
		h.renderTemplate(w, "signin.html", "base.html", data)
	}

	if err := r.ParseForm(); err != nil {
		h.log().Debug("failed to parse form", "error", err)
		renderError("Não foi possível ler o formulário. Tente novamente.")
		return
	}

	email := r.FormValue("email")
	password := r.FormValue("password")

	if email == "" || password == "" {
		h.log().Debug("missing email or password")
		renderError("Email e senha são obrigatórios.")
		return
	}

	token, err := h.gateway.Login(r.Context(), email, password)
	if err != nil {
		h.log().Debug("authentication failed", "error", err)
		if msg := backendMessage(err); msg != "" {
			renderError(msg)
			return
		}
		renderError("Erro ao fazer login. Tente novamente.")
		return
	}

	session := &Session{
		ID:        uuid.New().String(),
		Email:     email,
		Token:     token,
		Role:      RoleFromToken(token),
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(h.sessionStore.TTL()),
	}

	if err := h.sessionStore.Save(session); err != nil {
		h.log().Error("failed to save session", "error", err)
		renderError("Erro de sessão. Tente novamente.")
		return
	}

	sessionName := h.sessionCookieName()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionName,
		Value:    session.ID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(h.sessionStore.TTL().Seconds()),
	})

	w.Header().Set("HX-Redirect", "/tables")
	http.Redirect(w, r, "/tables", http.StatusSeeOther)
}

// HandleSignOut drops the session and clears the cookie.
func (h *Handler) HandleSignOut(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.http.Start(w, r, "Handler.HandleSignOut")
	defer finish()

	sessionName := h.sessionCookieName()
	cookie, err := r.Cookie(sessionName)
	if err == nil && cookie.Value != "" {
		h.sessionStore.Delete(cookie.Value)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})

	w.Header().Set("HX-Redirect", "/signin")
	http.Redirect(w, r, "/signin", http.StatusSeeOther)
}

// SessionMiddleware validates the session cookie for protected routes.
func (h *Handler) SessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(h.sessionCookieName())
		if err != nil {
			http.Redirect(w, r, "/signin", http.StatusSeeOther)
			return
		}

		session, err := h.sessionStore.Get(cookie.Value)
		if err != nil {
			http.Redirect(w, r, "/signin", http.StatusSeeOther)
			return
		}

		ctx := context.WithValue(r.Context(), contextKeySession, session)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *Handler) sessionCookieName() string {
	name, _ := h.config.GetString("auth.session.name")
	if name == "" {
		name = "flash_session"
	}
	return name
}

// backendMessage surfaces a verbatim backend failure message, if the error
// carries one beyond the bare unauthorized class.
func backendMessage(err error) string {
	if !errors.Is(err, ErrUnauthorized) {
		return ""
	}
	if msg, ok := strings.CutPrefix(err.Error(), ErrUnauthorized.Error()+": "); ok {
		return msg
	}
	return ""
}
