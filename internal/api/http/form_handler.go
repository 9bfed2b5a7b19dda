package http

import (
	"bytes"
	"embed"
	"errors"
	"html/template"
	"net/http"
	"time"

	"webinar-token-service/internal/domain"
	"webinar-token-service/internal/logger"
	"webinar-token-service/internal/security"
	"webinar-token-service/internal/service"
	"webinar-token-service/internal/storage"

	"github.com/gorilla/mux"
)

//go:embed templates/form.html
var templateFS embed.FS

var formTemplate = template.Must(template.ParseFS(templateFS, "templates/form.html"))

const sessionCookieLifetime = 24 * time.Hour

// SessionCookie configures the cookie that carries the form session
type SessionCookie struct {
	Name   string
	Secure bool
}

// FormHandler serves the server-rendered token request form
type FormHandler struct {
	forms  storage.FormStore
	tokens security.TokenManager
	cookie SessionCookie
}

// NewFormHandler creates a new form handler
func NewFormHandler(forms storage.FormStore, tokens security.TokenManager, cookie SessionCookie) *FormHandler {
	return &FormHandler{
		forms:  forms,
		tokens: tokens,
		cookie: cookie,
	}
}

// ShowForm handles GET /
func (h *FormHandler) ShowForm(w http.ResponseWriter, r *http.Request) {
	form, err := h.formFor(w, r)
	if err != nil {
		http.Error(w, "Failed to start session", http.StatusInternalServerError)
		return
	}
	h.render(w, form.Snapshot())
}

// SubmitForm handles POST /tokens
func (h *FormHandler) SubmitForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form body", http.StatusBadRequest)
		return
	}

	form, err := h.formFor(w, r)
	if err != nil {
		http.Error(w, "Failed to start session", http.StatusInternalServerError)
		return
	}

	// A field missing from the body leaves the stored value alone; an empty
	// field clears it.
	if vals, ok := r.PostForm["room_name"]; ok && len(vals) > 0 {
		form.UpdateRoomName(vals[0])
	}
	if vals, ok := r.PostForm["username"]; ok && len(vals) > 0 {
		form.UpdateUsername(vals[0])
	}

	err = form.Submit(r.Context())
	switch {
	case err == nil:
		logger.InfoContext(r.Context(), "Admin token issued", "room", form.Input().RoomName)
	case errors.Is(err, service.ErrSubmitInFlight):
		logger.Debug("Submit ignored, request already in flight")
	case domain.IsValidationError(err):
		logger.Debug("Submit rejected, missing input")
	default:
		logger.Debug("Submit failed", "kind", domain.KindOf(err))
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// ClearForm handles POST /tokens/clear
func (h *FormHandler) ClearForm(w http.ResponseWriter, r *http.Request) {
	form, err := h.formFor(w, r)
	if err != nil {
		http.Error(w, "Failed to start session", http.StatusInternalServerError)
		return
	}
	form.Clear()
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// formFor returns the caller's form, starting a new session when the cookie
// is missing, invalid, or points at a swept form.
func (h *FormHandler) formFor(w http.ResponseWriter, r *http.Request) (*service.Form, error) {
	if c, err := r.Cookie(h.cookie.Name); err == nil {
		claims, err := h.tokens.ValidateSessionToken(c.Value)
		if err == nil {
			if form, ok := h.forms.Get(claims.SessionID); ok {
				return form, nil
			}
		} else {
			logger.Warn("Discarding session cookie", "error", err)
		}
	}

	id, form := h.forms.Create()
	token, err := h.tokens.GenerateSessionToken(id, sessionCookieLifetime)
	if err != nil {
		logger.Error("Failed to sign session token", "error", err)
		h.forms.Delete(id)
		return nil, err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.cookie.Name,
		Value:    token,
		Path:     "/",
		MaxAge:   int(sessionCookieLifetime.Seconds()),
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	return form, nil
}

func (h *FormHandler) render(w http.ResponseWriter, view domain.FormView) {
	var buf bytes.Buffer
	if err := formTemplate.Execute(&buf, struct{ View domain.FormView }{View: view}); err != nil {
		logger.Error("Template execution error", "error", err)
		http.Error(w, "Failed to render form", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if _, err := w.Write(buf.Bytes()); err != nil {
		logger.Debug("Failed to write form response", "error", err)
	}
}

// RegisterFormRoutes registers the HTML form endpoints
func RegisterFormRoutes(router *mux.Router, handler *FormHandler) {
	router.HandleFunc("/", handler.ShowForm).Methods("GET")
	router.HandleFunc("/tokens", handler.SubmitForm).Methods("POST")
	router.HandleFunc("/tokens/clear", handler.ClearForm).Methods("POST")
}
