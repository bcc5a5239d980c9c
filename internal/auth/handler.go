package auth

import (
	"context"
	"net/http"
	"time"

	"github.com/GyroZepelix/newsboard/internal/audit"
	"github.com/GyroZepelix/newsboard/internal/server"
	"github.com/GyroZepelix/newsboard/internal/validate"
)

// Handler provides HTTP handlers for registration and login.
type Handler struct {
	service      *Service
	auditService *audit.Service
	devMode      bool
}

// NewHandler creates a new auth Handler. The devMode flag controls whether
// the session cookie is set with the Secure flag (disabled in dev mode to
// allow HTTP on localhost). The audit service is optional.
func NewHandler(service *Service, auditService *audit.Service, devMode bool) *Handler {
	return &Handler{
		service:      service,
		auditService: auditService,
		devMode:      devMode,
	}
}

// Register handles POST /api/users/register. It returns 201 with the new
// user and a session token, which is also set as a cookie.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var p validate.RegistrationPayload
	if err := server.DecodeJSON(w, r, &p); err != nil {
		server.WriteError(w, r, err)
		return
	}
	reg, err := validate.NewRegistration(p)
	if err != nil {
		server.WriteError(w, r, err)
		return
	}

	session, err := h.service.Register(r.Context(), reg)
	if err != nil {
		server.WriteError(w, r, err)
		return
	}

	h.logAudit(r.Context(), audit.Event{
		Action:    audit.ActionUserRegister,
		Actor:     session.User.Username,
		Entity:    "user",
		EntityKey: session.User.Username,
	})

	h.setSessionCookie(w, session.Token)
	server.JSON(w, http.StatusCreated, session)
}

// Login handles POST /api/users/login. It returns the user and a session
// token, which is also set as a cookie.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var p validate.LoginPayload
	if err := server.DecodeJSON(w, r, &p); err != nil {
		server.WriteError(w, r, err)
		return
	}
	l, err := validate.NewLogin(p)
	if err != nil {
		server.WriteError(w, r, err)
		return
	}

	session, err := h.service.Login(r.Context(), l)
	if err != nil {
		if isLoginRejection(err) {
			h.logAudit(r.Context(), audit.Event{
				Action:  audit.ActionLoginFailure,
				Entity:  "user",
				Payload: map[string]any{"email": l.Email},
			})
		}
		server.WriteError(w, r, err)
		return
	}

	h.setSessionCookie(w, session.Token)
	server.JSON(w, http.StatusOK, session)
}

// logAudit sends an audit event if the audit service is configured.
func (h *Handler) logAudit(ctx context.Context, event audit.Event) {
	if h.auditService != nil {
		h.auditService.Log(ctx, event)
	}
}

// setSessionCookie sets the session token as an httpOnly cookie.
func (h *Handler) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.service.tokenTTL / time.Second),
		HttpOnly: true,
		Secure:   !h.devMode,
		SameSite: http.SameSiteLaxMode,
	})
}
