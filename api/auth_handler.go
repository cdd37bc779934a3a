package api

import (
	"net/http"
	"time"

	"github.com/rpupo63/portfolio-studio-backend/auth"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type authHandler struct {
	responder Responder
	logger    zerolog.Logger
	auth      *auth.Service
}

func newAuthHandler(authService *auth.Service) authHandler {
	logger := log.With().Str("handlerName", "authHandler").Logger()

	return authHandler{
		responder: NewResponder(logger),
		logger:    logger,
		auth:      authService,
	}
}

type signInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SessionResponse reports whether the caller holds an owner session.
type SessionResponse struct {
	Authorized bool       `json:"authorized"`
	Email      string     `json:"email,omitempty"`
	ExpiresAt  *time.Time `json:"expiresAt,omitempty"`
}

// signIn exchanges the owner credential for a session token
// @Summary Sign in
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body signInRequest true "Owner credentials"
// @Success 200 {object} auth.Session
// @Failure 401 {object} ErrorResponse "Invalid email or password"
// @Router /auth/sign-in [post]
func (h authHandler) signIn() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req signInRequest
		if !decodeAndValidate(w, r, h.responder, &req) {
			return
		}

		session, err := h.auth.SignIn(r.Context(), req.Email, req.Password)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, session)
	}
}

// signOut revokes the bearer token. Unknown tokens are accepted silently.
// @Summary Sign out
// @Tags Auth
// @Success 204
// @Router /auth/sign-out [post]
func (h authHandler) signOut() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h.auth.SignOut(r.Context(), bearerToken(r)); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// getSession
// @Summary Current session
// @Tags Auth
// @Produce json
// @Success 200 {object} SessionResponse
// @Router /auth/session [get]
func (h authHandler) getSession() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			h.responder.WriteJSON(w, SessionResponse{})
			return
		}

		session, err := h.auth.GetSession(r.Context(), token)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if session == nil {
			h.responder.WriteJSON(w, SessionResponse{})
			return
		}

		h.responder.WriteJSON(w, SessionResponse{
			Authorized: true,
			Email:      session.Email,
			ExpiresAt:  &session.ExpiresAt,
		})
	}
}
