package api

import (
	"context"

	"github.com/rpupo63/portfolio-studio-backend/auth"
)

type keyType string

const sessionKey keyType = "session"

func ctxWithSession(ctx context.Context, session *auth.Session) context.Context {
	return context.WithValue(ctx, sessionKey, session)
}

// ctxGetSession returns the owner session set by the auth middleware, or nil.
func ctxGetSession(ctx context.Context) *auth.Session {
	session, _ := ctx.Value(sessionKey).(*auth.Session)
	return session
}
