package flash

import "context"

type contextKey string

const contextKeySession contextKey = "session"

func sessionFromContext(ctx context.Context) *Session {
	if session, ok := ctx.Value(contextKeySession).(*Session); ok {
		return session
	}
	return nil
}
