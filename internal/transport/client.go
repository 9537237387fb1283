package transport

import (
	"context"
	"net/http"
)

type clientKey struct{}

// ClientIDFromContext returns the calling client's ID from context, if present.
func ClientIDFromContext(ctx context.Context) (string, bool) {
	clientID, ok := ctx.Value(clientKey{}).(string)
	return clientID, ok
}

// ClientMiddleware stores X-Client-Id, or Mcp-Session-Id when absent, in context.
func ClientMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := r.Header.Get("X-Client-Id")
		if clientID == "" {
			clientID = r.Header.Get("Mcp-Session-Id")
		}
		if clientID != "" {
			ctx := context.WithValue(r.Context(), clientKey{}, clientID)
			next.ServeHTTP(w, r.WithContext(ctx))
			return
		}
		next.ServeHTTP(w, r)
	})
}
