package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

type contextKey int

const (
	clientIDKey contextKey = iota
)

// getClientID extracts the client ID from context.
func getClientID(ctx context.Context) string {
	v, _ := ctx.Value(clientIDKey).(string)
	return v
}

// clientMiddleware identifies the caller by X-Client-Id or Mcp-Session-Id
// header (HTTP), falling back to the protocol session ID (stdio).
func clientMiddleware() sdkmcp.Middleware {
	return func(next sdkmcp.MethodHandler) sdkmcp.MethodHandler {
		return func(ctx context.Context, method string, req sdkmcp.Request) (sdkmcp.Result, error) {
			var clientID string

			if extra := req.GetExtra(); extra != nil && extra.Header != nil {
				clientID = extra.Header.Get("X-Client-Id")
				if clientID == "" {
					clientID = extra.Header.Get("Mcp-Session-Id")
				}
			}
			if clientID == "" {
				clientID = safeSessionID(req)
			}

			if clientID != "" {
				ctx = context.WithValue(ctx, clientIDKey, clientID)
			}
			return next(ctx, method, req)
		}
	}
}
