package transport

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// RPCHandler handles method dispatch.
type RPCHandler interface {
	Handle(ctx context.Context, clientID, method string, params json.RawMessage) (any, error)
}

// CodedError is implemented by domain errors that carry a stable code.
type CodedError interface {
	error
	CodeValue() string
	MessageValue() string
	DetailsValue() any
	RecoveryHintValue() string
}

// Error codes that select a specific JSON-RPC code.
const (
	CodeMethodNotFound = "METHOD_NOT_FOUND"
	CodeInvalidParams  = "INVALID_PARAMS"
)

// Options configures the HTTP router.
type Options struct {
	// MCP serves the streamable MCP endpoint when set.
	MCP            http.Handler
	AuthMiddleware func(http.Handler) http.Handler
	Logger         *slog.Logger
}

// Server wires HTTP handlers.
type Server struct {
	handler RPCHandler
	logger  *slog.Logger
}

// NewServer creates an HTTP server router with middleware.
func NewServer(handler RPCHandler, opts Options) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	srv := &Server{handler: handler, logger: logger}

	r.Get("/health", srv.handleHealth)

	r.Group(func(r chi.Router) {
		if opts.AuthMiddleware != nil {
			r.Use(opts.AuthMiddleware)
		}
		r.Use(ClientMiddleware)

		r.Post("/rpc", srv.handleRPC)
		if opts.MCP != nil {
			r.Handle("/mcp", opts.MCP)
			r.Handle("/mcp/*", opts.MCP)
		}
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleRPC(w http.ResponseWriter, r *http.Request) {
	req, err := ParseRequest(r.Body)
	if err != nil {
		if errors.Is(err, ErrInvalidRequest) {
			WriteError(w, nil, ErrInvalidReq, "invalid request", nil)
			return
		}
		WriteError(w, nil, ErrParseCode, "parse error", nil)
		return
	}

	clientID, _ := ClientIDFromContext(r.Context())

	result, err := s.handler.Handle(r.Context(), clientID, req.Method, req.Params)
	if err != nil {
		if errors.Is(err, ErrUnauthorized) {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		var coded CodedError
		if errors.As(err, &coded) {
			WriteError(w, req.ID, rpcCode(coded.CodeValue()), coded.MessageValue(), errorData(coded))
			return
		}
		s.logger.Error("rpc call failed", "method", req.Method, "client_id", clientID, "error", err)
		WriteError(w, req.ID, ErrInternal, err.Error(), nil)
		return
	}

	WriteResult(w, req.ID, result)
}

func rpcCode(code string) int {
	switch code {
	case CodeMethodNotFound:
		return ErrMethodNotFound
	case CodeInvalidParams:
		return ErrInvalidParams
	default:
		return ErrServer
	}
}

func errorData(err CodedError) map[string]any {
	data := map[string]any{"code": err.CodeValue()}
	if hint := err.RecoveryHintValue(); hint != "" {
		data["recovery_hint"] = hint
	}
	if details := err.DetailsValue(); details != nil {
		data["details"] = details
	}
	return data
}
