package mcp

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// HTTPServer exposes the protocol over HTTP: one POST endpoint carrying one
// JSON-RPC message per request, plus a health check.
type HTTPServer struct {
	server *Server
	logger *zap.Logger
	http   *http.Server
}

// NewHTTPServer wraps a protocol server for HTTP transport on the given
// listen address.
func NewHTTPServer(server *Server, addr string, logger *zap.Logger) *HTTPServer {
	if logger == nil {
		logger = zap.NewNop()
	}

	h := &HTTPServer{
		server: server,
		logger: logger.With(zap.String("component", "http_transport")),
	}

	router := mux.NewRouter()
	router.HandleFunc("/mcp", h.handleMessage).Methods(http.MethodPost)
	router.HandleFunc("/healthz", h.handleHealth).Methods(http.MethodGet)

	h.http = &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return h
}

// ListenAndServe starts the HTTP listener and blocks until the context is
// cancelled or the listener fails. Shutdown drains in-flight requests.
func (h *HTTPServer) ListenAndServe(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		h.logger.Info("http transport listening", zap.String("addr", h.http.Addr))
		errCh <- h.http.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := h.http.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return ctx.Err()
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}

func (h *HTTPServer) handleMessage(w http.ResponseWriter, r *http.Request) {
	var msg Message
	if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
		writeJSON(w, http.StatusOK, NewError(nil, ErrorCodeParseError, "parse error: "+err.Error()))
		return
	}

	resp := h.server.HandleMessage(r.Context(), &msg)
	if resp == nil {
		// Notification: acknowledged with no body.
		w.WriteHeader(http.StatusAccepted)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *HTTPServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
