package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/Control-D-Inc/hostnamer"
)

const (
	contentTypeJson = "application/json"
	maxRequestBody  = 64 << 10
)

// composeServer serves stateless hostname composition over HTTP.
// Every request gets its own Validator, so no naming state is shared.
type composeServer struct {
	server       *http.Server
	mux          *http.ServeMux
	reg          *prometheus.Registry
	addr         string
	newValidator func() (*hostnamer.Validator, error)
}

func newComposeServer(addr string, newValidator func() (*hostnamer.Validator, error), version string) *composeServer {
	mux := http.NewServeMux()
	s := &composeServer{
		server:       &http.Server{Handler: mux, ReadHeaderTimeout: 10 * time.Second},
		mux:          mux,
		reg:          newMetricsRegistry(version),
		addr:         addr,
		newValidator: newValidator,
	}
	s.mux.Handle("/v1/compose", jsonResponse(http.HandlerFunc(s.handleCompose)))
	registerMetricsHandler(s.mux, s.reg)
	return s
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		mainLog.Warn().Err(err).Msg("could not write response")
	}
}

func (s *composeServer) handleCompose(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
		return
	}
	var values map[string]string
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody)).Decode(&values); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: fmt.Sprintf("invalid request body: %v", err)})
		return
	}
	for name := range values {
		if _, err := hostnamer.ParseField(name); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
	}

	validator, err := s.newValidator()
	if err != nil {
		mainLog.Error().Err(err).Msg("could not create validator")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
		return
	}
	result := validator.Result()
	for _, f := range hostnamer.Fields() {
		if result, err = validator.OnFieldChanged(f, values[string(f)]); err != nil {
			writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
			return
		}
	}
	observeResult(result)
	mainLog.Debug().Str("hostname", result.Hostname).Bool("valid", result.Valid()).Msg("composed hostname")
	writeJSON(w, http.StatusOK, newComposeResponse(result))
}

// run serves until ctx is done, then shutdowns the server within 2 seconds.
func (s *composeServer) run(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("could not listen on %s: %w", s.addr, err)
	}
	mainLog.Info().Msgf("compose server listening on: %s", listener.Addr())

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return s.server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func newServeCmd() *cobra.Command {
	var listen string
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve hostname composition over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			addr := cfg.Service.Listen
			if listen != "" {
				addr = listen
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return newComposeServer(addr, newValidator, cmd.Root().Version).run(ctx)
		},
	}
	serveCmd.Flags().StringVarP(&listen, "listen", "", "", "listener address and port, in format: address:port")
	return serveCmd
}
