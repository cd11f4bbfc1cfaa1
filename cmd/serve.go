package cmd

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/voyago/voyago/internal/agent"
	"github.com/voyago/voyago/internal/observability"
	"github.com/voyago/voyago/internal/web"
	"github.com/voyago/voyago/internal/web/handlers"
)

// Server timeout configuration. SSE streams stay open while components
// trickle in, so the write timeout is generous.
const (
	readHeaderTimeout = 10 * time.Second
	readTimeout       = 30 * time.Second
	writeTimeout      = 2 * time.Minute
	idleTimeout       = 2 * time.Minute
	shutdownTimeout   = 30 * time.Second
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve [addr]",
	Short: "Start the HTTP API server",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (host:port), overrides config")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logger := newLogger()

	s, err := buildStack(ctx, logger)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := s.Close(); closeErr != nil {
			logger.Warn("shutdown error", "error", closeErr)
		}
	}()

	addr := s.cfg.Addr
	if len(args) > 0 {
		addr = args[0]
	}
	if serveAddr != "" {
		addr = serveAddr
	}
	if err := validateAddr(addr); err != nil {
		return fmt.Errorf("invalid address %q: %w", addr, err)
	}

	if s.cfg.TraceEnabled {
		shutdown, err := observability.Setup(ctx, observability.Config{
			Endpoint:    s.cfg.OTLPEndpoint,
			ServiceName: s.cfg.ServiceName,
			Environment: s.cfg.Environment,
		})
		if err != nil {
			return fmt.Errorf("setting up tracing: %w", err)
		}
		defer func() {
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer shutdownCancel()
			if err := shutdown(shutdownCtx); err != nil {
				logger.Warn("trace shutdown error", "error", err)
			}
		}()
	}

	server, err := web.NewServer(web.ServerConfig{
		Logger:   logger.With("component", "web"),
		Registry: s.registry,
		SessionFactory: func(l *handlers.Live) (*agent.Session, error) {
			return s.newSession(
				agent.WithComponentSink(l.ForwardComponent),
				agent.WithAnnouncer(l),
			)
		},
		RateLimitRPS:   s.cfg.RateLimitRPS,
		RateLimitBurst: s.cfg.RateLimitBurst,
		TrustProxy:     s.cfg.TrustProxy,
	})
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           server,
		ReadHeaderTimeout: readHeaderTimeout,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
	}

	logger.Info("HTTP server ready",
		"addr", addr,
		"api", "/api/*",
		"health", "/healthz",
		"fault_probability", s.cfg.FaultProbability,
	)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutting down HTTP server")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer shutdownCancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down server: %w", err)
		}
		<-errCh
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("HTTP server: %w", err)
	}
}

// validateAddr checks the host:port listen address.
func validateAddr(addr string) error {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return fmt.Errorf("must be in host:port format: %w", err)
	}

	if host != "" && host != "localhost" {
		if ip := net.ParseIP(host); ip == nil {
			if strings.ContainsAny(host, " \t\n") {
				return fmt.Errorf("invalid host: %s", host)
			}
		}
	}

	if port == "" {
		return errors.New("port is required")
	}
	portNum, err := strconv.Atoi(port)
	if err != nil {
		return fmt.Errorf("port must be numeric: %w", err)
	}
	if portNum < 0 || portNum > 65535 {
		return fmt.Errorf("port must be 0-65535 (0 = auto-assign), got %d", portNum)
	}

	return nil
}
