// Package server owns the transport lifecycle: it runs the MCP server over
// SSE on the configured port and shuts it down gracefully on OS signals.
package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"task-manager/config"
	"task-manager/logger"

	mcpserver "github.com/mark3labs/mcp-go/server"
)

// Server wraps the SSE transport with graceful shutdown capabilities
type Server struct {
	sse    *mcpserver.SSEServer
	config *config.Config
	logger *logger.Logger
}

// New creates a new server hosting the given MCP server over SSE.
func New(mcpSrv *mcpserver.MCPServer, cfg *config.Config, lg *logger.Logger) *Server {
	return &Server{
		sse:    mcpserver.NewSSEServer(mcpSrv),
		config: cfg,
		logger: lg,
	}
}

// Start starts the server and blocks until shutdown
func (s *Server) Start() error {
	// Create a channel to receive OS signals
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	// Start server in a goroutine
	go func() {
		s.logger.Info("Server starting", map[string]any{
			"address": s.config.Address(),
		})

		if err := s.sse.Start(s.config.Address()); err != nil && err != http.ErrServerClosed {
			s.logger.Error("Server failed to start", map[string]any{
				"error": err.Error(),
			})
		}
	}()

	// Wait for interrupt signal
	<-stop
	s.logger.Info("Shutting down server")

	return s.shutdown()
}

// shutdown gracefully shuts down the server
func (s *Server) shutdown() error {
	// Create a context with timeout for graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()

	// Attempt graceful shutdown
	if err := s.sse.Shutdown(ctx); err != nil {
		s.logger.Error("Server forced to shutdown", map[string]any{
			"error": err.Error(),
		})

		return err
	}

	s.logger.Info("Server shutdown complete")
	return nil
}
