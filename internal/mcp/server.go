package mcp

import (
	"context"
	"fmt"
	"os"

	gomcp "github.com/mark3labs/mcp-go/server"
	log "github.com/sirupsen/logrus"

	"github.com/haconeco/task-tracker/internal/config"
	"github.com/haconeco/task-tracker/internal/service"
)

// Server はMCPサーバーの実装。
type Server struct {
	mcpServer *gomcp.MCPServer
	services  *service.Services
	cfg       *config.Config
	logger    *log.Logger
}

// NewServer は新しいMCPサーバーを生成する。
func NewServer(services *service.Services, cfg *config.Config, logger *log.Logger) (*Server, error) {
	if services == nil {
		return nil, fmt.Errorf("services are required")
	}
	if logger == nil {
		logger = log.StandardLogger()
	}

	mcpServer := gomcp.NewMCPServer(
		cfg.MCP.Name,
		cfg.Version,
	)

	s := &Server{
		mcpServer: mcpServer,
		services:  services,
		cfg:       cfg,
		logger:    logger,
	}

	s.registerProjectTools()
	s.registerTaskTools()
	s.registerInvoiceTools()
	s.registerNotificationTools()

	return s, nil
}

// Run はMCPサーバーを起動する。
func (s *Server) Run(ctx context.Context) error {
	s.logger.WithFields(log.Fields{
		"transport": s.cfg.MCP.Transport,
		"name":      s.cfg.MCP.Name,
	}).Info("starting MCP server")

	switch s.cfg.MCP.Transport {
	case "stdio":
		return s.runStdio(ctx)
	default:
		return fmt.Errorf("unsupported transport: %s", s.cfg.MCP.Transport)
	}
}

// runStdio はstdioトランスポートでMCPサーバーを実行する。
func (s *Server) runStdio(ctx context.Context) error {
	stdioServer := gomcp.NewStdioServer(s.mcpServer)
	return stdioServer.Listen(ctx, os.Stdin, os.Stdout)
}
