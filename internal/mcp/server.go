// ABOUTME: MCP server setup for the body measurement store.
// ABOUTME: Wraps the MCP server with a storage Repository.
package mcp

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	log "github.com/sirupsen/logrus"

	"github.com/harperreed/bodylog/internal/models"
	"github.com/harperreed/bodylog/internal/storage"
)

// Version is reported to MCP clients.
const Version = "1.0.0"

// Server wraps the MCP server with storage access.
type Server struct {
	mcpServer *mcp.Server
	repo      storage.Repository
}

// NewServer creates a new MCP server with the given storage.
func NewServer(repo storage.Repository) (*Server, error) {
	if repo == nil {
		return nil, errors.New("mcp server needs a repository")
	}

	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "bodylog",
			Version: Version,
		},
		nil,
	)

	s := &Server{
		mcpServer: mcpServer,
		repo:      repo,
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Serve starts the MCP server using stdio transport.
func (s *Server) Serve(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}

// Connect serves a single session over t, for embedding and tests.
func (s *Server) Connect(ctx context.Context, t mcp.Transport) (*mcp.ServerSession, error) {
	return s.mcpServer.Connect(ctx, t, nil)
}

// records loads the table for read-only views. A corrupt store is logged and
// treated as empty so reads keep working.
func (s *Server) records() ([]*models.Measurement, error) {
	result, err := s.repo.Load()
	if err != nil {
		if errors.Is(err, storage.ErrStoreCorrupt) {
			log.WithError(err).Error("measurement store unreadable, serving empty table")
			return nil, nil
		}
		return nil, err
	}
	return result.Records, nil
}
