package mcp

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"

	"github.com/hpungsan/attio-mcp/internal/config"
	"github.com/hpungsan/attio-mcp/internal/crm"
)

// toolEntry pairs a tool definition with a handler factory.
type toolEntry struct {
	def     mcp.Tool
	handler func(*Handlers) server.ToolHandlerFunc
}

// toolRegistry maps tool names to their definitions and handler factories.
var toolRegistry = map[string]toolEntry{
	"search_companies": {
		def:     searchCompaniesToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleSearchCompanies },
	},
	"list_tasks": {
		def:     listTasksToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleListTasks },
	},
	"get_company_details": {
		def:     getCompanyDetailsToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleGetCompanyDetails },
	},
	"get_company_notes": {
		def:     getCompanyNotesToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleGetCompanyNotes },
	},
	"search_people": {
		def:     searchPeopleToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleSearchPeople },
	},
	"get_person_details": {
		def:     getPersonDetailsToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleGetPersonDetails },
	},
	"get_person_notes": {
		def:     getPersonNotesToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleGetPersonNotes },
	},
	"get_workspace_member": {
		def:     getWorkspaceMemberToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleGetWorkspaceMember },
	},
	"search_workspace_member_by_email": {
		def:     searchMemberByEmailToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleSearchMemberByEmail },
	},
	"list_workspace_members": {
		def:     listWorkspaceMembersToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleListMembers },
	},
}

// AllToolNames returns a list of all valid tool names.
func AllToolNames() []string {
	names := make([]string, 0, len(toolRegistry))
	for name := range toolRegistry {
		names = append(names, name)
	}
	return names
}

// ValidateDisabledTools returns a list of unknown tool names from the given list.
func ValidateDisabledTools(names []string) []string {
	unknown := make([]string, 0)
	for _, name := range names {
		if _, ok := toolRegistry[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	return unknown
}

// NewServer creates a new MCP server with the CRM tools registered.
// Tools listed in cfg.DisabledTools are excluded from registration.
func NewServer(client crm.Client, cfg *config.Config, log zerolog.Logger, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"attio-mcp",
		version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
	)

	limits := crm.Limits{Default: cfg.DefaultLimit, Max: cfg.MaxLimit}
	h := NewHandlers(client, limits, log)

	disabled := make(map[string]bool)
	for _, name := range cfg.DisabledTools {
		disabled[name] = true
	}
	for _, name := range ValidateDisabledTools(cfg.DisabledTools) {
		log.Warn().Str("tool", name).Msg("unknown tool in disabled list")
	}

	for name, entry := range toolRegistry {
		if disabled[name] {
			continue
		}
		s.AddTool(entry.def, entry.handler(h))
	}

	return s
}

// Run starts the MCP server on the configured transport. Stdio blocks
// until stdin closes; SSE blocks until the HTTP listener fails or ctx is
// canceled.
func Run(ctx context.Context, client crm.Client, cfg *config.Config, log zerolog.Logger, version string) error {
	s := NewServer(client, cfg, log, version)

	switch cfg.Transport {
	case config.TransportSSE:
		return runSSE(ctx, s, cfg, log)
	default:
		return server.ServeStdio(s)
	}
}

// runSSE serves the MCP protocol over SSE, with optional bearer auth.
func runSSE(ctx context.Context, s *server.MCPServer, cfg *config.Config, log zerolog.Logger) error {
	addr := net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
	sse := server.NewSSEServer(s)

	httpSrv := &http.Server{
		Addr:    addr,
		Handler: bearerAuth(cfg.BearerToken, log, sse),
	}

	go func() {
		<-ctx.Done()
		_ = httpSrv.Shutdown(context.Background())
	}()

	log.Info().Str("addr", addr).Msg("serving MCP over SSE")
	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("sse server: %w", err)
	}
	return nil
}

// bearerAuth requires "Authorization: Bearer <token>" on every request
// when a token is configured. An empty token disables auth.
func bearerAuth(token string, log zerolog.Logger, next http.Handler) http.Handler {
	if token == "" {
		log.Warn().Msg("bearer token not configured, transport auth disabled")
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || got != token {
			log.Warn().Str("remote", r.RemoteAddr).Msg("invalid bearer token")
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ToolHandlerFunc is the signature for tool handlers.
type ToolHandlerFunc func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error)
