// Package server exposes window listing, hint tables and focusing as MCP
// tools.
package server

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"gopkg.in/yaml.v3"

	"github.com/mj1618/winhint/internal/hint"
	"github.com/mj1618/winhint/internal/model"
	"github.com/mj1618/winhint/internal/output"
	"github.com/mj1618/winhint/internal/platform"
	"github.com/mj1618/winhint/internal/version"
)

// Config holds MCP server configuration.
type Config struct {
	Transport string
	Port      int
	CacheTTL  time.Duration

	// Defaults for the hints tool.
	Chars  string
	Margin float64
}

// Server wraps the MCP server with the backend and cache.
type Server struct {
	backend   platform.Backend
	measurer  hint.Measurer
	cache     *WindowCache
	backendMu sync.Mutex
	measureMu sync.Mutex
	cfg       Config
	mcp       *mcpserver.MCPServer
}

// New creates and configures an MCP server with all winhint tools.
func New(b platform.Backend, m hint.Measurer, cfg Config) *Server {
	s := &Server{
		backend:  b,
		measurer: m,
		cache:    NewWindowCache(cfg.CacheTTL),
		cfg:      cfg,
	}
	s.mcp = mcpserver.NewMCPServer("winhint", version.Version)
	s.registerTools()
	return s
}

// Serve starts the MCP server with the configured transport.
func (s *Server) Serve() error {
	switch s.cfg.Transport {
	case "stdio":
		return mcpserver.ServeStdio(s.mcp)
	case "streamable-http":
		httpServer := mcpserver.NewStreamableHTTPServer(s.mcp)
		return httpServer.Start(fmt.Sprintf(":%d", s.cfg.Port))
	default:
		return fmt.Errorf("unsupported transport: %s (use stdio or streamable-http)", s.cfg.Transport)
	}
}

func (s *Server) registerTools() {
	s.mcp.AddTool(
		mcp.NewTool("list_windows",
			mcp.WithDescription("List the windows that would get a hint"),
			mcp.WithString("title", mcp.Description("Only windows whose title contains this")),
			mcp.WithBoolean("all-desktops", mcp.Description("Include windows on other desktops")),
		),
		s.handleListWindows,
	)

	s.mcp.AddTool(
		mcp.NewTool("hints",
			mcp.WithDescription("Compute the hint label and label box for every window without showing the overlay"),
			mcp.WithString("chars", mcp.Description("Hint characters (default from config)")),
			mcp.WithNumber("margin", mcp.Description("Padding factor around the label text")),
		),
		s.handleHints,
	)

	s.mcp.AddTool(
		mcp.NewTool("focus",
			mcp.WithDescription("Focus a window by id, or by the hint label the hints tool assigned to it"),
			mcp.WithNumber("id", mcp.Description("Window id")),
			mcp.WithString("label", mcp.Description("Hint label")),
		),
		s.handleFocus,
	)
}

func (s *Server) listWindows(opts platform.ListOptions) ([]model.Window, error) {
	s.backendMu.Lock()
	defer s.backendMu.Unlock()
	return s.cache.ListWindows(s.backend, opts)
}

func (s *Server) table(chars string, margin float64) (*hint.Table, error) {
	windows, err := s.listWindows(platform.ListOptions{})
	if err != nil {
		return nil, err
	}
	// Tool calls run concurrently over HTTP and font faces are not
	// goroutine safe.
	s.measureMu.Lock()
	defer s.measureMu.Unlock()
	return hint.BuildTable(windows, chars, margin, s.measurer)
}

func (s *Server) handleListWindows(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	windows, err := s.listWindows(platform.ListOptions{
		Title:       stringParam(params, "title", ""),
		AllDesktops: boolParam(params, "all-desktops", false),
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if windows == nil {
		windows = []model.Window{}
	}
	b, _ := yaml.Marshal(output.ListResult{Backend: s.backend.Name(), Windows: windows})
	return mcp.NewToolResultText(string(b)), nil
}

func (s *Server) handleHints(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	chars := stringParam(params, "chars", s.cfg.Chars)
	margin := floatParam(params, "margin", s.cfg.Margin)

	table, err := s.table(chars, margin)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	b, _ := yaml.Marshal(output.HintsResult{Chars: chars, Hints: table.Entries()})
	return mcp.NewToolResultText(string(b)), nil
}

// FocusResult is the output of a successful focus.
type FocusResult struct {
	OK     bool           `yaml:"ok"              json:"ok"`
	Action string         `yaml:"action"          json:"action"`
	ID     model.WindowID `yaml:"id"              json:"id"`
	Label  string         `yaml:"label,omitempty" json:"label,omitempty"`
}

func (s *Server) handleFocus(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	id := model.WindowID(intParam(params, "id", 0))
	label := stringParam(params, "label", "")

	if id == 0 && label == "" {
		return mcp.NewToolResultError("specify id or label"), nil
	}
	if label != "" {
		table, err := s.table(s.cfg.Chars, s.cfg.Margin)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		e, ok := table.Lookup(label)
		if !ok {
			return mcp.NewToolResultError(fmt.Sprintf("no window has hint %q", label)), nil
		}
		id = e.Window.ID
	}

	s.backendMu.Lock()
	err := s.backend.FocusWindow(id)
	s.backendMu.Unlock()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	// The focused flag of every listed window may have changed.
	s.cache.InvalidateAll()

	b, _ := yaml.Marshal(FocusResult{OK: true, Action: "focus", ID: id, Label: label})
	return mcp.NewToolResultText(string(b)), nil
}
