package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/mj1618/winhint/internal/platform"
	"github.com/mj1618/winhint/internal/render"
	"github.com/mj1618/winhint/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start an MCP server exposing winhint tools",
	Long: `Start a Model Context Protocol (MCP) server that exposes window listing,
hint computation and focusing as tools.

Supported transports:
  stdio             Standard I/O (default)
  streamable-http   Streamable HTTP transport (for remote agents)

Examples:
  winhint serve
  winhint serve --transport streamable-http --port 8080
  winhint serve --cache-ttl 0`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("transport", "stdio", "Transport: stdio, streamable-http")
	serveCmd.Flags().Int("port", 8080, "HTTP port for streamable-http transport")
	serveCmd.Flags().Int("cache-ttl", 500, "Window list cache TTL in milliseconds (0 to disable)")
}

func runServe(cmd *cobra.Command, args []string) error {
	transport, _ := cmd.Flags().GetString("transport")
	port, _ := cmd.Flags().GetInt("port")
	cacheTTLMs, _ := cmd.Flags().GetInt("cache-ttl")

	if platform.Resolve(appConfig.Backend, os.Getenv("DISPLAY")) == "stdin" && transport == "stdio" {
		return fmt.Errorf("the stdin backend cannot be used with the stdio transport")
	}

	backend, err := platform.Open(appConfig.Backend)
	if err != nil {
		return err
	}
	defer backend.Close()

	font, err := render.LoadFont(appConfig.Font, appConfig.FontSize)
	if err != nil {
		return err
	}
	defer font.Close()

	srv := server.New(backend, font, server.Config{
		Transport: transport,
		Port:      port,
		CacheTTL:  time.Duration(cacheTTLMs) * time.Millisecond,
		Chars:     appConfig.Chars,
		Margin:    appConfig.Margin,
	})
	return srv.Serve()
}
