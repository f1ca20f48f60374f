package scrape

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/mark3labs/mcp-go/client"
	mcpproto "github.com/mark3labs/mcp-go/mcp"
	"github.com/sandevgo/musebot/internal/core"
)

// MCPConfig describes a stdio MCP server that exposes scraping tools.
// Tools maps a scraper kind to the tool name on that server.
type MCPConfig struct {
	Command string            `json:"command"`
	Args    []string          `json:"args"`
	Env     map[string]string `json:"env"`
	Tools   map[string]string `json:"tools"`
}

func LoadMCPConfig(path string) (MCPConfig, error) {
	var cfg MCPConfig

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read mcp config: %w", err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse mcp config: %w", err)
	}
	if cfg.Command == "" {
		return cfg, fmt.Errorf("mcp config: command is required")
	}
	return cfg, nil
}

// NewMCPClient spawns the configured server and completes the MCP
// handshake. The caller owns the returned client and must Close it.
func NewMCPClient(ctx context.Context, cfg MCPConfig) (*client.Client, error) {
	var env []string
	for k, v := range cfg.Env {
		env = append(env, fmt.Sprintf("%s=%s", k, v))
	}

	cli, err := client.NewStdioMCPClient(cfg.Command, env, cfg.Args...)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	if err = cli.Start(ctx); err != nil {
		return nil, fmt.Errorf("failed to start client: %w", err)
	}

	req := mcpproto.InitializeRequest{}
	req.Params.ProtocolVersion = mcpproto.LATEST_PROTOCOL_VERSION
	req.Params.Capabilities = mcpproto.ClientCapabilities{}
	req.Params.ClientInfo = mcpproto.Implementation{
		Name:    core.MuseName,
		Version: core.MuseVersion,
	}

	if _, err := cli.Initialize(ctx, req); err != nil {
		_ = cli.Close()
		return nil, fmt.Errorf("failed to initialize client: %w", err)
	}

	return cli, nil
}

// MCPScraper extracts page text through a single tool on an MCP server.
type MCPScraper struct {
	cli  *client.Client
	tool string
}

func NewMCPScraper(cli *client.Client, tool string) *MCPScraper {
	return &MCPScraper{cli: cli, tool: tool}
}

func (s *MCPScraper) Scrape(ctx context.Context, url string) (string, error) {
	req := mcpproto.CallToolRequest{}
	req.Params.Name = s.tool
	req.Params.Arguments = map[string]any{"url": url}

	tCtx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	res, err := s.cli.CallTool(tCtx, req)
	if err != nil {
		return "", fmt.Errorf("call tool %q: %w", s.tool, err)
	}

	var output string
	for _, content := range res.Content {
		if text, ok := content.(mcpproto.TextContent); ok {
			output += text.Text + "\n"
		} else if textPtr, ok := content.(*mcpproto.TextContent); ok {
			output += textPtr.Text + "\n"
		}
	}

	if res.IsError {
		return "", fmt.Errorf("tool %q failed: %s", s.tool, output)
	}
	return output, nil
}
