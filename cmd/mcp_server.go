package cmd

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/shotwatch/shotwatch/internal/config"
	"gopkg.in/yaml.v3"
)

// mcpServer exposes the shotwatch operations as MCP tools over a shared
// appState, so an agent can configure, inspect, and drive the monitor.
type mcpServer struct {
	state *appState
	mcp   *mcpserver.MCPServer
}

// MCPConfig holds MCP server configuration.
type MCPConfig struct {
	Transport  string
	Port       int
	ConfigPath string
}

// newMCPServer creates and configures an MCP server with all shotwatch tools.
func newMCPServer(cfg MCPConfig) (*mcpServer, error) {
	state, err := newAppState(cfg.ConfigPath)
	if err != nil {
		return nil, err
	}

	s := &mcpServer{state: state}
	s.mcp = mcpserver.NewMCPServer(
		"shotwatch",
		"1.0.0",
	)
	s.registerTools()
	return s, nil
}

// serve starts the MCP server with the configured transport.
func (s *mcpServer) serve(cfg MCPConfig) error {
	switch cfg.Transport {
	case "stdio":
		return mcpserver.ServeStdio(s.mcp)
	case "streamable-http":
		httpServer := mcpserver.NewStreamableHTTPServer(s.mcp)
		return httpServer.Start(fmt.Sprintf(":%d", cfg.Port))
	default:
		return fmt.Errorf("unsupported transport: %s (use stdio or streamable-http)", cfg.Transport)
	}
}

func (s *mcpServer) registerTools() {
	s.mcp.AddTool(
		mcp.NewTool("list",
			mcp.WithDescription("List open windows, or running application names with apps=true, to pick a monitor target"),
			mcp.WithBoolean("apps", mcp.Description("List running application names instead of windows")),
		),
		s.handleList,
	)

	s.mcp.AddTool(
		mcp.NewTool("take_screenshot",
			mcp.WithDescription("Capture one screenshot of the configured application and deliver it to the webhook"),
			mcp.WithString("app", mcp.Description("Override the configured application name for this capture")),
		),
		s.handleTakeScreenshot,
	)

	s.mcp.AddTool(
		mcp.NewTool("start_monitoring",
			mcp.WithDescription("Start the background monitor loop (one capture+deliver cycle per interval)"),
		),
		s.handleStartMonitoring,
	)

	s.mcp.AddTool(
		mcp.NewTool("stop_monitoring",
			mcp.WithDescription("Stop the background monitor loop"),
		),
		s.handleStopMonitoring,
	)

	s.mcp.AddTool(
		mcp.NewTool("status",
			mcp.WithDescription("Report whether monitoring is active and show the current configuration"),
		),
		s.handleStatus,
	)

	s.mcp.AddTool(
		mcp.NewTool("configure",
			mcp.WithDescription("Update configuration fields; omitted fields keep their current value"),
			mcp.WithString("webhook_url", mcp.Description("Webhook URL screenshots are posted to")),
			mcp.WithString("app_name", mcp.Description("Application name fragment to monitor")),
			mcp.WithNumber("interval", mcp.Description("Seconds between captures (positive)")),
			mcp.WithBoolean("delete_after_send", mcp.Description("Delete the local file after a successful send")),
			mcp.WithString("custom_message", mcp.Description("Message template; empty for image-only posts")),
			mcp.WithBoolean("save", mcp.Description("Persist the configuration to disk")),
		),
		s.handleConfigure,
	)
}

// toYAML serializes a value for an MCP text response.
func toYAML(v interface{}) string {
	b, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(b)
}

func (s *mcpServer) handleList(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	if boolParam(params, "apps", false) {
		names, err := s.state.provider.Locator.ListApplications()
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(toYAML(names)), nil
	}
	windows, err := s.state.provider.Locator.ListWindows()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(toYAML(windows)), nil
}

func (s *mcpServer) handleTakeScreenshot(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	if app := stringParam(params, "app", ""); app != "" {
		cfg := s.state.snapshot()
		cfg.AppName = app
		s.state.setConfig(cfg)
	}

	rep := s.state.session.RunOnce()
	if !rep.OK {
		return mcp.NewToolResultError(toYAML(rep)), nil
	}
	return mcp.NewToolResultText(toYAML(rep)), nil
}

func (s *mcpServer) handleStartMonitoring(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := s.state.session.Start(); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	cfg := s.state.snapshot()
	return mcp.NewToolResultText(fmt.Sprintf("started monitoring %q every %d seconds", cfg.AppName, cfg.Interval)), nil
}

func (s *mcpServer) handleStopMonitoring(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := s.state.session.Stop(); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText("stopped monitoring"), nil
}

func (s *mcpServer) handleStatus(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	status := struct {
		Running bool          `yaml:"running"`
		Config  config.Config `yaml:"config"`
	}{
		Running: s.state.session.Running(),
		Config:  s.state.snapshot(),
	}
	return mcp.NewToolResultText(toYAML(status)), nil
}

func (s *mcpServer) handleConfigure(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	cfg := s.state.snapshot()

	if v := stringParam(params, "webhook_url", ""); v != "" {
		cfg.WebhookURL = v
	}
	if v := stringParam(params, "app_name", ""); v != "" {
		cfg.AppName = v
	}
	if v := intParam(params, "interval", 0); v != 0 {
		if v < 0 {
			return mcp.NewToolResultError(fmt.Sprintf("interval must be positive, got %d", v)), nil
		}
		cfg.Interval = v
	}
	if _, ok := params["delete_after_send"]; ok {
		cfg.DeleteAfterSend = boolParam(params, "delete_after_send", cfg.DeleteAfterSend)
	}
	if _, ok := params["custom_message"]; ok {
		cfg.CustomMessage = stringParam(params, "custom_message", "")
	}

	s.state.setConfig(cfg)
	if boolParam(params, "save", false) {
		if err := s.state.save(); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
	}
	return mcp.NewToolResultText(toYAML(cfg)), nil
}

// Parameter extraction helpers for MCP argument maps.

func stringParam(params map[string]interface{}, key, defaultVal string) string {
	if v, ok := params[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
		return fmt.Sprintf("%v", v)
	}
	return defaultVal
}

func intParam(params map[string]interface{}, key string, defaultVal int) int {
	if v, ok := params[key]; ok {
		switch n := v.(type) {
		case int:
			return n
		case float64:
			return int(n)
		case int64:
			return int(n)
		}
	}
	return defaultVal
}

func boolParam(params map[string]interface{}, key string, defaultVal bool) bool {
	if v, ok := params[key]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return defaultVal
}
