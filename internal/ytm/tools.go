package ytm

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const (
	ToolSearch      = "ytm_search"
	ToolPlaylistAdd = "ytm_playlist_add"
	ToolStatus      = "ytm_status"
)

// NewMCPServer exposes the endpoints as MCP tools backed by the same service,
// so they share its counters and credential handling.
func NewMCPServer(svc *Service, version string) *server.MCPServer {
	h := &toolHandlers{svc: svc}

	s := server.NewMCPServer("ytm-service", version,
		server.WithToolCapabilities(true),
		server.WithLogging(),
	)

	s.AddTool(mcp.NewTool(ToolSearch,
		mcp.WithDescription("Search YouTube Music for up to five tracks"),
		mcp.WithString("query",
			mcp.Description("Free text search query"),
			mcp.Required(),
		),
	), h.search)

	s.AddTool(mcp.NewTool(ToolPlaylistAdd,
		mcp.WithDescription("Append videos to a playlist owned by the configured account"),
		mcp.WithString("playlistId",
			mcp.Description("Target playlist ID"),
			mcp.Required(),
		),
		mcp.WithArray("videoIds",
			mcp.Description("Video IDs to append, at most 50 are used"),
			mcp.Required(),
		),
	), h.playlistAdd)

	s.AddTool(mcp.NewTool(ToolStatus,
		mcp.WithDescription("Report whether account credentials are configured"),
	), h.status)

	return s
}

type toolHandlers struct {
	svc *Service
}

func (h *toolHandlers) search(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	credPath, err := h.svc.Admit(CounterSearch)
	if err != nil {
		return toolError(err), nil
	}
	query, err := sanitizeQuery(request.GetArguments())
	if err != nil {
		return toolError(err), nil
	}
	results, err := h.svc.Search(ctx, credPath, query)
	if err != nil {
		return toolError(err), nil
	}
	return toolJSON(SearchResponse{Results: results})
}

func (h *toolHandlers) playlistAdd(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	credPath, err := h.svc.Admit(CounterPlaylistAdd)
	if err != nil {
		return toolError(err), nil
	}
	m, err := sanitizePlaylistMutation(request.GetArguments())
	if err != nil {
		return toolError(err), nil
	}
	if err := h.svc.AddToPlaylist(ctx, credPath, m); err != nil {
		return toolError(err), nil
	}
	return toolJSON(PlaylistAddResponse{Success: true})
}

func (h *toolHandlers) status(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return toolJSON(StatusResponse{Configured: h.svc.Configured()})
}

func toolJSON(v any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(string(data)), nil
}

// toolError renders the same error strings the HTTP endpoints return.
func toolError(err error) *mcp.CallToolResult {
	var ie *inputError
	var ue *UpstreamError
	switch {
	case errors.Is(err, ErrRateLimited):
		return mcp.NewToolResultError(msgRateLimited)
	case errors.Is(err, ErrNotConfigured):
		return mcp.NewToolResultError(codeNotConfigured)
	case errors.Is(err, ErrClientUnavailable):
		return mcp.NewToolResultError(codeNotConfigured + ": " + ErrClientUnavailable.Error())
	case errors.As(err, &ie):
		return mcp.NewToolResultError(ie.msg)
	case errors.As(err, &ue):
		return mcp.NewToolResultError(ue.Message + ": " + ue.Detail())
	}
	return mcp.NewToolResultError(err.Error())
}
