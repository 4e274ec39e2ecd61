package mcp

import (
	"context"
	"encoding/json"

	"github.com/kinestex/kinestex-go/internal/models"
	"github.com/kinestex/kinestex-go/internal/payload"
	"github.com/mark3labs/mcp-go/mcp"
)

func (h *handlers) bodyParts(_ context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return jsonResource(req.Params.URI, models.BodyParts)
}

func (h *handlers) categories(_ context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	names := make([]string, 0, len(payload.Categories))
	for _, c := range payload.Categories {
		names = append(names, c.String())
	}
	return jsonResource(req.Params.URI, names)
}

func jsonResource(uri string, v any) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
