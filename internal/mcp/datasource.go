package mcp

import (
	"context"

	"github.com/kinestex/kinestex-go/internal/content"
)

// ContentSource abstracts the content API for MCP tools. *content.Client
// satisfies it against either the hosted API or the dev server.
type ContentSource interface {
	Fetch(ctx context.Context, req content.Request) (*content.Result, error)
}

// Compile-time check: *content.Client satisfies ContentSource.
var _ ContentSource = (*content.Client)(nil)
