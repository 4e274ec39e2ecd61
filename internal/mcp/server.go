package mcp

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// New creates an MCP server with all tools and resources registered.
func New(src ContentSource, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("KinesteX", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("KinesteX content server. Look up workouts, training plans and exercises by id or title, or list them filtered by category and body parts. Collections are paginated with last_doc_id."),
	)

	h := &handlers{src: src, log: log}

	s.AddTools(
		server.ServerTool{Tool: toolGetWorkout, Handler: h.getWorkout},
		server.ServerTool{Tool: toolGetPlan, Handler: h.getPlan},
		server.ServerTool{Tool: toolGetExercise, Handler: h.getExercise},
	)

	s.AddResources(
		server.ServerResource{Resource: resBodyParts, Handler: h.bodyParts},
		server.ServerResource{Resource: resCategories, Handler: h.categories},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	src ContentSource
	log *slog.Logger
}

// --- Resource definitions ---

var resBodyParts = mcp.NewResource(
	"kinestex://body_parts",
	"Body Parts",
	mcp.WithResourceDescription("Every body_parts filter value accepted by the content tools"),
	mcp.WithMIMEType("application/json"),
)

var resCategories = mcp.NewResource(
	"kinestex://categories",
	"Plan Categories",
	mcp.WithResourceDescription("Built-in plan categories used by the main view"),
	mcp.WithMIMEType("application/json"),
)
