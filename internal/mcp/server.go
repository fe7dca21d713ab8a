// Package mcp provides a Model Context Protocol server for devlog.
// It exposes journal operations as MCP tools that any MCP-capable agent can use.
package mcp

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/jralston/devlog/internal/journal"
)

// NewServer creates an MCP server with all devlog tools registered.
func NewServer(version string, file *journal.File) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "devlog",
		Version: version,
	}, nil)
	registerTools(server, file)
	return server
}

// boolPtr returns a pointer to a bool value.
func boolPtr(b bool) *bool {
	return &b
}

// readOnlyAnnotations returns annotations for read-only tools.
func readOnlyAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		ReadOnlyHint:   true,
		IdempotentHint: true,
		OpenWorldHint:  boolPtr(false),
	}
}

// writeAnnotations returns annotations for write tools (additive, not destructive).
func writeAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		DestructiveHint: boolPtr(false),
		OpenWorldHint:   boolPtr(false),
	}
}

// registerTools adds all devlog tools to the server.
func registerTools(server *mcp.Server, file *journal.File) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "log",
		Description: "Append a journal entry to DEVELOPMENT_LOG.md. Takes the structured entry record and formats it into the log's Markdown convention.",
		Annotations: writeAnnotations(),
	}, handleLog(file))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "show",
		Description: "Display a single journal entry by task ID, or the most recent entry with latest=true.",
		Annotations: readOnlyAnnotations(),
	}, handleShow(file))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "query",
		Description: "Search and retrieve journal entries with filters: last N, since/until time ranges, status, task prefix, and full-text search.",
		Annotations: readOnlyAnnotations(),
	}, handleQuery(file))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "status",
		Description: "Show repository and journal state: repo name, branch, HEAD, entry counts, and whether DEVELOPMENT_LOG.md exists.",
		Annotations: readOnlyAnnotations(),
	}, handleStatus(file))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "template",
		Description: "Return the journal entry format instructions for this project, so an agent can write entries that match the convention.",
		Annotations: readOnlyAnnotations(),
	}, handleTemplate())
}
