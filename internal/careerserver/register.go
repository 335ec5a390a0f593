// Package careerserver registers the go_career MCP tools: profile
// ingestion, alignment, recommendation, registration, and the scheduled
// interaction cycle.
package careerserver

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// RegisterTools registers all career tools on the given MCP server.
func RegisterTools(server *mcp.Server) {
	registerProfileFetch(server)
	registerProfileAlign(server)
	registerCareerRecommend(server)
	registerUserRegister(server)
	registerProfileGet(server)
	registerBlogIngest(server)
	registerRunCycle(server)
}
