package mcptools

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/wrongnotebook/notebook-backend/internal/knowledge"
	"github.com/wrongnotebook/notebook-backend/internal/services"
)

// Version is set at build time via ldflags.
var Version = "dev"

// NewServer registers every catalog tool. customTags and tags may be nil;
// tags backs suggest_tags when item storage is available.
func NewServer(catalog *knowledge.Catalog, customTags services.CustomTagService, tags services.TagService) *server.MCPServer {
	if catalog == nil {
		catalog = knowledge.Default()
	}
	s := server.NewMCPServer(
		"wrongnotebook-tags",
		Version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions("Normalize knowledge-point tags against the curriculum catalog before saving them on an error item."),
	)

	normalize := NewNormalizeTool(catalog)
	s.AddTool(normalize.Definition(), normalize.Handle)

	infer := NewInferSubjectTool()
	s.AddTool(infer.Definition(), infer.Handle)

	suggest := NewSuggestTool(catalog, customTags, tags)
	s.AddTool(suggest.Definition(), suggest.Handle)

	byGrade := NewMathTagsByGradeTool(catalog)
	s.AddTool(byGrade.Definition(), byGrade.Handle)

	current := NewCurrentGradeTool(catalog)
	s.AddTool(current.Definition(), current.Handle)

	return s
}
