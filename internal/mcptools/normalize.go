package mcptools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/wrongnotebook/notebook-backend/internal/knowledge"
)

// NormalizeTool handles the normalize_tags MCP tool.
type NormalizeTool struct {
	catalog *knowledge.Catalog
}

func NewNormalizeTool(catalog *knowledge.Catalog) *NormalizeTool {
	return &NormalizeTool{catalog: catalog}
}

func (t *NormalizeTool) Definition() mcp.Tool {
	return mcp.NewTool("normalize_tags",
		mcp.WithDescription(
			"Map free-form knowledge-point tags to canonical curriculum names. Unknown tags are kept as-is; duplicates after mapping are dropped.",
		),
		mcp.WithString("tags",
			mcp.Required(),
			mcp.Description("Comma-separated tags to normalize, e.g. 移项,SAS"),
		),
	)
}

func (t *NormalizeTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tags := listArg(req, "tags")
	if len(tags) == 0 {
		return mcp.NewToolResultError("'tags' is required"), nil
	}

	normalized := t.catalog.NormalizeTags(tags)
	var b strings.Builder
	fmt.Fprintf(&b, "Normalized %d tag(s):\n\n", len(normalized))
	for _, in := range tags {
		out := t.catalog.NormalizeTag(in)
		marker := ""
		if !t.catalog.IsStandardTag(in) {
			marker = " (not in catalog)"
		}
		fmt.Fprintf(&b, "- %s -> %s%s\n", in, out, marker)
	}
	b.WriteString("\nResult: ")
	b.WriteString(strings.Join(normalized, ", "))
	return mcp.NewToolResultText(b.String()), nil
}

// InferSubjectTool handles the infer_subject MCP tool.
type InferSubjectTool struct{}

func NewInferSubjectTool() *InferSubjectTool {
	return &InferSubjectTool{}
}

func (t *InferSubjectTool) Definition() mcp.Tool {
	return mcp.NewTool("infer_subject",
		mcp.WithDescription("Infer the subject code (math, english, physics, chemistry) from a subject display name such as 数学 or 高中物理."),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Subject display name"),
		),
	)
}

func (t *InferSubjectTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := req.GetString("name", "")
	if strings.TrimSpace(name) == "" {
		return mcp.NewToolResultError("'name' is required"), nil
	}
	subject, ok := knowledge.InferSubject(name)
	if !ok {
		return mcp.NewToolResultText(fmt.Sprintf("No subject matches %q.", name)), nil
	}
	return mcp.NewToolResultText(string(subject)), nil
}
