package mcptools

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/wrongnotebook/notebook-backend/internal/knowledge"
	"github.com/wrongnotebook/notebook-backend/internal/services"
	"github.com/wrongnotebook/notebook-backend/internal/tagstats"
)

// SuggestTool handles the suggest_tags MCP tool. With a TagService, a user's
// suggestions come from the full pool: catalog, tags on their items, then
// custom tags. Without one, only the catalog and customTags are searched.
// Both may be nil.
type SuggestTool struct {
	catalog    *knowledge.Catalog
	customTags services.CustomTagService
	tags       services.TagService
}

func NewSuggestTool(catalog *knowledge.Catalog, customTags services.CustomTagService, tags services.TagService) *SuggestTool {
	return &SuggestTool{catalog: catalog, customTags: customTags, tags: tags}
}

func (t *SuggestTool) Definition() mcp.Tool {
	return mcp.NewTool("suggest_tags",
		mcp.WithDescription(
			fmt.Sprintf("Suggest up to %d tags containing the query (case-insensitive). Catalog tags come first, then tags on the user's items and their custom tags.", tagstats.MaxSuggestions),
		),
		mcp.WithString("query",
			mcp.Description("Substring to match; empty lists everything up to the cap"),
		),
		mcp.WithString("exclude",
			mcp.Description("Comma-separated tags already applied"),
		),
		mcp.WithString("user_id",
			mcp.Description("Include this user's item and custom tags"),
		),
	)
}

func (t *SuggestTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query := req.GetString("query", "")
	exclude := listArg(req, "exclude")

	var out []string
	raw := strings.TrimSpace(req.GetString("user_id", ""))
	switch {
	case raw == "":
		out = tagstats.Suggest(query, exclude, t.catalog.AllStandardTags())
	default:
		userID, err := uuid.Parse(raw)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid user_id: %v", err)), nil
		}
		if t.tags != nil {
			out, err = t.tags.Suggestions(ctx, userID, query, exclude)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("failed to get tag suggestions: %v", err)), nil
			}
			break
		}
		var custom []string
		if t.customTags != nil {
			custom, err = t.customTags.AllFlat(ctx, userID)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("failed to load custom tags: %v", err)), nil
			}
		}
		out = tagstats.Suggest(query, exclude, t.catalog.AllStandardTags(), custom)
	}

	if len(out) == 0 {
		return mcp.NewToolResultText("No tags match."), nil
	}
	return mcp.NewToolResultText(strings.Join(out, "\n")), nil
}
