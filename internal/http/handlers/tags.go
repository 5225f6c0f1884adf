package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/wrongnotebook/notebook-backend/internal/http/response"
	"github.com/wrongnotebook/notebook-backend/internal/platform/ctxutil"
	"github.com/wrongnotebook/notebook-backend/internal/services"
)

const (
	msgStatsFailed       = "Failed to get tag statistics"
	msgSuggestionsFailed = "Failed to get tag suggestions"
	msgInvalidBody       = "Invalid request body"
)

type TagHandler struct {
	tagService services.TagService
}

func NewTagHandler(tagService services.TagService) *TagHandler {
	return &TagHandler{tagService: tagService}
}

// GET /api/tags/stats
func (h *TagHandler) Stats(c *gin.Context) {
	ctx := c.Request.Context()
	res, err := h.tagService.Stats(ctx, ctxutil.UserID(ctx))
	if err != nil {
		response.RespondErr(c, err, msgStatsFailed)
		return
	}
	response.RespondOK(c, res)
}

// GET /api/tags/suggestions?q=...&exclude=a,b
func (h *TagHandler) Suggestions(c *gin.Context) {
	ctx := c.Request.Context()
	query := c.Query("q")
	existing := splitList(c.QueryArray("exclude"))

	suggestions, err := h.tagService.Suggestions(ctx, ctxutil.UserID(ctx), query, existing)
	if err != nil {
		response.RespondErr(c, err, msgSuggestionsFailed)
		return
	}
	response.RespondOK(c, gin.H{
		"suggestions": suggestions,
		"total":       len(suggestions),
	})
}

// POST /api/tags/normalize
// body: { "subject": "数学", "tags": ["移项", ...] }
func (h *TagHandler) Normalize(c *gin.Context) {
	var req struct {
		Subject string   `json:"subject"`
		Tags    []string `json:"tags"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", msgInvalidBody)
		return
	}
	response.RespondOK(c, h.tagService.NormalizeAnalysis(req.Subject, req.Tags))
}

// splitList accepts both repeated parameters and comma-separated values.
func splitList(values []string) []string {
	out := []string{}
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}
