package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/wrongnotebook/notebook-backend/internal/http/response"
	"github.com/wrongnotebook/notebook-backend/internal/platform/ctxutil"
	"github.com/wrongnotebook/notebook-backend/internal/services"
)

type ErrorItemHandler struct {
	tagService services.TagService
}

func NewErrorItemHandler(tagService services.TagService) *ErrorItemHandler {
	return &ErrorItemHandler{tagService: tagService}
}

// PUT /api/error-items/:id/knowledge-points
// body: { "knowledgePoints": ["移项", ...] }
func (h *ErrorItemHandler) UpdateKnowledgePoints(c *gin.Context) {
	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", "Invalid item id")
		return
	}
	var req struct {
		KnowledgePoints []string `json:"knowledgePoints"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", msgInvalidBody)
		return
	}

	ctx := c.Request.Context()
	tags, err := h.tagService.UpdateItemKnowledgePoints(ctx, ctxutil.UserID(ctx), itemID, req.KnowledgePoints)
	if err != nil {
		response.RespondErr(c, err, "Failed to update knowledge points")
		return
	}
	response.RespondOK(c, gin.H{
		"id":              itemID,
		"knowledgePoints": tags,
	})
}
