package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wrongnotebook/notebook-backend/internal/http/response"
	"github.com/wrongnotebook/notebook-backend/internal/knowledge"
	"github.com/wrongnotebook/notebook-backend/internal/platform/ctxutil"
	"github.com/wrongnotebook/notebook-backend/internal/services"
)

const (
	msgCustomTagsReadFailed  = "Failed to get custom tags"
	msgCustomTagsWriteFailed = "Failed to update custom tags"

	maxImportBytes = 1 << 20
)

type CustomTagHandler struct {
	svc services.CustomTagService
}

func NewCustomTagHandler(svc services.CustomTagService) *CustomTagHandler {
	return &CustomTagHandler{svc: svc}
}

// subjectParam keeps unknown codes as-is so the store rejects them with false.
func subjectParam(raw string) knowledge.Subject {
	if s, ok := knowledge.ParseSubject(raw); ok {
		return s
	}
	return knowledge.Subject(raw)
}

// GET /api/custom-tags
func (h *CustomTagHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	data, err := h.svc.Get(ctx, ctxutil.UserID(ctx))
	if err != nil {
		response.RespondErr(c, err, msgCustomTagsReadFailed)
		return
	}
	response.RespondOK(c, data)
}

// POST /api/custom-tags
// body: { "subject": "math", "name": "三角函数", "category": "函数" }
func (h *CustomTagHandler) Add(c *gin.Context) {
	var req struct {
		Subject  string `json:"subject"`
		Name     string `json:"name"`
		Category string `json:"category"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", msgInvalidBody)
		return
	}
	ctx := c.Request.Context()
	added, err := h.svc.Add(ctx, ctxutil.UserID(ctx), subjectParam(req.Subject), req.Name, req.Category)
	if err != nil {
		response.RespondErr(c, err, msgCustomTagsWriteFailed)
		return
	}
	response.RespondOK(c, gin.H{"added": added})
}

// DELETE /api/custom-tags/:subject/:name
func (h *CustomTagHandler) Remove(c *gin.Context) {
	ctx := c.Request.Context()
	removed, err := h.svc.Remove(ctx, ctxutil.UserID(ctx), subjectParam(c.Param("subject")), c.Param("name"))
	if err != nil {
		response.RespondErr(c, err, msgCustomTagsWriteFailed)
		return
	}
	response.RespondOK(c, gin.H{"removed": removed})
}

// DELETE /api/custom-tags
func (h *CustomTagHandler) Clear(c *gin.Context) {
	ctx := c.Request.Context()
	if err := h.svc.Clear(ctx, ctxutil.UserID(ctx)); err != nil {
		response.RespondErr(c, err, msgCustomTagsWriteFailed)
		return
	}
	response.RespondOK(c, gin.H{"cleared": true})
}

// GET /api/custom-tags/export
func (h *CustomTagHandler) Export(c *gin.Context) {
	ctx := c.Request.Context()
	text, err := h.svc.Export(ctx, ctxutil.UserID(ctx))
	if err != nil {
		response.RespondErr(c, err, msgCustomTagsReadFailed)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="custom-tags.json"`)
	c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(text))
}

// POST /api/custom-tags/import
// body: the exported JSON document, legacy string lists accepted.
func (h *CustomTagHandler) Import(c *gin.Context) {
	raw, err := io.ReadAll(io.LimitReader(c.Request.Body, maxImportBytes))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", msgInvalidBody)
		return
	}
	ctx := c.Request.Context()
	imported, err := h.svc.Import(ctx, ctxutil.UserID(ctx), string(raw))
	if err != nil {
		response.RespondErr(c, err, msgCustomTagsWriteFailed)
		return
	}
	response.RespondOK(c, gin.H{"imported": imported})
}

// GET /api/custom-tags/stats
func (h *CustomTagHandler) Stats(c *gin.Context) {
	ctx := c.Request.Context()
	st, err := h.svc.Stats(ctx, ctxutil.UserID(ctx))
	if err != nil {
		response.RespondErr(c, err, msgCustomTagsReadFailed)
		return
	}
	response.RespondOK(c, st)
}
