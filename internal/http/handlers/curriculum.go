package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/wrongnotebook/notebook-backend/internal/http/response"
	"github.com/wrongnotebook/notebook-backend/internal/knowledge"
	"github.com/wrongnotebook/notebook-backend/internal/services"
)

type CurriculumHandler struct {
	catalog    *knowledge.Catalog
	tagService services.TagService
	now        func() time.Time
}

func NewCurriculumHandler(catalog *knowledge.Catalog, tagService services.TagService) *CurriculumHandler {
	if catalog == nil {
		catalog = knowledge.Default()
	}
	return &CurriculumHandler{catalog: catalog, tagService: tagService, now: time.Now}
}

// GET /api/curriculum/math
func (h *CurriculumHandler) MathCurriculum(c *gin.Context) {
	response.RespondOK(c, h.catalog.MathCurriculum())
}

// GET /api/curriculum/math/tags?grade=7&semester=1 or ?chapter=...
func (h *CurriculumHandler) MathTags(c *gin.Context) {
	if chapter := strings.TrimSpace(c.Query("chapter")); chapter != "" {
		response.RespondOK(c, gin.H{"tags": h.catalog.MathTagsByChapter(chapter)})
		return
	}

	rawGrade := strings.TrimSpace(c.Query("grade"))
	if rawGrade == "" {
		response.RespondOK(c, gin.H{"tags": h.catalog.AllMathTags()})
		return
	}
	grade, err := strconv.Atoi(rawGrade)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_grade", "Invalid grade")
		return
	}
	semester := 0
	if rawSemester := strings.TrimSpace(c.Query("semester")); rawSemester != "" {
		semester, err = strconv.Atoi(rawSemester)
		if err != nil || (semester != 1 && semester != 2) {
			response.RespondError(c, http.StatusBadRequest, "invalid_semester", "Invalid semester")
			return
		}
	}
	response.RespondOK(c, gin.H{"tags": h.catalog.MathTagsByGrade(grade, semester)})
}

// GET /api/curriculum/math/tags/:name
func (h *CurriculumHandler) MathTagInfo(c *gin.Context) {
	info, ok := h.catalog.MathTagInfo(c.Param("name"))
	if !ok {
		response.RespondError(c, http.StatusNotFound, "not_found", "Tag not found")
		return
	}
	response.RespondOK(c, info)
}

// GET /api/curriculum/grade?stage=junior_high&enrollmentYear=2024
// Unresolvable input answers {"grade": null}.
func (h *CurriculumHandler) CurrentGrade(c *gin.Context) {
	year, ok := knowledge.ParseEnrollmentYear(c.Query("enrollmentYear"))
	if !ok {
		response.RespondOK(c, gin.H{"grade": nil})
		return
	}
	info, ok := h.tagService.CurrentGrade(strings.TrimSpace(c.Query("stage")), year, h.now())
	if !ok {
		response.RespondOK(c, gin.H{"grade": nil})
		return
	}
	response.RespondOK(c, info)
}
