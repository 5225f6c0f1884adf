package mcptools

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/wrongnotebook/notebook-backend/internal/knowledge"
)

// MathTagsByGradeTool handles the math_tags_by_grade MCP tool.
type MathTagsByGradeTool struct {
	catalog *knowledge.Catalog
}

func NewMathTagsByGradeTool(catalog *knowledge.Catalog) *MathTagsByGradeTool {
	return &MathTagsByGradeTool{catalog: catalog}
}

func (t *MathTagsByGradeTool) Definition() mcp.Tool {
	return mcp.NewTool("math_tags_by_grade",
		mcp.WithDescription("List the math knowledge points taught in a grade, optionally narrowed to one semester."),
		mcp.WithNumber("grade",
			mcp.Required(),
			mcp.Description("Grade 7-12"),
		),
		mcp.WithNumber("semester",
			mcp.Description("1 (autumn) or 2 (spring); omit for both"),
		),
	)
}

func (t *MathTagsByGradeTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	grade := intArg(req, "grade", 0)
	if grade <= 0 {
		return mcp.NewToolResultError("'grade' is required"), nil
	}
	semester := intArg(req, "semester", 0)
	tags := t.catalog.MathTagsByGrade(grade, semester)
	if len(tags) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("No math tags for %s.", knowledge.GradeLabel(grade, semester))), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("%s (%d):\n%s", knowledge.GradeLabel(grade, semester), len(tags), strings.Join(tags, "\n"))), nil
}

// CurrentGradeTool handles the current_grade MCP tool.
type CurrentGradeTool struct {
	catalog *knowledge.Catalog
	now     func() time.Time
}

func NewCurrentGradeTool(catalog *knowledge.Catalog) *CurrentGradeTool {
	return &CurrentGradeTool{catalog: catalog, now: time.Now}
}

func (t *CurrentGradeTool) Definition() mcp.Tool {
	return mcp.NewTool("current_grade",
		mcp.WithDescription("Compute a student's current grade and semester from school stage and enrollment year."),
		mcp.WithString("stage",
			mcp.Required(),
			mcp.Description("junior_high or senior_high"),
		),
		mcp.WithNumber("enrollment_year",
			mcp.Required(),
			mcp.Description("Year the student entered the stage, e.g. 2024"),
		),
	)
}

func (t *CurrentGradeTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	stage := req.GetString("stage", "")
	year := intArg(req, "enrollment_year", 0)
	now := t.now()

	grade, ok := knowledge.CalculateGrade(stage, year, now)
	if !ok {
		return mcp.NewToolResultText("No current grade: unknown stage, graduated, or not yet enrolled."), nil
	}
	semester := knowledge.CurrentSemester(now)
	tags := t.catalog.MathTagsByGrade(grade, semester)
	return mcp.NewToolResultText(fmt.Sprintf("Grade %d, semester %d (%s). %d math knowledge points this semester.",
		grade, semester, knowledge.GradeLabel(grade, semester), len(tags))), nil
}
