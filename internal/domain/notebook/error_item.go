package notebook

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrorItem is a question the student got wrong, with the AI analysis
// attached. KnowledgePoints holds a JSON array of tag strings as text and may
// be null, empty or malformed in older rows.
type ErrorItem struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index:idx_error_item_user_created,priority:1;column:user_id" json:"user_id"`

	Subject      string `gorm:"column:subject;index" json:"subject"`
	QuestionText string `gorm:"column:question_text" json:"question_text"`
	AnswerText   string `gorm:"column:answer_text" json:"answer_text"`
	Analysis     string `gorm:"column:analysis" json:"analysis"`

	KnowledgePoints *string `gorm:"column:knowledge_points" json:"knowledge_points"`
	GradeSemester   *string `gorm:"column:grade_semester" json:"grade_semester,omitempty"`
	PaperLevel      *string `gorm:"column:paper_level" json:"paper_level,omitempty"`
	MasteryLevel    int     `gorm:"column:mastery_level;not null;default:0" json:"mastery_level"`

	CreatedAt time.Time      `gorm:"not null;autoCreateTime;index:idx_error_item_user_created,priority:2" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (ErrorItem) TableName() string { return "error_item" }

func (e *ErrorItem) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
