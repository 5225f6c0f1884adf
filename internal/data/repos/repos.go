package repos

import (
	"gorm.io/gorm"

	"github.com/wrongnotebook/notebook-backend/internal/data/repos/notebook"
	"github.com/wrongnotebook/notebook-backend/internal/platform/logger"
)

type ErrorItemRepo = notebook.ErrorItemRepo
type ErrorItemFilter = notebook.ErrorItemFilter

func NewErrorItemRepo(db *gorm.DB, baseLog *logger.Logger) ErrorItemRepo {
	return notebook.NewErrorItemRepo(db, baseLog)
}
