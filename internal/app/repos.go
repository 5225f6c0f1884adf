package app

import (
	"gorm.io/gorm"

	"github.com/wrongnotebook/notebook-backend/internal/data/repos"
	"github.com/wrongnotebook/notebook-backend/internal/platform/logger"
)

type Repos struct {
	ErrorItem repos.ErrorItemRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		ErrorItem: repos.NewErrorItemRepo(db, log),
	}
}
