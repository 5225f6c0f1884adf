package domain

import "github.com/wrongnotebook/notebook-backend/internal/domain/notebook"

type ErrorItem = notebook.ErrorItem
