package database

import (
	"gorm.io/gorm"

	"github.com/yukikurage/taskbot-api/internal/models"
	"github.com/yukikurage/taskbot-api/internal/utils"
)

// Paginate applies pagination to a GORM query
func Paginate(params utils.PaginationParams) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(params.Offset).Limit(params.PageSize)
	}
}

// WithStatus narrows a task query to one status; nil leaves it unfiltered.
func WithStatus(status *models.TaskStatus) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if status == nil {
			return db
		}
		return db.Where("status = ?", *status)
	}
}

// WithAssignee narrows a task query to one assignee; nil leaves it unfiltered.
func WithAssignee(assigneeID *uint64) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if assigneeID == nil {
			return db
		}
		return db.Where("assignee_id = ?", *assigneeID)
	}
}

// NewestFirst orders tasks by creation time, most recent first.
func NewestFirst(db *gorm.DB) *gorm.DB {
	return db.Order("created_at DESC").Order("id DESC")
}
