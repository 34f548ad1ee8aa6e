package repository

import (
	"context"

	"github.com/yukikurage/taskbot-api/internal/database"
	"github.com/yukikurage/taskbot-api/internal/models"
	"github.com/yukikurage/taskbot-api/internal/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

func withPeople(db *gorm.DB) *gorm.DB {
	return db.Preload("Assignee").Preload("Creator")
}

// Create creates a new task. Associations are never written through the task.
func (r *GormTaskRepository) Create(ctx context.Context, task *models.Task) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(task).Error
}

// FindByID finds a task by ID
func (r *GormTaskRepository) FindByID(ctx context.Context, id uint64) (*models.Task, error) {
	var task models.Task
	if err := r.db.WithContext(ctx).Scopes(withPeople).First(&task, id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// List retrieves tasks with filtering and pagination
func (r *GormTaskRepository) List(ctx context.Context, filter TaskFilter) ([]models.Task, int64, error) {
	filtered := func() *gorm.DB {
		return r.db.WithContext(ctx).
			Model(&models.Task{}).
			Scopes(database.WithStatus(filter.Status), database.WithAssignee(filter.AssigneeID))
	}

	var total int64
	if err := filtered().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	tasks := []models.Task{}
	if total == 0 {
		return tasks, 0, nil
	}

	page := utils.NewPaginationParams(filter.Page, filter.PageSize)
	if err := filtered().
		Scopes(database.NewestFirst, database.Paginate(page), withPeople).
		Find(&tasks).Error; err != nil {
		return nil, 0, err
	}

	return tasks, total, nil
}

// ListAll retrieves every task in ID order
func (r *GormTaskRepository) ListAll(ctx context.Context) ([]models.Task, error) {
	tasks := []models.Task{}
	if err := r.db.WithContext(ctx).
		Scopes(withPeople).
		Order("id").
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// Update writes every column of an existing task. It never inserts; a task
// deleted since it was read yields gorm.ErrRecordNotFound.
func (r *GormTaskRepository) Update(ctx context.Context, task *models.Task) error {
	result := r.db.WithContext(ctx).
		Model(task).
		Select("*").
		Omit(clause.Associations).
		Updates(task)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete deletes a task, returning gorm.ErrRecordNotFound when nothing was removed
func (r *GormTaskRepository) Delete(ctx context.Context, id uint64) error {
	result := r.db.WithContext(ctx).Delete(&models.Task{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
