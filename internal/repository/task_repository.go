package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"tasknest/internal/model"
	"tasknest/internal/query"
)

// TaskRepository handles CRUD and paginated listing for tasks.
type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Create(ctx context.Context, task *model.Task) error {
	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	return nil
}

// FindByID loads a task with its category and owner resolved. It is not
// scoped to a user; visibility decisions belong to the service layer.
func (r *TaskRepository) FindByID(ctx context.Context, taskID uint) (*model.Task, error) {
	var task model.Task
	if err := r.db.WithContext(ctx).
		Preload("Category").Preload("User").
		First(&task, taskID).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// FindPage runs a filtered, sorted, paginated listing of userID's own tasks.
// The user scope is unconditional: filters can narrow the result but never
// widen it to tasks of other users, shared or not.
func (r *TaskRepository) FindPage(ctx context.Context, userID uint, p query.ListParams) (*query.Page, error) {
	var total int64
	if err := r.pageQuery(ctx, userID, p).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("count tasks: %w", err)
	}

	var tasks []model.Task
	if err := r.pageQuery(ctx, userID, p).
		Order(p.Order()).
		Offset(p.Offset()).
		Limit(p.Limit).
		Preload("Category").Preload("User").
		Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	return &query.Page{
		Items:      tasks,
		TotalCount: total,
		Page:       p.Page,
		Limit:      p.Limit,
		PageCount:  p.PageCount(total),
	}, nil
}

// pageQuery builds the WHERE clauses shared by the count and item queries.
func (r *TaskRepository) pageQuery(ctx context.Context, userID uint, p query.ListParams) *gorm.DB {
	tx := r.db.WithContext(ctx).Model(&model.Task{}).Where("tasks.user_id = ?", userID)
	if p.CategoryName != nil {
		// A name with no matching categories yields an empty IN set, which
		// matches nothing rather than erroring.
		sub := r.db.WithContext(ctx).Model(&model.Category{}).Select("id").
			Where("user_id = ? AND name = ?", userID, *p.CategoryName)
		tx = tx.Where("category_id IN (?)", sub)
	}
	if p.Shared != nil {
		tx = tx.Where("shared = ?", *p.Shared)
	}
	return tx
}

// Update applies the given column values to a task. Callers pass only the
// fields they mean to change; everything else keeps its stored value.
func (r *TaskRepository) Update(ctx context.Context, taskID uint, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).Model(&model.Task{}).Where("id = ?", taskID).
		Updates(fields).Error; err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	return nil
}

// Delete removes a task. Ownership must already be checked by the caller.
func (r *TaskRepository) Delete(ctx context.Context, taskID uint) error {
	if err := r.db.WithContext(ctx).Delete(&model.Task{}, taskID).Error; err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}

// CountByCategory reports how many tasks still reference a category.
func (r *TaskRepository) CountByCategory(ctx context.Context, categoryID uint) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("category_id = ?", categoryID).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count tasks in category: %w", err)
	}
	return n, nil
}
