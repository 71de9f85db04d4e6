package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"tasknest/internal/model"
	"tasknest/internal/repository"
)

// CategoryService provides helpers around categories.
type CategoryService struct {
	categoryRepo *repository.CategoryRepository
	taskRepo     *repository.TaskRepository
}

func NewCategoryService(categoryRepo *repository.CategoryRepository, taskRepo *repository.TaskRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo, taskRepo: taskRepo}
}

func (s *CategoryService) Create(ctx context.Context, userID uint, name string) (*model.Category, error) {
	category := model.Category{UserID: userID, Name: name}
	if err := s.categoryRepo.Create(ctx, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

func (s *CategoryService) List(ctx context.Context, userID uint) ([]model.Category, error) {
	return s.categoryRepo.ListByUser(ctx, userID)
}

// Delete removes an owned category. Like Create on the task side, a category
// belonging to another user is reported as missing. A category that still has
// tasks cannot be deleted, so no task is ever left pointing at nothing.
func (s *CategoryService) Delete(ctx context.Context, userID, categoryID uint) error {
	if _, err := s.categoryRepo.FindOwned(ctx, userID, categoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: category %d", ErrNotFound, categoryID)
		}
		return fmt.Errorf("find category: %w", err)
	}

	n, err := s.taskRepo.CountByCategory(ctx, categoryID)
	if err != nil {
		return err
	}
	if n > 0 {
		return fmt.Errorf("%w: category %d still has %d tasks", ErrConflict, categoryID, n)
	}

	return s.categoryRepo.Delete(ctx, categoryID)
}
