package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"tasknest/internal/model"
	"tasknest/internal/query"
	"tasknest/internal/repository"
)

// TaskInput represents data required to create a task. Body carries the raw
// JSON payload; its shape is checked against Type here, not in the transport.
type TaskInput struct {
	Title      string
	Type       string
	Body       json.RawMessage
	CategoryID uint
	Shared     bool
}

// TaskPatch describes a partial update. Nil fields keep their stored values;
// Shared uses a pointer so an explicit false is distinguishable from absence.
type TaskPatch struct {
	Title      *string
	Type       *string
	Body       json.RawMessage
	CategoryID *uint
	Shared     *bool
}

// TaskService wraps task-related business logic.
type TaskService struct {
	taskRepo     *repository.TaskRepository
	categoryRepo *repository.CategoryRepository
}

func NewTaskService(taskRepo *repository.TaskRepository, categoryRepo *repository.CategoryRepository) *TaskService {
	return &TaskService{taskRepo: taskRepo, categoryRepo: categoryRepo}
}

// List returns a page of the caller's own tasks. Shared tasks of other users
// are reachable through Get only, never through a listing.
func (s *TaskService) List(ctx context.Context, userID uint, p query.ListParams) (*query.Page, error) {
	return s.taskRepo.FindPage(ctx, userID, p)
}

// Create stores a new task owned by userID. The caller's identity always wins
// over anything the input may claim about ownership. The target category must
// exist and belong to the caller; a category owned by someone else is reported
// as missing so the API never confirms it exists.
func (s *TaskService) Create(ctx context.Context, userID uint, input TaskInput) (*model.Task, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	body, err := decodeAndEncodeBody(input.Type, input.Body)
	if err != nil {
		return nil, err
	}

	if _, err := s.categoryRepo.FindOwned(ctx, userID, input.CategoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: category %d", ErrNotFound, input.CategoryID)
		}
		return nil, fmt.Errorf("check category: %w", err)
	}

	task := model.Task{
		UserID:     userID,
		CategoryID: input.CategoryID,
		Title:      input.Title,
		Type:       input.Type,
		Body:       body,
		Shared:     input.Shared,
	}
	if err := s.taskRepo.Create(ctx, &task); err != nil {
		return nil, err
	}

	return s.taskRepo.FindByID(ctx, task.ID)
}

// Get returns a single task. Existence is checked first, then visibility:
// a task that exists but is neither owned by the caller nor shared yields
// ErrForbidden, not ErrNotFound.
func (s *TaskService) Get(ctx context.Context, userID, taskID uint) (*model.Task, error) {
	task, err := s.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: task %d", ErrNotFound, taskID)
		}
		return nil, fmt.Errorf("find task: %w", err)
	}
	if !canReadTask(task, userID) {
		return nil, ErrForbidden
	}
	return task, nil
}

// Update applies a partial patch to an owned task. Fields absent from the
// patch keep their previous values. Sharing a task with the caller does not
// allow the caller to update it.
func (s *TaskService) Update(ctx context.Context, userID, taskID uint, patch TaskPatch) (*model.Task, error) {
	task, err := s.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: task %d", ErrNotFound, taskID)
		}
		return nil, fmt.Errorf("find task: %w", err)
	}
	if !canWriteTask(task, userID) {
		return nil, ErrForbidden
	}

	fields := map[string]interface{}{}

	if patch.Title != nil {
		if strings.TrimSpace(*patch.Title) == "" {
			return nil, fmt.Errorf("%w: title cannot be empty", ErrInvalidInput)
		}
		fields["title"] = *patch.Title
	}

	taskType := task.Type
	if patch.Type != nil {
		if !model.ValidType(*patch.Type) {
			return nil, fmt.Errorf("%w: unknown task type %q", ErrInvalidInput, *patch.Type)
		}
		taskType = *patch.Type
		// A type change re-shapes the body. Without a new body in the same
		// patch the stored one would stop decoding under the new type and
		// every later read of the task would fail.
		if taskType != task.Type && patch.Body == nil {
			return nil, fmt.Errorf("%w: changing type requires a body", ErrInvalidInput)
		}
		fields["type"] = taskType
	}
	if patch.Body != nil {
		body, err := decodeAndEncodeBody(taskType, patch.Body)
		if err != nil {
			return nil, err
		}
		fields["body"] = body
	}

	if patch.CategoryID != nil {
		fields["category_id"] = *patch.CategoryID
	}
	if patch.Shared != nil {
		fields["shared"] = *patch.Shared
	}

	if err := s.taskRepo.Update(ctx, taskID, fields); err != nil {
		return nil, err
	}
	return s.taskRepo.FindByID(ctx, taskID)
}

// Delete removes an owned task. No soft delete, nothing cascades.
func (s *TaskService) Delete(ctx context.Context, userID, taskID uint) error {
	task, err := s.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: task %d", ErrNotFound, taskID)
		}
		return fmt.Errorf("find task: %w", err)
	}
	if !canWriteTask(task, userID) {
		return ErrForbidden
	}
	return s.taskRepo.Delete(ctx, taskID)
}

// decodeAndEncodeBody checks that raw matches the shape the task type calls
// for and returns the storage encoding.
func decodeAndEncodeBody(taskType string, raw json.RawMessage) (string, error) {
	if !model.ValidType(taskType) {
		return "", fmt.Errorf("%w: unknown task type %q", ErrInvalidInput, taskType)
	}
	if len(raw) == 0 {
		return "", fmt.Errorf("%w: body is required", ErrInvalidInput)
	}

	var body model.Body
	switch taskType {
	case model.TypeText:
		if err := json.Unmarshal(raw, &body.Text); err != nil {
			return "", fmt.Errorf("%w: body of a %s task must be a string", ErrInvalidInput, taskType)
		}
	case model.TypeList:
		if err := json.Unmarshal(raw, &body.List); err != nil {
			return "", fmt.Errorf("%w: body of a %s task must be an array of strings", ErrInvalidInput, taskType)
		}
	}

	encoded, err := model.EncodeBody(taskType, body)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return encoded, nil
}
