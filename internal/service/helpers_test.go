package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"tasknest/internal/auth"
	"tasknest/internal/model"
	"tasknest/internal/repository"
)

// fixture wires the full service stack over a throwaway SQLite database.
type fixture struct {
	tasks      *TaskService
	categories *CategoryService
	auth       *AuthService

	taskRepo     *repository.TaskRepository
	categoryRepo *repository.CategoryRepository
	userRepo     *repository.UserRepository
	sessionRepo  *repository.SessionRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := repository.NewDB(filepath.Join(t.TempDir(), "tasknest.db"))
	require.NoError(t, err)

	f := &fixture{
		taskRepo:     repository.NewTaskRepository(db),
		categoryRepo: repository.NewCategoryRepository(db),
		userRepo:     repository.NewUserRepository(db),
		sessionRepo:  repository.NewSessionRepository(db),
	}
	f.tasks = NewTaskService(f.taskRepo, f.categoryRepo)
	f.categories = NewCategoryService(f.categoryRepo, f.taskRepo)
	f.auth = NewAuthService(f.userRepo, f.sessionRepo, auth.New("test-secret", time.Hour))
	return f
}

func (f *fixture) user(t *testing.T, name string) *model.User {
	t.Helper()
	u := &model.User{Username: name, PasswordHash: "x"}
	require.NoError(t, f.userRepo.Create(context.Background(), u))
	return u
}

func (f *fixture) category(t *testing.T, userID uint, name string) *model.Category {
	t.Helper()
	c, err := f.categories.Create(context.Background(), userID, name)
	require.NoError(t, err)
	return c
}

func (f *fixture) textTask(t *testing.T, userID, categoryID uint, title string, shared bool) *model.Task {
	t.Helper()
	task, err := f.tasks.Create(context.Background(), userID, TaskInput{
		Title:      title,
		Type:       model.TypeText,
		Body:       []byte(`"body of ` + title + `"`),
		CategoryID: categoryID,
		Shared:     shared,
	})
	require.NoError(t, err)
	return task
}
