package service

import "tasknest/internal/model"

// Access rules for tasks. Reading is open to the owner and, for shared tasks,
// to anyone who looks the task up directly. Writing is owner-only; sharing
// never grants write access.

func canReadTask(task *model.Task, userID uint) bool {
	return task.UserID == userID || task.Shared
}

func canWriteTask(task *model.Task, userID uint) bool {
	return task.UserID == userID
}
