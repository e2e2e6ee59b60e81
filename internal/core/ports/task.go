package ports

import (
	"context"
	"time"

	"studyplanner/internal/core/domain"
)

type TaskRepository interface {
	CreateTask(ctx context.Context, task domain.Task, checklist domain.ChecklistRecord) error
	ListTasks(ctx context.Context, userID string) ([]domain.Task, error)
	GetTask(ctx context.Context, taskID string) (domain.Task, error)
	DeleteTask(ctx context.Context, taskID string) error
	GetChecklist(ctx context.Context, taskID string) (domain.ChecklistRecord, error)
	// SaveToggle persists the checklist items and the task's denormalized
	// progress in a single transaction.
	SaveToggle(ctx context.Context, checklist domain.ChecklistRecord, progress int) error
	ListDueSoon(ctx context.Context, now time.Time, horizon time.Duration) ([]domain.Task, error)
}

type TaskService interface {
	CreateTask(ctx context.Context, input domain.CreateTaskInput) (domain.Task, error)
	ListTasks(ctx context.Context, userID string) ([]domain.Task, error)
	GetTask(ctx context.Context, taskID string) (domain.Task, error)
	ToggleStep(ctx context.Context, taskID string, stepIndex int, done bool) (int, error)
	DeleteTask(ctx context.Context, taskID string) error
}

// PlanGenerator is the text-generation service boundary. Implementations
// send a natural-language instruction and return the raw text reply, which
// may wrap the requested JSON in prose or markdown fences.
type PlanGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
