package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"studyplanner/internal/app/planner"
	"studyplanner/internal/core/domain"
	"studyplanner/internal/core/ports"
	"studyplanner/internal/metrics"
)

type TaskService struct {
	taskRepository ports.TaskRepository
	deriver        *planner.Deriver
	now            func() time.Time
	newID          func() string
}

func NewTaskService(taskRepository ports.TaskRepository, deriver *planner.Deriver) *TaskService {
	return &TaskService{
		taskRepository: taskRepository,
		deriver:        deriver,
		now:            time.Now,
		newID:          uuid.NewString,
	}
}

// NewTaskServiceWithClock is used by tests that need fixed time and ids.
func NewTaskServiceWithClock(taskRepository ports.TaskRepository, deriver *planner.Deriver, now func() time.Time, newID func() string) *TaskService {
	return &TaskService{taskRepository: taskRepository, deriver: deriver, now: now, newID: newID}
}

// CreateTask derives a plan and persists the task together with its
// checklist record. Derivation never fails; a broken generation service
// degrades to the deterministic fallback inside the deriver.
func (s *TaskService) CreateTask(ctx context.Context, input domain.CreateTaskInput) (domain.Task, error) {
	plan := s.deriver.Derive(ctx, input.Title, input.Description, input.Deadline)
	now := s.now()

	task := domain.Task{
		ID:          s.newID(),
		UserID:      input.UserID,
		Title:       input.Title,
		Description: input.Description,
		Deadline:    input.Deadline,
		Priority:    domain.PriorityForDeadline(now, input.Deadline),
		Progress:    0,
		Plan:        plan,
		Checklist:   plan.StepTitles(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	checklist := domain.NewChecklistRecord(s.newID(), task.ID, plan.Steps)

	if err := s.taskRepository.CreateTask(ctx, task, checklist); err != nil {
		return domain.Task{}, err
	}

	return task, nil
}

func (s *TaskService) ListTasks(ctx context.Context, userID string) ([]domain.Task, error) {
	return s.taskRepository.ListTasks(ctx, userID)
}

func (s *TaskService) GetTask(ctx context.Context, taskID string) (domain.Task, error) {
	return s.taskRepository.GetTask(ctx, taskID)
}

// ToggleStep flips one checklist item and persists the record together with
// the task's denormalized progress. The checklist record is the source of
// truth; the task row is only updated with the recomputed percentage.
func (s *TaskService) ToggleStep(ctx context.Context, taskID string, stepIndex int, done bool) (int, error) {
	checklist, err := s.taskRepository.GetChecklist(ctx, taskID)
	if err != nil {
		return 0, err
	}

	progress, err := checklist.ToggleStep(stepIndex, done)
	if err != nil {
		return 0, err
	}

	if err := s.taskRepository.SaveToggle(ctx, checklist, progress); err != nil {
		return 0, err
	}

	metrics.StepTogglesTotal.Inc()
	return progress, nil
}

func (s *TaskService) DeleteTask(ctx context.Context, taskID string) error {
	return s.taskRepository.DeleteTask(ctx, taskID)
}

var _ ports.TaskService = (*TaskService)(nil)
