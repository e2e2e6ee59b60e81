package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"studyplanner/internal/core/ports"
)

// ReminderService builds human-readable deadline summaries for the daily
// notification job.
type ReminderService struct {
	taskRepository ports.TaskRepository
	horizon        time.Duration
}

func NewReminderService(taskRepository ports.TaskRepository, horizon time.Duration) *ReminderService {
	if horizon <= 0 {
		horizon = 72 * time.Hour
	}
	return &ReminderService{taskRepository: taskRepository, horizon: horizon}
}

// DueSoonSummary lists unfinished tasks whose deadline falls within the
// horizon, closest deadline first. Returns an empty string when there is
// nothing to report.
func (s *ReminderService) DueSoonSummary(ctx context.Context, now time.Time) (string, error) {
	tasks, err := s.taskRepository.ListDueSoon(ctx, now, s.horizon)
	if err != nil {
		return "", err
	}
	if len(tasks) == 0 {
		return "", nil
	}

	var builder strings.Builder
	builder.WriteString("Assignments due soon:\n")
	for _, task := range tasks {
		daysLeft := int(task.Deadline.Sub(now).Hours() / 24)
		var due string
		switch {
		case daysLeft <= 0:
			due = "due today"
		case daysLeft == 1:
			due = "due tomorrow"
		default:
			due = fmt.Sprintf("due in %d days", daysLeft)
		}
		builder.WriteString(fmt.Sprintf("• %s — %s (%d%% done, %s priority)\n",
			task.Title, due, task.Progress, task.Priority))
	}

	return builder.String(), nil
}
