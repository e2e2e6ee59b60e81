package mapper

import (
	"time"

	"studyplanner/internal/adapter/http/dto"
	"studyplanner/internal/core/domain"
)

func ToTaskItems(tasks []domain.Task) []dto.TaskItem {
	items := make([]dto.TaskItem, 0, len(tasks))
	for _, task := range tasks {
		items = append(items, ToTaskItem(task))
	}
	return items
}

func ToTaskItem(task domain.Task) dto.TaskItem {
	item := dto.TaskItem{
		ID:          task.ID,
		UserID:      task.UserID,
		Title:       task.Title,
		Description: task.Description,
		Deadline:    task.Deadline.Format("2006-01-02"),
		Priority:    string(task.Priority),
		Progress:    task.Progress,
		Plan:        toPlanItem(task.Plan),
		Checklist:   toChecklistItems(task.ResolvedItems),
		CreatedAt:   task.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   task.UpdatedAt.Format(time.RFC3339),
	}
	return item
}

func toPlanItem(plan domain.Plan) dto.PlanItem {
	steps := make([]dto.PlanStepItem, 0, len(plan.Steps))
	for _, step := range plan.Steps {
		steps = append(steps, dto.PlanStepItem{
			Title:       step.Title,
			Description: step.Description,
			Duration:    step.Duration,
			Minutes:     step.Minutes,
		})
	}

	daily := make([]dto.DailyPlanItem, 0, len(plan.DailyPlans))
	for _, day := range plan.DailyPlans {
		daily = append(daily, dto.DailyPlanItem{
			Day:      day.Day,
			Date:     day.Date,
			Title:    day.Title,
			Focus:    day.Focus,
			Duration: day.Duration,
			Tasks:    day.Tasks,
		})
	}

	return dto.PlanItem{
		Difficulty:     plan.Difficulty,
		EstimatedHours: plan.EstimatedHours,
		Steps:          steps,
		DailyPlans:     daily,
		Checklist:      plan.Checklist,
	}
}

func toChecklistItems(items []domain.ChecklistItem) []dto.ChecklistItem {
	out := make([]dto.ChecklistItem, 0, len(items))
	for _, item := range items {
		out = append(out, dto.ChecklistItem{
			Step:    item.Step,
			Minutes: item.Minutes,
			Done:    item.Done,
		})
	}
	return out
}
