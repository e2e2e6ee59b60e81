package planner

import (
	"fmt"
	"time"

	"studyplanner/internal/core/domain"
)

const maxFallbackDays = 7

var fallbackSteps = []domain.PlanStep{
	{Title: "Step 1: Analyze requirements & research", Duration: "1-2h", Minutes: 90, Description: "Pin down exactly what the assignment asks for and gather material."},
	{Title: "Step 2: Outline & structure", Duration: "1h", Minutes: 60, Description: "Design the overall structure and write an outline."},
	{Title: "Step 3: Write the core content", Duration: "3-4h", Minutes: 210, Description: "Write out the main body of the assignment."},
	{Title: "Step 4: Fill in details", Duration: "2h", Minutes: 120, Description: "Flesh out weak sections and refine the content."},
	{Title: "Step 5: Review & revise", Duration: "1-2h", Minutes: 90, Description: "Read through everything and revise what falls short."},
	{Title: "Step 6: Final check & submit", Duration: "30m", Minutes: 30, Description: "Do a final pass and submit."},
}

var fallbackChecklist = []string{
	"All requirements are covered",
	"References and sources are cited correctly",
	"Checked for typos and grammar mistakes",
	"Submission format and file name are correct",
	"Submission deadline and method double-checked",
}

// fallbackPlan synthesizes a deterministic plan when no generation service is
// configured or its output is unusable. Same (now, deadline) always yields the
// same day structure.
func fallbackPlan(now, deadline time.Time) domain.Plan {
	daysUntil := domain.DaysUntil(now, deadline)

	steps := make([]domain.PlanStep, len(fallbackSteps))
	copy(steps, fallbackSteps)

	return domain.Plan{
		Difficulty:     difficultyFor(daysUntil),
		EstimatedHours: max(float64(daysUntil)*1.5, 4),
		Steps:          steps,
		DailyPlans:     fallbackDailyPlans(now, daysUntil),
		Checklist:      append([]string(nil), fallbackChecklist...),
	}
}

// fallbackDailyPlans builds one entry per day, capped at a week: a
// research/planning day first, a review/submission day last, and generic
// core-work days in between.
func fallbackDailyPlans(now time.Time, daysUntil int) []domain.DailyPlan {
	days := daysUntil
	if days > maxFallbackDays {
		days = maxFallbackDays
	}
	if days < 1 {
		days = 1
	}

	plans := make([]domain.DailyPlan, 0, days)
	for i := 0; i < days; i++ {
		entry := domain.DailyPlan{
			Day:      i + 1,
			Date:     now.AddDate(0, 0, i).Format("2006-01-02"),
			Duration: "2h",
		}

		switch {
		case i == 0:
			entry.Title = "Research & planning"
			entry.Focus = "Understand the requirements and map out the work"
			entry.Duration = "1.5h"
			entry.Tasks = []string{
				"Read the assignment requirements closely",
				"Collect sources and reference material",
				"Lay out the overall schedule",
			}
		case i == days-1:
			entry.Title = "Final review & submission"
			entry.Focus = "Polish the result and prepare for submission"
			entry.Duration = "1.5h"
			entry.Tasks = []string{
				"Review the full draft end to end",
				"Fix typos and formatting issues",
				"Run the submission checklist and submit",
			}
		default:
			entry.Title = fmt.Sprintf("Core work (day %d)", i+1)
			entry.Focus = "Write and push the main content forward"
			entry.Tasks = []string{
				fmt.Sprintf("Finish the day %d target work", i+1),
				"Tidy up and back up what was written",
				"Check progress and plan the next day",
			}
		}

		plans = append(plans, entry)
	}

	return plans
}

func difficultyFor(daysUntil int) string {
	switch {
	case daysUntil <= 3:
		return "hard"
	case daysUntil <= 7:
		return "normal"
	default:
		return "easy"
	}
}
