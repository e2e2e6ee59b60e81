package planner

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"studyplanner/internal/core/domain"
	"studyplanner/internal/core/ports"
	"studyplanner/internal/metrics"
)

const (
	minServiceSteps = 1
	maxServiceSteps = 6
)

// Deriver turns (title, description, deadline) into a study plan. The
// generation service is the primary path; any failure there degrades to the
// deterministic fallback, so Derive never fails outward.
type Deriver struct {
	generator ports.PlanGenerator
	now       func() time.Time
}

// NewDeriver builds a deriver. A nil generator means fallback-only mode.
func NewDeriver(generator ports.PlanGenerator) *Deriver {
	return &Deriver{generator: generator, now: time.Now}
}

// NewDeriverWithClock is used by tests that need a fixed current time.
func NewDeriverWithClock(generator ports.PlanGenerator, now func() time.Time) *Deriver {
	return &Deriver{generator: generator, now: now}
}

func (d *Deriver) Derive(ctx context.Context, title, description string, deadline time.Time) domain.Plan {
	now := d.now()

	if d.generator != nil {
		plan, err := d.deriveFromService(ctx, title, description, now, deadline)
		if err == nil {
			metrics.DerivationsTotal.WithLabelValues(metrics.DerivationService).Inc()
			return plan
		}
		zap.L().Warn("plan generation service failed, using fallback plan",
			zap.String("title", title), zap.Error(err))
	}

	metrics.DerivationsTotal.WithLabelValues(metrics.DerivationFallback).Inc()
	return fallbackPlan(now, deadline)
}

func (d *Deriver) deriveFromService(ctx context.Context, title, description string, now, deadline time.Time) (domain.Plan, error) {
	prompt := buildPrompt(title, description, domain.DaysUntil(now, deadline))

	text, err := d.generator.Generate(ctx, prompt)
	if err != nil {
		return domain.Plan{}, fmt.Errorf("generate: %w", err)
	}

	raw, err := decodeResponse(text)
	if err != nil {
		return domain.Plan{}, fmt.Errorf("decode response: %w", err)
	}

	plan, err := repairPlan(raw, now, deadline)
	if err != nil {
		return domain.Plan{}, fmt.Errorf("repair plan: %w", err)
	}
	return plan, nil
}

func buildPrompt(title, description string, daysUntil int) string {
	var b strings.Builder
	b.WriteString("You are an assistant that returns a JSON study plan for a student assignment.\n")
	b.WriteString("Input:\n")
	fmt.Fprintf(&b, "title: %s\n", title)
	fmt.Fprintf(&b, "description: %s\n", description)
	fmt.Fprintf(&b, "days: %d\n\n", daysUntil)
	b.WriteString("Return JSON exactly in this format:\n")
	b.WriteString(`{"estimatedHours":12,"steps":[{"title":"step name","description":"what to do","duration":"1h","minutes":60}],"dailyPlans":[{"day":1,"date":"2006-01-02","title":"day title","focus":"goal","duration":"2h","tasks":["task"]}],"checklist":["item"]}`)
	b.WriteString("\nMake 3-6 steps and estimate minutes per step. Output only the JSON object, no commentary.\n")
	return b.String()
}

// rawPlan mirrors the loose shapes the generation service produces. Older
// prompt variants used step/name and minutes/time and a totalMinutes sum, so
// all aliases are accepted and normalized in repairPlan.
type rawPlan struct {
	Difficulty     string     `json:"difficulty"`
	EstimatedHours float64    `json:"estimatedHours"`
	TotalMinutes   float64    `json:"totalMinutes"`
	Steps          []rawStep  `json:"steps"`
	DailyPlans     []rawDaily `json:"dailyPlans"`
	Checklist      []string   `json:"checklist"`
}

type rawStep struct {
	Step        string  `json:"step"`
	Name        string  `json:"name"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Duration    string  `json:"duration"`
	Minutes     float64 `json:"minutes"`
	Time        float64 `json:"time"`
}

type rawDaily struct {
	Day      int      `json:"day"`
	Date     string   `json:"date"`
	Title    string   `json:"title"`
	Focus    string   `json:"focus"`
	Duration string   `json:"duration"`
	Tasks    []string `json:"tasks"`
}

var errNoSteps = errors.New("response has no usable steps")

// repairPlan normalizes a decoded service response into a valid Plan.
// Missing pieces are filled from the deterministic templates; a response
// without steps is a derivation failure.
func repairPlan(raw rawPlan, now, deadline time.Time) (domain.Plan, error) {
	steps := make([]domain.PlanStep, 0, len(raw.Steps))
	for _, s := range raw.Steps {
		title := firstNonEmpty(s.Title, s.Step, s.Name)
		if strings.TrimSpace(title) == "" {
			continue
		}
		minutes := int(s.Minutes)
		if minutes == 0 {
			minutes = int(s.Time)
		}
		steps = append(steps, domain.PlanStep{
			Title:       title,
			Description: s.Description,
			Duration:    s.Duration,
			Minutes:     minutes,
		})
	}
	if len(steps) < minServiceSteps {
		return domain.Plan{}, errNoSteps
	}
	if len(steps) > maxServiceSteps {
		steps = steps[:maxServiceSteps]
	}

	hours := raw.EstimatedHours
	if hours == 0 && raw.TotalMinutes > 0 {
		hours = raw.TotalMinutes / 60
	}
	if hours == 0 {
		total := 0.0
		for _, s := range steps {
			total += float64(s.Minutes)
		}
		hours = total / 60
	}

	daysUntil := domain.DaysUntil(now, deadline)

	daily := make([]domain.DailyPlan, 0, len(raw.DailyPlans))
	for i, d := range raw.DailyPlans {
		entry := domain.DailyPlan{
			Day:      d.Day,
			Date:     d.Date,
			Title:    d.Title,
			Focus:    d.Focus,
			Duration: d.Duration,
			Tasks:    d.Tasks,
		}
		if entry.Day == 0 {
			entry.Day = i + 1
		}
		if entry.Date == "" {
			entry.Date = now.AddDate(0, 0, i).Format("2006-01-02")
		}
		// Every day needs at least one sub-task to render.
		if len(entry.Tasks) == 0 {
			entry.Tasks = []string{firstNonEmpty(entry.Focus, entry.Title, "Work on the assignment")}
		}
		daily = append(daily, entry)
	}
	if len(daily) == 0 {
		daily = fallbackDailyPlans(now, daysUntil)
	}

	checklist := raw.Checklist
	if len(checklist) == 0 {
		checklist = append([]string(nil), fallbackChecklist...)
	}

	difficulty := raw.Difficulty
	if difficulty == "" {
		difficulty = difficultyFor(daysUntil)
	}

	return domain.Plan{
		Difficulty:     difficulty,
		EstimatedHours: hours,
		Steps:          steps,
		DailyPlans:     daily,
		Checklist:      checklist,
	}, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
