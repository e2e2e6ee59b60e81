package domain

// Plan is the generated study schedule for one task.
type Plan struct {
	Difficulty     string      `json:"difficulty,omitempty"`
	EstimatedHours float64     `json:"estimatedHours"`
	Steps          []PlanStep  `json:"steps"`
	DailyPlans     []DailyPlan `json:"dailyPlans"`
	Checklist      []string    `json:"checklist"`
}

type PlanStep struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Duration    string `json:"duration,omitempty"`
	Minutes     int    `json:"minutes,omitempty"`
}

type DailyPlan struct {
	Day      int      `json:"day"`
	Date     string   `json:"date"`
	Title    string   `json:"title"`
	Focus    string   `json:"focus,omitempty"`
	Duration string   `json:"duration,omitempty"`
	Tasks    []string `json:"tasks"`
}

// TotalMinutes sums per-step minute estimates.
func (p Plan) TotalMinutes() int {
	total := 0
	for _, step := range p.Steps {
		total += step.Minutes
	}
	return total
}

// StepTitles returns the ordered step names, used for the denormalized
// checklist field on the task record.
func (p Plan) StepTitles() []string {
	titles := make([]string, 0, len(p.Steps))
	for _, step := range p.Steps {
		titles = append(titles, step.Title)
	}
	return titles
}
