package dto

type TaskItem struct {
	ID          string          `json:"id"`
	UserID      string          `json:"userId"`
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	Deadline    string          `json:"deadline"`
	Priority    string          `json:"priority"`
	Progress    int             `json:"progress"`
	Plan        PlanItem        `json:"plan"`
	Checklist   []ChecklistItem `json:"checklist"`
	CreatedAt   string          `json:"createdAt"`
	UpdatedAt   string          `json:"updatedAt"`
}

type PlanItem struct {
	Difficulty     string          `json:"difficulty,omitempty"`
	EstimatedHours float64         `json:"estimatedHours"`
	Steps          []PlanStepItem  `json:"steps"`
	DailyPlans     []DailyPlanItem `json:"dailyPlans"`
	Checklist      []string        `json:"checklist"`
}

type PlanStepItem struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Duration    string `json:"duration,omitempty"`
	Minutes     int    `json:"minutes,omitempty"`
}

type DailyPlanItem struct {
	Day      int      `json:"day"`
	Date     string   `json:"date"`
	Title    string   `json:"title"`
	Focus    string   `json:"focus,omitempty"`
	Duration string   `json:"duration,omitempty"`
	Tasks    []string `json:"tasks"`
}

type ChecklistItem struct {
	Step    string `json:"step"`
	Minutes int    `json:"minutes"`
	Done    bool   `json:"done"`
}

// CreateTaskRequest accepts both deadline spellings the clients historically
// sent; exactly one must be present.
type CreateTaskRequest struct {
	Title       string  `json:"title" binding:"required,max=255"`
	Description *string `json:"description" binding:"omitempty,max=65535"`
	Deadline    *string `json:"deadline" binding:"omitempty,datetime=2006-01-02"`
	DueDate     *string `json:"dueDate" binding:"omitempty,datetime=2006-01-02"`
	UserID      string  `json:"userId" binding:"required,max=64"`
}

type CreateTaskResponse struct {
	Success bool     `json:"success"`
	TaskID  string   `json:"taskId"`
	Task    TaskItem `json:"task"`
}

type ToggleStepRequest struct {
	StepIndex *int  `json:"stepIndex" binding:"required"`
	Done      *bool `json:"done" binding:"required"`
}

type ToggleStepResponse struct {
	Success  bool `json:"success"`
	Progress int  `json:"progress"`
}
