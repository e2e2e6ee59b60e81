package domain

import "math"

// ChecklistRecord is the authoritative per-step completion state for one
// task, stored independently and linked by TaskID. Items are index-aligned
// with the plan's steps.
type ChecklistRecord struct {
	ID     string
	TaskID string
	Items  []ChecklistItem
}

type ChecklistItem struct {
	Step    string `json:"step"`
	Minutes int    `json:"minutes"`
	Done    bool   `json:"done"`
}

// NewChecklistRecord builds the initial record for a freshly derived plan,
// one unchecked item per plan step.
func NewChecklistRecord(id, taskID string, steps []PlanStep) ChecklistRecord {
	items := make([]ChecklistItem, 0, len(steps))
	for _, step := range steps {
		items = append(items, ChecklistItem{Step: step.Title, Minutes: step.Minutes})
	}
	return ChecklistRecord{ID: id, TaskID: taskID, Items: items}
}

// ToggleStep sets the completion flag of one item and returns the recomputed
// progress percentage. Out-of-range indexes leave the record untouched.
func (r *ChecklistRecord) ToggleStep(stepIndex int, done bool) (int, error) {
	if stepIndex < 0 || stepIndex >= len(r.Items) {
		return 0, ErrStepOutOfRange
	}
	r.Items[stepIndex].Done = done
	return r.Progress(), nil
}

// Progress is round(100 * done / len), 0 for an empty checklist.
func (r *ChecklistRecord) Progress() int {
	if len(r.Items) == 0 {
		return 0
	}
	completed := 0
	for _, item := range r.Items {
		if item.Done {
			completed++
		}
	}
	return int(math.Round(float64(completed) / float64(len(r.Items)) * 100))
}
