package domain

import "time"

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

type Task struct {
	ID          string
	UserID      string
	Title       string
	Description string
	Deadline    time.Time
	Priority    Priority
	Progress    int
	Plan        Plan
	// Checklist holds the denormalized step names written at creation.
	// The ChecklistRecord is authoritative; this is a read cache.
	Checklist []string
	// ResolvedItems is the checklist joined at read time from the
	// ChecklistRecord, falling back to the denormalized names when no
	// record exists.
	ResolvedItems []ChecklistItem
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type CreateTaskInput struct {
	UserID      string
	Title       string
	Description string
	Deadline    time.Time
}

// DaysUntil returns whole days between now and the deadline, floored at 1.
// A deadline today or in the past still yields a one-day plan.
func DaysUntil(now, deadline time.Time) int {
	days := int(ceilDiv(deadline.Sub(now), 24*time.Hour))
	if days < 1 {
		return 1
	}
	return days
}

// PriorityForDeadline derives the creation-time priority from days remaining.
func PriorityForDeadline(now, deadline time.Time) Priority {
	days := DaysUntil(now, deadline)
	switch {
	case days <= 2:
		return PriorityHigh
	case days <= 7:
		return PriorityMedium
	default:
		return PriorityLow
	}
}

func ceilDiv(d, unit time.Duration) int64 {
	q := int64(d / unit)
	if d%unit > 0 {
		q++
	}
	return q
}
