package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"studyplanner/internal/core/domain"
)

func TestDaysUntil(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		deadline time.Time
		want     int
	}{
		{"five days out", now.AddDate(0, 0, 5), 5},
		{"later today", now.Add(2 * time.Hour), 1},
		{"exactly now", now, 1},
		{"past deadline still yields one day", now.AddDate(0, 0, -3), 1},
		{"partial day rounds up", now.Add(25 * time.Hour), 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, domain.DaysUntil(now, tt.deadline))
		})
	}
}

func TestPriorityForDeadline(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	require.Equal(t, domain.PriorityHigh, domain.PriorityForDeadline(now, now.AddDate(0, 0, 1)))
	require.Equal(t, domain.PriorityHigh, domain.PriorityForDeadline(now, now.AddDate(0, 0, -1)))
	require.Equal(t, domain.PriorityMedium, domain.PriorityForDeadline(now, now.AddDate(0, 0, 5)))
	require.Equal(t, domain.PriorityMedium, domain.PriorityForDeadline(now, now.AddDate(0, 0, 7)))
	require.Equal(t, domain.PriorityLow, domain.PriorityForDeadline(now, now.AddDate(0, 0, 14)))
}
