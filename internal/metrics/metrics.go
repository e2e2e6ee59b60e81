package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	DerivationService  = "service"
	DerivationFallback = "fallback"
)

var (
	DerivationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "planner_derivations_total",
		Help: "Plan derivations by mode (generation service vs deterministic fallback).",
	}, []string{"mode"})

	StepTogglesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "planner_step_toggles_total",
		Help: "Checklist step toggles applied.",
	})
)
