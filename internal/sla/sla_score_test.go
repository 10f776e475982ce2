package sla_test

import (
	"testing"
	"time"

	"github.com/roma-frontend/hr-tracker-sub000/internal/sla"

	"github.com/stretchr/testify/assert"
)

func TestEvaluate(t *testing.T) {
	submitted := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)

	cases := []struct {
		name    string
		elapsed time.Duration
		target  float64
		hours   float64
		score   float64
		status  string
	}{
		{"instant review", 0, 24, 0, 100, sla.StatusOnTime},
		{"ten hours", 10 * time.Hour, 24, 10, 91.7, sla.StatusOnTime},
		{"exactly on target", 24 * time.Hour, 24, 24, 80, sla.StatusOnTime},
		{"just past target", 24*time.Hour + 6*time.Minute, 24, 24.1, 78.8, sla.StatusBreached},
		{"double target", 48 * time.Hour, 24, 48, 39, sla.StatusBreached},
		{"far past target floors at zero", 96 * time.Hour, 24, 96, 0, sla.StatusBreached},
		{"rounds elapsed before scoring", 2*time.Hour + 57*time.Minute, 24, 3, 97.5, sla.StatusOnTime},
		{"custom target", 6 * time.Hour, 12, 6, 90, sla.StatusOnTime},
		{"non-positive target uses default", 12 * time.Hour, 0, 12, 90, sla.StatusOnTime},
		{"clock skew counts as instant", -time.Hour, 24, 0, 100, sla.StatusOnTime},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := sla.Evaluate(submitted, submitted.Add(tc.elapsed), tc.target)

			assert.Equal(t, tc.hours, got.ResponseTimeHours)
			assert.Equal(t, tc.score, got.Score)
			assert.Equal(t, tc.status, got.Status)
		})
	}
}

func TestEvaluate_MonotonicPastTarget(t *testing.T) {
	submitted := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)

	prev := sla.Evaluate(submitted, submitted.Add(24*time.Hour), 24).Score
	for h := 25; h <= 70; h++ {
		cur := sla.Evaluate(submitted, submitted.Add(time.Duration(h)*time.Hour), 24).Score
		assert.Less(t, cur, prev, "score at %dh should drop", h)
		prev = cur
	}
}
