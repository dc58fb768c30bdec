package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSchedulePeriod_Contains(t *testing.T) {
	start := time.Date(2026, 8, 3, 0, 0, 0, 0, time.UTC) // 周一
	period := &SchedulePeriod{
		StartDate: start,
		EndDate:   start.AddDate(0, 0, 13),
		Status:    PeriodDraft,
	}

	assert.True(t, period.Contains(start))
	assert.True(t, period.Contains(start.AddDate(0, 0, 7)))
	assert.True(t, period.Contains(start.AddDate(0, 0, 13)))

	assert.False(t, period.Contains(start.AddDate(0, 0, -1)))
	assert.False(t, period.Contains(start.AddDate(0, 0, 14)))
}

func TestSchedulePeriod_IsPosted(t *testing.T) {
	period := &SchedulePeriod{Status: PeriodDraft}
	assert.False(t, period.IsPosted())

	period.Status = PeriodPosted
	assert.True(t, period.IsPosted())
}
