package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMondayOf(t *testing.T) {
	monday := time.Date(2026, 8, 3, 0, 0, 0, 0, time.UTC)

	for offset := 0; offset < 7; offset++ {
		date := monday.AddDate(0, 0, offset)
		assert.Equal(t, monday, MondayOf(date), "星期 %s 应该规整到同一个周一", date.Weekday())
	}

	// 下一周规整到下一个周一
	assert.Equal(t, monday.AddDate(0, 0, 7), MondayOf(monday.AddDate(0, 0, 7)))
}

func TestMondayOf_StripsTimeOfDay(t *testing.T) {
	date := time.Date(2026, 8, 5, 18, 30, 12, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 8, 3, 0, 0, 0, 0, time.UTC), MondayOf(date))
}

func TestPeriodDates(t *testing.T) {
	start := time.Date(2026, 8, 3, 0, 0, 0, 0, time.UTC)
	dates := PeriodDates(start)

	require.Len(t, dates, 14)
	assert.Equal(t, start, dates[0])
	assert.Equal(t, start.AddDate(0, 0, 13), dates[13])
	for i := 1; i < len(dates); i++ {
		assert.Equal(t, dates[i-1].AddDate(0, 0, 1), dates[i])
	}
}

func TestParseDate(t *testing.T) {
	date, err := ParseDate("2026-08-03")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 8, 3, 0, 0, 0, 0, time.UTC), date)

	_, err = ParseDate("03/08/2026")
	assert.Error(t, err)
}
