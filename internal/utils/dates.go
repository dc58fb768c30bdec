package utils

import "time"

const DateLayout = "2006-01-02"

func ParseDate(value string) (time.Time, error) {
	return time.Parse(DateLayout, value)
}

// MondayOf 把任意日期规整到它所在那一周的周一（零点，原时区）
func MondayOf(date time.Time) time.Time {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	offset := (int(day.Weekday()) + 6) % 7 // 周一为 0
	return day.AddDate(0, 0, -offset)
}

// PeriodDates 展开一个周期内的全部 14 天
func PeriodDates(startDate time.Time) []time.Time {
	dates := make([]time.Time, 0, 14)
	for i := 0; i < 14; i++ {
		dates = append(dates, startDate.AddDate(0, 0, i))
	}
	return dates
}
