package domain

import "time"

type PeriodStatus string

const (
	PeriodDraft  PeriodStatus = "DRAFT"
	PeriodPosted PeriodStatus = "POSTED"
)

// SchedulePeriod 是一个以周一为起点的 14 天排班周期，
// 状态只会从 DRAFT 变成 POSTED，不会再变回来（允许重复发布）
type SchedulePeriod struct {
	ID             int64        `json:"id"`
	StartDate      time.Time    `json:"startDate"`
	EndDate        time.Time    `json:"endDate"`
	Status         PeriodStatus `json:"status"`
	PostedAt       *time.Time   `json:"postedAt"`
	PostedByUserID *int64       `json:"postedByUserID"`
}

func (p *SchedulePeriod) IsPosted() bool {
	return p.Status == PeriodPosted
}

// Contains 判断某个日期是否落在这个周期的 [start, end] 窗口内
func (p *SchedulePeriod) Contains(date time.Time) bool {
	return !date.Before(p.StartDate) && !date.After(p.EndDate)
}
