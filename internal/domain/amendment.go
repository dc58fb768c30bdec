package domain

import "time"

// Amendment 记录已发布周期内的事后改动：original 在首次记录时固定，
// new/changedBy/changedAt 每次改动都覆盖为最新值
type Amendment struct {
	ID                 int64       `json:"id"`
	SchedulePeriodID   int64       `json:"schedulePeriodID"`
	Date               time.Time   `json:"date"`
	Period             ShiftPeriod `json:"period"`
	Position           Position    `json:"position"`
	OriginalEmployeeID *int64      `json:"originalEmployeeID"`
	NewEmployeeID      *int64      `json:"newEmployeeID"`
	ChangedByUserID    int64       `json:"changedByUserID"`
	ChangedAt          time.Time   `json:"changedAt"`
}
