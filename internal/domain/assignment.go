package domain

import "time"

// Assignment 把一个排班格子指派给一名员工，一个格子至多一条
type Assignment struct {
	ID         int64       `json:"id"`
	ShiftID    int64       `json:"shiftID"`
	Date       time.Time   `json:"date"`
	Period     ShiftPeriod `json:"period"`
	Position   Position    `json:"position"`
	EmployeeID int64       `json:"employeeID"`
}

// PublishedAssignment 是周期发布时对实时排班的一次性快照行，
// 每次发布都整体重建，不存在未指派的行（缺行即表示未指派）
type PublishedAssignment struct {
	ID               int64       `json:"id"`
	SchedulePeriodID int64       `json:"schedulePeriodID"`
	Date             time.Time   `json:"date"`
	Period           ShiftPeriod `json:"period"`
	Position         Position    `json:"position"`
	EmployeeID       *int64      `json:"employeeID"`
}
