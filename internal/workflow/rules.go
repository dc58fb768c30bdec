package workflow

import (
	"time"

	"github.com/resto-dev/resto-scheduler/backend/internal/domain"
)

// ClassifyAuto 根据申请人当天的排班数量判断申请类型：
// 没有排班就是请假，有排班就必须换班
func ClassifyAuto(assignments []*domain.Assignment) domain.RequestType {
	if len(assignments) == 0 {
		return domain.RequestTimeOff
	}
	return domain.RequestTrade
}

// MatchPeriod 在申请人当天的排班里找出指定时段的那一条，找不到返回 nil
func MatchPeriod(assignments []*domain.Assignment, period domain.ShiftPeriod) *domain.Assignment {
	for _, a := range assignments {
		if a.Period == period {
			return a
		}
	}
	return nil
}

// CanConfirm 校验接收人确认的前置条件
func CanConfirm(req *domain.Request, receiverID int64) error {
	if req.Type != domain.RequestTrade {
		return ErrWrongRequestType
	}
	if req.Status != domain.RequestPending {
		return ErrRequestNotPending
	}
	if req.ReceiverID == nil || *req.ReceiverID != receiverID {
		return ErrNotDesignatedReceiver
	}
	if req.ReceiverConfirmed {
		return ErrAlreadyConfirmed
	}
	return nil
}

// CanApprove 校验经理批准的前置条件。
// override 允许经理在接收人未确认时直接批准换班
func CanApprove(req *domain.Request, override bool) error {
	if req.Status != domain.RequestPending {
		return ErrRequestNotPending
	}
	if req.Type == domain.RequestTrade && !req.ReceiverConfirmed && !override {
		return ErrReceiverNotConfirmed
	}
	return nil
}

// AmendmentForEdit 为一次格子改动生成修订记录。
// 日期不在已发布周期内、或者指派实际没有变化时返回 nil，表示不需要留痕
func AmendmentForEdit(period *domain.SchedulePeriod, date time.Time, slot domain.RoleSlot, oldID, newID *int64, editorID int64, at time.Time) *domain.Amendment {
	if period == nil || !EmployeeChanged(oldID, newID) {
		return nil
	}
	return &domain.Amendment{
		SchedulePeriodID:   period.ID,
		Date:               date,
		Period:             slot.Period,
		Position:           slot.Position,
		OriginalEmployeeID: oldID,
		NewEmployeeID:      newID,
		ChangedByUserID:    editorID,
		ChangedAt:          at,
	}
}

// EmployeeChanged 按值比较两个可空的员工指派
func EmployeeChanged(oldID, newID *int64) bool {
	if oldID == nil && newID == nil {
		return false
	}
	if oldID == nil || newID == nil {
		return true
	}
	return *oldID != *newID
}
