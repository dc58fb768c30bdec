package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/resto-dev/resto-scheduler/backend/internal/domain"
	"github.com/resto-dev/resto-scheduler/backend/internal/utils"
	"github.com/resto-dev/resto-scheduler/backend/internal/workflow"
)

// daySlotView 是排班编辑页里一个岗位格子的展示数据
type daySlotView struct {
	RoleKey      string             `json:"roleKey"`
	Label        string             `json:"label"`
	Period       domain.ShiftPeriod `json:"period"`
	Position     domain.Position    `json:"position"`
	ManagerOnly  bool               `json:"managerOnly"`
	EmployeeID   *int64             `json:"employeeID"`
	EmployeeName string             `json:"employeeName"`
}

func (h *Handler) GetDaySchedule(w http.ResponseWriter, r *http.Request) {
	date, err := utils.ParseDate(chi.URLParam(r, "date"))
	if err != nil {
		h.errorResponse(w, r, "日期格式无效")
		return
	}

	assignments, err := h.repository.GetAssignmentsByDateRange(date, date)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	users, err := h.repository.GetAllUsers()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	nameByID := make(map[int64]string, len(users))
	for _, user := range users {
		nameByID[user.ID] = user.FullName
	}

	// 按 (时段, 岗位) 索引当天的指派
	type slotIndex struct {
		period   domain.ShiftPeriod
		position domain.Position
	}
	assigned := make(map[slotIndex]int64, len(assignments))
	for _, a := range assignments {
		assigned[slotIndex{period: a.Period, position: a.Position}] = a.EmployeeID
	}

	slots := make([]daySlotView, 0, len(domain.RoleSlots))
	for _, rs := range domain.RoleSlots {
		view := daySlotView{
			RoleKey:     rs.Key,
			Label:       rs.Label,
			Period:      rs.Period,
			Position:    rs.Position,
			ManagerOnly: rs.ManagerOnly,
		}
		if employeeID, ok := assigned[slotIndex{period: rs.Period, position: rs.Position}]; ok {
			id := employeeID
			view.EmployeeID = &id
			view.EmployeeName = nameByID[employeeID]
		}
		slots = append(slots, view)
	}

	period, err := h.workflow.LockedPeriod(date)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	// 当天已批准的请假，编辑时用于提醒
	timeOff, err := h.repository.GetApprovedTimeOffByDateRange(date, date)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	timeOffUserIDs := make([]int64, 0, len(timeOff))
	for _, req := range timeOff {
		timeOffUserIDs = append(timeOffUserIDs, req.RequesterID)
	}

	h.successResponse(w, r, "获取当日排班成功", map[string]any{
		"date":           date.Format(utils.DateLayout),
		"locked":         period != nil,
		"period":         period,
		"slots":          slots,
		"timeOffUserIDs": timeOffUserIDs,
	})
}

func (h *Handler) SaveDaySchedule(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	date, err := utils.ParseDate(chi.URLParam(r, "date"))
	if err != nil {
		h.errorResponse(w, r, "日期格式无效")
		return
	}

	var req struct {
		Override bool `json:"override"`
		Edits    []struct {
			RoleKey    string `json:"roleKey" validate:"required"`
			EmployeeID *int64 `json:"employeeID"`
		} `json:"edits" validate:"required,dive"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	edits := make([]workflow.DayEdit, 0, len(req.Edits))
	for _, edit := range req.Edits {
		edits = append(edits, workflow.DayEdit{
			RoleKey:    edit.RoleKey,
			EmployeeID: edit.EmployeeID,
		})
	}

	if err := h.workflow.SaveDay(myInfo, date, edits, req.Override); err != nil {
		switch {
		case errors.Is(err, workflow.ErrPeriodLocked),
			errors.Is(err, workflow.ErrRoleConstraint),
			errors.Is(err, workflow.ErrUnknownRoleSlot):
			h.errorResponse(w, r, err.Error())
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "保存当日排班成功", nil)
}

// GetScheduleGrid 返回以某个周一开始的 14 天实时排班
func (h *Handler) GetScheduleGrid(w http.ResponseWriter, r *http.Request) {
	start, err := utils.ParseDate(chi.URLParam(r, "start"))
	if err != nil {
		h.errorResponse(w, r, "日期格式无效")
		return
	}
	start = utils.MondayOf(start)
	end := start.AddDate(0, 0, 13)

	assignments, err := h.repository.GetAssignmentsByDateRange(start, end)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取排班表成功", map[string]any{
		"startDate":   start.Format(utils.DateLayout),
		"endDate":     end.Format(utils.DateLayout),
		"assignments": assignments,
	})
}

// GetPublishedGrid 返回已发布周期的快照，员工只能看到这个视图
func (h *Handler) GetPublishedGrid(w http.ResponseWriter, r *http.Request) {
	start, err := utils.ParseDate(chi.URLParam(r, "start"))
	if err != nil {
		h.errorResponse(w, r, "日期格式无效")
		return
	}
	start = utils.MondayOf(start)

	period, err := h.repository.GetPeriodByStartDate(start)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "该周期尚未发布")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}
	if !period.IsPosted() {
		h.errorResponse(w, r, "该周期尚未发布")
		return
	}

	rows, err := h.repository.GetSnapshotRows(period.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取已发布排班成功", map[string]any{
		"period":      period,
		"assignments": rows,
	})
}
