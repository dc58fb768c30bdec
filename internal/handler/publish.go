package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/resto-dev/resto-scheduler/backend/internal/domain"
	"github.com/resto-dev/resto-scheduler/backend/internal/publish"
	"github.com/resto-dev/resto-scheduler/backend/internal/utils"
)

// GetPublishState 返回发布页需要的周期状态：
// 周期本身（可能还没创建）、快照行数、以及实时排班是否和快照有差异
func (h *Handler) GetPublishState(w http.ResponseWriter, r *http.Request) {
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
			h.successResponse(w, r, "获取发布状态成功", map[string]any{
				"startDate":      start.Format(utils.DateLayout),
				"endDate":        start.AddDate(0, 0, 13).Format(utils.DateLayout),
				"period":         nil,
				"snapshotCount":  0,
				"needsRepublish": false,
			})
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	count, err := h.repository.CountSnapshotRows(period.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	needsRepublish, err := h.publisher.NeedsRepublish(period.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取发布状态成功", map[string]any{
		"startDate":      period.StartDate.Format(utils.DateLayout),
		"endDate":        period.EndDate.Format(utils.DateLayout),
		"period":         period,
		"snapshotCount":  count,
		"needsRepublish": needsRepublish,
	})
}

func (h *Handler) PostPeriod(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	var req struct {
		StartDate string `json:"startDate" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	start, err := utils.ParseDate(req.StartDate)
	if err != nil {
		h.errorResponse(w, r, "日期格式无效")
		return
	}

	period, err := h.publisher.Post(utils.MondayOf(start), myInfo.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "发布排班成功", period)
}

func (h *Handler) RepublishPeriod(w http.ResponseWriter, r *http.Request) {
	period := r.Context().Value(SchedulePeriodCtx).(*domain.SchedulePeriod)

	republished, err := h.publisher.Republish(period.ID)
	if err != nil {
		switch {
		case errors.Is(err, publish.ErrPeriodNotPosted):
			h.errorResponse(w, r, err.Error())
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "重新发布成功", republished)
}

// GetPeriodAmendments 返回周期内发布后发生过的变更记录
func (h *Handler) GetPeriodAmendments(w http.ResponseWriter, r *http.Request) {
	period := r.Context().Value(SchedulePeriodCtx).(*domain.SchedulePeriod)

	amendments, err := h.repository.GetAmendmentsByPeriodID(period.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取变更记录成功", amendments)
}

func (h *Handler) GetNeedsRepublish(w http.ResponseWriter, r *http.Request) {
	period := r.Context().Value(SchedulePeriodCtx).(*domain.SchedulePeriod)

	needsRepublish, err := h.publisher.NeedsRepublish(period.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取差异状态成功", map[string]any{
		"needsRepublish": needsRepublish,
	})
}
