package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/resto-dev/resto-scheduler/backend/internal/domain"
	"github.com/resto-dev/resto-scheduler/backend/internal/utils"
	"github.com/resto-dev/resto-scheduler/backend/internal/workflow"
)

// CreateRequest 自动判断申请类型：当天没有排班就是请假，有排班就是换班
func (h *Handler) CreateRequest(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	var req struct {
		Date             string `json:"date" validate:"required"`
		ReceiverUsername string `json:"receiverUsername"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	date, err := utils.ParseDate(req.Date)
	if err != nil {
		h.errorResponse(w, r, "日期格式无效")
		return
	}

	request, err := h.workflow.CreateAuto(myInfo, date, req.ReceiverUsername)
	if err != nil {
		switch {
		case errors.Is(err, workflow.ErrReceiverRequired),
			errors.Is(err, workflow.ErrReceiverNotFound):
			h.errorResponse(w, r, err.Error())
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "创建申请成功", request)
}

// CreateTradeRequest 针对指定时段发起换班
func (h *Handler) CreateTradeRequest(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	var req struct {
		Date             string `json:"date" validate:"required"`
		Period           string `json:"period" validate:"required,oneof=LUNCH DINNER"`
		ReceiverUsername string `json:"receiverUsername" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	date, err := utils.ParseDate(req.Date)
	if err != nil {
		h.errorResponse(w, r, "日期格式无效")
		return
	}

	request, err := h.workflow.CreateTrade(myInfo, date, domain.ShiftPeriod(req.Period), req.ReceiverUsername)
	if err != nil {
		switch {
		case errors.Is(err, workflow.ErrNoMatchingAssignment),
			errors.Is(err, workflow.ErrReceiverRequired),
			errors.Is(err, workflow.ErrReceiverNotFound):
			h.errorResponse(w, r, err.Error())
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "创建换班申请成功", request)
}

func (h *Handler) GetMyRequests(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	requests, err := h.repository.GetRequestsByRequesterID(myInfo.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取我的申请成功", requests)
}

func (h *Handler) GetMyTradeInvites(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	requests, err := h.repository.GetPendingTradeInvites(myInfo.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取换班邀请成功", requests)
}

// GetApprovedTimeOff 返回日期区间内已批准的请假，前端用来在排班表上打标记
func (h *Handler) GetApprovedTimeOff(w http.ResponseWriter, r *http.Request) {
	start, err := utils.ParseDate(r.URL.Query().Get("start"))
	if err != nil {
		h.errorResponse(w, r, "日期格式无效")
		return
	}
	end, err := utils.ParseDate(r.URL.Query().Get("end"))
	if err != nil {
		h.errorResponse(w, r, "日期格式无效")
		return
	}

	requests, err := h.repository.GetApprovedTimeOffByDateRange(start, end)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取已批准的请假成功", requests)
}

func (h *Handler) GetAllRequests(w http.ResponseWriter, r *http.Request) {
	requests, err := h.repository.GetAllRequests()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取申请列表成功", requests)
}

func (h *Handler) GetPendingRequests(w http.ResponseWriter, r *http.Request) {
	requests, err := h.repository.GetRequestsByStatus(domain.RequestPending)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取待处理申请成功", requests)
}

func (h *Handler) requestIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	requestID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.errorResponse(w, r, "申请ID无效")
		return 0, false
	}
	return requestID, true
}

func (h *Handler) ConfirmTradeRequest(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	requestID, ok := h.requestIDParam(w, r)
	if !ok {
		return
	}

	request, err := h.workflow.Confirm(requestID, myInfo)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "申请不存在")
		case errors.Is(err, workflow.ErrWrongRequestType),
			errors.Is(err, workflow.ErrRequestNotPending),
			errors.Is(err, workflow.ErrNotDesignatedReceiver),
			errors.Is(err, workflow.ErrAlreadyConfirmed):
			h.errorResponse(w, r, err.Error())
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "确认换班成功", request)
}

func (h *Handler) ApproveRequest(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	requestID, ok := h.requestIDParam(w, r)
	if !ok {
		return
	}

	var req struct {
		Note     string `json:"note"`
		Override bool   `json:"override"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	request, err := h.workflow.Approve(requestID, myInfo, req.Note, req.Override)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "申请不存在")
		case errors.Is(err, workflow.ErrRequestNotPending),
			errors.Is(err, workflow.ErrReceiverNotConfirmed):
			h.errorResponse(w, r, err.Error())
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "批准申请成功", request)
}

func (h *Handler) DenyRequest(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	requestID, ok := h.requestIDParam(w, r)
	if !ok {
		return
	}

	var req struct {
		Note string `json:"note"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	request, err := h.workflow.Deny(requestID, myInfo, req.Note)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "申请不存在")
		case errors.Is(err, workflow.ErrRequestNotPending):
			h.errorResponse(w, r, err.Error())
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "拒绝申请成功", request)
}
