package handler

import (
	"net/http"

	"github.com/resto-dev/resto-scheduler/backend/internal/domain"
)

func (h *Handler) GetMyAvailability(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	availabilities, err := h.repository.GetAvailabilitiesByUserID(myInfo.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取可用时间成功", availabilities)
}

// UpdateMyAvailability 整体覆盖写入一周七天的可用时间
func (h *Handler) UpdateMyAvailability(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	var req struct {
		Items []struct {
			DayOfWeek       int32 `json:"dayOfWeek" validate:"min=1,max=7"`
			LunchAvailable  bool  `json:"lunchAvailable"`
			DinnerAvailable bool  `json:"dinnerAvailable"`
		} `json:"items" validate:"required,max=7,dive"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	availabilities := make([]*domain.Availability, 0, len(req.Items))
	for _, item := range req.Items {
		availability := &domain.Availability{
			UserID:          myInfo.ID,
			DayOfWeek:       item.DayOfWeek,
			LunchAvailable:  item.LunchAvailable,
			DinnerAvailable: item.DinnerAvailable,
		}
		if err := h.repository.UpsertAvailability(availability); err != nil {
			h.internalServerError(w, r, err)
			return
		}
		availabilities = append(availabilities, availability)
	}

	h.successResponse(w, r, "更新可用时间成功", availabilities)
}

func (h *Handler) GetAllAvailabilities(w http.ResponseWriter, r *http.Request) {
	availabilities, err := h.repository.GetAllAvailabilities()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取全体可用时间成功", availabilities)
}

func (h *Handler) GetUserAvailability(w http.ResponseWriter, r *http.Request) {
	user := r.Context().Value(UserInfoCtx).(*domain.User)

	availabilities, err := h.repository.GetAvailabilitiesByUserID(user.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取用户可用时间成功", availabilities)
}
