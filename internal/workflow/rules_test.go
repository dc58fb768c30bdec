package workflow

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resto-dev/resto-scheduler/backend/internal/domain"
)

func int64Ptr(v int64) *int64 {
	return &v
}

func TestClassifyAuto(t *testing.T) {
	assert.Equal(t, domain.RequestTimeOff, ClassifyAuto(nil))
	assert.Equal(t, domain.RequestTimeOff, ClassifyAuto([]*domain.Assignment{}))

	assignments := []*domain.Assignment{
		{Period: domain.PeriodLunch, Position: domain.PositionLunchServer, EmployeeID: 1},
	}
	assert.Equal(t, domain.RequestTrade, ClassifyAuto(assignments))
}

func TestMatchPeriod(t *testing.T) {
	assignments := []*domain.Assignment{
		{ID: 1, Period: domain.PeriodLunch, Position: domain.PositionLunchServer, EmployeeID: 5},
		{ID: 2, Period: domain.PeriodDinner, Position: domain.PositionExpo, EmployeeID: 5},
	}

	match := MatchPeriod(assignments, domain.PeriodDinner)
	require.NotNil(t, match)
	assert.Equal(t, int64(2), match.ID)

	assert.Nil(t, MatchPeriod(assignments[:1], domain.PeriodDinner))
	assert.Nil(t, MatchPeriod(nil, domain.PeriodLunch))
}

func TestCanConfirm(t *testing.T) {
	pendingTrade := &domain.Request{
		Type:       domain.RequestTrade,
		Status:     domain.RequestPending,
		ReceiverID: int64Ptr(9),
	}

	assert.NoError(t, CanConfirm(pendingTrade, 9))
}

func TestCanConfirm_WrongType(t *testing.T) {
	req := &domain.Request{
		Type:   domain.RequestTimeOff,
		Status: domain.RequestPending,
	}

	assert.ErrorIs(t, CanConfirm(req, 9), ErrWrongRequestType)
}

func TestCanConfirm_AlreadyDecided(t *testing.T) {
	req := &domain.Request{
		Type:       domain.RequestTrade,
		Status:     domain.RequestApproved,
		ReceiverID: int64Ptr(9),
	}

	assert.ErrorIs(t, CanConfirm(req, 9), ErrRequestNotPending)
}

func TestCanConfirm_NotDesignatedReceiver(t *testing.T) {
	req := &domain.Request{
		Type:       domain.RequestTrade,
		Status:     domain.RequestPending,
		ReceiverID: int64Ptr(9),
	}

	assert.ErrorIs(t, CanConfirm(req, 10), ErrNotDesignatedReceiver)

	req.ReceiverID = nil
	assert.ErrorIs(t, CanConfirm(req, 9), ErrNotDesignatedReceiver)
}

func TestCanConfirm_AlreadyConfirmed(t *testing.T) {
	confirmedAt := time.Now()
	req := &domain.Request{
		Type:                domain.RequestTrade,
		Status:              domain.RequestPending,
		ReceiverID:          int64Ptr(9),
		ReceiverConfirmed:   true,
		ReceiverConfirmedAt: &confirmedAt,
	}

	// 重复确认不该报"已被处理"，申请本身还在等经理审批
	err := CanConfirm(req, 9)
	assert.ErrorIs(t, err, ErrAlreadyConfirmed)
	assert.NotErrorIs(t, err, ErrRequestNotPending)
}

func TestCanApprove_TimeOff(t *testing.T) {
	req := &domain.Request{
		Type:   domain.RequestTimeOff,
		Status: domain.RequestPending,
	}

	assert.NoError(t, CanApprove(req, false))
}

func TestCanApprove_ConfirmedTrade(t *testing.T) {
	req := &domain.Request{
		Type:              domain.RequestTrade,
		Status:            domain.RequestPending,
		ReceiverID:        int64Ptr(9),
		ReceiverConfirmed: true,
	}

	assert.NoError(t, CanApprove(req, false))
}

func TestCanApprove_UnconfirmedTradeNeedsOverride(t *testing.T) {
	req := &domain.Request{
		Type:       domain.RequestTrade,
		Status:     domain.RequestPending,
		ReceiverID: int64Ptr(9),
	}

	assert.ErrorIs(t, CanApprove(req, false), ErrReceiverNotConfirmed)
	assert.NoError(t, CanApprove(req, true))
}

func TestCanApprove_AlreadyDecided(t *testing.T) {
	decidedAt := time.Now()
	req := &domain.Request{
		Type:      domain.RequestTimeOff,
		Status:    domain.RequestDenied,
		DecidedAt: &decidedAt,
	}

	assert.ErrorIs(t, CanApprove(req, false), ErrRequestNotPending)
	assert.ErrorIs(t, CanApprove(req, true), ErrRequestNotPending)
}

func TestAmendmentForEdit(t *testing.T) {
	date := time.Date(2026, 8, 3, 0, 0, 0, 0, time.UTC)
	at := time.Now()
	period := &domain.SchedulePeriod{
		ID:        12,
		StartDate: date,
		EndDate:   date.AddDate(0, 0, 13),
		Status:    domain.PeriodPosted,
	}
	slot, ok := domain.RoleSlotByKey("role_DINNER_EXPO")
	require.True(t, ok)

	amendment := AmendmentForEdit(period, date, slot, int64Ptr(3), int64Ptr(4), 99, at)
	require.NotNil(t, amendment)
	assert.Equal(t, int64(12), amendment.SchedulePeriodID)
	assert.Equal(t, domain.PeriodDinner, amendment.Period)
	assert.Equal(t, domain.PositionExpo, amendment.Position)
	assert.Equal(t, int64(3), *amendment.OriginalEmployeeID)
	assert.Equal(t, int64(4), *amendment.NewEmployeeID)
	assert.Equal(t, int64(99), amendment.ChangedByUserID)
}

func TestAmendmentForEdit_NoOp(t *testing.T) {
	date := time.Date(2026, 8, 3, 0, 0, 0, 0, time.UTC)
	at := time.Now()
	period := &domain.SchedulePeriod{ID: 12, Status: domain.PeriodPosted}
	slot, ok := domain.RoleSlotByKey("role_DINNER_EXPO")
	require.True(t, ok)

	// 指派没变不留痕
	assert.Nil(t, AmendmentForEdit(period, date, slot, int64Ptr(3), int64Ptr(3), 99, at))
	assert.Nil(t, AmendmentForEdit(period, date, slot, nil, nil, 99, at))
	// 周期没发布也不留痕
	assert.Nil(t, AmendmentForEdit(nil, date, slot, int64Ptr(3), int64Ptr(4), 99, at))
}

func TestAmendmentForEdit_ClearedSlot(t *testing.T) {
	date := time.Date(2026, 8, 3, 0, 0, 0, 0, time.UTC)
	at := time.Now()
	period := &domain.SchedulePeriod{ID: 12, Status: domain.PeriodPosted}
	slot, ok := domain.RoleSlotByKey("role_LUNCH_SERVER")
	require.True(t, ok)

	amendment := AmendmentForEdit(period, date, slot, int64Ptr(3), nil, 99, at)
	require.NotNil(t, amendment)
	assert.Equal(t, int64(3), *amendment.OriginalEmployeeID)
	assert.Nil(t, amendment.NewEmployeeID)
}

func TestEmployeeChanged(t *testing.T) {
	assert.False(t, EmployeeChanged(nil, nil))
	assert.False(t, EmployeeChanged(int64Ptr(3), int64Ptr(3)))
	assert.True(t, EmployeeChanged(nil, int64Ptr(3)))
	assert.True(t, EmployeeChanged(int64Ptr(3), nil))
	assert.True(t, EmployeeChanged(int64Ptr(3), int64Ptr(4)))
}
