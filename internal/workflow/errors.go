package workflow

import "errors"

// 这些错误给 handler 层用 errors.Is 区分业务失败和真正的内部错误
var (
	ErrReceiverRequired      = errors.New("当天已有排班，发起申请时必须指定接收人")
	ErrReceiverNotFound      = errors.New("接收人不存在")
	ErrNoMatchingAssignment  = errors.New("该时段没有你的排班，无法发起换班")
	ErrWrongRequestType      = errors.New("该申请不是换班申请")
	ErrRequestNotPending     = errors.New("该申请已被处理")
	ErrNotDesignatedReceiver = errors.New("只有被指定的接收人才能确认该换班申请")
	ErrAlreadyConfirmed      = errors.New("你已经确认过该换班申请")
	ErrReceiverNotConfirmed  = errors.New("接收人尚未确认，无法批准该换班申请")
	ErrPeriodLocked          = errors.New("该日期所在的排班周期已发布，修改需要管理员覆盖")
	ErrRoleConstraint        = errors.New("该岗位只能安排经理")
	ErrUnknownRoleSlot       = errors.New("未知的岗位")
)
