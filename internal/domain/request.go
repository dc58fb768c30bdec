package domain

import "time"

type RequestType string

const (
	RequestTimeOff RequestType = "TIME_OFF"
	RequestTrade   RequestType = "TRADE"
)

type RequestStatus string

const (
	RequestPending  RequestStatus = "PENDING"
	RequestApproved RequestStatus = "APPROVED"
	RequestDenied   RequestStatus = "DENIED"
)

// Request 的状态机：PENDING -> APPROVED 或 PENDING -> DENIED，决定后不再变化
type Request struct {
	ID          int64         `json:"id"`
	Type        RequestType   `json:"type"`
	Status      RequestStatus `json:"status"`
	RequesterID int64         `json:"requesterID"`
	RequestDate time.Time     `json:"requestDate"`
	CreatedAt   time.Time     `json:"createdAt"`
	DecidedByID *int64        `json:"decidedByID"`
	DecidedAt   *time.Time    `json:"decidedAt"`
	Note        string        `json:"note"`

	// 以下字段只有换班申请才会使用
	OfferAssignmentID   *int64     `json:"offerAssignmentID"`
	ReceiverID          *int64     `json:"receiverID"`
	ReceiverConfirmed   bool       `json:"receiverConfirmed"`
	ReceiverConfirmedAt *time.Time `json:"receiverConfirmedAt"`
}
