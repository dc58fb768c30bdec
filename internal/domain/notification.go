package domain

import "time"

type NotificationType string

const (
	NotificationTradeInvite   NotificationType = "TRADE_INVITE"
	NotificationReqCreated    NotificationType = "REQ_CREATED"
	NotificationReqUpdated    NotificationType = "REQ_UPDATED"
	NotificationTradeDecision NotificationType = "TRADE_DECISION"
)

type Notification struct {
	ID          int64            `json:"id"`
	RecipientID int64            `json:"recipientID"`
	Type        NotificationType `json:"type"`
	Payload     string           `json:"payload"`
	Read        bool             `json:"read"`
	CreatedAt   time.Time        `json:"createdAt"`
}
