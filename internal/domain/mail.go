package domain

type MailMessage struct {
	Type string `json:"type"`
	To   string `json:"to"`
	Data any    `json:"data"`
}

type CreateUserMailData struct {
	FullName string `json:"fullName"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type ResetPasswordMailData struct {
	FullName   string `json:"fullName"`
	OTP        string `json:"otp"`
	Expiration int    `json:"expiration"`
}

type ChangeEmailMailData struct {
	FullName   string `json:"fullName"`
	OTP        string `json:"otp"`
	Expiration int    `json:"expiration"`
}

type TradeInviteMailData struct {
	FullName      string `json:"fullName"`
	RequesterName string `json:"requesterName"`
	Date          string `json:"date"`
	RequestID     int64  `json:"requestID"`
}

type RequestDecisionMailData struct {
	FullName string `json:"fullName"`
	Label    string `json:"label"`
	Decision string `json:"decision"`
	Note     string `json:"note"`
}
