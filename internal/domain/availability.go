package domain

// Availability 是员工按星期几提交的可上班时段，排班页面用它来过滤候选人
type Availability struct {
	ID              int64 `json:"id"`
	UserID          int64 `json:"userID"`
	DayOfWeek       int32 `json:"dayOfWeek"` // 1 = 周一 ... 7 = 周日
	LunchAvailable  bool  `json:"lunchAvailable"`
	DinnerAvailable bool  `json:"dinnerAvailable"`
}
