package publish

import (
	"github.com/resto-dev/resto-scheduler/backend/internal/domain"
)

// slotKey 以天为粒度标识一个排班格子，日期统一格式化成字符串，
// 避免 time.Time 里时区和纳秒带来的假差异
type slotKey struct {
	date     string
	period   domain.ShiftPeriod
	position domain.Position
}

const slotDateLayout = "2006-01-02"

// BuildSnapshotRows 把实时排班整理成某个周期的快照行。
// 没有指派的格子不产生行，缺行本身就表示未指派
func BuildSnapshotRows(periodID int64, assignments []*domain.Assignment) []domain.PublishedAssignment {
	rows := make([]domain.PublishedAssignment, 0, len(assignments))
	for _, a := range assignments {
		employeeID := a.EmployeeID
		rows = append(rows, domain.PublishedAssignment{
			SchedulePeriodID: periodID,
			Date:             a.Date,
			Period:           a.Period,
			Position:         a.Position,
			EmployeeID:       &employeeID,
		})
	}
	return rows
}

// SnapshotChanged 按值比较实时排班和已发布快照是否存在任何差异：
// 新增的格子、被清空的格子、换了人的格子都算差异。
// 快照一行都没有时直接判定有差异，这代表周期从未成功发布过
func SnapshotChanged(assignments []*domain.Assignment, snapshot []*domain.PublishedAssignment) bool {
	if len(snapshot) == 0 {
		return true
	}

	live := make(map[slotKey]int64, len(assignments))
	for _, a := range assignments {
		key := slotKey{date: a.Date.Format(slotDateLayout), period: a.Period, position: a.Position}
		live[key] = a.EmployeeID
	}

	published := make(map[slotKey]*int64, len(snapshot))
	for _, row := range snapshot {
		key := slotKey{date: row.Date.Format(slotDateLayout), period: row.Period, position: row.Position}
		published[key] = row.EmployeeID
	}

	if len(live) != len(published) {
		return true
	}

	for key, employeeID := range live {
		publishedID, ok := published[key]
		if !ok {
			return true
		}
		if publishedID == nil || *publishedID != employeeID {
			return true
		}
	}

	return false
}
