package publish

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resto-dev/resto-scheduler/backend/internal/domain"
)

func day(offset int) time.Time {
	return time.Date(2026, 8, 3, 0, 0, 0, 0, time.UTC).AddDate(0, 0, offset)
}

func liveAssignment(offset int, period domain.ShiftPeriod, position domain.Position, employeeID int64) *domain.Assignment {
	return &domain.Assignment{
		Date:       day(offset),
		Period:     period,
		Position:   position,
		EmployeeID: employeeID,
	}
}

func snapshotRow(offset int, period domain.ShiftPeriod, position domain.Position, employeeID int64) *domain.PublishedAssignment {
	return &domain.PublishedAssignment{
		Date:       day(offset),
		Period:     period,
		Position:   position,
		EmployeeID: &employeeID,
	}
}

func TestBuildSnapshotRows(t *testing.T) {
	assignments := []*domain.Assignment{
		liveAssignment(0, domain.PeriodLunch, domain.PositionLunchServer, 7),
		liveAssignment(1, domain.PeriodDinner, domain.PositionExpo, 9),
	}

	rows := BuildSnapshotRows(42, assignments)

	require.Len(t, rows, 2)
	assert.Equal(t, int64(42), rows[0].SchedulePeriodID)
	require.NotNil(t, rows[0].EmployeeID)
	assert.Equal(t, int64(7), *rows[0].EmployeeID)
	assert.Equal(t, domain.PositionExpo, rows[1].Position)
	require.NotNil(t, rows[1].EmployeeID)
	assert.Equal(t, int64(9), *rows[1].EmployeeID)
}

func TestBuildSnapshotRows_Empty(t *testing.T) {
	rows := BuildSnapshotRows(1, nil)
	assert.Empty(t, rows)
}

func TestSnapshotChanged_Identical(t *testing.T) {
	live := []*domain.Assignment{
		liveAssignment(0, domain.PeriodLunch, domain.PositionLunchServer, 7),
		liveAssignment(3, domain.PeriodDinner, domain.PositionHost1, 8),
	}
	snapshot := []*domain.PublishedAssignment{
		snapshotRow(0, domain.PeriodLunch, domain.PositionLunchServer, 7),
		snapshotRow(3, domain.PeriodDinner, domain.PositionHost1, 8),
	}

	assert.False(t, SnapshotChanged(live, snapshot))
}

func TestSnapshotChanged_EmptySnapshotMeansNeverPublished(t *testing.T) {
	// 快照为空时无论实时排班如何都判定有差异，否则发布中途失败的周期会显示"无改动"
	assert.True(t, SnapshotChanged(nil, nil))
	assert.True(t, SnapshotChanged([]*domain.Assignment{}, []*domain.PublishedAssignment{}))
}

func TestSnapshotChanged_ReassignedEmployee(t *testing.T) {
	live := []*domain.Assignment{
		liveAssignment(0, domain.PeriodLunch, domain.PositionLunchServer, 7),
	}
	snapshot := []*domain.PublishedAssignment{
		snapshotRow(0, domain.PeriodLunch, domain.PositionLunchServer, 8),
	}

	assert.True(t, SnapshotChanged(live, snapshot))
}

func TestSnapshotChanged_SlotAddedSincePublish(t *testing.T) {
	live := []*domain.Assignment{
		liveAssignment(0, domain.PeriodLunch, domain.PositionLunchServer, 7),
		liveAssignment(0, domain.PeriodDinner, domain.PositionFloat, 9),
	}
	snapshot := []*domain.PublishedAssignment{
		snapshotRow(0, domain.PeriodLunch, domain.PositionLunchServer, 7),
	}

	assert.True(t, SnapshotChanged(live, snapshot))
}

func TestSnapshotChanged_SlotClearedSincePublish(t *testing.T) {
	live := []*domain.Assignment{
		liveAssignment(0, domain.PeriodLunch, domain.PositionLunchServer, 7),
	}
	snapshot := []*domain.PublishedAssignment{
		snapshotRow(0, domain.PeriodLunch, domain.PositionLunchServer, 7),
		snapshotRow(0, domain.PeriodDinner, domain.PositionFloat, 9),
	}

	assert.True(t, SnapshotChanged(live, snapshot))
}

func TestSnapshotChanged_PostedWithEmptySnapshot(t *testing.T) {
	live := []*domain.Assignment{
		liveAssignment(5, domain.PeriodDinner, domain.PositionSushi, 3),
	}

	assert.True(t, SnapshotChanged(live, nil))
}

func TestSnapshotChanged_NilSnapshotEmployee(t *testing.T) {
	live := []*domain.Assignment{
		liveAssignment(0, domain.PeriodLunch, domain.PositionLunchServer, 7),
	}
	snapshot := []*domain.PublishedAssignment{
		{
			Date:     day(0),
			Period:   domain.PeriodLunch,
			Position: domain.PositionLunchServer,
		},
	}

	assert.True(t, SnapshotChanged(live, snapshot))
}

func TestSnapshotChanged_SameCellDifferentDay(t *testing.T) {
	live := []*domain.Assignment{
		liveAssignment(1, domain.PeriodLunch, domain.PositionLunchServer, 7),
	}
	snapshot := []*domain.PublishedAssignment{
		snapshotRow(2, domain.PeriodLunch, domain.PositionLunchServer, 7),
	}

	assert.True(t, SnapshotChanged(live, snapshot))
}
