package publish

import (
	"errors"
	"time"

	"github.com/resto-dev/resto-scheduler/backend/internal/domain"
	"github.com/resto-dev/resto-scheduler/backend/internal/repository"
)

var ErrPeriodNotPosted = errors.New("该排班周期尚未发布")

// Publisher 负责排班周期的发布与重发布。
// 发布是对实时排班做一次整体快照，之后实时排班可以继续修改，
// 只有再次发布才会把改动同步到快照
type Publisher struct {
	repository *repository.Repository
}

func NewPublisher(repository *repository.Repository) *Publisher {
	return &Publisher{
		repository: repository,
	}
}

// Post 发布从 startDate 开始的 14 天周期（调用方保证 startDate 是周一）。
// 周期不存在时自动创建，已发布的周期允许重复发布，每次都整体重建快照
func (p *Publisher) Post(startDate time.Time, postedBy int64) (*domain.SchedulePeriod, error) {
	period, err := p.repository.EnsurePeriod(startDate)
	if err != nil {
		return nil, err
	}

	if err := p.repository.MarkPosted(period, postedBy, time.Now()); err != nil {
		return nil, err
	}

	if err := p.rebuildSnapshot(period); err != nil {
		return nil, err
	}

	return period, nil
}

// Republish 重建已发布周期的快照，周期未发布时返回 ErrPeriodNotPosted
func (p *Publisher) Republish(periodID int64) (*domain.SchedulePeriod, error) {
	period, err := p.repository.GetPeriodByID(periodID)
	if err != nil {
		return nil, err
	}

	if !period.IsPosted() {
		return nil, ErrPeriodNotPosted
	}

	if err := p.rebuildSnapshot(period); err != nil {
		return nil, err
	}

	return period, nil
}

// NeedsRepublish 判断实时排班相对已发布快照是否有差异。
// 未发布的周期永远返回 false，因为本来就没有对外承诺过任何排班
func (p *Publisher) NeedsRepublish(periodID int64) (bool, error) {
	period, err := p.repository.GetPeriodByID(periodID)
	if err != nil {
		return false, err
	}

	if !period.IsPosted() {
		return false, nil
	}

	assignments, err := p.repository.GetAssignmentsByDateRange(period.StartDate, period.EndDate)
	if err != nil {
		return false, err
	}

	snapshot, err := p.repository.GetSnapshotRows(period.ID)
	if err != nil {
		return false, err
	}

	return SnapshotChanged(assignments, snapshot), nil
}

func (p *Publisher) rebuildSnapshot(period *domain.SchedulePeriod) error {
	assignments, err := p.repository.GetAssignmentsByDateRange(period.StartDate, period.EndDate)
	if err != nil {
		return err
	}

	rows := BuildSnapshotRows(period.ID, assignments)
	return p.repository.ReplaceSnapshot(period.ID, rows)
}
