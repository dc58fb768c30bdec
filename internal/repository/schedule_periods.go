package repository

import (
	"context"
	"time"

	"github.com/resto-dev/resto-scheduler/backend/internal/domain"
)

// EnsurePeriod 按起始日期找到或创建一个 14 天的周期（调用方负责把日期对齐到周一）。
// start_date 上的唯一约束保证并发调用不会产生重复周期
func (r *Repository) EnsurePeriod(startDate time.Time) (*domain.SchedulePeriod, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	endDate := startDate.AddDate(0, 0, 13)

	query := `
		INSERT INTO schedule_periods (start_date, end_date, status)
		VALUES ($1, $2, 'DRAFT')
		ON CONFLICT (start_date) DO NOTHING
	`
	if _, err := r.dbpool.ExecContext(ctx, query, startDate, endDate); err != nil {
		return nil, err
	}

	return r.GetPeriodByStartDate(startDate)
}

func (r *Repository) GetPeriodByID(id int64) (*domain.SchedulePeriod, error) {
	query := `
		SELECT start_date, end_date, status, posted_at, posted_by_user_id
		FROM schedule_periods WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	period := &domain.SchedulePeriod{
		ID: id,
	}

	dst := []any{&period.StartDate, &period.EndDate, &period.Status, &period.PostedAt, &period.PostedByUserID}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return period, nil
}

func (r *Repository) GetPeriodByStartDate(startDate time.Time) (*domain.SchedulePeriod, error) {
	query := `
		SELECT id, end_date, status, posted_at, posted_by_user_id
		FROM schedule_periods WHERE start_date = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	period := &domain.SchedulePeriod{
		StartDate: startDate,
	}

	dst := []any{&period.ID, &period.EndDate, &period.Status, &period.PostedAt, &period.PostedByUserID}
	if err := r.dbpool.QueryRowContext(ctx, query, startDate).Scan(dst...); err != nil {
		return nil, err
	}

	return period, nil
}

// FindPostedContaining 返回包含该日期的已发布周期，不存在时返回 sql.ErrNoRows。
// 周期互不重叠，所以至多只有一个
func (r *Repository) FindPostedContaining(date time.Time) (*domain.SchedulePeriod, error) {
	query := `
		SELECT id, start_date, end_date, status, posted_at, posted_by_user_id
		FROM schedule_periods
		WHERE status = 'POSTED' AND $1 BETWEEN start_date AND end_date
		LIMIT 1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	period := &domain.SchedulePeriod{}
	dst := []any{&period.ID, &period.StartDate, &period.EndDate, &period.Status, &period.PostedAt, &period.PostedByUserID}
	if err := r.dbpool.QueryRowContext(ctx, query, date).Scan(dst...); err != nil {
		return nil, err
	}

	return period, nil
}

// MarkPosted 把周期置为 POSTED，重复发布时只刷新发布时间和发布人，
// 状态永远不会回到 DRAFT
func (r *Repository) MarkPosted(period *domain.SchedulePeriod, postedBy int64, postedAt time.Time) error {
	query := `
		UPDATE schedule_periods
		SET status = 'POSTED', posted_at = $1, posted_by_user_id = $2
		WHERE id = $3
		RETURNING status, posted_at, posted_by_user_id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	dst := []any{&period.Status, &period.PostedAt, &period.PostedByUserID}
	if err := r.dbpool.QueryRowContext(ctx, query, postedAt, postedBy, period.ID).Scan(dst...); err != nil {
		return err
	}

	return nil
}
