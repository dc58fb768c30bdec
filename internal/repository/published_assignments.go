package repository

import (
	"context"
	"time"

	"github.com/resto-dev/resto-scheduler/backend/internal/domain"
)

// ReplaceSnapshot 在同一个事务里先清空该周期的全部快照行再整体重建，
// 避免并发读到重建了一半的快照
func (r *Repository) ReplaceSnapshot(periodID int64, rows []domain.PublishedAssignment) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `DELETE FROM published_assignments WHERE schedule_period_id = $1`
	if _, err := tx.ExecContext(ctx, query, periodID); err != nil {
		return err
	}

	query = `
		INSERT INTO published_assignments (schedule_period_id, date, period, position, user_id)
		VALUES ($1, $2, $3, $4, $5)
	`
	for i := range rows {
		params := []any{periodID, rows[i].Date, rows[i].Period, rows[i].Position, rows[i].EmployeeID}
		if _, err := tx.ExecContext(ctx, query, params...); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetSnapshotRows(periodID int64) ([]*domain.PublishedAssignment, error) {
	query := `
		SELECT id, schedule_period_id, date, period, position, user_id
		FROM published_assignments
		WHERE schedule_period_id = $1
		ORDER BY date, period, position
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, periodID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	snapshot := make([]*domain.PublishedAssignment, 0)
	for rows.Next() {
		row := &domain.PublishedAssignment{}
		dst := []any{&row.ID, &row.SchedulePeriodID, &row.Date, &row.Period, &row.Position, &row.EmployeeID}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		snapshot = append(snapshot, row)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return snapshot, nil
}

func (r *Repository) CountSnapshotRows(periodID int64) (int64, error) {
	query := `
		SELECT COUNT(*) FROM published_assignments WHERE schedule_period_id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	var count int64
	if err := r.dbpool.QueryRowContext(ctx, query, periodID).Scan(&count); err != nil {
		return 0, err
	}

	return count, nil
}
