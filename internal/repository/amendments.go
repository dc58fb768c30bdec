package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/resto-dev/resto-scheduler/backend/internal/domain"
)

// upsertAmendmentTx 按 (周期, 日期, 时段, 岗位) 对修订记录做 upsert：
// 首次记录时写入 original_employee_id，之后的改动只覆盖 new/changed 字段，
// original 一旦写入就不再变化
func upsertAmendmentTx(ctx context.Context, tx *sql.Tx, a *domain.Amendment) error {
	query := `
		INSERT INTO amendments (schedule_period_id, date, period, position, original_employee_id, new_employee_id, changed_by, changed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (schedule_period_id, date, period, position)
		DO UPDATE SET
			new_employee_id = EXCLUDED.new_employee_id,
			changed_by = EXCLUDED.changed_by,
			changed_at = EXCLUDED.changed_at
		RETURNING id, original_employee_id
	`

	params := []any{a.SchedulePeriodID, a.Date, a.Period, a.Position, a.OriginalEmployeeID, a.NewEmployeeID, a.ChangedByUserID, a.ChangedAt}
	if err := tx.QueryRowContext(ctx, query, params...).Scan(&a.ID, &a.OriginalEmployeeID); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetAmendmentsByPeriodID(periodID int64) ([]*domain.Amendment, error) {
	query := `
		SELECT id, schedule_period_id, date, period, position, original_employee_id, new_employee_id, changed_by, changed_at
		FROM amendments
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

	amendments := make([]*domain.Amendment, 0)
	for rows.Next() {
		a := &domain.Amendment{}
		dst := []any{&a.ID, &a.SchedulePeriodID, &a.Date, &a.Period, &a.Position, &a.OriginalEmployeeID, &a.NewEmployeeID, &a.ChangedByUserID, &a.ChangedAt}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		amendments = append(amendments, a)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return amendments, nil
}
