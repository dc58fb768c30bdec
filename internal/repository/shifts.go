package repository

import (
	"context"
	"time"

	"github.com/resto-dev/resto-scheduler/backend/internal/domain"
)

// EnsureShift 按自然键 (date, period, position) 找到或创建排班格子。
// 两个并发调用靠唯一约束收敛到同一行，所以这里用 upsert 而不是先查后插
func (r *Repository) EnsureShift(date time.Time, period domain.ShiftPeriod, position domain.Position) (*domain.Shift, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		INSERT INTO shifts (date, period, position)
		VALUES ($1, $2, $3)
		ON CONFLICT (date, period, position) DO UPDATE SET date = EXCLUDED.date
		RETURNING id
	`

	shift := &domain.Shift{
		Date:     date,
		Period:   period,
		Position: position,
	}

	if err := r.dbpool.QueryRowContext(ctx, query, date, period, position).Scan(&shift.ID); err != nil {
		return nil, err
	}

	return shift, nil
}
