package repository

import (
	"context"
	"time"

	"github.com/resto-dev/resto-scheduler/backend/internal/domain"
)

// UpsertAvailability 按 (用户, 星期几) 覆盖写入可用性设置
func (r *Repository) UpsertAvailability(a *domain.Availability) error {
	query := `
		INSERT INTO availabilities (user_id, day_of_week, lunch_available, dinner_available)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, day_of_week)
		DO UPDATE SET
			lunch_available = EXCLUDED.lunch_available,
			dinner_available = EXCLUDED.dinner_available
		RETURNING id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	params := []any{a.UserID, a.DayOfWeek, a.LunchAvailable, a.DinnerAvailable}
	if err := r.dbpool.QueryRowContext(ctx, query, params...).Scan(&a.ID); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetAvailabilitiesByUserID(userID int64) ([]*domain.Availability, error) {
	query := `
		SELECT id, user_id, day_of_week, lunch_available, dinner_available
		FROM availabilities
		WHERE user_id = $1
		ORDER BY day_of_week
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	availabilities := make([]*domain.Availability, 0)
	for rows.Next() {
		a := &domain.Availability{}
		if err := rows.Scan(&a.ID, &a.UserID, &a.DayOfWeek, &a.LunchAvailable, &a.DinnerAvailable); err != nil {
			return nil, err
		}
		availabilities = append(availabilities, a)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return availabilities, nil
}

func (r *Repository) GetAllAvailabilities() ([]*domain.Availability, error) {
	query := `
		SELECT id, user_id, day_of_week, lunch_available, dinner_available
		FROM availabilities
		ORDER BY user_id, day_of_week
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	availabilities := make([]*domain.Availability, 0)
	for rows.Next() {
		a := &domain.Availability{}
		if err := rows.Scan(&a.ID, &a.UserID, &a.DayOfWeek, &a.LunchAvailable, &a.DinnerAvailable); err != nil {
			return nil, err
		}
		availabilities = append(availabilities, a)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return availabilities, nil
}
