package repository

import (
	"context"
	"time"

	"github.com/resto-dev/resto-scheduler/backend/internal/domain"
)

// UpsertAssignment 把格子指派给员工，一个格子至多一条记录，
// 重复指派直接覆盖原来的员工而不是新增一行
func (r *Repository) UpsertAssignment(shiftID int64, employeeID int64) (*domain.Assignment, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		INSERT INTO assignments (shift_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (shift_id) DO UPDATE SET user_id = EXCLUDED.user_id
		RETURNING id
	`

	assignment := &domain.Assignment{
		ShiftID:    shiftID,
		EmployeeID: employeeID,
	}

	if err := r.dbpool.QueryRowContext(ctx, query, shiftID, employeeID).Scan(&assignment.ID); err != nil {
		return nil, err
	}

	return assignment, nil
}

func (r *Repository) GetAssignmentByID(id int64) (*domain.Assignment, error) {
	query := `
		SELECT a.id, a.shift_id, s.date, s.period, s.position, a.user_id
		FROM assignments a
		JOIN shifts s ON a.shift_id = s.id
		WHERE a.id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	assignment := &domain.Assignment{}
	dst := []any{&assignment.ID, &assignment.ShiftID, &assignment.Date, &assignment.Period, &assignment.Position, &assignment.EmployeeID}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return assignment, nil
}

func (r *Repository) GetAssignmentByShiftID(shiftID int64) (*domain.Assignment, error) {
	query := `
		SELECT a.id, a.shift_id, s.date, s.period, s.position, a.user_id
		FROM assignments a
		JOIN shifts s ON a.shift_id = s.id
		WHERE a.shift_id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	assignment := &domain.Assignment{}
	dst := []any{&assignment.ID, &assignment.ShiftID, &assignment.Date, &assignment.Period, &assignment.Position, &assignment.EmployeeID}
	if err := r.dbpool.QueryRowContext(ctx, query, shiftID).Scan(dst...); err != nil {
		return nil, err
	}

	return assignment, nil
}

func (r *Repository) GetAssignmentsByDateRange(start, end time.Time) ([]*domain.Assignment, error) {
	query := `
		SELECT a.id, a.shift_id, s.date, s.period, s.position, a.user_id
		FROM assignments a
		JOIN shifts s ON a.shift_id = s.id
		WHERE s.date BETWEEN $1 AND $2
		ORDER BY s.date, s.period, s.position
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	assignments := make([]*domain.Assignment, 0)
	for rows.Next() {
		assignment := &domain.Assignment{}
		dst := []any{&assignment.ID, &assignment.ShiftID, &assignment.Date, &assignment.Period, &assignment.Position, &assignment.EmployeeID}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		assignments = append(assignments, assignment)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return assignments, nil
}

func (r *Repository) GetAssignmentsByEmployeeAndDate(employeeID int64, date time.Time) ([]*domain.Assignment, error) {
	query := `
		SELECT a.id, a.shift_id, s.date, s.period, s.position, a.user_id
		FROM assignments a
		JOIN shifts s ON a.shift_id = s.id
		WHERE a.user_id = $1 AND s.date = $2
		ORDER BY s.period, s.position
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, employeeID, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	assignments := make([]*domain.Assignment, 0)
	for rows.Next() {
		assignment := &domain.Assignment{}
		dst := []any{&assignment.ID, &assignment.ShiftID, &assignment.Date, &assignment.Period, &assignment.Position, &assignment.EmployeeID}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		assignments = append(assignments, assignment)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return assignments, nil
}

// ApplyDayEdit 在一个事务里完成一个格子的改动：指派的写入或清空，
// 以及（已发布周期内）对应的修订记录。任何一步失败整体回滚，
// 不会出现排班已改但没有留下修订记录的情况
func (r *Repository) ApplyDayEdit(shiftID int64, employeeID *int64, amendment *domain.Amendment) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if employeeID == nil {
		query := `DELETE FROM assignments WHERE shift_id = $1`
		if _, err := tx.ExecContext(ctx, query, shiftID); err != nil {
			return err
		}
	} else {
		query := `
			INSERT INTO assignments (shift_id, user_id)
			VALUES ($1, $2)
			ON CONFLICT (shift_id) DO UPDATE SET user_id = EXCLUDED.user_id
		`
		if _, err := tx.ExecContext(ctx, query, shiftID, *employeeID); err != nil {
			return err
		}
	}

	if amendment != nil {
		if err := upsertAmendmentTx(ctx, tx, amendment); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteAssignmentsByDate(date time.Time) error {
	query := `
		DELETE FROM assignments
		WHERE shift_id IN (SELECT id FROM shifts WHERE date = $1)
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if _, err := r.dbpool.ExecContext(ctx, query, date); err != nil {
		return err
	}

	return nil
}
