package repository

import (
	"context"
	"time"

	"github.com/resto-dev/resto-scheduler/backend/internal/domain"
)

const requestColumns = `
	id, type, status, requester_id, request_date, created_at, decided_by, decided_at, note,
	offer_assignment_id, receiver_id, receiver_confirmed, receiver_confirmed_at
`

func scanRequest(row interface{ Scan(dest ...any) error }, req *domain.Request) error {
	dst := []any{
		&req.ID, &req.Type, &req.Status, &req.RequesterID, &req.RequestDate, &req.CreatedAt,
		&req.DecidedByID, &req.DecidedAt, &req.Note,
		&req.OfferAssignmentID, &req.ReceiverID, &req.ReceiverConfirmed, &req.ReceiverConfirmedAt,
	}
	return row.Scan(dst...)
}

func (r *Repository) CreateRequest(req *domain.Request) error {
	query := `
		INSERT INTO requests (type, status, requester_id, request_date, note, offer_assignment_id, receiver_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	params := []any{req.Type, req.Status, req.RequesterID, req.RequestDate, req.Note, req.OfferAssignmentID, req.ReceiverID}
	if err := r.dbpool.QueryRowContext(ctx, query, params...).Scan(&req.ID, &req.CreatedAt); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetRequestByID(id int64) (*domain.Request, error) {
	query := `SELECT ` + requestColumns + ` FROM requests WHERE id = $1`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	req := &domain.Request{}
	if err := scanRequest(r.dbpool.QueryRowContext(ctx, query, id), req); err != nil {
		return nil, err
	}

	return req, nil
}

func (r *Repository) GetRequestsByRequesterID(requesterID int64) ([]*domain.Request, error) {
	query := `SELECT ` + requestColumns + ` FROM requests WHERE requester_id = $1 ORDER BY created_at DESC`
	return r.queryRequests(query, requesterID)
}

// GetPendingTradeInvites 查询等待某位接收人确认的换班申请
func (r *Repository) GetPendingTradeInvites(receiverID int64) ([]*domain.Request, error) {
	query := `
		SELECT ` + requestColumns + `
		FROM requests
		WHERE receiver_id = $1 AND type = 'TRADE' AND status = 'PENDING' AND NOT receiver_confirmed
		ORDER BY created_at DESC
	`
	return r.queryRequests(query, receiverID)
}

func (r *Repository) GetRequestsByStatus(status domain.RequestStatus) ([]*domain.Request, error) {
	query := `SELECT ` + requestColumns + ` FROM requests WHERE status = $1 ORDER BY created_at`
	return r.queryRequests(query, status)
}

func (r *Repository) GetAllRequests() ([]*domain.Request, error) {
	query := `SELECT ` + requestColumns + ` FROM requests ORDER BY created_at DESC`
	return r.queryRequests(query)
}

// GetApprovedTimeOffByDateRange 查询区间内已批准的请假申请，供排班视图叠加展示
func (r *Repository) GetApprovedTimeOffByDateRange(start, end time.Time) ([]*domain.Request, error) {
	query := `
		SELECT ` + requestColumns + `
		FROM requests
		WHERE type = 'TIME_OFF' AND status = 'APPROVED' AND request_date BETWEEN $1 AND $2
		ORDER BY request_date
	`
	return r.queryRequests(query, start, end)
}

func (r *Repository) queryRequests(query string, params ...any) ([]*domain.Request, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, params...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	requests := make([]*domain.Request, 0)
	for rows.Next() {
		req := &domain.Request{}
		if err := scanRequest(rows, req); err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return requests, nil
}

// ConfirmTradeRequest 把接收人确认写入申请，只作用于仍在等待中的换班申请，
// 返回是否真的发生了确认（并发重复确认时只有一次返回 true）
func (r *Repository) ConfirmTradeRequest(requestID int64, receiverID int64, confirmedAt time.Time) (bool, error) {
	query := `
		UPDATE requests
		SET receiver_confirmed = TRUE, receiver_confirmed_at = $1
		WHERE id = $2 AND receiver_id = $3 AND type = 'TRADE' AND status = 'PENDING' AND NOT receiver_confirmed
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	result, err := r.dbpool.ExecContext(ctx, query, confirmedAt, requestID, receiverID)
	if err != nil {
		return false, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return affected > 0, nil
}

// DecideRequest 把申请从 PENDING 迁移到终态，status 条件保证并发下只会决定一次
func (r *Repository) DecideRequest(requestID int64, status domain.RequestStatus, decidedBy int64, decidedAt time.Time, note string) (bool, error) {
	query := `
		UPDATE requests
		SET status = $1, decided_by = $2, decided_at = $3, note = $4
		WHERE id = $5 AND status = 'PENDING'
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	result, err := r.dbpool.ExecContext(ctx, query, status, decidedBy, decidedAt, note, requestID)
	if err != nil {
		return false, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return affected > 0, nil
}

// ApproveTradeRequest 在一个事务里完成换班批准的全部效果：
// 申请置为 APPROVED、排班改派给接收人、必要时写入修订记录。
// 被交换的指派在事务内加锁后重新读取，修订记录的原员工取的是改派那一刻的值，
// 不受批准前并发改动的影响。任何一步失败整体回滚，申请保持 PENDING 可再次处理
func (r *Repository) ApproveTradeRequest(requestID int64, decidedBy int64, decidedAt time.Time, note string, assignmentID int64, newEmployeeID int64, period *domain.SchedulePeriod) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	decideQuery := `
		UPDATE requests
		SET status = 'APPROVED', decided_by = $1, decided_at = $2, note = $3
		WHERE id = $4 AND status = 'PENDING'
	`
	result, err := tx.ExecContext(ctx, decideQuery, decidedBy, decidedAt, note, requestID)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	if affected == 0 {
		return false, nil
	}

	lockQuery := `
		SELECT a.user_id, s.date, s.period, s.position
		FROM assignments a
		JOIN shifts s ON a.shift_id = s.id
		WHERE a.id = $1
		FOR UPDATE OF a
	`
	var oldEmployeeID int64
	var date time.Time
	var shiftPeriod domain.ShiftPeriod
	var position domain.Position
	if err := tx.QueryRowContext(ctx, lockQuery, assignmentID).Scan(&oldEmployeeID, &date, &shiftPeriod, &position); err != nil {
		return false, err
	}

	reassignQuery := `UPDATE assignments SET user_id = $1 WHERE id = $2`
	if _, err := tx.ExecContext(ctx, reassignQuery, newEmployeeID, assignmentID); err != nil {
		return false, err
	}

	if period != nil && oldEmployeeID != newEmployeeID {
		amendment := &domain.Amendment{
			SchedulePeriodID:   period.ID,
			Date:               date,
			Period:             shiftPeriod,
			Position:           position,
			OriginalEmployeeID: &oldEmployeeID,
			NewEmployeeID:      &newEmployeeID,
			ChangedByUserID:    decidedBy,
			ChangedAt:          decidedAt,
		}
		if err := upsertAmendmentTx(ctx, tx, amendment); err != nil {
			return false, err
		}
	}

	if err := tx.Commit(); err != nil {
		return false, err
	}

	return true, nil
}
