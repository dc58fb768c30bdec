package repository

import (
	"context"
	"time"

	"github.com/resto-dev/resto-scheduler/backend/internal/domain"
)

func (r *Repository) CreateNotification(n *domain.Notification) error {
	query := `
		INSERT INTO notifications (recipient_id, type, payload)
		VALUES ($1, $2, $3)
		RETURNING id, read, created_at
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if err := r.dbpool.QueryRowContext(ctx, query, n.RecipientID, n.Type, n.Payload).Scan(&n.ID, &n.Read, &n.CreatedAt); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetNotificationsByRecipientID(recipientID int64) ([]*domain.Notification, error) {
	query := `
		SELECT id, recipient_id, type, payload, read, created_at
		FROM notifications
		WHERE recipient_id = $1
		ORDER BY created_at DESC
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, recipientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notifications := make([]*domain.Notification, 0)
	for rows.Next() {
		n := &domain.Notification{}
		if err := rows.Scan(&n.ID, &n.RecipientID, &n.Type, &n.Payload, &n.Read, &n.CreatedAt); err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return notifications, nil
}

func (r *Repository) CountUnreadNotifications(recipientID int64) (int64, error) {
	query := `SELECT COUNT(*) FROM notifications WHERE recipient_id = $1 AND NOT read`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	var count int64
	if err := r.dbpool.QueryRowContext(ctx, query, recipientID).Scan(&count); err != nil {
		return 0, err
	}

	return count, nil
}

// MarkNotificationRead 只允许收件人本人把通知置为已读
func (r *Repository) MarkNotificationRead(id int64, recipientID int64) (bool, error) {
	query := `UPDATE notifications SET read = TRUE WHERE id = $1 AND recipient_id = $2 AND NOT read`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	result, err := r.dbpool.ExecContext(ctx, query, id, recipientID)
	if err != nil {
		return false, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return affected > 0, nil
}

func (r *Repository) MarkAllNotificationsRead(recipientID int64) error {
	query := `UPDATE notifications SET read = TRUE WHERE recipient_id = $1 AND NOT read`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if _, err := r.dbpool.ExecContext(ctx, query, recipientID); err != nil {
		return err
	}

	return nil
}

// DeleteNotificationsBefore 删除某个时间点之前产生的全部通知，返回删除的条数
func (r *Repository) DeleteNotificationsBefore(cutoff time.Time) (int64, error) {
	query := `DELETE FROM notifications WHERE created_at < $1`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	result, err := r.dbpool.ExecContext(ctx, query, cutoff)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}
