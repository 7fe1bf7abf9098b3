package repos

import (
	"encoding/json"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"purposefood/internal/domain"
)

type NotificationRepo struct{ db *sqlx.DB }

func NewNotificationRepo(db *sqlx.DB) *NotificationRepo { return &NotificationRepo{db: db} }

// InsertBatch appends notifications in one transaction. All-or-nothing for
// the batch itself; callers treat a failure here as advisory (stock updates
// already applied are never rolled back).
func (r *NotificationRepo) InsertBatch(ns []domain.Notification) error {
	if len(ns) == 0 {
		return nil
	}
	tx, err := r.db.Beginx()
	if err != nil {
		return errors.Wrap(err, "begin notification batch")
	}
	defer func() { _ = tx.Rollback() }()

	for _, n := range ns {
		dataJSON := n.DataJSON
		if dataJSON == "" && n.Data != nil {
			b, err := json.Marshal(n.Data)
			if err != nil {
				return errors.Wrap(err, "marshal notification data")
			}
			dataJSON = string(b)
		}
		if _, err := tx.Exec(`
		  INSERT INTO notifications(id, type, title, message, data_json, is_read, created_at)
		  VALUES(?,?,?,?,?,0,CURRENT_TIMESTAMP)
		`, n.ID, n.Type, n.Title, n.Message, dataJSON); err != nil {
			return errors.Wrap(err, "insert notification")
		}
	}
	return tx.Commit()
}

func (r *NotificationRepo) List(limit int, unreadOnly bool) ([]domain.Notification, error) {
	if limit <= 0 {
		limit = 50
	}
	q := `
	  SELECT id, type, title, COALESCE(message,'') AS message,
	         COALESCE(data_json,'') AS data_json, is_read, created_at
	  FROM notifications`
	if unreadOnly {
		q += ` WHERE is_read = 0`
	}
	q += ` ORDER BY datetime(created_at) DESC LIMIT ?`

	var out []domain.Notification
	if err := r.db.Select(&out, q, limit); err != nil {
		return nil, err
	}
	for i := range out {
		if out[i].DataJSON != "" {
			_ = json.Unmarshal([]byte(out[i].DataJSON), &out[i].Data)
		}
	}
	return out, nil
}

func (r *NotificationRepo) UnreadCount() (int, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM notifications WHERE is_read = 0`)
	return n, err
}

func (r *NotificationRepo) MarkRead(id string) error {
	res, err := r.db.Exec(`UPDATE notifications SET is_read = 1 WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errors.Errorf("notification %s not found", id)
	}
	return nil
}

func (r *NotificationRepo) MarkAllRead() error {
	_, err := r.db.Exec(`UPDATE notifications SET is_read = 1 WHERE is_read = 0`)
	return err
}
