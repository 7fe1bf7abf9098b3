package repos

import (
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"purposefood/internal/domain"
)

type SocialRepo struct{ db *sqlx.DB }

func NewSocialRepo(db *sqlx.DB) *SocialRepo { return &SocialRepo{db: db} }

const socialCols = `
  id, title, COALESCE(content,'') AS content, platform, status,
  COALESCE(scheduled_for,'') AS scheduled_for, created_at, COALESCE(updated_at,'') AS updated_at`

func (r *SocialRepo) Get(id string) (domain.SocialPost, error) {
	var p domain.SocialPost
	err := r.db.Get(&p, `SELECT`+socialCols+` FROM social_posts WHERE id = ?`, id)
	return p, err
}

func (r *SocialRepo) List(status string, limit int) ([]domain.SocialPost, error) {
	if limit <= 0 {
		limit = 100
	}
	q := `SELECT` + socialCols + ` FROM social_posts`
	args := []any{}
	if status != "" {
		q += ` WHERE status = ?`
		args = append(args, status)
	}
	q += ` ORDER BY datetime(created_at) DESC LIMIT ?`
	args = append(args, limit)

	var out []domain.SocialPost
	err := r.db.Select(&out, q, args...)
	return out, err
}

func (r *SocialRepo) Create(p domain.SocialPost) error {
	_, err := r.db.Exec(`
	  INSERT INTO social_posts(id, title, content, platform, status, scheduled_for, created_at)
	  VALUES(?,?,?,?,?,?,CURRENT_TIMESTAMP)
	`, p.ID, p.Title, p.Content, p.Platform, p.Status, p.ScheduledFor)
	return errors.Wrap(err, "insert social post")
}

func (r *SocialRepo) Update(p domain.SocialPost) error {
	res, err := r.db.Exec(`
	  UPDATE social_posts
	  SET title = ?, content = ?, platform = ?, status = ?, scheduled_for = ?, updated_at = CURRENT_TIMESTAMP
	  WHERE id = ?
	`, p.Title, p.Content, p.Platform, p.Status, p.ScheduledFor, p.ID)
	if err != nil {
		return errors.Wrap(err, "update social post")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errors.Errorf("social post %s not found", p.ID)
	}
	return nil
}

func (r *SocialRepo) Delete(id string) error {
	_, err := r.db.Exec(`DELETE FROM social_posts WHERE id = ?`, id)
	return err
}
