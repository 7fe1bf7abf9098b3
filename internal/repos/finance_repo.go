package repos

import (
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"purposefood/internal/domain"
)

type FinanceRepo struct{ db *sqlx.DB }

func NewFinanceRepo(db *sqlx.DB) *FinanceRepo { return &FinanceRepo{db: db} }

func (r *FinanceRepo) Insert(e domain.FinancialEntry) error {
	_, err := r.db.Exec(`
	  INSERT INTO finance_entries(id, kind, category, description, amount, entry_date, order_id, created_at)
	  VALUES(?,?,?,?,?,?,?,CURRENT_TIMESTAMP)
	`, e.ID, e.Kind, e.Category, e.Description, e.Amount, e.EntryDate, nullable(e.OrderID))
	return errors.Wrap(err, "insert finance entry")
}

// List returns entries within [from, to] (ISO dates, inclusive), optionally
// filtered by kind.
func (r *FinanceRepo) List(from, to, kind string) ([]domain.FinancialEntry, error) {
	q := `
	  SELECT id, kind, COALESCE(category,'') AS category, COALESCE(description,'') AS description,
	         amount, entry_date, COALESCE(order_id,'') AS order_id, created_at
	  FROM finance_entries
	  WHERE entry_date >= ? AND entry_date <= ?`
	args := []any{from, to}
	if kind != "" {
		q += ` AND kind = ?`
		args = append(args, kind)
	}
	q += ` ORDER BY entry_date DESC, datetime(created_at) DESC`

	var out []domain.FinancialEntry
	err := r.db.Select(&out, q, args...)
	return out, err
}

type FinanceSummary struct {
	Income  float64 `db:"income" json:"income"`
	Expense float64 `db:"expense" json:"expense"`
	Net     float64 `db:"net" json:"net"`
}

func (r *FinanceRepo) Summary(from, to string) (FinanceSummary, error) {
	var s FinanceSummary
	err := r.db.Get(&s, `
	  SELECT
	    COALESCE(SUM(CASE WHEN kind = 'income'  THEN amount END),0) AS income,
	    COALESCE(SUM(CASE WHEN kind = 'expense' THEN amount END),0) AS expense,
	    COALESCE(SUM(CASE WHEN kind = 'income'  THEN amount ELSE -amount END),0) AS net
	  FROM finance_entries
	  WHERE entry_date >= ? AND entry_date <= ?
	`, from, to)
	return s, err
}

type CategoryTotal struct {
	Kind     string  `db:"kind" json:"kind"`
	Category string  `db:"category" json:"category"`
	Total    float64 `db:"total" json:"total"`
}

func (r *FinanceRepo) ByCategory(from, to string) ([]CategoryTotal, error) {
	var out []CategoryTotal
	err := r.db.Select(&out, `
	  SELECT kind, COALESCE(category,'') AS category, SUM(amount) AS total
	  FROM finance_entries
	  WHERE entry_date >= ? AND entry_date <= ?
	  GROUP BY kind, category
	  ORDER BY kind, total DESC
	`, from, to)
	return out, err
}

func (r *FinanceRepo) Delete(id string) error {
	_, err := r.db.Exec(`DELETE FROM finance_entries WHERE id = ?`, id)
	return err
}
