package repos

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"purposefood/internal/domain"
)

type InvoiceRepo struct{ db *sqlx.DB }

func NewInvoiceRepo(db *sqlx.DB) *InvoiceRepo { return &InvoiceRepo{db: db} }

const invoiceCols = `
  id, number, COALESCE(order_id,'') AS order_id, COALESCE(customer_name,'') AS customer_name,
  total, status, issued_at, COALESCE(due_date,'') AS due_date`

// NextNumber produces a sequential display number like PF-2026-0007.
func (r *InvoiceRepo) NextNumber(now time.Time) (string, error) {
	var n int
	if err := r.db.Get(&n, `SELECT COUNT(*) FROM invoices WHERE number LIKE ?`,
		fmt.Sprintf("PF-%d-%%", now.Year())); err != nil {
		return "", err
	}
	return fmt.Sprintf("PF-%d-%04d", now.Year(), n+1), nil
}

func (r *InvoiceRepo) Create(inv domain.Invoice) error {
	_, err := r.db.Exec(`
	  INSERT INTO invoices(id, number, order_id, customer_name, total, status, issued_at, due_date)
	  VALUES(?,?,?,?,?,?,CURRENT_TIMESTAMP,?)
	`, inv.ID, inv.Number, nullable(inv.OrderID), inv.CustomerName, inv.Total, inv.Status, inv.DueDate)
	return errors.Wrap(err, "insert invoice")
}

func (r *InvoiceRepo) Get(id string) (domain.Invoice, error) {
	var inv domain.Invoice
	err := r.db.Get(&inv, `SELECT`+invoiceCols+` FROM invoices WHERE id = ?`, id)
	return inv, err
}

func (r *InvoiceRepo) List(limit int) ([]domain.Invoice, error) {
	if limit <= 0 {
		limit = 100
	}
	var out []domain.Invoice
	err := r.db.Select(&out, `
	  SELECT`+invoiceCols+` FROM invoices ORDER BY datetime(issued_at) DESC LIMIT ?
	`, limit)
	return out, err
}

func (r *InvoiceRepo) UpdateStatus(id, status string) error {
	res, err := r.db.Exec(`UPDATE invoices SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errors.Errorf("invoice %s not found", id)
	}
	return nil
}
