package repos

import (
	"github.com/jmoiron/sqlx"

	"purposefood/internal/domain"
)

type OrderRepo struct{ db *sqlx.DB }

func NewOrderRepo(db *sqlx.DB) *OrderRepo { return &OrderRepo{db: db} }

// ---------- Admin list summary ----------
type OrderSummary struct {
	ID            string  `db:"id" json:"id"`
	CustomerName  string  `db:"customer_name" json:"customer_name"`
	CustomerPhone string  `db:"customer_phone" json:"customer_phone"`
	Total         float64 `db:"total" json:"total"`
	Status        string  `db:"status" json:"status"`
	CreatedAt     string  `db:"created_at" json:"created_at"`
}

// ---------- Order detail ----------
type OrderItemRow struct {
	ProductID string  `db:"product_id" json:"product_id"`
	Name      string  `db:"name" json:"name"`
	Qty       int     `db:"qty" json:"qty"`
	Price     float64 `db:"price" json:"price"`
	Subtotal  float64 `db:"subtotal" json:"subtotal"`
}

const orderCols = `
  id, COALESCE(customer_id,'') AS customer_id, customer_name,
  COALESCE(customer_phone,'') AS customer_phone, COALESCE(delivery_address,'') AS delivery_address,
  COALESCE(delivery_estimate,'') AS delivery_estimate, total, status,
  COALESCE(notes,'') AS notes, created_at, COALESCE(updated_at,'') AS updated_at`

// Create inserts a new order header.
func (r *OrderRepo) Create(o domain.Order) error {
	_, err := r.db.Exec(`
	  INSERT INTO orders
	    (id, customer_id, customer_name, customer_phone, delivery_address,
	     delivery_estimate, total, status, notes, created_at)
	  VALUES (?,?,?,?,?,?,?,?,?,CURRENT_TIMESTAMP)
	`, o.ID, nullable(o.CustomerID), o.CustomerName, o.CustomerPhone, o.DeliveryAddress,
		o.DeliveryEstimate, o.Total, o.Status, o.Notes)
	return err
}

// InsertItem inserts a single line item.
func (r *OrderRepo) InsertItem(orderID, productID string, qty int, price float64) error {
	_, err := r.db.Exec(`
	  INSERT INTO order_items(order_id, product_id, qty, price)
	  VALUES(?, ?, ?, ?)
	`, orderID, productID, qty, price)
	return err
}

func (r *OrderRepo) Get(orderID string) (domain.Order, []OrderItemRow, error) {
	var o domain.Order
	if err := r.db.Get(&o, `SELECT`+orderCols+` FROM orders WHERE id = ?`, orderID); err != nil {
		return domain.Order{}, nil, err
	}

	var items []OrderItemRow
	if err := r.db.Select(&items, `
		SELECT oi.product_id, p.name, oi.qty, oi.price, (oi.qty * oi.price) AS subtotal
		FROM order_items oi
		JOIN products p ON p.id = oi.product_id
		WHERE oi.order_id = ?
		ORDER BY p.name
	`, orderID); err != nil {
		return domain.Order{}, nil, err
	}

	return o, items, nil
}

// Items returns the raw line items of an order as availability-core input.
func (r *OrderRepo) Items(orderID string) ([]domain.LineItem, error) {
	var out []domain.LineItem
	err := r.db.Select(&out, `
	  SELECT product_id, qty AS quantity FROM order_items WHERE order_id = ?
	`, orderID)
	return out, err
}

func (r *OrderRepo) ListLatest(limit int) ([]OrderSummary, error) {
	if limit <= 0 {
		limit = 100
	}
	var out []OrderSummary
	err := r.db.Select(&out, `
		SELECT id, customer_name, COALESCE(customer_phone,'') AS customer_phone, total, status, created_at
		FROM orders
		ORDER BY datetime(created_at) DESC
		LIMIT ?
	`, limit)
	return out, err
}

func (r *OrderRepo) ListByStatus(status string, limit int) ([]OrderSummary, error) {
	if limit <= 0 {
		limit = 100
	}
	var out []OrderSummary
	err := r.db.Select(&out, `
		SELECT id, customer_name, COALESCE(customer_phone,'') AS customer_phone, total, status, created_at
		FROM orders
		WHERE status = ?
		ORDER BY datetime(created_at) DESC
		LIMIT ?
	`, status, limit)
	return out, err
}

func (r *OrderRepo) ListByCustomer(customerID string) ([]OrderSummary, error) {
	var out []OrderSummary
	err := r.db.Select(&out, `
		SELECT id, customer_name, COALESCE(customer_phone,'') AS customer_phone, total, status, created_at
		FROM orders
		WHERE customer_id = ?
		ORDER BY datetime(created_at) DESC
	`, customerID)
	return out, err
}

func (r *OrderRepo) UpdateStatus(id, status string) error {
	_, err := r.db.Exec(`UPDATE orders SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`, status, id)
	return err
}

func (r *OrderRepo) CountByStatus(status string) (int, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM orders WHERE status = ?`, status)
	return n, err
}

// TodayStats returns order count and revenue for the current day, cancelled
// orders excluded.
func (r *OrderRepo) TodayStats() (int, float64, error) {
	var row struct {
		N     int     `db:"n" json:"n"`
		Total float64 `db:"total" json:"total"`
	}
	err := r.db.Get(&row, `
		SELECT COUNT(*) AS n, COALESCE(SUM(total),0) AS total
		FROM orders
		WHERE date(created_at) = date('now') AND status != 'cancelled'
	`)
	return row.N, row.Total, err
}
