package domain

// Order status workflow. Cancelled is reachable from any non-terminal state.
const (
	OrderPending   = "pending"
	OrderConfirmed = "confirmed"
	OrderPreparing = "preparing"
	OrderReady     = "ready"
	OrderDelivered = "delivered"
	OrderCancelled = "cancelled"
)

var orderTransitions = map[string][]string{
	OrderPending:   {OrderConfirmed, OrderCancelled},
	OrderConfirmed: {OrderPreparing, OrderCancelled},
	OrderPreparing: {OrderReady, OrderCancelled},
	OrderReady:     {OrderDelivered, OrderCancelled},
}

// ValidTransition reports whether an order may move from -> to.
func ValidTransition(from, to string) bool {
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// TerminalStatus reports whether no further transitions exist.
func TerminalStatus(s string) bool {
	return s == OrderDelivered || s == OrderCancelled
}

type Order struct {
	ID               string  `db:"id" json:"id"`
	CustomerID       string  `db:"customer_id" json:"customer_id"`
	CustomerName     string  `db:"customer_name" json:"customer_name"`
	CustomerPhone    string  `db:"customer_phone" json:"customer_phone"`
	DeliveryAddress  string  `db:"delivery_address" json:"delivery_address"`
	DeliveryEstimate string  `db:"delivery_estimate" json:"delivery_estimate"`
	Total            float64 `db:"total" json:"total"`
	Status           string  `db:"status" json:"status"`
	Notes            string  `db:"notes" json:"notes"`
	CreatedAt        string  `db:"created_at" json:"created_at"`
	UpdatedAt        string  `db:"updated_at" json:"updated_at"`
}

type OrderItem struct {
	OrderID   string  `db:"order_id" json:"order_id"`
	ProductID string  `db:"product_id" json:"product_id"`
	Qty       int     `db:"qty" json:"qty"`
	Price     float64 `db:"price" json:"price"`
}
