package domain

// LineItem is one (product, quantity) pair within a requested order.
type LineItem struct {
	ProductID string `json:"product_id" db:"product_id"`
	Quantity  int    `json:"quantity" db:"quantity"`
}

// Delivery classification per line.
const (
	DeliveryImmediate  = "immediate"
	DeliveryPartial    = "partial"
	DeliveryProduction = "production"
)

// AvailabilityResult classifies fulfillability of a single line item.
type AvailabilityResult struct {
	ProductID    string  `json:"product_id"`
	ProductName  string  `json:"product_name"`
	Available    bool    `json:"available"`
	DeliveryType string  `json:"delivery_type,omitempty"`
	Message      string  `json:"message,omitempty"`
	StockCurrent int     `json:"stock_current"`
	PrepHours    float64 `json:"prep_hours"`
	// Set only for partial delivery.
	ImmediateQty  int `json:"immediate_qty,omitempty"`
	ProductionQty int `json:"production_qty,omitempty"`
}

// OrderAvailabilitySummary aggregates per-line results for a whole order.
// CanProceed is false only when a line referenced an inactive or missing
// product; zero stock alone never blocks an order (it goes to production).
type OrderAvailabilitySummary struct {
	Availability     []AvailabilityResult `json:"availability"`
	DeliveryEstimate string               `json:"delivery_estimate"`
	TotalProdHours   float64              `json:"total_production_hours"`
	HasOutOfStock    bool                 `json:"has_out_of_stock"`
	HasLowStock      bool                 `json:"has_low_stock"`
	CanProceed       bool                 `json:"can_proceed"`
}

// StockUpdate records one applied stock decrement.
type StockUpdate struct {
	ProductID     string `json:"product_id"`
	PreviousStock int    `json:"previous_stock"`
	NewStock      int    `json:"new_stock"`
	QtyOrdered    int    `json:"qty_ordered"`
}

// StockAdjustmentResult reports what an order application actually did.
// Lines whose product could not be read or written are absent from Updates;
// partial application is accepted policy, not a failure.
type StockAdjustmentResult struct {
	Updates       []StockUpdate  `json:"updates"`
	Notifications []Notification `json:"notifications"`
}
