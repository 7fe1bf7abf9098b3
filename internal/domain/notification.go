package domain

const (
	NotifProductionNeeded = "production_needed"
	NotifLowStock         = "low_stock"
	NotifProductUpdated   = "product_updated"
)

// Notification is an append-only alert row. Only its read flag changes after
// creation, via the notification center.
type Notification struct {
	ID        string         `db:"id" json:"id"`
	Type      string         `db:"type" json:"type"`
	Title     string         `db:"title" json:"title"`
	Message   string         `db:"message" json:"message"`
	Data      map[string]any `db:"-" json:"data,omitempty"`
	DataJSON  string         `db:"data_json" json:"-"`
	IsRead    bool           `db:"is_read" json:"is_read"`
	CreatedAt string         `db:"created_at" json:"created_at"`
}
