package domain

type Category struct {
	ID        string `db:"id" json:"id"`
	Name      string `db:"name" json:"name"`
	CreatedAt string `db:"created_at" json:"created_at"`
	UpdatedAt string `db:"updated_at" json:"updated_at"`
}

type Product struct {
	ID          string      `db:"id" json:"id"`
	CategoryID  string      `db:"category_id" json:"category_id"`
	Name        string      `db:"name" json:"name"`
	Description string      `db:"description" json:"description"`
	Price       float64     `db:"price" json:"price"`
	Ingredients Ingredients `db:"ingredients" json:"ingredients"`
	// StockCurrent may go negative: units owed to confirmed orders
	// awaiting production (backlog), not an error state.
	StockCurrent int     `db:"stock_current" json:"stock_current"`
	StockMinimum int     `db:"stock_minimum" json:"stock_minimum"`
	PrepHours    float64 `db:"prep_hours" json:"prep_hours"`
	ImageURL     string  `db:"image_url" json:"image_url"`
	Active       bool    `db:"active" json:"active"`
	CreatedAt    string  `db:"created_at" json:"created_at"`
	UpdatedAt    string  `db:"updated_at" json:"updated_at"`
}

// LowOnStock reports whether the product is at or below its minimum.
func (p Product) LowOnStock() bool { return p.StockCurrent <= p.StockMinimum }

type Customer struct {
	ID        string `db:"id" json:"id"`
	Name      string `db:"name" json:"name"`
	Email     string `db:"email" json:"email"`
	Phone     string `db:"phone" json:"phone"`
	Address   string `db:"address" json:"address"`
	Notes     string `db:"notes" json:"notes"`
	CreatedAt string `db:"created_at" json:"created_at"`
	UpdatedAt string `db:"updated_at" json:"updated_at"`
}

// FinancialEntry is one income or expense line in the books.
type FinancialEntry struct {
	ID          string  `db:"id" json:"id"`
	Kind        string  `db:"kind" json:"kind"` // income | expense
	Category    string  `db:"category" json:"category"`
	Description string  `db:"description" json:"description"`
	Amount      float64 `db:"amount" json:"amount"`
	EntryDate   string  `db:"entry_date" json:"entry_date"`
	OrderID     string  `db:"order_id" json:"order_id"`
	CreatedAt   string  `db:"created_at" json:"created_at"`
}

type Invoice struct {
	ID           string  `db:"id" json:"id"`
	Number       string  `db:"number" json:"number"`
	OrderID      string  `db:"order_id" json:"order_id"`
	CustomerName string  `db:"customer_name" json:"customer_name"`
	Total        float64 `db:"total" json:"total"`
	Status       string  `db:"status" json:"status"` // issued | paid | void
	IssuedAt     string  `db:"issued_at" json:"issued_at"`
	DueDate      string  `db:"due_date" json:"due_date"`
}

type SocialPost struct {
	ID           string `db:"id" json:"id"`
	Title        string `db:"title" json:"title"`
	Content      string `db:"content" json:"content"`
	Platform     string `db:"platform" json:"platform"` // instagram | facebook | whatsapp
	Status       string `db:"status" json:"status"`   // draft | scheduled | published
	ScheduledFor string `db:"scheduled_for" json:"scheduled_for"`
	CreatedAt    string `db:"created_at" json:"created_at"`
	UpdatedAt    string `db:"updated_at" json:"updated_at"`
}
