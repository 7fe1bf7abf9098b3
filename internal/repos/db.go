package repos

import (
	"log"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"
)

func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}
	// One connection keeps :memory: databases coherent across queries.
	db.SetMaxOpenConns(1)

	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	// Seed baseline data if DB is empty (categories/products)
	if err := seedIfEmpty(db); err != nil {
		return nil, err
	}
	// Ensure users exist (idempotent; safe to run every start)
	if err := seedUsers(db); err != nil {
		return nil, err
	}

	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

-- Categories
CREATE TABLE IF NOT EXISTS categories(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_categories_name_nocase ON categories(LOWER(name));

-- Products
-- stock_current carries NO ">= 0" check: negative stock is a production
-- backlog (units owed to confirmed orders), not a constraint violation.
CREATE TABLE IF NOT EXISTS products(
  id TEXT PRIMARY KEY,
  category_id TEXT REFERENCES categories(id) ON DELETE SET NULL,
  name TEXT NOT NULL,
  description TEXT,
  price NUMERIC NOT NULL CHECK (price >= 0),
  ingredients TEXT,
  stock_current INTEGER NOT NULL DEFAULT 0,
  stock_minimum INTEGER NOT NULL DEFAULT 0 CHECK (stock_minimum >= 0),
  prep_hours REAL NOT NULL DEFAULT 0 CHECK (prep_hours >= 0),
  image_url TEXT,
  active INTEGER NOT NULL DEFAULT 1,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE INDEX IF NOT EXISTS idx_products_category ON products(category_id);
CREATE INDEX IF NOT EXISTS idx_products_name     ON products(LOWER(name));
CREATE INDEX IF NOT EXISTS idx_products_active   ON products(active);

-- Customers
CREATE TABLE IF NOT EXISTS customers(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  email TEXT,
  phone TEXT,
  address TEXT,
  notes TEXT,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE INDEX IF NOT EXISTS idx_customers_name ON customers(LOWER(name));

-- Orders
CREATE TABLE IF NOT EXISTS orders(
  id TEXT PRIMARY KEY,
  customer_id TEXT REFERENCES customers(id) ON DELETE SET NULL,
  customer_name TEXT NOT NULL,
  customer_phone TEXT,
  delivery_address TEXT,
  delivery_estimate TEXT,
  total NUMERIC NOT NULL,
  status TEXT NOT NULL DEFAULT 'pending'
    CHECK (status IN ('pending','confirmed','preparing','ready','delivered','cancelled')),
  notes TEXT,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE INDEX IF NOT EXISTS idx_orders_status     ON orders(status);
CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders(created_at);

CREATE TABLE IF NOT EXISTS order_items(
  order_id  TEXT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
  product_id TEXT NOT NULL REFERENCES products(id),
  qty INTEGER NOT NULL CHECK (qty >= 1),
  price NUMERIC NOT NULL,
  PRIMARY KEY (order_id, product_id)
);

-- Notifications (append-only; only is_read changes after insert)
CREATE TABLE IF NOT EXISTS notifications(
  id TEXT PRIMARY KEY,
  type TEXT NOT NULL CHECK (type IN ('production_needed','low_stock','product_updated')),
  title TEXT NOT NULL,
  message TEXT,
  data_json TEXT,
  is_read INTEGER NOT NULL DEFAULT 0,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_notifications_read    ON notifications(is_read);
CREATE INDEX IF NOT EXISTS idx_notifications_created ON notifications(created_at);

-- Financial entries
CREATE TABLE IF NOT EXISTS finance_entries(
  id TEXT PRIMARY KEY,
  kind TEXT NOT NULL CHECK (kind IN ('income','expense')),
  category TEXT,
  description TEXT,
  amount NUMERIC NOT NULL CHECK (amount >= 0),
  entry_date TEXT NOT NULL,
  order_id TEXT,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_finance_date ON finance_entries(entry_date);
CREATE INDEX IF NOT EXISTS idx_finance_kind ON finance_entries(kind);

-- Invoices
CREATE TABLE IF NOT EXISTS invoices(
  id TEXT PRIMARY KEY,
  number TEXT NOT NULL UNIQUE,
  order_id TEXT REFERENCES orders(id),
  customer_name TEXT,
  total NUMERIC NOT NULL,
  status TEXT NOT NULL DEFAULT 'issued' CHECK (status IN ('issued','paid','void')),
  issued_at TEXT DEFAULT CURRENT_TIMESTAMP,
  due_date TEXT
);

-- Social media posts
CREATE TABLE IF NOT EXISTS social_posts(
  id TEXT PRIMARY KEY,
  title TEXT NOT NULL,
  content TEXT,
  platform TEXT NOT NULL CHECK (platform IN ('instagram','facebook','whatsapp')),
  status TEXT NOT NULL DEFAULT 'draft' CHECK (status IN ('draft','scheduled','published')),
  scheduled_for TEXT,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);

-- Users & Sessions
CREATE TABLE IF NOT EXISTS users(
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL UNIQUE,
  name TEXT NOT NULL,
  password_hash TEXT NOT NULL,
  role TEXT NOT NULL CHECK (role IN ('USER','ADMIN')),
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users(LOWER(email));

CREATE TABLE IF NOT EXISTS sessions(
  id TEXT PRIMARY KEY,               -- same value as the 'sid' cookie
  user_id TEXT NULL REFERENCES users(id) ON DELETE SET NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  last_seen  TEXT
);
CREATE INDEX IF NOT EXISTS idx_sessions_user ON sessions(user_id);
`
	_, err := db.Exec(schema)
	return err
}

func seedIfEmpty(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM categories`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	log.Println("[seed] inserting demo categories/products")

	tx := db.MustBegin()
	tx.MustExec(`INSERT INTO categories(id,name) VALUES
	  ('cakes','Cakes & Desserts'),
	  ('savory','Savory Meals'),
	  ('snacks','Snack Boxes'),
	  ('drinks','Drinks')`)

	tx.MustExec(`INSERT INTO products(id,category_id,name,description,price,ingredients,stock_current,stock_minimum,prep_hours,image_url) VALUES
	  ('cake-chocolate','cakes','Chocolate Cake','Layered chocolate cake, serves 12',45.00,'["flour","cocoa","eggs","butter","sugar"]',4,2,3,'products/cake-chocolate/main.jpg'),
	  ('lasagna-family','savory','Family Lasagna','Beef lasagna tray, serves 6',38.50,'["pasta","beef","tomato","cheese"]',6,3,2,'products/lasagna-family/main.jpg'),
	  ('snack-box-20','snacks','Party Snack Box (20)','Assorted savory snacks',55.00,'["coxinha","kibe","esfiha","pastel"]',0,4,4,'products/snack-box-20/main.jpg'),
	  ('juice-orange-1l','drinks','Fresh Orange Juice 1L','Cold-pressed, no sugar added',9.90,'orange, nothing else',12,6,0.5,'products/juice-orange-1l/main.jpg')`)

	return tx.Commit()
}

// seedUsers ensures the shop owner and one staff account exist (idempotent).
func seedUsers(db *sqlx.DB) error {
	type u struct {
		ID, Email, Name, Role, Hash string
	}
	mk := func(id, email, name, role, raw string) u {
		h, _ := bcrypt.GenerateFromPassword([]byte(raw), 12)
		return u{ID: id, Email: email, Name: name, Role: role, Hash: string(h)}
	}

	users := []u{
		mk("u-owner", "owner@purposefood.test", "Owner", "ADMIN", "Passw0rd!"),
		mk("u-staff", "staff@purposefood.test", "Staff", "USER", "Passw0rd!"),
	}

	tx := db.MustBegin()
	defer func() { _ = tx.Rollback() }()

	for _, x := range users {
		if _, err := tx.Exec(`
			INSERT INTO users(id,email,name,password_hash,role)
			VALUES(?,?,?,?,?)
			ON CONFLICT(email) DO NOTHING
		`, x.ID, x.Email, x.Name, x.Hash, x.Role); err != nil {
			return err
		}
	}

	return tx.Commit()
}
