package repos

import (
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"purposefood/internal/domain"
)

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

const productCols = `
  id, COALESCE(category_id,'') AS category_id, name, COALESCE(description,'') AS description,
  price, COALESCE(ingredients,'') AS ingredients, stock_current, stock_minimum, prep_hours,
  COALESCE(image_url,'') AS image_url, active, created_at, COALESCE(updated_at,'') AS updated_at`

func (r *ProductRepo) Get(id string) (domain.Product, error) {
	var p domain.Product
	err := r.db.Get(&p, `SELECT`+productCols+` FROM products WHERE id = ?`, id)
	return p, err
}

func (r *ProductRepo) List(activeOnly bool) ([]domain.Product, error) {
	q := `SELECT` + productCols + ` FROM products`
	if activeOnly {
		q += ` WHERE active = 1`
	}
	q += ` ORDER BY name`
	var out []domain.Product
	err := r.db.Select(&out, q)
	return out, err
}

func (r *ProductRepo) ListByCategory(catID string, limit, offset int) ([]domain.Product, error) {
	var out []domain.Product
	err := r.db.Select(&out, `
	  SELECT`+productCols+`
	  FROM products
	  WHERE category_id = ? AND active = 1
	  ORDER BY name
	  LIMIT ? OFFSET ?
	`, catID, limit, offset)
	return out, err
}

func (r *ProductRepo) Search(q string, limit, offset int) ([]domain.Product, error) {
	var out []domain.Product
	err := r.db.Select(&out, `
	  SELECT`+productCols+`
	  FROM products
	  WHERE active = 1 AND (LOWER(name) LIKE ? OR LOWER(description) LIKE ?)
	  ORDER BY name
	  LIMIT ? OFFSET ?
	`, "%"+strings.ToLower(q)+"%", "%"+strings.ToLower(q)+"%", limit, offset)
	return out, err
}

func (r *ProductRepo) Create(p domain.Product) error {
	_, err := r.db.Exec(`
	  INSERT INTO products(id, category_id, name, description, price, ingredients,
	    stock_current, stock_minimum, prep_hours, image_url, active, created_at)
	  VALUES(?,?,?,?,?,?,?,?,?,?,?,CURRENT_TIMESTAMP)
	`, p.ID, nullable(p.CategoryID), p.Name, p.Description, p.Price, p.Ingredients,
		p.StockCurrent, p.StockMinimum, p.PrepHours, p.ImageURL, p.Active)
	return errors.Wrap(err, "insert product")
}

// SetStock writes the new on-hand quantity unconditionally. Negative values
// are accepted: they represent a production backlog.
func (r *ProductRepo) SetStock(id string, stock int, updatedAt time.Time) error {
	res, err := r.db.Exec(`
	  UPDATE products SET stock_current = ?, updated_at = ? WHERE id = ?
	`, stock, updatedAt.UTC().Format(time.RFC3339), id)
	if err != nil {
		return errors.Wrap(err, "set stock")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errors.Errorf("product %s not found", id)
	}
	return nil
}

// updatableCols whitelists the columns UpdateFields may touch.
var updatableCols = map[string]bool{
	"category_id":   true,
	"name":          true,
	"description":   true,
	"price":         true,
	"ingredients":   true,
	"stock_current": true,
	"stock_minimum": true,
	"prep_hours":    true,
	"image_url":     true,
	"active":        true,
}

// UpdateFields applies a partial column update and returns the fresh row.
func (r *ProductRepo) UpdateFields(id string, fields map[string]any) (domain.Product, error) {
	sets := make([]string, 0, len(fields)+1)
	args := make([]any, 0, len(fields)+1)
	for col, v := range fields {
		if !updatableCols[col] {
			return domain.Product{}, errors.Errorf("product field %q is not updatable", col)
		}
		sets = append(sets, col+" = ?")
		args = append(args, v)
	}
	if len(sets) == 0 {
		return r.Get(id)
	}
	sets = append(sets, "updated_at = CURRENT_TIMESTAMP")
	args = append(args, id)

	res, err := r.db.Exec(`UPDATE products SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		return domain.Product{}, errors.Wrap(err, "update product")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.Product{}, errors.Errorf("product %s not found", id)
	}
	return r.Get(id)
}

// LowStock lists active products at or below their minimum but still positive.
func (r *ProductRepo) LowStock() ([]domain.Product, error) {
	var out []domain.Product
	err := r.db.Select(&out, `
	  SELECT`+productCols+`
	  FROM products
	  WHERE active = 1 AND stock_current > 0 AND stock_current <= stock_minimum
	  ORDER BY stock_current ASC
	`)
	return out, err
}

// OutOfStock lists active products with zero or backlogged stock.
func (r *ProductRepo) OutOfStock() ([]domain.Product, error) {
	var out []domain.Product
	err := r.db.Select(&out, `
	  SELECT`+productCols+`
	  FROM products
	  WHERE active = 1 AND stock_current <= 0
	  ORDER BY stock_current ASC
	`)
	return out, err
}

func (r *ProductRepo) Delete(id string) error {
	_, err := r.db.Exec(`UPDATE products SET active = 0, updated_at = CURRENT_TIMESTAMP WHERE id = ?`, id)
	return err
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
