package repos

import (
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"purposefood/internal/domain"
)

type CustomerRepo struct{ db *sqlx.DB }

func NewCustomerRepo(db *sqlx.DB) *CustomerRepo { return &CustomerRepo{db: db} }

const customerCols = `
  id, name, COALESCE(email,'') AS email, COALESCE(phone,'') AS phone,
  COALESCE(address,'') AS address, COALESCE(notes,'') AS notes,
  created_at, COALESCE(updated_at,'') AS updated_at`

func (r *CustomerRepo) Get(id string) (domain.Customer, error) {
	var c domain.Customer
	err := r.db.Get(&c, `SELECT`+customerCols+` FROM customers WHERE id = ?`, id)
	return c, err
}

func (r *CustomerRepo) List() ([]domain.Customer, error) {
	var out []domain.Customer
	err := r.db.Select(&out, `SELECT`+customerCols+` FROM customers ORDER BY name`)
	return out, err
}

func (r *CustomerRepo) Create(c domain.Customer) error {
	_, err := r.db.Exec(`
	  INSERT INTO customers(id, name, email, phone, address, notes, created_at)
	  VALUES(?,?,?,?,?,?,CURRENT_TIMESTAMP)
	`, c.ID, c.Name, c.Email, c.Phone, c.Address, c.Notes)
	return errors.Wrap(err, "insert customer")
}

func (r *CustomerRepo) Update(c domain.Customer) error {
	res, err := r.db.Exec(`
	  UPDATE customers
	  SET name = ?, email = ?, phone = ?, address = ?, notes = ?, updated_at = CURRENT_TIMESTAMP
	  WHERE id = ?
	`, c.Name, c.Email, c.Phone, c.Address, c.Notes, c.ID)
	if err != nil {
		return errors.Wrap(err, "update customer")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errors.Errorf("customer %s not found", c.ID)
	}
	return nil
}

func (r *CustomerRepo) Delete(id string) error {
	_, err := r.db.Exec(`DELETE FROM customers WHERE id = ?`, id)
	return err
}
