package repos

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"tillpoint/internal/domain"
)

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

const productCols = `
  p.id, p.barcode, p.name, p.category_id, c.name AS category_name,
  p.cost_price, p.sale_price, p.stock, p.image_ref, p.created_at`

func (r *ProductRepo) List() ([]domain.Product, error) {
	var out []domain.Product
	err := r.db.Select(&out, `
	  SELECT `+productCols+`
	  FROM products p
	  LEFT JOIN categories c ON c.id = p.category_id
	  ORDER BY p.name
	`)
	return out, err
}

func (r *ProductRepo) ListByCategory(categoryID string) ([]domain.Product, error) {
	var out []domain.Product
	err := r.db.Select(&out, `
	  SELECT `+productCols+`
	  FROM products p
	  LEFT JOIN categories c ON c.id = p.category_id
	  WHERE p.category_id = ?
	  ORDER BY p.name
	`, categoryID)
	return out, err
}

// Get returns nil when no product exists with that id.
func (r *ProductRepo) Get(id string) (*domain.Product, error) {
	var p domain.Product
	err := r.db.Get(&p, `
	  SELECT `+productCols+`
	  FROM products p
	  LEFT JOIN categories c ON c.id = p.category_id
	  WHERE p.id = ?
	`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// FindByBarcode is an exact match; nil when the barcode is unknown.
func (r *ProductRepo) FindByBarcode(code string) (*domain.Product, error) {
	var p domain.Product
	err := r.db.Get(&p, `
	  SELECT `+productCols+`
	  FROM products p
	  LEFT JOIN categories c ON c.id = p.category_id
	  WHERE p.barcode = ?
	`, code)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Search matches term as a case-insensitive substring of the name or barcode.
func (r *ProductRepo) Search(term string) ([]domain.Product, error) {
	like := "%" + strings.ToLower(term) + "%"
	var out []domain.Product
	err := r.db.Select(&out, `
	  SELECT `+productCols+`
	  FROM products p
	  LEFT JOIN categories c ON c.id = p.category_id
	  WHERE LOWER(p.name) LIKE ? OR LOWER(COALESCE(p.barcode,'')) LIKE ?
	  ORDER BY p.name
	`, like, like)
	return out, err
}

func (r *ProductRepo) Add(p domain.Product) (string, error) {
	id := uuid.NewString()
	_, err := r.db.Exec(`
	  INSERT INTO products(id, barcode, name, category_id, cost_price, sale_price, stock, image_ref)
	  VALUES(?, ?, ?, ?, ?, ?, ?, ?)
	`, id, p.Barcode, p.Name, p.CategoryID, p.CostPrice, p.SalePrice, p.Stock, p.ImageRef)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (r *ProductRepo) Update(p domain.Product) error {
	_, err := r.db.Exec(`
	  UPDATE products SET
	    barcode = ?, name = ?, category_id = ?,
	    cost_price = ?, sale_price = ?, stock = ?, image_ref = ?
	  WHERE id = ?
	`, p.Barcode, p.Name, p.CategoryID, p.CostPrice, p.SalePrice, p.Stock, p.ImageRef, p.ID)
	return err
}

// Delete refuses to remove a product that appears on committed sale lines; the
// ledger keeps its referential integrity over catalog cleanup.
func (r *ProductRepo) Delete(id string) error {
	var n int
	if err := r.db.Get(&n, `SELECT COUNT(*) FROM sale_lines WHERE product_id = ?`, id); err != nil {
		return err
	}
	if n > 0 {
		return domain.ErrProductReferenced
	}
	_, err := r.db.Exec(`DELETE FROM products WHERE id = ?`, id)
	return err
}

// DecrementStock subtracts qty unconditionally. There is no floor: a sale is
// never blocked on a stale stock read, so stock may drift negative. The drift
// is surfaced through NegativeStock rather than hidden.
func (r *ProductRepo) DecrementStock(productID string, qty int) error {
	_, err := r.db.Exec(`UPDATE products SET stock = stock - ? WHERE id = ?`, qty, productID)
	return err
}

// NegativeStock lists products whose stock has drifted below zero.
func (r *ProductRepo) NegativeStock() ([]domain.Product, error) {
	var out []domain.Product
	err := r.db.Select(&out, `
	  SELECT `+productCols+`
	  FROM products p
	  LEFT JOIN categories c ON c.id = p.category_id
	  WHERE p.stock < 0
	  ORDER BY p.stock, p.name
	`)
	return out, err
}
