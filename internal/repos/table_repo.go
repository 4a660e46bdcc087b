package repos

import (
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"tillpoint/internal/domain"
)

type TableRepo struct{ db *sqlx.DB }

func NewTableRepo(db *sqlx.DB) *TableRepo { return &TableRepo{db: db} }

// ---------- Table categories (floor sections) ----------

func (r *TableRepo) ListCategories() ([]domain.TableCategory, error) {
	var out []domain.TableCategory
	err := r.db.Select(&out, `SELECT id, name, created_at FROM table_categories ORDER BY name`)
	return out, err
}

func (r *TableRepo) AddCategory(name string) (string, error) {
	id := uuid.NewString()
	_, err := r.db.Exec(`INSERT INTO table_categories(id, name) VALUES(?, ?)`, id, name)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (r *TableRepo) UpdateCategory(id, name string) error {
	_, err := r.db.Exec(`UPDATE table_categories SET name = ? WHERE id = ?`, name, id)
	return err
}

func (r *TableRepo) DeleteCategory(id string) error {
	_, err := r.db.Exec(`DELETE FROM table_categories WHERE id = ?`, id)
	return err
}

// ---------- Tables ----------

const tableCols = `
  t.id, t.name, t.table_category_id, tc.name AS category_name,
  t.status, t.pending_cart, t.version, t.created_at`

// GetAll returns current persisted state for every table. Callers re-fetch
// instead of caching: another station may have written in the meantime.
func (r *TableRepo) GetAll() ([]domain.Table, error) {
	var out []domain.Table
	err := r.db.Select(&out, `
	  SELECT `+tableCols+`
	  FROM tables t
	  LEFT JOIN table_categories tc ON tc.id = t.table_category_id
	  ORDER BY tc.name, t.name
	`)
	return out, err
}

func (r *TableRepo) GetByCategory(categoryID string) ([]domain.Table, error) {
	var out []domain.Table
	err := r.db.Select(&out, `
	  SELECT `+tableCols+`
	  FROM tables t
	  LEFT JOIN table_categories tc ON tc.id = t.table_category_id
	  WHERE t.table_category_id = ?
	  ORDER BY t.name
	`, categoryID)
	return out, err
}

// GetByID returns nil when the table does not exist.
func (r *TableRepo) GetByID(id string) (*domain.Table, error) {
	var t domain.Table
	err := r.db.Get(&t, `
	  SELECT `+tableCols+`
	  FROM tables t
	  LEFT JOIN table_categories tc ON tc.id = t.table_category_id
	  WHERE t.id = ?
	`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TableRepo) Add(name string, categoryID *string) (string, error) {
	id := uuid.NewString()
	_, err := r.db.Exec(
		`INSERT INTO tables(id, name, table_category_id, status) VALUES(?, ?, ?, ?)`,
		id, name, categoryID, domain.TableEmpty)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (r *TableRepo) Update(id, name string, categoryID *string) error {
	_, err := r.db.Exec(
		`UPDATE tables SET name = ?, table_category_id = ? WHERE id = ?`,
		name, categoryID, id)
	return err
}

func (r *TableRepo) Delete(id string) error {
	_, err := r.db.Exec(`DELETE FROM tables WHERE id = ?`, id)
	return err
}

// ---------- Status transitions ----------

// SaveCart marks the table occupied and stores the serialized cart, replacing
// whatever payload was there (last writer wins). The advisory version counter
// is bumped on every save so the overwritten writer can at least detect it.
func (r *TableRepo) SaveCart(tableID, serializedCart string) error {
	_, err := r.db.Exec(`
	  UPDATE tables SET status = ?, pending_cart = ?, version = version + 1
	  WHERE id = ?
	`, domain.TableOccupied, serializedCart, tableID)
	return err
}

// ClearTable empties the table and drops its payload.
func (r *TableRepo) ClearTable(tableID string) error {
	_, err := r.db.Exec(`
	  UPDATE tables SET status = ?, pending_cart = NULL, version = version + 1
	  WHERE id = ?
	`, domain.TableEmpty, tableID)
	return err
}

// SetStatus is the general-purpose transition used for explicit status changes.
// serializedCart may be nil to clear the payload.
func (r *TableRepo) SetStatus(tableID string, status domain.TableStatus, serializedCart *string) error {
	_, err := r.db.Exec(`
	  UPDATE tables SET status = ?, pending_cart = ?, version = version + 1
	  WHERE id = ?
	`, status, serializedCart, tableID)
	return err
}
