package repos

import (
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"tillpoint/internal/domain"
)

type CategoryRepo struct{ db *sqlx.DB }

func NewCategoryRepo(db *sqlx.DB) *CategoryRepo { return &CategoryRepo{db: db} }

func (r *CategoryRepo) List() ([]domain.Category, error) {
	var out []domain.Category
	err := r.db.Select(&out, `SELECT id, name, created_at FROM categories ORDER BY name`)
	return out, err
}

// Get returns nil when no category exists with that id.
func (r *CategoryRepo) Get(id string) (*domain.Category, error) {
	var c domain.Category
	err := r.db.Get(&c, `SELECT id, name, created_at FROM categories WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CategoryRepo) Add(name string) (string, error) {
	id := uuid.NewString()
	_, err := r.db.Exec(`INSERT INTO categories(id, name) VALUES(?, ?)`, id, name)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (r *CategoryRepo) Update(id, name string) error {
	_, err := r.db.Exec(`UPDATE categories SET name = ? WHERE id = ?`, name, id)
	return err
}

// Delete removes the category; products referencing it keep a NULL category
// (ON DELETE SET NULL), the soft-orphan behavior callers rely on.
func (r *CategoryRepo) Delete(id string) error {
	_, err := r.db.Exec(`DELETE FROM categories WHERE id = ?`, id)
	return err
}
