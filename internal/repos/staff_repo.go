package repos

import (
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"

	"tillpoint/internal/domain"
)

// StaffRepo stores staff members used for sale attribution. Secrets are kept
// bcrypt-hashed; the plaintext never touches the store or the logs.
type StaffRepo struct{ db *sqlx.DB }

func NewStaffRepo(db *sqlx.DB) *StaffRepo { return &StaffRepo{db: db} }

func (r *StaffRepo) List() ([]domain.Staff, error) {
	var out []domain.Staff
	err := r.db.Select(&out, `
	  SELECT id, first_name, last_name, secret_hash, created_at
	  FROM staff ORDER BY first_name, last_name
	`)
	return out, err
}

// Get returns nil when no staff member exists with that id.
func (r *StaffRepo) Get(id string) (*domain.Staff, error) {
	var s domain.Staff
	err := r.db.Get(&s, `
	  SELECT id, first_name, last_name, secret_hash, created_at
	  FROM staff WHERE id = ?
	`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *StaffRepo) Add(firstName, lastName, secret string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	id := uuid.NewString()
	_, err = r.db.Exec(
		`INSERT INTO staff(id, first_name, last_name, secret_hash) VALUES(?, ?, ?, ?)`,
		id, firstName, lastName, string(h))
	if err != nil {
		return "", err
	}
	return id, nil
}

// Update changes the name fields; secret rotation goes through UpdateSecret so
// an unchanged credential is never re-hashed by accident.
func (r *StaffRepo) Update(id, firstName, lastName string) error {
	_, err := r.db.Exec(
		`UPDATE staff SET first_name = ?, last_name = ? WHERE id = ?`,
		firstName, lastName, id)
	return err
}

func (r *StaffRepo) UpdateSecret(id, secret string) error {
	h, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(`UPDATE staff SET secret_hash = ? WHERE id = ?`, string(h), id)
	return err
}

func (r *StaffRepo) Delete(id string) error {
	_, err := r.db.Exec(`DELETE FROM staff WHERE id = ?`, id)
	return err
}

// Authenticate returns the staff member when the secret matches, nil when the
// id is unknown or the secret is wrong.
func (r *StaffRepo) Authenticate(id, secret string) (*domain.Staff, error) {
	s, err := r.Get(id)
	if err != nil || s == nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(s.SecretHash), []byte(secret)) != nil {
		return nil, nil
	}
	return s, nil
}
