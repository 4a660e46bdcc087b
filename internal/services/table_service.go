package services

import (
	"fmt"

	"tillpoint/internal/domain"
	"tillpoint/internal/repos"
)

// TableService manages the floor layout (sections and tables) and exposes the
// explicit status transitions the table board uses.
type TableService struct {
	Tables *repos.TableRepo
}

func NewTableService(tables *repos.TableRepo) *TableService {
	return &TableService{Tables: tables}
}

func (s *TableService) ListCategories() ([]domain.TableCategory, error) {
	return s.Tables.ListCategories()
}

func (s *TableService) CreateCategory(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("section name: %w", domain.ErrMissingField)
	}
	return s.Tables.AddCategory(name)
}

func (s *TableService) RenameCategory(id, name string) error {
	if name == "" {
		return fmt.Errorf("section name: %w", domain.ErrMissingField)
	}
	return s.Tables.UpdateCategory(id, name)
}

func (s *TableService) DeleteCategory(id string) error { return s.Tables.DeleteCategory(id) }

// Board returns the live state of every table. Callers refresh rather than
// cache: the payload and status belong to whichever station wrote last.
func (s *TableService) Board() ([]domain.Table, error) { return s.Tables.GetAll() }

func (s *TableService) BoardSection(categoryID string) ([]domain.Table, error) {
	return s.Tables.GetByCategory(categoryID)
}

func (s *TableService) Get(id string) (*domain.Table, error) { return s.Tables.GetByID(id) }

func (s *TableService) CreateTable(name string, categoryID *string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("table name: %w", domain.ErrMissingField)
	}
	return s.Tables.Add(name, categoryID)
}

func (s *TableService) RenameTable(id, name string, categoryID *string) error {
	if name == "" {
		return fmt.Errorf("table name: %w", domain.ErrMissingField)
	}
	return s.Tables.Update(id, name, categoryID)
}

func (s *TableService) DeleteTable(id string) error { return s.Tables.Delete(id) }

// SetStatus is the general-purpose transition for explicit status changes.
func (s *TableService) SetStatus(id string, status domain.TableStatus, payload *string) error {
	return s.Tables.SetStatus(id, status, payload)
}

func (s *TableService) Clear(id string) error { return s.Tables.ClearTable(id) }
