package services

import (
	"fmt"

	"tillpoint/internal/domain"
	"tillpoint/internal/repos"
	"tillpoint/internal/validate"
)

// CatalogService is the management surface over categories and products used
// by the (out of scope) admin screens.
type CatalogService struct {
	Cats  *repos.CategoryRepo
	Prods *repos.ProductRepo
}

func NewCatalogService(cats *repos.CategoryRepo, prods *repos.ProductRepo) *CatalogService {
	return &CatalogService{Cats: cats, Prods: prods}
}

func (s *CatalogService) ListCategories() ([]domain.Category, error) { return s.Cats.List() }

func (s *CatalogService) CreateCategory(name string) (string, error) {
	name, ok := validate.Name(name)
	if !ok {
		return "", fmt.Errorf("category name: %w", domain.ErrMissingField)
	}
	return s.Cats.Add(name)
}

func (s *CatalogService) RenameCategory(id, name string) error {
	name, ok := validate.Name(name)
	if !ok {
		return fmt.Errorf("category name: %w", domain.ErrMissingField)
	}
	return s.Cats.Update(id, name)
}

// DeleteCategory leaves the category's products orphaned with a null category
// reference; they stay sellable.
func (s *CatalogService) DeleteCategory(id string) error { return s.Cats.Delete(id) }

func (s *CatalogService) ListProducts() ([]domain.Product, error) { return s.Prods.List() }

func (s *CatalogService) ProductsByCategory(categoryID string) ([]domain.Product, error) {
	return s.Prods.ListByCategory(categoryID)
}

func (s *CatalogService) GetProduct(id string) (*domain.Product, error) { return s.Prods.Get(id) }

func (s *CatalogService) CreateProduct(p domain.Product) (string, error) {
	if err := validateProduct(p); err != nil {
		return "", err
	}
	return s.Prods.Add(p)
}

func (s *CatalogService) UpdateProduct(p domain.Product) error {
	if err := validateProduct(p); err != nil {
		return err
	}
	return s.Prods.Update(p)
}

// DeleteProduct fails with ErrProductReferenced once the product appears on a
// committed sale line.
func (s *CatalogService) DeleteProduct(id string) error { return s.Prods.Delete(id) }

func (s *CatalogService) Search(term string) ([]domain.Product, error) {
	term, ok := validate.Term(term)
	if !ok {
		return nil, nil
	}
	return s.Prods.Search(term)
}

// Lookup resolves an operator-typed term the way the register does: exact
// barcode first, substring search as the fallback.
func (s *CatalogService) Lookup(term string) ([]domain.Product, error) {
	term, ok := validate.Term(term)
	if !ok {
		return nil, nil
	}
	p, err := s.Prods.FindByBarcode(term)
	if err != nil {
		return nil, err
	}
	if p != nil {
		return []domain.Product{*p}, nil
	}
	return s.Prods.Search(term)
}

func validateProduct(p domain.Product) error {
	if _, ok := validate.Name(p.Name); !ok {
		return fmt.Errorf("product name: %w", domain.ErrMissingField)
	}
	if p.Barcode != nil {
		if _, ok := validate.Barcode(*p.Barcode); !ok {
			return fmt.Errorf("barcode: %w", domain.ErrMissingField)
		}
	}
	if !validate.Price(p.CostPrice) || !validate.Price(p.SalePrice) {
		return domain.ErrInvalidPrice
	}
	return nil
}
