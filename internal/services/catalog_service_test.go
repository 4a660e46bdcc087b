package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tillpoint/internal/domain"
	"tillpoint/internal/repos"
	"tillpoint/internal/services"
)

func newCatalog(t *testing.T, e *engine) *services.CatalogService {
	t.Helper()
	return services.NewCatalogService(repos.NewCategoryRepo(e.db), e.prods)
}

func TestCatalog_CreateProductValidation(t *testing.T) {
	e := newEngine(t)
	catalog := newCatalog(t, e)

	_, err := catalog.CreateProduct(domain.Product{Name: "   "})
	assert.ErrorIs(t, err, domain.ErrMissingField)

	_, err = catalog.CreateProduct(domain.Product{Name: "Tea", SalePrice: money("-1")})
	assert.ErrorIs(t, err, domain.ErrInvalidPrice)

	id, err := catalog.CreateProduct(domain.Product{Name: "Tea", CostPrice: money("4"), SalePrice: money("10")})
	require.NoError(t, err)
	p, err := catalog.GetProduct(id)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "Tea", p.Name)
}

func TestCatalog_LookupPrefersExactBarcode(t *testing.T) {
	e := newEngine(t)
	catalog := newCatalog(t, e)

	code := "8690526"
	_, err := catalog.CreateProduct(domain.Product{Name: "Cola 330ml", Barcode: &code,
		SalePrice: money("25")})
	require.NoError(t, err)
	_, err = catalog.CreateProduct(domain.Product{Name: "Cola 1L", SalePrice: money("45")})
	require.NoError(t, err)

	hits, err := catalog.Lookup("8690526")
	require.NoError(t, err)
	require.Len(t, hits, 1, "exact barcode short-circuits the substring search")
	assert.Equal(t, "Cola 330ml", hits[0].Name)

	hits, err = catalog.Lookup("cola")
	require.NoError(t, err)
	assert.Len(t, hits, 2)

	hits, err = catalog.Lookup("   ")
	require.NoError(t, err)
	assert.Empty(t, hits)
}
