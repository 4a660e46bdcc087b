package repos_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tillpoint/internal/domain"
	"tillpoint/internal/repos"
)

func strptr(s string) *string { return &s }

func TestProductRepo_CRUDAndLookup(t *testing.T) {
	db := memdb(t)
	cats := repos.NewCategoryRepo(db)
	prods := repos.NewProductRepo(db)

	catID, err := cats.Add("Drinks")
	require.NoError(t, err)

	id, err := prods.Add(domain.Product{
		Barcode:    strptr("869001"),
		Name:       "Cola 330ml",
		CategoryID: &catID,
		CostPrice:  money("10.00"),
		SalePrice:  money("25.00"),
		Stock:      10,
	})
	require.NoError(t, err)

	p, err := prods.Get(id)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "Cola 330ml", p.Name)
	require.NotNil(t, p.CategoryName)
	assert.Equal(t, "Drinks", *p.CategoryName)
	assert.True(t, p.SalePrice.Equal(money("25.00")))

	byCode, err := prods.FindByBarcode("869001")
	require.NoError(t, err)
	require.NotNil(t, byCode)
	assert.Equal(t, id, byCode.ID)

	missing, err := prods.FindByBarcode("000000")
	require.NoError(t, err)
	assert.Nil(t, missing, "unknown barcode is an absent result, not an error")

	// Case-insensitive substring search over name and barcode, ordered by name.
	found, err := prods.Search("COLA")
	require.NoError(t, err)
	require.Len(t, found, 1)
	found, err = prods.Search("8690")
	require.NoError(t, err)
	require.Len(t, found, 1)
}

func TestProductRepo_CategoryDeleteLeavesSoftOrphan(t *testing.T) {
	db := memdb(t)
	cats := repos.NewCategoryRepo(db)
	prods := repos.NewProductRepo(db)

	catID, err := cats.Add("Seasonal")
	require.NoError(t, err)
	id, err := prods.Add(domain.Product{Name: "Iced Tea", CategoryID: &catID,
		CostPrice: money("5.00"), SalePrice: money("12.00"), Stock: 3})
	require.NoError(t, err)

	require.NoError(t, cats.Delete(catID))

	p, err := prods.Get(id)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Nil(t, p.CategoryID, "deleted category leaves a null reference")
	assert.Nil(t, p.CategoryName)
}

func TestProductRepo_DecrementStockHasNoFloor(t *testing.T) {
	db := memdb(t)
	prods := repos.NewProductRepo(db)
	seedProduct(t, db, "p-x", "X", "1.00", 2)

	require.NoError(t, prods.DecrementStock("p-x", 5))

	p, err := prods.Get("p-x")
	require.NoError(t, err)
	assert.Equal(t, -3, p.Stock)

	neg, err := prods.NegativeStock()
	require.NoError(t, err)
	require.Len(t, neg, 1)
	assert.Equal(t, "p-x", neg[0].ID)
}

func TestProductRepo_DeleteRefusedWhileReferenced(t *testing.T) {
	db := memdb(t)
	prods := repos.NewProductRepo(db)
	sales := repos.NewSaleRepo(db)
	seedProduct(t, db, "p-sold", "Sold once", "9.00", 5)

	_, err := sales.CommitSale(domain.Sale{Total: money("9.00"), PaymentMethod: "Cash"},
		[]domain.CartLine{{ProductID: "p-sold", ProductName: "Sold once", Quantity: 1,
			UnitPrice: money("9.00"), LineTotal: money("9.00")}})
	require.NoError(t, err)

	err = prods.Delete("p-sold")
	assert.ErrorIs(t, err, domain.ErrProductReferenced)

	seedProduct(t, db, "p-fresh", "Never sold", "1.00", 1)
	assert.NoError(t, prods.Delete("p-fresh"))
}
