package services_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tillpoint/internal/services"
)

func TestReports_DailyAndPeriodTotals(t *testing.T) {
	e := newEngine(t)
	reports := services.NewReportService(e.sales, e.prods)
	e.seedProduct(t, "p-a", "Ayran", "4.00", 100)

	sell := func(qty int) {
		cart := e.carts.OpenQuickSale()
		require.NoError(t, e.carts.AddItem(cart, "p-a", qty))
		_, err := e.carts.Checkout(cart, "Cash", "Admin Manager", nil)
		require.NoError(t, err)
	}
	sell(2) // 8.00
	sell(3) // 12.00

	today := time.Now()
	total, err := reports.DailyTotal(today)
	require.NoError(t, err)
	assert.True(t, total.Equal(money("20.00")), "got %s", total)

	period, err := reports.PeriodTotal(today.AddDate(0, 0, -7), today)
	require.NoError(t, err)
	assert.True(t, period.Equal(money("20.00")))

	empty, err := reports.DailyTotal(today.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.True(t, empty.IsZero())
}

func TestReports_TopSellersAndSaleDetail(t *testing.T) {
	e := newEngine(t)
	reports := services.NewReportService(e.sales, e.prods)
	e.seedProduct(t, "p-a", "Ayran", "4.00", 100)
	e.seedProduct(t, "p-b", "Borek", "9.00", 100)

	sell := func(pid string, qty int) string {
		cart := e.carts.OpenQuickSale()
		require.NoError(t, e.carts.AddItem(cart, pid, qty))
		id, err := e.carts.Checkout(cart, "Cash", "Admin Manager", nil)
		require.NoError(t, err)
		return id
	}
	sell("p-a", 5)
	sell("p-a", 3)
	lastID := sell("p-b", 3)

	top, err := reports.TopSellers(1, nil, nil)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, "Ayran", top[0].ProductName)
	assert.Equal(t, 8, top[0].TotalQty)
	assert.True(t, top[0].TotalRevenue.Equal(money("32.00")))

	sale, lines, err := reports.SaleDetail(lastID)
	require.NoError(t, err)
	require.NotNil(t, sale)
	require.Len(t, lines, 1)
	assert.Equal(t, "Borek", lines[0].ProductName)

	// Reports show the live catalog name, not the name frozen at order time.
	_, err = e.db.Exec(`UPDATE products SET name = 'Borek (new recipe)' WHERE id = 'p-b'`)
	require.NoError(t, err)
	_, lines, err = reports.SaleDetail(lastID)
	require.NoError(t, err)
	assert.Equal(t, "Borek (new recipe)", lines[0].ProductName)

	missing, _, err := reports.SaleDetail("no-such-sale")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestReports_NegativeStockAfterStaleCarts(t *testing.T) {
	e := newEngine(t)
	reports := services.NewReportService(e.sales, e.prods)
	e.seedProduct(t, "p-hot", "Hot item", "10.00", 10)

	// Two stations fill carts against the same stock read of 10. The add-time
	// check passes for both; neither commit re-validates, so the second one
	// drives stock negative. The report query is where the drift shows up.
	c1 := e.carts.OpenQuickSale()
	c2 := e.carts.OpenQuickSale()
	require.NoError(t, e.carts.AddItem(c1, "p-hot", 8))
	require.NoError(t, e.carts.AddItem(c2, "p-hot", 8))

	_, err := e.carts.Checkout(c1, "Cash", "Admin Manager", nil)
	require.NoError(t, err)
	_, err = e.carts.Checkout(c2, "Cash", "Admin Manager", nil)
	require.NoError(t, err)

	p, err := e.prods.Get("p-hot")
	require.NoError(t, err)
	assert.Equal(t, -6, p.Stock)

	neg, err := reports.NegativeStock()
	require.NoError(t, err)
	require.Len(t, neg, 1)
	assert.Equal(t, "p-hot", neg[0].ID)
}
