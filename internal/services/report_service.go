package services

import (
	"time"

	"github.com/shopspring/decimal"

	"tillpoint/internal/domain"
	"tillpoint/internal/repos"
)

// ReportService is the read-side composition over the sale ledger and the
// catalog. It holds no state; every call is a fresh aggregation.
type ReportService struct {
	Sales *repos.SaleRepo
	Prods *repos.ProductRepo
}

func NewReportService(sales *repos.SaleRepo, prods *repos.ProductRepo) *ReportService {
	return &ReportService{Sales: sales, Prods: prods}
}

// DailyTotal is zero, not an error, for a day without sales.
func (s *ReportService) DailyTotal(day time.Time) (decimal.Decimal, error) {
	return s.Sales.DailyTotal(day)
}

func (s *ReportService) PeriodTotal(from, to time.Time) (decimal.Decimal, error) {
	return s.Sales.PeriodTotal(from, to)
}

func (s *ReportService) TopSellers(limit int, from, to *time.Time) ([]domain.TopSeller, error) {
	return s.Sales.TopSellers(limit, from, to)
}

func (s *ReportService) ListSales(from, to *time.Time, staffID *string) ([]domain.Sale, error) {
	return s.Sales.ListSales(from, to, staffID)
}

// SaleDetail returns the header plus its lines, each carrying the product's
// current catalog name. A nil header means no such sale.
func (s *ReportService) SaleDetail(saleID string) (*domain.Sale, []domain.SaleLine, error) {
	sale, err := s.Sales.GetSale(saleID)
	if err != nil || sale == nil {
		return sale, nil, err
	}
	lines, err := s.Sales.GetSaleLines(saleID)
	if err != nil {
		return nil, nil, err
	}
	return sale, lines, nil
}

// NegativeStock flags products whose stock drifted below zero through
// unconditional decrements — the overbooking signal, not an error.
func (s *ReportService) NegativeStock() ([]domain.Product, error) {
	return s.Prods.NegativeStock()
}
