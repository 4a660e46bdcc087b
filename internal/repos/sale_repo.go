package repos

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"tillpoint/internal/domain"
)

// SaleRepo is the order ledger: the one transactional write path of the engine
// plus the read contract the reports are built on.
type SaleRepo struct{ db *sqlx.DB }

func NewSaleRepo(db *sqlx.DB) *SaleRepo { return &SaleRepo{db: db} }

// CommitSale writes the sale header, all of its lines and the stock decrement
// for each line in one transaction. Any failure rolls the whole batch back and
// is returned to the caller; nothing is retried and nothing is partially
// visible. The returned id doubles as the receipt reference.
func (r *SaleRepo) CommitSale(sale domain.Sale, lines []domain.CartLine) (string, error) {
	if len(lines) == 0 {
		return "", domain.ErrEmptyCart
	}

	tx, err := r.db.Beginx()
	if err != nil {
		return "", err
	}
	defer func() { _ = tx.Rollback() }()

	saleID := uuid.NewString()
	if _, err := tx.Exec(`
	  INSERT INTO sales(id, total, payment_method, cashier_name, staff_id, table_id, table_label)
	  VALUES(?, ?, ?, ?, ?, ?, ?)
	`, saleID, sale.Total, sale.PaymentMethod, sale.CashierName, sale.StaffID, sale.TableID, sale.TableLabel); err != nil {
		return "", fmt.Errorf("insert sale header: %w", err)
	}

	for _, ln := range lines {
		if _, err := tx.Exec(`
		  INSERT INTO sale_lines(id, sale_id, product_id, quantity, unit_price, line_total)
		  VALUES(?, ?, ?, ?, ?, ?)
		`, uuid.NewString(), saleID, ln.ProductID, ln.Quantity, ln.UnitPrice, ln.LineTotal); err != nil {
			return "", fmt.Errorf("insert sale line for %s: %w", ln.ProductID, err)
		}
		// Unconditional decrement: no floor, matching the catalog contract.
		if _, err := tx.Exec(
			`UPDATE products SET stock = stock - ? WHERE id = ?`,
			ln.Quantity, ln.ProductID); err != nil {
			return "", fmt.Errorf("decrement stock for %s: %w", ln.ProductID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit sale: %w", err)
	}
	return saleID, nil
}

const dayLayout = "2006-01-02"

func dayStart(t time.Time) string { return t.Format(dayLayout) + " 00:00:00" }
func dayEnd(t time.Time) string   { return t.Format(dayLayout) + " 23:59:59" }

// ListSales filters conjunctively; nil filters are skipped. Date bounds are
// inclusive of the whole day at either end.
func (r *SaleRepo) ListSales(from, to *time.Time, staffID *string) ([]domain.Sale, error) {
	query := `SELECT id, sold_at, total, payment_method, COALESCE(cashier_name,'') AS cashier_name,
	                 staff_id, table_id, table_label
	          FROM sales`
	var conds []string
	var args []any
	if from != nil {
		conds = append(conds, `sold_at >= ?`)
		args = append(args, dayStart(*from))
	}
	if to != nil {
		conds = append(conds, `sold_at <= ?`)
		args = append(args, dayEnd(*to))
	}
	if staffID != nil {
		conds = append(conds, `staff_id = ?`)
		args = append(args, *staffID)
	}
	for i, c := range conds {
		if i == 0 {
			query += " WHERE " + c
		} else {
			query += " AND " + c
		}
	}
	query += ` ORDER BY sold_at DESC`

	var out []domain.Sale
	err := r.db.Select(&out, query, args...)
	return out, err
}

// GetSale returns nil when no sale exists with that id.
func (r *SaleRepo) GetSale(id string) (*domain.Sale, error) {
	var s domain.Sale
	err := r.db.Get(&s, `
	  SELECT id, sold_at, total, payment_method, COALESCE(cashier_name,'') AS cashier_name,
	         staff_id, table_id, table_label
	  FROM sales WHERE id = ?
	`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// GetSaleLines annotates each line with the current catalog name of its
// product. The name frozen at order time lives in the table's cart payload;
// reports deliberately join to the live catalog instead.
func (r *SaleRepo) GetSaleLines(saleID string) ([]domain.SaleLine, error) {
	var out []domain.SaleLine
	err := r.db.Select(&out, `
	  SELECT sl.id, sl.sale_id, sl.product_id, p.name AS product_name,
	         sl.quantity, sl.unit_price, sl.line_total
	  FROM sale_lines sl
	  JOIN products p ON p.id = sl.product_id
	  WHERE sl.sale_id = ?
	`, saleID)
	return out, err
}

// DailyTotal sums sale totals for the calendar day; zero for a day without
// sales, never an error.
func (r *SaleRepo) DailyTotal(day time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.Get(&total, `
	  SELECT COALESCE(SUM(total), 0) FROM sales
	  WHERE sold_at >= ? AND sold_at <= ?
	`, dayStart(day), dayEnd(day))
	return total, err
}

// PeriodTotal sums sale totals across an inclusive day range.
func (r *SaleRepo) PeriodTotal(from, to time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.Get(&total, `
	  SELECT COALESCE(SUM(total), 0) FROM sales
	  WHERE sold_at >= ? AND sold_at <= ?
	`, dayStart(from), dayEnd(to))
	return total, err
}

// TopSellers ranks products by summed quantity sold inside the optional day
// window. Ties fall back to the store's default ordering.
func (r *SaleRepo) TopSellers(limit int, from, to *time.Time) ([]domain.TopSeller, error) {
	if limit <= 0 {
		limit = 10
	}
	query := `
	  SELECT p.name AS product_name,
	         SUM(sl.quantity) AS total_qty,
	         SUM(sl.line_total) AS total_revenue
	  FROM sale_lines sl
	  JOIN products p ON p.id = sl.product_id
	  JOIN sales s ON s.id = sl.sale_id`
	var conds []string
	var args []any
	if from != nil {
		conds = append(conds, `s.sold_at >= ?`)
		args = append(args, dayStart(*from))
	}
	if to != nil {
		conds = append(conds, `s.sold_at <= ?`)
		args = append(args, dayEnd(*to))
	}
	for i, c := range conds {
		if i == 0 {
			query += " WHERE " + c
		} else {
			query += " AND " + c
		}
	}
	query += ` GROUP BY p.id, p.name ORDER BY total_qty DESC LIMIT ?`
	args = append(args, limit)

	var out []domain.TopSeller
	err := r.db.Select(&out, query, args...)
	return out, err
}
