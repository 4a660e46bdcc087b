package domain

import "github.com/shopspring/decimal"

// TableStatus is the two-state occupancy of a table.
type TableStatus string

const (
	TableEmpty    TableStatus = "EMPTY"
	TableOccupied TableStatus = "OCCUPIED"
)

type Category struct {
	ID        string `db:"id"`
	Name      string `db:"name"`
	CreatedAt string `db:"created_at"`
}

type Product struct {
	ID           string          `db:"id"`
	Barcode      *string         `db:"barcode"`
	Name         string          `db:"name"`
	CategoryID   *string         `db:"category_id"`
	CategoryName *string         `db:"category_name"` // joined, not stored
	CostPrice    decimal.Decimal `db:"cost_price"`
	SalePrice    decimal.Decimal `db:"sale_price"`
	Stock        int             `db:"stock"`
	ImageRef     *string         `db:"image_ref"`
	CreatedAt    string          `db:"created_at"`
}

type TableCategory struct {
	ID        string `db:"id"`
	Name      string `db:"name"`
	CreatedAt string `db:"created_at"`
}

// Table is a physical ordering context (a restaurant table), not a DB table.
// PendingCart holds the serialized cart while Status is OCCUPIED. Version is an
// advisory counter bumped on every payload write so a writer can tell it is
// overwriting state it never read.
type Table struct {
	ID              string      `db:"id"`
	Name            string      `db:"name"`
	TableCategoryID *string     `db:"table_category_id"`
	CategoryName    *string     `db:"category_name"` // joined, not stored
	Status          TableStatus `db:"status"`
	PendingCart     *string     `db:"pending_cart"`
	Version         int64       `db:"version"`
	CreatedAt       string      `db:"created_at"`
}

// Label is how a table is shown and stamped onto sales ("Terrace - T3").
func (t Table) Label() string {
	if t.CategoryName != nil && *t.CategoryName != "" {
		return *t.CategoryName + " - " + t.Name
	}
	return t.Name
}

// CartLine is one line of an in-progress cart. Name and price are captured at
// add time and are not re-resolved from the catalog afterwards.
type CartLine struct {
	ProductID   string          `json:"productId"`
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	LineTotal   decimal.Decimal `json:"lineTotal"`
}

type Sale struct {
	ID            string          `db:"id"`
	SoldAt        string          `db:"sold_at"`
	Total         decimal.Decimal `db:"total"`
	PaymentMethod string          `db:"payment_method"`
	CashierName   string          `db:"cashier_name"`
	StaffID       *string         `db:"staff_id"`
	TableID       *string         `db:"table_id"`
	TableLabel    *string         `db:"table_label"`
}

// SaleLine is an immutable committed line. ProductName is joined from the live
// catalog on read; the name frozen at order time lives only in the cart payload.
type SaleLine struct {
	ID          string          `db:"id"`
	SaleID      string          `db:"sale_id"`
	ProductID   string          `db:"product_id"`
	ProductName string          `db:"product_name"`
	Quantity    int             `db:"quantity"`
	UnitPrice   decimal.Decimal `db:"unit_price"`
	LineTotal   decimal.Decimal `db:"line_total"`
}

type Staff struct {
	ID         string `db:"id"`
	FirstName  string `db:"first_name"`
	LastName   string `db:"last_name"`
	SecretHash string `db:"secret_hash"`
	CreatedAt  string `db:"created_at"`
}

func (s Staff) FullName() string { return s.FirstName + " " + s.LastName }

// TopSeller is one row of the ranked top-sellers aggregate.
type TopSeller struct {
	ProductName  string          `db:"product_name"`
	TotalQty     int             `db:"total_qty"`
	TotalRevenue decimal.Decimal `db:"total_revenue"`
}
