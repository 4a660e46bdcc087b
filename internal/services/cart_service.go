package services

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"tillpoint/internal/domain"
	"tillpoint/internal/repos"
)

// Cart is the mutable in-progress order of one open screen. It lives in memory
// only; bound carts are serialized onto their table row on close so any other
// station can pick them up.
type Cart struct {
	lines       []domain.CartLine
	tableID     string // empty for a quick sale
	tableLabel  string
	baseVersion int64 // table version observed at hydration
}

// Lines returns a copy; mutations go through the service.
func (c *Cart) Lines() []domain.CartLine {
	out := make([]domain.CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *Cart) Empty() bool { return len(c.lines) == 0 }

func (c *Cart) TableID() string { return c.tableID }

func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, ln := range c.lines {
		total = total.Add(ln.LineTotal)
	}
	return total
}

// CartService drives the cart state machine and bridges carts to the table
// store and the sale ledger.
type CartService struct {
	Products *repos.ProductRepo
	Tables   *repos.TableRepo
	Sales    *repos.SaleRepo
}

func NewCartService(products *repos.ProductRepo, tables *repos.TableRepo, sales *repos.SaleRepo) *CartService {
	return &CartService{Products: products, Tables: tables, Sales: sales}
}

// OpenQuickSale starts a tableless cart. It is never persisted: closing it
// non-empty simply discards it.
func (s *CartService) OpenQuickSale() *Cart { return &Cart{} }

// Open binds a cart to a table, hydrating any pending payload another station
// (or this one) left behind.
func (s *CartService) Open(tableID string) (*Cart, error) {
	t, err := s.Tables.GetByID(tableID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, fmt.Errorf("table %s: %w", tableID, domain.ErrNotFound)
	}

	c := &Cart{tableID: t.ID, tableLabel: t.Label(), baseVersion: t.Version}
	if t.Status == domain.TableOccupied && t.PendingCart != nil && *t.PendingCart != "" {
		lines, err := decodeCart(*t.PendingCart)
		if err != nil {
			return nil, fmt.Errorf("decode pending cart for table %s: %w", tableID, err)
		}
		c.lines = lines
	}
	return c, nil
}

// AddItem merges qty of the product into the cart. The stock check runs
// against the product row as read now, not transactionally; the commit itself
// never re-validates. A merged line keeps the unit price captured on the
// first add even if the catalog price moved since.
func (s *CartService) AddItem(c *Cart, productID string, qty int) error {
	if qty < 1 {
		return domain.ErrInvalidQuantity
	}
	p, err := s.Products.Get(productID)
	if err != nil {
		return err
	}
	if p == nil {
		return fmt.Errorf("product %s: %w", productID, domain.ErrNotFound)
	}
	if qty > p.Stock {
		return fmt.Errorf("%w: %s has %d, need %d", domain.ErrInsufficientStock, p.Name, p.Stock, qty)
	}

	for i := range c.lines {
		if c.lines[i].ProductID == p.ID {
			c.lines[i].Quantity += qty
			c.lines[i].LineTotal = c.lines[i].UnitPrice.Mul(decimal.NewFromInt(int64(c.lines[i].Quantity)))
			return nil
		}
	}
	c.lines = append(c.lines, domain.CartLine{
		ProductID:   p.ID,
		ProductName: p.Name,
		Quantity:    qty,
		UnitPrice:   p.SalePrice,
		LineTotal:   p.SalePrice.Mul(decimal.NewFromInt(int64(qty))),
	})
	return nil
}

// RemoveItem drops one line by its position in the cart.
func (s *CartService) RemoveItem(c *Cart, idx int) error {
	if idx < 0 || idx >= len(c.lines) {
		return fmt.Errorf("cart line %d: %w", idx, domain.ErrNotFound)
	}
	c.lines = append(c.lines[:idx], c.lines[idx+1:]...)
	return nil
}

func (s *CartService) ClearCart(c *Cart) { c.lines = nil }

// Checkout commits the cart through the ledger, clears the bound table and
// resets the cart. An empty cart is rejected before anything is written.
func (s *CartService) Checkout(c *Cart, paymentMethod, cashierName string, staffID *string) (string, error) {
	if c.Empty() {
		return "", domain.ErrEmptyCart
	}

	sale := domain.Sale{
		Total:         c.Total(),
		PaymentMethod: paymentMethod,
		CashierName:   cashierName,
		StaffID:       staffID,
	}
	if c.tableID != "" {
		tableID, tableLabel := c.tableID, c.tableLabel
		sale.TableID = &tableID
		sale.TableLabel = &tableLabel
	}

	saleID, err := s.Sales.CommitSale(sale, c.lines)
	if err != nil {
		return "", err
	}

	if c.tableID != "" {
		if err := s.Tables.ClearTable(c.tableID); err != nil {
			// The sale is committed; the table just stays marked occupied
			// until the next save or clear touches it.
			zap.L().Warn("table clear after checkout failed",
				zap.String("table_id", c.tableID), zap.Error(err))
		}
		c.tableID = "" // prevent a re-save of the cleared table on close
		c.tableLabel = ""
	}
	c.lines = nil

	zap.L().Info("sale committed",
		zap.String("sale_id", saleID),
		zap.String("payment_method", paymentMethod))
	return saleID, nil
}

// Close is the screen-close hook. A non-empty bound cart is persisted onto its
// table (last writer wins); an emptied bound cart clears the table; a quick
// sale is discarded. The returned flag reports the advisory conflict case: the
// table carried a payload written after this cart was hydrated, and that
// payload has now been replaced.
func (s *CartService) Close(c *Cart) (overwrote bool, err error) {
	if c.tableID == "" {
		return false, nil
	}

	t, err := s.Tables.GetByID(c.tableID)
	if err != nil {
		return false, err
	}
	if t != nil && t.Version != c.baseVersion {
		overwrote = true
		zap.L().Warn("overwriting table payload written by another station",
			zap.String("table_id", c.tableID),
			zap.Int64("read_version", c.baseVersion),
			zap.Int64("stored_version", t.Version))
	}

	if c.Empty() {
		return overwrote, s.Tables.ClearTable(c.tableID)
	}
	payload, err := encodeCart(c.lines)
	if err != nil {
		return overwrote, err
	}
	return overwrote, s.Tables.SaveCart(c.tableID, payload)
}

func encodeCart(lines []domain.CartLine) (string, error) {
	b, err := json.Marshal(lines)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func decodeCart(payload string) ([]domain.CartLine, error) {
	var lines []domain.CartLine
	if err := json.Unmarshal([]byte(payload), &lines); err != nil {
		return nil, err
	}
	return lines, nil
}
