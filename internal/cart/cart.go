package cart

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"lilypay/internal/models"
)

var (
	// ErrLineNotFound is returned when setting a quantity on an item that
	// has no line in the cart.
	ErrLineNotFound = errors.New("cart: line not found")

	// ErrInvalidQuantity is returned for negative quantities.
	ErrInvalidQuantity = errors.New("cart: quantity must not be negative")

	// ErrInvalidAmount is returned for a negative tendered amount.
	ErrInvalidAmount = errors.New("cart: amount must not be negative")
)

// Line is one cart entry: an item and how many of it are being bought.
// A cart holds at most one line per item.
type Line struct {
	Item     models.FoodItem `json:"item"`
	Quantity int             `json:"quantity"`
}

// Subtotal returns price x quantity for this line.
func (l Line) Subtotal() decimal.Decimal {
	return l.Item.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart is the in-memory state of one order being assembled: an ordered
// sequence of lines plus the session context (table, order type, amount
// tendered). It lives for one order session and is reset by Clear after
// a successful commit or an explicit cancel.
type Cart struct {
	lines       []Line
	tableNumber int
	orderType   models.OrderType
	tendered    decimal.Decimal
}

// New creates an empty cart for a fresh order session.
func New() *Cart {
	return &Cart{
		orderType: models.DineIn,
		tendered:  decimal.Zero,
	}
}

// AddOrIncrement adds a line for the item, or bumps its quantity by one
// if a line for it already exists. Insertion order is preserved.
func (c *Cart) AddOrIncrement(item models.FoodItem) {
	for i := range c.lines {
		if c.lines[i].Item.ID == item.ID {
			c.lines[i].Quantity++
			return
		}
	}
	c.lines = append(c.lines, Line{Item: item, Quantity: 1})
}

// SetQuantity overwrites the quantity of an existing line. Zero removes
// the line; a line is never kept at quantity zero. Setting a positive
// quantity on an absent line fails with ErrLineNotFound.
func (c *Cart) SetQuantity(itemID, quantity int) error {
	if quantity < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidQuantity, quantity)
	}

	for i := range c.lines {
		if c.lines[i].Item.ID == itemID {
			if quantity == 0 {
				c.lines = append(c.lines[:i], c.lines[i+1:]...)
			} else {
				c.lines[i].Quantity = quantity
			}
			return nil
		}
	}

	if quantity == 0 {
		return nil
	}
	return ErrLineNotFound
}

// RemoveLine removes the line for the item. Removing an absent line is
// a no-op.
func (c *Cart) RemoveLine(itemID int) {
	for i := range c.lines {
		if c.lines[i].Item.ID == itemID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

// Clear resets the cart to an empty order session. Used after a commit
// and as the cancellation path.
func (c *Cart) Clear() {
	c.lines = nil
	c.tableNumber = 0
	c.orderType = models.DineIn
	c.tendered = decimal.Zero
}

// Total sums price x quantity over all lines. An empty cart totals zero.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, line := range c.lines {
		total = total.Add(line.Subtotal())
	}
	return total
}

// Change returns tendered minus total. A negative result means
// underpayment; the commit gate uses it to block confirmation.
func (c *Cart) Change(tendered decimal.Decimal) decimal.Decimal {
	return tendered.Sub(c.Total())
}

// SetTendered records the amount the customer handed over.
func (c *Cart) SetTendered(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return ErrInvalidAmount
	}
	c.tendered = amount
	return nil
}

// Tendered returns the recorded payment amount, zero until entered.
func (c *Cart) Tendered() decimal.Decimal {
	return c.tendered
}

// SetTableNumber records the selected table. Zero means no table.
func (c *Cart) SetTableNumber(n int) error {
	if n < 0 {
		return fmt.Errorf("cart: table number must not be negative")
	}
	c.tableNumber = n
	return nil
}

// SetOrderType records whether the order is dine-in or take-out.
func (c *Cart) SetOrderType(t models.OrderType) {
	c.orderType = t
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// Lines returns a copy of the cart lines in insertion order.
func (c *Cart) Lines() []Line {
	lines := make([]Line, len(c.lines))
	copy(lines, c.lines)
	return lines
}

// Snapshot is an immutable view of a cart, handed to the presentation
// layer and to the order commit service.
type Snapshot struct {
	Lines       []Line           `json:"lines"`
	TableNumber int              `json:"table_number"`
	OrderType   models.OrderType `json:"order_type"`
	Tendered    decimal.Decimal  `json:"amount_tendered"`
	Total       decimal.Decimal  `json:"total"`
	Change      decimal.Decimal  `json:"change"`
}

// Snapshot captures the current cart state and its derived values.
func (c *Cart) Snapshot() Snapshot {
	return Snapshot{
		Lines:       c.Lines(),
		TableNumber: c.tableNumber,
		OrderType:   c.orderType,
		Tendered:    c.tendered,
		Total:       c.Total(),
		Change:      c.Change(c.tendered),
	}
}
