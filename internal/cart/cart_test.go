package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lilypay/internal/models"
)

func item(id int, name string, price string) models.FoodItem {
	return models.FoodItem{
		ID:          id,
		Name:        name,
		Price:       decimal.RequireFromString(price),
		IsAvailable: true,
	}
}

func TestAddOrIncrement(t *testing.T) {
	c := New()
	coffee := item(1, "Coffee", "2.50")

	for i := 0; i < 3; i++ {
		c.AddOrIncrement(coffee)
	}

	lines := c.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 3, lines[0].Quantity)
}

func TestAddOrIncrement_PreservesInsertionOrder(t *testing.T) {
	c := New()
	c.AddOrIncrement(item(2, "Burger", "15.00"))
	c.AddOrIncrement(item(1, "Coffee", "2.50"))
	c.AddOrIncrement(item(2, "Burger", "15.00"))

	lines := c.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, "Burger", lines[0].Item.Name)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.Equal(t, "Coffee", lines[1].Item.Name)
}

func TestSetQuantity(t *testing.T) {
	burger := item(1, "Burger", "15.00")

	tests := []struct {
		name     string
		setup    func(c *Cart)
		itemID   int
		quantity int
		wantErr  error
		wantQty  int
	}{
		{
			name:     "overwrite existing quantity",
			setup:    func(c *Cart) { c.AddOrIncrement(burger) },
			itemID:   1,
			quantity: 5,
			wantQty:  5,
		},
		{
			name:     "zero removes the line",
			setup:    func(c *Cart) { c.AddOrIncrement(burger) },
			itemID:   1,
			quantity: 0,
			wantQty:  -1,
		},
		{
			name:     "zero on absent line is a no-op",
			setup:    func(c *Cart) {},
			itemID:   9,
			quantity: 0,
			wantQty:  -1,
		},
		{
			name:     "positive on absent line fails",
			setup:    func(c *Cart) {},
			itemID:   9,
			quantity: 2,
			wantErr:  ErrLineNotFound,
			wantQty:  -1,
		},
		{
			name:     "negative quantity rejected",
			setup:    func(c *Cart) { c.AddOrIncrement(burger) },
			itemID:   1,
			quantity: -1,
			wantErr:  ErrInvalidQuantity,
			wantQty:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New()
			tt.setup(c)

			err := c.SetQuantity(tt.itemID, tt.quantity)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}

			if tt.wantQty == -1 {
				for _, line := range c.Lines() {
					assert.NotEqual(t, tt.itemID, line.Item.ID)
				}
			} else {
				lines := c.Lines()
				require.Len(t, lines, 1)
				assert.Equal(t, tt.wantQty, lines[0].Quantity)
			}
		})
	}
}

func TestSetQuantityZero_ExcludedFromTotal(t *testing.T) {
	c := New()
	c.AddOrIncrement(item(1, "Burger", "15.00"))
	c.AddOrIncrement(item(2, "Coffee", "2.50"))

	require.NoError(t, c.SetQuantity(1, 0))

	assert.True(t, c.Total().Equal(decimal.RequireFromString("2.50")))
	assert.Len(t, c.Lines(), 1)
}

func TestRemoveLine(t *testing.T) {
	c := New()
	c.AddOrIncrement(item(1, "Burger", "15.00"))

	c.RemoveLine(1)
	assert.True(t, c.IsEmpty())

	// Absent line is a no-op.
	c.RemoveLine(42)
	assert.True(t, c.IsEmpty())
}

func TestTotal(t *testing.T) {
	c := New()
	assert.True(t, c.Total().IsZero(), "empty cart totals zero")

	a := item(1, "Item A", "100")
	b := item(2, "Item B", "50")
	c.AddOrIncrement(a)
	c.AddOrIncrement(a)
	c.AddOrIncrement(b)

	assert.True(t, c.Total().Equal(decimal.NewFromInt(250)))
}

func TestChange_CanBeNegative(t *testing.T) {
	c := New()
	c.AddOrIncrement(item(1, "Steak", "26.00"))

	change := c.Change(decimal.NewFromInt(20))
	assert.True(t, change.IsNegative())
	assert.True(t, change.Equal(decimal.NewFromInt(-6)))
}

func TestClear(t *testing.T) {
	c := New()
	c.AddOrIncrement(item(1, "Burger", "15.00"))
	require.NoError(t, c.SetTendered(decimal.NewFromInt(20)))
	require.NoError(t, c.SetTableNumber(4))
	c.SetOrderType(models.TakeOut)

	c.Clear()

	snap := c.Snapshot()
	assert.Empty(t, snap.Lines)
	assert.True(t, snap.Total.IsZero())
	assert.True(t, snap.Tendered.IsZero())
	assert.Equal(t, 0, snap.TableNumber)
	assert.Equal(t, models.DineIn, snap.OrderType)
}

func TestSetTendered(t *testing.T) {
	c := New()
	assert.ErrorIs(t, c.SetTendered(decimal.NewFromInt(-1)), ErrInvalidAmount)

	require.NoError(t, c.SetTendered(decimal.NewFromInt(300)))
	assert.True(t, c.Tendered().Equal(decimal.NewFromInt(300)))
}

func TestSnapshot_ScenarioFromRegisterFlow(t *testing.T) {
	// Cart [{A 100 x2}, {B 50 x1}] with 300 tendered.
	c := New()
	a := item(1, "Item A", "100")
	b := item(2, "Item B", "50")
	c.AddOrIncrement(a)
	c.AddOrIncrement(a)
	c.AddOrIncrement(b)
	require.NoError(t, c.SetTendered(decimal.NewFromInt(300)))

	snap := c.Snapshot()
	assert.True(t, snap.Total.Equal(decimal.NewFromInt(250)))
	assert.True(t, snap.Change.Equal(decimal.NewFromInt(50)))
	require.Len(t, snap.Lines, 2)
}

func TestSnapshot_IsACopy(t *testing.T) {
	c := New()
	c.AddOrIncrement(item(1, "Burger", "15.00"))

	snap := c.Snapshot()
	snap.Lines[0].Quantity = 99

	assert.Equal(t, 1, c.Lines()[0].Quantity)
}
