package catalog

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lilypay/internal/logger"
	"lilypay/internal/models"
)

type fakeStore struct {
	items      map[int]models.FoodItem
	categories []models.Category
	inserted   []string
}

func (f *fakeStore) Categories(ctx context.Context) ([]models.Category, error) {
	return f.categories, nil
}

func (f *fakeStore) Subcategories(ctx context.Context, categoryID int) ([]models.Subcategory, error) {
	return nil, nil
}

func (f *fakeStore) FoodItems(ctx context.Context, subcategoryID int) ([]models.FoodItem, error) {
	return nil, nil
}

func (f *fakeStore) FoodItemByID(ctx context.Context, id int) (*models.FoodItem, error) {
	item, ok := f.items[id]
	if !ok {
		return nil, ErrItemNotFound
	}
	return &item, nil
}

func (f *fakeStore) MenuDetails(ctx context.Context) ([]models.MenuItem, error) {
	return nil, nil
}

func (f *fakeStore) InsertCategory(ctx context.Context, c *models.Category) error {
	c.ID = len(f.inserted) + 1
	f.inserted = append(f.inserted, c.Name)
	return nil
}

func (f *fakeStore) InsertFoodItem(ctx context.Context, item *models.FoodItem) error {
	item.ID = len(f.inserted) + 1
	f.inserted = append(f.inserted, item.Name)
	return nil
}

func (f *fakeStore) SetAvailability(ctx context.Context, itemID int, available bool) error {
	return nil
}

func newService(store Store) *Service {
	return NewService(store, logger.New("catalog-test"))
}

func TestSellableItem(t *testing.T) {
	store := &fakeStore{items: map[int]models.FoodItem{
		1: {ID: 1, Name: "Coffee", Price: decimal.RequireFromString("2.50"), IsAvailable: true},
		2: {ID: 2, Name: "Off Menu", IsAvailable: false},
	}}
	svc := newService(store)

	item, err := svc.SellableItem(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Coffee", item.Name)

	_, err = svc.SellableItem(context.Background(), 2)
	assert.ErrorIs(t, err, ErrItemUnavailable)

	_, err = svc.SellableItem(context.Background(), 99)
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestCreateFoodItem_Validation(t *testing.T) {
	tests := []struct {
		name    string
		item    models.FoodItem
		wantErr bool
	}{
		{
			name: "valid item",
			item: models.FoodItem{SubcategoryID: 1, Name: "Pancakes", Price: decimal.NewFromInt(12)},
		},
		{
			name:    "missing name",
			item:    models.FoodItem{SubcategoryID: 1, Price: decimal.NewFromInt(12)},
			wantErr: true,
		},
		{
			name:    "missing subcategory",
			item:    models.FoodItem{Name: "Pancakes", Price: decimal.NewFromInt(12)},
			wantErr: true,
		},
		{
			name:    "negative price",
			item:    models.FoodItem{SubcategoryID: 1, Name: "Pancakes", Price: decimal.NewFromInt(-1)},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeStore{}
			err := newService(store).CreateFoodItem(context.Background(), &tt.item, "req-1")
			if tt.wantErr {
				assert.Error(t, err)
				assert.Empty(t, store.inserted)
			} else {
				assert.NoError(t, err)
				assert.NotZero(t, tt.item.ID)
			}
		})
	}
}

func TestCreateCategory_RequiresName(t *testing.T) {
	store := &fakeStore{}
	svc := newService(store)

	err := svc.CreateCategory(context.Background(), &models.Category{}, "req-1")
	assert.Error(t, err)

	err = svc.CreateCategory(context.Background(), &models.Category{Name: "Brunch"}, "req-1")
	assert.NoError(t, err)
}
