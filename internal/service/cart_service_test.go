package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/domain/entity"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	testCartTTL         = 24 * time.Hour
	testProductCacheTTL = 5 * time.Minute
)

type cartFixture struct {
	carts    *MockCartRepository
	products *MockProductRepository
	cache    *MockProductDetailCache
	deals    *MockDealRepository
	svc      CartService
}

func newCartFixture() *cartFixture {
	f := &cartFixture{
		carts:    new(MockCartRepository),
		products: new(MockProductRepository),
		cache:    new(MockProductDetailCache),
		deals:    new(MockDealRepository),
	}
	f.svc = NewCartService(f.carts, f.products, f.cache, f.deals, logger.NewNop(), CartServiceConfig{
		CartTTL:         testCartTTL,
		ProductCacheTTL: testProductCacheTTL,
		Now:             clock,
	})
	return f
}

func (f *cartFixture) assertExpectations(t *testing.T) {
	f.carts.AssertExpectations(t)
	f.products.AssertExpectations(t)
	f.cache.AssertExpectations(t)
	f.deals.AssertExpectations(t)
}

func TestCartService_AddItem_Success_NewItem(t *testing.T) {
	f := newCartFixture()
	product := testProduct("p1", "10.00", 5)

	f.carts.On("GetByUserID", mock.Anything, "user1").Return(entity.NewCart("user1"), nil).Once()
	f.cache.On("Get", mock.Anything, "p1").Return(nil, repository.ErrNotFound).Twice()
	f.products.On("GetByID", mock.Anything, "p1").Return(product, nil).Twice()
	f.cache.On("Set", mock.Anything, product, testProductCacheTTL).Return(nil).Twice()
	f.carts.On("Save", mock.Anything, mock.MatchedBy(func(cart *entity.Cart) bool {
		return cart.UserID == "user1" && len(cart.Items) == 1 && cart.Items[0].ProductID == "p1" && cart.Items[0].Quantity == 2
	}), testCartTTL).Return(nil).Once()
	f.deals.On("List", mock.Anything).Return([]entity.Deal{}, nil).Once()

	view, err := f.svc.AddItem(context.Background(), "user1", "p1", 2)

	require.NoError(t, err)
	assert.Equal(t, "user1", view.UserID)
	require.Len(t, view.Items, 1)
	assert.Equal(t, "Product p1", view.Items[0].ProductName)
	assert.Equal(t, "10.00", view.Items[0].UnitPrice)
	assert.Equal(t, "20.00", view.Items[0].LineTotal)
	assert.Equal(t, "20.00", view.Total)
	assert.Equal(t, 2, view.ItemCount)
	f.assertExpectations(t)
}

func TestCartService_AddItem_Success_ExistingItemFromCache(t *testing.T) {
	f := newCartFixture()
	product := testProduct("p1", "10.00", 5)
	cart := entity.NewCart("user1")
	require.NoError(t, cart.AddItem("p1", 1))

	f.carts.On("GetByUserID", mock.Anything, "user1").Return(cart, nil).Once()
	f.cache.On("Get", mock.Anything, "p1").Return(product, nil).Twice()
	f.carts.On("Save", mock.Anything, mock.MatchedBy(func(c *entity.Cart) bool {
		return len(c.Items) == 1 && c.Items[0].Quantity == 3
	}), testCartTTL).Return(nil).Once()
	f.deals.On("List", mock.Anything).Return([]entity.Deal{}, nil).Once()

	view, err := f.svc.AddItem(context.Background(), "user1", "p1", 2)

	require.NoError(t, err)
	assert.Equal(t, 3, view.Items[0].Quantity)
	assert.Equal(t, "30.00", view.Total)
	f.products.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	f.assertExpectations(t)
}

func TestCartService_AddItem_OutOfStock(t *testing.T) {
	f := newCartFixture()
	f.carts.On("GetByUserID", mock.Anything, "user1").Return(entity.NewCart("user1"), nil).Once()
	f.cache.On("Get", mock.Anything, "p1").Return(testProduct("p1", "10.00", 0), nil).Once()

	_, err := f.svc.AddItem(context.Background(), "user1", "p1", 1)

	assert.ErrorIs(t, err, ErrProductUnavailable)
	f.carts.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
	f.assertExpectations(t)
}

func TestCartService_AddItem_ProductNotFound(t *testing.T) {
	f := newCartFixture()
	f.carts.On("GetByUserID", mock.Anything, "user1").Return(entity.NewCart("user1"), nil).Once()
	f.cache.On("Get", mock.Anything, "missing").Return(nil, repository.ErrNotFound).Once()
	f.products.On("GetByID", mock.Anything, "missing").Return(nil, repository.ErrNotFound).Once()

	_, err := f.svc.AddItem(context.Background(), "user1", "missing", 1)

	assert.ErrorIs(t, err, repository.ErrNotFound)
	f.assertExpectations(t)
}

func TestCartService_AddItem_InvalidQuantity(t *testing.T) {
	f := newCartFixture()
	f.carts.On("GetByUserID", mock.Anything, "user1").Return(entity.NewCart("user1"), nil).Once()
	f.cache.On("Get", mock.Anything, "p1").Return(testProduct("p1", "10.00", 3), nil).Once()

	_, err := f.svc.AddItem(context.Background(), "user1", "p1", 0)

	assert.ErrorIs(t, err, ErrInvalidInput)
	f.assertExpectations(t)
}

func TestCartService_GetCart_AppliesLiveDeal(t *testing.T) {
	f := newCartFixture()
	cart := entity.NewCart("user1")
	require.NoError(t, cart.AddItem("p1", 2))
	deal := entity.Deal{ID: "d1", Title: "Autumn sale", DiscountType: entity.DiscountPercentage, Value: "10", IsActive: true}
	expired := entity.Deal{ID: "d2", Title: "Old", DiscountType: entity.DiscountPercentage, Value: "50", IsActive: true,
		EndDate: fixedNow.Add(-time.Hour)}

	f.carts.On("GetByUserID", mock.Anything, "user1").Return(cart, nil).Once()
	f.deals.On("List", mock.Anything).Return([]entity.Deal{deal, expired}, nil).Once()
	f.cache.On("Get", mock.Anything, "p1").Return(testProduct("p1", "100.00", 5), nil).Once()

	view, err := f.svc.GetCart(context.Background(), "user1")

	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, "100.00", view.Items[0].ListPrice)
	assert.Equal(t, "90.00", view.Items[0].UnitPrice)
	assert.Equal(t, "Autumn sale", view.Items[0].DealTitle)
	assert.Equal(t, "180.00", view.Total)
	f.assertExpectations(t)
}

func TestCartService_GetCart_SkipsVanishedProducts(t *testing.T) {
	f := newCartFixture()
	cart := entity.NewCart("user1")
	require.NoError(t, cart.AddItem("gone", 1))
	require.NoError(t, cart.AddItem("p1", 1))

	f.carts.On("GetByUserID", mock.Anything, "user1").Return(cart, nil).Once()
	f.deals.On("List", mock.Anything).Return(nil, errors.New("mongo down")).Once()
	f.cache.On("Get", mock.Anything, "gone").Return(nil, repository.ErrNotFound).Once()
	f.products.On("GetByID", mock.Anything, "gone").Return(nil, repository.ErrNotFound).Once()
	f.cache.On("Get", mock.Anything, "p1").Return(testProduct("p1", "15.50", 1), nil).Once()

	view, err := f.svc.GetCart(context.Background(), "user1")

	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, "15.50", view.Total)
	f.assertExpectations(t)
}

func TestCartService_UpdateItemQuantity(t *testing.T) {
	t.Run("ZeroRemovesLine", func(t *testing.T) {
		f := newCartFixture()
		cart := entity.NewCart("user1")
		require.NoError(t, cart.AddItem("p1", 2))

		f.carts.On("GetByUserID", mock.Anything, "user1").Return(cart, nil).Once()
		f.carts.On("Save", mock.Anything, mock.MatchedBy(func(c *entity.Cart) bool { return c.IsEmpty() }), testCartTTL).Return(nil).Once()
		f.deals.On("List", mock.Anything).Return([]entity.Deal{}, nil).Once()

		view, err := f.svc.UpdateItemQuantity(context.Background(), "user1", "p1", 0)

		require.NoError(t, err)
		assert.Empty(t, view.Items)
		assert.Equal(t, "0.00", view.Total)
		f.assertExpectations(t)
	})

	t.Run("MissingItem", func(t *testing.T) {
		f := newCartFixture()
		f.carts.On("GetByUserID", mock.Anything, "user1").Return(entity.NewCart("user1"), nil).Once()

		_, err := f.svc.UpdateItemQuantity(context.Background(), "user1", "p1", 3)

		assert.ErrorIs(t, err, entity.ErrCartItemNotFound)
		f.assertExpectations(t)
	})
}

func TestCartService_RemoveItem_SaveFails(t *testing.T) {
	f := newCartFixture()
	cart := entity.NewCart("user1")
	require.NoError(t, cart.AddItem("p1", 1))
	saveErr := errors.New("redis unavailable")

	f.carts.On("GetByUserID", mock.Anything, "user1").Return(cart, nil).Once()
	f.carts.On("Save", mock.Anything, cart, testCartTTL).Return(saveErr).Once()

	_, err := f.svc.RemoveItem(context.Background(), "user1", "p1")

	assert.ErrorIs(t, err, saveErr)
	f.assertExpectations(t)
}

func TestCartService_ClearCart(t *testing.T) {
	f := newCartFixture()
	f.carts.On("DeleteByUserID", mock.Anything, "user1").Return(nil).Once()

	assert.NoError(t, f.svc.ClearCart(context.Background(), "user1"))
	f.assertExpectations(t)
}
