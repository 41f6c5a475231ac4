package http

import (
	"context"

	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/catalog"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/domain/entity"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/repository"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/service"
	"github.com/stretchr/testify/mock"
)

type MockCatalogService struct {
	mock.Mock
}

func (m *MockCatalogService) Bounds() catalog.PriceBounds {
	return catalog.PriceBounds{Min: 0, Max: 1000}
}

func (m *MockCatalogService) Browse(ctx context.Context, facets catalog.Facets, page, perPage int) (*service.BrowseResult, error) {
	args := m.Called(ctx, facets, page, perPage)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.BrowseResult), args.Error(1)
}

func (m *MockCatalogService) GetProduct(ctx context.Context, slugOrID string) (*service.ProductDetail, error) {
	args := m.Called(ctx, slugOrID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ProductDetail), args.Error(1)
}

func (m *MockCatalogService) ListCategories(ctx context.Context) ([]entity.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Category), args.Error(1)
}

func (m *MockCatalogService) FacetMetadata(ctx context.Context, facets catalog.Facets) (*catalog.FacetMetadata, error) {
	args := m.Called(ctx, facets)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.FacetMetadata), args.Error(1)
}

func (m *MockCatalogService) ActiveDeals(ctx context.Context) ([]entity.Deal, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Deal), args.Error(1)
}

func (m *MockCatalogService) ActiveAnnouncements(ctx context.Context) ([]entity.Announcement, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Announcement), args.Error(1)
}

func (m *MockCatalogService) PriceWithDeals(ctx context.Context, product entity.Product) service.PricedProduct {
	args := m.Called(ctx, product)
	return args.Get(0).(service.PricedProduct)
}

type MockCartService struct {
	mock.Mock
}

func (m *MockCartService) cartResult(args mock.Arguments) (*service.CartView, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.CartView), args.Error(1)
}

func (m *MockCartService) AddItem(ctx context.Context, userID, productID string, quantity int) (*service.CartView, error) {
	return m.cartResult(m.Called(ctx, userID, productID, quantity))
}

func (m *MockCartService) UpdateItemQuantity(ctx context.Context, userID, productID string, newQuantity int) (*service.CartView, error) {
	return m.cartResult(m.Called(ctx, userID, productID, newQuantity))
}

func (m *MockCartService) RemoveItem(ctx context.Context, userID, productID string) (*service.CartView, error) {
	return m.cartResult(m.Called(ctx, userID, productID))
}

func (m *MockCartService) GetCart(ctx context.Context, userID string) (*service.CartView, error) {
	return m.cartResult(m.Called(ctx, userID))
}

func (m *MockCartService) ClearCart(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

type MockWishlistService struct {
	mock.Mock
}

func (m *MockWishlistService) Add(ctx context.Context, userID, productID string) error {
	return m.Called(ctx, userID, productID).Error(0)
}

func (m *MockWishlistService) Remove(ctx context.Context, userID, productID string) error {
	return m.Called(ctx, userID, productID).Error(0)
}

func (m *MockWishlistService) List(ctx context.Context, userID string) ([]entity.Product, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Product), args.Error(1)
}

func (m *MockWishlistService) Contains(ctx context.Context, userID, productID string) (bool, error) {
	args := m.Called(ctx, userID, productID)
	return args.Bool(0), args.Error(1)
}

type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) orderResult(args mock.Arguments) (*entity.Order, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Order), args.Error(1)
}

func (m *MockOrderService) Checkout(ctx context.Context, userID string, req service.CheckoutRequest) (*entity.Order, error) {
	return m.orderResult(m.Called(ctx, userID, req))
}

func (m *MockOrderService) GetOrder(ctx context.Context, orderID, userID string, isAdmin bool) (*entity.Order, error) {
	return m.orderResult(m.Called(ctx, orderID, userID, isAdmin))
}

func (m *MockOrderService) ListUserOrders(ctx context.Context, userID string, page, pageSize int) (*repository.ListOrdersResult, error) {
	args := m.Called(ctx, userID, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.ListOrdersResult), args.Error(1)
}

func (m *MockOrderService) ListAllOrders(ctx context.Context, params repository.ListOrdersParams) (*repository.ListOrdersResult, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.ListOrdersResult), args.Error(1)
}

func (m *MockOrderService) CancelOrder(ctx context.Context, orderID, userID string) (*entity.Order, error) {
	return m.orderResult(m.Called(ctx, orderID, userID))
}

func (m *MockOrderService) UpdateStatusByAdmin(ctx context.Context, orderID, newStatus, adminID string) (*entity.Order, error) {
	return m.orderResult(m.Called(ctx, orderID, newStatus, adminID))
}

func (m *MockOrderService) UpdatePaymentStatus(ctx context.Context, orderID, paymentStatus, transactionID string) (*entity.Order, error) {
	return m.orderResult(m.Called(ctx, orderID, paymentStatus, transactionID))
}

func (m *MockOrderService) Tracking(ctx context.Context, orderNumber string) (*service.OrderTracking, error) {
	args := m.Called(ctx, orderNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.OrderTracking), args.Error(1)
}

type MockReceiptService struct {
	mock.Mock
}

func (m *MockReceiptService) GenerateOrderReceipt(ctx context.Context, orderID, userID string, isAdmin bool) ([]byte, string, error) {
	args := m.Called(ctx, orderID, userID, isAdmin)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).([]byte), args.String(1), args.Error(2)
}

type MockAdminService struct {
	mock.Mock
}

func (m *MockAdminService) Dashboard(ctx context.Context) (*service.DashboardStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.DashboardStats), args.Error(1)
}

func (m *MockAdminService) productResult(args mock.Arguments) (*entity.Product, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Product), args.Error(1)
}

func (m *MockAdminService) CreateProduct(ctx context.Context, p *entity.Product) (*entity.Product, error) {
	return m.productResult(m.Called(ctx, p))
}

func (m *MockAdminService) UpdateProduct(ctx context.Context, p *entity.Product) (*entity.Product, error) {
	return m.productResult(m.Called(ctx, p))
}

func (m *MockAdminService) DeleteProduct(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockAdminService) UploadProductImage(ctx context.Context, productID, fileName string, data []byte) (*entity.Product, error) {
	return m.productResult(m.Called(ctx, productID, fileName, data))
}

func (m *MockAdminService) CreateCategory(ctx context.Context, c *entity.Category) (*entity.Category, error) {
	args := m.Called(ctx, c)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Category), args.Error(1)
}

func (m *MockAdminService) UpdateCategory(ctx context.Context, c *entity.Category) (*entity.Category, error) {
	args := m.Called(ctx, c)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Category), args.Error(1)
}

func (m *MockAdminService) DeleteCategory(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockAdminService) ListCategories(ctx context.Context) ([]entity.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Category), args.Error(1)
}

func (m *MockAdminService) CreateDeal(ctx context.Context, d *entity.Deal) (*entity.Deal, error) {
	args := m.Called(ctx, d)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Deal), args.Error(1)
}

func (m *MockAdminService) UpdateDeal(ctx context.Context, d *entity.Deal) (*entity.Deal, error) {
	args := m.Called(ctx, d)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Deal), args.Error(1)
}

func (m *MockAdminService) DeleteDeal(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockAdminService) ListDeals(ctx context.Context) ([]entity.Deal, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Deal), args.Error(1)
}

func (m *MockAdminService) CreateAnnouncement(ctx context.Context, a *entity.Announcement) (*entity.Announcement, error) {
	args := m.Called(ctx, a)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Announcement), args.Error(1)
}

func (m *MockAdminService) UpdateAnnouncement(ctx context.Context, a *entity.Announcement) (*entity.Announcement, error) {
	args := m.Called(ctx, a)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Announcement), args.Error(1)
}

func (m *MockAdminService) DeleteAnnouncement(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockAdminService) ListAnnouncements(ctx context.Context) ([]entity.Announcement, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Announcement), args.Error(1)
}
