package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/domain/entity"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/repository"
	"github.com/shopspring/decimal"
)

const defaultCartTTL = 7 * 24 * time.Hour

type CartLine struct {
	ProductID   string `json:"productId"`
	ProductName string `json:"productName"`
	ProductSlug string `json:"productSlug"`
	Image       string `json:"image,omitempty"`
	Quantity    int    `json:"quantity"`
	ListPrice   string `json:"listPrice"`
	UnitPrice   string `json:"unitPrice"`
	LineTotal   string `json:"lineTotal"`
	DealTitle   string `json:"dealTitle,omitempty"`
}

type CartView struct {
	UserID    string     `json:"userId"`
	Items     []CartLine `json:"items"`
	ItemCount int        `json:"itemCount"`
	Total     string     `json:"total"`
}

type CartService interface {
	AddItem(ctx context.Context, userID, productID string, quantity int) (*CartView, error)
	UpdateItemQuantity(ctx context.Context, userID, productID string, newQuantity int) (*CartView, error)
	RemoveItem(ctx context.Context, userID, productID string) (*CartView, error)
	GetCart(ctx context.Context, userID string) (*CartView, error)
	ClearCart(ctx context.Context, userID string) error
}

type CartServiceConfig struct {
	CartTTL         time.Duration
	ProductCacheTTL time.Duration
	Now             func() time.Time
}

type cartService struct {
	cartRepo repository.CartRepository
	products *productLookup
	pricer   *dealPricer
	log      logger.Logger
	cartTTL  time.Duration
}

func NewCartService(
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	productCache repository.ProductDetailCache,
	dealRepo repository.DealRepository,
	log logger.Logger,
	cfg CartServiceConfig,
) CartService {
	cartTTL := cfg.CartTTL
	if cartTTL <= 0 {
		cartTTL = defaultCartTTL
	}
	return &cartService{
		cartRepo: cartRepo,
		products: newProductLookup(productRepo, productCache, cfg.ProductCacheTTL, log),
		pricer:   newDealPricer(dealRepo, cfg.Now, log),
		log:      log,
		cartTTL:  cartTTL,
	}
}

// enrich prices every line at its best live deal. Lines whose product has
// disappeared are skipped.
func (s *cartService) enrich(ctx context.Context, cart *entity.Cart) *CartView {
	view := &CartView{UserID: cart.UserID, Items: make([]CartLine, 0, len(cart.Items))}
	live := s.pricer.live(ctx)
	total := decimal.Zero

	for _, item := range cart.Items {
		product, err := s.products.get(ctx, item.ProductID)
		if err != nil {
			s.log.Errorf("enrich: failed to get product %s for cart of user %s: %v", item.ProductID, cart.UserID, err)
			continue
		}
		unit, deal := s.pricer.price(*product, live)
		lineTotal := unit.Mul(decimal.NewFromInt(int64(item.Quantity)))
		total = total.Add(lineTotal)

		line := CartLine{
			ProductID:   product.ID,
			ProductName: product.Name,
			ProductSlug: product.Slug,
			Image:       product.PrimaryImage(),
			Quantity:    item.Quantity,
			ListPrice:   product.PriceDecimal().StringFixed(2),
			UnitPrice:   unit.StringFixed(2),
			LineTotal:   lineTotal.StringFixed(2),
		}
		if deal != nil {
			line.DealTitle = deal.Title
		}
		view.Items = append(view.Items, line)
		view.ItemCount += item.Quantity
	}
	view.Total = total.StringFixed(2)
	return view
}

func (s *cartService) save(ctx context.Context, cart *entity.Cart) error {
	if err := s.cartRepo.Save(ctx, cart, s.cartTTL); err != nil {
		s.log.Errorf("Error saving cart for user %s: %v", cart.UserID, err)
		return fmt.Errorf("could not save cart: %w", err)
	}
	return nil
}

func (s *cartService) load(ctx context.Context, userID string) (*entity.Cart, error) {
	cart, err := s.cartRepo.GetByUserID(ctx, userID)
	if err != nil {
		s.log.Errorf("Error getting cart for user %s: %v", userID, err)
		return nil, fmt.Errorf("could not retrieve cart: %w", err)
	}
	return cart, nil
}

func (s *cartService) AddItem(ctx context.Context, userID, productID string, quantity int) (*CartView, error) {
	s.log.Infof("Adding item to cart: UserID=%s, ProductID=%s, Quantity=%d", userID, productID, quantity)
	cart, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	product, err := s.products.get(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("product %s: %w", productID, repository.ErrNotFound)
		}
		return nil, fmt.Errorf("could not check product %s: %w", productID, err)
	}
	if !product.InStock() {
		s.log.Warnf("Attempted to add out-of-stock product %s (ID: %s) to cart", product.Name, productID)
		return nil, fmt.Errorf("%w: %s is out of stock", ErrProductUnavailable, product.Name)
	}

	if err := cart.AddItem(productID, quantity); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if err := s.save(ctx, cart); err != nil {
		return nil, err
	}
	s.log.Infof("Item added to cart successfully for user %s", userID)
	return s.enrich(ctx, cart), nil
}

func (s *cartService) UpdateItemQuantity(ctx context.Context, userID, productID string, newQuantity int) (*CartView, error) {
	s.log.Infof("Updating item quantity: UserID=%s, ProductID=%s, NewQuantity=%d", userID, productID, newQuantity)
	cart, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := cart.UpdateItemQuantity(productID, newQuantity); err != nil {
		return nil, fmt.Errorf("could not update item quantity: %w", err)
	}
	if err := s.save(ctx, cart); err != nil {
		return nil, err
	}
	return s.enrich(ctx, cart), nil
}

func (s *cartService) RemoveItem(ctx context.Context, userID, productID string) (*CartView, error) {
	s.log.Infof("Removing item from cart: UserID=%s, ProductID=%s", userID, productID)
	cart, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := cart.RemoveItem(productID); err != nil {
		return nil, fmt.Errorf("could not remove item from cart: %w", err)
	}
	if err := s.save(ctx, cart); err != nil {
		return nil, err
	}
	return s.enrich(ctx, cart), nil
}

func (s *cartService) GetCart(ctx context.Context, userID string) (*CartView, error) {
	cart, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.enrich(ctx, cart), nil
}

func (s *cartService) ClearCart(ctx context.Context, userID string) error {
	s.log.Infof("Clearing cart for user: UserID=%s", userID)
	if err := s.cartRepo.DeleteByUserID(ctx, userID); err != nil {
		s.log.Errorf("Error deleting cart for user %s: %v", userID, err)
		return fmt.Errorf("could not clear cart: %w", err)
	}
	return nil
}
