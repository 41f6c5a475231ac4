package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/domain/entity"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/repository"
)

type WishlistService interface {
	Add(ctx context.Context, userID, productID string) error
	Remove(ctx context.Context, userID, productID string) error
	List(ctx context.Context, userID string) ([]entity.Product, error)
	Contains(ctx context.Context, userID, productID string) (bool, error)
}

type wishlistService struct {
	repo     repository.WishlistRepository
	products *productLookup
	log      logger.Logger
}

func NewWishlistService(
	repo repository.WishlistRepository,
	productRepo repository.ProductRepository,
	productCache repository.ProductDetailCache,
	productCacheTTL time.Duration,
	log logger.Logger,
) WishlistService {
	return &wishlistService{
		repo:     repo,
		products: newProductLookup(productRepo, productCache, productCacheTTL, log),
		log:      log,
	}
}

func (s *wishlistService) Add(ctx context.Context, userID, productID string) error {
	if _, err := s.products.get(ctx, productID); err != nil {
		return err
	}
	if err := s.repo.Add(ctx, userID, productID); err != nil {
		return fmt.Errorf("could not add product %s to wishlist: %w", productID, err)
	}
	s.log.Infof("Product %s added to wishlist of user %s", productID, userID)
	return nil
}

func (s *wishlistService) Remove(ctx context.Context, userID, productID string) error {
	if err := s.repo.Remove(ctx, userID, productID); err != nil {
		return fmt.Errorf("could not remove product %s from wishlist: %w", productID, err)
	}
	return nil
}

// List resolves the wishlist to products; ids that no longer resolve are
// skipped.
func (s *wishlistService) List(ctx context.Context, userID string) ([]entity.Product, error) {
	ids, err := s.repo.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("could not load wishlist: %w", err)
	}
	products := make([]entity.Product, 0, len(ids))
	for _, id := range ids {
		p, err := s.products.get(ctx, id)
		if err != nil {
			s.log.Warnf("Skipping wishlist product %s of user %s: %v", id, userID, err)
			continue
		}
		products = append(products, *p)
	}
	return products, nil
}

func (s *wishlistService) Contains(ctx context.Context, userID, productID string) (bool, error) {
	ok, err := s.repo.Contains(ctx, userID, productID)
	if err != nil {
		return false, fmt.Errorf("could not check wishlist: %w", err)
	}
	return ok, nil
}
