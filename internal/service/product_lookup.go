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

const defaultProductCacheTTL = 5 * time.Minute

// productLookup reads products through the short-lived detail cache.
type productLookup struct {
	products repository.ProductRepository
	cache    repository.ProductDetailCache
	ttl      time.Duration
	log      logger.Logger
}

func newProductLookup(products repository.ProductRepository, cache repository.ProductDetailCache, ttl time.Duration, log logger.Logger) *productLookup {
	if ttl <= 0 {
		ttl = defaultProductCacheTTL
	}
	return &productLookup{products: products, cache: cache, ttl: ttl, log: log}
}

func (l *productLookup) get(ctx context.Context, productID string) (*entity.Product, error) {
	if l.cache != nil {
		cached, err := l.cache.Get(ctx, productID)
		if err == nil && cached != nil {
			l.log.Debugf("Product %s found in cache", productID)
			return cached, nil
		}
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			l.log.Warnf("Error getting product %s from cache: %v. Reading repository.", productID, err)
		}
	}

	product, err := l.products.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("product %s: %w", productID, repository.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load product %s: %w", productID, err)
	}

	if l.cache != nil {
		if err := l.cache.Set(ctx, product, l.ttl); err != nil {
			l.log.Warnf("Failed to set product %s to cache: %v", productID, err)
		}
	}
	return product, nil
}

func (l *productLookup) invalidate(ctx context.Context, productID string) {
	if l.cache == nil {
		return
	}
	if err := l.cache.Delete(ctx, productID); err != nil {
		l.log.Warnf("Failed to invalidate cached product %s: %v", productID, err)
	}
}

// dealPricer resolves the best live deal price for a product.
type dealPricer struct {
	deals repository.DealRepository
	now   func() time.Time
	log   logger.Logger
}

func newDealPricer(deals repository.DealRepository, now func() time.Time, log logger.Logger) *dealPricer {
	if now == nil {
		now = time.Now
	}
	return &dealPricer{deals: deals, now: now, log: log}
}

// live returns the deals active right now. Lookup failures are logged and
// yield list prices.
func (p *dealPricer) live(ctx context.Context) []entity.Deal {
	if p.deals == nil {
		return nil
	}
	all, err := p.deals.List(ctx)
	if err != nil {
		p.log.Warnf("Failed to list deals, using list prices: %v", err)
		return nil
	}
	now := p.now()
	live := make([]entity.Deal, 0, len(all))
	for _, d := range all {
		if d.IsLive(now) {
			live = append(live, d)
		}
	}
	return live
}

func (p *dealPricer) price(product entity.Product, live []entity.Deal) (decimal.Decimal, *entity.Deal) {
	return entity.BestPrice(product, live, p.now())
}

var decimalHundred = decimal.NewFromInt(100)
