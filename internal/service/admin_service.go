package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/adapter/nats"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/adapter/storage/s3"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/domain/entity"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/repository"
	"golang.org/x/sync/errgroup"
)

const maxImageBytes = 5 << 20

var ErrImageTooLarge = errors.New("image exceeds the upload size limit")

type DashboardStats struct {
	TotalOrders    int64                        `json:"totalOrders"`
	Revenue        string                       `json:"revenue"`
	OrdersByStatus map[entity.OrderStatus]int64 `json:"ordersByStatus"`
	TotalProducts  int64                        `json:"totalProducts"`
	TotalCategory  int64                        `json:"totalCategories"`
	ActiveDeals    int                          `json:"activeDeals"`
}

// ProductChangedEvent is published after every admin product write.
type ProductChangedEvent struct {
	ProductID string    `json:"productId"`
	Action    string    `json:"action"`
	At        time.Time `json:"at"`
}

type AdminService interface {
	Dashboard(ctx context.Context) (*DashboardStats, error)

	CreateProduct(ctx context.Context, p *entity.Product) (*entity.Product, error)
	UpdateProduct(ctx context.Context, p *entity.Product) (*entity.Product, error)
	DeleteProduct(ctx context.Context, id string) error
	UploadProductImage(ctx context.Context, productID, fileName string, data []byte) (*entity.Product, error)

	CreateCategory(ctx context.Context, c *entity.Category) (*entity.Category, error)
	UpdateCategory(ctx context.Context, c *entity.Category) (*entity.Category, error)
	DeleteCategory(ctx context.Context, id string) error
	ListCategories(ctx context.Context) ([]entity.Category, error)

	CreateDeal(ctx context.Context, d *entity.Deal) (*entity.Deal, error)
	UpdateDeal(ctx context.Context, d *entity.Deal) (*entity.Deal, error)
	DeleteDeal(ctx context.Context, id string) error
	ListDeals(ctx context.Context) ([]entity.Deal, error)

	CreateAnnouncement(ctx context.Context, a *entity.Announcement) (*entity.Announcement, error)
	UpdateAnnouncement(ctx context.Context, a *entity.Announcement) (*entity.Announcement, error)
	DeleteAnnouncement(ctx context.Context, id string) error
	ListAnnouncements(ctx context.Context) ([]entity.Announcement, error)
}

type AdminServiceDeps struct {
	Orders        repository.OrderRepository
	Products      repository.ProductRepository
	ProductCache  repository.ProductDetailCache
	Categories    repository.CategoryRepository
	Deals         repository.DealRepository
	Announcements repository.AnnouncementRepository
	Images        s3.ImageStorage
	Publisher     nats.MessagePublisher
	Log           logger.Logger
	Now           func() time.Time
}

type adminService struct {
	orders        repository.OrderRepository
	products      repository.ProductRepository
	lookup        *productLookup
	categories    repository.CategoryRepository
	deals         repository.DealRepository
	announcements repository.AnnouncementRepository
	images        s3.ImageStorage
	publisher     nats.MessagePublisher
	log           logger.Logger
	now           func() time.Time
}

func NewAdminService(deps AdminServiceDeps) AdminService {
	publisher := deps.Publisher
	if publisher == nil {
		publisher = nats.NoopPublisher{}
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &adminService{
		orders:        deps.Orders,
		products:      deps.Products,
		lookup:        newProductLookup(deps.Products, deps.ProductCache, 0, deps.Log),
		categories:    deps.Categories,
		deals:         deps.Deals,
		announcements: deps.Announcements,
		images:        deps.Images,
		publisher:     publisher,
		log:           deps.Log,
		now:           now,
	}
}

// Dashboard gathers the admin counters concurrently.
func (s *adminService) Dashboard(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		orderStats, err := s.orders.Stats(gctx)
		if err != nil {
			return fmt.Errorf("order stats: %w", err)
		}
		stats.TotalOrders = orderStats.TotalOrders
		stats.Revenue = orderStats.Revenue
		stats.OrdersByStatus = orderStats.CountByStatus
		return nil
	})
	g.Go(func() error {
		n, err := s.products.Count(gctx)
		if err != nil {
			return fmt.Errorf("product count: %w", err)
		}
		stats.TotalProducts = n
		return nil
	})
	g.Go(func() error {
		n, err := s.categories.Count(gctx)
		if err != nil {
			return fmt.Errorf("category count: %w", err)
		}
		stats.TotalCategory = n
		return nil
	})
	g.Go(func() error {
		deals, err := s.deals.List(gctx)
		if err != nil {
			return fmt.Errorf("deal list: %w", err)
		}
		now := s.now()
		for _, d := range deals {
			if d.IsLive(now) {
				stats.ActiveDeals++
			}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		s.log.Errorf("Failed to build admin dashboard: %v", err)
		return nil, err
	}
	return stats, nil
}

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases s and joins its alphanumeric runs with hyphens.
func Slugify(s string) string {
	return strings.Trim(nonSlugChars.ReplaceAllString(strings.ToLower(s), "-"), "-")
}

func (s *adminService) productChanged(ctx context.Context, id, action string) {
	s.lookup.invalidate(ctx, id)
	event := ProductChangedEvent{ProductID: id, Action: action, At: s.now().UTC()}
	if err := s.publisher.Publish(ctx, nats.SubjectProductChanged, event); err != nil {
		s.log.Warnf("Failed to publish product %s event for %s: %v", action, id, err)
	}
}

// resolveCategory embeds the referenced category so catalog filters can
// match by slug.
func (s *adminService) resolveCategory(ctx context.Context, p *entity.Product) error {
	if p.CategoryID == "" {
		return nil
	}
	c, err := s.categories.GetByID(ctx, p.CategoryID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: category %s does not exist", ErrInvalidInput, p.CategoryID)
		}
		return err
	}
	p.Category = c
	return nil
}

func (s *adminService) CreateProduct(ctx context.Context, p *entity.Product) (*entity.Product, error) {
	if p.Slug == "" {
		p.Slug = Slugify(p.Name)
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if err := s.resolveCategory(ctx, p); err != nil {
		return nil, err
	}
	id, err := s.products.Create(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	p.ID = id
	s.productChanged(ctx, id, "created")
	s.log.Infof("Product %s (%s) created", id, p.Slug)
	return p, nil
}

func (s *adminService) UpdateProduct(ctx context.Context, p *entity.Product) (*entity.Product, error) {
	existing, err := s.products.GetByID(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	if p.Slug == "" {
		p.Slug = existing.Slug
	}
	p.CreatedAt = existing.CreatedAt
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if err := s.resolveCategory(ctx, p); err != nil {
		return nil, err
	}
	if err := s.products.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to update product %s: %w", p.ID, err)
	}
	s.productChanged(ctx, p.ID, "updated")
	return p, nil
}

func (s *adminService) DeleteProduct(ctx context.Context, id string) error {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.products.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete product %s: %w", id, err)
	}
	if s.images != nil {
		for _, url := range product.Images {
			if err := s.images.Delete(ctx, url); err != nil {
				s.log.Warnf("Failed to delete image %s of product %s: %v", url, id, err)
			}
		}
	}
	s.productChanged(ctx, id, "deleted")
	return nil
}

func (s *adminService) UploadProductImage(ctx context.Context, productID, fileName string, data []byte) (*entity.Product, error) {
	if s.images == nil {
		return nil, errors.New("image storage is not configured")
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty image", ErrInvalidInput)
	}
	if len(data) > maxImageBytes {
		return nil, ErrImageTooLarge
	}
	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	url, err := s.images.Upload(ctx, productID, fileName, data)
	if err != nil {
		return nil, fmt.Errorf("failed to upload image: %w", err)
	}
	product.Images = append(product.Images, url)
	if err := s.products.Update(ctx, product); err != nil {
		if errDel := s.images.Delete(ctx, url); errDel != nil {
			s.log.Warnf("Failed to remove orphaned image %s: %v", url, errDel)
		}
		return nil, fmt.Errorf("failed to attach image to product %s: %w", productID, err)
	}
	s.productChanged(ctx, productID, "updated")
	return product, nil
}

func (s *adminService) CreateCategory(ctx context.Context, c *entity.Category) (*entity.Category, error) {
	if strings.TrimSpace(c.Name) == "" {
		return nil, fmt.Errorf("%w: category name is required", ErrInvalidInput)
	}
	if c.Slug == "" {
		c.Slug = Slugify(c.Name)
	}
	id, err := s.categories.Create(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	c.ID = id
	return c, nil
}

func (s *adminService) UpdateCategory(ctx context.Context, c *entity.Category) (*entity.Category, error) {
	if strings.TrimSpace(c.Name) == "" {
		return nil, fmt.Errorf("%w: category name is required", ErrInvalidInput)
	}
	if c.Slug == "" {
		c.Slug = Slugify(c.Name)
	}
	if err := s.categories.Update(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to update category %s: %w", c.ID, err)
	}
	return c, nil
}

func (s *adminService) DeleteCategory(ctx context.Context, id string) error {
	if err := s.categories.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete category %s: %w", id, err)
	}
	return nil
}

func (s *adminService) ListCategories(ctx context.Context) ([]entity.Category, error) {
	return s.categories.List(ctx, false)
}

func (s *adminService) CreateDeal(ctx context.Context, d *entity.Deal) (*entity.Deal, error) {
	if err := d.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	id, err := s.deals.Create(ctx, d)
	if err != nil {
		return nil, fmt.Errorf("failed to create deal: %w", err)
	}
	d.ID = id
	return d, nil
}

func (s *adminService) UpdateDeal(ctx context.Context, d *entity.Deal) (*entity.Deal, error) {
	if err := d.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if err := s.deals.Update(ctx, d); err != nil {
		return nil, fmt.Errorf("failed to update deal %s: %w", d.ID, err)
	}
	return d, nil
}

func (s *adminService) DeleteDeal(ctx context.Context, id string) error {
	if err := s.deals.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete deal %s: %w", id, err)
	}
	return nil
}

func (s *adminService) ListDeals(ctx context.Context) ([]entity.Deal, error) {
	return s.deals.List(ctx)
}

func validateAnnouncement(a *entity.Announcement) error {
	if strings.TrimSpace(a.Title) == "" || strings.TrimSpace(a.Message) == "" {
		return fmt.Errorf("%w: announcement title and message are required", ErrInvalidInput)
	}
	if !a.EndsAt.IsZero() && a.EndsAt.Before(a.StartsAt) {
		return fmt.Errorf("%w: announcement ends before it starts", ErrInvalidInput)
	}
	return nil
}

func (s *adminService) CreateAnnouncement(ctx context.Context, a *entity.Announcement) (*entity.Announcement, error) {
	if err := validateAnnouncement(a); err != nil {
		return nil, err
	}
	id, err := s.announcements.Create(ctx, a)
	if err != nil {
		return nil, fmt.Errorf("failed to create announcement: %w", err)
	}
	a.ID = id
	return a, nil
}

func (s *adminService) UpdateAnnouncement(ctx context.Context, a *entity.Announcement) (*entity.Announcement, error) {
	if err := validateAnnouncement(a); err != nil {
		return nil, err
	}
	if err := s.announcements.Update(ctx, a); err != nil {
		return nil, fmt.Errorf("failed to update announcement %s: %w", a.ID, err)
	}
	return a, nil
}

func (s *adminService) DeleteAnnouncement(ctx context.Context, id string) error {
	if err := s.announcements.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete announcement %s: %w", id, err)
	}
	return nil
}

func (s *adminService) ListAnnouncements(ctx context.Context) ([]entity.Announcement, error) {
	return s.announcements.List(ctx)
}
