package mongo

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/domain/entity"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const productCollectionName = "products"

type productRepository struct {
	collection *mongo.Collection
}

func NewProductRepository(db *mongo.Database) repository.ProductRepository {
	return &productRepository{collection: db.Collection(productCollectionName)}
}

func (r *productRepository) Create(ctx context.Context, product *entity.Product) (string, error) {
	if product.ID == "" {
		product.ID = newID()
	}
	now := time.Now().UTC()
	product.CreatedAt = now
	product.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, product); err != nil {
		return "", mapWriteError(err, "failed to create product")
	}
	return product.ID, nil
}

func (r *productRepository) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	var product entity.Product
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&product); err != nil {
		return nil, mapFindError(err, fmt.Sprintf("failed to get product by ID %s", id))
	}
	return &product, nil
}

func (r *productRepository) GetBySlug(ctx context.Context, slug string) (*entity.Product, error) {
	var product entity.Product
	if err := r.collection.FindOne(ctx, bson.M{"slug": slug}).Decode(&product); err != nil {
		return nil, mapFindError(err, fmt.Sprintf("failed to get product by slug %s", slug))
	}
	return &product, nil
}

func productFilter(params repository.ListProductsParams) bson.M {
	filter := bson.M{}
	var and []bson.M
	if params.Category != "" && params.Category != "all" {
		and = append(and, categoryFilter(params.Category))
	}
	if params.Search != "" {
		pattern := primitiveRegex(params.Search)
		and = append(and, bson.M{"$or": bson.A{
			bson.M{"name": pattern},
			bson.M{"description": pattern},
			bson.M{"short_description": pattern},
			bson.M{"tags": pattern},
		}})
	}
	if params.Featured != nil {
		filter["featured"] = *params.Featured
	}
	if len(and) > 0 {
		filter["$and"] = and
	}
	return filter
}

func primitiveRegex(s string) bson.M {
	return bson.M{"$regex": regexp.QuoteMeta(s), "$options": "i"}
}

// categoryFilter matches a product whose category id or slug equals key, or
// whose embedded category name lowercases to key with spaces as hyphens.
func categoryFilter(key string) bson.M {
	return bson.M{"$or": bson.A{
		bson.M{"category_id": key},
		bson.M{"category.slug": key},
		bson.M{"category.name": derivedNameRegex(key)},
	}}
}

// derivedNameRegex inverts Category.DerivedSlug: every hyphen in key may
// stand for a space or a hyphen in the stored name.
func derivedNameRegex(key string) bson.M {
	parts := strings.Split(strings.ToLower(key), "-")
	for i, part := range parts {
		parts[i] = regexp.QuoteMeta(part)
	}
	return bson.M{"$regex": "^" + strings.Join(parts, "[ -]") + "$", "$options": "i"}
}

// productSortKeys maps the storefront sort names to a computed sort key and
// its direction. Price and rating are stored as strings; unparsable values
// sort as 0 like they do in memory.
var productSortKeys = map[string]struct {
	expr interface{}
	dir  int
}{
	"price-low":  {expr: numericField("$price"), dir: 1},
	"price-high": {expr: numericField("$price"), dir: -1},
	"rating":     {expr: numericField("$average_rating"), dir: -1},
	"popular":    {expr: "$total_reviews", dir: -1},
	"bestseller": {expr: bson.M{"$ifNull": bson.A{"$total_sales", "$total_reviews"}}, dir: -1},
}

const sortKeyField = "_sort_key"

func numericField(field string) bson.M {
	return bson.M{"$convert": bson.M{"input": field, "to": "double", "onError": 0, "onNull": 0}}
}

func (r *productRepository) List(ctx context.Context, params repository.ListProductsParams) (*repository.ListProductsResult, error) {
	filter := productFilter(params)
	if params.PageSize > 0 && params.Page <= 0 {
		params.Page = 1
	}

	var (
		cursor *mongo.Cursor
		err    error
	)
	if key, ok := productSortKeys[params.SortBy]; ok {
		cursor, err = r.collection.Aggregate(ctx, sortedListPipeline(filter, key.expr, key.dir, params))
	} else {
		findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: 1}})
		if params.PageSize > 0 {
			findOptions.SetSkip(int64((params.Page - 1) * params.PageSize))
			findOptions.SetLimit(int64(params.PageSize))
		}
		cursor, err = r.collection.Find(ctx, filter, findOptions)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer cursor.Close(ctx)

	products := make([]entity.Product, 0)
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("failed to decode listed products: %w", err)
	}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}

	return &repository.ListProductsResult{
		Products:   products,
		TotalCount: total,
		Page:       params.Page,
		PageSize:   params.PageSize,
		TotalPages: totalPages(total, params.PageSize),
	}, nil
}

// sortedListPipeline sorts on a computed key so that paging happens after
// the whole filtered set is ordered. Ties fall back to newest first.
func sortedListPipeline(filter bson.M, expr interface{}, dir int, params repository.ListProductsParams) mongo.Pipeline {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: filter}},
		{{Key: "$addFields", Value: bson.M{sortKeyField: expr}}},
		{{Key: "$sort", Value: bson.D{
			{Key: sortKeyField, Value: dir},
			{Key: "created_at", Value: -1},
			{Key: "_id", Value: 1},
		}}},
	}
	if params.PageSize > 0 {
		pipeline = append(pipeline,
			bson.D{{Key: "$skip", Value: int64((params.Page - 1) * params.PageSize)}},
			bson.D{{Key: "$limit", Value: int64(params.PageSize)}},
		)
	}
	return append(pipeline, bson.D{{Key: "$project", Value: bson.M{sortKeyField: 0}}})
}

func (r *productRepository) ListByCategory(ctx context.Context, categoryID string, excludeID string, limit int) ([]entity.Product, error) {
	filter := categoryFilter(categoryID)
	if excludeID != "" {
		filter["_id"] = bson.M{"$ne": excludeID}
	}
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if limit > 0 {
		findOptions.SetLimit(int64(limit))
	}

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to list products of category %s: %w", categoryID, err)
	}
	defer cursor.Close(ctx)

	products := make([]entity.Product, 0)
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("failed to decode products of category %s: %w", categoryID, err)
	}
	return products, nil
}

func (r *productRepository) Update(ctx context.Context, product *entity.Product) error {
	product.UpdatedAt = time.Now().UTC()
	res, err := r.collection.ReplaceOne(ctx, bson.M{"_id": product.ID}, product)
	if err != nil {
		return mapWriteError(err, fmt.Sprintf("failed to update product %s", product.ID))
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *productRepository) Delete(ctx context.Context, id string) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete product %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *productRepository) Count(ctx context.Context) (int64, error) {
	n, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return n, nil
}
