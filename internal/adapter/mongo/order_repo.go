package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/domain/entity"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/repository"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	orderCollectionName = "orders"
)

var orderSortFields = map[string]string{
	"createdAt": "created_at",
	"total":     "total",
	"status":    "status",
}

type orderRepository struct {
	collection *mongo.Collection
}

func NewOrderRepository(db *mongo.Database) repository.OrderRepository {
	return &orderRepository{collection: db.Collection(orderCollectionName)}
}

func (r *orderRepository) Create(ctx context.Context, order *entity.Order) (string, error) {
	if order.ID == "" {
		order.ID = newID()
	}
	if order.Version == 0 {
		order.Version = 1
	}
	if _, err := r.collection.InsertOne(ctx, order); err != nil {
		return "", mapWriteError(err, "failed to create order")
	}
	return order.ID, nil
}

func (r *orderRepository) GetByID(ctx context.Context, orderID string) (*entity.Order, error) {
	var order entity.Order
	if err := r.collection.FindOne(ctx, bson.M{"_id": orderID}).Decode(&order); err != nil {
		return nil, mapFindError(err, fmt.Sprintf("failed to get order by ID %s", orderID))
	}
	return &order, nil
}

func (r *orderRepository) GetByOrderNumber(ctx context.Context, orderNumber string) (*entity.Order, error) {
	var order entity.Order
	if err := r.collection.FindOne(ctx, bson.M{"order_number": orderNumber}).Decode(&order); err != nil {
		return nil, mapFindError(err, fmt.Sprintf("failed to get order by number %s", orderNumber))
	}
	return &order, nil
}

// versionedUpdate applies update only if the stored version matches, then
// bumps it. A mismatch on an existing order is ErrOptimisticLock.
func (r *orderRepository) versionedUpdate(ctx context.Context, orderID string, version int, set bson.M) error {
	set["updated_at"] = time.Now().UTC()
	filter := bson.M{"_id": orderID, "version": version}
	update := bson.M{"$set": set, "$inc": bson.M{"version": 1}}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update order %s: %w", orderID, err)
	}
	if result.MatchedCount > 0 {
		return nil
	}

	var existing entity.Order
	errFind := r.collection.FindOne(ctx, bson.M{"_id": orderID}).Decode(&existing)
	if errors.Is(errFind, mongo.ErrNoDocuments) {
		return repository.ErrNotFound
	}
	if errFind == nil && existing.Version != version {
		return repository.ErrOptimisticLock
	}
	return repository.ErrUpdateFailed
}

func (r *orderRepository) UpdateStatus(ctx context.Context, params repository.UpdateOrderStatusParams) error {
	return r.versionedUpdate(ctx, params.OrderID, params.Version, bson.M{"status": params.Status})
}

func (r *orderRepository) UpdatePayment(ctx context.Context, params repository.UpdateOrderPaymentParams) error {
	set := bson.M{"payment_status": params.PaymentStatus}
	if params.TransactionID != "" {
		set["transaction_id"] = params.TransactionID
	}
	return r.versionedUpdate(ctx, params.OrderID, params.Version, set)
}

func (r *orderRepository) List(ctx context.Context, params repository.ListOrdersParams) (*repository.ListOrdersResult, error) {
	filter := bson.M{}
	if params.UserID != "" {
		filter["user_id"] = params.UserID
	}
	if params.Status != "" {
		filter["status"] = params.Status
	}

	findOptions := options.Find()
	if params.PageSize > 0 {
		if params.Page <= 0 {
			params.Page = 1
		}
		findOptions.SetSkip(int64((params.Page - 1) * params.PageSize))
		findOptions.SetLimit(int64(params.PageSize))
	}

	sortField, ok := orderSortFields[params.SortBy]
	if !ok {
		sortField = "created_at"
	}
	sortOrder := -1
	if params.SortOrder == "asc" {
		sortOrder = 1
	}
	findOptions.SetSort(bson.D{{Key: sortField, Value: sortOrder}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer cursor.Close(ctx)

	orders := make([]entity.Order, 0)
	if err = cursor.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("failed to decode listed orders: %w", err)
	}

	totalCount, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to count orders: %w", err)
	}

	return &repository.ListOrdersResult{
		Orders:      orders,
		TotalCount:  totalCount,
		CurrentPage: params.Page,
		PageSize:    params.PageSize,
		TotalPages:  totalPages(totalCount, params.PageSize),
	}, nil
}

type statusBucket struct {
	Status  entity.OrderStatus   `bson:"_id"`
	Count   int64                `bson:"count"`
	Revenue primitive.Decimal128 `bson:"revenue"`
}

// Stats aggregates order counts per status. Revenue counts orders whose
// payment completed.
func (r *orderRepository) Stats(ctx context.Context) (*repository.OrderStats, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":   "$status",
			"count": bson.M{"$sum": 1},
			"revenue": bson.M{"$sum": bson.M{"$cond": bson.A{
				bson.M{"$eq": bson.A{"$payment_status", entity.PaymentCompleted}},
				bson.M{"$toDecimal": "$total"},
				bson.M{"$toDecimal": "0"},
			}}},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate order stats: %w", err)
	}
	defer cursor.Close(ctx)

	var buckets []statusBucket
	if err := cursor.All(ctx, &buckets); err != nil {
		return nil, fmt.Errorf("failed to decode order stats: %w", err)
	}

	stats := &repository.OrderStats{CountByStatus: make(map[entity.OrderStatus]int64)}
	revenue := decimal.Zero
	for _, b := range buckets {
		stats.TotalOrders += b.Count
		stats.CountByStatus[b.Status] = b.Count
		if d, err := decimal.NewFromString(b.Revenue.String()); err == nil {
			revenue = revenue.Add(d)
		}
	}
	stats.Revenue = revenue.StringFixed(2)
	return stats, nil
}
