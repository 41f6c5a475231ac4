package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/domain/entity"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	dealCollectionName         = "deals"
	announcementCollectionName = "announcements"
)

type dealRepository struct {
	collection *mongo.Collection
}

func NewDealRepository(db *mongo.Database) repository.DealRepository {
	return &dealRepository{collection: db.Collection(dealCollectionName)}
}

func (r *dealRepository) Create(ctx context.Context, deal *entity.Deal) (string, error) {
	if deal.ID == "" {
		deal.ID = newID()
	}
	now := time.Now().UTC()
	deal.CreatedAt, deal.UpdatedAt = now, now
	if _, err := r.collection.InsertOne(ctx, deal); err != nil {
		return "", mapWriteError(err, "failed to create deal")
	}
	return deal.ID, nil
}

func (r *dealRepository) GetByID(ctx context.Context, id string) (*entity.Deal, error) {
	var deal entity.Deal
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&deal); err != nil {
		return nil, mapFindError(err, fmt.Sprintf("failed to get deal %s", id))
	}
	return &deal, nil
}

func (r *dealRepository) List(ctx context.Context) ([]entity.Deal, error) {
	cursor, err := r.collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "start_date", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list deals: %w", err)
	}
	defer cursor.Close(ctx)

	deals := make([]entity.Deal, 0)
	if err := cursor.All(ctx, &deals); err != nil {
		return nil, fmt.Errorf("failed to decode deals: %w", err)
	}
	return deals, nil
}

func (r *dealRepository) Update(ctx context.Context, deal *entity.Deal) error {
	deal.UpdatedAt = time.Now().UTC()
	res, err := r.collection.ReplaceOne(ctx, bson.M{"_id": deal.ID}, deal)
	if err != nil {
		return mapWriteError(err, fmt.Sprintf("failed to update deal %s", deal.ID))
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *dealRepository) Delete(ctx context.Context, id string) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete deal %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

type announcementRepository struct {
	collection *mongo.Collection
}

func NewAnnouncementRepository(db *mongo.Database) repository.AnnouncementRepository {
	return &announcementRepository{collection: db.Collection(announcementCollectionName)}
}

func (r *announcementRepository) Create(ctx context.Context, a *entity.Announcement) (string, error) {
	if a.ID == "" {
		a.ID = newID()
	}
	now := time.Now().UTC()
	a.CreatedAt, a.UpdatedAt = now, now
	if _, err := r.collection.InsertOne(ctx, a); err != nil {
		return "", mapWriteError(err, "failed to create announcement")
	}
	return a.ID, nil
}

func (r *announcementRepository) GetByID(ctx context.Context, id string) (*entity.Announcement, error) {
	var a entity.Announcement
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&a); err != nil {
		return nil, mapFindError(err, fmt.Sprintf("failed to get announcement %s", id))
	}
	return &a, nil
}

func (r *announcementRepository) List(ctx context.Context) ([]entity.Announcement, error) {
	cursor, err := r.collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list announcements: %w", err)
	}
	defer cursor.Close(ctx)

	list := make([]entity.Announcement, 0)
	if err := cursor.All(ctx, &list); err != nil {
		return nil, fmt.Errorf("failed to decode announcements: %w", err)
	}
	return list, nil
}

func (r *announcementRepository) Update(ctx context.Context, a *entity.Announcement) error {
	a.UpdatedAt = time.Now().UTC()
	res, err := r.collection.ReplaceOne(ctx, bson.M{"_id": a.ID}, a)
	if err != nil {
		return fmt.Errorf("failed to update announcement %s: %w", a.ID, err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *announcementRepository) Delete(ctx context.Context, id string) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete announcement %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}
