package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/Soukthavilay/qr-order/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MenuRepository reads the catalog. The only write is an item's image key.
type MenuRepository interface {
	FindAll(ctx context.Context) ([]models.MenuItem, error)
	FindByID(ctx context.Context, id string) (*models.MenuItem, error)
	SetImage(ctx context.Context, id, image string) error
}

// MongoMenuRepository reads menu items from a MongoDB collection.
type MongoMenuRepository struct {
	collection *mongo.Collection
}

func NewMongoMenuRepository(db *mongo.Database, collection string) *MongoMenuRepository {
	return &MongoMenuRepository{collection: db.Collection(collection)}
}

func (r *MongoMenuRepository) FindAll(ctx context.Context) ([]models.MenuItem, error) {
	opts := options.Find().SetSort(bson.D{{Key: "category", Value: 1}, {Key: "name", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find menu items: %w", err)
	}
	defer cursor.Close(ctx)

	var items []models.MenuItem
	if err := cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("decode menu items: %w", err)
	}
	return items, nil
}

func (r *MongoMenuRepository) FindByID(ctx context.Context, id string) (*models.MenuItem, error) {
	var item models.MenuItem
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&item)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find menu item %s: %w", id, err)
	}
	return &item, nil
}

func (r *MongoMenuRepository) SetImage(ctx context.Context, id, image string) error {
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"image": image}})
	if err != nil {
		return fmt.Errorf("update menu item %s image: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// MemoryMenuRepository serves a fixed catalog held in memory.
type MemoryMenuRepository struct {
	mu    sync.RWMutex
	items []models.MenuItem
}

func NewMemoryMenuRepository(items []models.MenuItem) *MemoryMenuRepository {
	sorted := make([]models.MenuItem, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Category != sorted[j].Category {
			return sorted[i].Category < sorted[j].Category
		}
		return sorted[i].Name < sorted[j].Name
	})
	return &MemoryMenuRepository{items: sorted}
}

func (r *MemoryMenuRepository) FindAll(_ context.Context) ([]models.MenuItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.MenuItem, len(r.items))
	copy(out, r.items)
	return out, nil
}

func (r *MemoryMenuRepository) FindByID(_ context.Context, id string) (*models.MenuItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, it := range r.items {
		if it.ID == id {
			item := it
			return &item, nil
		}
	}
	return nil, ErrNotFound
}

func (r *MemoryMenuRepository) SetImage(_ context.Context, id, image string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.items {
		if r.items[i].ID == id {
			r.items[i].Image = image
			return nil
		}
	}
	return ErrNotFound
}
