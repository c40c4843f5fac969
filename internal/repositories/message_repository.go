package repositories

import (
	"context"
	"time"

	"github.com/campusfind/backend/internal/models"
	"github.com/campusfind/backend/internal/realtime"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MessageRepository defines the interface for chat message operations
type MessageRepository interface {
	CreateMessage(ctx context.Context, msg *models.ChatMessage) error
	GetMessagesByItemID(ctx context.Context, itemID uint) ([]models.ChatMessage, error)
}

// MongoMessageRepository implements MessageRepository for MongoDB
type MongoMessageRepository struct {
	collection *mongo.Collection
	feed       *realtime.Feed
}

// NewMongoMessageRepository creates a new MongoMessageRepository
func NewMongoMessageRepository(db *mongo.Database, feed *realtime.Feed) *MongoMessageRepository {
	return &MongoMessageRepository{collection: db.Collection("item_messages"), feed: feed}
}

// CreateMessage inserts one message and publishes it on the change feed,
// which fans it out to every open thread view on the item.
func (r *MongoMessageRepository) CreateMessage(ctx context.Context, msg *models.ChatMessage) error {
	msg.ID = primitive.NewObjectID()
	msg.CreatedAt = time.Now()
	if _, err := r.collection.InsertOne(ctx, msg); err != nil {
		return err
	}
	stored := *msg
	r.feed.Publish(realtime.Event{Op: realtime.OpInsert, Table: realtime.TableMessages, New: &stored})
	return nil
}

// GetMessagesByItemID returns an item's thread ordered by creation time ascending
func (r *MongoMessageRepository) GetMessagesByItemID(ctx context.Context, itemID uint) ([]models.ChatMessage, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"item_id": itemID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var messages []models.ChatMessage
	if err = cursor.All(ctx, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}
