package outboxRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/teamdoneez-lab/core-crest-69848-sub002/database"
	"github.com/teamdoneez-lab/core-crest-69848-sub002/models"
)

// MongoOutboxRepo implements OutboxRepository on MongoDB.
type MongoOutboxRepo struct {
	coll *mongo.Collection
}

func NewMongoOutboxRepo() *MongoOutboxRepo {
	return &MongoOutboxRepo{coll: database.DB().Collection("notification_outbox")}
}

func (repo *MongoOutboxRepo) Enqueue(ctx context.Context, msg *models.OutboxMessage) error {
	if _, err := repo.coll.InsertOne(ctx, msg); err != nil {
		return fmt.Errorf("failed to enqueue outbox message: %w", err)
	}
	return nil
}

func (repo *MongoOutboxRepo) Get(ctx context.Context, id string) (*models.OutboxMessage, error) {
	var msg models.OutboxMessage
	err := repo.coll.FindOne(ctx, bson.M{"id": id}).Decode(&msg)
	if err == mongo.ErrNoDocuments {
		return nil, fmt.Errorf("outbox message %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch outbox message: %w", err)
	}
	return &msg, nil
}

func (repo *MongoOutboxRepo) MarkDelivered(ctx context.Context, id string) error {
	_, err := repo.coll.UpdateOne(ctx,
		bson.M{"id": id},
		bson.M{
			"$set": bson.M{"status": models.OutboxStatusDelivered, "deliveredAt": time.Now().UTC()},
			"$inc": bson.M{"attempts": 1},
		})
	if err != nil {
		return fmt.Errorf("failed to mark outbox message delivered: %w", err)
	}
	return nil
}

func (repo *MongoOutboxRepo) MarkFailed(ctx context.Context, id, reason string) error {
	_, err := repo.coll.UpdateOne(ctx,
		bson.M{"id": id},
		bson.M{
			"$set": bson.M{"status": models.OutboxStatusFailed, "lastError": reason},
			"$inc": bson.M{"attempts": 1},
		})
	if err != nil {
		return fmt.Errorf("failed to mark outbox message failed: %w", err)
	}
	return nil
}

func (repo *MongoOutboxRepo) ListByStatus(ctx context.Context, status string, limit int64) ([]models.OutboxMessage, error) {
	opts := options.Find().SetLimit(limit).SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cur, err := repo.coll.Find(ctx, bson.M{"status": status}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list outbox messages: %w", err)
	}
	defer cur.Close(ctx)
	var msgs []models.OutboxMessage
	if err := cur.All(ctx, &msgs); err != nil {
		return nil, fmt.Errorf("failed to decode outbox messages: %w", err)
	}
	return msgs, nil
}
