package chatstore

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/BruksfildServices01/health-portal/internal/models"
	"github.com/BruksfildServices01/health-portal/internal/timezone"
	"github.com/BruksfildServices01/health-portal/internal/usecase/assistant"
)

const (
	Collection = "chats"

	// MaxMessages caps a stored transcript; older turns fall off the front.
	MaxMessages = 200
)

type MongoStore struct {
	col *mongo.Collection
}

var _ assistant.ChatStore = (*MongoStore)(nil)

func NewMongo(db *mongo.Database) *MongoStore {
	return &MongoStore{col: db.Collection(Collection)}
}

// EnsureIndexes creates the unique user_id index; safe to call on every start.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create chats index: %w", err)
	}
	return nil
}

func (s *MongoStore) Load(ctx context.Context, userID string) (*models.Chat, error) {
	var chat models.Chat
	err := s.col.FindOne(ctx, bson.M{"user_id": userID}).Decode(&chat)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return &models.Chat{UserID: userID, Messages: []models.ChatMessage{}}, nil
	}
	if err != nil {
		return nil, err
	}
	if chat.Messages == nil {
		chat.Messages = []models.ChatMessage{}
	}
	return &chat, nil
}

func (s *MongoStore) Append(ctx context.Context, userID string, msgs ...models.ChatMessage) error {
	if len(msgs) == 0 {
		return nil
	}

	update := bson.M{
		"$push": bson.M{
			"messages": bson.M{
				"$each":  msgs,
				"$slice": -MaxMessages,
			},
		},
		"$set": bson.M{"updated_at": timezone.Now()},
	}

	_, err := s.col.UpdateOne(ctx, bson.M{"user_id": userID}, update, options.Update().SetUpsert(true))
	return err
}

func (s *MongoStore) Clear(ctx context.Context, userID string) error {
	_, err := s.col.DeleteOne(ctx, bson.M{"user_id": userID})
	return err
}
