package models

import "time"

const (
	ChatRoleUser      = "user"
	ChatRoleAssistant = "assistant"
)

// ChatMessage and Chat are stored in MongoDB, not Postgres.
type ChatMessage struct {
	Role      string    `bson:"role" json:"role"`
	Content   string    `bson:"content" json:"content"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}

type Chat struct {
	UserID    string        `bson:"user_id" json:"userId"`
	Messages  []ChatMessage `bson:"messages" json:"messages"`
	UpdatedAt time.Time     `bson:"updated_at" json:"updatedAt"`
}
