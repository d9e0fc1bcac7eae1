package chatstore

import (
	"context"
	"sync"

	"github.com/BruksfildServices01/health-portal/internal/models"
	"github.com/BruksfildServices01/health-portal/internal/timezone"
)

// MemoryStore keeps transcripts in process. Used in development when MongoDB is not reachable.
type MemoryStore struct {
	mu    sync.Mutex
	chats map[string]*models.Chat
}

func NewMemory() *MemoryStore {
	return &MemoryStore{chats: map[string]*models.Chat{}}
}

func (s *MemoryStore) Load(_ context.Context, userID string) (*models.Chat, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.chats[userID]
	if !ok {
		return &models.Chat{UserID: userID, Messages: []models.ChatMessage{}}, nil
	}
	cp := *c
	cp.Messages = append([]models.ChatMessage(nil), c.Messages...)
	return &cp, nil
}

func (s *MemoryStore) Append(_ context.Context, userID string, msgs ...models.ChatMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.chats[userID]
	if !ok {
		c = &models.Chat{UserID: userID}
		s.chats[userID] = c
	}
	c.Messages = append(c.Messages, msgs...)
	if over := len(c.Messages) - MaxMessages; over > 0 {
		c.Messages = append([]models.ChatMessage(nil), c.Messages[over:]...)
	}
	c.UpdatedAt = timezone.Now()
	return nil
}

func (s *MemoryStore) Clear(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.chats, userID)
	return nil
}
