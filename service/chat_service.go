// ABOUTME: Chat transcript state with optimistic message delivery
// ABOUTME: User messages appear immediately and are marked failed rather than removed

package service

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"medinsight-client/api"
	"medinsight-client/driver"
	"medinsight-client/models"
	"medinsight-client/utils"
)

// ChatService keeps per-session transcripts and applies the optimistic send
// protocol: the user's message is appended as pending before the network
// call, then settled to delivered or failed.
type ChatService struct {
	chats     *api.ChatAPI
	sanitizer *utils.Sanitizer
	logger    *slog.Logger

	mu          sync.RWMutex
	transcripts map[int64][]models.ChatMessage
}

// NewChatService wires the chat service over client.
func NewChatService(client *driver.Client, logger *slog.Logger) *ChatService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ChatService{
		chats:       api.NewChatAPI(client),
		sanitizer:   utils.NewSanitizer(),
		logger:      logger,
		transcripts: make(map[int64][]models.ChatMessage),
	}
}

// Transcript returns a copy of the locally held messages for a session.
func (s *ChatService) Transcript(sessionID int64) []models.ChatMessage {
	s.mu.RLock()
	defer s.mu.RUnlock()
	msgs := s.transcripts[sessionID]
	out := make([]models.ChatMessage, len(msgs))
	copy(out, msgs)
	return out
}

// CreateSession opens a conversation and seeds an empty transcript for it.
func (s *ChatService) CreateSession(ctx context.Context, userID int64, title string) (*models.ChatSession, error) {
	resp := s.chats.CreateSession(ctx, userID, title)
	if !resp.OK() {
		return nil, &driver.RequestError{Status: resp.Status, Detail: resp.Err}
	}
	s.mu.Lock()
	s.transcripts[resp.Data.ID] = nil
	s.mu.Unlock()
	return resp.Data, nil
}

// ListSessions fetches the user's conversation summaries.
func (s *ChatService) ListSessions(ctx context.Context, userID int64) ([]models.ChatSession, error) {
	resp := s.chats.ListSessions(ctx, userID)
	if !resp.OK() {
		return nil, &driver.RequestError{Status: resp.Status, Detail: resp.Err}
	}
	return *resp.Data, nil
}

// LoadMessages replaces the local transcript with the server's copy. Stored
// messages carry no delivery status; everything loaded is delivered.
func (s *ChatService) LoadMessages(ctx context.Context, sessionID, userID int64) ([]models.ChatMessage, error) {
	resp := s.chats.Messages(ctx, sessionID, userID)
	if !resp.OK() {
		return nil, &driver.RequestError{Status: resp.Status, Detail: resp.Err}
	}
	msgs := resp.Data.Messages
	for i := range msgs {
		msgs[i].Status = models.StatusDelivered
		if msgs[i].Role == "assistant" {
			msgs[i].Content = s.sanitizer.SanitizeAndTrim(msgs[i].Content)
		}
	}
	s.mu.Lock()
	s.transcripts[sessionID] = msgs
	s.mu.Unlock()
	return s.Transcript(sessionID), nil
}

// SendMessage appends the user's message as pending, posts it, then settles
// its status. On success the bot's reply is appended; on failure the user's
// message stays in the transcript marked failed. The pending message is
// re-located by its local ID when settling: a concurrent LoadMessages may
// have replaced the transcript with the server's copy, in which case the
// settle is a no-op.
func (s *ChatService) SendMessage(ctx context.Context, sessionID, userID int64, text string) ([]models.ChatMessage, error) {
	localID := uuid.NewString()
	s.mu.Lock()
	s.transcripts[sessionID] = append(s.transcripts[sessionID], models.ChatMessage{
		Role:    "user",
		Content: text,
		Status:  models.StatusPending,
		LocalID: localID,
	})
	s.mu.Unlock()

	resp := s.chats.SendMessage(ctx, sessionID, userID, text)

	s.mu.Lock()
	defer s.mu.Unlock()
	if !resp.OK() {
		s.settleLocked(sessionID, localID, models.StatusFailed)
		s.logger.Warn("chat send failed",
			"session_id", sessionID, "status", resp.Status, "error", resp.Err)
		return s.copyLocked(sessionID), &driver.RequestError{Status: resp.Status, Detail: resp.Err}
	}
	if s.settleLocked(sessionID, localID, models.StatusDelivered) {
		s.transcripts[sessionID] = append(s.transcripts[sessionID], models.ChatMessage{
			Role:    "assistant",
			Content: s.sanitizer.SanitizeAndTrim(resp.Data.BotResponse),
			Status:  models.StatusDelivered,
		})
	}
	return s.copyLocked(sessionID), nil
}

// settleLocked finds the pending message by its local ID and updates its
// status. Returns false when a transcript reload dropped the message, in
// which case the server's copy is authoritative and nothing is touched.
func (s *ChatService) settleLocked(sessionID int64, localID string, status models.MessageStatus) bool {
	msgs := s.transcripts[sessionID]
	for i := range msgs {
		if msgs[i].LocalID == localID {
			msgs[i].Status = status
			return true
		}
	}
	return false
}

// Rename changes a session's title.
func (s *ChatService) Rename(ctx context.Context, sessionID, userID int64, newTitle string) error {
	resp := s.chats.Rename(ctx, sessionID, userID, newTitle)
	if !resp.OK() {
		return &driver.RequestError{Status: resp.Status, Detail: resp.Err}
	}
	return nil
}

func (s *ChatService) copyLocked(sessionID int64) []models.ChatMessage {
	msgs := s.transcripts[sessionID]
	out := make([]models.ChatMessage, len(msgs))
	copy(out, msgs)
	return out
}
