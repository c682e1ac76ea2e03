// ABOUTME: Chat session endpoints: create, list, transcript, send, rename
// ABOUTME: The backend reads these as form fields, not JSON

package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"medinsight-client/driver"
	"medinsight-client/models"
)

// ChatAPI wraps the /chat endpoints.
type ChatAPI struct {
	client *driver.Client
}

// NewChatAPI creates the chat facade over client.
func NewChatAPI(client *driver.Client) *ChatAPI {
	return &ChatAPI{client: client}
}

// CreateSession opens a new conversation.
func (c *ChatAPI) CreateSession(ctx context.Context, userID int64, title string) driver.Response[models.ChatSession] {
	form := url.Values{
		"user_id": {strconv.FormatInt(userID, 10)},
		"title":   {title},
	}
	return driver.Do[models.ChatSession](ctx, c.client, "/chat/sessions", driver.RequestOptions{
		Method: http.MethodPost,
		Form:   form,
	})
}

// ListSessions fetches the user's conversation summaries.
func (c *ChatAPI) ListSessions(ctx context.Context, userID int64) driver.Response[[]models.ChatSession] {
	return driver.Do[[]models.ChatSession](ctx, c.client, "/chat/sessions", driver.RequestOptions{
		Query: url.Values{"user_id": {strconv.FormatInt(userID, 10)}},
	})
}

// Messages fetches the full transcript of a session. Transcripts are read
// fresh every time; a stale cached transcript would hide new replies.
func (c *ChatAPI) Messages(ctx context.Context, sessionID, userID int64) driver.Response[models.ChatTranscript] {
	return driver.Do[models.ChatTranscript](ctx, c.client, fmt.Sprintf("/chat/sessions/%d/messages", sessionID), driver.RequestOptions{
		Query:   url.Values{"user_id": {strconv.FormatInt(userID, 10)}},
		NoCache: true,
	})
}

// SendMessage posts the user's text and returns the bot's reply.
func (c *ChatAPI) SendMessage(ctx context.Context, sessionID, userID int64, message string) driver.Response[models.BotReply] {
	form := url.Values{
		"user_id": {strconv.FormatInt(userID, 10)},
		"message": {message},
	}
	return driver.Do[models.BotReply](ctx, c.client, fmt.Sprintf("/chat/sessions/%d/messages", sessionID), driver.RequestOptions{
		Method: http.MethodPost,
		Form:   form,
	})
}

// Rename changes a session's title.
func (c *ChatAPI) Rename(ctx context.Context, sessionID, userID int64, newTitle string) driver.Response[struct{}] {
	form := url.Values{
		"user_id":   {strconv.FormatInt(userID, 10)},
		"new_title": {newTitle},
	}
	return driver.Do[struct{}](ctx, c.client, fmt.Sprintf("/chat/sessions/%d", sessionID), driver.RequestOptions{
		Method: http.MethodPut,
		Form:   form,
	})
}
