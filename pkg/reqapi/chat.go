package reqapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/quka-ai/quka-client/pkg/errors"
	"github.com/quka-ai/quka-client/pkg/types"
)

// SEND_MESSAGE_API labels the message stream in request and chunk metrics.
const SEND_MESSAGE_API = "chat.messages.send"

// CreateChatSession fills in the default type and title before posting.
func (c *Client) CreateChatSession(ctx context.Context, req types.CreateChatSessionRequest) (*types.ChatSession, error) {
	if req.Type == "" {
		req.Type = types.CHAT_SESSION_TYPE_GENERAL
	}
	if req.Title == "" {
		req.Title = types.DEFAULT_CHAT_SESSION_TITLE
	}

	var session types.ChatSession
	if err := c.do(ctx, "chat.sessions.create", http.MethodPost, endpoint("chat", "sessions"), nil, req, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (c *Client) ListChatSessions(ctx context.Context) ([]types.ChatSession, error) {
	var list []types.ChatSession
	if err := c.do(ctx, "chat.sessions.list", http.MethodGet, endpoint("chat", "sessions"), nil, nil, &list); err != nil {
		return nil, err
	}
	if list == nil {
		list = []types.ChatSession{}
	}
	return list, nil
}

func (c *Client) GetChatSession(ctx context.Context, sessionID string) (*types.ChatSessionHistory, error) {
	var history types.ChatSessionHistory
	if err := c.do(ctx, "chat.sessions.get", http.MethodGet, endpoint("chat", "sessions", sessionID), nil, nil, &history); err != nil {
		return nil, err
	}
	if history.Messages == nil {
		history.Messages = []types.ChatMessage{}
	}
	return &history, nil
}

func (c *Client) DeleteChatSession(ctx context.Context, sessionID string) error {
	return c.do(ctx, "chat.sessions.delete", http.MethodDelete, endpoint("chat", "sessions", sessionID), nil, nil, nil)
}

// SendMessageToSession posts a message and hands back the reply as a raw
// text stream. The caller must Close the stream.
func (c *Client) SendMessageToSession(ctx context.Context, sessionID string, req types.SendMessageRequest) (*MessageStream, error) {
	raw, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	relPath := endpoint("chat", "sessions", sessionID, "messages")
	httpReq, err := c.newRequest(withAPI(ctx, SEND_MESSAGE_API), http.MethodPost, relPath, nil, bytes.NewReader(raw))
	if err != nil {
		cancel()
		return nil, err
	}
	httpReq.Header.Set("Accept", "text/plain, text/event-stream, */*")

	resp, err := c.stream.Do(httpReq)
	if err != nil {
		cancel()
		return nil, errors.New("reqapi.SendMessageToSession", "failed to send message", err).Code(http.StatusBadGateway)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		herr := newHTTPError(http.MethodPost, relPath, resp)
		resp.Body.Close()
		cancel()
		msg := fmt.Sprintf("failed to send message: HTTP %d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
		return nil, errors.New("reqapi.SendMessageToSession", msg, herr).Code(resp.StatusCode)
	}

	if resp.Body == nil || resp.Body == http.NoBody {
		cancel()
		return nil, errors.New("reqapi.SendMessageToSession", ErrEmptyStream.Error(), ErrEmptyStream).Code(http.StatusBadGateway)
	}

	return newMessageStream(resp, cancel), nil
}
