package store

import (
	"github.com/samber/lo"

	"github.com/quka-ai/quka-client/pkg/types"
)

type chatSession struct {
	owner    string
	session  types.ChatSession
	messages []types.ChatMessage
}

func (s *Store) CreateChatSession(userID string, req types.CreateChatSessionRequest) types.ChatSession {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.timestamp()
	session := types.ChatSession{
		ID:        newID(),
		Type:      lo.If(req.Type == "", types.CHAT_SESSION_TYPE_GENERAL).Else(req.Type),
		RelatedID: req.RelatedID,
		Title:     lo.If(req.Title == "", types.DEFAULT_CHAT_SESSION_TITLE).Else(req.Title),
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.sessions[session.ID] = &chatSession{owner: userID, session: session}
	s.sessionOrder = append(s.sessionOrder, session.ID)
	return session
}

// ListChatSessions returns the user's sessions, most recently updated first.
func (s *Store) ListChatSessions(userID string) []types.ChatSession {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]types.ChatSession, 0)
	for i := len(s.sessionOrder) - 1; i >= 0; i-- {
		cs := s.sessions[s.sessionOrder[i]]
		if cs.owner == userID {
			list = append(list, cs.session)
		}
	}
	return list
}

func (s *Store) GetChatSession(userID, id string) (types.ChatSessionHistory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cs, ok := s.sessions[id]
	if !ok || cs.owner != userID {
		return types.ChatSessionHistory{}, ErrNotFound
	}
	return types.ChatSessionHistory{
		ChatSession: cs.session,
		Messages:    append([]types.ChatMessage{}, cs.messages...),
	}, nil
}

func (s *Store) DeleteChatSession(userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cs, ok := s.sessions[id]
	if !ok || cs.owner != userID {
		return ErrNotFound
	}
	delete(s.sessions, id)
	s.sessionOrder = lo.Without(s.sessionOrder, id)
	return nil
}

// AppendChatMessage stores one message and bumps the session's updatedAt.
func (s *Store) AppendChatMessage(userID, sessionID string, role types.MessageRole, content string) (types.ChatMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cs, ok := s.sessions[sessionID]
	if !ok || cs.owner != userID {
		return types.ChatMessage{}, ErrNotFound
	}
	msg := types.ChatMessage{
		ID:        newID(),
		Role:      role,
		Content:   content,
		CreatedAt: s.timestamp(),
	}
	cs.messages = append(cs.messages, msg)
	cs.session.UpdatedAt = msg.CreatedAt

	s.sessionOrder = append(lo.Without(s.sessionOrder, sessionID), sessionID)
	return msg, nil
}
