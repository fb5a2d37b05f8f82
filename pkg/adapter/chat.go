package adapter

import (
	"github.com/samber/lo"

	"github.com/quka-ai/quka-client/pkg/types"
)

func ChatSessionToView(s types.ChatSession, opts ...Option) types.ChatSessionView {
	o := newOptions(opts)
	return types.ChatSessionView{
		ID:        s.ID,
		Title:     lo.Ternary(s.Title != "", s.Title, types.DEFAULT_CHAT_SESSION_TITLE),
		Type:      lo.Ternary(s.Type != "", s.Type, types.CHAT_SESSION_TYPE_GENERAL),
		RelatedID: s.RelatedID,
		UpdatedAt: FormatDate(lo.Ternary(s.UpdatedAt != "", s.UpdatedAt, s.CreatedAt), o.lang, o.loc),
	}
}

func ChatSessionsToViews(list []types.ChatSession, opts ...Option) []types.ChatSessionView {
	return lo.Map(list, func(item types.ChatSession, _ int) types.ChatSessionView {
		return ChatSessionToView(item, opts...)
	})
}

// ChatHistoryToMessages keeps server order.
func ChatHistoryToMessages(h types.ChatSessionHistory, opts ...Option) []types.ChatMessageView {
	o := newOptions(opts)
	return lo.Map(h.Messages, func(m types.ChatMessage, _ int) types.ChatMessageView {
		return types.ChatMessageView{
			ID:        m.ID,
			Role:      m.Role,
			Content:   m.Content,
			CreatedAt: FormatDate(m.CreatedAt, o.lang, o.loc),
			FromUser:  m.Role == types.MESSAGE_ROLE_USER,
		}
	})
}
