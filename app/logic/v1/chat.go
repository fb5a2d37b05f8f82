package v1

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/quka-ai/quka-client/app/core"
	"github.com/quka-ai/quka-client/pkg/adapter"
	"github.com/quka-ai/quka-client/pkg/errors"
	"github.com/quka-ai/quka-client/pkg/i18n"
	"github.com/quka-ai/quka-client/pkg/reqapi"
	"github.com/quka-ai/quka-client/pkg/safe"
	"github.com/quka-ai/quka-client/pkg/types"
)

type ChatLogic struct {
	ctx  context.Context
	core *core.Core
}

func NewChatLogic(ctx context.Context, core *core.Core) *ChatLogic {
	return &ChatLogic{
		ctx:  ctx,
		core: core,
	}
}

func (l *ChatLogic) Sessions() ([]types.ChatSessionView, error) {
	list, err := l.core.Client().ListChatSessions(l.ctx)
	if err != nil {
		return nil, apiError("ChatLogic.Sessions.ListChatSessions", err)
	}
	return adapter.ChatSessionsToViews(list, l.core.AdapterOptions()...), nil
}

// Open loads a session together with its messages.
func (l *ChatLogic) Open(sessionID string) (types.ChatSessionView, []types.ChatMessageView, error) {
	history, err := l.core.Client().GetChatSession(l.ctx, sessionID)
	if err != nil {
		return types.ChatSessionView{}, nil, apiError("ChatLogic.Open.GetChatSession", err)
	}
	opts := l.core.AdapterOptions()
	return adapter.ChatSessionToView(history.ChatSession, opts...), adapter.ChatHistoryToMessages(*history, opts...), nil
}

func (l *ChatLogic) Create(req types.CreateChatSessionRequest) (types.ChatSessionView, error) {
	session, err := l.core.Client().CreateChatSession(l.ctx, req)
	if err != nil {
		return types.ChatSessionView{}, apiError("ChatLogic.Create.CreateChatSession", err)
	}
	return adapter.ChatSessionToView(*session, l.core.AdapterOptions()...), nil
}

func (l *ChatLogic) Delete(sessionID string) error {
	if err := l.core.Client().DeleteChatSession(l.ctx, sessionID); err != nil {
		return apiError("ChatLogic.Delete.DeleteChatSession", err)
	}
	return nil
}

// Send posts text to the session and hands every reply chunk to onChunk as
// it arrives. It returns the whole reply. A panic in onChunk ends the
// stream with an error.
func (l *ChatLogic) Send(sessionID string, req types.SendMessageRequest, onChunk func(chunk string)) (string, error) {
	if strings.TrimSpace(req.Content) == "" {
		return "", errors.New("ChatLogic.Send.empty", i18n.ERROR_INVALIDARGUMENT, nil).Code(http.StatusBadRequest)
	}

	stream, err := l.core.Client().SendMessageToSession(l.ctx, sessionID, req)
	if err != nil {
		return "", apiError("ChatLogic.Send.SendMessageToSession", err)
	}
	defer stream.Close()

	var reply string
	err = safe.Call(func() error {
		var err error
		reply, err = stream.Collect(func(chunk string) {
			l.core.Metrics().StreamChunkInc(reqapi.SEND_MESSAGE_API)
			if onChunk != nil {
				onChunk(chunk)
			}
		})
		return err
	}, "ChatLogic.Send")
	if err != nil {
		slog.Error("chat stream interrupted",
			slog.String("session_id", sessionID),
			slog.Int("received", len(reply)),
			slog.String("error", err.Error()))
		return reply, errors.New("ChatLogic.Send.Collect", i18n.ERROR_STREAM_FAILED, err).Code(http.StatusBadGateway)
	}
	return reply, nil
}
