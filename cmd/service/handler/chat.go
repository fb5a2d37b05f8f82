package handler

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/quka-ai/quka-client/app/response"
	"github.com/quka-ai/quka-client/cmd/service/middleware"
	"github.com/quka-ai/quka-client/pkg/errors"
	"github.com/quka-ai/quka-client/pkg/i18n"
	"github.com/quka-ai/quka-client/pkg/reqapi"
	"github.com/quka-ai/quka-client/pkg/types"
	"github.com/quka-ai/quka-client/pkg/utils"
)

func (s *HttpSrv) ListChatSessions(c *gin.Context) {
	user, _ := middleware.InjectUser(c)
	response.APISuccess(c, s.Store.ListChatSessions(user.ID))
}

func (s *HttpSrv) CreateChatSession(c *gin.Context) {
	var req types.CreateChatSessionRequest
	if err := utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	user, _ := middleware.InjectUser(c)
	response.APISuccess(c, s.Store.CreateChatSession(user.ID, req))
}

func (s *HttpSrv) GetChatSession(c *gin.Context) {
	user, _ := middleware.InjectUser(c)
	history, err := s.Store.GetChatSession(user.ID, c.Param("id"))
	if err != nil {
		response.APIError(c, storeError("handler.GetChatSession", err))
		return
	}
	response.APISuccess(c, history)
}

func (s *HttpSrv) DeleteChatSession(c *gin.Context) {
	user, _ := middleware.InjectUser(c)
	if err := s.Store.DeleteChatSession(user.ID, c.Param("id")); err != nil {
		response.APIError(c, storeError("handler.DeleteChatSession", err))
		return
	}
	response.APISuccess(c, nil)
}

// SendMessage stores the user's message and streams the assistant reply as
// raw text chunks. The reply is stored once the stream ends.
func (s *HttpSrv) SendMessage(c *gin.Context) {
	var req types.SendMessageRequest
	if err := utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		response.APIError(c, errors.New("handler.SendMessage.empty", i18n.ERROR_INVALIDARGUMENT, nil).Code(http.StatusBadRequest))
		return
	}

	user, _ := middleware.InjectUser(c)
	sessionID := c.Param("id")
	if _, err := s.Store.AppendChatMessage(user.ID, sessionID, types.MESSAGE_ROLE_USER, req.Content); err != nil {
		response.APIError(c, storeError("handler.SendMessage.AppendChatMessage", err))
		return
	}

	var titles []string
	if req.UseKnowledgeBase {
		titles = s.Store.KnowledgeBaseTitles()
	}
	chunks := strings.SplitAfter(composeReply(req.Content, titles), " ")

	var sent strings.Builder
	c.Status(http.StatusOK)
	c.Stream(func(w io.Writer) bool {
		if len(chunks) == 0 {
			return false
		}
		if sent.Len() > 0 && s.StreamDelay > 0 {
			select {
			case <-c.Request.Context().Done():
				return false
			case <-time.After(s.StreamDelay):
			}
		}
		if _, err := io.WriteString(w, chunks[0]); err != nil {
			return false
		}
		sent.WriteString(chunks[0])
		chunks = chunks[1:]
		s.Core.Metrics().StreamChunkInc(reqapi.SEND_MESSAGE_API)
		return len(chunks) > 0
	})

	s.Store.AppendChatMessage(user.ID, sessionID, types.MESSAGE_ROLE_ASSISTANT, sent.String())
}

func composeReply(content string, kbTitles []string) string {
	reply := fmt.Sprintf("You said: %s.", strings.TrimSpace(content))
	if len(kbTitles) > 0 {
		reply += fmt.Sprintf(" I looked through %d knowledge base documents: %s.", len(kbTitles), strings.Join(kbTitles, ", "))
	}
	return reply
}
