package v1_test

import (
	"context"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quka-ai/quka-client/app/core"
	v1 "github.com/quka-ai/quka-client/app/logic/v1"
	"github.com/quka-ai/quka-client/app/store"
	"github.com/quka-ai/quka-client/cmd/service"
	"github.com/quka-ai/quka-client/pkg/errors"
	"github.com/quka-ai/quka-client/pkg/i18n"
	"github.com/quka-ai/quka-client/pkg/query"
	"github.com/quka-ai/quka-client/pkg/tagcloud"
	"github.com/quka-ai/quka-client/pkg/types"
)

func newCore(t *testing.T, baseURL string) *core.Core {
	t.Helper()
	cfg := core.LoadBaseConfigFromENV()
	cfg.API.BaseURL = baseURL
	cfg.Auth.TokenFile = filepath.Join(t.TempDir(), "credentials.toml")
	cfg.Redis.Addr = ""
	app := core.MustSetupCore(cfg)
	t.Cleanup(func() { app.Close() })
	return app
}

// setup starts a seeded mock backend and returns a core talking to it,
// logged in with token (empty for anonymous).
func setup(t *testing.T, token string) *core.Core {
	t.Helper()
	backend := newCore(t, "http://127.0.0.1:1")
	service.NewMockServer(backend, store.New(), true)
	srv := httptest.NewServer(backend.HttpEngine())
	t.Cleanup(srv.Close)

	app := newCore(t, srv.URL)
	if token != "" {
		require.NoError(t, app.Login(context.Background(), token))
	}
	return app
}

func codeOf(t *testing.T, err error) (int, string) {
	t.Helper()
	var cerr *errors.CustomizedError
	require.True(t, stderrors.As(err, &cerr), "expected CustomizedError, got %v", err)
	return cerr.GetCode(), cerr.Message()
}

func TestTagCloud(t *testing.T) {
	app := setup(t, store.DEMO_TOKEN)
	logic := v1.NewCommunityLogic(context.Background(), app)

	var clicked string
	view, component := logic.TagCloud("rag", func(name string) { clicked = name })
	require.Equal(t, tagcloud.PhaseSuccess, view.Phase)
	require.Len(t, view.Items, 5)
	assert.Equal(t, "notes", view.Items[0].Name)

	selected := 0
	for _, item := range view.Items {
		if item.Selected {
			selected++
			assert.Equal(t, "rag", item.Name)
			assert.Equal(t, tagcloud.SelectedStyle, item.Style)
		}
	}
	assert.Equal(t, 1, selected)

	component.Click("workflow")
	assert.Equal(t, "workflow", clicked)

	// served from cache without fetching
	snapshot := logic.TagCloudSnapshot("")
	assert.Equal(t, tagcloud.PhaseSuccess, snapshot.Phase)
	assert.Len(t, snapshot.Items, 5)
}

func TestTagCloudError(t *testing.T) {
	app := setup(t, "")
	logic := v1.NewCommunityLogic(context.Background(), app)

	view, _ := logic.TagCloud("", nil)
	assert.Equal(t, tagcloud.PhaseError, view.Phase)
	assert.Empty(t, view.Items)
	assert.Equal(t, app.Localizer().Get(app.Lang(), i18n.TAGCLOUD_ERROR), view.Message)

	_, err := logic.Topics()
	code, message := codeOf(t, err)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, i18n.ERROR_UNAUTHORIZED, message)
}

func TestPublishInvalidatesTags(t *testing.T) {
	app := setup(t, store.DEMO_TOKEN)
	logic := v1.NewCommunityLogic(context.Background(), app)

	topics, err := logic.Topics()
	require.NoError(t, err)
	assert.Len(t, topics, 5)

	post, err := logic.Publish(types.CommunityPost{Title: "Go client", Content: "Hello", Tags: []string{"go"}})
	require.NoError(t, err)
	assert.Equal(t, "Go client", post.Title)
	assert.Equal(t, []string{"go"}, post.Tags)
	assert.Equal(t, query.StatusLoading, query.Peek[[]string](app.Cache(), v1.TAGS_QUERY_KEY).Status)

	view, _ := logic.TagCloud("", nil)
	names := make([]string, 0, len(view.Items))
	for _, item := range view.Items {
		names = append(names, item.Name)
	}
	assert.Contains(t, names, "go")

	_, err = logic.Publish(types.CommunityPost{Content: "untitled"})
	code, _ := codeOf(t, err)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestFeed(t *testing.T) {
	app := setup(t, store.DEMO_TOKEN)
	logic := v1.NewCommunityLogic(context.Background(), app)

	all, err := logic.Feed("")
	require.NoError(t, err)
	assert.Len(t, all, 3)
	assert.Equal(t, "Self-hosting tips", all[0].Title)
	assert.Equal(t, "demo", all[0].Author.Name)

	rag, err := logic.Feed("rag")
	require.NoError(t, err)
	assert.Len(t, rag, 2)

	none, err := logic.Feed("missing")
	require.NoError(t, err)
	assert.Empty(t, none)

	long := types.CommunityPost{Content: strings.Repeat("word ", 100)}
	assert.True(t, strings.HasSuffix(v1.Excerpt(long), "..."))
}

func TestChatSend(t *testing.T) {
	app := setup(t, store.DEMO_TOKEN)
	logic := v1.NewChatLogic(context.Background(), app)

	session, err := logic.Create(types.CreateChatSessionRequest{Title: "Demo"})
	require.NoError(t, err)
	assert.Equal(t, "Demo", session.Title)

	var chunks []string
	reply, err := logic.Send(session.ID, types.SendMessageRequest{Content: "ping"}, func(chunk string) {
		chunks = append(chunks, chunk)
	})
	require.NoError(t, err)
	assert.Equal(t, "You said: ping.", reply)
	assert.Equal(t, reply, strings.Join(chunks, ""))

	_, messages, err := logic.Open(session.ID)
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.True(t, messages[0].FromUser)
	assert.False(t, messages[1].FromUser)

	_, err = logic.Send(session.ID, types.SendMessageRequest{Content: " "}, nil)
	code, _ := codeOf(t, err)
	assert.Equal(t, http.StatusBadRequest, code)

	_, err = logic.Send("missing", types.SendMessageRequest{Content: "hi"}, nil)
	code, message := codeOf(t, err)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, i18n.ERROR_NOT_FOUND, message)

	require.NoError(t, logic.Delete(session.ID))
	sessions, err := logic.Sessions()
	require.NoError(t, err)
	assert.Empty(t, sessions)
}

func TestChatSendCallbackPanic(t *testing.T) {
	app := setup(t, store.DEMO_TOKEN)
	logic := v1.NewChatLogic(context.Background(), app)

	session, err := logic.Create(types.CreateChatSessionRequest{})
	require.NoError(t, err)

	_, err = logic.Send(session.ID, types.SendMessageRequest{Content: "ping"}, func(string) {
		panic("boom")
	})
	code, message := codeOf(t, err)
	assert.Equal(t, http.StatusBadGateway, code)
	assert.Equal(t, i18n.ERROR_STREAM_FAILED, message)
}

func TestTeamCan(t *testing.T) {
	app := setup(t, store.VIEWER_TOKEN)
	logic := v1.NewTeamLogic(context.Background(), app)

	team, err := logic.Resolve(store.DEMO_TEAM)
	require.NoError(t, err)

	result, err := logic.Can(team.ID)
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{
		types.TEAM_ACTION_VIEW:          true,
		types.TEAM_ACTION_EDIT:          false,
		types.TEAM_ACTION_MANAGE_MEMBER: false,
		types.TEAM_ACTION_MANAGE:        false,
		types.TEAM_ACTION_DELETE:        false,
	}, result)

	err = logic.Delete(team.ID)
	code, message := codeOf(t, err)
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, i18n.ERROR_PERMISSION_DENIED, message)

	_, err = logic.Resolve("missing")
	code, _ = codeOf(t, err)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestTeamLifecycle(t *testing.T) {
	app := setup(t, store.DEMO_TOKEN)
	logic := v1.NewTeamLogic(context.Background(), app)

	team, err := logic.Create(types.CreateTeamRequest{Name: "Docs", Slug: "docs"})
	require.NoError(t, err)

	_, err = logic.Create(types.CreateTeamRequest{Name: "Docs again", Slug: "docs"})
	code, message := codeOf(t, err)
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, i18n.ERROR_EXIST, message)

	space, err := logic.CreateSpace(team.ID, types.CreateTeamSpaceRequest{Name: "Drafts"})
	require.NoError(t, err)
	spaces, err := logic.Spaces(team.ID)
	require.NoError(t, err)
	assert.Len(t, spaces, 1)
	require.NoError(t, logic.DeleteSpace(team.ID, space.ID))

	teams, err := logic.List()
	require.NoError(t, err)
	assert.Len(t, teams, 2)

	require.NoError(t, logic.Delete(team.ID))
	teams, err = logic.List()
	require.NoError(t, err)
	assert.Len(t, teams, 1)
}

func TestDocuments(t *testing.T) {
	app := setup(t, store.DEMO_TOKEN)
	logic := v1.NewDocumentLogic(context.Background(), app)

	kb, docs, err := logic.KnowledgeBase()
	require.NoError(t, err)
	assert.Equal(t, 1, kb.DocumentCount)
	require.Len(t, docs, 1)

	enabled, err := logic.SetKnowledgeBase(docs[0].ID, false)
	require.NoError(t, err)
	assert.False(t, enabled)

	favorites, err := logic.Favorites()
	require.NoError(t, err)
	require.Len(t, favorites, 1)

	comment, err := logic.PostComment(favorites[0].ID, types.CreateCommentRequest{Content: "hello"})
	require.NoError(t, err)
	assert.Equal(t, "demo", comment.Author.Name)
	assert.Equal(t, int64(0), comment.Likes)

	comments, err := logic.Comments(favorites[0].ID)
	require.NoError(t, err)
	assert.Len(t, comments, 1)

	favorited, err := logic.ToggleFavorite(favorites[0].ID)
	require.NoError(t, err)
	assert.False(t, favorited)

	_, err = logic.UpdateKnowledgeBaseConfig(types.KnowledgeBaseConfig{ChunkSize: 10, ChunkOverlap: 20})
	code, _ := codeOf(t, err)
	assert.Equal(t, http.StatusBadRequest, code)
}
