package service

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quka-ai/quka-client/app/core"
	"github.com/quka-ai/quka-client/app/store"
	"github.com/quka-ai/quka-client/pkg/auth"
	"github.com/quka-ai/quka-client/pkg/reqapi"
	"github.com/quka-ai/quka-client/pkg/types"
)

func newMockBackend(t *testing.T) *httptest.Server {
	t.Helper()
	cfg := core.LoadBaseConfigFromENV()
	cfg.Auth.TokenFile = filepath.Join(t.TempDir(), "credentials.toml")
	cfg.Redis.Addr = ""
	app := core.MustSetupCore(cfg)
	t.Cleanup(func() { app.Close() })

	NewMockServer(app, store.New(), true)
	srv := httptest.NewServer(app.HttpEngine())
	t.Cleanup(srv.Close)
	return srv
}

func demoTeam(t *testing.T, client *reqapi.Client) *types.Team {
	t.Helper()
	team, err := client.GetTeamBySlug(context.Background(), store.DEMO_TEAM)
	require.NoError(t, err)
	return team
}

func TestMockRequiresToken(t *testing.T) {
	srv := newMockBackend(t)
	ctx := context.Background()

	_, err := reqapi.New(srv.URL, nil).ListTeams(ctx)
	assert.True(t, reqapi.IsStatus(err, http.StatusUnauthorized))

	_, err = reqapi.New(srv.URL, auth.Static("nobody")).ListTeams(ctx)
	assert.True(t, reqapi.IsStatus(err, http.StatusUnauthorized))

	teams, err := reqapi.New(srv.URL, auth.Static("Bearer "+store.DEMO_TOKEN)).ListTeams(ctx)
	require.NoError(t, err)
	require.Len(t, teams, 1)
	assert.Equal(t, store.DEMO_TEAM, teams[0].Slug)
}

func TestMockTeamPermissions(t *testing.T) {
	srv := newMockBackend(t)
	ctx := context.Background()
	demo := reqapi.New(srv.URL, auth.Static(store.DEMO_TOKEN))
	viewer := reqapi.New(srv.URL, auth.Static(store.VIEWER_TOKEN))
	team := demoTeam(t, demo)

	for _, action := range []string{types.TEAM_ACTION_VIEW, types.TEAM_ACTION_MANAGE, types.TEAM_ACTION_DELETE} {
		ok, err := demo.CheckTeamPermission(ctx, team.ID, action)
		require.NoError(t, err)
		assert.True(t, ok, action)
	}

	ok, err := viewer.CheckTeamPermission(ctx, team.ID, types.TEAM_ACTION_VIEW)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = viewer.CheckTeamPermission(ctx, team.ID, types.TEAM_ACTION_DELETE)
	require.NoError(t, err)
	assert.False(t, ok)

	members, err := viewer.ListTeamMembers(ctx, team.ID)
	require.NoError(t, err)
	assert.Len(t, members, 2)

	name := "renamed"
	_, err = viewer.UpdateTeam(ctx, team.ID, types.UpdateTeamRequest{Name: &name})
	assert.True(t, reqapi.IsStatus(err, http.StatusForbidden))
	_, err = viewer.CreateTeamInvite(ctx, team.ID)
	assert.True(t, reqapi.IsStatus(err, http.StatusForbidden))

	updated, err := demo.UpdateTeam(ctx, team.ID, types.UpdateTeamRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "renamed", updated.Name)

	invite, err := demo.CreateTeamInvite(ctx, team.ID)
	require.NoError(t, err)
	assert.Contains(t, invite.URL, "/teams/"+team.ID+"/join?code="+invite.Code)

	_, err = demo.GetTeam(ctx, "missing")
	assert.True(t, reqapi.IsStatus(err, http.StatusNotFound))
}

func TestMockMemberRoles(t *testing.T) {
	srv := newMockBackend(t)
	ctx := context.Background()
	demo := reqapi.New(srv.URL, auth.Static(store.DEMO_TOKEN))
	team := demoTeam(t, demo)

	member, err := demo.UpdateTeamMember(ctx, team.ID, "u-viewer", types.UpdateTeamMemberRequest{Role: types.TEAM_ROLE_MEMBER})
	require.NoError(t, err)
	assert.Equal(t, types.TEAM_ROLE_MEMBER, member.Role)
	assert.Contains(t, member.Permissions, types.TEAM_ACTION_EDIT)

	_, err = demo.UpdateTeamMember(ctx, team.ID, "u-viewer", types.UpdateTeamMemberRequest{Role: "emperor"})
	assert.True(t, reqapi.IsStatus(err, http.StatusBadRequest))

	err = demo.RemoveTeamMember(ctx, team.ID, "u-demo")
	assert.True(t, reqapi.IsStatus(err, http.StatusBadRequest))

	require.NoError(t, demo.RemoveTeamMember(ctx, team.ID, "u-viewer"))
	members, err := demo.ListTeamMembers(ctx, team.ID)
	require.NoError(t, err)
	assert.Len(t, members, 1)
}

func TestMockStreamsReply(t *testing.T) {
	srv := newMockBackend(t)
	ctx := context.Background()
	demo := reqapi.New(srv.URL, auth.Static(store.DEMO_TOKEN))

	session, err := demo.CreateChatSession(ctx, types.CreateChatSessionRequest{})
	require.NoError(t, err)
	assert.Equal(t, types.DEFAULT_CHAT_SESSION_TITLE, session.Title)

	stream, err := demo.SendMessageToSession(ctx, session.ID, types.SendMessageRequest{Content: "hello world", UseKnowledgeBase: true})
	require.NoError(t, err)
	var chunks []string
	text, err := stream.Collect(func(chunk string) {
		chunks = append(chunks, chunk)
	})
	require.NoError(t, err)
	assert.Equal(t, "You said: hello world. I looked through 1 knowledge base documents: Getting started.", text)
	assert.Equal(t, text, strings.Join(chunks, ""))

	history, err := demo.GetChatSession(ctx, session.ID)
	require.NoError(t, err)
	require.Len(t, history.Messages, 2)
	assert.Equal(t, types.MESSAGE_ROLE_USER, history.Messages[0].Role)
	assert.Equal(t, text, history.Messages[1].Content)

	_, err = demo.SendMessageToSession(ctx, session.ID, types.SendMessageRequest{Content: "  "})
	assert.True(t, reqapi.IsStatus(err, http.StatusBadRequest))
}

func TestMockEscapedSegments(t *testing.T) {
	srv := newMockBackend(t)
	demo := reqapi.New(srv.URL, auth.Static(store.DEMO_TOKEN))

	// routed to the handler, not rejected by the router
	err := demo.DeleteChatSession(context.Background(), "a/b c")
	var herr *reqapi.HTTPError
	require.ErrorAs(t, err, &herr)
	assert.Equal(t, http.StatusNotFound, herr.StatusCode)
	assert.Contains(t, herr.Body, `"code":404`)
}

func TestMockCommunity(t *testing.T) {
	srv := newMockBackend(t)
	ctx := context.Background()
	demo := reqapi.New(srv.URL, auth.Static(store.DEMO_TOKEN))

	tags, err := demo.GetCommunityTags(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"notes", "rag", "workflow", "knowledge-base", "self-host"}, tags)

	_, err = demo.CreateDiscussion(ctx, types.CreateDiscussionRequest{Content: "no title"})
	assert.True(t, reqapi.IsStatus(err, http.StatusBadRequest))

	created, err := demo.CreateDiscussion(ctx, types.CreateDiscussionRequest{Title: "Go client", Tags: []string{"go"}})
	require.NoError(t, err)
	assert.Equal(t, "Go client", created.Title)

	list, err := demo.ListDiscussions(ctx)
	require.NoError(t, err)
	require.Len(t, list, 4)
	assert.Equal(t, "Go client", list[0].Title)
}

func TestMockDocuments(t *testing.T) {
	srv := newMockBackend(t)
	ctx := context.Background()
	demo := reqapi.New(srv.URL, auth.Static(store.DEMO_TOKEN))

	favorites, err := demo.GetFavorites(ctx)
	require.NoError(t, err)
	require.Len(t, favorites, 1)
	docID := favorites[0].ID

	res, err := demo.ToggleFavorite(ctx, docID)
	require.NoError(t, err)
	assert.False(t, res.Favorited)

	kbRes, err := demo.DisableKnowledgeBase(ctx, docID)
	require.NoError(t, err)
	assert.False(t, kbRes.Enabled)
	kb, err := demo.GetKnowledgeBase(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, kb.DocumentCount)

	_, err = demo.UpdateKnowledgeBaseConfig(ctx, types.KnowledgeBaseConfig{ChunkSize: 100, ChunkOverlap: 100})
	assert.True(t, reqapi.IsStatus(err, http.StatusBadRequest))

	comment, err := demo.PostDocumentComment(ctx, docID, types.CreateCommentRequest{Content: "nice"})
	require.NoError(t, err)
	reply, err := demo.PostDocumentComment(ctx, docID, types.CreateCommentRequest{Content: "agreed", ParentID: comment.ID})
	require.NoError(t, err)
	assert.Equal(t, comment.ID, reply.ParentID)

	_, err = demo.PostDocumentComment(ctx, docID, types.CreateCommentRequest{Content: "orphan", ParentID: "missing"})
	assert.True(t, reqapi.IsStatus(err, http.StatusBadRequest))

	comments, err := demo.GetDocumentComments(ctx, docID)
	require.NoError(t, err)
	assert.Len(t, comments, 2)
}

func TestMockMetricsExported(t *testing.T) {
	srv := newMockBackend(t)
	_, err := reqapi.New(srv.URL, auth.Static(store.DEMO_TOKEN)).ListTeams(context.Background())
	require.NoError(t, err)

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "quka_client_api_response_time")
}
