package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quka-ai/quka-client/pkg/types"
)

func noPermissions(string) []string { return nil }

func TestChatSessions(t *testing.T) {
	s := New()
	a := s.CreateChatSession("u1", types.CreateChatSessionRequest{})
	assert.Equal(t, types.CHAT_SESSION_TYPE_GENERAL, a.Type)
	assert.Equal(t, types.DEFAULT_CHAT_SESSION_TITLE, a.Title)

	b := s.CreateChatSession("u1", types.CreateChatSessionRequest{Title: "second"})
	s.CreateChatSession("u2", types.CreateChatSessionRequest{})

	list := s.ListChatSessions("u1")
	require.Len(t, list, 2)
	assert.Equal(t, b.ID, list[0].ID)

	_, err := s.AppendChatMessage("u1", a.ID, types.MESSAGE_ROLE_USER, "hi")
	require.NoError(t, err)
	assert.Equal(t, a.ID, s.ListChatSessions("u1")[0].ID)

	_, err = s.GetChatSession("u2", a.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	history, err := s.GetChatSession("u1", a.ID)
	require.NoError(t, err)
	require.Len(t, history.Messages, 1)
	assert.Equal(t, "hi", history.Messages[0].Content)

	require.NoError(t, s.DeleteChatSession("u1", a.ID))
	assert.ErrorIs(t, s.DeleteChatSession("u1", a.ID), ErrNotFound)
}

func TestFavoritesAndKnowledgeBase(t *testing.T) {
	s := New()
	doc := s.AddDocument(types.Document{Title: "doc"})

	res, err := s.ToggleFavorite("u1", doc.ID)
	require.NoError(t, err)
	assert.True(t, res.Favorited)
	favorites := s.ListFavorites("u1")
	require.Len(t, favorites, 1)
	assert.True(t, favorites[0].Favorited)
	assert.Empty(t, s.ListFavorites("u2"))

	res, err = s.ToggleFavorite("u1", doc.ID)
	require.NoError(t, err)
	assert.False(t, res.Favorited)

	_, err = s.ToggleFavorite("u1", "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.SetKnowledgeBase(doc.ID, true)
	require.NoError(t, err)
	assert.Equal(t, 1, s.KnowledgeBase().DocumentCount)
	assert.Equal(t, []string{"doc"}, s.KnowledgeBaseTitles())

	_, err = s.UpdateKnowledgeBaseConfig(types.KnowledgeBaseConfig{ChunkSize: 100, ChunkOverlap: 100})
	assert.ErrorIs(t, err, ErrInvalid)
	kb, err := s.UpdateKnowledgeBaseConfig(types.KnowledgeBaseConfig{ChunkSize: 100, ChunkOverlap: 10, TopK: 3})
	require.NoError(t, err)
	assert.Equal(t, 3, kb.Config.TopK)
}

func TestComments(t *testing.T) {
	s := New()
	doc := s.AddDocument(types.Document{Title: "doc"})
	user := types.User{ID: "u1", Username: "alice"}

	root, err := s.AddComment(user, doc.ID, types.CreateCommentRequest{Content: "first"})
	require.NoError(t, err)
	assert.Equal(t, "alice", root.Author.Username)

	_, err = s.AddComment(user, doc.ID, types.CreateCommentRequest{Content: "reply", ParentID: root.ID})
	require.NoError(t, err)
	_, err = s.AddComment(user, doc.ID, types.CreateCommentRequest{Content: "orphan", ParentID: "nope"})
	assert.ErrorIs(t, err, ErrInvalid)

	list, err := s.ListComments(doc.ID)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestTeams(t *testing.T) {
	s := New()
	owner := types.User{ID: "u1", Username: "owner"}
	team, err := s.CreateTeam(owner, types.CreateTeamRequest{Name: "T", Slug: "t"}, []string{"delete"})
	require.NoError(t, err)
	_, err = s.CreateTeam(owner, types.CreateTeamRequest{Name: "T2", Slug: "t"}, nil)
	assert.ErrorIs(t, err, ErrExist)

	require.NoError(t, s.AddTeamMember(team.ID, types.User{ID: "u2"}, types.TEAM_ROLE_MEMBER, nil))
	assert.Equal(t, types.TEAM_ROLE_MEMBER, s.TeamRole(team.ID, "u2"))
	assert.Equal(t, "", s.TeamRole(team.ID, "u3"))

	got, err := s.GetTeamBySlug("t")
	require.NoError(t, err)
	assert.Equal(t, 2, got.MemberCount)

	_, err = s.UpdateTeamMember(team.ID, "u1", types.TEAM_ROLE_ADMIN, nil)
	assert.ErrorIs(t, err, ErrInvalid)
	m, err := s.UpdateTeamMember(team.ID, "u2", types.TEAM_ROLE_ADMIN, []string{"view"})
	require.NoError(t, err)
	assert.Equal(t, types.TEAM_ROLE_ADMIN, m.Role)

	assert.ErrorIs(t, s.RemoveTeamMember(team.ID, "u1"), ErrInvalid)
	require.NoError(t, s.RemoveTeamMember(team.ID, "u2"))
	assert.Len(t, s.ListTeams("u2"), 0)

	space, err := s.CreateTeamSpace(team.ID, types.CreateTeamSpaceRequest{Name: "docs"})
	require.NoError(t, err)
	require.NoError(t, s.DeleteTeamSpace(team.ID, space.ID))
	assert.ErrorIs(t, s.DeleteTeamSpace(team.ID, space.ID), ErrNotFound)

	s.now = func() time.Time { return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC) }
	invite, err := s.CreateTeamInvite(team.ID, "http://localhost")
	require.NoError(t, err)
	assert.Len(t, invite.Code, 12)
	assert.Equal(t, "2024-01-08T00:00:00Z", invite.ExpiresAt)
	assert.Contains(t, invite.URL, "/teams/t/join?code="+invite.Code)

	require.NoError(t, s.DeleteTeam(team.ID))
	_, err = s.GetTeam(team.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCommunityTagsOrder(t *testing.T) {
	s := New()
	Seed(s, noPermissions)

	assert.Equal(t, []string{"notes", "rag", "workflow", "knowledge-base", "self-host"}, s.CommunityTags())

	list := s.ListDiscussions()
	require.Len(t, list, 3)
	assert.Equal(t, int64(3), list[0].ID.Int())
	assert.Equal(t, types.FlexString, list[0].LikeCount.Kind())

	_, err := s.CreateDiscussion(types.User{}, "", types.CreateDiscussionRequest{Title: "  "})
	assert.ErrorIs(t, err, ErrInvalid)
	assert.Equal(t, []string{}, New().CommunityTags())
}
