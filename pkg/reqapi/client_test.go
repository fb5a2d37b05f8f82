package reqapi

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quka-ai/quka-client/pkg/auth"
	"github.com/quka-ai/quka-client/pkg/errors"
	"github.com/quka-ai/quka-client/pkg/types"
)

type recordObserver struct {
	mu   sync.Mutex
	apis []string
}

func (r *recordObserver) ObserveRequest(api, method string, status int, elapsed time.Duration) {
	r.mu.Lock()
	r.apis = append(r.apis, api)
	r.mu.Unlock()
}

func newTestClient(t *testing.T, h http.HandlerFunc, tokens auth.TokenProvider, opts ...Option) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(srv.URL, tokens, opts...)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func TestAuthorizationHeader(t *testing.T) {
	var got []string
	h := func(w http.ResponseWriter, r *http.Request) {
		got = append(got, r.Header.Get("Authorization"))
		assert.NotEmpty(t, r.Header.Get(REQUEST_ID_HEADER))
		w.Write([]byte("[]"))
	}
	mem := auth.NewMemoryStore("")
	client := newTestClient(t, h, mem)
	ctx := context.Background()

	_, err := client.ListTeams(ctx)
	require.NoError(t, err)

	mem.Set("Bearer raw-token")
	_, err = client.ListTeams(ctx)
	require.NoError(t, err)

	assert.Equal(t, []string{"", "Bearer raw-token"}, got)
}

func TestCreateChatSessionDefaults(t *testing.T) {
	var body map[string]any
	h := func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/chat/sessions", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		writeJSON(w, map[string]any{"id": "s1", "type": "general", "title": "New Chat"})
	}
	client := newTestClient(t, h, nil)

	session, err := client.CreateChatSession(context.Background(), types.CreateChatSessionRequest{})
	require.NoError(t, err)
	assert.Equal(t, "s1", session.ID)
	assert.Equal(t, map[string]any{"type": "general", "relatedId": "", "title": "New Chat"}, body)
}

func TestNullListBecomesEmpty(t *testing.T) {
	h := func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("null"))
	}
	client := newTestClient(t, h, nil)
	ctx := context.Background()

	sessions, err := client.ListChatSessions(ctx)
	require.NoError(t, err)
	assert.NotNil(t, sessions)
	assert.Empty(t, sessions)

	favorites, err := client.GetFavorites(ctx)
	require.NoError(t, err)
	assert.NotNil(t, favorites)
	assert.Empty(t, favorites)

	tags, err := client.GetCommunityTags(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{}, tags)
}

func TestHTTPErrorNotTranslated(t *testing.T) {
	h := func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"team not found"}`))
	}
	client := newTestClient(t, h, nil)

	_, err := client.GetTeam(context.Background(), "t1")
	require.Error(t, err)

	var herr *HTTPError
	require.True(t, stderrors.As(err, &herr))
	assert.Equal(t, http.StatusNotFound, herr.StatusCode)
	assert.Equal(t, "/api/v1/teams/t1", herr.Path)
	assert.Contains(t, herr.Body, "team not found")
	assert.True(t, IsStatus(err, http.StatusNotFound))
}

func TestResponseValidation(t *testing.T) {
	t.Run("missing id", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, []map[string]any{{"title": "no id"}})
		}, nil)

		_, err := client.ListTeams(context.Background())
		var verr *ValidationError
		require.True(t, stderrors.As(err, &verr))
		assert.Equal(t, "/api/v1/teams", verr.Path)
	})

	t.Run("loose counter of wrong kind", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`[{"id":1,"likeCount":true}]`))
		}, nil)

		_, err := client.ListDiscussions(context.Background())
		var verr *ValidationError
		assert.True(t, stderrors.As(err, &verr))
	})

	t.Run("null object body", func(t *testing.T) {
		for _, body := range []string{"null", ""} {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(body))
			}, nil)

			team, err := client.GetTeam(context.Background(), "t1")
			assert.Nil(t, team)
			var verr *ValidationError
			require.True(t, stderrors.As(err, &verr), "body %q", body)
			assert.Equal(t, "/api/v1/teams/t1", verr.Path)
		}
	})

	t.Run("null list body", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("null"))
		}, nil)

		teams, err := client.ListTeams(context.Background())
		require.NoError(t, err)
		assert.Empty(t, teams)
	})

	t.Run("loose counters accepted", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`[{"id":"7","likeCount":"12","replyCount":3,"viewCount":null}]`))
		}, nil)

		list, err := client.ListDiscussions(context.Background())
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, int64(12), list[0].LikeCount.Int())
		assert.Equal(t, int64(3), list[0].ReplyCount.Int())
		assert.True(t, list[0].ViewCount.IsAbsent())
	})
}

func TestPathSegmentsEscaped(t *testing.T) {
	var escaped string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		escaped = r.URL.EscapedPath()
		w.WriteHeader(http.StatusNoContent)
	}, nil)

	require.NoError(t, client.DeleteChatSession(context.Background(), "a/b c"))
	assert.Equal(t, "/api/v1/chat/sessions/a%2Fb%20c", escaped)
}

func TestToggleBodies(t *testing.T) {
	var bodies []string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		bodies = append(bodies, r.URL.Path+" "+string(raw))
		writeJSON(w, map[string]any{"documentId": "d1", "enabled": true, "favorited": true})
	}, nil)
	ctx := context.Background()

	_, err := client.EnableKnowledgeBase(ctx, "d1")
	require.NoError(t, err)
	_, err = client.DisableKnowledgeBase(ctx, "d1")
	require.NoError(t, err)
	_, err = client.ToggleFavorite(ctx, "d1")
	require.NoError(t, err)
	_, err = client.CreateTeamInvite(ctx, "t1")
	require.Error(t, err) // invite response lacks a code

	assert.Equal(t, []string{
		`/api/v1/documents/d1/toggle-kb {"enabled":true}`,
		`/api/v1/documents/d1/toggle-kb {"enabled":false}`,
		`/api/v1/documents/d1/favorite {}`,
		`/api/v1/teams/t1/invites {}`,
	}, bodies)
}

func TestCheckTeamPermission(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/teams/t1/check-permission", r.URL.Path)
		if r.URL.Query().Get("action") == types.TEAM_ACTION_VIEW {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusForbidden)
	}, nil)
	ctx := context.Background()

	ok, err := client.CheckTeamPermission(ctx, "t1", types.TEAM_ACTION_VIEW)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = client.CheckTeamPermission(ctx, "t1", types.TEAM_ACTION_DELETE)
	require.NoError(t, err)
	assert.False(t, ok)

	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	ok, err = New(srv.URL, nil).CheckTeamPermission(ctx, "t1", types.TEAM_ACTION_VIEW)
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestObserverSeesOperationName(t *testing.T) {
	obs := &recordObserver{}
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("[]"))
	}, nil, WithObserver(obs))

	_, err := client.ListTeamMembers(context.Background(), "t1")
	require.NoError(t, err)
	assert.Equal(t, []string{"teams.members.list"}, obs.apis)
}

func TestTimeout(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(time.Second):
		}
	}, nil, WithTimeout(50*time.Millisecond))

	_, err := client.GetKnowledgeBase(context.Background())
	assert.Error(t, err)
	assert.False(t, IsStatus(err, http.StatusOK))
}

func TestCustomizedErrorReachesHTTPError(t *testing.T) {
	err := errors.New("test", "wrapped", &HTTPError{StatusCode: http.StatusTeapot})
	assert.True(t, IsStatus(err, http.StatusTeapot))
}
