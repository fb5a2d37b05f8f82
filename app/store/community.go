package store

import (
	"sort"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/quka-ai/quka-client/pkg/register"
	"github.com/quka-ai/quka-client/pkg/types"
)

// ListDiscussions returns discussions newest first.
func (s *Store) ListDiscussions() []types.DiscussionDto {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return lo.Reverse(append([]types.DiscussionDto{}, s.discussions...))
}

// CreateDiscussion stores a discussion. Ids are sequential numbers and the
// like counter is a numeric string, the way the real backend sends them.
func (s *Store) CreateDiscussion(author types.User, role string, req types.CreateDiscussionRequest) (types.DiscussionDto, error) {
	if strings.TrimSpace(req.Title) == "" {
		return types.DiscussionDto{}, ErrInvalid
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tags := lo.Uniq(lo.FilterMap(req.Tags, func(t string, _ int) (string, bool) {
		t = strings.TrimSpace(t)
		return t, t != ""
	}))
	dto := types.DiscussionDto{
		ID:      types.Number(float64(len(s.discussions) + 1)),
		Title:   req.Title,
		Content: req.Content,
		Author: types.DiscussionAuthor{
			ID:       author.ID,
			Username: author.Username,
			Avatar:   author.Avatar,
			Role:     role,
		},
		Tags:          tags,
		LikeCount:     types.String(strconv.Itoa(0)),
		ReplyCount:    types.Number(0),
		ViewCount:     types.Number(0),
		TrendingScore: types.Number(0),
		CreatedAt:     s.timestamp(),
	}
	s.discussions = append(s.discussions, dto)
	return dto, nil
}

// CommunityTags lists tag names by how many discussions use them, most used
// first, ties in first-seen order.
func (s *Store) CommunityTags() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var names []string
	for _, d := range s.discussions {
		names = append(names, d.Tags...)
	}
	counts := lo.CountValues(names)
	ordered := lo.Uniq(names)
	sort.SliceStable(ordered, func(i, j int) bool {
		return counts[ordered[i]] > counts[ordered[j]]
	})
	if ordered == nil {
		return []string{}
	}
	return ordered
}

func init() {
	register.RegisterFunc[*Seeder](SeedKey{}, func(seed *Seeder) {
		for _, d := range []types.CreateDiscussionRequest{
			{Title: "How do you organise notes?", Content: "Looking for ideas.", Tags: []string{"notes", "workflow"}},
			{Title: "Knowledge base chunk size", Content: "What works for long documents?", Tags: []string{"knowledge-base", "rag", "notes"}},
			{Title: "Self-hosting tips", Content: "Docker compose setup.", Tags: []string{"self-host", "notes", "rag"}},
		} {
			seed.Store.CreateDiscussion(seed.Demo, types.TEAM_ROLE_OWNER, d)
		}
	})
}
