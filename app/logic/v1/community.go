package v1

import (
	"context"

	"github.com/quka-ai/quka-client/app/core"
	"github.com/quka-ai/quka-client/pkg/adapter"
	"github.com/quka-ai/quka-client/pkg/query"
	"github.com/quka-ai/quka-client/pkg/tagcloud"
	"github.com/quka-ai/quka-client/pkg/types"
	"github.com/quka-ai/quka-client/pkg/utils"
)

const (
	TAGS_QUERY_KEY = "community.tags"

	FEED_EXCERPT_LENGTH = 140
)

type CommunityLogic struct {
	ctx  context.Context
	core *core.Core
}

func NewCommunityLogic(ctx context.Context, core *core.Core) *CommunityLogic {
	return &CommunityLogic{
		ctx:  ctx,
		core: core,
	}
}

func (l *CommunityLogic) fetchTags() query.Result[[]string] {
	return query.Fetch(l.ctx, l.core.Cache(), TAGS_QUERY_KEY, query.Options{
		StaleTime: l.core.TagStaleTime(),
	}, l.core.Client().GetCommunityTags)
}

// TagCloud fetches the community tags (served from cache while fresh) and
// renders them with selected highlighted. onSelect may be nil.
func (l *CommunityLogic) TagCloud(selected string, onSelect func(string)) (tagcloud.View, *tagcloud.Component) {
	component := &tagcloud.Component{
		Selected:   selected,
		OnSelect:   onSelect,
		Policy:     l.core.TagCountPolicy(),
		Translator: l.core.Localizer(),
	}
	return component.Render(l.fetchTags(), l.core.Lang()), component
}

// TagCloudSnapshot renders whatever the cache holds right now without
// fetching, e.g. Loading while a refresh is running.
func (l *CommunityLogic) TagCloudSnapshot(selected string) tagcloud.View {
	component := &tagcloud.Component{
		Selected:   selected,
		Policy:     l.core.TagCountPolicy(),
		Translator: l.core.Localizer(),
	}
	return component.Render(query.Peek[[]string](l.core.Cache(), TAGS_QUERY_KEY), l.core.Lang())
}

// Topics lists the tags as topics with their synthesized counts.
func (l *CommunityLogic) Topics() ([]types.CommunityTopic, error) {
	res := l.fetchTags()
	if res.IsError() {
		return nil, apiError("CommunityLogic.Topics.GetCommunityTags", res.Err)
	}

	tags := adapter.TagsFromNames(res.Data, l.core.TagCountPolicy())
	topics := make([]types.CommunityTopic, 0, len(tags))
	for _, tag := range tags {
		topics = append(topics, adapter.TagToCommunityTopic(tag))
	}
	return topics, nil
}

// Feed lists discussions as posts. When tag is set only posts carrying it
// are returned.
func (l *CommunityLogic) Feed(tag string) ([]types.CommunityPost, error) {
	list, err := l.core.Client().ListDiscussions(l.ctx)
	if err != nil {
		return nil, apiError("CommunityLogic.Feed.ListDiscussions", err)
	}

	posts := adapter.DiscussionsToCommunityPosts(list, l.core.AdapterOptions()...)
	if tag == "" {
		return posts, nil
	}
	filtered := make([]types.CommunityPost, 0, len(posts))
	for _, post := range posts {
		for _, t := range post.Tags {
			if t == tag {
				filtered = append(filtered, post)
				break
			}
		}
	}
	return filtered, nil
}

// Excerpt shortens post content for feed listings.
func Excerpt(post types.CommunityPost) string {
	return utils.Excerpt(post.Content, FEED_EXCERPT_LENGTH)
}

// Publish creates a discussion from post. The tag cache is dropped so the
// next tag cloud includes the new tags.
func (l *CommunityLogic) Publish(post types.CommunityPost) (types.CommunityPost, error) {
	dto, err := l.core.Client().CreateDiscussion(l.ctx, adapter.CommunityPostToCreateDiscussionRequest(post))
	if err != nil {
		return types.CommunityPost{}, apiError("CommunityLogic.Publish.CreateDiscussion", err)
	}
	l.core.Cache().Invalidate(TAGS_QUERY_KEY)

	return adapter.DiscussionToCommunityPost(*dto, l.core.AdapterOptions()...), nil
}
