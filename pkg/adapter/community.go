package adapter

import (
	"strings"
	"unicode"

	"github.com/samber/lo"

	"github.com/quka-ai/quka-client/pkg/types"
)

// DiscussionToCommunityPost never fails: every missing or malformed field
// gets its zero default. CommentList and AISummary need extra requests and
// are left empty.
func DiscussionToCommunityPost(dto types.DiscussionDto, opts ...Option) types.CommunityPost {
	o := newOptions(opts)

	return types.CommunityPost{
		ID:          dto.ID.Text(),
		Title:       dto.Title,
		Content:     dto.Content,
		Author:      postAuthor(o, dto.Author.Username, dto.Author.Avatar, dto.Author.Role),
		Tags:        copyTags(dto.Tags),
		Likes:       dto.LikeCount.Int(),
		Comments:    dto.ReplyCount.Int(),
		Views:       dto.ViewCount.Int(),
		HotIndex:    dto.TrendingScore.Float(),
		CreatedAt:   FormatDate(dto.CreatedAt, o.lang, o.loc),
		CommentList: []types.Comment{},
	}
}

func DiscussionsToCommunityPosts(list []types.DiscussionDto, opts ...Option) []types.CommunityPost {
	return lo.Map(list, func(item types.DiscussionDto, _ int) types.CommunityPost {
		return DiscussionToCommunityPost(item, opts...)
	})
}

func TagToCommunityTopic(tag types.TagDto) types.CommunityTopic {
	return types.CommunityTopic{
		ID:        Slug(tag.Name),
		Name:      tag.Name,
		PostCount: tag.Count.Int(),
	}
}

func CommunityPostToCreateDiscussionRequest(post types.CommunityPost) types.CreateDiscussionRequest {
	return types.CreateDiscussionRequest{
		Title:   post.Title,
		Content: post.Content,
		Tags:    copyTags(post.Tags),
	}
}

func postAuthor(o options, username, avatar, role string) types.PostAuthor {
	return types.PostAuthor{
		Name:   lo.Ternary(username != "", username, types.DEFAULT_AUTHOR_NAME),
		Avatar: AvatarURL(o.avatarBase, avatar, username),
		Role:   lo.Ternary(role != "", role, types.DEFAULT_AUTHOR_ROLE),
	}
}

func copyTags(tags []string) []string {
	if len(tags) == 0 {
		return []string{}
	}
	return append([]string(nil), tags...)
}

// Slug lower-cases name and joins its letter and digit runs with "-".
func Slug(name string) string {
	var sb strings.Builder
	dash := false
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if dash && sb.Len() > 0 {
				sb.WriteByte('-')
			}
			sb.WriteRune(r)
			dash = false
			continue
		}
		dash = true
	}
	return sb.String()
}
