package adapter

import (
	"github.com/samber/lo"

	"github.com/quka-ai/quka-client/pkg/types"
)

func RawCommentToComment(raw types.RawComment, opts ...Option) types.Comment {
	o := newOptions(opts)
	return types.Comment{
		ID:        raw.ID,
		ParentID:  raw.ParentID,
		Content:   raw.Content,
		Author:    postAuthor(o, raw.Author.Username, raw.Author.Avatar, ""),
		Likes:     raw.LikeCount.Int(),
		CreatedAt: FormatDate(raw.CreatedAt, o.lang, o.loc),
	}
}

func RawCommentsToComments(list []types.RawComment, opts ...Option) []types.Comment {
	return lo.Map(list, func(item types.RawComment, _ int) types.Comment {
		return RawCommentToComment(item, opts...)
	})
}
