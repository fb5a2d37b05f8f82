package reqapi

import (
	"context"
	"net/http"

	"github.com/quka-ai/quka-client/pkg/types"
)

func (c *Client) GetDocumentComments(ctx context.Context, documentID string) ([]types.RawComment, error) {
	var list []types.RawComment
	if err := c.do(ctx, "comments.list", http.MethodGet, endpoint("documents", documentID, "comments"), nil, nil, &list); err != nil {
		return nil, err
	}
	if list == nil {
		list = []types.RawComment{}
	}
	return list, nil
}

func (c *Client) PostDocumentComment(ctx context.Context, documentID string, req types.CreateCommentRequest) (*types.RawComment, error) {
	var comment types.RawComment
	if err := c.do(ctx, "comments.create", http.MethodPost, endpoint("documents", documentID, "comments"), nil, req, &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}
