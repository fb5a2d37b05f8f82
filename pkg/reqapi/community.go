package reqapi

import (
	"context"
	"net/http"

	"github.com/quka-ai/quka-client/pkg/types"
)

// GetCommunityTags returns tag names in backend order.
func (c *Client) GetCommunityTags(ctx context.Context) ([]string, error) {
	var names []string
	if err := c.do(ctx, "community.tags", http.MethodGet, endpoint("community", "tags"), nil, nil, &names); err != nil {
		return nil, err
	}
	if names == nil {
		names = []string{}
	}
	return names, nil
}

func (c *Client) ListDiscussions(ctx context.Context) ([]types.DiscussionDto, error) {
	var list []types.DiscussionDto
	if err := c.do(ctx, "community.discussions.list", http.MethodGet, endpoint("community", "discussions"), nil, nil, &list); err != nil {
		return nil, err
	}
	if list == nil {
		list = []types.DiscussionDto{}
	}
	return list, nil
}

func (c *Client) CreateDiscussion(ctx context.Context, req types.CreateDiscussionRequest) (*types.DiscussionDto, error) {
	if req.Tags == nil {
		req.Tags = []string{}
	}
	var dto types.DiscussionDto
	if err := c.do(ctx, "community.discussions.create", http.MethodPost, endpoint("community", "discussions"), nil, req, &dto); err != nil {
		return nil, err
	}
	return &dto, nil
}
